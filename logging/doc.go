// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package logging provides the [log/slog.Logger] factory used by skillctl.

Library packages never create loggers on their own. They accept a
*slog.Logger through a WithLogger option and fall back to [log/slog.Default];
the command layer builds the process logger here and installs it with
[log/slog.SetDefault].

# Defaults

  - Format: text ([FormatText]) via [log/slog.TextHandler]
  - Level: WARN ([log/slog.LevelWarn]), so routine progress stays off stderr
  - Output: [os.Stderr]
  - Timestamps: [time.RFC3339]

# Configuration

	level, _ := logging.ParseLevel(settings.LogLevel)
	logger := logging.New(
		logging.WithFormat(logging.ParseFormat(settings.LogFormat)),
		logging.WithLevel(level),
	)
	slog.SetDefault(logger)

# Testing

Inject a buffer to capture log output in tests, or use [Discard]:

	var buf bytes.Buffer
	logger := logging.New(logging.WithOutput(&buf), logging.WithLevel(slog.LevelDebug))
*/
package logging
