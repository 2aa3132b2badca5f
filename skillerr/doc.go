// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package skillerr provides error kinds for the skillctl acquisition pipeline.

Errors raised anywhere between URL validation and config injection carry a
Kind through the call stack, so the command layer can decide how to report
them and which exit code to use without string matching.

# Basic Usage

Wrap an existing error with a kind:

	err := skillerr.WithKind(fmt.Errorf("writing SKILL.md: %w", err), skillerr.KindStorage)

Create a new error with a kind:

	err := skillerr.New("hash mismatch", skillerr.KindIntegrity)

# Extracting Kinds

	kind := skillerr.KindOf(err)
	// Returns the outermost Kind found in the chain
	// Returns KindUnknown if no kinded error is present

	os.Exit(skillerr.ExitCode(err))

The wrapper implements Unwrap, so errors.Is and errors.As keep working
against the sentinel errors exposed by the validation and fetch packages.
*/
package skillerr
