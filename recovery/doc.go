// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package recovery turns panics in a command into errors.
//
// The recovered value becomes an error of kind skillerr.KindUnknown and the
// stack trace is logged at debug level, so a panicking command exits with
// status 1 and a one-line message instead of a goroutine dump.
//
// # Basic Usage
//
//	err := recovery.Run(nil, func() error {
//		return cmd.ExecuteContext(ctx)
//	})
//
// # Stability
//
// This package is Beta stability. The API may have minor changes before
// reaching stable status in v1.0.0.
package recovery
