// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package recovery

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
)

// ErrPanic is wrapped by the error Run returns after a panic.
var ErrPanic = errors.New("internal error")

// Run calls fn and returns its error. A panic in fn is recovered and
// returned as an error wrapping ErrPanic. A nil logger means the default
// logger at the time of the panic.
func Run(logger *slog.Logger, fn func() error) (err error) {
	defer func() {
		if v := recover(); v != nil {
			if logger == nil {
				logger = slog.Default()
			}
			logger.Debug("recovered panic", "panic", fmt.Sprint(v), "stack", string(debug.Stack()))
			err = fmt.Errorf("%w: %v", ErrPanic, v)
		}
	}()
	return fn()
}
