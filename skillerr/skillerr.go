// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package skillerr

import (
	"context"
	"errors"
)

// Kind classifies a failure by how the caller is expected to handle it.
type Kind int

const (
	// KindUnknown is reported for errors that carry no kind.
	KindUnknown Kind = iota
	// KindValidation covers bad skill names, disallowed URLs and rejected content.
	// Always fatal to the current operation and never retried.
	KindValidation
	// KindNetwork covers timeouts, non-success statuses, wrong content types and
	// oversized responses. Fatal per candidate path only.
	KindNetwork
	// KindIntegrity covers hash mismatches between the store and the manifest.
	KindIntegrity
	// KindStorage covers filesystem failures and path containment violations.
	KindStorage
	// KindNotFound is reported when no candidate path yields a skill.
	KindNotFound
	// KindCancelled is reported when the user declines a confirmation.
	KindCancelled
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNetwork:
		return "network"
	case KindIntegrity:
		return "integrity"
	case KindStorage:
		return "storage"
	case KindNotFound:
		return "not_found"
	case KindCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// KindedError wraps an error with a Kind.
type KindedError struct {
	err  error
	kind Kind
}

// Error implements the error interface.
func (e *KindedError) Error() string {
	return e.err.Error()
}

// Unwrap returns the underlying error for errors.Is() and errors.As() compatibility.
func (e *KindedError) Unwrap() error {
	return e.err
}

// Kind returns the kind associated with this error.
func (e *KindedError) Kind() Kind {
	return e.kind
}

// WithKind wraps an error with a Kind. If err is nil, WithKind returns nil.
func WithKind(err error, kind Kind) error {
	if err == nil {
		return nil
	}
	return &KindedError{err: err, kind: kind}
}

// New creates a new error with the given message and kind.
func New(message string, kind Kind) error {
	return &KindedError{err: errors.New(message), kind: kind}
}

// KindOf extracts the Kind from an error chain.
// Context cancellation is reported as KindCancelled even when unwrapped.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}

	var kinded *KindedError
	if errors.As(err, &kinded) {
		return kinded.kind
	}

	if errors.Is(err, context.Canceled) {
		return KindCancelled
	}

	return KindUnknown
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// ExitCode maps an error to the process exit code used by the CLI.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	switch KindOf(err) {
	case KindValidation:
		return 2
	case KindNetwork:
		return 3
	case KindIntegrity:
		return 4
	case KindStorage:
		return 5
	case KindNotFound:
		return 6
	case KindCancelled:
		return 130
	default:
		return 1
	}
}
