// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package skillname

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/stacklok/skillctl/skillerr"
)

// MaxLength is the maximum length of a skill name in bytes.
const MaxLength = 100

var (
	// ErrEmpty is returned for empty or whitespace-only names.
	ErrEmpty = errors.New("skill name cannot be empty")
	// ErrTraversal is returned for names containing "..", "/" or "\".
	ErrTraversal = errors.New("skill name contains invalid characters (path traversal attempt detected)")
	// ErrHidden is returned for names starting with a dot.
	ErrHidden = errors.New("skill name cannot start with a dot")
	// ErrReserved is returned for reserved device names.
	ErrReserved = errors.New("skill name is a reserved system name")
	// ErrTooLong is returned for names longer than MaxLength.
	ErrTooLong = fmt.Errorf("skill name is too long (max %d characters)", MaxLength)
	// ErrInvalidChars is returned for names with characters outside letters, digits, "-" and "_".
	ErrInvalidChars = errors.New("skill name can only contain letters, numbers, hyphens, and underscores")
)

var reservedNames = map[string]struct{}{
	"CON": {}, "PRN": {}, "AUX": {}, "NUL": {},
	"COM1": {}, "COM2": {}, "COM3": {}, "COM4": {}, "COM5": {}, "COM6": {}, "COM7": {}, "COM8": {}, "COM9": {},
	"LPT1": {}, "LPT2": {}, "LPT3": {}, "LPT4": {}, "LPT5": {}, "LPT6": {}, "LPT7": {}, "LPT8": {}, "LPT9": {},
}

// Validate checks that a skill name is safe to use as a path component.
// Returned errors are of kind skillerr.KindValidation and wrap one of the
// sentinel errors of this package.
func Validate(skill string) error {
	if err := check(skill); err != nil {
		return skillerr.WithKind(fmt.Errorf("%w: %q", err, skill), skillerr.KindValidation)
	}
	return nil
}

// IsValid reports whether skill passes Validate.
func IsValid(skill string) bool {
	return check(skill) == nil
}

func check(skill string) error {
	if strings.TrimSpace(skill) == "" {
		return ErrEmpty
	}

	if strings.Contains(skill, "..") || strings.ContainsAny(skill, `/\`) {
		return ErrTraversal
	}

	if strings.HasPrefix(skill, ".") {
		return ErrHidden
	}

	if _, ok := reservedNames[strings.ToUpper(skill)]; ok {
		return ErrReserved
	}

	if len(skill) > MaxLength {
		return ErrTooLong
	}

	for _, r := range skill {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-' && r != '_' {
			return ErrInvalidChars
		}
	}

	return nil
}
