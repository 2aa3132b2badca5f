// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package skillname

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stacklok/skillctl/skillerr"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		// Valid cases
		{"simple", "my-skill", nil},
		{"underscore and digits", "skill_123", nil},
		{"mixed case", "TypeScript-Advanced", nil},
		{"single char", "a", nil},
		{"max length", strings.Repeat("a", MaxLength), nil},
		{"reserved prefix is fine", "CONSOLE", nil},
		{"com10 is not reserved", "COM10", nil},

		// Traversal
		{"parent traversal", "../etc/passwd", ErrTraversal},
		{"double dot inside", "a..b", ErrTraversal},
		{"forward slash", "skill/name", ErrTraversal},
		{"backslash", `skill\name`, ErrTraversal},

		// Hidden
		{"leading dot", ".hidden", ErrHidden},

		// Empty
		{"empty", "", ErrEmpty},
		{"whitespace only", "   ", ErrEmpty},

		// Reserved
		{"reserved upper", "CON", ErrReserved},
		{"reserved lower", "nul", ErrReserved},
		{"reserved mixed com", "Com7", ErrReserved},
		{"reserved lpt", "lpt9", ErrReserved},

		// Length
		{"too long", strings.Repeat("a", MaxLength+1), ErrTooLong},

		// Characters
		{"space", "my skill", ErrInvalidChars},
		{"dot inside", "my.skill", ErrInvalidChars},
		{"null byte", "skill\x00", ErrInvalidChars},
		{"colon", "c:skill", ErrInvalidChars},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := Validate(tt.input)
			if tt.wantErr == nil {
				require.NoError(t, err)
				assert.True(t, IsValid(tt.input))
				return
			}

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, skillerr.KindValidation, skillerr.KindOf(err))
			assert.False(t, IsValid(tt.input))
		})
	}
}

func TestValidate_AllReservedNames(t *testing.T) {
	t.Parallel()

	for reserved := range reservedNames {
		assert.ErrorIs(t, Validate(reserved), ErrReserved, reserved)
		assert.ErrorIs(t, Validate(strings.ToLower(reserved)), ErrReserved, reserved)
	}
}
