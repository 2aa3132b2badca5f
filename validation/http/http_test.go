// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package http

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateHeaderName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		expectErr bool
	}{
		{"valid user agent", "User-Agent", false},
		{"valid accept", "Accept", false},
		{"crlf injection", "User-Agent\r\nX-Injected: malicious", true},
		{"contains space", "User Agent", true},
		{"empty string", "", true},
		{"too long", strings.Repeat("A", 300), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateHeaderName(tt.input)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateHeaderValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		expectErr bool
	}{
		{"valid user agent", "skillctl/0.0.9", false},
		{"valid with spaces", "skillctl/dev (linux)", false},
		{"tab allowed", "skillctl\tdev", false},
		{"crlf injection", "skillctl\r\nX-Injected: malicious", true},
		{"newline injection", "skillctl\ninjected", true},
		{"null byte", "skillctl\x00", true},
		{"delete char", "skillctl\x7F", true},
		{"too long", strings.Repeat("A", 10000), true},
		{"empty string", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateHeaderValue(tt.input)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateContentType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		input       string
		expectError bool
	}{
		{name: "empty is accepted", input: ""},
		{name: "raw github", input: "text/plain; charset=utf-8"},
		{name: "markdown", input: "text/markdown"},
		{name: "vendor markdown", input: "application/x-markdown"},
		{name: "uppercase", input: "TEXT/PLAIN"},
		{name: "json", input: "application/json", expectError: true},
		{name: "octet stream", input: "application/octet-stream", expectError: true},
		{name: "image", input: "image/png", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateContentType(tt.input)
			if tt.expectError {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrUnexpectedContentType)
				assert.Contains(t, err.Error(), tt.input)
				return
			}
			require.NoError(t, err)
		})
	}
}
