// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package http provides validation functions for HTTP headers.
package http

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/http/httpguts"
)

// ErrUnexpectedContentType is returned for responses that are not text.
var ErrUnexpectedContentType = errors.New("unexpected content type")

// textContentTypeMarkers are substrings that identify a textual response.
var textContentTypeMarkers = []string{"text", "markdown", "plain"}

// ValidateHeaderName validates that a string is a valid HTTP header name per RFC 7230.
// It checks for CRLF injection, control characters, and ensures RFC token compliance.
func ValidateHeaderName(name string) error {
	if name == "" {
		return fmt.Errorf("header name cannot be empty")
	}

	// Length limit to prevent DoS
	if len(name) > 256 {
		return fmt.Errorf("header name exceeds maximum length of 256 bytes")
	}

	if !httpguts.ValidHeaderFieldName(name) {
		return fmt.Errorf("invalid HTTP header name: contains invalid characters")
	}

	return nil
}

// ValidateHeaderValue validates that a string is a valid HTTP header value per RFC 7230.
// It checks for CRLF injection and control characters.
func ValidateHeaderValue(value string) error {
	if value == "" {
		return fmt.Errorf("header value cannot be empty")
	}

	if len(value) > 8192 {
		return fmt.Errorf("header value exceeds maximum length of 8192 bytes")
	}

	if !httpguts.ValidHeaderFieldValue(value) {
		return fmt.Errorf("invalid HTTP header value: contains control characters")
	}

	return nil
}

// ValidateContentType accepts an empty Content-Type or one that contains
// "text", "markdown" or "plain". Matching is case-insensitive.
func ValidateContentType(contentType string) error {
	if contentType == "" {
		return nil
	}

	lower := strings.ToLower(contentType)
	for _, marker := range textContentTypeMarkers {
		if strings.Contains(lower, marker) {
			return nil
		}
	}

	return fmt.Errorf("%w: %s (expected text/markdown)", ErrUnexpectedContentType, contentType)
}
