// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package http provides validation functions for HTTP headers exchanged with
skill hosts.

# Header Validation

Validate HTTP header values per RFC 7230 before they are sent:

	if err := http.ValidateHeaderValue(userAgent); err != nil {
		// Handle invalid header value
	}

The validators check for:
  - CRLF injection attempts (\r\n sequences)
  - Control characters
  - RFC 7230 token compliance for header names
  - Length limits to prevent DoS (256 bytes for names, 8192 for values)

# Content-Type Validation

Skill files are plain text. ValidateContentType accepts a response
Content-Type when it mentions text, markdown or plain:

	if err := http.ValidateContentType(resp.Header.Get("Content-Type")); err != nil {
		// Reject the response
	}

An empty Content-Type is accepted, since many raw-content hosts omit it.
*/
package http
