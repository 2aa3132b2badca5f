// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package fetch

import (
	"errors"
	"fmt"

	"github.com/stacklok/skillctl/validation/content"
	httpval "github.com/stacklok/skillctl/validation/http"
)

var (
	// ErrTooLarge is returned when the Content-Length header exceeds content.MaxSize.
	ErrTooLarge = fmt.Errorf("response too large (max %d bytes)", content.MaxSize)
	// ErrTooManyRedirects is returned when a response redirects more than MaxRedirects times.
	ErrTooManyRedirects = fmt.Errorf("stopped after %d redirects", MaxRedirects)
	// ErrUnexpectedContentType is returned for responses that are not text.
	ErrUnexpectedContentType = httpval.ErrUnexpectedContentType
	// ErrNoBranches is returned by Resolve when the resolver has no branch to try.
	ErrNoBranches = errors.New("no branches configured")
)

// HTTPError represents a non-success HTTP response.
type HTTPError struct {
	StatusCode int
	URL        string
	Message    string
}

// Error returns the error message
func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d for URL %s: %s", e.StatusCode, e.URL, e.Message)
}

// NewHTTPError creates a new HTTP error
func NewHTTPError(statusCode int, url, message string) error {
	return &HTTPError{
		StatusCode: statusCode,
		URL:        url,
		Message:    message,
	}
}

// SkillNotFoundError is returned when no candidate location yields the skill.
type SkillNotFoundError struct {
	Skill   string
	LastURL string
	Err     error
}

// Error returns the error message
func (e *SkillNotFoundError) Error() string {
	return fmt.Sprintf("could not find skill %q in repository; last error: %s (%v)", e.Skill, e.LastURL, e.Err)
}

// Unwrap returns the error from the last attempted candidate.
func (e *SkillNotFoundError) Unwrap() error {
	return e.Err
}
