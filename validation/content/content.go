// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package content

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/stacklok/skillctl/skillerr"
)

// MaxSize is the maximum accepted size of a skill file in bytes.
const MaxSize = 1_000_000

const frontMatterDelimiter = "---"

var (
	// ErrTooLarge is returned when content exceeds MaxSize.
	ErrTooLarge = fmt.Errorf("skill content is too large (max %d bytes)", MaxSize)
	// ErrBinaryContent is returned when content contains a null byte.
	ErrBinaryContent = errors.New("skill content contains null bytes (binary content not allowed)")
	// ErrSuspiciousPattern is returned when the front matter contains an unsafe YAML tag.
	ErrSuspiciousPattern = errors.New("skill content contains suspicious YAML pattern")
	// ErrNoFrontMatter is returned by ParseFrontMatter when content has no front matter block.
	ErrNoFrontMatter = errors.New("skill content has no front matter")
)

// suspiciousPatterns are YAML tags that request object deserialization or file inclusion.
var suspiciousPatterns = []string{
	"!!python",
	"!!ruby",
	"!!java",
	"!include",
	"!tag",
}

// Metadata is the subset of SKILL.md front matter skillctl understands.
type Metadata struct {
	Name          string            `yaml:"name"`
	Description   string            `yaml:"description"`
	License       string            `yaml:"license,omitempty"`
	Compatibility string            `yaml:"compatibility,omitempty"`
	AllowedTools  string            `yaml:"allowed-tools,omitempty"`
	Metadata      map[string]string `yaml:"metadata,omitempty"`
}

// Validate checks downloaded skill content. Returned errors are of kind
// skillerr.KindValidation.
func Validate(text string) error {
	if len(text) > MaxSize {
		return skillerr.WithKind(
			fmt.Errorf("%w: got %d bytes", ErrTooLarge, len(text)), skillerr.KindValidation)
	}

	if strings.ContainsRune(text, 0) {
		return skillerr.WithKind(ErrBinaryContent, skillerr.KindValidation)
	}

	frontMatter, ok := extractFrontMatter(text)
	if !ok {
		return nil
	}

	for _, pattern := range suspiciousPatterns {
		if strings.Contains(frontMatter, pattern) {
			return skillerr.WithKind(
				fmt.Errorf("%w: %s", ErrSuspiciousPattern, pattern), skillerr.KindValidation)
		}
	}

	return nil
}

// ParseFrontMatter decodes the YAML front matter of text.
// It returns ErrNoFrontMatter when text does not start with a fenced block.
func ParseFrontMatter(text string) (*Metadata, error) {
	frontMatter, ok := extractFrontMatter(text)
	if !ok {
		return nil, ErrNoFrontMatter
	}

	var meta Metadata
	if err := yaml.Unmarshal([]byte(frontMatter), &meta); err != nil {
		return nil, fmt.Errorf("failed to parse front matter: %w", err)
	}
	return &meta, nil
}

// extractFrontMatter returns the text between the leading delimiter and the
// next one. The second return is false when text has no complete block.
func extractFrontMatter(text string) (string, bool) {
	if !strings.HasPrefix(text, frontMatterDelimiter) {
		return "", false
	}

	parts := strings.SplitN(text, frontMatterDelimiter, 3)
	if len(parts) < 3 {
		return "", false
	}
	return parts[1], true
}
