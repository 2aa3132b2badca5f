// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package inject

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/stacklok/skillctl/editors"
	"github.com/stacklok/skillctl/memory"
)

// Format selects how snippets are written into shared files.
type Format int

const (
	// FormatLegacy writes bare template lines.
	FormatLegacy Format = iota
	// FormatFenced wraps each snippet in begin/end comments.
	FormatFenced
)

// ErrUnknownFormat is returned by ParseFormat.
var ErrUnknownFormat = errors.New("unknown injection format")

// ParseFormat converts "legacy" or "fenced". Empty means legacy.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "legacy":
		return FormatLegacy, nil
	case "fenced":
		return FormatFenced, nil
	default:
		return FormatLegacy, fmt.Errorf("%w: %q (expected legacy or fenced)", ErrUnknownFormat, s)
	}
}

// String returns the name accepted by ParseFormat.
func (f Format) String() string {
	if f == FormatFenced {
		return "fenced"
	}
	return "legacy"
}

const (
	fenceBeginFmt = "<!-- skillctl:begin %s -->"
	fenceEndFmt   = "<!-- skillctl:end %s -->"

	memoryFenceBegin = "<!-- skillctl:memory:begin -->"
	memoryFenceEnd   = "<!-- skillctl:memory:end -->"

	ruleFileFmt = "---\ndescription: Skill %s\nglobs: *\n---\n# %s\n\nRead logic from: %s\n"
	memoryRule  = "---\ndescription: Global Active Memory\nglobs: *\n---\n"
)

// pathPhrases identify the path line of a legacy snippet.
var pathPhrases = []string{"Read file:", "Refer to logic", "See "}

// snippet returns the legacy snippet for target. Every snippet starts and
// ends with a newline.
func snippet(target editors.Target, name, path string) string {
	switch target {
	case editors.Antigravity:
		return fmt.Sprintf("\n### Skill: %s\nRefer to logic in: `%s`\n", name, path)
	case editors.Cline, editors.Roo:
		return fmt.Sprintf("\nRunning context for %s: See %s\n", name, path)
	default:
		return fmt.Sprintf("\n- Skill (%s) -> Read file: %s\n", name, path)
	}
}

func fenced(name, body string) string {
	return "\n" + fmt.Sprintf(fenceBeginFmt, name) + "\n" +
		strings.Trim(body, "\n") + "\n" +
		fmt.Sprintf(fenceEndFmt, name) + "\n"
}

// isMarkerLine reports whether line is the marker line of a legacy snippet for name.
func isMarkerLine(line, name string) bool {
	if strings.Contains(line, "Skill ("+name+")") || strings.Contains(line, "context for "+name+":") {
		return true
	}
	return containsBounded(line, "Skill: "+name)
}

// containsBounded reports whether needle occurs in s not followed by another
// skill-name character, so "Skill: auth" does not match "Skill: auth-helper".
func containsBounded(s, needle string) bool {
	for i := 0; ; {
		j := strings.Index(s[i:], needle)
		if j < 0 {
			return false
		}
		end := i + j + len(needle)
		if r, _ := utf8.DecodeRuneInString(s[end:]); end == len(s) || !isNameRune(r) {
			return true
		}
		i = end
	}
}

func isNameRune(r rune) bool {
	return r == '-' || r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func hasPathPhrase(line string) bool {
	for _, p := range pathPhrases {
		if strings.Contains(line, p) {
			return true
		}
	}
	return false
}

// hasReference reports whether content already references name in either format.
func hasReference(content, name string) bool {
	if strings.Contains(content, fmt.Sprintf(fenceBeginFmt, name)) {
		return true
	}
	for _, line := range strings.Split(content, "\n") {
		if isMarkerLine(line, name) {
			return true
		}
	}
	return false
}

// memoryStart returns the offset of the memory block in content, or -1.
func memoryStart(content string) int {
	if idx := strings.Index(content, memoryFenceBegin); idx >= 0 {
		return idx
	}
	return strings.Index(content, memory.Header)
}

// insertSnippet adds addition to content ahead of any memory block, since
// memory replacement discards everything that follows a legacy header.
func insertSnippet(content, addition string) string {
	idx := memoryStart(content)
	if idx < 0 {
		return content + addition
	}
	before := strings.TrimRight(content[:idx], "\n")
	if before != "" {
		before += "\n"
	}
	return before + addition + "\n" + content[idx:]
}

// removeReferences drops every fenced block and legacy snippet for name.
// The second result reports whether anything was removed.
func removeReferences(content, name string) (string, bool) {
	begin := fmt.Sprintf(fenceBeginFmt, name)
	end := fmt.Sprintf(fenceEndFmt, name)

	trailing := strings.HasSuffix(content, "\n")
	lines := strings.Split(strings.TrimSuffix(content, "\n"), "\n")

	kept := make([]string, 0, len(lines))
	removed := false
	skipPathLine := false

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == begin:
			// An unterminated fence loses only its begin line.
			if stop := indexLine(lines[i+1:], end); stop >= 0 {
				i += stop + 1
			}
			skipPathLine = false
			removed = true
			continue
		case isMarkerLine(line, name):
			// Single-line templates carry the path on the marker line.
			skipPathLine = !hasPathPhrase(line)
			removed = true
			continue
		case skipPathLine && hasPathPhrase(line):
			skipPathLine = false
			removed = true
			continue
		}
		skipPathLine = false
		kept = append(kept, line)
	}

	if !removed {
		return content, false
	}
	out := strings.Join(kept, "\n")
	if trailing && out != "" {
		out += "\n"
	}
	return out, true
}

func indexLine(lines []string, want string) int {
	for i, line := range lines {
		if strings.TrimSpace(line) == want {
			return i
		}
	}
	return -1
}

// replaceMemory returns content with its memory block replaced by block.
func replaceMemory(content, block string, format Format) string {
	if start := strings.Index(content, memoryFenceBegin); start >= 0 {
		if rel := strings.Index(content[start:], memoryFenceEnd); rel >= 0 {
			stop := start + rel + len(memoryFenceEnd)
			before := strings.TrimRight(content[:start], "\n")
			after := strings.TrimLeft(content[stop:], "\n")
			return joinMemory(before, wrapMemory(block), after)
		}
	}

	if format == FormatFenced {
		if idx := strings.Index(content, memory.Header); idx >= 0 {
			content = content[:idx]
		}
		return joinMemory(strings.TrimRight(content, "\n"), wrapMemory(block), "")
	}

	if idx := strings.Index(content, memory.Header); idx >= 0 {
		content = content[:idx]
	}
	return appendMemory(content, block)
}

// appendMemory places block after content separated by one blank line, so
// repeated injection of the same block yields the same bytes.
func appendMemory(content, block string) string {
	before := strings.TrimRight(content, " \t\r\n")
	block = strings.TrimLeft(block, "\n")
	switch {
	case before == "":
		return block
	case block == "":
		return before + "\n"
	default:
		return before + "\n\n" + block
	}
}

func wrapMemory(block string) string {
	if strings.TrimSpace(block) == "" {
		return ""
	}
	return memoryFenceBegin + "\n" + strings.Trim(block, "\n") + "\n" + memoryFenceEnd + "\n"
}

func joinMemory(before, block, after string) string {
	var parts []string
	for _, p := range []string{before, strings.TrimRight(block, "\n"), strings.TrimRight(after, "\n")} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, "\n\n") + "\n"
}
