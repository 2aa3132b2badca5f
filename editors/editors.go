// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package editors

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Target is an AI editor skillctl can configure.
type Target int

// Known targets, in detection order.
const (
	Cursor Target = iota
	Windsurf
	Antigravity
	ClaudeCode
	Cline
	Roo
	OpenHands
	Trae
	Copilot
	Continue
	VSCode
)

// Strategy selects how references are written for a target.
type Strategy int

const (
	// SharedFile appends a snippet per skill to one configuration file.
	SharedFile Strategy = iota
	// RulesFile writes one rule file per skill into a rules directory.
	RulesFile
)

// Definition holds the paths of a target, relative to the project root.
type Definition struct {
	Name       string
	ConfigFile string
	// RulesDir is only set for RulesFile targets.
	RulesDir  string
	SkillsDir string
	ConfigDir string
	// MemoryFile is set for targets that keep memory context in a dedicated file.
	MemoryFile string
	Strategy   Strategy
}

// ErrUnknownTarget is returned when a name does not match any target.
var ErrUnknownTarget = errors.New("unknown editor")

var definitions = [...]Definition{
	Cursor: {
		Name:       "Cursor",
		ConfigFile: ".cursorrules",
		RulesDir:   ".cursor/rules",
		SkillsDir:  ".cursor/skills",
		ConfigDir:  ".cursor",
		MemoryFile: ".cursor/rules/memory.mdc",
		Strategy:   RulesFile,
	},
	Windsurf:    shared("Windsurf", ".windsurfrules", ".windsurf"),
	Antigravity: {
		Name:       "Antigravity",
		ConfigFile: ".agent/rules.md",
		SkillsDir:  ".agent/skills",
		ConfigDir:  ".agent",
		MemoryFile: ".agent/memory.md",
		Strategy:   SharedFile,
	},
	ClaudeCode: shared("ClaudeCode", ".claude/config", ".claude"),
	Cline:      shared("Cline", ".cline/config", ".cline"),
	Roo:        shared("Roo", ".roo/config", ".roo"),
	OpenHands:  shared("OpenHands", ".openhands/config", ".openhands"),
	Trae:       shared("Trae", ".trae/config", ".trae"),
	Copilot:    shared("GitHub Copilot", ".github/copilot-instructions.md", ".github"),
	Continue:   shared("Continue", ".continue/config.json", ".continue"),
	VSCode:     shared("VSCode", ".vscode/settings.json", ".vscode"),
}

func shared(name, configFile, configDir string) Definition {
	return Definition{
		Name:       name,
		ConfigFile: configFile,
		SkillsDir:  configDir + "/skills",
		ConfigDir:  configDir,
		Strategy:   SharedFile,
	}
}

var aliases = map[string]Target{
	"claude":         ClaudeCode,
	"claude-code":    ClaudeCode,
	"copilot":        Copilot,
	"github-copilot": Copilot,
	"vs-code":        VSCode,
	"code":           VSCode,
	"agent":          Antigravity,
}

// All returns every target in detection order.
func All() []Target {
	out := make([]Target, len(definitions))
	for i := range definitions {
		out[i] = Target(i)
	}
	return out
}

// Valid reports whether t is a known target.
func (t Target) Valid() bool {
	return t >= 0 && int(t) < len(definitions)
}

// Definition returns the table entry for t. It panics for an invalid target.
func (t Target) Definition() Definition {
	return definitions[t]
}

// String returns the display name of t.
func (t Target) String() string {
	if !t.Valid() {
		return fmt.Sprintf("Target(%d)", int(t))
	}
	return definitions[t].Name
}

// ParseTarget resolves a display name or alias, case-insensitively.
func ParseTarget(name string) (Target, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for i, d := range definitions {
		if strings.ToLower(d.Name) == key {
			return Target(i), nil
		}
	}
	if t, ok := aliases[key]; ok {
		return t, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownTarget, name)
}

// ParseTargets resolves a list of names, dropping duplicates while keeping order.
func ParseTargets(names []string) ([]Target, error) {
	seen := make(map[Target]bool, len(names))
	out := make([]Target, 0, len(names))
	for _, n := range names {
		t, err := ParseTarget(n)
		if err != nil {
			return nil, err
		}
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out, nil
}

// MarshalJSON encodes t by display name.
func (t Target) MarshalJSON() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownTarget, int(t))
	}
	return json.Marshal(definitions[t].Name)
}

// UnmarshalJSON decodes a display name or alias.
func (t *Target) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	parsed, err := ParseTarget(name)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Detect returns the targets whose configuration directory exists under root.
func Detect(root string) []Target {
	var found []Target
	for _, t := range All() {
		info, err := os.Stat(filepath.Join(root, definitions[t].ConfigDir))
		if err == nil && info.IsDir() {
			found = append(found, t)
		}
	}
	return found
}

// Names returns the display names of targets.
func Names(targets []Target) []string {
	out := make([]string, len(targets))
	for i, t := range targets {
		out[i] = t.String()
	}
	return out
}
