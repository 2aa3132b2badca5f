// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/tailscale/hujson"

	"github.com/stacklok/skillctl/editors"
	"github.com/stacklok/skillctl/fsutil"
	"github.com/stacklok/skillctl/skillerr"
	"github.com/stacklok/skillctl/store"
	"github.com/stacklok/skillctl/validation/skillname"
)

const (
	// DefaultManifestFile is the manifest file name in the project directory.
	DefaultManifestFile = "skills.json"
	// DefaultStorePath is the store root, relative to the project directory.
	DefaultStorePath = ".skillctl/store"
)

var (
	// ErrManifestNotFound is returned when the project has no manifest.
	ErrManifestNotFound = errors.New("configuration file not found; run 'skillctl init' first")
	// ErrManifestExists is returned when initializing over an existing manifest.
	ErrManifestExists = errors.New("configuration file already exists")
)

// SkillEntry is the manifest record of an installed skill.
type SkillEntry = store.Entry

// Manifest is the project configuration persisted in skills.json.
type Manifest struct {
	ActiveEditors []editors.Target      `json:"active_editors"`
	StorePath     string                `json:"store_path"`
	Skills        map[string]SkillEntry `json:"skills"`
}

// NewManifest returns an empty manifest for targets using the default store path.
func NewManifest(targets []editors.Target) *Manifest {
	return &Manifest{
		ActiveEditors: slices.Clone(targets),
		StorePath:     DefaultStorePath,
		Skills:        map[string]SkillEntry{},
	}
}

// LoadManifest reads and validates the manifest at path.
func LoadManifest(path string) (*Manifest, error) {
	data, ok, err := fsutil.ReadFileIfExists(path)
	if err != nil {
		return nil, skillerr.WithKind(fmt.Errorf("reading %s: %w", path, err), skillerr.KindStorage)
	}
	if !ok {
		return nil, skillerr.WithKind(fmt.Errorf("%w: %s", ErrManifestNotFound, path), skillerr.KindNotFound)
	}
	return ParseManifest(data)
}

// ParseManifest decodes manifest bytes. Comments and trailing commas are accepted.
func ParseManifest(data []byte) (*Manifest, error) {
	std, err := hujson.Standardize(data)
	if err != nil {
		return nil, skillerr.WithKind(fmt.Errorf("parsing manifest: %w", err), skillerr.KindValidation)
	}

	if err := ValidateManifestBytes(std); err != nil {
		return nil, skillerr.WithKind(err, skillerr.KindValidation)
	}

	var m Manifest
	if err := json.Unmarshal(std, &m); err != nil {
		return nil, skillerr.WithKind(fmt.Errorf("decoding manifest: %w", err), skillerr.KindValidation)
	}
	if m.Skills == nil {
		m.Skills = map[string]SkillEntry{}
	}

	for name := range m.Skills {
		if err := skillname.Validate(name); err != nil {
			return nil, fmt.Errorf("manifest entry: %w", err)
		}
	}
	return &m, nil
}

// Save writes the manifest to path as indented JSON.
func (m *Manifest) Save(path string) error {
	out := *m
	if out.Skills == nil {
		out.Skills = map[string]SkillEntry{}
	}
	if out.ActiveEditors == nil {
		out.ActiveEditors = []editors.Target{}
	}

	data, err := json.MarshalIndent(&out, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}
	if err := ValidateManifestBytes(data); err != nil {
		return skillerr.WithKind(err, skillerr.KindValidation)
	}
	if err := fsutil.WriteFileAtomic(path, append(data, '\n'), 0o644); err != nil {
		return skillerr.WithKind(fmt.Errorf("writing %s: %w", path, err), skillerr.KindStorage)
	}
	return nil
}

// Names returns the installed skill names, sorted.
func (m *Manifest) Names() []string {
	return slices.Sorted(maps.Keys(m.Skills))
}

// Entry returns the entry for name.
func (m *Manifest) Entry(name string) (SkillEntry, bool) {
	e, ok := m.Skills[name]
	return e, ok
}

// SetEntry records entry under name.
func (m *Manifest) SetEntry(name string, entry SkillEntry) {
	if m.Skills == nil {
		m.Skills = map[string]SkillEntry{}
	}
	m.Skills[name] = entry
}

// RemoveEntry deletes name and returns the previous entry.
func (m *Manifest) RemoveEntry(name string) (SkillEntry, bool) {
	e, ok := m.Skills[name]
	delete(m.Skills, name)
	return e, ok
}
