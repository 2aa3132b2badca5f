// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package skills

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/stacklok/skillctl/config"
	"github.com/stacklok/skillctl/filter"
	"github.com/stacklok/skillctl/skillerr"
)

// Row describes one skill known to the manifest or present in the store.
type Row struct {
	Name string `json:"name"`
	config.SkillEntry
	// Verified is true when the stored file matches the recorded hash.
	Verified bool `json:"verified"`
	// Tracked is false for store directories the manifest does not list.
	Tracked bool `json:"tracked"`
}

func (r Row) record() filter.Record {
	return filter.Record{
		Name:        r.Name,
		URL:         r.URL,
		Hash:        r.Hash,
		LocalPath:   r.LocalPath,
		LastUpdated: r.LastUpdated,
		Verified:    r.Verified,
		Repository:  r.Repository,
		Branch:      r.Branch,
	}
}

// List returns the manifest skills and any untracked store directories,
// sorted by name, keeping the rows f matches. A nil filter keeps every row.
func (m *Manager) List(f *filter.Filter) ([]Row, error) {
	ws, err := m.open()
	if err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(ws.manifest.Skills))
	for _, name := range ws.manifest.Names() {
		entry, _ := ws.manifest.Entry(name)
		verified, err := ws.store.Verify(name, entry.Hash)
		if err != nil {
			return nil, err
		}
		rows = append(rows, Row{Name: name, SkillEntry: entry, Verified: verified, Tracked: true})
	}

	stored, err := ws.store.List()
	if err != nil {
		return nil, err
	}
	for _, name := range stored {
		if _, ok := ws.manifest.Entry(name); ok {
			continue
		}
		path, err := ws.store.Path(name)
		if err != nil {
			return nil, err
		}
		rows = append(rows, Row{Name: name, SkillEntry: config.SkillEntry{LocalPath: m.reference(path)}})
	}
	slices.SortFunc(rows, func(a, b Row) int { return cmp.Compare(a.Name, b.Name) })

	out := rows[:0]
	for _, row := range rows {
		ok, err := f.Match(row.record())
		if err != nil {
			return nil, skillerr.WithKind(fmt.Errorf("filtering %s: %w", row.Name, err), skillerr.KindValidation)
		}
		if ok {
			out = append(out, row)
		}
	}
	return out, nil
}
