// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package skills

import (
	"context"
	"errors"
	"fmt"

	"github.com/stacklok/skillctl/config"
	"github.com/stacklok/skillctl/skillerr"
	"github.com/stacklok/skillctl/store"
	"github.com/stacklok/skillctl/validation/content"
	"github.com/stacklok/skillctl/validation/skillname"
)

// AddRequest names a skill to acquire.
type AddRequest struct {
	// Repository is the repository web URL, such as https://github.com/acme/skills.
	Repository string
	// Skill is the skill name.
	Skill string
	// Path is an explicit repository-relative path. Empty tries the conventional locations.
	Path string
}

// Add resolves, stores and injects one skill.
func (m *Manager) Add(ctx context.Context, req AddRequest) (*Result, error) {
	if err := skillname.Validate(req.Skill); err != nil {
		return nil, err
	}
	if m.resolver == nil {
		return nil, ErrNoResolver
	}

	ws, err := m.open()
	if err != nil {
		return nil, err
	}

	res, err := m.resolver.Resolve(ctx, req.Repository, req.Skill, req.Path)
	if err != nil {
		return nil, err
	}

	source := config.SkillEntry{Repository: req.Repository, Path: res.Path, Branch: res.Branch}
	result, err := m.apply(ctx, ws, req.Skill, res.Content, res.URL, source)
	if err != nil {
		return nil, err
	}

	result.Description = m.describe(req.Skill, res.Content)
	if result.Status == StatusDeclined {
		return result, nil
	}
	if err := m.injectAll(ws, req.Skill, result.Entry); err != nil {
		return nil, err
	}
	if result.Status.Changed() {
		if err := ws.manifest.Save(m.manifestPath); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// apply stores content for name unless the recorded hash already matches
// it, asking for confirmation before replacing different content.
func (m *Manager) apply(
	ctx context.Context, ws *workspace, name, content, sourceURL string, source config.SkillEntry,
) (*Result, error) {
	hash := store.Hash(content)
	existing, installed := ws.manifest.Entry(name)

	status := StatusInstalled
	if installed {
		intact, err := ws.store.Verify(name, existing.Hash)
		if err != nil {
			return nil, err
		}

		switch {
		case existing.Hash == hash && intact:
			m.logger.Debug("skill unchanged", "skill", name, "hash", hash)
			return &Result{Name: name, Status: StatusUnchanged, Entry: existing}, nil
		case existing.Hash != hash:
			ok, err := m.confirm(ctx,
				fmt.Sprintf("Overwrite skill %q?", name),
				fmt.Sprintf("The content at %s differs from the installed copy (%s).", sourceURL, short(existing.Hash)))
			if err != nil {
				return nil, err
			}
			if !ok {
				m.logger.Info("overwrite declined", "skill", name)
				return &Result{Name: name, Status: StatusDeclined, Entry: existing}, nil
			}
			status = StatusUpdated
		default:
			status = StatusRestored
		}
	}

	entry, err := m.write(ws, name, content, sourceURL, source)
	if err != nil {
		return nil, err
	}
	ws.manifest.SetEntry(name, entry)
	m.logger.Info("stored skill", "skill", name, "url", sourceURL, "hash", entry.Hash, "status", status.String())
	return &Result{Name: name, Status: status, Entry: entry}, nil
}

// Update downloads every named skill again from its recorded URL, or every
// installed skill when names is empty. Failures are reported per skill.
func (m *Manager) Update(ctx context.Context, names ...string) ([]Result, error) {
	if m.downloader == nil {
		return nil, ErrNoResolver
	}

	ws, err := m.open()
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		names = ws.manifest.Names()
	}

	var (
		results []Result
		errs    []error
		changed bool
	)
	for _, name := range names {
		result, err := m.updateOne(ctx, ws, name)
		if skillerr.Is(err, skillerr.KindCancelled) {
			return results, err
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("updating %s: %w", name, err))
			result = &Result{Name: name, Status: StatusFailed, Err: err}
		}
		changed = changed || result.Status.Changed()
		results = append(results, *result)
	}

	if changed {
		if err := ws.manifest.Save(m.manifestPath); err != nil {
			return results, err
		}
	}
	return results, errors.Join(errs...)
}

func (m *Manager) updateOne(ctx context.Context, ws *workspace, name string) (*Result, error) {
	if err := skillname.Validate(name); err != nil {
		return nil, err
	}
	entry, ok := ws.manifest.Entry(name)
	if !ok {
		return &Result{Name: name, Status: StatusNotInstalled}, nil
	}

	content, err := m.downloader.Download(ctx, entry.URL)
	if err != nil {
		return nil, err
	}

	result, err := m.apply(ctx, ws, name, content, entry.URL, entry)
	if err != nil {
		return nil, err
	}
	if result.Status.Changed() {
		if err := m.injectAll(ws, name, result.Entry); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// describe returns the front matter description of text.
func (m *Manager) describe(name, text string) string {
	meta, err := content.ParseFrontMatter(text)
	if err != nil {
		return ""
	}
	if meta.Name != "" && meta.Name != name {
		m.logger.Warn("front matter names a different skill", "skill", name, "front_matter_name", meta.Name)
	}
	return meta.Description
}

func short(hash string) string {
	if len(hash) > 12 {
		return hash[:12]
	}
	return hash
}
