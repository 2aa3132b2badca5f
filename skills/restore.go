// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package skills

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/stacklok/skillctl/editors"
	"github.com/stacklok/skillctl/skillerr"
)

// Restore checks every installed skill against its recorded hash. Intact
// files are left alone. Missing or modified files are downloaded again from
// the recorded URL. References are injected for every active target.
func (m *Manager) Restore(ctx context.Context) ([]Result, error) {
	ws, err := m.open()
	if err != nil {
		return nil, err
	}

	var (
		results []Result
		errs    []error
		changed bool
	)
	for _, name := range ws.manifest.Names() {
		result, err := m.restoreOne(ctx, ws, name)
		if skillerr.Is(err, skillerr.KindCancelled) {
			return results, err
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("restoring %s: %w", name, err))
			result = Result{Name: name, Status: StatusFailed, Err: err}
		}
		changed = changed || result.Status.Changed()
		results = append(results, result)
	}

	if changed {
		if err := ws.manifest.Save(m.manifestPath); err != nil {
			return results, err
		}
	}
	return results, errors.Join(errs...)
}

func (m *Manager) restoreOne(ctx context.Context, ws *workspace, name string) (Result, error) {
	entry, _ := ws.manifest.Entry(name)

	intact, err := ws.store.Verify(name, entry.Hash)
	if err != nil {
		return Result{}, err
	}

	status := StatusIntact
	if !intact {
		m.logger.Warn("integrity check failed, downloading again", "skill", name, "url", entry.URL, "hash", entry.Hash)
		if m.downloader == nil {
			return Result{}, ErrNoResolver
		}
		content, err := m.downloader.Download(ctx, entry.URL)
		if err != nil {
			return Result{}, err
		}
		entry, err = m.write(ws, name, content, entry.URL, entry)
		if err != nil {
			return Result{}, err
		}
		ws.manifest.SetEntry(name, entry)
		status = StatusRestored
	}

	if err := m.injectAll(ws, name, entry); err != nil {
		return Result{}, err
	}
	return Result{Name: name, Status: status, Entry: entry}, nil
}

// Sync injects every installed skill and the memory context into targets.
// Targets not yet active are added to the manifest. With no targets the
// active editors are used.
func (m *Manager) Sync(targets []editors.Target) error {
	ws, err := m.open()
	if err != nil {
		return err
	}

	added := false
	for _, t := range targets {
		if !t.Valid() {
			return skillerr.WithKind(fmt.Errorf("%w: %d", editors.ErrUnknownTarget, int(t)), skillerr.KindValidation)
		}
		if !slices.Contains(ws.manifest.ActiveEditors, t) {
			ws.manifest.ActiveEditors = append(ws.manifest.ActiveEditors, t)
			added = true
		}
	}
	if len(targets) == 0 {
		targets = ws.manifest.ActiveEditors
	}

	for _, name := range ws.manifest.Names() {
		entry, _ := ws.manifest.Entry(name)
		for _, t := range targets {
			if err := ws.injector.Inject(t, name, entry.LocalPath); err != nil {
				return fmt.Errorf("injecting %s into %s: %w", name, t, err)
			}
		}
	}

	if err := m.syncMemory(ws, targets); err != nil {
		return err
	}

	if added {
		return ws.manifest.Save(m.manifestPath)
	}
	return nil
}
