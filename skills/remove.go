// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package skills

import (
	"errors"
	"fmt"

	"github.com/stacklok/skillctl/validation/skillname"
)

// Remove uninstalls every named skill: editor references first, then the
// stored file, then the manifest entry. Unknown names are reported with
// StatusNotInstalled and do not stop the others.
func (m *Manager) Remove(names ...string) ([]Result, error) {
	ws, err := m.open()
	if err != nil {
		return nil, err
	}

	var (
		results []Result
		errs    []error
		changed bool
	)
	for _, name := range names {
		result, err := m.removeOne(ws, name)
		if err != nil {
			errs = append(errs, fmt.Errorf("removing %s: %w", name, err))
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

func (m *Manager) removeOne(ws *workspace, name string) (Result, error) {
	if err := skillname.Validate(name); err != nil {
		return Result{}, err
	}
	entry, ok := ws.manifest.Entry(name)
	if !ok {
		m.logger.Warn("skill not installed", "skill", name)
		return Result{Name: name, Status: StatusNotInstalled}, nil
	}

	for _, target := range ws.manifest.ActiveEditors {
		if err := ws.injector.Remove(target, name); err != nil {
			return Result{}, fmt.Errorf("removing reference from %s: %w", target, err)
		}
	}
	if err := ws.store.Remove(name); err != nil {
		return Result{}, err
	}
	ws.manifest.RemoveEntry(name)

	m.logger.Info("removed skill", "skill", name)
	return Result{Name: name, Status: StatusRemoved, Entry: entry}, nil
}
