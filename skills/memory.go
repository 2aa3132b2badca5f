// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package skills

import (
	"fmt"

	"github.com/stacklok/skillctl/editors"
	"github.com/stacklok/skillctl/memory"
)

// MemorySource labels memories recorded from the command line.
const MemorySource = "cli"

func (m *Manager) memories(ws *workspace) (*memory.Store, error) {
	return memory.Open(ws.store.Root(), memory.WithClock(m.now), memory.WithLogger(m.logger))
}

// Learn records a memory and refreshes the memory context of every active target.
func (m *Manager) Learn(content string, priority int) (memory.Entry, error) {
	ws, err := m.open()
	if err != nil {
		return memory.Entry{}, err
	}
	mem, err := m.memories(ws)
	if err != nil {
		return memory.Entry{}, err
	}

	entry, err := mem.Add(content, MemorySource, priority)
	if err != nil {
		return memory.Entry{}, err
	}
	if err := m.injectMemory(ws, mem, ws.manifest.ActiveEditors); err != nil {
		return entry, err
	}
	return entry, nil
}

// Forget deletes the memory with id and reports whether it existed.
func (m *Manager) Forget(id string) (bool, error) {
	ws, err := m.open()
	if err != nil {
		return false, err
	}
	mem, err := m.memories(ws)
	if err != nil {
		return false, err
	}

	removed, err := mem.Remove(id)
	if err != nil || !removed {
		return removed, err
	}
	return true, m.injectMemory(ws, mem, ws.manifest.ActiveEditors)
}

// Memories returns the stored memories in context order.
func (m *Manager) Memories() ([]memory.Entry, error) {
	ws, err := m.open()
	if err != nil {
		return nil, err
	}
	mem, err := m.memories(ws)
	if err != nil {
		return nil, err
	}
	return mem.List(), nil
}

// SearchMemories returns the memories containing query.
func (m *Manager) SearchMemories(query string) ([]memory.Entry, error) {
	ws, err := m.open()
	if err != nil {
		return nil, err
	}
	mem, err := m.memories(ws)
	if err != nil {
		return nil, err
	}
	return mem.Search(query), nil
}

// SyncMemory rewrites the memory context of every active target.
func (m *Manager) SyncMemory() error {
	ws, err := m.open()
	if err != nil {
		return err
	}
	return m.syncMemory(ws, ws.manifest.ActiveEditors)
}

func (m *Manager) syncMemory(ws *workspace, targets []editors.Target) error {
	mem, err := m.memories(ws)
	if err != nil {
		return err
	}
	return m.injectMemory(ws, mem, targets)
}

func (m *Manager) injectMemory(ws *workspace, mem *memory.Store, targets []editors.Target) error {
	block := mem.ContextString()
	for _, target := range targets {
		if err := ws.injector.InjectMemory(target, block); err != nil {
			return fmt.Errorf("injecting memory into %s: %w", target, err)
		}
	}
	return nil
}
