// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package skills

import (
	"github.com/stacklok/skillctl/config"
)

// Status is the outcome of an operation for one skill.
type Status int

const (
	// StatusInstalled means the skill was written for the first time.
	StatusInstalled Status = iota
	// StatusUpdated means different content replaced an installed skill.
	StatusUpdated
	// StatusUnchanged means the fetched content matched the recorded hash.
	StatusUnchanged
	// StatusDeclined means an overwrite was not confirmed.
	StatusDeclined
	// StatusIntact means the stored file still matches its recorded hash.
	StatusIntact
	// StatusRestored means a damaged or missing file was downloaded again.
	StatusRestored
	// StatusRemoved means the skill was uninstalled.
	StatusRemoved
	// StatusNotInstalled means the manifest has no such skill.
	StatusNotInstalled
	// StatusFailed means the operation failed for this skill; see Result.Err.
	StatusFailed
)

var statusNames = [...]string{
	StatusInstalled:    "installed",
	StatusUpdated:      "updated",
	StatusUnchanged:    "unchanged",
	StatusDeclined:     "declined",
	StatusIntact:       "intact",
	StatusRestored:     "restored",
	StatusRemoved:      "removed",
	StatusNotInstalled: "not installed",
	StatusFailed:       "failed",
}

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return "unknown"
	}
	return statusNames[s]
}

// Changed reports whether the status implies the manifest entry changed.
func (s Status) Changed() bool {
	switch s {
	case StatusInstalled, StatusUpdated, StatusRestored, StatusRemoved:
		return true
	default:
		return false
	}
}

// Result reports what happened to one skill.
type Result struct {
	Name   string
	Status Status
	Entry  config.SkillEntry
	Err    error

	// Description comes from the skill front matter, when present.
	Description string
}
