// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package store provides the local, content-addressed skill store.

Each installed skill is a single file:

	<root>/<skill-name>/SKILL.md

The root is canonicalized (absolute, symlinks resolved) when the [Store] is
opened, and every path the store touches is checked to stay below it. Skill
names are validated with [skillname.Validate] on every call.

Integrity is tracked by the lowercase hex SHA-256 digest of the file content
([Hash]). [Store.Install] returns an [Entry] with the digest; [Store.Verify]
recomputes it from disk and compares:

	s, err := store.New(".skillctl/store")
	if err != nil {
		return err
	}
	entry, err := s.Install("auth-helper", content, sourceURL)
	if err != nil {
		return err
	}
	ok, err := s.Verify("auth-helper", entry.Hash)

Install overwrites unconditionally. Deciding whether an overwrite is wanted is
left to the caller.

# Stability

Concurrent processes sharing a store root are not synchronized.
*/
package store
