// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package skills runs the acquisition pipeline for a project.

A [Manager] loads the project manifest, resolves skills through a
[Resolver], stores them in the content-addressed store and injects
references into every active editor target. Each mutating operation saves
the manifest once, after the store and the editor files are updated.

Before overwriting an installed skill the Manager compares the hash of the
fresh content with the recorded one. Equal hashes skip the write. Different
hashes require confirmation from a [Confirmer] unless the Manager was
created with [WithAssumeYes]. A declined confirmation leaves the store, the
manifest and the editor files untouched.

# Stability

This package is Alpha stability. The API may change without notice.
*/
package skills
