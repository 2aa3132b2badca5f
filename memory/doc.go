// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package memory keeps short free-text notes ("memories") that skillctl
// renders into editor configuration as shared context.
//
// Memories live in memory.json inside the skill store. Every mutation is
// written back immediately.
package memory
