// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package inject writes and removes skill references in editor configuration.

An [Injector] is bound to a project root. [editors.RulesFile] targets get one
rule file per skill; [editors.SharedFile] targets get a snippet appended to a
single configuration file. Injection is idempotent: a snippet is only
appended when the file holds no marker for the skill yet.

# Formats

[FormatLegacy] writes the plain templates understood by existing projects,
for example:

	- Skill (auth-helper) -> Read file: .skillctl/store/auth-helper/SKILL.md

Removing a legacy snippet drops the marker line and, for the two-line
Antigravity template, the path line that follows it.

[FormatFenced] wraps each snippet between explicit comments:

	<!-- skillctl:begin auth-helper -->
	- Skill (auth-helper) -> Read file: .skillctl/store/auth-helper/SKILL.md
	<!-- skillctl:end auth-helper -->

[Injector.Remove] understands both formats regardless of the configured one.

# Memory

[Injector.InjectMemory] replaces the memory block of a target. In a shared
file the legacy block starts at [memory.Header] and runs to the end of the
file; the fenced block is bounded by its own comments and may sit anywhere.
*/
package inject
