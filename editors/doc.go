// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package editors defines the closed set of AI editor targets skillctl writes
skill references into.

Each [Target] resolves to a [Definition] from a fixed table: the shared
configuration file, the rules directory (for targets that take one file per
skill), the skills directory, the configuration directory used for detection,
and the injection [Strategy].

Paths in the table are relative to the project root. Targets serialize to
JSON by their display name ("Cursor", "GitHub Copilot", ...) and [ParseTarget]
accepts those names as well as short CLI aliases such as "copilot" or
"claude".
*/
package editors
