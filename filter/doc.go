// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package filter evaluates CEL expressions against installed skills.

Expressions see one [Record] at a time through these variables:

	name          string
	url           string
	hash          string
	local_path    string
	last_updated  timestamp
	verified      bool
	repository    string
	branch        string

Examples:

	name.startsWith("auth")
	!verified
	url.contains("acme") && last_updated > timestamp("2026-01-01T00:00:00Z")

Compilation enforces a maximum expression length and programs run under a
cost limit. An expression must evaluate to a bool.
*/
package filter
