// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package config holds the two configuration layers of skillctl.

# Manifest

[Manifest] is the project file (skills.json) mapping skill names to their
[SkillEntry] together with the active editors and the store path:

	{
	  "active_editors": ["Cursor", "GitHub Copilot"],
	  "store_path": ".skillctl/store",
	  "skills": {
	    "auth-helper": {
	      "url": "https://raw.githubusercontent.com/acme/skills/main/skills/auth-helper/SKILL.md",
	      "local_path": ".skillctl/store/auth-helper/SKILL.md",
	      "hash": "…",
	      "last_updated": "2026-03-01T12:00:00Z"
	    }
	  }
	}

[LoadManifest] accepts comments and trailing commas, validates the document
against an embedded JSON Schema and only then decodes it. [Manifest.Save]
writes the file atomically.

# Settings

[Settings] are process options resolved with viper. Precedence, highest
first: command-line flags, SKILLCTL_* environment variables, the user
settings file ([SettingsFile], under the XDG config home) and defaults.
*/
package config
