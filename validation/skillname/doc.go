// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package skillname provides validation for skill names.

A skill name becomes a directory under the store root and a file name under
editor rules directories, so it must never be able to address anything
outside of those locations.

A valid name:
  - is non-empty after trimming whitespace
  - does not contain "..", "/" or "\"
  - does not start with "."
  - is not a reserved Windows device name (CON, PRN, AUX, NUL, COM1-9, LPT1-9),
    compared case-insensitively
  - is at most 100 bytes long
  - contains only letters, digits, "-" and "_"

Every mutating entry point validates names before touching the filesystem:

	if err := skillname.Validate(skill); err != nil {
		return err
	}
*/
package skillname
