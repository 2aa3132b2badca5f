// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package content validates downloaded SKILL.md text before it is stored.

Validate rejects content that is larger than [MaxSize] bytes, that contains a
null byte, or whose YAML front matter carries a tag used for language-specific
object deserialization or file inclusion. Only the front matter is scanned; the
markdown body is inert instructional text.

ParseFrontMatter decodes the front matter into [Metadata] for display purposes.
It never runs on content that has not passed Validate.
*/
package content
