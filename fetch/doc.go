// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package fetch downloads skill files from remote repositories.

[Client] is the secure fetcher. Every request URL, including each redirect
hop, passes [urlguard.Validate] before the request is sent. Responses must
carry a success status, a text-like Content-Type (when one is present) and a
Content-Length within [content.MaxSize]; the body is read with a hard limit
and then checked by [content.Validate].

[Resolver] turns a repository URL and a skill name into the raw URL of the
skill file by probing a fixed list of conventional locations:

	r := fetch.NewResolver(client)
	res, err := r.Resolve(ctx, "https://github.com/acme/skills", "auth-helper", "")
	if err != nil {
		return err
	}
	fmt.Println(res.URL, res.Path)

Network errors move resolution on to the next candidate. Validation errors
stop it immediately. When every candidate fails the error is a
[*SkillNotFoundError] holding the last attempted URL.
*/
package fetch
