// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package urlguard validates remote URLs before any network access is made.

Skills are downloaded from user-supplied repository URLs, which makes every
download a potential server-side request forgery vector. Validate applies the
following checks in order and stops at the first violation:

 1. The URL must parse and carry a host ([ErrInvalidFormat]).
 2. The scheme must be https. Plain http is accepted only for the hosts
    "localhost" and "127.0.0.1" ([ErrSchemeNotAllowed]).
 3. https URLs must not target localhost, 127.0.0.1 or any 127.* host
    ([ErrLocalhostBlocked]).
 4. Literal IP hosts in 10.0.0.0/8, 172.16.0.0/12, 192.168.0.0/16,
    127.0.0.0/8, ::1, fc00::/7 and fe80::/10 are rejected
    ([ErrPrivateAddressBlocked]). IPv4-mapped IPv6 addresses are unmapped first.
 5. Well-known cloud metadata endpoints are rejected ([ErrMetadataBlocked]).
 6. The host must equal, or be a subdomain of, an allowlisted host
    ([ErrHostNotAllowed]).

Because step 4 runs after step 2, the literal loopback address is rejected
even over http; "localhost" is the only working development host.

# Limitations

Validation happens on the URL string before DNS resolution. A host that
passes the allowlist but later resolves to a private address (DNS rebinding)
is not detected here.
*/
package urlguard
