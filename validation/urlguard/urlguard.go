// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package urlguard

import (
	"errors"
	"fmt"
	"net/netip"
	"net/url"
	"strings"

	"github.com/stacklok/skillctl/skillerr"
)

var (
	// ErrInvalidFormat is returned when the URL cannot be parsed or has no host.
	ErrInvalidFormat = errors.New("invalid URL format")
	// ErrSchemeNotAllowed is returned for schemes other than https (and http on localhost).
	ErrSchemeNotAllowed = errors.New("only HTTPS URLs are allowed (HTTP only permitted for localhost)")
	// ErrLocalhostBlocked is returned for https URLs pointing at a loopback host.
	ErrLocalhostBlocked = errors.New("localhost URLs are not allowed with HTTPS")
	// ErrPrivateAddressBlocked is returned for literal private, loopback or link-local IPs.
	ErrPrivateAddressBlocked = errors.New("private IP addresses are not allowed (SSRF protection)")
	// ErrMetadataBlocked is returned for cloud metadata endpoints.
	ErrMetadataBlocked = errors.New("access to cloud metadata services is blocked")
	// ErrHostNotAllowed is returned for hosts outside the allowlist.
	ErrHostNotAllowed = errors.New("only GitHub and GitLab URLs are allowed")
)

const (
	schemeHTTPS = "https"
	schemeHTTP  = "http"
)

// devHosts may be reached over plain http.
var devHosts = []string{"localhost", "127.0.0.1"}

var metadataHosts = []string{
	"169.254.169.254",          // AWS
	"metadata.google.internal", // GCP
	"169.254.169.253",          // Azure (old)
	"metadata.azure.com",       // Azure
}

var allowedHosts = []string{
	"github.com",
	"raw.githubusercontent.com",
	"gitlab.com",
	"localhost",
	"127.0.0.1",
}

var privatePrefixes = []netip.Prefix{
	netip.MustParsePrefix("10.0.0.0/8"),
	netip.MustParsePrefix("172.16.0.0/12"),
	netip.MustParsePrefix("192.168.0.0/16"),
	netip.MustParsePrefix("127.0.0.0/8"),
	netip.MustParsePrefix("::1/128"),
	netip.MustParsePrefix("fc00::/7"),
	netip.MustParsePrefix("fe80::/10"),
}

// AllowedHosts returns a copy of the host allowlist.
func AllowedHosts() []string {
	out := make([]string, len(allowedHosts))
	copy(out, allowedHosts)
	return out
}

// Validate parses rawURL and checks it against the SSRF rules described in the
// package documentation. The returned URL is safe to request at the time of the
// call; callers must validate again for every new request.
func Validate(rawURL string) (*url.URL, error) {
	parsed, err := validate(rawURL)
	if err != nil {
		return nil, skillerr.WithKind(fmt.Errorf("%w: %s", err, rawURL), skillerr.KindValidation)
	}
	return parsed, nil
}

func validate(rawURL string) (*url.URL, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, ErrInvalidFormat
	}

	if parsed.Scheme != schemeHTTPS && parsed.Scheme != schemeHTTP {
		return nil, ErrSchemeNotAllowed
	}

	host := strings.ToLower(parsed.Hostname())
	if host == "" {
		return nil, ErrInvalidFormat
	}

	if parsed.Scheme == schemeHTTP && !contains(devHosts, host) {
		return nil, ErrSchemeNotAllowed
	}

	if parsed.Scheme == schemeHTTPS && (host == "localhost" || strings.HasPrefix(host, "127.")) {
		return nil, ErrLocalhostBlocked
	}

	if IsPrivateHost(host) {
		return nil, ErrPrivateAddressBlocked
	}

	if contains(metadataHosts, host) {
		return nil, ErrMetadataBlocked
	}

	if !hostAllowed(host) {
		return nil, ErrHostNotAllowed
	}

	return parsed, nil
}

// IsPrivateHost reports whether host is a literal IP address inside one of the
// blocked private, loopback or link-local ranges. Hostnames are never private.
func IsPrivateHost(host string) bool {
	addr, err := netip.ParseAddr(strings.Trim(host, "[]"))
	if err != nil {
		return false
	}
	addr = addr.WithZone("").Unmap()

	for _, prefix := range privatePrefixes {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

func hostAllowed(host string) bool {
	for _, allowed := range allowedHosts {
		if host == allowed || strings.HasSuffix(host, "."+allowed) {
			return true
		}
	}
	return false
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
