// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package urlguard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stacklok/skillctl/skillerr"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		// Valid cases
		{"github repo", "https://github.com/user/repo", nil},
		{"raw content", "https://raw.githubusercontent.com/user/repo/main/file", nil},
		{"gitlab", "https://gitlab.com/group/project", nil},
		{"github subdomain", "https://api.github.com/repos/user/repo", nil},
		{"uppercase host", "https://GitHub.com/user/repo", nil},
		{"explicit port", "https://github.com:443/user/repo", nil},
		{"localhost over http", "http://localhost:8080/skills/SKILL.md", nil},

		// Format
		{"missing scheme separator", "://github.com", ErrInvalidFormat},
		{"no host", "https://", ErrInvalidFormat},

		// Scheme
		{"plain http", "http://github.com/user/repo", ErrSchemeNotAllowed},
		{"ftp", "ftp://github.com/user/repo", ErrSchemeNotAllowed},
		{"file", "file:///etc/passwd", ErrSchemeNotAllowed},
		{"no scheme", "github.com/user/repo", ErrSchemeNotAllowed},

		// Localhost over https
		{"https localhost", "https://localhost/test", ErrLocalhostBlocked},
		{"https loopback", "https://127.0.0.1/test", ErrLocalhostBlocked},
		{"https loopback range", "https://127.8.9.10/test", ErrLocalhostBlocked},

		// Private addresses
		{"loopback over http", "http://127.0.0.1:8080/test", ErrPrivateAddressBlocked},
		{"rfc1918 10", "https://10.1.2.3/test", ErrPrivateAddressBlocked},
		{"rfc1918 172.16", "https://172.16.0.1/test", ErrPrivateAddressBlocked},
		{"rfc1918 172.31", "https://172.31.255.255/test", ErrPrivateAddressBlocked},
		{"rfc1918 192.168", "https://192.168.1.1/test", ErrPrivateAddressBlocked},
		{"ipv6 loopback", "https://[::1]/test", ErrPrivateAddressBlocked},
		{"ipv6 unique local", "https://[fd12:3456::1]/test", ErrPrivateAddressBlocked},
		{"ipv6 link local", "https://[fe80::1]/test", ErrPrivateAddressBlocked},
		{"ipv4 mapped ipv6", "https://[::ffff:10.0.0.1]/test", ErrPrivateAddressBlocked},

		// Metadata
		{"aws metadata", "https://169.254.169.254/latest/meta-data/", ErrMetadataBlocked},
		{"azure old metadata", "https://169.254.169.253/", ErrMetadataBlocked},
		{"gcp metadata", "https://metadata.google.internal/computeMetadata/v1/", ErrMetadataBlocked},
		{"azure metadata", "https://metadata.azure.com/", ErrMetadataBlocked},

		// Allowlist
		{"public ip", "https://8.8.8.8/test", ErrHostNotAllowed},
		{"outside 172.16/12", "https://172.32.0.1/test", ErrHostNotAllowed},
		{"other host", "https://evil.com/skill", ErrHostNotAllowed},
		{"suffix without dot", "https://evilgithub.com/skill", ErrHostNotAllowed},
		{"allowlisted as subdomain of attacker", "https://github.com.evil.com/skill", ErrHostNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			parsed, err := Validate(tt.input)
			if tt.wantErr == nil {
				require.NoError(t, err)
				require.NotNil(t, parsed)
				return
			}

			require.Error(t, err)
			assert.Nil(t, parsed)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, skillerr.KindValidation, skillerr.KindOf(err))
			assert.Contains(t, err.Error(), tt.input)
		})
	}
}

func TestIsPrivateHost(t *testing.T) {
	t.Parallel()

	tests := []struct {
		host string
		want bool
	}{
		{"10.0.0.1", true},
		{"172.16.0.1", true},
		{"192.168.1.1", true},
		{"127.0.0.1", true},
		{"::1", true},
		{"[::1]", true},
		{"fc00::1", true},
		{"fe80::1%eth0", true},
		{"8.8.8.8", false},
		{"172.15.255.255", false},
		{"2001:4860:4860::8888", false},
		{"github.com", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, IsPrivateHost(tt.host))
		})
	}
}

func TestAllowedHosts_ReturnsCopy(t *testing.T) {
	t.Parallel()

	hosts := AllowedHosts()
	require.Contains(t, hosts, "github.com")
	hosts[0] = "evil.com"
	assert.NotContains(t, AllowedHosts(), "evil.com")
}
