// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package fetch_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/stacklok/skillctl/fetch"
	"github.com/stacklok/skillctl/fetch/mocks"
	"github.com/stacklok/skillctl/skillerr"
	"github.com/stacklok/skillctl/validation/skillname"
	"github.com/stacklok/skillctl/validation/urlguard"
)

func notFound(url string) error {
	return skillerr.WithKind(fetch.NewHTTPError(http.StatusNotFound, url, "404 Not Found"), skillerr.KindNetwork)
}

func TestRawBaseURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		repo string
		want string
	}{
		{"github web URL", "https://github.com/acme/skills", "https://raw.githubusercontent.com/acme/skills"},
		{"trailing slash", "https://github.com/acme/skills/", "https://raw.githubusercontent.com/acme/skills"},
		{"already raw", "https://raw.githubusercontent.com/acme/skills", "https://raw.githubusercontent.com/acme/skills"},
		{"gitlab web URL", "https://gitlab.com/acme/skills", "https://gitlab.com/acme/skills/-/raw"},
		{"gitlab subgroup", "https://gitlab.com/acme/tools/skills/", "https://gitlab.com/acme/tools/skills/-/raw"},
		{"gitlab already raw", "https://gitlab.com/acme/skills/-/raw", "https://gitlab.com/acme/skills/-/raw"},
		{"other host untouched", "http://localhost:8080/acme/skills", "http://localhost:8080/acme/skills"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, fetch.RawBaseURL(tt.repo))
		})
	}
}

func TestCandidatePaths(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{
		"skills/auth-helper/SKILL.md",
		"plugins/javascript-typescript/skills/auth-helper/SKILL.md",
		"plugins/typescript/skills/auth-helper/SKILL.md",
		"plugins/javascript/skills/auth-helper/SKILL.md",
		".agent/skills/auth-helper/SKILL.md",
		".cursor/skills/auth-helper/SKILL.md",
		".windsurf/skills/auth-helper/SKILL.md",
	}, fetch.CandidatePaths("auth-helper"))
}

func TestResolver_Resolve_CandidateOrder(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	downloader := mocks.NewMockDownloader(ctrl)

	base := "https://raw.githubusercontent.com/acme/skills/main/"
	paths := fetch.CandidatePaths("auth-helper")

	var calls []any
	for _, p := range paths[:len(paths)-1] {
		u := base + p
		calls = append(calls, downloader.EXPECT().Download(gomock.Any(), u).Return("", notFound(u)))
	}
	last := base + paths[len(paths)-1]
	calls = append(calls, downloader.EXPECT().Download(gomock.Any(), last).Return("# found", nil))
	gomock.InOrder(calls...)

	res, err := fetch.NewResolver(downloader).Resolve(context.Background(), "https://github.com/acme/skills", "auth-helper", "")
	require.NoError(t, err)
	assert.Equal(t, "# found", res.Content)
	assert.Equal(t, ".windsurf/skills/auth-helper/SKILL.md", res.Path)
	assert.Equal(t, "main", res.Branch)
	assert.Equal(t, last, res.URL)
}

func TestResolver_Resolve_StopsAtFirstSuccess(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	downloader := mocks.NewMockDownloader(ctrl)
	downloader.EXPECT().
		Download(gomock.Any(), "https://raw.githubusercontent.com/acme/skills/main/skills/auth-helper/SKILL.md").
		Return("body", nil).
		Times(1)

	res, err := fetch.NewResolver(downloader).Resolve(context.Background(), "https://github.com/acme/skills", "auth-helper", "")
	require.NoError(t, err)
	assert.Equal(t, "skills/auth-helper/SKILL.md", res.Path)
}

func TestResolver_Resolve_GitLab(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	downloader := mocks.NewMockDownloader(ctrl)
	downloader.EXPECT().
		Download(gomock.Any(), "https://gitlab.com/acme/skills/-/raw/main/skills/auth-helper/SKILL.md").
		Return("body", nil)

	res, err := fetch.NewResolver(downloader).Resolve(context.Background(), "https://gitlab.com/acme/skills", "auth-helper", "")
	require.NoError(t, err)
	assert.Equal(t, "https://gitlab.com/acme/skills/-/raw/main/skills/auth-helper/SKILL.md", res.URL)
}

func TestResolver_Resolve_BranchFallback(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	downloader := mocks.NewMockDownloader(ctrl)

	var calls []any
	for _, p := range fetch.CandidatePaths("x") {
		u := "https://raw.githubusercontent.com/acme/skills/main/" + p
		calls = append(calls, downloader.EXPECT().Download(gomock.Any(), u).Return("", notFound(u)))
	}
	master := "https://raw.githubusercontent.com/acme/skills/master/skills/x/SKILL.md"
	calls = append(calls, downloader.EXPECT().Download(gomock.Any(), master).Return("legacy", nil))
	gomock.InOrder(calls...)

	res, err := fetch.NewResolver(downloader).Resolve(context.Background(), "https://github.com/acme/skills", "x", "")
	require.NoError(t, err)
	assert.Equal(t, "master", res.Branch)
	assert.Equal(t, master, res.URL)
}

func TestResolver_Resolve_ExplicitPath(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	downloader := mocks.NewMockDownloader(ctrl)
	u := "https://raw.githubusercontent.com/acme/skills/dev/docs/SKILL.md"
	downloader.EXPECT().Download(gomock.Any(), u).Return("", notFound(u)).Times(1)

	r := fetch.NewResolver(downloader, fetch.WithBranches("dev"))
	_, err := r.Resolve(context.Background(), "https://github.com/acme/skills/", "x", "docs/SKILL.md")

	var notFoundErr *fetch.SkillNotFoundError
	require.ErrorAs(t, err, &notFoundErr)
	assert.Equal(t, u, notFoundErr.LastURL)
	assert.Equal(t, "x", notFoundErr.Skill)
	assert.Equal(t, skillerr.KindNotFound, skillerr.KindOf(err))

	var httpErr *fetch.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.StatusCode)
}

func TestResolver_Resolve_ValidationStops(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	downloader := mocks.NewMockDownloader(ctrl)
	blocked := skillerr.WithKind(fmt.Errorf("%w: https://evil.example.com", urlguard.ErrHostNotAllowed), skillerr.KindValidation)
	downloader.EXPECT().Download(gomock.Any(), gomock.Any()).Return("", blocked).Times(1)

	_, err := fetch.NewResolver(downloader).Resolve(context.Background(), "https://evil.example.com/acme", "x", "")
	require.ErrorIs(t, err, urlguard.ErrHostNotAllowed)
	assert.Equal(t, skillerr.KindValidation, skillerr.KindOf(err))
}

func TestResolver_Resolve_InvalidName(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	downloader := mocks.NewMockDownloader(ctrl)

	_, err := fetch.NewResolver(downloader).Resolve(context.Background(), "https://github.com/acme/skills", "../etc", "")
	require.ErrorIs(t, err, skillname.ErrTraversal)
}

func TestResolver_Resolve_Cancelled(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	downloader := mocks.NewMockDownloader(ctrl)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := fetch.NewResolver(downloader).Resolve(ctx, "https://github.com/acme/skills", "x", "")
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, skillerr.KindCancelled, skillerr.KindOf(err))
}

func TestResolver_Resolve_AgainstServer(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/acme/skills/main/.agent/skills/auth-helper/SKILL.md", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/markdown")
		_, _ = w.Write([]byte("---\nname: auth-helper\n---\nbody\n"))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client, err := fetch.NewClient()
	require.NoError(t, err)

	res, err := fetch.NewResolver(client).Resolve(context.Background(), localURL(server)+"/acme/skills", "auth-helper", "")
	require.NoError(t, err)
	assert.Equal(t, ".agent/skills/auth-helper/SKILL.md", res.Path)
	assert.Contains(t, res.Content, "body")
}
