// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package fetch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/stacklok/skillctl/skillerr"
	"github.com/stacklok/skillctl/validation/skillname"
)

const (
	webHost = "github.com"
	rawHost = "raw.githubusercontent.com"

	gitlabPrefix = "https://gitlab.com/"
	gitlabRaw    = "/-/raw"
)

// candidateTemplates are repository-relative skill locations in priority order.
var candidateTemplates = []string{
	"skills/%s/SKILL.md",
	"plugins/javascript-typescript/skills/%s/SKILL.md",
	"plugins/typescript/skills/%s/SKILL.md",
	"plugins/javascript/skills/%s/SKILL.md",
	".agent/skills/%s/SKILL.md",
	".cursor/skills/%s/SKILL.md",
	".windsurf/skills/%s/SKILL.md",
}

// DefaultBranches returns the branches tried when none are configured.
func DefaultBranches() []string {
	return []string{"main", "master"}
}

// Resolution is a successfully located skill file.
type Resolution struct {
	Content string
	// Path is the repository-relative path of the file.
	Path   string
	Branch string
	// URL is the raw URL the content was downloaded from.
	URL string
}

// Resolver locates a skill inside a repository.
type Resolver struct {
	downloader Downloader
	branches   []string
	logger     *slog.Logger
}

// NewResolver creates a Resolver that downloads through d.
func NewResolver(d Downloader, opts ...Option) *Resolver {
	o := newOptions(opts)
	return &Resolver{
		downloader: d,
		branches:   o.branches,
		logger:     o.logger,
	}
}

// Branches returns the branches r tries, in order.
func (r *Resolver) Branches() []string {
	return append([]string(nil), r.branches...)
}

// RawBaseURL maps a repository web URL onto the prefix its raw files are
// served under, so that prefix + "/" + branch + "/" + path is a raw file URL.
// GitHub repositories move to the raw-content host and GitLab repositories
// gain the /-/raw segment. Any trailing slash is stripped.
func RawBaseURL(repoURL string) string {
	base := strings.TrimRight(repoURL, "/")
	if strings.HasPrefix(base, gitlabPrefix) {
		if !strings.HasSuffix(base, gitlabRaw) {
			base += gitlabRaw
		}
		return base
	}
	return strings.Replace(base, webHost, rawHost, 1)
}

// CandidatePaths returns the conventional repository-relative locations of
// skill, in the order they are tried.
func CandidatePaths(skill string) []string {
	paths := make([]string, 0, len(candidateTemplates))
	for _, tmpl := range candidateTemplates {
		paths = append(paths, fmt.Sprintf(tmpl, skill))
	}
	return paths
}

type candidate struct {
	branch string
	path   string
	url    string
}

// candidates lists the URLs to try. All candidates of a branch come before
// any candidate of the next branch. An explicit path yields exactly one
// candidate on the first branch.
func (r *Resolver) candidates(repoURL, skill, explicitPath string) []candidate {
	base := RawBaseURL(repoURL)

	if explicitPath != "" {
		p := strings.TrimLeft(explicitPath, "/")
		return []candidate{{branch: r.branches[0], path: p, url: base + "/" + r.branches[0] + "/" + p}}
	}

	paths := CandidatePaths(skill)
	out := make([]candidate, 0, len(paths)*len(r.branches))
	for _, branch := range r.branches {
		for _, p := range paths {
			out = append(out, candidate{branch: branch, path: p, url: base + "/" + branch + "/" + p})
		}
	}
	return out
}

// Resolve tries every candidate location until one downloads.
func (r *Resolver) Resolve(ctx context.Context, repoURL, skill, explicitPath string) (*Resolution, error) {
	if err := skillname.Validate(skill); err != nil {
		return nil, err
	}
	if len(r.branches) == 0 {
		return nil, skillerr.WithKind(ErrNoBranches, skillerr.KindValidation)
	}

	var (
		lastURL string
		lastErr error
	)
	for _, c := range r.candidates(repoURL, skill, explicitPath) {
		if err := ctx.Err(); err != nil {
			return nil, skillerr.WithKind(err, skillerr.KindCancelled)
		}

		text, err := r.downloader.Download(ctx, c.url)
		if err == nil {
			r.logger.Debug("resolved skill", "skill", skill, "url", c.url)
			return &Resolution{Content: text, Path: c.path, Branch: c.branch, URL: c.url}, nil
		}

		switch skillerr.KindOf(err) {
		case skillerr.KindValidation, skillerr.KindCancelled:
			return nil, err
		}

		r.logger.Debug("candidate failed", "skill", skill, "url", c.url, "error", err)
		lastURL, lastErr = c.url, err
	}

	if lastErr == nil {
		lastErr = errors.New("no candidates")
	}
	return nil, skillerr.WithKind(
		&SkillNotFoundError{Skill: skill, LastURL: lastURL, Err: lastErr}, skillerr.KindNotFound)
}
