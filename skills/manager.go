// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package skills

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/stacklok/skillctl/config"
	"github.com/stacklok/skillctl/editors"
	"github.com/stacklok/skillctl/fetch"
	"github.com/stacklok/skillctl/fsutil"
	"github.com/stacklok/skillctl/inject"
	"github.com/stacklok/skillctl/skillerr"
	"github.com/stacklok/skillctl/store"
)

//go:generate mockgen -copyright_file=../.github/license-header.txt -source=manager.go -destination=mocks/mock_skills.go -package=mocks Resolver,Confirmer

// Resolver finds and downloads a skill from a repository.
type Resolver interface {
	Resolve(ctx context.Context, repoURL, skill, explicitPath string) (*fetch.Resolution, error)
}

// Confirmer asks the user to approve an action.
type Confirmer interface {
	Confirm(ctx context.Context, title, description string) (bool, error)
}

var _ Resolver = (*fetch.Resolver)(nil)

var (
	// ErrConfirmationRequired is returned when an overwrite needs approval
	// and no Confirmer is available.
	ErrConfirmationRequired = errors.New("overwriting an installed skill requires confirmation; pass --yes to accept")

	// ErrNoResolver is returned by Add and Update when the Manager has no resolver or downloader.
	ErrNoResolver = errors.New("no skill source configured")
)

// Manager runs skill operations for one project directory.
type Manager struct {
	root         string
	manifestPath string
	resolver     Resolver
	downloader   fetch.Downloader
	confirmer    Confirmer
	assumeYes    bool
	format       inject.Format
	now          func() time.Time
	logger       *slog.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithResolver sets the resolver used by Add.
func WithResolver(r Resolver) Option {
	return func(m *Manager) {
		m.resolver = r
	}
}

// WithDownloader sets the downloader used to fetch recorded URLs.
func WithDownloader(d fetch.Downloader) Option {
	return func(m *Manager) {
		m.downloader = d
	}
}

// WithConfirmer sets the overwrite prompt.
func WithConfirmer(c Confirmer) Option {
	return func(m *Manager) {
		m.confirmer = c
	}
}

// WithAssumeYes approves every overwrite without asking.
func WithAssumeYes(yes bool) Option {
	return func(m *Manager) {
		m.assumeYes = yes
	}
}

// WithInjectionFormat selects the shared-file injection format.
func WithInjectionFormat(f inject.Format) Option {
	return func(m *Manager) {
		m.format = f
	}
}

// WithClock overrides the time source of the store and the memory file.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// New creates a Manager for the project at root. An empty manifestPath
// selects the default manifest file inside root.
func New(root, manifestPath string, opts ...Option) (*Manager, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, skillerr.WithKind(fmt.Errorf("resolving project directory %s: %w", root, err), skillerr.KindStorage)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}
	if manifestPath == "" {
		manifestPath = filepath.Join(abs, config.DefaultManifestFile)
	}

	m := &Manager{
		root:         abs,
		manifestPath: manifestPath,
		format:       inject.FormatLegacy,
		now:          time.Now,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Root returns the absolute project directory.
func (m *Manager) Root() string {
	return m.root
}

// ManifestPath returns the manifest location.
func (m *Manager) ManifestPath() string {
	return m.manifestPath
}

// Init writes a new manifest for targets. With no targets the editors
// detected in the project directory are used.
func (m *Manager) Init(targets []editors.Target) (*config.Manifest, error) {
	if fsutil.Exists(m.manifestPath) {
		return nil, skillerr.WithKind(fmt.Errorf("%w: %s", config.ErrManifestExists, m.manifestPath), skillerr.KindValidation)
	}
	if len(targets) == 0 {
		targets = editors.Detect(m.root)
		m.logger.Debug("detected editors", "targets", editors.Names(targets))
	}

	mf := config.NewManifest(targets)
	if err := mf.Save(m.manifestPath); err != nil {
		return nil, err
	}
	m.logger.Info("initialized project", "path", m.manifestPath, "targets", editors.Names(targets))
	return mf, nil
}

// workspace is the state an operation loads from disk.
type workspace struct {
	manifest *config.Manifest
	store    *store.Store
	injector *inject.Injector
}

func (m *Manager) open() (*workspace, error) {
	mf, err := config.LoadManifest(m.manifestPath)
	if err != nil {
		return nil, err
	}

	st, err := store.New(m.storeRoot(mf), store.WithClock(m.now), store.WithLogger(m.logger))
	if err != nil {
		return nil, err
	}

	return &workspace{
		manifest: mf,
		store:    st,
		injector: inject.New(m.root, inject.WithFormat(m.format), inject.WithLogger(m.logger)),
	}, nil
}

func (m *Manager) storeRoot(mf *config.Manifest) string {
	p := mf.StorePath
	if p == "" {
		p = config.DefaultStorePath
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(m.root, filepath.FromSlash(p))
}

// reference returns the path written into editor files for a stored skill:
// relative to the project root with forward slashes when inside it.
func (m *Manager) reference(path string) string {
	rel, err := filepath.Rel(m.root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return filepath.ToSlash(rel)
}

func (m *Manager) injectAll(ws *workspace, name string, entry config.SkillEntry) error {
	for _, target := range ws.manifest.ActiveEditors {
		if err := ws.injector.Inject(target, name, entry.LocalPath); err != nil {
			return fmt.Errorf("injecting %s into %s: %w", name, target, err)
		}
	}
	return nil
}

func (m *Manager) confirm(ctx context.Context, title, description string) (bool, error) {
	if m.assumeYes {
		return true, nil
	}
	if m.confirmer == nil {
		return false, skillerr.WithKind(ErrConfirmationRequired, skillerr.KindIntegrity)
	}
	ok, err := m.confirmer.Confirm(ctx, title, description)
	if err != nil {
		return false, fmt.Errorf("confirmation prompt: %w", err)
	}
	return ok, nil
}

// write stores content for name, rewriting the local path relative to the
// project and keeping the repository fields of previous.
func (m *Manager) write(ws *workspace, name, content, sourceURL string, previous config.SkillEntry) (config.SkillEntry, error) {
	installed, err := ws.store.Install(name, content, sourceURL)
	if err != nil {
		return config.SkillEntry{}, err
	}
	entry := *installed
	entry.LocalPath = m.reference(installed.LocalPath)
	entry.Repository = previous.Repository
	entry.Path = previous.Path
	entry.Branch = previous.Branch
	return entry, nil
}
