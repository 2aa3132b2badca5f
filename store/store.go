// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/opencontainers/go-digest"

	"github.com/stacklok/skillctl/fsutil"
	"github.com/stacklok/skillctl/skillerr"
	"github.com/stacklok/skillctl/validation/skillname"
)

// FileName is the name of the skill file inside its directory.
const FileName = "SKILL.md"

// ErrOutsideStore is returned when a resolved path would leave the store root.
var ErrOutsideStore = errors.New("path escapes the store root")

// Entry describes an installed skill.
type Entry struct {
	// URL is the raw URL the content was downloaded from.
	URL         string    `json:"url"`
	LocalPath   string    `json:"local_path"`
	Hash        string    `json:"hash"`
	LastUpdated time.Time `json:"last_updated"`

	Repository string `json:"repository,omitempty"`
	Path       string `json:"path,omitempty"`
	Branch     string `json:"branch,omitempty"`
}

// Store is a skill store rooted at a canonical directory.
type Store struct {
	root   string
	now    func() time.Time
	logger *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used for Entry.LastUpdated.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// New opens the store at root, creating the directory if needed.
func New(root string, opts ...Option) (*Store, error) {
	if err := os.MkdirAll(root, 0o750); err != nil {
		return nil, storageError(fmt.Errorf("creating store root %s: %w", root, err))
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, storageError(fmt.Errorf("resolving store root %s: %w", root, err))
	}
	canonical, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, storageError(fmt.Errorf("resolving store root %s: %w", root, err))
	}

	s := &Store{
		root:   canonical,
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Root returns the canonical store root.
func (s *Store) Root() string {
	return s.root
}

// Hash returns the lowercase hex SHA-256 digest of content.
func Hash(content string) string {
	return digest.FromString(content).Encoded()
}

// Path returns the location of the skill file for name. Like its directory,
// the file must not resolve outside the root.
func (s *Store) Path(name string) (string, error) {
	dir, err := s.dir(name)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, FileName)
	if err := s.checkResolved(path); err != nil {
		return "", err
	}
	return path, nil
}

// dir returns the skill directory for name after checking that it, and
// whatever it resolves to on disk, stays below the root.
func (s *Store) dir(name string) (string, error) {
	if err := skillname.Validate(name); err != nil {
		return "", err
	}

	dir := filepath.Join(s.root, name)
	if !s.contains(dir) {
		return "", storageError(fmt.Errorf("%w: %s", ErrOutsideStore, dir))
	}

	if err := s.checkResolved(dir); err != nil {
		return "", err
	}
	return dir, nil
}

// checkResolved fails when p exists and resolves outside the root.
func (s *Store) checkResolved(p string) error {
	resolved, err := filepath.EvalSymlinks(p)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil
	case err != nil:
		return storageError(fmt.Errorf("resolving %s: %w", p, err))
	case !s.contains(resolved):
		return storageError(fmt.Errorf("%w: %s resolves to %s", ErrOutsideStore, p, resolved))
	}
	return nil
}

func (s *Store) contains(p string) bool {
	rel, err := filepath.Rel(s.root, p)
	if err != nil {
		return false
	}
	return rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) && !filepath.IsAbs(rel)
}

// Install writes content for name and returns the resulting entry.
func (s *Store) Install(name, content, sourceURL string) (*Entry, error) {
	dir, err := s.dir(name)
	if err != nil {
		return nil, err
	}

	path := filepath.Join(dir, FileName)
	if err := fsutil.WriteFileAtomic(path, []byte(content), 0o644); err != nil {
		return nil, storageError(fmt.Errorf("writing %s: %w", path, err))
	}

	entry := &Entry{
		URL:         sourceURL,
		LocalPath:   path,
		Hash:        Hash(content),
		LastUpdated: s.now().UTC().Truncate(time.Second),
	}
	s.logger.Debug("installed skill", "skill", name, "path", path, "hash", entry.Hash)
	return entry, nil
}

// Verify reports whether the stored file for name hashes to expectedHash.
// A missing file verifies as false without error.
func (s *Store) Verify(name, expectedHash string) (bool, error) {
	path, err := s.Path(name)
	if err != nil {
		return false, err
	}

	data, ok, err := fsutil.ReadFileIfExists(path)
	if err != nil {
		return false, storageError(fmt.Errorf("reading %s: %w", path, err))
	}
	if !ok {
		return false, nil
	}

	return Hash(string(data)) == strings.ToLower(expectedHash), nil
}

// Remove deletes the skill directory for name. Removing a missing skill is a no-op.
func (s *Store) Remove(name string) error {
	dir, err := s.dir(name)
	if err != nil {
		return err
	}
	if err := os.RemoveAll(dir); err != nil {
		return storageError(fmt.Errorf("removing %s: %w", dir, err))
	}
	s.logger.Debug("removed skill", "skill", name, "path", dir)
	return nil
}

// List returns the names of the valid skill directories under the root, sorted.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, storageError(fmt.Errorf("listing store %s: %w", s.root, err))
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() || !skillname.IsValid(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	slices.Sort(names)
	return names, nil
}

func storageError(err error) error {
	return skillerr.WithKind(err, skillerr.KindStorage)
}
