// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package memory

import (
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/stacklok/skillctl/fsutil"
	"github.com/stacklok/skillctl/skillerr"
)

// FileName is the name of the memory file inside the store root.
const FileName = "memory.json"

// idLength is the number of UUID characters kept for an id.
const idLength = 8

// ErrEmptyContent is returned when a memory has no text.
var ErrEmptyContent = errors.New("memory content cannot be empty")

// Entry is a single memory.
type Entry struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Source    string    `json:"source"`
	Priority  int       `json:"priority,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type document struct {
	Memories []Entry `json:"memories"`
}

// Store is the memory file of a project.
type Store struct {
	path     string
	memories []Entry
	now      func() time.Time
	newID    func() string
	logger   *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source for new entries.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithIDGenerator overrides id generation.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) {
		s.newID = gen
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

func shortID() string {
	return uuid.New().String()[:idLength]
}

// Open loads the memory file in dir. A missing file yields an empty store.
func Open(dir string, opts ...Option) (*Store, error) {
	s := &Store{
		path:   filepath.Join(dir, FileName),
		now:    time.Now,
		newID:  shortID,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	data, ok, err := fsutil.ReadFileIfExists(s.path)
	if err != nil {
		return nil, skillerr.WithKind(fmt.Errorf("reading memory file %s: %w", s.path, err), skillerr.KindStorage)
	}
	if !ok {
		return s, nil
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, skillerr.WithKind(fmt.Errorf("parsing memory file %s: %w", s.path, err), skillerr.KindStorage)
	}
	s.memories = doc.Memories
	return s, nil
}

// Path returns the location of the memory file.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) save() error {
	memories := s.memories
	if memories == nil {
		memories = []Entry{}
	}
	data, err := json.MarshalIndent(document{Memories: memories}, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding memories: %w", err)
	}
	if err := fsutil.WriteFileAtomic(s.path, append(data, '\n'), 0o644); err != nil {
		return skillerr.WithKind(fmt.Errorf("writing memory file %s: %w", s.path, err), skillerr.KindStorage)
	}
	return nil
}

// Add records a memory and returns it.
func (s *Store) Add(content, source string, priority int) (Entry, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return Entry{}, skillerr.WithKind(ErrEmptyContent, skillerr.KindValidation)
	}

	id := s.newID()
	for s.has(id) {
		id = s.newID()
	}

	entry := Entry{
		ID:        id,
		Content:   content,
		Source:    source,
		Priority:  priority,
		Timestamp: s.now().UTC().Truncate(time.Second),
	}
	s.memories = append(s.memories, entry)

	if err := s.save(); err != nil {
		s.memories = s.memories[:len(s.memories)-1]
		return Entry{}, err
	}
	s.logger.Debug("added memory", "id", id, "source", source)
	return entry, nil
}

func (s *Store) has(id string) bool {
	return slices.ContainsFunc(s.memories, func(e Entry) bool { return e.ID == id })
}

// Remove deletes the memory with id and reports whether it existed.
func (s *Store) Remove(id string) (bool, error) {
	idx := slices.IndexFunc(s.memories, func(e Entry) bool { return e.ID == id })
	if idx < 0 {
		return false, nil
	}

	previous := s.memories
	s.memories = slices.Delete(slices.Clone(s.memories), idx, idx+1)
	if err := s.save(); err != nil {
		s.memories = previous
		return false, err
	}
	return true, nil
}

// List returns the memories ordered by priority, highest first, then by age.
func (s *Store) List() []Entry {
	out := slices.Clone(s.memories)
	slices.SortStableFunc(out, func(a, b Entry) int {
		if c := cmp.Compare(b.Priority, a.Priority); c != 0 {
			return c
		}
		return a.Timestamp.Compare(b.Timestamp)
	})
	return out
}

// Search returns the memories whose content contains query, case-insensitively.
func (s *Store) Search(query string) []Entry {
	q := strings.ToLower(query)
	var out []Entry
	for _, e := range s.List() {
		if strings.Contains(strings.ToLower(e.Content), q) {
			out = append(out, e)
		}
	}
	return out
}

// ContextString renders the memories for injection into editor
// configuration. It is empty when there are no memories.
func (s *Store) ContextString() string {
	entries := s.List()
	if len(entries) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n" + Header + "\n\n")
	for _, e := range entries {
		fmt.Fprintf(&b, "- [ID: %s] %s\n", e.ID, e.Content)
	}
	b.WriteString("\n" + ToolsHeader + "\n")
	b.WriteString("- Save: `skillctl memory learn \"text\"`\n")
	b.WriteString("- Delete: `skillctl memory forget ID`\n")
	return b.String()
}
