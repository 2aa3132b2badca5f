// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package memory

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stacklok/skillctl/skillerr"
)

func sequence(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s%04d", prefix, n)
	}
}

func ticking(start time.Time) func() time.Time {
	current := start
	return func() time.Time {
		current = current.Add(time.Minute)
		return current
	}
}

func TestStore_CRUD(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s, err := Open(dir)
	require.NoError(t, err)
	assert.Empty(t, s.List())
	assert.Empty(t, s.ContextString())

	entry, err := s.Add("  User likes Go  ", "cli", 0)
	require.NoError(t, err)
	assert.Len(t, entry.ID, 8)
	assert.Equal(t, "User likes Go", entry.Content)
	assert.Equal(t, "cli", entry.Source)

	reopened, err := Open(dir)
	require.NoError(t, err)
	require.Len(t, reopened.List(), 1)
	assert.Equal(t, entry.ID, reopened.List()[0].ID)

	removed, err := reopened.Remove(entry.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = reopened.Remove(entry.ID)
	require.NoError(t, err)
	assert.False(t, removed)

	again, err := Open(dir)
	require.NoError(t, err)
	assert.Empty(t, again.List())
}

func TestStore_Add_Empty(t *testing.T) {
	t.Parallel()

	s, err := Open(t.TempDir())
	require.NoError(t, err)

	_, err = s.Add("   ", "cli", 0)
	require.ErrorIs(t, err, ErrEmptyContent)
	assert.Equal(t, skillerr.KindValidation, skillerr.KindOf(err))
	assert.NoFileExists(t, s.Path())
}

func TestStore_Add_UniqueIDs(t *testing.T) {
	t.Parallel()

	ids := []string{"aaaaaaaa", "aaaaaaaa", "bbbbbbbb"}
	next := 0
	s, err := Open(t.TempDir(), WithIDGenerator(func() string {
		id := ids[next]
		next++
		return id
	}))
	require.NoError(t, err)

	first, err := s.Add("one", "cli", 0)
	require.NoError(t, err)
	second, err := s.Add("two", "cli", 0)
	require.NoError(t, err)

	assert.Equal(t, "aaaaaaaa", first.ID)
	assert.Equal(t, "bbbbbbbb", second.ID)
}

func TestStore_List_Order(t *testing.T) {
	t.Parallel()

	s, err := Open(t.TempDir(),
		WithIDGenerator(sequence("m")),
		WithClock(ticking(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))))
	require.NoError(t, err)

	_, err = s.Add("low old", "cli", 0)
	require.NoError(t, err)
	_, err = s.Add("high", "cli", 5)
	require.NoError(t, err)
	_, err = s.Add("low new", "cli", 0)
	require.NoError(t, err)

	var got []string
	for _, e := range s.List() {
		got = append(got, e.Content)
	}
	assert.Equal(t, []string{"high", "low old", "low new"}, got)
}

func TestStore_Search(t *testing.T) {
	t.Parallel()

	s, err := Open(t.TempDir())
	require.NoError(t, err)
	_, err = s.Add("Prefers TABS over spaces", "cli", 0)
	require.NoError(t, err)
	_, err = s.Add("Uses Postgres", "cli", 0)
	require.NoError(t, err)

	found := s.Search("tabs")
	require.Len(t, found, 1)
	assert.Equal(t, "Prefers TABS over spaces", found[0].Content)
	assert.Empty(t, s.Search("mysql"))
}

func TestStore_ContextString(t *testing.T) {
	t.Parallel()

	s, err := Open(t.TempDir(), WithIDGenerator(sequence("id")))
	require.NoError(t, err)
	_, err = s.Add("User likes Go", "cli", 0)
	require.NoError(t, err)

	want := "\n# 🧠 Active Memory Context\n\n" +
		"- [ID: id0001] User likes Go\n" +
		"\n# 🛠️ Memory Tools\n" +
		"- Save: `skillctl memory learn \"text\"`\n" +
		"- Delete: `skillctl memory forget ID`\n"
	assert.Equal(t, want, s.ContextString())
}

func TestOpen_Corrupt(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("{not json"), 0o600))

	_, err := Open(dir)
	require.Error(t, err)
	assert.Equal(t, skillerr.KindStorage, skillerr.KindOf(err))
}
