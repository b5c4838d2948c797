// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "nested", "values.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpen_EmptyPath(t *testing.T) {
	_, err := Open(context.Background(), "")
	assert.Error(t, err)
}

func TestStore_PutGet(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)

	_, err := s.Get(ctx, "name")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Put(ctx, "name", "marcus"))
	text, err := s.Get(ctx, "name")
	require.NoError(t, err)
	assert.Equal(t, "marcus", text)

	require.NoError(t, s.Put(ctx, "name", "ada"))
	text, err = s.Get(ctx, "name")
	require.NoError(t, err)
	assert.Equal(t, "ada", text)
}

func TestStore_PutRejectsEmptyKey(t *testing.T) {
	s := openTemp(t)
	assert.ErrorIs(t, s.Put(context.Background(), "  ", "x"), ErrEmptyKey)
}

func TestStore_AllOrderedByKey(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)

	require.NoError(t, s.Put(ctx, "snooze", "5m0s"))
	require.NoError(t, s.Put(ctx, "name", "marcus"))
	require.NoError(t, s.Put(ctx, "server", "10.0.0.1"))

	entries, err := s.All(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	keys := []string{entries[0].Key, entries[1].Key, entries[2].Key}
	assert.Equal(t, []string{"name", "server", "snooze"}, keys)
	assert.Equal(t, "10.0.0.1", entries[1].Text)
	assert.False(t, entries[0].UpdatedAt.IsZero())
}

func TestStore_DeleteAndReset(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)

	require.NoError(t, s.Put(ctx, "a", "1"))
	require.NoError(t, s.Put(ctx, "b", "2"))
	require.NoError(t, s.Put(ctx, "c", "3"))

	require.NoError(t, s.Delete(ctx, "a"))
	require.NoError(t, s.Delete(ctx, "missing"))
	_, err := s.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)

	n, err := s.Reset(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	entries, err := s.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestStore_PersistsAcrossOpen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "values.db")

	s, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, s.Put(ctx, "hour", "7"))
	require.NoError(t, s.Close())

	s, err = Open(ctx, path)
	require.NoError(t, err)
	defer s.Close()

	text, err := s.Get(ctx, "hour")
	require.NoError(t, err)
	assert.Equal(t, "7", text)
	assert.Equal(t, path, s.Path())
}

func TestStore_UseAfterClose(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	_, err := s.Get(ctx, "x")
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, s.Put(ctx, "x", "y"), ErrClosed)
	assert.ErrorIs(t, s.Delete(ctx, "x"), ErrClosed)
	_, err = s.All(ctx)
	assert.ErrorIs(t, err, ErrClosed)
	_, err = s.Reset(ctx)
	assert.ErrorIs(t, err, ErrClosed)
}
