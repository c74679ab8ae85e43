package io

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMediaFileSystem_ReadDir(t *testing.T) {
	mfs := &MediaFileSystem{}

	t.Run("lists entries", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "Show.S01E02.mkv"), []byte("data"), 0o644))
		require.NoError(t, os.Mkdir(filepath.Join(dir, "Season 01"), 0o755))

		entries, err := mfs.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 2)

		// os.ReadDir sorts by name
		assert.Equal(t, "Season 01", entries[0].Name())
		assert.True(t, entries[0].IsDir())
		assert.Equal(t, "Show.S01E02.mkv", entries[1].Name())
		assert.False(t, entries[1].IsDir())
	})

	t.Run("missing directory", func(t *testing.T) {
		_, err := mfs.ReadDir(filepath.Join(t.TempDir(), "missing"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestMediaFileSystem_Stat(t *testing.T) {
	mfs := &MediaFileSystem{}
	dir := t.TempDir()
	path := filepath.Join(dir, "Show.S01E02.mkv")
	require.NoError(t, os.WriteFile(path, []byte("data"), 0o644))

	info, err := mfs.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, int64(4), info.Size())

	_, err = mfs.Stat(filepath.Join(dir, "missing"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestMediaFileSystem_DirExists(t *testing.T) {
	mfs := &MediaFileSystem{}
	dir := t.TempDir()
	file := filepath.Join(dir, "file.mkv")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	assert.True(t, mfs.DirExists(dir))
	assert.False(t, mfs.DirExists(file))
	assert.False(t, mfs.DirExists(filepath.Join(dir, "missing")))
}
