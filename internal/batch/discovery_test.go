package batch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscoverImageFiles_DirectoryNonRecursive(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "nested")
	require.NoError(t, os.Mkdir(sub, 0o750))
	writeImages(t, dir, "a.png", "b.jpeg", "skip.txt")
	writeImages(t, sub, "deep.png")

	files, err := discoverImageFiles([]string{dir}, false, nil, nil)
	require.NoError(t, err)

	require.Len(t, files, 2)
	assert.Equal(t, "a.png", filepath.Base(files[0]))
	assert.Equal(t, "b.jpeg", filepath.Base(files[1]))
}

func TestDiscoverImageFiles_Recursive(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "nested")
	require.NoError(t, os.Mkdir(sub, 0o750))
	writeImages(t, dir, "a.png")
	writeImages(t, sub, "deep.png")

	files, err := discoverImageFiles([]string{dir}, true, nil, nil)
	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func TestDiscoverImageFiles_IncludeExcludePatterns(t *testing.T) {
	dir := t.TempDir()
	writeImages(t, dir, "item_front.png", "item_back.png", "receipt.png")

	files, err := discoverImageFiles([]string{dir}, false, []string{"item_*.png"}, []string{"*_back.png"})
	require.NoError(t, err)

	require.Len(t, files, 1)
	assert.Equal(t, "item_front.png", filepath.Base(files[0]))
}

func TestDiscoverImageFiles_ExplicitFile(t *testing.T) {
	dir := t.TempDir()
	writeImages(t, dir, "a.png")

	path := filepath.Join(dir, "a.png")
	files, err := discoverImageFiles([]string{path}, false, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{path}, files)
}

func TestDiscoverImageFiles_UnsupportedExplicitFile(t *testing.T) {
	dir := t.TempDir()
	writeImages(t, dir, "notes.txt")

	_, err := discoverImageFiles([]string{filepath.Join(dir, "notes.txt")}, false, nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported image format")
}

func TestDiscoverImageFiles_MissingPath(t *testing.T) {
	_, err := discoverImageFiles([]string{filepath.Join(t.TempDir(), "missing")}, false, nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot access")
}
