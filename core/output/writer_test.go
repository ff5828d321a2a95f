package output

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFlat(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir)
	require.NoError(t, err)

	path, err := w.WriteFlat("https://example.com/docs/intro", []byte("data"), ".json")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "example_com_docs_intro.json"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "data", string(content))
}

func TestWriteMirrored(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir)
	require.NoError(t, err)

	path, err := w.WriteMirrored("https://site.com/docs/intro", []byte("x"), ".md")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "docs", "intro.md"), path)

	// Root URL maps to index.
	path, err = w.WriteMirrored("https://site.com/", []byte("x"), ".md")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "index.md"), path)
}

func TestNew_CreatesOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")

	_, err := New(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
