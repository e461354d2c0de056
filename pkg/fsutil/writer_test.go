package fsutil_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/saasfoundry/sf/pkg/fsutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFile_CreatesParents(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".sf", "project.yaml")

	require.NoError(t, fsutil.WriteFile(path, []byte("name: acme\n")))
	assert.Equal(t, "name: acme\n", readFile(t, path))
}

func TestWriteFile_EmptyPath(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, fsutil.WriteFile("", nil), fsutil.ErrEmptyOutputPath)
}

func TestWriteIfChanged(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("A=1\n"), 0o600))

	changed, err := fsutil.WriteIfChanged(path, []byte("A=1\n"))
	require.NoError(t, err)
	assert.False(t, changed)

	changed, err = fsutil.WriteIfChanged(path, []byte("A=2\n"))
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "A=2\n", readFile(t, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestExistsAndIsEmptyDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	exists, err := fsutil.Exists(filepath.Join(dir, "missing"))
	require.NoError(t, err)
	assert.False(t, exists)

	empty, err := fsutil.IsEmptyDir(filepath.Join(dir, "missing"))
	require.NoError(t, err)
	assert.True(t, empty)

	empty, err = fsutil.IsEmptyDir(dir)
	require.NoError(t, err)
	assert.True(t, empty)

	file := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))

	exists, err = fsutil.Exists(file)
	require.NoError(t, err)
	assert.True(t, exists)

	empty, err = fsutil.IsEmptyDir(dir)
	require.NoError(t, err)
	assert.False(t, empty)

	_, err = fsutil.IsEmptyDir(file)
	require.ErrorIs(t, err, fsutil.ErrNotDirectory)
}

func TestExpandHomePath(t *testing.T) {
	t.Parallel()

	abs, err := fsutil.ExpandHomePath("/tmp/sf")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/sf", abs)

	rel, err := fsutil.ExpandHomePath("blueprints")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(rel))
}
