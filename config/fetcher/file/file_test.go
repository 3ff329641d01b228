package file

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const armParams = `
robot:
  arm:
    ros__parameters:
      gains: {p: 1.5}
`

func writeFile(t *testing.T, name string, content []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	return path
}

func TestOpen(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "arm.yaml", []byte(armParams))

	fetcher, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, path, fetcher.Path())

	data, err := fetcher.Fetch()
	require.NoError(t, err)
	assert.Equal(t, armParams, string(data))
}

func TestOpen_CleansPath(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "arm.yaml", []byte(armParams))

	fetcher, err := Open(filepath.Join(filepath.Dir(path), ".", "arm.yaml"))
	require.NoError(t, err)
	assert.Equal(t, path, fetcher.Path())
}

func TestOpen_Missing(t *testing.T) {
	t.Parallel()

	fetcher, err := Open(filepath.Join(t.TempDir(), "missing.yaml"))

	require.ErrorIs(t, err, fs.ErrNotExist)
	assert.Nil(t, fetcher)
	assert.Contains(t, err.Error(), "missing.yaml")
}

func TestOpen_Directory(t *testing.T) {
	t.Parallel()

	fetcher, err := Open(t.TempDir())

	require.ErrorIs(t, err, ErrPathIsDirectory)
	assert.Nil(t, fetcher)
}

func TestOpen_EmptyFile(t *testing.T) {
	t.Parallel()

	fetcher, err := Open(writeFile(t, "empty.yaml", nil))
	require.NoError(t, err)

	data, err := fetcher.Fetch()
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestFetch_ReturnsCachedCopy(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "arm.yaml", []byte(armParams))

	fetcher, err := NewFetcher(path)()
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("changed: true\n"), 0o600))

	first, err := fetcher.Fetch()
	require.NoError(t, err)
	assert.Equal(t, armParams, string(first))

	first[0] = 'X'

	second, err := fetcher.Fetch()
	require.NoError(t, err)
	assert.Equal(t, armParams, string(second))
}
