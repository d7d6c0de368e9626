package pathsjson

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManifest_Save(t *testing.T) {
	t.Parallel()

	m := &Manifest{
		PathsVersion: Version1,
		Paths: []Entry{
			{RelativePath: "bin/run", PathType: PathTypeHardlink},
			{RelativePath: "lib", PathType: PathTypeDirectory},
		},
	}

	path := filepath.Join(t.TempDir(), "paths.json")
	require.NoError(t, m.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	content := string(data)
	assert.True(t, strings.HasSuffix(content, "\n"), "file must end with a newline")
	assert.True(t, strings.HasPrefix(content, "{\n  \"paths_version\": 1,\n  \"paths\": ["),
		"unexpected formatting:\n%s", content)

	got, err := ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, m, got)
}

func TestManifest_Save_CreatesParents(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "extracted", "info", "paths.json")
	m := &Manifest{PathsVersion: Version1, Paths: []Entry{}}
	require.NoError(t, m.Save(path))

	_, err := os.Stat(path)
	require.NoError(t, err)
}

func TestManifest_Save_Overwrites(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "paths.json")
	require.NoError(t, os.WriteFile(path, []byte("stale garbage"), 0o644))

	m := &Manifest{
		PathsVersion: Version2,
		Paths:        []Entry{{RelativePath: "bin/run", PathType: PathTypeHardlink}},
	}
	require.NoError(t, m.Save(path))

	got, err := ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, Version2, got.PathsVersion)
}

func TestManifest_Save_InvalidWritesNothing(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "paths.json")
	m := &Manifest{PathsVersion: 7, Paths: []Entry{}}

	err := m.Save(path)
	require.ErrorIs(t, err, ErrInvalidVersion)

	_, statErr := os.Stat(path)
	require.ErrorIs(t, statErr, fs.ErrNotExist)

	// No temp files either.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestManifest_Save_NoTempLeftovers(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	m := &Manifest{PathsVersion: Version1, Paths: []Entry{}}
	require.NoError(t, m.Save(filepath.Join(dir, "paths.json")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "paths.json", entries[0].Name())
}
