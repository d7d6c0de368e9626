package pathsjson

import (
	"bytes"
	"crypto/sha256"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManifest_Validate(t *testing.T) {
	t.Parallel()

	m := Manifest{PathsVersion: Version1, Paths: []Entry{
		{RelativePath: "bin/run", PathType: PathTypeHardlink},
	}}
	require.NoError(t, m.Validate())

	m.PathsVersion = 0
	require.ErrorIs(t, m.Validate(), ErrInvalidVersion)
	m.PathsVersion = 3
	require.ErrorIs(t, m.Validate(), ErrInvalidVersion)

	m.PathsVersion = Version1
	m.Paths = append(m.Paths, Entry{RelativePath: "/abs", PathType: PathTypeHardlink})
	err := m.Validate()
	require.ErrorIs(t, err, ErrInvalidEntry)
	assert.Contains(t, err.Error(), "paths[1]")
}

func TestManifest_MarshalJSON_Version2StripsHashes(t *testing.T) {
	t.Parallel()

	size := uint64(9)
	m := Manifest{PathsVersion: Version2, Paths: []Entry{
		{
			RelativePath: "lib/data.bin",
			PathType:     PathTypeHardlink,
			SHA256:       bytes.Repeat([]byte{0x42}, sha256.Size),
			SizeInBytes:  &size,
		},
	}}
	data, err := json.Marshal(m)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	entries, ok := raw["paths"].([]any)
	require.True(t, ok)
	require.Len(t, entries, 1)
	entry, ok := entries[0].(map[string]any)
	require.True(t, ok)
	assert.NotContains(t, entry, "sha256")
	assert.NotContains(t, entry, "size_in_bytes")

	got, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, Version2, got.PathsVersion)
	assert.Nil(t, got.Paths[0].SHA256)
	assert.Nil(t, got.Paths[0].SizeInBytes)
}

func TestManifest_MarshalJSON_Version1KeepsHashes(t *testing.T) {
	t.Parallel()

	size := uint64(9)
	m := Manifest{PathsVersion: Version1, Paths: []Entry{
		{
			RelativePath: "lib/data.bin",
			PathType:     PathTypeHardlink,
			SHA256:       bytes.Repeat([]byte{0x42}, sha256.Size),
			SizeInBytes:  &size,
		},
	}}
	data, err := json.Marshal(m)
	require.NoError(t, err)

	got, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, m.Paths[0].SHA256, got.Paths[0].SHA256)
	require.NotNil(t, got.Paths[0].SizeInBytes)
	assert.Equal(t, size, *got.Paths[0].SizeInBytes)
}

func TestManifest_MarshalJSON_InvalidVersion(t *testing.T) {
	t.Parallel()

	m := Manifest{PathsVersion: 7}
	_, err := json.Marshal(m)
	require.ErrorIs(t, err, ErrInvalidVersion)
}

func TestManifest_RoundTrip(t *testing.T) {
	t.Parallel()

	size := uint64(1024)
	m := Manifest{PathsVersion: Version1, Paths: []Entry{
		{
			RelativePath: "bin/run",
			PathType:     PathTypeHardlink,
			SHA256:       bytes.Repeat([]byte{0x01}, sha256.Size),
			SizeInBytes:  &size,
		},
		{
			RelativePath: "lib/liba.so",
			PathType:     PathTypeSoftlink,
		},
		{
			RelativePath: "etc/empty",
			PathType:     PathTypeDirectory,
		},
		{
			RelativePath:      "share/config.ini",
			NoLink:            true,
			PathType:          PathTypeHardlink,
			PrefixPlaceholder: &PrefixPlaceholder{FileMode: FileModeText, Placeholder: `D:\bld\conda_1667595064120\_h_env`},
		},
	}}

	data, err := json.Marshal(m)
	require.NoError(t, err)

	got, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, m, *got)

	// The Windows build prefix survives byte-exact: rewriting it out of
	// the file later depends on the original bytes.
	assert.Equal(t, `D:\bld\conda_1667595064120\_h_env`, got.Paths[3].PrefixPlaceholder.Placeholder)
}

func TestManifest_UnmarshalJSON_Strictness(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"missing paths_version", `{"paths":[]}`, ErrParse},
		{"missing paths", `{"paths_version":1}`, ErrParse},
		{"null paths", `{"paths_version":1,"paths":null}`, ErrParse},
		{"unsupported version", `{"paths_version":3,"paths":[]}`, ErrInvalidVersion},
		{"string version", `{"paths_version":"1","paths":[]}`, ErrParse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Parse([]byte(tt.doc))
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestManifest_UnmarshalJSON_UnsupportedVersionIsParseError(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte(`{"paths_version":3,"paths":[]}`))
	require.ErrorIs(t, err, ErrParse)
	require.ErrorIs(t, err, ErrInvalidVersion)
}

func TestManifest_UnmarshalJSON_IgnoresUnknownFields(t *testing.T) {
	t.Parallel()

	m, err := Parse([]byte(`{
		"paths_version": 1,
		"schema_migration": "pending",
		"paths": [
			{"_path": "bin/run", "path_type": "hardlink", "made_up_field": 3}
		]
	}`))
	require.NoError(t, err)
	require.Len(t, m.Paths, 1)
	assert.Equal(t, "bin/run", m.Paths[0].RelativePath)
}

func TestManifest_OrderAndDuplicatesPreserved(t *testing.T) {
	t.Parallel()

	m, err := Parse([]byte(`{
		"paths_version": 1,
		"paths": [
			{"_path": "b", "path_type": "hardlink"},
			{"_path": "a", "path_type": "hardlink"},
			{"_path": "b", "path_type": "softlink"}
		]
	}`))
	require.NoError(t, err)

	require.Len(t, m.Paths, 3)
	assert.Equal(t, "b", m.Paths[0].RelativePath)
	assert.Equal(t, "a", m.Paths[1].RelativePath)
	assert.Equal(t, "b", m.Paths[2].RelativePath)
	assert.Equal(t, PathTypeSoftlink, m.Paths[2].PathType)
}
