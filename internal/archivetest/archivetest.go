// Package archivetest builds small conda package containers for tests.
package archivetest

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"os"
	"sort"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/require"
)

// TarEntry is one member of a test tarball.
type TarEntry struct {
	Name     string
	Data     []byte
	Mode     int64
	Typeflag byte
}

// Tar builds an in-memory tarball from entries, in order.
func Tar(t *testing.T, entries []TarEntry) []byte {
	t.Helper()

	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)
	for _, e := range entries {
		mode := e.Mode
		if mode == 0 {
			mode = 0o644
		}
		typeflag := e.Typeflag
		if typeflag == 0 {
			typeflag = tar.TypeReg
		}
		require.NoError(t, tw.WriteHeader(&tar.Header{
			Name:     e.Name,
			Mode:     mode,
			Size:     int64(len(e.Data)),
			Typeflag: typeflag,
		}))
		_, err := tw.Write(e.Data)
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
	return buf.Bytes()
}

// TarZst builds an in-memory zstd-compressed tarball from entries.
func TarZst(t *testing.T, entries []TarEntry) []byte {
	t.Helper()
	return Zstd(t, Tar(t, entries))
}

// Zstd compresses raw with zstd.
func Zstd(t *testing.T, raw []byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	enc, err := zstd.NewWriter(&buf, zstd.WithEncoderConcurrency(1))
	require.NoError(t, err)
	_, err = enc.Write(raw)
	require.NoError(t, err)
	require.NoError(t, enc.Close())
	return buf.Bytes()
}

// WriteConda writes a .conda container at path with the given zip
// members, in sorted member-name order.
func WriteConda(t *testing.T, path string, members map[string][]byte) {
	t.Helper()

	names := make([]string, 0, len(members))
	for name := range members {
		names = append(names, name)
	}
	sort.Strings(names)

	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	for _, name := range names {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write(members[name])
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
}

// BuildConda writes a .conda container at path holding files, keyed by
// entry name: info/ names go into the metadata tarball, the rest into
// the payload tarball.
func BuildConda(t *testing.T, path string, files map[string][]byte) {
	t.Helper()

	var info, pkg []TarEntry
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		entry := TarEntry{Name: name, Data: files[name]}
		if strings.HasPrefix(name, "info/") {
			info = append(info, entry)
		} else {
			pkg = append(pkg, entry)
		}
	}

	members := make(map[string][]byte, 2)
	if len(info) > 0 {
		members["info-test.tar.zst"] = TarZst(t, info)
	}
	if len(pkg) > 0 {
		members["pkg-test.tar.zst"] = TarZst(t, pkg)
	}
	WriteConda(t, path, members)
}
