package deprecated

import (
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func infoFS(files map[string]string) fstest.MapFS {
	fsys := make(fstest.MapFS, len(files))
	for name, content := range files {
		fsys[name] = &fstest.MapFile{Data: []byte(content)}
	}
	return fsys
}

func TestReadFiles(t *testing.T) {
	t.Parallel()

	fsys := infoFS(map[string]string{
		FilesPath: "lib/c\nlib/a\n\nlib/a\nlib/b\n",
	})

	files, err := ReadFiles(fsys)
	require.NoError(t, err)
	assert.Equal(t, []string{"lib/c", "lib/a", "lib/a", "lib/b"}, files,
		"order and duplicates must survive, empty lines must not")
}

func TestReadFiles_Missing(t *testing.T) {
	t.Parallel()

	_, err := ReadFiles(infoFS(nil))
	require.ErrorIs(t, err, fs.ErrNotExist)
}

func TestReadFiles_CRLF(t *testing.T) {
	t.Parallel()

	fsys := infoFS(map[string]string{FilesPath: "bin/run.exe\r\nlib/data.bin\r\n"})

	files, err := ReadFiles(fsys)
	require.NoError(t, err)
	assert.Equal(t, []string{"bin/run.exe", "lib/data.bin"}, files)
}

func TestReadNoLink(t *testing.T) {
	t.Parallel()

	files, err := ReadNoLink(infoFS(map[string]string{NoLinkPath: "lib/data.bin\n"}))
	require.NoError(t, err)
	assert.Equal(t, []string{"lib/data.bin"}, files)
}

func TestReadNoLink_AbsentMeansEmpty(t *testing.T) {
	t.Parallel()

	files, err := ReadNoLink(infoFS(nil))
	require.NoError(t, err)
	assert.Nil(t, files)
}

func TestReadDirs_AbsentMeansEmpty(t *testing.T) {
	t.Parallel()

	dirs, err := ReadDirs(infoFS(nil))
	require.NoError(t, err)
	assert.Nil(t, dirs)
}

func TestReadHasPrefix(t *testing.T) {
	t.Parallel()

	fsys := infoFS(map[string]string{
		HasPrefixPath: "/build/prefix binary lib/data.bin\n" +
			"/build/prefix text etc/profile\n" +
			"/build/prefix bin/script\n",
	})

	entries, err := ReadHasPrefix(fsys)
	require.NoError(t, err)

	want := []HasPrefixEntry{
		{Placeholder: "/build/prefix", Mode: ModeBinary, Path: "lib/data.bin"},
		{Placeholder: "/build/prefix", Mode: ModeText, Path: "etc/profile"},
		{Placeholder: "/build/prefix", Path: "bin/script"},
	}
	assert.Equal(t, want, entries)
}

func TestReadHasPrefix_AbsentMeansEmpty(t *testing.T) {
	t.Parallel()

	entries, err := ReadHasPrefix(infoFS(nil))
	require.NoError(t, err)
	assert.Nil(t, entries)
}

func TestReadHasPrefix_Malformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		wantLine int
		wantMsg  string
	}{
		{
			name:     "single field",
			content:  "lib/data.bin\n",
			wantLine: 1,
			wantMsg:  `expected "<placeholder> [<mode>] <path>"`,
		},
		{
			name:     "too many fields",
			content:  "/build/prefix binary lib/data.bin trailing\n",
			wantLine: 1,
			wantMsg:  `expected "<placeholder> [<mode>] <path>"`,
		},
		{
			name:     "unknown mode",
			content:  "/build/prefix utf8 lib/data.bin\n",
			wantLine: 1,
			wantMsg:  `unknown file mode "utf8"`,
		},
		{
			name:     "error on later line",
			content:  "/build/prefix text etc/profile\n/build/prefix utf8 lib/data.bin\n",
			wantLine: 2,
			wantMsg:  `unknown file mode "utf8"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ReadHasPrefix(infoFS(map[string]string{HasPrefixPath: tt.content}))

			var perr *ParseError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, HasPrefixPath, perr.File)
			assert.Equal(t, tt.wantLine, perr.Line)
			assert.Equal(t, tt.wantMsg, perr.Msg)
		})
	}
}

func TestParseError_Message(t *testing.T) {
	t.Parallel()

	err := &ParseError{File: HasPrefixPath, Line: 3, Msg: "boom"}
	assert.Equal(t, "info/has_prefix:3: boom", err.Error())
}
