// Package deprecated parses the per-purpose metadata files older
// package archives carried before the consolidated paths.json manifest
// existed. Each file holds a partial slice of the same information;
// joining them back into one manifest is the caller's concern.
package deprecated

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

// Locations of the legacy metadata files, relative to the package root.
const (
	// FilesPath enumerates every installed path, one per line, in
	// install order. The only required legacy source.
	FilesPath = "info/files"

	// HasPrefixPath tables the paths that embed a build prefix.
	HasPrefixPath = "info/has_prefix"

	// NoLinkPath lists the paths that must be copied, never linked.
	NoLinkPath = "info/no_link"

	// DirsPath lists explicitly declared empty directories. Most
	// archives omit it.
	DirsPath = "info/dirs"
)

// File mode markers used by the has-prefix table.
const (
	ModeBinary = "binary"
	ModeText   = "text"
)

// HasPrefixEntry is one parsed line of the has-prefix table.
type HasPrefixEntry struct {
	// Placeholder is the literal build prefix, verbatim.
	Placeholder string

	// Mode is ModeBinary, ModeText, or empty when the line carries no
	// mode marker.
	Mode string

	// Path is the affected path, relative to the package root.
	Path string
}

// ParseError reports a malformed line in a legacy metadata file.
type ParseError struct {
	File string // path within the package, e.g. "info/has_prefix"
	Line int    // 1-based
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Msg)
}

// ReadFiles returns the installed-path enumeration in file order,
// duplicates preserved. A missing file propagates fs.ErrNotExist:
// unlike the other legacy sources, the enumeration is required.
func ReadFiles(fsys fs.FS) ([]string, error) {
	return readLines(fsys, FilesPath)
}

// ReadNoLink returns the no-link path list, or nil when the file is
// absent: absence means no path has the property.
func ReadNoLink(fsys fs.FS) ([]string, error) {
	return readLinesOptional(fsys, NoLinkPath)
}

// ReadDirs returns the declared empty-directory list, or nil when the
// file is absent.
func ReadDirs(fsys fs.FS) ([]string, error) {
	return readLinesOptional(fsys, DirsPath)
}

// ReadHasPrefix returns the parsed has-prefix table in file order, or
// nil when the file is absent. Lines are either
//
//	<placeholder> <mode> <path>
//	<placeholder> <path>
//
// with fields separated by whitespace. A line with any other shape, or
// a mode marker outside {binary, text}, fails with a *ParseError
// carrying the offending line number.
func ReadHasPrefix(fsys fs.FS) ([]HasPrefixEntry, error) {
	data, err := fs.ReadFile(fsys, HasPrefixPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var entries []HasPrefixEntry
	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		switch len(fields) {
		case 2:
			entries = append(entries, HasPrefixEntry{
				Placeholder: fields[0],
				Path:        fields[1],
			})
		case 3:
			if fields[1] != ModeBinary && fields[1] != ModeText {
				return nil, &ParseError{
					File: HasPrefixPath,
					Line: i + 1,
					Msg:  fmt.Sprintf("unknown file mode %q", fields[1]),
				}
			}
			entries = append(entries, HasPrefixEntry{
				Placeholder: fields[0],
				Mode:        fields[1],
				Path:        fields[2],
			})
		default:
			return nil, &ParseError{
				File: HasPrefixPath,
				Line: i + 1,
				Msg:  `expected "<placeholder> [<mode>] <path>"`,
			}
		}
	}
	return entries, nil
}

// readLines returns the non-empty lines of a newline-delimited file.
// Carriage returns are tolerated for archives built on Windows.
func readLines(fsys fs.FS, name string) ([]string, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, err
	}
	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// readLinesOptional is readLines with absence treated as empty.
func readLinesOptional(fsys fs.FS, name string) ([]string, error) {
	lines, err := readLines(fsys, name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return lines, err
}
