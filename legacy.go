package pathsjson

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/condakit/pathsjson/internal/deprecated"
)

// ReconstructFromPackageDir synthesizes a manifest for an extracted
// package directory that predates the canonical format, by joining the
// deprecated metadata files under info/.
//
// The installed-path enumeration (info/files) is required; its absence
// fails with ErrNotFound. The no-link list, has-prefix table, and
// declared-directory list are optional, and an absent file means no
// path has that property. A malformed has-prefix table fails with
// ErrParse naming the offending line, and an enumerated path violating
// the entry constraints, such as an absolute path, fails with
// ErrInvalidEntry naming the file it came from.
//
// The result always carries PathsVersion Version1 with nil SHA256 and
// SizeInBytes on every entry: the deprecated files record no hashes,
// and the presence of the unset hash fields is what distinguishes a
// reconstructed manifest from a true Version2 one on round-trip.
func ReconstructFromPackageDir(dir string, opts ...LoadOption) (*Manifest, error) {
	cfg := newLoadConfig(opts...)
	fsys := os.DirFS(dir)

	files, err := deprecated.ReadFiles(fsys)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %w", ErrNotFound, err)
		}
		return nil, fmt.Errorf("read %s: %w", deprecated.FilesPath, err)
	}
	noLink, err := deprecated.ReadNoLink(fsys)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", deprecated.NoLinkPath, err)
	}
	dirs, err := deprecated.ReadDirs(fsys)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", deprecated.DirsPath, err)
	}
	hasPrefix, err := deprecated.ReadHasPrefix(fsys)
	if err != nil {
		var perr *deprecated.ParseError
		if errors.As(err, &perr) {
			return nil, fmt.Errorf("%w: %w", ErrParse, err)
		}
		return nil, fmt.Errorf("read %s: %w", deprecated.HasPrefixPath, err)
	}

	return reconstruct(files, dirs, noLink, hasPrefix, cfg.log())
}

// reconstruct joins the legacy tables into one manifest. Declared
// directories come first, then the enumerated files in enumeration
// order. When the has-prefix table repeats a path, the last line wins.
// Every synthesized entry passes the same validation a decoded entry
// gets, so a corrupt enumeration fails here, not at the next write.
func reconstruct(files, dirs, noLink []string, hasPrefix []deprecated.HasPrefixEntry, logger *slog.Logger) (*Manifest, error) {
	noLinkSet := make(map[string]struct{}, len(noLink))
	for _, p := range noLink {
		noLinkSet[p] = struct{}{}
	}
	placeholders := make(map[string]deprecated.HasPrefixEntry, len(hasPrefix))
	for _, hp := range hasPrefix {
		placeholders[hp.Path] = hp
	}

	entries := make([]Entry, 0, len(dirs)+len(files))
	for _, d := range dirs {
		e := Entry{
			RelativePath: d,
			PathType:     PathTypeDirectory,
		}
		if err := e.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", deprecated.DirsPath, err)
		}
		entries = append(entries, e)
	}
	for _, p := range files {
		e := Entry{
			RelativePath: p,
			PathType:     PathTypeHardlink,
		}
		if _, ok := noLinkSet[p]; ok {
			e.NoLink = true
		}
		if hp, ok := placeholders[p]; ok {
			var mode FileMode
			switch hp.Mode {
			case deprecated.ModeBinary:
				mode = FileModeBinary
			case deprecated.ModeText:
				mode = FileModeText
			default:
				// Unmarked lines default to text replacement. Surfaced
				// as a warning: misclassifying a binary file would
				// corrupt it when the prefix is rewritten.
				mode = FileModeText
				logger.Warn("has_prefix mode missing, defaulting to text",
					"path", p, "placeholder", hp.Placeholder)
			}
			e.PrefixPlaceholder = &PrefixPlaceholder{
				FileMode:    mode,
				Placeholder: hp.Placeholder,
			}
		}
		if err := e.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", deprecated.FilesPath, err)
		}
		entries = append(entries, e)
	}

	return &Manifest{PathsVersion: Version1, Paths: entries}, nil
}
