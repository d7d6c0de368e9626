package archive

import (
	"archive/tar"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// findTarEntry scans a tar stream for the named regular file and
// returns its contents.
func findTarEntry(r io.Reader, name string, cfg *readConfig) ([]byte, error) {
	tr := tar.NewReader(r)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: %s", ErrEntryNotFound, name)
		}
		if err != nil {
			return nil, fmt.Errorf("read tar: %w", err)
		}
		if hdr.Typeflag != tar.TypeReg || entryName(hdr.Name) != name {
			continue
		}
		if hdr.Size < 0 {
			return nil, fmt.Errorf("read tar: negative size for %s", name)
		}
		if cfg.maxEntrySize > 0 && uint64(hdr.Size) > cfg.maxEntrySize {
			return nil, fmt.Errorf("%w: %s is %d bytes (limit %d)", ErrEntryTooLarge, name, hdr.Size, cfg.maxEntrySize)
		}
		data := make([]byte, hdr.Size)
		if _, err := io.ReadFull(tr, data); err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		return data, nil
	}
}

// listTarInfo collects the names of regular files under info/ in a tar
// stream, in archive order.
func listTarInfo(r io.Reader) ([]string, error) {
	tr := tar.NewReader(r)
	var names []string
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return names, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read tar: %w", err)
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}
		if name := entryName(hdr.Name); strings.HasPrefix(name, "info/") {
			names = append(names, name)
		}
	}
}

// extractTarInfo materializes the info/ entries of a tar stream under
// destDir, preserving the info/ prefix. Entry names that would escape
// destDir fail with ErrUnsafePath.
func extractTarInfo(r io.Reader, destDir string) error {
	tr := tar.NewReader(r)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read tar: %w", err)
		}
		if unsafeName(hdr.Name) {
			return fmt.Errorf("%w: %q", ErrUnsafePath, hdr.Name)
		}
		name := entryName(hdr.Name)
		if !strings.HasPrefix(name, "info/") {
			continue
		}
		target := filepath.Join(destDir, filepath.FromSlash(name))
		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o750); err != nil {
				return fmt.Errorf("create directory: %w", err)
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0o750); err != nil {
				return fmt.Errorf("create directory: %w", err)
			}
			if err := writeFileFrom(target, tr, hdr.FileInfo().Mode().Perm()); err != nil {
				return err
			}
		default:
			// Links and special files do not appear under info/.
		}
	}
}

// writeFileFrom copies r into a new file at target. The tar reader
// bounds r to the entry size.
func writeFileFrom(target string, r io.Reader, perm fs.FileMode) error {
	f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", target, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", target, err)
	}
	return nil
}

// entryName normalizes a tar or zip member name for comparison:
// "./info/paths.json" and "info/paths.json" refer to the same entry.
func entryName(name string) string {
	return strings.TrimPrefix(path.Clean(name), "/")
}

// unsafeName reports whether a raw member name could escape the
// extraction root: a ".." element, or a backslash, which becomes a
// path separator once the name is converted for the local filesystem.
// Package entry names are slash-separated and never contain
// backslashes. Checked before normalization: a hostile archive is
// rejected loudly rather than having its traversal cleaned away.
func unsafeName(name string) bool {
	if strings.ContainsRune(name, '\\') {
		return true
	}
	for _, elem := range strings.Split(name, "/") {
		if elem == ".." {
			return true
		}
	}
	return false
}
