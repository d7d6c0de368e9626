package pathsjson

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/condakit/pathsjson/archive"
)

// Parse decodes a canonical manifest document.
//
// Malformed JSON and missing required top-level fields fail with
// ErrParse; entry-level violations fail with ErrInvalidEntry or
// ErrInvalidVariant. Unknown additional fields are ignored for forward
// compatibility.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		if errors.Is(err, ErrParse) || errors.Is(err, ErrInvalidEntry) || errors.Is(err, ErrInvalidVariant) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return &m, nil
}

// ParseReader decodes a canonical manifest document from r.
func ParseReader(r io.Reader) (*Manifest, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return Parse(data)
}

// ParseFile reads and decodes a canonical manifest file.
func ParseFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return Parse(data)
}

// FromPackageDir reads the canonical manifest from an extracted package
// directory. Fails with ErrNotFound when the directory has no
// info/paths.json, the condition that marks a package predating the
// canonical format.
func FromPackageDir(dir string) (*Manifest, error) {
	m, err := ParseFile(filepath.Join(dir, filepath.FromSlash(PackagePath)))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %w", ErrNotFound, err)
		}
		return nil, err
	}
	return m, nil
}

// maxManifestBytes caps the manifest entry read out of an archive.
// Real manifests run a few KiB per thousand entries; the cap only
// keeps a forged size header from demanding the allocation up front.
const maxManifestBytes = 64 << 20

// FromArchive locates and decodes the canonical manifest inside a
// package archive without materializing the archive. Fails with
// ErrNotFound when the archive carries no manifest entry; no fallback
// to the deprecated files is attempted. A manifest entry claiming an
// implausibly large size fails with archive.ErrEntryTooLarge.
func FromArchive(path string) (*Manifest, error) {
	data, err := archive.ReadEntry(path, PackagePath, archive.WithMaxEntrySize(maxManifestBytes))
	if err != nil {
		if errors.Is(err, archive.ErrEntryNotFound) {
			return nil, fmt.Errorf("%w: %w", ErrNotFound, err)
		}
		return nil, fmt.Errorf("read archive manifest: %w", err)
	}
	return Parse(data)
}

// FromPackageDirWithFallback reads the canonical manifest from an
// extracted package directory, reconstructing it from the deprecated
// metadata files when, and only when, the canonical file is absent. A
// malformed canonical file is a hard failure, never a trigger for
// reconstruction.
func FromPackageDirWithFallback(dir string, opts ...LoadOption) (*Manifest, error) {
	m, err := FromPackageDir(dir)
	if errors.Is(err, ErrNotFound) {
		return ReconstructFromPackageDir(dir, opts...)
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}
