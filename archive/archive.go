// Package archive provides streaming access to conda package
// containers.
//
// Two container formats exist: the original .tar.bz2, a single
// bzip2-compressed tarball, and the newer .conda, a zip holding
// separately zstd-compressed inner tarballs (info-*.tar.zst for
// package metadata, pkg-*.tar.zst for payload). Operations locate and
// read individual entries without materializing the archive, decoding
// only the nested tarball that can contain the requested name.
package archive

import (
	"fmt"
	"strings"
)

// Type identifies a package container format.
type Type uint8

const (
	TypeUnknown Type = iota
	TypeTarBz2
	TypeConda
)

func (t Type) String() string {
	switch t {
	case TypeTarBz2:
		return "tar.bz2"
	case TypeConda:
		return "conda"
	default:
		return "unknown"
	}
}

// DetectType classifies an archive by its file name.
func DetectType(path string) Type {
	switch {
	case strings.HasSuffix(path, ".conda"):
		return TypeConda
	case strings.HasSuffix(path, ".tar.bz2"):
		return TypeTarBz2
	default:
		return TypeUnknown
	}
}

// ReadEntry returns the contents of the named entry, streaming through
// the archive without extracting it. Entry names are slash-separated
// and relative to the package root, e.g. "info/paths.json".
//
// Fails with ErrEntryNotFound when the archive has no such entry and
// ErrUnknownFormat when the path matches no supported container format.
func ReadEntry(archivePath, name string, opts ...ReadOption) ([]byte, error) {
	cfg := newReadConfig(opts...)

	var (
		data []byte
		err  error
	)
	switch t := DetectType(archivePath); t {
	case TypeConda:
		data, err = readCondaEntry(archivePath, name, cfg)
	case TypeTarBz2:
		data, err = readTarBz2Entry(archivePath, name, cfg)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, archivePath)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", archivePath, err)
	}
	return data, nil
}

// ListInfo returns the names of the metadata entries under info/, in
// archive order. It is the discovery interface for packages that
// predate the canonical manifest.
func ListInfo(archivePath string) ([]string, error) {
	var (
		names []string
		err   error
	)
	switch t := DetectType(archivePath); t {
	case TypeConda:
		names, err = listCondaInfo(archivePath)
	case TypeTarBz2:
		names, err = listTarBz2Info(archivePath)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, archivePath)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", archivePath, err)
	}
	return names, nil
}

// ExtractInfo materializes the info/ subtree of the archive under
// destDir, preserving the info/ prefix, so that directory-based loaders
// can operate on packages that were never fully extracted.
func ExtractInfo(archivePath, destDir string) error {
	var err error
	switch t := DetectType(archivePath); t {
	case TypeConda:
		err = extractCondaInfo(archivePath, destDir)
	case TypeTarBz2:
		err = extractTarBz2Info(archivePath, destDir)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, archivePath)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", archivePath, err)
	}
	return nil
}
