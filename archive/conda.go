package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// innerSuffix is the extension of the compressed tarballs nested inside
// a .conda container.
const innerSuffix = ".tar.zst"

// innerPrefix returns the nested-tarball prefix that can contain the
// named entry: metadata lives in info-*.tar.zst, payload in
// pkg-*.tar.zst.
func innerPrefix(name string) string {
	if name == "info" || strings.HasPrefix(name, "info/") {
		return "info-"
	}
	return "pkg-"
}

// readCondaEntry streams through the nested tarballs of a .conda
// container that can hold name and returns the entry's contents.
func readCondaEntry(archivePath, name string, cfg *readConfig) ([]byte, error) {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, fmt.Errorf("open conda container: %w", err)
	}
	defer zr.Close()

	prefix := innerPrefix(name)
	for _, f := range zr.File {
		if !strings.HasPrefix(f.Name, prefix) || !strings.HasSuffix(f.Name, innerSuffix) {
			continue
		}
		data, err := readInnerTarEntry(f, name, cfg)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, ErrEntryNotFound) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrEntryNotFound, name)
}

// readInnerTarEntry decompresses one nested tarball and scans it for
// the named entry.
func readInnerTarEntry(f *zip.File, name string, cfg *readConfig) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", f.Name, err)
	}
	defer rc.Close()

	dec, err := newDecoder(rc, cfg.maxDecoderMemory)
	if err != nil {
		return nil, fmt.Errorf("decompress %s: %w", f.Name, err)
	}
	defer dec.Close()

	return findTarEntry(dec, name, cfg)
}

// listCondaInfo collects the info/ entry names across the metadata
// tarballs of a .conda container.
func listCondaInfo(archivePath string) ([]string, error) {
	var names []string
	err := eachInnerTar(archivePath, "info-", func(r io.Reader) error {
		found, err := listTarInfo(r)
		if err != nil {
			return err
		}
		names = append(names, found...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}

// extractCondaInfo materializes the info/ subtree of a .conda container
// under destDir.
func extractCondaInfo(archivePath, destDir string) error {
	return eachInnerTar(archivePath, "info-", func(r io.Reader) error {
		return extractTarInfo(r, destDir)
	})
}

// eachInnerTar opens the container and invokes fn with a decompressed
// tar stream for every nested tarball matching prefix.
func eachInnerTar(archivePath, prefix string, fn func(io.Reader) error) error {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("open conda container: %w", err)
	}
	defer zr.Close()

	for _, f := range zr.File {
		if !strings.HasPrefix(f.Name, prefix) || !strings.HasSuffix(f.Name, innerSuffix) {
			continue
		}
		if err := withInnerTar(f, fn); err != nil {
			return err
		}
	}
	return nil
}

// withInnerTar scopes the lifetime of one nested tarball's reader and
// decoder around fn.
func withInnerTar(f *zip.File, fn func(io.Reader) error) error {
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("open %s: %w", f.Name, err)
	}
	defer rc.Close()

	dec, err := newDecoder(rc, 0)
	if err != nil {
		return fmt.Errorf("decompress %s: %w", f.Name, err)
	}
	defer dec.Close()

	return fn(dec)
}

// newDecoder creates a zstd decoder for a single streaming read.
// If maxMemory is 0, no memory limit is applied.
func newDecoder(r io.Reader, maxMemory uint64) (*zstd.Decoder, error) {
	opts := []zstd.DOption{zstd.WithDecoderConcurrency(1)}
	if maxMemory > 0 {
		opts = append(opts, zstd.WithDecoderMaxMemory(maxMemory))
	}
	return zstd.NewReader(r, opts...)
}
