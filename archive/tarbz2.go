package archive

import (
	"bufio"
	"compress/bzip2"
	"fmt"
	"io"
	"os"
)

// withTarBz2 opens a .tar.bz2 archive and invokes fn with the
// decompressed tar stream, closing the file on all paths.
func withTarBz2(archivePath string, fn func(io.Reader) error) error {
	f, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer f.Close()

	return fn(bzip2.NewReader(bufio.NewReader(f)))
}

func readTarBz2Entry(archivePath, name string, cfg *readConfig) ([]byte, error) {
	var data []byte
	err := withTarBz2(archivePath, func(r io.Reader) error {
		var err error
		data, err = findTarEntry(r, name, cfg)
		return err
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

func listTarBz2Info(archivePath string) ([]string, error) {
	var names []string
	err := withTarBz2(archivePath, func(r io.Reader) error {
		var err error
		names, err = listTarInfo(r)
		return err
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}

func extractTarBz2Info(archivePath, destDir string) error {
	return withTarBz2(archivePath, func(r io.Reader) error {
		return extractTarInfo(r, destDir)
	})
}
