package pathsjson

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/opencontainers/go-digest"
	"golang.org/x/sync/errgroup"
)

// VerifyError reports one path that failed verification against the
// manifest.
type VerifyError struct {
	// Path is the entry's relative path.
	Path string

	// Reason describes the mismatch.
	Reason string

	// Err is the underlying filesystem error, if any.
	Err error
}

func (e *VerifyError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("pathsjson: verify %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("pathsjson: verify %s: %s", e.Path, e.Reason)
}

func (e *VerifyError) Unwrap() error { return e.Err }

// VerifyDir checks an extracted package tree against the manifest.
//
// Every entry must exist under dir with its declared kind: a regular
// file for PathTypeHardlink, a symbolic link for PathTypeSoftlink, a
// directory for PathTypeDirectory. Hardlink entries carrying
// SizeInBytes or SHA256 must additionally match size and content hash.
//
// Entries are verified concurrently; the first failure is returned as a
// *VerifyError and cancels the remaining work. Cancellation of ctx is
// honored between entries, not mid-hash.
func (m *Manifest) VerifyDir(ctx context.Context, dir string, opts ...VerifyOption) error {
	cfg := newVerifyConfig(opts...)
	cfg.log().Debug("verifying package tree", "dir", dir, "entries", len(m.Paths), "workers", cfg.workers)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.workers)

	for i := range m.Paths {
		if gctx.Err() != nil {
			break
		}
		entry := &m.Paths[i]
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return verifyEntry(dir, entry)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// verifyEntry checks one entry against the tree rooted at root.
func verifyEntry(root string, e *Entry) error {
	// fs.ValidPath does not reject backslashes, which Windows treats
	// as path separators.
	if !fs.ValidPath(e.RelativePath) || strings.ContainsRune(e.RelativePath, '\\') {
		return &VerifyError{Path: e.RelativePath, Reason: "invalid relative path"}
	}
	target := filepath.Join(root, filepath.FromSlash(e.RelativePath))

	switch e.PathType {
	case PathTypeDirectory:
		fi, err := os.Stat(target)
		if err != nil {
			return statError(e.RelativePath, err)
		}
		if !fi.IsDir() {
			return &VerifyError{Path: e.RelativePath, Reason: "not a directory"}
		}
		return nil
	case PathTypeSoftlink:
		fi, err := os.Lstat(target)
		if err != nil {
			return statError(e.RelativePath, err)
		}
		if fi.Mode()&fs.ModeSymlink == 0 {
			return &VerifyError{Path: e.RelativePath, Reason: "not a symlink"}
		}
		return nil
	case PathTypeHardlink:
		fi, err := os.Lstat(target)
		if err != nil {
			return statError(e.RelativePath, err)
		}
		if !fi.Mode().IsRegular() {
			return &VerifyError{Path: e.RelativePath, Reason: "not a regular file"}
		}
		if e.SizeInBytes != nil && uint64(fi.Size()) != *e.SizeInBytes {
			return &VerifyError{Path: e.RelativePath, Reason: fmt.Sprintf("size is %d, want %d", fi.Size(), *e.SizeInBytes)}
		}
		if len(e.SHA256) > 0 {
			return verifyContent(target, e)
		}
		return nil
	default:
		return &VerifyError{Path: e.RelativePath, Reason: "unknown path type"}
	}
}

func statError(path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return &VerifyError{Path: path, Reason: "missing", Err: err}
	}
	return &VerifyError{Path: path, Reason: "stat failed", Err: err}
}

// verifyContent hashes the file at target and compares against the
// entry's recorded digest.
func verifyContent(target string, e *Entry) error {
	want, ok := e.Digest()
	if !ok {
		return nil
	}
	f, err := os.Open(target)
	if err != nil {
		return &VerifyError{Path: e.RelativePath, Reason: "open failed", Err: err}
	}
	defer f.Close()

	digester := digest.SHA256.Digester()
	if _, err := io.Copy(digester.Hash(), f); err != nil {
		return &VerifyError{Path: e.RelativePath, Reason: "read failed", Err: err}
	}
	if got := digester.Digest(); got != want {
		return &VerifyError{Path: e.RelativePath, Reason: fmt.Sprintf("digest is %s, want %s", got, want)}
	}
	return nil
}
