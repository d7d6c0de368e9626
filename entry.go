package pathsjson

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/opencontainers/go-digest"
)

// Entry is one manifest record: a single path installed by a package
// and how it must be placed into the installation prefix.
type Entry struct {
	// RelativePath locates the path below the package root,
	// slash-separated. Never empty, never absolute.
	RelativePath string

	// NoLink forces the installer to copy the file instead of linking it.
	NoLink bool

	// PathType selects the link strategy.
	PathType PathType

	// PrefixPlaceholder describes the build prefix embedded in the
	// file, or nil when the file carries none.
	PrefixPlaceholder *PrefixPlaceholder

	// SHA256 is the raw 32-byte content hash, or nil when unknown.
	// Serialized only under Version1.
	SHA256 []byte

	// SizeInBytes is the file size, or nil when unknown.
	// Serialized only under Version1.
	SizeInBytes *uint64
}

// Validate checks the entry's structural constraints. It is applied to
// every entry crossing a serialization boundary, in either direction.
func (e *Entry) Validate() error {
	if e.RelativePath == "" {
		return fmt.Errorf("%w: empty relative path", ErrInvalidEntry)
	}
	if strings.HasPrefix(e.RelativePath, "/") || strings.HasPrefix(e.RelativePath, `\`) {
		return fmt.Errorf("%w: %s: absolute relative path", ErrInvalidEntry, e.RelativePath)
	}
	if !e.PathType.valid() {
		return fmt.Errorf("%w: %s: missing or unknown path type", ErrInvalidEntry, e.RelativePath)
	}
	if p := e.PrefixPlaceholder; p != nil && p.FileMode != FileModeBinary && p.FileMode != FileModeText {
		return fmt.Errorf("%w: %s: placeholder file mode must be binary or text", ErrInvalidEntry, e.RelativePath)
	}
	if e.SHA256 != nil && len(e.SHA256) != sha256.Size {
		return fmt.Errorf("%w: %s: sha256 must be %d bytes, got %d", ErrInvalidEntry, e.RelativePath, sha256.Size, len(e.SHA256))
	}
	return nil
}

// Digest returns the content hash in canonical sha256:<hex> form for
// display and comparison. The hash itself is stored as raw bytes; hex
// encoding exists only at this presentation boundary and in the
// serialized manifest. Returns false when no hash is recorded.
func (e *Entry) Digest() (digest.Digest, bool) {
	if len(e.SHA256) == 0 {
		return "", false
	}
	return digest.NewDigestFromEncoded(digest.SHA256, hex.EncodeToString(e.SHA256)), true
}

// entryWireV2 is the Version2 JSON shape of an entry. It has no hash
// fields at all, so a version-2 serialization cannot carry them no
// matter what the in-memory entry holds.
type entryWireV2 struct {
	Path              string    `json:"_path"`
	NoLink            bool      `json:"no_link,omitempty"`
	PathType          PathType  `json:"path_type"`
	PrefixPlaceholder *string   `json:"prefix_placeholder,omitempty"`
	FileMode          *FileMode `json:"file_mode,omitempty"`
}

// entryWireV1 is the Version1 JSON shape: the Version2 shape extended
// with the optional hash fields. Both schema versions decode through it.
type entryWireV1 struct {
	entryWireV2
	SHA256      string  `json:"sha256,omitempty"`
	SizeInBytes *uint64 `json:"size_in_bytes,omitempty"`
}

// wireV2 converts the entry to the Version2 serialized shape. The
// caller validates first.
func (e *Entry) wireV2() entryWireV2 {
	w := entryWireV2{
		Path:     e.RelativePath,
		NoLink:   e.NoLink,
		PathType: e.PathType,
	}
	if p := e.PrefixPlaceholder; p != nil {
		mode := p.FileMode
		w.PrefixPlaceholder = &p.Placeholder
		w.FileMode = &mode
	}
	return w
}

// wireV1 converts the entry to the Version1 serialized shape.
func (e *Entry) wireV1() entryWireV1 {
	w := entryWireV1{entryWireV2: e.wireV2()}
	if e.SHA256 != nil {
		w.SHA256 = hex.EncodeToString(e.SHA256)
	}
	w.SizeInBytes = e.SizeInBytes
	return w
}

// toEntry converts a decoded wire entry to its model form, enforcing
// the pairing of prefix_placeholder and file_mode and the entry
// constraints.
func (w *entryWireV1) toEntry() (Entry, error) {
	e := Entry{
		RelativePath: w.Path,
		NoLink:       w.NoLink,
		PathType:     w.PathType,
		SizeInBytes:  w.SizeInBytes,
	}
	switch {
	case w.PrefixPlaceholder != nil && w.FileMode != nil:
		e.PrefixPlaceholder = &PrefixPlaceholder{
			FileMode:    *w.FileMode,
			Placeholder: *w.PrefixPlaceholder,
		}
	case w.PrefixPlaceholder != nil:
		return Entry{}, fmt.Errorf("%w: %s: prefix_placeholder without file_mode", ErrParse, w.Path)
	case w.FileMode != nil:
		return Entry{}, fmt.Errorf("%w: %s: file_mode without prefix_placeholder", ErrParse, w.Path)
	}
	if w.SHA256 != "" {
		raw, err := hex.DecodeString(w.SHA256)
		if err != nil {
			return Entry{}, fmt.Errorf("%w: %s: sha256 is not hex: %w", ErrInvalidEntry, w.Path, err)
		}
		e.SHA256 = raw
	}
	if err := e.Validate(); err != nil {
		return Entry{}, err
	}
	return e, nil
}

// MarshalJSON implements [json.Marshaler]. A bare entry serializes in
// the Version1 shape; version-dependent field visibility is applied by
// [Manifest.MarshalJSON].
func (e Entry) MarshalJSON() ([]byte, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(e.wireV1())
}

// UnmarshalJSON implements [json.Unmarshaler].
func (e *Entry) UnmarshalJSON(data []byte) error {
	var w entryWireV1
	if err := json.Unmarshal(data, &w); err != nil {
		// The decoder keeps filling fields after saving the first
		// error, so _path is populated even when a variant tag is what
		// failed. Attach it for context.
		if w.Path != "" && errors.Is(err, ErrInvalidVariant) {
			return fmt.Errorf("%s: %w", w.Path, err)
		}
		return err
	}
	entry, err := w.toEntry()
	if err != nil {
		return err
	}
	*e = entry
	return nil
}

var _ json.Marshaler = Entry{}
var _ json.Unmarshaler = (*Entry)(nil)
