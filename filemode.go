package pathsjson

import "fmt"

// FileMode describes how a build-prefix placeholder embedded in a file
// must be rewritten at install time.
type FileMode uint8

const (
	// FileModeUnspecified is the state of an entry that carries no
	// placeholder. It is a distinct, observable value, not an error,
	// and never appears in a serialized manifest.
	FileModeUnspecified FileMode = iota

	// FileModeBinary requires binary-safe replacement: the rewritten
	// prefix must not change the file length, so the placeholder is
	// padded to its original size.
	FileModeBinary

	// FileModeText allows plain text substitution.
	FileModeText
)

// ParseFileMode converts a manifest tag to a FileMode.
// Only "binary" and "text" are valid tags; the unspecified state has no
// tag because it never crosses the wire. Anything else fails with
// ErrInvalidVariant.
func ParseFileMode(tag string) (FileMode, error) {
	switch tag {
	case "binary":
		return FileModeBinary, nil
	case "text":
		return FileModeText, nil
	default:
		return FileModeUnspecified, fmt.Errorf("%w: file mode %q", ErrInvalidVariant, tag)
	}
}

func (m FileMode) String() string {
	switch m {
	case FileModeUnspecified:
		return "unspecified"
	case FileModeBinary:
		return "binary"
	case FileModeText:
		return "text"
	default:
		return "unknown"
	}
}

// MarshalText implements [encoding.TextMarshaler].
func (m FileMode) MarshalText() ([]byte, error) {
	switch m {
	case FileModeBinary, FileModeText:
		return []byte(m.String()), nil
	default:
		return nil, fmt.Errorf("%w: file mode %d", ErrInvalidVariant, uint8(m))
	}
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (m *FileMode) UnmarshalText(text []byte) error {
	parsed, err := ParseFileMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// PrefixPlaceholder records the literal build-time prefix baked into a
// file and the replacement mode required to rewrite it.
//
// Placeholder is preserved byte-exact, including platform-specific
// separators (a Windows build prefix such as `D:\bld\pkg_1667595064120\_h_env`
// stays untouched): locating the placeholder inside the file later
// depends on the exact original bytes.
type PrefixPlaceholder struct {
	// FileMode is the replacement mode, always FileModeBinary or
	// FileModeText for a placeholder attached to an entry.
	FileMode FileMode

	// Placeholder is the literal prefix string embedded at build time.
	Placeholder string
}
