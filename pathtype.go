package pathsjson

import "fmt"

// PathType describes how a path is placed into an installation prefix.
type PathType uint8

const (
	// PathTypeHardlink marks a regular file installed by hard-linking
	// (or copying, when NoLink is set).
	PathTypeHardlink PathType = iota + 1

	// PathTypeSoftlink marks a symbolic link.
	PathTypeSoftlink

	// PathTypeDirectory marks an explicitly declared empty directory.
	PathTypeDirectory
)

// ParsePathType converts a manifest tag to a PathType.
// Tags outside the closed set fail with ErrInvalidVariant.
func ParsePathType(tag string) (PathType, error) {
	switch tag {
	case "hardlink":
		return PathTypeHardlink, nil
	case "softlink":
		return PathTypeSoftlink, nil
	case "directory":
		return PathTypeDirectory, nil
	default:
		return 0, fmt.Errorf("%w: path type %q", ErrInvalidVariant, tag)
	}
}

func (t PathType) String() string {
	switch t {
	case PathTypeHardlink:
		return "hardlink"
	case PathTypeSoftlink:
		return "softlink"
	case PathTypeDirectory:
		return "directory"
	default:
		return "unknown"
	}
}

// valid reports whether t is one of the declared variants.
func (t PathType) valid() bool {
	switch t {
	case PathTypeHardlink, PathTypeSoftlink, PathTypeDirectory:
		return true
	default:
		return false
	}
}

// MarshalText implements [encoding.TextMarshaler].
func (t PathType) MarshalText() ([]byte, error) {
	if !t.valid() {
		return nil, fmt.Errorf("%w: path type %d", ErrInvalidVariant, uint8(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (t *PathType) UnmarshalText(text []byte) error {
	parsed, err := ParsePathType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
