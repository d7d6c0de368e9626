package pathsjson

import (
	"encoding/json"
	"fmt"
)

// PackagePath is the location of the canonical manifest within a
// package, relative to the package root.
const PackagePath = "info/paths.json"

// Version selects the manifest schema version.
type Version int

const (
	// Version1 carries optional per-entry sha256 and size_in_bytes.
	Version1 Version = 1

	// Version2 drops the per-entry hash fields from the serialized form.
	Version2 Version = 2
)

func (v Version) valid() bool {
	return v == Version1 || v == Version2
}

// Manifest models the paths.json installation manifest of a package:
// every path the package installs and how each must be placed into the
// prefix.
//
// A Manifest is built once per load or reconstruction call and shares
// no state with other manifests. Fields are exported so authoring tools
// can edit a manifest before re-serializing it; the serializer
// re-validates on write.
type Manifest struct {
	// PathsVersion selects the schema used on serialization.
	PathsVersion Version

	// Paths holds the entries in install order. Order is semantically
	// meaningful, and duplicate relative paths, when an archive carries
	// them, are preserved rather than deduplicated.
	Paths []Entry
}

// Validate checks the schema version and every entry. Entry errors are
// prefixed with their index in Paths.
func (m *Manifest) Validate() error {
	if !m.PathsVersion.valid() {
		return fmt.Errorf("%w: paths_version %d", ErrInvalidVersion, m.PathsVersion)
	}
	for i := range m.Paths {
		if err := m.Paths[i].Validate(); err != nil {
			return fmt.Errorf("paths[%d]: %w", i, err)
		}
	}
	return nil
}

// manifestWireV1 and manifestWireV2 are the two serialized shapes of a
// manifest. The Version2 shape is built from entry wire values that
// have no hash fields, so stripping them is structural, not a runtime
// filter.
type manifestWireV1 struct {
	PathsVersion Version       `json:"paths_version"`
	Paths        []entryWireV1 `json:"paths"`
}

type manifestWireV2 struct {
	PathsVersion Version       `json:"paths_version"`
	Paths        []entryWireV2 `json:"paths"`
}

// MarshalJSON implements [json.Marshaler].
//
// The wire shape is selected by PathsVersion: Version2 output never
// contains sha256 or size_in_bytes, whatever the in-memory entries
// carry. Writing a manifest whose version is outside the supported set
// fails with ErrInvalidVersion.
func (m Manifest) MarshalJSON() ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if m.PathsVersion == Version2 {
		w := manifestWireV2{
			PathsVersion: m.PathsVersion,
			Paths:        make([]entryWireV2, len(m.Paths)),
		}
		for i := range m.Paths {
			w.Paths[i] = m.Paths[i].wireV2()
		}
		return json.Marshal(w)
	}
	w := manifestWireV1{
		PathsVersion: m.PathsVersion,
		Paths:        make([]entryWireV1, len(m.Paths)),
	}
	for i := range m.Paths {
		w.Paths[i] = m.Paths[i].wireV1()
	}
	return json.Marshal(w)
}

// UnmarshalJSON implements [json.Unmarshaler].
//
// paths_version and paths are required; unknown additional fields are
// ignored for forward compatibility. A version outside the supported
// set fails with a parse error that also matches ErrInvalidVersion.
func (m *Manifest) UnmarshalJSON(data []byte) error {
	var w struct {
		PathsVersion *Version `json:"paths_version"`
		Paths        *[]Entry `json:"paths"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if w.PathsVersion == nil {
		return fmt.Errorf("%w: missing paths_version", ErrParse)
	}
	if !w.PathsVersion.valid() {
		return fmt.Errorf("%w: %w: paths_version %d", ErrParse, ErrInvalidVersion, *w.PathsVersion)
	}
	if w.Paths == nil {
		return fmt.Errorf("%w: missing paths", ErrParse)
	}
	m.PathsVersion = *w.PathsVersion
	m.Paths = *w.Paths
	return nil
}

var _ json.Marshaler = Manifest{}
var _ json.Unmarshaler = (*Manifest)(nil)
