package pathsjson

import "errors"

// Sentinel errors for manifest operations.
//
// Errors returned by this package fall into five classes. Callers match
// them with errors.Is:
//
//   - ErrInvalidVariant: a string tag does not name a known PathType or
//     FileMode variant.
//   - ErrInvalidEntry: an entry violates its structural constraints
//     (empty or absolute relative path, malformed hash).
//   - ErrInvalidVersion: a version outside the supported set. On the
//     write side it is returned bare; on the read side it is wrapped in
//     ErrParse, since a bad version in input is a parse failure.
//   - ErrParse: input that is syntactically or structurally not a valid
//     manifest or legacy metadata file. The message carries the file and
//     line where applicable.
//   - ErrNotFound: a required source does not exist. Errors originating
//     from a missing file also match fs.ErrNotExist.
//
// Failures of the underlying filesystem or archive are returned wrapped
// with context and match none of the sentinels above; they surface the
// original os, fs, or archive error to errors.Is and errors.As.
var (
	// ErrInvalidVariant is returned when a tag does not name a known enum variant.
	ErrInvalidVariant = errors.New("pathsjson: invalid variant")

	// ErrInvalidEntry is returned when a paths entry violates its constraints.
	ErrInvalidEntry = errors.New("pathsjson: invalid entry")

	// ErrInvalidVersion is returned when a manifest version is not supported.
	ErrInvalidVersion = errors.New("pathsjson: invalid version")

	// ErrParse is returned when input cannot be decoded as a manifest or
	// legacy metadata file.
	ErrParse = errors.New("pathsjson: parse error")

	// ErrNotFound is returned when a manifest or required legacy source
	// does not exist.
	ErrNotFound = errors.New("pathsjson: not found")
)
