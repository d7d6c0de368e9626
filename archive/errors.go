package archive

import "errors"

// Sentinel errors for archive operations.
var (
	// ErrUnknownFormat is returned when a path matches no supported archive format.
	ErrUnknownFormat = errors.New("archive: unknown format")

	// ErrEntryNotFound is returned when the named entry does not exist in the archive.
	ErrEntryNotFound = errors.New("archive: entry not found")

	// ErrEntryTooLarge is returned when an entry exceeds the configured size limit.
	ErrEntryTooLarge = errors.New("archive: entry too large")

	// ErrUnsafePath is returned when an entry name would escape the extraction root.
	ErrUnsafePath = errors.New("archive: unsafe entry path")
)
