package release

import "errors"

var (
	// ErrPathNotFound is returned when an expected file or directory is missing.
	ErrPathNotFound = errors.New("path not found")
	// ErrNotADirectory is returned when a path exists but is not a directory.
	ErrNotADirectory = errors.New("not a directory")
	// ErrInvalidVersion is returned when a string fails the version pattern.
	ErrInvalidVersion = errors.New("invalid version")
	// ErrManifestFieldMissing is returned when an expected marker or field is absent.
	ErrManifestFieldMissing = errors.New("manifest field missing")
	// ErrUnknownMode is returned for an unrecognized operation mode.
	ErrUnknownMode = errors.New("unknown mode")
	// ErrArgumentCount is returned when the command line has the wrong arity.
	ErrArgumentCount = errors.New("wrong number of arguments")
	// ErrReleaseInProgress is returned when another run holds the release lock.
	ErrReleaseInProgress = errors.New("another release run is in progress")
)
