package release

import (
	"fmt"
	"slices"
)

// Mode selects the operation applied to every configured plugin.
type Mode string

const (
	// ModeCopy mirrors each build output tree into an output directory.
	ModeCopy Mode = "copy"
	// ModePack archives each build output tree into <output>/<plugin>.pext.
	ModePack Mode = "pack"
	// ModeUpdate rewrites the extension and installer manifests.
	ModeUpdate Mode = "update"
)

// Modes lists the supported modes in help order.
func Modes() []Mode {
	return []Mode{ModeCopy, ModePack, ModeUpdate}
}

// ParseMode converts a command line word into a Mode.
func ParseMode(s string) (Mode, error) {
	mode := Mode(s)
	if !slices.Contains(Modes(), mode) {
		return "", fmt.Errorf("%w: %s", ErrUnknownMode, s)
	}

	return mode, nil
}

// String implements fmt.Stringer.
func (m Mode) String() string {
	return string(m)
}
