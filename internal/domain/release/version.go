package release

import (
	"fmt"
	"regexp"
)

// versionPattern only anchors at the start and leaves the dots unescaped,
// so "1.2.3-beta" and "1x2y3" both pass.
var versionPattern = regexp.MustCompile(`^\d.\d.\d`)

// ValidateVersion returns candidate unchanged when it starts with a
// digit-dot-digit-dot-digit sequence.
func ValidateVersion(candidate string) (string, error) {
	if !versionPattern.MatchString(candidate) {
		return "", fmt.Errorf("%w: %q", ErrInvalidVersion, candidate)
	}

	return candidate, nil
}
