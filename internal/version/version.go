package version

import "fmt"

var (
	// Version of the pext-release build. Overridden via ldflags.
	Version = "0.1.0"
	// Commit is the short git SHA embedded at build time (or "none").
	Commit = "none"
	// BuildTime is the UTC build timestamp embedded at build time.
	BuildTime = "unknown"
)

// Short returns only the version string.
func Short() string {
	return Version
}

// Full returns the version with commit and build time, as printed by `pext-release version`.
func Full() string {
	return fmt.Sprintf("pext-release %s (commit %s, built %s)", Version, Commit, BuildTime)
}
