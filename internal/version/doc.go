// Package version exposes build metadata of pext-release.
//
// Version, Commit and BuildTime are injected with -ldflags at build time.
package version
