package release

import (
	"time"
)

// ReleaseDateLayout is the layout of Record.ReleaseDate.
const ReleaseDateLayout = "2006-01-02"

// Plugin is one distributable extension module with its own build output
// and manifest pair. All paths are absolute or relative to the working directory.
type Plugin struct {
	// Name identifies the plugin and names its source folder and archive.
	Name string
	// Dir is the plugin source directory (src/<name>).
	Dir string
	// BuildOutputDir is the compiled output tree (src/<name>/bin/<configuration>/<target>).
	BuildOutputDir string
	// ExtensionManifest is the per-plugin descriptor (src/<name>/extension.yaml).
	ExtensionManifest string
	// InstallerManifest is the release history document (manifests/<name>.yaml).
	InstallerManifest string
}

// Record is one published version in an installer manifest.
// Field names follow the YAML keys consumed by the update feed.
type Record struct {
	// Version is the plugin version of this release.
	Version string `yaml:"Version"`
	// RequiredApiVersion is the minimum host SDK version.
	RequiredApiVersion string `yaml:"RequiredApiVersion"` //nolint:revive,stylecheck // Key name is fixed by the feed format.
	// ReleaseDate is the publication day in YYYY-MM-DD.
	ReleaseDate string `yaml:"ReleaseDate"`
	// PackageUrl is where the .pext archive can be downloaded.
	PackageUrl string `yaml:"PackageUrl"` //nolint:revive,stylecheck // Key name is fixed by the feed format.
}

// NewRecord builds a record for version released at the given time.
func NewRecord(version, requiredAPIVersion, packageURL string, releasedAt time.Time) Record {
	return Record{
		Version:            version,
		RequiredApiVersion: requiredAPIVersion,
		ReleaseDate:        releasedAt.Format(ReleaseDateLayout),
		PackageUrl:         packageURL,
	}
}

// ContainsVersion reports whether any record carries the given version.
func ContainsVersion(records []Record, version string) bool {
	for _, record := range records {
		if record.Version == version {
			return true
		}
	}

	return false
}
