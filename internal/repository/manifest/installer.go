package manifest

import (
	"github.com/playnite-extensions/pext-release/internal/domain/release"
)

// packagesKey holds the release history of an installer manifest.
const packagesKey = "Packages"

// Installer is the release history consumed by the update feed.
type Installer struct {
	*Document
}

// OpenInstaller loads the installer manifest at path.
func OpenInstaller(path string) (*Installer, error) {
	doc, err := Open(path)
	if err != nil {
		return nil, err
	}

	return &Installer{Document: doc}, nil
}

// Packages returns the release records, newest insertion first.
// A missing or empty list yields no records.
func (i *Installer) Packages() ([]release.Record, error) {
	var records []release.Record
	if _, err := i.Decode(packagesKey, &records); err != nil {
		return nil, err
	}

	return records, nil
}

// AddPackage inserts record at the head of Packages.
func (i *Installer) AddPackage(record release.Record) error {
	return i.Prepend(packagesKey, record)
}
