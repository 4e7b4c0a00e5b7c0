package descriptor

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/playnite-extensions/pext-release/internal/domain/release"
)

// versionWidth is the number of characters taken after the marker.
const versionWidth = 5

// ReadDependencyVersion scans path line by line and returns the five
// characters following marker on the first line that contains it. A window
// cut short by the end of the line is validated as is.
func ReadDependencyVersion(path, marker string) (string, error) {
	file, err := os.Open(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", release.ErrPathNotFound, path)
		}

		return "", fmt.Errorf("open descriptor: %w", err)
	}

	defer func() {
		_ = file.Close()
	}()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()

		index := strings.Index(line, marker)
		if index == -1 {
			continue
		}

		rest := line[index+len(marker):]

		return release.ValidateVersion(rest[:min(len(rest), versionWidth)])
	}

	if err = scanner.Err(); err != nil {
		return "", fmt.Errorf("read descriptor: %w", err)
	}

	return "", fmt.Errorf("%w: %q not found in %s", release.ErrManifestFieldMissing, marker, path)
}
