package dispatcher

import (
	"fmt"
	"os"

	"github.com/gofrs/flock"

	domain "github.com/playnite-extensions/pext-release/internal/domain/release"
)

// acquireLock takes the run lock without waiting and returns its release func.
// Releasing unlocks and then removes the lock file, so nothing is left in the
// repository root after a run. Unlock closes the handle first, which Windows
// needs before the file can be deleted.
func acquireLock(path string) (func(), error) {
	fileLock := flock.New(path)

	locked, err := fileLock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}

	if !locked {
		return nil, fmt.Errorf("%w: %s is held", domain.ErrReleaseInProgress, path)
	}

	return func() {
		_ = fileLock.Unlock()
		_ = os.Remove(path)
	}, nil
}
