package packager

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	cp "github.com/otiai10/copy"

	"github.com/playnite-extensions/pext-release/internal/domain/release"
	"github.com/playnite-extensions/pext-release/internal/logger"
)

// Copy replaces <outputDir>/<plugin> with a fresh copy of the build output.
func Copy(ctx context.Context, plugin release.Plugin, outputDir string, opts ...Option) error {
	o := newOptions(opts)
	target := filepath.Join(outputDir, plugin.Name)

	if o.dryRun {
		logger.InfoKV(ctx, "Dry run: would copy build output", "from", plugin.BuildOutputDir, "to", target)
		return nil
	}

	warnIfHostRunning(ctx, o.hostProcesses)

	if err := os.RemoveAll(target); err != nil {
		return fmt.Errorf("remove previous output: %w", err)
	}

	logger.InfoKV(ctx, "Copying build output", "from", plugin.BuildOutputDir, "to", target)

	err := cp.Copy(plugin.BuildOutputDir, target, cp.Options{
		OnSymlink: func(string) cp.SymlinkAction {
			return cp.Deep
		},
	})
	if err != nil {
		return fmt.Errorf("copy build output: %w", err)
	}

	return nil
}
