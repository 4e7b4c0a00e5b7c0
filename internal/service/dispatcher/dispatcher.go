package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/playnite-extensions/pext-release/internal/config"
	domain "github.com/playnite-extensions/pext-release/internal/domain/release"
	"github.com/playnite-extensions/pext-release/internal/logger"
	"github.com/playnite-extensions/pext-release/internal/repository/descriptor"
	"github.com/playnite-extensions/pext-release/internal/service/packager"
	"github.com/playnite-extensions/pext-release/internal/service/updater"
)

var errConfigNotSet = errors.New("configuration is not set")

// Options are the inputs of a single run.
type Options struct {
	// Config describes the repository layout and plugin list.
	Config *config.Config
	// Mode is copy, pack or update.
	Mode string
	// Argument is the output directory for copy/pack and the version for update.
	Argument string
	// DryRun logs planned changes without touching the filesystem.
	DryRun bool
	// Now overrides the release date clock. Defaults to time.Now.
	Now func() time.Time
}

// pluginAction is applied to each plugin after its directories are checked.
type pluginAction func(ctx context.Context, plugin domain.Plugin) error

// Run validates opts, takes the release lock and applies the selected mode
// to every configured plugin in order.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "dispatcher")

	mode, err := domain.ParseMode(opts.Mode)
	if err != nil {
		return err
	}

	cfg := opts.Config
	if cfg == nil {
		return errConfigNotSet
	}

	if err = config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if err = validateDir(cfg.SourceDir()); err != nil {
		return err
	}

	unlock, err := acquireLock(cfg.LockPath())
	if err != nil {
		return err
	}

	defer unlock()

	action, err := prepare(ctx, mode, opts)
	if err != nil {
		return err
	}

	plugins := cfg.Plugins()
	for _, plugin := range plugins {
		if err = processPlugin(ctx, plugin, action); err != nil {
			return fmt.Errorf("%s %s: %w", mode, plugin.Name, err)
		}
	}

	logger.InfoKV(ctx, "Release step completed", "mode", mode, "plugins", len(plugins), "dry_run", opts.DryRun)

	return nil
}

// prepare does the once-per-run work of a mode and returns its per-plugin action.
func prepare(ctx context.Context, mode domain.Mode, opts *Options) (pluginAction, error) {
	packagerOptions := []packager.Option{
		packager.WithDryRun(opts.DryRun),
		packager.WithHostProcesses(opts.Config.HostProcesses...),
	}

	switch mode {
	case domain.ModeCopy, domain.ModePack:
		outputDir, err := filepath.Abs(opts.Argument)
		if err != nil {
			return nil, fmt.Errorf("resolve output directory: %w", err)
		}

		if err = validateDir(outputDir); err != nil {
			return nil, err
		}

		if mode == domain.ModeCopy {
			return func(ctx context.Context, plugin domain.Plugin) error {
				return packager.Copy(ctx, plugin, outputDir, packagerOptions...)
			}, nil
		}

		return func(ctx context.Context, plugin domain.Plugin) error {
			return packager.Pack(ctx, plugin, outputDir, packagerOptions...)
		}, nil

	case domain.ModeUpdate:
		return prepareUpdate(ctx, opts)
	}

	return nil, fmt.Errorf("%w: %s", domain.ErrUnknownMode, mode)
}

// prepareUpdate reads the SDK version and checks the target version once for all plugins.
func prepareUpdate(ctx context.Context, opts *Options) (pluginAction, error) {
	cfg := opts.Config

	apiVersion, err := descriptor.ReadDependencyVersion(cfg.DependencyDescriptorPath(), cfg.DependencyMarker)
	if err != nil {
		return nil, fmt.Errorf("read dependency version: %w", err)
	}

	version, err := domain.ValidateVersion(opts.Argument)
	if err != nil {
		return nil, err
	}

	packageURL, err := cfg.PackageURLTemplate()
	if err != nil {
		return nil, err
	}

	up, err := updater.New(updater.Options{
		PackageURL: packageURL,
		Now:        opts.Now,
		DryRun:     opts.DryRun,
	})
	if err != nil {
		return nil, err
	}

	logger.InfoKV(ctx, "Updating manifests", "version", version, "required_api_version", apiVersion)

	return func(ctx context.Context, plugin domain.Plugin) error {
		if err := up.UpdateExtension(ctx, plugin, version); err != nil {
			return err
		}

		_, err := up.UpdateInstaller(ctx, plugin, version, apiVersion)

		return err
	}, nil
}

// processPlugin checks the plugin layout and runs action with a plugin-scoped logger.
func processPlugin(ctx context.Context, plugin domain.Plugin, action pluginAction) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := validateDir(plugin.Dir); err != nil {
		return err
	}

	if err := validateDir(plugin.BuildOutputDir); err != nil {
		return err
	}

	return action(logger.WithKV(ctx, "plugin", plugin.Name), plugin)
}

// validateDir fails when path is missing or is not a directory.
func validateDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", domain.ErrPathNotFound, path)
		}

		return fmt.Errorf("stat %s: %w", path, err)
	}

	if !info.IsDir() {
		return fmt.Errorf("%w: %s", domain.ErrNotADirectory, path)
	}

	return nil
}
