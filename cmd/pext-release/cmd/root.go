package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/playnite-extensions/pext-release/internal/config"
	"github.com/playnite-extensions/pext-release/internal/domain/release"
	"github.com/playnite-extensions/pext-release/internal/logger"
	"github.com/playnite-extensions/pext-release/internal/service/dispatcher"
	"github.com/playnite-extensions/pext-release/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string
	// rootDir overrides the repository root from the configuration.
	rootDir string
	// logLevel overrides the configured log level.
	logLevel string
	// dryRun reports planned changes without writing anything.
	dryRun bool

	// rootCmd runs one release mode over every configured plugin.
	rootCmd = &cobra.Command{
		Use:   "pext-release <copy|pack|update> <output-dir|version>",
		Short: "Package Playnite extension plugins and maintain their manifests",
		Long: `pext-release works on every configured plugin in order:

  copy <output-dir>   mirror each build output into <output-dir>/<plugin>
  pack <output-dir>   write each build output to <output-dir>/<plugin>.pext
  update <version>    set the version in extension.yaml and add a release
                      record to manifests/<plugin>.yaml`,
		Args:          validateArgs,
		ValidArgs:     modeNames(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}
)

// Execute runs the pext-release CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		logger.Error(context.Background(), err)
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	flags := rootCmd.Flags()
	flags.StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	flags.StringVar(&rootDir, "root", "", "repository root containing src/ and manifests/ (overrides config)")
	flags.StringVar(&logLevel, "log-level", "", "debug, info, warn or error (overrides config)")
	flags.BoolVar(&dryRun, "dry-run", false, "log planned changes without writing files")
}

// modeNames lists the mode words offered by shell completion.
func modeNames() []string {
	modes := release.Modes()

	names := make([]string, 0, len(modes))
	for _, mode := range modes {
		names = append(names, mode.String())
	}

	return names
}

func validateArgs(_ *cobra.Command, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: expected <mode> <argument>, got %d", release.ErrArgumentCount, len(args))
	}

	return nil
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("root") {
		cfg.Root = rootDir
	}

	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = logLevel
	}

	// Setup graceful shutdown handling.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	ctx = logger.WithName(ctx, "pext-release")

	level, ok := logger.ParseLogLevel(cfg.LogLevel)
	if !ok {
		logger.WarnKV(ctx, "Unknown log level, using info", "log_level", cfg.LogLevel)
	}

	logger.SetLevel(level)
	logger.DebugKV(ctx, "Starting", "version", version.Short(), "root", cfg.Root)

	return dispatcher.Run(ctx, &dispatcher.Options{
		Config:   cfg,
		Mode:     args[0],
		Argument: args[1],
		DryRun:   dryRun,
	})
}
