package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/playnite-extensions/pext-release/internal/domain/release"
)

// Config holds the repository layout and release settings.
type Config struct {
	// Root is the repository root containing src/ and manifests/.
	Root string `yaml:"root"`
	// Configuration is the build configuration folder under bin/ (Debug, Release).
	Configuration string `yaml:"configuration"`
	// Target is the target framework folder under the configuration (net462).
	Target string `yaml:"target"`
	// PluginNames lists the plugins processed by every mode, in order.
	PluginNames []string `yaml:"plugins" split_words:"true"`
	// DependencyDescriptor is the project file scanned for the SDK version, relative to Root.
	DependencyDescriptor string `yaml:"dependency_descriptor" split_words:"true"`
	// DependencyMarker precedes the SDK version inside DependencyDescriptor.
	DependencyMarker string `yaml:"dependency_marker" split_words:"true"`
	// PackageURL is a text/template rendered with .Plugin and .Version.
	PackageURL string `yaml:"package_url" split_words:"true"`
	// HostProcesses are executables that lock copied assemblies while running.
	HostProcesses []string `yaml:"host_processes" split_words:"true"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" split_words:"true"`
}

const (
	// DefaultConfigFilename may be absent; any other path must exist.
	DefaultConfigFilename = "pext-release.yaml"

	// EnvPrefix prefixes the environment overrides (PEXT_ROOT, PEXT_PLUGIN_NAMES, ...).
	EnvPrefix = "PEXT"

	// DefaultDependencyMarker is the SDK package reference fragment in the common project.
	DefaultDependencyMarker = `<PackageReference Include="PlayniteSDK" Version="`

	// DefaultPackageURL points at the GitHub release asset of a version.
	DefaultPackageURL = "https://github.com/playnite-extensions/extensions/releases/download/v{{ .Version }}/{{ .Plugin }}.pext"

	sourceDirName   = "src"
	manifestDirName = "manifests"
)

var (
	errConfigIsNotSet    = errors.New("configuration is not set")
	errNoPlugins         = errors.New("at least one plugin must be configured")
	errEmptyPluginName   = errors.New("plugin name is empty")
	errDuplicatePlugin   = errors.New("plugin is listed twice")
	errBuildLayoutNotSet = errors.New("build configuration and target must be set")
	errMarkerNotSet      = errors.New("dependency marker must be set")
)

// Default returns the settings used when nothing overrides them.
func Default() *Config {
	return &Config{
		Root:          ".",
		Configuration: "Release",
		Target:        "net462",
		PluginNames: []string{
			"F95ZoneMetadata",
			"DLSiteMetadata",
			"FanzaMetadata",
			"GameManagement",
		},
		DependencyDescriptor: filepath.Join(sourceDirName, "Extensions.Common", "Extensions.Common.csproj"),
		DependencyMarker:     DefaultDependencyMarker,
		PackageURL:           DefaultPackageURL,
		HostProcesses:        []string{"Playnite.DesktopApp.exe", "Playnite.FullscreenApp.exe"},
		LogLevel:             "info",
	}
}

// Load builds a Config from defaults, the YAML file at path and the
// environment. A missing file is only tolerated for DefaultConfigFilename.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	cfg := Default()

	contents, err := os.ReadFile(filepath.Clean(path))

	switch {
	case err == nil:
		if err = yaml.Unmarshal(contents, cfg); err != nil {
			return nil, fmt.Errorf("unmarshal settings: %w", err)
		}
	case errors.Is(err, os.ErrNotExist) && path == DefaultConfigFilename:
		// Defaults and environment only.
	case errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("read settings: %w: %s", release.ErrPathNotFound, path)
	default:
		return nil, fmt.Errorf("read settings: %w", err)
	}

	if err = envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("apply environment: %w", err)
	}

	if err = Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks required fields and fills the root default.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if cfg.Root == "" {
		cfg.Root = "."
	}

	if len(cfg.PluginNames) == 0 {
		return errNoPlugins
	}

	seen := make(map[string]struct{}, len(cfg.PluginNames))

	for _, name := range cfg.PluginNames {
		if strings.TrimSpace(name) == "" {
			return errEmptyPluginName
		}

		if _, ok := seen[name]; ok {
			return fmt.Errorf("%w: %s", errDuplicatePlugin, name)
		}

		seen[name] = struct{}{}
	}

	if cfg.Configuration == "" || cfg.Target == "" {
		return errBuildLayoutNotSet
	}

	if cfg.DependencyMarker == "" {
		return errMarkerNotSet
	}

	if _, err := cfg.PackageURLTemplate(); err != nil {
		return err
	}

	return nil
}

// SourceDir returns <root>/src.
func (c *Config) SourceDir() string {
	return filepath.Join(c.Root, sourceDirName)
}

// DependencyDescriptorPath returns the descriptor path resolved against Root.
func (c *Config) DependencyDescriptorPath() string {
	if filepath.IsAbs(c.DependencyDescriptor) {
		return c.DependencyDescriptor
	}

	return filepath.Join(c.Root, c.DependencyDescriptor)
}

// LockPath returns the file locked for the duration of a run.
func (c *Config) LockPath() string {
	return filepath.Join(c.Root, ".pext-release.lock")
}

// Plugins resolves the configured names into plugin descriptors.
func (c *Config) Plugins() []release.Plugin {
	plugins := make([]release.Plugin, 0, len(c.PluginNames))

	for _, name := range c.PluginNames {
		dir := filepath.Join(c.SourceDir(), name)

		plugins = append(plugins, release.Plugin{
			Name:              name,
			Dir:               dir,
			BuildOutputDir:    filepath.Join(dir, "bin", c.Configuration, c.Target),
			ExtensionManifest: filepath.Join(dir, "extension.yaml"),
			InstallerManifest: filepath.Join(c.Root, manifestDirName, name+".yaml"),
		})
	}

	return plugins
}

// PackageURLTemplate parses PackageURL.
func (c *Config) PackageURLTemplate() (*template.Template, error) {
	tmpl, err := template.New("package_url").Option("missingkey=error").Parse(c.PackageURL)
	if err != nil {
		return nil, fmt.Errorf("parse package url template: %w", err)
	}

	return tmpl, nil
}
