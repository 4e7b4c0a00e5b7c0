package updater

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/Masterminds/semver/v3"

	"github.com/playnite-extensions/pext-release/internal/domain/release"
	"github.com/playnite-extensions/pext-release/internal/logger"
	"github.com/playnite-extensions/pext-release/internal/repository/manifest"
)

var errPackageURLNotSet = errors.New("package url template is not set")

// Options configures an Updater.
type Options struct {
	// PackageURL renders the download location from .Plugin and .Version.
	PackageURL *template.Template
	// Now supplies the release date. Defaults to time.Now.
	Now func() time.Time
	// DryRun logs the manifest diffs instead of writing them.
	DryRun bool
}

// Updater rewrites plugin manifests.
type Updater struct {
	packageURL *template.Template
	now        func() time.Time
	dryRun     bool
}

// packageURLData is the template input of Options.PackageURL.
type packageURLData struct {
	Plugin  string
	Version string
}

// New validates opts and returns an Updater.
func New(opts Options) (*Updater, error) {
	if opts.PackageURL == nil {
		return nil, errPackageURLNotSet
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &Updater{
		packageURL: opts.PackageURL,
		now:        now,
		dryRun:     opts.DryRun,
	}, nil
}

// UpdateExtension sets the Version of the plugin's extension.yaml.
func (u *Updater) UpdateExtension(ctx context.Context, plugin release.Plugin, version string) error {
	ext, err := manifest.OpenExtension(plugin.ExtensionManifest)
	if err != nil {
		return fmt.Errorf("open extension manifest: %w", err)
	}

	logger.InfoKV(ctx, "Updating extension manifest",
		"path", ext.Path(), "from", ext.Version(), "to", version)

	ext.SetVersion(version)

	return u.commit(ctx, ext.Document)
}

// UpdateInstaller prepends a release record for version to the plugin's
// installer manifest. It reports false, leaving the file untouched, when a
// record for version already exists.
func (u *Updater) UpdateInstaller(ctx context.Context, plugin release.Plugin, version, requiredAPIVersion string) (bool, error) {
	installer, err := manifest.OpenInstaller(plugin.InstallerManifest)
	if err != nil {
		return false, fmt.Errorf("open installer manifest: %w", err)
	}

	records, err := installer.Packages()
	if err != nil {
		return false, fmt.Errorf("read installer packages: %w", err)
	}

	if release.ContainsVersion(records, version) {
		logger.InfoKV(ctx, "Package already exists, skipping installer manifest",
			"path", installer.Path(), "version", version)

		return false, nil
	}

	if len(records) > 0 {
		warnIfOutOfOrder(ctx, records[0].Version, version)
	}

	packageURL, err := u.renderPackageURL(plugin.Name, version)
	if err != nil {
		return false, err
	}

	record := release.NewRecord(version, requiredAPIVersion, packageURL, u.now())

	if err = installer.AddPackage(record); err != nil {
		return false, fmt.Errorf("add package: %w", err)
	}

	logger.InfoKV(ctx, "Adding package to installer manifest",
		"path", installer.Path(),
		"version", record.Version,
		"required_api_version", record.RequiredApiVersion,
		"release_date", record.ReleaseDate,
		"package_url", record.PackageUrl,
	)

	if err = u.commit(ctx, installer.Document); err != nil {
		return false, err
	}

	return true, nil
}

// commit saves doc, or only logs the change in dry-run mode.
func (u *Updater) commit(ctx context.Context, doc *manifest.Document) error {
	if !u.dryRun {
		return doc.Save()
	}

	after, err := doc.Marshal()
	if err != nil {
		return err
	}

	diff, err := unifiedDiff(doc.Path(), doc.Original(), after)
	if err != nil {
		return err
	}

	if diff == "" {
		logger.InfoKV(ctx, "Dry run: manifest unchanged", "path", doc.Path())
		return nil
	}

	logger.Infof(ctx, "Dry run: %s would change:\n%s", doc.Path(), diff)

	return nil
}

func (u *Updater) renderPackageURL(plugin, version string) (string, error) {
	var sb strings.Builder

	if err := u.packageURL.Execute(&sb, packageURLData{Plugin: plugin, Version: version}); err != nil {
		return "", fmt.Errorf("render package url: %w", err)
	}

	return sb.String(), nil
}

// warnIfOutOfOrder logs when the new version sorts below the current head.
// History stays in insertion order either way.
func warnIfOutOfOrder(ctx context.Context, head, version string) {
	headVersion, err := semver.NewVersion(head)
	if err != nil {
		return
	}

	newVersion, err := semver.NewVersion(version)
	if err != nil {
		return
	}

	if newVersion.LessThan(headVersion) {
		logger.WarnKV(ctx, "New package is older than the latest listed one",
			"latest", head, "new", version)
	}
}
