// Package updater bumps the manifests of a plugin for a new release.
//
// UpdateExtension rewrites the Version of extension.yaml. UpdateInstaller
// prepends a release record to the plugin's installer manifest and skips
// versions that are already listed. With DryRun set, both only log the
// unified diff they would apply.
package updater
