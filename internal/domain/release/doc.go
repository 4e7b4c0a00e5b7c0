// Package release contains the core domain types of the release workflow.
//
// It defines Plugin (a distributable extension and the paths it owns),
// Record (one published entry of an installer manifest), Mode (the operation
// selected on the command line), the version pattern check and the error
// taxonomy shared by the repositories and services.
package release
