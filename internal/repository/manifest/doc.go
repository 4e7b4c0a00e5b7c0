// Package manifest loads and rewrites the YAML manifests of a plugin.
//
// Documents are edited through yaml.Node so that keys, their order and
// comments written by hand survive a rewrite. Extension wraps the per-plugin
// extension.yaml; Installer wraps the release history read by the update feed.
package manifest
