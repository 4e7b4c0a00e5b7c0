// Package config defines the release settings: repository layout, build
// configuration, the plugin list and the installer feed URL template.
//
// Settings come from built-in defaults, an optional YAML file and PEXT_*
// environment variables, applied in that order.
package config
