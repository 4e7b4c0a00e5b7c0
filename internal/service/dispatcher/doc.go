// Package dispatcher runs one release operation over every configured plugin.
//
// Plugins are processed one at a time in configuration order and the first
// error aborts the run, leaving the remaining plugins untouched. A file lock
// in the repository root keeps two runs from interleaving.
package dispatcher
