// Package packager ships the build output of a plugin.
//
// Copy mirrors the build output tree into <output>/<plugin>, replacing
// whatever was there. Pack writes <output>/<plugin>.pext, a zip archive of
// every file of the tree stored under its base name.
package packager
