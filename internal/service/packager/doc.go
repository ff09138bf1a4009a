// Package packager builds the .ankiaddon archive for an addon project.
//
// It selects project files under the root, refreshes the manifest
// template (mod timestamp, optional version override) and writes both
// into a single compressed archive, returning the resolved output path.
package packager
