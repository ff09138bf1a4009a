// Package config defines optional packaging settings and provides helpers
// to load, validate and save them in YAML format.
//
// The Settings type holds the addon name used for default output naming,
// the output directory and the manifest template filename. A missing
// settings file is not an error: packaging works out of the box with
// defaults, the file only pins project-specific values.
package config
