// Package selector decides which project files belong in the addon archive.
//
// Selection walks the project root and filters with three fixed rule sets:
// excluded directory names (matched against any relative path segment),
// excluded exact filenames, and excluded file suffixes. The result is
// sorted by POSIX-style relative path so repeated runs over an unchanged
// tree archive entries in the same order.
package selector
