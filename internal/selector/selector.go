package selector

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// File is a single selected project file.
type File struct {
	// Path is the absolute filesystem path.
	Path string
	// Rel is the forward-slash relative path under the project root,
	// used as the archive entry name.
	Rel string
}

var (
	// excludedDirs lists directory names whose contents never enter the archive,
	// matched against every relative path segment.
	//nolint:gochecknoglobals // Fixed exclusion rules shared by all runs.
	excludedDirs = sliceToSet([]string{
		".git",
		".idea",
		".mypy_cache",
		".pytest_cache",
		".vscode",
		"__pycache__",
		"dist",
	})

	// excludedFiles lists exact basenames that never enter the archive.
	// The manifest template is injected separately with refreshed fields,
	// and the packager's own settings file is build metadata.
	//nolint:gochecknoglobals // Fixed exclusion rules shared by all runs.
	excludedFiles = sliceToSet([]string{
		".DS_Store",
		"addon-packager.yaml",
		"manifest.json",
	})

	// excludedSuffixes lists file extensions that never enter the archive.
	//nolint:gochecknoglobals // Fixed exclusion rules shared by all runs.
	excludedSuffixes = sliceToSet([]string{
		".ankiaddon",
		".log",
		".pyc",
		".pyo",
		".swp",
		".tmp",
	})
)

// Select walks the project root and returns the files to package,
// sorted lexicographically by relative POSIX path.
func Select(root string) ([]File, error) {
	var files []File

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !entry.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("relativize %s: %w", path, err)
		}

		rel = filepath.ToSlash(rel)
		if !shouldInclude(rel) {
			return nil
		}

		files = append(files, File{Path: path, Rel: rel})

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk project tree: %w", err)
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Rel < files[j].Rel
	})

	return files, nil
}

// shouldInclude applies the exclusion rule sets to a relative POSIX path.
func shouldInclude(rel string) bool {
	// Every segment is checked, including the basename, so a file literally
	// named after an excluded directory is skipped too.
	parts := strings.Split(rel, "/")
	for _, part := range parts {
		if _, found := excludedDirs[part]; found {
			return false
		}
	}

	base := parts[len(parts)-1]
	if _, found := excludedFiles[base]; found {
		return false
	}

	if _, found := excludedSuffixes[filepath.Ext(base)]; found {
		return false
	}

	return true
}

// sliceToSet converts a slice to a set for quick lookups.
func sliceToSet[T comparable](elements []T) map[T]struct{} {
	result := make(map[T]struct{}, len(elements))
	for _, value := range elements {
		result[value] = struct{}{}
	}

	return result
}
