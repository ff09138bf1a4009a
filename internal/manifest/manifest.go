package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// EntryName is the reserved archive entry holding the manifest bytes.
const EntryName = "manifest.json"

var (
	// ErrNotFound is returned when the manifest template does not exist.
	ErrNotFound = errors.New("manifest not found")
	// errNotObject is returned when the template is valid JSON but not an object.
	errNotObject = errors.New("manifest is not a JSON object")
)

// prettyOptions formats the serialized manifest with 2-space indentation.
//
//nolint:gochecknoglobals // Shared immutable formatting options.
var prettyOptions = &pretty.Options{
	Indent:   "  ",
	SortKeys: false,
}

// Load reads the manifest template, stamps the "mod" field with now as Unix
// seconds, optionally overrides the "version" field, and returns the
// serialized UTF-8 bytes. The template file itself is never modified.
func Load(path string, overrideVersion string, now time.Time) ([]byte, error) {
	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w at %s", ErrNotFound, path)
		}

		return nil, fmt.Errorf("read manifest: %w", err)
	}

	if !gjson.ValidBytes(contents) {
		return nil, fmt.Errorf("parse manifest %s: invalid JSON", path)
	}

	if !gjson.ParseBytes(contents).IsObject() {
		return nil, fmt.Errorf("parse manifest %s: %w", path, errNotObject)
	}

	mutated, err := sjson.SetBytes(contents, "mod", now.Unix())
	if err != nil {
		return nil, fmt.Errorf("set mod timestamp: %w", err)
	}

	if overrideVersion != "" {
		mutated, err = sjson.SetBytes(mutated, "version", overrideVersion)
		if err != nil {
			return nil, fmt.Errorf("set version override: %w", err)
		}
	}

	return pretty.PrettyOptions(mutated, prettyOptions), nil
}

// Name returns the manifest's "name" field, or an empty string when absent.
func Name(data []byte) string {
	return gjson.GetBytes(data, "name").String()
}
