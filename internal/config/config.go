package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Settings holds per-project packaging preferences.
type Settings struct {
	// AddonName is the base name of the produced archive (without extension).
	// When empty, the manifest's "name" field is used instead.
	AddonName string `yaml:"addon_name"`
	// OutputDir is the directory under the project root where archives are written.
	OutputDir string `yaml:"output_dir"`
	// ManifestFilename is the manifest template filename relative to the project root.
	ManifestFilename string `yaml:"manifest"`
}

const (
	// DefaultConfigFilename is the default filename for packaging settings.
	DefaultConfigFilename = "addon-packager.yaml"

	// DefaultOutputDir is the directory archives are written to by default.
	DefaultOutputDir = "dist"

	// DefaultManifestFilename is the manifest template filename at the project root.
	DefaultManifestFilename = "manifest.json"

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o600
)

var (
	// errSettingsNotSet is returned when a nil settings value is provided.
	errSettingsNotSet = errors.New("settings are not set")
	// errManifestPathAbsolute is returned when the manifest filename escapes the project root.
	errManifestPathAbsolute = errors.New("manifest filename must be relative to the project root")
)

// Default returns settings with all defaults filled in.
func Default() *Settings {
	return &Settings{
		AddonName:        "",
		OutputDir:        DefaultOutputDir,
		ManifestFilename: DefaultManifestFilename,
	}
}

// Load reads settings from the provided path and validates them.
// When the default settings file is absent, defaults are returned instead of an error.
func Load(path string) (*Settings, error) {
	usingDefault := path == ""
	if usingDefault {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if usingDefault && errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}

		return nil, fmt.Errorf("read settings: %w", err)
	}

	var settings Settings
	if err := yaml.Unmarshal(contents, &settings); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(&settings); err != nil {
		return nil, err
	}

	return &settings, nil
}

// Save writes settings to the provided path.
func Save(path string, settings *Settings) error {
	if settings == nil {
		return errSettingsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(settings); err != nil {
		return err
	}

	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks the provided settings and fills in defaults for empty fields.
func Validate(settings *Settings) error {
	if settings == nil {
		return errSettingsNotSet
	}

	if settings.OutputDir == "" {
		settings.OutputDir = DefaultOutputDir
	}

	if settings.ManifestFilename == "" {
		settings.ManifestFilename = DefaultManifestFilename
	}

	if filepath.IsAbs(settings.ManifestFilename) || strings.HasPrefix(settings.ManifestFilename, "..") {
		return errManifestPathAbsolute
	}

	return nil
}
