package packager

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fieldreporter/addon-packager/internal/archive"
	"github.com/fieldreporter/addon-packager/internal/config"
	"github.com/fieldreporter/addon-packager/internal/logger"
	"github.com/fieldreporter/addon-packager/internal/manifest"
	"github.com/fieldreporter/addon-packager/internal/selector"
)

// PackageExtension is the required extension of produced archives.
const PackageExtension = ".ankiaddon"

// fallbackAddonName is used when neither settings nor manifest provide a name.
const fallbackAddonName = "addon"

// Options contains inputs for the packager entry point.
type Options struct {
	// ConfigPath is an optional path to packaging settings (defaults to addon-packager.yaml).
	ConfigPath string
	// ProjectRoot is the addon project directory (defaults to the current directory).
	ProjectRoot string
	// OutputPath is the destination archive path (defaults to <root>/dist/<name>.ankiaddon).
	OutputPath string
	// ManifestPath is the manifest template path (defaults to <root>/manifest.json).
	ManifestPath string
	// Version is an optional version string injected into the manifest.
	Version string
}

// Run executes the packaging workflow and returns the absolute output path.
func Run(ctx context.Context, opts *Options) (string, error) {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "addon-packager")

	root, err := resolveRoot(opts.ProjectRoot)
	if err != nil {
		return "", err
	}

	settings, err := loadSettings(root, opts.ConfigPath)
	if err != nil {
		return "", fmt.Errorf("load settings: %w", err)
	}

	logger.InfoKV(ctx, "Packaging addon project", "root", root)

	manifestPath := opts.ManifestPath
	if manifestPath == "" {
		manifestPath = filepath.Join(root, settings.ManifestFilename)
	}

	manifestBytes, err := manifest.Load(manifestPath, opts.Version, time.Now())
	if err != nil {
		return "", err
	}

	files, err := selector.Select(root)
	if err != nil {
		return "", err
	}

	logger.InfoKV(ctx, "Selected project files", "count", len(files))

	outputPath, err := resolveOutputPath(opts.OutputPath, root, settings, manifestBytes)
	if err != nil {
		return "", err
	}

	if err = archive.Write(outputPath, files, manifestBytes); err != nil {
		return "", err
	}

	checksum, err := archive.Checksum(outputPath)
	if err != nil {
		return "", fmt.Errorf("checksum archive: %w", err)
	}

	logger.InfoKV(ctx, "Created addon package",
		"path", outputPath,
		"entries", len(files)+1,
		"sha512", checksum)

	return outputPath, nil
}

// loadSettings reads packaging settings, defaulting to the settings file
// under the project root. An explicitly named file must exist.
func loadSettings(root, configPath string) (*config.Settings, error) {
	if configPath != "" {
		return config.Load(configPath)
	}

	path := filepath.Join(root, config.DefaultConfigFilename)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return config.Default(), nil
	}

	return config.Load(path)
}

// resolveRoot turns the optional project root into an absolute path.
func resolveRoot(root string) (string, error) {
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("resolve working directory: %w", err)
		}

		return cwd, nil
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolve project root: %w", err)
	}

	return abs, nil
}

// resolveOutputPath picks the destination archive path and forces the
// package extension.
func resolveOutputPath(output, root string, settings *config.Settings, manifestBytes []byte) (string, error) {
	if output == "" {
		name := settings.AddonName
		if name == "" {
			name = manifest.Name(manifestBytes)
		}

		if name == "" {
			name = fallbackAddonName
		}

		output = filepath.Join(root, settings.OutputDir, name+PackageExtension)
	}

	abs, err := filepath.Abs(output)
	if err != nil {
		return "", fmt.Errorf("resolve output path: %w", err)
	}

	if ext := filepath.Ext(abs); ext != PackageExtension {
		abs = strings.TrimSuffix(abs, ext) + PackageExtension
	}

	return abs, nil
}
