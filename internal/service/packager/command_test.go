package packager

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fieldreporter/addon-packager/internal/config"
)

// TestResolveOutputPathForcesExtension replaces foreign extensions with .ankiaddon.
func TestResolveOutputPathForcesExtension(t *testing.T) {
	t.Parallel()

	settings := config.Default()

	got, err := resolveOutputPath("/tmp/out/addon.zip", "/project", settings, nil)
	require.NoError(t, err)
	require.Equal(t, "/tmp/out/addon"+PackageExtension, got)

	got, err = resolveOutputPath("/tmp/out/addon", "/project", settings, nil)
	require.NoError(t, err)
	require.Equal(t, "/tmp/out/addon"+PackageExtension, got)

	got, err = resolveOutputPath("/tmp/out/addon.ankiaddon", "/project", settings, nil)
	require.NoError(t, err)
	require.Equal(t, "/tmp/out/addon.ankiaddon", got)
}

// TestResolveOutputPathDefaults derives the name from settings, manifest, then a fallback.
func TestResolveOutputPathDefaults(t *testing.T) {
	t.Parallel()

	settings := config.Default()

	// Manifest name wins when settings carry no addon name.
	got, err := resolveOutputPath("", "/project", settings, []byte(`{"name":"FieldReporter"}`))
	require.NoError(t, err)
	require.Equal(t, filepath.Join("/project", "dist", "FieldReporter"+PackageExtension), got)

	// Settings name takes precedence.
	settings.AddonName = "Custom"

	got, err = resolveOutputPath("", "/project", settings, []byte(`{"name":"FieldReporter"}`))
	require.NoError(t, err)
	require.Equal(t, filepath.Join("/project", "dist", "Custom"+PackageExtension), got)

	// Fallback when nothing names the addon.
	got, err = resolveOutputPath("", "/project", config.Default(), []byte(`{}`))
	require.NoError(t, err)
	require.Equal(t, filepath.Join("/project", "dist", "addon"+PackageExtension), got)
}

// TestResolveRoot resolves the default root to the working directory.
func TestResolveRoot(t *testing.T) {
	dir := t.TempDir()
	oldWd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(oldWd) })

	got, err := resolveRoot("")
	require.NoError(t, err)
	require.True(t, filepath.IsAbs(got))

	got, err = resolveRoot("sub")
	require.NoError(t, err)
	require.True(t, filepath.IsAbs(got))
	require.Equal(t, "sub", filepath.Base(got))
}
