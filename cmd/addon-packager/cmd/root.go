package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/fieldreporter/addon-packager/internal/config"
	"github.com/fieldreporter/addon-packager/internal/service/packager"
	"github.com/fieldreporter/addon-packager/internal/version"
)

var (
	// configPath to the packaging settings YAML file.
	configPath string
	// outputPath is the destination archive path.
	outputPath string
	// manifestPath is the manifest template path.
	manifestPath string
	// versionOverride is an optional version string injected into the manifest.
	versionOverride string

	// rootCmd represents the base command for packaging an addon project.
	rootCmd = &cobra.Command{
		Use:   "addon-packager [project-root]",
		Short: "Package an Anki addon project into a .ankiaddon archive",
		Long: `Packages an addon project directory into a single .ankiaddon archive.

Project files are selected with fixed exclusion rules (VCS and editor
directories, caches, logs, previous archives), the manifest template gets a
refreshed modification timestamp and an optional version override, and
everything is written to one compressed archive. The resolved archive path
is printed on success.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			// Use project root argument if provided, otherwise the current directory.
			var projectRoot string
			if len(args) > 0 {
				projectRoot = args[0]
			}

			options := &packager.Options{
				ConfigPath:   configPath,
				ProjectRoot:  projectRoot,
				OutputPath:   outputPath,
				ManifestPath: manifestPath,
				Version:      versionOverride,
			}

			resolvedPath, err := packager.Run(ctx, options)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), resolvedPath)

			return nil
		},
	}

	// initCmd writes a default settings file for the project.
	initCmd = &cobra.Command{
		Use:   "init",
		Short: "Write a default addon-packager.yaml settings file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := configPath
			if path == "" {
				path = config.DefaultConfigFilename
			}

			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("settings file already exists at %s", path)
			} else if !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("stat settings file: %w", err)
			}

			if err := config.Save(path, config.Default()); err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), path)

			return nil
		},
	}
)

// Execute runs the addon-packager CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)
	rootCmd.AddCommand(initCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.PersistentFlags().
		StringVarP(&configPath, "config", "c", "", "path to packaging settings file")
	rootCmd.Flags().
		StringVarP(&outputPath, "output", "o", "", "destination path for the generated .ankiaddon file")
	rootCmd.Flags().
		StringVarP(&manifestPath, "manifest", "m", "", "path to the manifest.json template used for packaging")
	rootCmd.Flags().
		StringVarP(&versionOverride, "version", "v", "", "optional version string to inject into the manifest")
}
