package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	internalprofile "github.com/prospekt-dev/prospekt/internal/profile"
	"github.com/prospekt-dev/prospekt/pkg/profile"
)

var (
	initGlobalFlag bool
	initForceFlag  bool
	initFormatFlag string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a prospekt profile",
	Long: `Initialize a prospekt profile file.

By default, creates a project-local profile (.prospekt/profile.yaml).
Use --global or -g to create a global profile (~/.prospekt/profile.yaml).
Use --format toml to write .prospekt.toml instead of YAML.

The starter profile pins the current strictness level so later default
changes do not silently alter the project's checks.

Use --force to overwrite an existing profile file.`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().BoolVarP(
		&initGlobalFlag,
		"global",
		"g",
		false,
		"Initialize the global profile",
	)

	initCmd.Flags().BoolVarP(
		&initForceFlag,
		"force",
		"f",
		false,
		"Overwrite an existing profile file",
	)

	initCmd.Flags().StringVar(
		&initFormatFlag,
		"format",
		"yaml",
		"Profile file format (yaml, toml)",
	)
}

func runInit(_ *cobra.Command, _ []string) error {
	writer := internalprofile.NewWriter()

	path, err := initTargetPath(writer)
	if err != nil {
		return err
	}

	if fileExists(path) && !initForceFlag {
		return errors.Errorf(
			"profile file already exists: %s\nUse --force to overwrite",
			path,
		)
	}

	if err := writer.WriteFile(path, starterProfile()); err != nil {
		return errors.Wrap(err, "failed to write profile")
	}

	fmt.Printf("Profile written to: %s\n", path)

	return nil
}

// initTargetPath resolves the file the starter profile is written to.
func initTargetPath(writer *internalprofile.Writer) (string, error) {
	switch initFormatFlag {
	case "yaml":
	case "toml":
	default:
		return "", errors.Errorf("unknown format %q (expected yaml or toml)", initFormatFlag)
	}

	if initGlobalFlag {
		if initFormatFlag == "toml" {
			return "", errors.New("the global profile is always YAML")
		}

		return writer.GlobalProfilePath(), nil
	}

	if initFormatFlag == "toml" {
		workDir, err := os.Getwd()
		if err != nil {
			return "", errors.Wrap(err, "failed to get working directory")
		}

		return filepath.Join(workDir, internalprofile.ProjectProfileFileTOML), nil
	}

	return writer.ProjectProfilePath(), nil
}

// starterProfile builds the profile init writes: the current default
// strictness made explicit, everything else left to defaults.
func starterProfile() *profile.Profile {
	return &profile.Profile{
		Strictness: profile.StrictnessMedium,
	}
}

// fileExists checks if a file exists and is not a directory.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}

	return !info.IsDir()
}
