package main

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"

	internalprofile "github.com/prospekt-dev/prospekt/internal/profile"
)

const diffContextLines = 3

var diffCmd = &cobra.Command{
	Use:   "diff <profile-a> <profile-b>",
	Short: "Compare two profile files",
	Long: `Compare two profile files after normalization.

Both files are parsed and re-serialized to canonical YAML before
comparison, so formatting differences (key order, indentation, TOML vs
YAML) do not show up as changes. Only setting differences do.`,
	Args: cobra.ExactArgs(2),
	RunE: runDiff,
}

func init() {
	rootCmd.AddCommand(diffCmd)
}

func runDiff(_ *cobra.Command, args []string) error {
	left, err := normalizeProfileFile(args[0])
	if err != nil {
		return err
	}

	right, err := normalizeProfileFile(args[1])
	if err != nil {
		return err
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(left),
		B:        difflib.SplitLines(right),
		FromFile: args[0],
		ToFile:   args[1],
		Context:  diffContextLines,
	})
	if err != nil {
		return errors.Wrap(err, "failed to compute diff")
	}

	if diff == "" {
		fmt.Println("Profiles are equivalent.")

		return nil
	}

	fmt.Print(diff)

	findingsReported = true

	return nil
}

// normalizeProfileFile parses a profile file and re-serializes it to
// canonical YAML.
func normalizeProfileFile(path string) (string, error) {
	cfg, err := internalprofile.LoadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, "failed to load %s", path)
	}

	data, err := internalprofile.NewWriter().Export(cfg)
	if err != nil {
		return "", errors.Wrapf(err, "failed to serialize %s", path)
	}

	return string(data), nil
}
