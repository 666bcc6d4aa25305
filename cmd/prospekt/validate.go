package main

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/dustin/go-humanize/english"
	"github.com/spf13/cobra"

	internalprofile "github.com/prospekt-dev/prospekt/internal/profile"
	"github.com/prospekt-dev/prospekt/pkg/profile"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the effective profile",
	Long: `Validate the effective profile and report findings.

The profile is loaded from all sources with the usual precedence, then
checked for unknown values, bad option ranges, invalid regular
expressions, duplicate disable entries and unresolvable inherits
references. Findings suppressed via profile-validator.disable are not
reported.`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	loader, err := newLoader()
	if err != nil {
		return err
	}

	cfg, err := loader.LoadWithoutValidation(buildFlagsMap(cmd))
	if err != nil {
		return errors.Wrap(err, "failed to load profile")
	}

	validator := internalprofile.NewValidator(loader.Registry())

	findings := validator.Findings(cfg)

	section := cfg.Tool(profile.ToolProfileValidator)

	reported := 0

	for _, finding := range findings {
		if section.IsDisabled(finding.Code) {
			continue
		}

		fmt.Println(finding.String())

		reported++
	}

	if reported > 0 {
		fmt.Printf("\n%s found\n", english.Plural(reported, "problem", ""))

		findingsReported = true

		return nil
	}

	fmt.Println("Profile is valid.")

	return nil
}
