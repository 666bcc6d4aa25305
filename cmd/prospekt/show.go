package main

import (
	"encoding/json"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	internalprofile "github.com/prospekt-dev/prospekt/internal/profile"
)

var showFormatFlag string

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective profile",
	Long: `Print the effective profile after all sources are merged.

This is the profile a check run would use: defaults, the built-in
strictness profile, inherited profiles, the global and project files,
environment variables and CLI flags, in precedence order.`,
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().StringVar(
		&showFormatFlag,
		"format",
		"yaml",
		"Serialization format (yaml, json, toml)",
	)
}

func runShow(cmd *cobra.Command, _ []string) error {
	loader, err := newLoader()
	if err != nil {
		return err
	}

	cfg, err := loader.LoadWithoutValidation(buildFlagsMap(cmd))
	if err != nil {
		return errors.Wrap(err, "failed to load profile")
	}

	writer := internalprofile.NewWriter()

	var data []byte

	switch showFormatFlag {
	case "yaml":
		data, err = writer.Export(cfg)
	case "json":
		data, err = json.MarshalIndent(cfg, "", "  ")
		data = append(data, '\n')
	case "toml":
		data, err = writer.ExportTOML(cfg)
	default:
		return errors.Errorf("unknown format %q (expected yaml, json or toml)", showFormatFlag)
	}

	if err != nil {
		return errors.Wrap(err, "failed to serialize profile")
	}

	fmt.Print(string(data))

	return nil
}
