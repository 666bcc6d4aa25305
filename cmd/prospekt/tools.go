package main

import (
	"bytes"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/dustin/go-humanize/english"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/prospekt-dev/prospekt/internal/tools"
	"github.com/prospekt-dev/prospekt/pkg/profile"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Show the tool plan for the effective profile",
	Long: `Show which analysis tools the effective profile runs and how each is
configured: whether it is enabled, whether the full ruleset is
requested, and how many rule codes the profile suppresses for it.`,
	RunE: runTools,
}

func init() {
	rootCmd.AddCommand(toolsCmd)
}

func runTools(cmd *cobra.Command, _ []string) error {
	loader, err := newLoader()
	if err != nil {
		return err
	}

	cfg, err := loader.Load(buildFlagsMap(cmd))
	if err != nil {
		return errors.Wrap(err, "failed to load profile")
	}

	planner := tools.NewPlanner()
	planned := make(map[string]bool)

	for _, inv := range planner.Plan(cfg, nil) {
		planned[inv.Tool] = true
	}

	fmt.Print(renderToolTable(cfg, planner.Tools(), planned))

	enabled := len(planned)
	fmt.Printf("\n%s enabled\n", english.Plural(enabled, "tool", ""))

	return nil
}

// renderToolTable builds the tool overview table.
func renderToolTable(cfg *profile.Profile, adapters []tools.Tool, planned map[string]bool) string {
	var buf bytes.Buffer

	t := tablewriter.NewTable(&buf,
		tablewriter.WithRenderer(renderer.NewBlueprint(tw.Rendition{
			Symbols: tw.NewSymbols(tw.StyleRounded),
		})),
		tablewriter.WithPadding(tw.Padding{Left: " ", Right: " "}),
	)

	t.Header([]string{"Tool", "Run", "Full", "Suppressed"})

	for _, adapter := range adapters {
		section := cfg.Tool(adapter.Name())

		run := "no"
		if planned[adapter.Name()] {
			run = "yes"
		}

		full := "no"
		if section.IsFull() {
			full = "yes"
		}

		_ = t.Append([]string{
			adapter.Name(),
			run,
			full,
			english.Plural(len(section.EffectiveDisable()), "code", ""),
		})
	}

	_ = t.Render()

	return buf.String()
}
