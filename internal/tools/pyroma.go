package tools

import (
	"regexp"
	"strings"

	"github.com/prospekt-dev/prospekt/pkg/profile"
)

// pyromaRating matches the final rating line, e.g. "Final rating: 8/10".
var pyromaRating = regexp.MustCompile(`^Final rating:\s+(\d+)/10`)

// PyromaTool adapts the pyroma profile section to pyroma.
type PyromaTool struct{}

// NewPyromaTool creates a new PyromaTool.
func NewPyromaTool() *PyromaTool {
	return &PyromaTool{}
}

// Name returns the wire name of the profile section.
func (*PyromaTool) Name() string {
	return profile.ToolPyroma
}

// Plan builds the pyroma invocation. Packaging checks are opt-in, so the
// default run gate is off.
func (*PyromaTool) Plan(cfg *profile.Profile, _ []string) *Invocation {
	if !cfg.Pyroma.IsRunEnabled(false) {
		return nil
	}

	// pyroma inspects packaging metadata, not source files.
	return &Invocation{
		Tool:   profile.ToolPyroma,
		Binary: "pyroma",
		Args:   []string{"."},
	}
}

// Parse converts pyroma output into findings. Lines between the dashed
// separators describe missing or malformed packaging metadata; a perfect
// rating produces no findings.
func (*PyromaTool) Parse(output string) []Finding {
	var (
		findings  []Finding
		inSection bool
	)

	for line := range strings.Lines(output) {
		line = strings.TrimRight(line, "\n")

		if strings.HasPrefix(line, "----") {
			inSection = !inSection

			continue
		}

		if pyromaRating.MatchString(line) || strings.TrimSpace(line) == "" {
			continue
		}

		if !inSection || strings.HasPrefix(line, "Checking ") || strings.HasPrefix(line, "Found ") {
			continue
		}

		findings = append(findings, Finding{
			Tool:     profile.ToolPyroma,
			Severity: SeverityWarning,
			Message:  line,
			Code:     "packaging-metadata",
		})
	}

	return findings
}
