package tools

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/prospekt-dev/prospekt/pkg/profile"
)

// vultureLine matches vulture's output format:
// path.py:12: unused function 'helper' (60% confidence)
var vultureLine = regexp.MustCompile(`^(.+?):(\d+):\s+(unused \S+)\s+(.*)$`)

// VultureTool adapts the vulture profile section to vulture.
type VultureTool struct{}

// NewVultureTool creates a new VultureTool.
func NewVultureTool() *VultureTool {
	return &VultureTool{}
}

// Name returns the wire name of the profile section.
func (*VultureTool) Name() string {
	return profile.ToolVulture
}

// Plan builds the vulture invocation. Dead-code analysis is opt-in, so
// the default run gate is off.
func (*VultureTool) Plan(cfg *profile.Profile, paths []string) *Invocation {
	if !cfg.Vulture.IsRunEnabled(false) {
		return nil
	}

	return &Invocation{
		Tool:   profile.ToolVulture,
		Binary: "vulture",
		Args:   paths,
	}
}

// Parse converts vulture output into findings. The kind of unused object
// becomes the rule code (unused-function, unused-variable, ...).
func (*VultureTool) Parse(output string) []Finding {
	var findings []Finding

	for line := range strings.Lines(output) {
		match := vultureLine.FindStringSubmatch(strings.TrimRight(line, "\n"))
		if match == nil {
			continue
		}

		lineNo, _ := strconv.Atoi(match[2])

		findings = append(findings, Finding{
			Tool:     profile.ToolVulture,
			File:     match[1],
			Line:     lineNo,
			Severity: SeverityWarning,
			Message:  match[3] + " " + match[4],
			Code:     strings.ReplaceAll(match[3], " ", "-"),
		})
	}

	return findings
}
