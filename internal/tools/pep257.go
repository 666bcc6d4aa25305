package tools

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/prospekt-dev/prospekt/pkg/profile"
)

// pydocstyle reports each finding across two lines:
// path.py:1 at module level:
//         D100: Missing docstring in public module
var (
	pep257Header = regexp.MustCompile(`^(.+?):(\d+)\s`)
	pep257Detail = regexp.MustCompile(`^\s+(D\d+):\s+(.*)$`)
)

// Pep257Tool adapts the pep257 profile section to pydocstyle.
type Pep257Tool struct{}

// NewPep257Tool creates a new Pep257Tool.
func NewPep257Tool() *Pep257Tool {
	return &Pep257Tool{}
}

// Name returns the wire name of the profile section.
func (*Pep257Tool) Name() string {
	return profile.ToolPep257
}

// Plan builds the pydocstyle invocation. The doc-warnings root toggle is
// the default run gate; an explicit pep257.run overrides it.
func (*Pep257Tool) Plan(cfg *profile.Profile, paths []string) *Invocation {
	section := cfg.Tool(profile.ToolPep257)
	if !section.IsRunEnabled(cfg.AreDocWarningsEnabled()) {
		return nil
	}

	var args []string

	if cfg.Pep257.IsExplainEnabled() {
		args = append(args, "--explain")
	}

	if cfg.Pep257.IsSourceEnabled() {
		args = append(args, "--source")
	}

	if disable := section.EffectiveDisable(); !section.IsFull() && len(disable) > 0 {
		args = append(args, "--ignore="+strings.Join(disable, ","))
	}

	args = append(args, paths...)

	return &Invocation{
		Tool:         profile.ToolPep257,
		Binary:       "pydocstyle",
		Alternatives: []string{"pep257"},
		Args:         args,
	}
}

// Parse converts pydocstyle output into findings. Header lines carry the
// location, the indented line that follows carries the code and message.
func (*Pep257Tool) Parse(output string) []Finding {
	var (
		findings []Finding
		file     string
		lineNo   int
	)

	for line := range strings.Lines(output) {
		line = strings.TrimRight(line, "\n")

		if match := pep257Header.FindStringSubmatch(line); match != nil {
			file = match[1]
			lineNo, _ = strconv.Atoi(match[2])

			continue
		}

		match := pep257Detail.FindStringSubmatch(line)
		if match == nil || file == "" {
			continue
		}

		findings = append(findings, Finding{
			Tool:     profile.ToolPep257,
			File:     file,
			Line:     lineNo,
			Severity: SeverityWarning,
			Message:  match[2],
			Code:     match[1],
		})
	}

	return findings
}
