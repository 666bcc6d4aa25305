package tools

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/prospekt-dev/prospekt/pkg/profile"
)

// pep8Line matches pycodestyle's default output format:
// path.py:12:80: E501 line too long (95 > 79 characters)
var pep8Line = regexp.MustCompile(`^(.+?):(\d+):(\d+):\s+([EW]\d+)\s+(.*)$`)

// Pep8Tool adapts the pep8 profile section to pycodestyle.
type Pep8Tool struct{}

// NewPep8Tool creates a new Pep8Tool.
func NewPep8Tool() *Pep8Tool {
	return &Pep8Tool{}
}

// Name returns the wire name of the profile section.
func (*Pep8Tool) Name() string {
	return profile.ToolPep8
}

// Plan builds the pycodestyle invocation. pep8 runs by default.
func (*Pep8Tool) Plan(cfg *profile.Profile, paths []string) *Invocation {
	section := cfg.Tool(profile.ToolPep8)
	if !section.IsRunEnabled(true) {
		return nil
	}

	maxLineLength := 79
	if cfg.Pep8 != nil {
		maxLineLength = cfg.Pep8.Options.GetMaxLineLength()
	}

	full := section.IsFull()
	disable := section.EffectiveDisable()

	args := []string{
		fmt.Sprintf("--max-line-length=%d", maxLineLength),
	}

	// Full mode runs the complete ruleset, suppressions included.
	if !full && len(disable) > 0 {
		args = append(args, "--ignore="+strings.Join(disable, ","))
	}

	args = append(args, paths...)

	return &Invocation{
		Tool:         profile.ToolPep8,
		Binary:       "pycodestyle",
		Alternatives: []string{"pep8"},
		Args:         args,
	}
}

// Parse converts pycodestyle output into findings.
func (*Pep8Tool) Parse(output string) []Finding {
	var findings []Finding

	for line := range strings.Lines(output) {
		match := pep8Line.FindStringSubmatch(strings.TrimRight(line, "\n"))
		if match == nil {
			continue
		}

		lineNo, _ := strconv.Atoi(match[2])
		colNo, _ := strconv.Atoi(match[3])

		severity := SeverityError
		if strings.HasPrefix(match[4], "W") {
			severity = SeverityWarning
		}

		findings = append(findings, Finding{
			Tool:     profile.ToolPep8,
			File:     match[1],
			Line:     lineNo,
			Column:   colNo,
			Severity: severity,
			Message:  match[5],
			Code:     match[4],
		})
	}

	return findings
}
