package tools

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/prospekt-dev/prospekt/pkg/profile"
)

// mccabeLine matches mccabe's output format:
// 12:1: 'process_items' 15
var mccabeLine = regexp.MustCompile(`^(?:(.+?):)?(\d+):(\d+):\s+'(.+)'\s+(\d+)$`)

// MccabeTool adapts the mccabe profile section to the mccabe module.
type MccabeTool struct{}

// NewMccabeTool creates a new MccabeTool.
func NewMccabeTool() *MccabeTool {
	return &MccabeTool{}
}

// Name returns the wire name of the profile section.
func (*MccabeTool) Name() string {
	return profile.ToolMccabe
}

// Plan builds the mccabe invocation. mccabe runs by default.
func (*MccabeTool) Plan(cfg *profile.Profile, paths []string) *Invocation {
	if !cfg.Tool(profile.ToolMccabe).IsRunEnabled(true) {
		return nil
	}

	maxComplexity := 10
	if cfg.Mccabe != nil {
		maxComplexity = cfg.Mccabe.Options.GetMaxComplexity()
	}

	args := []string{"-m", "mccabe", "--min", strconv.Itoa(maxComplexity)}
	args = append(args, paths...)

	return &Invocation{
		Tool:         profile.ToolMccabe,
		Binary:       "python3",
		Alternatives: []string{"python"},
		Args:         args,
	}
}

// Parse converts mccabe output into findings.
func (*MccabeTool) Parse(output string) []Finding {
	var findings []Finding

	for line := range strings.Lines(output) {
		match := mccabeLine.FindStringSubmatch(strings.TrimRight(line, "\n"))
		if match == nil {
			continue
		}

		lineNo, _ := strconv.Atoi(match[2])
		colNo, _ := strconv.Atoi(match[3])
		complexity, _ := strconv.Atoi(match[5])

		findings = append(findings, Finding{
			Tool:     profile.ToolMccabe,
			File:     match[1],
			Line:     lineNo,
			Column:   colNo,
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("'%s' is too complex (%d)", match[4], complexity),
			Code:     "complex-function",
		})
	}

	return findings
}
