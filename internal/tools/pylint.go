package tools

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/prospekt-dev/prospekt/pkg/profile"
)

// pylintMessage represents a single message from pylint's JSON output.
type pylintMessage struct {
	Type      string `json:"type"`
	Path      string `json:"path"`
	Line      int    `json:"line"`
	Column    int    `json:"column"`
	Symbol    string `json:"symbol"`
	Message   string `json:"message"`
	MessageID string `json:"message-id"`
}

// memberAccessRules are the pylint checks the member-warnings root toggle
// controls.
var memberAccessRules = []string{"no-member", "maybe-no-member"}

// PylintTool adapts the pylint profile section to pylint.
type PylintTool struct{}

// NewPylintTool creates a new PylintTool.
func NewPylintTool() *PylintTool {
	return &PylintTool{}
}

// Name returns the wire name of the profile section.
func (*PylintTool) Name() string {
	return profile.ToolPylint
}

// Plan builds the pylint invocation. pylint runs by default.
func (*PylintTool) Plan(cfg *profile.Profile, paths []string) *Invocation {
	section := cfg.Tool(profile.ToolPylint)
	if !section.IsRunEnabled(true) {
		return nil
	}

	args := []string{"--output-format=json"}

	disable := section.EffectiveDisable()

	if !cfg.AreMemberWarningsEnabled() {
		disable = appendMissing(disable, memberAccessRules...)
	}

	if !section.IsFull() && len(disable) > 0 {
		args = append(args, "--disable="+strings.Join(disable, ","))
	}

	if cfg.Pylint != nil && cfg.Pylint.Options != nil {
		args = append(args, pylintOptionArgs(cfg.Pylint.Options)...)
	}

	args = append(args, paths...)

	return &Invocation{
		Tool:   profile.ToolPylint,
		Binary: "pylint",
		Args:   args,
	}
}

// pylintOptionArgs maps the pylint options section onto command arguments.
func pylintOptionArgs(opts *profile.PylintOptions) []string {
	var args []string

	if opts.MaxLineLength != nil {
		args = append(args, fmt.Sprintf("--max-line-length=%d", *opts.MaxLineLength))
	}

	if opts.MaxArgs != nil {
		args = append(args, fmt.Sprintf("--max-args=%d", *opts.MaxArgs))
	}

	if opts.MaxPositionalArguments != nil {
		args = append(args, fmt.Sprintf("--max-positional-arguments=%d", *opts.MaxPositionalArguments))
	}

	if opts.MaxAttributes != nil {
		args = append(args, fmt.Sprintf("--max-attributes=%d", *opts.MaxAttributes))
	}

	if opts.MaxLocals != nil {
		args = append(args, fmt.Sprintf("--max-locals=%d", *opts.MaxLocals))
	}

	if opts.IncludeNamingHint != nil {
		args = append(args, "--include-naming-hint="+yesNo(*opts.IncludeNamingHint))
	}

	if opts.VariableRgx != "" {
		args = append(args, "--variable-rgx="+opts.VariableRgx)
	}

	if opts.VariableNameHint != "" {
		args = append(args, "--variable-name-hint="+opts.VariableNameHint)
	}

	if len(opts.ExtensionPkgWhitelist) > 0 {
		args = append(args, "--extension-pkg-whitelist="+strings.Join(opts.ExtensionPkgWhitelist, ","))
	}

	if len(opts.LoadPlugins) > 0 {
		args = append(args, "--load-plugins="+strings.Join(opts.LoadPlugins, ","))
	}

	return args
}

// Parse converts pylint JSON output into findings.
func (*PylintTool) Parse(output string) []Finding {
	output = strings.TrimSpace(output)
	if output == "" {
		return nil
	}

	var messages []pylintMessage
	if err := json.Unmarshal([]byte(output), &messages); err != nil {
		return nil
	}

	findings := make([]Finding, 0, len(messages))

	for _, m := range messages {
		findings = append(findings, Finding{
			Tool:     profile.ToolPylint,
			File:     m.Path,
			Line:     m.Line,
			Column:   m.Column,
			Severity: pylintSeverity(m.Type),
			Message:  m.Message,
			Code:     pylintCode(m),
		})
	}

	return findings
}

// pylintSeverity maps pylint message types onto severities.
func pylintSeverity(msgType string) Severity {
	switch msgType {
	case "error", "fatal":
		return SeverityError
	case "warning":
		return SeverityWarning
	default:
		// convention, refactor, information
		return SeverityInfo
	}
}

// pylintCode prefers the symbolic name over the numeric message id, since
// disable lists are written with symbols.
func pylintCode(m pylintMessage) string {
	if m.Symbol != "" {
		return m.Symbol
	}

	return m.MessageID
}

// yesNo renders a bool the way pylint's command line expects.
func yesNo(v bool) string {
	if v {
		return "y"
	}

	return "n"
}

// appendMissing appends codes not already present in the list.
func appendMissing(list []string, codes ...string) []string {
	present := make(map[string]bool, len(list))
	for _, code := range list {
		present[code] = true
	}

	for _, code := range codes {
		if !present[code] {
			list = append(list, code)
		}
	}

	return list
}
