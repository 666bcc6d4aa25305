// Package report renders run reports in the layouts the output-format
// setting selects.
package report

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/prospekt-dev/prospekt/internal/tools"
	"github.com/prospekt-dev/prospekt/pkg/profile"
)

// ErrUnknownFormat is returned when the output format has no renderer.
var ErrUnknownFormat = errors.New("unknown output format")

// jsonFinding is the wire shape of a finding in json and yaml output.
type jsonFinding struct {
	Tool     string `json:"tool"               yaml:"tool"`
	File     string `json:"file,omitempty"     yaml:"file,omitempty"`
	Line     int    `json:"line,omitempty"     yaml:"line,omitempty"`
	Column   int    `json:"column,omitempty"   yaml:"column,omitempty"`
	Severity string `json:"severity"           yaml:"severity"`
	Code     string `json:"code"               yaml:"code"`
	Message  string `json:"message"            yaml:"message"`
}

// Format renders the report in the given layout.
func Format(r *tools.RunReport, format profile.OutputFormat) (string, error) {
	switch format {
	case profile.OutputFormatText, profile.OutputFormatUnknown:
		return formatText(r), nil
	case profile.OutputFormatGrouped:
		return formatGrouped(r), nil
	case profile.OutputFormatJSON:
		return formatJSON(r)
	case profile.OutputFormatYAML:
		return formatYAML(r)
	case profile.OutputFormatEmacs:
		return formatEmacs(r), nil
	case profile.OutputFormatPylint:
		return formatPylint(r), nil
	default:
		return "", errors.Wrapf(ErrUnknownFormat, "%q", format)
	}
}

// formatText renders one finding per line.
func formatText(r *tools.RunReport) string {
	var builder strings.Builder

	for _, f := range r.Findings() {
		fmt.Fprintf(&builder, "%s:%d:%d: %s %s (%s)\n",
			f.File, f.Line, f.Column, f.Code, f.Message, f.Tool)
	}

	return builder.String()
}

// formatGrouped renders findings grouped by file.
func formatGrouped(r *tools.RunReport) string {
	byFile := make(map[string][]tools.Finding)

	var files []string

	for _, f := range r.Findings() {
		if _, ok := byFile[f.File]; !ok {
			files = append(files, f.File)
		}

		byFile[f.File] = append(byFile[f.File], f)
	}

	sort.Strings(files)

	var builder strings.Builder

	for _, file := range files {
		fmt.Fprintf(&builder, "%s:\n", file)

		for _, f := range byFile[file] {
			fmt.Fprintf(&builder, "  %d:%d %s %s (%s)\n",
				f.Line, f.Column, f.Code, f.Message, f.Tool)
		}
	}

	return builder.String()
}

// formatJSON renders findings as a JSON array.
func formatJSON(r *tools.RunReport) (string, error) {
	data, err := json.MarshalIndent(wireFindings(r), "", "  ")
	if err != nil {
		return "", errors.Wrap(err, "marshaling report to JSON")
	}

	return string(data) + "\n", nil
}

// formatYAML renders findings as a YAML sequence.
func formatYAML(r *tools.RunReport) (string, error) {
	data, err := yaml.Marshal(wireFindings(r))
	if err != nil {
		return "", errors.Wrap(err, "marshaling report to YAML")
	}

	return string(data), nil
}

// formatEmacs renders findings in the emacs compilation-mode layout.
func formatEmacs(r *tools.RunReport) string {
	var builder strings.Builder

	for _, f := range r.Findings() {
		fmt.Fprintf(&builder, "%s:%d:%d: %s: %s\n",
			f.File, f.Line, f.Column, f.Severity, f.Message)
	}

	return builder.String()
}

// formatPylint renders findings in pylint's parseable layout.
func formatPylint(r *tools.RunReport) string {
	var builder strings.Builder

	for _, f := range r.Findings() {
		fmt.Fprintf(&builder, "%s:%d: [%s] %s\n",
			f.File, f.Line, f.Code, f.Message)
	}

	return builder.String()
}

// wireFindings converts report findings to their wire shape.
func wireFindings(r *tools.RunReport) []jsonFinding {
	findings := r.Findings()
	out := make([]jsonFinding, 0, len(findings))

	for _, f := range findings {
		out = append(out, jsonFinding{
			Tool:     f.Tool,
			File:     f.File,
			Line:     f.Line,
			Column:   f.Column,
			Severity: string(f.Severity),
			Code:     f.Code,
			Message:  f.Message,
		})
	}

	return out
}
