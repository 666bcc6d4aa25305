// Package tools maps profile sections onto the underlying Python lint
// tools: building their command lines, running them, and parsing their
// output into findings.
package tools

// Severity represents the severity level of a finding.
type Severity string

const (
	// SeverityError indicates a blocking error.
	SeverityError Severity = "error"
	// SeverityWarning indicates a non-blocking warning.
	SeverityWarning Severity = "warning"
	// SeverityInfo indicates an informational message.
	SeverityInfo Severity = "info"
)

// Finding represents a single finding from one tool.
type Finding struct {
	Tool     string
	File     string
	Line     int
	Column   int
	Severity Severity
	Message  string
	Code     string
}

// ToolResult represents the outcome of running one tool.
type ToolResult struct {
	// Tool is the wire name of the tool section.
	Tool string

	// Skipped is set when the tool did not execute (gated off by the
	// profile or missing from PATH).
	Skipped bool

	// SkipReason explains why the tool was skipped.
	SkipReason string

	// Findings holds the parsed findings, suppressions already applied.
	Findings []Finding

	// RawOut is the tool's combined stdout and stderr.
	RawOut string

	// Err is set when the tool failed to execute at all. A non-zero exit
	// with parseable findings is not an execution failure.
	Err error
}

// RunReport aggregates the results of one prospekt run.
type RunReport struct {
	Results []ToolResult
}

// Findings returns all findings across tools, in tool order.
func (r *RunReport) Findings() []Finding {
	var out []Finding

	for _, result := range r.Results {
		out = append(out, result.Findings...)
	}

	return out
}

// HasErrors reports whether any tool produced an error-level finding.
func (r *RunReport) HasErrors() bool {
	for _, f := range r.Findings() {
		if f.Severity == SeverityError {
			return true
		}
	}

	return false
}

// HasFindings reports whether any tool produced findings at all.
func (r *RunReport) HasFindings() bool {
	return len(r.Findings()) > 0
}

// Result returns the result for the named tool, or nil.
func (r *RunReport) Result(tool string) *ToolResult {
	for i := range r.Results {
		if r.Results[i].Tool == tool {
			return &r.Results[i]
		}
	}

	return nil
}
