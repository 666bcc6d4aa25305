package tools

import (
	"github.com/prospekt-dev/prospekt/pkg/profile"
)

// Invocation describes one external tool command derived from the
// effective profile.
type Invocation struct {
	// Tool is the wire name of the profile section that produced this
	// invocation.
	Tool string

	// Binary is the preferred executable name.
	Binary string

	// Alternatives are fallback executable names tried in order when
	// Binary is not in PATH.
	Alternatives []string

	// Args are the command arguments, target paths included.
	Args []string
}

// Tool turns a profile section into an invocation and parses the tool's
// output into findings.
type Tool interface {
	// Name returns the wire name of the profile section.
	Name() string

	// Plan builds the invocation for the given profile and target paths.
	// Returns nil when the profile gates the tool off.
	Plan(cfg *profile.Profile, paths []string) *Invocation

	// Parse converts raw tool output into findings.
	Parse(output string) []Finding
}

// DefaultTools returns all tool adapters in the order they run.
func DefaultTools() []Tool {
	return []Tool{
		NewPep8Tool(),
		NewPep257Tool(),
		NewPylintTool(),
		NewPyromaTool(),
		NewVultureTool(),
		NewMccabeTool(),
	}
}

// Planner derives the ordered execution plan from an effective profile.
type Planner struct {
	tools []Tool
}

// NewPlanner creates a Planner over the default tool adapters.
func NewPlanner() *Planner {
	return &Planner{tools: DefaultTools()}
}

// NewPlannerWithTools creates a Planner over custom adapters (for testing).
func NewPlannerWithTools(tools []Tool) *Planner {
	return &Planner{tools: tools}
}

// Plan returns the invocations for every tool the profile lets run, in
// tool order. Tools with run gated off are absent from the plan.
func (p *Planner) Plan(cfg *profile.Profile, paths []string) []Invocation {
	plan := make([]Invocation, 0, len(p.tools))

	for _, tool := range p.tools {
		if inv := tool.Plan(cfg, paths); inv != nil {
			plan = append(plan, *inv)
		}
	}

	return plan
}

// Tools returns the planner's adapters in run order.
func (p *Planner) Tools() []Tool {
	return p.tools
}
