package tools

import (
	"context"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	execpkg "github.com/prospekt-dev/prospekt/internal/exec"
	"github.com/prospekt-dev/prospekt/pkg/logger"
	"github.com/prospekt-dev/prospekt/pkg/profile"
)

// Runner executes the tool plan derived from an effective profile.
type Runner struct {
	runner  execpkg.CommandRunner
	checker execpkg.ToolChecker
	planner *Planner
	log     logger.Logger
}

// NewRunner creates a Runner over the default tool adapters.
func NewRunner(cmdRunner execpkg.CommandRunner, log logger.Logger) *Runner {
	return &Runner{
		runner:  cmdRunner,
		checker: execpkg.NewToolChecker(),
		planner: NewPlanner(),
		log:     log,
	}
}

// NewRunnerWithDeps creates a Runner with custom dependencies (for testing).
func NewRunnerWithDeps(
	cmdRunner execpkg.CommandRunner,
	checker execpkg.ToolChecker,
	planner *Planner,
	log logger.Logger,
) *Runner {
	return &Runner{
		runner:  cmdRunner,
		checker: checker,
		planner: planner,
		log:     log,
	}
}

// Run executes every tool the profile lets run, concurrently, and returns
// the aggregated report. Tools missing from PATH are recorded as skipped
// rather than failing the run.
func (r *Runner) Run(ctx context.Context, cfg *profile.Profile, paths []string) (*RunReport, error) {
	plan := r.planner.Plan(cfg, paths)
	results := make([]ToolResult, len(plan))

	byName := make(map[string]Tool, len(r.planner.Tools()))
	for _, tool := range r.planner.Tools() {
		byName[tool.Name()] = tool
	}

	g, gctx := errgroup.WithContext(ctx)

	for i := range plan {
		inv := plan[i]

		g.Go(func() error {
			results[i] = r.runOne(gctx, cfg, byName[inv.Tool], inv)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &RunReport{Results: results}, nil
}

// runOne executes a single invocation and applies finding suppression.
func (r *Runner) runOne(
	ctx context.Context,
	cfg *profile.Profile,
	tool Tool,
	inv Invocation,
) ToolResult {
	binary := r.checker.FindTool(append([]string{inv.Binary}, inv.Alternatives...)...)
	if binary == "" {
		r.log.Info("tool not found in PATH, skipping",
			"tool", inv.Tool,
			"binary", inv.Binary,
		)

		return ToolResult{
			Tool:       inv.Tool,
			Skipped:    true,
			SkipReason: "not found in PATH: " + inv.Binary,
		}
	}

	r.log.Debug("running tool", "tool", inv.Tool, "binary", binary, "args", strings.Join(inv.Args, " "))

	cmdResult, err := r.runner.Run(ctx, binary, inv.Args...)
	if cmdResult == nil {
		return ToolResult{Tool: inv.Tool, Err: err}
	}

	rawOut := cmdResult.Stdout + cmdResult.Stderr
	parsed := tool.Parse(cmdResult.Stdout)
	findings := r.filter(cfg, tool, parsed)

	// Lint tools signal findings with non-zero exits, so the exit code
	// alone says nothing. A failed run is one that errored and produced no
	// parseable output at all; parsed findings that the profile then
	// suppresses still count as a working tool.
	if err != nil && len(parsed) == 0 {
		return ToolResult{Tool: inv.Tool, RawOut: rawOut, Err: err}
	}

	return ToolResult{
		Tool:     inv.Tool,
		Findings: findings,
		RawOut:   rawOut,
	}
}

// filter drops findings the profile suppresses: rule codes in the tool's
// disable list, and findings in test modules when test-warnings is off.
// Full mode bypasses the disable list, matching the planned invocation;
// the test-module filter still applies.
func (*Runner) filter(cfg *profile.Profile, tool Tool, findings []Finding) []Finding {
	if len(findings) == 0 {
		return findings
	}

	section := cfg.Tool(tool.Name())
	full := section.IsFull()
	skipTests := !cfg.AreTestWarningsEnabled()

	out := make([]Finding, 0, len(findings))

	for _, finding := range findings {
		if !full && section.IsDisabled(finding.Code) {
			continue
		}

		if skipTests && isTestModule(finding.File) {
			continue
		}

		out = append(out, finding)
	}

	return out
}

// isTestModule reports whether the path looks like a Python test module.
func isTestModule(path string) bool {
	if path == "" {
		return false
	}

	base := filepath.Base(path)
	if strings.HasPrefix(base, "test_") || strings.HasSuffix(base, "_test.py") {
		return true
	}

	for _, part := range strings.Split(filepath.ToSlash(filepath.Dir(path)), "/") {
		if part == "tests" || part == "test" {
			return true
		}
	}

	return false
}
