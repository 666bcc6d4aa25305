package tools

import (
	"context"
	"io"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/cockroachdb/errors"

	execpkg "github.com/prospekt-dev/prospekt/internal/exec"
	"github.com/prospekt-dev/prospekt/pkg/logger"
	"github.com/prospekt-dev/prospekt/pkg/profile"
)

// stubRunner returns canned output per binary name.
type stubRunner struct {
	mu      sync.Mutex
	outputs map[string]*execpkg.CommandResult
	errs    map[string]error
	calls   [][]string
}

func (s *stubRunner) Run(_ context.Context, name string, args ...string) (*execpkg.CommandResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls = append(s.calls, append([]string{name}, args...))

	result, ok := s.outputs[name]
	if !ok {
		result = &execpkg.CommandResult{}
	}

	return result, s.errs[name]
}

func (s *stubRunner) RunWithStdin(
	ctx context.Context,
	_ io.Reader,
	name string,
	args ...string,
) (*execpkg.CommandResult, error) {
	return s.Run(ctx, name, args...)
}

func (s *stubRunner) RunWithTimeout(
	_ time.Duration,
	name string,
	args ...string,
) (*execpkg.CommandResult, error) {
	return s.Run(context.Background(), name, args...)
}

// stubChecker reports a fixed set of binaries as available.
type stubChecker struct {
	available map[string]bool
}

func (s *stubChecker) IsAvailable(tool string) bool {
	return s.available[tool]
}

func (s *stubChecker) RequireTool(tool string) error {
	if !s.IsAvailable(tool) {
		return &execpkg.ToolNotFoundError{Tool: tool}
	}

	return nil
}

func (s *stubChecker) FindTool(alternatives ...string) string {
	for _, tool := range alternatives {
		if s.available[tool] {
			return tool
		}
	}

	return ""
}

func newTestRunner(cmdRunner execpkg.CommandRunner, checker execpkg.ToolChecker) *Runner {
	return NewRunnerWithDeps(cmdRunner, checker, NewPlanner(), logger.NewNoOpLogger())
}

var _ = Describe("Runner", func() {
	var (
		cmdRunner *stubRunner
		checker   *stubChecker
	)

	BeforeEach(func() {
		cmdRunner = &stubRunner{
			outputs: map[string]*execpkg.CommandResult{},
			errs:    map[string]error{},
		}
		checker = &stubChecker{available: map[string]bool{
			"pycodestyle": true,
			"pylint":      true,
			"python3":     true,
		}}
	})

	It("aggregates findings from every planned tool", func() {
		cmdRunner.outputs["pycodestyle"] = &execpkg.CommandResult{
			Stdout: "app.py:1:80: E501 line too long (95 > 79 characters)\n",
		}
		cmdRunner.outputs["pylint"] = &execpkg.CommandResult{
			Stdout: `[{"type": "warning", "path": "app.py", "line": 2, "column": 0,
  "symbol": "unused-import", "message": "Unused import os", "message-id": "W0611"}]`,
		}

		runner := newTestRunner(cmdRunner, checker)

		report, err := runner.Run(context.Background(), &profile.Profile{}, []string{"app.py"})
		Expect(err).NotTo(HaveOccurred())

		codes := make([]string, 0)
		for _, f := range report.Findings() {
			codes = append(codes, f.Code)
		}

		Expect(codes).To(ContainElements("E501", "unused-import"))
		Expect(report.HasErrors()).To(BeTrue(), "E501 is an error")
	})

	It("records missing tools as skipped", func() {
		checker.available = map[string]bool{"pycodestyle": true}

		runner := newTestRunner(cmdRunner, checker)

		report, err := runner.Run(context.Background(), &profile.Profile{}, []string{"app.py"})
		Expect(err).NotTo(HaveOccurred())

		pylintResult := report.Result(profile.ToolPylint)
		Expect(pylintResult).NotTo(BeNil())
		Expect(pylintResult.Skipped).To(BeTrue())
		Expect(pylintResult.SkipReason).To(ContainSubstring("pylint"))
	})

	It("falls back to alternative binaries", func() {
		checker.available = map[string]bool{"pep8": true}
		cmdRunner.outputs["pep8"] = &execpkg.CommandResult{
			Stdout: "app.py:1:80: E501 line too long (95 > 79 characters)\n",
		}

		cfg := &profile.Profile{
			Pylint: &profile.PylintSettings{
				ToolSettings: profile.ToolSettings{Run: boolPtr(false)},
			},
			Mccabe: &profile.MccabeSettings{
				ToolSettings: profile.ToolSettings{Run: boolPtr(false)},
			},
		}

		runner := newTestRunner(cmdRunner, checker)

		report, err := runner.Run(context.Background(), cfg, []string{"app.py"})
		Expect(err).NotTo(HaveOccurred())

		result := report.Result(profile.ToolPep8)
		Expect(result.Skipped).To(BeFalse())
		Expect(result.Findings).To(HaveLen(1))
	})

	It("drops findings the profile suppresses", func() {
		cmdRunner.outputs["pylint"] = &execpkg.CommandResult{
			Stdout: `[
  {"type": "error", "path": "app.py", "line": 4, "column": 0,
   "symbol": "import-error", "message": "Unable to import 'missing'", "message-id": "E0401"},
  {"type": "warning", "path": "app.py", "line": 6, "column": 0,
   "symbol": "unused-import", "message": "Unused import os", "message-id": "W0611"}
]`,
		}

		cfg := &profile.Profile{
			Pylint: &profile.PylintSettings{
				ToolSettings: profile.ToolSettings{Disable: []string{"import-error"}},
			},
		}

		runner := newTestRunner(cmdRunner, checker)

		report, err := runner.Run(context.Background(), cfg, []string{"app.py"})
		Expect(err).NotTo(HaveOccurred())

		result := report.Result(profile.ToolPylint)
		Expect(result.Findings).To(HaveLen(1))
		Expect(result.Findings[0].Code).To(Equal("unused-import"))
	})

	It("reports a crashed tool instead of a clean result", func() {
		cmdRunner.outputs["pylint"] = &execpkg.CommandResult{
			Stderr:   "Traceback (most recent call last):\nImportError: no module named astroid\n",
			ExitCode: 2,
		}
		cmdRunner.errs["pylint"] = errors.New("exit status 2")

		runner := newTestRunner(cmdRunner, checker)

		report, err := runner.Run(context.Background(), &profile.Profile{}, []string{"app.py"})
		Expect(err).NotTo(HaveOccurred())

		result := report.Result(profile.ToolPylint)
		Expect(result.Skipped).To(BeFalse())
		Expect(result.Findings).To(BeEmpty())
		Expect(result.Err).To(HaveOccurred())
		Expect(result.RawOut).To(ContainSubstring("Traceback"))
	})

	It("treats fully suppressed output as a working tool", func() {
		cmdRunner.outputs["pycodestyle"] = &execpkg.CommandResult{
			Stdout:   "app.py:1:80: E501 line too long (95 > 79 characters)\n",
			ExitCode: 1,
		}
		cmdRunner.errs["pycodestyle"] = errors.New("exit status 1")

		cfg := &profile.Profile{
			Pep8: &profile.Pep8Settings{
				ToolSettings: profile.ToolSettings{Disable: []string{"E501"}},
			},
		}

		runner := newTestRunner(cmdRunner, checker)

		report, err := runner.Run(context.Background(), cfg, []string{"app.py"})
		Expect(err).NotTo(HaveOccurred())

		result := report.Result(profile.ToolPep8)
		Expect(result.Err).NotTo(HaveOccurred())
		Expect(result.Findings).To(BeEmpty())
	})

	It("keeps suppressed codes when full mode is on", func() {
		cmdRunner.outputs["pycodestyle"] = &execpkg.CommandResult{
			Stdout: "app.py:1:80: E501 line too long (95 > 79 characters)\n",
		}

		cfg := &profile.Profile{
			Pep8: &profile.Pep8Settings{
				ToolSettings: profile.ToolSettings{
					Full:    boolPtr(true),
					Disable: []string{"E501"},
				},
			},
		}

		runner := newTestRunner(cmdRunner, checker)

		report, err := runner.Run(context.Background(), cfg, []string{"app.py"})
		Expect(err).NotTo(HaveOccurred())

		result := report.Result(profile.ToolPep8)
		Expect(result.Findings).To(HaveLen(1))
		Expect(result.Findings[0].Code).To(Equal("E501"))
	})

	It("drops test-module findings while test-warnings is off", func() {
		cmdRunner.outputs["pycodestyle"] = &execpkg.CommandResult{
			Stdout: "tests/test_app.py:1:80: E501 line too long (95 > 79 characters)\n" +
				"app.py:1:80: E501 line too long (95 > 79 characters)\n",
		}

		runner := newTestRunner(cmdRunner, checker)

		report, err := runner.Run(context.Background(), &profile.Profile{}, []string{"."})
		Expect(err).NotTo(HaveOccurred())

		result := report.Result(profile.ToolPep8)
		Expect(result.Findings).To(HaveLen(1))
		Expect(result.Findings[0].File).To(Equal("app.py"))
	})

	It("keeps test-module findings when test-warnings is on", func() {
		cmdRunner.outputs["pycodestyle"] = &execpkg.CommandResult{
			Stdout: "tests/test_app.py:1:80: E501 line too long (95 > 79 characters)\n",
		}

		cfg := &profile.Profile{TestWarnings: boolPtr(true)}

		runner := newTestRunner(cmdRunner, checker)

		report, err := runner.Run(context.Background(), cfg, []string{"."})
		Expect(err).NotTo(HaveOccurred())

		Expect(report.Result(profile.ToolPep8).Findings).To(HaveLen(1))
	})
})
