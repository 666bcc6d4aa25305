// Package main provides the CLI entry point for prospekt.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/prospekt-dev/prospekt/internal/discover"
	execpkg "github.com/prospekt-dev/prospekt/internal/exec"
	internalprofile "github.com/prospekt-dev/prospekt/internal/profile"
	"github.com/prospekt-dev/prospekt/internal/report"
	"github.com/prospekt-dev/prospekt/internal/tools"
	"github.com/prospekt-dev/prospekt/pkg/logger"
	"github.com/prospekt-dev/prospekt/pkg/profile"
)

const (
	// ExitCodeClean indicates the run finished without error findings.
	ExitCodeClean = 0

	// ExitCodeFailure indicates the run itself failed.
	ExitCodeFailure = 1

	// ExitCodeFindings indicates the run finished but reported error findings.
	ExitCodeFindings = 2

	// defaultToolTimeout bounds a single tool invocation.
	defaultToolTimeout = 5 * time.Minute
)

var (
	debugMode        bool
	traceMode        bool
	profilePath      string
	globalProfile    string
	strictnessFlag   string
	outputFormatFlag string
	docWarningsFlag  bool
	withoutTools     []string
	withTools        []string

	// findingsReported is set by the check run when the report contains
	// error findings, so mainWithExitCode can map it to ExitCodeFindings.
	findingsReported bool
)

func main() {
	os.Exit(mainWithExitCode())
}

func mainWithExitCode() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)

		return ExitCodeFailure
	}

	if findingsReported {
		return ExitCodeFindings
	}

	return ExitCodeClean
}

var rootCmd = &cobra.Command{
	Use:   "prospekt [paths...]",
	Short: "Python lint aggregator",
	Long: `Python lint aggregator - runs the analysis tools your profile enables
(pycodestyle, pydocstyle, pylint, pyroma, vulture, mccabe) over a project
and merges their findings into one report.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		checkVersionFlag()
	},
	RunE:              runCheck,
	CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&traceMode, "trace", false, "Enable trace logging")
	rootCmd.PersistentFlags().StringVarP(
		&profilePath,
		"profile",
		"p",
		"",
		"Path to project profile file (default: .prospekt/profile.yaml, .prospekt.yaml or .prospekt.toml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&globalProfile,
		"global-profile",
		"",
		"Path to global profile file (default: ~/.prospekt/profile.yaml)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&strictnessFlag,
		"strictness",
		"s",
		"",
		"Strictness level (verylow, low, medium, high, veryhigh)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormatFlag,
		"output-format",
		"o",
		"",
		"Output format (text, grouped, json, yaml, emacs, pylint)",
	)
	rootCmd.PersistentFlags().BoolVar(
		&docWarningsFlag,
		"doc-warnings",
		false,
		"Enable documentation warnings",
	)
	rootCmd.PersistentFlags().StringSliceVar(
		&withoutTools,
		"without-tool",
		[]string{},
		"Comma-separated list of tools to disable (e.g., pylint,mccabe)",
	)
	rootCmd.PersistentFlags().StringSliceVar(
		&withTools,
		"with-tool",
		[]string{},
		"Comma-separated list of tools to enable (e.g., pyroma,vulture)",
	)
}

func runCheck(cmd *cobra.Command, args []string) error {
	log, err := newLogger()
	if err != nil {
		return err
	}

	cfg, err := loadProfile(cmd, log)
	if err != nil {
		return errors.Wrap(err, "failed to load profile")
	}

	root := projectRoot()

	targets, err := collectTargets(cfg, root, args)
	if err != nil {
		return err
	}

	if len(targets) == 0 {
		log.Info("no Python files to check", "root", root)

		return nil
	}

	applyAutodetect(cfg, root, log)

	runner := tools.NewRunner(newCommandRunner(), log)

	rep, err := runner.Run(context.Background(), cfg, targets)
	if err != nil {
		return errors.Wrap(err, "tool run failed")
	}

	out, err := report.Format(rep, cfg.GetOutputFormat())
	if err != nil {
		return err
	}

	fmt.Print(out)

	reportSkipped(rep, log)

	// Any reported finding means a non-clean exit, warnings included,
	// matching what CI scripts expect from flake8 and pylint.
	if rep.HasFindings() {
		findingsReported = true
	}

	return nil
}

// newCommandRunner creates the command runner tool invocations go through.
func newCommandRunner() execpkg.CommandRunner {
	return execpkg.NewCommandRunner(defaultToolTimeout)
}

// newLogger creates the file logger at ~/.prospekt/prospekt.log.
func newLogger() (logger.Logger, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get home directory")
	}

	logDir := filepath.Join(homeDir, internalprofile.GlobalProfileDir)
	if err := os.MkdirAll(logDir, 0o700); err != nil {
		return nil, errors.Wrap(err, "failed to create log directory")
	}

	log, err := logger.NewFileLogger(filepath.Join(logDir, "prospekt.log"), debugMode, traceMode)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create logger")
	}

	return log, nil
}

// loadProfile loads the effective profile from all sources with precedence.
func loadProfile(cmd *cobra.Command, log logger.Logger) (*profile.Profile, error) {
	loader, err := newLoader()
	if err != nil {
		return nil, err
	}

	cfg, err := loader.Load(buildFlagsMap(cmd))
	if err != nil {
		return nil, err
	}

	log.Debug("profile loaded",
		"strictness", cfg.GetStrictness(),
		"outputFormat", cfg.GetOutputFormat(),
	)

	return cfg, nil
}

// newLoader creates the profile loader honoring the path override flags.
func newLoader() (*internalprofile.Loader, error) {
	loader, err := internalprofile.NewLoader()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create profile loader")
	}

	loader.SetVersion(version)

	if profilePath != "" {
		loader.SetProjectPath(profilePath)
	}

	if globalProfile != "" {
		loader.SetGlobalPath(globalProfile)
	}

	return loader, nil
}

// buildFlagsMap converts CLI flags to a map for the profile loader.
// doc-warnings only participates when the flag was actually set, so a
// profile's value is not clobbered by the flag default.
func buildFlagsMap(cmd *cobra.Command) map[string]any {
	flags := make(map[string]any)

	if strictnessFlag != "" {
		flags["strictness"] = strictnessFlag
	}

	if outputFormatFlag != "" {
		flags["output-format"] = outputFormatFlag
	}

	if cmd != nil && cmd.Flags().Changed("doc-warnings") {
		flags["doc-warnings"] = docWarningsFlag
	}

	if len(withoutTools) > 0 {
		flags["without-tool"] = withoutTools
	}

	if len(withTools) > 0 {
		flags["with-tool"] = withTools
	}

	return flags
}

// projectRoot returns the enclosing git worktree root, falling back to the
// current working directory outside a repository.
func projectRoot() string {
	cwd, err := os.Getwd()
	if err != nil {
		return "."
	}

	return discover.ProjectRoot(cwd)
}

// collectTargets resolves the paths to check: explicit arguments when
// given, otherwise every non-ignored Python file under the project root.
func collectTargets(cfg *profile.Profile, root string, args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}

	matcher, err := discover.NewMatcher(cfg.IgnorePaths, cfg.IgnorePatterns)
	if err != nil {
		return nil, errors.Wrap(err, "invalid ignore configuration")
	}

	files, err := discover.PythonFiles(root, matcher)
	if err != nil {
		return nil, errors.Wrap(err, "failed to discover Python files")
	}

	return files, nil
}

// applyAutodetect scans dependency files for known frameworks and loads
// the matching pylint plugins into the effective profile.
func applyAutodetect(cfg *profile.Profile, root string, log logger.Logger) {
	if !cfg.IsAutodetectEnabled() {
		return
	}

	frameworks := discover.DetectFrameworks(root)
	if len(frameworks) == 0 {
		return
	}

	for _, framework := range frameworks {
		log.Info("detected framework", "framework", framework.Name, "plugin", framework.PylintPlugin)
	}

	if cfg.Pylint == nil {
		cfg.Pylint = &profile.PylintSettings{}
	}

	if cfg.Pylint.Options == nil {
		cfg.Pylint.Options = &profile.PylintOptions{}
	}

	cfg.Pylint.Options.LoadPlugins = appendUnique(
		cfg.Pylint.Options.LoadPlugins,
		discover.PylintPlugins(frameworks)...,
	)
}

// appendUnique appends values not already present in the slice.
func appendUnique(existing []string, values ...string) []string {
	seen := make(map[string]bool, len(existing))
	for _, v := range existing {
		seen[v] = true
	}

	for _, v := range values {
		if !seen[v] {
			existing = append(existing, v)
			seen[v] = true
		}
	}

	return existing
}

// reportSkipped logs tools that were planned but missing from PATH.
func reportSkipped(rep *tools.RunReport, log logger.Logger) {
	for _, result := range rep.Results {
		if result.Skipped {
			fmt.Fprintf(os.Stderr, "warning: %s skipped (%s)\n", result.Tool, result.SkipReason)
			log.Info("tool skipped", "tool", result.Tool, "reason", result.SkipReason)
		}

		if result.Err != nil {
			fmt.Fprintf(os.Stderr, "warning: %s failed: %v\n", result.Tool, result.Err)
			log.Error("tool failed", "tool", result.Tool, "error", result.Err)
		}
	}
}
