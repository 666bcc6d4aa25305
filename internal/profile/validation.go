package profile

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/Masterminds/semver/v3"
	"github.com/cockroachdb/errors"

	"github.com/prospekt-dev/prospekt/pkg/profile"
)

var (
	// ErrInvalidProfile is returned when the profile is invalid.
	ErrInvalidProfile = errors.New("invalid profile")

	// ErrInvalidOption is returned when an option value is invalid.
	ErrInvalidOption = errors.New("invalid option value")

	// ErrInvalidRegex is returned when a regular-expression option does not compile.
	ErrInvalidRegex = errors.New("invalid regular expression")

	// ErrDuplicateRule is returned when a disable list repeats a rule code.
	ErrDuplicateRule = errors.New("duplicate rule code")

	// ErrEmptyValue is returned when a required value is empty.
	ErrEmptyValue = errors.New("empty value not allowed")
)

// Meta-check codes reported against the profile itself. Entries in the
// profile-validator disable list suppress them.
const (
	CodeUnknownStrictness   = "unknown-strictness"
	CodeUnknownOutputFormat = "unknown-output-format"
	CodeUnknownTool         = "unknown-tool"
	CodeNonPositiveOption   = "nonpositive-option"
	CodeInvalidRegex        = "invalid-regex"
	CodeDuplicateDisable    = "duplicate-disable"
	CodeEmptyInherit        = "empty-inherit"
	CodeUnresolvedInherit   = "unresolved-inherit"
	CodeInvalidRequires     = "invalid-requires"
)

// Finding is one meta-check result against a profile.
type Finding struct {
	// Code is the meta-check rule code, suppressible via profile-validator.
	Code string

	// Path is the profile key path the finding refers to.
	Path string

	// Message describes the problem.
	Message string
}

// String formats the finding for report output.
func (f Finding) String() string {
	return fmt.Sprintf("%s: %s (%s)", f.Path, f.Message, f.Code)
}

// Resolver answers whether a named profile exists. The loader's registry
// implements it.
type Resolver interface {
	Has(name string) bool
}

// Validator validates profile semantics.
type Validator struct {
	resolver Resolver
}

// NewValidator creates a new Validator. The resolver may be nil, in which
// case inherits entries are not checked for resolvability.
func NewValidator(resolver Resolver) *Validator {
	return &Validator{resolver: resolver}
}

// Validate validates the profile and returns an error describing all
// unsuppressed findings.
func (v *Validator) Validate(cfg *profile.Profile) error {
	if cfg == nil {
		return errors.WithMessage(ErrInvalidProfile, "profile is nil")
	}

	findings := v.Findings(cfg)

	var validationErrors []error

	for _, finding := range findings {
		if cfg.ProfileValidator.IsDisabled(finding.Code) {
			continue
		}

		validationErrors = append(
			validationErrors,
			errors.Wrapf(ErrInvalidProfile, "%s", finding.String()),
		)
	}

	if len(validationErrors) > 0 {
		return errors.WithSecondaryError(
			errors.Wrapf(
				ErrInvalidProfile,
				"validation failed with %d finding(s)",
				len(validationErrors),
			),
			combineErrors(validationErrors),
		)
	}

	return nil
}

// Findings runs every meta-check and returns all findings, including
// suppressed ones. Callers that honor suppression filter by the
// profile-validator disable list.
func (v *Validator) Findings(cfg *profile.Profile) []Finding {
	if cfg == nil {
		return nil
	}

	var findings []Finding

	findings = append(findings, v.checkRootValues(cfg)...)
	findings = append(findings, v.checkUnknownKeys(cfg)...)
	findings = append(findings, v.checkInherits(cfg)...)
	findings = append(findings, v.checkDisableLists(cfg)...)
	findings = append(findings, v.checkPep8(cfg.Pep8)...)
	findings = append(findings, v.checkPylint(cfg.Pylint)...)
	findings = append(findings, v.checkMccabe(cfg.Mccabe)...)

	return findings
}

// checkRootValues validates the root-level enum-like settings.
func (*Validator) checkRootValues(cfg *profile.Profile) []Finding {
	var findings []Finding

	if cfg.Strictness != profile.StrictnessUnknown && !cfg.Strictness.IsValid() {
		findings = append(findings, Finding{
			Code:    CodeUnknownStrictness,
			Path:    "strictness",
			Message: fmt.Sprintf("unknown strictness level %q", cfg.Strictness),
		})
	}

	if cfg.OutputFormat != profile.OutputFormatUnknown && !cfg.OutputFormat.IsValid() {
		findings = append(findings, Finding{
			Code:    CodeUnknownOutputFormat,
			Path:    "output-format",
			Message: fmt.Sprintf("unknown output format %q", cfg.OutputFormat),
		})
	}

	if cfg.Requires != "" {
		if _, err := semver.NewConstraint(cfg.Requires); err != nil {
			findings = append(findings, Finding{
				Code:    CodeInvalidRequires,
				Path:    "requires",
				Message: fmt.Sprintf("%q is not a valid version constraint", cfg.Requires),
			})
		}
	}

	return findings
}

// checkUnknownKeys reports top-level keys the decode did not recognize,
// typically typo'd tool section names.
func (*Validator) checkUnknownKeys(cfg *profile.Profile) []Finding {
	if len(cfg.Extra) == 0 {
		return nil
	}

	keys := make([]string, 0, len(cfg.Extra))
	for key := range cfg.Extra {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	findings := make([]Finding, 0, len(keys))

	for _, key := range keys {
		findings = append(findings, Finding{
			Code:    CodeUnknownTool,
			Path:    key,
			Message: fmt.Sprintf("unknown tool or setting %q", key),
		})
	}

	return findings
}

// checkInherits validates the inherits list entries.
func (v *Validator) checkInherits(cfg *profile.Profile) []Finding {
	var findings []Finding

	for i, name := range cfg.Inherits {
		if name == "" {
			findings = append(findings, Finding{
				Code:    CodeEmptyInherit,
				Path:    fmt.Sprintf("inherits[%d]", i),
				Message: "empty profile name",
			})

			continue
		}

		if v.resolver != nil && !v.resolver.Has(name) {
			findings = append(findings, Finding{
				Code:    CodeUnresolvedInherit,
				Path:    fmt.Sprintf("inherits[%d]", i),
				Message: fmt.Sprintf("profile %q not found", name),
			})
		}
	}

	return findings
}

// checkDisableLists reports duplicated rule codes per tool section.
func (*Validator) checkDisableLists(cfg *profile.Profile) []Finding {
	var findings []Finding

	for _, tool := range profile.ToolNames() {
		section := cfg.Tool(tool)
		if section == nil {
			continue
		}

		seen := make(map[string]bool, len(section.Disable))

		for _, code := range section.Disable {
			if seen[code] {
				findings = append(findings, Finding{
					Code:    CodeDuplicateDisable,
					Path:    tool + ".disable",
					Message: fmt.Sprintf("rule code %q listed more than once", code),
				})
			}

			seen[code] = true
		}
	}

	return findings
}

// checkPep8 validates the pep8 options.
func (*Validator) checkPep8(cfg *profile.Pep8Settings) []Finding {
	if cfg == nil || cfg.Options == nil {
		return nil
	}

	return checkPositive("pep8.options.max-line-length", cfg.Options.MaxLineLength)
}

// checkPylint validates the pylint options.
func (*Validator) checkPylint(cfg *profile.PylintSettings) []Finding {
	if cfg == nil || cfg.Options == nil {
		return nil
	}

	opts := cfg.Options

	var findings []Finding

	findings = append(findings, checkPositive("pylint.options.max-line-length", opts.MaxLineLength)...)
	findings = append(findings, checkPositive("pylint.options.max-args", opts.MaxArgs)...)
	findings = append(findings, checkPositive("pylint.options.max-positional-arguments", opts.MaxPositionalArguments)...)
	findings = append(findings, checkPositive("pylint.options.max-attributes", opts.MaxAttributes)...)
	findings = append(findings, checkPositive("pylint.options.max-locals", opts.MaxLocals)...)
	findings = append(findings, checkRegex("pylint.options.variable-rgx", opts.VariableRgx)...)
	findings = append(findings, checkRegex("pylint.options.variable-name-hint", opts.VariableNameHint)...)

	return findings
}

// checkMccabe validates the mccabe options.
func (*Validator) checkMccabe(cfg *profile.MccabeSettings) []Finding {
	if cfg == nil || cfg.Options == nil {
		return nil
	}

	return checkPositive("mccabe.options.max-complexity", cfg.Options.MaxComplexity)
}

// checkPositive reports a finding when the value is set and not positive.
func checkPositive(path string, value *int) []Finding {
	if value == nil || *value > 0 {
		return nil
	}

	return []Finding{{
		Code:    CodeNonPositiveOption,
		Path:    path,
		Message: fmt.Sprintf("must be a positive integer, got %d", *value),
	}}
}

// checkRegex reports a finding when the value is set and does not compile.
func checkRegex(path, value string) []Finding {
	if value == "" {
		return nil
	}

	if _, err := regexp.Compile(value); err != nil {
		return []Finding{{
			Code:    CodeInvalidRegex,
			Path:    path,
			Message: fmt.Sprintf("does not compile: %v", err),
		}}
	}

	return nil
}

// combineErrors merges a list of errors into one.
func combineErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}

	if len(errs) == 1 {
		return errs[0]
	}

	return errors.Join(errs...)
}
