// Package profile defines the schema types for prospekt profiles.
package profile

// Profile is the root of a prospekt profile document. All pointer fields
// distinguish "not set" from an explicit value so that partial profiles
// merge cleanly across the inheritance chain.
type Profile struct {
	// Name identifies the profile when it participates in inheritance.
	// Built-in profiles and sibling profile files are referenced by name.
	Name string `json:"name,omitempty" koanf:"name" yaml:"name,omitempty" toml:"name,omitempty"`

	// Inherits lists parent profiles this profile extends, in order.
	// Later parents override earlier ones; the profile itself overrides all.
	Inherits []string `json:"inherits,omitempty" koanf:"inherits" yaml:"inherits,omitempty" toml:"inherits,omitempty"`

	// Strictness is the overall strictness level. It selects a built-in
	// base profile that seeds tool defaults before inheritance applies.
	Strictness Strictness `json:"strictness,omitempty" koanf:"strictness" yaml:"strictness,omitempty" toml:"strictness,omitempty"`

	// OutputFormat selects the report layout.
	OutputFormat OutputFormat `json:"output-format,omitempty" koanf:"output-format" yaml:"output-format,omitempty" toml:"output-format,omitempty"`

	// Requires constrains which prospekt versions may consume this profile,
	// e.g. ">= 1.2". Empty means any version.
	Requires string `json:"requires,omitempty" koanf:"requires" yaml:"requires,omitempty" toml:"requires,omitempty"`

	// DocWarnings toggles docstring warnings across tools.
	// Default: false
	DocWarnings *bool `json:"doc-warnings,omitempty" koanf:"doc-warnings" yaml:"doc-warnings,omitempty" toml:"doc-warnings,omitempty"`

	// MemberWarnings toggles checks on member access (pylint no-member family).
	// Default: false
	MemberWarnings *bool `json:"member-warnings,omitempty" koanf:"member-warnings" yaml:"member-warnings,omitempty" toml:"member-warnings,omitempty"`

	// TestWarnings toggles warnings in test modules.
	// Default: false
	TestWarnings *bool `json:"test-warnings,omitempty" koanf:"test-warnings" yaml:"test-warnings,omitempty" toml:"test-warnings,omitempty"`

	// Autodetect enables framework detection (django, celery, flask) from the
	// project's dependency files.
	// Default: true
	Autodetect *bool `json:"autodetect,omitempty" koanf:"autodetect" yaml:"autodetect,omitempty" toml:"autodetect,omitempty"`

	// IgnorePaths lists path globs excluded from analysis.
	IgnorePaths []string `json:"ignore-paths,omitempty" koanf:"ignore-paths" yaml:"ignore-paths,omitempty" toml:"ignore-paths,omitempty"`

	// IgnorePatterns lists regular expressions matched against relative paths.
	IgnorePatterns []string `json:"ignore-patterns,omitempty" koanf:"ignore-patterns" yaml:"ignore-patterns,omitempty" toml:"ignore-patterns,omitempty"`

	// ProfileValidator configures the meta-checks run against the profile itself.
	ProfileValidator *ToolSettings `json:"profile-validator,omitempty" koanf:"profile-validator" yaml:"profile-validator,omitempty" toml:"profile-validator,omitempty"`

	// Pep8 configures the pycodestyle checks.
	Pep8 *Pep8Settings `json:"pep8,omitempty" koanf:"pep8" yaml:"pep8,omitempty" toml:"pep8,omitempty"`

	// Pep257 configures the pydocstyle checks.
	Pep257 *Pep257Settings `json:"pep257,omitempty" koanf:"pep257" yaml:"pep257,omitempty" toml:"pep257,omitempty"`

	// Pylint configures the pylint checks.
	Pylint *PylintSettings `json:"pylint,omitempty" koanf:"pylint" yaml:"pylint,omitempty" toml:"pylint,omitempty"`

	// Pyroma configures the packaging-metadata check.
	Pyroma *ToolSettings `json:"pyroma,omitempty" koanf:"pyroma" yaml:"pyroma,omitempty" toml:"pyroma,omitempty"`

	// Vulture configures the dead-code check.
	Vulture *ToolSettings `json:"vulture,omitempty" koanf:"vulture" yaml:"vulture,omitempty" toml:"vulture,omitempty"`

	// Mccabe configures the cyclomatic-complexity check.
	Mccabe *MccabeSettings `json:"mccabe,omitempty" koanf:"mccabe" yaml:"mccabe,omitempty" toml:"mccabe,omitempty"`

	// Extra collects top-level keys that match no known setting, so the
	// profile validator can report typo'd tool sections instead of the
	// decode silently dropping them. Never serialized back out.
	Extra map[string]any `json:"-" koanf:",remain" yaml:"-" toml:"-"`
}

// AreDocWarningsEnabled reports whether docstring warnings are on.
func (p *Profile) AreDocWarningsEnabled() bool {
	if p.DocWarnings == nil {
		return false
	}

	return *p.DocWarnings
}

// AreMemberWarningsEnabled reports whether member-access warnings are on.
func (p *Profile) AreMemberWarningsEnabled() bool {
	if p.MemberWarnings == nil {
		return false
	}

	return *p.MemberWarnings
}

// AreTestWarningsEnabled reports whether warnings in test modules are on.
func (p *Profile) AreTestWarningsEnabled() bool {
	if p.TestWarnings == nil {
		return false
	}

	return *p.TestWarnings
}

// IsAutodetectEnabled reports whether framework autodetection is on.
// Returns true if Autodetect is nil (default behavior).
func (p *Profile) IsAutodetectEnabled() bool {
	if p.Autodetect == nil {
		return true
	}

	return *p.Autodetect
}

// GetOutputFormat returns the output format, defaulting to text.
func (p *Profile) GetOutputFormat() OutputFormat {
	if p.OutputFormat == OutputFormatUnknown {
		return OutputFormatText
	}

	return p.OutputFormat
}

// GetStrictness returns the strictness level, defaulting to medium.
func (p *Profile) GetStrictness() Strictness {
	if p.Strictness == StrictnessUnknown {
		return StrictnessMedium
	}

	return p.Strictness
}

// Tool returns the settings section for the named tool, or nil if the
// profile has no section for it. Tool names are the wire names used in
// profile documents (pep8, pep257, pylint, pyroma, vulture, mccabe,
// profile-validator).
func (p *Profile) Tool(name string) *ToolSettings {
	switch name {
	case ToolProfileValidator:
		return p.ProfileValidator
	case ToolPep8:
		if p.Pep8 == nil {
			return nil
		}

		return &p.Pep8.ToolSettings
	case ToolPep257:
		if p.Pep257 == nil {
			return nil
		}

		return &p.Pep257.ToolSettings
	case ToolPylint:
		if p.Pylint == nil {
			return nil
		}

		return &p.Pylint.ToolSettings
	case ToolPyroma:
		return p.Pyroma
	case ToolVulture:
		return p.Vulture
	case ToolMccabe:
		if p.Mccabe == nil {
			return nil
		}

		return &p.Mccabe.ToolSettings
	default:
		return nil
	}
}

// ToolNames returns the wire names of all tools prospekt knows about, in
// the order they run.
func ToolNames() []string {
	return []string{
		ToolProfileValidator,
		ToolPep8,
		ToolPep257,
		ToolPylint,
		ToolPyroma,
		ToolVulture,
		ToolMccabe,
	}
}

// Wire names for tool sections.
const (
	ToolProfileValidator = "profile-validator"
	ToolPep8             = "pep8"
	ToolPep257           = "pep257"
	ToolPylint           = "pylint"
	ToolPyroma           = "pyroma"
	ToolVulture          = "vulture"
	ToolMccabe           = "mccabe"
)
