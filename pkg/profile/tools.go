package profile

// ToolSettings is the base configuration shared by all tool sections.
type ToolSettings struct {
	// Run controls whether the tool executes at all.
	// When false, the tool is completely skipped.
	// Default depends on the tool: pep8, pep257, pylint and mccabe run by
	// default; pyroma and vulture are opt-in.
	Run *bool `json:"run,omitempty" koanf:"run" yaml:"run,omitempty" toml:"run,omitempty"`

	// Full enables the tool's complete ruleset, overriding the pruning the
	// strictness profile would otherwise apply.
	// Default: false
	Full *bool `json:"full,omitempty" koanf:"full" yaml:"full,omitempty" toml:"full,omitempty"`

	// Disable lists rule codes to suppress for this tool.
	Disable []string `json:"disable,omitempty" koanf:"disable" yaml:"disable,omitempty" toml:"disable,omitempty"`

	// Enable lists rule codes to re-enable when an inherited profile
	// disabled them.
	Enable []string `json:"enable,omitempty" koanf:"enable" yaml:"enable,omitempty" toml:"enable,omitempty"`
}

// IsRunEnabled reports whether the tool should execute. The defaultRun
// argument supplies the tool's own default when Run is not set.
func (t *ToolSettings) IsRunEnabled(defaultRun bool) bool {
	if t == nil || t.Run == nil {
		return defaultRun
	}

	return *t.Run
}

// IsFull reports whether the complete ruleset is requested.
func (t *ToolSettings) IsFull() bool {
	if t == nil || t.Full == nil {
		return false
	}

	return *t.Full
}

// IsDisabled reports whether the given rule code is suppressed, taking
// Enable overrides into account.
func (t *ToolSettings) IsDisabled(code string) bool {
	if t == nil {
		return false
	}

	for _, enabled := range t.Enable {
		if enabled == code {
			return false
		}
	}

	for _, disabled := range t.Disable {
		if disabled == code {
			return true
		}
	}

	return false
}

// EffectiveDisable returns the disable list with Enable overrides removed.
func (t *ToolSettings) EffectiveDisable() []string {
	if t == nil || len(t.Disable) == 0 {
		return nil
	}

	enabled := make(map[string]bool, len(t.Enable))
	for _, code := range t.Enable {
		enabled[code] = true
	}

	out := make([]string, 0, len(t.Disable))

	for _, code := range t.Disable {
		if !enabled[code] {
			out = append(out, code)
		}
	}

	return out
}

// Pep8Settings configures the pycodestyle checks.
type Pep8Settings struct {
	ToolSettings `json:",inline" koanf:",squash" yaml:",inline" toml:",inline"`

	// Options holds pycodestyle tuning knobs.
	Options *Pep8Options `json:"options,omitempty" koanf:"options" yaml:"options,omitempty" toml:"options,omitempty"`
}

// Pep8Options holds pycodestyle tuning knobs.
type Pep8Options struct {
	// MaxLineLength is the line-length limit.
	// Default: 79
	MaxLineLength *int `json:"max-line-length,omitempty" koanf:"max-line-length" yaml:"max-line-length,omitempty" toml:"max-line-length,omitempty"`
}

// GetMaxLineLength returns the line-length limit, defaulting to 79.
func (o *Pep8Options) GetMaxLineLength() int {
	if o == nil || o.MaxLineLength == nil {
		return 79
	}

	return *o.MaxLineLength
}

// Pep257Settings configures the pydocstyle checks.
type Pep257Settings struct {
	ToolSettings `json:",inline" koanf:",squash" yaml:",inline" toml:",inline"`

	// Explain shows an explanation of each error when set.
	Explain *bool `json:"explain,omitempty" koanf:"explain" yaml:"explain,omitempty" toml:"explain,omitempty"`

	// Source shows the source snippet for each error when set.
	Source *bool `json:"source,omitempty" koanf:"source" yaml:"source,omitempty" toml:"source,omitempty"`
}

// IsExplainEnabled reports whether error explanations are requested.
func (s *Pep257Settings) IsExplainEnabled() bool {
	if s == nil || s.Explain == nil {
		return false
	}

	return *s.Explain
}

// IsSourceEnabled reports whether source snippets are requested.
func (s *Pep257Settings) IsSourceEnabled() bool {
	if s == nil || s.Source == nil {
		return false
	}

	return *s.Source
}

// PylintSettings configures the pylint checks.
type PylintSettings struct {
	ToolSettings `json:",inline" koanf:",squash" yaml:",inline" toml:",inline"`

	// Options holds pylint tuning knobs.
	Options *PylintOptions `json:"options,omitempty" koanf:"options" yaml:"options,omitempty" toml:"options,omitempty"`
}

// PylintOptions holds pylint tuning knobs. Field names mirror pylint's
// own option names.
type PylintOptions struct {
	// MaxLineLength is the line-length limit.
	MaxLineLength *int `json:"max-line-length,omitempty" koanf:"max-line-length" yaml:"max-line-length,omitempty" toml:"max-line-length,omitempty"`

	// MaxArgs is the maximum number of arguments a callable may take.
	MaxArgs *int `json:"max-args,omitempty" koanf:"max-args" yaml:"max-args,omitempty" toml:"max-args,omitempty"`

	// MaxPositionalArguments is the maximum number of positional arguments.
	MaxPositionalArguments *int `json:"max-positional-arguments,omitempty" koanf:"max-positional-arguments" yaml:"max-positional-arguments,omitempty" toml:"max-positional-arguments,omitempty"`

	// MaxAttributes is the maximum number of instance attributes.
	MaxAttributes *int `json:"max-attributes,omitempty" koanf:"max-attributes" yaml:"max-attributes,omitempty" toml:"max-attributes,omitempty"`

	// MaxLocals is the maximum number of local variables.
	MaxLocals *int `json:"max-locals,omitempty" koanf:"max-locals" yaml:"max-locals,omitempty" toml:"max-locals,omitempty"`

	// IncludeNamingHint includes the naming hint in naming messages.
	IncludeNamingHint *bool `json:"include-naming-hint,omitempty" koanf:"include-naming-hint" yaml:"include-naming-hint,omitempty" toml:"include-naming-hint,omitempty"`

	// VariableRgx is the regular expression matching valid variable names.
	VariableRgx string `json:"variable-rgx,omitempty" koanf:"variable-rgx" yaml:"variable-rgx,omitempty" toml:"variable-rgx,omitempty"`

	// VariableNameHint is the hint shown for invalid variable names.
	VariableNameHint string `json:"variable-name-hint,omitempty" koanf:"variable-name-hint" yaml:"variable-name-hint,omitempty" toml:"variable-name-hint,omitempty"`

	// ExtensionPkgWhitelist lists C-extension packages pylint may load.
	ExtensionPkgWhitelist []string `json:"extension-pkg-whitelist,omitempty" koanf:"extension-pkg-whitelist" yaml:"extension-pkg-whitelist,omitempty" toml:"extension-pkg-whitelist,omitempty"`

	// LoadPlugins lists pylint plugin modules to load. Autodetection
	// appends framework plugins here.
	LoadPlugins []string `json:"load-plugins,omitempty" koanf:"load-plugins" yaml:"load-plugins,omitempty" toml:"load-plugins,omitempty"`
}

// MccabeSettings configures the cyclomatic-complexity check.
type MccabeSettings struct {
	ToolSettings `json:",inline" koanf:",squash" yaml:",inline" toml:",inline"`

	// Options holds mccabe tuning knobs.
	Options *MccabeOptions `json:"options,omitempty" koanf:"options" yaml:"options,omitempty" toml:"options,omitempty"`
}

// MccabeOptions holds mccabe tuning knobs.
type MccabeOptions struct {
	// MaxComplexity is the complexity threshold above which a finding is
	// reported.
	// Default: 10
	MaxComplexity *int `json:"max-complexity,omitempty" koanf:"max-complexity" yaml:"max-complexity,omitempty" toml:"max-complexity,omitempty"`
}

// GetMaxComplexity returns the complexity threshold, defaulting to 10.
func (o *MccabeOptions) GetMaxComplexity() int {
	if o == nil || o.MaxComplexity == nil {
		return 10
	}

	return *o.MaxComplexity
}
