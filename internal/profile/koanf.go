package profile

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/cockroachdb/errors"
	tomlparser "github.com/knadh/koanf/parsers/toml/v2"
	yamlparser "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/prospekt-dev/prospekt/pkg/profile"
)

var (
	// ErrProfileNotFound is returned when no profile file is found.
	ErrProfileNotFound = errors.New("profile file not found")

	// ErrInvalidPermissions is returned when a profile file has insecure permissions.
	ErrInvalidPermissions = errors.New("profile file has insecure permissions")

	// ErrVersionConstraint is returned when the profile's requires constraint
	// rejects the running prospekt version.
	ErrVersionConstraint = errors.New("profile requires a different prospekt version")
)

const (
	// GlobalProfileFile is the name of the global profile file.
	GlobalProfileFile = "profile.yaml"

	// GlobalProfileDir is the directory name for global profiles.
	GlobalProfileDir = ".prospekt"

	// ProjectProfileDir is the directory name for project profiles.
	ProjectProfileDir = ".prospekt"

	// ProjectProfileFile is the primary project profile file name.
	ProjectProfileFile = "profile.yaml"

	// ProjectProfileFileAlt is the alternative project profile file name.
	ProjectProfileFileAlt = ".prospekt.yaml"

	// ProjectProfileFileTOML is the TOML project profile file name.
	ProjectProfileFileTOML = ".prospekt.toml"

	// defaultStrictness seeds the strictness level before any layer applies.
	defaultStrictness = profile.StrictnessMedium

	// envPrefix is the prefix for environment variable overrides.
	envPrefix = "PROSPEKT_"
)

// Loader handles profile loading from multiple sources using koanf.
// Precedence order (highest to lowest):
// 1. CLI flags
// 2. Environment variables (PROSPEKT_*)
// 3. Project profile (.prospekt/profile.yaml, .prospekt.yaml or .prospekt.toml)
// 4. Global profile (~/.prospekt/profile.yaml)
// 5. Inherited profiles (each file's inherits chain, in order)
// 6. Built-in strictness profile
// 7. Defaults
type Loader struct {
	k        *koanf.Koanf
	homeDir  string
	workDir  string
	version  string
	merger   *Merger
	registry *Registry

	// projectPathOverride and globalPathOverride replace the default
	// profile locations when set via CLI flags.
	projectPathOverride string
	globalPathOverride  string
}

// NewLoader creates a new Loader with default directories.
func NewLoader() (*Loader, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get home directory")
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get working directory")
	}

	return NewLoaderWithDirs(homeDir, workDir), nil
}

// NewLoaderWithDirs creates a new Loader with custom directories (for testing).
func NewLoaderWithDirs(homeDir, workDir string) *Loader {
	merger := NewMerger()
	registry := NewRegistry(
		filepath.Join(workDir, ProjectProfileDir),
		workDir,
		filepath.Join(homeDir, GlobalProfileDir),
	)

	return &Loader{
		k:        koanf.New("."),
		homeDir:  homeDir,
		workDir:  workDir,
		merger:   merger,
		registry: registry,
	}
}

// SetVersion sets the running prospekt version checked against the
// profile's requires constraint. Empty or "dev" disables the check.
func (l *Loader) SetVersion(version string) {
	l.version = version
}

// SetProjectPath overrides the project profile location.
func (l *Loader) SetProjectPath(path string) {
	l.projectPathOverride = path
}

// SetGlobalPath overrides the global profile location.
func (l *Loader) SetGlobalPath(path string) {
	l.globalPathOverride = path
}

// Registry returns the named-profile registry the loader resolves
// inherits entries against.
func (l *Loader) Registry() *Registry {
	return l.registry
}

// Load loads the effective profile from all sources with precedence and
// validates it.
func (l *Loader) Load(flags map[string]any) (*profile.Profile, error) {
	cfg, err := l.LoadWithoutValidation(flags)
	if err != nil {
		return nil, err
	}

	validator := NewValidator(l.registry)
	if err := validator.Validate(cfg); err != nil {
		return nil, errors.Wrap(err, "invalid profile")
	}

	return cfg, nil
}

// LoadWithoutValidation loads the effective profile without running
// semantic validation. This is what `prospekt validate` uses so it can
// report findings instead of failing outright.
func (l *Loader) LoadWithoutValidation(flags map[string]any) (*profile.Profile, error) {
	// Reset koanf instance for fresh load
	l.k = koanf.New(".")

	globalDoc, err := l.loadFileMap(l.GlobalProfilePath())
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, errors.Wrap(err, "failed to load global profile")
	}

	var projectDoc map[string]any

	if projectPath := l.findProjectProfile(); projectPath != "" {
		projectDoc, err = l.loadFileMap(projectPath)
		if err != nil {
			return nil, errors.Wrap(err, "failed to load project profile")
		}
	}

	envDoc, err := l.loadEnvMap()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load env vars")
	}

	flagDoc := l.flagsToMap(flags)

	layers, err := l.composeLayers(globalDoc, projectDoc, envDoc, flagDoc)
	if err != nil {
		return nil, err
	}

	effective := l.merger.MergeAll(layers...)

	if err := l.k.Load(confmap.Provider(effective, "."), nil); err != nil {
		return nil, errors.Wrap(err, "failed to load effective profile")
	}

	var cfg profile.Profile
	if err := l.k.UnmarshalWithConf("", &cfg, unmarshalConf(&cfg)); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal profile")
	}

	if err := l.checkRequires(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// composeLayers assembles the ordered merge layers. The built-in
// strictness profile sits below the file layers so explicit settings
// always beat strictness defaults; each file's inherits chain sits
// directly below that file.
func (l *Loader) composeLayers(globalDoc, projectDoc, envDoc, flagDoc map[string]any) ([]map[string]any, error) {
	layers := []map[string]any{defaultsToMap()}

	strictness := l.effectiveStrictness(globalDoc, projectDoc, envDoc, flagDoc)
	if builtin, ok := builtinProfiles()[strictness.BuiltinProfile()]; ok {
		layers = append(layers, builtin)
	}

	for _, doc := range []map[string]any{globalDoc, projectDoc} {
		if doc == nil {
			continue
		}

		chain, err := l.registry.Chain(doc)
		if err != nil {
			return nil, errors.Wrap(err, "failed to resolve inherited profiles")
		}

		layers = append(layers, chain...)
		layers = append(layers, doc)
	}

	layers = append(layers, envDoc, flagDoc)

	return layers, nil
}

// effectiveStrictness determines the strictness level before the final
// merge so the matching built-in profile can be layered underneath.
func (*Loader) effectiveStrictness(docs ...map[string]any) profile.Strictness {
	strictness := defaultStrictness

	for _, doc := range docs {
		if doc == nil {
			continue
		}

		raw, ok := doc["strictness"].(string)
		if !ok {
			continue
		}

		if parsed, err := profile.ParseStrictness(strings.ToLower(raw)); err == nil {
			strictness = parsed
		}
	}

	return strictness
}

// checkRequires enforces the profile's requires constraint against the
// running version.
func (l *Loader) checkRequires(cfg *profile.Profile) error {
	if cfg.Requires == "" || l.version == "" || l.version == "dev" {
		return nil
	}

	constraint, err := semver.NewConstraint(cfg.Requires)
	if err != nil {
		return errors.Wrapf(err, "invalid requires constraint %q", cfg.Requires)
	}

	version, err := semver.NewVersion(l.version)
	if err != nil {
		return errors.Wrapf(err, "invalid prospekt version %q", l.version)
	}

	if !constraint.Check(version) {
		return errors.Wrapf(
			ErrVersionConstraint,
			"running %s, profile requires %q",
			l.version,
			cfg.Requires,
		)
	}

	return nil
}

// loadFileMap loads a profile file into a raw settings map with security
// checks. The parser is chosen by file extension.
func (*Loader) loadFileMap(path string) (map[string]any, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	// Reject world-writable profiles
	if info.Mode().Perm()&0o002 != 0 {
		return nil, errors.Wrapf(
			ErrInvalidPermissions,
			"%s is world-writable (mode: %s)",
			path,
			info.Mode().Perm(),
		)
	}

	k := koanf.New(".")

	var parser koanf.Parser
	if strings.HasSuffix(path, ".toml") {
		parser = tomlparser.Parser()
	} else {
		parser = yamlparser.Parser()
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", path)
	}

	return k.Raw(), nil
}

// loadEnvMap loads PROSPEKT_* environment variables into a settings map.
func (l *Loader) loadEnvMap() (map[string]any, error) {
	k := koanf.New(".")

	envOpt := env.Opt{
		Prefix:        envPrefix,
		TransformFunc: l.envTransform,
	}

	if err := k.Load(env.Provider(".", envOpt), nil); err != nil {
		return nil, err
	}

	return k.Raw(), nil
}

// envTransform transforms environment variable names to profile paths.
// Double underscores separate path segments, single underscores become
// dashes: PROSPEKT_PYLINT__OPTIONS__MAX_ARGS → pylint.options.max-args
func (*Loader) envTransform(key, value string) (string, any) {
	key = strings.TrimPrefix(key, envPrefix)
	key = strings.ToLower(key)
	key = strings.ReplaceAll(key, "__", ".")
	key = strings.ReplaceAll(key, "_", "-")

	return key, value
}

// flagsToMap converts CLI flags to a settings map.
func (*Loader) flagsToMap(flags map[string]any) map[string]any {
	result := make(map[string]any)

	for key, value := range flags {
		switch key {
		case "strictness":
			if strVal, ok := value.(string); ok && strVal != "" {
				result["strictness"] = strVal
			}

		case "output-format":
			if strVal, ok := value.(string); ok && strVal != "" {
				result["output-format"] = strVal
			}

		case "doc-warnings":
			if boolVal, ok := value.(bool); ok {
				result["doc-warnings"] = boolVal
			}

		case "without-tool":
			// Handle --without-tool=vulture,mccabe
			if toolList, ok := value.([]string); ok {
				applyWithoutToolFlags(result, toolList)
			}

		case "with-tool":
			if toolList, ok := value.([]string); ok {
				applyWithToolFlags(result, toolList)
			}
		}
	}

	return result
}

// applyWithoutToolFlags disables the named tools in the settings map.
func applyWithoutToolFlags(cfg map[string]any, toolNames []string) {
	setToolRun(cfg, toolNames, false)
}

// applyWithToolFlags enables the named tools in the settings map.
func applyWithToolFlags(cfg map[string]any, toolNames []string) {
	setToolRun(cfg, toolNames, true)
}

// setToolRun sets <tool>.run for each known tool name in the list.
func setToolRun(cfg map[string]any, toolNames []string, run bool) {
	known := make(map[string]bool, len(profile.ToolNames()))
	for _, name := range profile.ToolNames() {
		known[name] = true
	}

	for _, name := range toolNames {
		name = strings.TrimSpace(name)
		if !known[name] {
			continue
		}

		section := ensureMapKey(cfg, name)
		section["run"] = run
	}
}

// ensureMapKey ensures a key exists as a map and returns it.
func ensureMapKey(cfg map[string]any, key string) map[string]any {
	if _, ok := cfg[key]; !ok {
		cfg[key] = make(map[string]any)
	}

	result, _ := cfg[key].(map[string]any)

	return result
}

// GlobalProfilePath returns the path to the global profile file.
func (l *Loader) GlobalProfilePath() string {
	if l.globalPathOverride != "" {
		return l.globalPathOverride
	}

	return filepath.Join(l.homeDir, GlobalProfileDir, GlobalProfileFile)
}

// ProjectProfilePaths returns the paths checked for a project profile.
func (l *Loader) ProjectProfilePaths() []string {
	return []string{
		filepath.Join(l.workDir, ProjectProfileDir, ProjectProfileFile),
		filepath.Join(l.workDir, ProjectProfileFileAlt),
		filepath.Join(l.workDir, ProjectProfileFileTOML),
	}
}

// findProjectProfile checks for project profile files and returns the first found.
func (l *Loader) findProjectProfile() string {
	if l.projectPathOverride != "" {
		return l.projectPathOverride
	}

	for _, path := range l.ProjectProfilePaths() {
		if fileExists(path) {
			return path
		}
	}

	return ""
}

// HasGlobalProfile checks if a global profile file exists.
func (l *Loader) HasGlobalProfile() bool {
	return fileExists(l.GlobalProfilePath())
}

// HasProjectProfile checks if a project profile file exists.
func (l *Loader) HasProjectProfile() bool {
	return l.findProjectProfile() != ""
}

// FindProjectProfilePath returns the path to the project profile file if
// one exists. Returns empty string otherwise.
func (l *Loader) FindProjectProfilePath() string {
	return l.findProjectProfile()
}

// fileExists checks if a file exists and is not a directory.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}

	return !info.IsDir()
}

// mustGetwd returns the current working directory or panics.
func mustGetwd() string {
	wd, err := os.Getwd()
	if err != nil {
		panic("failed to get working directory: " + err.Error())
	}

	return wd
}
