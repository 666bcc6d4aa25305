package profile

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	tomlparser "github.com/knadh/koanf/parsers/toml/v2"
	yamlparser "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

var (
	// ErrUnknownProfile is returned when an inherits entry names a profile
	// that is neither built-in nor present as a profile file.
	ErrUnknownProfile = errors.New("unknown profile")

	// ErrInheritCycle is returned when the inheritance chain loops back on
	// itself.
	ErrInheritCycle = errors.New("inheritance cycle")
)

// Registry resolves named profiles referenced from inherits lists. A name
// resolves to a built-in profile first, then to a <name>.yaml, <name>.yml
// or <name>.toml file in one of the search directories.
type Registry struct {
	builtins   map[string]map[string]any
	searchDirs []string
	merger     *Merger
}

// NewRegistry creates a Registry searching the given directories for named
// profile files.
func NewRegistry(searchDirs ...string) *Registry {
	return &Registry{
		builtins:   builtinProfiles(),
		searchDirs: searchDirs,
		merger:     NewMerger(),
	}
}

// Has reports whether name resolves to a known profile.
func (r *Registry) Has(name string) bool {
	if _, ok := r.builtins[name]; ok {
		return true
	}

	return r.findProfileFile(name) != ""
}

// BuiltinNames returns the names of all built-in profiles.
func (r *Registry) BuiltinNames() []string {
	names := make([]string, 0, len(r.builtins))
	for name := range r.builtins {
		names = append(names, name)
	}

	return names
}

// Resolve returns the flattened settings map for the named profile, with
// its own inheritance chain already applied (parents lowest precedence
// first, the profile itself last).
func (r *Registry) Resolve(name string) (map[string]any, error) {
	return r.resolve(name, map[string]bool{})
}

// Chain resolves the inherits list of a profile document into ordered,
// flattened parent maps, lowest precedence first. Duplicate ancestors in a
// diamond are harmless: scalar merges are idempotent and disable unions
// deduplicate.
func (r *Registry) Chain(doc map[string]any) ([]map[string]any, error) {
	parents := inheritsList(doc)
	chain := make([]map[string]any, 0, len(parents))

	for _, parent := range parents {
		resolved, err := r.Resolve(parent)
		if err != nil {
			return nil, err
		}

		chain = append(chain, resolved)
	}

	return chain, nil
}

// resolve flattens one named profile, tracking visited names for cycle
// detection.
func (r *Registry) resolve(name string, visiting map[string]bool) (map[string]any, error) {
	if visiting[name] {
		return nil, errors.Wrapf(ErrInheritCycle, "profile %q inherits itself", name)
	}

	visiting[name] = true
	defer delete(visiting, name)

	doc, err := r.load(name)
	if err != nil {
		return nil, err
	}

	layers := make([]map[string]any, 0, len(inheritsList(doc))+1)

	for _, parent := range inheritsList(doc) {
		resolved, resolveErr := r.resolve(parent, visiting)
		if resolveErr != nil {
			return nil, errors.Wrapf(resolveErr, "resolving parent of %q", name)
		}

		layers = append(layers, resolved)
	}

	layers = append(layers, doc)
	flattened := r.merger.MergeAll(layers...)

	// The flattened map stands alone; its inherits are already applied.
	delete(flattened, "inherits")

	return flattened, nil
}

// load fetches the raw settings map for a named profile.
func (r *Registry) load(name string) (map[string]any, error) {
	if builtin, ok := r.builtins[name]; ok {
		return builtin, nil
	}

	path := r.findProfileFile(name)
	if path == "" {
		return nil, errors.Wrapf(ErrUnknownProfile, "%q", name)
	}

	k := koanf.New(".")

	var parser koanf.Parser
	if strings.HasSuffix(path, ".toml") {
		parser = tomlparser.Parser()
	} else {
		parser = yamlparser.Parser()
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, errors.Wrapf(err, "failed to load profile file %s", path)
	}

	return k.Raw(), nil
}

// findProfileFile locates a named profile file in the search directories.
func (r *Registry) findProfileFile(name string) string {
	for _, dir := range r.searchDirs {
		for _, ext := range []string{".yaml", ".yml", ".toml"} {
			path := filepath.Join(dir, name+ext)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path
			}
		}
	}

	return ""
}

// inheritsList extracts the inherits entries from a profile map.
func inheritsList(doc map[string]any) []string {
	raw, ok := doc["inherits"]
	if !ok {
		return nil
	}

	switch list := raw.(type) {
	case []any:
		out := make([]string, 0, len(list))

		for _, item := range list {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}

		return out

	case []string:
		return list

	case string:
		return []string{list}

	default:
		return nil
	}
}
