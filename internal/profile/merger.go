package profile

import (
	"github.com/knadh/koanf/maps"

	"github.com/prospekt-dev/prospekt/pkg/profile"
)

// Merger deep-merges profile maps. Merging follows these rules:
// - scalar and option values: the later layer wins
// - tool sections: merged key by key, not replaced wholesale
// - disable lists: union of both layers, order preserved, first
//   occurrence wins on duplicates
//
// Suppression being additive across layers is what makes a child profile
// unable to silently lose its parent's suppressions; re-enabling a rule is
// the job of the explicit enable list.
type Merger struct{}

// NewMerger creates a new Merger.
func NewMerger() *Merger {
	return &Merger{}
}

// Merge merges src into dst, mutating dst. Values in src take precedence
// except for disable lists, which are unioned.
func (m *Merger) Merge(src, dst map[string]any) {
	unions := make(map[string][]string, len(profile.ToolNames()))

	for _, tool := range profile.ToolNames() {
		dstList := disableList(dst, tool)
		srcList := disableList(src, tool)

		if len(dstList) > 0 && len(srcList) > 0 {
			unions[tool] = unionRuleCodes(dstList, srcList)
		}
	}

	maps.Merge(src, dst)

	for tool, union := range unions {
		section, ok := dst[tool].(map[string]any)
		if !ok {
			continue
		}

		section["disable"] = toAnySlice(union)
	}
}

// MergeAll merges the given layers into a fresh map, lowest precedence first.
func (m *Merger) MergeAll(layers ...map[string]any) map[string]any {
	result := map[string]any{}

	for _, layer := range layers {
		if layer == nil {
			continue
		}

		m.Merge(maps.Copy(layer), result)
	}

	return result
}

// disableList extracts the disable list for a tool section from a profile map.
func disableList(doc map[string]any, tool string) []string {
	section, ok := doc[tool].(map[string]any)
	if !ok {
		return nil
	}

	raw, ok := section["disable"]
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
		// Scalar shorthand: disable: D203
		return []string{list}

	default:
		return nil
	}
}

// unionRuleCodes merges two rule-code lists preserving order, first
// occurrence wins.
func unionRuleCodes(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))

	for _, code := range a {
		if !seen[code] {
			seen[code] = true

			out = append(out, code)
		}
	}

	for _, code := range b {
		if !seen[code] {
			seen[code] = true

			out = append(out, code)
		}
	}

	return out
}

// toAnySlice converts a string slice to the []any shape koanf maps carry.
func toAnySlice(in []string) []any {
	out := make([]any, len(in))
	for i, s := range in {
		out[i] = s
	}

	return out
}
