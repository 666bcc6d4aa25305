package profile

import (
	"github.com/cockroachdb/errors"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/v2"

	"github.com/prospekt-dev/prospekt/pkg/profile"
)

// LoadFile loads a single profile file without layering defaults, the
// inheritance chain, environment variables or flags. This is what `diff`
// and round-trip tooling use to see a file exactly as written.
func LoadFile(path string) (*profile.Profile, error) {
	doc, err := (&Loader{}).loadFileMap(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load profile file %s", path)
	}

	return unmarshalMap(doc)
}

// unmarshalMap decodes a raw settings map into a Profile.
func unmarshalMap(doc map[string]any) (*profile.Profile, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(doc, "."), nil); err != nil {
		return nil, errors.Wrap(err, "failed to load settings map")
	}

	var cfg profile.Profile
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf(&cfg)); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal profile")
	}

	return &cfg, nil
}
