// Package schema generates JSON Schema from the prospekt profile types.
package schema

import (
	"encoding/json"

	"github.com/cockroachdb/errors"
	"github.com/invopop/jsonschema"

	"github.com/prospekt-dev/prospekt/pkg/profile"
)

const (
	schemaURI = "https://json-schema.org/draft/2020-12/schema"
	title     = "prospekt profile"

	// schemaURL is where the published schema lives, referenced by the
	// directive written at the top of generated profile files.
	schemaURL = "https://raw.githubusercontent.com/prospekt-dev/prospekt/main/schema/prospekt.schema.json"
)

// Generate produces a JSON Schema from the profile.Profile struct.
func Generate() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		ExpandedStruct: true,
	}

	s := r.Reflect(&profile.Profile{})
	s.Version = schemaURI
	s.Title = title

	return s
}

// GenerateJSON produces a JSON Schema as bytes.
// When indent is true, the output is pretty-printed.
func GenerateJSON(indent bool) ([]byte, error) {
	s := Generate()

	var (
		data []byte
		err  error
	)

	if indent {
		data, err = json.MarshalIndent(s, "", "  ")
	} else {
		data, err = json.Marshal(s)
	}

	if err != nil {
		return nil, errors.Wrap(err, "marshaling schema to JSON")
	}

	// Append trailing newline for file output.
	return append(data, '\n'), nil
}

// Directive returns the yaml-language-server schema comment written at
// the top of generated profile files.
func Directive() string {
	return "# yaml-language-server: $schema=" + schemaURL
}

// Filename returns the name the generated schema file is written under.
func Filename() string {
	return "prospekt.schema.json"
}
