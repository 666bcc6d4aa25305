package profile

import (
	"github.com/cockroachdb/errors"
)

var (
	// ErrInvalidStrictness is returned when an invalid strictness value is provided.
	ErrInvalidStrictness = errors.New("invalid strictness")

	// ErrInvalidOutputFormat is returned when an invalid output format is provided.
	ErrInvalidOutputFormat = errors.New("invalid output format")
)

// Strictness represents the overall strictness level of a profile.
type Strictness string

const (
	// StrictnessUnknown represents an unset strictness level.
	StrictnessUnknown Strictness = ""

	// StrictnessVeryLow enables only the most serious checks.
	StrictnessVeryLow Strictness = "verylow"

	// StrictnessLow enables a reduced set of checks.
	StrictnessLow Strictness = "low"

	// StrictnessMedium is the default balance of checks.
	StrictnessMedium Strictness = "medium"

	// StrictnessHigh enables most checks.
	StrictnessHigh Strictness = "high"

	// StrictnessVeryHigh enables every check the tools offer.
	StrictnessVeryHigh Strictness = "veryhigh"
)

// strictnessLevels holds all valid strictness values in ascending order.
var strictnessLevels = []Strictness{
	StrictnessVeryLow,
	StrictnessLow,
	StrictnessMedium,
	StrictnessHigh,
	StrictnessVeryHigh,
}

// String returns the wire representation of the strictness level.
func (s Strictness) String() string {
	return string(s)
}

// IsValid reports whether s is a known strictness level.
func (s Strictness) IsValid() bool {
	for _, level := range strictnessLevels {
		if s == level {
			return true
		}
	}

	return false
}

// BuiltinProfile returns the name of the built-in profile that seeds
// defaults for this strictness level.
func (s Strictness) BuiltinProfile() string {
	return "strictness_" + s.String()
}

// ParseStrictness parses a string into a Strictness value.
func ParseStrictness(s string) (Strictness, error) {
	strictness := Strictness(s)
	if !strictness.IsValid() {
		return StrictnessUnknown,
			errors.Wrapf(
				ErrInvalidStrictness,
				"%q, must be one of verylow, low, medium, high, veryhigh",
				s,
			)
	}

	return strictness, nil
}

// OutputFormat represents the report layout for findings.
type OutputFormat string

const (
	// OutputFormatUnknown represents an unset output format.
	OutputFormatUnknown OutputFormat = ""

	// OutputFormatText is a flat one-finding-per-line layout.
	OutputFormatText OutputFormat = "text"

	// OutputFormatGrouped groups findings by file.
	OutputFormatGrouped OutputFormat = "grouped"

	// OutputFormatJSON is machine-readable JSON.
	OutputFormatJSON OutputFormat = "json"

	// OutputFormatYAML is machine-readable YAML.
	OutputFormatYAML OutputFormat = "yaml"

	// OutputFormatEmacs is the emacs compilation-mode layout.
	OutputFormatEmacs OutputFormat = "emacs"

	// OutputFormatPylint mimics pylint's parseable layout.
	OutputFormatPylint OutputFormat = "pylint"
)

// outputFormats holds all valid output formats.
var outputFormats = []OutputFormat{
	OutputFormatText,
	OutputFormatGrouped,
	OutputFormatJSON,
	OutputFormatYAML,
	OutputFormatEmacs,
	OutputFormatPylint,
}

// String returns the wire representation of the output format.
func (f OutputFormat) String() string {
	return string(f)
}

// IsValid reports whether f is a known output format.
func (f OutputFormat) IsValid() bool {
	for _, format := range outputFormats {
		if f == format {
			return true
		}
	}

	return false
}

// ParseOutputFormat parses a string into an OutputFormat value.
func ParseOutputFormat(s string) (OutputFormat, error) {
	format := OutputFormat(s)
	if !format.IsValid() {
		return OutputFormatUnknown,
			errors.Wrapf(
				ErrInvalidOutputFormat,
				"%q, must be one of text, grouped, json, yaml, emacs, pylint",
				s,
			)
	}

	return format, nil
}
