// Package profile provides internal profile loading and processing.
package profile

// Default option constants for koanf map defaults.
const (
	defaultPep8MaxLineLength = 79
	defaultMccabeComplexity  = 10
)

// defaultsToMap returns the base profile map loaded below every other layer.
// Tool run defaults follow the aggregator convention: style, lint and
// complexity checks run out of the box, docstring checks follow the
// doc-warnings toggle, packaging and dead-code checks are opt-in.
func defaultsToMap() map[string]any {
	return map[string]any{
		"strictness":      string(defaultStrictness),
		"output-format":   "text",
		"autodetect":      true,
		"doc-warnings":    false,
		"member-warnings": false,
		"test-warnings":   false,
		"pep8": map[string]any{
			"run":  true,
			"full": false,
			"options": map[string]any{
				"max-line-length": defaultPep8MaxLineLength,
			},
		},
		// pep257 carries no run default: the doc-warnings root toggle is
		// its gate unless a profile sets pep257.run explicitly.
		"pep257": map[string]any{
			"explain": false,
			"source":  false,
		},
		"pylint": map[string]any{
			"run": true,
		},
		"mccabe": map[string]any{
			"run": true,
			"options": map[string]any{
				"max-complexity": defaultMccabeComplexity,
			},
		},
		"pyroma": map[string]any{
			"run": false,
		},
		"vulture": map[string]any{
			"run": false,
		},
	}
}

// builtinProfiles maps built-in profile names to their settings. These are
// the named profiles an `inherits` entry may reference without a matching
// profile file on disk.
func builtinProfiles() map[string]map[string]any {
	return map[string]map[string]any{
		"strictness_verylow":  strictnessVeryLowMap(),
		"strictness_low":      strictnessLowMap(),
		"strictness_medium":   strictnessMediumMap(),
		"strictness_high":     strictnessHighMap(),
		"strictness_veryhigh": strictnessVeryHighMap(),
		"full_pep8":           fullPep8Map(),
		"doc_warnings":        docWarningsMap(),
		"no_doc_warnings":     noDocWarningsMap(),
		"no_test_warnings":    noTestWarningsMap(),
		"member_warnings":     memberWarningsMap(),
		"no_member_warnings":  noMemberWarningsMap(),
	}
}

func strictnessVeryLowMap() map[string]any {
	return map[string]any{
		"pep257": map[string]any{
			"run": false,
		},
		"pep8": map[string]any{
			"disable": []any{"E501", "W291", "W293", "E303", "E306"},
		},
		"pylint": map[string]any{
			"disable": []any{
				"missing-docstring",
				"invalid-name",
				"line-too-long",
				"too-many-arguments",
				"too-many-branches",
				"too-many-instance-attributes",
				"too-many-locals",
				"too-many-statements",
				"too-few-public-methods",
				"broad-except",
				"unused-argument",
				"fixme",
				"protected-access",
				"duplicate-code",
			},
		},
		"mccabe": map[string]any{
			"run": false,
		},
	}
}

func strictnessLowMap() map[string]any {
	return map[string]any{
		"pep257": map[string]any{
			"run": false,
		},
		"pylint": map[string]any{
			"disable": []any{
				"missing-docstring",
				"invalid-name",
				"too-many-arguments",
				"too-many-branches",
				"too-many-locals",
				"too-few-public-methods",
				"broad-except",
				"unused-argument",
				"fixme",
				"duplicate-code",
			},
		},
	}
}

func strictnessMediumMap() map[string]any {
	return map[string]any{
		"pylint": map[string]any{
			"disable": []any{
				"missing-docstring",
				"too-many-arguments",
				"too-few-public-methods",
				"fixme",
			},
		},
	}
}

func strictnessHighMap() map[string]any {
	return map[string]any{
		"pylint": map[string]any{
			"disable": []any{
				"missing-docstring",
			},
		},
	}
}

func strictnessVeryHighMap() map[string]any {
	return map[string]any{
		"pep8": map[string]any{
			"full": true,
		},
		"pylint": map[string]any{
			"disable": []any{},
		},
	}
}

func fullPep8Map() map[string]any {
	return map[string]any{
		"pep8": map[string]any{
			"full": true,
		},
	}
}

func docWarningsMap() map[string]any {
	return map[string]any{
		"doc-warnings": true,
		"pep257": map[string]any{
			"run": true,
		},
	}
}

func noDocWarningsMap() map[string]any {
	return map[string]any{
		"doc-warnings": false,
		"pep257": map[string]any{
			"run": false,
		},
		"pylint": map[string]any{
			"disable": []any{
				"missing-docstring",
				"missing-module-docstring",
				"missing-class-docstring",
				"missing-function-docstring",
			},
		},
	}
}

func noTestWarningsMap() map[string]any {
	return map[string]any{
		"test-warnings": false,
	}
}

func memberWarningsMap() map[string]any {
	return map[string]any{
		"member-warnings": true,
	}
}

func noMemberWarningsMap() map[string]any {
	return map[string]any{
		"member-warnings": false,
		"pylint": map[string]any{
			"disable": []any{"no-member", "maybe-no-member"},
		},
	}
}
