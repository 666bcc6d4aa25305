package profile

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/cockroachdb/errors"

	"github.com/prospekt-dev/prospekt/pkg/profile"
)

// stubResolver recognizes a fixed set of profile names.
type stubResolver struct {
	known map[string]bool
}

func (s *stubResolver) Has(name string) bool {
	return s.known[name]
}

func findingCodes(findings []Finding) []string {
	codes := make([]string, 0, len(findings))
	for _, f := range findings {
		codes = append(codes, f.Code)
	}

	return codes
}

var _ = Describe("Validator", func() {
	var validator *Validator

	BeforeEach(func() {
		validator = NewValidator(&stubResolver{known: map[string]bool{
			"full_pep8": true,
			"team":      true,
		}})
	})

	Describe("Findings", func() {
		It("accepts a well-formed profile", func() {
			maxArgs := 6

			cfg := &profile.Profile{
				Strictness:   profile.StrictnessHigh,
				OutputFormat: profile.OutputFormatGrouped,
				Inherits:     []string{"full_pep8", "team"},
				Requires:     ">= 1.0.0",
				Pylint: &profile.PylintSettings{
					ToolSettings: profile.ToolSettings{
						Disable: []string{"import-error"},
					},
					Options: &profile.PylintOptions{
						MaxArgs:     &maxArgs,
						VariableRgx: "[a-z_][a-z0-9_]{2,30}$",
					},
				},
			}

			Expect(validator.Findings(cfg)).To(BeEmpty())
		})

		It("reports unknown strictness and output format", func() {
			cfg := &profile.Profile{
				Strictness:   "extreme",
				OutputFormat: "xml",
			}

			codes := findingCodes(validator.Findings(cfg))
			Expect(codes).To(ConsistOf(CodeUnknownStrictness, CodeUnknownOutputFormat))
		})

		It("leaves unset root values alone", func() {
			Expect(validator.Findings(&profile.Profile{})).To(BeEmpty())
		})

		It("reports unrecognized top-level keys", func() {
			cfg := &profile.Profile{
				Extra: map[string]any{
					"pylnt": map[string]any{"disable": []any{"import-error"}},
				},
			}

			findings := validator.Findings(cfg)
			Expect(findings).To(HaveLen(1))
			Expect(findings[0].Code).To(Equal(CodeUnknownTool))
			Expect(findings[0].Path).To(Equal("pylnt"))
		})

		It("reports empty and unresolvable inherits entries", func() {
			cfg := &profile.Profile{
				Inherits: []string{"", "nonexistent", "team"},
			}

			findings := validator.Findings(cfg)
			Expect(findingCodes(findings)).To(ConsistOf(
				CodeEmptyInherit, CodeUnresolvedInherit,
			))
			Expect(findings[0].Path).To(Equal("inherits[0]"))
			Expect(findings[1].Path).To(Equal("inherits[1]"))
		})

		It("reports duplicated disable codes with the tool path", func() {
			cfg := &profile.Profile{
				Pep8: &profile.Pep8Settings{
					ToolSettings: profile.ToolSettings{
						Disable: []string{"E501", "E501"},
					},
				},
			}

			findings := validator.Findings(cfg)
			Expect(findings).To(HaveLen(1))
			Expect(findings[0].Code).To(Equal(CodeDuplicateDisable))
			Expect(findings[0].Path).To(Equal("pep8.disable"))
		})

		It("reports non-positive numeric options", func() {
			zero := 0
			negative := -1

			cfg := &profile.Profile{
				Pep8: &profile.Pep8Settings{
					Options: &profile.Pep8Options{MaxLineLength: &zero},
				},
				Mccabe: &profile.MccabeSettings{
					Options: &profile.MccabeOptions{MaxComplexity: &negative},
				},
			}

			findings := validator.Findings(cfg)
			Expect(findingCodes(findings)).To(ConsistOf(
				CodeNonPositiveOption, CodeNonPositiveOption,
			))
		})

		It("reports regular expressions that do not compile", func() {
			cfg := &profile.Profile{
				Pylint: &profile.PylintSettings{
					Options: &profile.PylintOptions{VariableRgx: "[unclosed"},
				},
			}

			findings := validator.Findings(cfg)
			Expect(findings).To(HaveLen(1))
			Expect(findings[0].Code).To(Equal(CodeInvalidRegex))
			Expect(findings[0].Path).To(Equal("pylint.options.variable-rgx"))
		})

		It("reports malformed requires constraints", func() {
			cfg := &profile.Profile{Requires: "not-a-constraint"}

			findings := validator.Findings(cfg)
			Expect(findings).To(HaveLen(1))
			Expect(findings[0].Code).To(Equal(CodeInvalidRequires))
		})
	})

	Describe("Validate", func() {
		It("returns nil for a clean profile", func() {
			Expect(validator.Validate(&profile.Profile{})).To(Succeed())
		})

		It("rejects a nil profile", func() {
			err := validator.Validate(nil)
			Expect(err).To(HaveOccurred())
			Expect(errors.Is(err, ErrInvalidProfile)).To(BeTrue())
		})

		It("wraps every unsuppressed finding", func() {
			cfg := &profile.Profile{
				Strictness: "extreme",
				Pep8: &profile.Pep8Settings{
					ToolSettings: profile.ToolSettings{
						Disable: []string{"E501", "E501"},
					},
				},
			}

			err := validator.Validate(cfg)
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("2 finding(s)"))
		})

		It("honors the profile-validator disable list", func() {
			cfg := &profile.Profile{
				Pep8: &profile.Pep8Settings{
					ToolSettings: profile.ToolSettings{
						Disable: []string{"E501", "E501"},
					},
				},
				ProfileValidator: &profile.ToolSettings{
					Disable: []string{CodeDuplicateDisable},
				},
			}

			Expect(validator.Validate(cfg)).To(Succeed())
		})

		It("does not let enable entries hide other findings", func() {
			cfg := &profile.Profile{
				Strictness: "extreme",
				ProfileValidator: &profile.ToolSettings{
					Disable: []string{CodeDuplicateDisable},
				},
			}

			Expect(validator.Validate(cfg)).NotTo(Succeed())
		})
	})
})
