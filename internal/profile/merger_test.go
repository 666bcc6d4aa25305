package profile

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Merger", func() {
	var merger *Merger

	BeforeEach(func() {
		merger = NewMerger()
	})

	Describe("Merge", func() {
		It("lets the later layer win on scalars", func() {
			dst := map[string]any{"strictness": "low"}
			merger.Merge(map[string]any{"strictness": "high"}, dst)

			Expect(dst["strictness"]).To(Equal("high"))
		})

		It("merges tool sections key by key", func() {
			dst := map[string]any{
				"pep8": map[string]any{
					"run": true,
					"options": map[string]any{
						"max-line-length": 79,
					},
				},
			}

			merger.Merge(map[string]any{
				"pep8": map[string]any{
					"options": map[string]any{
						"max-line-length": 120,
					},
				},
			}, dst)

			section, ok := dst["pep8"].(map[string]any)
			Expect(ok).To(BeTrue())
			Expect(section["run"]).To(Equal(true), "sibling keys survive")

			options, ok := section["options"].(map[string]any)
			Expect(ok).To(BeTrue())
			Expect(options["max-line-length"]).To(Equal(120))
		})

		It("unions disable lists instead of replacing them", func() {
			dst := map[string]any{
				"pylint": map[string]any{
					"disable": []any{"import-error", "fixme"},
				},
			}

			merger.Merge(map[string]any{
				"pylint": map[string]any{
					"disable": []any{"fixme", "unused-import"},
				},
			}, dst)

			section, _ := dst["pylint"].(map[string]any)
			Expect(section["disable"]).To(Equal([]any{
				"import-error", "fixme", "unused-import",
			}))
		})

		It("accepts the scalar disable shorthand", func() {
			dst := map[string]any{
				"pep257": map[string]any{
					"disable": "D203",
				},
			}

			merger.Merge(map[string]any{
				"pep257": map[string]any{
					"disable": []any{"D212"},
				},
			}, dst)

			section, _ := dst["pep257"].(map[string]any)
			Expect(section["disable"]).To(Equal([]any{"D203", "D212"}))
		})
	})

	Describe("MergeAll", func() {
		It("merges layers lowest precedence first", func() {
			result := merger.MergeAll(
				map[string]any{"strictness": "low", "output-format": "text"},
				nil,
				map[string]any{"strictness": "high"},
			)

			Expect(result["strictness"]).To(Equal("high"))
			Expect(result["output-format"]).To(Equal("text"))
		})

		It("does not mutate the input layers", func() {
			base := map[string]any{
				"pylint": map[string]any{
					"disable": []any{"fixme"},
				},
			}

			merger.MergeAll(base, map[string]any{
				"pylint": map[string]any{
					"disable": []any{"import-error"},
				},
			})

			section, _ := base["pylint"].(map[string]any)
			Expect(section["disable"]).To(Equal([]any{"fixme"}))
		})
	})
})
