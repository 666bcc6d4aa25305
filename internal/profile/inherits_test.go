package profile

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/cockroachdb/errors"
)

var _ = Describe("Registry", func() {
	var (
		registry  *Registry
		searchDir string
	)

	BeforeEach(func() {
		searchDir = GinkgoT().TempDir()
		registry = NewRegistry(searchDir)
	})

	writeProfile := func(name, content string) {
		err := os.WriteFile(filepath.Join(searchDir, name+".yaml"), []byte(content), 0o644)
		Expect(err).NotTo(HaveOccurred())
	}

	Describe("Has", func() {
		It("knows every built-in profile", func() {
			for _, name := range []string{
				"strictness_verylow",
				"strictness_low",
				"strictness_medium",
				"strictness_high",
				"strictness_veryhigh",
				"full_pep8",
				"doc_warnings",
				"no_doc_warnings",
				"no_test_warnings",
				"member_warnings",
				"no_member_warnings",
			} {
				Expect(registry.Has(name)).To(BeTrue(), name)
			}
		})

		It("finds profile files in the search directories", func() {
			Expect(registry.Has("team")).To(BeFalse())

			writeProfile("team", "strictness: high\n")

			Expect(registry.Has("team")).To(BeTrue())
		})
	})

	Describe("Resolve", func() {
		It("returns built-in settings as-is", func() {
			resolved, err := registry.Resolve("full_pep8")
			Expect(err).NotTo(HaveOccurred())

			section, ok := resolved["pep8"].(map[string]any)
			Expect(ok).To(BeTrue())
			Expect(section["full"]).To(Equal(true))
		})

		It("flattens a file profile over its parents", func() {
			writeProfile("base", `pylint:
  disable:
    - fixme
`)
			writeProfile("team", `inherits: [base]
pylint:
  disable:
    - import-error
`)

			resolved, err := registry.Resolve("team")
			Expect(err).NotTo(HaveOccurred())

			section, _ := resolved["pylint"].(map[string]any)
			Expect(section["disable"]).To(Equal([]any{"fixme", "import-error"}))

			_, hasInherits := resolved["inherits"]
			Expect(hasInherits).To(BeFalse(), "inherits is consumed during flattening")
		})

		It("resolves TOML profile files", func() {
			err := os.WriteFile(
				filepath.Join(searchDir, "packaging.toml"),
				[]byte("[pyroma]\nrun = true\n"),
				0o644,
			)
			Expect(err).NotTo(HaveOccurred())

			Expect(registry.Has("packaging")).To(BeTrue())

			resolved, err := registry.Resolve("packaging")
			Expect(err).NotTo(HaveOccurred())

			section, _ := resolved["pyroma"].(map[string]any)
			Expect(section["run"]).To(Equal(true))
		})

		It("fails on unknown names", func() {
			_, err := registry.Resolve("nonexistent")
			Expect(errors.Is(err, ErrUnknownProfile)).To(BeTrue())
		})

		It("fails on cycles", func() {
			writeProfile("a", "inherits: [b]\n")
			writeProfile("b", "inherits: [a]\n")

			_, err := registry.Resolve("a")
			Expect(errors.Is(err, ErrInheritCycle)).To(BeTrue())
		})

		It("tolerates diamonds", func() {
			writeProfile("base", `pylint:
  disable:
    - fixme
`)
			writeProfile("left", "inherits: [base]\n")
			writeProfile("right", "inherits: [base]\n")
			writeProfile("top", "inherits: [left, right]\n")

			resolved, err := registry.Resolve("top")
			Expect(err).NotTo(HaveOccurred())

			section, _ := resolved["pylint"].(map[string]any)
			Expect(section["disable"]).To(Equal([]any{"fixme"}))
		})
	})

	Describe("Chain", func() {
		It("returns flattened parents in inherits order", func() {
			writeProfile("team", `pep8:
  options:
    max-line-length: 100
`)

			chain, err := registry.Chain(map[string]any{
				"inherits": []any{"full_pep8", "team"},
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(chain).To(HaveLen(2))

			first, _ := chain[0]["pep8"].(map[string]any)
			Expect(first["full"]).To(Equal(true))

			second, _ := chain[1]["pep8"].(map[string]any)
			options, _ := second["options"].(map[string]any)
			Expect(options["max-line-length"]).To(Equal(100))
		})

		It("accepts the scalar inherits shorthand", func() {
			chain, err := registry.Chain(map[string]any{"inherits": "full_pep8"})
			Expect(err).NotTo(HaveOccurred())
			Expect(chain).To(HaveLen(1))
		})

		It("returns nothing for profiles without inherits", func() {
			chain, err := registry.Chain(map[string]any{"strictness": "high"})
			Expect(err).NotTo(HaveOccurred())
			Expect(chain).To(BeEmpty())
		})
	})
})
