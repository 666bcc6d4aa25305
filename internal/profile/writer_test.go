package profile

import (
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/prospekt-dev/prospekt/pkg/profile"
)

func sampleProfile() *profile.Profile {
	full := true
	maxLineLength := 120
	docWarnings := true

	return &profile.Profile{
		Strictness:   profile.StrictnessHigh,
		OutputFormat: profile.OutputFormatGrouped,
		DocWarnings:  &docWarnings,
		IgnorePaths:  []string{"migrations/**"},
		Pep8: &profile.Pep8Settings{
			ToolSettings: profile.ToolSettings{
				Full:    &full,
				Disable: []string{"E501"},
			},
			Options: &profile.Pep8Options{MaxLineLength: &maxLineLength},
		},
		Pylint: &profile.PylintSettings{
			ToolSettings: profile.ToolSettings{
				Disable: []string{"import-error", "fixme"},
				Enable:  []string{"missing-docstring"},
			},
		},
	}
}

var _ = Describe("Writer", func() {
	var (
		writer  *Writer
		workDir string
	)

	BeforeEach(func() {
		homeDir := GinkgoT().TempDir()
		workDir = GinkgoT().TempDir()
		writer = NewWriterWithDirs(homeDir, workDir)
	})

	Describe("WriteFile", func() {
		It("writes YAML with the schema directive", func() {
			path := filepath.Join(workDir, "profile.yaml")

			Expect(writer.WriteFile(path, sampleProfile())).To(Succeed())

			data, err := os.ReadFile(path)
			Expect(err).NotTo(HaveOccurred())

			content := string(data)
			Expect(strings.HasPrefix(content, "# yaml-language-server: $schema=")).To(BeTrue())
			Expect(content).To(ContainSubstring("strictness: high"))
			Expect(content).To(ContainSubstring("output-format: grouped"))
		})

		It("writes TOML when the extension asks for it", func() {
			path := filepath.Join(workDir, "profile.toml")

			Expect(writer.WriteFile(path, sampleProfile())).To(Succeed())

			data, err := os.ReadFile(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(data)).To(ContainSubstring("strictness = 'high'"))
		})

		It("creates profiles with restrictive permissions", func() {
			path := filepath.Join(workDir, "profile.yaml")

			Expect(writer.WriteFile(path, sampleProfile())).To(Succeed())

			info, err := os.Stat(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(info.Mode().Perm()).To(Equal(os.FileMode(ProfileFileMode)))
		})

		It("rejects a nil profile", func() {
			Expect(writer.WriteFile(filepath.Join(workDir, "x.yaml"), nil)).NotTo(Succeed())
		})
	})

	Describe("round-trip", func() {
		It("reads back exactly what it wrote", func() {
			original := sampleProfile()
			path := filepath.Join(workDir, "profile.yaml")

			Expect(writer.WriteFile(path, original)).To(Succeed())

			loaded, err := LoadFile(path)
			Expect(err).NotTo(HaveOccurred())

			Expect(loaded.Strictness).To(Equal(original.Strictness))
			Expect(loaded.OutputFormat).To(Equal(original.OutputFormat))
			Expect(loaded.AreDocWarningsEnabled()).To(BeTrue())
			Expect(loaded.IgnorePaths).To(Equal(original.IgnorePaths))
			Expect(loaded.Pep8.IsFull()).To(BeTrue())
			Expect(loaded.Pep8.Disable).To(Equal(original.Pep8.Disable))
			Expect(loaded.Pep8.Options.GetMaxLineLength()).To(Equal(120))
			Expect(loaded.Pylint.Disable).To(Equal(original.Pylint.Disable))
			Expect(loaded.Pylint.Enable).To(Equal(original.Pylint.Enable))
		})

		It("round-trips through TOML the same way", func() {
			original := sampleProfile()
			path := filepath.Join(workDir, "profile.toml")

			Expect(writer.WriteFile(path, original)).To(Succeed())

			loaded, err := LoadFile(path)
			Expect(err).NotTo(HaveOccurred())

			Expect(loaded.Strictness).To(Equal(original.Strictness))
			Expect(loaded.Pep8.IsFull()).To(BeTrue())
			Expect(loaded.Pep8.Options.GetMaxLineLength()).To(Equal(120))
		})
	})

	Describe("WriteProject", func() {
		It("creates the project profile directory", func() {
			Expect(writer.WriteProject(sampleProfile())).To(Succeed())

			Expect(writer.ProjectProfilePath()).To(BeARegularFile())
		})
	})
})
