package discover

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/cockroachdb/errors"
)

func TestDiscover(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Discover Suite")
}

func touch(path string) {
	Expect(os.MkdirAll(filepath.Dir(path), 0o755)).To(Succeed())
	Expect(os.WriteFile(path, []byte(""), 0o644)).To(Succeed())
}

var _ = Describe("ProjectRoot", func() {
	It("falls back to the starting directory outside a repository", func() {
		dir := GinkgoT().TempDir()

		Expect(ProjectRoot(dir)).To(Equal(dir))
	})
})

var _ = Describe("FindProfile", func() {
	It("finds the profile in the starting directory", func() {
		dir := GinkgoT().TempDir()
		touch(filepath.Join(dir, ".prospekt", "profile.yaml"))

		path, err := FindProfile(dir)
		Expect(err).NotTo(HaveOccurred())
		Expect(path).To(Equal(filepath.Join(dir, ".prospekt", "profile.yaml")))
	})

	It("prefers the directory profile over the dotfile", func() {
		dir := GinkgoT().TempDir()
		touch(filepath.Join(dir, ".prospekt", "profile.yaml"))
		touch(filepath.Join(dir, ".prospekt.yaml"))

		path, err := FindProfile(dir)
		Expect(err).NotTo(HaveOccurred())
		Expect(path).To(Equal(filepath.Join(dir, ".prospekt", "profile.yaml")))
	})

	It("finds the TOML dotfile", func() {
		dir := GinkgoT().TempDir()
		touch(filepath.Join(dir, ".prospekt.toml"))

		path, err := FindProfile(dir)
		Expect(err).NotTo(HaveOccurred())
		Expect(path).To(Equal(filepath.Join(dir, ".prospekt.toml")))
	})

	It("reports when nothing is found", func() {
		dir := GinkgoT().TempDir()

		_, err := FindProfile(dir)
		Expect(errors.Is(err, ErrNoProfile)).To(BeTrue())
	})
})

var _ = Describe("Matcher", func() {
	It("matches glob ignore paths", func() {
		matcher, err := NewMatcher([]string{"migrations/**", "**/generated/**"}, nil)
		Expect(err).NotTo(HaveOccurred())

		Expect(matcher.Match("migrations/0001_initial.py")).To(BeTrue())
		Expect(matcher.Match("app/generated/models.py")).To(BeTrue())
		Expect(matcher.Match("app/models.py")).To(BeFalse())
	})

	It("matches regular-expression ignore patterns", func() {
		matcher, err := NewMatcher(nil, []string{`_pb2\.py$`})
		Expect(err).NotTo(HaveOccurred())

		Expect(matcher.Match("proto/service_pb2.py")).To(BeTrue())
		Expect(matcher.Match("proto/service.py")).To(BeFalse())
	})

	It("rejects invalid globs eagerly", func() {
		_, err := NewMatcher([]string{"[unclosed"}, nil)
		Expect(errors.Is(err, ErrInvalidIgnorePattern)).To(BeTrue())
	})

	It("rejects invalid regular expressions eagerly", func() {
		_, err := NewMatcher(nil, []string{"[unclosed"})
		Expect(errors.Is(err, ErrInvalidIgnorePattern)).To(BeTrue())
	})
})

var _ = Describe("PythonFiles", func() {
	It("collects Python files, skipping hidden and ignored paths", func() {
		dir := GinkgoT().TempDir()
		touch(filepath.Join(dir, "app.py"))
		touch(filepath.Join(dir, "pkg", "models.py"))
		touch(filepath.Join(dir, "pkg", "README.md"))
		touch(filepath.Join(dir, ".venv", "lib.py"))
		touch(filepath.Join(dir, "migrations", "0001_initial.py"))

		matcher, err := NewMatcher([]string{"migrations/**"}, nil)
		Expect(err).NotTo(HaveOccurred())

		files, err := PythonFiles(dir, matcher)
		Expect(err).NotTo(HaveOccurred())

		Expect(files).To(ConsistOf(
			filepath.Join(dir, "app.py"),
			filepath.Join(dir, "pkg", "models.py"),
		))
	})
})

var _ = Describe("DetectFrameworks", func() {
	It("detects frameworks from requirements.txt", func() {
		dir := GinkgoT().TempDir()
		Expect(os.WriteFile(
			filepath.Join(dir, "requirements.txt"),
			[]byte("Django==4.2\ncelery>=5\nrequests\n"),
			0o644,
		)).To(Succeed())

		frameworks := DetectFrameworks(dir)

		names := make([]string, 0, len(frameworks))
		for _, f := range frameworks {
			names = append(names, f.Name)
		}

		Expect(names).To(ConsistOf("django", "celery"))
		Expect(PylintPlugins(frameworks)).To(ConsistOf("pylint_django", "pylint_celery"))
	})

	It("reports each framework once across files", func() {
		dir := GinkgoT().TempDir()
		Expect(os.WriteFile(
			filepath.Join(dir, "requirements.txt"), []byte("flask\n"), 0o644,
		)).To(Succeed())
		Expect(os.WriteFile(
			filepath.Join(dir, "setup.py"), []byte("install_requires=['flask']\n"), 0o644,
		)).To(Succeed())

		frameworks := DetectFrameworks(dir)
		Expect(frameworks).To(HaveLen(1))
		Expect(frameworks[0].PylintPlugin).To(Equal("pylint_flask"))
	})

	It("stays quiet without dependency files", func() {
		Expect(DetectFrameworks(GinkgoT().TempDir())).To(BeEmpty())
	})
})
