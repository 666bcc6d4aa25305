package profile

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/prospekt-dev/prospekt/internal/schema"
	"github.com/prospekt-dev/prospekt/pkg/profile"
)

const (
	// ProfileFileMode is the file mode for profile files (user read/write only).
	ProfileFileMode = 0o600

	// ProfileDirMode is the file mode for profile directories (user rwx only).
	ProfileDirMode = 0o700

	// yamlIndent is the indentation width for written YAML.
	yamlIndent = 2
)

// Writer handles writing profiles to YAML and TOML files.
type Writer struct {
	// homeDir is the user's home directory (for testing).
	homeDir string

	// workDir is the current working directory (for testing).
	workDir string
}

// NewWriter creates a new Writer with default directories.
func NewWriter() *Writer {
	return &Writer{
		homeDir: os.Getenv("HOME"),
		workDir: mustGetwd(),
	}
}

// NewWriterWithDirs creates a new Writer with custom directories (for testing).
func NewWriterWithDirs(homeDir, workDir string) *Writer {
	return &Writer{
		homeDir: homeDir,
		workDir: workDir,
	}
}

// WriteGlobal writes the profile to the global profile file.
func (w *Writer) WriteGlobal(cfg *profile.Profile) error {
	return w.WriteFile(w.GlobalProfilePath(), cfg)
}

// WriteProject writes the profile to the project profile file.
// Uses the primary location (.prospekt/profile.yaml).
func (w *Writer) WriteProject(cfg *profile.Profile) error {
	return w.WriteFile(w.ProjectProfilePath(), cfg)
}

// WriteFile writes the profile to the given path. The encoding is chosen
// by the file extension: .toml writes TOML, anything else writes YAML with
// a schema directive for editor completion.
func (w *Writer) WriteFile(path string, cfg *profile.Profile) error {
	if cfg == nil {
		return errors.Wrap(ErrInvalidProfile, "profile is nil")
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, ProfileDirMode); err != nil {
		return errors.Wrapf(err, "failed to create directory %s", dir)
	}

	var (
		data []byte
		err  error
	)

	if filepath.Ext(path) == ".toml" {
		data, err = w.ExportTOML(cfg)
	} else {
		data, err = w.exportWithDirective(cfg)
	}

	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, ProfileFileMode); err != nil {
		return errors.Wrapf(err, "failed to write profile file %s", path)
	}

	return nil
}

// Export serializes the profile to YAML.
func (*Writer) Export(cfg *profile.Profile) ([]byte, error) {
	if cfg == nil {
		return nil, errors.Wrap(ErrInvalidProfile, "profile is nil")
	}

	var buf bytes.Buffer

	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(yamlIndent)

	if err := encoder.Encode(cfg); err != nil {
		return nil, errors.Wrap(err, "failed to encode profile to YAML")
	}

	if err := encoder.Close(); err != nil {
		return nil, errors.Wrap(err, "failed to finish YAML encoding")
	}

	return buf.Bytes(), nil
}

// ExportTOML serializes the profile to TOML.
func (*Writer) ExportTOML(cfg *profile.Profile) ([]byte, error) {
	if cfg == nil {
		return nil, errors.Wrap(ErrInvalidProfile, "profile is nil")
	}

	var buf bytes.Buffer

	encoder := toml.NewEncoder(&buf)
	encoder.SetIndentTables(true)

	if err := encoder.Encode(cfg); err != nil {
		return nil, errors.Wrap(err, "failed to encode profile to TOML")
	}

	return buf.Bytes(), nil
}

// exportWithDirective serializes the profile to YAML prefixed with the
// yaml-language-server schema directive.
func (w *Writer) exportWithDirective(cfg *profile.Profile) ([]byte, error) {
	body, err := w.Export(cfg)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer

	buf.WriteString(schema.Directive())
	buf.WriteByte('\n')
	buf.Write(body)

	return buf.Bytes(), nil
}

// GlobalProfilePath returns the path to the global profile file.
func (w *Writer) GlobalProfilePath() string {
	return filepath.Join(w.homeDir, GlobalProfileDir, GlobalProfileFile)
}

// ProjectProfilePath returns the path to the primary project profile file.
func (w *Writer) ProjectProfilePath() string {
	return filepath.Join(w.workDir, ProjectProfileDir, ProjectProfileFile)
}

// EnsureGlobalProfileDir ensures the global profile directory exists.
func (w *Writer) EnsureGlobalProfileDir() error {
	dir := filepath.Join(w.homeDir, GlobalProfileDir)

	if err := os.MkdirAll(dir, ProfileDirMode); err != nil {
		return errors.Wrapf(err, "failed to create directory %s", dir)
	}

	return nil
}

// EnsureProjectProfileDir ensures the project profile directory exists.
func (w *Writer) EnsureProjectProfileDir() error {
	dir := filepath.Join(w.workDir, ProjectProfileDir)

	if err := os.MkdirAll(dir, ProfileDirMode); err != nil {
		return errors.Wrapf(err, "failed to create directory %s", dir)
	}

	return nil
}
