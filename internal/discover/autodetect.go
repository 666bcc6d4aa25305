package discover

import (
	"os"
	"path/filepath"
	"strings"
)

// Framework is a Python framework whose presence changes how pylint runs.
type Framework struct {
	// Name is the distribution name looked for in dependency files.
	Name string

	// PylintPlugin is the pylint plugin module loaded for this framework.
	PylintPlugin string
}

// knownFrameworks are the frameworks autodetection looks for.
var knownFrameworks = []Framework{
	{Name: "django", PylintPlugin: "pylint_django"},
	{Name: "celery", PylintPlugin: "pylint_celery"},
	{Name: "flask", PylintPlugin: "pylint_flask"},
}

// dependencyFiles are the files scanned for framework names.
var dependencyFiles = []string{
	"requirements.txt",
	"requirements-dev.txt",
	"setup.py",
	"setup.cfg",
	"pyproject.toml",
	"Pipfile",
}

// DetectFrameworks scans the project's dependency files for known
// frameworks. Missing files are skipped silently; detection is best
// effort by design.
func DetectFrameworks(root string) []Framework {
	var detected []Framework

	seen := make(map[string]bool, len(knownFrameworks))

	for _, file := range dependencyFiles {
		data, err := os.ReadFile(filepath.Join(root, file))
		if err != nil {
			continue
		}

		content := strings.ToLower(string(data))

		for _, framework := range knownFrameworks {
			if seen[framework.Name] {
				continue
			}

			if strings.Contains(content, framework.Name) {
				seen[framework.Name] = true

				detected = append(detected, framework)
			}
		}
	}

	return detected
}

// PylintPlugins returns the pylint plugin modules for the detected
// frameworks.
func PylintPlugins(frameworks []Framework) []string {
	plugins := make([]string, 0, len(frameworks))
	for _, framework := range frameworks {
		plugins = append(plugins, framework.PylintPlugin)
	}

	return plugins
}
