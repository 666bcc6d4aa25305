package discover

import (
	"io/fs"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/cockroachdb/errors"
)

// ErrInvalidIgnorePattern is returned when an ignore-patterns entry does
// not compile as a regular expression.
var ErrInvalidIgnorePattern = errors.New("invalid ignore pattern")

// Matcher decides which paths a run skips, combining the profile's
// ignore-paths globs with its ignore-patterns regular expressions.
type Matcher struct {
	globs    []string
	patterns []*regexp.Regexp
}

// NewMatcher compiles the ignore sets from a profile. Globs are validated
// eagerly so a bad profile fails before the walk starts.
func NewMatcher(ignorePaths, ignorePatterns []string) (*Matcher, error) {
	for _, glob := range ignorePaths {
		if !doublestar.ValidatePattern(glob) {
			return nil, errors.Wrapf(ErrInvalidIgnorePattern, "glob %q", glob)
		}
	}

	patterns := make([]*regexp.Regexp, 0, len(ignorePatterns))

	for _, pattern := range ignorePatterns {
		compiled, err := regexp.Compile(pattern)
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidIgnorePattern, "regexp %q: %v", pattern, err)
		}

		patterns = append(patterns, compiled)
	}

	return &Matcher{
		globs:    ignorePaths,
		patterns: patterns,
	}, nil
}

// Match reports whether the slash-separated relative path is ignored.
func (m *Matcher) Match(relPath string) bool {
	relPath = filepath.ToSlash(relPath)

	for _, glob := range m.globs {
		if doublestar.MatchUnvalidated(glob, relPath) {
			return true
		}
	}

	for _, pattern := range m.patterns {
		if pattern.MatchString(relPath) {
			return true
		}
	}

	return false
}

// PythonFiles walks root collecting .py files, skipping ignored paths and
// hidden directories.
func PythonFiles(root string, matcher *Matcher) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}

		if rel == "." {
			return nil
		}

		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") || matcher.Match(rel) {
				return filepath.SkipDir
			}

			return nil
		}

		if !strings.HasSuffix(d.Name(), ".py") || matcher.Match(rel) {
			return nil
		}

		files = append(files, path)

		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "walking %s", root)
	}

	return files, nil
}
