// Package discover locates project roots, profile files and the Python
// sources a run should analyze.
package discover

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	git "github.com/go-git/go-git/v6"
)

// ErrNoProfile is returned when no profile file is found between the
// starting directory and the project root.
var ErrNoProfile = errors.New("no profile file found")

// projectProfileCandidates are the profile file locations checked in each
// directory, in precedence order.
var projectProfileCandidates = []string{
	filepath.Join(".prospekt", "profile.yaml"),
	".prospekt.yaml",
	".prospekt.toml",
}

// ProjectRoot returns the root directory of the project containing start.
// The repository worktree root wins when start is inside one; otherwise
// start itself is the root.
func ProjectRoot(start string) string {
	repo, err := git.PlainOpenWithOptions(start, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return start
	}

	wt, err := repo.Worktree()
	if err != nil {
		return start
	}

	return wt.Filesystem.Root()
}

// FindProfile walks from start up to the project root looking for a
// profile file. Returns the path of the first one found.
func FindProfile(start string) (string, error) {
	root := ProjectRoot(start)

	dir := start
	for {
		for _, candidate := range projectProfileCandidates {
			path := filepath.Join(dir, candidate)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path, nil
			}
		}

		if dir == root || dir == filepath.Dir(dir) {
			break
		}

		dir = filepath.Dir(dir)
	}

	return "", errors.Wrapf(ErrNoProfile, "searched from %s to %s", start, root)
}
