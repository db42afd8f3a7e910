package discovery

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/mattsolo1/new-homework/pkg/repo"
)

// Guess looks for an assignments repository near opts.Cwd. The current
// directory and its parent are tried first if their own names carry the
// prefix; then prefixed entries of the current directory, its parent,
// its grandparent and each of opts.GuessDirs are tried in order.
func Guess(opts FindOptions) repo.Repository {
	opts.defaults()

	for _, c := range Candidates(opts) {
		opts.Log.Debugf("Checking dir %s (%s)", c.Path, c.Reason)
		if r := tryRepo(opts, c.Path, "Guessing"); r != nil {
			return r
		}
	}
	return nil
}

// Candidates lists, in search order, the directories Guess will try.
func Candidates(opts FindOptions) []Candidate {
	opts.defaults()

	start, err := filepath.Abs(opts.Cwd)
	if err != nil {
		start = filepath.Clean(opts.Cwd)
	}
	searchDirs := []string{
		start,
		filepath.Dir(start),
		filepath.Dir(filepath.Dir(start)),
	}
	searchDirs = append(searchDirs, opts.GuessDirs...)

	var candidates []Candidate
	for _, d := range searchDirs[:2] {
		if strings.HasPrefix(filepath.Base(d), opts.Prefix) && isDir(d) {
			candidates = append(candidates, Candidate{Path: d, Reason: "named like a repository"})
		}
	}

	for _, dir := range searchDirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if !strings.HasPrefix(e.Name(), opts.Prefix) {
				continue
			}
			p := filepath.Join(dir, e.Name())
			if isDir(p) {
				candidates = append(candidates, Candidate{Path: p, Reason: "inside " + dir})
			}
		}
	}
	return candidates
}

// isDir follows symlinks, so a linked repository still counts.
func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
