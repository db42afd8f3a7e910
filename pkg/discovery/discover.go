// Package discovery locates the assignments repository a run operates on.
package discovery

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	hwerrors "github.com/mattsolo1/new-homework/pkg/errors"
	"github.com/mattsolo1/new-homework/pkg/repo"
)

// DefaultPrefix is the directory name prefix of assignment repositories.
const DefaultPrefix = "assignments-"

// FindOptions controls where Find looks.
type FindOptions struct {
	// Path is an explicit repository path; it must be a repository.
	Path string
	// Guess enables searching near Cwd and in GuessDirs when Path is empty.
	Guess bool
	// Cwd is the directory the command was run from.
	Cwd string
	// GuessDirs are absolute directories searched last when guessing.
	GuessDirs []string
	// Prefix overrides DefaultPrefix.
	Prefix string
	// Open opens a candidate; defaults to repo.Open.
	Open repo.Opener
	Log  logrus.FieldLogger
}

func (o *FindOptions) defaults() {
	if o.Prefix == "" {
		o.Prefix = DefaultPrefix
	}
	if o.Open == nil {
		o.Open = repo.Open
	}
	if o.Log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		o.Log = l
	}
}

// Find returns the assignments repository: the explicit path if given,
// otherwise a guessed repository when guessing is enabled, otherwise the
// current directory.
func Find(opts FindOptions) (repo.Repository, error) {
	opts.defaults()

	if opts.Path != "" {
		r := tryRepo(opts, opts.Path, "Using")
		if r == nil {
			return nil, hwerrors.New(hwerrors.RepositoryNotFound,
				fmt.Sprintf("Cannot find specified repository %s", opts.Path))
		}
		return Validate(r)
	}

	var r repo.Repository
	if opts.Guess {
		r = Guess(opts)
	}
	if r == nil {
		r = tryRepo(opts, opts.Cwd, "Using")
	}
	if r == nil {
		return nil, hwerrors.New(hwerrors.RepositoryNotFound,
			"Could not find a valid assignments repository.",
			"Are you running this command from inside your assignments repository?")
	}
	return Validate(r)
}

// tryRepo opens dir if it is a directory holding a repository, or
// returns nil.
func tryRepo(opts FindOptions, dir, verb string) repo.Repository {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil
	}
	r, err := opts.Open(dir)
	if err != nil {
		opts.Log.WithField("dir", dir).Debugf("Not a repository: %v", err)
		return nil
	}
	opts.Log.Debugf("%s %s as homework repository", verb, dir)
	return r
}
