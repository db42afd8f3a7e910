// Package homework installs a homework assignment into an assignments
// repository: it resolves branch and directory names, creates the
// branch, copies problem bank material and commits the result.
package homework

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/mattsolo1/new-homework/pkg/discovery"
	hwerrors "github.com/mattsolo1/new-homework/pkg/errors"
	"github.com/mattsolo1/new-homework/pkg/repo"
)

// Options configures one run.
type Options struct {
	Language   string
	Assignment string

	Base        string // Starting point for stand-alone assignments; DefaultBase if empty
	DefaultBase string // Starting point for vignettes and unset Base; "master" if empty
	Suffix      int    // Vignette exercise override; 0 means next
	RepoPath    string // Explicit repository
	Guess       bool   // Guess the repository when RepoPath is empty
	Problems    string // Explicit problem bank

	NoCommit     bool
	NoInstall    bool
	WarnIfExists bool
	SkipChecks   bool

	Cwd           string
	GuessDirs     []string
	RepoPrefix    string
	CleanStartRef string

	Open repo.Opener
	Log  logrus.FieldLogger
}

// Result describes what a run did.
type Result struct {
	Root       string
	Assignment Assignment
	Names      Names
	Existed    bool     // The assignment branch was already there
	Installed  []string // Problem files installed, relative to Root
}

// Run sets up the assignment described by opts.
func Run(opts Options) (*Result, error) {
	log := opts.Log
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}

	r, err := discovery.Find(discovery.FindOptions{
		Path:      opts.RepoPath,
		Guess:     opts.Guess,
		Cwd:       opts.Cwd,
		GuessDirs: opts.GuessDirs,
		Prefix:    opts.RepoPrefix,
		Open:      opts.Open,
		Log:       log,
	})
	if err != nil {
		return nil, err
	}

	if !opts.SkipChecks {
		if err := discovery.StrictValidate(r, opts.CleanStartRef); err != nil {
			return nil, err
		}
	}

	bank, err := LocateProblemBank(opts.Problems, r.Root())
	if err != nil {
		return nil, err
	}
	vignette, parts, err := bank.Assignment(opts.Assignment)
	if err != nil {
		return nil, err
	}
	a := Assignment{Name: opts.Assignment, Vignette: vignette, Parts: parts, Language: opts.Language}

	dirty, err := r.IsDirty()
	if err != nil {
		return nil, hwerrors.Wrap(hwerrors.Git, "Cannot read repository status", err)
	}
	if dirty {
		return nil, hwerrors.New(hwerrors.DirtyWorkingTree,
			"Your repository has uncommitted changes.",
			"You must commit or stash all changes before creating a new branch.")
	}

	branches, err := r.Branches()
	if err != nil {
		return nil, hwerrors.Wrap(hwerrors.Git, "Cannot list branches", err)
	}
	names, err := ResolveNames(branches, a, opts.Base, opts.DefaultBase, opts.Suffix)
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"branch":      names.Branch,
		"base":        names.Base,
		"dir":         names.Dir,
		"is_vignette": a.Vignette,
	}).Debug("Calculated names")

	if BranchExists(r, names.Branch) {
		if !opts.WarnIfExists {
			if err := r.Checkout(names.Branch); err != nil {
				return nil, hwerrors.Wrap(hwerrors.Git, fmt.Sprintf("Cannot check out branch %s", names.Branch), err)
			}
			return nil, hwerrors.New(hwerrors.BranchAlreadyExists,
				fmt.Sprintf("You already have a branch named %s.", names.Branch),
				"Checking out branch and exiting with no other action taken.",
				"To continue, re-run with --warn-if-exists; see options --no-install and --no-commit.")
		}
		log.Warnf("Branch %s already exists, continuing anyway.", names.Branch)
	}

	existed, err := EnsureBranch(r, names.Branch, names.Base)
	if err != nil {
		return nil, err
	}

	res := &Result{Root: r.Root(), Assignment: a, Names: names, Existed: existed}

	if names.Sequel {
		log.Debugf("Sequel branch %s created off branch %s.", names.Branch, names.Base)
		log.Debugf("No directory or commit made on sequel branch %s.", names.Branch)
		return res, nil
	}

	in := &Installer{Root: r.Root(), Bank: bank, Log: log}
	if err := in.MakeDirectory(names.Dir); err != nil {
		return nil, err
	}
	if !opts.NoInstall {
		res.Installed = in.InstallProblem(a.Name, names.Dir)
		log.Debugf("Installed files: %v", res.Installed)

		if err := in.InstallTemplate(opts.Language, a.Name, names.Dir); err != nil {
			return nil, err
		}
	}

	if err := Finalize(r, log, names.Dir, names.Branch, names.Sequel, opts.NoCommit); err != nil {
		return nil, err
	}
	return res, nil
}
