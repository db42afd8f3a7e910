// Package repo is the narrow git capability set new-homework relies on.
package repo

import "errors"

// ErrNotRepository is returned by an Opener when the path is not a git
// working tree.
var ErrNotRepository = errors.New("not a git repository")

// Repository is an on-disk assignments repository.
type Repository interface {
	// Root is the absolute path of the working tree.
	Root() string
	// HasRef reports whether a branch, tag or remote ref has the given
	// short name.
	HasRef(name string) bool
	// HasBranch reports whether a local branch has the given short name.
	HasBranch(name string) bool
	// Branches lists the short names of all local branches.
	Branches() ([]string, error)
	// IsDirty reports uncommitted changes to tracked files.
	IsDirty() (bool, error)
	// Checkout switches the working tree to an existing branch.
	Checkout(branch string) error
	// CreateBranch creates branch name at base and checks it out.
	CreateBranch(base, name string) error
	// Stage adds paths, relative to Root, to the index recursively.
	Stage(paths ...string) error
	// Commit records the index on the current branch.
	Commit(message string) error
}

// Opener opens the repository whose working tree is at path.
type Opener func(path string) (Repository, error)
