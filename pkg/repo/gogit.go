package repo

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

const (
	fallbackAuthorName  = "new-homework"
	fallbackAuthorEmail = "new-homework@localhost"
)

// GitRepository is a Repository backed by go-git.
type GitRepository struct {
	root string
	r    *git.Repository
	wt   *git.Worktree
}

// Open opens the git repository whose working tree is rooted at path.
// Parent directories are not searched.
func Open(path string) (Repository, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}

	r, err := git.PlainOpen(abs)
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%s: %w", abs, ErrNotRepository)
		}
		return nil, fmt.Errorf("opening %s: %w", abs, err)
	}

	wt, err := r.Worktree()
	if err != nil {
		// Bare repositories have no working tree to install into.
		return nil, fmt.Errorf("%s: %w", abs, ErrNotRepository)
	}

	return &GitRepository{root: wt.Filesystem.Root(), r: r, wt: wt}, nil
}

func (g *GitRepository) Root() string {
	return g.root
}

func (g *GitRepository) HasRef(name string) bool {
	refs, err := g.r.References()
	if err != nil {
		return false
	}
	defer refs.Close()

	found := false
	_ = refs.ForEach(func(ref *plumbing.Reference) error {
		n := ref.Name()
		if (n.IsBranch() || n.IsTag() || n.IsRemote()) && n.Short() == name {
			found = true
			return storer.ErrStop
		}
		return nil
	})
	return found
}

func (g *GitRepository) HasBranch(name string) bool {
	_, err := g.r.Reference(plumbing.NewBranchReferenceName(name), false)
	return err == nil
}

func (g *GitRepository) Branches() ([]string, error) {
	iter, err := g.r.Branches()
	if err != nil {
		return nil, fmt.Errorf("listing branches: %w", err)
	}
	defer iter.Close()

	var names []string
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		names = append(names, ref.Name().Short())
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing branches: %w", err)
	}
	return names, nil
}

// IsDirty ignores untracked files, so stray build output or editor
// files do not block a new assignment.
func (g *GitRepository) IsDirty() (bool, error) {
	status, err := g.wt.Status()
	if err != nil {
		return false, fmt.Errorf("reading status: %w", err)
	}
	for _, fs := range status {
		if fs.Staging == git.Untracked && fs.Worktree == git.Untracked {
			continue
		}
		if fs.Staging != git.Unmodified || fs.Worktree != git.Unmodified {
			return true, nil
		}
	}
	return false, nil
}

func (g *GitRepository) Checkout(branch string) error {
	err := g.wt.Checkout(&git.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(branch),
	})
	if err != nil {
		return fmt.Errorf("checking out %s: %w", branch, err)
	}
	return nil
}

func (g *GitRepository) CreateBranch(base, name string) error {
	hash, err := g.r.ResolveRevision(plumbing.Revision(base))
	if err != nil {
		return fmt.Errorf("resolving %s: %w", base, err)
	}

	err = g.wt.Checkout(&git.CheckoutOptions{
		Hash:   *hash,
		Branch: plumbing.NewBranchReferenceName(name),
		Create: true,
	})
	if err != nil {
		return fmt.Errorf("creating branch %s from %s: %w", name, base, err)
	}
	return nil
}

func (g *GitRepository) Stage(paths ...string) error {
	for _, p := range paths {
		if _, err := g.wt.Add(filepath.ToSlash(p)); err != nil {
			return &StageError{Path: p, Err: err}
		}
	}
	return nil
}

func (g *GitRepository) Commit(message string) error {
	_, err := g.wt.Commit(message, &git.CommitOptions{Author: g.signature()})
	if err != nil {
		return fmt.Errorf("committing: %w", err)
	}
	return nil
}

// signature uses user.name and user.email from the merged local, global
// and system git config.
func (g *GitRepository) signature() *object.Signature {
	sig := &object.Signature{
		Name:  fallbackAuthorName,
		Email: fallbackAuthorEmail,
		When:  time.Now(),
	}
	cfg, err := g.r.ConfigScoped(config.SystemScope)
	if err != nil {
		return sig
	}
	if cfg.User.Name != "" {
		sig.Name = cfg.User.Name
	}
	if cfg.User.Email != "" {
		sig.Email = cfg.User.Email
	}
	return sig
}

// StageError reports the path that could not be added to the index.
type StageError struct {
	Path string
	Err  error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("staging %s: %v", e.Path, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
