package homework

import (
	"fmt"

	hwerrors "github.com/mattsolo1/new-homework/pkg/errors"
	"github.com/mattsolo1/new-homework/pkg/repo"
)

// BranchExists reports whether name is already a local branch. Tags and
// remote refs of the same name do not count.
func BranchExists(r repo.Repository, name string) bool {
	return r.HasBranch(name)
}

// EnsureBranch checks out name, creating it from base if needed. It
// reports whether the branch already existed.
func EnsureBranch(r repo.Repository, name, base string) (existed bool, err error) {
	if BranchExists(r, name) {
		if err := r.Checkout(name); err != nil {
			return true, hwerrors.Wrap(hwerrors.Git, fmt.Sprintf("Cannot check out branch %s", name), err)
		}
		return true, nil
	}

	if !r.HasRef(base) {
		return false, hwerrors.New(hwerrors.BaseBranchNotFound,
			fmt.Sprintf("Base branch %s does not exist", base))
	}

	if err := r.CreateBranch(base, name); err != nil {
		return false, hwerrors.Wrap(hwerrors.Git,
			fmt.Sprintf("Cannot create branch %s from %s", name, base), err)
	}
	return false, nil
}
