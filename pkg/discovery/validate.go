package discovery

import (
	"fmt"

	hwerrors "github.com/mattsolo1/new-homework/pkg/errors"
	"github.com/mattsolo1/new-homework/pkg/repo"
)

// DefaultCleanStartRef marks a repository created from the course
// template.
const DefaultCleanStartRef = "clean-start"

// Validate is the base check every located repository passes through.
// It has no rules yet.
func Validate(r repo.Repository) (repo.Repository, error) {
	return r, nil
}

// StrictValidate requires the repository to carry the clean-start ref.
func StrictValidate(r repo.Repository, cleanStartRef string) error {
	if cleanStartRef == "" {
		cleanStartRef = DefaultCleanStartRef
	}
	if !r.HasRef(cleanStartRef) {
		reason := fmt.Sprintf("repo does not have a ref named %s", cleanStartRef)
		return hwerrors.New(hwerrors.StrictValidationFailed,
			fmt.Sprintf("Repository '%s' fails strict validity checks (%s).", r.Root(), reason),
			"If this assessment is incorrect, consider using --skip-checks.")
	}
	return nil
}
