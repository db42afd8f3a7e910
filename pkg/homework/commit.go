package homework

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	hwerrors "github.com/mattsolo1/new-homework/pkg/errors"
	"github.com/mattsolo1/new-homework/pkg/repo"
)

// Finalize stages dir and commits it with the branch name as message.
// Sequel branches inherit their content and are never committed; skip
// suppresses the commit as well.
func Finalize(r repo.Repository, log logrus.FieldLogger, dir, branch string, sequel, skip bool) error {
	if sequel {
		log.Debugf("No commit made on sequel branch %s.", branch)
		return nil
	}
	if skip {
		log.Debugf("Skipping initial commit on branch %s.", branch)
		return nil
	}

	if err := r.Stage(dir); err != nil {
		path := dir
		var se *repo.StageError
		if errors.As(err, &se) {
			path = se.Path
		}
		return hwerrors.Wrap(hwerrors.StageFailed,
			fmt.Sprintf("Cannot stage installed files in repository (%s)", path), err)
	}

	if err := r.Commit(branch); err != nil {
		return hwerrors.Wrap(hwerrors.Git, fmt.Sprintf("Cannot commit on branch %s", branch), err)
	}
	log.Debugf("Committing initial state of work on branch %s.", branch)
	return nil
}
