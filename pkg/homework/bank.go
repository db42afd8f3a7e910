package homework

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	hwerrors "github.com/mattsolo1/new-homework/pkg/errors"
)

// Problem bank layout.
const (
	DefaultProblemBankDir = "problem-bank"
	ManifestFile          = "points.csv"
	DescriptionDir        = "All"
	TemplateDir           = "Skel"
	DefaultTemplateDir    = ".skel"
)

// ResourceKinds are the per-assignment directories copied from the bank.
var ResourceKinds = []string{"Data", "Resources"}

// ProblemBank is a checked-out problem bank repository. The zero value
// means no bank is available.
type ProblemBank struct {
	Path string
}

// Available reports whether the bank was located.
func (b ProblemBank) Available() bool {
	return b.Path != ""
}

// LocateProblemBank resolves the problem bank: explicit wins, otherwise
// the problem-bank directory next to the repository root.
func LocateProblemBank(explicit, repoRoot string) (ProblemBank, error) {
	var path string
	if explicit != "" {
		abs, err := filepath.Abs(explicit)
		if err != nil {
			return ProblemBank{}, hwerrors.Wrap(hwerrors.ProblemBankNotFound,
				fmt.Sprintf("Cannot resolve problem bank path %s", explicit), err)
		}
		path = abs
	} else {
		path = filepath.Join(filepath.Dir(filepath.Clean(repoRoot)), DefaultProblemBankDir)
	}

	f, err := os.Open(path)
	if err != nil {
		return ProblemBank{}, hwerrors.Wrap(hwerrors.ProblemBankNotFound,
			"Cannot find problem-bank repository; see --problems option.", err,
			"The problem-bank should be in the same directory as your assignments repository.")
	}
	f.Close()

	return ProblemBank{Path: path}, nil
}

// Assignment reports whether name is a vignette and how many parts it
// has, from the rows of points.csv.
func (b ProblemBank) Assignment(name string) (vignette bool, parts int, err error) {
	count, err := b.countRows(name)
	if err != nil {
		return false, 0, err
	}
	if count == 0 {
		return false, 0, hwerrors.New(hwerrors.AssignmentNotFound,
			fmt.Sprintf("Cannot find an assignment named '%s' in the problem bank.", name),
			"The name must be spelled exactly as in the problem-bank repo.",
			"Or the assignment is new and you did not pull the latest problem-bank updates.")
	}
	return count > 1, count, nil
}

// countRows counts manifest rows whose first column is name. The header
// row is skipped.
func (b ProblemBank) countRows(name string) (int, error) {
	manifest := filepath.Join(b.Path, ManifestFile)
	f, err := os.Open(manifest)
	if err != nil {
		return 0, hwerrors.Wrap(hwerrors.ProblemBankNotFound,
			fmt.Sprintf("Cannot read %s in the problem bank", ManifestFile), err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	if _, err := r.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return 0, nil
		}
		return 0, hwerrors.Wrap(hwerrors.ProblemBankNotFound,
			fmt.Sprintf("Cannot parse %s", manifest), err)
	}

	count := 0
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return 0, hwerrors.Wrap(hwerrors.ProblemBankNotFound,
				fmt.Sprintf("Cannot parse %s", manifest), err)
		}
		if len(row) > 0 && row[0] == name {
			count++
		}
	}
	return count, nil
}
