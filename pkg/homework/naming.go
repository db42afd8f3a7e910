package homework

import (
	"fmt"
	"regexp"
	"strconv"

	hwerrors "github.com/mattsolo1/new-homework/pkg/errors"
)

// DefaultBase is the branch assignments start from unless told otherwise.
const DefaultBase = "master"

// Assignment describes the requested homework.
type Assignment struct {
	Name     string
	Vignette bool
	Parts    int
	Language string
}

// Names are the branch and directory a run works with.
type Names struct {
	Branch   string // Branch to create or check out
	Base     string // Branch or tag Branch starts from
	Dir      string // Assignment directory, relative to the repository root
	Exercise int    // Vignette exercise number; 0 for stand-alone assignments
	Sequel   bool   // Branch continues a previous vignette exercise
}

// ResolveNames computes the names for a. base, when set, is where a
// stand-alone assignment starts; otherwise it starts from defaultBase.
// The first exercise of a vignette always starts from defaultBase.
// suffix, when positive, overrides the next vignette exercise number.
func ResolveNames(branches []string, a Assignment, base, defaultBase string, suffix int) (Names, error) {
	if defaultBase == "" {
		defaultBase = DefaultBase
	}
	if !a.Vignette {
		if base == "" {
			base = defaultBase
		}
		return Names{Branch: a.Name, Base: base, Dir: a.Name}, nil
	}

	names, err := vignetteNames(branches, a.Name, defaultBase, suffix)
	if err != nil {
		return Names{}, err
	}
	if names.Exercise > a.Parts {
		return Names{}, hwerrors.New(hwerrors.ExerciseOutOfRange,
			fmt.Sprintf("The vignette %s only has %d exercises; cannot create a branch ", a.Name, a.Parts),
			fmt.Sprintf("for non-existent exercise %d.", names.Exercise))
	}
	return names, nil
}

// vignetteNames finds the next exercise branch. Branches named
// <name>-<n>, compared case-insensitively, are previous exercises; the
// new branch follows the highest one and keeps its spelling of name.
func vignetteNames(branches []string, name, base string, suffix int) (Names, error) {
	rx := regexp.MustCompile(`(?i)^(` + regexp.QuoteMeta(name) + `)(?:-(\d+))?$`)

	var (
		found    bool
		maxN     int
		prevName string
		root     string
	)
	for _, b := range branches {
		m := rx.FindStringSubmatch(b)
		if m == nil || m[2] == "" {
			continue
		}
		n, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		if !found || n > maxN {
			found, maxN, prevName, root = true, n, b, m[1]
		}
	}

	if !found {
		branch := name + "-1"
		return Names{Branch: branch, Base: base, Dir: branch, Exercise: 1}, nil
	}

	exercise := maxN + 1
	if suffix > 0 {
		if suffix <= maxN {
			return Names{}, hwerrors.New(hwerrors.InvalidSuffix,
				fmt.Sprintf("When given, --suffix %d must exceed max branch suffix %d.", suffix, maxN))
		}
		exercise = suffix
	}

	branch := root + "-" + strconv.Itoa(exercise)
	return Names{
		Branch:   branch,
		Base:     prevName,
		Dir:      branch,
		Exercise: exercise,
		Sequel:   true,
	}, nil
}
