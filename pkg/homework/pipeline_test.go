package homework

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	hwerrors "github.com/mattsolo1/new-homework/pkg/errors"
	"github.com/mattsolo1/new-homework/pkg/repo"
)

// memoryOpener serves mem for f.repo and nothing else.
func memoryOpener(f fixture, mem *repo.Memory) repo.Opener {
	return func(path string) (repo.Repository, error) {
		abs, _ := filepath.Abs(path)
		if abs != f.repo {
			return nil, fmt.Errorf("%s: %w", abs, repo.ErrNotRepository)
		}
		return mem, nil
	}
}

func runOpts(f fixture, mem *repo.Memory, language, name string) Options {
	log, _ := testLogger()
	return Options{
		Language:   language,
		Assignment: name,
		Cwd:        f.repo,
		Open:       memoryOpener(f, mem),
		Log:        log,
	}
}

func withTemplates(t *testing.T, f fixture) {
	t.Helper()
	f.bankFile(t, ".skel/python/ASSIGN.py", "import ASSIGN\n")
	f.bankFile(t, ".skel/python/test_ASSIGN.py", "from ASSIGN import *\n")
}

func TestRun_ScenarioA_StandAlone(t *testing.T) {
	f := newFixture(t)
	withTemplates(t, f)
	f.bankFile(t, "All/cow-proximity.pdf", "%PDF")
	mem := repo.NewMemory(f.repo, "master").AddTag("clean-start")

	res, err := Run(runOpts(f, mem, "python", "cow-proximity"))
	require.NoError(t, err)

	assert.Equal(t, Names{Branch: "cow-proximity", Base: "master", Dir: "cow-proximity"}, res.Names)
	assert.False(t, res.Assignment.Vignette)
	assert.False(t, res.Existed)
	assert.Equal(t, "master", mem.BaseOf("cow-proximity"))
	assert.Equal(t, "cow-proximity", mem.Current())

	assert.Equal(t,
		[]string{".gitkeep", "cow-proximity.pdf", "cow_proximity.py", "test_cow_proximity.py"},
		listFiles(t, filepath.Join(f.repo, "cow-proximity")))

	require.Len(t, mem.Commits(), 1)
	assert.Equal(t, repo.MemoryCommit{Branch: "cow-proximity", Message: "cow-proximity", Paths: []string{"cow-proximity"}}, mem.Commits()[0])
}

func TestRun_ScenarioB_FirstVignetteExercise(t *testing.T) {
	f := newFixture(t)
	withTemplates(t, f)
	mem := repo.NewMemory(f.repo, "master").AddTag("clean-start")

	res, err := Run(runOpts(f, mem, "python", "intro-loops"))
	require.NoError(t, err)

	assert.Equal(t, "intro-loops-1", res.Names.Branch)
	assert.Equal(t, "master", res.Names.Base)
	assert.Equal(t, "intro-loops-1", res.Names.Dir)
	assert.True(t, res.Assignment.Vignette)
	assert.Equal(t, 3, res.Assignment.Parts)
	assert.False(t, res.Names.Sequel)
	assert.DirExists(t, filepath.Join(f.repo, "intro-loops-1"))
	assert.FileExists(t, filepath.Join(f.repo, "intro-loops-1", "intro_loops.py"))

	require.Len(t, mem.Commits(), 1)
	assert.Equal(t, "intro-loops-1", mem.Commits()[0].Message)
}

func TestRun_ScenarioC_Sequel(t *testing.T) {
	f := newFixture(t)
	withTemplates(t, f)
	mem := repo.NewMemory(f.repo, "master", "intro-loops-1").AddTag("clean-start")

	res, err := Run(runOpts(f, mem, "python", "intro-loops"))
	require.NoError(t, err)

	assert.Equal(t, "intro-loops-2", res.Names.Branch)
	assert.Equal(t, "intro-loops-1", res.Names.Base)
	assert.True(t, res.Names.Sequel)
	assert.Equal(t, "intro-loops-1", mem.BaseOf("intro-loops-2"))
	assert.Equal(t, "intro-loops-2", mem.Current())
	assert.Empty(t, mem.Commits())
	assert.Empty(t, res.Installed)
	assert.NoDirExists(t, filepath.Join(f.repo, "intro-loops-2"))
}

func TestRun_SequelSkipsTemplateLookup(t *testing.T) {
	f := newFixture(t)
	mem := repo.NewMemory(f.repo, "master", "intro-loops-1").AddTag("clean-start")
	log, buf := testLogger()

	opts := runOpts(f, mem, "r", "intro-loops")
	opts.Log = log
	res, err := Run(opts)
	require.NoError(t, err)

	assert.True(t, res.Names.Sequel)
	assert.Equal(t, "intro-loops-2", mem.Current())
	assert.Empty(t, listFiles(t, f.repo))
	assert.Contains(t, buf.String(), "Sequel branch intro-loops-2 created off branch intro-loops-1.")
}

func TestRun_VignetteIgnoresExplicitBase(t *testing.T) {
	f := newFixture(t)
	mem := repo.NewMemory(f.repo, "master", "develop").AddTag("clean-start")

	opts := runOpts(f, mem, "none", "intro-loops")
	opts.Base = "develop"
	res, err := Run(opts)
	require.NoError(t, err)

	assert.Equal(t, "intro-loops-1", res.Names.Branch)
	assert.Equal(t, "master", res.Names.Base)
	assert.Equal(t, "master", mem.BaseOf("intro-loops-1"))
}

func TestRun_ScenarioD_SuffixOverride(t *testing.T) {
	f := newFixture(t)
	f.manifest(t, "intro-loops", "intro-loops", "intro-loops", "intro-loops", "intro-loops", "intro-loops")
	mem := repo.NewMemory(f.repo, "master", "intro-loops-1").AddTag("clean-start")

	opts := runOpts(f, mem, "none", "intro-loops")
	opts.Suffix = 5
	res, err := Run(opts)
	require.NoError(t, err)

	assert.Equal(t, "intro-loops-5", res.Names.Branch)
	assert.Equal(t, "intro-loops-1", mem.BaseOf("intro-loops-5"))
	assert.True(t, res.Names.Sequel)
}

func TestRun_ScenarioE_ExerciseOutOfRange(t *testing.T) {
	f := newFixture(t)
	mem := repo.NewMemory(f.repo, "master", "intro-loops-1").AddTag("clean-start")

	opts := runOpts(f, mem, "none", "intro-loops")
	opts.Suffix = 4
	_, err := Run(opts)
	require.Error(t, err)
	assert.Equal(t, hwerrors.ExerciseOutOfRange, hwerrors.GetKind(err))

	branches, _ := mem.Branches()
	assert.Equal(t, []string{"intro-loops-1", "master"}, branches)
	assert.Equal(t, "master", mem.Current())
	assert.Empty(t, listFiles(t, f.repo))
}

func TestRun_InvalidSuffixCreatesNothing(t *testing.T) {
	f := newFixture(t)
	mem := repo.NewMemory(f.repo, "master", "intro-loops-1", "intro-loops-2").AddTag("clean-start")

	opts := runOpts(f, mem, "none", "intro-loops")
	opts.Suffix = 2
	_, err := Run(opts)
	require.Error(t, err)
	assert.Equal(t, hwerrors.InvalidSuffix, hwerrors.GetKind(err))

	branches, _ := mem.Branches()
	assert.Len(t, branches, 3)
}

func TestRun_ScenarioF_DirtyWorkingTree(t *testing.T) {
	f := newFixture(t)
	mem := repo.NewMemory(f.repo, "master").AddTag("clean-start").SetDirty(true)

	_, err := Run(runOpts(f, mem, "python", "cow-proximity"))
	require.Error(t, err)
	assert.Equal(t, hwerrors.DirtyWorkingTree, hwerrors.GetKind(err))
	assert.False(t, mem.HasRef("cow-proximity"))
}

func TestRun_AssignmentNotFoundChangesNothing(t *testing.T) {
	f := newFixture(t)
	mem := repo.NewMemory(f.repo, "master").AddTag("clean-start")

	_, err := Run(runOpts(f, mem, "python", "no-such-hw"))
	require.Error(t, err)
	assert.Equal(t, hwerrors.AssignmentNotFound, hwerrors.GetKind(err))

	branches, _ := mem.Branches()
	assert.Equal(t, []string{"master"}, branches)
	assert.Empty(t, listFiles(t, f.repo))
}

func TestRun_StrictValidation(t *testing.T) {
	f := newFixture(t)
	mem := repo.NewMemory(f.repo, "master")

	_, err := Run(runOpts(f, mem, "none", "cow-proximity"))
	require.Error(t, err)
	assert.Equal(t, hwerrors.StrictValidationFailed, hwerrors.GetKind(err))

	opts := runOpts(f, mem, "none", "cow-proximity")
	opts.SkipChecks = true
	_, err = Run(opts)
	require.NoError(t, err)
	assert.True(t, mem.HasRef("cow-proximity"))
}

func TestRun_BranchAlreadyExists(t *testing.T) {
	t.Run("fatal after checking it out", func(t *testing.T) {
		f := newFixture(t)
		mem := repo.NewMemory(f.repo, "master", "cow-proximity").AddTag("clean-start")

		_, err := Run(runOpts(f, mem, "none", "cow-proximity"))
		require.Error(t, err)
		assert.Equal(t, hwerrors.BranchAlreadyExists, hwerrors.GetKind(err))
		assert.Equal(t, "cow-proximity", mem.Current())
		assert.Empty(t, mem.Commits())
		assert.Empty(t, listFiles(t, f.repo))
	})

	t.Run("warning with --warn-if-exists", func(t *testing.T) {
		f := newFixture(t)
		mem := repo.NewMemory(f.repo, "master", "cow-proximity").AddTag("clean-start")
		log, buf := testLogger()

		opts := runOpts(f, mem, "none", "cow-proximity")
		opts.WarnIfExists = true
		opts.Log = log
		res, err := Run(opts)
		require.NoError(t, err)
		assert.True(t, res.Existed)
		assert.Contains(t, buf.String(), "Branch cow-proximity already exists, continuing anyway.")
		require.Len(t, mem.Commits(), 1)
	})
}

func TestRun_BaseBranchNotFound(t *testing.T) {
	f := newFixture(t)
	mem := repo.NewMemory(f.repo, "main").AddTag("clean-start")

	_, err := Run(runOpts(f, mem, "none", "cow-proximity"))
	require.Error(t, err)
	assert.Equal(t, hwerrors.BaseBranchNotFound, hwerrors.GetKind(err))

	opts := runOpts(f, mem, "none", "cow-proximity")
	opts.Base = "main"
	_, err = Run(opts)
	require.NoError(t, err)
	assert.Equal(t, "main", mem.BaseOf("cow-proximity"))
}

func TestRun_NoInstallNoCommit(t *testing.T) {
	f := newFixture(t)
	withTemplates(t, f)
	f.bankFile(t, "All/cow-proximity.pdf", "%PDF")
	mem := repo.NewMemory(f.repo, "master").AddTag("clean-start")

	opts := runOpts(f, mem, "python", "cow-proximity")
	opts.NoInstall = true
	opts.NoCommit = true
	res, err := Run(opts)
	require.NoError(t, err)

	assert.Empty(t, res.Installed)
	assert.Equal(t, []string{".gitkeep"}, listFiles(t, filepath.Join(f.repo, "cow-proximity")))
	assert.Empty(t, mem.Commits())
}

func TestRun_TemplateNotFound(t *testing.T) {
	f := newFixture(t)
	mem := repo.NewMemory(f.repo, "master").AddTag("clean-start")

	_, err := Run(runOpts(f, mem, "r", "cow-proximity"))
	require.Error(t, err)
	assert.Equal(t, hwerrors.TemplateNotFound, hwerrors.GetKind(err))
	assert.Empty(t, mem.Commits())
}

func TestRun_ExplicitProblemBank(t *testing.T) {
	f := newFixture(t)
	other := filepath.Join(f.base, "banks", "s650")
	f.write(t, filepath.Join(other, ManifestFile), "assignment\nonly-here\n")
	mem := repo.NewMemory(f.repo, "master").AddTag("clean-start")

	opts := runOpts(f, mem, "none", "only-here")
	opts.Problems = other
	res, err := Run(opts)
	require.NoError(t, err)
	assert.Equal(t, "only-here", res.Names.Branch)
}
