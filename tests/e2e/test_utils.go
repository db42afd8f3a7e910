package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattsolo1/grove-tend/pkg/command"
	"github.com/mattsolo1/grove-tend/pkg/fs"
	"github.com/mattsolo1/grove-tend/pkg/git"
	"github.com/mattsolo1/grove-tend/pkg/harness"
)

// EnvBinary overrides the location of the binary under test.
const EnvBinary = "NEW_HOMEWORK_BIN"

// FindProjectBinary returns $NEW_HOMEWORK_BIN or bin/new-homework below
// the directory the runner was started from.
func FindProjectBinary() (string, error) {
	if p := os.Getenv(EnvBinary); p != "" {
		return p, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("could not get working directory: %w", err)
	}
	bin := filepath.Join(wd, "bin", "new-homework")
	if _, err := os.Stat(bin); err != nil {
		return "", fmt.Errorf("binary not found at %s (build it or set %s): %w", bin, EnvBinary, err)
	}
	return bin, nil
}

// setupWorkspace lays out an assignments repository with a clean-start
// tag next to a problem bank holding cow-proximity and a three part
// intro-loops vignette. The repository path is stored as "repo".
func setupWorkspace(ctx *harness.Context) error {
	repoDir := filepath.Join(ctx.RootDir, "assignments-e2e")
	bank := filepath.Join(ctx.RootDir, "problem-bank")

	files := map[string]string{
		filepath.Join(bank, "points.csv"):                        "assignment,points\ncow-proximity,10\nintro-loops,2\nintro-loops,2\nintro-loops,2\n",
		filepath.Join(bank, "All", "cow-proximity.pdf"):          "%PDF-1.4\n",
		filepath.Join(bank, "Data", "cow-proximity", "cows.csv"): "id,x,y\n1,0,0\n",
		filepath.Join(bank, ".skel", "python", "ASSIGN.py"):      "def ASSIGN():\n    pass\n",
		filepath.Join(bank, ".skel", "python", "test_ASSIGN.py"): "from ASSIGN import ASSIGN\n",
		filepath.Join(bank, ".skel", "r", "ASSIGN.R"):            "ASSIGN <- function() {}\n",
		filepath.Join(repoDir, "README.md"):                      "# Assignments\n",
	}
	for path, content := range files {
		if err := fs.WriteString(path, content); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}

	git.Init(repoDir)
	git.SetupTestConfig(repoDir)
	git.Add(repoDir, "README.md")
	git.Commit(repoDir, "Initial commit")

	for _, args := range [][]string{
		{"checkout", "-B", "master"},
		{"tag", "clean-start"},
	} {
		result := command.New("git", args...).Dir(repoDir).Run()
		if result.Error != nil {
			return fmt.Errorf("git %s failed: %w\n%s", strings.Join(args, " "), result.Error, result.Stderr)
		}
	}

	ctx.Set("repo", repoDir)
	return nil
}

// cliResult is the outcome of one new-homework invocation.
type cliResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// runNewHomework runs the binary inside the assignments repository.
func runNewHomework(ctx *harness.Context, args ...string) (cliResult, error) {
	bin, err := FindProjectBinary()
	if err != nil {
		return cliResult{}, err
	}
	repoDir := ctx.Get("repo").(string)
	cmd := command.New(bin, args...).Dir(repoDir)
	result := cmd.Run()
	ctx.ShowCommandOutput(cmd.String(), result.Stdout, result.Stderr)
	return cliResult{Stdout: result.Stdout, Stderr: result.Stderr, ExitCode: result.ExitCode}, nil
}

// currentBranch returns the branch checked out in the repository.
func currentBranch(ctx *harness.Context) (string, error) {
	repoDir := ctx.Get("repo").(string)
	result := command.New("git", "rev-parse", "--abbrev-ref", "HEAD").Dir(repoDir).Run()
	if result.Error != nil {
		return "", fmt.Errorf("git rev-parse failed: %w", result.Error)
	}
	return strings.TrimSpace(result.Stdout), nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
