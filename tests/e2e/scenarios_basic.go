package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mattsolo1/grove-tend/pkg/command"
	"github.com/mattsolo1/grove-tend/pkg/fs"
	"github.com/mattsolo1/grove-tend/pkg/harness"
	"github.com/mattsolo1/grove-tend/pkg/verify"
)

// StandAloneAssignmentScenario installs a stand-alone assignment and
// checks branch, files and commit.
func StandAloneAssignmentScenario() *harness.Scenario {
	return &harness.Scenario{
		Name:        "new-homework-stand-alone",
		Description: "Creates a branch, installs problem files and a python template, then commits",
		Tags:        []string{"new-homework", "basic"},
		Steps: []harness.Step{
			harness.NewStep("Setup assignments repository and problem bank", setupWorkspace),
			harness.NewStep("Run 'new-homework python cow-proximity'", func(ctx *harness.Context) error {
				result, err := runNewHomework(ctx, "python", "cow-proximity")
				if err != nil {
					return err
				}
				if result.ExitCode != 0 {
					return fmt.Errorf("new-homework failed with exit code %d: %s", result.ExitCode, result.Stderr)
				}
				if !strings.Contains(result.Stderr, "Type 'cd cow-proximity' at the shell prompt") {
					return fmt.Errorf("closing message missing, got:\n%s", result.Stderr)
				}
				return nil
			}),
			harness.NewStep("Verify branch, files and commit", func(ctx *harness.Context) error {
				repoDir := ctx.Get("repo").(string)
				dir := filepath.Join(repoDir, "cow-proximity")

				branch, err := currentBranch(ctx)
				if err != nil {
					return err
				}
				template, err := fs.ReadString(filepath.Join(dir, "cow_proximity.py"))
				if err != nil {
					return fmt.Errorf("template not installed: %w", err)
				}
				log := command.New("git", "log", "-1", "--format=%s").Dir(repoDir).Run()
				status := command.New("git", "status", "--porcelain").Dir(repoDir).Run()

				return ctx.Verify(func(v *verify.Collector) {
					v.True("on branch cow-proximity", branch == "cow-proximity")
					v.True("placeholder installed", fileExists(filepath.Join(dir, ".gitkeep")))
					v.True("description installed", fileExists(filepath.Join(dir, "cow-proximity.pdf")))
					v.True("data installed", fileExists(filepath.Join(dir, "Data", "cows.csv")))
					v.True("template name substituted", strings.Contains(template, "def cow_proximity():"))
					v.True("commit message is the branch name", strings.TrimSpace(log.Stdout) == "cow-proximity")
					v.True("working tree is clean", strings.TrimSpace(status.Stdout) == "")
				})
			}),
			harness.NewStep("Re-running fails and leaves the branch checked out", func(ctx *harness.Context) error {
				result, err := runNewHomework(ctx, "python", "cow-proximity")
				if err != nil {
					return err
				}
				branch, err := currentBranch(ctx)
				if err != nil {
					return err
				}
				return ctx.Verify(func(v *verify.Collector) {
					v.True("exit code is 1", result.ExitCode == 1)
					v.True("reports existing branch", strings.Contains(result.Stderr, "[Error] You already have a branch named cow-proximity."))
					v.True("still on cow-proximity", branch == "cow-proximity")
				})
			}),
			harness.NewStep("--warn-if-exists continues with a warning", func(ctx *harness.Context) error {
				result, err := runNewHomework(ctx, "--warn-if-exists", "--no-install", "--no-commit", "python", "cow-proximity")
				if err != nil {
					return err
				}
				return ctx.Verify(func(v *verify.Collector) {
					v.True("exit code is 0", result.ExitCode == 0)
					v.True("warns about the branch", strings.Contains(result.Stderr, "Warning: Branch cow-proximity already exists, continuing anyway."))
					v.True("warns about the directory", strings.Contains(result.Stderr, "Warning: directory cow-proximity already exists"))
				})
			}),
		},
	}
}
