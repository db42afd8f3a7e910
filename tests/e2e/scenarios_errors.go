package main

import (
	"path/filepath"
	"strings"

	"github.com/mattsolo1/grove-tend/pkg/command"
	"github.com/mattsolo1/grove-tend/pkg/fs"
	"github.com/mattsolo1/grove-tend/pkg/harness"
	"github.com/mattsolo1/grove-tend/pkg/verify"
)

// DirtyWorkingTreeScenario refuses to branch while tracked files have
// uncommitted changes.
func DirtyWorkingTreeScenario() *harness.Scenario {
	return &harness.Scenario{
		Name:        "new-homework-dirty-tree",
		Description: "Fails without creating a branch when the working tree has uncommitted changes",
		Tags:        []string{"new-homework", "errors"},
		Steps: []harness.Step{
			harness.NewStep("Setup assignments repository and problem bank", setupWorkspace),
			harness.NewStep("Modify a tracked file", func(ctx *harness.Context) error {
				repoDir := ctx.Get("repo").(string)
				return fs.WriteString(filepath.Join(repoDir, "README.md"), "# Assignments\n\nwork in progress\n")
			}),
			harness.NewStep("Run new-homework and expect failure", func(ctx *harness.Context) error {
				result, err := runNewHomework(ctx, "python", "cow-proximity")
				if err != nil {
					return err
				}
				repoDir := ctx.Get("repo").(string)
				branches := command.New("git", "branch", "--list", "cow-proximity").Dir(repoDir).Run()
				return ctx.Verify(func(v *verify.Collector) {
					v.True("exit code is 1", result.ExitCode == 1)
					v.True("reports uncommitted changes", strings.Contains(result.Stderr, "[Error] Your repository has uncommitted changes."))
					v.True("no branch created", strings.TrimSpace(branches.Stdout) == "")
				})
			}),
		},
	}
}

// UnknownAssignmentScenario checks the problem bank lookup failure.
func UnknownAssignmentScenario() *harness.Scenario {
	return &harness.Scenario{
		Name:        "new-homework-unknown-assignment",
		Description: "Fails with a hint when the assignment is not in the problem bank",
		Tags:        []string{"new-homework", "errors"},
		Steps: []harness.Step{
			harness.NewStep("Setup assignments repository and problem bank", setupWorkspace),
			harness.NewStep("Run new-homework with a misspelled name", func(ctx *harness.Context) error {
				result, err := runNewHomework(ctx, "python", "cow-proximty")
				if err != nil {
					return err
				}
				return ctx.Verify(func(v *verify.Collector) {
					v.True("exit code is 1", result.ExitCode == 1)
					v.True("names the assignment", strings.Contains(result.Stderr, "Cannot find an assignment named 'cow-proximty' in the problem bank."))
					v.True("hints at spelling", strings.Contains(result.Stderr, "spelled exactly as in the problem-bank repo"))
				})
			}),
		},
	}
}

// StrictValidationScenario requires the clean-start tag unless checks
// are skipped.
func StrictValidationScenario() *harness.Scenario {
	return &harness.Scenario{
		Name:        "new-homework-strict-validation",
		Description: "Rejects a repository without a clean-start ref and accepts it with --skip-checks",
		Tags:        []string{"new-homework", "errors"},
		Steps: []harness.Step{
			harness.NewStep("Setup assignments repository and problem bank", setupWorkspace),
			harness.NewStep("Delete the clean-start tag", func(ctx *harness.Context) error {
				repoDir := ctx.Get("repo").(string)
				return command.New("git", "tag", "-d", "clean-start").Dir(repoDir).Run().Error
			}),
			harness.NewStep("Strict checks fail, --skip-checks passes", func(ctx *harness.Context) error {
				strict, err := runNewHomework(ctx, "none", "cow-proximity")
				if err != nil {
					return err
				}
				skipped, err := runNewHomework(ctx, "--skip-checks", "none", "cow-proximity")
				if err != nil {
					return err
				}
				return ctx.Verify(func(v *verify.Collector) {
					v.True("strict run fails", strict.ExitCode == 1)
					v.True("strict run names the ref", strings.Contains(strict.Stderr, "clean-start"))
					v.True("skipped run succeeds", skipped.ExitCode == 0)
				})
			}),
		},
	}
}
