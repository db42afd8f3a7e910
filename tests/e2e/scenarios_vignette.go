package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mattsolo1/grove-tend/pkg/command"
	"github.com/mattsolo1/grove-tend/pkg/harness"
	"github.com/mattsolo1/grove-tend/pkg/verify"
)

// VignetteScenario walks a three part vignette: the first exercise is
// committed, sequels branch off the previous exercise, and a fourth
// exercise is refused.
func VignetteScenario() *harness.Scenario {
	return &harness.Scenario{
		Name:        "new-homework-vignette",
		Description: "Creates numbered vignette branches and refuses exercises past the last part",
		Tags:        []string{"new-homework", "vignette"},
		Steps: []harness.Step{
			harness.NewStep("Setup assignments repository and problem bank", setupWorkspace),
			harness.NewStep("First exercise is committed on intro-loops-1", func(ctx *harness.Context) error {
				result, err := runNewHomework(ctx, "r", "intro-loops")
				if err != nil {
					return err
				}
				repoDir := ctx.Get("repo").(string)
				branch, err := currentBranch(ctx)
				if err != nil {
					return err
				}
				log := command.New("git", "log", "-1", "--format=%s").Dir(repoDir).Run()
				return ctx.Verify(func(v *verify.Collector) {
					v.True("exit code is 0", result.ExitCode == 0)
					v.True("on intro-loops-1", branch == "intro-loops-1")
					v.True("vignette message", strings.Contains(result.Stderr, "Switched to branch 'intro-loops-1' for vignette 'intro-loops-1'."))
					v.True("R template installed", fileExists(filepath.Join(repoDir, "intro-loops-1", "intro_loops.R")))
					v.True("committed", strings.TrimSpace(log.Stdout) == "intro-loops-1")
				})
			}),
			harness.NewStep("Second exercise is a sequel without a commit", func(ctx *harness.Context) error {
				repoDir := ctx.Get("repo").(string)
				before := command.New("git", "rev-parse", "HEAD").Dir(repoDir).Run()

				result, err := runNewHomework(ctx, "--no-install", "r", "intro-loops")
				if err != nil {
					return err
				}
				after := command.New("git", "rev-parse", "HEAD").Dir(repoDir).Run()
				branch, err := currentBranch(ctx)
				if err != nil {
					return err
				}
				return ctx.Verify(func(v *verify.Collector) {
					v.True("exit code is 0", result.ExitCode == 0)
					v.True("on intro-loops-2", branch == "intro-loops-2")
					v.True("no new commit", before.Stdout == after.Stdout)
					v.True("no sequel directory", !fileExists(filepath.Join(repoDir, "intro-loops-2")))
				})
			}),
			harness.NewStep("Skip ahead with --suffix", func(ctx *harness.Context) error {
				result, err := runNewHomework(ctx, "--suffix", "2", "none", "intro-loops")
				if err != nil {
					return err
				}
				if result.ExitCode != 1 || !strings.Contains(result.Stderr, "must exceed max branch suffix 2") {
					return fmt.Errorf("expected suffix failure, got exit %d:\n%s", result.ExitCode, result.Stderr)
				}

				result, err = runNewHomework(ctx, "--suffix", "3", "none", "intro-loops")
				if err != nil {
					return err
				}
				branch, err := currentBranch(ctx)
				if err != nil {
					return err
				}
				return ctx.Verify(func(v *verify.Collector) {
					v.True("exit code is 0", result.ExitCode == 0)
					v.True("on intro-loops-3", branch == "intro-loops-3")
				})
			}),
			harness.NewStep("A fourth exercise is out of range", func(ctx *harness.Context) error {
				result, err := runNewHomework(ctx, "none", "intro-loops")
				if err != nil {
					return err
				}
				return ctx.Verify(func(v *verify.Collector) {
					v.True("exit code is 1", result.ExitCode == 1)
					v.True("reports the range", strings.Contains(result.Stderr, "intro-loops"))
				})
			}),
		},
	}
}
