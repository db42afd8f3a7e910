package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/new-homework/pkg/config"
	hwerrors "github.com/mattsolo1/new-homework/pkg/errors"
	"github.com/mattsolo1/new-homework/pkg/homework"
)

// Version is reported by --version; release builds set it with -ldflags.
var Version = "0.5.0"

const longHelp = `Install a new homework assignment in your assignments repository by
creating a branch for it off the correct base, creating a directory for the
assignment, installing the problem description, data and a language template
into that directory, and committing the result to the new branch.

Run this command from within the assignments repository, with the problem
bank checked out as the sibling directory problem-bank. The language is r,
python, or none to install no template. The assignment name is spelled as in
the problem bank, like test-this or cow-proximity.

Vignettes get one branch per exercise: intro-loops-1, intro-loops-2, and so
on, each started from the previous one. Use --suffix to skip ahead to a
later exercise, and --no-install to avoid reinstalling the description and
resource files in later parts.

The command fails if the assignment branch already exists unless
--warn-if-exists is given.`

type rootOptions struct {
	base         string
	guess        bool
	noCommit     bool
	noInstall    bool
	problems     string
	repo         string
	verbose      bool
	warnIfExists bool
	suffix       int
	skipChecks   bool
	configPath   string
}

// NewRootCmd creates the new-homework command.
func NewRootCmd() *cobra.Command {
	var opts rootOptions

	cmd := &cobra.Command{
		Use:           "new-homework [flags] <language> <assignment>",
		Short:         "Start a new homework assignment",
		Long:          longHelp,
		Args:          cobra.ExactArgs(2),
		Version:       Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNewHomework(cmd.ErrOrStderr(), opts, args[0], args[1])
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.base, "base", "b", "", "Starting point for a stand-alone assignment branch (default master)")
	f.BoolVarP(&opts.guess, "guess-repo", "g", false, "If no repo is given, look for one nearby or in a few likely directories below HOME")
	f.BoolVar(&opts.noCommit, "no-commit", false, "Skip initial commit on assignment branch")
	f.BoolVar(&opts.noInstall, "no-install", false, "Skip installation of assignment files")
	f.StringVarP(&opts.problems, "problems", "p", "", "Path of problem-bank directory (default ../problem-bank from the assignments repo)")
	f.StringVarP(&opts.repo, "repo", "r", "", "Path to assignments repository (default: guessed with -g, else the current directory)")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "Log actions taken to standard error")
	f.BoolVarP(&opts.warnIfExists, "warn-if-exists", "w", false, "Warn without failure if the assignment branch already exists")
	f.IntVarP(&opts.suffix, "suffix", "x", 0, "Vignette exercise number to create; must exceed every existing one")
	f.BoolVar(&opts.skipChecks, "skip-checks", false, "Skip the strict assignments repository check")
	f.StringVar(&opts.configPath, "config", "", "Path to config file")

	return cmd
}

func runNewHomework(stderr io.Writer, opts rootOptions, language, assignment string) error {
	logger := newLogger(stderr, opts.verbose)

	cfgPath, err := config.Path(opts.configPath)
	if err != nil {
		return err
	}
	cfg, err := config.Load(cfgPath, opts.configPath != "")
	if err != nil {
		return err
	}
	logger.WithField("path", cfgPath).Debug("Loaded config")

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}
	// Guess dirs under HOME are optional; without HOME only absolute ones apply.
	home, _ := os.UserHomeDir()

	problems := opts.problems
	if problems == "" {
		problems = cfg.ProblemBank
	}
	if opts.suffix < 0 {
		return hwerrors.Newf(hwerrors.InvalidSuffix, "--suffix must be a positive exercise number, got %d", opts.suffix)
	}

	res, err := homework.Run(homework.Options{
		Language:      language,
		Assignment:    assignment,
		Base:          opts.base,
		DefaultBase:   cfg.DefaultBase,
		Suffix:        opts.suffix,
		RepoPath:      opts.repo,
		Guess:         opts.guess,
		Problems:      problems,
		NoCommit:      opts.noCommit,
		NoInstall:     opts.noInstall,
		WarnIfExists:  opts.warnIfExists,
		SkipChecks:    opts.skipChecks,
		Cwd:           cwd,
		GuessDirs:     cfg.ResolveGuessDirs(home),
		RepoPrefix:    cfg.RepoPrefix,
		CleanStartRef: cfg.CleanStartRef,
		Log:           logger,
	})
	if err != nil {
		return err
	}

	printClosing(stderr, res, cwd)
	return nil
}

// printClosing tells the user where the new assignment lives.
func printClosing(w io.Writer, res *homework.Result, cwd string) {
	st := newStyles(w)
	dir := filepath.Join(res.Root, res.Names.Dir)
	if rel, err := filepath.Rel(cwd, dir); err == nil {
		dir = rel
	}

	if res.Assignment.Vignette {
		fmt.Fprintf(w, "Switched to branch '%s' for vignette '%s'.\n", st.branch.Render(res.Names.Branch), res.Names.Dir)
	} else {
		fmt.Fprintf(w, "Switched to branch %s for assignment %s.\n", st.branch.Render(res.Names.Branch), res.Names.Dir)
	}
	fmt.Fprintf(w, "Type 'cd %s' at the shell prompt, and you are ready to work!\n", dir)
}

// PrintError writes err to w as one or more tagged lines.
func PrintError(w io.Writer, err error) {
	hwerrors.Print(w, ErrorPrefix(w), err)
}
