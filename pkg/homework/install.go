package homework

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	hwerrors "github.com/mattsolo1/new-homework/pkg/errors"
)

const (
	// PlaceholderFile keeps an otherwise empty assignment directory tracked.
	PlaceholderFile = ".gitkeep"
	// TemplateToken is replaced by the safe assignment name in templates.
	TemplateToken = "ASSIGN"
	// NoLanguage skips template installation.
	NoLanguage = "none"
)

// Installer writes assignment files into a repository working tree.
type Installer struct {
	Root string // Repository root
	Bank ProblemBank
	Log  logrus.FieldLogger
}

// MakeDirectory creates dir under the repository root and writes the
// placeholder file into it. An existing directory is only a warning.
func (in *Installer) MakeDirectory(dir string) error {
	path := filepath.Join(in.Root, dir)

	err := os.Mkdir(path, 0755)
	switch {
	case err == nil:
		in.Log.Debugf("Creating directory for work on %s", dir)
	case errors.Is(err, fs.ErrExist):
		in.Log.Warnf("directory %s already exists; continuing anyway...", dir)
	default:
		return hwerrors.Wrap(hwerrors.InstallFailed,
			fmt.Sprintf("Cannot create homework directory %s", dir), err)
	}

	if err := os.WriteFile(filepath.Join(path, PlaceholderFile), []byte("\n"), 0644); err != nil {
		return hwerrors.Wrap(hwerrors.InstallFailed, "Cannot write file in homework directory", err)
	}
	return nil
}

// InstallProblem copies the description PDF and resource directories for
// assignment name into dir. Missing sources are warnings. It returns the
// top-level paths it installed, relative to the repository root.
func (in *Installer) InstallProblem(name, dir string) []string {
	if !in.Bank.Available() {
		in.Log.Warn("Missing problem bank, skipping file install.")
		in.Log.Warn("To install later, run with --warn-if-exists and, if appropriate, " +
			"use the --problems option to specify location of the problem bank.")
		return nil
	}

	var installed []string
	hwDir := filepath.Join(in.Root, dir)

	pdf := name + ".pdf"
	if err := copyFile(filepath.Join(in.Bank.Path, DescriptionDir, pdf), filepath.Join(hwDir, pdf)); err != nil {
		in.Log.Warnf("Could not install PDF file from problem bank: %v", err)
	} else {
		installed = append(installed, filepath.Join(dir, pdf))
	}

	for _, kind := range ResourceKinds {
		src := filepath.Join(in.Bank.Path, kind, name)
		dest := filepath.Join(hwDir, kind)
		if !isDir(src) || exists(dest) {
			continue
		}
		failures := copyTree(src, dest)
		for _, f := range failures {
			in.Log.Warnf("could not copy %s to %s (%v)", f.src, f.dest, f.err)
		}
		if len(failures) == 0 {
			installed = append(installed, filepath.Join(dir, kind))
		}
	}
	return installed
}

// SafeName turns an assignment name into a valid identifier fragment for
// source and test file names.
func SafeName(name string) string {
	return strings.TrimSpace(strings.ReplaceAll(name, "-", "_"))
}

// TemplateDirs lists, in priority order, where a template for language
// may live in the bank.
func (b ProblemBank) TemplateDirs(name, language string) []string {
	lang := strings.ToLower(language)
	return []string{
		filepath.Join(b.Path, TemplateDir, name, lang),
		filepath.Join(b.Path, DefaultTemplateDir, lang),
	}
}

// InstallTemplate copies the first template found for language into dir,
// replacing TemplateToken in file names and contents. Files from nested
// template directories land directly in dir.
func (in *Installer) InstallTemplate(language, name, dir string) error {
	if strings.EqualFold(language, NoLanguage) {
		return nil
	}

	safe := SafeName(name)
	for _, tdir := range in.Bank.TemplateDirs(name, language) {
		if !exists(tdir) {
			continue
		}
		in.Log.WithField("template", tdir).Debug("Installing template")
		return filepath.WalkDir(tdir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return hwerrors.Wrap(hwerrors.InstallFailed, "Cannot read template", err)
			}
			if d.IsDir() {
				return nil
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return hwerrors.Wrap(hwerrors.InstallFailed, "Cannot read template", err)
			}
			target := filepath.Join(in.Root, dir, strings.ReplaceAll(d.Name(), TemplateToken, safe))
			content := strings.ReplaceAll(string(data), TemplateToken, safe)
			if err := os.WriteFile(target, []byte(content), 0644); err != nil {
				return hwerrors.Wrap(hwerrors.InstallFailed, "Cannot write template file", err)
			}
			return nil
		})
	}

	return hwerrors.New(hwerrors.TemplateNotFound,
		fmt.Sprintf("No template exists for --language=%s", language))
}

type copyFailure struct {
	src, dest string
	err       error
}

// copyTree copies src into a new directory dest, carrying on past
// individual failures and returning them.
func copyTree(src, dest string) []copyFailure {
	var failures []copyFailure
	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		rel, relErr := filepath.Rel(src, path)
		if relErr != nil {
			return relErr
		}
		target := filepath.Join(dest, rel)
		if err != nil {
			failures = append(failures, copyFailure{path, target, err})
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			info, err := d.Info()
			mode := fs.FileMode(0755)
			if err == nil {
				mode = info.Mode().Perm()
			}
			if err := os.MkdirAll(target, mode); err != nil {
				failures = append(failures, copyFailure{path, target, err})
				return fs.SkipDir
			}
			return nil
		}

		if err := copyFile(path, target); err != nil {
			failures = append(failures, copyFailure{path, target, err})
		}
		return nil
	})
	if err != nil {
		failures = append(failures, copyFailure{src, dest, err})
	}
	return failures
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", src)
	}

	out, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
