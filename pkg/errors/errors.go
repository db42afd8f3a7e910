// Package errors defines the failure kinds reported by new-homework.
package errors

import (
	"errors"
	"fmt"
	"io"
)

// Kind identifies a class of failure.
type Kind string

const (
	RepositoryNotFound     Kind = "RepositoryNotFound"
	StrictValidationFailed Kind = "StrictValidationFailed"
	ProblemBankNotFound    Kind = "ProblemBankNotFound"
	AssignmentNotFound     Kind = "AssignmentNotFound"
	InvalidSuffix          Kind = "InvalidSuffix"
	ExerciseOutOfRange     Kind = "ExerciseOutOfRange"
	BaseBranchNotFound     Kind = "BaseBranchNotFound"
	BranchAlreadyExists    Kind = "BranchAlreadyExists"
	DirtyWorkingTree       Kind = "DirtyWorkingTree"
	StageFailed            Kind = "StageFailed"
	TemplateNotFound       Kind = "TemplateNotFound"
	InstallFailed          Kind = "InstallFailed"
	Git                    Kind = "Git"
)

// Error is a fatal failure. Msg is the headline; Hints are printed on
// the lines following it.
type Error struct {
	Kind  Kind
	Msg   string
	Hints []string
	Cause error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Lines returns the headline followed by the hints.
func (e *Error) Lines() []string {
	lines := make([]string, 0, 1+len(e.Hints))
	msg := e.Msg
	if e.Cause != nil {
		msg = fmt.Sprintf("%s (%v)", e.Msg, e.Cause)
	}
	lines = append(lines, msg)
	return append(lines, e.Hints...)
}

// New creates an Error of the given kind.
func New(kind Kind, msg string, hints ...string) error {
	return &Error{Kind: kind, Msg: msg, Hints: hints}
}

// Newf creates an Error with a formatted message.
func Newf(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error of the given kind around cause.
func Wrap(kind Kind, msg string, cause error, hints ...string) error {
	return &Error{Kind: kind, Msg: msg, Cause: cause, Hints: hints}
}

// GetKind returns the kind of err, or "" if err is not an *Error.
func GetKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Is reports whether err is an *Error of the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && GetKind(err) == kind
}

// ExitCode returns 0 for nil and 1 for any failure.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return 1
}

// Print writes each line of err to w, every line carrying prefix.
func Print(w io.Writer, prefix string, err error) {
	if err == nil {
		return
	}
	var e *Error
	if !errors.As(err, &e) {
		fmt.Fprintf(w, "%s %s\n", prefix, err.Error())
		return
	}
	for _, line := range e.Lines() {
		fmt.Fprintf(w, "%s %s\n", prefix, line)
	}
}
