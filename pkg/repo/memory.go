package repo

import (
	"fmt"
	"sort"
)

// MemoryCommit is a commit recorded by a Memory repository.
type MemoryCommit struct {
	Branch  string
	Message string
	Paths   []string
}

// Memory is an in-memory Repository for tests. It tracks refs, the
// current branch, the index and commits; it never touches Root.
type Memory struct {
	root     string
	branches map[string]string // branch -> branch it was created from
	tags     map[string]bool
	current  string
	dirty    bool
	staged   []string
	commits  []MemoryCommit

	// StageErr, when set, is returned by Stage.
	StageErr error
}

// NewMemory returns a repository rooted at root with the given local
// branches. The first branch, if any, is checked out.
func NewMemory(root string, branches ...string) *Memory {
	m := &Memory{
		root:     root,
		branches: make(map[string]string),
		tags:     make(map[string]bool),
	}
	for _, b := range branches {
		m.branches[b] = ""
	}
	if len(branches) > 0 {
		m.current = branches[0]
	}
	return m
}

// AddTag creates a tag.
func (m *Memory) AddTag(name string) *Memory {
	m.tags[name] = true
	return m
}

// SetDirty marks the working tree as having uncommitted changes.
func (m *Memory) SetDirty(dirty bool) *Memory {
	m.dirty = dirty
	return m
}

// Current returns the checked out branch.
func (m *Memory) Current() string {
	return m.current
}

// BaseOf returns the branch name was created from by CreateBranch.
func (m *Memory) BaseOf(name string) string {
	return m.branches[name]
}

// Commits returns the recorded commits in order.
func (m *Memory) Commits() []MemoryCommit {
	return m.commits
}

func (m *Memory) Root() string {
	return m.root
}

func (m *Memory) HasBranch(name string) bool {
	_, ok := m.branches[name]
	return ok
}

func (m *Memory) HasRef(name string) bool {
	_, ok := m.branches[name]
	return ok || m.tags[name]
}

func (m *Memory) Branches() ([]string, error) {
	names := make([]string, 0, len(m.branches))
	for b := range m.branches {
		names = append(names, b)
	}
	sort.Strings(names)
	return names, nil
}

func (m *Memory) IsDirty() (bool, error) {
	return m.dirty, nil
}

func (m *Memory) Checkout(branch string) error {
	if _, ok := m.branches[branch]; !ok {
		return fmt.Errorf("checking out %s: reference not found", branch)
	}
	m.current = branch
	return nil
}

func (m *Memory) CreateBranch(base, name string) error {
	if !m.HasRef(base) {
		return fmt.Errorf("resolving %s: reference not found", base)
	}
	if _, ok := m.branches[name]; ok {
		return fmt.Errorf("creating branch %s: already exists", name)
	}
	m.branches[name] = base
	m.current = name
	return nil
}

func (m *Memory) Stage(paths ...string) error {
	if len(paths) == 0 {
		return nil
	}
	if m.StageErr != nil {
		return &StageError{Path: paths[0], Err: m.StageErr}
	}
	m.staged = append(m.staged, paths...)
	return nil
}

func (m *Memory) Commit(message string) error {
	if m.current == "" {
		return fmt.Errorf("committing: no branch checked out")
	}
	m.commits = append(m.commits, MemoryCommit{
		Branch:  m.current,
		Message: message,
		Paths:   m.staged,
	})
	m.staged = nil
	return nil
}
