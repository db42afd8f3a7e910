// Package config loads the optional new-homework configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// EnvConfigPath overrides the config file location.
	EnvConfigPath = "NEW_HOMEWORK_CONFIG"

	appDir   = "new-homework"
	fileName = "config.yml"
)

// Config holds user preferences. Every field has a usable default.
type Config struct {
	// GuessDirs are searched for assignments-* repositories when
	// guessing. Relative entries are taken relative to the home directory.
	GuessDirs []string `yaml:"guess_dirs"`
	// ProblemBank is the default problem bank path. Empty means the
	// problem-bank directory next to the repository.
	ProblemBank string `yaml:"problem_bank,omitempty"`
	// DefaultBase is the branch new assignments start from.
	DefaultBase string `yaml:"default_base"`
	// CleanStartRef must exist in a repository that passes strict checks.
	CleanStartRef string `yaml:"clean_start_ref"`
	// RepoPrefix is the directory name prefix of assignment repositories.
	RepoPrefix string `yaml:"repo_prefix"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		GuessDirs:     []string{"s750", "s650"},
		DefaultBase:   "master",
		CleanStartRef: "clean-start",
		RepoPrefix:    "assignments-",
	}
}

// Path returns the config file location: explicit, then
// $NEW_HOMEWORK_CONFIG, then $XDG_CONFIG_HOME/new-homework/config.yml,
// then ~/.config/new-homework/config.yml.
func Path(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p, nil
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appDir, fileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".config", appDir, fileName), nil
}

// Load reads the config at path over the defaults. A missing file is
// not an error unless the path was given explicitly.
func Load(path string, explicit bool) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	cfg.fillDefaults()
	return cfg, nil
}

// fillDefaults restores defaults for keys present but left empty.
func (c *Config) fillDefaults() {
	d := Default()
	if c.DefaultBase == "" {
		c.DefaultBase = d.DefaultBase
	}
	if c.CleanStartRef == "" {
		c.CleanStartRef = d.CleanStartRef
	}
	if c.RepoPrefix == "" {
		c.RepoPrefix = d.RepoPrefix
	}
}

// ResolveGuessDirs returns GuessDirs as absolute paths under home.
func (c *Config) ResolveGuessDirs(home string) []string {
	dirs := make([]string, 0, len(c.GuessDirs))
	for _, d := range c.GuessDirs {
		if filepath.IsAbs(d) {
			dirs = append(dirs, filepath.Clean(d))
			continue
		}
		if home == "" {
			continue
		}
		dirs = append(dirs, filepath.Join(home, d))
	}
	return dirs
}
