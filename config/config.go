// © 2026 Hookrun Authors. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package config defines the hook configuration file schema and its
// validation rules.
//
// A repository declares its checks in a single YAML file (by default
// [DefaultFile]) that is re-read in full on every run. Declarations are
// immutable once parsed.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/hookrun/hookrun/filetype"
)

// DefaultFile is the configuration file name looked up at the repository
// root when no explicit path is given.
const DefaultFile = ".hookrun.yaml"

// Stages at which hooks can be triggered.
const (
	StageCommit = "commit"
	StagePush   = "push"
)

// Execution environment tags.
const (
	// LangSystem resolves the entry through PATH.
	LangSystem = "system"
	// LangScript resolves the entry relative to the repository root.
	LangScript = "script"
)

// RepoLocal is the only supported source provider: hooks run from the
// local environment rather than a fetched package.
const RepoLocal = "local"

// Config is the top-level hook configuration.
type Config struct {
	// DefaultStages applies to hooks that do not declare their own
	// stages. Empty means all stages.
	DefaultStages []string `yaml:"default_stages"`
	// Exclude is a global path-exclusion regular expression.
	Exclude string `yaml:"exclude"`
	// Repos holds the hook source groups.
	Repos []Source `yaml:"repos"`
}

// Source is a group of hooks from a single provider.
type Source struct {
	Repo  string `yaml:"repo"`
	Hooks []Hook `yaml:"hooks"`
}

// Hook declares a single named check run against a subset of staged files.
type Hook struct {
	// ID is the unique short name of the hook.
	ID string `yaml:"id"`
	// Name is the display name shown while running.
	Name string `yaml:"name"`
	// Entry is the command to invoke.
	Entry string `yaml:"entry"`
	// Args are extra arguments placed before the file names.
	Args []string `yaml:"args"`
	// Language is the execution environment tag.
	Language string `yaml:"language"`
	// Types restricts the hook to files carrying all listed type tags.
	Types []string `yaml:"types"`
	// Files, when set, keeps only paths matching this regular expression.
	Files string `yaml:"files"`
	// Exclude removes paths matching this regular expression.
	Exclude string `yaml:"exclude"`
	// Stages overrides DefaultStages for this hook.
	Stages []string `yaml:"stages"`
	// PassFilenames controls whether matched files are appended to the
	// command line. Defaults to true.
	PassFilenames *bool `yaml:"pass_filenames"`
}

// DisplayName returns the hook's name, falling back to its id.
func (h Hook) DisplayName() string {
	if h.Name != "" {
		return h.Name
	}
	return h.ID
}

// EffectiveStages returns the stages the hook runs at, applying defaults.
// An empty result means the hook runs at every stage.
func (h Hook) EffectiveStages(defaults []string) []string {
	if len(h.Stages) > 0 {
		return h.Stages
	}
	return defaults
}

// PassesFilenames reports whether matched files are appended to the
// invocation command.
func (h Hook) PassesFilenames() bool {
	return h.PassFilenames == nil || *h.PassFilenames
}

// Parse reads a configuration from r. Unknown fields are rejected.
func Parse(r io.Reader) (*Config, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("configuration is empty")
		}
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load reads and validates the configuration file at path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cfg, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Hooks returns all declared hooks across source groups, in declaration
// order.
func (c *Config) Hooks() []Hook {
	var hooks []Hook
	for _, src := range c.Repos {
		hooks = append(hooks, src.Hooks...)
	}
	return hooks
}

// Validate checks the structural invariants of the configuration: unique
// hook ids across the whole file, supported providers, recognized stages,
// type tags and environment tags, and compilable exclusion patterns.
func (c *Config) Validate() error {
	for _, stage := range c.DefaultStages {
		if !knownStage(stage) {
			return fmt.Errorf("default_stages: unknown stage %q", stage)
		}
	}
	if err := checkRegexp(c.Exclude); err != nil {
		return fmt.Errorf("exclude: %w", err)
	}

	if len(c.Repos) == 0 {
		return errors.New("no hook sources declared")
	}

	seen := make(map[string]bool)
	for i, src := range c.Repos {
		if src.Repo != RepoLocal {
			return fmt.Errorf("repos[%d]: unsupported provider %q (only %q is supported)", i, src.Repo, RepoLocal)
		}
		if len(src.Hooks) == 0 {
			return fmt.Errorf("repos[%d]: no hooks declared", i)
		}
		for _, h := range src.Hooks {
			if err := h.validate(); err != nil {
				return err
			}
			if seen[h.ID] {
				return fmt.Errorf("hook %q: duplicate id", h.ID)
			}
			seen[h.ID] = true
		}
	}
	return nil
}

func (h Hook) validate() error {
	if h.ID == "" {
		return errors.New("hook with empty id")
	}
	if h.Entry == "" {
		return fmt.Errorf("hook %q: entry is required", h.ID)
	}
	switch h.Language {
	case LangSystem, LangScript:
	case "":
		return fmt.Errorf("hook %q: language is required", h.ID)
	default:
		return fmt.Errorf("hook %q: unknown language %q", h.ID, h.Language)
	}
	for _, tag := range h.Types {
		if !filetype.Known(tag) {
			return fmt.Errorf("hook %q: unknown type tag %q", h.ID, tag)
		}
	}
	for _, stage := range h.Stages {
		if !knownStage(stage) {
			return fmt.Errorf("hook %q: unknown stage %q", h.ID, stage)
		}
	}
	if err := checkRegexp(h.Files); err != nil {
		return fmt.Errorf("hook %q: files: %w", h.ID, err)
	}
	if err := checkRegexp(h.Exclude); err != nil {
		return fmt.Errorf("hook %q: exclude: %w", h.ID, err)
	}
	return nil
}

func knownStage(stage string) bool {
	return stage == StageCommit || stage == StagePush
}

func checkRegexp(expr string) error {
	if expr == "" {
		return nil
	}
	_, err := regexp.Compile(expr)
	return err
}
