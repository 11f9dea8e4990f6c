// © 2026 Hookrun Authors. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package plan computes which hooks fire for a set of candidate files.
//
// Planning is a pure function of the configuration, the active stage and
// the candidate paths: each hook's filters are applied independently, in
// declaration order, so the result is deterministic.
package plan

import (
	"fmt"
	"regexp"
	"slices"

	"github.com/hookrun/hookrun/config"
	"github.com/hookrun/hookrun/filetype"
)

// Planner holds a configuration with its patterns compiled.
type Planner struct {
	cfg           *config.Config
	globalExclude *regexp.Regexp
	hooks         []compiledHook
}

type compiledHook struct {
	hook    config.Hook
	files   *regexp.Regexp
	exclude *regexp.Regexp
}

// New compiles cfg into a Planner. cfg must already be validated.
func New(cfg *config.Config) (*Planner, error) {
	p := &Planner{cfg: cfg}

	var err error
	if p.globalExclude, err = compile(cfg.Exclude); err != nil {
		return nil, fmt.Errorf("exclude: %w", err)
	}
	for _, h := range cfg.Hooks() {
		ch := compiledHook{hook: h}
		if ch.files, err = compile(h.Files); err != nil {
			return nil, fmt.Errorf("hook %q: files: %w", h.ID, err)
		}
		if ch.exclude, err = compile(h.Exclude); err != nil {
			return nil, fmt.Errorf("hook %q: exclude: %w", h.ID, err)
		}
		p.hooks = append(p.hooks, ch)
	}
	return p, nil
}

func compile(expr string) (*regexp.Regexp, error) {
	if expr == "" {
		return nil, nil
	}
	return regexp.Compile(expr)
}

// Item is one hook together with the files it fires on.
type Item struct {
	Hook  config.Hook
	Files []string
}

// Plan is the ordered list of hooks that fire for a run.
type Plan struct {
	Stage string
	Items []Item
}

// Empty reports whether no hook fires.
func (p Plan) Empty() bool { return len(p.Items) == 0 }

// Plan computes the hooks firing at stage for the given candidate paths.
// Paths are slash-separated and relative to the repository root. Hooks
// whose filters leave no files do not appear in the result.
func (p *Planner) Plan(stage string, paths []string) Plan {
	out := Plan{Stage: stage}
	for _, ch := range p.hooks {
		stages := ch.hook.EffectiveStages(p.cfg.DefaultStages)
		if len(stages) > 0 && !slices.Contains(stages, stage) {
			continue
		}
		files := p.matchFiles(ch, paths)
		if len(files) == 0 {
			continue
		}
		out.Items = append(out.Items, Item{Hook: ch.hook, Files: files})
	}
	return out
}

func (p *Planner) matchFiles(ch compiledHook, paths []string) []string {
	var files []string
	for _, path := range paths {
		if p.globalExclude != nil && p.globalExclude.MatchString(path) {
			continue
		}
		if ch.files != nil && !ch.files.MatchString(path) {
			continue
		}
		if ch.exclude != nil && ch.exclude.MatchString(path) {
			continue
		}
		if !filetype.Matches(ch.hook.Types, path) {
			continue
		}
		files = append(files, path)
	}
	return files
}
