// © 2026 Hookrun Authors. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package gitrepo wraps the go-git operations hookrun needs: repository
// discovery, staged and tracked file listing, and hook script management.
package gitrepo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/hookrun/hookrun/config"
)

// ErrNotRepository is returned by Open when dir is not inside a git
// repository work tree.
var ErrNotRepository = errors.New("not a git repository")

// ErrForeignHook is returned when a hook script not written by hookrun is
// already installed.
var ErrForeignHook = errors.New("existing hook script was not installed by hookrun")

// Repo is an open git repository.
type Repo struct {
	root   string // work tree root
	gitDir string
	repo   *git.Repository
}

// Open locates the repository containing dir and opens it.
func Open(dir string) (*Repo, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	root, gitDir, err := discover(abs)
	if err != nil {
		return nil, err
	}
	repo, err := git.PlainOpenWithOptions(root, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", root, err)
	}
	return &Repo{root: root, gitDir: gitDir, repo: repo}, nil
}

// discover walks up from dir until it finds a .git entry. A .git file
// (linked work trees, submodules) is resolved to the directory it points
// at.
func discover(dir string) (root, gitDir string, err error) {
	for {
		dotGit := filepath.Join(dir, ".git")
		fi, statErr := os.Stat(dotGit)
		if statErr == nil {
			if fi.IsDir() {
				return dir, dotGit, nil
			}
			target, err := readGitDirFile(dotGit)
			if err != nil {
				return "", "", err
			}
			if !filepath.IsAbs(target) {
				target = filepath.Join(dir, target)
			}
			return dir, filepath.Clean(target), nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", "", ErrNotRepository
		}
		dir = parent
	}
}

func readGitDirFile(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	line := strings.TrimSpace(string(b))
	target, ok := strings.CutPrefix(line, "gitdir:")
	if !ok {
		return "", fmt.Errorf("malformed .git file %s", path)
	}
	return strings.TrimSpace(target), nil
}

// Root returns the work tree root.
func (r *Repo) Root() string { return r.root }

// HooksDir returns the directory git looks up hook scripts in.
func (r *Repo) HooksDir() string { return filepath.Join(r.gitDir, "hooks") }

// StagedFiles lists the slash-separated paths staged for commit, sorted.
// Deletions are skipped: a hook cannot run against a file that is going
// away.
func (r *Repo) StagedFiles() ([]string, error) {
	wt, err := r.repo.Worktree()
	if err != nil {
		return nil, err
	}
	status, err := wt.Status()
	if err != nil {
		return nil, fmt.Errorf("computing status: %w", err)
	}

	var files []string
	for path, fs := range status {
		switch fs.Staging {
		case git.Added, git.Modified, git.Renamed, git.Copied:
			files = append(files, path)
		}
	}
	sort.Strings(files)
	return files, nil
}

// TrackedFiles lists every file of the HEAD tree, sorted. An empty
// repository yields an empty list.
func (r *Repo) TrackedFiles() ([]string, error) {
	head, err := r.repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil, nil
		}
		return nil, err
	}
	commit, err := r.repo.CommitObject(head.Hash())
	if err != nil {
		return nil, err
	}
	tree, err := commit.Tree()
	if err != nil {
		return nil, err
	}

	var files []string
	err = tree.Files().ForEach(func(f *object.File) error {
		files = append(files, f.Name)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

const hookMarker = "# Installed by hookrun."

func hookScript(stage string) string {
	return fmt.Sprintf(`#!/bin/sh
%s Do not edit.
exec hookrun -stage=%s "$@"
`, hookMarker, stage)
}

// scriptsByStage maps a stage to the hook script name git invokes for it.
var scriptsByStage = map[string]string{
	config.StageCommit: "pre-commit",
	config.StagePush:   "pre-push",
}

// Installed reports whether a hookrun script is present for stage.
func (r *Repo) Installed(stage string) bool {
	name, ok := scriptsByStage[stage]
	if !ok {
		return false
	}
	b, err := os.ReadFile(filepath.Join(r.HooksDir(), name))
	return err == nil && strings.Contains(string(b), hookMarker)
}

// InstallHooks writes hook scripts for the given stages. An existing
// script written by hookrun is overwritten; any other script is left
// alone and reported as [ErrForeignHook] unless force is set.
func (r *Repo) InstallHooks(stages []string, force bool) error {
	if err := os.MkdirAll(r.HooksDir(), 0o755); err != nil {
		return err
	}
	for _, stage := range stages {
		name, ok := scriptsByStage[stage]
		if !ok {
			return fmt.Errorf("no hook script for stage %q", stage)
		}
		path := filepath.Join(r.HooksDir(), name)

		if existing, err := os.ReadFile(path); err == nil && !force {
			if !strings.Contains(string(existing), hookMarker) {
				return fmt.Errorf("%s: %w", path, ErrForeignHook)
			}
		}
		if err := os.WriteFile(path, []byte(hookScript(stage)), 0o755); err != nil {
			return err
		}
	}
	return nil
}

// UninstallHooks removes the hook scripts hookrun installed. Scripts it
// did not install are left alone.
func (r *Repo) UninstallHooks() error {
	for _, name := range scriptsByStage {
		path := filepath.Join(r.HooksDir(), name)
		b, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return err
		}
		if !strings.Contains(string(b), hookMarker) {
			continue
		}
		if err := os.Remove(path); err != nil {
			return err
		}
	}
	return nil
}
