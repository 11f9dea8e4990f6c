// © 2026 Hookrun Authors. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package runner

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hookrun/hookrun/config"
	"github.com/hookrun/hookrun/plan"
	"github.com/hookrun/hookrun/testutil"
)

func systemHook(id, entry string, args ...string) config.Hook {
	return config.Hook{ID: id, Entry: entry, Args: args, Language: config.LangSystem}
}

func TestRunAllHooksSucceed(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	r := &Runner{Root: t.TempDir(), Stdout: &out}

	p := plan.Plan{Stage: config.StageCommit, Items: []plan.Item{
		{Hook: systemHook("a", "true"), Files: []string{"x.py"}},
		{Hook: systemHook("b", "true"), Files: []string{"x.py"}},
	}}

	results, err := r.Run(context.Background(), p)
	if err != nil {
		t.Fatalf("Run(): %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	for _, res := range results {
		if res.Failed() {
			t.Errorf("hook %q failed: %v", res.Hook.ID, res.Err)
		}
	}
	testutil.AssertEqual(t, strings.Contains(out.String(), "[1/2] Running a"), true)
	testutil.AssertEqual(t, strings.Contains(out.String(), "[2/2] Running b"), true)
}

func TestRunFailureBlocksButKeepsGoing(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	r := &Runner{Root: t.TempDir(), Stdout: &out}

	p := plan.Plan{Stage: config.StageCommit, Items: []plan.Item{
		{Hook: systemHook("bad", "false"), Files: []string{"x.py"}},
		{Hook: systemHook("good", "true"), Files: []string{"x.py"}},
	}}

	results, err := r.Run(context.Background(), p)
	if !errors.Is(err, ErrChecksFailed) {
		t.Fatalf("Run() = %v, want ErrChecksFailed", err)
	}
	if !results[0].Failed() {
		t.Error("first hook should have failed")
	}
	if results[1].Failed() {
		t.Errorf("second hook should still run and pass: %v", results[1].Err)
	}
	if !strings.Contains(err.Error(), "1 of 2") {
		t.Errorf("error = %q, want failure count", err)
	}
}

func TestRunPassesFilenames(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	r := &Runner{Root: t.TempDir(), Stdout: &out}

	p := plan.Plan{Stage: config.StageCommit, Items: []plan.Item{
		{Hook: systemHook("echo", "echo", "--check"), Files: []string{"a.py", "b.py"}},
	}}

	results, err := r.Run(context.Background(), p)
	if err != nil {
		t.Fatalf("Run(): %v", err)
	}
	got := strings.TrimSpace(string(results[0].Output))
	testutil.AssertEqual(t, got, "--check a.py b.py")
}

func TestRunWithoutFilenames(t *testing.T) {
	t.Parallel()

	no := false
	hook := config.Hook{
		ID:            "once",
		Entry:         "echo",
		Args:          []string{"ran"},
		Language:      config.LangSystem,
		PassFilenames: &no,
	}

	var out bytes.Buffer
	r := &Runner{Root: t.TempDir(), Stdout: &out}

	p := plan.Plan{Stage: config.StageCommit, Items: []plan.Item{
		{Hook: hook, Files: []string{"a.py", "b.py"}},
	}}

	results, err := r.Run(context.Background(), p)
	if err != nil {
		t.Fatalf("Run(): %v", err)
	}
	testutil.AssertEqual(t, strings.TrimSpace(string(results[0].Output)), "ran")
}

func TestRunScriptLanguage(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	script := filepath.Join(root, "check.sh")
	if err := os.WriteFile(script, []byte("#!/bin/sh\necho from-script\n"), 0o755); err != nil {
		t.Fatalf("WriteFile(): %v", err)
	}

	hook := config.Hook{ID: "script", Entry: "check.sh", Language: config.LangScript}

	var out bytes.Buffer
	r := &Runner{Root: root, Stdout: &out}

	p := plan.Plan{Stage: config.StageCommit, Items: []plan.Item{
		{Hook: hook, Files: nil},
	}}

	results, err := r.Run(context.Background(), p)
	if err != nil {
		t.Fatalf("Run(): %v", err)
	}
	testutil.AssertEqual(t, strings.TrimSpace(string(results[0].Output)), "from-script")
}

func TestRunMissingExecutable(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	r := &Runner{Root: t.TempDir(), Stdout: &out}

	p := plan.Plan{Stage: config.StageCommit, Items: []plan.Item{
		{Hook: systemHook("ghost", "definitely-not-a-real-tool-8f1c"), Files: []string{"x"}},
	}}

	_, err := r.Run(context.Background(), p)
	if !errors.Is(err, ErrChecksFailed) {
		t.Fatalf("Run() = %v, want ErrChecksFailed", err)
	}
}

func TestRunParallelPreservesResultOrder(t *testing.T) {
	t.Parallel()

	var items []plan.Item
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		items = append(items, plan.Item{
			Hook:  systemHook(id, "echo", id),
			Files: nil,
		})
	}

	var out bytes.Buffer
	r := &Runner{Root: t.TempDir(), Jobs: 4, Stdout: &out}

	results, err := r.Run(context.Background(), plan.Plan{Stage: config.StageCommit, Items: items})
	if err != nil {
		t.Fatalf("Run(): %v", err)
	}
	for i, id := range []string{"a", "b", "c", "d", "e"} {
		if results[i].Hook.ID != id {
			t.Fatalf("results[%d] = %q, want %q", i, results[i].Hook.ID, id)
		}
		testutil.AssertEqual(t, strings.TrimSpace(string(results[i].Output)), id)
	}
}

func TestProgressMessage(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		current int
		total   int
		name    string
		width   int
		want    string
	}{
		"no terminal width does not shorten": {
			current: 1, total: 1,
			name:  "very-long-check-name",
			width: 0,
			want:  "[1/1] Running very-long-check-name",
		},
		"small width with ellipsis": {
			current: 2, total: 10,
			name:  "static-analysis",
			width: 22,
			want:  "[2/10] Running stat...",
		},
		"very small width keeps prefix only": {
			current: 3, total: 10,
			name:  "static-analysis",
			width: 10,
			want:  "[3/10] Running ",
		},
		"barely too small trims without ellipsis": {
			current: 2, total: 100,
			name:  "static-analysis",
			width: 18,
			want:  "[2/100] Running st",
		},
		"multi-byte name trims at rune boundary": {
			current: 1, total: 2,
			name:  "проверка-стиля",
			width: 20,
			want:  "[1/2] Running про...",
		},
		"multi-byte name trims without ellipsis": {
			current: 1, total: 2,
			name:  "проверка-стиля",
			width: 16,
			want:  "[1/2] Running пр",
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got := progressMessage(tc.current, tc.total, tc.name, tc.width)
			if got != tc.want {
				t.Fatalf("progressMessage() = %q, want %q", got, tc.want)
			}
		})
	}
}
