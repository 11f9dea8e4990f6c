// © 2026 Hookrun Authors. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package runner executes a computed hook plan.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/hookrun/hookrun/config"
	"github.com/hookrun/hookrun/logger"
	"github.com/hookrun/hookrun/plan"
)

// ErrChecksFailed reports that at least one hook exited non-zero. The
// commit or push being guarded must be blocked.
var ErrChecksFailed = errors.New("checks failed")

// Runner executes hooks against a repository work tree.
type Runner struct {
	// Root is the repository root; commands run with it as their
	// working directory.
	Root string
	// Jobs caps how many hooks run concurrently. Values below 1 mean
	// sequential execution.
	Jobs int
	// Stdout receives progress and failure output.
	Stdout io.Writer
	// TerminalWidth trims progress lines when positive.
	TerminalWidth int
}

// Result is the outcome of one hook.
type Result struct {
	Hook     config.Hook
	Output   []byte
	Err      error
	Duration time.Duration
}

// Failed reports whether the hook exited non-zero or could not run.
func (r Result) Failed() bool { return r.Err != nil }

// Run executes every item of p. Hooks may run concurrently up to the
// Jobs limit, but progress output and the returned results preserve
// declaration order. All hooks run even when an earlier one fails; the
// returned error wraps [ErrChecksFailed] if any did.
func (r *Runner) Run(ctx context.Context, p plan.Plan) ([]Result, error) {
	runID := uuid.NewString()
	logger.Debug(ctx, "run started",
		slog.String("run_id", runID),
		slog.String("stage", p.Stage),
		slog.Int("hooks", len(p.Items)))

	jobs := r.Jobs
	if jobs < 1 {
		jobs = 1
	}

	results := make([]Result, len(p.Items))
	done := make([]chan struct{}, len(p.Items))
	sem := make(chan struct{}, jobs)

	for i, item := range p.Items {
		done[i] = make(chan struct{})
		go func() {
			defer close(done[i])
			sem <- struct{}{}
			defer func() { <-sem }()
			results[i] = r.runHook(ctx, item)
		}()
	}

	var failed int
	for i, item := range p.Items {
		fmt.Fprintln(r.Stdout, progressMessage(i+1, len(p.Items), item.Hook.DisplayName(), r.TerminalWidth))
		<-done[i]

		res := results[i]
		logger.Debug(ctx, "hook finished",
			slog.String("run_id", runID),
			slog.String("hook", item.Hook.ID),
			slog.Duration("took", res.Duration),
			slog.Bool("failed", res.Failed()))

		if res.Failed() {
			failed++
			fmt.Fprintf(r.Stdout, "%s: %v\n", item.Hook.DisplayName(), res.Err)
			if len(res.Output) > 0 {
				fmt.Fprintf(r.Stdout, "%s", res.Output)
				if res.Output[len(res.Output)-1] != '\n' {
					fmt.Fprintln(r.Stdout)
				}
			}
		}
	}

	if failed > 0 {
		return results, fmt.Errorf("%d of %d %w", failed, len(p.Items), ErrChecksFailed)
	}
	return results, nil
}

func (r *Runner) runHook(ctx context.Context, item plan.Item) Result {
	h := item.Hook

	entry := h.Entry
	if h.Language == config.LangScript {
		entry = filepath.Join(r.Root, filepath.FromSlash(entry))
	}

	args := append([]string{}, h.Args...)
	if h.PassesFilenames() {
		args = append(args, item.Files...)
	}

	var buf bytes.Buffer
	cmd := exec.CommandContext(ctx, entry, args...)
	cmd.Dir = r.Root
	cmd.Stdout = &buf
	cmd.Stderr = &buf

	start := time.Now()
	err := cmd.Run()
	return Result{
		Hook:     h,
		Output:   buf.Bytes(),
		Err:      err,
		Duration: time.Since(start),
	}
}

// progressMessage renders the "[i/n] Running <name>" line, trimmed to
// width columns. The display name is cut at rune boundaries so a
// multi-byte name never yields invalid UTF-8.
func progressMessage(current, total int, name string, width int) string {
	prefix := fmt.Sprintf("[%d/%d] Running ", current, total)
	runes := []rune(name)
	if width <= 0 || len(prefix)+len(runes) <= width {
		return prefix + name
	}
	if len(prefix) >= width {
		return prefix
	}
	avail := width - len(prefix)
	if avail <= 3 {
		return prefix + string(runes[:avail])
	}
	return prefix + string(runes[:avail-3]) + "..."
}
