// © 2026 Hookrun Authors. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/term"

	"github.com/hookrun/hookrun/cli"
	"github.com/hookrun/hookrun/config"
	"github.com/hookrun/hookrun/gitrepo"
	"github.com/hookrun/hookrun/logger"
	"github.com/hookrun/hookrun/plan"
	"github.com/hookrun/hookrun/runner"
	"github.com/hookrun/hookrun/settings"
)

func main() { cli.Main(new(app)) }

type app struct {
	configPath string
	stage      string
	allFiles   bool
	check      bool
	showPlan   bool
	install    bool
	uninstall  bool
	force      bool
	jobs       int
	noColor    bool
	verbose    bool
}

func (a *app) Flags(fs *flag.FlagSet) {
	fs.StringVar(&a.configPath, "config", "", "Path to the hook configuration `file`.")
	fs.StringVar(&a.stage, "stage", config.StageCommit, "Lifecycle `stage` to run hooks for (commit or push).")
	fs.BoolVar(&a.allFiles, "all-files", false, "Run against every tracked file instead of the staged ones.")
	fs.BoolVar(&a.check, "check", false, "Parse and validate the configuration, then exit.")
	fs.BoolVar(&a.showPlan, "plan", false, "Print which hooks would fire, without running them.")
	fs.BoolVar(&a.install, "install", false, "Install the git hook scripts and exit.")
	fs.BoolVar(&a.uninstall, "uninstall", false, "Remove the installed git hook scripts and exit.")
	fs.BoolVar(&a.force, "force", false, "Overwrite hook scripts not installed by hookrun.")
	fs.IntVar(&a.jobs, "jobs", 0, "Cap on concurrently running hooks (0 uses the settings file or CPU count).")
	fs.BoolVar(&a.noColor, "no-color", false, "Disable colored log output.")
	fs.BoolVar(&a.verbose, "verbose", false, "Enable debug logging.")
}

func (a *app) Run(ctx context.Context) error {
	env := cli.GetEnv(ctx)

	sett, err := settings.Load()
	if err != nil {
		return err
	}
	ctx = logger.Put(ctx, logger.New(env.Stderr, logger.Options{
		Level:   level(a.verbose || sett.Verbose),
		Colored: colored(a, sett, env.Stderr),
	}))

	if a.stage != config.StageCommit && a.stage != config.StagePush {
		return fmt.Errorf("%w: unknown stage %q", cli.ErrInvalidArgs, a.stage)
	}

	// Validating an explicit configuration file needs no repository.
	if a.check && a.configPath != "" {
		return a.runCheck(env, a.configPath)
	}

	repo, err := gitrepo.Open(".")
	if err != nil {
		return err
	}

	configPath := a.configPath
	if configPath == "" {
		configPath = filepath.Join(repo.Root(), config.DefaultFile)
	}
	if a.check {
		return a.runCheck(env, configPath)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	switch {
	case a.uninstall:
		return repo.UninstallHooks()
	case a.install:
		return repo.InstallHooks(hookStages(cfg), a.force)
	}

	files, err := candidateFiles(repo, a.allFiles)
	if err != nil {
		return err
	}

	planner, err := plan.New(cfg)
	if err != nil {
		return err
	}
	p := planner.Plan(a.stage, files)

	if a.showPlan {
		printPlan(env, p)
		return nil
	}

	a.autoInstall(ctx, env, repo, cfg)

	if p.Empty() {
		fmt.Fprintf(env.Stdout, "No hooks to run for stage %s.\n", a.stage)
		return nil
	}

	jobs := a.jobs
	if jobs == 0 {
		jobs = sett.Jobs
	}
	r := &runner.Runner{
		Root:          repo.Root(),
		Jobs:          jobs,
		Stdout:        env.Stdout,
		TerminalWidth: terminalWidth(env.Stdout),
	}
	_, err = r.Run(ctx, p)
	return err
}

func (a *app) runCheck(env *cli.Env, path string) error {
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	// Entries must resolve at commit time; a missing tool is worth a
	// warning now, but does not make the file invalid.
	for _, h := range cfg.Hooks() {
		if h.Language != config.LangSystem {
			continue
		}
		if _, err := exec.LookPath(h.Entry); err != nil {
			fmt.Fprintf(env.Stdout, "warning: hook %q: %q not found in PATH\n", h.ID, h.Entry)
		}
	}
	fmt.Fprintf(env.Stdout, "%s: ok (%d hooks)\n", path, len(cfg.Hooks()))
	return nil
}

// autoInstall mirrors the first-run behavior of the hook scripts: when
// running outside CI in a repository without installed hooks, install
// them so that later commits trigger hookrun automatically. Failure is
// not fatal for the current run.
func (a *app) autoInstall(ctx context.Context, env *cli.Env, repo *gitrepo.Repo, cfg *config.Config) {
	if env.Getenv("CI") == "true" || repo.Installed(a.stage) {
		return
	}
	if err := repo.InstallHooks(hookStages(cfg), false); err != nil {
		logger.Warn(ctx, "could not install hook scripts", slog.Any("error", err))
	}
}

// hookStages returns the stages any declared hook can run at.
func hookStages(cfg *config.Config) []string {
	var stages []string
	add := func(list []string) {
		for _, s := range list {
			if !slices.Contains(stages, s) {
				stages = append(stages, s)
			}
		}
	}
	add(cfg.DefaultStages)
	for _, h := range cfg.Hooks() {
		add(h.Stages)
	}
	if len(stages) == 0 {
		stages = []string{config.StageCommit, config.StagePush}
	}
	slices.Sort(stages)
	return stages
}

func candidateFiles(repo *gitrepo.Repo, allFiles bool) ([]string, error) {
	if allFiles {
		return repo.TrackedFiles()
	}
	return repo.StagedFiles()
}

func printPlan(env *cli.Env, p plan.Plan) {
	if p.Empty() {
		fmt.Fprintf(env.Stdout, "No hooks would run for stage %s.\n", p.Stage)
		return
	}
	for _, item := range p.Items {
		fmt.Fprintf(env.Stdout, "%s: %s\n", item.Hook.ID, strings.Join(item.Files, " "))
	}
}

func level(verbose bool) slog.Leveler {
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

func colored(a *app, sett settings.Settings, stderr io.Writer) bool {
	if a.noColor || sett.Color == settings.ColorNever {
		return false
	}
	if sett.Color == settings.ColorAlways {
		return true
	}
	f, ok := stderr.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func terminalWidth(stdout io.Writer) int {
	f, ok := stdout.(*os.File)
	if !ok {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}
