// © 2026 Hookrun Authors. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package settings loads machine-level runner preferences. These are not
// part of a repository's hook configuration: they describe how this
// machine likes its output and parallelism.
package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
)

// Color output modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Settings are the runner preferences.
type Settings struct {
	// Jobs caps how many hooks run concurrently.
	Jobs int
	// Color is one of auto, always or never.
	Color string
	// Verbose enables debug logging.
	Verbose bool
}

type fileSettings struct {
	Jobs    int    `toml:"jobs"`
	Color   string `toml:"color"`
	Verbose bool   `toml:"verbose"`
}

// Default returns the settings used when no file overrides them.
func Default() Settings {
	return Settings{
		Jobs:  runtime.GOMAXPROCS(0),
		Color: ColorAuto,
	}
}

// Path returns the location of the settings file for the current user.
func Path() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "hookrun", "settings.toml"), nil
}

// Load reads the user's settings file. A missing file yields the
// defaults.
func Load() (Settings, error) {
	path, err := Path()
	if err != nil {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile reads settings from path, merging over the defaults. Only keys
// present in the file override.
func LoadFile(path string) (Settings, error) {
	s := Default()

	var raw fileSettings
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return Settings{}, fmt.Errorf("loading settings: %w", err)
	}

	if meta.IsDefined("jobs") {
		if raw.Jobs < 1 {
			return Settings{}, fmt.Errorf("settings: jobs must be positive, got %d", raw.Jobs)
		}
		s.Jobs = raw.Jobs
	}
	if meta.IsDefined("color") {
		mode := strings.TrimSpace(raw.Color)
		switch mode {
		case ColorAuto, ColorAlways, ColorNever:
			s.Color = mode
		default:
			return Settings{}, fmt.Errorf("settings: unknown color mode %q", raw.Color)
		}
	}
	if meta.IsDefined("verbose") {
		s.Verbose = raw.Verbose
	}
	return s, nil
}
