// © 2026 Hookrun Authors. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package version reports information about the running binary.
package version

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"sync"
)

// CmdName returns the base name of the running binary.
func CmdName() string {
	exe, err := os.Executable()
	if err != nil {
		return "hookrun"
	}
	return strings.TrimSuffix(filepath.Base(exe), ".exe")
}

var full = sync.OnceValue(buildVersion)

// Version returns a human-readable version string derived from the build
// info embedded in the binary.
func Version() string { return full() }

func buildVersion() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return CmdName() + " (unknown version)"
	}

	ver := info.Main.Version
	if ver == "" || ver == "(devel)" {
		ver = "devel"
	}

	var revision, modified string
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.modified":
			if s.Value == "true" {
				modified = " (modified)"
			}
		}
	}
	if len(revision) > 12 {
		revision = revision[:12]
	}

	if revision == "" {
		return fmt.Sprintf("%s %s (%s)", CmdName(), ver, info.GoVersion)
	}
	return fmt.Sprintf("%s %s, commit %s%s (%s)", CmdName(), ver, revision, modified, info.GoVersion)
}
