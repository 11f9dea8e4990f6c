// © 2026 Hookrun Authors. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

/*
Hookrun runs the checks a repository declares in its .hookrun.yaml file
before commits and pushes.

The configuration file lists hook declarations grouped by source; only the
"local" provider is supported, meaning every hook runs from tools already
present in the local environment. Each hook declares an id, a display
name, an execution environment tag (system or script), the command to
invoke, the file types it applies to and the path patterns it skips.

On a hook-stage run in a repository without installed hook scripts (and
outside CI), hookrun installs itself into .git/hooks so that subsequent
commits and pushes trigger it automatically.

Usage:

	hookrun [flags]

Useful flags:

	-check      parse and validate the configuration, then exit
	-plan       print which hooks would fire for the staged files
	-all-files  run against every tracked file instead of the staged ones
	-stage      lifecycle stage to run hooks for (commit or push)
	-install    install the git hook scripts and exit
	-uninstall  remove the installed git hook scripts and exit
*/
package main

import (
	_ "embed"

	"github.com/hookrun/hookrun/cli"
)

//go:embed doc.go
var doc []byte

func init() { cli.SetDocComment(doc) }
