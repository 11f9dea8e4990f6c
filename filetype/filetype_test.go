// © 2026 Hookrun Authors. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package filetype

import (
	"testing"

	"github.com/hookrun/hookrun/testutil"
)

func TestTags(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		path string
		want []string
	}{
		"python file": {
			path: "src/pkg/api.py",
			want: []string{"file", "python", "text"},
		},
		"python stub": {
			path: "src/pkg/api.pyi",
			want: []string{"file", "python", "text"},
		},
		"go file": {
			path: "main.go",
			want: []string{"file", "go", "text"},
		},
		"typescript file": {
			path: "web/app.ts",
			want: []string{"file", "text", "typescript"},
		},
		"uppercase extension": {
			path: "README.MD",
			want: []string{"file", "markdown", "text"},
		},
		"unknown extension": {
			path: "archive.bin",
			want: []string{"file"},
		},
		"no extension": {
			path: "Makefile",
			want: []string{"file"},
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, Tags(tc.path), tc.want)
		})
	}
}

func TestMatches(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		types []string
		path  string
		want  bool
	}{
		"empty filter matches anything": {types: nil, path: "x.bin", want: true},
		"single tag match":              {types: []string{"python"}, path: "a.py", want: true},
		"single tag mismatch":           {types: []string{"python"}, path: "a.go", want: false},
		"all tags must match":           {types: []string{"python", "text"}, path: "a.py", want: true},
		"one missing tag fails":         {types: []string{"python", "yaml"}, path: "a.py", want: false},
		"file tag matches everything":   {types: []string{"file"}, path: "Makefile", want: true},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			if got := Matches(tc.types, tc.path); got != tc.want {
				t.Fatalf("Matches(%v, %q) = %v, want %v", tc.types, tc.path, got, tc.want)
			}
		})
	}
}

func TestKnown(t *testing.T) {
	t.Parallel()

	for _, tag := range []string{"file", "text", "python", "go", "yaml", "javascript", "typescript"} {
		if !Known(tag) {
			t.Errorf("Known(%q) = false, want true", tag)
		}
	}
	if Known("fortran") {
		t.Error(`Known("fortran") = true, want false`)
	}
}
