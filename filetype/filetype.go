// © 2026 Hookrun Authors. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package filetype classifies file paths into type tags used by hook
// filters.
//
// Classification is purely extension-driven so that, for a given path, the
// resulting tag set is deterministic and computable without touching the
// file system.
package filetype

import (
	"path"
	"slices"
	"strings"
)

// TagFile is the tag applied to every path.
const TagFile = "file"

// byExtension maps a lowercase extension to its tags. Tags listed here
// imply the "text" tag.
var byExtension = map[string][]string{
	".py":       {"python"},
	".pyi":      {"python"},
	".go":       {"go"},
	".yaml":     {"yaml"},
	".yml":      {"yaml"},
	".json":     {"json"},
	".md":       {"markdown"},
	".markdown": {"markdown"},
	".toml":     {"toml"},
	".sh":       {"shell"},
	".bash":     {"shell"},
	".rst":      {"rst"},
	".txt":      {"plain-text"},
	".ini":      {"ini"},
	".cfg":      {"ini"},
	".html":     {"html"},
	".css":      {"css"},
	".js":       {"javascript"},
	".ts":       {"typescript"},
}

var known = func() map[string]bool {
	m := map[string]bool{TagFile: true, "text": true}
	for _, tags := range byExtension {
		for _, tag := range tags {
			m[tag] = true
		}
	}
	return m
}()

// Known reports whether tag is a recognized type tag.
func Known(tag string) bool { return known[tag] }

// Tags returns the sorted tag set for p. Every path carries at least
// [TagFile]; paths with a recognized extension additionally carry "text"
// and their extension tags.
func Tags(p string) []string {
	tags := []string{TagFile}
	ext := strings.ToLower(path.Ext(p))
	if extra, ok := byExtension[ext]; ok {
		tags = append(tags, "text")
		tags = append(tags, extra...)
	}
	slices.Sort(tags)
	return tags
}

// Matches reports whether a path with the given tag set satisfies the
// types filter: every requested tag must be present. An empty filter
// matches everything.
func Matches(types []string, p string) bool {
	if len(types) == 0 {
		return true
	}
	tags := Tags(p)
	for _, want := range types {
		if !slices.Contains(tags, want) {
			return false
		}
	}
	return true
}
