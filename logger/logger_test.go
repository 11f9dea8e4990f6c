// © 2026 Hookrun Authors. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestGetReturnsDiscardingLoggerByDefault(t *testing.T) {
	t.Parallel()

	l := Get(context.Background())
	if l == nil {
		t.Fatal("Get() returned nil")
	}
	// Must not panic and must not be enabled for anything.
	if l.Enabled(context.Background(), slog.LevelError) {
		t.Fatal("default logger should discard records")
	}
}

func TestPutGetRoundTrip(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := New(&buf, Options{})
	ctx := Put(context.Background(), l)

	Info(ctx, "hello", slog.String("hook", "black"))

	out := buf.String()
	if !strings.Contains(out, "hello") || !strings.Contains(out, "hook=black") {
		t.Fatalf("unexpected log output: %q", out)
	}
}

func TestLevelFiltering(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	ctx := Put(context.Background(), New(&buf, Options{Level: slog.LevelWarn}))

	Debug(ctx, "quiet")
	Info(ctx, "quiet too")
	Warn(ctx, "loud")

	out := buf.String()
	if strings.Contains(out, "quiet") {
		t.Fatalf("records below level leaked: %q", out)
	}
	if !strings.Contains(out, "loud") {
		t.Fatalf("warn record missing: %q", out)
	}
}
