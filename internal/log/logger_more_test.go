/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestFromEnvAndGetenv(t *testing.T) {
	t.Setenv("DSP_LOG_LEVEL", "warn")
	t.Setenv("DSP_LOG_FORMAT", "json")
	t.Setenv("DSP_LOG_SOURCE", "yes")
	// DSP_LOG_FILE intentionally unset

	opts := FromEnv()
	if opts.Level != "warn" || opts.Format != "json" || !opts.AddSource || opts.File != "" {
		t.Fatalf("FromEnv mismatch: %+v", opts)
	}

	// Also verify getenv default fallback when var missing
	if err := os.Unsetenv("SOME_UNSET_VAR"); err != nil {
		t.Fatalf("Unsetenv error: %v", err)
	}
	if v := getenv("SOME_UNSET_VAR", "fallback"); v != "fallback" {
		t.Fatalf("getenv fallback failed: %q", v)
	}
}

func TestPrettyTextHandler_Behavior(t *testing.T) {
	var buf bytes.Buffer
	h := &prettyTextHandler{opts: prettyOpts{Level: slog.LevelWarn, AddSource: true}, w: &buf}

	if h.Enabled(context.Background(), slog.LevelInfo) {
		t.Fatalf("info should not be enabled at warn level")
	}
	if !h.Enabled(context.Background(), slog.LevelError) {
		t.Fatalf("error should be enabled at warn level")
	}

	// k is added before the group opens and stays unprefixed.
	h2 := h.WithAttrs([]slog.Attr{slog.String("k", "v")}).WithGroup("grp")

	r := slog.Record{Time: time.Now(), Level: slog.LevelError, Message: "boom"}
	r.AddAttrs(slog.Int("n", 42), slog.Float64("pi", 3.14), slog.Bool("ok", true))
	if err := h2.Handle(context.Background(), r); err != nil {
		t.Fatalf("handle error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{" ERR boom", " k=v", " grp.n=42", " grp.pi=3.14", " grp.ok=true"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q: %q", want, out)
		}
	}
	if strings.Contains(out, "grp.k=") {
		t.Fatalf("attr added before the group was prefixed: %q", out)
	}
	if !strings.HasSuffix(out, "\n") {
		t.Fatalf("line not terminated: %q", out)
	}
}

func TestPrettyTextHandler_ValueFormatting(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(&prettyTextHandler{opts: prettyOpts{Level: slog.LevelDebug}, w: &buf})
	l.Debug("fmt",
		slog.String("name", "night shift"),
		slog.String("empty", ""),
		slog.Duration("took", 1500*time.Millisecond),
		slog.Group("pos", slog.Int("x", 3), slog.Int("y", 4)),
	)
	out := buf.String()
	for _, want := range []string{"DBG fmt", `name="night shift"`, `empty=""`, "took=1.5s", "pos.x=3", "pos.y=4"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q: %q", want, out)
		}
	}
}

func TestPrettyTextHandler_Source(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(&prettyTextHandler{opts: prettyOpts{Level: slog.LevelInfo, AddSource: true}, w: &buf})
	l.Info("where")
	if !strings.Contains(buf.String(), " src=logger_more_test.go:") {
		t.Fatalf("source missing: %q", buf.String())
	}
}

func TestCloseReleasesFileSink(t *testing.T) {
	dir := t.TempDir()
	var buf bytes.Buffer
	Init(Options{Level: "info", File: filepath.Join(dir, "a.log"), Console: &buf})
	t.Cleanup(func() { Init(Options{Level: "info"}) })
	L().Info("to file")
	if err := Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "a.log"))
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "to file") {
		t.Fatalf("file sink missing record: %s", data)
	}
	// Console output keeps working after the sink is gone.
	L().Info("console only")
	if !strings.Contains(buf.String(), "console only") {
		t.Fatalf("console output stopped after Close: %q", buf.String())
	}
}

func TestContextEnrichmentAndSetLevel(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Level: "info", Format: "json", Console: &buf})
	t.Cleanup(func() { Init(Options{Level: "info"}) })

	ctx := WithScreen(WithProject(context.Background(), "alpha"), "workspace")
	L().DebugContext(ctx, "hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug record written at info level: %q", buf.String())
	}

	SetLevel("debug")
	L().DebugContext(ctx, "shown")
	var m map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &m); err != nil {
		t.Fatalf("unmarshal: %v (%q)", err, buf.String())
	}
	if m["project"] != "alpha" || m["screen"] != "workspace" {
		t.Fatalf("context attrs missing: %v", m)
	}
	if m["msg"] != "shown" {
		t.Fatalf("msg = %v", m["msg"])
	}
}
