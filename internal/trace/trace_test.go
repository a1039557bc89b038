package trace_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/lukeapage/flow-to-ts/internal/trace"
)

func TestLevelFiltersScopes(t *testing.T) {
	var buf bytes.Buffer
	tr := trace.NewStreamTracer(&buf, trace.LevelPhase, trace.FormatText)

	file := trace.Begin(tr, trace.ScopeFile, "file:a.js", 0)
	phase := trace.Begin(tr, trace.ScopePhase, "parse", file.ID())
	step := trace.Begin(tr, trace.ScopeStep, "cache", phase.ID())
	step.End("")
	phase.End("")
	file.End("ok")

	out := buf.String()
	if strings.Contains(out, "cache") {
		t.Fatalf("step emitted at phase level:\n%s", out)
	}
	if got := strings.Count(out, "\n"); got != 4 {
		t.Fatalf("want 4 events, got %d:\n%s", got, out)
	}
	if !strings.Contains(out, "← file:a.js (ok)") {
		t.Fatalf("missing end event:\n%s", out)
	}
}

func TestFailIsEmittedAtErrorLevel(t *testing.T) {
	ring := trace.NewRingTracer(8, trace.LevelError)
	trace.Begin(ring, trace.ScopeFile, "file:a.js", 0).End("")
	trace.Fail(ring, "file:a.js", errors.New("boom"))

	events := ring.Snapshot()
	if len(events) != 1 || events[0].Detail != "boom" {
		t.Fatalf("events = %+v", events)
	}
}

func TestRingWraps(t *testing.T) {
	ring := trace.NewRingTracer(3, trace.LevelDebug)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		trace.Point(ring, trace.ScopeStep, name, "", 0)
	}
	var names []string
	for _, ev := range ring.Snapshot() {
		names = append(names, ev.Name)
	}
	if got := strings.Join(names, ""); got != "cde" {
		t.Fatalf("snapshot = %q", got)
	}
}

func TestNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr, err := trace.New(trace.Config{Level: trace.LevelDebug, Format: trace.FormatNDJSON, Output: &buf})
	if err != nil {
		t.Fatal(err)
	}
	trace.Begin(tr, trace.ScopeBatch, "convert", 0).WithExtra("files", "2").End("")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("want 2 lines, got %q", buf.String())
	}
	var ev map[string]any
	if err := json.Unmarshal([]byte(lines[1]), &ev); err != nil {
		t.Fatal(err)
	}
	if ev["kind"] != "end" || ev["scope"] != "batch" || ev["name"] != "convert" {
		t.Fatalf("event = %v", ev)
	}
}

func TestNewOffIsNop(t *testing.T) {
	tr, err := trace.New(trace.Config{Level: trace.LevelOff})
	if err != nil {
		t.Fatal(err)
	}
	if tr.Enabled() {
		t.Fatalf("off tracer enabled")
	}
	if d := trace.Begin(tr, trace.ScopeBatch, "x", 0).End(""); d != 0 {
		t.Fatalf("nop span measured %v", d)
	}
}

func TestBothModeKeepsRing(t *testing.T) {
	var buf bytes.Buffer
	tr, err := trace.New(trace.Config{Level: trace.LevelPhase, Mode: trace.ModeBoth, Output: &buf})
	if err != nil {
		t.Fatal(err)
	}
	trace.Begin(tr, trace.ScopeFile, "file:b.js", 0).End("")
	ring, ok := trace.Ring(tr)
	if !ok || len(ring.Snapshot()) != 2 || buf.Len() == 0 {
		t.Fatalf("both mode lost events")
	}
}

func TestContext(t *testing.T) {
	if trace.FromContext(context.Background()) != trace.Nop {
		t.Fatalf("empty context has a tracer")
	}
	ring := trace.NewRingTracer(4, trace.LevelPhase)
	ctx := trace.WithTracer(context.Background(), ring)
	span := trace.Begin(trace.FromContext(ctx), trace.ScopeFile, "f", 0)
	ctx = trace.WithSpan(ctx, span)
	if trace.ParentSpan(ctx) != span.ID() || span.ID() == 0 {
		t.Fatalf("span not propagated")
	}
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]trace.Level{"off": trace.LevelOff, "PHASE": trace.LevelPhase, "debug": trace.LevelDebug} {
		got, err := trace.ParseLevel(in)
		if err != nil || got != want {
			t.Fatalf("ParseLevel(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := trace.ParseLevel("loud"); err == nil {
		t.Fatalf("bad level accepted")
	}
}
