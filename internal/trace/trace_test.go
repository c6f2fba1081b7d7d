package trace_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"paracell/internal/trace"
)

func TestLevelShouldEmit(t *testing.T) {
	cases := []struct {
		level trace.Level
		scope trace.Scope
		want  bool
	}{
		{trace.LevelOff, trace.ScopeDriver, false},
		{trace.LevelError, trace.ScopeDriver, false},
		{trace.LevelPhase, trace.ScopePass, true},
		{trace.LevelPhase, trace.ScopeFile, false},
		{trace.LevelDetail, trace.ScopeFile, true},
		{trace.LevelDetail, trace.ScopeNode, false},
		{trace.LevelDebug, trace.ScopeNode, true},
	}
	for _, tc := range cases {
		if got := tc.level.ShouldEmit(tc.scope); got != tc.want {
			t.Errorf("%s.ShouldEmit(%s) = %v, want %v", tc.level, tc.scope, got, tc.want)
		}
	}
}

func TestParseFlags(t *testing.T) {
	if l, err := trace.ParseLevel("DETAIL"); err != nil || l != trace.LevelDetail {
		t.Errorf("ParseLevel: %v %v", l, err)
	}
	if _, err := trace.ParseLevel("loud"); err == nil {
		t.Errorf("expected error for unknown level")
	}
	if f, err := trace.ParseFormat("chrome"); err != nil || f != trace.FormatChrome {
		t.Errorf("ParseFormat: %v %v", f, err)
	}
	if m, err := trace.ParseMode("both"); err != nil || m != trace.ModeBoth {
		t.Errorf("ParseMode: %v %v", m, err)
	}
}

func TestNewOffIsNop(t *testing.T) {
	tr, err := trace.New(trace.Config{Level: trace.LevelOff})
	if err != nil {
		t.Fatal(err)
	}
	if tr.Enabled() {
		t.Fatalf("LevelOff tracer must be disabled")
	}
}

func TestStartNestsSpans(t *testing.T) {
	ring := trace.NewRingTracer(16, trace.LevelDebug)
	ctx := trace.WithTracer(context.Background(), ring)

	outer, ctx := trace.Start(ctx, trace.ScopeDriver, "check")
	inner, _ := trace.Start(ctx, trace.ScopePass, "parse")
	inner.WithExtra("files", "2").End("")
	outer.End("ok")

	events := ring.Snapshot()
	if len(events) != 4 {
		t.Fatalf("expected 4 events, got %d", len(events))
	}
	if events[1].ParentID != outer.ID() {
		t.Errorf("inner parent = %d, want %d", events[1].ParentID, outer.ID())
	}
	if events[2].Kind != trace.KindSpanEnd || events[2].Extra["files"] != "2" {
		t.Errorf("inner end = %+v", events[2])
	}
	if events[3].Detail != "ok" {
		t.Errorf("outer detail = %q", events[3].Detail)
	}
}

func TestRingWrapsAround(t *testing.T) {
	ring := trace.NewRingTracer(3, trace.LevelDebug)
	ctx := trace.WithTracer(context.Background(), ring)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		trace.Point(ctx, trace.ScopeNode, name, "")
	}
	var names []string
	for _, ev := range ring.Snapshot() {
		names = append(names, ev.Name)
	}
	if got := strings.Join(names, ","); got != "c,d,e" {
		t.Fatalf("snapshot = %s, want c,d,e", got)
	}
}

func TestLevelFiltersScopes(t *testing.T) {
	ring := trace.NewRingTracer(8, trace.LevelPhase)
	ctx := trace.WithTracer(context.Background(), ring)
	span, _ := trace.Start(ctx, trace.ScopeFile, "file:a.flow")
	span.End("")
	if n := len(ring.Snapshot()); n != 0 {
		t.Fatalf("file scope leaked at phase level: %d events", n)
	}
}

func TestStreamNDJSON(t *testing.T) {
	var buf bytes.Buffer
	st := trace.NewStreamTracer(&buf, trace.LevelPhase, trace.FormatNDJSON)
	trace.Begin(st, trace.ScopePass, "resolve", 0).End("")
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d:\n%s", len(lines), buf.String())
	}
	var ev map[string]any
	if err := json.Unmarshal([]byte(lines[1]), &ev); err != nil {
		t.Fatalf("line is not json: %v", err)
	}
	if ev["kind"] != "end" || ev["name"] != "resolve" {
		t.Errorf("event = %v", ev)
	}
}

func TestStreamChromeIsValidJSON(t *testing.T) {
	var buf bytes.Buffer
	st := trace.NewStreamTracer(&buf, trace.LevelPhase, trace.FormatChrome)
	trace.Begin(st, trace.ScopePass, "lex", 0).End("done")
	if err := st.Close(); err != nil {
		t.Fatal(err)
	}
	var doc struct {
		TraceEvents []map[string]any `json:"traceEvents"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("chrome output is not json: %v\n%s", err, buf.String())
	}
	if len(doc.TraceEvents) != 2 || doc.TraceEvents[0]["ph"] != "B" {
		t.Fatalf("events = %v", doc.TraceEvents)
	}
}

func TestMultiFansOut(t *testing.T) {
	var buf bytes.Buffer
	tr, err := trace.New(trace.Config{Level: trace.LevelPhase, Mode: trace.ModeBoth, Output: &buf, Format: trace.FormatText})
	if err != nil {
		t.Fatal(err)
	}
	trace.Begin(tr, trace.ScopeDriver, "check", 0).End("")
	multi, ok := tr.(*trace.MultiTracer)
	if !ok {
		t.Fatalf("ModeBoth returned %T", tr)
	}
	ring, ok := multi.Ring()
	if !ok || len(ring.Snapshot()) != 2 {
		t.Fatalf("ring missing events")
	}
	if !strings.Contains(buf.String(), "→ check") {
		t.Errorf("text stream = %q", buf.String())
	}
}

func TestHeartbeatStopIsIdempotent(t *testing.T) {
	var h *trace.Heartbeat
	h.Stop()
	h = trace.StartHeartbeat(trace.NewRingTracer(4, trace.LevelPhase), 1<<40)
	h.Stop()
	h.Stop()
}
