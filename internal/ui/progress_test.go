package ui

import (
	"strings"
	"testing"

	"paracell/internal/driver"
)

func TestApplyEventTracksStages(t *testing.T) {
	m := NewProgressModel("check", []string{"a.flow", "b.flow"}, nil).(*progressModel)
	m.applyEvent(driver.Event{File: "a.flow", Stage: driver.StageLower, Status: driver.StatusWorking})
	if m.items[0].status != "lowering" {
		t.Fatalf("status = %q", m.items[0].status)
	}
	if got := m.percent(); got != 0.25 {
		t.Errorf("percent = %v, want 0.25", got)
	}
	m.applyEvent(driver.Event{File: "a.flow", Status: driver.StatusDone})
	m.applyEvent(driver.Event{File: "b.flow", Status: driver.StatusError})
	m.applyEvent(driver.Event{File: "unknown.flow", Status: driver.StatusDone})
	if m.finished() != 2 || m.percent() != 1 {
		t.Errorf("finished = %d percent = %v", m.finished(), m.percent())
	}
	view := m.View()
	for _, want := range []string{"check (2/2)", "a.flow", "error"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short.flow", 20, "short.flow"},
		{"very/long/path/to/file.flow", 10, "very/lo..."},
		{"abcdef", 3, "abc"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}
