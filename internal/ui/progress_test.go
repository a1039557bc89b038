package ui

import (
	"strings"
	"testing"

	"github.com/lukeapage/flow-to-ts/internal/driver"
)

func TestProgressModelTracksFiles(t *testing.T) {
	files := []string{"a.js", "b.js", "c.js"}
	m := NewProgressModel("converting", files, nil).(*progressModel)

	for _, ev := range []driver.Event{
		{File: "a.js", Stage: driver.StageConvert, Status: driver.StatusWorking},
		{File: "b.js", Stage: driver.StageWrite, Status: driver.StatusDone},
		{File: "c.js", Stage: driver.StageConvert, Status: driver.StatusError},
		{File: "unknown.js", Stage: driver.StageRead, Status: driver.StatusWorking},
	} {
		m.Update(eventMsg(ev))
	}

	finished, failed := m.counts()
	if finished != 2 || failed != 1 {
		t.Fatalf("counts = %d, %d", finished, failed)
	}
	view := m.View()
	for _, want := range []string{"converting 2/3, 1 failed", "converting a.js", "done b.js", "error c.js"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view lacks %q:\n%s", want, view)
		}
	}

	_, cmd := m.Update(doneMsg{})
	if !m.done || cmd == nil {
		t.Fatalf("done message not handled")
	}
	if !strings.HasPrefix(m.View(), "done:") && !strings.Contains(m.View(), "done: converting") {
		t.Fatalf("final header missing:\n%s", m.View())
	}
}

func TestProgressModelLargeBatch(t *testing.T) {
	files := make([]string, maxListed+5)
	for i := range files {
		files[i] = strings.Repeat("x", i+1) + ".js"
	}
	m := NewProgressModel("t", files, nil).(*progressModel)
	m.Update(eventMsg{File: files[0], Stage: driver.StageConvert, Status: driver.StatusWorking})
	m.Update(eventMsg{File: files[1], Stage: driver.StageWrite, Status: driver.StatusDone})
	if got := len(m.visible()); got != 1 {
		t.Fatalf("visible rows = %d", got)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short.js", 20, "short.js"},
		{"a/very/long/path.js", 10, "a/very/..."},
		{"abcdef", 3, "abc"},
		{"日本語.js", 5, "日..."},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Fatalf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}
