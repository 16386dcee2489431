package ui

import (
	"strings"
	"testing"

	"vfmt/internal/driver"
)

func TestProgressModelCounts(t *testing.T) {
	events := make(chan driver.ProgressEvent)
	m := NewProgressModel("formatting", []string{"a.rs", "b.rs"}, events).(*progressModel)

	m.applyEvent(driver.ProgressEvent{Path: "a.rs", Status: driver.FileStarted})
	if m.items[0].status != "formatting" || m.done != 0 {
		t.Fatalf("after start: %+v done=%d", m.items[0], m.done)
	}
	m.applyEvent(driver.ProgressEvent{Path: "a.rs", Status: driver.FileChanged})
	m.applyEvent(driver.ProgressEvent{Path: "b.rs", Status: driver.FileFailed})
	m.applyEvent(driver.ProgressEvent{Path: "unknown.rs", Status: driver.FileChanged})

	if m.done != 2 || m.counts[driver.FileChanged] != 1 || m.counts[driver.FileFailed] != 1 {
		t.Fatalf("done=%d counts=%v", m.done, m.counts)
	}
	view := m.View()
	for _, want := range []string{"2/2", "changed 1", "failed 1", "a.rs", "b.rs"} {
		if !strings.Contains(view, want) {
			t.Errorf("view lacks %q:\n%s", want, view)
		}
	}
}

func TestVisibleLimitsRows(t *testing.T) {
	files := make([]string, 30)
	for i := range files {
		files[i] = strings.Repeat("x", i+1) + ".rs"
	}
	m := NewProgressModel("t", files, nil).(*progressModel)
	for _, f := range files[:20] {
		m.applyEvent(driver.ProgressEvent{Path: f, Status: driver.FileUnchanged})
	}
	m.applyEvent(driver.ProgressEvent{Path: files[25], Status: driver.FileStarted})

	rows := m.visible()
	if len(rows) != maxVisible {
		t.Fatalf("got %d rows", len(rows))
	}
	if rows[0].path != files[25] {
		t.Fatalf("active file not first: %+v", rows[0])
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Fatalf("got %q", got)
	}
	if got := truncate("a-very-long-path.rs", 10); got != "a-very-..." {
		t.Fatalf("got %q", got)
	}
	if got := truncate("日本語のパス", 5); got != "日..." {
		t.Fatalf("got %q", got)
	}
}
