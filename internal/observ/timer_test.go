package observ

import (
	"strings"
	"testing"
)

func TestTimerReport(t *testing.T) {
	timer := NewTimer()
	read := timer.Begin("read")
	timer.End(read, "")
	format := timer.Begin("format")
	timer.End(format, "changed")
	timer.End(99, "ignored")

	r := timer.Report()
	if len(r.Phases) != 2 || r.Phases[0].Name != "read" || r.Phases[1].Note != "changed" {
		t.Fatalf("unexpected report: %+v", r)
	}
	summary := timer.Summary()
	for _, want := range []string{"timings:", "read", "format", "// changed", "total"} {
		if !strings.Contains(summary, want) {
			t.Errorf("summary lacks %q:\n%s", want, summary)
		}
	}
}

func TestEmptyTimer(t *testing.T) {
	r := NewTimer().Report()
	if r.TotalMS != 0 || r.Phases != nil {
		t.Fatalf("got %+v", r)
	}
}

func TestMerge(t *testing.T) {
	a := Report{TotalMS: 3, Phases: []PhaseReport{{Name: "read", DurationMS: 1}, {Name: "format", DurationMS: 2}}}
	b := Report{TotalMS: 5, Phases: []PhaseReport{{Name: "format", DurationMS: 4}, {Name: "write", DurationMS: 1, Note: "x"}}}
	m := Merge(a, b)
	if m.TotalMS != 8 {
		t.Fatalf("total = %v", m.TotalMS)
	}
	want := []PhaseReport{{Name: "read", DurationMS: 1}, {Name: "format", DurationMS: 6}, {Name: "write", DurationMS: 1}}
	if len(m.Phases) != len(want) {
		t.Fatalf("phases = %+v", m.Phases)
	}
	for i := range want {
		if m.Phases[i] != want[i] {
			t.Errorf("phase %d = %+v, want %+v", i, m.Phases[i], want[i])
		}
	}
	if top := m.Slowest(1); len(top) != 1 || top[0].Name != "format" {
		t.Fatalf("slowest = %+v", top)
	}
}
