package diag

import (
	"testing"

	"vfmt/internal/source"
)

func TestBagLimitAndDropped(t *testing.T) {
	b := NewBag(2)
	for i := range 3 {
		b.Add(NewError(SynUnexpectedToken, source.Span{Start: uint32(i), End: uint32(i) + 1}, "x"))
	}
	if b.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", b.Len())
	}
	if b.Dropped() != 1 {
		t.Fatalf("Dropped() = %d, want 1", b.Dropped())
	}
	if !b.HasErrors() {
		t.Fatal("expected errors")
	}
}

func TestBagSortAndDedup(t *testing.T) {
	b := NewBag(10)
	b.Add(New(SevWarning, FmtDelegationFailed, source.Span{Start: 5, End: 6}, "w"))
	b.Add(NewError(SynUnexpectedToken, source.Span{Start: 1, End: 2}, "e"))
	b.Add(NewError(SynUnexpectedToken, source.Span{Start: 1, End: 2}, "e"))
	b.Sort()
	b.Dedup()

	items := b.Items()
	if len(items) != 2 {
		t.Fatalf("len = %d, want 2", len(items))
	}
	if items[0].Code != SynUnexpectedToken || items[1].Code != FmtDelegationFailed {
		t.Fatalf("unexpected order: %v, %v", items[0].Code, items[1].Code)
	}
	if b.HasErrors() != true || b.HasWarnings() != true {
		t.Fatal("severity helpers disagree with content")
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(10)
	r := NewDedupReporter(&BagReporter{Bag: bag})
	sp := source.Span{Start: 3, End: 4}
	r.Report(LexUnknownChar, SevError, sp, "unknown character", nil)
	r.Report(LexUnknownChar, SevError, sp, "unknown character", nil)
	ReportWarning(r, FmtDelegationChanged, sp, "changed").WithNote(sp, "here").Emit()
	if bag.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", bag.Len())
	}
	if got := bag.Items()[1].Notes; len(got) != 1 || got[0].Msg != "here" {
		t.Fatalf("notes = %+v", got)
	}
}

func TestCodeID(t *testing.T) {
	tests := map[Code]string{
		LexUnknownChar:      "LEX1001",
		SynUnexpectedToken:  "SYN2001",
		FmtDelegationFailed: "FMT3001",
		IOReadFailed:        "IO4001",
		CfgInvalid:          "CFG5001",
		UnknownCode:         "E0000",
	}
	for code, want := range tests {
		if got := code.ID(); got != want {
			t.Errorf("%d.ID() = %q, want %q", code, got, want)
		}
	}
	if got := Code(9999).Title(); got != "Unknown error" {
		t.Errorf("Title() = %q", got)
	}
}
