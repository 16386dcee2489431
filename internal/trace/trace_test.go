package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	for _, want := range []Level{LevelOff, LevelError, LevelPhase, LevelDetail, LevelDebug} {
		got, err := ParseLevel(strings.ToUpper(want.String()))
		if err != nil || got != want {
			t.Errorf("ParseLevel(%q) = %v, %v", want.String(), got, err)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestShouldEmit(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelError, ScopeFile, true},
		{LevelError, ScopePass, false},
		{LevelPhase, ScopeFile, true},
		{LevelPhase, ScopePass, false},
		{LevelDetail, ScopePass, true},
		{LevelDetail, ScopeNode, false},
		{LevelDebug, ScopeNode, true},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.scope); got != tt.want {
			t.Errorf("%v.ShouldEmit(%v) = %v, want %v", tt.level, tt.scope, got, tt.want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{"": FormatAuto, "auto": FormatAuto, "TEXT": FormatText, "ndjson": FormatNDJSON, "json": FormatNDJSON}
	for in, want := range tests {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestFormatText(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	ev := &Event{
		Time:   start.Add(1500 * time.Microsecond),
		Kind:   KindSpanEnd,
		Scope:  ScopePass,
		Name:   "layout",
		Detail: "ok",
		Extra:  map[string]string{"z": "1", "a": "2"},
	}
	got := string(FormatEvent(ev, FormatText, start))
	want := "[    1.500ms]     < layout (ok) {a=2, z=1}\n"
	if got != want {
		t.Fatalf("got  %q\nwant %q", got, want)
	}
}

func TestFormatNDJSON(t *testing.T) {
	ev := &Event{Time: time.Now(), Seq: 7, Kind: KindPoint, Scope: ScopeFile, Name: "delegation_warning"}
	line := FormatEvent(ev, FormatNDJSON, time.Time{})
	if !bytes.HasSuffix(line, []byte("\n")) {
		t.Fatalf("missing newline: %q", line)
	}
	var decoded map[string]any
	if err := json.Unmarshal(line, &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded["kind"] != "point" || decoded["scope"] != "file" || decoded["seq"] != float64(7) {
		t.Fatalf("decoded = %v", decoded)
	}
}

func TestSpansThroughStreamTracer(t *testing.T) {
	var buf bytes.Buffer
	tracer := NewStreamTracer(&buf, LevelDetail, FormatText)
	ctx := WithTracer(context.Background(), tracer)

	root := Begin(FromContext(ctx), ScopeDriver, "format_paths", 0)
	ctx = WithSpan(ctx, root)
	pass := Begin(FromContext(ctx), ScopePass, "lex", CurrentSpan(ctx).SpanID)
	pass.WithExtra("tokens", "12").End("")
	node := Begin(FromContext(ctx), ScopeNode, "region", CurrentSpan(ctx).SpanID)
	node.End("")
	root.End("")

	if CurrentSpan(ctx).SpanID != root.ID() || root.ID() == 0 {
		t.Fatalf("span context not propagated")
	}
	if node.ID() != 0 {
		t.Fatalf("node span should be disabled at detail level")
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[2], "< lex {tokens=12}") {
		t.Fatalf("pass end line = %q", lines[2])
	}
}

func TestErrorLevelKeepsFailuresOnly(t *testing.T) {
	var buf bytes.Buffer
	tracer := NewStreamTracer(&buf, LevelError, FormatText)
	Begin(tracer, ScopeFile, "file:a.rs", 0).End("")
	Begin(tracer, ScopeFile, "file:b.rs", 0).End("error: unexpected token")

	out := buf.String()
	if strings.Contains(out, "a.rs") || !strings.Contains(out, "< file:b.rs (error: unexpected token)") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestNopAndNew(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Fatal("empty context should yield Nop")
	}
	tr, err := New(Config{Level: LevelOff})
	if err != nil || tr != Nop {
		t.Fatalf("New(off) = %v, %v", tr, err)
	}
	var buf bytes.Buffer
	tr, err = New(Config{Level: LevelPhase, Output: &buf})
	if err != nil {
		t.Fatal(err)
	}
	Begin(tr, ScopeDriver, "run", 0).End("")
	if err := tr.Close(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "> run") {
		t.Fatalf("output = %q", buf.String())
	}
	var disabled *Span
	if disabled.End("x") != 0 || disabled.ID() != 0 {
		t.Fatal("nil span should be inert")
	}
}
