package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"vfmt/internal/driver"
)

func TestReadUIMode(t *testing.T) {
	tests := []struct {
		in      string
		want    uiMode
		wantErr bool
	}{
		{"", uiModeAuto, false},
		{"AUTO", uiModeAuto, false},
		{" on ", uiModeOn, false},
		{"off", uiModeOff, false},
		{"sometimes", "", true},
	}
	for _, tt := range tests {
		got, err := readUIMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("readUIMode(%q) error = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("readUIMode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if shouldUseTUI(uiModeOff, 10) || !shouldUseTUI(uiModeOn, 1) {
		t.Fatal("explicit ui modes not honoured")
	}
}

func TestSummaryExitCodes(t *testing.T) {
	changed := driver.FormatResult{Path: "a.rs", Changed: true}
	clean := driver.FormatResult{Path: "b.rs"}
	failed := driver.FormatResult{Path: "c.rs", Err: errors.New("boom")}

	tests := []struct {
		name    string
		results []driver.FormatResult
		check   bool
		want    int
	}{
		{"clean", []driver.FormatResult{clean}, true, exitOK},
		{"changed without check", []driver.FormatResult{changed}, false, exitOK},
		{"changed with check", []driver.FormatResult{changed, clean}, true, exitChanged},
		{"failure wins", []driver.FormatResult{changed, failed}, true, exitFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := summarize(tt.results).exitErr(tt.check)
			got := exitOK
			var exitErr *exitError
			if errors.As(err, &exitErr) {
				got = exitErr.code
			} else if err != nil {
				t.Fatalf("unexpected error type %T", err)
			}
			if got != tt.want {
				t.Fatalf("exit code = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestWriteDiff(t *testing.T) {
	var buf bytes.Buffer
	if err := writeDiff(&buf, "./src/a.rs", "fn f(){}\n", "fn f() {}\n"); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"--- a/src/a.rs\n", "+++ b/src/a.rs\n", "-fn f(){}\n", "+fn f() {}\n"} {
		if !strings.Contains(out, want) {
			t.Errorf("diff lacks %q:\n%s", want, out)
		}
	}
}

func TestRenderFmtText(t *testing.T) {
	results := []driver.FormatResult{
		{Path: "a.rs", Changed: true},
		{Path: "b.rs"},
		{Path: "c.rs", Changed: true, Err: errors.New("boom")},
	}

	var buf bytes.Buffer
	renderFmtText(&buf, results, true, false)
	if got := buf.String(); got != "a.rs\n" {
		t.Fatalf("check output = %q", got)
	}

	buf.Reset()
	renderFmtText(&buf, results, false, false)
	if got := buf.String(); got != "reformatted a.rs\n" {
		t.Fatalf("write output = %q", got)
	}

	buf.Reset()
	renderFmtText(&buf, results, false, true)
	if buf.Len() != 0 {
		t.Fatalf("quiet output = %q", buf.String())
	}
}

func TestRenderFmtShort(t *testing.T) {
	var buf bytes.Buffer
	renderFmtShort(&buf, []driver.FormatResult{{Path: "a.rs", Changed: true}, {Path: "b.rs"}})
	if got := buf.String(); got != "info FMT3003 a.rs File is not formatted\n" {
		t.Fatalf("got %q", got)
	}
}

func TestRenderFmtJSON(t *testing.T) {
	var buf bytes.Buffer
	results := []driver.FormatResult{
		{Path: "a.rs", Changed: true},
		{Path: "b.rs", Err: errors.New("boom")},
	}
	if err := renderFmtJSON(&buf, results, true); err != nil {
		t.Fatal(err)
	}
	var decoded []fmtJSONResult
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if len(decoded) != 2 || !decoded[0].Changed || !decoded[0].Check || decoded[1].Error != "boom" {
		t.Fatalf("decoded = %+v", decoded)
	}
}
