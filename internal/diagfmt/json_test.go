package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"vfmt/internal/diag"
	"vfmt/internal/source"
	"vfmt/internal/token"
)

func sampleBag(t *testing.T) (*diag.Bag, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("a.rs", []byte("fn f() {\n    let = 1;\n}\n"))
	bag := diag.NewBag(8)
	bag.Add(diag.NewError(diag.SynExpectPattern, source.Span{File: fileID, Start: 17, End: 18}, "expected pattern").
		WithNote(source.Span{File: fileID, Start: 0, End: 2}, "in this item"))
	bag.Add(diag.New(diag.SevWarning, diag.FmtDelegationFailed, source.Span{File: fileID, Start: 0, End: 8}, "delegated formatter failed"))
	bag.Add(diag.NewError(diag.IOWriteFailed, source.Span{}, "failed to write file"))
	return bag, fs
}

func TestJSON(t *testing.T) {
	bag, fs := sampleBag(t)
	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{IncludePositions: true, IncludeNotes: true}); err != nil {
		t.Fatal(err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if out.Count != 3 || len(out.Diagnostics) != 3 {
		t.Fatalf("count = %d", out.Count)
	}
	first := out.Diagnostics[0]
	if first.Severity != "error" || first.Code != "SYN2007" || first.Title != "Expected pattern" {
		t.Fatalf("first = %+v", first)
	}
	if first.Location == nil || first.Location.File != "a.rs" || first.Location.StartLine != 2 || first.Location.StartCol != 9 {
		t.Fatalf("location = %+v", first.Location)
	}
	if len(first.Notes) != 1 || first.Notes[0].Location.StartLine != 1 {
		t.Fatalf("notes = %+v", first.Notes)
	}
	if out.Diagnostics[1].Severity != "warning" {
		t.Fatalf("second = %+v", out.Diagnostics[1])
	}
	if out.Diagnostics[2].Location != nil {
		t.Fatalf("I/O diagnostic has a location: %+v", out.Diagnostics[2].Location)
	}
}

func TestJSONMaxAndNotes(t *testing.T) {
	bag, fs := sampleBag(t)
	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 1})
	if out.Count != 1 {
		t.Fatalf("count = %d", out.Count)
	}
	if out.Diagnostics[0].Notes != nil {
		t.Fatal("notes included without IncludeNotes")
	}
	if out.Diagnostics[0].Location.StartLine != 0 {
		t.Fatal("positions included without IncludePositions")
	}
}

func TestSarif(t *testing.T) {
	bag, fs := sampleBag(t)
	var buf bytes.Buffer
	if err := Sarif(&buf, bag, fs, SarifRunMeta{ToolName: "vfmt", ToolVersion: "test", InvocationArgs: []string{"fmt", "a.rs"}}); err != nil {
		t.Fatal(err)
	}
	var log sarifLog
	if err := json.Unmarshal(buf.Bytes(), &log); err != nil {
		t.Fatalf("invalid SARIF: %v", err)
	}
	if log.Version != "2.1.0" || len(log.Runs) != 1 {
		t.Fatalf("log = %+v", log)
	}
	run := log.Runs[0]
	if run.Tool.Driver.Name != "vfmt" || len(run.Tool.Driver.Rules) != 3 || len(run.Results) != 3 {
		t.Fatalf("run = %+v", run)
	}
	if r := run.Results[0]; r.Level != "error" || len(r.Locations) != 1 || r.Locations[0].PhysicalLocation.Region.StartLine != 2 {
		t.Fatalf("result = %+v", r)
	}
	if run.Invocations[0].ExecutionSuccessful {
		t.Fatal("run with errors reported as successful")
	}
}

func TestFormatTokens(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("t.rs", []byte("x // c\n"))
	toks := []token.Token{
		{Kind: token.Ident, Text: "x", Span: source.Span{File: fileID, Start: 0, End: 1},
			Trailing: []token.Trivia{{Kind: token.TriviaSpace, Text: " "}, {Kind: token.TriviaLineComment, Text: "// c"}}},
		{Kind: token.EOF, Span: source.Span{File: fileID, Start: 7, End: 7},
			Leading: []token.Trivia{{Kind: token.TriviaNewline, Text: "\n"}}},
	}

	var pretty bytes.Buffer
	if err := FormatTokensPretty(&pretty, toks, fs); err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(pretty.Bytes(), []byte(`"x" at 1:1-1:2 (trailing: space, line_comment)`)) {
		t.Fatalf("pretty output:\n%s", pretty.String())
	}

	var js bytes.Buffer
	if err := FormatTokensJSON(&js, toks); err != nil {
		t.Fatal(err)
	}
	var out []TokenOutput
	if err := json.Unmarshal(js.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if len(out) != 2 || out[0].Trailing[1].Text != "// c" || out[1].Leading[0].Kind != "newline" {
		t.Fatalf("json = %+v", out)
	}
}
