package diag

import (
	"testing"

	"vfmt/internal/source"
)

func TestFormatShort(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.AddVirtual("./testdata/sample.rs", []byte("a\nb\n"))

	diags := []Diagnostic{
		{
			Severity: SevWarning,
			Code:     FmtDelegationFailed,
			Message:  "another",
			Primary:  source.Span{File: file, Start: 2, End: 3},
		},
		{
			Severity: SevError,
			Code:     SynUnexpectedToken,
			Message:  "first line\nsecond",
			Primary:  source.Span{File: file, Start: 0, End: 1},
			Notes: []Note{
				{Span: source.Span{File: file, Start: 2, End: 3}, Msg: "note line"},
			},
		},
	}

	want := "error SYN2001 testdata/sample.rs:1:1 first line second\n" +
		"warning FMT3001 testdata/sample.rs:2:1 another\n" +
		"note SYN2001 testdata/sample.rs:2:1 note line"

	if got := FormatShort(diags, fs, true); got != want {
		t.Fatalf("unexpected output:\nwant:\n%s\n\ngot:\n%s", want, got)
	}
	if got := FormatShort(nil, fs, true); got != "" {
		t.Fatalf("empty input produced %q", got)
	}
}
