package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("a.rs", []byte("fn f() {\n    x\n}\n"))

	start, end := fs.Resolve(Span{File: id, Start: 13, End: 14})
	if start != (LineCol{Line: 2, Col: 5}) {
		t.Fatalf("start = %+v", start)
	}
	if end != (LineCol{Line: 2, Col: 6}) {
		t.Fatalf("end = %+v", end)
	}

	first, _ := fs.Resolve(Span{File: id, Start: 0, End: 0})
	if first != (LineCol{Line: 1, Col: 1}) {
		t.Fatalf("first = %+v", first)
	}
}

func TestFileSetGetLine(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("a.rs", []byte("one\ntwo\nthree")))

	tests := []struct {
		line uint32
		want string
	}{
		{0, ""},
		{1, "one"},
		{2, "two"},
		{3, "three"},
		{4, ""},
	}
	for _, tt := range tests {
		if got := f.GetLine(tt.line); got != tt.want {
			t.Errorf("GetLine(%d) = %q, want %q", tt.line, got, tt.want)
		}
	}
}

func TestFileSetLoadNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "crlf.rs")
	if err := os.WriteFile(path, []byte("\xEF\xBB\xBFfn f() {}\r\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if string(f.Content) != "fn f() {}\n" {
		t.Fatalf("content = %q", f.Content)
	}
	if f.Flags&FileHadBOM == 0 || f.Flags&FileNormalizedCRLF == 0 {
		t.Fatalf("flags = %b", f.Flags)
	}
	if got, ok := fs.GetLatest(path); !ok || got != id {
		t.Fatalf("GetLatest = %d, %v", got, ok)
	}
}

func TestNormalizeCRLFKeepsLoneCR(t *testing.T) {
	out, changed := NormalizeCRLF([]byte("a\r\nb\rc"))
	if !changed || string(out) != "a\nb\rc" {
		t.Fatalf("NormalizeCRLF = %q, %v", out, changed)
	}
	if got := string(RestoreCRLF([]byte("a\nb\n"))); got != "a\r\nb\r\n" {
		t.Fatalf("RestoreCRLF = %q", got)
	}
}
