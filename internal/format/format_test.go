package format

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"
	"unicode/utf8"

	"vfmt/internal/delegate"
	"vfmt/internal/diag"
	"vfmt/internal/lexer"
	"vfmt/internal/source"
)

func formatString(t *testing.T, src string, opts Options) string {
	t.Helper()
	res, err := Source(context.Background(), []byte(src), opts)
	if err != nil {
		t.Fatalf("Source(%q): %v", src, err)
	}
	return string(res.Text)
}

func TestSource(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		width int
		want  string
	}{
		{
			name: "requires clause and assert",
			src:  "fn f(x:int)requires x>0{ assert(x>=0); }",
			want: "fn f(x: int)\n    requires x > 0\n{\n    assert(x >= 0);\n}\n",
		},
		{
			name: "blank lines between items collapse",
			src:  "fn a() {}\n\n\n\nfn b() {}\n",
			want: "fn a() {}\n\nfn b() {}\n",
		},
		{
			name: "no blank line invented",
			src:  "fn a() {}\nfn b() {}\n",
			want: "fn a() {}\nfn b() {}\n",
		},
		{
			name: "comments kept",
			src:  "// header\nfn f() {} // trailing\n",
			want: "// header\nfn f() {} // trailing\n",
		},
		{
			name: "struct fields one per line",
			src:  "struct Point{x:i32,y:i32}",
			want: "struct Point {\n    x: i32,\n    y: i32,\n}\n",
		},
		{
			name: "enum variants",
			src:  "enum E{A,B(u8),C{x:u8}}",
			want: "enum E {\n    A,\n    B(u8),\n    C { x: u8 },\n}\n",
		},
		{
			name: "match arms",
			src:  "fn f(x: u8) -> u8 { match x { 0 => 1, _ => { 2 } } }",
			want: "fn f(x: u8) -> u8 {\n    match x {\n        0 => 1,\n        _ => {\n            2\n        }\n    }\n}\n",
		},
		{
			name: "several clause expressions",
			src:  "proof fn f(x: int)\nrequires x > 0, x < 10,\nensures x > 1,\n{\n}\n",
			want: "proof fn f(x: int)\n    requires\n        x > 0,\n        x < 10,\n    ensures x > 1\n{}\n",
		},
		{
			name: "quantifier",
			src:  "spec fn p(s: Seq<int>) -> bool { forall|i:int| 0 <= i < s.len() ==> s[i] > 0 }",
			want: "spec fn p(s: Seq<int>) -> bool {\n    forall|i: int| 0 <= i < s.len() ==> s[i] > 0\n}\n",
		},
		{
			name:  "long chain breaks before operators",
			src:   "fn f() -> bool { aaaaaaaaaa && bbbbbbbbbb && cccccccccc && dddddddddd }",
			width: 40,
			want:  "fn f() -> bool {\n    aaaaaaaaaa\n        && bbbbbbbbbb\n        && cccccccccc\n        && dddddddddd\n}\n",
		},
		{
			name: "blank lines and comments in a block",
			src:  "fn f() {\n    let x = 1;\n\n\n    // note\n    let y = 2; // two\n}\n",
			want: "fn f() {\n    let x = 1;\n\n    // note\n    let y = 2; // two\n}\n",
		},
		{
			name: "blank line after open brace dropped",
			src:  "fn f() {\n\n    g();\n\n}\n",
			want: "fn f() {\n    g();\n}\n",
		},
		{
			name: "use tree",
			src:  "use std::{collections::HashMap,fmt};",
			want: "use std::{collections::HashMap, fmt};\n",
		},
		{
			name: "attribute content untouched",
			src:  "#[derive(Debug,Clone)]\npub struct S;",
			want: "#[derive(Debug,Clone)]\npub struct S;\n",
		},
		{
			name: "if else",
			src:  "fn f(b: bool) -> u8 { if b { 1 } else { 2 } }",
			want: "fn f(b: bool) -> u8 {\n    if b {\n        1\n    } else {\n        2\n    }\n}\n",
		},
		{
			name: "closure",
			src:  "fn f() { let g = |x: u8| x + 1; g(2); }",
			want: "fn f() {\n    let g = |x: u8| x + 1;\n    g(2);\n}\n",
		},
		{
			name: "generics and where clause",
			src:  "fn f<T:Clone+Copy>(t:T)->T where T:Default{t}",
			want: "fn f<T: Clone + Copy>(t: T) -> T\nwhere\n    T: Default,\n{\n    t\n}\n",
		},
		{
			name: "verus macro body not indented",
			src:  "verus!{\nfn f() {}\n}",
			want: "verus! {\nfn f() {}\n}\n",
		},
		{
			name: "verus macro keeps blank lines at braces",
			src:  "verus! {\n\nfn f() {}\n\n}\n",
			want: "verus! {\n\nfn f() {}\n\n}\n",
		},
		{
			name: "trailing comment breaks argument list",
			src:  "fn f() {\n    g(a, // first\n        b);\n}\n",
			want: "fn f() {\n    g(\n        a, // first\n        b,\n    );\n}\n",
		},
		{
			name: "one element tuple keeps comma",
			src:  "fn f() { let t = (1,); let p = (1); }",
			want: "fn f() {\n    let t = (1,);\n    let p = (1);\n}\n",
		},
		{
			name: "bullets",
			src:  "spec fn f(a: bool, b: bool) -> bool { &&& a &&& b }",
			want: "spec fn f(a: bool, b: bool) -> bool {\n    &&& a\n    &&& b\n}\n",
		},
		{
			name: "empty file",
			src:  "",
			want: "",
		},
		{
			name: "named return",
			src:  "fn f(x: u64) -> (r: u64)\n    ensures r == x,\n{\n    x\n}\n",
			want: "fn f(x: u64) -> (r: u64)\n    ensures r == x\n{\n    x\n}\n",
		},
		{
			name: "tracked named return",
			src:  "proof fn g() -> (tracked t: T) {}",
			want: "proof fn g() -> (tracked t: T) {}\n",
		},
		{
			name: "inline comment before comma",
			src:  "fn f(/* a */ x: u8/* b */ , y: u8) {}",
			want: "fn f(/* a */ x: u8 /* b */, y: u8) {}\n",
		},
		{
			name: "inline comment before generic close",
			src:  "fn f<T/* gen */ >() {}",
			want: "fn f<T /* gen */>() {}\n",
		},
		{
			name: "tuple return",
			src:  "fn f() -> (u8, u8) { (1, 2) }",
			want: "fn f() -> (u8, u8) {\n    (1, 2)\n}\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatString(t, tt.src, Options{LineWidth: tt.width})
			if got != tt.want {
				t.Fatalf("Source() =\n%s\nwant\n%s\n(got %q)", got, tt.want, got)
			}
			again := formatString(t, got, Options{LineWidth: tt.width})
			if again != got {
				t.Fatalf("not idempotent:\nfirst\n%s\nsecond\n%s", got, again)
			}
		})
	}
}

func TestSourceDeterministic(t *testing.T) {
	src := "impl<T> S<T> {\n    fn a(&self) -> u8 { 1 }\n\n    fn b(&mut self, x: T) where T: Clone { self.x = x.clone(); }\n}\n"
	first := formatString(t, src, Options{})
	for range 5 {
		if got := formatString(t, src, Options{}); got != first {
			t.Fatalf("output changed between runs:\n%s\n---\n%s", first, got)
		}
	}
}

func TestSourceKeepsComments(t *testing.T) {
	src := `//! crate docs
/// item docs
fn f(/* inline */ x: u8) -> u8 { // after brace
    // own line
    let y = x; /* trailing block */


    // after blank
    y
    // before close
}
// end of file
`
	got := formatString(t, src, Options{})
	if want, have := comments(t, src), comments(t, got); !slices.Equal(want, have) {
		t.Fatalf("comments differ:\nwant %q\ngot  %q\noutput:\n%s", want, have, got)
	}
	if again := formatString(t, got, Options{}); again != got {
		t.Fatalf("not idempotent:\n%s\n---\n%s", got, again)
	}
}

func comments(t *testing.T, src string) []string {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("c.rs", []byte(src)))
	var out []string
	for _, tok := range lexer.Tokenize(file, lexer.Options{}) {
		for _, tv := range tok.Leading {
			if tv.IsComment() {
				out = append(out, strings.TrimRight(tv.Text, " \t"))
			}
		}
	}
	return out
}

func TestSourceRespectsWidth(t *testing.T) {
	var b strings.Builder
	b.WriteString("fn long(")
	for i := range 12 {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString("argument_")
		b.WriteByte(byte('a' + i))
		b.WriteString(": u64")
	}
	b.WriteString(") -> u64 { call_something(argument_a, argument_b, argument_c, argument_d, argument_e) }\n")

	const width = 60
	got := formatString(t, b.String(), Options{LineWidth: width})
	for i, line := range strings.Split(got, "\n") {
		if n := utf8.RuneCountInString(line); n > width {
			t.Fatalf("line %d has %d runes (> %d): %q", i+1, n, width, line)
		}
	}
	if !strings.Contains(got, "    argument_l: u64,\n) -> u64 {") {
		t.Fatalf("expected one parameter per line:\n%s", got)
	}
}

func TestSourceParseError(t *testing.T) {
	src := "fn f() { let = 1; }"
	_, err := Source(context.Background(), []byte(src), Options{})
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
	if perr.Span.Start > 13 || perr.Span.End <= 13 {
		t.Fatalf("span %v does not cover the '=' at offset 13", perr.Span)
	}
	if perr.Line != 1 || perr.Col != 14 {
		t.Fatalf("position %d:%d, want 1:14", perr.Line, perr.Col)
	}
	d, ok := AsDiagnostic(err)
	if !ok || d.Code != diag.SynExpectPattern {
		t.Fatalf("diagnostic %v (%v), want SynExpectPattern", d.Code, ok)
	}
}

func TestSourceMalformedInputs(t *testing.T) {
	for _, src := range []string{
		"fn f( {",
		"struct S { x: }",
		"fn f() { g(1, 2; }",
		"impl S { fn }",
		"fn f() { let x = ; }",
	} {
		if _, err := Source(context.Background(), []byte(src), Options{}); err == nil {
			t.Errorf("Source(%q) succeeded, want error", src)
		}
	}
}

func TestSourceInvalidUTF8(t *testing.T) {
	_, err := Source(context.Background(), []byte("fn f() {}\n\xff"), Options{})
	var lexErr *LexError
	if !errors.As(err, &lexErr) {
		t.Fatalf("expected *LexError, got %v", err)
	}
	if lexErr.Span.Start != 10 || lexErr.Line != 2 || lexErr.Col != 1 {
		t.Fatalf("got span %v at %d:%d", lexErr.Span, lexErr.Line, lexErr.Col)
	}
}

type call struct {
	fragment string
	indent   int
	config   string
}

type fakeFormatter struct {
	calls []call
	fn    func(string) (string, error)
}

func (f *fakeFormatter) Format(_ context.Context, fragment string, indent int, config []byte) (string, error) {
	f.calls = append(f.calls, call{fragment: fragment, indent: indent, config: string(config)})
	return f.fn(fragment)
}

var _ delegate.Formatter = (*fakeFormatter)(nil)

const mixedSource = "fn a() {}\n\nfn b(x: int) requires x > 0 {}\n"

func TestDelegationAccepted(t *testing.T) {
	fake := &fakeFormatter{fn: func(s string) (string, error) {
		return strings.Replace(s, "{}", "{ }", 1), nil
	}}
	res, err := Source(context.Background(), []byte(mixedSource), Options{
		Delegate: true, Formatter: fake, DelegateConfig: []byte("max_width = 80\n"),
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", res.Warnings)
	}
	want := "fn a() { }\n\nfn b(x: int)\n    requires x > 0\n{}\n"
	if string(res.Text) != want {
		t.Fatalf("got\n%s\nwant\n%s", res.Text, want)
	}
	if len(fake.calls) != 1 {
		t.Fatalf("formatter called %d times, want 1", len(fake.calls))
	}
	if c := fake.calls[0]; c.fragment != "fn a() {}\n" || c.indent != 0 || c.config != "max_width = 80\n" {
		t.Fatalf("unexpected call %+v", c)
	}
}

func TestDelegationIndentedRegion(t *testing.T) {
	src := "impl S {\n    fn a() {}\n\n    spec fn b() -> int { 1 }\n}\n"
	fake := &fakeFormatter{fn: func(s string) (string, error) { return s, nil }}
	res, err := Source(context.Background(), []byte(src), Options{Delegate: true, Formatter: fake})
	if err != nil {
		t.Fatal(err)
	}
	if len(fake.calls) != 1 {
		t.Fatalf("formatter called %d times, want 1", len(fake.calls))
	}
	if c := fake.calls[0]; c.fragment != "fn a() {}\n" || c.indent != 4 {
		t.Fatalf("unexpected call %+v", c)
	}
	want := "impl S {\n    fn a() {}\n\n    spec fn b() -> int {\n        1\n    }\n}\n"
	if string(res.Text) != want {
		t.Fatalf("got\n%s\nwant\n%s", res.Text, want)
	}
}

func TestDelegationFallback(t *testing.T) {
	core := formatString(t, mixedSource, Options{})
	tests := []struct {
		name string
		fn   func(string) (string, error)
		code diag.Code
	}{
		{"formatter error", func(string) (string, error) { return "", errors.New("boom") }, diag.FmtDelegationFailed},
		{"tokens changed", func(s string) (string, error) { return strings.Replace(s, "a", "z", 1), nil }, diag.FmtDelegationChanged},
		{"comment added", func(s string) (string, error) { return "// added\n" + s, nil }, diag.FmtDelegationChanged},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bag := diag.NewBag(8)
			res, err := Source(context.Background(), []byte(mixedSource), Options{
				Delegate: true, Formatter: &fakeFormatter{fn: tt.fn}, Reporter: &diag.BagReporter{Bag: bag},
			})
			if err != nil {
				t.Fatal(err)
			}
			if string(res.Text) != core {
				t.Fatalf("fallback text\n%s\nwant core rendering\n%s", res.Text, core)
			}
			if len(res.Warnings) != 1 {
				t.Fatalf("got %d warnings, want 1", len(res.Warnings))
			}
			items := bag.Items()
			if len(items) != 1 || items[0].Code != tt.code || items[0].Severity != diag.SevWarning {
				t.Fatalf("reported %+v, want one %v warning", items, tt.code)
			}
		})
	}
}

func TestDelegationOffByDefault(t *testing.T) {
	fake := &fakeFormatter{fn: func(string) (string, error) { return "", errors.New("must not be called") }}
	res, err := Source(context.Background(), []byte(mixedSource), Options{Formatter: fake})
	if err != nil {
		t.Fatal(err)
	}
	if len(fake.calls) != 0 || len(res.Warnings) != 0 {
		t.Fatalf("delegation ran without being enabled")
	}
}

func TestDedentReindent(t *testing.T) {
	in := "    fn a() {\n        x\n    }\n\n    fn b() {}"
	out := dedent(in, 4)
	if out != "fn a() {\n    x\n}\n\nfn b() {}" {
		t.Fatalf("dedent = %q", out)
	}
	if back := reindent(out, 4); back != in {
		t.Fatalf("reindent = %q", back)
	}
}
