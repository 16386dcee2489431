package parser_test

import (
	"strings"
	"testing"

	"vfmt/internal/cst"
	"vfmt/internal/diag"
	"vfmt/internal/lexer"
	"vfmt/internal/parser"
	"vfmt/internal/source"
	"vfmt/internal/token"
)

func parse(t *testing.T, input string) (*cst.Node, *parser.Error) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.rs", []byte(input)))
	toks := lexer.Tokenize(file, lexer.Options{})
	return parser.ParseFile(toks, parser.Options{})
}

func mustParse(t *testing.T, input string) *cst.Node {
	t.Helper()
	root, err := parse(t, input)
	if err != nil {
		t.Fatalf("unexpected parse error: %v\ninput:\n%s", err, input)
	}
	if got := cst.Text(root); got != input {
		t.Fatalf("tree is not lossless\nwant:\n%s\ngot:\n%s", input, got)
	}
	return root
}

func find(root *cst.Node, kind cst.Kind) []*cst.Node {
	var out []*cst.Node
	cst.Walk(root, func(n *cst.Node) bool {
		if n.Kind == kind {
			out = append(out, n)
		}
		return true
	})
	return out
}

func TestParseLossless(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"minimal fn", "fn f(x:int)requires x>0{ assert(x>=0); }"},
		{"verus wrapper", `use vstd::prelude::*;

verus! {

spec fn add(a: int, b: int) -> int {
    a + b
}

proof fn lemma(x: nat)
    ensures x + 0 == x,
{
}

} // verus!
`},
		{"generics and where", "fn f(v: Vec<Vec<u8>>) -> Option<&'a T> where T: Clone + 'a {}\n"},
		{"statements", `fn g(o: Option<u8>) -> u8 {
    let s = S { a: 1, ..Default::default() };
    let c = |x: u8| x + 1;
    if let Some(v) = o { v } else { 0 }
}
`},
		{"match", `fn m(o: Option<u8>) -> u8 {
    match o {
        Some(v) if v > 1 => v,
        None => { 0 }
        _ => 2,
    }
}
`},
		{"proof constructs", `proof fn q(s: Seq<int>)
    requires
        forall|i: int| 0 <= i < s.len() ==> #[trigger] s[i] > 0,
        s.len() > 0,
    ensures
        &&& s.len() > 0
        &&& s[0] > 0,
{
    let mut i = 0;
    while i < 10
        invariant
            0 <= i <= 10,
        decreases 10 - i,
    {
        i = i + 1;
    }
    assert(s[0] > 0) by {
        assert(s.len() > 0);
    }
    assert forall|j: int| 0 <= j < s.len() implies s[j] > 0 by {
    }
    proof {
        let tracked x = 1;
    }
}
`},
		{"items", `#![allow(unused)]

pub struct Point<T> {
    pub x: T,
    ghost y: int,
}

pub enum E { A, B(u8), C { f: u8 }, D = 3 }

impl<T: Copy> Point<T> {
    pub open spec fn view(&self) -> int { self.y }

    #[verifier::external_body]
    pub fn new(x: T) -> (p: Self)
        ensures p.x == x,
    { Point { x, y: 0 } }
}

pub trait Tr: Sized {
    spec fn f(&self) -> bool;
    proof fn g(&self) ensures self.f();
}

pub const C: u64 = 1 << 3;
type A = Vec<u8>;
mod m { use super::*; }
broadcast use vstd::seq::group_seq_axioms;
pub broadcast group g { lemma_a, lemma_b }
macro_rules! mac { () => {} }
`},
		{"casts and ranges", "fn r(x: u8) -> u64 { let y = (x as u64) + 1; for i in 0..y { } y }\n"},
		{"tuple index", "fn t(p: (u8, (u8, u8))) -> u8 { p.1.0 }\n"},
		{"labeled loop", "fn l() { 'outer: loop { break 'outer; } }\n"},
		{"closures", "fn c() { let f = move || -> u8 { 1 }; let g = |a, b| a + b; }\n"},
		{"unit and tuples", "fn u() -> () { let t = (1,); let p = (1); let e = (); }\n"},
		{"arrays", "fn a() { let x = [0u8; 4]; let y = [1, 2, 3]; }\n"},
		{"comments everywhere", "// head\nfn f(/* a */ x: u8 /* b */) { // tail\n    x; // after\n}\n// end\n"},
		{"verus operators", "spec fn e(a: Seq<int>, b: Seq<int>) -> bool { a =~= b && a.len() === b.len() <==> true }\n"},
		{"is and matches", "spec fn v(o: Option<int>) -> bool { o is Some && (o matches Some(x) ==> x > 0) }\n"},
		{"view and try", "fn w(v: Vec<u8>) -> Option<u8> { let n = v@.len(); v.get(0).copied()? ; None }\n"},
		{"turbofish", "fn t() { let v = Vec::<u8>::new(); let n = v.iter().collect::<Vec<_>>(); }\n"},
		{"impl trait for", "impl<'a> Iterator for It<'a> { type Item = &'a u8; fn next(&mut self) -> Option<Self::Item> { None } }\n"},
		{"shebang", "#!/usr/bin/env run\nfn main() {}\n"},
		{"empty", ""},
		{"only comments", "// just a comment\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mustParse(t, tt.input)
		})
	}
}

func TestParseFileOwnsEOF(t *testing.T) {
	root := mustParse(t, "fn f() {}\n// trailing\n")
	last := root.Children[len(root.Children)-1]
	if last.Tok == nil || last.Tok.Kind != token.EOF {
		t.Fatalf("last child of File must be EOF, got %+v", last)
	}
}

func TestParseClauses(t *testing.T) {
	root := mustParse(t, `fn f(x: u64) -> (r: u64)
    requires
        x < 100,
        x > 0,
    ensures r == x + 1,
{
    x + 1
}
`)
	fns := find(root, cst.Fn)
	if len(fns) != 1 {
		t.Fatalf("expected one fn, got %d", len(fns))
	}
	var clauses []*cst.Node
	for _, c := range fns[0].Nodes() {
		if c.Kind == cst.Clause {
			clauses = append(clauses, c)
		}
	}
	if len(clauses) != 2 {
		t.Fatalf("expected 2 clauses, got %d", len(clauses))
	}
	if kw := clauses[0].FirstToken().Text; kw != "requires" {
		t.Errorf("first clause keyword = %q", kw)
	}
	exprs := 0
	for _, c := range clauses[0].Nodes() {
		if c.Kind == cst.BinExpr {
			exprs++
		}
	}
	if exprs != 2 {
		t.Errorf("requires should hold 2 expressions, got %d", exprs)
	}
	if ret := fns[0].Child(cst.RetType); ret == nil || !ret.Verus {
		t.Errorf("named return type should be marked")
	}
}

func TestParseRetType(t *testing.T) {
	tests := []struct {
		src   string
		named bool
	}{
		{"fn f() -> (r: u64) {}\n", true},
		{"proof fn g() -> (tracked t: T) {}\n", true},
		{"fn f() -> (mut r: u8) { r }\n", true},
		{"fn f() -> (u8, u8) { (1, 2) }\n", false},
		{"fn f() -> (u8) { 1 }\n", false},
		{"fn f() -> u8 { 1 }\n", false},
	}
	for _, tt := range tests {
		root := mustParse(t, tt.src)
		fns := find(root, cst.Fn)
		if len(fns) != 1 {
			t.Fatalf("%q: expected one fn, got %d", tt.src, len(fns))
		}
		ret := fns[0].Child(cst.RetType)
		if ret == nil {
			t.Fatalf("%q: no return type", tt.src)
		}
		if ret.Verus != tt.named {
			t.Errorf("%q: named = %v, want %v", tt.src, ret.Verus, tt.named)
		}
	}
}

func TestContextualWordsAsIdentifiers(t *testing.T) {
	root := mustParse(t, "fn f(ensures: int) -> int { let requires = ensures + 1; requires }\n")
	if got := len(find(root, cst.Clause)); got != 0 {
		t.Fatalf("no clause expected, got %d", got)
	}
	if cst.HasVerification(root) {
		t.Errorf("plain code reported as verification code")
	}
}

func TestVerificationMarks(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"fn f() {}\n", false},
		{"spec fn f() -> int { 1 }\n", true},
		{"fn f() { assert(true); }\n", true},
		{"fn f(x: Ghost<int>) {}\n", false},
		{"#[verifier::opaque]\nfn f() {}\n", true},
		{"fn f() -> bool { 1 ==> 2 }\n", true},
		{"struct S { ghost x: int }\n", true},
	}
	for _, tt := range tests {
		root := mustParse(t, tt.input)
		if got := cst.HasVerification(root); got != tt.want {
			t.Errorf("HasVerification(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestSplitsShiftInGenerics(t *testing.T) {
	root := mustParse(t, "type A = Vec<Vec<u8>>;\n")
	toks := cst.Tokens(root)
	var gts int
	for _, tok := range toks {
		if tok.Kind == token.Shr {
			t.Fatalf("'>>' should have been split")
		}
		if tok.Kind == token.Gt {
			gts++
			if tok.Text != ">" {
				t.Errorf("split token text %q", tok.Text)
			}
		}
	}
	if gts != 2 {
		t.Fatalf("expected 2 '>' tokens, got %d", gts)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		code    diag.Code
		start   uint32
		message string
	}{
		{"missing pattern", "fn f( {", diag.SynExpectPattern, 6, "expected pattern"},
		{"missing semicolon", "fn f() { let x = 1 }", diag.SynExpectSemicolon, 19, "expected ';'"},
		{"unexpected eof", "fn f() {", diag.SynUnexpectedEOF, 8, "end of file"},
		{"invalid character", "fn f() { ` }", diag.SynInvalidToken, 9, "unknown character"},
		{"unterminated comment", "fn f() {} /* x", diag.SynInvalidToken, 10, "unterminated block comment"},
		{"stray brace", "}", diag.SynExpectItem, 0, "expected item"},
		{"unclosed attr", "#[derive(Debug]\nstruct S;", diag.SynUnclosedDelimiter, 14, "mismatched"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parse(t, tt.input)
			if err == nil {
				t.Fatalf("expected error for %q", tt.input)
			}
			if err.Code != tt.code {
				t.Errorf("code = %v, want %v (%s)", err.Code, tt.code, err.Message)
			}
			if err.Span.Start != tt.start {
				t.Errorf("span start = %d, want %d (%s)", err.Span.Start, tt.start, err.Message)
			}
			if !strings.Contains(err.Message, tt.message) {
				t.Errorf("message %q does not mention %q", err.Message, tt.message)
			}
		})
	}
}

func TestParseErrorReported(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("bad.rs", []byte("fn (")))
	bag := diag.NewBag(10)
	_, err := parser.ParseFile(lexer.Tokenize(file, lexer.Options{}), parser.Options{Reporter: &diag.BagReporter{Bag: bag}})
	if err == nil {
		t.Fatal("expected error")
	}
	if bag.Len() != 1 {
		t.Fatalf("expected exactly one diagnostic, got %d", bag.Len())
	}
	if d := bag.Items()[0]; d.Code != diag.SynExpectIdentifier || d.Severity != diag.SevError {
		t.Errorf("unexpected diagnostic %+v", d)
	}
}

func TestDeepNesting(t *testing.T) {
	depth := 2000
	input := "fn f() -> int { " + strings.Repeat("(", depth) + "1" + strings.Repeat(")", depth) + " }\n"
	mustParse(t, input)
}
