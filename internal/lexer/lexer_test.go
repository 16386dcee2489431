package lexer_test

import (
	"strings"
	"testing"

	"vfmt/internal/diag"
	"vfmt/internal/lexer"
	"vfmt/internal/source"
	"vfmt/internal/token"
)

type testReporter struct {
	diagnostics []diag.Diagnostic
}

func (r *testReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	r.diagnostics = append(r.diagnostics, diag.Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Primary:  primary,
		Notes:    notes,
	})
}

func lex(t *testing.T, input string) ([]token.Token, *testReporter) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.rs", []byte(input)))
	rep := &testReporter{}
	return lexer.Tokenize(file, lexer.Options{Reporter: rep}), rep
}

func reconstruct(toks []token.Token) string {
	var b strings.Builder
	for _, tok := range toks {
		for _, tv := range tok.Leading {
			b.WriteString(tv.Text)
		}
		b.WriteString(tok.Text)
		for _, tv := range tok.Trailing {
			b.WriteString(tv.Text)
		}
	}
	return b.String()
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, 0, len(toks))
	for _, tok := range toks {
		out = append(out, tok.Kind)
	}
	return out
}

func expectKinds(t *testing.T, input string, want ...token.Kind) {
	t.Helper()
	toks, _ := lex(t, input)
	got := kinds(toks)
	want = append(want, token.EOF)
	if len(got) != len(want) {
		t.Fatalf("%q: got %v, want %v", input, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("%q: token %d = %v (%q), want %v", input, i, got[i], toks[i].Text, want[i])
		}
	}
}

func TestLosslessness(t *testing.T) {
	inputs := []string{
		"",
		"fn f(x:int)requires x>0{ assert(x>=0); }",
		"// only a comment",
		"/* a /* nested */ b */ fn f() {}\n\n\n",
		"#!/usr/bin/env run\nfn main() {}\n",
		"let s = r##\"raw \"# still\"##; let b = b'x'; let c = c\"hi\";",
		"x.0.1 + 'a' + '\\n' + 1u8 + 0x_FF_u32 + 1.5e-3f64",
		"fn f<'a>(x: &'a str) -> &'a str { x }",
		"forall|i: int| 0 <= i < n ==> a[i] <== b <==> c === d !== e",
		"\t  \r\n  tabs\x0bvf\x0c",
		"unicode_идент + 😀",
		"\"unterminated",
		"/* unterminated",
	}
	for _, in := range inputs {
		toks, _ := lex(t, in)
		if got := reconstruct(toks); got != in {
			t.Errorf("reconstruct(%q) = %q", in, got)
		}
		if toks[len(toks)-1].Kind != token.EOF {
			t.Errorf("%q: last token is %v", in, toks[len(toks)-1].Kind)
		}
	}
}

func TestVerificationOperators(t *testing.T) {
	expectKinds(t, "a ==> b <== c <==> d",
		token.Ident, token.Implies, token.Ident, token.Explies, token.Ident, token.Equiv, token.Ident)
	expectKinds(t, "a === b !== c",
		token.Ident, token.EqEqEq, token.Ident, token.NeEqEq, token.Ident)
	expectKinds(t, "&&& a ||| b",
		token.BigAnd, token.Ident, token.BigOr, token.Ident)
	expectKinds(t, "a <= b >= c == d",
		token.Ident, token.Le, token.Ident, token.Ge, token.Ident, token.EqEq, token.Ident)
	expectKinds(t, "x@", token.Ident, token.At)
}

func TestContextualWordsAreIdents(t *testing.T) {
	expectKinds(t, "requires ensures forall spec proof tracked ghost",
		token.Ident, token.Ident, token.Ident, token.Ident, token.Ident, token.Ident, token.Ident)
	expectKinds(t, "r#fn r#match", token.Ident, token.Ident)
}

func TestLifetimesAndChars(t *testing.T) {
	expectKinds(t, "'a 'static 'x' '\\'' b'q' 'é'",
		token.Lifetime, token.Lifetime, token.CharLit, token.CharLit, token.CharLit, token.CharLit)
}

func TestNumbers(t *testing.T) {
	expectKinds(t, "1 1.5 1e10 0xffu8 1.0f64 2.pow",
		token.IntLit, token.FloatLit, token.FloatLit, token.IntLit, token.FloatLit,
		token.IntLit, token.Dot, token.Ident)
	expectKinds(t, "t.0.1", token.Ident, token.Dot, token.IntLit, token.Dot, token.IntLit)
	expectKinds(t, "0..n", token.IntLit, token.DotDot, token.Ident)
}

func TestStrings(t *testing.T) {
	toks, rep := lex(t, "r#\"a\"b\"# \"multi\nline\" br\"x\" b\"y\" cr#\"z\"#")
	for _, tok := range toks[:5] {
		if tok.Kind != token.StringLit {
			t.Fatalf("token %q has kind %v", tok.Text, tok.Kind)
		}
	}
	if toks[0].Text != "r#\"a\"b\"#" {
		t.Fatalf("raw string text = %q", toks[0].Text)
	}
	if len(rep.diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %+v", rep.diagnostics)
	}
}

func TestTriviaKinds(t *testing.T) {
	toks, _ := lex(t, "//! inner doc\n/// outer doc\n//// plain\n/** block doc */ /**/ /* c */\nfn")
	var got []token.TriviaKind
	for _, tv := range toks[0].Leading {
		if tv.IsComment() {
			got = append(got, tv.Kind)
		}
	}
	want := []token.TriviaKind{
		token.TriviaDocLine, token.TriviaDocLine, token.TriviaLineComment,
		token.TriviaDocBlock, token.TriviaBlockComment, token.TriviaBlockComment,
	}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("trivia %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestShebangAndInnerAttribute(t *testing.T) {
	toks, _ := lex(t, "#!/bin/sh\nfn")
	if toks[0].Kind != token.KwFn || toks[0].Leading[0].Kind != token.TriviaShebang {
		t.Fatalf("shebang not recognised: %+v", toks[0])
	}
	expectKinds(t, "#![allow(x)]",
		token.Pound, token.Bang, token.LBracket, token.Ident, token.LParen, token.Ident, token.RParen, token.RBracket)
}

func TestEOFCarriesTrailingTrivia(t *testing.T) {
	toks, _ := lex(t, "fn // tail\n\n")
	eof := toks[len(toks)-1]
	if eof.Kind != token.EOF || len(eof.Leading) != 3 {
		t.Fatalf("EOF leading = %+v", eof.Leading)
	}
	if eof.Leading[1].Text != "// tail" {
		t.Fatalf("comment = %q", eof.Leading[1].Text)
	}
}

func TestInvalidInputBecomesInvalidToken(t *testing.T) {
	tests := []struct {
		input string
		code  diag.Code
	}{
		{"a ` b", diag.LexUnknownChar},
		{"\"open", diag.LexUnterminatedString},
		{"/* open", diag.LexUnterminatedBlockComment},
		{"x + →", diag.LexUnknownChar},
	}
	for _, tt := range tests {
		toks, rep := lex(t, tt.input)
		found := false
		for _, tok := range toks {
			if tok.Kind == token.Invalid {
				found = true
			}
		}
		if !found {
			t.Errorf("%q: no Invalid token in %v", tt.input, kinds(toks))
		}
		if len(rep.diagnostics) != 1 || rep.diagnostics[0].Code != tt.code {
			t.Errorf("%q: diagnostics = %+v, want code %v", tt.input, rep.diagnostics, tt.code)
		}
	}
}
