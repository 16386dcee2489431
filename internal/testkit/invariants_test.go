package testkit

import (
	"strings"
	"testing"

	"vfmt/internal/cst"
	"vfmt/internal/lexer"
	"vfmt/internal/parser"
	"vfmt/internal/source"
	"vfmt/internal/trivia"
)

func parse(t *testing.T, src string) (*cst.Node, *source.File) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("t.rs", []byte(src)))
	toks := lexer.Tokenize(file, lexer.Options{})
	trivia.Reattach(toks)
	root, err := parser.ParseFile(toks, parser.Options{})
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	return root, file
}

func TestCheckSpanInvariants(t *testing.T) {
	for _, src := range []string{
		"",
		"fn f(x: u8) -> u8 requires x > 0 { x }",
		"verus! {\n// c\nproof fn p() ensures true, {}\n}\n",
		"#[attr]\nstruct S { a: u8 }\n",
	} {
		root, file := parse(t, src)
		if err := CheckSpanInvariants(root, file); err != nil {
			t.Errorf("%q: %v", src, err)
		}
	}
}

func TestCheckSpanInvariantsReportsDamage(t *testing.T) {
	root, file := parse(t, "fn f() {}")
	toks := cst.Tokens(root)
	toks[1].Text = "g"
	err := CheckSpanInvariants(root, file)
	if err == nil || !strings.Contains(err.Error(), "token 1") {
		t.Fatalf("err = %v", err)
	}

	if err := CheckSpanInvariants(nil, file); err == nil {
		t.Fatal("nil tree accepted")
	}
}
