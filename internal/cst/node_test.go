package cst

import (
	"strings"
	"testing"

	"vfmt/internal/source"
	"vfmt/internal/token"
)

func tok(kind token.Kind, text string, start uint32) *token.Token {
	return &token.Token{
		Kind: kind,
		Text: text,
		Span: source.Span{Start: start, End: start + uint32(len(text))},
	}
}

func sampleTree() *Node {
	// x ==> y
	bin := New(BinExpr)
	lhs := New(PathExpr)
	lhs.AddTok(tok(token.Ident, "x", 0))
	lhs.Finish()
	rhs := New(PathExpr)
	r := tok(token.Ident, "y", 6)
	r.Leading = []token.Trivia{{Kind: token.TriviaSpace, Text: " "}}
	rhs.AddTok(r)
	rhs.Finish()
	op := tok(token.Implies, "==>", 2)
	op.Leading = []token.Trivia{{Kind: token.TriviaSpace, Text: " "}}
	bin.AddNode(lhs)
	bin.AddTok(op)
	bin.AddNode(rhs)
	bin.Finish()

	root := New(File)
	root.AddNode(bin)
	root.AddTok(tok(token.EOF, "", 7))
	return root.Finish()
}

func TestTokensAndText(t *testing.T) {
	root := sampleTree()
	toks := Tokens(root)
	if len(toks) != 4 {
		t.Fatalf("len(Tokens) = %d, want 4", len(toks))
	}
	if got := Text(root); got != "x ==> y" {
		t.Fatalf("Text() = %q", got)
	}
	if root.FirstToken().Text != "x" || root.LastToken().Kind != token.EOF {
		t.Fatal("first/last token mismatch")
	}
	if root.Span.Start != 0 || root.Span.End != 7 {
		t.Fatalf("span = %v", root.Span)
	}
}

func TestHasVerification(t *testing.T) {
	root := sampleTree()
	if !HasVerification(root) {
		t.Fatal("==> must count as verification syntax")
	}
	plain := New(PathExpr)
	plain.AddTok(tok(token.Ident, "requires", 0))
	if HasVerification(plain) {
		t.Fatal("an identifier alone is not verification syntax")
	}
	plain.Verus = true
	if !HasVerification(plain) {
		t.Fatal("marked node must count")
	}
}

func TestWalkSkip(t *testing.T) {
	root := sampleTree()
	var seen []Kind
	Walk(root, func(n *Node) bool {
		seen = append(seen, n.Kind)
		return n.Kind != BinExpr
	})
	if len(seen) != 2 || seen[0] != File || seen[1] != BinExpr {
		t.Fatalf("seen = %v", seen)
	}
}

func TestDump(t *testing.T) {
	var b strings.Builder
	if err := Dump(&b, sampleTree()); err != nil {
		t.Fatal(err)
	}
	want := "File 0..7\n" +
		"  BinExpr 0..7\n" +
		"    PathExpr 0..1\n" +
		"      Ident \"x\"\n" +
		"    ==> \"==>\"\n" +
		"    PathExpr 6..7\n" +
		"      Ident \"y\"\n" +
		"  EOF \"\"\n"
	if b.String() != want {
		t.Fatalf("Dump() =\n%s\nwant\n%s", b.String(), want)
	}
}
