package token_test

import (
	"testing"

	"vfmt/internal/token"
)

func TestLookupKeyword(t *testing.T) {
	cases := map[string]token.Kind{
		"fn":    token.KwFn,
		"Self":  token.KwSelfType,
		"self":  token.KwSelfValue,
		"where": token.KwWhere,
		"match": token.KwMatch,
	}
	for lexeme, want := range cases {
		got, ok := token.LookupKeyword(lexeme)
		if !ok || got != want {
			t.Fatalf("LookupKeyword(%q) = %v, %v; want %v", lexeme, got, ok, want)
		}
	}

	// verification words are contextual
	for _, s := range []string{"requires", "ensures", "forall", "spec", "proof", "tracked", "ghost", "FN"} {
		if _, ok := token.LookupKeyword(s); ok {
			t.Fatalf("LookupKeyword(%q) returned ok=true", s)
		}
	}
}

func TestKindText(t *testing.T) {
	cases := map[token.Kind]string{
		token.Implies: "==>",
		token.Equiv:   "<==>",
		token.BigAnd:  "&&&",
		token.KwFn:    "fn",
		token.Ident:   "",
	}
	for k, want := range cases {
		if got := token.Text(k); got != want {
			t.Errorf("Text(%v) = %q, want %q", k, got, want)
		}
	}
	if token.Ident.String() != "Ident" || token.Implies.String() != "==>" {
		t.Fatalf("unexpected String(): %s %s", token.Ident, token.Implies)
	}
}

func TestTokenComments(t *testing.T) {
	tok := token.Token{
		Kind: token.Ident,
		Text: "x",
		Leading: []token.Trivia{
			{Kind: token.TriviaNewline, Text: "\n\n"},
			{Kind: token.TriviaLineComment, Text: "// a"},
		},
		Trailing: []token.Trivia{
			{Kind: token.TriviaSpace, Text: " "},
			{Kind: token.TriviaBlockComment, Text: "/* b */"},
		},
	}
	got := tok.Comments()
	if len(got) != 2 || got[0].Text != "// a" || got[1].Text != "/* b */" {
		t.Fatalf("Comments() = %+v", got)
	}
	if !tok.HasComments() {
		t.Fatal("HasComments() = false")
	}
	if n := tok.Leading[0].Newlines(); n != 2 {
		t.Fatalf("Newlines() = %d", n)
	}
	if !tok.IsWord("x") || tok.IsWord("y") {
		t.Fatal("IsWord mismatch")
	}
}
