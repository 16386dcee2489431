package token

import (
	"vfmt/internal/source"
)

// Token is one significant token with its surrounding trivia.
//
// After lexing every trivia sits in Leading of the following token (or of EOF).
// internal/trivia later moves same-line comments into Trailing of the
// preceding token.
type Token struct {
	Kind     Kind
	Span     source.Span
	Text     string
	Leading  []Trivia
	Trailing []Trivia
}

func (t Token) Is(kinds ...Kind) bool {
	for _, k := range kinds {
		if t.Kind == k {
			return true
		}
	}
	return false
}

// IsWord reports identifiers and contextual words spelled as w.
func (t Token) IsWord(w string) bool {
	return t.Kind == Ident && t.Text == w
}

// IsIdentLike reports tokens usable where a name is expected.
func (t Token) IsIdentLike() bool {
	return t.Kind == Ident || t.Kind == KwSelfValue || t.Kind == KwSelfType ||
		t.Kind == KwCrate || t.Kind == KwSuper
}

// HasComments reports whether any comment is attached to the token.
func (t Token) HasComments() bool {
	for _, tv := range t.Leading {
		if tv.IsComment() {
			return true
		}
	}
	for _, tv := range t.Trailing {
		if tv.IsComment() {
			return true
		}
	}
	return false
}

// Comments returns every attached comment in source order.
func (t Token) Comments() []Trivia {
	var out []Trivia
	for _, tv := range t.Leading {
		if tv.IsComment() {
			out = append(out, tv)
		}
	}
	for _, tv := range t.Trailing {
		if tv.IsComment() {
			out = append(out, tv)
		}
	}
	return out
}
