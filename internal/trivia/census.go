package trivia

import (
	"vfmt/internal/token"
)

// Comment is one leading comment with the line breaks around it.
type Comment struct {
	token.Trivia
	// LinesBefore counts newlines between the previous material (token or
	// comment) and this comment. Zero means it shares a line with it.
	LinesBefore int
	// LinesAfter counts newlines between this comment and the next comment
	// or the owning token.
	LinesAfter int
}

// OwnLine reports whether the comment started on a fresh line.
func (c Comment) OwnLine() bool {
	return c.LinesBefore > 0
}

// Blank reports whether a blank line separated the comment from what came before.
func (c Comment) Blank() bool {
	return c.LinesBefore >= 2
}

// Leading splits a token's Leading trivia into its comments and the number
// of newlines between the last of them (or the previous token) and the token.
func Leading(tok *token.Token) (comments []Comment, linesBefore int) {
	lines := 0
	for _, tv := range tok.Leading {
		switch {
		case tv.Kind == token.TriviaNewline:
			lines += tv.Newlines()
		case tv.IsComment():
			if n := len(comments); n > 0 {
				comments[n-1].LinesAfter = lines
			}
			comments = append(comments, Comment{Trivia: tv, LinesBefore: lines})
			lines = 0
		}
	}
	if n := len(comments); n > 0 {
		comments[n-1].LinesAfter = lines
	}
	return comments, lines
}

// Trailing returns the comments reattached after tok.
func Trailing(tok *token.Token) []token.Trivia {
	var out []token.Trivia
	for _, tv := range tok.Trailing {
		if tv.IsComment() {
			out = append(out, tv)
		}
	}
	return out
}

// LinesBefore counts newlines in front of the first material of tok:
// its first leading comment, or the token itself when there is none.
func LinesBefore(tok *token.Token) int {
	lines := 0
	for _, tv := range tok.Leading {
		if tv.IsComment() {
			return lines
		}
		lines += tv.Newlines()
	}
	return lines
}

// BlankBefore reports whether at least one blank line precedes tok and its comments.
func BlankBefore(tok *token.Token) bool {
	return LinesBefore(tok) >= 2
}
