// Package trivia decides where comments live after lexing.
//
// The lexer hangs every comment in front of the following token. Reattach
// moves comments that start on the line of the previous token into that
// token's Trailing list, so "x, // note" keeps the note with the comma.
// The census helpers then describe the remaining Leading material as a
// sequence of comments with the number of line breaks around each one;
// the layout engine turns two or more breaks into a single blank line.
package trivia

import (
	"vfmt/internal/token"
)

// Reattach moves same-line comments to the previous token.
//
// For every token after the first, the trivia before the first newline of
// its Leading list started on the previous token's line. That prefix becomes
// Trailing of the previous token, unless the whole Leading list has no
// newline: then an inline block comment sits between two tokens on one line
// and stays where it is. EOF takes the opposite choice because nothing follows it.
//
// The concatenation of Leading, Text and Trailing over all tokens is unchanged.
func Reattach(toks []token.Token) {
	for i := 1; i < len(toks); i++ {
		lead := toks[i].Leading
		if len(lead) == 0 {
			continue
		}
		cut := firstNewline(lead)
		if cut < 0 {
			if toks[i].Kind != token.EOF {
				continue
			}
			cut = len(lead)
		}
		if !hasComment(lead[:cut]) {
			continue
		}
		toks[i-1].Trailing = append(toks[i-1].Trailing, lead[:cut]...)
		toks[i].Leading = lead[cut:]
	}
}

func firstNewline(list []token.Trivia) int {
	for i, tv := range list {
		if tv.Kind == token.TriviaNewline {
			return i
		}
	}
	return -1
}

func hasComment(list []token.Trivia) bool {
	for _, tv := range list {
		if tv.IsComment() {
			return true
		}
	}
	return false
}
