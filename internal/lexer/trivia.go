package lexer

import (
	"vfmt/internal/diag"
	"vfmt/internal/token"
)

// collectLeadingTrivia gathers the trivia in front of the next token:
//   - runs of ' ', '\t', '\r', '\f', '\v' become one TriviaSpace
//   - runs of '\n' become one TriviaNewline
//   - //, ///, //! comments up to (not including) '\n'
//   - /* */, /** */, /*! */ comments with nesting
//   - a #! line at offset 0 that does not start an inner attribute
//
// An unterminated block comment is left in place for scanToken.
func (lx *Lexer) collectLeadingTrivia() {
	lx.hold = nil
	if lx.cursor.Off == 0 {
		lx.scanShebang()
	}
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		b := lx.cursor.Peek()

		switch {
		case isHorizontalSpace(b):
			for isHorizontalSpace(lx.cursor.Peek()) {
				lx.cursor.Bump()
			}
			lx.push(token.TriviaSpace, start)

		case b == '\n':
			for lx.cursor.Peek() == '\n' {
				lx.cursor.Bump()
			}
			lx.push(token.TriviaNewline, start)

		case b == '/' && lx.cursor.PeekAt(1) == '/':
			kind := token.TriviaLineComment
			if lx.cursor.HasPrefix("//!") || (lx.cursor.HasPrefix("///") && !lx.cursor.HasPrefix("////")) {
				kind = token.TriviaDocLine
			}
			for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
				lx.cursor.Bump()
			}
			lx.push(kind, start)

		case b == '/' && lx.cursor.PeekAt(1) == '*':
			if !lx.scanBlockComment() {
				lx.cursor.Reset(start)
				return
			}
			kind := token.TriviaBlockComment
			sp := lx.cursor.SpanFrom(start)
			text := string(lx.file.Content[sp.Start:sp.End])
			if isDocBlock(text) {
				kind = token.TriviaDocBlock
			}
			lx.push(kind, start)

		default:
			return
		}
	}
}

func (lx *Lexer) push(kind token.TriviaKind, start Mark) {
	sp := lx.cursor.SpanFrom(start)
	lx.hold = append(lx.hold, token.Trivia{
		Kind: kind,
		Span: sp,
		Text: string(lx.file.Content[sp.Start:sp.End]),
	})
}

// scanBlockComment consumes a nested block comment and reports whether it closed.
func (lx *Lexer) scanBlockComment() bool {
	lx.cursor.BumpN(2)
	depth := 1
	for !lx.cursor.EOF() && depth > 0 {
		switch {
		case lx.cursor.HasPrefix("/*"):
			lx.cursor.BumpN(2)
			depth++
		case lx.cursor.HasPrefix("*/"):
			lx.cursor.BumpN(2)
			depth--
		default:
			lx.cursor.Bump()
		}
	}
	return depth == 0
}

func (lx *Lexer) scanUnterminatedComment() token.Token {
	start := lx.cursor.Mark()
	lx.scanBlockComment()
	return lx.invalid(start, diag.LexUnterminatedBlockComment, "unterminated block comment")
}

func (lx *Lexer) scanShebang() {
	if !lx.cursor.HasPrefix("#!") || lx.cursor.PeekAt(2) == '[' {
		return
	}
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}
	lx.push(token.TriviaShebang, start)
}

// isDocBlock reports /** */ and /*! */ but not /**/ or /*** */.
func isDocBlock(text string) bool {
	if len(text) < 5 {
		return false
	}
	switch text[2] {
	case '!':
		return true
	case '*':
		return text[3] != '*'
	}
	return false
}

func isHorizontalSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\f' || b == '\v'
}
