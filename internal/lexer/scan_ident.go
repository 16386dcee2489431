package lexer

import (
	"vfmt/internal/diag"
	"vfmt/internal/token"
)

const utf8RuneSelf = 0x80

// scanIdentOrKeyword scans an identifier and classifies strict keywords.
// A non-letter rune outside strings is an Invalid token.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()

	r, sz := lx.peekRune()
	if sz == 0 || !isIdentStartRune(r) {
		lx.bumpRune()
		return lx.invalid(start, diag.LexUnknownChar, "unknown character")
	}
	lx.bumpRune()
	lx.eatIdentContinue()

	tok := lx.emit(lx.cursor.SpanFrom(start), token.Ident)
	if k, ok := token.LookupKeyword(tok.Text); ok {
		tok.Kind = k
	}
	return tok
}

// scanRawIdent scans r#name; the result is always an identifier.
func (lx *Lexer) scanRawIdent() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.BumpN(2)
	lx.eatIdentContinue()
	return lx.emit(lx.cursor.SpanFrom(start), token.Ident)
}

func (lx *Lexer) eatIdentContinue() {
	for {
		r, sz := lx.peekRune()
		if sz == 0 || !isIdentContinueRune(r) {
			return
		}
		lx.bumpRune()
	}
}

// scanQuote separates lifetimes ('a, 'static) from char literals ('a', '\n').
func (lx *Lexer) scanQuote() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '

	if lx.cursor.Peek() == '\\' {
		return lx.finishChar(start)
	}

	r, sz := lx.peekRune()
	if sz == 0 || r == '\n' {
		return lx.invalid(start, diag.LexUnterminatedChar, "unterminated character literal")
	}
	if lx.cursor.PeekAt(uint32(sz)) == '\'' {
		lx.bumpRune()
		lx.cursor.Bump()
		lx.eatIdentContinue() // suffix
		return lx.emit(lx.cursor.SpanFrom(start), token.CharLit)
	}
	if isIdentStartRune(r) {
		lx.bumpRune()
		lx.eatIdentContinue()
		return lx.emit(lx.cursor.SpanFrom(start), token.Lifetime)
	}
	return lx.finishChar(start)
}

// finishChar scans the rest of a char literal after the opening quote.
func (lx *Lexer) finishChar(start Mark) token.Token {
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case '\\':
			lx.cursor.Bump()
			lx.bumpRune()
		case '\'':
			lx.cursor.Bump()
			lx.eatIdentContinue()
			return lx.emit(lx.cursor.SpanFrom(start), token.CharLit)
		case '\n':
			return lx.invalid(start, diag.LexUnterminatedChar, "unterminated character literal")
		default:
			lx.bumpRune()
		}
	}
	return lx.invalid(start, diag.LexUnterminatedChar, "unterminated character literal")
}
