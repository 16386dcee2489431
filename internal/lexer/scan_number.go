package lexer

import (
	"vfmt/internal/token"
)

// scanNumber scans integer and float literals with their suffixes:
// 0b/0o/0x prefixes, '_' separators, fraction, exponent, u8/i64/f32/...
// Validation is left to the compiler; the formatter only needs the extent.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit

	if lx.cursor.Peek() == '0' {
		switch lx.cursor.PeekAt(1) {
		case 'b', 'B', 'o', 'O', 'x', 'X':
			lx.cursor.BumpN(2)
			for isHex(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
				lx.cursor.Bump()
			}
			lx.eatIdentContinue()
			return lx.emit(lx.cursor.SpanFrom(start), kind)
		}
	}

	lx.eatDigits()

	// fraction: not "..", not a method or field access
	if lx.cursor.Peek() == '.' {
		next := lx.cursor.PeekAt(1)
		if next != '.' && !isIdentStartByte(next) && next < utf8RuneSelf {
			lx.cursor.Bump()
			kind = token.FloatLit
			lx.eatDigits()
		}
	}

	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		n := lx.cursor.PeekAt(1)
		if isDec(n) || ((n == '+' || n == '-') && isDec(lx.cursor.PeekAt(2))) {
			lx.cursor.BumpN(2)
			lx.eatDigits()
			kind = token.FloatLit
		}
	}

	lx.eatIdentContinue()
	return lx.emit(lx.cursor.SpanFrom(start), kind)
}

// scanTupleIndex scans the plain digits after '.', so x.0.1 lexes as x . 0 . 1.
func (lx *Lexer) scanTupleIndex() token.Token {
	start := lx.cursor.Mark()
	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	return lx.emit(lx.cursor.SpanFrom(start), token.IntLit)
}

func (lx *Lexer) eatDigits() {
	for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
		lx.cursor.Bump()
	}
}
