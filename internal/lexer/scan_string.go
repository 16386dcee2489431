package lexer

import (
	"vfmt/internal/diag"
	"vfmt/internal/token"
)

// atStringPrefix reports byte, raw and C string or byte-char prefixes
// (b" b' br" br# r" r# c" cr" cr#) at the cursor.
func (lx *Lexer) atStringPrefix() bool {
	c := &lx.cursor
	switch c.Peek() {
	case 'b':
		switch c.PeekAt(1) {
		case '"', '\'':
			return true
		case 'r':
			return c.PeekAt(2) == '"' || c.PeekAt(2) == '#'
		}
	case 'c':
		switch c.PeekAt(1) {
		case '"':
			return true
		case 'r':
			return c.PeekAt(2) == '"' || c.PeekAt(2) == '#'
		}
	case 'r':
		return c.PeekAt(1) == '"' || (c.PeekAt(1) == '#' && (c.PeekAt(2) == '#' || c.PeekAt(2) == '"'))
	}
	return false
}

func (lx *Lexer) scanPrefixedString() token.Token {
	start := lx.cursor.Mark()
	raw := false
	if b := lx.cursor.Peek(); b == 'b' || b == 'c' {
		lx.cursor.Bump()
	}
	if lx.cursor.Peek() == 'r' {
		lx.cursor.Bump()
		raw = true
	}
	switch {
	case raw:
		return lx.scanRawString(start)
	case lx.cursor.Peek() == '\'':
		lx.cursor.Bump()
		return lx.finishChar(start)
	default:
		return lx.scanString(start)
	}
}

// scanString scans a quoted string starting at the opening '"'.
// Strings may span lines; escapes are skipped, not validated.
func (lx *Lexer) scanString(start Mark) token.Token {
	lx.cursor.Bump() // "
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case '\\':
			lx.cursor.Bump()
			lx.bumpRune()
		case '"':
			lx.cursor.Bump()
			lx.eatIdentContinue()
			return lx.emit(lx.cursor.SpanFrom(start), token.StringLit)
		default:
			lx.bumpRune()
		}
	}
	return lx.invalid(start, diag.LexUnterminatedString, "unterminated string literal")
}

// scanRawString scans #*"..."#* after the r prefix.
func (lx *Lexer) scanRawString(start Mark) token.Token {
	hashes := 0
	for lx.cursor.Eat('#') {
		hashes++
	}
	if !lx.cursor.Eat('"') {
		return lx.invalid(start, diag.LexUnterminatedString, "malformed raw string literal")
	}
	for !lx.cursor.EOF() {
		if lx.cursor.Bump() != '"' {
			continue
		}
		n := 0
		for n < hashes && lx.cursor.Peek() == '#' {
			lx.cursor.Bump()
			n++
		}
		if n == hashes {
			lx.eatIdentContinue()
			return lx.emit(lx.cursor.SpanFrom(start), token.StringLit)
		}
	}
	return lx.invalid(start, diag.LexUnterminatedString, "unterminated raw string literal")
}
