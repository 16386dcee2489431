package lexer

import (
	"vfmt/internal/diag"
	"vfmt/internal/source"
	"vfmt/internal/token"
)

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	hold   []token.Trivia // trivia collected for the next token
	prev   token.Kind     // kind of the last significant token
	done   bool
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
		prev:   token.Invalid,
	}
}

// Tokenize lexes the whole file. The last element is always EOF.
func Tokenize(file *source.File, opts Options) []token.Token {
	lx := New(file, opts)
	out := make([]token.Token, 0, len(file.Content)/4+1)
	for {
		tok := lx.Next()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

// Next returns the next significant token with its Leading trivia.
// EOF carries whatever trivia ends the file and repeats forever.
func (lx *Lexer) Next() token.Token {
	if lx.done {
		return token.Token{Kind: token.EOF, Span: lx.emptySpan()}
	}

	lx.collectLeadingTrivia()

	if lx.cursor.EOF() {
		lx.done = true
		tok := token.Token{Kind: token.EOF, Span: lx.emptySpan(), Leading: lx.hold}
		lx.hold = nil
		return tok
	}

	tok := lx.scanToken()
	tok.Leading = lx.hold
	lx.hold = nil
	lx.prev = tok.Kind
	return tok
}

func (lx *Lexer) scanToken() token.Token {
	ch := lx.cursor.Peek()
	b1 := lx.cursor.PeekAt(1)

	switch {
	case ch == '/' && b1 == '*':
		// collectLeadingTrivia only stops here when the comment never closes
		return lx.scanUnterminatedComment()

	case ch == 'r' && b1 == '#' && isIdentStartByte(lx.cursor.PeekAt(2)):
		return lx.scanRawIdent()

	case lx.atStringPrefix():
		return lx.scanPrefixedString()

	case ch == '_' && !isIdentContinueByte(b1) && b1 < utf8RuneSelf:
		start := lx.cursor.Mark()
		lx.cursor.Bump()
		return lx.emit(lx.cursor.SpanFrom(start), token.Underscore)

	case isIdentStartByte(ch), ch >= utf8RuneSelf:
		return lx.scanIdentOrKeyword()

	case isDec(ch):
		if lx.prev == token.Dot {
			return lx.scanTupleIndex()
		}
		return lx.scanNumber()

	case ch == '\'':
		return lx.scanQuote()

	case ch == '"':
		return lx.scanString(lx.cursor.Mark())

	default:
		return lx.scanOperatorOrPunct()
	}
}

func (lx *Lexer) emit(sp source.Span, k token.Kind) token.Token {
	return token.Token{
		Kind: k,
		Span: sp,
		Text: string(lx.file.Content[sp.Start:sp.End]),
	}
}

func (lx *Lexer) invalid(start Mark, code diag.Code, msg string) token.Token {
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(code, sp, msg)
	return lx.emit(sp, token.Invalid)
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}
