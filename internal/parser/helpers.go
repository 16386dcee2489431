package parser

import (
	"fmt"
	"slices"

	"vfmt/internal/diag"
	"vfmt/internal/source"
	"vfmt/internal/token"
)

func (p *Parser) peek() *token.Token {
	return p.peekN(0)
}

// peekN looks n significant tokens ahead; past the end it returns EOF.
func (p *Parser) peekN(n int) *token.Token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+n]
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) atAny(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.peek().Kind)
}

// atWord reports an identifier spelled w at the cursor.
func (p *Parser) atWord(w string) bool {
	return p.peek().IsWord(w)
}

func (p *Parser) nthIs(n int, k token.Kind) bool {
	return p.peekN(n).Kind == k
}

// bump consumes the current token. EOF is never consumed twice.
func (p *Parser) bump() *token.Token {
	t := p.peek()
	if p.pos < len(p.toks) {
		p.pos++
	}
	if t.Kind != token.EOF {
		p.lastSpan = t.Span
	}
	return t
}

// expect consumes a token of kind k into n or records an error.
func (p *Parser) expect(n tokenSink, k token.Kind, code diag.Code, what string) bool {
	if !p.ok() {
		return false
	}
	if p.at(k) {
		n.AddTok(p.bump())
		return true
	}
	p.errExpected(code, what)
	return false
}

// eat consumes a token of kind k into n when present.
func (p *Parser) eat(n tokenSink, k token.Kind) bool {
	if p.at(k) {
		n.AddTok(p.bump())
		return true
	}
	return false
}

type tokenSink interface {
	AddTok(*token.Token)
}

// split replaces the current token with two tokens, the first being head
// bytes long. It resolves ">>" ">=" ">>=" when closing generic lists, and
// "&&" "<<" "||" where the grammar needs the single-character form.
func (p *Parser) split(head int, first, second token.Kind) {
	t := p.peek()
	h := uint32(head)
	a := &token.Token{
		Kind:    first,
		Span:    source.Span{File: t.Span.File, Start: t.Span.Start, End: t.Span.Start + h},
		Text:    t.Text[:head],
		Leading: t.Leading,
	}
	b := &token.Token{
		Kind:     second,
		Span:     source.Span{File: t.Span.File, Start: t.Span.Start + h, End: t.Span.End},
		Text:     t.Text[head:],
		Trailing: t.Trailing,
	}
	p.toks = slices.Replace(p.toks, p.pos, p.pos+1, a, b)
}

// expectGt closes a generic list, splitting compound tokens that start with '>'.
func (p *Parser) expectGt(n tokenSink) bool {
	switch p.peek().Kind {
	case token.Shr:
		p.split(1, token.Gt, token.Gt)
	case token.Ge:
		p.split(1, token.Gt, token.Eq)
	case token.ShrEq:
		p.split(1, token.Gt, token.Ge)
	}
	return p.expect(n, token.Gt, diag.SynUnclosedDelimiter, "'>'")
}

// atLt reports '<' at the cursor, splitting "<<" and "<=" when needed.
func (p *Parser) atLt() bool {
	switch p.peek().Kind {
	case token.Lt:
		return true
	case token.Shl:
		p.split(1, token.Lt, token.Lt)
		return true
	}
	return false
}

// splitAnd turns a leading "&&" into two '&' tokens.
func (p *Parser) splitAnd() {
	if p.at(token.AndAnd) {
		p.split(1, token.Amp, token.Amp)
	}
}

func (p *Parser) errExpected(code diag.Code, what string) {
	t := p.peek()
	found := t.Text
	if t.Kind == token.EOF {
		p.errAt(p.diagSpan(), diag.SynUnexpectedEOF, fmt.Sprintf("expected %s, found end of file", what))
		return
	}
	p.errAt(t.Span, code, fmt.Sprintf("expected %s, found %q", what, found))
}

// errAt records the first error only; later ones are consequences.
func (p *Parser) errAt(sp source.Span, code diag.Code, msg string) {
	if p.err != nil {
		return
	}
	p.err = &Error{Code: code, Span: sp, Message: msg}
	if p.opts.Reporter != nil {
		p.opts.Reporter.Report(code, diag.SevError, sp, msg, nil)
	}
}

// diagSpan points past the last consumed token when the cursor is at EOF.
func (p *Parser) diagSpan() source.Span {
	t := p.peek()
	if t.Kind == token.EOF && p.lastSpan.End > 0 {
		return source.Span{File: p.lastSpan.File, Start: p.lastSpan.End, End: p.lastSpan.End}
	}
	return t.Span
}

func (p *Parser) withNoStruct(v bool) func() {
	saved := p.noStruct
	p.noStruct = v
	return func() { p.noStruct = saved }
}
