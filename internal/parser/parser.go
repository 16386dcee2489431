package parser

import (
	"fmt"
	"strings"

	"vfmt/internal/cst"
	"vfmt/internal/diag"
	"vfmt/internal/source"
	"vfmt/internal/token"
)

type Options struct {
	// Reporter receives the parse error; nil means the error is only returned.
	Reporter diag.Reporter
}

// Error is the first construct the parser could not match. Parsing stops there.
type Error struct {
	Code    diag.Code
	Span    source.Span
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Span, e.Message)
}

// Parser holds the state for one file.
type Parser struct {
	toks     []*token.Token
	pos      int
	opts     Options
	err      *Error
	noStruct bool // struct literals are not allowed (conditions, scrutinees, clauses)
	lastSpan source.Span
}

// ParseFile builds the CST for a token stream produced by the lexer.
// Every token, EOF included, ends up owned by exactly one node.
// The parser never recovers: the first mismatch is returned as *Error.
func ParseFile(toks []token.Token, opts Options) (*cst.Node, *Error) {
	p := &Parser{
		toks: make([]*token.Token, len(toks)),
		opts: opts,
	}
	for i := range toks {
		p.toks[i] = &toks[i]
	}
	if len(p.toks) == 0 || p.toks[len(p.toks)-1].Kind != token.EOF {
		p.toks = append(p.toks, &token.Token{Kind: token.EOF})
	}

	if bad := p.firstInvalid(); bad != nil {
		p.errAt(bad.Span, diag.SynInvalidToken, invalidMessage(bad))
		return nil, p.err
	}

	file := cst.New(cst.File)
	p.parseInnerAttrs(file)
	for !p.at(token.EOF) && p.ok() {
		item, ok := p.parseItem()
		if !ok {
			break
		}
		file.AddNode(item)
	}
	if !p.ok() {
		return nil, p.err
	}
	file.AddTok(p.bump())
	return file.Finish(), nil
}

func (p *Parser) ok() bool {
	return p.err == nil
}

func (p *Parser) firstInvalid() *token.Token {
	for _, t := range p.toks {
		if t.Kind == token.Invalid {
			return t
		}
	}
	return nil
}

func invalidMessage(t *token.Token) string {
	switch {
	case strings.HasPrefix(t.Text, "/*"):
		return "unterminated block comment"
	case strings.HasPrefix(t.Text, "'"), strings.HasPrefix(t.Text, "b'"):
		return "unterminated character literal"
	case len(t.Text) > 1 && strings.ContainsAny(t.Text[:1], "\"rbc"):
		return "unterminated string literal"
	}
	return fmt.Sprintf("unknown character %q", t.Text)
}
