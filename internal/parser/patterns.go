package parser

import (
	"vfmt/internal/cst"
	"vfmt/internal/diag"
	"vfmt/internal/token"
)

// parsePattern parses a pattern with alternatives: "A | B | C".
func (p *Parser) parsePattern() (*cst.Node, bool) {
	var lead *token.Token
	if p.at(token.Pipe) {
		lead = p.bump()
	}
	first, ok := p.parsePatternNoAlt()
	if !ok {
		return nil, false
	}
	if lead == nil && !p.at(token.Pipe) {
		return first, true
	}
	n := cst.New(cst.OrPat)
	n.AddTok(lead)
	n.AddNode(first)
	for p.at(token.Pipe) {
		n.AddTok(p.bump())
		next, ok := p.parsePatternNoAlt()
		if !ok {
			return nil, false
		}
		n.AddNode(next)
	}
	return n.Finish(), true
}

func (p *Parser) parsePatternNoAlt() (*cst.Node, bool) {
	if !p.ok() {
		return nil, false
	}
	t := p.peek()
	switch {
	case t.Kind == token.Underscore:
		return p.single(cst.WildPat), true
	case t.Kind == token.DotDot && p.atPatternEnd(1):
		return p.single(cst.RestPat), true
	case t.Kind == token.DotDot, t.Kind == token.DotDotEq:
		n := cst.New(cst.RangePat)
		n.AddTok(p.bump())
		hi, ok := p.parseRangeBound()
		if !ok {
			return nil, false
		}
		n.AddNode(hi)
		return n.Finish(), true
	case t.Kind.IsLiteral(), t.Kind == token.Minus, t.Kind == token.KwTrue, t.Kind == token.KwFalse:
		lo, ok := p.parseRangeBound()
		if !ok {
			return nil, false
		}
		return p.maybeRangePat(lo)
	case t.Kind == token.Amp, t.Kind == token.AndAnd:
		p.splitAnd()
		n := cst.New(cst.RefPat)
		n.AddTok(p.bump())
		p.eat(n, token.KwMut)
		inner, ok := p.parsePatternNoAlt()
		if !ok {
			return nil, false
		}
		n.AddNode(inner)
		return n.Finish(), true
	case t.Kind == token.LParen:
		n := cst.New(cst.TuplePat)
		if !p.parsePatList(n, token.RParen) {
			return nil, false
		}
		return n.Finish(), true
	case t.Kind == token.LBracket:
		n := cst.New(cst.SlicePat)
		if !p.parsePatList(n, token.RBracket) {
			return nil, false
		}
		return n.Finish(), true
	case t.Kind == token.KwRef, t.Kind == token.KwMut:
		return p.parseIdentPat()
	case t.Kind == token.Ident && p.atMacroCall():
		return p.parseMacroCall(nil)
	case t.Kind == token.Ident && p.atBindingName():
		return p.parseIdentPat()
	case t.IsIdentLike(), t.Kind == token.PathSep, t.Kind == token.Lt:
		return p.parsePathPattern()
	}
	p.errExpected(diag.SynExpectPattern, "pattern")
	return nil, false
}

// single wraps the current token into a leaf node.
func (p *Parser) single(kind cst.Kind) *cst.Node {
	n := cst.New(kind)
	n.AddTok(p.bump())
	return n.Finish()
}

// atPatternEnd reports a token n ahead that closes a pattern position.
func (p *Parser) atPatternEnd(n int) bool {
	switch p.peekN(n).Kind {
	case token.Comma, token.RParen, token.RBracket, token.RBrace, token.Pipe, token.Eq, token.FatArrow,
		token.KwIf, token.Colon, token.EOF:
		return true
	}
	return false
}

// atBindingName reports an identifier that binds rather than names a path.
func (p *Parser) atBindingName() bool {
	switch p.peekN(1).Kind {
	case token.PathSep, token.LParen, token.LBrace, token.Bang, token.DotDot, token.DotDotEq, token.DotDotDot:
		return false
	}
	return true
}

func (p *Parser) parseIdentPat() (*cst.Node, bool) {
	n := cst.New(cst.IdentPat)
	p.eat(n, token.KwRef)
	p.eat(n, token.KwMut)
	if !p.peek().IsIdentLike() {
		p.errExpected(diag.SynExpectIdentifier, "binding name")
		return nil, false
	}
	n.AddTok(p.bump())
	if p.eat(n, token.At) {
		sub, ok := p.parsePatternNoAlt()
		if !ok {
			return nil, false
		}
		n.AddNode(sub)
	}
	return n.Finish(), true
}

// parseRangeBound parses a literal, a negated literal or a path used as a
// range pattern endpoint.
func (p *Parser) parseRangeBound() (*cst.Node, bool) {
	t := p.peek()
	switch {
	case t.Kind == token.Minus:
		n := cst.New(cst.LitPat)
		n.AddTok(p.bump())
		if !p.peek().Kind.IsLiteral() {
			p.errExpected(diag.SynExpectPattern, "literal after '-'")
			return nil, false
		}
		n.AddTok(p.bump())
		return n.Finish(), true
	case t.Kind.IsLiteral(), t.Kind == token.KwTrue, t.Kind == token.KwFalse:
		return p.single(cst.LitPat), true
	case t.IsIdentLike(), t.Kind == token.PathSep:
		path, ok := p.parsePath(pathExpr)
		if !ok {
			return nil, false
		}
		n := cst.New(cst.PathPat)
		n.AddNode(path)
		return n.Finish(), true
	}
	p.errExpected(diag.SynExpectPattern, "range bound")
	return nil, false
}

func (p *Parser) maybeRangePat(lo *cst.Node) (*cst.Node, bool) {
	if !p.atAny(token.DotDot, token.DotDotEq, token.DotDotDot) {
		return lo, true
	}
	n := cst.New(cst.RangePat)
	n.AddNode(lo)
	n.AddTok(p.bump())
	if p.atPatternEnd(0) {
		return n.Finish(), true
	}
	hi, ok := p.parseRangeBound()
	if !ok {
		return nil, false
	}
	n.AddNode(hi)
	return n.Finish(), true
}

func (p *Parser) parsePatList(n *cst.Node, closing token.Kind) bool {
	n.AddTok(p.bump()) // ( or [
	for !p.at(closing) && p.ok() {
		pat, ok := p.parsePattern()
		if !ok {
			return false
		}
		n.AddNode(pat)
		if !p.eat(n, token.Comma) {
			break
		}
	}
	return p.expect(n, closing, diag.SynUnclosedDelimiter, "',' or '"+closing.String()+"'")
}

func (p *Parser) parsePathPattern() (*cst.Node, bool) {
	path, ok := p.parsePath(pathExpr)
	if !ok {
		return nil, false
	}
	switch {
	case p.at(token.LParen):
		n := cst.New(cst.TupleStructPat)
		n.AddNode(path)
		if !p.parsePatList(n, token.RParen) {
			return nil, false
		}
		return n.Finish(), true
	case p.at(token.LBrace):
		return p.parseStructPat(path)
	}
	n := cst.New(cst.PathPat)
	n.AddNode(path)
	return p.maybeRangePat(n.Finish())
}

func (p *Parser) parseStructPat(path *cst.Node) (*cst.Node, bool) {
	n := cst.New(cst.StructPat)
	n.AddNode(path)
	n.AddTok(p.bump()) // {
	for !p.at(token.RBrace) && p.ok() {
		f := cst.New(cst.StructPatField)
		for _, a := range p.parseOuterAttrs() {
			f.AddNode(a)
		}
		switch t := p.peek(); {
		case t.Kind == token.DotDot:
			f.AddTok(p.bump())
		case (t.Kind == token.Ident || t.Kind == token.IntLit) && p.nthIs(1, token.Colon):
			f.AddTok(p.bump())
			f.AddTok(p.bump())
			pat, ok := p.parsePattern()
			if !ok {
				return nil, false
			}
			f.AddNode(pat)
		default:
			pat, ok := p.parseIdentPat()
			if !ok {
				return nil, false
			}
			f.AddNode(pat)
		}
		n.AddNode(f.Finish())
		if !p.eat(n, token.Comma) {
			break
		}
	}
	if !p.expect(n, token.RBrace, diag.SynUnclosedDelimiter, "',' or '}'") {
		return nil, false
	}
	return n.Finish(), true
}
