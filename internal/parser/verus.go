package parser

import (
	"vfmt/internal/cst"
	"vfmt/internal/diag"
	"vfmt/internal/token"
)

// fnClauseWords open specification clauses after a function signature.
var fnClauseWords = map[string]bool{
	"requires":         true,
	"ensures":          true,
	"recommends":       true,
	"decreases":        true,
	"when":             true,
	"via":              true,
	"opens_invariants": true,
	"returns":          true,
	"no_unwind":        true,
	"default_ensures":  true,
}

// loopClauseWords open clauses between a loop header and its body.
var loopClauseWords = map[string]bool{
	"invariant":              true,
	"invariant_except_break": true,
	"invariant_ensures":      true,
	"ensures":                true,
	"decreases":              true,
}

// assertByClauseWords may follow "assert(e) by (prover)".
var assertByClauseWords = map[string]bool{
	"requires": true,
}

// atClauseStart reports a clause keyword used as such. A word directly
// followed by something that only continues an expression is an identifier.
func (p *Parser) atClauseStart(words map[string]bool) bool {
	t := p.peek()
	if t.Kind != token.Ident || !words[t.Text] {
		return false
	}
	next := p.peekN(1).Kind
	switch next {
	case token.Dot, token.Comma, token.Semi, token.Question, token.At, token.PathSep, token.KwAs,
		token.RParen, token.RBracket, token.RBrace, token.FatArrow, token.Colon, token.LBracket:
		return false
	case token.Minus, token.Star, token.Amp, token.AndAnd, token.Pipe, token.OrOr, token.Lt, token.Shl,
		token.BigAnd, token.BigOr, token.DotDot, token.DotDotEq:
		return true
	}
	if prec, _ := binaryPrec(next); prec >= 0 {
		return false
	}
	return true
}

// parseClause parses one clause: the keyword and a comma separated list of
// expressions, with an optional trailing comma.
func (p *Parser) parseClause(words map[string]bool) (*cst.Node, bool) {
	n := cst.New(cst.Clause)
	n.Verus = true
	n.AddTok(p.bump())
	defer p.withNoStruct(true)()
	for p.ok() {
		if p.atAny(token.LBrace, token.Semi, token.EOF, token.KwWhere) || p.atClauseStart(words) {
			break
		}
		e, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		n.AddNode(e)
		if !p.eat(n, token.Comma) {
			break
		}
	}
	return n.Finish(), p.ok()
}

// parseVerusPrimary handles expressions that start with a dialect word.
// handled is false when the word is an ordinary identifier here.
func (p *Parser) parseVerusPrimary() (n *cst.Node, ok bool, handled bool) {
	t := p.peek()
	next := p.peekN(1).Kind
	switch {
	case (t.Text == "forall" || t.Text == "exists" || t.Text == "choose") &&
		(next == token.Pipe || next == token.OrOr):
		n, ok = p.parseQuantifier()
		return n, ok, true
	case t.Text == "assert" && next == token.LParen:
		n, ok = p.parseAssert()
		return n, ok, true
	case t.Text == "assert" && p.peekN(1).IsWord("forall"):
		n, ok = p.parseAssertForall()
		return n, ok, true
	case t.Text == "assume" && next == token.LParen:
		n, ok = p.parseAssert()
		return n, ok, true
	case t.Text == "proof" && next == token.LBrace:
		n = cst.New(cst.ProofBlock)
		n.Verus = true
		n.AddTok(p.bump())
		b, ok := p.parseBlock()
		if !ok {
			return nil, false, true
		}
		n.AddNode(b)
		return n.Finish(), true, true
	}
	return nil, false, false
}

// parseQuantifier parses "forall|x: T| body" and its exists/choose forms.
func (p *Parser) parseQuantifier() (*cst.Node, bool) {
	n := cst.New(cst.QuantExpr)
	n.Verus = true
	n.AddTok(p.bump())
	params, ok := p.parseClosureParams()
	if !ok {
		return nil, false
	}
	n.AddNode(params)
	body, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	n.AddNode(body)
	return n.Finish(), true
}

// parseAssert parses "assert(e)", "assume(e)" and the proof forms
// "assert(e) by { ... }" and "assert(e) by (prover) [requires ...] [{ ... }]".
func (p *Parser) parseAssert() (*cst.Node, bool) {
	n := cst.New(cst.AssertExpr)
	n.Verus = true
	n.AddTok(p.bump()) // assert / assume
	n.AddTok(p.bump()) // (
	restore := p.withNoStruct(false)
	e, ok := p.parseExpr()
	restore()
	if !ok {
		return nil, false
	}
	n.AddNode(e)
	if !p.expect(n, token.RParen, diag.SynUnclosedDelimiter, "')'") {
		return nil, false
	}
	if !p.atWord("by") || !(p.nthIs(1, token.LParen) || p.nthIs(1, token.LBrace)) {
		return n.Finish(), true
	}
	n.AddTok(p.bump()) // by
	if p.at(token.LParen) {
		n.AddTok(p.bump())
		if !p.expect(n, token.Ident, diag.SynExpectIdentifier, "prover name") ||
			!p.expect(n, token.RParen, diag.SynUnclosedDelimiter, "')'") {
			return nil, false
		}
		if p.atClauseStart(assertByClauseWords) {
			c, ok := p.parseClause(assertByClauseWords)
			if !ok {
				return nil, false
			}
			n.AddNode(c)
		}
		if !p.at(token.LBrace) {
			return n.Finish(), true
		}
	}
	b, ok := p.parseBlock()
	if !ok {
		return nil, false
	}
	n.AddNode(b)
	return n.Finish(), true
}

// parseAssertForall parses "assert forall|x| p implies q by { ... }".
func (p *Parser) parseAssertForall() (*cst.Node, bool) {
	n := cst.New(cst.AssertForall)
	n.Verus = true
	n.AddTok(p.bump()) // assert
	n.AddTok(p.bump()) // forall
	params, ok := p.parseClosureParams()
	if !ok {
		return nil, false
	}
	n.AddNode(params)
	restore := p.withNoStruct(true)
	body, ok := p.parseExpr()
	if ok && p.atWord("implies") {
		n.AddNode(body)
		n.AddTok(p.bump())
		body, ok = p.parseExpr()
	}
	restore()
	if !ok {
		return nil, false
	}
	n.AddNode(body)
	if p.atWord("by") && p.nthIs(1, token.LBrace) {
		n.AddTok(p.bump())
		b, ok := p.parseBlock()
		if !ok {
			return nil, false
		}
		n.AddNode(b)
	}
	return n.Finish(), true
}
