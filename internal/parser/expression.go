package parser

import (
	"vfmt/internal/cst"
	"vfmt/internal/diag"
	"vfmt/internal/token"
)

func (p *Parser) parseExpr() (*cst.Node, bool) {
	return p.parseBinary(precAssign, false)
}

// parseExprStmt parses an expression in statement position. A block-like
// expression ends the statement unless a method call or '?' continues it.
func (p *Parser) parseExprStmt() (*cst.Node, bool) {
	return p.parseBinary(precAssign, true)
}

// parseCond parses an expression where a following '{' opens a block.
func (p *Parser) parseCond() (*cst.Node, bool) {
	defer p.withNoStruct(true)()
	return p.parseExpr()
}

// parseBinary is a precedence climber over binaryPrec.
func (p *Parser) parseBinary(minPrec int, stmt bool) (*cst.Node, bool) {
	lhs, ok := p.parseUnary(stmt)
	if !ok {
		return nil, false
	}
	if stmt && isBlockLike(lhs) {
		if !p.atAny(token.Dot, token.Question) {
			return lhs, true
		}
		if lhs, ok = p.parsePostfix(lhs); !ok {
			return nil, false
		}
	}
	for p.ok() {
		t := p.peek()
		switch {
		case t.IsWord("is") && minPrec <= precCast:
			n := cst.New(cst.IsExpr)
			n.AddNode(lhs)
			n.AddTok(p.bump())
			n.Verus = true
			path, ok := p.parsePath(pathExpr)
			if !ok {
				return nil, false
			}
			n.AddNode(path)
			lhs = n.Finish()
			continue
		case t.IsWord("matches") && minPrec <= precCompare:
			n := cst.New(cst.MatchesExpr)
			n.AddNode(lhs)
			n.AddTok(p.bump())
			n.Verus = true
			pat, ok := p.parsePatternNoAlt()
			if !ok {
				return nil, false
			}
			n.AddNode(pat)
			lhs = n.Finish()
			continue
		}

		prec, right := binaryPrec(t.Kind)
		if prec < minPrec {
			break
		}
		switch {
		case t.Kind == token.KwAs:
			n := cst.New(cst.CastExpr)
			n.AddNode(lhs)
			n.AddTok(p.bump())
			ty, ok := p.parseType()
			if !ok {
				return nil, false
			}
			n.AddNode(ty)
			lhs = n.Finish()
		case t.Kind == token.DotDot || t.Kind == token.DotDotEq:
			n := cst.New(cst.RangeExpr)
			n.AddNode(lhs)
			n.AddTok(p.bump())
			if p.atExprStart() {
				hi, ok := p.parseBinary(precRange+1, false)
				if !ok {
					return nil, false
				}
				n.AddNode(hi)
			}
			lhs = n.Finish()
		default:
			kind := cst.BinExpr
			if t.Kind.IsAssignOp() {
				kind = cst.AssignExpr
			}
			n := cst.New(kind)
			n.AddNode(lhs)
			n.AddTok(p.bump())
			next := prec + 1
			if right {
				next = prec
			}
			rhs, ok := p.parseBinary(next, false)
			if !ok {
				return nil, false
			}
			n.AddNode(rhs)
			lhs = n.Finish()
		}
	}
	return lhs, p.ok()
}

// parseUnary parses prefix operators, expression attributes, bullets and
// prefix ranges, then a postfix expression. In statement position a
// block-like primary is returned without postfix operators.
func (p *Parser) parseUnary(stmt bool) (*cst.Node, bool) {
	if !p.ok() {
		return nil, false
	}
	t := p.peek()
	switch t.Kind {
	case token.Minus, token.Bang, token.Star:
		n := cst.New(cst.PrefixExpr)
		n.AddTok(p.bump())
		operand, ok := p.parseUnary(false)
		if !ok {
			return nil, false
		}
		n.AddNode(operand)
		return n.Finish(), true
	case token.Amp, token.AndAnd:
		p.splitAnd()
		n := cst.New(cst.PrefixExpr)
		n.AddTok(p.bump())
		p.eat(n, token.KwMut)
		operand, ok := p.parseUnary(false)
		if !ok {
			return nil, false
		}
		n.AddNode(operand)
		return n.Finish(), true
	case token.BigAnd, token.BigOr:
		return p.parseBullets(t.Kind)
	case token.Pound:
		if p.atOuterAttr() || p.atInnerAttr() {
			n := cst.New(cst.ExprAttr)
			inner := p.atInnerAttr()
			a, ok := p.parseAttr()
			if !ok {
				return nil, false
			}
			n.AddNode(a)
			n.Verus = a.Verus
			// #![..] covers the whole body, #[..] the next operand
			var operand *cst.Node
			if inner {
				operand, ok = p.parseBinary(precAssign, false)
			} else {
				operand, ok = p.parseUnary(false)
			}
			if !ok {
				return nil, false
			}
			n.AddNode(operand)
			return n.Finish(), true
		}
	case token.DotDot, token.DotDotEq:
		n := cst.New(cst.RangeExpr)
		n.AddTok(p.bump())
		if p.atExprStart() {
			hi, ok := p.parseBinary(precRange+1, false)
			if !ok {
				return nil, false
			}
			n.AddNode(hi)
		}
		return n.Finish(), true
	}
	prim, ok := p.parsePrimary()
	if !ok {
		return nil, false
	}
	if stmt && isBlockLike(prim) {
		return prim, true
	}
	return p.parsePostfix(prim)
}

// parseBullets parses "&&& a &&& b" and "||| a ||| b".
func (p *Parser) parseBullets(op token.Kind) (*cst.Node, bool) {
	n := cst.New(cst.BulletExpr)
	n.Verus = true
	prec := precBigAnd + 1
	if op == token.BigOr {
		prec = precBigOr + 1
	}
	for p.at(op) && p.ok() {
		n.AddTok(p.bump())
		operand, ok := p.parseBinary(prec, false)
		if !ok {
			return nil, false
		}
		n.AddNode(operand)
	}
	return n.Finish(), p.ok()
}

// parsePostfix applies calls, method calls, field access, indexing, '?'
// and the view operator '@'.
func (p *Parser) parsePostfix(lhs *cst.Node) (*cst.Node, bool) {
	for p.ok() {
		switch t := p.peek(); t.Kind {
		case token.LParen:
			n := cst.New(cst.CallExpr)
			n.AddNode(lhs)
			args, ok := p.parseArgList()
			if !ok {
				return nil, false
			}
			n.AddNode(args)
			lhs = n.Finish()
		case token.LBracket:
			n := cst.New(cst.IndexExpr)
			n.AddNode(lhs)
			n.AddTok(p.bump())
			restore := p.withNoStruct(false)
			idx, ok := p.parseExpr()
			restore()
			if !ok {
				return nil, false
			}
			n.AddNode(idx)
			if !p.expect(n, token.RBracket, diag.SynUnclosedDelimiter, "']'") {
				return nil, false
			}
			lhs = n.Finish()
		case token.Question:
			n := cst.New(cst.TryExpr)
			n.AddNode(lhs)
			n.AddTok(p.bump())
			lhs = n.Finish()
		case token.At:
			n := cst.New(cst.ViewExpr)
			n.Verus = true
			n.AddNode(lhs)
			n.AddTok(p.bump())
			lhs = n.Finish()
		case token.Dot:
			next, ok := p.parseDotSuffix(lhs)
			if !ok {
				return nil, false
			}
			lhs = next
		default:
			return lhs, true
		}
	}
	return nil, false
}

func (p *Parser) parseDotSuffix(lhs *cst.Node) (*cst.Node, bool) {
	dot := p.bump()
	name := p.peek()
	switch {
	case name.Kind == token.Ident && (p.nthIs(1, token.LParen) || p.nthIs(1, token.PathSep)):
		n := cst.New(cst.MethodCall)
		n.AddNode(lhs)
		n.AddTok(dot)
		n.AddTok(p.bump())
		if p.at(token.PathSep) {
			n.AddTok(p.bump())
			if !p.atLt() {
				p.errExpected(diag.SynUnexpectedToken, "'<'")
				return nil, false
			}
			args, ok := p.parseGenericArgs()
			if !ok {
				return nil, false
			}
			n.AddNode(args)
		}
		args, ok := p.parseArgList()
		if !ok {
			return nil, false
		}
		n.AddNode(args)
		return n.Finish(), true
	case name.Kind == token.Ident, name.Kind == token.IntLit, name.Kind == token.KwAwait:
		n := cst.New(cst.FieldExpr)
		n.AddNode(lhs)
		n.AddTok(dot)
		n.AddTok(p.bump())
		return n.Finish(), true
	}
	p.errExpected(diag.SynExpectIdentifier, "field or method name")
	return nil, false
}

// parseArgList parses "(a, b, c)".
func (p *Parser) parseArgList() (*cst.Node, bool) {
	n := cst.New(cst.ArgList)
	n.AddTok(p.bump()) // (
	defer p.withNoStruct(false)()
	for !p.at(token.RParen) && p.ok() {
		e, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		n.AddNode(e)
		if !p.eat(n, token.Comma) {
			break
		}
	}
	if !p.expect(n, token.RParen, diag.SynUnclosedDelimiter, "',' or ')'") {
		return nil, false
	}
	return n.Finish(), true
}

// atExprStart reports whether an optional operand follows.
func (p *Parser) atExprStart() bool {
	t := p.peek()
	switch t.Kind {
	case token.Semi, token.Comma, token.RParen, token.RBracket, token.RBrace, token.FatArrow, token.EOF,
		token.Eq, token.Colon:
		return false
	case token.LBrace:
		return !p.noStruct
	case token.Ident:
		return !p.atClauseStart(fnClauseWords) && !p.atClauseStart(loopClauseWords)
	}
	if prec, _ := binaryPrec(t.Kind); prec >= 0 {
		switch t.Kind {
		case token.Minus, token.Star, token.Amp, token.AndAnd, token.Lt, token.Shl, token.Pipe, token.OrOr,
			token.DotDot, token.DotDotEq:
			return true
		}
		return false
	}
	return true
}
