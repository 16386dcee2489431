package parser

import (
	"vfmt/internal/cst"
	"vfmt/internal/diag"
	"vfmt/internal/token"
)

// parseGenericParams parses "<'a, T: Bound = D, const N: usize>".
func (p *Parser) parseGenericParams() (*cst.Node, bool) {
	n := cst.New(cst.GenericParams)
	n.AddTok(p.bump()) // <
	for p.ok() && !p.atGt() {
		param := cst.New(cst.GenericParam)
		for _, a := range p.parseOuterAttrs() {
			param.AddNode(a)
		}
		switch t := p.peek(); {
		case t.Kind == token.Lifetime:
			param.AddTok(p.bump())
			if p.eat(param, token.Colon) {
				b, ok := p.parseTypeBounds()
				if !ok {
					return nil, false
				}
				param.AddNode(b)
			}
		case t.Kind == token.KwConst:
			param.AddTok(p.bump())
			if !p.expect(param, token.Ident, diag.SynExpectIdentifier, "const parameter name") ||
				!p.expect(param, token.Colon, diag.SynExpectType, "':'") {
				return nil, false
			}
			ty, ok := p.parseType()
			if !ok {
				return nil, false
			}
			param.AddNode(ty)
			if p.eat(param, token.Eq) {
				e, ok := p.parseConstArg()
				if !ok {
					return nil, false
				}
				param.AddNode(e)
			}
		case t.Kind == token.Ident:
			param.AddTok(p.bump())
			if p.eat(param, token.Colon) {
				b, ok := p.parseTypeBounds()
				if !ok {
					return nil, false
				}
				param.AddNode(b)
			}
			if p.eat(param, token.Eq) {
				ty, ok := p.parseType()
				if !ok {
					return nil, false
				}
				param.AddNode(ty)
			}
		default:
			p.errExpected(diag.SynExpectIdentifier, "generic parameter")
			return nil, false
		}
		n.AddNode(param.Finish())
		if !p.eat(n, token.Comma) {
			break
		}
	}
	if !p.expectGt(n) {
		return nil, false
	}
	return n.Finish(), true
}

// atGt reports a token starting with '>'.
func (p *Parser) atGt() bool {
	return p.atAny(token.Gt, token.Shr, token.Ge, token.ShrEq)
}

// parseGenericArgs parses "<T, 'a, N, Item = T, Item: Bound>".
func (p *Parser) parseGenericArgs() (*cst.Node, bool) {
	n := cst.New(cst.GenericArgs)
	n.AddTok(p.bump()) // <
	for p.ok() && !p.atGt() {
		switch t := p.peek(); {
		case t.Kind == token.Lifetime:
			n.AddTok(p.bump())
		case t.Kind == token.Ident && p.nthIs(1, token.Eq):
			n.AddTok(p.bump())
			n.AddTok(p.bump())
			ty, ok := p.parseType()
			if !ok {
				return nil, false
			}
			n.AddNode(ty)
		case t.Kind == token.Ident && p.nthIs(1, token.Colon):
			n.AddTok(p.bump())
			n.AddTok(p.bump())
			b, ok := p.parseTypeBounds()
			if !ok {
				return nil, false
			}
			n.AddNode(b)
		case t.Kind == token.LBrace, t.Kind.IsLiteral(), t.Kind == token.Minus:
			e, ok := p.parseConstArg()
			if !ok {
				return nil, false
			}
			n.AddNode(e)
		default:
			ty, ok := p.parseType()
			if !ok {
				return nil, false
			}
			n.AddNode(ty)
		}
		if !p.eat(n, token.Comma) {
			break
		}
	}
	if !p.expectGt(n) {
		return nil, false
	}
	return n.Finish(), true
}

// parseConstArg parses a const generic argument: a literal, a negated
// literal or a block.
func (p *Parser) parseConstArg() (*cst.Node, bool) {
	if p.at(token.LBrace) {
		return p.parseBlockExpr()
	}
	if p.at(token.Minus) {
		n := cst.New(cst.PrefixExpr)
		n.AddTok(p.bump())
		lit, ok := p.parseConstArg()
		if !ok {
			return nil, false
		}
		n.AddNode(lit)
		return n.Finish(), true
	}
	if p.peek().Kind.IsLiteral() {
		n := cst.New(cst.LitExpr)
		n.AddTok(p.bump())
		return n.Finish(), true
	}
	path, ok := p.parsePath(pathExpr)
	if !ok {
		return nil, false
	}
	n := cst.New(cst.PathExpr)
	n.AddNode(path)
	return n.Finish(), true
}

// parseWhereClause parses predicates up to a body, ';', '=' or a clause keyword.
func (p *Parser) parseWhereClause(clauses map[string]bool) (*cst.Node, bool) {
	n := cst.New(cst.WhereClause)
	n.AddTok(p.bump()) // where
	for p.ok() {
		if p.atAny(token.LBrace, token.Semi, token.Eq, token.EOF) || p.atClauseStart(clauses) {
			break
		}
		pred := cst.New(cst.WherePred)
		if p.at(token.KwFor) {
			pred.AddTok(p.bump())
			if !p.atLt() {
				p.errExpected(diag.SynUnexpectedToken, "'<'")
				return nil, false
			}
			g, ok := p.parseGenericParams()
			if !ok {
				return nil, false
			}
			pred.AddNode(g)
		}
		if p.at(token.Lifetime) {
			pred.AddTok(p.bump())
		} else {
			ty, ok := p.parseType()
			if !ok {
				return nil, false
			}
			pred.AddNode(ty)
		}
		if !p.expect(pred, token.Colon, diag.SynUnexpectedToken, "':'") {
			return nil, false
		}
		b, ok := p.parseTypeBounds()
		if !ok {
			return nil, false
		}
		pred.AddNode(b)
		n.AddNode(pred.Finish())
		if !p.eat(n, token.Comma) {
			break
		}
	}
	return n.Finish(), p.ok()
}

// parseTypeBounds parses "A + ?Sized + 'a + for<'b> Fn(&'b u8)". It may be empty.
func (p *Parser) parseTypeBounds() (*cst.Node, bool) {
	n := cst.New(cst.TypeBounds)
	for p.ok() {
		switch t := p.peek(); {
		case t.Kind == token.Lifetime:
			n.AddTok(p.bump())
		case t.Kind == token.Question, t.Kind == token.Tilde:
			n.AddTok(p.bump())
			p.eat(n, token.KwConst)
			path, ok := p.parsePath(pathType)
			if !ok {
				return nil, false
			}
			n.AddNode(path)
		case t.Kind == token.KwFor:
			n.AddTok(p.bump())
			if !p.atLt() {
				p.errExpected(diag.SynUnexpectedToken, "'<'")
				return nil, false
			}
			g, ok := p.parseGenericParams()
			if !ok {
				return nil, false
			}
			n.AddNode(g)
			path, ok := p.parsePath(pathType)
			if !ok {
				return nil, false
			}
			n.AddNode(path)
		case t.Kind == token.LParen:
			n.AddTok(p.bump())
			inner, ok := p.parseTypeBounds()
			if !ok {
				return nil, false
			}
			n.AddNode(inner)
			if !p.expect(n, token.RParen, diag.SynUnclosedDelimiter, "')'") {
				return nil, false
			}
		case t.IsIdentLike(), t.Kind == token.PathSep:
			path, ok := p.parsePath(pathType)
			if !ok {
				return nil, false
			}
			n.AddNode(path)
		default:
			return n.Finish(), true
		}
		if !p.eat(n, token.Plus) {
			break
		}
	}
	return n.Finish(), p.ok()
}
