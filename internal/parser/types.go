package parser

import (
	"vfmt/internal/cst"
	"vfmt/internal/diag"
	"vfmt/internal/token"
)

type pathMode uint8

const (
	pathMod  pathMode = iota // plain segments: visibility, use-like paths
	pathType                 // generic args follow a segment directly
	pathExpr                 // generic args need the turbofish '::<'
)

// parsePath parses an optionally qualified path such as
// "<T as Trait>::Assoc", "::std::vec::Vec<u8>" or "Vec::<u8>::new".
func (p *Parser) parsePath(mode pathMode) (*cst.Node, bool) {
	n := cst.New(cst.Path)
	if mode != pathMod && p.atLt() {
		q, ok := p.parseQSelf()
		if !ok {
			return nil, false
		}
		n.AddNode(q)
		if !p.expect(n, token.PathSep, diag.SynUnexpectedToken, "'::'") {
			return nil, false
		}
	} else {
		p.eat(n, token.PathSep)
	}
	for p.ok() {
		if !p.peek().IsIdentLike() {
			p.errExpected(diag.SynExpectIdentifier, "path segment")
			return nil, false
		}
		n.AddTok(p.bump())

		switch mode {
		case pathType:
			if p.at(token.PathSep) && p.nthIs(1, token.Lt) {
				n.AddTok(p.bump())
			}
			if p.atLt() {
				args, ok := p.parseGenericArgs()
				if !ok {
					return nil, false
				}
				n.AddNode(args)
			} else if p.at(token.LParen) {
				args, ok := p.parseParenArgs()
				if !ok {
					return nil, false
				}
				n.AddNode(args)
			}
		case pathExpr:
			if p.at(token.PathSep) && (p.nthIs(1, token.Lt) || p.nthIs(1, token.Shl)) {
				n.AddTok(p.bump())
				p.atLt()
				args, ok := p.parseGenericArgs()
				if !ok {
					return nil, false
				}
				n.AddNode(args)
			}
		}

		if !p.at(token.PathSep) || !p.peekN(1).IsIdentLike() {
			break
		}
		n.AddTok(p.bump())
	}
	return n.Finish(), p.ok()
}

// parseQSelf parses "<T>" or "<T as Trait>".
func (p *Parser) parseQSelf() (*cst.Node, bool) {
	n := cst.New(cst.QSelf)
	n.AddTok(p.bump()) // <
	ty, ok := p.parseType()
	if !ok {
		return nil, false
	}
	n.AddNode(ty)
	if p.eat(n, token.KwAs) {
		trait, ok := p.parsePath(pathType)
		if !ok {
			return nil, false
		}
		n.AddNode(trait)
	}
	if !p.expectGt(n) {
		return nil, false
	}
	return n.Finish(), true
}

// parseParenArgs parses the "(A, B) -> C" sugar of closure traits.
func (p *Parser) parseParenArgs() (*cst.Node, bool) {
	n := cst.New(cst.ParenArgs)
	n.AddTok(p.bump()) // (
	for !p.at(token.RParen) && p.ok() {
		ty, ok := p.parseType()
		if !ok {
			return nil, false
		}
		n.AddNode(ty)
		if !p.eat(n, token.Comma) {
			break
		}
	}
	if !p.expect(n, token.RParen, diag.SynUnclosedDelimiter, "',' or ')'") {
		return nil, false
	}
	if p.at(token.RArrow) {
		ret, ok := p.parseRetType()
		if !ok {
			return nil, false
		}
		n.AddNode(ret)
	}
	return n.Finish(), true
}

func (p *Parser) parseType() (*cst.Node, bool) {
	if !p.ok() {
		return nil, false
	}
	t := p.peek()
	switch {
	case t.Kind == token.LParen:
		return p.parseTupleType()
	case t.Kind == token.LBracket:
		return p.parseArrayType()
	case t.Kind == token.Amp, t.Kind == token.AndAnd:
		p.splitAnd()
		n := cst.New(cst.RefType)
		n.AddTok(p.bump())
		p.eat(n, token.Lifetime)
		p.eat(n, token.KwMut)
		inner, ok := p.parseType()
		if !ok {
			return nil, false
		}
		n.AddNode(inner)
		return n.Finish(), true
	case t.Kind == token.Star:
		n := cst.New(cst.PtrType)
		n.AddTok(p.bump())
		if !p.eat(n, token.KwConst) && !p.expect(n, token.KwMut, diag.SynExpectType, "'const' or 'mut'") {
			return nil, false
		}
		inner, ok := p.parseType()
		if !ok {
			return nil, false
		}
		n.AddNode(inner)
		return n.Finish(), true
	case t.Kind == token.Bang:
		n := cst.New(cst.NeverType)
		n.AddTok(p.bump())
		return n.Finish(), true
	case t.Kind == token.Underscore:
		n := cst.New(cst.InferType)
		n.AddTok(p.bump())
		return n.Finish(), true
	case t.Kind == token.KwImpl, t.Kind == token.KwDyn:
		kind := cst.ImplType
		if t.Kind == token.KwDyn {
			kind = cst.DynType
		}
		n := cst.New(kind)
		n.AddTok(p.bump())
		b, ok := p.parseTypeBounds()
		if !ok {
			return nil, false
		}
		n.AddNode(b)
		return n.Finish(), true
	case t.Kind == token.KwFn, t.Kind == token.KwUnsafe, t.Kind == token.KwExtern:
		return p.parseFnPtrType()
	case t.Kind == token.KwFor:
		// for<'a> fn(&'a T) or for<'a> Trait
		if p.nthIs(1, token.Lt) {
			if end, ok := p.skipGenericsAt(1); ok && p.peekN(end).Kind != token.KwFn &&
				p.peekN(end).Kind != token.KwUnsafe && p.peekN(end).Kind != token.KwExtern {
				n := cst.New(cst.DynType)
				b, ok := p.parseTypeBounds()
				if !ok {
					return nil, false
				}
				n.AddNode(b)
				return n.Finish(), true
			}
		}
		return p.parseFnPtrType()
	case t.IsIdentLike(), t.Kind == token.PathSep, t.Kind == token.Lt, t.Kind == token.Shl:
		if t.Kind == token.Ident && p.nthIs(1, token.Bang) {
			return p.parseMacroCall(nil)
		}
		path, ok := p.parsePath(pathType)
		if !ok {
			return nil, false
		}
		n := cst.New(cst.PathType)
		n.AddNode(path)
		// bare trait objects: Trait + 'a
		if p.at(token.Plus) && p.plusContinuesType() {
			n.AddTok(p.bump())
			b, ok := p.parseTypeBounds()
			if !ok {
				return nil, false
			}
			n.AddNode(b)
		}
		return n.Finish(), true
	}
	p.errExpected(diag.SynExpectType, "type")
	return nil, false
}

// plusContinuesType reports whether '+' after a path type adds a bound
// rather than starting an addition after a cast.
func (p *Parser) plusContinuesType() bool {
	next := p.peekN(1)
	return next.Kind == token.Lifetime || next.Kind == token.Question
}

// skipGenericsAt returns the index just past a balanced <...> starting at n.
func (p *Parser) skipGenericsAt(n int) (int, bool) {
	depth := 0
	for {
		switch p.peekN(n).Kind {
		case token.Lt:
			depth++
		case token.Shl:
			depth += 2
		case token.Gt:
			depth--
		case token.Shr:
			depth -= 2
		case token.EOF, token.LBrace, token.Semi:
			return n, false
		}
		n++
		if depth <= 0 {
			return n, true
		}
	}
}

func (p *Parser) parseTupleType() (*cst.Node, bool) {
	n := cst.New(cst.TupleType)
	n.AddTok(p.bump()) // (
	for !p.at(token.RParen) && p.ok() {
		ty, ok := p.parseType()
		if !ok {
			return nil, false
		}
		n.AddNode(ty)
		if !p.eat(n, token.Comma) {
			break
		}
	}
	if !p.expect(n, token.RParen, diag.SynUnclosedDelimiter, "',' or ')'") {
		return nil, false
	}
	return n.Finish(), true
}

func (p *Parser) parseArrayType() (*cst.Node, bool) {
	open := p.bump()
	elem, ok := p.parseType()
	if !ok {
		return nil, false
	}
	kind := cst.SliceType
	if p.at(token.Semi) {
		kind = cst.ArrayType
	}
	n := cst.New(kind)
	n.AddTok(open)
	n.AddNode(elem)
	if p.eat(n, token.Semi) {
		size, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		n.AddNode(size)
	}
	if !p.expect(n, token.RBracket, diag.SynUnclosedDelimiter, "']'") {
		return nil, false
	}
	return n.Finish(), true
}

// parseFnPtrType parses "[for<'a>] [unsafe] [extern "C"] fn(A, B) -> C".
func (p *Parser) parseFnPtrType() (*cst.Node, bool) {
	n := cst.New(cst.FnPtrType)
	if p.eat(n, token.KwFor) {
		if !p.atLt() {
			p.errExpected(diag.SynUnexpectedToken, "'<'")
			return nil, false
		}
		g, ok := p.parseGenericParams()
		if !ok {
			return nil, false
		}
		n.AddNode(g)
	}
	p.eat(n, token.KwUnsafe)
	if p.eat(n, token.KwExtern) {
		p.eat(n, token.StringLit)
	}
	if !p.expect(n, token.KwFn, diag.SynExpectType, "'fn'") {
		return nil, false
	}
	params := cst.New(cst.ParamList)
	if !p.expect(params, token.LParen, diag.SynUnexpectedToken, "'('") {
		return nil, false
	}
	for !p.at(token.RParen) && p.ok() {
		param := cst.New(cst.Param)
		if p.at(token.DotDotDot) {
			param.AddTok(p.bump())
		} else {
			if (p.at(token.Ident) || p.at(token.Underscore)) && p.nthIs(1, token.Colon) {
				pat, ok := p.parsePatternNoAlt()
				if !ok {
					return nil, false
				}
				param.AddNode(pat)
				param.AddTok(p.bump()) // :
			}
			ty, ok := p.parseType()
			if !ok {
				return nil, false
			}
			param.AddNode(ty)
		}
		params.AddNode(param.Finish())
		if !p.eat(params, token.Comma) {
			break
		}
	}
	if !p.expect(params, token.RParen, diag.SynUnclosedDelimiter, "',' or ')'") {
		return nil, false
	}
	n.AddNode(params.Finish())
	if p.at(token.RArrow) {
		ret, ok := p.parseRetType()
		if !ok {
			return nil, false
		}
		n.AddNode(ret)
	}
	return n.Finish(), true
}
