package parser

import (
	"vfmt/internal/cst"
	"vfmt/internal/diag"
	"vfmt/internal/token"
)

func (p *Parser) parsePrimary() (*cst.Node, bool) {
	if !p.ok() {
		return nil, false
	}
	t := p.peek()
	switch {
	case t.Kind.IsLiteral():
		return p.single(cst.LitExpr), true
	case t.Kind == token.Lifetime && p.nthIs(1, token.Colon):
		return p.parseLabeled()
	case t.Kind == token.LParen:
		return p.parseParenOrTuple()
	case t.Kind == token.LBracket:
		return p.parseArrayExpr()
	case t.Kind == token.LBrace:
		return p.parseBlockExpr()
	case t.Kind == token.KwUnsafe && p.nthIs(1, token.LBrace),
		t.Kind == token.KwConst && p.nthIs(1, token.LBrace),
		t.Kind == token.KwAsync && p.nthIs(1, token.LBrace),
		t.Kind == token.KwAsync && p.nthIs(1, token.KwMove) && p.nthIs(2, token.LBrace):
		n := cst.New(cst.BlockExpr)
		n.AddTok(p.bump())
		p.eat(n, token.KwMove)
		b, ok := p.parseBlock()
		if !ok {
			return nil, false
		}
		n.AddNode(b)
		return n.Finish(), true
	case t.Kind == token.Pipe, t.Kind == token.OrOr, t.Kind == token.KwMove, t.Kind == token.KwAsync:
		return p.parseClosure()
	case t.Kind == token.KwIf:
		return p.parseIf()
	case t.Kind == token.KwMatch:
		return p.parseMatch()
	case t.Kind == token.KwLoop, t.Kind == token.KwWhile, t.Kind == token.KwFor:
		return p.parseLoop()
	case t.Kind == token.KwLet:
		return p.parseLetExpr()
	case t.Kind == token.KwReturn:
		n := cst.New(cst.ReturnExpr)
		n.AddTok(p.bump())
		return p.optionalOperand(n)
	case t.Kind == token.KwBreak:
		n := cst.New(cst.BreakExpr)
		n.AddTok(p.bump())
		p.eat(n, token.Lifetime)
		return p.optionalOperand(n)
	case t.Kind == token.KwContinue:
		n := cst.New(cst.ContinueExpr)
		n.AddTok(p.bump())
		p.eat(n, token.Lifetime)
		return n.Finish(), true
	case t.Kind == token.Ident:
		if n, ok, handled := p.parseVerusPrimary(); handled {
			return n, ok
		}
		return p.parsePathExpr()
	case t.IsIdentLike(), t.Kind == token.PathSep, t.Kind == token.Lt, t.Kind == token.Shl:
		return p.parsePathExpr()
	}
	p.errExpected(diag.SynExpectExpression, "expression")
	return nil, false
}

func (p *Parser) optionalOperand(n *cst.Node) (*cst.Node, bool) {
	if p.atExprStart() {
		e, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		n.AddNode(e)
	}
	return n.Finish(), true
}

// parseLabeled parses "'label: loop/while/for/block".
func (p *Parser) parseLabeled() (*cst.Node, bool) {
	label, colon := p.bump(), p.bump()
	var n *cst.Node
	var ok bool
	switch {
	case p.atAny(token.KwLoop, token.KwWhile, token.KwFor):
		n, ok = p.parseLoop()
	case p.at(token.LBrace):
		n, ok = p.parseBlockExpr()
	default:
		p.errExpected(diag.SynExpectExpression, "loop or block after label")
		return nil, false
	}
	if !ok {
		return nil, false
	}
	n.Children = append([]cst.Child{{Tok: label}, {Tok: colon}}, n.Children...)
	return n.Finish(), true
}

func (p *Parser) parseBlockExpr() (*cst.Node, bool) {
	n := cst.New(cst.BlockExpr)
	b, ok := p.parseBlock()
	if !ok {
		return nil, false
	}
	n.AddNode(b)
	return n.Finish(), true
}

// parseParenOrTuple parses "()", "(e)", "(e,)" and "(a, b)".
func (p *Parser) parseParenOrTuple() (*cst.Node, bool) {
	open := p.bump()
	defer p.withNoStruct(false)()
	var elems []cst.Child
	commas := 0
	for !p.at(token.RParen) && p.ok() {
		e, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		elems = append(elems, cst.Child{Node: e})
		if !p.at(token.Comma) {
			break
		}
		elems = append(elems, cst.Child{Tok: p.bump()})
		commas++
	}
	kind := cst.TupleExpr
	if len(elems) == 1 && commas == 0 {
		kind = cst.ParenExpr
	}
	n := cst.New(kind)
	n.AddTok(open)
	n.Children = append(n.Children, elems...)
	if !p.expect(n, token.RParen, diag.SynUnclosedDelimiter, "',' or ')'") {
		return nil, false
	}
	return n.Finish(), true
}

// parseArrayExpr parses "[a, b]" and "[x; n]".
func (p *Parser) parseArrayExpr() (*cst.Node, bool) {
	n := cst.New(cst.ArrayExpr)
	n.AddTok(p.bump()) // [
	defer p.withNoStruct(false)()
	for !p.at(token.RBracket) && p.ok() {
		e, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		n.AddNode(e)
		if len(n.Children) == 2 && p.eat(n, token.Semi) {
			size, ok := p.parseExpr()
			if !ok {
				return nil, false
			}
			n.AddNode(size)
			break
		}
		if !p.eat(n, token.Comma) {
			break
		}
	}
	if !p.expect(n, token.RBracket, diag.SynUnclosedDelimiter, "',' or ']'") {
		return nil, false
	}
	return n.Finish(), true
}

// parseClosure parses "[async] [move] |params| [-> T] [clauses] body".
func (p *Parser) parseClosure() (*cst.Node, bool) {
	n := cst.New(cst.ClosureExpr)
	p.eat(n, token.KwAsync)
	p.eat(n, token.KwMove)
	params, ok := p.parseClosureParams()
	if !ok {
		return nil, false
	}
	n.AddNode(params)
	n.Verus = params.Verus
	if p.at(token.RArrow) {
		ret, ok := p.parseRetType()
		if !ok {
			return nil, false
		}
		n.AddNode(ret)
		if !p.parseHeaderTail(n, fnClauseWords) {
			return nil, false
		}
		body, ok := p.parseBlockExpr()
		if !ok {
			return nil, false
		}
		n.AddNode(body)
		return n.Finish(), true
	}
	if p.atClauseStart(fnClauseWords) {
		if !p.parseHeaderTail(n, fnClauseWords) {
			return nil, false
		}
		body, ok := p.parseBlockExpr()
		if !ok {
			return nil, false
		}
		n.AddNode(body)
		return n.Finish(), true
	}
	body, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	n.AddNode(body)
	return n.Finish(), true
}

// parseClosureParams parses "|a, b: T|" or "||".
func (p *Parser) parseClosureParams() (*cst.Node, bool) {
	n := cst.New(cst.ClosureParams)
	if p.eat(n, token.OrOr) {
		return n.Finish(), true
	}
	if !p.expect(n, token.Pipe, diag.SynUnexpectedToken, "'|'") {
		return nil, false
	}
	for !p.at(token.Pipe) && p.ok() {
		param := cst.New(cst.Param)
		for _, a := range p.parseOuterAttrs() {
			param.AddNode(a)
		}
		p.parseModeWord(param)
		pat, ok := p.parsePatternNoAlt()
		if !ok {
			return nil, false
		}
		param.AddNode(pat)
		if p.eat(param, token.Colon) {
			ty, ok := p.parseType()
			if !ok {
				return nil, false
			}
			param.AddNode(ty)
		}
		n.AddNode(param.Finish())
		n.Verus = n.Verus || param.Verus
		if !p.eat(n, token.Comma) {
			break
		}
	}
	if !p.expect(n, token.Pipe, diag.SynUnclosedDelimiter, "',' or '|'") {
		return nil, false
	}
	return n.Finish(), true
}

func (p *Parser) parseIf() (*cst.Node, bool) {
	n := cst.New(cst.IfExpr)
	n.AddTok(p.bump()) // if
	cond, ok := p.parseCond()
	if !ok {
		return nil, false
	}
	n.AddNode(cond)
	then, ok := p.parseBlock()
	if !ok {
		return nil, false
	}
	n.AddNode(then)
	if p.eat(n, token.KwElse) {
		var alt *cst.Node
		if p.at(token.KwIf) {
			alt, ok = p.parseIf()
		} else {
			alt, ok = p.parseBlock()
		}
		if !ok {
			return nil, false
		}
		n.AddNode(alt)
	}
	return n.Finish(), true
}

// parseLetExpr parses "let P = e" inside if and while conditions.
func (p *Parser) parseLetExpr() (*cst.Node, bool) {
	n := cst.New(cst.LetExpr)
	n.AddTok(p.bump()) // let
	pat, ok := p.parsePattern()
	if !ok {
		return nil, false
	}
	n.AddNode(pat)
	if !p.expect(n, token.Eq, diag.SynUnexpectedToken, "'='") {
		return nil, false
	}
	e, ok := p.parseBinary(precAnd+1, false)
	if !ok {
		return nil, false
	}
	n.AddNode(e)
	return n.Finish(), true
}

func (p *Parser) parseMatch() (*cst.Node, bool) {
	n := cst.New(cst.MatchExpr)
	n.AddTok(p.bump()) // match
	scrutinee, ok := p.parseCond()
	if !ok {
		return nil, false
	}
	n.AddNode(scrutinee)
	if !p.expect(n, token.LBrace, diag.SynExpectBlock, "'{'") {
		return nil, false
	}
	defer p.withNoStruct(false)()
	p.parseInnerAttrs(n)
	for !p.at(token.RBrace) && p.ok() {
		arm := cst.New(cst.MatchArm)
		for _, a := range p.parseOuterAttrs() {
			arm.AddNode(a)
		}
		pat, ok := p.parsePattern()
		if !ok {
			return nil, false
		}
		arm.AddNode(pat)
		if p.eat(arm, token.KwIf) {
			guard, ok := p.parseExpr()
			if !ok {
				return nil, false
			}
			arm.AddNode(guard)
		}
		if !p.expect(arm, token.FatArrow, diag.SynUnexpectedToken, "'=>'") {
			return nil, false
		}
		body, ok := p.parseExprStmt()
		if !ok {
			return nil, false
		}
		arm.AddNode(body)
		switch {
		case p.eat(arm, token.Comma):
		case p.at(token.RBrace), isBlockLike(body):
		default:
			p.errExpected(diag.SynUnexpectedToken, "',' or '}' after match arm")
			return nil, false
		}
		n.AddNode(arm.Finish())
	}
	if !p.expect(n, token.RBrace, diag.SynUnclosedDelimiter, "'}'") {
		return nil, false
	}
	return n.Finish(), true
}

// parseLoop parses loop, while and for with optional loop clauses.
func (p *Parser) parseLoop() (*cst.Node, bool) {
	var n *cst.Node
	switch kw := p.bump(); kw.Kind {
	case token.KwLoop:
		n = cst.New(cst.LoopExpr)
		n.AddTok(kw)
	case token.KwWhile:
		n = cst.New(cst.WhileExpr)
		n.AddTok(kw)
		cond, ok := p.parseCond()
		if !ok {
			return nil, false
		}
		n.AddNode(cond)
	default:
		n = cst.New(cst.ForExpr)
		n.AddTok(kw)
		pat, ok := p.parsePattern()
		if !ok {
			return nil, false
		}
		n.AddNode(pat)
		if !p.expect(n, token.KwIn, diag.SynUnexpectedToken, "'in'") {
			return nil, false
		}
		iter, ok := p.parseCond()
		if !ok {
			return nil, false
		}
		n.AddNode(iter)
	}
	if !p.parseHeaderTail(n, loopClauseWords) {
		return nil, false
	}
	body, ok := p.parseBlock()
	if !ok {
		return nil, false
	}
	n.AddNode(body)
	return n.Finish(), true
}

// parsePathExpr parses a path, a macro call or a struct literal.
func (p *Parser) parsePathExpr() (*cst.Node, bool) {
	if p.atMacroCall() {
		return p.parseMacroCall(nil)
	}
	path, ok := p.parsePath(pathExpr)
	if !ok {
		return nil, false
	}
	if p.at(token.LBrace) && !p.noStruct {
		return p.parseStructLit(path)
	}
	n := cst.New(cst.PathExpr)
	n.AddNode(path)
	return n.Finish(), true
}

func (p *Parser) parseStructLit(path *cst.Node) (*cst.Node, bool) {
	n := cst.New(cst.StructLit)
	n.AddNode(path)
	n.AddTok(p.bump()) // {
	defer p.withNoStruct(false)()
	for !p.at(token.RBrace) && p.ok() {
		if p.at(token.DotDot) {
			base := cst.New(cst.StructLitBase)
			base.AddTok(p.bump())
			if !p.at(token.RBrace) {
				e, ok := p.parseExpr()
				if !ok {
					return nil, false
				}
				base.AddNode(e)
			}
			n.AddNode(base.Finish())
			break
		}
		f := cst.New(cst.StructLitField)
		for _, a := range p.parseOuterAttrs() {
			f.AddNode(a)
		}
		if !p.atAny(token.Ident, token.IntLit) {
			p.errExpected(diag.SynExpectIdentifier, "field name")
			return nil, false
		}
		f.AddTok(p.bump())
		if p.eat(f, token.Colon) {
			e, ok := p.parseExpr()
			if !ok {
				return nil, false
			}
			f.AddNode(e)
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
