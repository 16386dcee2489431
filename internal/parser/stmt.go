package parser

import (
	"vfmt/internal/cst"
	"vfmt/internal/diag"
	"vfmt/internal/token"
)

// parseBlock parses "{ stmts [tail] }".
func (p *Parser) parseBlock() (*cst.Node, bool) {
	n := cst.New(cst.Block)
	if !p.expect(n, token.LBrace, diag.SynExpectBlock, "'{'") {
		return nil, false
	}
	defer p.withNoStruct(false)()
	p.parseInnerAttrs(n)
	for !p.at(token.RBrace) && p.ok() {
		if p.at(token.EOF) {
			break
		}
		stmt, ok := p.parseStmt()
		if !ok {
			return nil, false
		}
		n.AddNode(stmt)
	}
	if !p.expect(n, token.RBrace, diag.SynUnclosedDelimiter, "'}'") {
		return nil, false
	}
	return n.Finish(), true
}

func (p *Parser) parseStmt() (*cst.Node, bool) {
	switch {
	case p.at(token.Semi):
		return p.single(cst.EmptyStmt), true
	case p.atItemStart():
		return p.parseItem()
	}

	attrs := p.parseOuterAttrs()
	if !p.ok() {
		return nil, false
	}
	if p.at(token.KwLet) {
		return p.parseLetStmt(attrs)
	}
	if len(attrs) > 0 && p.atItemStart() {
		// attributes were consumed already; hand them to the item
		pre := itemPrefix{attrs: attrs}
		return p.parseItemAfterAttrs(&pre)
	}

	n := cst.New(cst.ExprStmt)
	for _, a := range attrs {
		n.AddNode(a)
		n.Verus = n.Verus || a.Verus
	}
	e, ok := p.parseExprStmt()
	if !ok {
		return nil, false
	}
	n.AddNode(e)
	switch {
	case p.eat(n, token.Semi):
	case p.at(token.RBrace):
		// tail expression
	case isBlockLike(e):
	default:
		p.errExpected(diag.SynExpectSemicolon, "';' or '}'")
		return nil, false
	}
	return n.Finish(), true
}

// parseItemAfterAttrs continues an item whose outer attributes are parsed.
func (p *Parser) parseItemAfterAttrs(pre *itemPrefix) (*cst.Node, bool) {
	if p.atMacroCall() {
		return p.parseMacroItem(pre)
	}
	saved := pre.attrs
	pre.attrs = nil
	item, ok := p.parseItem()
	if !ok {
		return nil, false
	}
	if len(saved) > 0 {
		children := make([]cst.Child, 0, len(saved)+len(item.Children))
		for _, a := range saved {
			children = append(children, cst.Child{Node: a})
			item.Verus = item.Verus || a.Verus
		}
		item.Children = append(children, item.Children...)
		item.Finish()
	}
	return item, true
}

func (p *Parser) parseLetStmt(attrs []*cst.Node) (*cst.Node, bool) {
	n := cst.New(cst.LetStmt)
	for _, a := range attrs {
		n.AddNode(a)
		n.Verus = n.Verus || a.Verus
	}
	n.AddTok(p.bump()) // let
	p.parseModeWord(n)
	pat, ok := p.parsePattern()
	if !ok {
		return nil, false
	}
	n.AddNode(pat)
	if p.eat(n, token.Colon) {
		ty, ok := p.parseType()
		if !ok {
			return nil, false
		}
		n.AddNode(ty)
	}
	if p.eat(n, token.Eq) {
		e, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		n.AddNode(e)
		if p.eat(n, token.KwElse) {
			b, ok := p.parseBlock()
			if !ok {
				return nil, false
			}
			n.AddNode(b)
		}
	}
	if !p.expect(n, token.Semi, diag.SynExpectSemicolon, "';'") {
		return nil, false
	}
	return n.Finish(), true
}

// isBlockLike reports expressions that end a statement without ';'.
func isBlockLike(e *cst.Node) bool {
	switch e.Kind {
	case cst.BlockExpr, cst.IfExpr, cst.MatchExpr, cst.LoopExpr, cst.WhileExpr, cst.ForExpr, cst.ProofBlock:
		return true
	case cst.AssertExpr, cst.AssertForall, cst.MacroCall:
		last := e.LastToken()
		return last != nil && last.Kind == token.RBrace
	}
	return false
}
