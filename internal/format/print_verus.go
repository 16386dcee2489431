package format

import (
	"vfmt/internal/cst"
	"vfmt/internal/doc"
	"vfmt/internal/token"
)

// clause prints a requires/ensures/invariant style clause. A clause with one
// expression stays next to its keyword when it fits; several expressions
// go one per line, each with a comma.
func (p *printer) clause(n *cst.Node) *doc.Doc {
	kw := p.tok(n.Children[0].Tok)
	elems := splitElems(n.Children[1:])
	switch len(elems) {
	case 0:
		return kw
	case 1:
		e := elems[0]
		return doc.Group(doc.Concat(kw, doc.Nest(doc.Concat(
			doc.Line(),
			p.elemDoc(e),
			p.optTok(e.comma, doc.IfBreak(comma, nil)),
		))))
	}
	var inner []*doc.Doc
	for i, e := range elems {
		p.blankOK = i > 0
		inner = append(inner, doc.HardLine(), p.elemDoc(e), p.optTok(e.comma, comma))
	}
	p.blankOK = false
	return doc.Concat(kw, doc.Nest(doc.Concat(inner...)))
}

// quantExpr prints "forall|x: T| body", moving a long body to the next line.
func (p *printer) quantExpr(n *cst.Node) *doc.Doc {
	kids := n.Children
	return doc.Concat(
		p.tok(kids[0].Tok),
		p.closureParams(kids[1].Node),
		doc.Group(doc.Nest(doc.Concat(doc.Line(), p.node(kids[2].Node)))),
	)
}

// assertExpr prints "assert(e)", "assume(e)", "assert(e) by { ... }" and
// "assert(e) by (prover) requires p { ... }".
func (p *printer) assertExpr(n *cst.Node) *doc.Doc {
	kids := n.Children
	parts := []*doc.Doc{p.tok(kids[0].Tok), p.tok(kids[1].Tok), p.node(kids[2].Node), p.tok(kids[3].Tok)}
	clause := false
	for i := 4; i < len(kids); i++ {
		c := kids[i]
		switch {
		case c.Tok != nil && c.Tok.IsWord("by"):
			parts = append(parts, space, p.tok(c.Tok))
		case isTok(c, token.LParen):
			parts = append(parts, space, p.tok(c.Tok))
		case isNode(c, cst.Clause):
			parts = append(parts, doc.Nest(doc.Concat(doc.HardLine(), p.clause(c.Node))))
			clause = true
		case isNode(c, cst.Block):
			parts = append(parts, bodyAfter(clause), p.block(c.Node))
		default:
			parts = append(parts, p.child(c))
		}
	}
	return doc.Concat(parts...)
}

// assertForall prints "assert forall|x| p implies q by { ... }".
func (p *printer) assertForall(n *cst.Node) *doc.Doc {
	kids := n.Children
	parts := []*doc.Doc{p.tok(kids[0].Tok), space, p.tok(kids[1].Tok), p.closureParams(kids[2].Node), space}
	rest := kids[3:]
	if len(rest) > 1 && rest[1].Tok != nil && rest[1].Tok.IsWord("implies") {
		parts = append(parts, p.node(rest[0].Node), doc.Group(doc.Nest(doc.Concat(
			doc.Line(), p.tok(rest[1].Tok), space, p.node(rest[2].Node),
		))))
		rest = rest[3:]
	} else {
		parts = append(parts, p.node(rest[0].Node))
		rest = rest[1:]
	}
	for _, c := range rest {
		parts = append(parts, space, p.child(c))
	}
	return doc.Concat(parts...)
}

// bulletExpr prints "&&& a" conjuncts one per line.
func (p *printer) bulletExpr(n *cst.Node) *doc.Doc {
	var parts []*doc.Doc
	for i, c := range n.Children {
		if c.Tok != nil {
			if i > 0 {
				parts = append(parts, doc.HardLine())
			}
			parts = append(parts, p.tok(c.Tok), space)
			continue
		}
		parts = append(parts, p.node(c.Node))
	}
	return doc.Concat(parts...)
}

// exprAttr prints "#[trigger] e".
func (p *printer) exprAttr(n *cst.Node) *doc.Doc {
	return doc.Concat(p.attr(n.Children[0].Node), space, p.node(n.Children[1].Node))
}
