package format

import (
	"vfmt/internal/cst"
	"vfmt/internal/doc"
	"vfmt/internal/parser"
	"vfmt/internal/token"
)

// binExpr prints a chain of operators of one precedence level. When the
// chain does not fit, every operator starts a new, indented line.
func (p *printer) binExpr(n *cst.Node) *doc.Doc {
	operands, ops := flattenBin(n)
	rest := make([]*doc.Doc, 0, 4*len(ops))
	for i, op := range ops {
		rest = append(rest, doc.Line(), p.tok(op), space, p.node(operands[i+1]))
	}
	return doc.Group(doc.Concat(p.node(operands[0]), doc.Nest(doc.Concat(rest...))))
}

// flattenBin collects the operands of nested binary expressions that share
// the precedence and associativity of n.
func flattenBin(n *cst.Node) ([]*cst.Node, []*token.Token) {
	op := n.Children[1].Tok
	if parser.RightAssoc(op.Kind) {
		var operands []*cst.Node
		var ops []*token.Token
		cur := n
		for {
			operands = append(operands, cur.Children[0].Node)
			ops = append(ops, cur.Children[1].Tok)
			r := cur.Children[2].Node
			if r.Kind == cst.BinExpr && r.Children[1].Tok.Kind == op.Kind {
				cur = r
				continue
			}
			return append(operands, r), ops
		}
	}

	prec := parser.Precedence(op.Kind)
	var rights []*cst.Node
	var revOps []*token.Token
	cur := n
	for cur.Kind == cst.BinExpr {
		k := cur.Children[1].Tok.Kind
		if parser.Precedence(k) != prec || parser.RightAssoc(k) {
			break
		}
		revOps = append(revOps, cur.Children[1].Tok)
		rights = append(rights, cur.Children[2].Node)
		cur = cur.Children[0].Node
	}
	operands := []*cst.Node{cur}
	ops := make([]*token.Token, 0, len(revOps))
	for i := len(rights) - 1; i >= 0; i-- {
		operands = append(operands, rights[i])
		ops = append(ops, revOps[i])
	}
	return operands, ops
}

// prefixExpr prints "-x", "!x", "*x", "&x" and "&mut x".
func (p *printer) prefixExpr(n *cst.Node) *doc.Doc {
	var parts []*doc.Doc
	for _, c := range n.Children {
		if isTok(c, token.KwMut) {
			parts = append(parts, p.tok(c.Tok), space)
			continue
		}
		parts = append(parts, p.child(c))
	}
	return doc.Concat(parts...)
}

func (p *printer) arrayExpr(n *cst.Node) *doc.Doc {
	if firstTok(n.Children, token.Semi) < 0 {
		return p.delimited(n.Children, listSoft, listOpts{})
	}
	var parts []*doc.Doc
	for _, c := range n.Children {
		if isTok(c, token.Semi) {
			parts = append(parts, p.tok(c.Tok), space)
			continue
		}
		parts = append(parts, p.child(c))
	}
	return doc.Concat(parts...)
}

// closureExpr prints "move |a, b| body" and the clause form
// "|x| -> T requires p { ... }".
func (p *printer) closureExpr(n *cst.Node) *doc.Doc {
	var parts []*doc.Doc
	kids := n.Children
	for len(kids) > 0 && kids[0].Tok != nil {
		parts = append(parts, p.tok(kids[0].Tok), space)
		kids = kids[1:]
	}
	parts = append(parts, p.closureParams(kids[0].Node))
	kids = kids[1:]
	if isNode(kids[0], cst.RetType) {
		parts = append(parts, space, p.node(kids[0].Node))
		kids = kids[1:]
	}
	if len(kids) > 1 {
		parts = append(parts, p.headerTail(kids))
		return doc.Concat(parts...)
	}
	return doc.Concat(append(parts, space, p.node(kids[0].Node))...)
}

// closureParams prints "|a: T, b|" without a trailing comma.
func (p *printer) closureParams(n *cst.Node) *doc.Doc {
	kids := n.Children
	if len(kids) == 1 {
		return p.tok(kids[0].Tok)
	}
	elems := splitElems(kids[1 : len(kids)-1])
	parts := []*doc.Doc{p.tok(kids[0].Tok)}
	for i, e := range elems {
		var sep *doc.Doc
		if i < len(elems)-1 {
			sep = doc.Text(", ")
		}
		parts = append(parts, p.elemDoc(e), p.optTok(e.comma, sep))
	}
	return doc.Concat(append(parts, p.tok(kids[len(kids)-1].Tok))...)
}

// blockExpr prints "'label: unsafe { ... }" and its plain form.
func (p *printer) blockExpr(n *cst.Node) *doc.Doc {
	var parts []*doc.Doc
	for _, c := range n.Children {
		switch {
		case isTok(c, token.Lifetime):
			parts = append(parts, p.tok(c.Tok))
		case c.Tok != nil:
			parts = append(parts, p.tok(c.Tok), space)
		default:
			parts = append(parts, p.node(c.Node))
		}
	}
	return doc.Concat(parts...)
}

func (p *printer) ifExpr(n *cst.Node) *doc.Doc {
	var parts []*doc.Doc
	for i, c := range n.Children {
		switch {
		case i == 0:
			parts = append(parts, p.tok(c.Tok))
		case isTok(c, token.KwElse):
			parts = append(parts, space, p.tok(c.Tok))
		default:
			parts = append(parts, space, p.node(c.Node))
		}
	}
	return doc.Concat(parts...)
}

func (p *printer) matchExpr(n *cst.Node) *doc.Doc {
	head, open, body, close := bracedKids(n.Children)
	return doc.Concat(p.spaced(head), space, p.braced(open, body, close, false))
}

// matchArm prints "pat if guard => body,". Block bodies go without the comma.
func (p *printer) matchArm(n *cst.Node) *doc.Doc {
	var parts []*doc.Doc
	var body *cst.Node
	var armComma *token.Token
	for _, c := range n.Children {
		switch {
		case isNode(c, cst.Attr):
			parts = append(parts, p.attr(c.Node), doc.HardLine())
		case isTok(c, token.KwIf), isTok(c, token.FatArrow):
			parts = append(parts, space, p.tok(c.Tok), space)
		case isTok(c, token.Comma):
			armComma = c.Tok
		case c.Node != nil:
			parts = append(parts, p.node(c.Node))
			body = c.Node
		}
	}
	var sep *doc.Doc
	if body.Kind != cst.BlockExpr {
		sep = comma
	}
	return doc.Concat(append(parts, p.optTok(armComma, sep))...)
}

// loopExpr prints while, loop and for with their clauses.
func (p *printer) loopExpr(n *cst.Node) *doc.Doc {
	kids := n.Children
	i := 0
	for i < len(kids) && !isNode(kids[i], cst.WhereClause) && !isNode(kids[i], cst.Clause) && !isNode(kids[i], cst.Block) {
		i++
	}
	return doc.Concat(p.spaced(kids[:i]), p.headerTail(kids[i:]))
}

// structLit prints "Path { a, b: c, ..base }".
func (p *printer) structLit(n *cst.Node) *doc.Doc {
	kids := n.Children[1:]
	opts := listOpts{}
	if f := lastNode(kids); f != nil && f.Kind == cst.StructLitBase {
		opts.noTrailing = true
	}
	return doc.Concat(p.node(n.Children[0].Node), space, p.delimited(kids, listSpaced, opts))
}
