package format

import (
	"vfmt/internal/cst"
	"vfmt/internal/doc"
	"vfmt/internal/token"
)

func (p *printer) genericParam(n *cst.Node) *doc.Doc {
	var parts []*doc.Doc
	for i, c := range n.Children {
		switch {
		case isNode(c, cst.Attr):
			parts = append(parts, p.attr(c.Node), space)
		case isTok(c, token.KwConst):
			parts = append(parts, p.tok(c.Tok), space)
		case isTok(c, token.Colon):
			parts = append(parts, p.tok(c.Tok))
			if i+1 < len(n.Children) && !emptyBounds(n.Children[i+1]) {
				parts = append(parts, space)
			}
		case isTok(c, token.Eq):
			parts = append(parts, space, p.tok(c.Tok), space)
		default:
			parts = append(parts, p.child(c))
		}
	}
	return doc.Concat(parts...)
}

func emptyBounds(c cst.Child) bool {
	return isNode(c, cst.TypeBounds) && len(c.Node.Children) == 0
}

// genericArgs prints "<A, B, Item = C>".
func (p *printer) genericArgs(n *cst.Node) *doc.Doc {
	return p.delimited(n.Children, listSoft, listOpts{})
}

func (p *printer) wherePred(n *cst.Node) *doc.Doc {
	var parts []*doc.Doc
	for i, c := range n.Children {
		switch {
		case isTok(c, token.KwFor):
			parts = append(parts, p.tok(c.Tok))
		case isNode(c, cst.GenericParams):
			parts = append(parts, p.node(c.Node), space)
		case isTok(c, token.Colon):
			parts = append(parts, p.tok(c.Tok))
			if i+1 < len(n.Children) && !emptyBounds(n.Children[i+1]) {
				parts = append(parts, space)
			}
		default:
			parts = append(parts, p.child(c))
		}
	}
	return doc.Concat(parts...)
}

// typeBounds prints "A + ?Sized + 'a + for<'b> Fn(&'b T)".
func (p *printer) typeBounds(n *cst.Node) *doc.Doc {
	var parts []*doc.Doc
	for _, c := range n.Children {
		switch {
		case isTok(c, token.Plus):
			parts = append(parts, space, p.tok(c.Tok), space)
		case isTok(c, token.KwFor):
			parts = append(parts, p.tok(c.Tok))
		case isNode(c, cst.GenericParams), isTok(c, token.KwConst):
			parts = append(parts, p.child(c), space)
		default:
			parts = append(parts, p.child(c))
		}
	}
	return doc.Concat(parts...)
}

func (p *printer) qself(n *cst.Node) *doc.Doc {
	var parts []*doc.Doc
	for _, c := range n.Children {
		if isTok(c, token.KwAs) {
			parts = append(parts, space, p.tok(c.Tok), space)
			continue
		}
		parts = append(parts, p.child(c))
	}
	return doc.Concat(parts...)
}

// parenArgs prints the "(A, B) -> C" sugar of closure traits.
func (p *printer) parenArgs(n *cst.Node) *doc.Doc {
	kids := n.Children
	var ret *cst.Node
	if last := kids[len(kids)-1]; isNode(last, cst.RetType) {
		ret = last.Node
		kids = kids[:len(kids)-1]
	}
	d := p.delimited(kids, listSoft, listOpts{})
	if ret != nil {
		return doc.Concat(d, space, p.node(ret))
	}
	return d
}

func (p *printer) retType(n *cst.Node) *doc.Doc {
	kids := n.Children
	parts := []*doc.Doc{p.tok(kids[0].Tok), space}
	for _, c := range kids[1:] {
		switch {
		case c.Tok != nil && isModeWord(c.Tok):
			parts = append(parts, p.tok(c.Tok), space)
		case isTok(c, token.Colon):
			parts = append(parts, p.tok(c.Tok), space)
		default:
			parts = append(parts, p.child(c))
		}
	}
	return doc.Concat(parts...)
}

func (p *printer) pathType(n *cst.Node) *doc.Doc {
	var parts []*doc.Doc
	for _, c := range n.Children {
		if isTok(c, token.Plus) {
			parts = append(parts, space, p.tok(c.Tok), space)
			continue
		}
		parts = append(parts, p.child(c))
	}
	return doc.Concat(parts...)
}

// refType prints "&'a mut T" and the same shape for reference patterns.
func (p *printer) refType(n *cst.Node) *doc.Doc {
	var parts []*doc.Doc
	for _, c := range n.Children {
		switch {
		case isTok(c, token.Lifetime), isTok(c, token.KwMut):
			parts = append(parts, p.tok(c.Tok), space)
		default:
			parts = append(parts, p.child(c))
		}
	}
	return doc.Concat(parts...)
}

func (p *printer) ptrType(n *cst.Node) *doc.Doc {
	kids := n.Children
	return doc.Concat(p.tok(kids[0].Tok), p.tok(kids[1].Tok), space, p.node(kids[2].Node))
}

func (p *printer) arrayType(n *cst.Node) *doc.Doc {
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

// fnPtrType prints "for<'a> unsafe extern "C" fn(A) -> B".
func (p *printer) fnPtrType(n *cst.Node) *doc.Doc {
	var parts []*doc.Doc
	for _, c := range n.Children {
		switch {
		case isTok(c, token.KwFor):
			parts = append(parts, p.tok(c.Tok))
		case isNode(c, cst.GenericParams):
			parts = append(parts, p.node(c.Node), space)
		case isTok(c, token.KwUnsafe), isTok(c, token.KwExtern), isTok(c, token.StringLit):
			parts = append(parts, p.tok(c.Tok), space)
		case isNode(c, cst.RetType):
			parts = append(parts, space, p.node(c.Node))
		default:
			parts = append(parts, p.child(c))
		}
	}
	return doc.Concat(parts...)
}

// implType prints "impl Bounds" and "dyn Bounds".
func (p *printer) implType(n *cst.Node) *doc.Doc {
	var parts []*doc.Doc
	for _, c := range n.Children {
		if c.Tok != nil {
			parts = append(parts, p.tok(c.Tok), space)
			continue
		}
		parts = append(parts, p.node(c.Node))
	}
	return doc.Concat(parts...)
}

// param prints a function, closure or fn pointer parameter.
func (p *printer) param(n *cst.Node) *doc.Doc {
	var parts []*doc.Doc
	for _, c := range n.Children {
		switch {
		case isNode(c, cst.Attr):
			parts = append(parts, p.attr(c.Node), space)
		case c.Tok != nil && isModeWord(c.Tok):
			parts = append(parts, p.tok(c.Tok), space)
		case isTok(c, token.Colon):
			parts = append(parts, p.tok(c.Tok), space)
		default:
			parts = append(parts, p.child(c))
		}
	}
	return doc.Concat(parts...)
}

// selfParam prints "&'a mut self: T".
func (p *printer) selfParam(n *cst.Node) *doc.Doc {
	var parts []*doc.Doc
	for _, c := range n.Children {
		switch {
		case isNode(c, cst.Attr):
			parts = append(parts, p.attr(c.Node), space)
		case isTok(c, token.Lifetime), isTok(c, token.KwMut), isTok(c, token.Colon):
			parts = append(parts, p.tok(c.Tok), space)
		default:
			parts = append(parts, p.child(c))
		}
	}
	return doc.Concat(parts...)
}
