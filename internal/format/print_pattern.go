package format

import (
	"vfmt/internal/cst"
	"vfmt/internal/doc"
	"vfmt/internal/token"
)

// identPat prints "ref mut name @ sub".
func (p *printer) identPat(n *cst.Node) *doc.Doc {
	var parts []*doc.Doc
	for _, c := range n.Children {
		switch {
		case isTok(c, token.KwRef), isTok(c, token.KwMut):
			parts = append(parts, p.tok(c.Tok), space)
		case isTok(c, token.At):
			parts = append(parts, space, p.tok(c.Tok), space)
		default:
			parts = append(parts, p.child(c))
		}
	}
	return doc.Concat(parts...)
}

func (p *printer) tupleStructPat(n *cst.Node) *doc.Doc {
	return doc.Concat(p.node(n.Children[0].Node), p.delimited(n.Children[1:], listSoft, listOpts{}))
}

// structPat prints "Path { a, b: c, .. }". Nothing follows a rest marker.
func (p *printer) structPat(n *cst.Node) *doc.Doc {
	kids := n.Children[1:]
	opts := listOpts{}
	if f := lastNode(kids); f != nil && f.Tok(token.DotDot) != nil {
		opts.noTrailing = true
	}
	return doc.Concat(p.node(n.Children[0].Node), space, p.delimited(kids, listSpaced, opts))
}

func lastNode(kids []cst.Child) *cst.Node {
	for i := len(kids) - 1; i >= 0; i-- {
		if kids[i].Node != nil {
			return kids[i].Node
		}
	}
	return nil
}

// labeled prints "name: value" shapes: struct literal and pattern fields.
func (p *printer) labeled(n *cst.Node) *doc.Doc {
	var parts []*doc.Doc
	for _, c := range n.Children {
		switch {
		case isNode(c, cst.Attr):
			parts = append(parts, p.attr(c.Node), space)
		case isTok(c, token.Colon):
			parts = append(parts, p.tok(c.Tok), space)
		default:
			parts = append(parts, p.child(c))
		}
	}
	return doc.Concat(parts...)
}

// orPat prints alternatives; each one after the first starts with "| " on
// a new line when they do not fit. A leading '|' is dropped.
func (p *printer) orPat(n *cst.Node) *doc.Doc {
	kids := n.Children
	var parts []*doc.Doc
	if isTok(kids[0], token.Pipe) {
		parts = append(parts, p.optTok(kids[0].Tok, nil))
		kids = kids[1:]
	}
	for _, c := range kids {
		if isTok(c, token.Pipe) {
			parts = append(parts, doc.Line(), p.tok(c.Tok), space)
			continue
		}
		parts = append(parts, p.node(c.Node))
	}
	return doc.Group(doc.Concat(parts...))
}
