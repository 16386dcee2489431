package format

import (
	"vfmt/internal/cst"
	"vfmt/internal/doc"
	"vfmt/internal/token"
)

// block prints "{ stmts }" with one statement per line.
func (p *printer) block(n *cst.Node) *doc.Doc {
	_, open, body, close := bracedKids(n.Children)
	return p.braced(open, body, close, false)
}

// letStmt prints "let mode pat: T = init else { ... };".
func (p *printer) letStmt(n *cst.Node) *doc.Doc {
	head, i := p.head(n.Children, isKind(token.KwLet))
	parts := []*doc.Doc{head}
	for j, c := range n.Children[i:] {
		switch {
		case j == 0, c.Tok != nil && isModeWord(c.Tok):
			parts = append(parts, p.tok(c.Tok), space)
		case isTok(c, token.Colon):
			parts = append(parts, p.tok(c.Tok), space)
		case isTok(c, token.Eq), isTok(c, token.KwElse):
			parts = append(parts, space, p.tok(c.Tok), space)
		default:
			parts = append(parts, p.child(c))
		}
	}
	return doc.Concat(parts...)
}

func (p *printer) exprStmt(n *cst.Node) *doc.Doc {
	var parts []*doc.Doc
	for _, c := range n.Children {
		if isNode(c, cst.Attr) {
			parts = append(parts, p.attr(c.Node), doc.HardLine())
			continue
		}
		parts = append(parts, p.child(c))
	}
	return doc.Concat(parts...)
}
