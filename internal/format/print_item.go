package format

import (
	"strings"

	"vfmt/internal/cst"
	"vfmt/internal/doc"
	"vfmt/internal/token"
	"vfmt/internal/trivia"
)

// file prints the root: inner attributes and items, then the comments
// that end the file.
func (p *printer) file(n *cst.Node) *doc.Doc {
	var elems []*cst.Node
	var eof *token.Token
	for _, c := range n.Children {
		if c.Node != nil {
			elems = append(elems, c.Node)
		} else if c.Tok.Kind == token.EOF {
			eof = c.Tok
		}
	}
	body := p.lines(elems, true)
	p.blankOK = len(elems) > 0
	var end *doc.Doc
	if eof != nil {
		end = p.lead(eof)
	}
	return doc.Concat(body, end, doc.HardLine())
}

// head prints the outer attributes, one per line, the visibility and the
// modifier words in front of an item keyword. It returns the index of the
// first child it did not consume.
func (p *printer) head(kids []cst.Child, stop func(*token.Token) bool) (*doc.Doc, int) {
	var parts []*doc.Doc
	var words []*token.Token
	i := 0
	for ; i < len(kids); i++ {
		c := kids[i]
		if isNode(c, cst.Attr) {
			parts = append(parts, p.attr(c.Node), doc.HardLine())
			continue
		}
		if isNode(c, cst.Visibility) {
			parts = append(parts, p.visibility(c.Node), space)
			continue
		}
		if c.Tok != nil && !stop(c.Tok) {
			words = append(words, c.Tok)
			continue
		}
		break
	}
	if len(words) > 0 {
		parts = append(parts, p.words(words), space)
	}
	return doc.Concat(parts...), i
}

func isKind(kinds ...token.Kind) func(*token.Token) bool {
	return func(t *token.Token) bool {
		for _, k := range kinds {
			if t.Kind == k {
				return true
			}
		}
		return false
	}
}

func isWord(ws ...string) func(*token.Token) bool {
	return func(t *token.Token) bool {
		for _, w := range ws {
			if t.IsWord(w) {
				return true
			}
		}
		return false
	}
}

// attr prints "#[content]" with the content trimmed, or verbatim when it
// holds comments.
func (p *printer) attr(n *cst.Node) *doc.Doc {
	var parts []*doc.Doc
	for _, c := range n.Children {
		if c.Tok != nil {
			parts = append(parts, p.tok(c.Tok))
			continue
		}
		parts = append(parts, p.tokenTree(c.Node, true))
	}
	return doc.Concat(parts...)
}

// tokenTree reproduces an opaque delimited run. Only the outer delimiters
// carry comments of their own; everything between them is source text.
func (p *printer) tokenTree(n *cst.Node, trim bool) *doc.Doc {
	toks := cst.Tokens(n)
	open, close := toks[0], toks[len(toks)-1]
	inner := verbatim(toks)
	if trim && !hasComment(toks) {
		inner = strings.TrimSpace(inner)
	}
	return doc.Concat(p.lead(open), bare(open), doc.Text(inner), bare(close), p.trail(close))
}

func hasComment(toks []*token.Token) bool {
	last := len(toks) - 1
	if len(trivia.Trailing(toks[0])) > 0 {
		return true
	}
	for _, t := range toks[1:last] {
		if t.HasComments() {
			return true
		}
	}
	comments, _ := trivia.Leading(toks[last])
	return len(comments) > 0
}

func (p *printer) visibility(n *cst.Node) *doc.Doc {
	var parts []*doc.Doc
	for _, c := range n.Children {
		if isTok(c, token.KwIn) {
			parts = append(parts, p.tok(c.Tok), space)
			continue
		}
		parts = append(parts, p.child(c))
	}
	return doc.Concat(parts...)
}

// macroCall prints "path!(...)" or "macro_rules! name { ... }" with the
// argument text untouched.
func (p *printer) macroCall(n *cst.Node) *doc.Doc {
	head, i := p.head(n.Children, func(t *token.Token) bool { return true })
	parts := []*doc.Doc{head}
	for _, c := range n.Children[i:] {
		switch {
		case isNode(c, cst.Path):
			parts = append(parts, p.node(c.Node))
		case isTok(c, token.Bang):
			parts = append(parts, p.tok(c.Tok))
		case isTok(c, token.Ident):
			parts = append(parts, space, p.tok(c.Tok), space)
		case isNode(c, cst.TokenTree):
			parts = append(parts, p.tokenTree(c.Node, false))
		default:
			parts = append(parts, p.child(c))
		}
	}
	return doc.Concat(parts...)
}

// verusMacro prints the "verus! { ... }" wrapper. Its items stay at the
// wrapper's indentation; blank lines next to the braces are kept.
func (p *printer) verusMacro(n *cst.Node) *doc.Doc {
	head, i := p.head(n.Children, func(t *token.Token) bool { return true })
	parts := []*doc.Doc{head}
	kids := n.Children[i:]
	j := firstTok(kids, token.LBrace)
	for _, c := range kids[:j] {
		parts = append(parts, p.child(c))
	}
	parts = append(parts, space, p.tok(kids[j].Tok))

	var elems []*cst.Node
	k := j + 1
	for ; k < len(kids) && kids[k].Node != nil; k++ {
		elems = append(elems, kids[k].Node)
	}
	if len(elems) > 0 {
		parts = append(parts, doc.HardLine())
		p.blankOK = true
		parts = append(parts, p.lines(elems, true))
	}
	close := kids[k].Tok
	p.blankOK = len(elems) > 0
	parts = append(parts, p.lead(close), doc.HardLine(), bare(close), p.trail(close))
	for _, c := range kids[k+1:] {
		parts = append(parts, p.child(c))
	}
	return doc.Concat(parts...)
}

func (p *printer) fn(n *cst.Node) *doc.Doc {
	head, i := p.head(n.Children, isKind(token.KwFn))
	kids := n.Children[i:]
	parts := []*doc.Doc{head, p.tok(kids[0].Tok), space, p.tok(kids[1].Tok)}
	rest := kids[2:]
	for len(rest) > 0 {
		c := rest[0]
		if isNode(c, cst.GenericParams) || isNode(c, cst.ParamList) {
			parts = append(parts, p.node(c.Node))
		} else if isNode(c, cst.RetType) {
			parts = append(parts, space, p.node(c.Node))
		} else {
			break
		}
		rest = rest[1:]
	}
	parts = append(parts, p.headerTail(rest))
	return doc.Concat(parts...)
}

// headerTail prints the where clauses and verification clauses that follow
// a signature, then the body or ';'. After clauses the body opens on a
// line of its own.
func (p *printer) headerTail(kids []cst.Child) *doc.Doc {
	var parts []*doc.Doc
	tail := false
	for _, c := range kids {
		switch {
		case isNode(c, cst.WhereClause):
			parts = append(parts, p.where(c.Node, true))
			tail = true
		case isNode(c, cst.Clause):
			parts = append(parts, doc.Nest(doc.Concat(doc.HardLine(), p.clause(c.Node))))
			tail = true
		case c.Tok != nil && c.Tok.Kind == token.Semi:
			if tail {
				parts = append(parts, doc.HardLine())
			}
			parts = append(parts, p.tok(c.Tok))
		default:
			if tail {
				parts = append(parts, doc.HardLine())
			} else {
				parts = append(parts, space)
			}
			parts = append(parts, p.child(c))
		}
	}
	return doc.Concat(parts...)
}

// where prints a where clause below the signature, one predicate per line.
func (p *printer) where(n *cst.Node, trailing bool) *doc.Doc {
	kw := n.Children[0].Tok
	elems := splitElems(n.Children[1:])
	parts := []*doc.Doc{doc.HardLine(), p.tok(kw)}
	var preds []*doc.Doc
	for i, e := range elems {
		sep := comma
		if i == len(elems)-1 && !trailing {
			sep = nil
		}
		preds = append(preds, doc.HardLine(), p.elemDoc(e), p.optTok(e.comma, sep))
	}
	parts = append(parts, doc.Nest(doc.Concat(preds...)))
	return doc.Concat(parts...)
}

func (p *printer) whereTail(kids []cst.Child, trailing bool) (*doc.Doc, []cst.Child, bool) {
	var parts []*doc.Doc
	found := false
	for len(kids) > 0 && isNode(kids[0], cst.WhereClause) {
		parts = append(parts, p.where(kids[0].Node, trailing))
		kids = kids[1:]
		found = true
	}
	return doc.Concat(parts...), kids, found
}

// bodyAfter separates a body from its header: a space, or a line break
// when a where clause ended the header.
func bodyAfter(broken bool) *doc.Doc {
	if broken {
		return doc.HardLine()
	}
	return space
}

func (p *printer) structItem(n *cst.Node) *doc.Doc {
	head, i := p.head(n.Children, func(t *token.Token) bool {
		return t.Kind == token.KwStruct || t.IsWord("union")
	})
	kids := n.Children[i:]
	parts := []*doc.Doc{head, p.tok(kids[0].Tok), space, p.tok(kids[1].Tok)}
	rest := kids[2:]
	for len(rest) > 0 && (isNode(rest[0], cst.GenericParams) || isNode(rest[0], cst.TupleFieldList)) {
		parts = append(parts, p.node(rest[0].Node))
		rest = rest[1:]
	}
	semi := len(rest) > 0 && isTok(rest[len(rest)-1], token.Semi)
	where, rest, broken := p.whereTail(rest, !semi)
	parts = append(parts, where)
	for _, c := range rest {
		switch {
		case isNode(c, cst.FieldList):
			parts = append(parts, bodyAfter(broken), p.fieldList(c.Node, listBroken))
		default:
			parts = append(parts, p.child(c))
		}
	}
	return doc.Concat(parts...)
}

// fieldList prints "{ name: T, ... }"; struct bodies always break, struct
// variants may stay on one line.
func (p *printer) fieldList(n *cst.Node, style listStyle) *doc.Doc {
	return p.delimited(n.Children, style, listOpts{})
}

func (p *printer) field(n *cst.Node) *doc.Doc {
	head, i := p.head(n.Children, func(t *token.Token) bool { return !isModeWord(t) })
	kids := n.Children[i:]
	parts := []*doc.Doc{head}
	for _, c := range kids {
		if isTok(c, token.Colon) {
			parts = append(parts, p.tok(c.Tok), space)
			continue
		}
		parts = append(parts, p.child(c))
	}
	return doc.Concat(parts...)
}

func isModeWord(t *token.Token) bool {
	return t.IsWord("tracked") || t.IsWord("ghost")
}

func (p *printer) tupleField(n *cst.Node) *doc.Doc {
	var parts []*doc.Doc
	for _, c := range n.Children {
		if isNode(c, cst.Attr) || isNode(c, cst.Visibility) || c.Tok != nil {
			parts = append(parts, p.child(c), space)
			continue
		}
		parts = append(parts, p.node(c.Node))
	}
	return doc.Concat(parts...)
}

func (p *printer) enumItem(n *cst.Node) *doc.Doc {
	head, i := p.head(n.Children, isKind(token.KwEnum))
	kids := n.Children[i:]
	parts := []*doc.Doc{head, p.tok(kids[0].Tok), space, p.tok(kids[1].Tok)}
	rest := kids[2:]
	if len(rest) > 0 && isNode(rest[0], cst.GenericParams) {
		parts = append(parts, p.node(rest[0].Node))
		rest = rest[1:]
	}
	where, rest, broken := p.whereTail(rest, true)
	parts = append(parts, where)
	for _, c := range rest {
		if isNode(c, cst.VariantList) {
			parts = append(parts, bodyAfter(broken), p.delimited(c.Node.Children, listBroken, listOpts{}))
			continue
		}
		parts = append(parts, p.child(c))
	}
	return doc.Concat(parts...)
}

func (p *printer) variant(n *cst.Node) *doc.Doc {
	head, i := p.head(n.Children, func(*token.Token) bool { return true })
	parts := []*doc.Doc{head}
	for _, c := range n.Children[i:] {
		switch {
		case isNode(c, cst.FieldList):
			parts = append(parts, space, p.fieldList(c.Node, listSpaced))
		case isTok(c, token.Eq):
			parts = append(parts, space, p.tok(c.Tok), space)
		default:
			parts = append(parts, p.child(c))
		}
	}
	return doc.Concat(parts...)
}

func (p *printer) implItem(n *cst.Node) *doc.Doc {
	head, i := p.head(n.Children, isKind(token.KwImpl))
	kids := n.Children[i:]
	parts := []*doc.Doc{head, p.tok(kids[0].Tok)}
	rest := kids[1:]
	if len(rest) > 0 && isNode(rest[0], cst.GenericParams) {
		parts = append(parts, p.node(rest[0].Node))
		rest = rest[1:]
	}
	parts = append(parts, space)
signature:
	for len(rest) > 0 {
		c := rest[0]
		switch {
		case isTok(c, token.KwConst):
			parts = append(parts, p.tok(c.Tok), space)
		case isTok(c, token.Bang):
			parts = append(parts, p.tok(c.Tok))
		case isTok(c, token.KwFor):
			parts = append(parts, space, p.tok(c.Tok), space)
		case c.Node != nil && c.Node.Kind != cst.WhereClause && c.Node.Kind != cst.AssocItems:
			parts = append(parts, p.node(c.Node))
		default:
			break signature
		}
		rest = rest[1:]
	}
	where, rest, broken := p.whereTail(rest, true)
	parts = append(parts, where)
	for _, c := range rest {
		parts = append(parts, bodyAfter(broken), p.child(c))
	}
	return doc.Concat(parts...)
}

func (p *printer) traitItem(n *cst.Node) *doc.Doc {
	head, i := p.head(n.Children, func(t *token.Token) bool {
		return t.Kind == token.KwTrait || t.IsWord("auto")
	})
	kids := n.Children[i:]
	var parts []*doc.Doc
	parts = append(parts, head)
	j := 0
	if kids[0].Tok.IsWord("auto") {
		parts = append(parts, p.tok(kids[0].Tok), space)
		j++
	}
	parts = append(parts, p.tok(kids[j].Tok), space, p.tok(kids[j+1].Tok))
	rest := kids[j+2:]
	if len(rest) > 0 && isNode(rest[0], cst.GenericParams) {
		parts = append(parts, p.node(rest[0].Node))
		rest = rest[1:]
	}
	if len(rest) > 0 && isTok(rest[0], token.Colon) {
		parts = append(parts, p.tok(rest[0].Tok), space, p.node(rest[1].Node))
		rest = rest[2:]
	}
	where, rest, broken := p.whereTail(rest, true)
	parts = append(parts, where)
	for _, c := range rest {
		parts = append(parts, bodyAfter(broken), p.child(c))
	}
	return doc.Concat(parts...)
}

// itemList prints the braces of impl, trait, mod and extern bodies.
func (p *printer) itemList(n *cst.Node) *doc.Doc {
	_, open, body, close := bracedKids(n.Children)
	return p.braced(open, body, close, true)
}

func (p *printer) typeAlias(n *cst.Node) *doc.Doc {
	head, i := p.head(n.Children, isKind(token.KwType))
	kids := n.Children[i:]
	parts := []*doc.Doc{head, p.tok(kids[0].Tok), space, p.tok(kids[1].Tok)}
	for _, c := range kids[2:] {
		switch {
		case isNode(c, cst.GenericParams):
			parts = append(parts, p.node(c.Node))
		case isTok(c, token.Colon):
			parts = append(parts, p.tok(c.Tok), space)
		case isTok(c, token.Eq):
			parts = append(parts, space, p.tok(c.Tok), space)
		case isNode(c, cst.WhereClause):
			parts = append(parts, p.where(c.Node, false))
		default:
			parts = append(parts, p.child(c))
		}
	}
	return doc.Concat(parts...)
}

// constItem prints const and static items, including the form with
// clauses and a block body.
func (p *printer) constItem(n *cst.Node) *doc.Doc {
	head, i := p.head(n.Children, isKind(token.KwConst, token.KwStatic))
	kids := n.Children[i:]
	parts := []*doc.Doc{head, p.tok(kids[0].Tok)}
	rest := kids[1:]
	if isTok(rest[0], token.KwMut) {
		parts = append(parts, space, p.tok(rest[0].Tok))
		rest = rest[1:]
	}
	parts = append(parts, space, p.tok(rest[0].Tok))
	rest = rest[1:]
	if len(rest) > 1 && isTok(rest[0], token.Colon) {
		parts = append(parts, p.tok(rest[0].Tok), space, p.node(rest[1].Node))
		rest = rest[2:]
	}
	if len(rest) > 0 && (isNode(rest[0], cst.Clause) || isNode(rest[0], cst.WhereClause)) {
		parts = append(parts, p.headerTail(rest))
		return doc.Concat(parts...)
	}
	for _, c := range rest {
		if isTok(c, token.Eq) {
			parts = append(parts, space, p.tok(c.Tok), space)
			continue
		}
		parts = append(parts, p.child(c))
	}
	return doc.Concat(parts...)
}

func (p *printer) modItem(n *cst.Node) *doc.Doc {
	head, i := p.head(n.Children, isKind(token.KwMod))
	kids := n.Children[i:]
	parts := []*doc.Doc{head, p.tok(kids[0].Tok), space, p.tok(kids[1].Tok)}
	for _, c := range kids[2:] {
		if c.Node != nil {
			parts = append(parts, space)
		}
		parts = append(parts, p.child(c))
	}
	return doc.Concat(parts...)
}

func (p *printer) useItem(n *cst.Node) *doc.Doc {
	head, i := p.head(n.Children, isKind(token.KwUse))
	kids := n.Children[i:]
	return doc.Concat(head, p.tok(kids[0].Tok), space, p.node(kids[1].Node), p.tok(kids[2].Tok))
}

func (p *printer) useTree(n *cst.Node) *doc.Doc {
	var parts []*doc.Doc
	for _, c := range n.Children {
		switch {
		case isTok(c, token.KwAs):
			parts = append(parts, space, p.tok(c.Tok), space)
		case isNode(c, cst.UseTreeList):
			parts = append(parts, p.delimited(c.Node.Children, listSoft, listOpts{}))
		default:
			parts = append(parts, p.child(c))
		}
	}
	return doc.Concat(parts...)
}

// broadcastUse prints "broadcast use a, b;", one path per line when the
// list does not fit.
func (p *printer) broadcastUse(n *cst.Node) *doc.Doc {
	head, i := p.head(n.Children, isKind(token.KwUse))
	kids := n.Children[i:]
	use, semi := kids[0].Tok, kids[len(kids)-1].Tok
	elems := splitElems(kids[1 : len(kids)-1])
	var inner []*doc.Doc
	for j, e := range elems {
		inner = append(inner, doc.Line(), p.elemDoc(e))
		sep := comma
		if j == len(elems)-1 {
			sep = doc.IfBreak(comma, nil)
		}
		inner = append(inner, p.optTok(e.comma, sep))
	}
	return doc.Concat(head, doc.Group(doc.Concat(
		p.tok(use),
		doc.Nest(doc.Concat(inner...)),
		doc.SoftLine(),
		p.tok(semi),
	)))
}

// broadcastGroup prints "broadcast group name { a, b, }" one member per line.
func (p *printer) broadcastGroup(n *cst.Node) *doc.Doc {
	head, i := p.head(n.Children, isWord("group"))
	kids := n.Children[i:]
	return doc.Concat(head, p.tok(kids[0].Tok), space, p.tok(kids[1].Tok), space,
		p.delimited(kids[2:], listBroken, listOpts{}))
}

func (p *printer) externCrate(n *cst.Node) *doc.Doc {
	head, i := p.head(n.Children, isKind(token.KwExtern))
	kids := n.Children[i:]
	parts := []*doc.Doc{head}
	for j, c := range kids {
		if j > 0 && !isTok(c, token.Semi) {
			parts = append(parts, space)
		}
		parts = append(parts, p.child(c))
	}
	return doc.Concat(parts...)
}

func (p *printer) externBlock(n *cst.Node) *doc.Doc {
	head, i := p.head(n.Children, isKind(token.KwExtern))
	kids := n.Children[i:]
	parts := []*doc.Doc{head}
	for j, c := range kids {
		if j > 0 {
			parts = append(parts, space)
		}
		parts = append(parts, p.child(c))
	}
	return doc.Concat(parts...)
}
