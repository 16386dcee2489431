package parser

import (
	"vfmt/internal/cst"
	"vfmt/internal/diag"
	"vfmt/internal/token"
)

// verusAttrWords start attribute contents owned by the verification dialect.
var verusAttrWords = map[string]bool{
	"verifier":   true,
	"verus":      true,
	"trigger":    true,
	"auto":       true,
	"via_fn":     true,
	"is_variant": true,
}

func (p *Parser) atOuterAttr() bool {
	return p.at(token.Pound) && p.nthIs(1, token.LBracket)
}

func (p *Parser) atInnerAttr() bool {
	return p.at(token.Pound) && p.nthIs(1, token.Bang) && p.nthIs(2, token.LBracket)
}

func (p *Parser) parseOuterAttrs() []*cst.Node {
	var out []*cst.Node
	for p.ok() && p.atOuterAttr() {
		a, ok := p.parseAttr()
		if !ok {
			return nil
		}
		out = append(out, a)
	}
	return out
}

func (p *Parser) parseInnerAttrs(n *cst.Node) {
	for p.ok() && p.atInnerAttr() {
		a, ok := p.parseAttr()
		if !ok {
			return
		}
		n.AddNode(a)
	}
}

// parseAttr parses "#[...]" or "#![...]"; the content stays an opaque tree.
func (p *Parser) parseAttr() (*cst.Node, bool) {
	n := cst.New(cst.Attr)
	n.AddTok(p.bump()) // #
	p.eat(n, token.Bang)
	if first := p.peekN(1); first.Kind == token.Ident && verusAttrWords[first.Text] {
		n.Verus = true
	}
	tt, ok := p.parseTokenTree()
	if !ok {
		return nil, false
	}
	n.AddNode(tt)
	return n.Finish(), true
}

// parseTokenTree consumes a balanced delimited run of tokens.
func (p *Parser) parseTokenTree() (*cst.Node, bool) {
	n := cst.New(cst.TokenTree)
	open := p.peek()
	if !open.Kind.IsOpenDelim() {
		p.errExpected(diag.SynUnexpectedToken, "'(', '[' or '{'")
		return nil, false
	}
	stack := []*token.Token{open}
	n.AddTok(p.bump())
	for len(stack) > 0 {
		t := p.peek()
		switch {
		case t.Kind == token.EOF:
			top := stack[len(stack)-1]
			p.errAt(top.Span, diag.SynUnclosedDelimiter, "unclosed delimiter "+top.Text)
			return nil, false
		case t.Kind.IsOpenDelim():
			stack = append(stack, t)
		case t.Kind.IsCloseDelim():
			top := stack[len(stack)-1]
			if top.Kind.Closing() != t.Kind {
				p.errAt(t.Span, diag.SynUnclosedDelimiter, "mismatched closing delimiter "+t.Text)
				return nil, false
			}
			stack = stack[:len(stack)-1]
		}
		n.AddTok(p.bump())
	}
	return n.Finish(), true
}

// atMacroCall reports "path ! (" / "path ! [" / "path ! {" / "name ! ident".
func (p *Parser) atMacroCall() bool {
	n := 0
	if p.nthIs(0, token.PathSep) {
		n++
	}
	for {
		if !p.peekN(n).IsIdentLike() {
			return false
		}
		n++
		if !p.nthIs(n, token.PathSep) {
			break
		}
		n++
	}
	if !p.nthIs(n, token.Bang) {
		return false
	}
	next := p.peekN(n + 1)
	return next.Kind.IsOpenDelim() || next.Kind == token.Ident
}

// atVerusMacro reports the "verus! {" wrapper.
func (p *Parser) atVerusMacro() bool {
	return p.atWord("verus") && p.nthIs(1, token.Bang) && p.nthIs(2, token.LBrace)
}

// parseMacroItem parses a macro invocation in item position.
// verus! { ... } is parsed as a list of items.
func (p *Parser) parseMacroItem(pre *itemPrefix) (*cst.Node, bool) {
	if p.atVerusMacro() {
		n := cst.New(cst.VerusMacro)
		pre.attach(n)
		n.Verus = true
		path := cst.New(cst.Path)
		path.AddTok(p.bump()) // verus
		n.AddNode(path.Finish())
		n.AddTok(p.bump()) // !
		n.AddTok(p.bump()) // {
		p.parseInnerAttrs(n)
		for !p.at(token.RBrace) && !p.at(token.EOF) && p.ok() {
			item, ok := p.parseItem()
			if !ok {
				return nil, false
			}
			n.AddNode(item)
		}
		if !p.expect(n, token.RBrace, diag.SynUnclosedDelimiter, "'}' closing verus!") {
			return nil, false
		}
		p.eat(n, token.Semi)
		return n.Finish(), true
	}

	n, ok := p.parseMacroCall(pre)
	if !ok {
		return nil, false
	}
	if open := n.Child(cst.TokenTree).FirstToken(); open.Kind != token.LBrace {
		if !p.expect(n, token.Semi, diag.SynExpectSemicolon, "';' after macro invocation") {
			return nil, false
		}
	} else {
		p.eat(n, token.Semi)
	}
	return n.Finish(), true
}

// parseMacroCall parses "path ! [name] tree" without a trailing ';'.
func (p *Parser) parseMacroCall(pre *itemPrefix) (*cst.Node, bool) {
	n := cst.New(cst.MacroCall)
	if pre != nil {
		pre.attach(n)
	}
	path, ok := p.parsePath(pathMod)
	if !ok {
		return nil, false
	}
	n.AddNode(path)
	if !p.expect(n, token.Bang, diag.SynUnexpectedToken, "'!'") {
		return nil, false
	}
	p.eat(n, token.Ident) // macro_rules! name
	tt, ok := p.parseTokenTree()
	if !ok {
		return nil, false
	}
	n.AddNode(tt)
	return n.Finish(), true
}
