package parser

import (
	"vfmt/internal/cst"
	"vfmt/internal/diag"
	"vfmt/internal/token"
)

// modifierWords may precede fn, const, use and group items.
// All but "default" belong to the verification dialect.
var modifierWords = map[string]bool{
	"spec":      true,
	"proof":     true,
	"exec":      true,
	"open":      true,
	"closed":    true,
	"uninterp":  true,
	"broadcast": true,
	"axiom":     true,
	"tracked":   true,
	"default":   true,
}

// itemPrefix collects the material in front of an item keyword.
type itemPrefix struct {
	attrs []*cst.Node
	vis   *cst.Node
	words []*token.Token
	verus bool
}

func (pre *itemPrefix) attach(n *cst.Node) {
	for _, a := range pre.attrs {
		n.AddNode(a)
		n.Verus = n.Verus || a.Verus
	}
	n.AddNode(pre.vis)
	for _, w := range pre.words {
		n.AddTok(w)
	}
	n.Verus = n.Verus || pre.verus
}

func (pre *itemPrefix) hasWord(w string) bool {
	for _, t := range pre.words {
		if t.Text == w {
			return true
		}
	}
	return false
}

// parseItem parses one item with its outer attributes.
func (p *Parser) parseItem() (*cst.Node, bool) {
	pre := itemPrefix{attrs: p.parseOuterAttrs()}
	if !p.ok() {
		return nil, false
	}

	if p.atMacroCall() {
		return p.parseMacroItem(&pre)
	}

	pre.vis = p.parseVisibility()
	p.parseItemWords(&pre)
	if !p.ok() {
		return nil, false
	}

	t := p.peek()
	switch {
	case t.Kind == token.KwFn:
		return p.parseFn(&pre)
	case t.Kind == token.KwStruct, t.IsWord("union") && p.nthIs(1, token.Ident):
		return p.parseStruct(&pre)
	case t.Kind == token.KwEnum:
		return p.parseEnum(&pre)
	case t.Kind == token.KwImpl:
		return p.parseImpl(&pre)
	case t.Kind == token.KwTrait, t.IsWord("auto") && p.nthIs(1, token.KwTrait):
		return p.parseTrait(&pre)
	case t.Kind == token.KwType:
		return p.parseTypeAlias(&pre)
	case t.Kind == token.KwConst, t.Kind == token.KwStatic:
		return p.parseConst(&pre)
	case t.Kind == token.KwMod:
		return p.parseMod(&pre)
	case t.Kind == token.KwUse && pre.hasWord("broadcast"):
		return p.parseBroadcastUse(&pre)
	case t.Kind == token.KwUse:
		return p.parseUse(&pre)
	case t.IsWord("group") && pre.hasWord("broadcast"):
		return p.parseBroadcastGroup(&pre)
	case t.Kind == token.KwExtern:
		return p.parseExtern(&pre)
	}
	p.errExpected(diag.SynExpectItem, "item")
	return nil, false
}

// parseItemWords consumes modifiers: verification modes, default, const,
// async, unsafe and extern "abi" when they qualify a following item keyword.
func (p *Parser) parseItemWords(pre *itemPrefix) {
	for p.ok() {
		t := p.peek()
		switch {
		case t.Kind == token.Ident && modifierWords[t.Text] && p.isModifierAt(1):
			pre.words = append(pre.words, p.bump())
			if t.Text != "default" {
				pre.verus = true
			}
			// spec(checked)
			if t.Text == "spec" && p.at(token.LParen) && p.nthIs(1, token.Ident) && p.nthIs(2, token.RParen) {
				pre.words = append(pre.words, p.bump(), p.bump(), p.bump())
			}
		case t.Kind == token.KwConst && p.isQualifiedFnAt(1),
			t.Kind == token.KwAsync && p.isQualifiedFnAt(1),
			t.Kind == token.KwUnsafe && !p.nthIs(1, token.LBrace):
			pre.words = append(pre.words, p.bump())
		case t.Kind == token.KwExtern && p.nthIs(1, token.StringLit) && p.isQualifiedFnAt(2):
			pre.words = append(pre.words, p.bump(), p.bump())
		case t.Kind == token.KwExtern && p.nthIs(1, token.KwFn):
			pre.words = append(pre.words, p.bump())
		default:
			return
		}
	}
}

// isModifierAt reports whether the token n ahead continues an item header,
// so that a modifier word is not mistaken for an identifier.
func (p *Parser) isModifierAt(n int) bool {
	t := p.peekN(n)
	switch t.Kind {
	case token.KwFn, token.KwConst, token.KwStatic, token.KwUse, token.KwUnsafe, token.KwAsync,
		token.KwExtern, token.KwImpl, token.KwType, token.KwTrait:
		return true
	case token.Ident:
		return modifierWords[t.Text] || t.Text == "group"
	case token.LParen:
		// spec(checked)
		return p.peekN(n-1).Text == "spec" && p.peekN(n+1).Kind == token.Ident && p.peekN(n+2).Kind == token.RParen
	}
	return false
}

func (p *Parser) isQualifiedFnAt(n int) bool {
	for {
		switch p.peekN(n).Kind {
		case token.KwFn:
			return true
		case token.KwConst, token.KwAsync, token.KwUnsafe:
			n++
		case token.KwExtern:
			n++
			if p.peekN(n).Kind == token.StringLit {
				n++
			}
		default:
			return false
		}
	}
}

// atItemStart decides at statement level whether an item follows.
func (p *Parser) atItemStart() bool {
	n := 0
	for p.peekN(n).Kind == token.Pound {
		end, ok := p.skipDelimitedAt(n + 1 + boolInt(p.peekN(n+1).Kind == token.Bang))
		if !ok {
			return false
		}
		n = end
	}
	if p.peekN(n).Kind == token.KwPub {
		return true
	}
	for {
		t := p.peekN(n)
		switch t.Kind {
		case token.KwFn, token.KwStruct, token.KwEnum, token.KwImpl, token.KwTrait, token.KwType,
			token.KwStatic, token.KwMod, token.KwUse, token.KwExtern:
			return true
		case token.KwConst:
			// const blocks are expressions
			return !p.nthIs(n+1, token.LBrace)
		case token.KwUnsafe, token.KwAsync:
			if p.peekN(n+1).Kind == token.LBrace || p.peekN(n+1).Kind == token.KwMove {
				return false
			}
			n++
		case token.Ident:
			if t.Text == "union" && p.peekN(n+1).Kind == token.Ident {
				return true
			}
			if !modifierWords[t.Text] || !p.isModifierAt(n+1) {
				return false
			}
			n++
		default:
			return false
		}
	}
}

// skipDelimitedAt returns the index just past the balanced group opening at n.
func (p *Parser) skipDelimitedAt(n int) (int, bool) {
	if !p.peekN(n).Kind.IsOpenDelim() {
		return n, false
	}
	depth := 0
	for {
		t := p.peekN(n)
		switch {
		case t.Kind == token.EOF:
			return n, false
		case t.Kind.IsOpenDelim():
			depth++
		case t.Kind.IsCloseDelim():
			depth--
			if depth == 0 {
				return n + 1, true
			}
		}
		n++
	}
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func (p *Parser) parseVisibility() *cst.Node {
	if !p.at(token.KwPub) {
		return nil
	}
	n := cst.New(cst.Visibility)
	n.AddTok(p.bump())
	if p.at(token.LParen) {
		switch next := p.peekN(1); {
		case next.Kind == token.KwCrate, next.Kind == token.KwSelfValue, next.Kind == token.KwSuper:
			if p.nthIs(2, token.RParen) {
				n.AddTok(p.bump())
				n.AddTok(p.bump())
				n.AddTok(p.bump())
			}
		case next.Kind == token.KwIn:
			n.AddTok(p.bump())
			n.AddTok(p.bump())
			if path, ok := p.parsePath(pathMod); ok {
				n.AddNode(path)
			}
			p.expect(n, token.RParen, diag.SynUnclosedDelimiter, "')'")
		}
	}
	return n.Finish()
}

func (p *Parser) parseFn(pre *itemPrefix) (*cst.Node, bool) {
	n := cst.New(cst.Fn)
	pre.attach(n)
	n.AddTok(p.bump()) // fn
	if !p.expect(n, token.Ident, diag.SynExpectIdentifier, "function name") {
		return nil, false
	}
	if p.atLt() {
		g, ok := p.parseGenericParams()
		if !ok {
			return nil, false
		}
		n.AddNode(g)
	}
	params, ok := p.parseParamList()
	if !ok {
		return nil, false
	}
	n.AddNode(params)
	if p.at(token.RArrow) {
		ret, ok := p.parseRetType()
		if !ok {
			return nil, false
		}
		n.AddNode(ret)
	}
	if !p.parseHeaderTail(n, fnClauseWords) {
		return nil, false
	}
	if p.at(token.LBrace) {
		body, ok := p.parseBlock()
		if !ok {
			return nil, false
		}
		n.AddNode(body)
	} else if !p.expect(n, token.Semi, diag.SynExpectBlock, "function body or ';'") {
		return nil, false
	}
	return n.Finish(), true
}

// parseHeaderTail parses where clauses and verification clauses in any order.
func (p *Parser) parseHeaderTail(n *cst.Node, words map[string]bool) bool {
	for p.ok() {
		switch {
		case p.at(token.KwWhere):
			w, ok := p.parseWhereClause(words)
			if !ok {
				return false
			}
			n.AddNode(w)
		case p.atClauseStart(words):
			c, ok := p.parseClause(words)
			if !ok {
				return false
			}
			n.AddNode(c)
		default:
			return true
		}
	}
	return false
}

func (p *Parser) parseParamList() (*cst.Node, bool) {
	n := cst.New(cst.ParamList)
	if !p.expect(n, token.LParen, diag.SynUnexpectedToken, "'('") {
		return nil, false
	}
	for !p.at(token.RParen) && p.ok() {
		param, ok := p.parseParam()
		if !ok {
			return nil, false
		}
		n.AddNode(param)
		if !p.eat(n, token.Comma) {
			break
		}
	}
	if !p.expect(n, token.RParen, diag.SynUnclosedDelimiter, "',' or ')'") {
		return nil, false
	}
	return n.Finish(), true
}

func (p *Parser) parseParam() (*cst.Node, bool) {
	attrs := p.parseOuterAttrs()
	if p.atSelfParam() {
		n := cst.New(cst.SelfParam)
		for _, a := range attrs {
			n.AddNode(a)
		}
		if p.at(token.AndAnd) {
			p.splitAnd()
		}
		p.eat(n, token.Amp)
		p.eat(n, token.Lifetime)
		p.eat(n, token.KwMut)
		n.AddTok(p.bump()) // self
		if p.eat(n, token.Colon) {
			ty, ok := p.parseType()
			if !ok {
				return nil, false
			}
			n.AddNode(ty)
		}
		return n.Finish(), true
	}

	n := cst.New(cst.Param)
	for _, a := range attrs {
		n.AddNode(a)
	}
	if p.at(token.DotDotDot) {
		n.AddTok(p.bump())
		return n.Finish(), true
	}
	p.parseModeWord(n)
	pat, ok := p.parsePatternNoAlt()
	if !ok {
		return nil, false
	}
	n.AddNode(pat)
	if !p.expect(n, token.Colon, diag.SynExpectType, "':' and parameter type") {
		return nil, false
	}
	ty, ok := p.parseType()
	if !ok {
		return nil, false
	}
	n.AddNode(ty)
	return n.Finish(), true
}

// parseModeWord consumes "tracked" or "ghost" when it qualifies a binding.
func (p *Parser) parseModeWord(n *cst.Node) {
	t := p.peek()
	if !(t.IsWord("tracked") || t.IsWord("ghost")) {
		return
	}
	switch p.peekN(1).Kind {
	case token.Ident, token.KwMut, token.LParen, token.Underscore, token.KwRef, token.KwSelfValue, token.Amp:
		n.AddTok(p.bump())
		n.Verus = true
	}
}

func (p *Parser) atSelfParam() bool {
	n := 0
	if p.nthIs(0, token.Amp) || p.nthIs(0, token.AndAnd) {
		n++
		if p.nthIs(n, token.Lifetime) {
			n++
		}
	}
	if p.nthIs(n, token.KwMut) {
		n++
	}
	return p.nthIs(n, token.KwSelfValue) && !p.nthIs(n+1, token.PathSep)
}

// parseRetType parses "-> T" and the named form "-> (r: T)".
func (p *Parser) parseRetType() (*cst.Node, bool) {
	n := cst.New(cst.RetType)
	n.AddTok(p.bump()) // ->
	if p.atNamedReturn() {
		n.Verus = true
		n.AddTok(p.bump()) // (
		p.parseModeWord(n)
		pat, ok := p.parsePatternNoAlt()
		if !ok {
			return nil, false
		}
		n.AddNode(pat)
		if !p.expect(n, token.Colon, diag.SynExpectType, "':'") {
			return nil, false
		}
		ty, ok := p.parseType()
		if !ok {
			return nil, false
		}
		n.AddNode(ty)
		if !p.expect(n, token.RParen, diag.SynUnclosedDelimiter, "')'") {
			return nil, false
		}
		return n.Finish(), true
	}
	ty, ok := p.parseType()
	if !ok {
		return nil, false
	}
	n.AddNode(ty)
	return n.Finish(), true
}

func (p *Parser) atNamedReturn() bool {
	if !p.nthIs(0, token.LParen) {
		return false
	}
	n := 1
	if t := p.peekN(n); t.IsWord("tracked") || t.IsWord("ghost") {
		n++
	}
	if p.nthIs(n, token.KwMut) {
		n++
	}
	return p.nthIs(n, token.Ident) && p.nthIs(n+1, token.Colon)
}

func (p *Parser) parseStruct(pre *itemPrefix) (*cst.Node, bool) {
	n := cst.New(cst.Struct)
	pre.attach(n)
	n.AddTok(p.bump()) // struct / union
	if !p.expect(n, token.Ident, diag.SynExpectIdentifier, "struct name") {
		return nil, false
	}
	if p.atLt() {
		g, ok := p.parseGenericParams()
		if !ok {
			return nil, false
		}
		n.AddNode(g)
	}
	if p.at(token.LParen) {
		fields, ok := p.parseTupleFieldList()
		if !ok {
			return nil, false
		}
		n.AddNode(fields)
	}
	if !p.parseHeaderTail(n, nil) {
		return nil, false
	}
	switch {
	case p.at(token.LBrace) && n.Child(cst.TupleFieldList) == nil:
		fields, ok := p.parseFieldList()
		if !ok {
			return nil, false
		}
		n.AddNode(fields)
	default:
		if !p.expect(n, token.Semi, diag.SynExpectSemicolon, "';' or '{'") {
			return nil, false
		}
	}
	return n.Finish(), true
}

func (p *Parser) parseFieldList() (*cst.Node, bool) {
	n := cst.New(cst.FieldList)
	n.AddTok(p.bump()) // {
	for !p.at(token.RBrace) && p.ok() {
		f := cst.New(cst.Field)
		for _, a := range p.parseOuterAttrs() {
			f.AddNode(a)
		}
		f.AddNode(p.parseVisibility())
		p.parseModeWord(f)
		if !p.expect(f, token.Ident, diag.SynExpectIdentifier, "field name") ||
			!p.expect(f, token.Colon, diag.SynExpectType, "':'") {
			return nil, false
		}
		ty, ok := p.parseType()
		if !ok {
			return nil, false
		}
		f.AddNode(ty)
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

func (p *Parser) parseTupleFieldList() (*cst.Node, bool) {
	n := cst.New(cst.TupleFieldList)
	n.AddTok(p.bump()) // (
	for !p.at(token.RParen) && p.ok() {
		f := cst.New(cst.TupleField)
		for _, a := range p.parseOuterAttrs() {
			f.AddNode(a)
		}
		f.AddNode(p.parseVisibility())
		p.parseModeWord(f)
		ty, ok := p.parseType()
		if !ok {
			return nil, false
		}
		f.AddNode(ty)
		n.AddNode(f.Finish())
		if !p.eat(n, token.Comma) {
			break
		}
	}
	if !p.expect(n, token.RParen, diag.SynUnclosedDelimiter, "',' or ')'") {
		return nil, false
	}
	return n.Finish(), true
}

func (p *Parser) parseEnum(pre *itemPrefix) (*cst.Node, bool) {
	n := cst.New(cst.Enum)
	pre.attach(n)
	n.AddTok(p.bump()) // enum
	if !p.expect(n, token.Ident, diag.SynExpectIdentifier, "enum name") {
		return nil, false
	}
	if p.atLt() {
		g, ok := p.parseGenericParams()
		if !ok {
			return nil, false
		}
		n.AddNode(g)
	}
	if !p.parseHeaderTail(n, nil) {
		return nil, false
	}

	list := cst.New(cst.VariantList)
	if !p.expect(list, token.LBrace, diag.SynExpectBlock, "'{'") {
		return nil, false
	}
	for !p.at(token.RBrace) && p.ok() {
		v := cst.New(cst.Variant)
		for _, a := range p.parseOuterAttrs() {
			v.AddNode(a)
		}
		v.AddNode(p.parseVisibility())
		if !p.expect(v, token.Ident, diag.SynExpectIdentifier, "variant name") {
			return nil, false
		}
		switch {
		case p.at(token.LBrace):
			fields, ok := p.parseFieldList()
			if !ok {
				return nil, false
			}
			v.AddNode(fields)
		case p.at(token.LParen):
			fields, ok := p.parseTupleFieldList()
			if !ok {
				return nil, false
			}
			v.AddNode(fields)
		}
		if p.eat(v, token.Eq) {
			e, ok := p.parseExpr()
			if !ok {
				return nil, false
			}
			v.AddNode(e)
		}
		list.AddNode(v.Finish())
		if !p.eat(list, token.Comma) {
			break
		}
	}
	if !p.expect(list, token.RBrace, diag.SynUnclosedDelimiter, "',' or '}'") {
		return nil, false
	}
	n.AddNode(list.Finish())
	return n.Finish(), true
}

func (p *Parser) parseImpl(pre *itemPrefix) (*cst.Node, bool) {
	n := cst.New(cst.Impl)
	pre.attach(n)
	n.AddTok(p.bump()) // impl
	if p.atLt() {
		g, ok := p.parseGenericParams()
		if !ok {
			return nil, false
		}
		n.AddNode(g)
	}
	p.eat(n, token.KwConst)
	p.eat(n, token.Bang)
	ty, ok := p.parseType()
	if !ok {
		return nil, false
	}
	n.AddNode(ty)
	if p.eat(n, token.KwFor) {
		self, ok := p.parseType()
		if !ok {
			return nil, false
		}
		n.AddNode(self)
	}
	if !p.parseHeaderTail(n, nil) {
		return nil, false
	}
	body, ok := p.parseAssocItems()
	if !ok {
		return nil, false
	}
	n.AddNode(body)
	return n.Finish(), true
}

func (p *Parser) parseTrait(pre *itemPrefix) (*cst.Node, bool) {
	n := cst.New(cst.Trait)
	pre.attach(n)
	if p.atWord("auto") {
		n.AddTok(p.bump())
	}
	n.AddTok(p.bump()) // trait
	if !p.expect(n, token.Ident, diag.SynExpectIdentifier, "trait name") {
		return nil, false
	}
	if p.atLt() {
		g, ok := p.parseGenericParams()
		if !ok {
			return nil, false
		}
		n.AddNode(g)
	}
	if p.eat(n, token.Colon) {
		b, ok := p.parseTypeBounds()
		if !ok {
			return nil, false
		}
		n.AddNode(b)
	}
	if !p.parseHeaderTail(n, nil) {
		return nil, false
	}
	body, ok := p.parseAssocItems()
	if !ok {
		return nil, false
	}
	n.AddNode(body)
	return n.Finish(), true
}

func (p *Parser) parseAssocItems() (*cst.Node, bool) {
	n := cst.New(cst.AssocItems)
	if !p.expect(n, token.LBrace, diag.SynExpectBlock, "'{'") {
		return nil, false
	}
	return p.parseItemsUntilBrace(n)
}

// parseItemsUntilBrace fills n with inner attributes and items up to '}'.
func (p *Parser) parseItemsUntilBrace(n *cst.Node) (*cst.Node, bool) {
	p.parseInnerAttrs(n)
	for !p.at(token.RBrace) && !p.at(token.EOF) && p.ok() {
		item, ok := p.parseItem()
		if !ok {
			return nil, false
		}
		n.AddNode(item)
	}
	if !p.expect(n, token.RBrace, diag.SynUnclosedDelimiter, "'}'") {
		return nil, false
	}
	return n.Finish(), true
}

func (p *Parser) parseTypeAlias(pre *itemPrefix) (*cst.Node, bool) {
	n := cst.New(cst.TypeAlias)
	pre.attach(n)
	n.AddTok(p.bump()) // type
	if !p.expect(n, token.Ident, diag.SynExpectIdentifier, "type name") {
		return nil, false
	}
	if p.atLt() {
		g, ok := p.parseGenericParams()
		if !ok {
			return nil, false
		}
		n.AddNode(g)
	}
	if p.eat(n, token.Colon) {
		b, ok := p.parseTypeBounds()
		if !ok {
			return nil, false
		}
		n.AddNode(b)
	}
	if !p.parseHeaderTail(n, nil) {
		return nil, false
	}
	if p.eat(n, token.Eq) {
		ty, ok := p.parseType()
		if !ok {
			return nil, false
		}
		n.AddNode(ty)
		if !p.parseHeaderTail(n, nil) {
			return nil, false
		}
	}
	if !p.expect(n, token.Semi, diag.SynExpectSemicolon, "';'") {
		return nil, false
	}
	return n.Finish(), true
}

// parseConst parses const and static items, including the
// "const X: T ensures ... { body }" form of the verification dialect.
func (p *Parser) parseConst(pre *itemPrefix) (*cst.Node, bool) {
	n := cst.New(cst.Const)
	pre.attach(n)
	n.AddTok(p.bump()) // const / static
	p.eat(n, token.KwMut)
	if !p.at(token.Underscore) && !p.at(token.Ident) {
		p.errExpected(diag.SynExpectIdentifier, "constant name")
		return nil, false
	}
	n.AddTok(p.bump())
	if p.eat(n, token.Colon) {
		ty, ok := p.parseType()
		if !ok {
			return nil, false
		}
		n.AddNode(ty)
	}
	if p.atClauseStart(fnClauseWords) {
		if !p.parseHeaderTail(n, fnClauseWords) {
			return nil, false
		}
		body, ok := p.parseBlock()
		if !ok {
			return nil, false
		}
		n.AddNode(body)
		return n.Finish(), true
	}
	if p.eat(n, token.Eq) {
		e, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		n.AddNode(e)
	}
	if !p.expect(n, token.Semi, diag.SynExpectSemicolon, "';'") {
		return nil, false
	}
	return n.Finish(), true
}

func (p *Parser) parseMod(pre *itemPrefix) (*cst.Node, bool) {
	n := cst.New(cst.Mod)
	pre.attach(n)
	n.AddTok(p.bump()) // mod
	if !p.expect(n, token.Ident, diag.SynExpectIdentifier, "module name") {
		return nil, false
	}
	if p.eat(n, token.Semi) {
		return n.Finish(), true
	}
	body := cst.New(cst.ItemList)
	if !p.expect(body, token.LBrace, diag.SynExpectBlock, "'{' or ';'") {
		return nil, false
	}
	list, ok := p.parseItemsUntilBrace(body)
	if !ok {
		return nil, false
	}
	n.AddNode(list)
	return n.Finish(), true
}

func (p *Parser) parseUse(pre *itemPrefix) (*cst.Node, bool) {
	n := cst.New(cst.Use)
	pre.attach(n)
	n.AddTok(p.bump()) // use
	tree, ok := p.parseUseTree()
	if !ok {
		return nil, false
	}
	n.AddNode(tree)
	if !p.expect(n, token.Semi, diag.SynExpectSemicolon, "';'") {
		return nil, false
	}
	return n.Finish(), true
}

func (p *Parser) parseUseTree() (*cst.Node, bool) {
	n := cst.New(cst.UseTree)
	p.eat(n, token.PathSep)
	for p.ok() {
		switch t := p.peek(); {
		case t.Kind == token.LBrace:
			list, ok := p.parseUseTreeList()
			if !ok {
				return nil, false
			}
			n.AddNode(list)
			return n.Finish(), true
		case t.Kind == token.Star:
			n.AddTok(p.bump())
			return n.Finish(), true
		case t.IsIdentLike():
			n.AddTok(p.bump())
		default:
			p.errExpected(diag.SynExpectIdentifier, "path segment")
			return nil, false
		}
		if !p.eat(n, token.PathSep) {
			break
		}
	}
	if p.eat(n, token.KwAs) {
		if !p.at(token.Ident) && !p.at(token.Underscore) {
			p.errExpected(diag.SynExpectIdentifier, "name after 'as'")
			return nil, false
		}
		n.AddTok(p.bump())
	}
	return n.Finish(), p.ok()
}

func (p *Parser) parseUseTreeList() (*cst.Node, bool) {
	n := cst.New(cst.UseTreeList)
	n.AddTok(p.bump()) // {
	for !p.at(token.RBrace) && p.ok() {
		tree, ok := p.parseUseTree()
		if !ok {
			return nil, false
		}
		n.AddNode(tree)
		if !p.eat(n, token.Comma) {
			break
		}
	}
	if !p.expect(n, token.RBrace, diag.SynUnclosedDelimiter, "',' or '}'") {
		return nil, false
	}
	return n.Finish(), true
}

func (p *Parser) parseBroadcastUse(pre *itemPrefix) (*cst.Node, bool) {
	n := cst.New(cst.BroadcastUse)
	pre.attach(n)
	n.AddTok(p.bump()) // use
	for p.ok() {
		tree, ok := p.parseUseTree()
		if !ok {
			return nil, false
		}
		n.AddNode(tree)
		if !p.eat(n, token.Comma) || p.at(token.Semi) {
			break
		}
	}
	if !p.expect(n, token.Semi, diag.SynExpectSemicolon, "';'") {
		return nil, false
	}
	return n.Finish(), true
}

func (p *Parser) parseBroadcastGroup(pre *itemPrefix) (*cst.Node, bool) {
	n := cst.New(cst.BroadcastGroup)
	pre.attach(n)
	n.AddTok(p.bump()) // group
	if !p.expect(n, token.Ident, diag.SynExpectIdentifier, "group name") ||
		!p.expect(n, token.LBrace, diag.SynExpectBlock, "'{'") {
		return nil, false
	}
	for !p.at(token.RBrace) && p.ok() {
		path, ok := p.parsePath(pathExpr)
		if !ok {
			return nil, false
		}
		n.AddNode(path)
		if !p.eat(n, token.Comma) {
			break
		}
	}
	if !p.expect(n, token.RBrace, diag.SynUnclosedDelimiter, "',' or '}'") {
		return nil, false
	}
	return n.Finish(), true
}

func (p *Parser) parseExtern(pre *itemPrefix) (*cst.Node, bool) {
	if p.nthIs(1, token.KwCrate) {
		n := cst.New(cst.ExternCrate)
		pre.attach(n)
		n.AddTok(p.bump()) // extern
		n.AddTok(p.bump()) // crate
		if !p.peek().IsIdentLike() {
			p.errExpected(diag.SynExpectIdentifier, "crate name")
			return nil, false
		}
		n.AddTok(p.bump())
		if p.eat(n, token.KwAs) {
			if !p.expect(n, token.Ident, diag.SynExpectIdentifier, "name after 'as'") {
				return nil, false
			}
		}
		if !p.expect(n, token.Semi, diag.SynExpectSemicolon, "';'") {
			return nil, false
		}
		return n.Finish(), true
	}

	n := cst.New(cst.ExternBlock)
	pre.attach(n)
	n.AddTok(p.bump()) // extern
	p.eat(n, token.StringLit)
	body := cst.New(cst.ItemList)
	if !p.expect(body, token.LBrace, diag.SynExpectBlock, "'{'") {
		return nil, false
	}
	list, ok := p.parseItemsUntilBrace(body)
	if !ok {
		return nil, false
	}
	n.AddNode(list)
	return n.Finish(), true
}
