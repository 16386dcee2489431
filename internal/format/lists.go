package format

import (
	"vfmt/internal/cst"
	"vfmt/internal/doc"
	"vfmt/internal/token"
)

type listStyle uint8

const (
	// listSoft hugs the delimiters when flat: (a, b)
	listSoft listStyle = iota
	// listSpaced pads the delimiters when flat: { a, b }
	listSpaced
	// listBroken always puts one element per line.
	listBroken
)

// elem is one comma separated element of a delimited list.
type elem struct {
	kids  []cst.Child
	comma *token.Token
}

// splitElems groups children into comma separated elements.
func splitElems(kids []cst.Child) []elem {
	var out []elem
	var cur []cst.Child
	for _, c := range kids {
		if isTok(c, token.Comma) {
			out = append(out, elem{kids: cur, comma: c.Tok})
			cur = nil
			continue
		}
		cur = append(cur, c)
	}
	if len(cur) > 0 {
		out = append(out, elem{kids: cur})
	}
	return out
}

// elemDoc prints the material of one element.
func (p *printer) elemDoc(e elem) *doc.Doc {
	if len(e.kids) == 1 {
		return p.child(e.kids[0])
	}
	return p.spaced(e.kids)
}

// listOpts tunes the trailing comma of a delimited list.
type listOpts struct {
	// keepOne keeps the comma of a single element, (x,), and never adds
	// one to a single element that had none, (T).
	keepOne bool
	// noTrailing suppresses the trailing comma, e.g. after ".." in patterns.
	noTrailing bool
}

// delimited prints kids, which start with an opening delimiter and end
// with the matching closing one, as a comma separated list.
func (p *printer) delimited(kids []cst.Child, style listStyle, opts listOpts) *doc.Doc {
	open, close := kids[0].Tok, kids[len(kids)-1].Tok
	elems := splitElems(kids[1 : len(kids)-1])

	openDoc := p.tok(open)
	if len(elems) == 0 {
		closeLead := p.leadGlued(close, true)
		if closeLead == nil {
			return doc.Concat(openDoc, bare(close), p.trail(close))
		}
		return doc.Concat(doc.Group(doc.Concat(openDoc, doc.Nest(closeLead), brk(style), bare(close))), p.trail(close))
	}

	var inner []*doc.Doc
	for i, e := range elems {
		last := i == len(elems)-1
		if style == listBroken {
			inner = append(inner, doc.HardLine())
			p.blankOK = i > 0
		} else if i == 0 {
			inner = append(inner, brk(style))
		} else {
			inner = append(inner, doc.Line())
		}
		inner = append(inner, p.elemDoc(e))

		var sep *doc.Doc
		switch {
		case opts.keepOne && len(elems) == 1:
			if e.comma != nil {
				sep = comma
			}
		case !last, style == listBroken && !opts.noTrailing:
			sep = comma
		case opts.noTrailing:
		default:
			sep = doc.IfBreak(comma, nil)
		}
		inner = append(inner, p.optTok(e.comma, sep))
	}
	p.blankOK = false
	inner = append(inner, p.leadGlued(close, true))

	d := doc.Concat(openDoc, doc.Nest(doc.Concat(inner...)), brk(style), bare(close))
	if style != listBroken {
		d = doc.Group(d)
	}
	return doc.Concat(d, p.trail(close))
}

func brk(style listStyle) *doc.Doc {
	switch style {
	case listSpaced:
		return doc.Line()
	case listBroken:
		return doc.HardLine()
	}
	return doc.SoftLine()
}

// lines prints list elements one per line, keeping single blank lines
// between them. Runs of items free of verification syntax become
// delegation regions when delegation is on.
func (p *printer) lines(elems []*cst.Node, items bool) *doc.Doc {
	var parts, run []*doc.Doc
	var runNodes []*cst.Node
	flush := func() {
		if len(run) == 0 {
			return
		}
		parts = append(parts, p.region(runNodes, doc.Concat(run...)))
		run, runNodes = nil, nil
	}
	for i, e := range elems {
		var sep *doc.Doc
		if i > 0 {
			sep = doc.HardLine()
			p.blankOK = true
		}
		if !items || !p.delegable(e) {
			flush()
			parts = append(parts, sep, p.node(e))
			continue
		}
		// no regions inside a region
		p.delegate = false
		d := p.node(e)
		p.delegate = true
		if len(run) == 0 {
			parts = append(parts, sep)
			sep = nil
		}
		run = append(run, sep, d)
		runNodes = append(runNodes, e)
	}
	flush()
	return doc.Concat(parts...)
}

// braced prints "{ elems }" with every element on its own line. An empty
// body without comments collapses to "{}".
func (p *printer) braced(open *token.Token, elems []*cst.Node, close *token.Token, items bool) *doc.Doc {
	openDoc := p.tok(open)
	body := p.lines(elems, items)
	closeLead := p.lead(close)
	if len(elems) == 0 && closeLead == nil {
		return doc.Concat(openDoc, bare(close), p.trail(close))
	}
	return doc.Concat(
		openDoc,
		doc.Nest(doc.Concat(doc.HardLine(), body, closeLead)),
		doc.HardLine(),
		bare(close),
		p.trail(close),
	)
}

// bracedKids splits the children of a node that ends in "{ ... }" into the
// header, the braces and the nodes between them.
func bracedKids(kids []cst.Child) (head []cst.Child, open *token.Token, body []*cst.Node, close *token.Token) {
	i := firstTok(kids, token.LBrace)
	if i < 0 || !isTok(kids[len(kids)-1], token.RBrace) {
		return kids, nil, nil, nil
	}
	for _, c := range kids[i+1 : len(kids)-1] {
		if c.Node != nil {
			body = append(body, c.Node)
		}
	}
	return kids[:i], kids[i].Tok, body, kids[len(kids)-1].Tok
}
