package format

import (
	"strings"

	"vfmt/internal/cst"
	"vfmt/internal/doc"
	"vfmt/internal/source"
	"vfmt/internal/token"
	"vfmt/internal/trivia"
)

// printer turns a CST into a document. Documents are built strictly in
// source order: blank-line state is carried from one token to the next.
type printer struct {
	// blankOK lets the next token keep one blank line in front of it.
	// List printers set it before every element but the first.
	blankOK bool

	delegate bool
	regions  []region
}

// region is a run of items handed to the delegated formatter.
type region struct {
	id   int
	span source.Span
}

var (
	space = doc.Text(" ")
	comma = doc.Text(",")
)

// tok prints t with its comments.
func (p *printer) tok(t *token.Token) *doc.Doc {
	if t == nil {
		return nil
	}
	lead := p.lead(t)
	return doc.Concat(lead, doc.Text(t.Text), p.trail(t))
}

// optTok prints the comments of t around text, which replaces the token's
// own spelling. A nil t yields text alone.
func (p *printer) optTok(t *token.Token, text *doc.Doc) *doc.Doc {
	if t == nil {
		return text
	}
	lead := p.lead(t)
	return doc.Concat(lead, text, p.trail(t))
}

// bare prints the token text without any trivia. Used for delimiters whose
// comments are already covered by verbatim text.
func bare(t *token.Token) *doc.Doc {
	return doc.Text(t.Text)
}

// lead prints the comments in front of t and decides about the blank line
// before it.
func (p *printer) lead(t *token.Token) *doc.Doc {
	return p.leadGlued(t, gluesLeft(t.Kind))
}

// gluesLeft reports tokens printed flush against what precedes them. An
// inline comment in front of one keeps a space before it and none after.
func gluesLeft(k token.Kind) bool {
	switch k {
	case token.Comma, token.Semi, token.Dot:
		return true
	}
	return k.IsCloseDelim()
}

// leadGlued is lead with the glue decision made by the caller, for tokens
// such as a generic '>' whose role depends on context.
func (p *printer) leadGlued(t *token.Token, glued bool) *doc.Doc {
	blankOK := p.blankOK
	p.blankOK = false

	comments, linesBefore := trivia.Leading(t)
	if len(comments) == 0 {
		if blankOK && linesBefore >= 2 {
			return doc.BlankLine()
		}
		return nil
	}

	closeDelim := t.Kind.IsCloseDelim()
	var parts []*doc.Doc
	for i, c := range comments {
		inlineClose := glued && !c.OwnLine()
		switch {
		case c.OwnLine():
			if c.Blank() && (i > 0 || blankOK) {
				parts = append(parts, doc.BlankLine())
			} else {
				parts = append(parts, doc.HardLine())
			}
			parts = append(parts, doc.Text(c.Text))
		case inlineClose:
			parts = append(parts, doc.Text(" "+c.Text))
		default:
			parts = append(parts, doc.Text(c.Text))
		}
		switch {
		case c.IsLineLike() || c.LinesAfter > 0:
			parts = append(parts, doc.HardLine())
		case !inlineClose:
			parts = append(parts, space)
		}
	}
	last := comments[len(comments)-1]
	if linesBefore >= 2 && !closeDelim && t.Kind != token.EOF && !isDocComment(last.Trivia) {
		parts = append(parts, doc.BlankLine())
	}
	return doc.Concat(parts...)
}

// trail prints the comments reattached after t. They go to the end of the
// line, after whatever else ends up there.
func (p *printer) trail(t *token.Token) *doc.Doc {
	var parts []*doc.Doc
	for _, c := range trivia.Trailing(t) {
		parts = append(parts, doc.LineSuffix(doc.Text(" "+c.Text)))
	}
	return doc.Concat(parts...)
}

func isDocComment(tv token.Trivia) bool {
	return tv.Kind == token.TriviaDocLine || tv.Kind == token.TriviaDocBlock
}

// verbatim reproduces the source between open and close, which are the
// first and last token of toks, trivia included.
func verbatim(toks []*token.Token) string {
	if len(toks) < 2 {
		return ""
	}
	var b strings.Builder
	writeTrivia(&b, toks[0].Trailing)
	for _, t := range toks[1 : len(toks)-1] {
		writeTrivia(&b, t.Leading)
		b.WriteString(t.Text)
		writeTrivia(&b, t.Trailing)
	}
	writeTrivia(&b, toks[len(toks)-1].Leading)
	return b.String()
}

func writeTrivia(b *strings.Builder, list []token.Trivia) {
	for _, tv := range list {
		b.WriteString(tv.Text)
	}
}

// kids helpers

func firstTok(kids []cst.Child, kind token.Kind) int {
	for i, c := range kids {
		if c.Tok != nil && c.Tok.Kind == kind {
			return i
		}
	}
	return -1
}

func isTok(c cst.Child, kind token.Kind) bool {
	return c.Tok != nil && c.Tok.Kind == kind
}

func isNode(c cst.Child, kind cst.Kind) bool {
	return c.Node != nil && c.Node.Kind == kind
}

// child prints one child, node or token.
func (p *printer) child(c cst.Child) *doc.Doc {
	if c.Tok != nil {
		return p.tok(c.Tok)
	}
	return p.node(c.Node)
}

// glue prints children next to each other.
func (p *printer) glue(kids []cst.Child) *doc.Doc {
	parts := make([]*doc.Doc, 0, len(kids))
	for _, c := range kids {
		parts = append(parts, p.child(c))
	}
	return doc.Concat(parts...)
}

// spaced prints children separated by single spaces. A colon sticks to
// what precedes it.
func (p *printer) spaced(kids []cst.Child) *doc.Doc {
	parts := make([]*doc.Doc, 0, 2*len(kids))
	for i, c := range kids {
		if i > 0 && !isTok(c, token.Colon) {
			parts = append(parts, space)
		}
		parts = append(parts, p.child(c))
	}
	return doc.Concat(parts...)
}

// words prints modifier tokens such as "pub(crate)", "spec(checked)" or
// `extern "C"` separated by spaces, with parentheses glued.
func (p *printer) words(toks []*token.Token) *doc.Doc {
	parts := make([]*doc.Doc, 0, 2*len(toks))
	for i, t := range toks {
		if i > 0 && t.Kind != token.LParen && t.Kind != token.RParen && toks[i-1].Kind != token.LParen {
			parts = append(parts, space)
		}
		parts = append(parts, p.tok(t))
	}
	return doc.Concat(parts...)
}
