package format

import (
	"context"
	"strconv"
	"strings"

	"vfmt/internal/cst"
	"vfmt/internal/doc"
	"vfmt/internal/lexer"
	"vfmt/internal/source"
	"vfmt/internal/token"
	"vfmt/internal/trace"
)

// delegable reports items handed to the delegated formatter: plain Rust
// without any verification syntax.
func (p *printer) delegable(n *cst.Node) bool {
	return p.delegate && n.Kind.IsItem() && !cst.HasVerification(n)
}

// region marks d, the rendering of nodes, as one delegation region.
func (p *printer) region(nodes []*cst.Node, d *doc.Doc) *doc.Doc {
	sp := nodes[0].Span
	for _, n := range nodes[1:] {
		sp = sp.Cover(n.Span)
	}
	id := len(p.regions)
	p.regions = append(p.regions, region{id: id, span: sp})
	return doc.Region(id, d)
}

// splice runs every region through the delegated formatter and replaces
// its core rendering with the result when the result keeps the same tokens
// and comments. Regions are spliced from last to first so earlier offsets
// stay valid.
func (p *printer) splice(ctx context.Context, out doc.Output, opts Options) (string, []DelegationWarning) {
	text := out.Text
	var warnings []DelegationWarning
	for i := len(out.Regions) - 1; i >= 0; i-- {
		r := out.Regions[i]
		if err := ctx.Err(); err != nil {
			warnings = append(warnings, DelegationWarning{Span: p.regions[r.ID].span, Message: "delegation cancelled", Err: err})
			continue
		}
		body := text[r.Start:r.End]
		lead := len(body) - len(strings.TrimLeft(body, "\n"))
		body = body[lead:]
		if body == "" {
			continue
		}
		indent := r.Indent * doc.IndentWidth

		span := trace.Begin(trace.FromContext(ctx), trace.ScopeNode, "region", trace.CurrentSpan(ctx).SpanID)
		span.WithExtra("bytes", strconv.Itoa(len(body)))
		got, err := opts.Formatter.Format(ctx, dedent(body, indent)+"\n", indent, opts.DelegateConfig)
		if err != nil {
			span.End("error: " + err.Error())
			warnings = append(warnings, DelegationWarning{Span: p.regions[r.ID].span, Message: "delegated formatter failed", Err: err})
			continue
		}
		got = reindent(strings.TrimRight(got, "\n"), indent)
		if !sameTokens(body, got) {
			span.End("changed")
			warnings = append(warnings, DelegationWarning{Span: p.regions[r.ID].span, Message: "delegated formatter changed the code; kept the built-in layout"})
			continue
		}
		span.End("")
		text = text[:r.Start+lead] + got + text[r.End:]
	}
	return text, warnings
}

// dedent removes up to n leading spaces from every line.
func dedent(s string, n int) string {
	if n == 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		k := 0
		for k < n && k < len(l) && l[k] == ' ' {
			k++
		}
		lines[i] = l[k:]
	}
	return strings.Join(lines, "\n")
}

// reindent prefixes every non-empty line with n spaces.
func reindent(s string, n int) string {
	if n == 0 {
		return s
	}
	pad := strings.Repeat(" ", n)
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = pad + l
		}
	}
	return strings.Join(lines, "\n")
}

// sameTokens reports whether a and b lex to the same significant tokens and
// the same comments, ignoring trailing whitespace inside comments.
func sameTokens(a, b string) bool {
	ta, ca := lexSignature(a)
	tb, cb := lexSignature(b)
	if len(ta) != len(tb) || len(ca) != len(cb) {
		return false
	}
	for i := range ta {
		if ta[i].Kind != tb[i].Kind || ta[i].Text != tb[i].Text {
			return false
		}
	}
	for i := range ca {
		if ca[i] != cb[i] {
			return false
		}
	}
	return true
}

func lexSignature(s string) ([]token.Token, []string) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("<fragment>", []byte(s)))
	toks := lexer.Tokenize(file, lexer.Options{})
	var comments []string
	for _, t := range toks {
		for _, tv := range t.Leading {
			if tv.IsComment() {
				comments = append(comments, strings.TrimRight(tv.Text, " \t\r\n"))
			}
		}
	}
	return toks, comments
}
