package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"vfmt/internal/diag"
	"vfmt/internal/source"
)

type palette struct {
	err, warn, info, note, gutter, caret, bold *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		note:   color.New(color.FgBlue, color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgRed, color.Bold),
		bold:   color.New(color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.note, p.gutter, p.caret, p.bold} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	}
	return p.info
}

// Pretty writes the diagnostics of bag in source order (call bag.Sort
// first):
//
//	a.rs:3:7: ERROR SYN2001: unexpected token
//	  3 | fn f( {
//	    |       ^
//
// followed by the notes when ShowNotes is set. Diagnostics without a
// location (I/O errors) print the header only.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	pal := newPalette(opts.Color)
	for _, d := range bag.Items() {
		writeDiagnostic(w, d, fs, opts, pal)
	}
}

func writeDiagnostic(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, pal palette) {
	sev := pal.severity(d.Severity).Sprint(d.Severity.String())
	code := pal.bold.Sprint(d.Code.ID())
	file, start, end, ok := locate(fs, d.Primary)
	if !ok || hasNoLocation(d.Code) {
		fmt.Fprintf(w, "%s %s: %s\n", sev, code, d.Message)
		return
	}
	path := displayPath(file.Path, opts.PathMode, opts.BaseDir)
	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n", path, start.Line, start.Col, sev, code, d.Message)
	writeSnippet(w, file, start, end, opts.Context, pal)

	if !opts.ShowNotes {
		return
	}
	for _, n := range d.Notes {
		nfile, nstart, _, ok := locate(fs, n.Span)
		if !ok {
			fmt.Fprintf(w, "  %s %s\n", pal.note.Sprint("note:"), n.Msg)
			continue
		}
		npath := displayPath(nfile.Path, opts.PathMode, opts.BaseDir)
		fmt.Fprintf(w, "  %s %s:%d:%d: %s\n", pal.note.Sprint("note:"), npath, nstart.Line, nstart.Col, n.Msg)
	}
}

func locate(fs *source.FileSet, sp source.Span) (*source.File, source.LineCol, source.LineCol, bool) {
	if fs == nil || int(sp.File) >= fs.Len() {
		return nil, source.LineCol{}, source.LineCol{}, false
	}
	start, end := fs.Resolve(sp)
	return fs.Get(sp.File), start, end, true
}

// hasNoLocation reports codes whose span is a placeholder.
func hasNoLocation(c diag.Code) bool {
	return c >= diag.IOInfo && c < diag.CfgInfo
}

// writeSnippet prints the primary line with context and a caret line under
// the span. Columns are bytes in the span but cells on screen, so the
// prefix and the underlined text are measured with runewidth.
func writeSnippet(w io.Writer, file *source.File, start, end source.LineCol, context int, pal palette) {
	first := int(start.Line) - max(context, 0)
	if first < 1 {
		first = 1
	}
	last := int(start.Line) + max(context, 0)
	gutterWidth := len(fmt.Sprint(last))

	for n := first; n <= last; n++ {
		line := file.GetLine(uint32(n))
		if n > int(start.Line) && line == "" && n > len(file.LineIdx) {
			break
		}
		fmt.Fprintf(w, "%s %s\n", pal.gutter.Sprintf("%*d |", gutterWidth, n), expandTabs(line))
		if n != int(start.Line) {
			continue
		}
		col := int(start.Col) - 1
		col = min(max(col, 0), len(line))
		stop := len(line)
		if end.Line == start.Line {
			stop = min(max(int(end.Col)-1, col), len(line))
		}
		pad := runewidth.StringWidth(expandTabs(line[:col]))
		span := runewidth.StringWidth(expandTabs(line[col:stop]))
		marks := "^" + strings.Repeat("~", max(span-1, 0))
		fmt.Fprintf(w, "%s %s%s\n", pal.gutter.Sprintf("%*s |", gutterWidth, ""), strings.Repeat(" ", pad), pal.caret.Sprint(marks))
	}
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}
