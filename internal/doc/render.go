package doc

import (
	"strings"
	"unicode/utf8"
)

// IndentWidth is the number of spaces per nesting level.
const IndentWidth = 4

type mode uint8

const (
	modeBreak mode = iota
	modeFlat
)

type cmd struct {
	indent int
	mode   mode
	d      *Doc
	// regionEnd marks the close of the region whose index is region.
	regionEnd bool
	region    int
}

// RegionSpan is the rendered byte range of a Region. Indent is the nesting
// level at which the region started.
type RegionSpan struct {
	ID     int
	Start  int
	End    int
	Indent int
}

// Output is a rendered document.
type Output struct {
	Text    string
	Regions []RegionSpan
}

// Render lays d out for the given line width. Widths are counted in runes.
func Render(d *Doc, width int) Output {
	propagateBreaks(d)
	w := &writer{atLineStart: true}
	var regions []RegionSpan

	stack := []cmd{{mode: modeBreak, d: d}}
	var suffixes []cmd
	for len(stack) > 0 || len(suffixes) > 0 {
		if len(stack) == 0 {
			stack = pushSuffixes(stack, suffixes)
			suffixes = suffixes[:0]
			continue
		}
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if c.regionEnd {
			if len(suffixes) > 0 {
				stack = append(stack, c)
				stack = pushSuffixes(stack, suffixes)
				suffixes = suffixes[:0]
				continue
			}
			regions[c.region].End = w.len()
			continue
		}
		if c.d == nil {
			continue
		}

		switch c.d.kind {
		case KText:
			w.text(c.d.text, c.indent)
		case KConcat:
			for i := len(c.d.parts) - 1; i >= 0; i-- {
				stack = append(stack, cmd{indent: c.indent, mode: c.mode, d: c.d.parts[i]})
			}
		case KNest:
			stack = append(stack, cmd{indent: c.indent + 1, mode: c.mode, d: c.d.child})
		case KGroup:
			next := cmd{indent: c.indent, mode: modeBreak, d: c.d.child}
			if c.mode == modeFlat {
				next.mode = modeFlat
			} else if !c.d.broken {
				flat := next
				flat.mode = modeFlat
				if fits(flat, stack, width-w.column(c.indent)) {
					next = flat
				}
			}
			stack = append(stack, next)
		case KIfBreak:
			next := c.d.flat
			if c.mode == modeBreak {
				next = c.d.child
			}
			stack = append(stack, cmd{indent: c.indent, mode: c.mode, d: next})
		case KLineSuffix:
			suffixes = append(suffixes, cmd{indent: c.indent, mode: modeFlat, d: c.d.child})
		case KBreakParent:
		case KRegion:
			regions = append(regions, RegionSpan{ID: c.d.id, Start: w.len(), Indent: c.indent})
			stack = append(stack,
				cmd{regionEnd: true, region: len(regions) - 1},
				cmd{indent: c.indent, mode: c.mode, d: c.d.child})
		case KLine, KSoftLine, KHardLine, KBlankLine:
			flat := c.mode == modeFlat && (c.d.kind == KLine || c.d.kind == KSoftLine)
			if !flat && len(suffixes) > 0 {
				stack = append(stack, c)
				stack = pushSuffixes(stack, suffixes)
				suffixes = suffixes[:0]
				continue
			}
			switch {
			case flat && c.d.kind == KLine:
				w.text(" ", c.indent)
			case flat:
			case c.d.kind == KBlankLine:
				w.blankLine()
			default:
				w.newline()
			}
		}
	}
	return Output{Text: w.finish(), Regions: regions}
}

func pushSuffixes(stack, suffixes []cmd) []cmd {
	for i := len(suffixes) - 1; i >= 0; i-- {
		stack = append(stack, suffixes[i])
	}
	return stack
}

// fits reports whether next, printed flat, and the commands after it up to
// the first possible line break fit into width columns. A line suffix
// followed by more text inside next never fits: the suffix would end up
// behind that text.
func fits(next cmd, rest []cmd, width int) bool {
	stack := []cmd{next}
	restIdx := len(rest)
	suffix := false
	for width >= 0 {
		if len(stack) == 0 {
			if restIdx == 0 {
				return true
			}
			restIdx--
			stack = append(stack, rest[restIdx])
			continue
		}
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if c.regionEnd || c.d == nil {
			continue
		}
		switch c.d.kind {
		case KText:
			if suffix && restIdx == len(rest) {
				return false
			}
			if i := strings.IndexByte(c.d.text, '\n'); i >= 0 {
				return width-utf8.RuneCountInString(c.d.text[:i]) >= 0
			}
			width -= utf8.RuneCountInString(c.d.text)
		case KConcat:
			for i := len(c.d.parts) - 1; i >= 0; i-- {
				stack = append(stack, cmd{mode: c.mode, d: c.d.parts[i]})
			}
		case KNest, KRegion:
			stack = append(stack, cmd{mode: c.mode, d: c.d.child})
		case KLineSuffix:
			if restIdx == len(rest) {
				suffix = true
			}
		case KGroup:
			m := c.mode
			if c.d.broken {
				m = modeBreak
			}
			stack = append(stack, cmd{mode: m, d: c.d.child})
		case KIfBreak:
			d := c.d.flat
			if c.mode == modeBreak {
				d = c.d.child
			}
			stack = append(stack, cmd{mode: c.mode, d: d})
		case KLine:
			if c.mode == modeBreak {
				return true
			}
			width--
		case KSoftLine:
			if c.mode == modeBreak {
				return true
			}
		case KHardLine, KBlankLine:
			return true
		}
	}
	return false
}

// writer accumulates output. Indentation is written lazily before the
// first text of a line, and line breaks are idempotent: a break at the
// start of a line does nothing.
type writer struct {
	buf         []byte
	col         int
	atLineStart bool
}

func (w *writer) len() int {
	return len(w.buf)
}

// column is the column the next text starts at, counting the indentation
// not yet written at the start of a line.
func (w *writer) column(indent int) int {
	if w.atLineStart {
		return indent * IndentWidth
	}
	return w.col
}

func (w *writer) text(s string, indent int) {
	if s == "" {
		return
	}
	if w.atLineStart {
		for range indent * IndentWidth {
			w.buf = append(w.buf, ' ')
		}
		w.col = indent * IndentWidth
		w.atLineStart = false
	}
	w.buf = append(w.buf, s...)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		w.col = utf8.RuneCountInString(s[i+1:])
		return
	}
	w.col += utf8.RuneCountInString(s)
}

func (w *writer) trimTrailingSpace() {
	for len(w.buf) > 0 && (w.buf[len(w.buf)-1] == ' ' || w.buf[len(w.buf)-1] == '\t') {
		w.buf = w.buf[:len(w.buf)-1]
	}
}

func (w *writer) newline() {
	if w.atLineStart {
		return
	}
	w.trimTrailingSpace()
	w.buf = append(w.buf, '\n')
	w.col = 0
	w.atLineStart = true
}

func (w *writer) blankLine() {
	w.newline()
	n := len(w.buf)
	if n == 0 || (n >= 2 && w.buf[n-2] == '\n') {
		return
	}
	w.buf = append(w.buf, '\n')
}

func (w *writer) finish() string {
	if !w.atLineStart {
		w.trimTrailingSpace()
	}
	return string(w.buf)
}
