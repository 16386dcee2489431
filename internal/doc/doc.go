// Package doc is a small document algebra for pretty printing.
//
// A Doc describes text together with the places where it may break. Render
// lays a document out for a line width: a Group is printed flat when its
// content fits on the rest of the line and broken otherwise. Documents are
// plain data; the same document and width always render to the same text.
package doc

import "strings"

// Kind tags a document node.
type Kind uint8

const (
	KText Kind = iota
	KLine
	KSoftLine
	KHardLine
	KBlankLine
	KConcat
	KNest
	KGroup
	KIfBreak
	KLineSuffix
	KBreakParent
	KRegion
)

// Doc is a document node. A nil *Doc is the empty document. Render only
// records break marks on groups; the printed shape never changes.
type Doc struct {
	kind  Kind
	text  string
	parts []*Doc
	child *Doc
	flat  *Doc // IfBreak: content when the enclosing group is flat
	id    int  // Region id
	// broken is set on groups that must break: they contain a hard line,
	// a break parent or multi-line text.
	broken bool
}

var (
	line        = &Doc{kind: KLine}
	softLine    = &Doc{kind: KSoftLine}
	hardLine    = &Doc{kind: KHardLine}
	blankLine   = &Doc{kind: KBlankLine}
	breakParent = &Doc{kind: KBreakParent}
)

// Text is literal text. It may contain newlines (verbatim string literals,
// block comments, macro bodies); such text is written as is.
func Text(s string) *Doc {
	if s == "" {
		return nil
	}
	return &Doc{kind: KText, text: s}
}

// Line is a space when flat and a newline when broken.
func Line() *Doc { return line }

// SoftLine is nothing when flat and a newline when broken.
func SoftLine() *Doc { return softLine }

// HardLine always ends the current line. At the start of a line it does nothing.
func HardLine() *Doc { return hardLine }

// BlankLine ends the current line and leaves exactly one empty line after it.
// At the start of the output it does nothing.
func BlankLine() *Doc { return blankLine }

// BreakParent forces every enclosing group to break.
func BreakParent() *Doc { return breakParent }

// Concat joins documents; nil parts are dropped.
func Concat(parts ...*Doc) *Doc {
	kept := make([]*Doc, 0, len(parts))
	for _, p := range parts {
		if p != nil {
			kept = append(kept, p)
		}
	}
	switch len(kept) {
	case 0:
		return nil
	case 1:
		return kept[0]
	}
	return &Doc{kind: KConcat, parts: kept}
}

// Nest indents lines started inside d by one more level.
func Nest(d *Doc) *Doc {
	if d == nil {
		return nil
	}
	return &Doc{kind: KNest, child: d}
}

// Group lets the renderer print d flat when it fits.
func Group(d *Doc) *Doc {
	if d == nil {
		return nil
	}
	return &Doc{kind: KGroup, child: d}
}

// IfBreak picks broken when the enclosing group breaks and flat otherwise.
func IfBreak(broken, flat *Doc) *Doc {
	if broken == nil && flat == nil {
		return nil
	}
	return &Doc{kind: KIfBreak, child: broken, flat: flat}
}

// LineSuffix defers d to the end of the current line. It is used for
// trailing comments: a group holding a suffix that is followed by more of
// the group's text does not fit.
func LineSuffix(d *Doc) *Doc {
	if d == nil {
		return nil
	}
	return &Doc{kind: KLineSuffix, child: d}
}

// Region marks d so that its rendered byte range can be located afterwards.
func Region(id int, d *Doc) *Doc {
	return &Doc{kind: KRegion, id: id, child: d}
}

// Join places sep between the non-nil docs.
func Join(sep *Doc, docs []*Doc) *Doc {
	parts := make([]*Doc, 0, 2*len(docs))
	for _, d := range docs {
		if d == nil {
			continue
		}
		if len(parts) > 0 {
			parts = append(parts, sep)
		}
		parts = append(parts, d)
	}
	return Concat(parts...)
}

// Kind returns the node kind. The empty document reports KConcat.
func (d *Doc) Kind() Kind {
	if d == nil {
		return KConcat
	}
	return d.kind
}

// IsEmpty reports whether d prints nothing.
func (d *Doc) IsEmpty() bool {
	return d == nil
}

// children lists sub-documents for traversal.
func (d *Doc) children() []*Doc {
	switch d.kind {
	case KConcat:
		return d.parts
	case KNest, KGroup, KLineSuffix, KRegion:
		return []*Doc{d.child}
	case KIfBreak:
		return []*Doc{d.child, d.flat}
	}
	return nil
}

// propagateBreaks marks groups that contain forced breaks. Groups are
// visited in post-order with an explicit stack so deep documents are safe.
func propagateBreaks(root *Doc) {
	type frame struct {
		d    *Doc
		exit bool
	}
	forced := make(map[*Doc]bool)
	stack := []frame{{d: root}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if f.d == nil {
			continue
		}
		if !f.exit {
			if _, done := forced[f.d]; done {
				continue
			}
			stack = append(stack, frame{d: f.d, exit: true})
			for _, c := range f.d.children() {
				stack = append(stack, frame{d: c})
			}
			continue
		}

		var b bool
		switch f.d.kind {
		case KHardLine, KBlankLine, KBreakParent:
			b = true
		case KText:
			b = strings.Contains(f.d.text, "\n")
		case KLineSuffix:
			b = false
		case KIfBreak:
			b = forced[f.d.flat]
		default:
			for _, c := range f.d.children() {
				if forced[c] {
					b = true
					break
				}
			}
		}
		if f.d.kind == KGroup && b {
			f.d.broken = true
		}
		forced[f.d] = b
	}
}
