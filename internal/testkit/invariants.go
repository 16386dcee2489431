// Package testkit holds structural checks shared by tests and fuzz
// harnesses.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"vfmt/internal/cst"
	"vfmt/internal/source"
)

// CheckSpanInvariants verifies a parsed tree against its file:
//  1. every token's text is exactly the content under its span
//  2. tokens appear in source order without overlap
//  3. a finished child node lies inside its finished parent
func CheckSpanInvariants(root *cst.Node, sf *source.File) error {
	if root == nil || sf == nil {
		return fmt.Errorf("nil tree or file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	var prevEnd uint32
	for i, tok := range cst.Tokens(root) {
		sp := tok.Span
		if sp.File != sf.ID {
			return fmt.Errorf("token %d points to file %d, want %d", i, sp.File, sf.ID)
		}
		if sp.End < sp.Start || sp.End > lenContent {
			return fmt.Errorf("token %d span %v outside content of %d bytes", i, sp, lenContent)
		}
		if got := string(sf.Content[sp.Start:sp.End]); got != tok.Text {
			return fmt.Errorf("token %d text %q, content under span %q", i, tok.Text, got)
		}
		if sp.Start < prevEnd {
			return fmt.Errorf("token %d at %v overlaps the previous token ending at %d", i, sp, prevEnd)
		}
		prevEnd = sp.End
	}

	var bad error
	cst.Walk(root, func(n *cst.Node) bool {
		if bad != nil {
			return false
		}
		if n.Span.Empty() {
			return true
		}
		for _, child := range n.Nodes() {
			cs := child.Span
			if cs.Empty() {
				continue
			}
			if cs.Start < n.Span.Start || cs.End > n.Span.End {
				bad = fmt.Errorf("%v node %v escapes its %v parent %v", child.Kind, cs, n.Kind, n.Span)
				return false
			}
		}
		return true
	})
	return bad
}
