package cst

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Dump writes an indented outline of the tree: one line per node with its
// byte range, one line per token with its kind and text.
func Dump(w io.Writer, root *Node) error {
	type entry struct {
		c     Child
		depth int
	}
	stack := []entry{{c: Child{Node: root}}}
	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		indent := strings.Repeat("  ", e.depth)

		if e.c.Tok != nil {
			if _, err := fmt.Fprintf(w, "%s%s %s\n", indent, e.c.Tok.Kind, strconv.Quote(e.c.Tok.Text)); err != nil {
				return err
			}
			continue
		}

		n := e.c.Node
		mark := ""
		if n.Verus {
			mark = " verus"
		}
		if _, err := fmt.Fprintf(w, "%s%s %d..%d%s\n", indent, n.Kind, n.Span.Start, n.Span.End, mark); err != nil {
			return err
		}
		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, entry{c: n.Children[i], depth: e.depth + 1})
		}
	}
	return nil
}
