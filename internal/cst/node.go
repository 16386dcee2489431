package cst

import (
	"strings"

	"vfmt/internal/source"
	"vfmt/internal/token"
)

// Node is a CST node. Children keep source order and mix tokens with nodes.
type Node struct {
	Kind     Kind
	Span     source.Span
	Children []Child
	// Verus marks nodes whose own tokens include verification keywords
	// (spec, proof, tracked, ghost, open, closed, ...).
	Verus bool
}

// Child is exactly one of a node or a token.
type Child struct {
	Node *Node
	Tok  *token.Token
}

func New(kind Kind) *Node {
	return &Node{Kind: kind}
}

func (n *Node) AddTok(t *token.Token) {
	if t == nil {
		return
	}
	n.Children = append(n.Children, Child{Tok: t})
}

func (n *Node) AddNode(c *Node) {
	if c == nil {
		return
	}
	n.Children = append(n.Children, Child{Node: c})
}

// Finish computes the node span from its first and last tokens.
func (n *Node) Finish() *Node {
	first, last := n.FirstToken(), n.LastToken()
	if first != nil && last != nil {
		n.Span = first.Span.Cover(last.Span)
	}
	return n
}

// Nodes returns the child nodes.
func (n *Node) Nodes() []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Node != nil {
			out = append(out, c.Node)
		}
	}
	return out
}

// Child returns the first child node of the given kind.
func (n *Node) Child(kind Kind) *Node {
	for _, c := range n.Children {
		if c.Node != nil && c.Node.Kind == kind {
			return c.Node
		}
	}
	return nil
}

// Tok returns the first direct token child of the given kind.
func (n *Node) Tok(kind token.Kind) *token.Token {
	for _, c := range n.Children {
		if c.Tok != nil && c.Tok.Kind == kind {
			return c.Tok
		}
	}
	return nil
}

// Word returns the first direct identifier child spelled w.
func (n *Node) Word(w string) *token.Token {
	for _, c := range n.Children {
		if c.Tok != nil && c.Tok.IsWord(w) {
			return c.Tok
		}
	}
	return nil
}

// FirstToken returns the leftmost token of the subtree.
func (n *Node) FirstToken() *token.Token {
	for _, c := range n.Children {
		if c.Tok != nil {
			return c.Tok
		}
		if t := c.Node.FirstToken(); t != nil {
			return t
		}
	}
	return nil
}

// LastToken returns the rightmost token of the subtree.
func (n *Node) LastToken() *token.Token {
	for i := len(n.Children) - 1; i >= 0; i-- {
		c := n.Children[i]
		if c.Tok != nil {
			return c.Tok
		}
		if t := c.Node.LastToken(); t != nil {
			return t
		}
	}
	return nil
}

// Walk visits the subtree in pre-order with an explicit stack.
// Returning false from fn skips the children of that node.
func Walk(root *Node, fn func(*Node) bool) {
	if root == nil {
		return
	}
	stack := []*Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(n) {
			continue
		}
		for i := len(n.Children) - 1; i >= 0; i-- {
			if c := n.Children[i].Node; c != nil {
				stack = append(stack, c)
			}
		}
	}
}

// Tokens returns every token owned by the subtree in source order.
func Tokens(root *Node) []*token.Token {
	var out []*token.Token
	type frame struct {
		n *Node
		i int
	}
	if root == nil {
		return nil
	}
	stack := []frame{{n: root}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.i >= len(top.n.Children) {
			stack = stack[:len(stack)-1]
			continue
		}
		c := top.n.Children[top.i]
		top.i++
		if c.Tok != nil {
			out = append(out, c.Tok)
		} else if c.Node != nil {
			stack = append(stack, frame{n: c.Node})
		}
	}
	return out
}

// Text reconstructs the source covered by the subtree, trivia included.
func Text(root *Node) string {
	var b strings.Builder
	for _, t := range Tokens(root) {
		for _, tv := range t.Leading {
			b.WriteString(tv.Text)
		}
		b.WriteString(t.Text)
		for _, tv := range t.Trailing {
			b.WriteString(tv.Text)
		}
	}
	return b.String()
}

// HasVerification reports whether the subtree uses any syntax of the
// verification dialect: its node kinds, marked keywords or operators.
func HasVerification(root *Node) bool {
	found := false
	Walk(root, func(n *Node) bool {
		if found {
			return false
		}
		if n.Verus || n.Kind.IsVerification() {
			found = true
			return false
		}
		for _, c := range n.Children {
			if c.Tok != nil && isVerificationOp(c.Tok.Kind) {
				found = true
				return false
			}
		}
		return true
	})
	return found
}

func isVerificationOp(k token.Kind) bool {
	switch k {
	case token.Implies, token.Explies, token.Equiv, token.EqEqEq, token.NeEqEq, token.BigAnd, token.BigOr,
		token.ExtEq, token.ExtEqEq:
		return true
	}
	return false
}
