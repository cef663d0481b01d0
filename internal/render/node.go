// Package render turns search results into a tree of display nodes.
//
// Building the tree is pure: every string taken from a result passes
// through a sanitize.Sanitizer before it is stored in a node, and nothing
// else is consulted. Bindings then walk the tree to produce output for a
// particular medium: WriteHTML for markup, Terminal for the interactive
// view and for plain command output.
package render

import "strings"

// Node is one element of the display tree. A node with an empty Tag is a
// text leaf. Text and attribute values are already sanitized.
type Node struct {
	Tag      string
	ID       string
	Class    string
	Attrs    []Attr
	Text     string
	Children []*Node
}

// Attr is an element attribute. Order is preserved in output.
type Attr struct {
	Key   string
	Value string
}

// el builds an element node.
func el(tag, class string, children ...*Node) *Node {
	return &Node{Tag: tag, Class: class, Children: children}
}

// text builds a text leaf.
func text(s string) *Node {
	return &Node{Text: s}
}

// withAttr appends an attribute and returns n for chaining.
func (n *Node) withAttr(key, value string) *Node {
	n.Attrs = append(n.Attrs, Attr{Key: key, Value: value})
	return n
}

// Attr returns the value of the named attribute.
func (n *Node) Attr(key string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

// HasClass reports whether class is one of n's space-separated classes.
func (n *Node) HasClass(class string) bool {
	for _, c := range strings.Fields(n.Class) {
		if c == class {
			return true
		}
	}
	return false
}

// FindAll returns every descendant (and n itself) carrying class, in
// document order.
func (n *Node) FindAll(class string) []*Node {
	var out []*Node
	n.walk(func(c *Node) {
		if c.HasClass(class) {
			out = append(out, c)
		}
	})
	return out
}

// Find returns the first node carrying class, or nil.
func (n *Node) Find(class string) *Node {
	if all := n.FindAll(class); len(all) > 0 {
		return all[0]
	}
	return nil
}

// TextContent concatenates all text leaves below n.
func (n *Node) TextContent() string {
	var b strings.Builder
	n.walk(func(c *Node) {
		if c.Tag == "" {
			b.WriteString(c.Text)
		}
	})
	return b.String()
}

func (n *Node) walk(fn func(*Node)) {
	if n == nil {
		return
	}
	fn(n)
	for _, c := range n.Children {
		c.walk(fn)
	}
}
