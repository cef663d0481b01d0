package render

import (
	"bufio"
	"io"
	"strings"
)

// WriteHTML writes n as markup. Node text and attribute values are written
// verbatim: the tree must have been built with sanitize.HTML.
func WriteHTML(w io.Writer, n *Node) error {
	bw := bufio.NewWriter(w)
	writeNode(bw, n)
	return bw.Flush()
}

// HTML returns n as a markup string.
func HTML(n *Node) string {
	var b strings.Builder
	_ = WriteHTML(&b, n)
	return b.String()
}

func writeNode(w *bufio.Writer, n *Node) {
	if n == nil {
		return
	}
	if n.Tag == "" {
		w.WriteString(n.Text)
		return
	}

	w.WriteByte('<')
	w.WriteString(n.Tag)
	if n.ID != "" {
		writeAttr(w, "id", n.ID)
	}
	if n.Class != "" {
		writeAttr(w, "class", n.Class)
	}
	for _, a := range n.Attrs {
		writeAttr(w, a.Key, a.Value)
	}
	w.WriteByte('>')

	w.WriteString(n.Text)
	for _, c := range n.Children {
		writeNode(w, c)
	}

	w.WriteString("</")
	w.WriteString(n.Tag)
	w.WriteByte('>')
}

func writeAttr(w *bufio.Writer, key, value string) {
	w.WriteByte(' ')
	w.WriteString(key)
	w.WriteString(`="`)
	w.WriteString(value)
	w.WriteByte('"')
}
