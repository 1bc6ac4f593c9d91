package dom

import (
	"io"
	"strings"

	g "maragu.dev/gomponents"
)

// Gomponent converts n into a gomponents node. Listeners and owner
// associations are not part of the output.
func Gomponent(n Node) g.Node {
	switch v := n.(type) {
	case *Text:
		return g.Text(v.Data)
	case *Element:
		nodes := make([]g.Node, 0, len(v.attrs)+len(v.children))
		for _, attr := range v.Attributes() {
			nodes = append(nodes, g.Attr(attr.Name, attr.Value))
		}
		for _, child := range v.children {
			nodes = append(nodes, Gomponent(child))
		}
		return g.El(v.tagName, nodes...)
	default:
		return nil
	}
}

// Render writes n as HTML.
func Render(w io.Writer, n Node) error {
	node := Gomponent(n)
	if node == nil {
		return nil
	}
	return node.Render(w)
}

// OuterHTML returns the HTML for n.
func OuterHTML(n Node) string {
	var b strings.Builder
	_ = Render(&b, n)
	return b.String()
}
