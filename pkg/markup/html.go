package markup

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// FromHTMLFragment converts an HTML fragment into markup nodes. Comments and
// doctypes are dropped, as are whitespace-only text runs.
func FromHTMLFragment(r io.Reader) ([]Node, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	parsed, err := html.ParseFragment(r, body)
	if err != nil {
		return nil, fmt.Errorf("markup: parse html: %w", err)
	}
	nodes := make([]Node, 0, len(parsed))
	for _, n := range parsed {
		if converted := fromHTMLNode(n); converted != nil {
			nodes = append(nodes, converted)
		}
	}
	return nodes, nil
}

// FromHTML converts an HTML fragment with exactly one root element.
func FromHTML(r io.Reader) (Node, error) {
	nodes, err := FromHTMLFragment(r)
	if err != nil {
		return nil, err
	}
	if len(nodes) != 1 {
		return nil, fmt.Errorf("markup: html has %d top-level nodes: %w", len(nodes), ErrMultipleRoots)
	}
	if _, ok := nodes[0].(*Element); !ok {
		return nil, fmt.Errorf("markup: html root is text: %w", ErrMultipleRoots)
	}
	return nodes[0], nil
}

func fromHTMLNode(n *html.Node) Node {
	switch n.Type {
	case html.TextNode:
		if strings.TrimLeft(n.Data, " \t\n\r\f") == "" {
			return nil
		}
		return Text(n.Data)
	case html.ElementNode:
		el := &Element{
			TagName:    n.Data,
			Attributes: make(Attributes, len(n.Attr)),
			Children:   []Node{},
		}
		for _, attr := range n.Attr {
			key := attr.Key
			if attr.Namespace != "" {
				key = attr.Namespace + ":" + key
			}
			el.Attributes[key] = attr.Val
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			if converted := fromHTMLNode(child); converted != nil {
				el.Children = append(el.Children, converted)
			}
		}
		return el
	default:
		return nil
	}
}
