package markup

import (
	"maps"
	"slices"
)

// Node is a parsed template unit: either a Text run or an *Element.
type Node interface {
	isNode()
}

// Text is a literal text run or CDATA payload. It is used verbatim and never
// parsed again.
type Text string

func (Text) isNode() {}

// Attributes maps attribute names to their raw values.
type Attributes map[string]string

// Clone returns a copy that can be mutated without touching the parsed tree.
func (a Attributes) Clone() Attributes {
	if a == nil {
		return Attributes{}
	}
	return maps.Clone(a)
}

// Names returns the attribute names in sorted order.
func (a Attributes) Names() []string {
	names := make([]string, 0, len(a))
	for name := range a {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Element is a tag with its attributes and ordered children.
type Element struct {
	TagName    string
	Attributes Attributes
	Children   []Node
}

func (*Element) isNode() {}

// Attr returns the value of the named attribute.
func (e *Element) Attr(name string) (string, bool) {
	if e == nil {
		return "", false
	}
	value, ok := e.Attributes[name]
	return value, ok
}

// Elements returns the element children, skipping text.
func (e *Element) Elements() []*Element {
	if e == nil {
		return nil
	}
	out := make([]*Element, 0, len(e.Children))
	for _, child := range e.Children {
		if el, ok := child.(*Element); ok {
			out = append(out, el)
		}
	}
	return out
}

// Equal reports whether a and b are structurally equal.
func Equal(a, b Node) bool {
	switch av := a.(type) {
	case Text:
		bv, ok := b.(Text)
		return ok && av == bv
	case *Element:
		bv, ok := b.(*Element)
		if !ok {
			return false
		}
		if av == nil || bv == nil {
			return av == bv
		}
		if av.TagName != bv.TagName || len(av.Attributes) != len(bv.Attributes) || len(av.Children) != len(bv.Children) {
			return false
		}
		for name, value := range av.Attributes {
			if other, ok := bv.Attributes[name]; !ok || other != value {
				return false
			}
		}
		for i := range av.Children {
			if !Equal(av.Children[i], bv.Children[i]) {
				return false
			}
		}
		return true
	default:
		return a == nil && b == nil
	}
}
