package dom

import (
	"slices"
	"strings"
)

// Node is an element or a text node.
type Node interface {
	Parent() *Element
	TextContent() string
	setParent(parent *Element)
}

// Text is a literal text node.
type Text struct {
	Data   string
	parent *Element
}

func (t *Text) Parent() *Element { return t.parent }

func (t *Text) TextContent() string { return t.Data }

func (t *Text) setParent(parent *Element) { t.parent = parent }

// Attr is a name/value pair as returned by Element.Attributes.
type Attr struct {
	Name  string
	Value string
}

// Element is a tag with attributes, children and event listeners.
type Element struct {
	tagName   string
	attrs     map[string]string
	children  []Node
	parent    *Element
	listeners map[string][]Listener
	owners    map[any]any
}

func newElement(tag string) *Element {
	return &Element{tagName: tag, attrs: make(map[string]string)}
}

func (e *Element) TagName() string { return e.tagName }

func (e *Element) Parent() *Element { return e.parent }

func (e *Element) setParent(parent *Element) { e.parent = parent }

// GetAttribute returns the attribute value and whether it is set.
func (e *Element) GetAttribute(name string) (string, bool) {
	value, ok := e.attrs[name]
	return value, ok
}

// Attribute returns the attribute value or "" when unset.
func (e *Element) Attribute(name string) string {
	return e.attrs[name]
}

func (e *Element) HasAttribute(name string) bool {
	_, ok := e.attrs[name]
	return ok
}

func (e *Element) SetAttribute(name, value string) {
	e.attrs[name] = value
}

func (e *Element) RemoveAttribute(name string) {
	delete(e.attrs, name)
}

// Attributes returns a copy of the attributes sorted by name.
func (e *Element) Attributes() []Attr {
	out := make([]Attr, 0, len(e.attrs))
	for name, value := range e.attrs {
		out = append(out, Attr{Name: name, Value: value})
	}
	slices.SortFunc(out, func(a, b Attr) int { return strings.Compare(a.Name, b.Name) })
	return out
}

func (e *Element) ID() string { return e.attrs["id"] }

func (e *Element) SetID(id string) { e.attrs["id"] = id }

// AppendChild adds n as the last child, detaching it from its previous parent.
func (e *Element) AppendChild(n Node) {
	if n == nil {
		return
	}
	if old := n.Parent(); old != nil {
		old.removeChild(n)
	}
	n.setParent(e)
	e.children = append(e.children, n)
}

// RemoveChild detaches n when it is a child of e.
func (e *Element) RemoveChild(n Node) {
	if n != nil && n.Parent() == e {
		e.removeChild(n)
		n.setParent(nil)
	}
}

func (e *Element) removeChild(n Node) {
	e.children = slices.DeleteFunc(e.children, func(child Node) bool { return child == n })
}

// ChildNodes returns a copy of all children, text included.
func (e *Element) ChildNodes() []Node {
	return slices.Clone(e.children)
}

// Children returns the element children.
func (e *Element) Children() []*Element {
	out := make([]*Element, 0, len(e.children))
	for _, child := range e.children {
		if el, ok := child.(*Element); ok {
			out = append(out, el)
		}
	}
	return out
}

func (e *Element) ChildElementCount() int {
	return len(e.Children())
}

// TextContent concatenates the text of all descendants.
func (e *Element) TextContent() string {
	var b strings.Builder
	e.writeText(&b)
	return b.String()
}

func (e *Element) writeText(b *strings.Builder) {
	for _, child := range e.children {
		switch v := child.(type) {
		case *Text:
			b.WriteString(v.Data)
		case *Element:
			v.writeText(b)
		}
	}
}

// QuerySelector returns the first descendant with the given tag name.
func (e *Element) QuerySelector(tag string) *Element {
	var found *Element
	e.walk(func(el *Element) bool {
		if el.tagName == tag {
			found = el
			return false
		}
		return true
	})
	return found
}

// QuerySelectorAll returns every descendant with the given tag name in
// document order.
func (e *Element) QuerySelectorAll(tag string) []*Element {
	var out []*Element
	e.walk(func(el *Element) bool {
		if el.tagName == tag {
			out = append(out, el)
		}
		return true
	})
	return out
}

func (e *Element) walk(fn func(*Element) bool) bool {
	for _, child := range e.children {
		el, ok := child.(*Element)
		if !ok {
			continue
		}
		if !fn(el) || !el.walk(fn) {
			return false
		}
	}
	return true
}

// SetOwner associates value with the element under key. The association is
// stored on the element itself and goes away with it.
func (e *Element) SetOwner(key, value any) {
	if e.owners == nil {
		e.owners = make(map[any]any)
	}
	e.owners[key] = value
}

// Owner returns the value associated with key, or nil.
func (e *Element) Owner(key any) any {
	return e.owners[key]
}
