package builder

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-tcomponent/pkg/dom"
	"github.com/goliatone/go-tcomponent/pkg/markup"
)

var (
	// ErrRootNotElement is returned when the built root is not an element.
	ErrRootNotElement = errors.New("builder: the root node must be an element")
	// ErrUnknownHandler is returned when an on* attribute names a handler the
	// context cannot resolve.
	ErrUnknownHandler = errors.New("builder: unknown event handler")
)

// Document is the node factory the builder writes into.
type Document interface {
	CreateElement(tag string) *dom.Element
	CreateTextNode(text string) *dom.Text
}

// Instance is a constructed sub-component. Root is inserted into the parent
// tree in place of the tag; a nil root inserts nothing.
type Instance interface {
	Root() *dom.Element
}

// Constructor builds a sub-component from the attributes of its tag (without
// id), its already built children and the context it is used in.
type Constructor func(attrs markup.Attributes, children []dom.Node, parent *Context) (Instance, error)

// Uses maps tag names to sub-component constructors.
type Uses map[string]Constructor

// Option configures a Builder.
type Option func(*Builder)

// WithDocument overrides the document nodes are created in.
func WithDocument(doc Document) Option {
	return func(b *Builder) {
		if doc != nil {
			b.doc = doc
		}
	}
}

// Builder turns markup trees into dom trees.
type Builder struct {
	doc Document
}

// New constructs a Builder applying any provided options.
func New(options ...Option) *Builder {
	b := &Builder{doc: dom.NewDocument()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(b)
	}
	return b
}

// Build materialises node with the default builder.
func Build(node markup.Node, ctx *Context, uses Uses) (*dom.Element, error) {
	return New().Build(node, ctx, uses)
}

// Build materialises node. ctx and uses may be nil. When ctx is nil id, for
// and on* attributes are set literally.
func (b *Builder) Build(node markup.Node, ctx *Context, uses Uses) (*dom.Element, error) {
	if node == nil {
		return nil, errors.New("builder: node is required")
	}
	built, err := b.build(node, ctx, uses)
	if err != nil {
		return nil, err
	}
	root, ok := built.(*dom.Element)
	if !ok {
		return nil, ErrRootNotElement
	}
	return root, nil
}

func (b *Builder) build(node markup.Node, ctx *Context, uses Uses) (dom.Node, error) {
	switch v := node.(type) {
	case markup.Text:
		return b.doc.CreateTextNode(string(v)), nil
	case *markup.Element:
		children := make([]dom.Node, 0, len(v.Children))
		for _, child := range v.Children {
			built, err := b.build(child, ctx, uses)
			if err != nil {
				return nil, err
			}
			if built != nil {
				children = append(children, built)
			}
		}
		return uses.resolve(v.TagName).build(b, v, children, ctx)
	default:
		return nil, fmt.Errorf("builder: unsupported node %T", node)
	}
}

// target is the build strategy for an element: a plain element or a
// registered sub-component.
type target interface {
	build(b *Builder, el *markup.Element, children []dom.Node, ctx *Context) (dom.Node, error)
}

type plainElement struct{}

type registeredComponent struct {
	construct Constructor
}

func (u Uses) resolve(tag string) target {
	if construct, ok := u[tag]; ok && construct != nil {
		return registeredComponent{construct: construct}
	}
	return plainElement{}
}

func (plainElement) build(b *Builder, el *markup.Element, children []dom.Node, ctx *Context) (dom.Node, error) {
	element := b.doc.CreateElement(el.TagName)
	if err := MergeAttrs(element, el.Attributes, ctx); err != nil {
		return nil, fmt.Errorf("builder: <%s>: %w", el.TagName, err)
	}
	for _, child := range children {
		element.AppendChild(child)
	}
	registerID(el.Attributes, element, ctx)
	return element, nil
}

func (r registeredComponent) build(_ *Builder, el *markup.Element, children []dom.Node, ctx *Context) (dom.Node, error) {
	attrs := el.Attributes.Clone()
	delete(attrs, "id")
	instance, err := r.construct(attrs, children, ctx)
	if err != nil {
		return nil, fmt.Errorf("builder: construct <%s>: %w", el.TagName, err)
	}
	if instance == nil {
		return nil, nil
	}
	registerID(el.Attributes, instance, ctx)
	if root := instance.Root(); root != nil {
		return root, nil
	}
	return nil, nil
}

func registerID(attrs markup.Attributes, target any, ctx *Context) {
	if ctx == nil {
		return
	}
	if id, ok := attrs["id"]; ok {
		ctx.Register(id, target)
	}
	if id, ok := attrs["for"]; ok {
		ctx.RegisterLabel(id, target)
	}
}
