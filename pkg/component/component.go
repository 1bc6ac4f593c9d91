package component

import (
	"context"

	"github.com/goliatone/go-tcomponent/pkg/builder"
	"github.com/goliatone/go-tcomponent/pkg/dom"
	"github.com/goliatone/go-tcomponent/pkg/markup"
)

// Component is a built instance of a Definition.
type Component struct {
	// State is free for handlers and Setup to use.
	State map[string]any

	def      *Definition
	root     *dom.Element
	parent   *Component
	attrs    markup.Attributes
	children []dom.Node
	ctx      *builder.Context
}

// New builds a component from def. attrs and children are the attributes and
// built children of the tag that uses the component; they are merged onto the
// template root. Event attributes in attrs are resolved against parent.
func New(def *Definition, attrs markup.Attributes, children []dom.Node, parent *builder.Context) (*Component, error) {
	if def == nil {
		return nil, errNilDefinition
	}
	node, err := def.Parsed()
	if err != nil {
		return nil, wrap(def, err)
	}

	c := &Component{
		State:    make(map[string]any),
		def:      def,
		attrs:    attrs.Clone(),
		children: children,
	}
	if parent != nil {
		c.parent, _ = parent.Owner().(*Component)
	}
	c.ctx = builder.NewContext(c.contextOptions(parent)...)

	root, err := builder.Build(node, c.ctx, def.builderUses())
	if err != nil {
		return nil, wrap(def, err)
	}
	c.root = root

	if len(attrs) > 0 {
		if err := builder.MergeAttrs(root, attrs, parent); err != nil {
			return nil, wrap(def, err)
		}
	}
	for _, child := range children {
		root.AppendChild(child)
	}
	builder.BindLabels(c.ctx)
	root.SetOwner(def, c)

	if def.Setup != nil {
		if err := def.Setup(c); err != nil {
			return nil, wrap(def, err)
		}
	}
	return c, nil
}

func (c *Component) contextOptions(parent *builder.Context) []builder.ContextOption {
	def := c.def
	opts := []builder.ContextOption{builder.WithOwner(c), builder.WithParent(parent)}

	handlers := make(map[string]builder.Handler, len(def.Handlers))
	for name, fn := range def.Handlers {
		if fn == nil {
			continue
		}
		handlers[name] = func(ev *dom.Event) error { return fn(c, ev) }
	}
	async := make(map[string]builder.AsyncHandler, len(def.AsyncHandlers))
	for name, fn := range def.AsyncHandlers {
		if fn == nil {
			continue
		}
		async[name] = func(ctx context.Context, ev *dom.Event) error { return fn(ctx, c, ev) }
	}
	opts = append(opts, builder.WithHandlers(handlers), builder.WithAsyncHandlers(async))

	if def.OnError != nil {
		opts = append(opts, builder.WithErrorHandler(func(err error) { def.OnError(c, err) }))
	}
	return opts
}

// Root returns the root element. It is nil for a nil component.
func (c *Component) Root() *dom.Element {
	if c == nil {
		return nil
	}
	return c.root
}

func (c *Component) Definition() *Definition { return c.def }

// Parent returns the component whose template used this one, if any.
func (c *Component) Parent() *Component { return c.parent }

// Attrs returns the attributes the component was created with, without id.
func (c *Component) Attrs() markup.Attributes { return c.attrs.Clone() }

// Children returns the nodes passed to the component.
func (c *Component) Children() []dom.Node { return c.children }

// Context returns the binding context of the component's template.
func (c *Component) Context() *builder.Context { return c.ctx }

// ID returns the element or sub-component registered under name.
func (c *Component) ID(name string) any { return c.ctx.Lookup(name) }

// Element returns the element registered under name. Sub-components resolve
// to their root element.
func (c *Component) Element(name string) *dom.Element { return c.ctx.Element(name) }

// ReportError sends err through the component's error chain. It returns err
// when no component in the chain handles errors.
func (c *Component) ReportError(err error) error { return c.ctx.ReportError(err) }
