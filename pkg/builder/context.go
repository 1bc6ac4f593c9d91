package builder

import (
	"maps"
	"slices"

	"github.com/goliatone/go-tcomponent/pkg/dom"
)

// ContextOption configures a Context.
type ContextOption func(*Context)

// WithOwner records the value the context binds onto, typically a component.
func WithOwner(owner any) ContextOption {
	return func(c *Context) {
		c.owner = owner
	}
}

// WithParent links the context of the enclosing component. Errors not handled
// by this context are passed up the chain.
func WithParent(parent *Context) ContextOption {
	return func(c *Context) {
		c.parent = parent
	}
}

// WithHandlers seeds the handler table.
func WithHandlers(handlers map[string]Handler) ContextOption {
	return func(c *Context) {
		for name, fn := range handlers {
			c.Handle(name, fn)
		}
	}
}

// WithAsyncHandlers seeds the asynchronous handler table.
func WithAsyncHandlers(handlers map[string]AsyncHandler) ContextOption {
	return func(c *Context) {
		for name, fn := range handlers {
			c.HandleAsync(name, fn)
		}
	}
}

// WithCompiler replaces the handler compiler. The default is LookupCompiler.
func WithCompiler(compiler HandlerCompiler) ContextOption {
	return func(c *Context) {
		if compiler != nil {
			c.compiler = compiler
		}
	}
}

// WithErrorHandler installs the hook handler errors are routed to.
func WithErrorHandler(fn func(error)) ContextOption {
	return func(c *Context) {
		c.onError = fn
	}
}

// Context is the binding target of a build: it records elements and
// sub-components by id, label bindings by for, and resolves event handlers.
type Context struct {
	owner    any
	parent   *Context
	ids      map[string]any
	labels   map[string]any
	handlers map[string]Handler
	async    map[string]AsyncHandler
	compiler HandlerCompiler
	onError  func(error)
}

// NewContext returns an empty context.
func NewContext(options ...ContextOption) *Context {
	c := &Context{
		ids:      make(map[string]any),
		labels:   make(map[string]any),
		handlers: make(map[string]Handler),
		async:    make(map[string]AsyncHandler),
		compiler: LookupCompiler{},
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c
}

func (c *Context) Owner() any { return c.owner }

func (c *Context) Parent() *Context { return c.parent }

// Register binds target (an element or an Instance) under id.
func (c *Context) Register(id string, target any) {
	c.ids[id] = target
}

// RegisterLabel binds target under the id named by its for attribute.
func (c *Context) RegisterLabel(id string, target any) {
	c.labels[id] = target
}

// Lookup returns the element or sub-component registered under id.
func (c *Context) Lookup(id string) any {
	return c.ids[id]
}

// Element returns the element registered under id. Sub-components resolve to
// their root element.
func (c *Context) Element(id string) *dom.Element {
	return asElement(c.ids[id])
}

// IDs returns the registered ids in sorted order.
func (c *Context) IDs() []string {
	return sortedKeys(c.ids)
}

// Labels returns a copy of the for bindings.
func (c *Context) Labels() map[string]any {
	return maps.Clone(c.labels)
}

// Handle registers a synchronous handler under name.
func (c *Context) Handle(name string, fn Handler) {
	if fn == nil {
		return
	}
	c.handlers[name] = fn
}

// HandleAsync registers an asynchronous handler under name.
func (c *Context) HandleAsync(name string, fn AsyncHandler) {
	if fn == nil {
		return
	}
	c.async[name] = fn
}

// Handler returns the synchronous handler registered under name.
func (c *Context) Handler(name string) (Handler, bool) {
	fn, ok := c.handlers[name]
	return fn, ok
}

// AsyncHandler returns the asynchronous handler registered under name.
func (c *Context) AsyncHandler(name string) (AsyncHandler, bool) {
	fn, ok := c.async[name]
	return fn, ok
}

// ReportError routes err to the nearest error hook in the context chain. It
// returns nil when a hook took the error and err otherwise.
func (c *Context) ReportError(err error) error {
	if err == nil {
		return nil
	}
	for ctx := c; ctx != nil; ctx = ctx.parent {
		if ctx.onError != nil {
			ctx.onError(err)
			return nil
		}
	}
	return err
}

func sortedKeys(m map[string]any) []string {
	return slices.Sorted(maps.Keys(m))
}

func asElement(target any) *dom.Element {
	switch v := target.(type) {
	case *dom.Element:
		return v
	case Instance:
		return v.Root()
	default:
		return nil
	}
}
