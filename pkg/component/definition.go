package component

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/goliatone/go-tcomponent/pkg/builder"
	"github.com/goliatone/go-tcomponent/pkg/dom"
	"github.com/goliatone/go-tcomponent/pkg/markup"
)

// DefaultTemplate is used when a definition declares no template.
const DefaultTemplate = "<div></div>"

// HandlerFunc handles an event on behalf of a component.
type HandlerFunc func(c *Component, ev *dom.Event) error

// AsyncHandlerFunc runs on its own goroutine when the event fires.
type AsyncHandlerFunc func(ctx context.Context, c *Component, ev *dom.Event) error

// Uses maps tag names to the definitions instantiated for them.
type Uses map[string]*Definition

// Definition describes a component. A Definition must not be copied after its
// first use.
type Definition struct {
	Name     string
	Template string
	Uses     Uses
	// Constructors registers tags built by plain constructors rather than
	// definitions. Uses wins when both name the same tag.
	Constructors  builder.Uses
	Handlers      map[string]HandlerFunc
	AsyncHandlers map[string]AsyncHandlerFunc
	// OnError receives handler errors raised inside the component. When nil
	// errors go to the parent component.
	OnError func(c *Component, err error)
	// Setup runs after the element tree is built and attached.
	Setup func(c *Component) error

	once   sync.Once
	parsed markup.Node
	err    error
}

// Parsed returns the parsed template. The template is parsed on the first
// call and the result, error included, is reused afterwards.
func (d *Definition) Parsed() (markup.Node, error) {
	d.once.Do(func() {
		src := d.Template
		if src == "" {
			src = DefaultTemplate
		}
		d.parsed, d.err = markup.ParseNamed(d.Name, src)
	})
	return d.parsed, d.err
}

// Constructor adapts the definition for builder.Uses.
func (d *Definition) Constructor() builder.Constructor {
	return func(attrs markup.Attributes, children []dom.Node, parent *builder.Context) (builder.Instance, error) {
		c, err := New(d, attrs, children, parent)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
}

// From returns the component of this definition whose root is el, or nil.
// Nested definitions can share a root element; each resolves to its own
// instance.
func (d *Definition) From(el *dom.Element) *Component {
	if el == nil {
		return nil
	}
	c, _ := el.Owner(d).(*Component)
	return c
}

func (d *Definition) builderUses() builder.Uses {
	if len(d.Uses) == 0 && len(d.Constructors) == 0 {
		return nil
	}
	uses := make(builder.Uses, len(d.Uses)+len(d.Constructors))
	for tag, construct := range d.Constructors {
		uses[tag] = construct
	}
	for tag, def := range d.Uses {
		if def == nil {
			continue
		}
		uses[tag] = def.Constructor()
	}
	return uses
}

func (d *Definition) label() string {
	if d.Name != "" {
		return d.Name
	}
	return "anonymous"
}

var errNilDefinition = errors.New("component: definition is required")

func wrap(d *Definition, err error) error {
	return fmt.Errorf("component %s: %w", d.label(), err)
}
