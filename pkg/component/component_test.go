package component_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-tcomponent/pkg/builder"
	"github.com/goliatone/go-tcomponent/pkg/component"
	"github.com/goliatone/go-tcomponent/pkg/dom"
	"github.com/goliatone/go-tcomponent/pkg/markup"
)

func mustNew(t *testing.T, def *component.Definition) *component.Component {
	t.Helper()
	c, err := component.New(def, nil, nil, nil)
	if err != nil {
		t.Fatalf("new %s: %v", def.Name, err)
	}
	return c
}

func TestNewBuildsTemplate(t *testing.T) {
	def := &component.Definition{Name: "app", Template: "\n  <p>Hello</p>\n"}

	c := mustNew(t, def)

	if got := c.Root().TagName(); got != "p" {
		t.Fatalf("expected p root, got %q", got)
	}
	if got := c.Root().TextContent(); got != "Hello" {
		t.Fatalf("expected Hello, got %q", got)
	}
}

func TestDefaultTemplate(t *testing.T) {
	c := mustNew(t, &component.Definition{Name: "empty"})
	if got := dom.OuterHTML(c.Root()); got != "<div></div>" {
		t.Fatalf("unexpected root %q", got)
	}
}

func TestParsedIsMemoized(t *testing.T) {
	def := &component.Definition{Name: "app", Template: "<p>Hello</p>"}

	first, err := def.Parsed()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	second, _ := def.Parsed()
	if first != second {
		t.Fatalf("expected the parsed template to be reused")
	}

	a, b := mustNew(t, def), mustNew(t, def)
	if a.Root() == b.Root() {
		t.Fatalf("expected each instance to get its own tree")
	}
}

func TestParseErrorIsReported(t *testing.T) {
	def := &component.Definition{Name: "broken", Template: "<p></q>"}

	_, err := component.New(def, nil, nil, nil)
	if !errors.Is(err, markup.ErrTagNameMismatch) {
		t.Fatalf("expected tag mismatch, got %v", err)
	}
	var synErr *markup.SyntaxError
	if !errors.As(err, &synErr) || synErr.Name != "broken" {
		t.Fatalf("expected syntax error named after the definition, got %v", err)
	}
}

func TestBindIDs(t *testing.T) {
	def := &component.Definition{
		Name: "app",
		Template: `
        <section>
          <h2 id="title">here</h2>
          <p>
            It has <b id="bold">some</b> text.
          </p>
        </section>`,
	}

	c := mustNew(t, def)

	if got := c.Element("title").TextContent(); got != "here" {
		t.Fatalf("expected title text, got %q", got)
	}
	if got := c.Element("bold").TextContent(); got != "some" {
		t.Fatalf("expected bold text, got %q", got)
	}
	if _, ok := c.ID("title").(*dom.Element); !ok {
		t.Fatalf("expected ID to return the element")
	}
}

func TestBindEvents(t *testing.T) {
	def := &component.Definition{
		Name:     "app",
		Template: `<p><button onclick="this.handleButton(this.name)">My Button</button></p>`,
		Handlers: map[string]component.HandlerFunc{
			"handleButton": func(c *component.Component, _ *dom.Event) error {
				c.State["text"] = c.State["name"].(string) + " Clicked."
				return nil
			},
		},
		Setup: func(c *component.Component) error {
			c.State["name"] = c.Attrs()["name"]
			c.State["text"] = ""
			return nil
		},
	}
	app1, err := component.New(def, markup.Attributes{"name": "App1"}, nil, nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	app2, err := component.New(def, markup.Attributes{"name": "App2"}, nil, nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	if _, err := app2.Root().QuerySelector("button").Click(); err != nil {
		t.Fatalf("click: %v", err)
	}
	if app1.State["text"] != "" || app2.State["text"] != "App2 Clicked." {
		t.Fatalf("unexpected state after first click: %v %v", app1.State, app2.State)
	}

	if _, err := app1.Root().QuerySelector("button").Click(); err != nil {
		t.Fatalf("click: %v", err)
	}
	if app1.State["text"] != "App1 Clicked." || app2.State["text"] != "App2 Clicked." {
		t.Fatalf("unexpected state after second click: %v %v", app1.State, app2.State)
	}
}

func TestErrorHandling(t *testing.T) {
	def := &component.Definition{
		Name:     "app",
		Template: `<p><button onclick="this.handleButton(event)">My Button</button></p>`,
		Handlers: map[string]component.HandlerFunc{
			"handleButton": func(*component.Component, *dom.Event) error {
				return errors.New("Test error handling.")
			},
		},
		OnError: func(c *component.Component, err error) {
			c.State["text"] = err.Error()
		},
	}
	app := mustNew(t, def)

	if _, err := app.Root().QuerySelector("button").Click(); err != nil {
		t.Fatalf("expected handled error, got %v", err)
	}
	if got := app.State["text"]; got != "Test error handling." {
		t.Fatalf("expected error text, got %v", got)
	}
}

func TestAsyncErrorHandling(t *testing.T) {
	var text atomic.Value
	def := &component.Definition{
		Name:     "app",
		Template: `<p><button onclick="this.handleButton(event)">My Button</button></p>`,
		AsyncHandlers: map[string]component.AsyncHandlerFunc{
			"handleButton": func(context.Context, *component.Component, *dom.Event) error {
				return errors.New("Test async error handling.")
			},
		},
		OnError: func(_ *component.Component, err error) {
			text.Store(err.Error())
		},
	}
	app := mustNew(t, def)

	ev, err := app.Root().QuerySelector("button").Click()
	if err != nil {
		t.Fatalf("click: %v", err)
	}
	if err := ev.Wait(); err != nil {
		t.Fatalf("expected handled error, got %v", err)
	}
	if got := text.Load(); got != "Test async error handling." {
		t.Fatalf("expected async error text, got %v", got)
	}
}

func TestUnhandledErrorIsReturned(t *testing.T) {
	boom := errors.New("boom")
	def := &component.Definition{
		Name:     "app",
		Template: `<button onclick="fail">x</button>`,
		Handlers: map[string]component.HandlerFunc{
			"fail": func(*component.Component, *dom.Event) error { return boom },
		},
	}
	app := mustNew(t, def)

	if _, err := app.Root().Click(); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
}

func TestErrorsReachParentComponent(t *testing.T) {
	boom := errors.New("boom")
	child := &component.Definition{
		Name:     "child",
		Template: `<button onclick="fail">x</button>`,
		Handlers: map[string]component.HandlerFunc{
			"fail": func(*component.Component, *dom.Event) error { return boom },
		},
	}
	var got []error
	var handledBy *component.Component
	parent := &component.Definition{
		Name:     "parent",
		Template: `<div><child id="c" /></div>`,
		Uses:     component.Uses{"child": child},
		OnError: func(c *component.Component, err error) {
			handledBy = c
			got = append(got, err)
		},
	}
	app := mustNew(t, parent)

	sub, ok := app.ID("c").(*component.Component)
	if !ok {
		t.Fatalf("expected sub-component registered under c, got %T", app.ID("c"))
	}
	if sub.Parent() != app {
		t.Fatalf("expected sub-component parent to be the app")
	}
	if _, err := sub.Root().Click(); err != nil {
		t.Fatalf("expected error routed to parent, got %v", err)
	}
	if handledBy != app || len(got) != 1 || !errors.Is(got[0], boom) {
		t.Fatalf("expected boom handled by parent, got %v", got)
	}
}

func TestUseSubComponent(t *testing.T) {
	var changed atomic.Bool
	sub := &component.Definition{
		Name: "SubComponent",
		Template: `
        <label id="nameOfPet">
          <span>Please enter the name of your pet.</span>
          <input onchange="this.handleChange(event)" />
        </label>`,
		Handlers: map[string]component.HandlerFunc{
			"handleChange": func(*component.Component, *dom.Event) error {
				changed.Store(true)
				return nil
			},
		},
	}
	app := &component.Definition{
		Name: "App",
		Uses: component.Uses{"SubComponent": sub},
		Template: `
        <section>
          <h1>Use sub component</h1>
          <SubComponent id="myForm1" foo="bar">some text</SubComponent>
          <SubComponent id="myForm2"><p id="myForm2Child">some element</p></SubComponent>
        </section>`,
	}

	c := mustNew(t, app)

	form1, ok := c.ID("myForm1").(*component.Component)
	if !ok {
		t.Fatalf("expected myForm1 to be a component, got %T", c.ID("myForm1"))
	}
	form2, ok := c.ID("myForm2").(*component.Component)
	if !ok {
		t.Fatalf("expected myForm2 to be a component, got %T", c.ID("myForm2"))
	}
	child := c.Element("myForm2Child")
	if child == nil || child.TagName() != "p" {
		t.Fatalf("expected myForm2Child paragraph, got %v", child)
	}

	if got := c.Root().ChildElementCount(); got != 3 {
		t.Fatalf("expected 3 children, got %d", got)
	}
	children := c.Root().Children()
	if children[0].TagName() != "h1" || children[1] != form1.Root() || children[2] != form2.Root() {
		t.Fatalf("unexpected children order")
	}
	if diff := cmp.Diff(markup.Attributes{"foo": "bar"}, form1.Attrs()); diff != "" {
		t.Fatalf("attrs mismatch (-want +got):\n%s", diff)
	}
	if got := form1.Root().Attribute("foo"); got != "bar" {
		t.Fatalf("expected attrs merged onto the root, got %q", got)
	}
	if len(form1.Children()) != 1 || form1.Children()[0].TextContent() != "some text" {
		t.Fatalf("unexpected children for myForm1: %v", form1.Children())
	}
	if len(form2.Children()) != 1 || form2.Children()[0] != dom.Node(child) {
		t.Fatalf("expected myForm2 to receive the built paragraph")
	}
	if form1.Root().ID() != "" {
		t.Fatalf("expected id not to reach the sub-component root")
	}

	input := form1.Root().QuerySelector("input")
	if err := input.Dispatch(dom.NewEvent(context.Background(), "change")); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if !changed.Load() {
		t.Fatalf("expected change handler to run")
	}
}

func TestEventAttributesBindToParent(t *testing.T) {
	var clicks int
	button := &component.Definition{Name: "fancy-button", Template: `<button class="fancy">go</button>`}
	app := &component.Definition{
		Name:     "app",
		Template: `<div><fancy-button class="big" onclick="pressed" /></div>`,
		Uses:     component.Uses{"fancy-button": button},
		Handlers: map[string]component.HandlerFunc{
			"pressed": func(*component.Component, *dom.Event) error {
				clicks++
				return nil
			},
		},
	}
	c := mustNew(t, app)

	root := c.Root().QuerySelector("button")
	if got := root.Attribute("class"); got != "fancy big" {
		t.Fatalf("expected merged class, got %q", got)
	}
	if _, err := root.Click(); err != nil {
		t.Fatalf("click: %v", err)
	}
	if clicks != 1 {
		t.Fatalf("expected parent handler to run once, got %d", clicks)
	}
}

func TestLabelsAreBound(t *testing.T) {
	def := &component.Definition{
		Name:     "form",
		Template: `<form><label for="email">Email</label><input id="email" /></form>`,
	}
	c := mustNew(t, def)

	label := c.Root().QuerySelector("label")
	input := c.Root().QuerySelector("input")
	if input.ID() == "" || label.Attribute("for") != input.ID() {
		t.Fatalf("expected label bound to input, got for=%q id=%q", label.Attribute("for"), input.ID())
	}
}

func TestConstructorsField(t *testing.T) {
	doc := dom.NewDocument()
	def := &component.Definition{
		Name:     "app",
		Template: `<div><stamp /></div>`,
		Constructors: builder.Uses{
			"stamp": func(markup.Attributes, []dom.Node, *builder.Context) (builder.Instance, error) {
				return staticInstance{doc.CreateElement("hr")}, nil
			},
		},
	}
	c := mustNew(t, def)

	if got := dom.OuterHTML(c.Root()); got != "<div><hr></div>" {
		t.Fatalf("unexpected output %q", got)
	}
}

type staticInstance struct{ root *dom.Element }

func (s staticInstance) Root() *dom.Element { return s.root }

func TestFrom(t *testing.T) {
	base := &component.Definition{Name: "base"}
	c1, c2 := mustNew(t, base), mustNew(t, base)

	if base.From(c1.Root()) != c1 || base.From(c2.Root()) != c2 {
		t.Fatalf("expected From to resolve each instance")
	}
	if got := base.From(dom.NewDocument().CreateElement("div")); got != nil {
		t.Fatalf("expected nil for an unrelated element, got %v", got)
	}

	other := &component.Definition{Name: "other"}
	o := mustNew(t, other)
	if base.From(o.Root()) != nil || other.From(c1.Root()) != nil {
		t.Fatalf("expected From to be scoped to its definition")
	}
}

func TestFromSharedRoot(t *testing.T) {
	a := &component.Definition{Name: "A", Template: "<span></span>"}
	b := &component.Definition{Name: "B", Template: `<A id="a" />`, Uses: component.Uses{"A": a}}

	c := mustNew(t, b)
	inner, ok := c.ID("a").(*component.Component)
	if !ok {
		t.Fatalf("expected inner component, got %T", c.ID("a"))
	}

	if c.Root() != inner.Root() {
		t.Fatalf("expected the root element to be shared")
	}
	if a.From(c.Root()) != inner {
		t.Fatalf("expected A.From to return the inner component")
	}
	if b.From(c.Root()) != c {
		t.Fatalf("expected B.From to return the outer component")
	}
}

func TestSetupError(t *testing.T) {
	boom := errors.New("setup failed")
	def := &component.Definition{Name: "app", Setup: func(*component.Component) error { return boom }}

	if _, err := component.New(def, nil, nil, nil); !errors.Is(err, boom) {
		t.Fatalf("expected setup error, got %v", err)
	}
}

func TestRegistry(t *testing.T) {
	reg := component.NewRegistry()
	reg.MustRegister(&component.Definition{Name: "b"})
	reg.MustRegister(&component.Definition{Name: "a"})

	if err := reg.Register(&component.Definition{Name: "a"}); err == nil {
		t.Fatalf("expected duplicate registration to fail")
	}
	if err := reg.Register(&component.Definition{}); err == nil {
		t.Fatalf("expected unnamed definition to fail")
	}
	if diff := cmp.Diff([]string{"a", "b"}, reg.List()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	if !reg.Has("a") || reg.Has("c") {
		t.Fatalf("unexpected Has results")
	}
	if _, err := reg.Get("c"); err == nil {
		t.Fatalf("expected missing definition error")
	}
	uses, err := reg.Uses("a")
	if err != nil || uses["a"] != reg.MustGet("a") {
		t.Fatalf("unexpected uses %v (%v)", uses, err)
	}
	if _, err := reg.Uses("missing"); err == nil {
		t.Fatalf("expected error for missing use")
	}
}
