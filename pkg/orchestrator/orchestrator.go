package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-tcomponent/components/markdown"
	"github.com/goliatone/go-tcomponent/pkg/component"
	"github.com/goliatone/go-tcomponent/pkg/manifest"
	"github.com/goliatone/go-tcomponent/pkg/markup"
	"github.com/goliatone/go-tcomponent/pkg/render"
	"github.com/goliatone/go-tcomponent/pkg/renderers/html"
	"github.com/goliatone/go-tcomponent/pkg/renderers/page"
)

const defaultRendererName = html.Name

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithComponents injects the component registry definitions are resolved
// from. Manifests loaded through WithManifestFS are added to it.
func WithComponents(components *component.Registry) Option {
	return func(o *Orchestrator) {
		o.components = components
	}
}

// WithManifestFS supplies an fs.FS holding component manifests.
func WithManifestFS(fsys fs.FS, options ...manifest.Option) Option {
	return func(o *Orchestrator) {
		o.manifestFS = fsys
		o.manifestOptions = append(o.manifestOptions, options...)
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithTransformer registers transformers that run against the built component
// before rendering, in registration order.
func WithTransformer(transformers ...Transformer) Option {
	return func(o *Orchestrator) {
		o.transformers = append(o.transformers, transformers...)
	}
}

// WithThemeSelector resolves request themes through selector ahead of
// rendering.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(o *Orchestrator) {
		o.themeSelector = selector
	}
}

// WithThemeFallbacks sets the partials used when the selected theme does not
// provide them.
func WithThemeFallbacks(fallbacks map[string]string) Option {
	return func(o *Orchestrator) {
		o.themeFallbacks = fallbacks
	}
}

// Orchestrator coordinates the pipeline from component definition to rendered
// output. It applies defaults (html and page renderers, markdown built-in)
// while remaining open to dependency injection.
type Orchestrator struct {
	registry        *render.Registry
	components      *component.Registry
	manifestFS      fs.FS
	manifestOptions []manifest.Option
	defaultRenderer string
	transformers    []Transformer
	themeSelector   theme.ThemeSelector
	themeFallbacks  map[string]string
	initialiseErr   error
	defaultsApplied bool
}

// New constructs an Orchestrator applying any provided options. Manifest
// errors surface from the first Generate call.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes the component to render.
type Request struct {
	// Component names the definition to instantiate.
	Component string

	// Renderer names the renderer to use. If empty, the orchestrator falls back
	// to the configured default renderer.
	Renderer string

	// Attributes and Children are passed to the component as if written on its
	// tag.
	Attributes markup.Attributes
	Children   []markup.Node

	// ThemeName and ThemeVariant are resolved through the theme selector when
	// one is configured.
	ThemeName    string
	ThemeVariant string

	// RenderOptions carries per-request instructions for the renderer.
	RenderOptions render.RenderOptions
}

// Generate resolves, instantiates, transforms and renders the requested
// component.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}
	if req.Component == "" {
		return nil, errors.New("orchestrator: component is required")
	}

	c, err := o.Instantiate(req.Component, req.Attributes, req.Children)
	if err != nil {
		return nil, err
	}
	for _, t := range o.transformers {
		if t == nil {
			continue
		}
		if err := t.Transform(ctx, c); err != nil {
			return nil, fmt.Errorf("orchestrator: transform %s: %w", req.Component, err)
		}
	}

	options := req.RenderOptions
	if options.Theme == nil {
		cfg, err := o.resolveTheme(req)
		if err != nil {
			return nil, err
		}
		options.Theme = cfg
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}
	output, err := renderer.Render(ctx, c.Root(), options)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

// Instantiate builds the named component. children are built without a
// binding context.
func (o *Orchestrator) Instantiate(name string, attrs markup.Attributes, children []markup.Node) (*component.Component, error) {
	if err := o.initialiseErr; err != nil {
		return nil, err
	}
	def, err := o.components.Get(name)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}
	built, err := buildChildren(children)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: children of %s: %w", name, err)
	}
	c, err := component.New(def, attrs, built, nil)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}
	return c, nil
}

// Components lists the registered component names.
func (o *Orchestrator) Components() []string {
	if o.components == nil {
		return nil
	}
	return o.components.List()
}

// Renderers lists the registered renderer names.
func (o *Orchestrator) Renderers() []string {
	if o.registry == nil {
		return nil
	}
	return o.registry.List()
}

func (o *Orchestrator) resolveTheme(req Request) (*theme.RendererConfig, error) {
	if o.themeSelector == nil {
		return nil, nil
	}
	sel, err := o.themeSelector.Select(req.ThemeName, req.ThemeVariant)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: select theme: %w", err)
	}
	return render.ThemeConfig(sel, o.themeFallbacks), nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: %w", err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}
	return o.registry.Get(names[0])
}

func (o *Orchestrator) applyDefaults() {
	if o.defaultsApplied {
		return
	}
	o.defaultsApplied = true

	if o.registry == nil {
		o.registry = render.NewRegistry(html.New())
		pageRenderer, err := page.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default page renderer: %w", err)
			return
		}
		o.registry.MustRegister(pageRenderer)
	}
	if o.components == nil {
		o.components = component.NewRegistry()
	}
	if o.manifestFS != nil {
		opts := append([]manifest.Option{
			manifest.WithRegistry(o.components),
			manifest.WithConstructors(markdown.New().Uses()),
		}, o.manifestOptions...)
		if _, err := manifest.LoadFS(o.manifestFS, opts...); err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: load manifests: %w", err)
		}
	}
}
