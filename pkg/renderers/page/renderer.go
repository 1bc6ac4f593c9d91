// Package page renders element trees as complete HTML documents through a
// go-template layout, with theme tokens exposed as CSS custom properties.
package page

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	gotpl "github.com/goliatone/go-template"

	"github.com/goliatone/go-tcomponent/pkg/dom"
	"github.com/goliatone/go-tcomponent/pkg/render"
	rendertemplate "github.com/goliatone/go-tcomponent/pkg/render/template"
	"github.com/goliatone/go-tcomponent/pkg/render/template/gotemplate"
	"github.com/goliatone/go-tcomponent/pkg/renderers/html"
)

// Name is the registry name of the page renderer.
const Name = "page"

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateDir      string
	templateOptions  []gotpl.Option
	templateRenderer rendertemplate.TemplateRenderer
	layout           string
	lang             string
	fragment         *html.Renderer
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateDir = path
	}
}

// WithTemplateOptions forwards options to the go-template engine, e.g.
// gotpl.WithTemplateFunc or gotpl.WithGlobalData.
func WithTemplateOptions(options ...gotpl.Option) Option {
	return func(cfg *config) {
		cfg.templateOptions = append(cfg.templateOptions, options...)
	}
}

// WithDefaultLang sets the document language used when RenderOptions.Lang is
// empty.
func WithDefaultLang(lang string) Option {
	return func(cfg *config) {
		if lang != "" {
			cfg.lang = lang
		}
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithLayout selects the layout template by name.
func WithLayout(name string) Option {
	return func(cfg *config) {
		if name != "" {
			cfg.layout = name
		}
	}
}

// WithFragmentRenderer replaces the renderer used for the page body.
func WithFragmentRenderer(fragment *html.Renderer) Option {
	return func(cfg *config) {
		if fragment != nil {
			cfg.fragment = fragment
		}
	}
}

type Renderer struct {
	templates rendertemplate.TemplateRenderer
	layout    string
	fragment  *html.Renderer
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the page renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS(), layout: defaultLayout, lang: defaultLang}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engineOptions := []gotpl.Option{
			gotpl.WithExtension(".tpl"),
			gotpl.WithGlobalData(map[string]any{"lang": cfg.lang}),
		}
		switch {
		case cfg.templateDir != "":
			engineOptions = append(engineOptions, gotpl.WithBaseDir(cfg.templateDir))
		case cfg.templateFS != nil:
			engineOptions = append(engineOptions, gotpl.WithFS(cfg.templateFS))
		default:
			engineOptions = append(engineOptions, gotpl.WithFS(TemplatesFS()))
		}
		engine, err := gotemplate.New(append(engineOptions, cfg.templateOptions...)...)
		if err != nil {
			return nil, fmt.Errorf("page renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}
	if cfg.fragment == nil {
		cfg.fragment = html.New()
	}

	return &Renderer{templates: renderer, layout: cfg.layout, fragment: cfg.fragment}, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render wraps the HTML of root in the layout.
func (r *Renderer) Render(ctx context.Context, root *dom.Element, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, errors.New("page renderer: template renderer is nil")
	}
	body, err := r.fragment.Render(ctx, root, options)
	if err != nil {
		return nil, fmt.Errorf("page renderer: %w", err)
	}

	data := map[string]any{
		"title": options.Title,
		"body":  string(body),
	}
	if options.Lang != "" {
		data["lang"] = options.Lang
	}

	layout := r.layout
	if cfg := options.Theme; cfg != nil {
		data["theme"] = cfg.Theme
		data["variant"] = cfg.Variant
		if len(cfg.CSSVars) > 0 {
			data["css_vars"] = cfg.CSSVars
		}
		if cfg.AssetURL != nil {
			data["stylesheet"] = cfg.AssetURL(StylesheetAsset)
		}
		if partial := cfg.Partials[LayoutPartial]; partial != "" {
			layout = partial
		}
	}

	result, err := r.templates.RenderTemplate(layout, data)
	if err != nil {
		return nil, fmt.Errorf("page renderer: render layout %q: %w", layout, err)
	}
	return []byte(result), nil
}
