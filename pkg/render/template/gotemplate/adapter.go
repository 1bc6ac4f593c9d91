// Package gotemplate configures github.com/goliatone/go-template engines with
// the filters the page layouts rely on.
package gotemplate

import (
	"fmt"

	"github.com/flosch/pongo2/v6"
	gotpl "github.com/goliatone/go-template"

	"github.com/goliatone/go-tcomponent/pkg/render"
	"github.com/goliatone/go-tcomponent/pkg/render/template"
)

var _ template.TemplateRenderer = (*gotpl.Engine)(nil)

// Filters returns the template functions installed on every engine built by
// New.
func Filters() map[string]any {
	return map[string]any{
		"cssvars": pongo2.FilterFunction(filterCSSVars),
	}
}

// New builds a go-template engine with Filters installed. options are applied
// afterwards and must name a template source (gotpl.WithFS or
// gotpl.WithBaseDir).
func New(options ...gotpl.Option) (*gotpl.Engine, error) {
	opts := append([]gotpl.Option{gotpl.WithTemplateFunc(Filters())}, options...)
	engine, err := gotpl.NewRenderer(opts...)
	if err != nil {
		return nil, fmt.Errorf("gotemplate: %w", err)
	}
	return engine, nil
}

// filterCSSVars renders a map of custom properties as a declaration list.
func filterCSSVars(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	vars := map[string]string{}
	switch v := in.Interface().(type) {
	case map[string]string:
		vars = v
	case map[string]any:
		for key, value := range v {
			vars[key] = fmt.Sprint(value)
		}
	}
	return pongo2.AsValue(render.CSSVarsStyle(vars)), nil
}
