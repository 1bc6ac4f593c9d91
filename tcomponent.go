// Package tcomponent turns markup templates into element trees bound to a
// component context. The subpackages hold the parser (markup), the tree
// builder (builder), reusable component definitions (component) and the
// render pipeline (orchestrator); this package re-exports the common entry
// points.
package tcomponent

import (
	"context"
	"io/fs"

	"github.com/goliatone/go-tcomponent/pkg/builder"
	"github.com/goliatone/go-tcomponent/pkg/component"
	"github.com/goliatone/go-tcomponent/pkg/dom"
	"github.com/goliatone/go-tcomponent/pkg/markup"
	"github.com/goliatone/go-tcomponent/pkg/orchestrator"
	"github.com/goliatone/go-tcomponent/pkg/render"
)

// Node is a parsed template node.
type Node = markup.Node

// Attributes maps attribute names to raw values.
type Attributes = markup.Attributes

// SyntaxError reports a positioned template parse failure.
type SyntaxError = markup.SyntaxError

// Context collects ids, labels and event handlers during a build.
type Context = builder.Context

// Uses maps tag names to sub-component constructors.
type Uses = builder.Uses

// Definition describes a reusable component.
type Definition = component.Definition

// Component is a built instance of a Definition.
type Component = component.Component

// RenderOptions carries per-request renderer settings.
type RenderOptions = render.RenderOptions

// Parse converts a template into a single root node.
func Parse(src string) (Node, error) {
	return markup.Parse(src)
}

// CreateElement parses src and builds it into an element tree. ids and
// labels are registered on ctx and on* attributes are bound through its
// handlers; a nil ctx builds attributes literally.
func CreateElement(src string, ctx *Context, uses Uses) (*dom.Element, error) {
	node, err := markup.Parse(src)
	if err != nil {
		return nil, err
	}
	return builder.Build(node, ctx, uses)
}

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// GenerateHTML loads the manifests in fsys and renders the named component
// with the named renderer. It is the simplest entry point for callers that
// just want HTML output.
func GenerateHTML(ctx context.Context, fsys fs.FS, componentName, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	options = append([]orchestrator.Option{orchestrator.WithManifestFS(fsys)}, options...)
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Component: componentName,
		Renderer:  rendererName,
	})
}
