package render

import theme "github.com/goliatone/go-theme"

// RenderOptions describe per-request data that renderers can use to customise
// their output without touching the element tree.
type RenderOptions struct {
	// Title is used by renderers that emit a full document.
	Title string
	// Lang sets the document language. Empty means "en".
	Lang string
	// Sanitize asks HTML renderers to run their output through a sanitising
	// policy even when none was configured.
	Sanitize bool
	// Theme carries the resolved theme. Page renderers turn its tokens into CSS
	// custom properties and may swap the layout through its partials.
	Theme *theme.RendererConfig
}
