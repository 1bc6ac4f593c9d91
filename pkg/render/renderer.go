package render

import (
	"context"

	"github.com/goliatone/go-tcomponent/pkg/dom"
)

// Renderer serialises a built element tree (HTML fragment, full page, ...).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, root *dom.Element, options RenderOptions) ([]byte, error)
}
