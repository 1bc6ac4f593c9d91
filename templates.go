package tcomponent

import (
	"io/fs"

	"github.com/goliatone/go-tcomponent/pkg/renderers/page"
)

// EmbeddedTemplates exposes the built-in page layout templates so callers can
// reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return page.TemplatesFS()
}
