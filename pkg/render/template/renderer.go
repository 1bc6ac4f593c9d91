package template

import "io"

// TemplateRenderer executes a named template with data.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
}
