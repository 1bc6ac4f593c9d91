package page

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

const (
	// LayoutPartial is the theme partial that replaces the default layout.
	LayoutPartial = "page.layout"
	// StylesheetAsset is the theme asset linked from the page head.
	StylesheetAsset = "page.stylesheet"

	defaultLayout = "templates/page"
	defaultLang   = "en"
)

// TemplatesFS exposes the embedded layout bundle.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}
