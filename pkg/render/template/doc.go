// Package template defines the template engine seam used by renderers that
// wrap built elements in a layout. The gotemplate subpackage builds
// go-template (pongo2) engines for it.
package template
