package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/goliatone/go-tcomponent/pkg/builder"
	"github.com/goliatone/go-tcomponent/pkg/dom"
	"github.com/goliatone/go-tcomponent/pkg/markup"
)

// Component converts Markdown into markup nodes and builds them.
type Component struct {
	opts Options
	md   goldmark.Markdown
}

// New constructs a component with default options plus any overrides. GFM
// is always enabled.
func New(fns ...OptionFn) *Component {
	opts := NewOptions(fns...)
	var rendererOpts []goldmark.Option
	if opts.Unsafe {
		rendererOpts = append(rendererOpts, goldmark.WithRendererOptions(goldmarkhtml.WithUnsafe()))
	}
	exts := append([]goldmark.Extender{extension.GFM}, opts.Extensions...)
	md := goldmark.New(append(rendererOpts, goldmark.WithExtensions(exts...))...)
	return &Component{opts: opts, md: md}
}

// Options returns a copy of the component configuration.
func (c *Component) Options() Options {
	return NewOptions(func(o *Options) { *o = c.opts })
}

// Uses returns a table registering the component under its tag.
func (c *Component) Uses() builder.Uses {
	return builder.Uses{c.opts.Tag: c.Constructor()}
}

// Convert renders src as Markdown and imports the resulting HTML.
func (c *Component) Convert(src string) ([]markup.Node, error) {
	var buf bytes.Buffer
	if err := c.md.Convert([]byte(Dedent(src)), &buf); err != nil {
		return nil, fmt.Errorf("markdown: convert: %w", err)
	}
	return markup.FromHTMLFragment(&buf)
}

// Instance is a built markdown block.
type Instance struct {
	root   *dom.Element
	source string
}

func (i *Instance) Root() *dom.Element { return i.root }

// Source returns the Markdown the block was built from.
func (i *Instance) Source() string { return i.source }

// Constructor returns the builder constructor for the component. The text
// content of the children is the Markdown source. Attributes of the tag are
// merged onto the wrapping div, with on* attributes bound to parent.
func (c *Component) Constructor() builder.Constructor {
	return func(attrs markup.Attributes, children []dom.Node, parent *builder.Context) (builder.Instance, error) {
		var src strings.Builder
		for _, child := range children {
			src.WriteString(child.TextContent())
		}
		nodes, err := c.Convert(src.String())
		if err != nil {
			return nil, err
		}

		wrapper := &markup.Element{TagName: "div", Attributes: markup.Attributes{}, Children: nodes}
		if c.opts.Class != "" {
			wrapper.Attributes["class"] = c.opts.Class
		}
		root, err := builder.Build(wrapper, nil, nil)
		if err != nil {
			return nil, fmt.Errorf("markdown: build: %w", err)
		}
		if err := builder.MergeAttrs(root, attrs, parent); err != nil {
			return nil, fmt.Errorf("markdown: %w", err)
		}
		return &Instance{root: root, source: src.String()}, nil
	}
}

// Dedent removes the longest run of spaces and tabs shared by every non-blank
// line, and leading and trailing blank lines.
func Dedent(src string) string {
	lines := strings.Split(strings.ReplaceAll(src, "\r\n", "\n"), "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}

	prefix := ""
	first := true
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		if first {
			prefix, first = indent, false
			continue
		}
		for !strings.HasPrefix(indent, prefix) {
			prefix = prefix[:len(prefix)-1]
		}
	}
	for i, line := range lines {
		lines[i] = strings.TrimPrefix(line, prefix)
	}
	return strings.Join(lines, "\n")
}
