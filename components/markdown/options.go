package markdown

import "github.com/yuin/goldmark"

type Options struct {
	// Tag is the tag name the component is registered under.
	Tag string
	// Class is set on the wrapping div.
	Class string
	// Unsafe lets raw HTML in the source through to the output.
	Unsafe bool
	// Extensions are added to the goldmark converter.
	Extensions []goldmark.Extender
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		Tag:   "markdown",
		Class: "markdown",
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.Tag == "" {
		opts.Tag = "markdown"
	}
	if opts.Extensions != nil {
		opts.Extensions = append([]goldmark.Extender{}, opts.Extensions...)
	}
	return opts
}

func WithTag(tag string) OptionFn {
	return func(o *Options) {
		o.Tag = tag
	}
}

func WithClass(class string) OptionFn {
	return func(o *Options) {
		o.Class = class
	}
}

func WithUnsafe(unsafe bool) OptionFn {
	return func(o *Options) {
		o.Unsafe = unsafe
	}
}

func WithExtensions(exts ...goldmark.Extender) OptionFn {
	return func(o *Options) {
		o.Extensions = append(o.Extensions, exts...)
	}
}
