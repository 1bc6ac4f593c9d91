// Package markup parses the restricted HTML-like template syntax into an
// immutable Node tree and serializes trees back into canonical markup.
//
// The accepted syntax is a single root element with matched start and end
// tags, double- or single-quoted attribute values, value-less boolean
// attributes, comments and CDATA sections. Text runs are kept verbatim except
// whitespace-only runs that end at a tag, which are dropped.
package markup
