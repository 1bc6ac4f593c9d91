package markup

import (
	"fmt"
	"strings"
)

// MaxDepth bounds the number of simultaneously open elements.
const MaxDepth = 4096

const (
	commentOpen  = "<!--"
	commentClose = "-->"
	cdataOpen    = "<![CDATA["
	cdataClose   = "]]>"
	endTagOpen   = "</"
)

// Parse converts src into exactly one root node. Any failure is returned as a
// *SyntaxError and no partial tree is exposed.
func Parse(src string) (Node, error) {
	return ParseNamed("", src)
}

// ParseNamed behaves like Parse and records name (typically a file or
// component name) on syntax errors.
func ParseNamed(name, src string) (node Node, err error) {
	p := &parser{name: name, src: src}
	defer func() {
		if r := recover(); r != nil {
			synErr, ok := r.(*SyntaxError)
			if !ok {
				panic(r)
			}
			node, err = nil, synErr
		}
	}()
	return p.parseDocument(), nil
}

// MustParse is like Parse but panics on error. It simplifies package-level
// template declarations.
func MustParse(src string) Node {
	node, err := Parse(src)
	if err != nil {
		panic(err)
	}
	return node
}

// parser owns the cursor for a single parse call.
type parser struct {
	name  string
	src   string
	p     int
	depth int
	roots []int
}

func (p *parser) fail(offset int, kind Kind, detail string) {
	panic(newSyntaxError(p.name, p.src, offset, kind, detail))
}

func (p *parser) failEOF(from int, what string) {
	line, column := position(p.src, from)
	p.fail(len(p.src), KindUnexpectedEOF, fmt.Sprintf("%s starting at %d:%d", what, line, column))
}

func (p *parser) done() bool {
	return p.p >= len(p.src)
}

func (p *parser) c() byte {
	if p.done() {
		return 0
	}
	return p.src[p.p]
}

func (p *parser) adv(n int) {
	p.p += n
}

func (p *parser) match(s string) bool {
	return strings.HasPrefix(p.src[p.p:], s)
}

func (p *parser) space() string {
	start := p.p
	for !p.done() && isSpace(p.c()) {
		p.adv(1)
	}
	return p.src[start:p.p]
}

func (p *parser) word() string {
	start := p.p
	for !p.done() && isWordByte(p.c()) {
		p.adv(1)
	}
	return p.src[start:p.p]
}

// until returns the text up to the next occurrence of s, leaving the cursor on
// it.
func (p *parser) until(s string, from int, what string) string {
	i := strings.Index(p.src[p.p:], s)
	if i < 0 {
		p.failEOF(from, what)
	}
	out := p.src[p.p : p.p+i]
	p.p += i
	return out
}

func (p *parser) parseDocument() Node {
	nodes := p.parseTags("")
	if !p.done() {
		at := p.p
		p.adv(len(endTagOpen))
		p.fail(at, KindUnexpectedEndTag, fmt.Sprintf("</%s> has no matching start tag", p.word()))
	}
	switch len(nodes) {
	case 0:
		p.fail(len(p.src), KindMultipleRoots, "template has no root element")
	case 1:
		if _, ok := nodes[0].(Text); ok {
			p.fail(p.roots[0], KindMultipleRoots, "text outside of a root element")
		}
	default:
		p.fail(p.roots[1], KindMultipleRoots, fmt.Sprintf("found %d top-level nodes", len(nodes)))
	}
	return nodes[0]
}

// parseTags reads sibling nodes until an end tag marker or the end of input.
// open is the name of the enclosing element, empty at the top level.
func (p *parser) parseTags(open string) []Node {
	nodes := []Node{}
	for !p.match(endTagOpen) {
		if p.done() {
			if p.depth > 0 {
				p.fail(p.p, KindUnexpectedEOF, fmt.Sprintf("missing </%s>", open))
			}
			break
		}

		start := p.p
		switch {
		case p.match(commentOpen):
			p.adv(len(commentOpen))
			p.until(commentClose, start, "comment")
			p.adv(len(commentClose))
			continue
		case p.match(cdataOpen):
			p.adv(len(cdataOpen))
			nodes = append(nodes, Text(p.until(cdataClose, start, "CDATA section")))
			p.adv(len(cdataClose))
		case p.c() == '<':
			nodes = append(nodes, p.parseTag())
		default:
			p.space()
			if p.done() || p.c() == '<' {
				continue
			}
			end := strings.IndexByte(p.src[p.p:], '<')
			if end < 0 {
				p.p = len(p.src)
			} else {
				p.p += end
			}
			nodes = append(nodes, Text(p.src[start:p.p]))
		}
		if p.depth == 0 {
			p.roots = append(p.roots, start)
		}
	}
	return nodes
}

func (p *parser) parseTag() *Element {
	start := p.p
	p.adv(1)
	name := p.word()
	if name == "" {
		p.fail(start, KindNoTagName, "")
	}

	el := &Element{TagName: name, Attributes: p.parseAttrs()}
	switch {
	case p.match("/>"):
		p.adv(2)
		el.Children = []Node{}
	case p.c() == '>':
		p.adv(1)
		p.depth++
		if p.depth > MaxDepth {
			p.fail(start, KindTooDeep, fmt.Sprintf("more than %d open elements", MaxDepth))
		}
		el.Children = p.parseTags(name)
		p.depth--
		p.parseEndTag(name)
	case p.done():
		p.failEOF(start, fmt.Sprintf("start tag <%s>", name))
	default:
		p.fail(p.p, KindUnclosedTag, fmt.Sprintf("start tag <%s>", name))
	}
	return el
}

func (p *parser) parseEndTag(name string) {
	start := p.p
	p.adv(len(endTagOpen))
	if closing := p.word(); closing != name {
		p.fail(start, KindTagNameMismatch, fmt.Sprintf("expected </%s>, found </%s>", name, closing))
	}
	p.space()
	switch {
	case p.done():
		p.failEOF(start, fmt.Sprintf("end tag </%s>", name))
	case p.c() != '>':
		p.fail(p.p, KindUnclosedTag, fmt.Sprintf("end tag </%s>", name))
	}
	p.adv(1)
}

func (p *parser) parseAttrs() Attributes {
	attrs := Attributes{}
	p.space()
	for {
		name := p.word()
		if name == "" {
			return attrs
		}
		value := name
		if p.c() == '=' {
			p.adv(1)
			quote := p.c()
			switch {
			case p.done():
				p.failEOF(p.p-1, fmt.Sprintf("attribute %s", name))
			case quote != '"' && quote != '\'':
				p.fail(p.p, KindInvalidAttribute, fmt.Sprintf("attribute %s", name))
			}
			from := p.p
			p.adv(1)
			value = p.until(string(quote), from, "attribute value")
			p.adv(1)
		}
		attrs[name] = value
		p.space()
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\n' || c == '\t' || c == '\r'
}

// isWordByte accepts ASCII letters, digits, '-', '_' and every byte of a
// non-ASCII UTF-8 sequence.
func isWordByte(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '-', c == '_':
		return true
	default:
		return c >= 0x80
	}
}
