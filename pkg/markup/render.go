package markup

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Render writes the canonical markup for n. Parsing the output yields a tree
// structurally equal to n. Attributes are written in name order, elements
// without children self-close, and text that would not survive a plain text
// run is wrapped in a CDATA section.
func Render(w io.Writer, n Node) error {
	bw := bufio.NewWriter(w)
	if err := render(bw, n, false); err != nil {
		return err
	}
	return bw.Flush()
}

// String returns the canonical markup for n.
func String(n Node) (string, error) {
	var b strings.Builder
	if err := Render(&b, n); err != nil {
		return "", err
	}
	return b.String(), nil
}

func render(w *bufio.Writer, n Node, afterText bool) error {
	switch v := n.(type) {
	case Text:
		return renderText(w, string(v), afterText)
	case *Element:
		if v == nil || !isWord(v.TagName) {
			return fmt.Errorf("%w: invalid tag name", ErrUnserializable)
		}
		w.WriteByte('<')
		w.WriteString(v.TagName)
		for _, name := range v.Attributes.Names() {
			if err := renderAttr(w, name, v.Attributes[name]); err != nil {
				return err
			}
		}
		if len(v.Children) == 0 {
			w.WriteString(" />")
			return nil
		}
		w.WriteByte('>')
		prevText := false
		for _, child := range v.Children {
			if err := render(w, child, prevText); err != nil {
				return err
			}
			_, prevText = child.(Text)
		}
		w.WriteString(endTagOpen)
		w.WriteString(v.TagName)
		w.WriteByte('>')
		return nil
	default:
		return fmt.Errorf("%w: unsupported node %T", ErrUnserializable, n)
	}
}

func renderAttr(w *bufio.Writer, name, value string) error {
	if !isWord(name) {
		return fmt.Errorf("%w: invalid attribute name %q", ErrUnserializable, name)
	}
	quote := byte('"')
	if strings.IndexByte(value, '"') >= 0 {
		if strings.IndexByte(value, '\'') >= 0 {
			return fmt.Errorf("%w: attribute %s mixes both quote characters", ErrUnserializable, name)
		}
		quote = '\''
	}
	w.WriteByte(' ')
	w.WriteString(name)
	w.WriteByte('=')
	w.WriteByte(quote)
	w.WriteString(value)
	w.WriteByte(quote)
	return nil
}

func renderText(w *bufio.Writer, text string, afterText bool) error {
	plain := text != "" && !afterText && strings.IndexByte(text, '<') < 0 && strings.TrimLeft(text, " \t\n\r") != ""
	if plain {
		w.WriteString(text)
		return nil
	}
	if strings.Contains(text, cdataClose) {
		return fmt.Errorf("%w: text %q needs a CDATA section but contains %q", ErrUnserializable, text, cdataClose)
	}
	w.WriteString(cdataOpen)
	w.WriteString(text)
	w.WriteString(cdataClose)
	return nil
}

func isWord(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isWordByte(s[i]) {
			return false
		}
	}
	return true
}
