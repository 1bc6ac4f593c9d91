package markup

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Kind classifies a syntax error.
type Kind int

const (
	KindUnexpectedEOF Kind = iota + 1
	KindNoTagName
	KindTagNameMismatch
	KindUnclosedTag
	KindInvalidAttribute
	KindMultipleRoots
	KindUnexpectedEndTag
	KindTooDeep
)

var (
	ErrUnexpectedEOF     = errors.New("unexpected end of input")
	ErrNoTagName         = errors.New("no tag name")
	ErrTagNameMismatch   = errors.New("start and end tag name do not match")
	ErrUnclosedTag       = errors.New("tag is not closed")
	ErrInvalidAttribute  = errors.New(`attribute value does not start with " or '`)
	ErrMultipleRoots     = errors.New("create only one root element")
	ErrUnexpectedEndTag  = errors.New("unexpected end tag")
	ErrTooDeep           = errors.New("elements nested too deeply")
	ErrUnserializable    = errors.New("markup: node cannot be serialized")
	errUnknownSyntaxKind = errors.New("syntax error")
)

var kindErrors = map[Kind]error{
	KindUnexpectedEOF:    ErrUnexpectedEOF,
	KindNoTagName:        ErrNoTagName,
	KindTagNameMismatch:  ErrTagNameMismatch,
	KindUnclosedTag:      ErrUnclosedTag,
	KindInvalidAttribute: ErrInvalidAttribute,
	KindMultipleRoots:    ErrMultipleRoots,
	KindUnexpectedEndTag: ErrUnexpectedEndTag,
	KindTooDeep:          ErrTooDeep,
}

var kindNames = map[Kind]string{
	KindUnexpectedEOF:    "UnexpectedEndOfInput",
	KindNoTagName:        "NoTagName",
	KindTagNameMismatch:  "TagNameMismatch",
	KindUnclosedTag:      "UnclosedTag",
	KindInvalidAttribute: "InvalidAttributeValue",
	KindMultipleRoots:    "MultipleRootNodes",
	KindUnexpectedEndTag: "UnexpectedEndTag",
	KindTooDeep:          "TooDeep",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// SyntaxError records a parse failure with the position where it occurred.
// Line and Column are 1-based; Column counts runes.
type SyntaxError struct {
	Name   string
	Kind   Kind
	Offset int
	Line   int
	Column int
	Detail string
}

func (e *SyntaxError) Error() string {
	var b strings.Builder
	b.WriteString("markup: ")
	if e.Name != "" {
		b.WriteString(e.Name)
		b.WriteByte(':')
	}
	fmt.Fprintf(&b, "%d:%d: %s", e.Line, e.Column, e.Unwrap())
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	return b.String()
}

// Unwrap exposes the sentinel for the error kind so errors.Is works.
func (e *SyntaxError) Unwrap() error {
	if err, ok := kindErrors[e.Kind]; ok {
		return err
	}
	return errUnknownSyntaxKind
}

func newSyntaxError(name, src string, offset int, kind Kind, detail string) *SyntaxError {
	if offset > len(src) {
		offset = len(src)
	}
	line, column := position(src, offset)
	return &SyntaxError{
		Name:   name,
		Kind:   kind,
		Offset: offset,
		Line:   line,
		Column: column,
		Detail: detail,
	}
}

func position(src string, offset int) (line, column int) {
	before := src[:offset]
	line = strings.Count(before, "\n") + 1
	if i := strings.LastIndexByte(before, '\n'); i >= 0 {
		before = before[i+1:]
	}
	return line, utf8.RuneCountInString(before) + 1
}
