package builder

import (
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/goliatone/go-tcomponent/pkg/dom"
	"github.com/goliatone/go-tcomponent/pkg/markup"
)

// GlobalIDPrefix prefixes the ids BindLabel assigns to unnamed targets.
const GlobalIDPrefix = "t-component-global-id-"

var globalIDCounter atomic.Uint64

// MergeAttrs applies attrs to el and merges class and style onto the values
// el already has.
func MergeAttrs(el *dom.Element, attrs markup.Attributes, ctx *Context) error {
	if err := MergeAttrsWithoutStyles(el, attrs, ctx); err != nil {
		return err
	}
	MergeStyles(el, attrs)
	return nil
}

// MergeAttrsWithoutStyles applies every attribute except class and style.
// With a context, id and for are left to the caller to register and on*
// attributes become event listeners.
func MergeAttrsWithoutStyles(el *dom.Element, attrs markup.Attributes, ctx *Context) error {
	for _, name := range attrs.Names() {
		value := attrs[name]
		switch {
		case name == "class", name == "style":
			continue
		case ctx != nil && (name == "id" || name == "for"):
			continue
		case ctx != nil && strings.HasPrefix(name, "on") && len(name) > 2:
			fn, err := ctx.compiler.Compile(value, ctx)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			el.AddEventListener(name[2:], ctx.Listener(fn))
		default:
			el.SetAttribute(name, value)
		}
	}
	return nil
}

// MergeStyles appends the class tokens and style declarations in attrs to
// those already on el.
func MergeStyles(el *dom.Element, attrs markup.Attributes) {
	if class, ok := attrs["class"]; ok {
		el.SetAttribute("class", joinNonEmpty(el.Attribute("class"), class, " "))
	}
	if style, ok := attrs["style"]; ok {
		current := strings.TrimSpace(el.Attribute("style"))
		sep := ";"
		if strings.HasSuffix(current, ";") {
			sep = ""
		}
		el.SetAttribute("style", joinNonEmpty(current, style, sep))
	}
}

func joinNonEmpty(a, b, sep string) string {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	if a == "" || b == "" {
		return a + b
	}
	return a + sep + b
}

// BindLabel points label at target, assigning target a generated id when it
// has none.
func BindLabel(label, target *dom.Element) {
	id := target.ID()
	if id == "" {
		id = GlobalIDPrefix + strconv.FormatUint(globalIDCounter.Add(1), 10)
		target.SetID(id)
	}
	label.SetAttribute("for", id)
}

// BindLabels binds every for registration on ctx to the element registered
// under the same id. Only label and output elements are bound.
func BindLabels(ctx *Context) {
	if ctx == nil {
		return
	}
	for _, key := range sortedKeys(ctx.labels) {
		label := asElement(ctx.labels[key])
		target := asElement(ctx.ids[key])
		if label == nil || target == nil {
			continue
		}
		switch label.TagName() {
		case "label", "output":
			BindLabel(label, target)
		}
	}
}
