package orchestrator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"strings"

	"github.com/goliatone/go-tcomponent/pkg/builder"
	"github.com/goliatone/go-tcomponent/pkg/component"
	"github.com/goliatone/go-tcomponent/pkg/dom"
	"github.com/goliatone/go-tcomponent/pkg/markup"
)

// Transformer mutates a built component before it is rendered. Implementations
// can set attributes, swap classes, or perform arbitrary rewrites on the tree.
type Transformer interface {
	Transform(ctx context.Context, c *component.Component) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, c *component.Component) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, c *component.Component) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, c)
}

// JSONPresetTransformer applies declarative overrides loaded from a JSON file.
// Element patches are keyed by the id the element was registered under:
//
//	{
//	  "root": {"attributes": {"data-mode": "dark"}},
//	  "elements": {
//	    "submit": {"attributes": {"disabled": "disabled"}, "class": "primary"},
//	    "hint": {"remove": ["title"]}
//	  }
//	}
type JSONPresetTransformer struct {
	document jsonTransformDocument
}

type jsonTransformDocument struct {
	Root     *jsonElementPatch           `json:"root"`
	Elements map[string]jsonElementPatch `json:"elements"`
}

type jsonElementPatch struct {
	Attributes map[string]string `json:"attributes"`
	Remove     []string          `json:"remove"`
	Class      string            `json:"class"`
	Style      string            `json:"style"`
}

// NewJSONPresetTransformer constructs a transformer from raw JSON bytes.
func NewJSONPresetTransformer(data []byte) (*JSONPresetTransformer, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("json preset transformer: document is empty")
	}
	var document jsonTransformDocument
	if err := json.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("json preset transformer: parse document: %w", err)
	}
	return &JSONPresetTransformer{document: document}, nil
}

// NewJSONPresetTransformerFromFS loads a JSON transformer document from the
// provided filesystem path.
func NewJSONPresetTransformerFromFS(fsys fs.FS, path string) (*JSONPresetTransformer, error) {
	if fsys == nil {
		return nil, errors.New("json preset transformer: filesystem is nil")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("json preset transformer: path is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("json preset transformer: read %s: %w", path, err)
	}
	return NewJSONPresetTransformer(data)
}

// Transform applies the declarative patches onto the supplied component.
// Patches run in id order; an id the component did not register is an error.
func (t *JSONPresetTransformer) Transform(ctx context.Context, c *component.Component) error {
	if c == nil || c.Root() == nil {
		return errors.New("json preset transformer: component is nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if t.document.Root != nil {
		applyElementPatch(c.Root(), *t.document.Root)
	}

	ids := make([]string, 0, len(t.document.Elements))
	for id := range t.document.Elements {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return err
		}
		el := c.Element(id)
		if el == nil {
			return fmt.Errorf("json preset transformer: element %q not found", id)
		}
		applyElementPatch(el, t.document.Elements[id])
	}
	return nil
}

func applyElementPatch(el *dom.Element, patch jsonElementPatch) {
	for _, name := range patch.Remove {
		el.RemoveAttribute(strings.TrimSpace(name))
	}
	for name, value := range patch.Attributes {
		el.SetAttribute(name, value)
	}
	if patch.Class != "" || patch.Style != "" {
		extra := markup.Attributes{}
		if patch.Class != "" {
			extra["class"] = patch.Class
		}
		if patch.Style != "" {
			extra["style"] = patch.Style
		}
		builder.MergeStyles(el, extra)
	}
}
