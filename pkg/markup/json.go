package markup

import (
	"encoding/json"
	"errors"
	"fmt"
)

type elementJSON struct {
	TagName    string            `json:"tagName"`
	Attributes map[string]string `json:"attributes"`
	Children   []json.RawMessage `json:"children"`
}

// MarshalJSON encodes the element as {"tagName", "attributes", "children"};
// text children are encoded as bare strings.
func (e *Element) MarshalJSON() ([]byte, error) {
	if e == nil {
		return []byte("null"), nil
	}
	out := elementJSON{
		TagName:    e.TagName,
		Attributes: e.Attributes,
		Children:   make([]json.RawMessage, 0, len(e.Children)),
	}
	if out.Attributes == nil {
		out.Attributes = map[string]string{}
	}
	for _, child := range e.Children {
		raw, err := marshalNode(child)
		if err != nil {
			return nil, err
		}
		out.Children = append(out.Children, raw)
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes an element previously encoded by MarshalJSON.
func (e *Element) UnmarshalJSON(data []byte) error {
	var in elementJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	if in.TagName == "" {
		return errors.New("markup: element without tagName")
	}
	el := Element{
		TagName:    in.TagName,
		Attributes: Attributes(in.Attributes),
		Children:   make([]Node, 0, len(in.Children)),
	}
	if el.Attributes == nil {
		el.Attributes = Attributes{}
	}
	for _, raw := range in.Children {
		child, err := UnmarshalNode(raw)
		if err != nil {
			return err
		}
		el.Children = append(el.Children, child)
	}
	*e = el
	return nil
}

// MarshalNode encodes any node; text becomes a JSON string.
func MarshalNode(n Node) ([]byte, error) {
	return marshalNode(n)
}

func marshalNode(n Node) ([]byte, error) {
	switch v := n.(type) {
	case Text:
		return json.Marshal(string(v))
	case *Element:
		return v.MarshalJSON()
	default:
		return nil, fmt.Errorf("markup: cannot marshal node %T", n)
	}
}

// UnmarshalNode decodes a JSON string into Text and a JSON object into an
// *Element.
func UnmarshalNode(data []byte) (Node, error) {
	var probe any
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("markup: decode node: %w", err)
	}
	switch v := probe.(type) {
	case string:
		return Text(v), nil
	case map[string]any:
		el := &Element{}
		if err := el.UnmarshalJSON(data); err != nil {
			return nil, fmt.Errorf("markup: decode element: %w", err)
		}
		return el, nil
	default:
		return nil, fmt.Errorf("markup: node must be a string or an object, got %T", probe)
	}
}
