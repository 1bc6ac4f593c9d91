package orchestrator

import (
	"github.com/goliatone/go-tcomponent/pkg/builder"
	"github.com/goliatone/go-tcomponent/pkg/dom"
	"github.com/goliatone/go-tcomponent/pkg/markup"
)

func buildChildren(children []markup.Node) ([]dom.Node, error) {
	if len(children) == 0 {
		return nil, nil
	}
	doc := dom.NewDocument()
	out := make([]dom.Node, 0, len(children))
	for _, child := range children {
		if text, ok := child.(markup.Text); ok {
			out = append(out, doc.CreateTextNode(string(text)))
			continue
		}
		el, err := builder.New(builder.WithDocument(doc)).Build(child, nil, nil)
		if err != nil {
			return nil, err
		}
		out = append(out, el)
	}
	return out, nil
}
