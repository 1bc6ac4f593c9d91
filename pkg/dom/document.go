package dom

// Document creates nodes.
type Document struct{}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{}
}

func (d *Document) CreateElement(tag string) *Element {
	return newElement(tag)
}

func (d *Document) CreateTextNode(text string) *Text {
	return &Text{Data: text}
}
