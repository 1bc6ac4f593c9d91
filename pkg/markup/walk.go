package markup

import "errors"

// SkipChildren can be returned by a WalkFunc to skip the children of the
// current element.
var SkipChildren = errors.New("markup: skip children")

// WalkFunc is called for every node visited by Walk.
type WalkFunc func(n Node, depth int) error

// Walk visits n and its descendants depth-first in document order.
func Walk(n Node, fn WalkFunc) error {
	err := walk(n, 0, fn)
	if errors.Is(err, SkipChildren) {
		return nil
	}
	return err
}

func walk(n Node, depth int, fn WalkFunc) error {
	if err := fn(n, depth); err != nil {
		return err
	}
	el, ok := n.(*Element)
	if !ok || el == nil {
		return nil
	}
	for _, child := range el.Children {
		if err := walk(child, depth+1, fn); err != nil {
			if errors.Is(err, SkipChildren) {
				continue
			}
			return err
		}
	}
	return nil
}

// TagNames returns the distinct tag names used in n, in first-seen order.
func TagNames(n Node) []string {
	seen := make(map[string]struct{})
	var names []string
	_ = Walk(n, func(node Node, _ int) error {
		if el, ok := node.(*Element); ok {
			if _, exists := seen[el.TagName]; !exists {
				seen[el.TagName] = struct{}{}
				names = append(names, el.TagName)
			}
		}
		return nil
	})
	return names
}
