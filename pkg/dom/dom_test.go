package dom_test

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-tcomponent/pkg/dom"
)

func TestAppendChildReparents(t *testing.T) {
	doc := dom.NewDocument()
	a := doc.CreateElement("div")
	b := doc.CreateElement("div")
	child := doc.CreateElement("span")

	a.AppendChild(child)
	b.AppendChild(child)

	if got := a.ChildElementCount(); got != 0 {
		t.Fatalf("expected child removed from first parent, got %d children", got)
	}
	if child.Parent() != b {
		t.Fatalf("expected child parent to be the second element")
	}

	b.RemoveChild(child)
	if child.Parent() != nil || b.ChildElementCount() != 0 {
		t.Fatalf("expected child detached")
	}
}

func TestTextContentAndQueries(t *testing.T) {
	doc := dom.NewDocument()
	root := doc.CreateElement("section")
	h := doc.CreateElement("h2")
	h.AppendChild(doc.CreateTextNode("here"))
	p := doc.CreateElement("p")
	p.AppendChild(doc.CreateTextNode("It has "))
	b := doc.CreateElement("b")
	b.AppendChild(doc.CreateTextNode("some"))
	p.AppendChild(b)
	p.AppendChild(doc.CreateTextNode(" text."))
	root.AppendChild(h)
	root.AppendChild(p)

	if got := root.TextContent(); got != "hereIt has some text." {
		t.Fatalf("unexpected text content %q", got)
	}
	if root.QuerySelector("b") != b {
		t.Fatalf("expected QuerySelector to find nested <b>")
	}
	if root.QuerySelector("table") != nil {
		t.Fatalf("expected no match for missing tag")
	}
	if got := len(root.QuerySelectorAll("p")); got != 1 {
		t.Fatalf("expected one <p>, got %d", got)
	}
	if got := len(p.ChildNodes()); got != 3 {
		t.Fatalf("expected 3 child nodes, got %d", got)
	}
}

func TestAttributesSorted(t *testing.T) {
	el := dom.NewDocument().CreateElement("input")
	el.SetAttribute("type", "text")
	el.SetAttribute("name", "pet")
	el.SetID("pet")
	el.RemoveAttribute("name")

	want := []dom.Attr{{Name: "id", Value: "pet"}, {Name: "type", Value: "text"}}
	if diff := cmp.Diff(want, el.Attributes()); diff != "" {
		t.Fatalf("attributes mismatch (-want +got):\n%s", diff)
	}
	if _, ok := el.GetAttribute("name"); ok {
		t.Fatalf("expected name removed")
	}
}

func TestDispatchRunsListenersInOrder(t *testing.T) {
	el := dom.NewDocument().CreateElement("button")
	var calls []string
	el.AddEventListener("click", func(ev *dom.Event) error {
		calls = append(calls, "first")
		if ev.Target != el || ev.CurrentTarget != el {
			t.Fatalf("expected target to be the button")
		}
		return errors.New("first failed")
	})
	el.AddEventListener("click", func(*dom.Event) error {
		calls = append(calls, "second")
		return nil
	})
	el.AddEventListener("change", func(*dom.Event) error {
		calls = append(calls, "change")
		return nil
	})

	_, err := el.Click()
	if err == nil || !strings.Contains(err.Error(), "first failed") {
		t.Fatalf("expected joined listener error, got %v", err)
	}
	if diff := cmp.Diff([]string{"first", "second"}, calls); diff != "" {
		t.Fatalf("listener order mismatch (-want +got):\n%s", diff)
	}
	if got := el.ListenerCount("click"); got != 2 {
		t.Fatalf("expected 2 click listeners, got %d", got)
	}
}

func TestEventGoAndWait(t *testing.T) {
	el := dom.NewDocument().CreateElement("button")
	var done atomic.Bool
	el.AddEventListener("click", func(ev *dom.Event) error {
		ev.Go(func(ctx context.Context) error {
			done.Store(true)
			return errors.New("async failure")
		})
		return nil
	})

	ev, err := el.Click()
	if err != nil {
		t.Fatalf("click: %v", err)
	}
	if err := ev.Wait(); err == nil || err.Error() != "async failure" {
		t.Fatalf("expected async failure from Wait, got %v", err)
	}
	if !done.Load() {
		t.Fatalf("expected async work to complete before Wait returns")
	}
}

func TestOwnerAssociation(t *testing.T) {
	el := dom.NewDocument().CreateElement("div")
	type key struct{ name string }
	a, b := &key{"a"}, &key{"b"}

	el.SetOwner(a, "component-a")
	if got := el.Owner(a); got != "component-a" {
		t.Fatalf("expected owner for a, got %v", got)
	}
	if got := el.Owner(b); got != nil {
		t.Fatalf("expected no owner for b, got %v", got)
	}
}

func TestOuterHTML(t *testing.T) {
	doc := dom.NewDocument()
	p := doc.CreateElement("p")
	p.SetAttribute("title", `a "quoted" & value`)
	p.AppendChild(doc.CreateTextNode("x < y"))
	input := doc.CreateElement("input")
	input.SetAttribute("type", "text")
	p.AppendChild(input)
	p.AddEventListener("click", func(*dom.Event) error { return nil })

	got := dom.OuterHTML(p)
	want := `<p title="a &#34;quoted&#34; &amp; value">x &lt; y<input type="text"></p>`
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
