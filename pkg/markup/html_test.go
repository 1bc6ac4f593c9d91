package markup_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-tcomponent/pkg/markup"
)

func TestFromHTML(t *testing.T) {
	src := `<!-- note -->
<div class="card">
  <h1>Title</h1>
  <p>Fish &amp; chips<br></p>
</div>`
	got, err := markup.FromHTML(strings.NewReader(src))
	if err != nil {
		t.Fatalf("from html: %v", err)
	}
	want := el("div", markup.Attributes{"class": "card"},
		el("h1", nil, markup.Text("Title")),
		el("p", nil, markup.Text("Fish & chips"), el("br", nil)),
	)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("converted tree mismatch (-want +got):\n%s", diff)
	}

	rendered, err := markup.String(got)
	if err != nil {
		t.Fatalf("render converted tree: %v", err)
	}
	if _, err := markup.Parse(rendered); err != nil {
		t.Fatalf("converted tree does not reparse: %v", err)
	}
}

func TestFromHTMLRequiresSingleRoot(t *testing.T) {
	_, err := markup.FromHTML(strings.NewReader(`<p>a</p><p>b</p>`))
	if !errors.Is(err, markup.ErrMultipleRoots) {
		t.Fatalf("expected ErrMultipleRoots, got %v", err)
	}
}

func TestFromHTMLFragment(t *testing.T) {
	nodes, err := markup.FromHTMLFragment(strings.NewReader("<p>a</p>\n<p>b</p>"))
	if err != nil {
		t.Fatalf("fragment: %v", err)
	}
	if len(nodes) != 2 {
		t.Fatalf("expected 2 nodes, got %d", len(nodes))
	}
}
