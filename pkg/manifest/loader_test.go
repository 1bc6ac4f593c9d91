package manifest_test

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-tcomponent/pkg/builder"
	"github.com/goliatone/go-tcomponent/pkg/component"
	"github.com/goliatone/go-tcomponent/pkg/dom"
	"github.com/goliatone/go-tcomponent/pkg/manifest"
	"github.com/goliatone/go-tcomponent/pkg/markup"
)

func TestLoadFSRegistersComponents(t *testing.T) {
	fsys := fstest.MapFS{
		"ui/components.yaml": {Data: []byte(`
components:
  card:
    template: |
      <article class="card"><card-title id="title" /><p>body</p></article>
    uses: [card-title]
  card-title:
    templateFile: partials/title.html
`)},
		"ui/partials/title.html": {Data: []byte(`<h2>Title</h2>`)},
		"ui/extra.json":          {Data: []byte(`{"components":{"badge":{"template":"<span>new</span>"}}}`)},
		"ui/readme.txt":          {Data: []byte(`ignored`)},
	}

	reg, err := manifest.LoadFS(fsys)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff([]string{"badge", "card", "card-title"}, reg.List()); diff != "" {
		t.Fatalf("components mismatch (-want +got):\n%s", diff)
	}

	c, err := component.New(reg.MustGet("card"), nil, nil, nil)
	if err != nil {
		t.Fatalf("new card: %v", err)
	}
	want := `<article class="card"><h2>Title</h2><p>body</p></article>`
	if got := dom.OuterHTML(c.Root()); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
	if _, ok := c.ID("title").(*component.Component); !ok {
		t.Fatalf("expected card-title registered as a sub-component")
	}
}

func TestLoadFSNil(t *testing.T) {
	reg, err := manifest.LoadFS(nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(reg.List()) != 0 {
		t.Fatalf("expected empty registry")
	}
}

func TestLoadFSWithConstructors(t *testing.T) {
	fsys := fstest.MapFS{
		"c.yml": {Data: []byte("components:\n  page:\n    template: <main><stamp /></main>\n    uses: [stamp]\n")},
	}
	stamp := func(markup.Attributes, []dom.Node, *builder.Context) (builder.Instance, error) {
		return stampInstance{dom.NewDocument().CreateElement("hr")}, nil
	}

	reg, err := manifest.LoadFS(fsys, manifest.WithConstructors(builder.Uses{"stamp": stamp}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	c, err := component.New(reg.MustGet("page"), nil, nil, nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if got := dom.OuterHTML(c.Root()); got != "<main><hr></main>" {
		t.Fatalf("unexpected output %q", got)
	}
}

type stampInstance struct{ root *dom.Element }

func (s stampInstance) Root() *dom.Element { return s.root }

func TestLoadFSWithRegistry(t *testing.T) {
	reg := component.NewRegistry()
	reg.MustRegister(&component.Definition{Name: "icon", Template: "<i />"})
	fsys := fstest.MapFS{
		"c.yaml": {Data: []byte("components:\n  button:\n    template: <button><icon /></button>\n    uses: [icon]\n")},
	}

	got, err := manifest.LoadFS(fsys, manifest.WithRegistry(reg))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != reg || !reg.Has("button") {
		t.Fatalf("expected components loaded into the given registry")
	}
	if reg.MustGet("button").Uses["icon"] != reg.MustGet("icon") {
		t.Fatalf("expected uses resolved from the registry")
	}
}

func TestLoadFSErrors(t *testing.T) {
	cases := []struct {
		name    string
		files   fstest.MapFS
		wantErr string
		is      error
	}{
		{
			name:    "empty file",
			files:   fstest.MapFS{"a.yaml": {Data: []byte("  \n")}},
			wantErr: "file a.yaml is empty",
		},
		{
			name:    "invalid yaml",
			files:   fstest.MapFS{"a.yaml": {Data: []byte("components: [")}},
			wantErr: "parse a.yaml",
		},
		{
			name: "duplicate",
			files: fstest.MapFS{
				"a.yaml": {Data: []byte("components:\n  x:\n    template: <p />\n")},
				"b.yaml": {Data: []byte("components:\n  x:\n    template: <p />\n")},
			},
			wantErr: `duplicate component "x"`,
		},
		{
			name:    "empty name",
			files:   fstest.MapFS{"a.json": {Data: []byte(`{"components":{" ":{"template":"<p />"}}}`)}},
			wantErr: "empty component name",
		},
		{
			name:    "unknown use",
			files:   fstest.MapFS{"a.yaml": {Data: []byte("components:\n  x:\n    template: <p />\n    uses: [y]\n")}},
			wantErr: `uses unknown component "y"`,
		},
		{
			name:    "missing template file",
			files:   fstest.MapFS{"a.yaml": {Data: []byte("components:\n  x:\n    templateFile: x.html\n")}},
			wantErr: "read template x.html",
		},
		{
			name: "template and template file",
			files: fstest.MapFS{
				"a.yaml": {Data: []byte("components:\n  x:\n    template: <p />\n    templateFile: x.html\n")},
				"x.html": {Data: []byte("<p />")},
			},
			wantErr: "sets both template and templateFile",
		},
		{
			name:    "bad template",
			files:   fstest.MapFS{"a.yaml": {Data: []byte("components:\n  x:\n    template: <p></q>\n")}},
			wantErr: `component "x" (file a.yaml)`,
			is:      markup.ErrTagNameMismatch,
		},
		{
			name: "cycle",
			files: fstest.MapFS{"a.yaml": {Data: []byte(`
components:
  a:
    template: <div><b /></div>
    uses: [b]
  b:
    template: <div><a /></div>
    uses: [a]
`)}},
			wantErr: "component cycle a -> b -> a",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := manifest.LoadFS(tc.files)
			if err == nil {
				t.Fatalf("expected error containing %q", tc.wantErr)
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tc.wantErr, err)
			}
			if tc.is != nil && !errors.Is(err, tc.is) {
				t.Fatalf("expected errors.Is %v, got %v", tc.is, err)
			}
		})
	}
}
