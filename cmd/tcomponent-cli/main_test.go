package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-tcomponent/pkg/markup"
)

func TestRunParseStdin(t *testing.T) {
	var out bytes.Buffer
	err := runParse([]string{"-"}, strings.NewReader(`<p class="x">hi</p>`), &out)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	node, err := markup.UnmarshalNode(bytes.TrimSpace(out.Bytes()))
	if err != nil {
		t.Fatalf("unmarshal output %q: %v", out.String(), err)
	}
	if !markup.Equal(markup.MustParse(`<p class="x">hi</p>`), node) {
		t.Fatalf("unexpected tree %s", out.String())
	}
}

func TestRunParseSyntaxError(t *testing.T) {
	var out bytes.Buffer
	err := runParse([]string{"-name", "broken.html", "-"}, strings.NewReader(`<p>`), &out)

	var synErr *markup.SyntaxError
	if !errors.As(err, &synErr) {
		t.Fatalf("expected syntax error, got %v", err)
	}
	if synErr.Name != "broken.html" {
		t.Fatalf("expected name broken.html, got %q", synErr.Name)
	}
	if out.Len() != 0 {
		t.Fatalf("expected no output, got %q", out.String())
	}
}

func TestRunParseArgs(t *testing.T) {
	if err := runParse(nil, strings.NewReader(""), &bytes.Buffer{}); err == nil {
		t.Fatalf("expected missing argument error")
	}
}
