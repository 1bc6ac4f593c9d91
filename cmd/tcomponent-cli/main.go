package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/goliatone/go-tcomponent/internal/prompt"
	"github.com/goliatone/go-tcomponent/pkg/markup"
	"github.com/goliatone/go-tcomponent/pkg/orchestrator"
	"github.com/goliatone/go-tcomponent/pkg/render"
)

const usage = `usage:
  tcomponent-cli parse [-name label] <file|->
  tcomponent-cli render -manifest <dir> [flags]`

func main() {
	log.SetFlags(0)
	log.SetPrefix("tcomponent: ")

	if len(os.Args) < 2 {
		log.Fatal(usage)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var err error
	switch os.Args[1] {
	case "parse":
		err = runParse(os.Args[2:], os.Stdin, os.Stdout)
	case "render":
		err = runRender(ctx, os.Args[2:])
	case "-h", "-help", "--help", "help":
		fmt.Println(usage)
		return
	default:
		log.Fatalf("unknown command %q\n%s", os.Args[1], usage)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func runParse(args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("parse", flag.ExitOnError)
	name := fs.String("name", "", "name reported in syntax errors (defaults to the file path)")
	fs.Parse(args)

	if fs.NArg() != 1 {
		return errors.New("parse expects exactly one file argument")
	}
	path := fs.Arg(0)

	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return fmt.Errorf("read template: %w", err)
	}

	label := *name
	if label == "" && path != "-" {
		label = path
	}
	node, err := markup.ParseNamed(label, string(data))
	if err != nil {
		return err
	}
	out, err := markup.MarshalNode(node)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout, string(out))
	return err
}

type renderFlags struct {
	manifest    string
	component   string
	renderer    string
	title       string
	lang        string
	class       string
	preset      string
	output      string
	sanitize    bool
	watch       bool
	interactive bool
}

func runRender(ctx context.Context, args []string) error {
	var f renderFlags
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	fs.StringVar(&f.manifest, "manifest", "", "directory holding component manifests (required)")
	fs.StringVar(&f.component, "component", "", "component to render")
	fs.StringVar(&f.renderer, "renderer", "", "renderer to use (html, page)")
	fs.StringVar(&f.title, "title", "", "document title for the page renderer")
	fs.StringVar(&f.lang, "lang", "", "document language for the page renderer")
	fs.StringVar(&f.class, "class", "", "extra classes merged onto the root element")
	fs.StringVar(&f.preset, "preset", "", "JSON preset applied to the component before rendering")
	fs.StringVar(&f.output, "output", "", "output file (stdout if empty)")
	fs.BoolVar(&f.sanitize, "sanitize", false, "sanitize HTML output")
	fs.BoolVar(&f.watch, "watch", false, "render again whenever a manifest changes")
	fs.BoolVar(&f.interactive, "i", false, "choose the request interactively")
	fs.Parse(args)

	if strings.TrimSpace(f.manifest) == "" {
		return errors.New("render requires -manifest")
	}

	req := orchestrator.Request{
		Component: f.component,
		Renderer:  f.renderer,
		RenderOptions: render.RenderOptions{
			Title:    f.title,
			Lang:     f.lang,
			Sanitize: f.sanitize,
		},
	}
	if f.class != "" {
		req.Attributes = markup.Attributes{"class": f.class}
	}

	if f.interactive {
		gen, err := newOrchestrator(f)
		if err != nil {
			return err
		}
		req, err = prompt.Ask(ctx, prompt.NewSurveyDriver(), gen.Components(), gen.Renderers(), req)
		if err != nil {
			return err
		}
	}
	if req.Component == "" {
		return errors.New("render requires -component (or -i)")
	}

	if err := renderOnce(ctx, f, req); err != nil {
		if !f.watch {
			return err
		}
		log.Print(err)
	}
	if !f.watch {
		return nil
	}
	return watch(ctx, f.manifest, func() {
		if err := renderOnce(ctx, f, req); err != nil {
			log.Print(err)
		}
	})
}

func newOrchestrator(f renderFlags) (*orchestrator.Orchestrator, error) {
	options := []orchestrator.Option{
		orchestrator.WithManifestFS(os.DirFS(f.manifest)),
	}
	if f.preset != "" {
		data, err := os.ReadFile(f.preset)
		if err != nil {
			return nil, fmt.Errorf("read preset: %w", err)
		}
		preset, err := orchestrator.NewJSONPresetTransformer(data)
		if err != nil {
			return nil, err
		}
		options = append(options, orchestrator.WithTransformer(preset))
	}
	return orchestrator.New(options...), nil
}

// renderOnce reloads the manifests so watch mode sees every edit.
func renderOnce(ctx context.Context, f renderFlags, req orchestrator.Request) error {
	gen, err := newOrchestrator(f)
	if err != nil {
		return err
	}
	out, err := gen.Generate(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to render component: %w", err)
	}

	if f.output == "" {
		fmt.Println(string(out))
		return nil
	}
	if err := os.WriteFile(f.output, out, 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	log.Printf("%s written to %s", req.Component, f.output)
	return nil
}
