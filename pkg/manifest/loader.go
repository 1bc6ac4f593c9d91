package manifest

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-tcomponent/pkg/builder"
	"github.com/goliatone/go-tcomponent/pkg/component"
)

// Option customises LoadFS.
type Option func(*config)

type config struct {
	registry     *component.Registry
	constructors builder.Uses
}

// WithRegistry loads definitions into reg instead of a new registry.
func WithRegistry(reg *component.Registry) Option {
	return func(cfg *config) {
		if reg != nil {
			cfg.registry = reg
		}
	}
}

// WithConstructors makes plain constructors available to the uses lists of
// manifest components.
func WithConstructors(uses builder.Uses) Option {
	return func(cfg *config) {
		if cfg.constructors == nil {
			cfg.constructors = make(builder.Uses, len(uses))
		}
		for name, fn := range uses {
			cfg.constructors[name] = fn
		}
	}
}

type documentFile struct {
	Components map[string]componentFile `json:"components" yaml:"components"`
}

type componentFile struct {
	Template     string   `json:"template" yaml:"template"`
	TemplateFile string   `json:"templateFile" yaml:"templateFile"`
	Uses         []string `json:"uses" yaml:"uses"`
}

type entry struct {
	def    *component.Definition
	uses   []string
	source string
}

// LoadFS walks fsys and registers every component declared in *.json,
// *.yaml and *.yml files. When fsys is nil or holds no manifests the returned
// registry is empty.
func LoadFS(fsys fs.FS, opts ...Option) (*component.Registry, error) {
	cfg := config{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.registry == nil {
		cfg.registry = component.NewRegistry()
	}
	if fsys == nil {
		return cfg.registry, nil
	}

	entries := make(map[string]*entry)
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || !isManifestFile(p) {
			return nil
		}

		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("manifest: read %s: %w", p, err)
		}
		doc, err := parseDocument(data, p)
		if err != nil {
			return err
		}

		for rawName, raw := range doc.Components {
			name := strings.TrimSpace(rawName)
			if name == "" {
				return fmt.Errorf("manifest: file %s defines an empty component name", p)
			}
			if existing, ok := entries[name]; ok {
				return fmt.Errorf("manifest: duplicate component %q (files %s and %s)", name, existing.source, p)
			}
			if cfg.registry.Has(name) {
				return fmt.Errorf("manifest: component %q (file %s) is already registered", name, p)
			}
			e, err := newEntry(fsys, name, raw, p)
			if err != nil {
				return err
			}
			entries[name] = e
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := resolveUses(entries, cfg); err != nil {
		return nil, err
	}
	if err := checkCycles(entries); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		e := entries[name]
		if _, err := e.def.Parsed(); err != nil {
			return nil, fmt.Errorf("manifest: component %q (file %s): %w", name, e.source, err)
		}
		if err := cfg.registry.Register(e.def); err != nil {
			return nil, fmt.Errorf("manifest: %w", err)
		}
	}
	return cfg.registry, nil
}

func newEntry(fsys fs.FS, name string, raw componentFile, source string) (*entry, error) {
	template := raw.Template
	if raw.TemplateFile != "" {
		if strings.TrimSpace(template) != "" {
			return nil, fmt.Errorf("manifest: component %q (file %s) sets both template and templateFile", name, source)
		}
		file := path.Join(path.Dir(source), raw.TemplateFile)
		data, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("manifest: component %q (file %s): read template %s: %w", name, source, file, err)
		}
		template = string(data)
	}
	uses := make([]string, 0, len(raw.Uses))
	for _, use := range raw.Uses {
		if use = strings.TrimSpace(use); use != "" {
			uses = append(uses, use)
		}
	}
	return &entry{
		def:    &component.Definition{Name: name, Template: template},
		uses:   uses,
		source: source,
	}, nil
}

func resolveUses(entries map[string]*entry, cfg config) error {
	for name, e := range entries {
		for _, use := range e.uses {
			if target, ok := entries[use]; ok {
				if e.def.Uses == nil {
					e.def.Uses = make(component.Uses)
				}
				e.def.Uses[use] = target.def
				continue
			}
			if def, err := cfg.registry.Get(use); err == nil {
				if e.def.Uses == nil {
					e.def.Uses = make(component.Uses)
				}
				e.def.Uses[use] = def
				continue
			}
			if fn, ok := cfg.constructors[use]; ok {
				if e.def.Constructors == nil {
					e.def.Constructors = make(builder.Uses)
				}
				e.def.Constructors[use] = fn
				continue
			}
			return fmt.Errorf("manifest: component %q (file %s) uses unknown component %q", name, e.source, use)
		}
	}
	return nil
}

// checkCycles rejects components that can reach themselves through uses,
// which would never finish building.
func checkCycles(entries map[string]*entry) error {
	const (
		visiting = 1
		done     = 2
	)
	state := make(map[string]int, len(entries))
	var visit func(name string, trail []string) error
	visit = func(name string, trail []string) error {
		switch state[name] {
		case visiting:
			return fmt.Errorf("manifest: component cycle %s", strings.Join(append(trail, name), " -> "))
		case done:
			return nil
		}
		state[name] = visiting
		for _, use := range entries[name].uses {
			if _, ok := entries[use]; !ok {
				continue
			}
			if err := visit(use, append(trail, name)); err != nil {
				return err
			}
		}
		state[name] = done
		return nil
	}

	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		if err := visit(name, nil); err != nil {
			return err
		}
	}
	return nil
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("manifest: file %s is empty", source)
	}
	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return documentFile{}, fmt.Errorf("manifest: parse %s: %w", source, err)
	}
	return doc, nil
}

func isManifestFile(p string) bool {
	switch strings.ToLower(filepath.Ext(p)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
