package render

import (
	"maps"
	"path"
	"slices"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// ThemeConfig flattens a theme selection into renderer configuration. Variant
// tokens, templates and asset files override the base manifest; partials not
// provided by either fall back to fallbacks. It returns nil when sel is nil.
func ThemeConfig(sel *theme.Selection, fallbacks map[string]string) *theme.RendererConfig {
	if sel == nil {
		return nil
	}
	cfg := &theme.RendererConfig{
		Theme:    sel.Theme,
		Variant:  sel.Variant,
		Partials: maps.Clone(fallbacks),
		Tokens:   map[string]string{},
	}
	if cfg.Partials == nil {
		cfg.Partials = map[string]string{}
	}

	prefix := ""
	files := map[string]string{}
	if m := sel.Manifest; m != nil {
		if cfg.Theme == "" {
			cfg.Theme = m.Name
		}
		maps.Copy(cfg.Tokens, m.Tokens)
		maps.Copy(cfg.Partials, m.Templates)
		prefix = m.Assets.Prefix
		maps.Copy(files, m.Assets.Files)
		if v, ok := m.Variants[sel.Variant]; ok {
			maps.Copy(cfg.Tokens, v.Tokens)
			maps.Copy(cfg.Partials, v.Templates)
			if v.Assets.Prefix != "" {
				prefix = v.Assets.Prefix
			}
			maps.Copy(files, v.Assets.Files)
		}
	}

	cfg.CSSVars = CSSVars(cfg.Tokens)
	cfg.AssetURL = func(key string) string {
		file, ok := files[key]
		if !ok || file == "" {
			return ""
		}
		if prefix == "" || strings.Contains(file, "://") || strings.HasPrefix(file, "/") {
			return file
		}
		return path.Join(prefix, file)
	}
	return cfg
}

// CSSVars maps theme tokens to CSS custom property names.
func CSSVars(tokens map[string]string) map[string]string {
	if len(tokens) == 0 {
		return nil
	}
	out := make(map[string]string, len(tokens))
	for key, value := range tokens {
		name := strings.TrimSpace(key)
		if name == "" {
			continue
		}
		if !strings.HasPrefix(name, "--") {
			name = "--" + name
		}
		out[name] = value
	}
	return out
}

// CSSVarsStyle renders vars as a declaration list for a :root rule, sorted by
// name.
func CSSVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	var b strings.Builder
	for _, name := range slices.Sorted(maps.Keys(vars)) {
		b.WriteString(name)
		b.WriteString(": ")
		b.WriteString(vars[name])
		b.WriteString(";")
	}
	return b.String()
}
