package component

import (
	"fmt"
	"sort"
	"sync"
)

// Registry stores definitions by name.
type Registry struct {
	mu   sync.RWMutex
	defs map[string]*Definition
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		defs: make(map[string]*Definition),
	}
}

// Register adds a definition by its Name. Duplicate names return an error.
func (r *Registry) Register(def *Definition) error {
	if def == nil {
		return errNilDefinition
	}
	if def.Name == "" {
		return fmt.Errorf("component: definition name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.defs[def.Name]; exists {
		return fmt.Errorf("component: definition %q already registered", def.Name)
	}
	r.defs[def.Name] = def
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(def *Definition) {
	if err := r.Register(def); err != nil {
		panic(err)
	}
}

// Get retrieves a definition by name.
func (r *Registry) Get(name string) (*Definition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	def, ok := r.defs[name]
	if !ok {
		return nil, fmt.Errorf("component: definition %q not found", name)
	}
	return def, nil
}

// MustGet panics if the definition is missing.
func (r *Registry) MustGet(name string) *Definition {
	def, err := r.Get(name)
	if err != nil {
		panic(err)
	}
	return def
}

// List returns a sorted list of definition names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.defs))
	for name := range r.defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether a definition is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.defs[name]
	return ok
}

// Uses returns the named definitions keyed by name, for use as a
// Definition's Uses table.
func (r *Registry) Uses(names ...string) (Uses, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	uses := make(Uses, len(names))
	for _, name := range names {
		def, ok := r.defs[name]
		if !ok {
			return nil, fmt.Errorf("component: definition %q not found", name)
		}
		uses[name] = def
	}
	return uses, nil
}
