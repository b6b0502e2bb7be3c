package filter

import (
	"fmt"
	"slices"
	"strings"
)

// Registry holds the named filter presets from configuration, compiled
// once up front so a broken preset surfaces at startup instead of at use.
type Registry struct {
	compiler Compiler
	presets  map[string]CompiledFilter
}

// NewRegistry compiles the given presets. A preset that fails to compile
// fails the whole registry, naming the offender.
func NewRegistry(presets map[string]string) (*Registry, error) {
	r := &Registry{
		compiler: NewExprCompiler(),
		presets:  make(map[string]CompiledFilter, len(presets)),
	}
	for name, expression := range presets {
		compiled, err := r.compiler.Compile(expression)
		if err != nil {
			return nil, fmt.Errorf("failed to compile preset '%s': %w", name, err)
		}
		r.presets[name] = compiled
	}
	return r, nil
}

// Compile compiles a one-off expression with the registry's compiler.
func (r *Registry) Compile(expression string) (CompiledFilter, error) {
	return r.compiler.Compile(expression)
}

// Get returns a preset by name.
func (r *Registry) Get(name string) (CompiledFilter, error) {
	filter, ok := r.presets[name]
	if !ok {
		names := r.Names()
		if len(names) == 0 {
			return nil, fmt.Errorf("filter preset '%s' not found: no presets configured", name)
		}
		return nil, fmt.Errorf("filter preset '%s' not found (available: %s)", name, strings.Join(names, ", "))
	}
	return filter, nil
}

// Names returns all registered preset names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.presets))
	for name := range r.presets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
