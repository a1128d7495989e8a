package registry

import (
	"fmt"
	"strings"

	"github.com/compiling-org/WGSL-Shader-Studio-sub002/shader"
)

// CircularDependencyError reports an import cycle. Cycle is the exact
// path, starting and ending at the repeated identity.
type CircularDependencyError struct {
	Cycle []shader.ModuleIdentity
}

// Error implements error.
func (e *CircularDependencyError) Error() string {
	parts := make([]string, len(e.Cycle))
	for i, id := range e.Cycle {
		parts[i] = string(id)
	}
	return "registry: circular dependency: " + strings.Join(parts, " -> ")
}

// ResolveImports maps each of m's import strings to a module identity
// through the alias table, falling back to the literal string when no
// alias is registered.
func (r *Registry) ResolveImports(m *shader.Module) []shader.ImportResolution {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]shader.ImportResolution, 0, len(m.Imports))
	for _, imp := range m.Imports {
		res := shader.ImportResolution{Identity: imp, Path: string(imp)}
		if target, ok := r.aliases[string(imp)]; ok {
			res.Identity = target
			res.Alias = string(imp)
		}
		out = append(out, res)
	}
	return out
}

// CollectDependencies walks m's imports depth first and returns every
// reachable module in dependency-first order, with m itself last.
// Concatenating sources in this order keeps cross-module references
// defined.
//
// Imports that resolve to no cached module are skipped unless the
// registry is strict; editing workflows load modules incrementally and
// expect partial graphs to resolve. A cycle is never silently broken:
// it fails the whole call with the cycle path.
func (r *Registry) CollectDependencies(m *shader.Module) ([]*shader.Module, error) {
	visited := make(map[shader.ModuleIdentity]bool)
	var stack []shader.ModuleIdentity
	var out []*shader.Module

	var walk func(mod *shader.Module) error
	walk = func(mod *shader.Module) error {
		for i, id := range stack {
			if id == mod.Identity {
				cycle := append(append([]shader.ModuleIdentity{}, stack[i:]...), mod.Identity)
				return &CircularDependencyError{Cycle: cycle}
			}
		}
		if visited[mod.Identity] {
			return nil
		}
		stack = append(stack, mod.Identity)
		for _, res := range r.ResolveImports(mod) {
			dep, err := r.Get(res.Identity)
			if err != nil {
				if r.opts.Strict {
					return fmt.Errorf("registry: import %q of %q: %w", res.Path, mod.Identity, err)
				}
				continue
			}
			if err := walk(dep); err != nil {
				return err
			}
		}
		stack = stack[:len(stack)-1]
		visited[mod.Identity] = true
		out = append(out, mod)
		return nil
	}

	if err := walk(m); err != nil {
		return nil, err
	}
	return out, nil
}
