package polytrans

import (
	"fmt"
	"sort"
	"strings"
)

// Registry maps provider names to adapters. It is built once and never mutated,
// so lookups need no locking.
type Registry struct {
	adapters map[string]Adapter
	names    []string
}

// NewRegistry builds a registry. Names are normalized (trimmed, lowercased) and must
// be unique and non-empty.
func NewRegistry(adapters ...Adapter) (*Registry, error) {
	r := &Registry{adapters: make(map[string]Adapter, len(adapters))}
	for _, a := range adapters {
		if a == nil {
			return nil, fmt.Errorf("adapter is nil")
		}
		name := normalizeProviderName(a.Name())
		if name == "" {
			return nil, fmt.Errorf("adapter name is required")
		}
		if _, exists := r.adapters[name]; exists {
			return nil, fmt.Errorf("adapter %q registered twice", name)
		}
		r.adapters[name] = a
		r.names = append(r.names, name)
	}
	sort.Strings(r.names)
	return r, nil
}

// Adapter resolves a provider by name.
func (r *Registry) Adapter(name string) (Adapter, error) {
	resolved := normalizeProviderName(name)
	if r != nil {
		if a, ok := r.adapters[resolved]; ok {
			return a, nil
		}
	}
	return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownProvider, resolved, strings.Join(r.Names(), ", "))
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, err := r.Adapter(name)
	return err == nil
}

// Names returns the sorted provider names.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	return append([]string(nil), r.names...)
}

// Len returns the number of registered adapters.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.names)
}

func normalizeProviderName(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
