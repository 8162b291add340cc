package source

import "github.com/rotisserie/eris"

// Registry maps source keys to their adapters.
type Registry struct {
	adapters map[string]Adapter
	order    []string // insertion order for deterministic iteration
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		adapters: make(map[string]Adapter),
	}
}

// Register adds an adapter to the registry.
func (r *Registry) Register(a Adapter) {
	key := a.Key()
	r.adapters[key] = a
	r.order = append(r.order, key)
}

// Get returns an adapter by key.
func (r *Registry) Get(key string) (Adapter, error) {
	a, ok := r.adapters[key]
	if !ok {
		return nil, eris.Errorf("source: unknown source %q", key)
	}
	return a, nil
}

// Enabled returns the adapters selected by the enabled map, in registration
// order. A nil or empty map selects every registered adapter; otherwise only
// keys mapped to true are returned. Unknown keys in the map are an error so
// that a typo in configuration does not silently drop a source.
func (r *Registry) Enabled(enabled map[string]bool) ([]Adapter, error) {
	if len(enabled) == 0 {
		return r.All(), nil
	}
	for key := range enabled {
		if _, ok := r.adapters[key]; !ok {
			return nil, eris.Errorf("source: unknown source %q", key)
		}
	}
	var result []Adapter
	for _, key := range r.order {
		if enabled[key] {
			result = append(result, r.adapters[key])
		}
	}
	return result, nil
}

// All returns all adapters in registration order.
func (r *Registry) All() []Adapter {
	result := make([]Adapter, 0, len(r.order))
	for _, key := range r.order {
		result = append(result, r.adapters[key])
	}
	return result
}

// AllKeys returns all registered source keys in registration order.
func (r *Registry) AllKeys() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}
