package provider

import (
	"fmt"
	"sort"
	"sync"
)

// Registry manages named provider factories and cached instances.
type Registry[T Provider, C any] struct {
	mu        sync.RWMutex
	factories map[string]Factory[T, C]
	instances map[string]T
}

// NewRegistry creates a new empty Registry.
func NewRegistry[T Provider, C any]() *Registry[T, C] {
	return &Registry[T, C]{
		factories: make(map[string]Factory[T, C]),
		instances: make(map[string]T),
	}
}

// RegisterFactory registers a named factory for creating providers.
func (r *Registry[T, C]) RegisterFactory(name string, factory Factory[T, C]) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = factory
}

// Create instantiates a provider using the named factory and config.
func (r *Registry[T, C]) Create(name string, cfg C) (T, error) {
	r.mu.RLock()
	factory, ok := r.factories[name]
	r.mu.RUnlock()
	if !ok {
		var zero T
		return zero, fmt.Errorf("provider factory %q not registered (available: %v)", name, r.List())
	}
	return factory(cfg)
}

// Build returns the cached instance for name, creating and caching it on
// first use.
func (r *Registry[T, C]) Build(name string, cfg C) (T, error) {
	if inst, ok := r.Get(name); ok {
		return inst, nil
	}
	inst, err := r.Create(name, cfg)
	if err != nil {
		var zero T
		return zero, err
	}
	r.Set(name, inst)
	return inst, nil
}

// Get returns a cached provider instance by name.
func (r *Registry[T, C]) Get(name string) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	inst, ok := r.instances[name]
	return inst, ok
}

// Set caches a provider instance by name.
func (r *Registry[T, C]) Set(name string, instance T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.instances[name] = instance
}

// List returns sorted names of all registered factories.
func (r *Registry[T, C]) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
