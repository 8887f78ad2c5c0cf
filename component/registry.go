package component

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/kbukum/voicecheck/logger"
)

// DefaultStopTimeout bounds each component's Stop call.
const DefaultStopTimeout = 10 * time.Second

// componentEntry holds a component and its started state.
type componentEntry struct {
	component Component
	started   bool
}

// Registry manages component lifecycle with deterministic ordering.
type Registry struct {
	mu      sync.RWMutex
	entries []*componentEntry
	lookup  map[string]*componentEntry
}

// NewRegistry creates a new component registry.
func NewRegistry() *Registry {
	return &Registry{lookup: make(map[string]*componentEntry)}
}

// Register adds a component. Register dependencies first.
func (r *Registry) Register(c Component) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := c.Name()
	if _, exists := r.lookup[name]; exists {
		return fmt.Errorf("component %s already registered", name)
	}
	entry := &componentEntry{component: c}
	r.entries = append(r.entries, entry)
	r.lookup[name] = entry

	logger.Debug("Component registered", logger.Fields(logger.FieldComponent, name))
	return nil
}

// StartAll starts all components in registration order. It stops at the
// first failure; components started before it stay started so StopAll can
// release them.
func (r *Registry) StartAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, entry := range r.entries {
		name := entry.component.Name()
		if err := entry.component.Start(ctx); err != nil {
			logger.Error("Component start failed", logger.MergeWithError(
				logger.Fields(logger.FieldComponent, name), err))
			return fmt.Errorf("failed to start %s: %w", name, err)
		}
		entry.started = true
		logger.Debug("Component started", logger.Fields(logger.FieldComponent, name))
	}
	logger.Info("All components started", logger.Fields("count", len(r.entries)))
	return nil
}

// StopAll stops started components in reverse registration order.
func (r *Registry) StopAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var errs []error
	for i := len(r.entries) - 1; i >= 0; i-- {
		entry := r.entries[i]
		if !entry.started {
			continue
		}
		name := entry.component.Name()

		stopCtx, cancel := context.WithTimeout(ctx, DefaultStopTimeout)
		err := entry.component.Stop(stopCtx)
		cancel()
		entry.started = false

		if err != nil {
			errs = append(errs, fmt.Errorf("failed to stop %s: %w", name, err))
			logger.Error("Component stop failed", logger.MergeWithError(
				logger.Fields(logger.FieldComponent, name), err))
			continue
		}
		logger.Info("Component stopped", logger.Fields(logger.FieldComponent, name))
	}
	return errors.Join(errs...)
}

// HealthAll returns health status for all registered components.
func (r *Registry) HealthAll(ctx context.Context) []Health {
	r.mu.RLock()
	defer r.mu.RUnlock()

	results := make([]Health, 0, len(r.entries))
	for _, entry := range r.entries {
		results = append(results, entry.component.Health(ctx))
	}
	return results
}

// Get returns a registered component by name, or nil if not found.
func (r *Registry) Get(name string) Component {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if entry, exists := r.lookup[name]; exists {
		return entry.component
	}
	return nil
}

// All returns all registered components in registration order.
func (r *Registry) All() []Component {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Component, 0, len(r.entries))
	for _, entry := range r.entries {
		result = append(result, entry.component)
	}
	return result
}

// Overall folds component health into one status: unhealthy if any
// component is unhealthy, degraded if any is degraded.
func Overall(results []Health) HealthStatus {
	status := StatusHealthy
	for _, h := range results {
		switch h.Status {
		case StatusUnhealthy:
			return StatusUnhealthy
		case StatusDegraded:
			status = StatusDegraded
		}
	}
	return status
}
