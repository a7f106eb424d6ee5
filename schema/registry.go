package schema

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// Sentinel errors for registry failures.
var (
	// ErrParentNotRegistered is returned when a schema declares a
	// parent that the registry does not hold yet.
	ErrParentNotRegistered = errors.New("parent schema not registered")

	// ErrSchemaNotFound is returned by Resolve for unknown names.
	ErrSchemaNotFound = errors.New("schema not registered")

	// ErrCircularInheritance is returned when Resolve revisits a name
	// while walking an inheritance chain.
	ErrCircularInheritance = errors.New("circular inheritance detected")
)

// Recorder observes registry activity, typically for metrics.
// Implementations must be safe for concurrent use.
type Recorder interface {
	SchemaRegistered(name string)
	Validated(schemaName string, valid bool)
	ResolveFailed(schemaName string)
}

// Registry is a named store of dimension schemas. All methods are safe
// for concurrent use; reads take a shared lock, mutations an exclusive
// one.
type Registry struct {
	mu       sync.RWMutex
	schemas  map[string]*Schema
	recorder Recorder
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{schemas: make(map[string]*Schema)}
}

// SetRecorder attaches an activity recorder. Pass nil to detach.
func (r *Registry) SetRecorder(rec Recorder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recorder = rec
}

func (r *Registry) getRecorder() Recorder {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.recorder
}

// Register stores a schema, overwriting any existing schema of the same
// name. A schema naming a parent can only be registered after that
// parent; otherwise Register fails with ErrParentNotRegistered.
func (r *Registry) Register(s *Schema) error {
	if s == nil {
		return fmt.Errorf("schema must not be nil")
	}
	if err := s.validate(); err != nil {
		return err
	}

	r.mu.Lock()
	if s.Inherits != "" {
		if _, ok := r.schemas[s.Inherits]; !ok {
			r.mu.Unlock()
			return fmt.Errorf("register %s: parent %q: %w", s.Name, s.Inherits, ErrParentNotRegistered)
		}
	}
	r.schemas[s.Name] = s
	rec := r.recorder
	r.mu.Unlock()

	if rec != nil {
		rec.SchemaRegistered(s.Name)
	}
	return nil
}

// Get returns the schema by name, or nil when absent. Never fails.
func (r *Registry) Get(name string) *Schema {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.schemas[name]
}

// Unregister removes a schema, reporting whether it was present.
func (r *Registry) Unregister(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.schemas[name]
	delete(r.schemas, name)
	return ok
}

// List returns all registered schemas ordered by name, ascending.
func (r *Registry) List() []*Schema {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Schema, 0, len(r.schemas))
	for _, s := range r.schemas {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Resolve computes a schema's effective dimension and required sets by
// walking its inheritance chain. Ancestor dimensions come first in their
// declared order; each descendant appends only the dimensions not
// already included. Required sets union across the chain. A revisited
// name fails with ErrCircularInheritance; an unknown name with
// ErrSchemaNotFound.
func (r *Registry) Resolve(name string) (*Schema, error) {
	r.mu.RLock()
	resolved, err := r.resolveLocked(name)
	rec := r.recorder
	r.mu.RUnlock()

	if err != nil && rec != nil {
		rec.ResolveFailed(name)
	}
	return resolved, err
}

func (r *Registry) resolveLocked(name string) (*Schema, error) {
	var chain []*Schema
	visited := make(map[string]bool)
	for current := name; current != ""; {
		if visited[current] {
			return nil, fmt.Errorf("resolve %s: %w", name, ErrCircularInheritance)
		}
		visited[current] = true
		s, ok := r.schemas[current]
		if !ok {
			return nil, fmt.Errorf("resolve %s: schema %q: %w", name, current, ErrSchemaNotFound)
		}
		chain = append(chain, s)
		current = s.Inherits
	}

	// No parent: the schema resolves to itself unchanged.
	if len(chain) == 1 {
		return chain[0], nil
	}

	resolved := &Schema{
		Name:       name,
		ValueRange: chain[0].ValueRange,
	}
	seen := make(map[string]bool)
	for i := len(chain) - 1; i >= 0; i-- {
		for _, dim := range chain[i].Dimensions {
			if !seen[dim] {
				seen[dim] = true
				resolved.Dimensions = append(resolved.Dimensions, dim)
			}
		}
	}
	required := make(map[string]bool)
	for i := len(chain) - 1; i >= 0; i-- {
		for _, req := range chain[i].Required {
			if !required[req] {
				required[req] = true
				resolved.Required = append(resolved.Required, req)
			}
		}
	}
	return resolved, nil
}

// Validate checks a dimension mapping against a named schema. It never
// fails for data-shape problems: every violation found in one pass
// (unknown dimensions, missing required dimensions, out-of-range values)
// lands in the returned ValidationResult. An unknown or unresolvable
// schema name is reported as a single soft error.
func (r *Registry) Validate(schemaName string, values map[string]float64) *ValidationResult {
	result := &ValidationResult{Valid: true}

	resolved, err := r.Resolve(schemaName)
	if err != nil {
		result.addError("cannot resolve schema %q: %v", schemaName, err)
		if rec := r.getRecorder(); rec != nil {
			rec.Validated(schemaName, false)
		}
		return result
	}

	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if !resolved.Has(name) {
			result.addError("Unknown dimension: %s", name)
		}
	}
	for _, req := range resolved.Required {
		if _, ok := values[req]; !ok {
			result.addError("Missing required dimension: %s", req)
		}
	}
	low, high := resolved.ValueRange.Low, resolved.ValueRange.High
	for _, name := range names {
		if value := values[name]; value < low || value > high {
			result.addError("Dimension %s value %v out of range [%v, %v]", name, value, low, high)
		}
	}

	if rec := r.getRecorder(); rec != nil {
		rec.Validated(schemaName, result.Valid)
	}
	return result
}
