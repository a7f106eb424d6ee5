package schema

import "fmt"

// ValueRange bounds every dimension value a schema accepts.
type ValueRange struct {
	Low  float64 `yaml:"low" json:"low"`
	High float64 `yaml:"high" json:"high"`
}

// Schema declares a named, ordered set of recognized dimension
// identifiers. Dimension order is significant: resolution output lists
// ancestor dimensions first, each in declared order.
type Schema struct {
	// Name identifies the schema, unique within a registry.
	Name string

	// Dimensions lists the recognized identifiers in declaration order.
	Dimensions []string

	// Required is the subset of Dimensions that must be present for a
	// value mapping to validate.
	Required []string

	// ValueRange bounds dimension values. Defaults to [0,1].
	ValueRange ValueRange

	// Inherits names a parent schema, resolved lazily by the registry.
	Inherits string
}

// Option configures a Schema under construction.
type Option func(*Schema)

// WithDimensions sets the recognized dimension identifiers, in order.
func WithDimensions(dims ...string) Option {
	return func(s *Schema) { s.Dimensions = dims }
}

// WithRequired marks dimensions that must be present to validate.
func WithRequired(names ...string) Option {
	return func(s *Schema) { s.Required = names }
}

// WithValueRange overrides the default [0,1] value bounds.
func WithValueRange(low, high float64) Option {
	return func(s *Schema) { s.ValueRange = ValueRange{Low: low, High: high} }
}

// WithInherits names the parent schema to inherit dimensions from.
func WithInherits(parent string) Option {
	return func(s *Schema) { s.Inherits = parent }
}

// New constructs a schema, enforcing the construction invariants: a
// non-empty name, an ordered value range, and required ⊆ dimensions.
func New(name string, opts ...Option) (*Schema, error) {
	s := &Schema{
		Name:       name,
		ValueRange: ValueRange{Low: 0.0, High: 1.0},
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Schema) validate() error {
	if s.Name == "" {
		return fmt.Errorf("schema name must not be empty")
	}
	if s.ValueRange.Low >= s.ValueRange.High {
		return fmt.Errorf("schema %s: value range low (%v) must be less than high (%v)",
			s.Name, s.ValueRange.Low, s.ValueRange.High)
	}
	known := make(map[string]bool, len(s.Dimensions))
	for _, dim := range s.Dimensions {
		if dim == "" {
			return fmt.Errorf("schema %s: dimension name must not be empty", s.Name)
		}
		known[dim] = true
	}
	for _, req := range s.Required {
		if !known[req] {
			return fmt.Errorf("schema %s: required dimension %q not in dimensions", s.Name, req)
		}
	}
	return nil
}

// Has reports whether the schema recognizes the dimension identifier.
func (s *Schema) Has(dimension string) bool {
	for _, dim := range s.Dimensions {
		if dim == dimension {
			return true
		}
	}
	return false
}

// ValidationResult is the soft outcome of checking a dimension mapping
// against a schema. Errors holds every violation found, in a stable
// order; Valid is true iff Errors is empty.
type ValidationResult struct {
	Valid  bool
	Errors []string
}

func (r *ValidationResult) addError(format string, args ...any) {
	r.Valid = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}
