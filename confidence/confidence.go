package confidence

import (
	"encoding/json"
	"fmt"
	"math"
)

// DefaultSchema is the schema name assumed when a confidence value does
// not declare one. It is omitted from serialized form.
const DefaultSchema = "v1.confidence.core"

// Canonical dimension identifiers. These six make up the core confidence
// schema; arbitrary additional names are allowed in the sparse mapping.
const (
	// DimSourceReliability scores how trustworthy the originating source is.
	DimSourceReliability = "source_reliability"

	// DimMethodQuality scores the quality of the extraction or judgment method.
	DimMethodQuality = "method_quality"

	// DimInternalConsistency scores agreement with other held assertions.
	DimInternalConsistency = "internal_consistency"

	// DimTemporalFreshness scores how recent the supporting evidence is.
	// Decay operates on this dimension when present.
	DimTemporalFreshness = "temporal_freshness"

	// DimCorroboration scores independent supporting evidence.
	DimCorroboration = "corroboration"

	// DimDomainApplicability scores how well the source's domain matches
	// the assertion's domain.
	DimDomainApplicability = "domain_applicability"
)

// DimensionalConfidence is a confidence score decomposed into named
// dimensions. The zero value is not usable; build instances through the
// constructors so the range invariant holds.
type DimensionalConfidence struct {
	overall    float64
	dimensions map[string]float64
	schemaName string
}

func checkRange(field string, value float64) error {
	if value < 0 || value > 1 {
		return fmt.Errorf("%s must be between 0 and 1, got %v", field, value)
	}
	return nil
}

func meanOf(dims map[string]float64) float64 {
	if len(dims) == 0 {
		return 0.5
	}
	sum := 0.0
	for _, v := range dims {
		sum += v
	}
	return sum / float64(len(dims))
}

// New creates a confidence value with the default schema. The dims map is
// copied; later changes to the caller's map do not affect the instance.
func New(overall float64, dims map[string]float64) (*DimensionalConfidence, error) {
	return NewWithSchema(overall, dims, DefaultSchema)
}

// NewWithSchema creates a confidence value declaring which dimension
// schema its names conform to. An empty schemaName means DefaultSchema.
func NewWithSchema(overall float64, dims map[string]float64, schemaName string) (*DimensionalConfidence, error) {
	if err := checkRange("overall", overall); err != nil {
		return nil, err
	}
	copied := make(map[string]float64, len(dims))
	for name, value := range dims {
		if name == "" {
			return nil, fmt.Errorf("dimension name must not be empty")
		}
		if err := checkRange(name, value); err != nil {
			return nil, err
		}
		copied[name] = value
	}
	if schemaName == "" {
		schemaName = DefaultSchema
	}
	return &DimensionalConfidence{
		overall:    overall,
		dimensions: copied,
		schemaName: schemaName,
	}, nil
}

// Simple creates a confidence value with no dimension breakdown.
func Simple(overall float64) (*DimensionalConfidence, error) {
	return New(overall, nil)
}

// Full creates a confidence value scored on all six canonical dimensions.
// The overall score is the arithmetic mean of the six values.
func Full(sourceReliability, methodQuality, internalConsistency, temporalFreshness, corroboration, domainApplicability float64) (*DimensionalConfidence, error) {
	return FromDimensions(map[string]float64{
		DimSourceReliability:   sourceReliability,
		DimMethodQuality:       methodQuality,
		DimInternalConsistency: internalConsistency,
		DimTemporalFreshness:   temporalFreshness,
		DimCorroboration:       corroboration,
		DimDomainApplicability: domainApplicability,
	})
}

// FromDimensions creates a confidence value from an arbitrary dimension
// mapping, computing the overall score as the arithmetic mean of the
// values present. An empty mapping defaults overall to the neutral 0.5.
func FromDimensions(dims map[string]float64) (*DimensionalConfidence, error) {
	return New(meanOf(dims), dims)
}

// Overall returns the overall score.
func (c *DimensionalConfidence) Overall() float64 {
	return c.overall
}

// SchemaName returns the schema the dimension set conforms to.
func (c *DimensionalConfidence) SchemaName() string {
	return c.schemaName
}

// Dimension returns the named dimension's score, reporting whether it is
// present. Absent means unknown, not zero.
func (c *DimensionalConfidence) Dimension(name string) (float64, bool) {
	value, ok := c.dimensions[name]
	return value, ok
}

// HasDimension reports whether the named dimension is scored.
func (c *DimensionalConfidence) HasDimension(name string) bool {
	_, ok := c.dimensions[name]
	return ok
}

// Dimensions returns a copy of the dimension mapping.
func (c *DimensionalConfidence) Dimensions() map[string]float64 {
	out := make(map[string]float64, len(c.dimensions))
	for name, value := range c.dimensions {
		out[name] = value
	}
	return out
}

// SetDimension stores a dimension score in place after range-checking it.
func (c *DimensionalConfidence) SetDimension(name string, value float64) error {
	if name == "" {
		return fmt.Errorf("dimension name must not be empty")
	}
	if err := checkRange(name, value); err != nil {
		return err
	}
	c.dimensions[name] = value
	return nil
}

// ClearDimension removes a dimension entirely, returning it to unknown.
func (c *DimensionalConfidence) ClearDimension(name string) {
	delete(c.dimensions, name)
}

// Named read accessors for the canonical dimensions.

// SourceReliability returns the source_reliability score if present.
func (c *DimensionalConfidence) SourceReliability() (float64, bool) {
	return c.Dimension(DimSourceReliability)
}

// MethodQuality returns the method_quality score if present.
func (c *DimensionalConfidence) MethodQuality() (float64, bool) {
	return c.Dimension(DimMethodQuality)
}

// InternalConsistency returns the internal_consistency score if present.
func (c *DimensionalConfidence) InternalConsistency() (float64, bool) {
	return c.Dimension(DimInternalConsistency)
}

// TemporalFreshness returns the temporal_freshness score if present.
func (c *DimensionalConfidence) TemporalFreshness() (float64, bool) {
	return c.Dimension(DimTemporalFreshness)
}

// Corroboration returns the corroboration score if present.
func (c *DimensionalConfidence) Corroboration() (float64, bool) {
	return c.Dimension(DimCorroboration)
}

// DomainApplicability returns the domain_applicability score if present.
func (c *DimensionalConfidence) DomainApplicability() (float64, bool) {
	return c.Dimension(DimDomainApplicability)
}

func (c *DimensionalConfidence) clone() *DimensionalConfidence {
	dims := make(map[string]float64, len(c.dimensions))
	for name, value := range c.dimensions {
		dims[name] = value
	}
	return &DimensionalConfidence{
		overall:    c.overall,
		dimensions: dims,
		schemaName: c.schemaName,
	}
}

// WithDimension returns a new instance equal to the receiver except the
// named dimension is set to value. The receiver is untouched.
func (c *DimensionalConfidence) WithDimension(name string, value float64) (*DimensionalConfidence, error) {
	if name == "" {
		return nil, fmt.Errorf("dimension name must not be empty")
	}
	if err := checkRange(name, value); err != nil {
		return nil, err
	}
	out := c.clone()
	out.dimensions[name] = value
	return out, nil
}

// Decay returns a new instance aged by factor. When temporal_freshness is
// scored, only that dimension is scaled and the overall score is left
// alone; when it is absent the overall score itself is scaled. Factors
// above 1 fail once the scaled value leaves [0,1].
func (c *DimensionalConfidence) Decay(factor float64) (*DimensionalConfidence, error) {
	out := c.clone()
	if freshness, ok := out.dimensions[DimTemporalFreshness]; ok {
		aged := freshness * factor
		if err := checkRange(DimTemporalFreshness, aged); err != nil {
			return nil, err
		}
		out.dimensions[DimTemporalFreshness] = aged
		return out, nil
	}
	aged := out.overall * factor
	if err := checkRange("overall", aged); err != nil {
		return nil, err
	}
	out.overall = aged
	return out, nil
}

// BoostCorroboration returns a new instance with the corroboration
// dimension increased by amount, capped at 1.0. An absent corroboration
// score counts as 0 before the boost.
func (c *DimensionalConfidence) BoostCorroboration(amount float64) (*DimensionalConfidence, error) {
	boosted := math.Min(1.0, c.dimensions[DimCorroboration]+amount)
	if err := checkRange(DimCorroboration, boosted); err != nil {
		return nil, err
	}
	out := c.clone()
	out.dimensions[DimCorroboration] = boosted
	return out, nil
}

// RecalculateOverall recomputes the overall score in place as the
// arithmetic mean of the present dimension values. With no dimensions
// scored, the overall score is left unchanged. This is the sole in-place
// recompute; callers sharing an instance across goroutines must
// synchronize calls themselves.
func (c *DimensionalConfidence) RecalculateOverall() {
	if len(c.dimensions) == 0 {
		return
	}
	c.overall = meanOf(c.dimensions)
}

// Equal reports whether two confidence values have exactly equal overall
// scores and exactly equal dimension mappings. A nil operand is only
// equal to another nil.
func (c *DimensionalConfidence) Equal(other *DimensionalConfidence) bool {
	if c == nil || other == nil {
		return c == other
	}
	if c.overall != other.overall {
		return false
	}
	if len(c.dimensions) != len(other.dimensions) {
		return false
	}
	for name, value := range c.dimensions {
		if got, ok := other.dimensions[name]; !ok || got != value {
			return false
		}
	}
	return true
}

// ToMap produces the flat serialized form: the overall score, each
// present dimension keyed by its name, and a "schema" entry only when
// the schema differs from DefaultSchema.
func (c *DimensionalConfidence) ToMap() map[string]any {
	out := make(map[string]any, len(c.dimensions)+2)
	out["overall"] = c.overall
	for name, value := range c.dimensions {
		out[name] = value
	}
	if c.schemaName != DefaultSchema {
		out["schema"] = c.schemaName
	}
	return out
}

// FromMap reconstructs a confidence value from its flat serialized form.
// A missing "overall" entry defaults to the neutral 0.5; every other key
// except "schema" is read as a dimension score.
func FromMap(data map[string]any) (*DimensionalConfidence, error) {
	overall := 0.5
	schemaName := DefaultSchema
	dims := make(map[string]float64, len(data))
	for key, raw := range data {
		switch key {
		case "overall":
			value, ok := toFloat(raw)
			if !ok {
				return nil, fmt.Errorf("overall must be a number, got %T", raw)
			}
			overall = value
		case "schema":
			name, ok := raw.(string)
			if !ok {
				return nil, fmt.Errorf("schema must be a string, got %T", raw)
			}
			schemaName = name
		default:
			value, ok := toFloat(raw)
			if !ok {
				return nil, fmt.Errorf("dimension %s must be a number, got %T", key, raw)
			}
			dims[key] = value
		}
	}
	return NewWithSchema(overall, dims, schemaName)
}

func toFloat(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// MarshalJSON serializes to the same flat shape as ToMap.
func (c *DimensionalConfidence) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.ToMap())
}

// UnmarshalJSON reconstructs a confidence value from the flat shape,
// range-checking every score.
func (c *DimensionalConfidence) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := FromMap(raw)
	if err != nil {
		return err
	}
	*c = *parsed
	return nil
}
