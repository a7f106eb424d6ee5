// Package assertion attaches confidence scores to statements about the
// world: subject/predicate/object triples with provenance.
package assertion

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/c360studio/credence/confidence"
)

// Evidence locates the origin of an assertion in source material.
type Evidence struct {
	// Source names the originating document, URL, or file.
	Source string `json:"source,omitempty"`

	StartLine int `json:"start_line,omitempty"`
	EndLine   int `json:"end_line,omitempty"`
}

// Assertion is a scored statement. The confidence value is the caller's
// belief in the statement, not something inferred from the evidence.
type Assertion struct {
	ID         string                            `json:"id"`
	Subject    string                            `json:"subject"`
	Predicate  string                            `json:"predicate"`
	Object     string                            `json:"object"`
	Confidence *confidence.DimensionalConfidence `json:"confidence"`
	Evidence   Evidence                          `json:"evidence,omitempty"`
	AssertedAt time.Time                         `json:"asserted_at"`
}

// New creates an assertion with a generated ID. A nil confidence gets
// the neutral Simple(0.5).
func New(subject, predicate, object string, conf *confidence.DimensionalConfidence) (*Assertion, error) {
	if subject == "" || predicate == "" || object == "" {
		return nil, fmt.Errorf("assertion subject, predicate, and object must not be empty")
	}
	if conf == nil {
		neutral, err := confidence.Simple(0.5)
		if err != nil {
			return nil, err
		}
		conf = neutral
	}
	return &Assertion{
		ID:         uuid.New().String(),
		Subject:    subject,
		Predicate:  predicate,
		Object:     object,
		Confidence: conf,
		AssertedAt: time.Now().UTC(),
	}, nil
}

// Key identifies the statement independent of its scoring: two
// assertions with the same key say the same thing.
func (a *Assertion) Key() string {
	return a.Subject + "|" + a.Predicate + "|" + a.Object
}

// Aged returns a copy of the assertion with its confidence decayed by
// factor. The receiver is untouched.
func (a *Assertion) Aged(factor float64) (*Assertion, error) {
	decayed, err := a.Confidence.Decay(factor)
	if err != nil {
		return nil, err
	}
	aged := *a
	aged.Confidence = decayed
	return &aged, nil
}

// CorroborationStep is the corroboration boost applied per additional
// independent assertion of the same statement.
const CorroborationStep = 0.1

// Corroborate merges assertions making the same statement into one. The
// confidence values aggregate under the given method, then corroboration
// gets boosted by CorroborationStep per additional assertion. Assertions
// with differing keys fail; a single assertion is returned as-is.
func Corroborate(assertions []*Assertion, method confidence.Method) (*Assertion, error) {
	if len(assertions) == 0 {
		return nil, fmt.Errorf("nothing to corroborate")
	}
	first := assertions[0]
	if len(assertions) == 1 {
		return first, nil
	}

	confs := make([]*confidence.DimensionalConfidence, len(assertions))
	for i, a := range assertions {
		if a.Key() != first.Key() {
			return nil, fmt.Errorf("cannot corroborate differing statements: %s vs %s", first.Key(), a.Key())
		}
		confs[i] = a.Confidence
	}

	combined, err := confidence.Aggregate(confs, method)
	if err != nil {
		return nil, err
	}
	boosted, err := combined.BoostCorroboration(CorroborationStep * float64(len(assertions)-1))
	if err != nil {
		return nil, err
	}

	return &Assertion{
		ID:         uuid.New().String(),
		Subject:    first.Subject,
		Predicate:  first.Predicate,
		Object:     first.Object,
		Confidence: boosted,
		Evidence:   first.Evidence,
		AssertedAt: time.Now().UTC(),
	}, nil
}
