// Package metrics exposes Prometheus instrumentation for schema
// registry activity. It implements schema.Recorder.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the registry activity collectors.
type Metrics struct {
	SchemaRegistrations prometheus.Counter
	Validations         *prometheus.CounterVec
	ResolveFailures     *prometheus.CounterVec
}

// New registers the collectors with the default Prometheus registerer.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers the collectors with an explicit registerer. Tests
// pass a fresh prometheus.NewRegistry to avoid duplicate registration.
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		SchemaRegistrations: factory.NewCounter(prometheus.CounterOpts{
			Name: "credence_schema_registrations_total",
			Help: "Total number of schema registrations, including overwrites",
		}),
		Validations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "credence_validations_total",
			Help: "Total number of dimension mapping validations by schema and outcome",
		}, []string{"schema", "outcome"}),
		ResolveFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "credence_resolve_failures_total",
			Help: "Total number of failed schema resolutions by schema",
		}, []string{"schema"}),
	}
}

// SchemaRegistered counts one schema registration.
func (m *Metrics) SchemaRegistered(string) {
	m.SchemaRegistrations.Inc()
}

// Validated counts one validation by outcome.
func (m *Metrics) Validated(schemaName string, valid bool) {
	outcome := "valid"
	if !valid {
		outcome = "invalid"
	}
	m.Validations.WithLabelValues(schemaName, outcome).Inc()
}

// ResolveFailed counts one failed resolution.
func (m *Metrics) ResolveFailed(schemaName string) {
	m.ResolveFailures.WithLabelValues(schemaName).Inc()
}
