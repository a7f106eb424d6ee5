package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/credence/schema"
)

func TestRecordsRegistryActivity(t *testing.T) {
	m := NewWith(prometheus.NewRegistry())

	reg := schema.NewRegistry()
	reg.SetRecorder(m)

	s, err := schema.New("test.v1", schema.WithDimensions("a"))
	require.NoError(t, err)
	require.NoError(t, reg.Register(s))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SchemaRegistrations))

	reg.Validate("test.v1", map[string]float64{"a": 0.5})
	reg.Validate("test.v1", map[string]float64{"a": 2.0})
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Validations.WithLabelValues("test.v1", "valid")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Validations.WithLabelValues("test.v1", "invalid")))

	_, err = reg.Resolve("missing")
	require.Error(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ResolveFailures.WithLabelValues("missing")))
}

func TestImplementsRecorder(t *testing.T) {
	var _ schema.Recorder = NewWith(prometheus.NewRegistry())
}
