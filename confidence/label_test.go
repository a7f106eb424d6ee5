package confidence_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/c360studio/credence/confidence"
)

func TestLabel(t *testing.T) {
	tests := []struct {
		overall float64
		want    string
	}{
		{0.95, "very high"},
		{0.9, "very high"},
		{0.8, "high"},
		{0.75, "high"},
		{0.6, "moderate"},
		{0.5, "moderate"},
		{0.3, "low"},
		{0.25, "low"},
		{0.1, "very low"},
		{0.0, "very low"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, confidence.Label(tt.overall))
		})
	}
}

func TestLabelMethod(t *testing.T) {
	c, err := confidence.Simple(0.8)
	assert.NoError(t, err)
	assert.Equal(t, "high", c.Label())
}
