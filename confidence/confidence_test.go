package confidence_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/credence/confidence"
)

func TestNew(t *testing.T) {
	t.Run("simple creation", func(t *testing.T) {
		c, err := confidence.New(0.8, nil)
		require.NoError(t, err)
		assert.Equal(t, 0.8, c.Overall())
		assert.Empty(t, c.Dimensions())
		assert.Equal(t, confidence.DefaultSchema, c.SchemaName())
	})

	t.Run("with dimensions", func(t *testing.T) {
		c, err := confidence.New(0.7, map[string]float64{
			confidence.DimSourceReliability: 0.9,
			confidence.DimMethodQuality:     0.6,
		})
		require.NoError(t, err)

		value, ok := c.SourceReliability()
		require.True(t, ok)
		assert.Equal(t, 0.9, value)

		value, ok = c.MethodQuality()
		require.True(t, ok)
		assert.Equal(t, 0.6, value)
	})

	t.Run("dimensions map is copied", func(t *testing.T) {
		dims := map[string]float64{"a": 0.5}
		c, err := confidence.New(0.7, dims)
		require.NoError(t, err)

		dims["a"] = 0.1
		value, _ := c.Dimension("a")
		assert.Equal(t, 0.5, value)
	})

	t.Run("overall out of range", func(t *testing.T) {
		_, err := confidence.New(1.5, nil)
		require.ErrorContains(t, err, "overall must be between 0 and 1")

		_, err = confidence.New(-0.1, nil)
		require.ErrorContains(t, err, "overall must be between 0 and 1")
	})

	t.Run("dimension out of range", func(t *testing.T) {
		_, err := confidence.New(0.5, map[string]float64{confidence.DimSourceReliability: 2.0})
		require.ErrorContains(t, err, "source_reliability must be between 0 and 1")
	})

	t.Run("empty dimension name", func(t *testing.T) {
		_, err := confidence.New(0.5, map[string]float64{"": 0.5})
		require.ErrorContains(t, err, "must not be empty")
	})
}

func TestFactories(t *testing.T) {
	t.Run("simple", func(t *testing.T) {
		c, err := confidence.Simple(0.9)
		require.NoError(t, err)
		assert.Equal(t, 0.9, c.Overall())
		assert.Empty(t, c.Dimensions())
	})

	t.Run("full", func(t *testing.T) {
		c, err := confidence.Full(0.8, 0.7, 0.9, 0.85, 0.6, 0.75)
		require.NoError(t, err)

		// Overall is the arithmetic mean of the six values.
		assert.InDelta(t, (0.8+0.7+0.9+0.85+0.6+0.75)/6, c.Overall(), 1e-9)
		assert.Len(t, c.Dimensions(), 6)

		value, ok := c.SourceReliability()
		require.True(t, ok)
		assert.Equal(t, 0.8, value)
		value, ok = c.DomainApplicability()
		require.True(t, ok)
		assert.Equal(t, 0.75, value)
	})

	t.Run("from dimensions", func(t *testing.T) {
		c, err := confidence.FromDimensions(map[string]float64{
			confidence.DimSourceReliability: 0.9,
			confidence.DimMethodQuality:     0.8,
		})
		require.NoError(t, err)
		assert.InDelta(t, 0.85, c.Overall(), 1e-9)
	})

	t.Run("from empty dimensions defaults to neutral", func(t *testing.T) {
		c, err := confidence.FromDimensions(nil)
		require.NoError(t, err)
		assert.Equal(t, 0.5, c.Overall())
	})
}

func TestAccessors(t *testing.T) {
	c, err := confidence.New(0.7, map[string]float64{confidence.DimCorroboration: 0.4})
	require.NoError(t, err)

	t.Run("dimension present", func(t *testing.T) {
		value, ok := c.Dimension(confidence.DimCorroboration)
		assert.True(t, ok)
		assert.Equal(t, 0.4, value)
		assert.True(t, c.HasDimension(confidence.DimCorroboration))
	})

	t.Run("dimension absent", func(t *testing.T) {
		_, ok := c.Dimension(confidence.DimTemporalFreshness)
		assert.False(t, ok)
		assert.False(t, c.HasDimension(confidence.DimTemporalFreshness))

		_, ok = c.TemporalFreshness()
		assert.False(t, ok)
		_, ok = c.InternalConsistency()
		assert.False(t, ok)
	})

	t.Run("set new dimension", func(t *testing.T) {
		require.NoError(t, c.SetDimension("custom_dim", 0.5))
		assert.True(t, c.HasDimension("custom_dim"))
		value, _ := c.Dimension("custom_dim")
		assert.Equal(t, 0.5, value)
	})

	t.Run("set out of range", func(t *testing.T) {
		err := c.SetDimension("bad", 1.5)
		require.ErrorContains(t, err, "must be between 0 and 1")
		assert.False(t, c.HasDimension("bad"))
	})

	t.Run("clear removes", func(t *testing.T) {
		c.ClearDimension("custom_dim")
		assert.False(t, c.HasDimension("custom_dim"))
	})
}

func TestWithDimension(t *testing.T) {
	c, err := confidence.New(0.7, map[string]float64{confidence.DimSourceReliability: 0.5})
	require.NoError(t, err)

	updated, err := c.WithDimension(confidence.DimSourceReliability, 0.9)
	require.NoError(t, err)

	value, _ := updated.SourceReliability()
	assert.Equal(t, 0.9, value)

	// Receiver untouched.
	value, _ = c.SourceReliability()
	assert.Equal(t, 0.5, value)

	_, err = c.WithDimension("bad", 2.0)
	require.ErrorContains(t, err, "must be between 0 and 1")
}

func TestDecay(t *testing.T) {
	t.Run("scales temporal freshness when present", func(t *testing.T) {
		c, err := confidence.New(0.8, map[string]float64{confidence.DimTemporalFreshness: 1.0})
		require.NoError(t, err)

		decayed, err := c.Decay(0.9)
		require.NoError(t, err)

		freshness, ok := decayed.TemporalFreshness()
		require.True(t, ok)
		assert.InDelta(t, 0.9, freshness, 1e-9)
		// Overall is left alone in this branch.
		assert.Equal(t, 0.8, decayed.Overall())
	})

	t.Run("scales overall when freshness absent", func(t *testing.T) {
		c, err := confidence.Simple(0.8)
		require.NoError(t, err)

		decayed, err := c.Decay(0.9)
		require.NoError(t, err)
		assert.InDelta(t, 0.72, decayed.Overall(), 1e-9)
		// Receiver untouched.
		assert.Equal(t, 0.8, c.Overall())
	})

	t.Run("growth out of range fails", func(t *testing.T) {
		c, err := confidence.Simple(0.8)
		require.NoError(t, err)
		_, err = c.Decay(2.0)
		require.ErrorContains(t, err, "must be between 0 and 1")
	})
}

func TestBoostCorroboration(t *testing.T) {
	t.Run("adds to existing score", func(t *testing.T) {
		c, err := confidence.New(0.7, map[string]float64{confidence.DimCorroboration: 0.5})
		require.NoError(t, err)

		boosted, err := c.BoostCorroboration(0.2)
		require.NoError(t, err)
		value, _ := boosted.Corroboration()
		assert.InDelta(t, 0.7, value, 1e-9)

		// Receiver untouched.
		value, _ = c.Corroboration()
		assert.Equal(t, 0.5, value)
	})

	t.Run("caps at one", func(t *testing.T) {
		c, err := confidence.New(0.7, map[string]float64{confidence.DimCorroboration: 0.9})
		require.NoError(t, err)

		boosted, err := c.BoostCorroboration(5.0)
		require.NoError(t, err)
		value, _ := boosted.Corroboration()
		assert.Equal(t, 1.0, value)
	})

	t.Run("absent corroboration counts as zero", func(t *testing.T) {
		c, err := confidence.Simple(0.7)
		require.NoError(t, err)

		boosted, err := c.BoostCorroboration(0.3)
		require.NoError(t, err)
		value, ok := boosted.Corroboration()
		require.True(t, ok)
		assert.InDelta(t, 0.3, value, 1e-9)
	})
}

func TestRecalculateOverall(t *testing.T) {
	t.Run("recomputes mean of present dimensions", func(t *testing.T) {
		c, err := confidence.New(0.5, map[string]float64{
			confidence.DimSourceReliability: 0.9,
			confidence.DimMethodQuality:     0.9,
		})
		require.NoError(t, err)

		c.RecalculateOverall()
		assert.InDelta(t, 0.9, c.Overall(), 1e-9)
	})

	t.Run("no dimensions leaves overall unchanged", func(t *testing.T) {
		c, err := confidence.Simple(0.3)
		require.NoError(t, err)

		c.RecalculateOverall()
		assert.Equal(t, 0.3, c.Overall())
	})
}

func TestEqual(t *testing.T) {
	c1, err := confidence.New(0.7, map[string]float64{confidence.DimSourceReliability: 0.8})
	require.NoError(t, err)
	c2, err := confidence.New(0.7, map[string]float64{confidence.DimSourceReliability: 0.8})
	require.NoError(t, err)
	c3, err := confidence.Simple(0.7)
	require.NoError(t, err)
	c4, err := confidence.Simple(0.8)
	require.NoError(t, err)

	assert.True(t, c1.Equal(c2))
	assert.True(t, c2.Equal(c1))
	assert.False(t, c1.Equal(c3))
	assert.False(t, c3.Equal(c4))
	assert.False(t, c1.Equal(nil))

	var nilConf *confidence.DimensionalConfidence
	assert.True(t, nilConf.Equal(nil))
}

func TestSerialization(t *testing.T) {
	t.Run("to map", func(t *testing.T) {
		c, err := confidence.New(0.7, map[string]float64{confidence.DimSourceReliability: 0.9})
		require.NoError(t, err)

		m := c.ToMap()
		assert.Equal(t, 0.7, m["overall"])
		assert.Equal(t, 0.9, m["source_reliability"])
		// Default schema is omitted.
		assert.NotContains(t, m, "schema")
	})

	t.Run("to map with custom schema", func(t *testing.T) {
		c, err := confidence.NewWithSchema(0.7, nil, "custom.v1")
		require.NoError(t, err)
		assert.Equal(t, "custom.v1", c.ToMap()["schema"])
	})

	t.Run("round trip", func(t *testing.T) {
		original, err := confidence.Full(0.8, 0.7, 0.9, 0.85, 0.6, 0.75)
		require.NoError(t, err)

		restored, err := confidence.FromMap(original.ToMap())
		require.NoError(t, err)

		assert.InDelta(t, original.Overall(), restored.Overall(), 1e-4)
		assert.Equal(t, original.Dimensions(), restored.Dimensions())
		assert.True(t, original.Equal(restored))
	})

	t.Run("from map rejects out of range", func(t *testing.T) {
		_, err := confidence.FromMap(map[string]any{"overall": 0.5, "a": 1.5})
		require.ErrorContains(t, err, "must be between 0 and 1")
	})

	t.Run("from map rejects non-numeric dimension", func(t *testing.T) {
		_, err := confidence.FromMap(map[string]any{"overall": 0.5, "a": "high"})
		require.ErrorContains(t, err, "must be a number")
	})

	t.Run("json round trip", func(t *testing.T) {
		original, err := confidence.NewWithSchema(0.6, map[string]float64{
			confidence.DimCorroboration: 0.4,
		}, "custom.v1")
		require.NoError(t, err)

		data, err := json.Marshal(original)
		require.NoError(t, err)

		var restored confidence.DimensionalConfidence
		require.NoError(t, json.Unmarshal(data, &restored))

		assert.InDelta(t, 0.6, restored.Overall(), 1e-9)
		assert.Equal(t, "custom.v1", restored.SchemaName())
		assert.True(t, original.Equal(&restored))
	})
}
