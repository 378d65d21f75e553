package reindex

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeVector(t *testing.T) {
	t.Run("unit length", func(t *testing.T) {
		got := NormalizeVector([]float32{3, 4})
		assert.InDelta(t, 0.6, got[0], 1e-6)
		assert.InDelta(t, 0.8, got[1], 1e-6)

		var norm float64
		for _, v := range got {
			norm += float64(v) * float64(v)
		}
		assert.InDelta(t, 1.0, math.Sqrt(norm), 1e-6)
	})

	t.Run("zero vector stays zero", func(t *testing.T) {
		got := NormalizeVector([]float32{0, 0, 0})
		assert.Equal(t, []float32{0, 0, 0}, got)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, NormalizeVector(nil))
	})

	t.Run("does not mutate input", func(t *testing.T) {
		in := []float32{2, 0}
		NormalizeVector(in)
		assert.Equal(t, []float32{2, 0}, in)
	})
}
