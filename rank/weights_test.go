package rank

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultBoostWeights(t *testing.T) {
	w := DefaultBoostWeights()
	require.NoError(t, w.Validate())
	assert.InDelta(t, 0.15, w.ConceptMatch, 1e-6)
	assert.InDelta(t, 1.5, w.TotalCap, 1e-6)
}

func TestBoostWeightsValidate(t *testing.T) {
	t.Run("negative increment", func(t *testing.T) {
		w := DefaultBoostWeights()
		w.EntityMatch = -0.1
		assert.ErrorIs(t, w.Validate(), ErrInvalidWeights)
	})

	t.Run("cap below increment", func(t *testing.T) {
		w := DefaultBoostWeights()
		w.VerseCap = 0.1
		assert.ErrorIs(t, w.Validate(), ErrInvalidWeights)
	})

	t.Run("zero total cap", func(t *testing.T) {
		w := DefaultBoostWeights()
		w.TotalCap = 0
		assert.ErrorIs(t, w.Validate(), ErrInvalidWeights)
	})
}

func TestLoadBoostWeights(t *testing.T) {
	t.Run("partial file keeps defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "weights.yaml")
		require.NoError(t, os.WriteFile(path, []byte("concept_match: 0.25\n"), 0o644))

		w, err := LoadBoostWeights(path)
		require.NoError(t, err)
		assert.InDelta(t, 0.25, w.ConceptMatch, 1e-6)
		assert.InDelta(t, 0.12, w.DiscourseMatch, 1e-6)
		assert.InDelta(t, 1.5, w.TotalCap, 1e-6)
	})

	t.Run("invalid values rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "weights.yaml")
		require.NoError(t, os.WriteFile(path, []byte("total_cap: -1\n"), 0o644))

		_, err := LoadBoostWeights(path)
		assert.ErrorIs(t, err, ErrInvalidWeights)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadBoostWeights(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}
