package corpus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scriptoria/loci/core"
)

func makePassage(source, text string, vec []float32) *core.Passage {
	return &core.Passage{
		Id:     core.PassageID(source, text),
		Text:   text,
		Source: source,
		Vector: vec,
	}
}

func TestNewSnapshot(t *testing.T) {
	t.Run("empty corpus", func(t *testing.T) {
		snap, err := NewSnapshot(nil)
		require.NoError(t, err)
		assert.Equal(t, 0, snap.Len())
		assert.Equal(t, 0, snap.Dimension())
	})

	t.Run("uniform dimension", func(t *testing.T) {
		snap, err := NewSnapshot([]*core.Passage{
			makePassage("Institutes", "a", []float32{1, 0, 0}),
			makePassage("Confessions", "b", []float32{0, 1, 0}),
		})
		require.NoError(t, err)
		assert.Equal(t, 2, snap.Len())
		assert.Equal(t, 3, snap.Dimension())
	})

	t.Run("dimension mismatch", func(t *testing.T) {
		_, err := NewSnapshot([]*core.Passage{
			makePassage("Institutes", "a", []float32{1, 0, 0}),
			makePassage("Confessions", "b", []float32{0, 1}),
		})
		assert.ErrorIs(t, err, core.ErrDimensionMismatch)
	})

	t.Run("missing embedding", func(t *testing.T) {
		_, err := NewSnapshot([]*core.Passage{
			makePassage("Institutes", "a", nil),
		})
		assert.ErrorIs(t, err, core.ErrDimensionMismatch)
	})

	t.Run("orphan verse reference rejected", func(t *testing.T) {
		p := makePassage("Institutes", "a", []float32{1, 0})
		p.Metadata.ScriptureRefs = []string{"John 3:16"}
		_, err := NewSnapshot([]*core.Passage{p})
		assert.ErrorIs(t, err, core.ErrMissingChapterRef)
	})
}

func TestSnapshotSources(t *testing.T) {
	snap, err := NewSnapshot([]*core.Passage{
		makePassage("Institutes", "a", []float32{1}),
		makePassage("Confessions", "b", []float32{2}),
		makePassage("Institutes", "c", []float32{3}),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Institutes", "Confessions"}, snap.Sources())
}

func TestSnapshotFilter(t *testing.T) {
	snap, err := NewSnapshot([]*core.Passage{
		makePassage("Institutes", "a", []float32{1}),
		makePassage("Confessions", "b", []float32{2}),
		makePassage("Summa", "c", []float32{3}),
		makePassage("Institutes", "d", []float32{4}),
	})
	require.NoError(t, err)

	t.Run("empty allowlist keeps everything", func(t *testing.T) {
		view := snap.Filter(nil)
		assert.Equal(t, 4, view.Len())
	})

	t.Run("hard exclusion by source", func(t *testing.T) {
		view := snap.Filter([]string{"Institutes"})
		require.Equal(t, 2, view.Len())
		assert.Equal(t, "a", view.At(0).Text)
		assert.Equal(t, "d", view.At(1).Text)
		// Insertion positions survive filtering.
		assert.Equal(t, 0, view.Position(0))
		assert.Equal(t, 3, view.Position(1))
	})

	t.Run("unknown source yields empty view", func(t *testing.T) {
		view := snap.Filter([]string{"City of God"})
		assert.Equal(t, 0, view.Len())
	})

	t.Run("multiple sources", func(t *testing.T) {
		view := snap.Filter([]string{"Summa", "Confessions"})
		require.Equal(t, 2, view.Len())
		assert.Equal(t, "b", view.At(0).Text)
		assert.Equal(t, "c", view.At(1).Text)
	})
}
