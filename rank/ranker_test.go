package rank

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scriptoria/loci/core"
	"github.com/scriptoria/loci/corpus"
)

// vectorAt builds a unit vector whose cosine against the unit x-axis
// query vector is exactly sim.
func vectorAt(sim float64) []float32 {
	return []float32{float32(sim), float32(math.Sqrt(1 - sim*sim))}
}

func queryVector() []float32 { return []float32{1, 0} }

func testPassage(source, text string, sim float64, meta core.Metadata) *core.Passage {
	return &core.Passage{
		Id:       core.PassageID(source, text),
		Text:     text,
		Source:   source,
		Vector:   vectorAt(sim),
		Metadata: meta,
	}
}

func newTestRanker(t *testing.T, opts ...Option) *Ranker {
	t.Helper()
	r, err := NewRanker(opts...)
	require.NoError(t, err)
	t.Cleanup(r.Close)
	return r
}

func TestRankerBoostChangesOrder(t *testing.T) {
	// A passage with lower similarity but a concept match must overtake
	// a plain passage: 0.70 + 0.15 beats 0.80.
	snap, err := corpus.NewSnapshot([]*core.Passage{
		testPassage("Institutes", "plain", 0.80, core.Metadata{}),
		testPassage("Institutes", "boosted", 0.70, core.Metadata{
			Concepts: []string{"Concept/Providence"},
		}),
	})
	require.NoError(t, err)

	r := newTestRanker(t)
	results, err := r.Rank(context.Background(), &core.QueryContext{
		Query:   "providence",
		Vector:  queryVector(),
		Filters: core.SuggestedFilters{Concepts: []string{"Concept/Providence"}},
	}, snap)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "boosted", results[0].Passage.Text)
	assert.InDelta(t, 0.70, results[0].Similarity, 1e-3)
	assert.InDelta(t, 0.15, results[0].Boost, 1e-6)
	assert.InDelta(t, 0.85, results[0].Combined, 1e-3)
	assert.Equal(t, 1, results[0].Rank)
	assert.Equal(t, 2, results[1].Rank)
}

func TestRankerScriptureTierOrdering(t *testing.T) {
	// Equal similarity; the exact verse match must outrank the
	// chapter-only match.
	snap, err := corpus.NewSnapshot([]*core.Passage{
		testPassage("Sermons", "chapter only", 0.60, core.Metadata{
			ScriptureRefs: []string{"John 3"},
		}),
		testPassage("Sermons", "exact verse", 0.60, core.Metadata{
			ScriptureRefs: []string{"John 3", "John 3:16"},
		}),
	})
	require.NoError(t, err)

	r := newTestRanker(t)
	results, err := r.Rank(context.Background(), &core.QueryContext{
		Query:   "God so loved the world",
		Vector:  queryVector(),
		Filters: core.SuggestedFilters{ScriptureRefs: []string{"John 3:16"}},
	}, snap)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "exact verse", results[0].Passage.Text)
	assert.InDelta(t, 0.5, results[0].Boost, 1e-6)
	assert.InDelta(t, 0.3, results[1].Boost, 1e-6)
}

func TestRankerDeterministic(t *testing.T) {
	// Many passages with identical scores: order must be insertion
	// order, run after run, despite concurrent scoring.
	var passages []*core.Passage
	for _, text := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		passages = append(passages, testPassage("Institutes", text, 0.5, core.Metadata{}))
	}
	snap, err := corpus.NewSnapshot(passages)
	require.NoError(t, err)

	r := newTestRanker(t, WithPoolSize(4))
	qc := &core.QueryContext{Query: "q", Vector: queryVector()}

	first, err := r.Rank(context.Background(), qc, snap)
	require.NoError(t, err)

	for run := 0; run < 10; run++ {
		again, err := r.Rank(context.Background(), qc, snap)
		require.NoError(t, err)
		require.Len(t, again, len(first))
		for i := range first {
			assert.Equal(t, first[i].Passage.Text, again[i].Passage.Text, "run %d pos %d", run, i)
		}
	}

	// Ties resolved by insertion order.
	assert.Equal(t, "a", first[0].Passage.Text)
	assert.Equal(t, "h", first[7].Passage.Text)
}

func TestRankerTopK(t *testing.T) {
	var passages []*core.Passage
	for i := 0; i < 20; i++ {
		passages = append(passages, testPassage("Institutes", string(rune('a'+i)), 0.9, core.Metadata{}))
	}
	snap, err := corpus.NewSnapshot(passages)
	require.NoError(t, err)

	qc := &core.QueryContext{Query: "q", Vector: queryVector()}

	t.Run("default is 15", func(t *testing.T) {
		r := newTestRanker(t)
		results, err := r.Rank(context.Background(), qc, snap)
		require.NoError(t, err)
		assert.Len(t, results, DefaultTopK)
	})

	t.Run("configured top-k", func(t *testing.T) {
		r := newTestRanker(t, WithTopK(3))
		results, err := r.Rank(context.Background(), qc, snap)
		require.NoError(t, err)
		assert.Len(t, results, 3)
		assert.Equal(t, []int{1, 2, 3}, []int{results[0].Rank, results[1].Rank, results[2].Rank})
	})

	t.Run("fewer candidates than top-k", func(t *testing.T) {
		small, err := corpus.NewSnapshot(passages[:2])
		require.NoError(t, err)
		r := newTestRanker(t)
		results, err := r.Rank(context.Background(), qc, small)
		require.NoError(t, err)
		assert.Len(t, results, 2)
	})
}

func TestRankerSourceAllowlist(t *testing.T) {
	snap, err := corpus.NewSnapshot([]*core.Passage{
		testPassage("Institutes", "calvin", 0.2, core.Metadata{}),
		testPassage("Summa", "aquinas", 0.99, core.Metadata{}),
	})
	require.NoError(t, err)

	r := newTestRanker(t)

	t.Run("excluded source never ranks", func(t *testing.T) {
		results, err := r.Rank(context.Background(), &core.QueryContext{
			Query:           "q",
			Vector:          queryVector(),
			SourceAllowlist: []string{"Institutes"},
		}, snap)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "calvin", results[0].Passage.Text)
	})

	t.Run("empty filtered corpus", func(t *testing.T) {
		results, err := r.Rank(context.Background(), &core.QueryContext{
			Query:           "q",
			Vector:          queryVector(),
			SourceAllowlist: []string{"City of God"},
		}, snap)
		require.NoError(t, err)
		assert.Empty(t, results)
	})
}

func TestRankerDimensionMismatch(t *testing.T) {
	snap, err := corpus.NewSnapshot([]*core.Passage{
		testPassage("Institutes", "a", 0.5, core.Metadata{}),
	})
	require.NoError(t, err)

	r := newTestRanker(t)
	_, err = r.Rank(context.Background(), &core.QueryContext{
		Query:  "q",
		Vector: []float32{1, 0, 0},
	}, snap)
	assert.ErrorIs(t, err, core.ErrDimensionMismatch)
}

func TestRankerValidation(t *testing.T) {
	snap, err := corpus.NewSnapshot(nil)
	require.NoError(t, err)
	r := newTestRanker(t)

	t.Run("nil snapshot", func(t *testing.T) {
		_, err := r.Rank(context.Background(), &core.QueryContext{Vector: queryVector()}, nil)
		assert.ErrorIs(t, err, ErrSnapshotRequired)
	})

	t.Run("missing query vector", func(t *testing.T) {
		_, err := r.Rank(context.Background(), &core.QueryContext{Query: "q"}, snap)
		assert.ErrorIs(t, err, core.ErrEmptyQueryVector)
	})

	t.Run("empty snapshot", func(t *testing.T) {
		results, err := r.Rank(context.Background(), &core.QueryContext{Query: "q", Vector: queryVector()}, snap)
		require.NoError(t, err)
		assert.Empty(t, results)
	})
}

type recordingMonitor struct {
	started    string
	candidates int
	scored     int
	finished   int
}

func (m *recordingMonitor) Start(query string)                 { m.started = query }
func (m *recordingMonitor) AfterSourceFilter(candidates int)   { m.candidates = candidates }
func (m *recordingMonitor) Scored(_ *core.ScoredResult)        { m.scored++ }
func (m *recordingMonitor) Finish(results []*core.ScoredResult) { m.finished = len(results) }

func TestRankerMonitor(t *testing.T) {
	snap, err := corpus.NewSnapshot([]*core.Passage{
		testPassage("Institutes", "a", 0.5, core.Metadata{}),
		testPassage("Institutes", "b", 0.6, core.Metadata{}),
	})
	require.NoError(t, err)

	r := newTestRanker(t)
	monitor := &recordingMonitor{}
	_, err = r.RankWithMonitor(context.Background(), &core.QueryContext{
		Query:  "grace",
		Vector: queryVector(),
	}, snap, monitor)
	require.NoError(t, err)

	assert.Equal(t, "grace", monitor.started)
	assert.Equal(t, 2, monitor.candidates)
	assert.Equal(t, 2, monitor.scored)
	assert.Equal(t, 2, monitor.finished)
}
