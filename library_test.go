package loci

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scriptoria/loci/ai/mock"
	"github.com/scriptoria/loci/ingestion"
)

func newTestLibrary(t *testing.T) *Library {
	t.Helper()

	lib, err := OpenMemoryLibrary(WithProvider(mock.NewMockProvider()))
	require.NoError(t, err)
	t.Cleanup(func() { lib.Close() })

	return lib
}

func ingestTestDocs(t *testing.T, lib *Library, docs ...ingestion.Document) {
	t.Helper()

	pipeline, err := lib.NewIngestionPipeline()
	require.NoError(t, err)
	defer pipeline.Release()

	_, err = pipeline.Ingest(context.Background(), docs)
	require.NoError(t, err)
	pipeline.Wait()
}

func TestOpenLibrary(t *testing.T) {
	t.Run("create new library", func(t *testing.T) {
		tmpDir := filepath.Join(t.TempDir(), "test_corpus")
		lib, err := OpenLibrary(tmpDir, WithProvider(mock.NewMockProvider()))
		require.NoError(t, err)
		require.NotNil(t, lib)
		defer lib.Close()

		assert.NotNil(t, lib.PassageRepository())
		assert.NotNil(t, lib.Provider())
		assert.NotNil(t, lib.backend)
	})

	t.Run("in-memory library", func(t *testing.T) {
		lib, err := OpenMemoryLibrary(WithProvider(mock.NewMockProvider()))
		require.NoError(t, err)
		assert.NoError(t, lib.Close())
	})
}

func TestLibrary_FactoryMethods(t *testing.T) {
	lib := newTestLibrary(t)

	t.Run("can create ingestion pipeline", func(t *testing.T) {
		pipeline, err := lib.NewIngestionPipeline()
		require.NoError(t, err)
		require.NotNil(t, pipeline)
		pipeline.Release()
	})

	t.Run("can create ranker", func(t *testing.T) {
		ranker, err := lib.NewRanker()
		require.NoError(t, err)
		require.NotNil(t, ranker)
		ranker.Close()
	})
}

func TestLibrary_Snapshot(t *testing.T) {
	lib := newTestLibrary(t)
	ctx := context.Background()

	t.Run("empty corpus", func(t *testing.T) {
		snap, err := lib.Snapshot(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, snap.Len())
	})

	ingestTestDocs(t, lib,
		ingestion.Document{Text: "By grace you have been saved.", Source: "Institutes", Author: "John Calvin"},
		ingestion.Document{Text: "The law is a schoolmaster.", Source: "Commentary on Galatians", Author: "Martin Luther"},
	)

	t.Run("populated corpus in ingestion order", func(t *testing.T) {
		snap, err := lib.Snapshot(ctx)
		require.NoError(t, err)
		require.Equal(t, 2, snap.Len())
		assert.Equal(t, []string{"Institutes", "Commentary on Galatians"}, snap.Sources())
	})
}

func TestLibrary_Search(t *testing.T) {
	lib := newTestLibrary(t)
	ctx := context.Background()

	ingestTestDocs(t, lib,
		ingestion.Document{
			Text:   "For God so loved the world that he gave his only Son.",
			Source: "Homilies on John",
			Author: "John Chrysostom",
			Metadata: ingestion.DocumentMetadata{
				ScriptureRefs: []string{"John 3:16"},
			},
		},
		ingestion.Document{
			Text:   "Faith comes from hearing the word.",
			Source: "Commentary on Romans",
			Author: "Martin Luther",
			Metadata: ingestion.DocumentMetadata{
				ScriptureRefs: []string{"Romans 10:17"},
			},
		},
	)

	t.Run("ranks whole corpus", func(t *testing.T) {
		res, err := lib.Search(ctx, "what does John 3:16 teach about divine love", nil)
		require.NoError(t, err)
		require.NotNil(t, res.Analysis)
		require.Len(t, res.Results, 2)

		for i, r := range res.Results {
			assert.Equal(t, i+1, r.Rank)
		}
	})

	t.Run("source allowlist restricts scoring", func(t *testing.T) {
		res, err := lib.Search(ctx, "faith and hearing", []string{"Commentary on Romans"})
		require.NoError(t, err)
		require.Len(t, res.Results, 1)
		assert.Equal(t, "Commentary on Romans", res.Results[0].Passage.Source)
	})

	t.Run("unknown source yields empty results", func(t *testing.T) {
		res, err := lib.Search(ctx, "anything", []string{"No Such Source"})
		require.NoError(t, err)
		assert.Empty(t, res.Results)
	})
}

func TestLibrary_Summarize(t *testing.T) {
	lib := newTestLibrary(t)
	ctx := context.Background()

	ingestTestDocs(t, lib,
		ingestion.Document{Text: "Hope does not disappoint.", Source: "Sermons", Author: "Augustine"},
	)

	res, err := lib.Search(ctx, "hope", nil)
	require.NoError(t, err)
	require.NotEmpty(t, res.Results)

	summary, err := lib.Summarize(ctx, "hope", res.Results)
	require.NoError(t, err)
	assert.NotEmpty(t, summary.Summary)
	require.Len(t, summary.Citations, 1)
	assert.Equal(t, "Sermons", summary.Citations[0].Source)
}
