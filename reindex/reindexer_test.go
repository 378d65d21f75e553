package reindex

import (
	"bytes"
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scriptoria/loci/ai/mock"
)

func TestReindexer_Run(t *testing.T) {
	repo := setupTestRepo(t)
	added := addTestPassages(t, repo, "grace", "law", "covenant")

	embedder := mock.NewMockEmbedder()
	embedder.Dim = 8

	var out bytes.Buffer
	reindexer := NewReindexer(repo, embedder, nil, &out)

	err := reindexer.Run(context.Background())
	require.NoError(t, err)

	t.Run("all vectors replaced and normalized", func(t *testing.T) {
		for _, p := range added {
			got, err := repo.GetPassage(context.Background(), p.Id)
			require.NoError(t, err)
			require.Len(t, got.Vector, 8)

			var norm float64
			for _, v := range got.Vector {
				norm += float64(v) * float64(v)
			}
			assert.InDelta(t, 1.0, math.Sqrt(norm), 1e-5)
		}
	})

	t.Run("reports progress", func(t *testing.T) {
		assert.Contains(t, out.String(), "Starting reindex of 3 passages")
		assert.Contains(t, out.String(), "Reindex complete")
	})
}

func TestReindexer_EmptyCorpus(t *testing.T) {
	repo := setupTestRepo(t)

	var out bytes.Buffer
	reindexer := NewReindexer(repo, mock.NewMockEmbedder(), nil, &out)

	err := reindexer.Run(context.Background())
	require.NoError(t, err)
	assert.Contains(t, out.String(), "No passages found")
}

func TestReindexer_RetriesTransientFailures(t *testing.T) {
	repo := setupTestRepo(t)
	addTestPassages(t, repo, "alpha", "beta")

	embedder := mock.NewMockEmbedder()
	fails := 2
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		if fails > 0 {
			fails--
			return nil, errors.New("transient")
		}
		vectors := make([][]float32, len(texts))
		for i := range texts {
			vectors[i] = []float32{1, 0}
		}
		return vectors, nil
	}

	config := DefaultConfig()
	config.RetryDelay = time.Millisecond

	var out bytes.Buffer
	reindexer := NewReindexer(repo, embedder, config, &out)

	err := reindexer.Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, fails, "should have exhausted the injected failures")
}

func TestReindexer_PersistentFailure(t *testing.T) {
	repo := setupTestRepo(t)
	addTestPassages(t, repo, "alpha")

	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, errors.New("model unavailable")
	}

	config := DefaultConfig()
	config.MaxRetries = 2
	config.RetryDelay = time.Millisecond

	var out bytes.Buffer
	reindexer := NewReindexer(repo, embedder, config, &out)

	err := reindexer.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model unavailable")
}

func TestBatchProcessor_CountMismatch(t *testing.T) {
	repo := setupTestRepo(t)
	added := addTestPassages(t, repo, "alpha", "beta")

	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return [][]float32{{1, 0}}, nil
	}

	bp := NewBatchProcessor(repo, embedder, 1, time.Millisecond)
	err := bp.Process(context.Background(), added)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mismatch")
}
