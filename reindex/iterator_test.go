package reindex

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scriptoria/loci/core"
	"github.com/scriptoria/loci/storage"
	"github.com/scriptoria/loci/storage/badger"
)

func setupTestRepo(t *testing.T) storage.PassageRepository {
	t.Helper()

	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})

	return repo
}

func addTestPassages(t *testing.T, repo storage.PassageRepository, texts ...string) []*core.Passage {
	t.Helper()

	passages := make([]*core.Passage, len(texts))
	for i, text := range texts {
		passages[i] = &core.Passage{Text: text, Source: "Test Source", Author: "Anon"}
	}

	added, err := repo.AddPassages(context.Background(), passages...)
	require.NoError(t, err)
	return added
}

func TestPassageIterator_Basic(t *testing.T) {
	repo := setupTestRepo(t)
	added := addTestPassages(t, repo, "first", "second", "third")

	iter := NewPassageIterator(repo, 2)
	count := 0
	var batches []int

	err := iter.ForEach(context.Background(), func(passages []*core.Passage) error {
		count += len(passages)
		batches = append(batches, len(passages))
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, len(added), count, "should visit every passage")
	assert.Equal(t, []int{2, 1}, batches, "should batch by batchSize")
}

func TestPassageIterator_Empty(t *testing.T) {
	repo := setupTestRepo(t)

	iter := NewPassageIterator(repo, 10)
	called := false

	err := iter.ForEach(context.Background(), func([]*core.Passage) error {
		called = true
		return nil
	})

	require.NoError(t, err)
	assert.False(t, called, "fn should not be called for empty corpus")
}

func TestPassageIterator_StopsOnError(t *testing.T) {
	repo := setupTestRepo(t)
	addTestPassages(t, repo, "a", "b", "c", "d")

	iter := NewPassageIterator(repo, 1)
	calls := 0
	boom := errors.New("boom")

	err := iter.ForEach(context.Background(), func([]*core.Passage) error {
		calls++
		if calls == 2 {
			return boom
		}
		return nil
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, calls, "should stop at the failing batch")
}

func TestPassageIterator_ContextCanceled(t *testing.T) {
	repo := setupTestRepo(t)
	addTestPassages(t, repo, "a", "b", "c", "d")

	ctx, cancel := context.WithCancel(context.Background())
	iter := NewPassageIterator(repo, 1)
	calls := 0

	err := iter.ForEach(ctx, func([]*core.Passage) error {
		calls++
		cancel()
		return nil
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls, "should stop after cancellation")
}

func TestPassageIterator_DefaultBatchSize(t *testing.T) {
	repo := setupTestRepo(t)
	iter := NewPassageIterator(repo, 0)
	assert.Equal(t, DefaultBatchSize, iter.batchSize)
}
