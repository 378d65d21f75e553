package reindex

import (
	"context"
	"fmt"
	"time"

	"github.com/scriptoria/loci/ai"
	"github.com/scriptoria/loci/core"
	"github.com/scriptoria/loci/storage"
)

// BatchProcessor handles embedding generation for batches of passages.
type BatchProcessor struct {
	repo           storage.PassageRepository
	embedder       ai.Embedder
	maxRetries     int
	retryBaseDelay time.Duration
}

// NewBatchProcessor creates a new batch processor.
// maxRetries: maximum number of retry attempts for embedding API calls
// retryBaseDelay: base delay for exponential backoff
func NewBatchProcessor(repo storage.PassageRepository, embedder ai.Embedder, maxRetries int, retryBaseDelay time.Duration) *BatchProcessor {
	return &BatchProcessor{
		repo:           repo,
		embedder:       embedder,
		maxRetries:     maxRetries,
		retryBaseDelay: retryBaseDelay,
	}
}

// Process generates embeddings for a batch of passages and updates them in
// the database. Vectors are normalized after embedding so cosine similarity
// scores stay comparable across models.
func (bp *BatchProcessor) Process(ctx context.Context, passages []*core.Passage) error {
	if len(passages) == 0 {
		return nil
	}

	texts := make([]string, len(passages))
	for i, passage := range passages {
		texts[i] = passage.Text
	}

	var embeddings [][]float32
	err := RetryWithBackoff(ctx, func() error {
		var err error
		embeddings, err = bp.embedder.EmbedTexts(ctx, texts)
		return err
	}, bp.maxRetries, bp.retryBaseDelay)

	if err != nil {
		return fmt.Errorf("failed to generate embeddings after %d attempts: %w", bp.maxRetries, err)
	}

	if len(embeddings) != len(passages) {
		return fmt.Errorf("embedding count mismatch: expected %d, got %d", len(passages), len(embeddings))
	}

	for i := range passages {
		passages[i].Vector = NormalizeVector(embeddings[i])
	}

	_, err = bp.repo.UpdatePassages(ctx, passages...)
	if err != nil {
		return fmt.Errorf("failed to update passages: %w", err)
	}

	return nil
}
