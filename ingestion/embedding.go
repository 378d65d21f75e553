package ingestion

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/scriptoria/loci/ai"
	"github.com/scriptoria/loci/core"
	"github.com/scriptoria/loci/storage"
)

// embeddingProcessor generates embeddings for stored passages.
type embeddingProcessor struct {
	passageRepository storage.PassageRepository
	embedder          ai.Embedder
	logger            *slog.Logger
}

// newEmbeddingProcessor creates a new embedding processor.
func newEmbeddingProcessor(passageRepository storage.PassageRepository, embedder ai.Embedder, logger *slog.Logger) (*embeddingProcessor, error) {
	if passageRepository == nil {
		return nil, ErrPassageRepositoryRequired
	}
	if embedder == nil {
		return nil, fmt.Errorf("embedder required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &embeddingProcessor{
		passageRepository: passageRepository,
		embedder:          embedder,
		logger:            logger.With("processor", "embeddings"),
	}, nil
}

// process generates embeddings for the specified passages.
func (ep *embeddingProcessor) process(ctx context.Context, ids ...core.ID) error {
	ep.logger.Info("processing passages for embeddings", "passages", len(ids))

	passages, err := ep.passageRepository.GetPassages(ctx, ids...)
	if err != nil {
		ep.logger.Error("error retrieving passages", "err", err)
		return err
	}

	texts := make([]string, len(passages))
	for i, passage := range passages {
		texts[i] = passage.Text
	}

	ep.logger.Debug("generating embeddings for passages", "passages", len(texts))
	vectors, err := ep.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		ep.logger.Error("error generating embeddings", "err", err)
		return err
	}

	if len(vectors) != len(passages) {
		return fmt.Errorf("embedding result mismatch. expected %d, received %d", len(passages), len(vectors))
	}

	for i := range vectors {
		passages[i].Vector = vectors[i]
	}

	_, err = ep.passageRepository.UpdatePassages(ctx, passages...)
	return err
}
