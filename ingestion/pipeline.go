package ingestion

import (
	"context"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/scriptoria/loci/ai"
	"github.com/scriptoria/loci/core"
	"github.com/scriptoria/loci/storage"
)

// Pipeline orchestrates the ingestion and processing of passages.
// Scripture normalization and storage happen synchronously; embedding
// generation runs on a worker pool.
type Pipeline struct {
	passageRepository storage.PassageRepository
	embeddingPool     *ants.Pool
	embeddingProc     *embeddingProcessor
	batchSize         int
	pending           sync.WaitGroup
	logger            *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent processing.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.embeddingPool != nil {
			p.embeddingPool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.embeddingPool = pool
		return nil
	}
}

// WithBatchSize sets how many passages are embedded per worker task.
// Default is 32.
func WithBatchSize(size int) Option {
	return func(p *Pipeline) error {
		if size > 0 {
			p.batchSize = size
		}
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(
	passageRepository storage.PassageRepository,
	provider ai.AIProvider,
	opts ...Option,
) (*Pipeline, error) {
	if passageRepository == nil {
		return nil, ErrPassageRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		passageRepository: passageRepository,
		embeddingPool:     pool,
		batchSize:         32,
		logger:            slog.Default().With("component", "ingestion"),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	embeddingProc, err := newEmbeddingProcessor(passageRepository, provider.Embedder(), p.logger)
	if err != nil {
		p.Release()
		return nil, err
	}
	p.embeddingProc = embeddingProc

	return p, nil
}

// Ingest normalizes, validates, and stores the documents as passages,
// then queues them for embedding. Errors during async embedding are
// logged but do not fail the ingestion; call Wait to drain the queue.
// Returns the stored passages with IDs populated.
func (p *Pipeline) Ingest(ctx context.Context, docs []Document) ([]*core.Passage, error) {
	if len(docs) == 0 {
		return nil, nil
	}

	passages := make([]*core.Passage, 0, len(docs))
	for _, doc := range docs {
		meta := doc.Metadata.toCore()
		meta.ScriptureRefs = normalizeScriptureRefs(meta.ScriptureRefs, p.logger)

		passage := &core.Passage{
			Text:          doc.Text,
			Source:        doc.Source,
			Author:        doc.Author,
			StructurePath: doc.StructurePath,
			Metadata:      meta,
		}
		if err := core.ValidatePassage(passage); err != nil {
			return nil, err
		}
		passages = append(passages, passage)
	}

	added, err := p.passageRepository.AddPassages(ctx, passages...)
	if err != nil {
		return nil, err
	}

	// Queue embedding in batches.
	for start := 0; start < len(added); start += p.batchSize {
		end := start + p.batchSize
		if end > len(added) {
			end = len(added)
		}

		ids := make([]core.ID, 0, end-start)
		for _, passage := range added[start:end] {
			ids = append(ids, passage.Id)
		}

		p.pending.Add(1)
		task := func() {
			defer p.pending.Done()
			if err := p.embeddingProc.process(context.Background(), ids...); err != nil {
				p.logger.Error("error processing embeddings", "err", err)
			}
		}
		if err := p.embeddingPool.Submit(task); err != nil {
			// Pool unavailable; run inline so the batch is not lost.
			task()
		}
	}

	return added, nil
}

// Wait blocks until all queued embedding work has completed.
func (p *Pipeline) Wait() {
	p.pending.Wait()
}

// Release waits for queued work and releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	p.pending.Wait()
	if p.embeddingPool != nil {
		p.embeddingPool.Release()
	}
}
