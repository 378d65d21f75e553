package ai

import (
	"context"

	"github.com/scriptoria/loci/core"
)

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// QueryAnalyzer turns a free-form research question into structured
// search guidance: suggested metadata filters and the question's intent.
// Implementations must be thread-safe for concurrent use.
type QueryAnalyzer interface {
	// AnalyzeQuery analyzes a research question. Scripture references in
	// the returned filters are normalized to canonical form. Analysis is
	// advisory: an empty result is valid and means no filters apply.
	AnalyzeQuery(ctx context.Context, query string) (*QueryAnalysis, error)
}

// Summarizer produces a research summary grounded in ranked passages.
// Implementations must be thread-safe for concurrent use.
type Summarizer interface {
	// Summarize synthesizes an answer to the query from the given
	// results, citing the sources it drew from. The results must be in
	// rank order; implementations may use only the first few.
	Summarize(ctx context.Context, query string, results []*core.ScoredResult) (*ResearchSummary, error)
}

// AIProvider aggregates AI services for convenient initialization and
// lifecycle management. A provider creates and manages its service
// instances, ensuring they share configuration and resources.
type AIProvider interface {
	// Embedder returns the text embedding service.
	Embedder() Embedder

	// QueryAnalyzer returns the query analysis service.
	QueryAnalyzer() QueryAnalyzer

	// Summarizer returns the research summary service.
	Summarizer() Summarizer

	// Close releases resources held by the provider and its services.
	Close() error
}
