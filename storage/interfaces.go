package storage

import (
	"context"

	"github.com/scriptoria/loci/core"
)

// SourceInfo summarizes one source work in the corpus.
type SourceInfo struct {
	Name     string
	Author   string
	Passages int
}

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// PassageRepository provides operations for managing corpus passages.
type PassageRepository interface {
	Repository

	// AddPassages adds one or more passages to storage.
	// For passages with ID=0, derives the content-based ID from
	// (Source, Text). Sets IngestedAt if not already set. Re-adding an
	// existing ID overwrites the stored record without duplicating it
	// in the ingestion order, so ingestion is idempotent.
	// Returns the passages with IDs and timestamps populated.
	AddPassages(ctx context.Context, passages ...*core.Passage) ([]*core.Passage, error)

	// UpdatePassages updates existing passages.
	// Updates the UpdatedAt timestamp automatically.
	// Returns ErrNotFound if any passage doesn't exist.
	UpdatePassages(ctx context.Context, passages ...*core.Passage) ([]*core.Passage, error)

	// DeletePassages removes passages by their IDs.
	// Also removes associated indices.
	// Returns ErrNotFound if any passage doesn't exist.
	DeletePassages(ctx context.Context, ids ...core.ID) error

	// GetPassage retrieves a single passage by ID.
	// Returns ErrNotFound if the passage doesn't exist.
	GetPassage(ctx context.Context, id core.ID) (*core.Passage, error)

	// GetPassages retrieves multiple passages by their IDs.
	// Returns only the passages that exist (no error for missing ones).
	GetPassages(ctx context.Context, ids ...core.ID) ([]*core.Passage, error)

	// GetPassagesBySource retrieves every passage belonging to a source,
	// in ingestion order.
	GetPassagesBySource(ctx context.Context, source string) ([]*core.Passage, error)

	// GetAllPassages retrieves the whole corpus in ingestion order
	// (IngestedAt, then ID). This ordering feeds snapshot construction
	// and must be stable across calls.
	GetAllPassages(ctx context.Context) ([]*core.Passage, error)

	// Sources returns the catalog of source works present in the
	// corpus, ordered by name.
	Sources(ctx context.Context) ([]SourceInfo, error)
}
