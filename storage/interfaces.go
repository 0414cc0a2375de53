package storage

import (
	"context"

	"github.com/teclalabs/paperscope/core"
)

// PaperRepository provides operations for managing the indexed paper corpus.
// Implementations must be thread-safe and support concurrent access.
type PaperRepository interface {
	// Nearest finds the k papers whose embedding vectors are closest to the
	// given query vector. Results are ordered by similarity (highest first)
	// and papers without an embedding are skipped. Returns fewer than k
	// matches when the index holds fewer embedded papers.
	Nearest(ctx context.Context, vector []float32, k int) ([]*core.SimilarityMatch, error)

	// UpsertPapers inserts or replaces papers in the index.
	// Paper IDs are content-derived from titles, so re-ingesting the same
	// corpus overwrites records in place.
	// Returns core.ErrInvalidPaper if any paper fails validation.
	UpsertPapers(ctx context.Context, papers ...*core.Paper) error

	// GetPaper retrieves a single paper by ID.
	// Returns ErrNotFound if the paper doesn't exist.
	GetPaper(ctx context.Context, id core.ID) (*core.Paper, error)

	// GetPapers retrieves multiple papers by their IDs.
	// Returns only the papers that exist (no error for missing papers).
	GetPapers(ctx context.Context, ids ...core.ID) ([]*core.Paper, error)

	// GetPaperByTitle retrieves a paper by its title, the corpus key.
	// Returns ErrNotFound if no such paper is indexed.
	GetPaperByTitle(ctx context.Context, title string) (*core.Paper, error)

	// CountPapers returns the number of papers in the index.
	CountPapers(ctx context.Context) (int, error)

	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}
