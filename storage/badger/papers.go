package badger

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/teclalabs/paperscope/core"
	"github.com/teclalabs/paperscope/storage"
)

// Key prefix for paper records.
const paperRecordPrefix = "paper"

// makePaperKey generates a key for a paper record by ID.
func makePaperKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", paperRecordPrefix, id))
}

// PaperRepository implements storage.PaperRepository for BadgerDB.
type PaperRepository struct {
	backend *Backend
}

var _ storage.PaperRepository = (*PaperRepository)(nil)

// NewPaperRepository creates a new PaperRepository.
//
// Returns storage.PaperRepository interface to enforce abstraction.
func NewPaperRepository(backend *Backend) storage.PaperRepository {
	return &PaperRepository{backend: backend}
}

// Close is a no-op; the backend owns the database lifecycle.
func (r *PaperRepository) Close() error {
	return nil
}

// Nearest delegates to the backend.
func (r *PaperRepository) Nearest(ctx context.Context, vector []float32, k int) ([]*core.SimilarityMatch, error) {
	return r.backend.Nearest(ctx, vector, k)
}

// WithTransaction delegates to the backend.
func (r *PaperRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// UpsertPapers inserts or replaces papers in the index.
// IDs are content-derived from titles, so the operation is idempotent for
// an unchanged corpus.
func (r *PaperRepository) UpsertPapers(ctx context.Context, papers ...*core.Paper) error {
	for _, paper := range papers {
		if err := core.ValidatePaper(paper); err != nil {
			return err
		}
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, paper := range papers {
			if err := ctx.Err(); err != nil {
				return err
			}
			key := makePaperKey(paper.ID())
			if err := tx.Set(key, storage.MarshalPaper(paper)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetPaper retrieves a single paper by ID.
func (r *PaperRepository) GetPaper(ctx context.Context, id core.ID) (*core.Paper, error) {
	var paper *core.Paper

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makePaperKey(id))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			var err error
			paper, err = storage.UnmarshalPaper(val)
			return err
		})
	}, false)

	if err != nil {
		return nil, err
	}
	return paper, nil
}

// GetPapers retrieves multiple papers by their IDs.
// Missing papers are skipped without error.
func (r *PaperRepository) GetPapers(ctx context.Context, ids ...core.ID) ([]*core.Paper, error) {
	papers := make([]*core.Paper, 0, len(ids))

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			if err := ctx.Err(); err != nil {
				return err
			}
			item, err := tx.Get(makePaperKey(id))
			if err != nil {
				if errors.Is(err, badger.ErrKeyNotFound) {
					continue
				}
				return err
			}
			err = item.Value(func(val []byte) error {
				paper, err := storage.UnmarshalPaper(val)
				if err != nil {
					return err
				}
				papers = append(papers, paper)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)

	if err != nil {
		return nil, err
	}
	return papers, nil
}

// GetPaperByTitle retrieves a paper by its title.
func (r *PaperRepository) GetPaperByTitle(ctx context.Context, title string) (*core.Paper, error) {
	return r.GetPaper(ctx, core.IDFromTitle(title))
}

// CountPapers returns the number of papers in the index.
func (r *PaperRepository) CountPapers(ctx context.Context) (int, error) {
	count := 0

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(paperRecordPrefix + ":")
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)

	if err != nil {
		return 0, err
	}
	return count, nil
}
