package badger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teclalabs/paperscope/core"
	"github.com/teclalabs/paperscope/storage"
)

func newTestRepository(t *testing.T) storage.PaperRepository {
	t.Helper()

	repo, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})
	return repo
}

func TestUpsertAndGetPaper(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	paper := &core.Paper{
		Title:    "YOLO-X: Real-Time Detection",
		Authors:  []string{"A. Author"},
		Abstract: "We present a fast detector.",
		Vector:   []float32{1, 0, 0},
	}

	require.NoError(t, repo.UpsertPapers(ctx, paper))

	got, err := repo.GetPaper(ctx, paper.ID())
	require.NoError(t, err)
	assert.Equal(t, paper, got)

	byTitle, err := repo.GetPaperByTitle(ctx, paper.Title)
	require.NoError(t, err)
	assert.Equal(t, paper, byTitle)
}

func TestGetPaper_NotFound(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.GetPaper(context.Background(), core.IDFromTitle("missing"))
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestUpsertPapers_InvalidPaper(t *testing.T) {
	repo := newTestRepository(t)

	err := repo.UpsertPapers(context.Background(), &core.Paper{Abstract: "no title"})
	assert.ErrorIs(t, err, core.ErrInvalidPaper)
}

func TestUpsertPapers_OverwritesByTitle(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.UpsertPapers(ctx, &core.Paper{Title: "Some Paper", Abstract: "v1"}))
	require.NoError(t, repo.UpsertPapers(ctx, &core.Paper{Title: "Some Paper", Abstract: "v2"}))

	got, err := repo.GetPaper(ctx, core.IDFromTitle("Some Paper"))
	require.NoError(t, err)
	assert.Equal(t, "v2", got.Abstract)

	count, err := repo.CountPapers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestGetPapers_SkipsMissing(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.UpsertPapers(ctx,
		&core.Paper{Title: "Paper One"},
		&core.Paper{Title: "Paper Two"},
	))

	papers, err := repo.GetPapers(ctx,
		core.IDFromTitle("Paper One"),
		core.IDFromTitle("missing"),
		core.IDFromTitle("Paper Two"),
	)
	require.NoError(t, err)
	assert.Len(t, papers, 2)
}

func TestNearest(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.UpsertPapers(ctx,
		&core.Paper{Title: "Detection Paper", Vector: []float32{0.9, 0.1, 0}},
		&core.Paper{Title: "Segmentation Paper", Vector: []float32{0.7, 0.3, 0}},
		&core.Paper{Title: "Cooking Paper", Vector: []float32{0, 0.1, 0.9}},
		&core.Paper{Title: "No Embedding Paper"},
	))

	matches, err := repo.Nearest(ctx, []float32{1, 0, 0}, 2)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "Detection Paper", matches[0].Paper.Title)
	assert.Equal(t, "Segmentation Paper", matches[1].Paper.Title)
	assert.Greater(t, matches[0].Score, matches[1].Score)
}

func TestNearest_FewerThanK(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.UpsertPapers(ctx,
		&core.Paper{Title: "Only Paper", Vector: []float32{1, 0}},
	))

	matches, err := repo.Nearest(ctx, []float32{1, 0}, 15)
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestNearest_InvalidK(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.Nearest(context.Background(), []float32{1}, 0)
	assert.ErrorIs(t, err, storage.ErrInvalidQuery)
}

func TestNearest_EmptyIndex(t *testing.T) {
	repo := newTestRepository(t)

	matches, err := repo.Nearest(context.Background(), []float32{1, 0}, 15)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestCountPapers(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	count, err := repo.CountPapers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	require.NoError(t, repo.UpsertPapers(ctx,
		&core.Paper{Title: "Paper One"},
		&core.Paper{Title: "Paper Two"},
	))

	count, err = repo.CountPapers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
