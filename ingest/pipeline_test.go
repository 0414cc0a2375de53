package ingest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teclalabs/paperscope/ai/mock"
	"github.com/teclalabs/paperscope/core"
	"github.com/teclalabs/paperscope/storage"
	"github.com/teclalabs/paperscope/storage/badger"
)

func newTestRepo(t *testing.T) storage.PaperRepository {
	t.Helper()

	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})
	return repo
}

func testCorpus(n int) map[string]*core.Paper {
	corpus := make(map[string]*core.Paper, n)
	for i := 0; i < n; i++ {
		title := fmt.Sprintf("Paper %03d", i)
		corpus[title] = &core.Paper{
			Title:    title,
			Abstract: fmt.Sprintf("Abstract for paper %d.", i),
		}
	}
	return corpus
}

func TestNewPipeline(t *testing.T) {
	repo := newTestRepo(t)
	provider := mock.NewMockProvider()

	t.Run("valid configuration", func(t *testing.T) {
		pipeline, err := NewPipeline(repo, provider)
		require.NoError(t, err)
		assert.NotNil(t, pipeline)
		pipeline.Release()
	})

	t.Run("nil paper repository", func(t *testing.T) {
		_, err := NewPipeline(nil, provider)
		assert.Equal(t, ErrPaperRepositoryRequired, err)
	})

	t.Run("nil provider", func(t *testing.T) {
		_, err := NewPipeline(repo, nil)
		assert.Equal(t, ErrAIProviderRequired, err)
	})

	t.Run("invalid batch size", func(t *testing.T) {
		_, err := NewPipeline(repo, provider, WithBatchSize(0))
		assert.Equal(t, ErrInvalidBatchSize, err)
	})

	t.Run("pool size floor", func(t *testing.T) {
		pipeline, err := NewPipeline(repo, provider, WithPoolSize(-3))
		require.NoError(t, err)
		assert.NotNil(t, pipeline)
		pipeline.Release()
	})
}

func TestIngestCorpus_IndexesAllPapers(t *testing.T) {
	repo := newTestRepo(t)

	pipeline, err := NewPipeline(repo, mock.NewMockProvider(), WithBatchSize(4))
	require.NoError(t, err)
	defer pipeline.Release()

	ctx := context.Background()
	corpus := testCorpus(10)

	stats, err := pipeline.IngestCorpus(ctx, corpus)
	require.NoError(t, err)
	assert.Equal(t, 10, stats.Total)
	assert.Equal(t, 10, stats.Indexed)
	assert.Equal(t, 0, stats.Skipped)
	assert.Equal(t, 0, stats.Failed)

	count, err := repo.CountPapers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10, count)

	// Every stored paper carries its embedding
	paper, err := repo.GetPaperByTitle(ctx, "Paper 003")
	require.NoError(t, err)
	assert.Len(t, paper.Vector, 384)
}

func TestIngestCorpus_EmptyCorpus(t *testing.T) {
	repo := newTestRepo(t)

	pipeline, err := NewPipeline(repo, mock.NewMockProvider())
	require.NoError(t, err)
	defer pipeline.Release()

	stats, err := pipeline.IngestCorpus(context.Background(), map[string]*core.Paper{})
	require.NoError(t, err)
	assert.Equal(t, &Stats{}, stats)
}

func TestIngestCorpus_SkipsInvalidEntries(t *testing.T) {
	repo := newTestRepo(t)

	pipeline, err := NewPipeline(repo, mock.NewMockProvider())
	require.NoError(t, err)
	defer pipeline.Release()

	corpus := map[string]*core.Paper{
		"Good Paper": {Title: "Good Paper", Abstract: "fine"},
		"No Title":   {Abstract: "missing title"},
		"Nil Entry":  nil,
	}

	stats, err := pipeline.IngestCorpus(context.Background(), corpus)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 1, stats.Indexed)
	assert.Equal(t, 2, stats.Skipped)

	count, err := repo.CountPapers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestIngestCorpus_EmbeddingFailureCountsBatch(t *testing.T) {
	repo := newTestRepo(t)

	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, errors.New("embedding service down")
	}
	provider := mock.NewMockProviderWithServices(embedder, mock.NewMockRanker())

	pipeline, err := NewPipeline(repo, provider, WithBatchSize(5))
	require.NoError(t, err)
	defer pipeline.Release()

	stats, err := pipeline.IngestCorpus(context.Background(), testCorpus(10))
	require.NoError(t, err)
	assert.Equal(t, 10, stats.Total)
	assert.Equal(t, 0, stats.Indexed)
	assert.Equal(t, 10, stats.Failed)

	count, err := repo.CountPapers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestIngestCorpus_PartialBatchFailure(t *testing.T) {
	repo := newTestRepo(t)

	var mu sync.Mutex
	failNext := true
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		mu.Lock()
		fail := failNext
		failNext = false
		mu.Unlock()
		if fail {
			return nil, errors.New("transient failure")
		}
		embeddings := make([][]float32, len(texts))
		for i := range texts {
			embeddings[i] = []float32{1, 0, 0}
		}
		return embeddings, nil
	}
	provider := mock.NewMockProviderWithServices(embedder, mock.NewMockRanker())

	// Single worker keeps the failure on a predictable batch
	pipeline, err := NewPipeline(repo, provider, WithBatchSize(5), WithPoolSize(1))
	require.NoError(t, err)
	defer pipeline.Release()

	stats, err := pipeline.IngestCorpus(context.Background(), testCorpus(10))
	require.NoError(t, err)
	assert.Equal(t, 5, stats.Indexed)
	assert.Equal(t, 5, stats.Failed)

	count, err := repo.CountPapers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, count)
}

func TestIngestCorpus_BatchSizeRespected(t *testing.T) {
	repo := newTestRepo(t)

	var mu sync.Mutex
	var batchSizes []int
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		mu.Lock()
		batchSizes = append(batchSizes, len(texts))
		mu.Unlock()
		embeddings := make([][]float32, len(texts))
		for i := range texts {
			embeddings[i] = []float32{1, 0, 0}
		}
		return embeddings, nil
	}
	provider := mock.NewMockProviderWithServices(embedder, mock.NewMockRanker())

	pipeline, err := NewPipeline(repo, provider, WithBatchSize(4))
	require.NoError(t, err)
	defer pipeline.Release()

	_, err = pipeline.IngestCorpus(context.Background(), testCorpus(10))
	require.NoError(t, err)

	total := 0
	for _, size := range batchSizes {
		assert.LessOrEqual(t, size, 4)
		total += size
	}
	assert.Equal(t, 10, total)
}

func TestIngestCorpus_ReindexIsIdempotent(t *testing.T) {
	repo := newTestRepo(t)

	pipeline, err := NewPipeline(repo, mock.NewMockProvider())
	require.NoError(t, err)
	defer pipeline.Release()

	ctx := context.Background()
	corpus := testCorpus(6)

	_, err = pipeline.IngestCorpus(ctx, corpus)
	require.NoError(t, err)
	_, err = pipeline.IngestCorpus(ctx, corpus)
	require.NoError(t, err)

	// Same titles map to the same ids, so a rerun overwrites in place
	count, err := repo.CountPapers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 6, count)
}
