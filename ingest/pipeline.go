package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sort"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/teclalabs/paperscope/ai"
	"github.com/teclalabs/paperscope/core"
	"github.com/teclalabs/paperscope/storage"
)

// DefaultBatchSize is how many papers are embedded per request.
const DefaultBatchSize = 32

// Pipeline orchestrates building the vector index from corpus metadata.
// It embeds papers in concurrent batches and writes them to storage.
type Pipeline struct {
	papers    storage.PaperRepository
	embedder  ai.Embedder
	pool      *ants.Pool
	batchSize int
	logger    *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent embedding batches.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		// Release old pool
		if p.pool != nil {
			p.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithBatchSize sets how many papers are embedded per request.
// Default is DefaultBatchSize.
func WithBatchSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			return ErrInvalidBatchSize
		}
		p.batchSize = size
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

// NewPipeline creates a new indexing pipeline.
func NewPipeline(
	papers storage.PaperRepository,
	provider ai.Provider,
	opts ...Option,
) (*Pipeline, error) {
	if papers == nil {
		return nil, ErrPaperRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	// Default pool size
	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		papers:    papers,
		embedder:  provider.Embedder(),
		pool:      pool,
		batchSize: DefaultBatchSize,
		logger:    slog.Default(),
	}

	// Apply options (may override defaults)
	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// Stats summarizes an indexing run.
type Stats struct {
	Total   int // papers in the corpus
	Indexed int // papers embedded and written to storage
	Skipped int // papers that failed validation
	Failed  int // papers lost to failed embedding or storage batches
}

// IngestCorpus embeds every valid paper in the corpus and writes the results
// to storage. Papers are processed in batches across the worker pool; the
// call blocks until all batches complete. Batch failures are logged and
// reflected in the returned stats, they do not abort the run.
func (p *Pipeline) IngestCorpus(ctx context.Context, corpus map[string]*core.Paper) (*Stats, error) {
	stats := &Stats{Total: len(corpus)}

	// Deterministic order regardless of map iteration
	titles := make([]string, 0, len(corpus))
	for title := range corpus {
		titles = append(titles, title)
	}
	sort.Strings(titles)

	valid := make([]*core.Paper, 0, len(titles))
	for _, title := range titles {
		paper := corpus[title]
		if err := core.ValidatePaper(paper); err != nil {
			p.logger.Warn("skipping invalid corpus entry", "title", title, "err", err)
			stats.Skipped++
			continue
		}
		valid = append(valid, paper)
	}

	if len(valid) == 0 {
		return stats, nil
	}

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)

	for start := 0; start < len(valid); start += p.batchSize {
		end := start + p.batchSize
		if end > len(valid) {
			end = len(valid)
		}
		batch := valid[start:end]

		wg.Add(1)
		submitErr := p.pool.Submit(func() {
			defer wg.Done()

			if err := p.indexBatch(ctx, batch); err != nil {
				p.logger.Error("error indexing batch", "papers", len(batch), "err", err)
				mu.Lock()
				stats.Failed += len(batch)
				mu.Unlock()
				return
			}

			mu.Lock()
			stats.Indexed += len(batch)
			mu.Unlock()
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			stats.Failed += len(batch)
			mu.Unlock()
			p.logger.Error("error submitting batch to pool", "err", submitErr)
		}
	}

	wg.Wait()

	p.logger.Info("corpus indexing complete",
		"total", stats.Total, "indexed", stats.Indexed,
		"skipped", stats.Skipped, "failed", stats.Failed)
	return stats, nil
}

// indexBatch embeds one batch of papers and upserts the results.
func (p *Pipeline) indexBatch(ctx context.Context, batch []*core.Paper) error {
	texts := make([]string, len(batch))
	for i, paper := range batch {
		texts[i] = paper.EmbeddingText()
	}

	embeddings, err := p.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return err
	}
	if len(embeddings) != len(batch) {
		return fmt.Errorf("embedding result mismatch. expected %d, received %d", len(batch), len(embeddings))
	}

	for i := range embeddings {
		batch[i].Vector = embeddings[i]
	}

	return p.papers.UpsertPapers(ctx, batch...)
}

// Release releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
