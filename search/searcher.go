package search

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/teclalabs/paperscope/ai"
	"github.com/teclalabs/paperscope/core"
	"github.com/teclalabs/paperscope/storage"
)

// DefaultCandidateLimit is how many nearest neighbors the vector stage hands
// to the ranker for re-ranking.
const DefaultCandidateLimit = 15

const (
	defaultEmbedTimeout = 30 * time.Second
	defaultRankTimeout  = 90 * time.Second
)

// CorpusProvider supplies the paper metadata the index was built from.
// An empty corpus means there is nothing meaningful to search.
type CorpusProvider interface {
	GetCorpus(ctx context.Context) map[string]*core.Paper
}

// Searcher implements two-stage semantic paper search: a vector similarity
// pass over the stored embeddings narrows the corpus to a small candidate
// set, then a language model re-ranks the candidates and explains each match.
type Searcher struct {
	papers         storage.PaperRepository
	corpus         CorpusProvider
	embedder       ai.Embedder
	ranker         ai.Ranker
	candidateLimit int
	embedTimeout   time.Duration
	rankTimeout    time.Duration
	logger         *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithCandidateLimit sets how many vector matches are handed to the ranker.
// Default is DefaultCandidateLimit.
func WithCandidateLimit(limit int) Option {
	return func(s *Searcher) error {
		if limit <= 0 {
			return ErrInvalidCandidateLimit
		}
		s.candidateLimit = limit
		return nil
	}
}

// WithEmbedTimeout bounds the query embedding stage.
func WithEmbedTimeout(timeout time.Duration) Option {
	return func(s *Searcher) error {
		if timeout <= 0 {
			return ErrInvalidTimeout
		}
		s.embedTimeout = timeout
		return nil
	}
}

// WithRankTimeout bounds the re-ranking stage.
func WithRankTimeout(timeout time.Duration) Option {
	return func(s *Searcher) error {
		if timeout <= 0 {
			return ErrInvalidTimeout
		}
		s.rankTimeout = timeout
		return nil
	}
}

// NewSearcher creates a new searcher.
func NewSearcher(
	papers storage.PaperRepository,
	corpus CorpusProvider,
	provider ai.Provider,
	opts ...Option,
) (*Searcher, error) {
	if papers == nil {
		return nil, ErrPaperRepositoryRequired
	}
	if corpus == nil {
		return nil, ErrCorpusProviderRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	s := &Searcher{
		papers:         papers,
		corpus:         corpus,
		embedder:       provider.Embedder(),
		ranker:         provider.Ranker(),
		candidateLimit: DefaultCandidateLimit,
		embedTimeout:   defaultEmbedTimeout,
		rankTimeout:    defaultRankTimeout,
		logger:         slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Search runs the full pipeline for a natural language query and returns up
// to ai.MaxRankedPapers results, each with a one-sentence match explanation.
//
// Search never fails: any stage error is logged and degrades to an empty
// result set, so callers can always render what comes back.
func (s *Searcher) Search(ctx context.Context, query string) []core.RankedPaper {
	return s.SearchWithMonitor(ctx, query, nil)
}

// SearchWithMonitor runs the pipeline with monitoring.
// The monitor receives callbacks at each stage of the search process.
func (s *Searcher) SearchWithMonitor(ctx context.Context, query string, monitor SearchMonitor) []core.RankedPaper {
	// Use noop monitor if none provided
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return []core.RankedPaper{}
	}

	monitor.Start(query)
	results := s.run(ctx, query, monitor)
	monitor.Finish(results)
	return results
}

// run executes the pipeline stages. Every failure path returns an empty
// slice so the caller always finishes with a well-formed result.
func (s *Searcher) run(ctx context.Context, query string, monitor SearchMonitor) []core.RankedPaper {
	// The corpus gate: without paper metadata there is nothing to search,
	// regardless of what the vector index holds.
	papers := s.corpus.GetCorpus(ctx)
	if len(papers) == 0 {
		s.logger.Warn("corpus unavailable, returning no results", "query", query)
		return []core.RankedPaper{}
	}
	monitor.AfterCorpusLoad(len(papers))

	// 1. Embed the query
	embedCtx, cancel := context.WithTimeout(ctx, s.embedTimeout)
	embedding, err := s.embedder.EmbedText(embedCtx, query)
	cancel()
	if err != nil {
		s.logger.Error("error generating embedding for query", "query", query, "err", err)
		return []core.RankedPaper{}
	}
	// A zero-length vector would score every paper identically, turning a
	// failed embed into arbitrary matches
	if len(embedding) == 0 {
		s.logger.Error("embedding service returned an empty vector", "query", query)
		return []core.RankedPaper{}
	}
	monitor.AfterEmbedding(len(embedding))

	// 2. Vector similarity over the stored embeddings
	matches, err := s.papers.Nearest(ctx, embedding, s.candidateLimit)
	if err != nil {
		s.logger.Error("error querying for similar papers", "err", err)
		return []core.RankedPaper{}
	}
	monitor.AfterVectorSearch(matches)

	if len(matches) == 0 {
		return []core.RankedPaper{}
	}

	// 3. Re-rank the candidates with the language model
	results, err := s.rankMatches(ctx, query, matches, monitor)
	if err != nil {
		s.logger.Error("error re-ranking candidate papers", "query", query, "err", err)
		return []core.RankedPaper{}
	}

	return results
}

// rankMatches hands the candidate set to the ranker under positional local
// ids and resolves the returned references back to papers. References the
// ranker invented, duplicated, or left incomplete are dropped.
func (s *Searcher) rankMatches(ctx context.Context, query string, matches []*core.SimilarityMatch, monitor SearchMonitor) ([]core.RankedPaper, error) {
	candidates := make([]ai.Candidate, 0, len(matches))
	byLocalID := make(map[string]*core.Paper, len(matches))
	for i, match := range matches {
		localID := fmt.Sprintf("paper_%d", i)
		candidates = append(candidates, ai.Candidate{
			ID:       localID,
			Title:    match.Paper.Title,
			Abstract: match.Paper.Abstract,
		})
		byLocalID[localID] = match.Paper
	}

	rankCtx, cancel := context.WithTimeout(ctx, s.rankTimeout)
	defer cancel()

	refs, err := s.ranker.RankPapers(rankCtx, query, candidates)
	if err != nil {
		return nil, err
	}

	results := make([]core.RankedPaper, 0, len(refs))
	seen := make(map[string]bool, len(refs))
	for _, ref := range refs {
		if seen[ref.PaperID] {
			s.logger.Warn("ranker returned duplicate paper id", "paperID", ref.PaperID)
			monitor.DroppedRankerRef(ref.PaperID)
			continue
		}
		seen[ref.PaperID] = true

		paper, ok := byLocalID[ref.PaperID]
		if !ok {
			s.logger.Warn("ranker returned unknown paper id", "paperID", ref.PaperID)
			monitor.DroppedRankerRef(ref.PaperID)
			continue
		}

		results = append(results, core.RankedPaper{
			Paper:       *paper,
			MatchReason: ref.MatchReason,
		})
		if len(results) == ai.MaxRankedPapers {
			break
		}
	}

	return results, nil
}
