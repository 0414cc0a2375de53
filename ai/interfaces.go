package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// Batch processing is more efficient than calling EmbedText multiple times.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Ranker orders candidate papers by relevance to a query and attaches an
// explanation to each selected paper.
// Implementations must be thread-safe for concurrent use.
type Ranker interface {
	// RankPapers selects and orders the most relevant candidates for the
	// query, most relevant first. Each returned reference names a candidate
	// by its id and carries a human-readable match reason.
	// Returns at most MaxRankedPapers references; the ordering of the
	// returned slice IS the relevance ordering, no score is attached.
	// Returns an error if ranking fails or the model response cannot be
	// parsed; callers are expected to degrade to an empty result.
	RankPapers(ctx context.Context, query string, candidates []Candidate) ([]RankedRef, error)
}

// Provider aggregates AI services for convenient initialization and lifecycle management.
// A provider creates and manages Embedder and Ranker instances,
// ensuring they share configuration and resources appropriately.
type Provider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// Ranker returns the relevance ranking service.
	// The returned Ranker is safe for concurrent use.
	Ranker() Ranker

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
