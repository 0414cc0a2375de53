// Package mock provides test double implementations of AI service interfaces.
//
// This package contains mock implementations of ai.Embedder, ai.Ranker,
// and ai.Provider for use in unit tests. The mocks allow tests to run without
// external AI service dependencies and enable controlled, deterministic behavior.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	mockProvider := mock.NewMockProvider()
//	embedding, err := mockProvider.Embedder().EmbedText(ctx, "test")
//
//	// Custom behavior injection
//	mockRanker := mock.NewMockRanker()
//	mockRanker.RankPapersFunc = func(ctx context.Context, query string, candidates []ai.Candidate) ([]ai.RankedRef, error) {
//	    return []ai.RankedRef{{PaperID: "paper_0", MatchReason: "fixture"}}, nil
//	}
//
//	// Check call counts
//	count := mockRanker.CallCount()
//
// # Default Behavior
//
// The mock implementations provide sensible defaults:
//
//   - MockEmbedder: Returns deterministic vectors based on text hash
//   - MockRanker: Ranks candidates by naive keyword overlap with the query
//   - MockProvider: Aggregates mock embedder and ranker
package mock
