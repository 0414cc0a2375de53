package mock

import (
	"context"
	"sort"
	"strings"

	"github.com/teclalabs/paperscope/ai"
)

// MockRanker is a test double for ai.Ranker.
// It allows custom behavior injection via function fields.
type MockRanker struct {
	// RankPapersFunc is called by RankPapers if set.
	// If nil, uses default keyword-overlap ranking.
	RankPapersFunc func(ctx context.Context, query string, candidates []ai.Candidate) ([]ai.RankedRef, error)

	callCount int
}

// NewMockRanker creates a mock ranker with default deterministic behavior.
// Note: Returns concrete type to allow test assertions via call counts.
func NewMockRanker() *MockRanker {
	return &MockRanker{}
}

// RankPapers ranks candidates by naive keyword overlap between the query
// and each candidate's title and abstract. The ranking is deterministic:
// ties are broken by the candidates' original order.
func (m *MockRanker) RankPapers(ctx context.Context, query string, candidates []ai.Candidate) ([]ai.RankedRef, error) {
	m.callCount++

	if m.RankPapersFunc != nil {
		return m.RankPapersFunc(ctx, query, candidates)
	}

	type scored struct {
		ref   ai.RankedRef
		score int
		order int
	}

	words := strings.Fields(strings.ToLower(query))
	results := make([]scored, 0, len(candidates))
	for i, c := range candidates {
		text := strings.ToLower(c.Title + " " + c.Abstract)
		score := 0
		for _, w := range words {
			if strings.Contains(text, w) {
				score++
			}
		}
		if score == 0 {
			continue
		}
		results = append(results, scored{
			ref: ai.RankedRef{
				PaperID:     c.ID,
				MatchReason: "keyword overlap with query: " + query,
			},
			score: score,
			order: i,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].score != results[j].score {
			return results[i].score > results[j].score
		}
		return results[i].order < results[j].order
	})

	refs := make([]ai.RankedRef, 0, len(results))
	for _, r := range results {
		refs = append(refs, r.ref)
	}
	if len(refs) > ai.MaxRankedPapers {
		refs = refs[:ai.MaxRankedPapers]
	}
	return refs, nil
}

// CallCount returns the number of times RankPapers was called.
func (m *MockRanker) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockRanker) Reset() {
	m.callCount = 0
	m.RankPapersFunc = nil
}
