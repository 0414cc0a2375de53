package search

import (
	"github.com/teclalabs/paperscope/core"
)

// SearchMonitor provides hooks to observe the search process.
// Implement this interface to track intermediate steps and results during search.
type SearchMonitor interface {
	Start(query string)
	AfterCorpusLoad(paperCount int)
	AfterEmbedding(dimensions int)
	AfterVectorSearch(matches []*core.SimilarityMatch)
	DroppedRankerRef(paperID string)
	Finish(results []core.RankedPaper)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                              {}
func (n *noopMonitor) AfterCorpusLoad(_ int)                       {}
func (n *noopMonitor) AfterEmbedding(_ int)                        {}
func (n *noopMonitor) AfterVectorSearch(_ []*core.SimilarityMatch) {}
func (n *noopMonitor) DroppedRankerRef(_ string)                   {}
func (n *noopMonitor) Finish(_ []core.RankedPaper)                 {}
