package core

import (
	"encoding/binary"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// Paper IDs are derived from the paper title using content-based hashing,
// so the same title always maps to the same ID.
type ID uint64

// IDFromTitle generates a deterministic ID from a paper title using BLAKE2b hashing.
func IDFromTitle(title string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(title))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Paper represents a single accepted conference paper.
// The Vector field is populated only for papers stored in the index;
// corpus snapshots and the origin document carry metadata only, so the
// vector is excluded from JSON serialization.
type Paper struct {
	Title          string    `json:"title"`
	Authors        []string  `json:"authors"`
	Abstract       string    `json:"abstract"`
	PDF            string    `json:"pdf,omitempty"`
	Supp           string    `json:"supp,omitempty"`
	Arxiv          string    `json:"arxiv,omitempty"`
	Bibtex         string    `json:"bibtex,omitempty"`
	PosterSession  string    `json:"poster_session,omitempty"`
	PosterLocation string    `json:"poster_location,omitempty"`
	Vector         []float32 `json:"-"`
}

// ID returns the content-derived identifier for the paper.
func (p *Paper) ID() ID {
	return IDFromTitle(p.Title)
}

// EmbeddingText returns the text used to embed the paper, combining the
// title and abstract the same way the index was built.
func (p *Paper) EmbeddingText() string {
	return p.Title + " " + p.Abstract
}

// SimilarityMatch represents a paper match from vector similarity search.
type SimilarityMatch struct {
	Paper *Paper
	Score float32
}

// RankedPaper is a search result: full paper metadata plus the ranker's
// explanation of why the paper matches the query. Results are ordered by
// descending assessed relevance; no separate score is carried.
type RankedPaper struct {
	Paper
	MatchReason string `json:"match_reason"`
}
