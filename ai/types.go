package ai

// MaxRankedPapers is the maximum number of papers a Ranker may return for
// one query. Rankers enforce it on their own output; callers may clamp
// defensively as well since model output is not trustworthy.
const MaxRankedPapers = 5

// Candidate is the slice of a paper the ranker sees: an ephemeral id plus
// the title and abstract. The id is valid only within one query and lets
// the ranker refer to a candidate without re-transmitting its payload.
type Candidate struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Abstract string `json:"abstract"`
}

// RankedRef is one entry of a ranker's response: the candidate id and the
// generated explanation of why the paper matches the query.
type RankedRef struct {
	PaperID     string `json:"paper_id"`
	MatchReason string `json:"match_reason"`
}
