package openai

import (
	"encoding/json"
	"fmt"

	"github.com/teclalabs/paperscope/ai"
)

const rankingPromptTemplate = `Given this list of conference papers:
%s

And this user query: "%s"

Find the top %d most relevant papers that match the query. Consider:
1. Title relevance
2. Abstract content
3. Research area/category
4. Keywords and technical terms

For each selected paper, explain why it is relevant to the query: how the
paper's research aligns with the query, which technical contributions match
it, and why someone interested in this query should read this paper.

Return your response as a JSON array with these fields for each paper:
- "paper_id": The ID of the paper (e.g., "paper_0")
- "match_reason": A detailed explanation of why this paper matches the query and why it should be read

Sort the papers by relevance to the query, most relevant first. Return only
the top %d most relevant papers. Your response must be ONLY the JSON array,
with no additional text or explanation.`

// buildRankingPrompt renders the ranking prompt for the given query and
// candidate set. Candidates are serialized as a JSON object keyed by their
// ephemeral ids so the model can refer to papers by id alone.
func buildRankingPrompt(query string, candidates []ai.Candidate) (string, error) {
	byID := make(map[string]ai.Candidate, len(candidates))
	for _, c := range candidates {
		byID[c.ID] = c
	}

	listing, err := json.MarshalIndent(byID, "", "  ")
	if err != nil {
		return "", err
	}

	return fmt.Sprintf(rankingPromptTemplate, listing, query, ai.MaxRankedPapers, ai.MaxRankedPapers), nil
}
