// Copyright 2025 Tecla Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package openai

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/teclalabs/paperscope/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// maxAbstractRunes bounds the abstract text sent per candidate so the
// prompt stays inside the model's context window for a full candidate set.
const maxAbstractRunes = 1500

// Ranker implements ai.Ranker using OpenAI-compatible chat APIs.
type Ranker struct {
	client llms.Model
	logger *slog.Logger
}

// newRanker is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newRanker(config *ai.Config) (*Ranker, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.RankerHost),
		openai.WithToken(config.Token),
		openai.WithModel(config.RankerModel),
	)
	if err != nil {
		return nil, err
	}

	return &Ranker{
		client: client,
		logger: slog.Default().With("component", "openai-ranker"),
	}, nil
}

// NewRanker creates a new relevance ranker using the provided configuration.
//
// Returns ai.Ranker interface to enforce abstraction.
func NewRanker(config *ai.Config) (ai.Ranker, error) {
	return newRanker(config)
}

// RankPapers asks the model to select and order the most relevant
// candidates for the query. The model response must be a bare JSON array
// of {paper_id, match_reason} objects; anything else is treated as a
// malformed response. Output is clamped to ai.MaxRankedPapers entries.
func (r *Ranker) RankPapers(ctx context.Context, query string, candidates []ai.Candidate) ([]ai.RankedRef, error) {
	if len(candidates) == 0 {
		return []ai.RankedRef{}, nil
	}

	prompt, err := buildRankingPrompt(query, truncateAbstracts(candidates))
	if err != nil {
		return nil, err
	}

	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(prompt),
			},
		},
	}

	// Try up to 3 times in case of malformed JSON
	var refs []ai.RankedRef
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		response, err := r.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
		if err != nil {
			r.logger.Error("failed to generate content", "attempt", attempt+1, "err", err)
			return nil, err
		}

		if len(response.Choices) < 1 {
			r.logger.Debug("no choices returned from model")
			return []ai.RankedRef{}, nil
		}

		refs, err = parseRankerResponse(response.Choices[0].Content)
		if err != nil {
			lastErr = err
			r.logger.Warn("error parsing ranker response",
				"attempt", attempt+1,
				"err", err)
			continue
		}

		// Success
		lastErr = nil
		break
	}

	if lastErr != nil {
		r.logger.Error("failed to parse ranker response after retries", "err", lastErr)
		return nil, lastErr
	}

	r.logger.Debug("ranked candidates", "candidates", len(candidates), "returned", len(refs))
	return refs, nil
}

// parseRankerResponse decodes the model output into ranked references.
// It tolerates markdown code fences and common JSON slips, drops entries
// missing either field, and clamps the result to ai.MaxRankedPapers.
func parseRankerResponse(text string) ([]ai.RankedRef, error) {
	// Strip markdown code fences if present
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	// Try to repair common JSON issues
	text = repairJSON(text)

	var refs []ai.RankedRef
	if err := json.Unmarshal([]byte(text), &refs); err != nil {
		return nil, err
	}

	filtered := make([]ai.RankedRef, 0, len(refs))
	for _, ref := range refs {
		if ref.PaperID == "" || ref.MatchReason == "" {
			continue
		}
		filtered = append(filtered, ref)
	}

	if len(filtered) > ai.MaxRankedPapers {
		filtered = filtered[:ai.MaxRankedPapers]
	}
	return filtered, nil
}

// truncateAbstracts caps each candidate's abstract at maxAbstractRunes.
func truncateAbstracts(candidates []ai.Candidate) []ai.Candidate {
	out := make([]ai.Candidate, len(candidates))
	for i, c := range candidates {
		if runes := []rune(c.Abstract); len(runes) > maxAbstractRunes {
			c.Abstract = string(runes[:maxAbstractRunes])
		}
		out[i] = c
	}
	return out
}
