// Copyright 2025 Scriptoria Labs
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
	"fmt"
	"log/slog"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/scriptoria/loci/ai"
	"github.com/scriptoria/loci/core"
	"github.com/scriptoria/loci/scripture"
)

// QueryAnalyzer implements ai.QueryAnalyzer using OpenAI-compatible chat APIs.
type QueryAnalyzer struct {
	client llms.Model
	logger *slog.Logger
}

// analysisResponse is an internal type used for JSON unmarshaling.
// It matches the structure expected from the LLM.
type analysisResponse struct {
	Intent            string   `json:"intent"`
	Concepts          []string `json:"concepts"`
	DiscourseElements []string `json:"discourse_elements"`
	ScriptureRefs     []string `json:"scripture_references"`
	NamedEntities     []string `json:"named_entities"`
	Sources           []string `json:"sources"`
	Authors           []string `json:"authors"`
}

// newQueryAnalyzer is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newQueryAnalyzer(config *ai.Config) (*QueryAnalyzer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Use "none" as token for local OpenAI-compatible services that
	// don't require authentication
	client, err := openai.New(
		openai.WithBaseURL(config.ChatHost),
		openai.WithToken("none"),
		openai.WithModel(config.ChatModel),
	)
	if err != nil {
		return nil, err
	}

	return &QueryAnalyzer{
		client: client,
		logger: slog.Default().With("component", "openai-analyzer"),
	}, nil
}

// NewQueryAnalyzer creates a new query analyzer using the provided configuration.
//
// Returns ai.QueryAnalyzer interface to enforce abstraction.
func NewQueryAnalyzer(config *ai.Config) (ai.QueryAnalyzer, error) {
	return newQueryAnalyzer(config)
}

// AnalyzeQuery analyzes a research question with an LLM and returns
// suggested filters with scripture references in canonical form.
func (a *QueryAnalyzer) AnalyzeQuery(ctx context.Context, query string) (*ai.QueryAnalysis, error) {
	systemPrompt := fmt.Sprintf(analysisPromptTemplate, analysisResponseSchema)
	content := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(systemPrompt)},
		},
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(query)},
		},
	}

	// Try up to 3 times in case of malformed JSON
	var result analysisResponse
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		response, err := a.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
		if err != nil {
			a.logger.Error("failed to generate content", "attempt", attempt+1, "err", err)
			return nil, err
		}

		if len(response.Choices) < 1 {
			a.logger.Debug("no choices returned from model")
			return &ai.QueryAnalysis{}, nil
		}

		responseText := stripCodeFences(response.Choices[0].Content)
		responseText = repairJSON(responseText)

		if err := json.Unmarshal([]byte(responseText), &result); err != nil {
			lastErr = err
			a.logger.Warn("error parsing analyzer response",
				"attempt", attempt+1,
				"response", responseText,
				"err", err)
			continue
		}

		lastErr = nil
		break
	}

	if lastErr != nil {
		a.logger.Error("failed to parse analyzer response after retries", "err", lastErr)
		return nil, lastErr
	}

	analysis := &ai.QueryAnalysis{
		Intent: strings.TrimSpace(result.Intent),
		Filters: core.SuggestedFilters{
			Concepts:          dedupe(result.Concepts),
			DiscourseElements: dedupe(result.DiscourseElements),
			ScriptureRefs:     a.normalizeRefs(result.ScriptureRefs),
			NamedEntities:     dedupe(result.NamedEntities),
			Sources:           dedupe(result.Sources),
			Authors:           dedupe(result.Authors),
		},
	}

	a.logger.Debug("analyzed query",
		"intent", analysis.Intent,
		"refs", analysis.Filters.ScriptureRefs)
	return analysis, nil
}

// normalizeRefs canonicalizes scripture references, dropping the ones
// that cannot be resolved to a canonical book.
func (a *QueryAnalyzer) normalizeRefs(refs []string) []string {
	var out []string
	seen := make(map[string]bool, len(refs))
	for _, raw := range refs {
		ref, err := scripture.Normalize(raw)
		if err != nil {
			a.logger.Warn("dropping unresolvable scripture reference", "ref", raw)
			continue
		}
		canonical := ref.String()
		if !seen[canonical] {
			seen[canonical] = true
			out = append(out, canonical)
		}
	}
	return out
}

// dedupe removes duplicates and blank entries, keeping first-seen order.
func dedupe(values []string) []string {
	var out []string
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
