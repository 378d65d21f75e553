package openai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/scriptoria/loci/ai"
	"github.com/scriptoria/loci/core"
)

// Summarizer implements ai.Summarizer using OpenAI-compatible chat APIs.
type Summarizer struct {
	client      llms.Model
	maxPassages int
	logger      *slog.Logger
}

// newSummarizer is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newSummarizer(config *ai.Config) (*Summarizer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.ChatHost),
		openai.WithToken("none"),
		openai.WithModel(config.ChatModel),
	)
	if err != nil {
		return nil, err
	}

	return &Summarizer{
		client:      client,
		maxPassages: config.SummaryPassages,
		logger:      slog.Default().With("component", "openai-summarizer"),
	}, nil
}

// NewSummarizer creates a new summarizer using the provided configuration.
//
// Returns ai.Summarizer interface to enforce abstraction.
func NewSummarizer(config *ai.Config) (ai.Summarizer, error) {
	return newSummarizer(config)
}

// Summarize synthesizes an answer from the top-ranked passages, citing
// each source it was given.
func (s *Summarizer) Summarize(ctx context.Context, query string, results []*core.ScoredResult) (*ai.ResearchSummary, error) {
	if len(results) == 0 {
		return &ai.ResearchSummary{Summary: "No relevant passages were found."}, nil
	}

	used := results
	if len(used) > s.maxPassages {
		used = used[:s.maxPassages]
	}

	var block strings.Builder
	citations := make([]ai.SourceCitation, 0, len(used))
	for i, res := range used {
		fmt.Fprintf(&block, "[%d] %s - %s\n%s\n\n",
			i+1, res.Passage.Source, res.Passage.Author, res.Passage.Text)
		citations = append(citations, ai.SourceCitation{
			Source: res.Passage.Source,
			Author: res.Passage.Author,
			Rank:   res.Rank,
		})
	}

	userPrompt := fmt.Sprintf("Question: %s\n\nPassages:\n%s", query, block.String())
	content := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(summaryPromptTemplate)},
		},
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(userPrompt)},
		},
	}

	response, err := s.client.GenerateContent(ctx, content, llms.WithTemperature(0.2))
	if err != nil {
		s.logger.Error("failed to generate summary", "err", err)
		return nil, err
	}
	if len(response.Choices) < 1 {
		s.logger.Warn("no choices returned from model")
		return &ai.ResearchSummary{Citations: citations}, nil
	}

	summary := strings.TrimSpace(response.Choices[0].Content)
	s.logger.Debug("generated summary", "passages", len(used), "length", len(summary))

	return &ai.ResearchSummary{
		Summary:   summary,
		Citations: citations,
	}, nil
}
