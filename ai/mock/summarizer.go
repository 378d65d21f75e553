package mock

import (
	"context"
	"fmt"

	"github.com/scriptoria/loci/ai"
	"github.com/scriptoria/loci/core"
)

// MockSummarizer is a test double for ai.Summarizer.
// It allows custom behavior injection via function fields.
type MockSummarizer struct {
	// SummarizeFunc is called by Summarize if set.
	// If nil, returns a canned summary citing every result.
	SummarizeFunc func(ctx context.Context, query string, results []*core.ScoredResult) (*ai.ResearchSummary, error)

	callCount int
}

// NewMockSummarizer creates a mock summarizer with default behavior.
func NewMockSummarizer() *MockSummarizer {
	return &MockSummarizer{}
}

// Summarize returns a deterministic placeholder summary.
func (m *MockSummarizer) Summarize(ctx context.Context, query string, results []*core.ScoredResult) (*ai.ResearchSummary, error) {
	m.callCount++

	if m.SummarizeFunc != nil {
		return m.SummarizeFunc(ctx, query, results)
	}

	citations := make([]ai.SourceCitation, 0, len(results))
	for _, res := range results {
		citations = append(citations, ai.SourceCitation{
			Source: res.Passage.Source,
			Author: res.Passage.Author,
			Rank:   res.Rank,
		})
	}

	return &ai.ResearchSummary{
		Summary:   fmt.Sprintf("summary of %d passages for: %s", len(results), query),
		Citations: citations,
	}, nil
}

// CallCount returns the number of times Summarize was called.
func (m *MockSummarizer) CallCount() int {
	return m.callCount
}
