package mock

import (
	"context"
	"regexp"

	"github.com/scriptoria/loci/ai"
	"github.com/scriptoria/loci/core"
	"github.com/scriptoria/loci/scripture"
)

// refCandidate matches spans that look like scripture references, e.g.
// "John 3:16", "1 Cor 13" or "Jn. 3".
var refCandidate = regexp.MustCompile(`\b(?:[1-3]\s+)?[A-Z][a-z]+\.?\s+\d+(?::\d+)?`)

// MockQueryAnalyzer is a test double for ai.QueryAnalyzer.
// It allows custom behavior injection via function fields.
type MockQueryAnalyzer struct {
	// AnalyzeQueryFunc is called by AnalyzeQuery if set.
	// If nil, uses default behavior: extract scripture references from
	// the query text, no other filters.
	AnalyzeQueryFunc func(ctx context.Context, query string) (*ai.QueryAnalysis, error)

	callCount int
}

// NewMockQueryAnalyzer creates a mock analyzer with default behavior.
func NewMockQueryAnalyzer() *MockQueryAnalyzer {
	return &MockQueryAnalyzer{}
}

// AnalyzeQuery extracts recognizable scripture references from the
// query text and returns them as normalized filters.
func (m *MockQueryAnalyzer) AnalyzeQuery(ctx context.Context, query string) (*ai.QueryAnalysis, error) {
	m.callCount++

	if m.AnalyzeQueryFunc != nil {
		return m.AnalyzeQueryFunc(ctx, query)
	}

	var refs []string
	for _, candidate := range refCandidate.FindAllString(query, -1) {
		ref, err := scripture.Normalize(candidate)
		if err != nil {
			continue
		}
		refs = append(refs, ref.String())
	}

	return &ai.QueryAnalysis{
		Intent:  query,
		Filters: core.SuggestedFilters{ScriptureRefs: refs},
	}, nil
}

// CallCount returns the number of times AnalyzeQuery was called.
func (m *MockQueryAnalyzer) CallCount() int {
	return m.callCount
}
