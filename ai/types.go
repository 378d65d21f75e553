package ai

import "github.com/scriptoria/loci/core"

// QueryAnalysis is the structured reading of a research question.
type QueryAnalysis struct {
	// Intent is a one-line restatement of what the researcher is after.
	Intent string `json:"intent"`

	// Filters are the metadata values the analyzer expects relevant
	// passages to carry. All values are advisory boost signals except
	// where the caller promotes sources to a hard allowlist.
	Filters core.SuggestedFilters `json:"filters"`
}

// SourceCitation names one source a summary drew from.
type SourceCitation struct {
	Source string `json:"source"`
	Author string `json:"author"`
	Rank   int    `json:"rank"`
}

// ResearchSummary is a synthesized answer grounded in ranked passages.
type ResearchSummary struct {
	Summary   string           `json:"summary"`
	Citations []SourceCitation `json:"citations"`
}
