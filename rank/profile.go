package rank

import (
	"fmt"

	"github.com/scriptoria/loci/core"
)

// ScoringProfile combines the similarity and boost signals for one
// passage into a single relevance score. Profiles must be pure: the
// same inputs always produce the same score.
type ScoringProfile interface {
	Name() string
	Score(qc *core.QueryContext, p *core.Passage, similarity, boost float32) float32
}

// ProfileByName resolves a profile by its configuration name.
func ProfileByName(name string) (ScoringProfile, error) {
	switch name {
	case "", AdditiveProfile{}.Name():
		return AdditiveProfile{}, nil
	case (WeightedProfile{}).Name():
		return NewWeightedProfile(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProfile, name)
	}
}

// AdditiveProfile is the default profile: clamped similarity plus the
// capped metadata boost. The range is [0, 1 + total cap].
type AdditiveProfile struct{}

var _ ScoringProfile = AdditiveProfile{}

func (AdditiveProfile) Name() string { return "additive" }

func (AdditiveProfile) Score(_ *core.QueryContext, _ *core.Passage, similarity, boost float32) float32 {
	return similarity + boost
}

// WeightedProfile scores passages from three weighted signals: exact
// phrase hits from the raw query text, embedding similarity, and the
// fraction of suggested filter values the passage matches. With no
// filters the filter signal sits at a neutral 0.5 so filterless queries
// are not penalized.
type WeightedProfile struct {
	PhraseWeight     float32
	SimilarityWeight float32
	FilterWeight     float32
}

var _ ScoringProfile = WeightedProfile{}

// NewWeightedProfile returns a WeightedProfile with production weights.
func NewWeightedProfile() WeightedProfile {
	return WeightedProfile{
		PhraseWeight:     2.0,
		SimilarityWeight: 1.5,
		FilterWeight:     0.5,
	}
}

func (WeightedProfile) Name() string { return "weighted" }

func (w WeightedProfile) Score(qc *core.QueryContext, p *core.Passage, similarity, _ float32) float32 {
	phrases := extractKeyPhrases(qc.Query)
	phraseScore := phraseHitRatio(p.Text, phrases)
	filterScore := filterMatchRatio(qc.Filters, p)
	return w.PhraseWeight*phraseScore + w.SimilarityWeight*similarity + w.FilterWeight*filterScore
}

// filterMatchRatio returns the fraction of suggested filter values the
// passage satisfies across all categories, or 0.5 when the query
// carries no filters at all.
func filterMatchRatio(filters core.SuggestedFilters, p *core.Passage) float32 {
	total := len(filters.Concepts) + len(filters.DiscourseElements) +
		len(filters.ScriptureRefs) + len(filters.NamedEntities) +
		len(filters.Sources) + len(filters.Authors)
	if total == 0 {
		return 0.5
	}

	var matched float32
	matched += countMatches(filters.Concepts, p.Metadata.Concepts)
	matched += countMatches(filters.DiscourseElements, p.Metadata.DiscourseElements)
	matched += countMatches(filters.ScriptureRefs, p.Metadata.ScriptureRefs)
	matched += countMatches(filters.NamedEntities, p.Metadata.NamedEntities)
	matched += countMatches(filters.Sources, []string{p.Source})
	matched += countMatches(filters.Authors, []string{p.Author})
	return matched / float32(total)
}
