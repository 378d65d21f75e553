package rank

import (
	"strings"

	"github.com/scriptoria/loci/core"
	"github.com/scriptoria/loci/scripture"
)

// MetadataBoost computes the rule-based boost a passage earns from the
// query's suggested filters. Matching is exact, case-sensitive string
// comparison over normalized values. Metadata the passage does not have
// simply contributes nothing; malformed values never abort scoring.
// The result is capped at w.TotalCap.
func MetadataBoost(meta core.Metadata, filters core.SuggestedFilters, w BoostWeights) float32 {
	var boost float32
	boost += countMatches(filters.Concepts, meta.Concepts) * w.ConceptMatch
	boost += countMatches(filters.DiscourseElements, meta.DiscourseElements) * w.DiscourseMatch
	boost += countMatches(filters.NamedEntities, meta.NamedEntities) * w.EntityMatch
	boost += scriptureBoost(filters.ScriptureRefs, meta.ScriptureRefs, w)

	if boost > w.TotalCap {
		boost = w.TotalCap
	}
	return boost
}

// countMatches returns how many filter values appear in the candidate
// set. Each filter value counts at most once.
func countMatches(filters, values []string) float32 {
	if len(filters) == 0 || len(values) == 0 {
		return 0
	}
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	var n float32
	for _, f := range filters {
		if set[f] {
			n++
		}
	}
	return n
}

// scriptureBoost matches filter references against the passage's
// reference set at three tiers of specificity. Each filter reference
// contributes at its most specific matching tier only: a verse filter
// that hits the exact verse does not also count as a chapter or book
// match. Each tier accumulates up to its own cap.
func scriptureBoost(filters, refs []string, w BoostWeights) float32 {
	if len(filters) == 0 || len(refs) == 0 {
		return 0
	}

	set := make(map[string]bool, len(refs))
	for _, r := range refs {
		set[r] = true
	}

	var verse, chapter, book float32
	for _, f := range filters {
		ref, err := scripture.Normalize(f)
		if err != nil {
			// Unresolvable filter reference, contributes nothing.
			continue
		}
		switch {
		case ref.Verse > 0 && set[ref.VerseRef()]:
			verse += w.VerseMatch
		case ref.Chapter > 0 && set[ref.ChapterRef()]:
			chapter += w.ChapterMatch
		case sameBookPresent(refs, ref.Book):
			book += w.BookMatch
		}
	}

	verse = capAt(verse, w.VerseCap)
	chapter = capAt(chapter, w.ChapterCap)
	book = capAt(book, w.BookCap)
	return verse + chapter + book
}

// sameBookPresent reports whether any reference in the set belongs to
// the given canonical book.
func sameBookPresent(refs []string, book string) bool {
	prefix := book + " "
	for _, r := range refs {
		if r == book || strings.HasPrefix(r, prefix) {
			return true
		}
	}
	return false
}

func capAt(v, limit float32) float32 {
	if v > limit {
		return limit
	}
	return v
}
