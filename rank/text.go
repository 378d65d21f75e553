package rank

import "strings"

// Stop words to drop before extracting key phrases
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "be": true, "is": true, "are": true,
	"was": true, "to": true, "of": true, "and": true, "in": true, "that": true,
	"have": true, "it": true, "for": true, "not": true, "on": true, "with": true,
	"as": true, "you": true, "do": true, "at": true, "this": true, "but": true,
	"by": true, "from": true, "what": true, "how": true, "why": true,
	"does": true, "about": true,
}

// tokenizeAndFilter splits text into words, lowercases, trims punctuation, and removes stop words
func tokenizeAndFilter(text string) []string {
	words := strings.Fields(text)
	filtered := make([]string, 0, len(words))

	for _, word := range words {
		cleaned := strings.ToLower(strings.Trim(word, ".,!?;:'\"-()[]{}"))

		if cleaned != "" && !stopWords[cleaned] {
			filtered = append(filtered, cleaned)
		}
	}

	return filtered
}

// extractKeyPhrases builds the 1, 2, and 3 word phrases from the query
// after stop-word filtering. Consecutive filtered words form the longer
// phrases, so "doctrine of justification" yields "doctrine",
// "justification" and "doctrine justification".
func extractKeyPhrases(query string) []string {
	words := tokenizeAndFilter(query)
	phrases := make([]string, 0, len(words)*3)

	phrases = append(phrases, words...)
	for i := 0; i+1 < len(words); i++ {
		phrases = append(phrases, words[i]+" "+words[i+1])
	}
	for i := 0; i+2 < len(words); i++ {
		phrases = append(phrases, words[i]+" "+words[i+1]+" "+words[i+2])
	}

	return phrases
}

// phraseHitRatio returns the fraction of key phrases found verbatim in
// the document, or 0 when the query has no usable phrases.
func phraseHitRatio(document string, phrases []string) float32 {
	if len(phrases) == 0 {
		return 0
	}
	doc := strings.ToLower(document)
	var hits int
	for _, phrase := range phrases {
		if strings.Contains(doc, phrase) {
			hits++
		}
	}
	return float32(hits) / float32(len(phrases))
}
