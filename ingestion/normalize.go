package ingestion

import (
	"log/slog"

	"github.com/scriptoria/loci/scripture"
)

// normalizeScriptureRefs canonicalizes a raw reference list for storage.
// Each reference is parsed and expanded so verse-level forms always ride
// with their chapter-level form; unresolvable references are dropped
// with a warning rather than failing the passage. The result is
// deduplicated, preserving first-seen order.
func normalizeScriptureRefs(raw []string, logger *slog.Logger) []string {
	if len(raw) == 0 {
		return nil
	}

	var out []string
	seen := make(map[string]bool, len(raw)*2)
	for _, r := range raw {
		ref, err := scripture.Normalize(r)
		if err != nil {
			logger.Warn("dropping unresolvable scripture reference", "ref", r)
			continue
		}
		for _, form := range ref.Expand() {
			if !seen[form] {
				seen[form] = true
				out = append(out, form)
			}
		}
	}
	return out
}
