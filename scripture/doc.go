// Package scripture normalizes free-form scripture references into a
// canonical "Book Chapter:Verse" form over the 66-book Protestant canon.
//
// Citations arrive from source texts and from query analysis in many
// shapes: "Jn. 3:16", "1 Cor 13", "II Timothy 2:15", "Psalm 23". The
// normalizer resolves abbreviations, ordinal prefixes ("I"/"II"/"1st")
// and stray periods into one canonical spelling so that exact string
// comparison is sufficient everywhere downstream.
//
// Normalization is idempotent: feeding a canonical form back through
// Normalize yields the same Reference.
package scripture
