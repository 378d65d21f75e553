package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is derived from content so that re-ingesting the same passage
// produces the same identity.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// PassageID derives the content ID for a passage from its source and text.
// Source is included so identical quotations in different works stay distinct.
func PassageID(source, text string) ID {
	return IDFromContent(source + "\x00" + text)
}

// Metadata is the structured annotation bundle attached to a passage.
// All values are pre-normalized labels produced at ingestion time;
// matching against them is exact-string and case-sensitive.
type Metadata struct {
	Concepts          []string // e.g. "Concept/Divine Sovereignty"
	Topics            []string // e.g. "Topic/Predestination"
	DiscourseElements []string // e.g. "Logical/Claim", "Symbolic/Metaphor"
	ScriptureRefs     []string // canonical "Book C" / "Book C:V" forms, ordered
	NamedEntities     []string // e.g. "Calvin", "Jerusalem"
}

// Passage is an indexed unit of source text with a precomputed embedding
// and structured metadata. Passages are created once by ingestion and
// never mutated by the ranking engine.
type Passage struct {
	Id            ID
	Text          string
	Source        string   // work title, e.g. "Mere Christianity"
	Author        string   // e.g. "C.S. Lewis"
	StructurePath []string // ordered location segments, e.g. ["Book I", "Chapter 3"]
	Vector        []float32
	Metadata      Metadata
	IngestedAt    time.Time
	UpdatedAt     time.Time
}

// SuggestedFilters are categorized keyword hints produced by an external
// query-understanding step. Any field may be empty. Values are assumed to
// share the normalized vocabulary of passage metadata.
//
// Sources here is a soft relevance hint; it never excludes passages.
// Hard source filtering goes through QueryContext.SourceAllowlist.
type SuggestedFilters struct {
	Concepts          []string `json:"concepts"`
	DiscourseElements []string `json:"discourse_elements"`
	ScriptureRefs     []string `json:"scripture_references"`
	NamedEntities     []string `json:"named_entities"`
	Sources           []string `json:"sources"`
	Authors           []string `json:"authors"`
}

// Empty reports whether no filter category carries any value.
func (f SuggestedFilters) Empty() bool {
	return len(f.Concepts) == 0 &&
		len(f.DiscourseElements) == 0 &&
		len(f.ScriptureRefs) == 0 &&
		len(f.NamedEntities) == 0 &&
		len(f.Sources) == 0 &&
		len(f.Authors) == 0
}

// QueryContext carries everything the ranking engine needs for one query.
// It is created per request and discarded after the caller consumes the results.
type QueryContext struct {
	Query           string    // raw query text, opaque to the additive profile
	Vector          []float32 // query embedding, same dimension as the corpus
	Filters         SuggestedFilters
	SourceAllowlist []string // hard pre-filter; empty means all sources
}

// ScoredResult is a single ranked passage with its score decomposition.
type ScoredResult struct {
	Passage    *Passage
	Similarity float32 // clamped cosine similarity, in [0,1]
	Boost      float32 // metadata boost, in [0,1.5]
	Combined   float32
	Rank       int // 1-based, stable across identical inputs
}
