package corpus

import (
	"fmt"

	"github.com/scriptoria/loci/core"
)

// Snapshot is an immutable, insertion-ordered set of passages with a
// uniform embedding dimension.
type Snapshot struct {
	passages []*core.Passage
	dim      int
}

// NewSnapshot validates the passages and freezes them into a Snapshot.
// The slice order is the corpus insertion order and is preserved; the
// caller must not mutate the passages afterwards.
//
// Every passage must pass domain validation, carry a vector, and agree
// on the embedding dimension established by the first passage.
func NewSnapshot(passages []*core.Passage) (*Snapshot, error) {
	s := &Snapshot{passages: passages}
	for i, p := range passages {
		if err := core.ValidatePassage(p); err != nil {
			return nil, fmt.Errorf("passage %d: %w", i, err)
		}
		if len(p.Vector) == 0 {
			return nil, fmt.Errorf("passage %d (%q): %w: no embedding",
				i, p.Source, core.ErrDimensionMismatch)
		}
		if s.dim == 0 {
			s.dim = len(p.Vector)
			continue
		}
		if len(p.Vector) != s.dim {
			return nil, fmt.Errorf("passage %d (%q): %w: got %d, corpus has %d",
				i, p.Source, core.ErrDimensionMismatch, len(p.Vector), s.dim)
		}
	}
	return s, nil
}

// Len returns the number of passages in the snapshot.
func (s *Snapshot) Len() int { return len(s.passages) }

// Dimension returns the embedding dimension shared by all passages,
// or 0 for an empty snapshot.
func (s *Snapshot) Dimension() int { return s.dim }

// Sources returns the distinct source names present in the snapshot,
// in first-appearance order.
func (s *Snapshot) Sources() []string {
	seen := make(map[string]bool)
	var sources []string
	for _, p := range s.passages {
		if !seen[p.Source] {
			seen[p.Source] = true
			sources = append(sources, p.Source)
		}
	}
	return sources
}

// All returns a view over every passage in the snapshot.
func (s *Snapshot) All() *View {
	indices := make([]int, len(s.passages))
	for i := range indices {
		indices[i] = i
	}
	return &View{snap: s, indices: indices}
}

// Filter returns a view restricted to passages whose Source appears in
// the allowlist. Exclusion is absolute: a filtered-out passage cannot
// reach ranking no matter how well it would score. A nil or empty
// allowlist means no restriction.
func (s *Snapshot) Filter(allowlist []string) *View {
	if len(allowlist) == 0 {
		return s.All()
	}
	allowed := make(map[string]bool, len(allowlist))
	for _, src := range allowlist {
		allowed[src] = true
	}
	var indices []int
	for i, p := range s.passages {
		if allowed[p.Source] {
			indices = append(indices, i)
		}
	}
	return &View{snap: s, indices: indices}
}

// View is a subset of a snapshot, referencing passages by their
// insertion position rather than copying them.
type View struct {
	snap    *Snapshot
	indices []int
}

// Len returns the number of passages in the view.
func (v *View) Len() int { return len(v.indices) }

// At returns the i-th passage of the view.
func (v *View) At(i int) *core.Passage { return v.snap.passages[v.indices[i]] }

// Position returns the corpus insertion position of the i-th passage.
// Ranking uses it as the deterministic tie-breaker.
func (v *View) Position(i int) int { return v.indices[i] }

// Dimension returns the embedding dimension of the underlying snapshot.
func (v *View) Dimension() int { return v.snap.dim }
