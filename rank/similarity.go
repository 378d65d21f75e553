package rank

import (
	"fmt"
	"math"

	"github.com/scriptoria/loci/core"
)

// CosineSimilarity computes the cosine similarity of two embeddings and
// clamps the result to [0, 1]. Embedding models can emit vectors whose
// raw cosine falls below zero; downstream score arithmetic assumes a
// non-negative similarity, so the clamp happens here at the boundary
// and nowhere else.
func CosineSimilarity(query, candidate []float32) (float32, error) {
	if len(query) != len(candidate) {
		return 0, fmt.Errorf("%w: query %d, candidate %d",
			core.ErrDimensionMismatch, len(query), len(candidate))
	}

	var dot, qNorm, cNorm float64
	for i := range query {
		q := float64(query[i])
		c := float64(candidate[i])
		dot += q * c
		qNorm += q * q
		cNorm += c * c
	}

	if qNorm == 0 || cNorm == 0 {
		return 0, nil
	}

	sim := dot / (math.Sqrt(qNorm) * math.Sqrt(cNorm))
	return clamp01(float32(sim)), nil
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
