package retrieval

import (
	"fmt"
	"strings"
)

type modeKind int

const (
	kindSparse modeKind = iota
	kindDense
	kindHybrid
)

// Mode selects the retrieval technique. It is a tagged variant: Sparse,
// Dense, or Hybrid with fusion weights. Invalid flag combinations cannot be
// expressed.
type Mode struct {
	kind         modeKind
	sparseWeight float64
	denseWeight  float64
}

// Sparse returns the exact-term (BM25) retrieval mode.
func Sparse() Mode {
	return Mode{kind: kindSparse}
}

// Dense returns the embedding nearest-neighbor retrieval mode.
func Dense() Mode {
	return Mode{kind: kindDense}
}

// Hybrid returns rank-fused retrieval across both indices. Non-positive
// weights fall back to equal weighting.
func Hybrid(sparseWeight, denseWeight float64) Mode {
	if sparseWeight <= 0 || denseWeight <= 0 {
		sparseWeight, denseWeight = 0.5, 0.5
	}
	return Mode{kind: kindHybrid, sparseWeight: sparseWeight, denseWeight: denseWeight}
}

// Weights returns the fusion weights for hybrid mode.
func (m Mode) Weights() (sparse, dense float64) {
	return m.sparseWeight, m.denseWeight
}

// String returns the mode name.
func (m Mode) String() string {
	switch m.kind {
	case kindSparse:
		return "sparse"
	case kindDense:
		return "dense"
	default:
		return "hybrid"
	}
}

// ParseMode converts a configuration string into a Mode. Hybrid uses the
// supplied weights.
func ParseMode(s string, sparseWeight, denseWeight float64) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sparse", "bm25":
		return Sparse(), nil
	case "dense", "vector":
		return Dense(), nil
	case "hybrid":
		return Hybrid(sparseWeight, denseWeight), nil
	default:
		return Mode{}, fmt.Errorf("unknown retrieval mode %q (want sparse, dense, or hybrid)", s)
	}
}
