package retrieval

import "sort"

// rrfConstant dampens the influence of top ranks in reciprocal rank fusion.
// 60 is the value from the original RRF paper and the LangChain ensemble
// retriever default.
const rrfConstant = 60

// fuseRankings merges per-index rankings with weighted reciprocal rank
// fusion: each document scores Σ weight_i / (rank_i + rrfConstant) across
// the rankings it appears in. Ties break by first-encountered order across
// rankings. The merged list is truncated to k.
func fuseRankings(rankings [][]string, weights []float64, k int) []string {
	type fused struct {
		id    string
		score float64
		order int
	}

	scores := make(map[string]*fused)
	var ordered []*fused

	for ri, ranking := range rankings {
		weight := 1.0
		if ri < len(weights) {
			weight = weights[ri]
		}
		for rank, id := range ranking {
			f, ok := scores[id]
			if !ok {
				f = &fused{id: id, order: len(ordered)}
				scores[id] = f
				ordered = append(ordered, f)
			}
			f.score += weight / float64(rank+1+rrfConstant)
		}
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].score != ordered[j].score {
			return ordered[i].score > ordered[j].score
		}
		return ordered[i].order < ordered[j].order
	})

	if len(ordered) == 0 {
		return nil
	}
	if k > 0 && len(ordered) > k {
		ordered = ordered[:k]
	}
	ids := make([]string, len(ordered))
	for i, f := range ordered {
		ids[i] = f.id
	}
	return ids
}
