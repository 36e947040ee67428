package vectorstore

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
)

// MemoryStore implements VectorStore with in-process cosine similarity.
// It holds vectors only for the lifetime of the process, matching the
// re-index-on-restart ingestion model. Safe for concurrent use.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string][]Point
}

// NewMemoryStore creates an empty in-memory vector store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		collections: make(map[string][]Point),
	}
}

// Upsert inserts or replaces points by ID within the collection.
func (s *MemoryStore) Upsert(_ context.Context, collection string, points []Point) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing := s.collections[collection]
	byID := make(map[string]int, len(existing))
	for i, p := range existing {
		byID[p.ID] = i
	}

	for _, p := range points {
		if i, ok := byID[p.ID]; ok {
			existing[i] = p
			continue
		}
		byID[p.ID] = len(existing)
		existing = append(existing, p)
	}
	s.collections[collection] = existing
	return nil
}

// Search returns the k points most similar to the query vector by cosine
// similarity, best first.
func (s *MemoryStore) Search(_ context.Context, collection string, query []float32, k int) ([]SearchResult, error) {
	if k <= 0 {
		return nil, fmt.Errorf("k must be greater than 0")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	points := s.collections[collection]
	results := make([]SearchResult, 0, len(points))
	for _, p := range points {
		if len(p.Vec) != len(query) {
			continue
		}
		results = append(results, SearchResult{
			PointID: p.ID,
			Score:   cosineSimilarity(query, p.Vec),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}

// Len returns the number of points stored in the collection.
func (s *MemoryStore) Len(collection string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.collections[collection])
}

func cosineSimilarity(a, b []float32) float32 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}
