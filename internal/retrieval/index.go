package retrieval

import (
	"context"
	"fmt"
	"sync"

	"codecopilot/internal/contextutil"
	"codecopilot/internal/ingest"
	"codecopilot/internal/vectorstore"
)

// Embedder converts texts into fixed-length vectors. Defined here from the
// consumer's perspective; implemented by the llm package.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Index maintains a sparse exact-term index and a dense similarity index
// over the same chunk set and answers single-technique or rank-fused
// retrieval. Reads may run concurrently; Add takes the write lock
// (exclusive-write / any-read — ingestion is a rare administrative
// operation, not a hot path).
type Index struct {
	mu     sync.RWMutex
	chunks map[string]ingest.Chunk
	sparse *bm25Index
	ready  bool

	store      vectorstore.VectorStore
	embedder   Embedder
	collection string
}

// NewIndex creates an empty hybrid retrieval index backed by the given
// dense store and embedder.
func NewIndex(store vectorstore.VectorStore, embedder Embedder, collection string) *Index {
	return &Index{
		chunks:     make(map[string]ingest.Chunk),
		sparse:     newBM25Index(),
		store:      store,
		embedder:   embedder,
		collection: collection,
	}
}

// Add ingests chunks into both sub-indices. Chunk texts are embedded in one
// batch and upserted into the dense store keyed by chunk ID.
func (i *Index) Add(ctx context.Context, chunks []ingest.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	texts := make([]string, len(chunks))
	for n, c := range chunks {
		texts[n] = c.Text
	}
	vectors, err := i.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return fmt.Errorf("failed to embed chunks: %w", err)
	}
	if len(vectors) != len(chunks) {
		return fmt.Errorf("embedding count mismatch: expected %d, got %d", len(chunks), len(vectors))
	}

	points := make([]vectorstore.Point, len(chunks))
	for n, c := range chunks {
		points[n] = vectorstore.Point{
			ID:  c.ID,
			Vec: vectors[n],
			Meta: map[string]any{
				"source":      c.SourceID,
				"page_pdf":    c.PagePDF,
				"chunk_index": c.ChunkIndex,
			},
		}
	}
	if err := i.store.Upsert(ctx, i.collection, points); err != nil {
		return fmt.Errorf("failed to upsert chunk vectors: %w", err)
	}

	i.mu.Lock()
	defer i.mu.Unlock()
	for _, c := range chunks {
		i.chunks[c.ID] = c
		i.sparse.add(c.ID, c.Text)
	}
	return nil
}

// MarkReady records that startup ingestion has completed. "Not yet indexed"
// is an explicit state, not an implicit nil check.
func (i *Index) MarkReady() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.ready = true
}

// Ready reports whether startup ingestion has completed.
func (i *Index) Ready() bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.ready
}

// Len returns the number of indexed chunks.
func (i *Index) Len() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.chunks)
}

// Retrieve returns the top-k chunks for the query using the given mode.
// In hybrid mode each sub-index over-fetches k results and the two rankings
// are merged by weighted reciprocal rank fusion, so k bounds the merged
// result, not the per-index retrieval. An index with no chunks returns an
// empty result, never an error: callers treat that as "no grounding
// available".
func (i *Index) Retrieve(ctx context.Context, query string, k int, mode Mode) ([]ingest.Chunk, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if k <= 0 {
		return nil, fmt.Errorf("k must be greater than 0")
	}

	i.mu.RLock()
	empty := len(i.chunks) == 0
	i.mu.RUnlock()
	if empty {
		return nil, nil
	}

	var ids []string
	switch mode.kind {
	case kindSparse:
		i.mu.RLock()
		ids = i.sparse.search(query, k)
		i.mu.RUnlock()

	case kindDense:
		var err error
		ids, err = i.denseSearch(ctx, query, k)
		if err != nil {
			return nil, err
		}

	case kindHybrid:
		i.mu.RLock()
		sparseIDs := i.sparse.search(query, k)
		i.mu.RUnlock()

		denseIDs, err := i.denseSearch(ctx, query, k)
		if err != nil {
			return nil, err
		}

		sw, dw := mode.Weights()
		ids = fuseRankings([][]string{sparseIDs, denseIDs}, []float64{sw, dw}, k)
	}

	i.mu.RLock()
	defer i.mu.RUnlock()
	chunks := make([]ingest.Chunk, 0, len(ids))
	for _, id := range ids {
		if c, ok := i.chunks[id]; ok {
			chunks = append(chunks, c)
		}
	}

	logger.DebugContext(ctx, "retrieval completed", "mode", mode.String(), "k", k, "results", len(chunks))
	return chunks, nil
}

// denseSearch embeds the query and ranks chunks by vector similarity.
func (i *Index) denseSearch(ctx context.Context, query string, k int) ([]string, error) {
	vectors, err := i.embedder.EmbedTexts(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("no embedding returned for query")
	}

	results, err := i.store.Search(ctx, i.collection, vectors[0], k)
	if err != nil {
		return nil, fmt.Errorf("failed to search dense index: %w", err)
	}

	ids := make([]string, len(results))
	for n, r := range results {
		ids[n] = r.PointID
	}
	return ids, nil
}
