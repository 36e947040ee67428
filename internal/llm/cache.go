package llm

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// EmbeddingCache persists embeddings in SQLite keyed by a content hash, so
// re-indexing unchanged documents never re-embeds them. The cache is
// append-only; entries are never evicted.
type EmbeddingCache struct {
	db *sql.DB
}

// OpenEmbeddingCache opens (and migrates) the cache database at path.
func OpenEmbeddingCache(path string) (*EmbeddingCache, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open embedding cache: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to embedding cache: %w", err)
	}

	schema := `CREATE TABLE IF NOT EXISTS embeddings (
		key TEXT PRIMARY KEY,
		vec BLOB NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate embedding cache: %w", err)
	}

	return &EmbeddingCache{db: db}, nil
}

// Close closes the underlying database.
func (c *EmbeddingCache) Close() error {
	return c.db.Close()
}

// Get returns the cached vector for key, or (nil, nil) on a miss.
func (c *EmbeddingCache) Get(ctx context.Context, key string) ([]float32, error) {
	var blob []byte
	err := c.db.QueryRowContext(ctx, "SELECT vec FROM embeddings WHERE key = ?", key).Scan(&blob)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cached embedding: %w", err)
	}
	return decodeVector(blob)
}

// Put stores a vector under key, replacing any existing entry.
func (c *EmbeddingCache) Put(ctx context.Context, key string, vec []float32) error {
	_, err := c.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO embeddings (key, vec) VALUES (?, ?)",
		key, encodeVector(vec))
	if err != nil {
		return fmt.Errorf("failed to store cached embedding: %w", err)
	}
	return nil
}

func encodeVector(vec []float32) []byte {
	buf := make([]byte, 4*len(vec))
	for i, v := range vec {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}

func decodeVector(blob []byte) ([]float32, error) {
	if len(blob)%4 != 0 {
		return nil, fmt.Errorf("corrupt cached embedding: %d bytes", len(blob))
	}
	vec := make([]float32, len(blob)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(blob[i*4:]))
	}
	return vec, nil
}

// CachedEmbedder decorates an Embedder with the persistent cache. Texts
// whose vectors are cached are served locally; only misses are sent to the
// underlying embedder, in one batch.
type CachedEmbedder struct {
	inner Embedder
	cache *EmbeddingCache
	model string
}

// NewCachedEmbedder wraps inner with cache. The model name is part of the
// cache key so switching embedding models never serves stale vectors.
func NewCachedEmbedder(inner Embedder, cache *EmbeddingCache, model string) *CachedEmbedder {
	return &CachedEmbedder{inner: inner, cache: cache, model: model}
}

func (e *CachedEmbedder) cacheKey(text string) string {
	sum := sha256.Sum256([]byte(e.model + "\x00" + text))
	return hex.EncodeToString(sum[:])
}

// EmbedTexts returns one vector per input text, serving cached vectors
// where available. Cache write failures are not fatal; the vectors are
// still returned.
func (e *CachedEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("empty input array")
	}

	result := make([][]float32, len(texts))
	var missIdx []int
	var missTexts []string

	for i, text := range texts {
		vec, err := e.cache.Get(ctx, e.cacheKey(text))
		if err != nil {
			return nil, err
		}
		if vec != nil {
			result[i] = vec
			continue
		}
		missIdx = append(missIdx, i)
		missTexts = append(missTexts, text)
	}

	if len(missTexts) == 0 {
		return result, nil
	}

	vectors, err := e.inner.EmbedTexts(ctx, missTexts)
	if err != nil {
		return nil, err
	}
	if len(vectors) != len(missTexts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(missTexts), len(vectors))
	}

	for n, i := range missIdx {
		result[i] = vectors[n]
		// Cache population is best-effort.
		_ = e.cache.Put(ctx, e.cacheKey(texts[i]), vectors[n])
	}

	return result, nil
}
