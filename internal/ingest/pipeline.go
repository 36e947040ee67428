package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"codecopilot/internal/contextutil"
	"codecopilot/internal/service"
)

// Indexer receives chunks produced by the pipeline. Implemented by
// retrieval.Index; defined here from the consumer's perspective.
type Indexer interface {
	Add(ctx context.Context, chunks []Chunk) error
}

// PageExtractor converts a document file into ordered per-page text.
type PageExtractor func(path string) ([]Page, error)

// Pipeline orchestrates ingestion: file -> per-page text -> metadata
// extraction + chunking -> retrieval index. Ingestion is an administrative
// operation executed once per document set at startup.
type Pipeline struct {
	extract PageExtractor
	chunker *Chunker
	indexer Indexer
}

// NewPipeline creates an ingestion pipeline.
func NewPipeline(extract PageExtractor, chunker *Chunker, indexer Indexer) *Pipeline {
	return &Pipeline{
		extract: extract,
		chunker: chunker,
		indexer: indexer,
	}
}

// IndexFile ingests a single document file and returns the number of chunks
// indexed. The source ID is the filename stem.
func (p *Pipeline) IndexFile(ctx context.Context, path string) (int, error) {
	logger := contextutil.LoggerFromContext(ctx)

	pages, err := p.extract(path)
	if err != nil {
		return 0, fmt.Errorf("failed to extract pages from %s: %w", path, err)
	}

	sourceID := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	chunks := p.chunker.Chunk(sourceID, pages)
	if len(chunks) == 0 {
		logger.WarnContext(ctx, "no chunks produced", "source", sourceID, "pages", len(pages))
		return 0, nil
	}

	if err := p.indexer.Add(ctx, chunks); err != nil {
		return 0, fmt.Errorf("failed to index %s: %w", sourceID, err)
	}

	logger.InfoContext(ctx, "document indexed", "source", sourceID, "pages", len(pages), "chunks", len(chunks))
	return len(chunks), nil
}

// IndexDirectory ingests every PDF in dir. Per-file failures are logged and
// skipped so one unreadable file does not block the rest of the corpus; the
// directory being absent is a not-found error.
func (p *Pipeline) IndexDirectory(ctx context.Context, dir string) error {
	logger := contextutil.LoggerFromContext(ctx)

	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return fmt.Errorf("%w: document directory %s", service.ErrNotFound, dir)
	}

	paths, err := filepath.Glob(filepath.Join(dir, "*.pdf"))
	if err != nil {
		return fmt.Errorf("failed to list documents in %s: %w", dir, err)
	}
	sort.Strings(paths)

	if len(paths) == 0 {
		logger.WarnContext(ctx, "no PDF files found", "dir", dir)
		return nil
	}

	indexed := 0
	for _, path := range paths {
		n, err := p.IndexFile(ctx, path)
		if err != nil {
			logger.ErrorContext(ctx, "failed to index document", "path", path, "error", err)
			continue
		}
		indexed += n
	}

	logger.InfoContext(ctx, "ingestion completed", "files", len(paths), "chunks", indexed)
	return nil
}
