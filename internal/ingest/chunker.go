package ingest

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"codecopilot/internal/service"
)

const (
	// DefaultChunkSize is the target chunk window in characters.
	DefaultChunkSize = 1000
	// DefaultChunkOverlap is the overlap carried between adjacent chunks.
	DefaultChunkOverlap = 100
)

// ChunkerConfig controls the splitting window.
type ChunkerConfig struct {
	ChunkSize    int
	ChunkOverlap int
	Extractor    ExtractorConfig
}

// DefaultChunkerConfig returns the tuned defaults (1000-char window, 100-char overlap).
func DefaultChunkerConfig() ChunkerConfig {
	return ChunkerConfig{
		ChunkSize:    DefaultChunkSize,
		ChunkOverlap: DefaultChunkOverlap,
		Extractor:    DefaultExtractorConfig(),
	}
}

// Chunker splits page-level text into overlapping fixed-size chunks,
// preserving per-chunk provenance. Chunking is a pure function of its
// input and configuration: identical pages always yield identical chunks.
type Chunker struct {
	cfg       ChunkerConfig
	extractor *Extractor
}

// NewChunker creates a Chunker. Overlap must be strictly less than the
// chunk size; violating that is a configuration error.
func NewChunker(cfg ChunkerConfig) (*Chunker, error) {
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = DefaultChunkSize
	}
	if cfg.ChunkOverlap < 0 {
		cfg.ChunkOverlap = DefaultChunkOverlap
	}
	if cfg.ChunkOverlap >= cfg.ChunkSize {
		return nil, fmt.Errorf("%w: chunk overlap %d must be less than chunk size %d",
			service.ErrConfiguration, cfg.ChunkOverlap, cfg.ChunkSize)
	}
	return &Chunker{
		cfg:       cfg,
		extractor: NewExtractor(cfg.Extractor),
	}, nil
}

// Chunk splits the ordered pages of one source document into chunks.
//
// The printed page number is recovered once per full page (the whole page is
// more reliable than a post-split fragment), while the section label is
// recovered from each chunk's own text since sections can start mid-page.
// Chunk indices enumerate across the whole document. Empty pages yield no
// chunks; the splitter never emits empty chunks.
func (c *Chunker) Chunk(sourceID string, pages []Page) []Chunk {
	var chunks []Chunk
	chunkIndex := 0

	for _, page := range pages {
		docPage := c.extractor.DocumentPageNumber(page.Text, page.PDFPageIndex)

		for _, text := range c.split(page.Text) {
			chunks = append(chunks, Chunk{
				ID:           uuid.New().String(),
				Text:         text,
				SourceID:     sourceID,
				PDFPageIndex: page.PDFPageIndex,
				PagePDF:      page.PDFPageIndex + 1,
				PageDocument: docPage,
				SectionID:    c.extractor.SectionID(text),
				ChunkIndex:   chunkIndex,
			})
			chunkIndex++
		}
	}

	return chunks
}

// split cuts text into windows of at most ChunkSize characters with
// ChunkOverlap carried between adjacent windows, preferring paragraph then
// line then sentence boundaries before a hard character cut.
func (c *Chunker) split(text string) []string {
	runes := []rune(text)
	if len(strings.TrimSpace(text)) == 0 {
		return nil
	}
	if len(runes) <= c.cfg.ChunkSize {
		return []string{text}
	}

	var parts []string
	start := 0
	for start < len(runes) {
		end := start + c.cfg.ChunkSize
		if end >= len(runes) {
			part := string(runes[start:])
			if strings.TrimSpace(part) != "" {
				parts = append(parts, part)
			}
			break
		}

		// Prefer natural boundaries inside the window, scanning from the end.
		window := string(runes[start:end])
		cut := end
		if b := strings.LastIndex(window, "\n\n"); b > 0 {
			cut = start + len([]rune(window[:b+2]))
		} else if b := strings.LastIndex(window, "\n"); b > 0 {
			cut = start + len([]rune(window[:b+1]))
		} else if b := strings.LastIndex(window, ". "); b > 0 {
			cut = start + len([]rune(window[:b+2]))
		}

		part := string(runes[start:cut])
		if strings.TrimSpace(part) != "" {
			parts = append(parts, part)
		}

		next := cut - c.cfg.ChunkOverlap
		if next <= start {
			next = cut // always make progress past the cut
		}
		start = next
	}

	return parts
}
