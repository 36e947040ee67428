package ingest

import (
	"errors"
	"strings"
	"testing"

	"codecopilot/internal/service"
)

func TestNewChunker_OverlapValidation(t *testing.T) {
	tests := []struct {
		name    string
		cfg     ChunkerConfig
		wantErr bool
	}{
		{
			name:    "defaults are valid",
			cfg:     DefaultChunkerConfig(),
			wantErr: false,
		},
		{
			name:    "overlap equal to size",
			cfg:     ChunkerConfig{ChunkSize: 100, ChunkOverlap: 100},
			wantErr: true,
		},
		{
			name:    "overlap greater than size",
			cfg:     ChunkerConfig{ChunkSize: 100, ChunkOverlap: 150},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewChunker(tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Fatal("NewChunker() expected error, got nil")
				}
				if !errors.Is(err, service.ErrConfiguration) {
					t.Errorf("NewChunker() error = %v, want configuration error", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewChunker() unexpected error: %v", err)
			}
		})
	}
}

func TestChunker_Chunk_PageNumberRecovery(t *testing.T) {
	// Scenario: a single synthetic page whose last line is a bare printed
	// page number. The recovered document page and the physical PDF page
	// must both be carried on the chunk.
	chunker, err := NewChunker(DefaultChunkerConfig())
	if err != nil {
		t.Fatalf("NewChunker() error: %v", err)
	}

	pages := []Page{
		{Text: "Minimum habitable room area shall be 9.5 square meters.\n125", PDFPageIndex: 0},
	}
	chunks := chunker.Chunk("NBC", pages)

	if len(chunks) != 1 {
		t.Fatalf("Chunk() returned %d chunks, want 1", len(chunks))
	}
	c := chunks[0]
	if c.PagePDF != 1 {
		t.Errorf("PagePDF = %d, want 1", c.PagePDF)
	}
	if c.PageDocument == nil || *c.PageDocument != 125 {
		t.Errorf("PageDocument = %v, want 125", c.PageDocument)
	}
	if c.SourceID != "NBC" {
		t.Errorf("SourceID = %q, want NBC", c.SourceID)
	}
	if c.PDFPageIndex != 0 {
		t.Errorf("PDFPageIndex = %d, want 0", c.PDFPageIndex)
	}
}

func TestChunker_Chunk_SectionFromChunkText(t *testing.T) {
	// Sections can start mid-page, so each chunk recovers the section from
	// its own text rather than the full page.
	chunker, err := NewChunker(ChunkerConfig{ChunkSize: 80, ChunkOverlap: 10})
	if err != nil {
		t.Fatalf("NewChunker() error: %v", err)
	}

	text := strings.Repeat("Filler prose about general provisions. ", 3) +
		"\n\n" +
		"Section 5.2.3 requires a minimum bedroom area of 9.5 square meters for habitability."
	chunks := chunker.Chunk("NBC", []Page{{Text: text, PDFPageIndex: 4}})

	if len(chunks) < 2 {
		t.Fatalf("Chunk() returned %d chunks, want at least 2", len(chunks))
	}

	var withSection, withoutSection int
	for _, c := range chunks {
		if c.SectionID == "5.2.3" {
			withSection++
		} else if c.SectionID == "" {
			withoutSection++
		}
		if c.PagePDF != 5 {
			t.Errorf("PagePDF = %d, want 5", c.PagePDF)
		}
	}
	if withSection == 0 {
		t.Error("expected at least one chunk with section 5.2.3")
	}
	if withoutSection == 0 {
		t.Error("expected at least one chunk without a section label")
	}
}

func TestChunker_Chunk_Idempotent(t *testing.T) {
	chunker, err := NewChunker(ChunkerConfig{ChunkSize: 120, ChunkOverlap: 20})
	if err != nil {
		t.Fatalf("NewChunker() error: %v", err)
	}

	pages := []Page{
		{Text: "Section 8.2.1 sets minimum areas.\n\n" + strings.Repeat("Habitable rooms shall have natural light. ", 10) + "\n12", PDFPageIndex: 11},
		{Text: "Doors shall provide a clear width of 800 mm. See Sec. 8.3.2.\n13", PDFPageIndex: 12},
	}

	first := chunker.Chunk("NBC", pages)
	second := chunker.Chunk("NBC", pages)

	if len(first) != len(second) {
		t.Fatalf("chunk counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		a, b := first[i], second[i]
		if a.Text != b.Text || a.SourceID != b.SourceID || a.PDFPageIndex != b.PDFPageIndex ||
			a.PagePDF != b.PagePDF || a.SectionID != b.SectionID || a.ChunkIndex != b.ChunkIndex {
			t.Errorf("chunk %d differs between runs", i)
		}
		if (a.PageDocument == nil) != (b.PageDocument == nil) {
			t.Errorf("chunk %d page recovery differs between runs", i)
		} else if a.PageDocument != nil && *a.PageDocument != *b.PageDocument {
			t.Errorf("chunk %d recovered page differs between runs", i)
		}
	}
}

func TestChunker_Chunk_EmptyPage(t *testing.T) {
	chunker, err := NewChunker(DefaultChunkerConfig())
	if err != nil {
		t.Fatalf("NewChunker() error: %v", err)
	}

	chunks := chunker.Chunk("NBC", []Page{
		{Text: "", PDFPageIndex: 0},
		{Text: "   \n\t  ", PDFPageIndex: 1},
		{Text: "Actual content on the third page.", PDFPageIndex: 2},
	})

	if len(chunks) != 1 {
		t.Fatalf("Chunk() returned %d chunks, want 1 (empty pages yield none)", len(chunks))
	}
	if chunks[0].PDFPageIndex != 2 {
		t.Errorf("PDFPageIndex = %d, want 2", chunks[0].PDFPageIndex)
	}
	if chunks[0].ChunkIndex != 0 {
		t.Errorf("ChunkIndex = %d, want 0", chunks[0].ChunkIndex)
	}
}

func TestChunker_Chunk_OverlapAndBounds(t *testing.T) {
	chunker, err := NewChunker(ChunkerConfig{ChunkSize: 50, ChunkOverlap: 10})
	if err != nil {
		t.Fatalf("NewChunker() error: %v", err)
	}

	text := strings.Repeat("abcdefghij", 20) // 200 chars, no natural boundaries
	chunks := chunker.Chunk("DOC", []Page{{Text: text, PDFPageIndex: 0}})

	if len(chunks) < 4 {
		t.Fatalf("Chunk() returned %d chunks, want at least 4", len(chunks))
	}
	for i, c := range chunks {
		if len([]rune(c.Text)) > 50 {
			t.Errorf("chunk %d has %d runes, exceeds window of 50", i, len([]rune(c.Text)))
		}
		if strings.TrimSpace(c.Text) == "" {
			t.Errorf("chunk %d is empty", i)
		}
		if c.ChunkIndex != i {
			t.Errorf("chunk %d has index %d", i, c.ChunkIndex)
		}
	}

	// Adjacent hard-cut chunks overlap by the configured amount.
	firstTail := chunks[0].Text[len(chunks[0].Text)-10:]
	if !strings.HasPrefix(chunks[1].Text, firstTail) {
		t.Error("second chunk should start with the overlap tail of the first")
	}
}

func TestChunker_Chunk_PreferredPage(t *testing.T) {
	doc := 125
	withDoc := Chunk{PagePDF: 1, PageDocument: &doc}
	page, label := withDoc.PreferredPage()
	if page != 125 || label != "document page" {
		t.Errorf("PreferredPage() = %d %q, want 125 \"document page\"", page, label)
	}

	withoutDoc := Chunk{PagePDF: 7}
	page, label = withoutDoc.PreferredPage()
	if page != 7 || label != "PDF page" {
		t.Errorf("PreferredPage() = %d %q, want 7 \"PDF page\"", page, label)
	}
}
