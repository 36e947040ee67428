package ingest

// Page is one page of extracted text from a source document.
type Page struct {
	Text         string
	PDFPageIndex int // 0-based physical page index within the file
}

// Chunk is the unit of retrievable text with its provenance metadata.
type Chunk struct {
	ID           string // UUID, also used as the vector point ID
	Text         string
	SourceID     string // logical document identifier (filename stem)
	PDFPageIndex int    // 0-based physical page index, always present
	PagePDF      int    // 1-based physical page number (PDFPageIndex + 1)
	PageDocument *int   // page number as printed in the document, nil when not recovered
	SectionID    string // section/chapter/article label (e.g. "5.2.3"), "" when not recovered
	ChunkIndex   int    // sequential position among chunks of the same source
}

// PreferredPage returns the page number to display for this chunk and its
// label: the recovered document page when known, otherwise the physical PDF
// page. Display-only; not a primary key.
func (c Chunk) PreferredPage() (int, string) {
	if c.PageDocument != nil {
		return *c.PageDocument, "document page"
	}
	return c.PagePDF, "PDF page"
}
