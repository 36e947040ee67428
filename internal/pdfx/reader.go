// Package pdfx extracts per-page plain text from PDF files.
package pdfx

import (
	"fmt"
	"os"

	"github.com/ledongthuc/pdf"

	"codecopilot/internal/ingest"
	"codecopilot/internal/service"
)

// ExtractPages returns the ordered per-page text of the PDF at path.
// Pages whose text cannot be decoded are returned empty rather than failing
// the whole document; scanned pages commonly have no extractable text.
func ExtractPages(path string) ([]ingest.Page, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", service.ErrNotFound, path)
	}

	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF %s: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	numPages := r.NumPage()
	pages := make([]ingest.Page, 0, numPages)
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		text := ""
		if !page.V.IsNull() {
			if t, err := page.GetPlainText(nil); err == nil {
				text = t
			}
		}
		pages = append(pages, ingest.Page{
			Text:         text,
			PDFPageIndex: i - 1,
		})
	}

	return pages, nil
}
