package rag

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"codecopilot/internal/ingest"
)

// excerptLimit bounds citation excerpts.
const excerptLimit = 200

// citationRe matches citation-shaped substrings the generator emits:
// [Source: <name>, Page: <digits>[ (<page type>)][, Section: <value>]].
// The colon after Page is optional because models drift on that detail.
var citationRe = regexp.MustCompile(`\[Source:\s*([^,\]]+),\s*Page:?\s*(\d+)(\s*\(([^)]+)\))?(,\s*Section:\s*([^\]]+))?\]`)

// pageTypeKey identifies one (source, page number) pair.
type pageTypeKey struct {
	source string
	page   int
}

// pageTypes builds the lookup from (source, page number) to page type
// label. A chunk contributes the PDF page mapping and, when recovered,
// the document page mapping; document pages are inserted second so they
// win when both interpretations share a number.
func pageTypes(chunks []ingest.Chunk) map[pageTypeKey]string {
	types := make(map[pageTypeKey]string)
	for _, c := range chunks {
		types[pageTypeKey{source: c.SourceID, page: c.PagePDF}] = "PDF page"
	}
	for _, c := range chunks {
		if c.PageDocument != nil {
			types[pageTypeKey{source: c.SourceID, page: *c.PageDocument}] = "document page"
		}
	}
	return types
}

// Repair rewrites citations in answerText whose page-type annotation is
// missing or ambiguous, cross-referencing the cited (source, page) against
// the retrieved chunks. When no chunk explains the cited page the citation
// is annotated as "PDF page". Only the two recognized annotations,
// "PDF page" and "document page", mark a citation as already explicit;
// anything else the generator put in the parentheses is rewritten.
func Repair(answerText string, chunks []ingest.Chunk) string {
	types := pageTypes(chunks)

	return citationRe.ReplaceAllStringFunc(answerText, func(match string) string {
		groups := citationRe.FindStringSubmatch(match)
		source := strings.TrimSpace(groups[1])
		pageStr := groups[2]
		annotation := strings.TrimSpace(groups[4])
		sectionPart := groups[5]

		if annotation == "PDF page" || annotation == "document page" {
			return match
		}

		page, err := strconv.Atoi(pageStr)
		if err != nil {
			return match
		}

		pageType, ok := types[pageTypeKey{source: source, page: page}]
		if !ok {
			pageType = "PDF page"
		}

		return fmt.Sprintf("[Source: %s, Page: %d (%s)%s]", source, page, pageType, sectionPart)
	})
}

// DeriveCitations builds the citation list directly from the retrieved
// chunks, in retrieval order, deduplicated by provenance. The generator's
// own citations stay in the prose; this list is reconstructed from ground
// truth.
func DeriveCitations(chunks []ingest.Chunk) []Citation {
	type dedupKey struct {
		source  string
		page    int
		section string
	}
	seen := make(map[dedupKey]struct{})

	citations := make([]Citation, 0, len(chunks))
	for _, c := range chunks {
		page := c.PDFPageIndex
		if c.PageDocument != nil {
			page = *c.PageDocument
		}
		key := dedupKey{source: c.SourceID, page: page, section: c.SectionID}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		displayed, pageType := c.PreferredPage()
		citations = append(citations, Citation{
			Source:  c.SourceID,
			Page:    fmt.Sprintf("%d (%s)", displayed, pageType),
			Section: c.SectionID,
			Excerpt: excerpt(c.Text),
		})
	}
	return citations
}

// excerpt truncates text at excerptLimit runes, marking the cut.
func excerpt(text string) string {
	runes := []rune(text)
	if len(runes) <= excerptLimit {
		return text
	}
	return string(runes[:excerptLimit]) + "..."
}
