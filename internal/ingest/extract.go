package ingest

import (
	"regexp"
	"strconv"
	"strings"
)

// ExtractorConfig holds the empirically tuned bounds used when recovering
// printed page numbers. The defaults were tuned against building code PDFs;
// they are configuration, not constants, because no ground truth exists to
// validate them in-repo.
type ExtractorConfig struct {
	// MaxPageNumber is the largest value accepted as a printed page number.
	MaxPageNumber int
	// PageProximity bounds how far a bare footer number may deviate from the
	// physically expected page (PDFPageIndex + 1). Explicit "Page N" labels
	// and standalone digits-only final lines are exempt from this check.
	PageProximity int
}

// DefaultExtractorConfig returns the tuned defaults.
func DefaultExtractorConfig() ExtractorConfig {
	return ExtractorConfig{
		MaxPageNumber: 2000,
		PageProximity: 100,
	}
}

const (
	// pageLabelTail is how many trailing characters are searched for an
	// explicit "Page N" / "p. N" label.
	pageLabelTail = 200
	// footerLineMaxLen caps the length of a last line considered a footer
	// when reading right-aligned trailing digits.
	footerLineMaxLen = 30
	// bareNumberMaxDigits caps the digit count of bare footer numbers.
	bareNumberMaxDigits = 4
)

var (
	pageLabelRe     = regexp.MustCompile(`(?i)(?:page|p\.)\s*(\d{1,4})`)
	digitsOnlyRe    = regexp.MustCompile(`^\d{1,4}$`)
	trailingDigitRe = regexp.MustCompile(`(\d{1,4})\s*$`)

	// Section label families, tried in order. First match wins and the
	// captured numeric label is returned unmodified.
	sectionRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(?:Section|Sec\.)\s+(\d+(?:\.\d+){1,3})`),
		regexp.MustCompile(`(?i)\bChapter\s+(\d+(?:\.\d+)?)`),
		regexp.MustCompile(`(?i)\b(?:Article|Art\.)\s+(\d+(?:\.\d+){1,2})`),
		regexp.MustCompile(`§\s*(\d+(?:\.\d+){1,3})`),
	}
)

// Extractor recovers best-effort page/section metadata from raw page text.
// Absence of a match is a normal outcome, not an error: most pages carry no
// explicit page or section marker.
type Extractor struct {
	cfg ExtractorConfig
}

// NewExtractor creates an Extractor with the given bounds.
func NewExtractor(cfg ExtractorConfig) *Extractor {
	if cfg.MaxPageNumber <= 0 {
		cfg.MaxPageNumber = DefaultExtractorConfig().MaxPageNumber
	}
	if cfg.PageProximity <= 0 {
		cfg.PageProximity = DefaultExtractorConfig().PageProximity
	}
	return &Extractor{cfg: cfg}
}

// DocumentPageNumber recovers the page number as printed in the page footer
// or header, or nil when none can be recovered. Strategies are tried in
// strict priority order; explicit labels are trusted more than bare numbers,
// and bare numbers are only trusted near the physically expected page.
func (e *Extractor) DocumentPageNumber(pageText string, pdfPageIndex int) *int {
	trimmed := strings.TrimRight(pageText, " \t\n\r")
	if trimmed == "" {
		return nil
	}

	// 1. Explicit "Page N" / "p. N" label near the end of the page.
	tail := trimmed
	if len(tail) > pageLabelTail {
		tail = tail[len(tail)-pageLabelTail:]
	}
	for _, m := range pageLabelRe.FindAllStringSubmatch(tail, -1) {
		if n, err := strconv.Atoi(m[1]); err == nil && n >= 1 && n <= e.cfg.MaxPageNumber {
			return &n
		}
	}

	expected := pdfPageIndex + 1

	// 2. A line that is nothing but digits, among the last three lines. A
	// standalone number on the final line is the printed footer page number
	// and is trusted like an explicit label; digits on earlier lines must be
	// near the expected physical page.
	lines := strings.Split(trimmed, "\n")
	for i := len(lines) - 1; i >= 0 && i >= len(lines)-3; i-- {
		line := strings.TrimSpace(lines[i])
		if !digitsOnlyRe.MatchString(line) || len(line) > bareNumberMaxDigits {
			continue
		}
		n, err := strconv.Atoi(line)
		if err != nil {
			continue
		}
		if i == len(lines)-1 {
			if n >= 1 && n <= e.cfg.MaxPageNumber {
				return &n
			}
			continue
		}
		if e.plausibleBareNumber(n, expected) {
			return &n
		}
	}

	// 3. Trailing digits of a short last line (right-aligned footer numbers).
	last := strings.TrimSpace(lines[len(lines)-1])
	if last != "" && len(last) < footerLineMaxLen {
		if m := trailingDigitRe.FindStringSubmatch(last); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil && e.plausibleBareNumber(n, expected) {
				return &n
			}
		}
	}

	return nil
}

// plausibleBareNumber guards against picking up unrelated numbers while
// tolerating front-matter offset between physical and printed pagination.
func (e *Extractor) plausibleBareNumber(n, expected int) bool {
	if n < 1 || n > e.cfg.MaxPageNumber {
		return false
	}
	diff := n - expected
	if diff < 0 {
		diff = -diff
	}
	return diff <= e.cfg.PageProximity
}

// SectionID recovers a section/chapter/article label embedded in the text,
// or "" when none is found.
func (e *Extractor) SectionID(text string) string {
	for _, re := range sectionRes {
		if m := re.FindStringSubmatch(text); m != nil {
			return m[1]
		}
	}
	return ""
}
