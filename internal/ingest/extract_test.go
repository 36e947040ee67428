package ingest

import (
	"strings"
	"testing"
)

func TestExtractor_DocumentPageNumber(t *testing.T) {
	e := NewExtractor(DefaultExtractorConfig())

	tests := []struct {
		name         string
		text         string
		pdfPageIndex int
		want         int
		wantNone     bool
	}{
		{
			name:         "explicit Page label in footer",
			text:         "Some requirements text.\n\nPage 125",
			pdfPageIndex: 0,
			want:         125,
		},
		{
			name:         "explicit p. label",
			text:         "Clause text here.\np. 42",
			pdfPageIndex: 40,
			want:         42,
		},
		{
			name:         "explicit label exempt from proximity check",
			text:         "Body.\nPage 900",
			pdfPageIndex: 2,
			want:         900,
		},
		{
			name:         "standalone footer number on final line",
			text:         "Minimum habitable room area shall be 9.5 square meters.\n125",
			pdfPageIndex: 0,
			want:         125,
		},
		{
			name:         "bare digits on earlier line too far from expected page",
			text:         "Some text.\n1850\nNational Building Code",
			pdfPageIndex: 2,
			wantNone:     true,
		},
		{
			name:         "bare digits above maximum",
			text:         "Some text.\n2500",
			pdfPageIndex: 2450,
			wantNone:     true,
		},
		{
			name:         "bare digits within last three lines",
			text:         "Body text.\n87\nNational Building Code\nOfficial Edition",
			pdfPageIndex: 85,
			want:         87,
		},
		{
			name:         "trailing digits of short last line",
			text:         "Clause body.\nNBC Vol 1 - 33",
			pdfPageIndex: 32,
			want:         33,
		},
		{
			name:         "trailing digits ignored on long last line",
			text:         "Clause body.\n" + strings.Repeat("x", 40) + " 33",
			pdfPageIndex: 32,
			wantNone:     true,
		},
		{
			name:         "no page marker at all",
			text:         "A page of prose without any pagination markers.",
			pdfPageIndex: 5,
			wantNone:     true,
		},
		{
			name:         "empty page",
			text:         "",
			pdfPageIndex: 0,
			wantNone:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.DocumentPageNumber(tt.text, tt.pdfPageIndex)
			if tt.wantNone {
				if got != nil {
					t.Errorf("DocumentPageNumber() = %d, want none", *got)
				}
				return
			}
			if got == nil {
				t.Fatalf("DocumentPageNumber() = none, want %d", tt.want)
			}
			if *got != tt.want {
				t.Errorf("DocumentPageNumber() = %d, want %d", *got, tt.want)
			}
		})
	}
}

func TestExtractor_DocumentPageNumber_LabelBeatsBareNumber(t *testing.T) {
	e := NewExtractor(DefaultExtractorConfig())

	// Both an explicit label and a bare footer number are present; the label wins.
	got := e.DocumentPageNumber("Body.\nPage 17\n20", 18)
	if got == nil || *got != 17 {
		t.Fatalf("DocumentPageNumber() = %v, want 17 (explicit label has priority)", got)
	}
}

func TestExtractor_SectionID(t *testing.T) {
	e := NewExtractor(DefaultExtractorConfig())

	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "section keyword",
			text: "Section 5.2.3 requires a minimum habitable area of 9.5 square meters.",
			want: "5.2.3",
		},
		{
			name: "abbreviated section",
			text: "See Sec. 8.3.1 for clear width requirements.",
			want: "8.3.1",
		},
		{
			name: "four-level section",
			text: "Section 4.1.2.3 applies to egress doors.",
			want: "4.1.2.3",
		},
		{
			name: "chapter",
			text: "Chapter 8 covers habitable rooms.",
			want: "8",
		},
		{
			name: "chapter with subsection",
			text: "Chapter 8.2 covers minimum areas.",
			want: "8.2",
		},
		{
			name: "article",
			text: "Article 9.1 governs stair widths.",
			want: "9.1",
		},
		{
			name: "abbreviated article",
			text: "Per Art. 3.2.1, landings shall be level.",
			want: "3.2.1",
		},
		{
			name: "section symbol",
			text: "As per § 5.2.3, bedrooms require natural light.",
			want: "5.2.3",
		},
		{
			name: "section family wins over later chapter",
			text: "Section 5.2.3 of Chapter 5 applies.",
			want: "5.2.3",
		},
		{
			name: "no section marker",
			text: "Doors shall be operable without special knowledge.",
			want: "",
		},
		{
			name: "bare number without keyword",
			text: "The value 5.2.3 appears without a label.",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.SectionID(tt.text); got != tt.want {
				t.Errorf("SectionID() = %q, want %q", got, tt.want)
			}
		})
	}
}
