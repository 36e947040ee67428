package retrieval

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "lowercases and splits on whitespace",
			input: "Fire Exit DOORS",
			want:  []string{"fire", "exit", "doors"},
		},
		{
			name:  "keeps section numbers intact",
			input: "see Section 5.2.3 for details",
			want:  []string{"see", "section", "5.2.3", "for", "details"},
		},
		{
			name:  "strips surrounding punctuation",
			input: "doors, windows; (stairs)",
			want:  []string{"doors", "windows", "stairs"},
		},
		{
			name:  "trims trailing sentence period",
			input: "required width is 800mm.",
			want:  []string{"required", "width", "is", "800mm"},
		},
		{
			name:  "empty input",
			input: "   ",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tokenize(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("tokenize(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestBM25Search(t *testing.T) {
	idx := newBM25Index()
	idx.add("d1", "minimum bedroom area requirements for dwellings")
	idx.add("d2", "fire exit door width must be at least 800mm")
	idx.add("d3", "bedroom window egress and bedroom ventilation")

	t.Run("ranks by term relevance", func(t *testing.T) {
		got := idx.search("bedroom", 10)
		if len(got) != 2 {
			t.Fatalf("expected 2 results, got %d: %v", len(got), got)
		}
		// d3 mentions bedroom twice and should outrank d1.
		if got[0] != "d3" || got[1] != "d1" {
			t.Errorf("expected [d3 d1], got %v", got)
		}
	})

	t.Run("omits zero-score documents", func(t *testing.T) {
		got := idx.search("bedroom", 10)
		for _, id := range got {
			if id == "d2" {
				t.Errorf("d2 should not match bedroom query: %v", got)
			}
		}
	})

	t.Run("no matches returns empty", func(t *testing.T) {
		got := idx.search("elevator shaft", 10)
		if len(got) != 0 {
			t.Errorf("expected no results, got %v", got)
		}
	})

	t.Run("respects k limit", func(t *testing.T) {
		got := idx.search("bedroom door fire", 1)
		if len(got) != 1 {
			t.Errorf("expected 1 result, got %d", len(got))
		}
	})

	t.Run("stopword-only query returns empty", func(t *testing.T) {
		got := idx.search("the and for", 10)
		if len(got) != 0 {
			t.Errorf("expected no results for stopword-only query, got %v", got)
		}
	})

	t.Run("section number query matches", func(t *testing.T) {
		idx2 := newBM25Index()
		idx2.add("s1", "Section 5.2.3 covers egress width")
		idx2.add("s2", "Section 7.1 covers plumbing")
		got := idx2.search("5.2.3", 10)
		if len(got) != 1 || got[0] != "s1" {
			t.Errorf("expected [s1], got %v", got)
		}
	})
}

func TestBM25TieBreakInsertionOrder(t *testing.T) {
	idx := newBM25Index()
	idx.add("first", "identical document text here")
	idx.add("second", "identical document text here")

	got := idx.search("identical document", 10)
	if len(got) != 2 {
		t.Fatalf("expected 2 results, got %d", len(got))
	}
	if got[0] != "first" || got[1] != "second" {
		t.Errorf("equal scores must preserve insertion order, got %v", got)
	}
}
