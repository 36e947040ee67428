package retrieval

import (
	"reflect"
	"testing"
)

func TestFuseRankings(t *testing.T) {
	tests := []struct {
		name     string
		rankings [][]string
		weights  []float64
		k        int
		want     []string
	}{
		{
			name:     "agreement promotes shared document",
			rankings: [][]string{{"a", "b", "c"}, {"b", "a", "d"}},
			weights:  []float64{0.5, 0.5},
			k:        4,
			want:     []string{"a", "b", "c", "d"},
		},
		{
			name:     "weight shifts the winner",
			rankings: [][]string{{"a", "b"}, {"b", "a"}},
			weights:  []float64{0.9, 0.1},
			k:        2,
			want:     []string{"a", "b"},
		},
		{
			name:     "truncates to k",
			rankings: [][]string{{"a", "b", "c", "d"}},
			weights:  []float64{1.0},
			k:        2,
			want:     []string{"a", "b"},
		},
		{
			name:     "empty rankings",
			rankings: [][]string{{}, {}},
			weights:  []float64{0.5, 0.5},
			k:        5,
			want:     nil,
		},
		{
			name:     "single ranking passthrough",
			rankings: [][]string{{"x", "y", "z"}},
			weights:  []float64{1.0},
			k:        10,
			want:     []string{"x", "y", "z"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fuseRankings(tt.rankings, tt.weights, tt.k)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("fuseRankings() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFuseRankingsTieBreak(t *testing.T) {
	// a and b receive identical scores; first-encounter order must win.
	got := fuseRankings([][]string{{"a"}, {"b"}}, []float64{0.5, 0.5}, 2)
	want := []string{"a", "b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("fuseRankings() = %v, want %v", got, want)
	}
}

func TestFuseRankingsDisjoint(t *testing.T) {
	// Sparse and dense disagree entirely; the fused result stays within k
	// and draws from both sides.
	sparse := []string{"s1", "s2", "s3", "s4", "s5"}
	dense := []string{"d1", "d2", "d3", "d4", "d5"}

	got := fuseRankings([][]string{sparse, dense}, []float64{0.5, 0.5}, 5)
	if len(got) > 5 {
		t.Fatalf("fused result exceeds k: %v", got)
	}

	var hasSparse, hasDense bool
	for _, id := range got {
		for _, s := range sparse {
			if id == s {
				hasSparse = true
			}
		}
		for _, d := range dense {
			if id == d {
				hasDense = true
			}
		}
	}
	if !hasSparse || !hasDense {
		t.Errorf("fused result must draw from both rankings, got %v", got)
	}
}
