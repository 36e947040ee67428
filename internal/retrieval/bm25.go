package retrieval

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

// BM25 parameters. k1 dampens term-frequency saturation; b controls how
// strongly scores are normalized by document length.
const (
	bm25K1 = 1.2
	bm25B  = 0.75
)

var sparseStopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {}, "but": {}, "by": {},
	"for": {}, "from": {}, "has": {}, "have": {}, "in": {}, "is": {}, "it": {}, "of": {}, "on": {},
	"or": {}, "the": {}, "to": {}, "was": {}, "were": {}, "with": {},
}

// bm25Doc is one indexed document in the sparse index.
type bm25Doc struct {
	id     string
	freq   map[string]int
	length int
}

// bm25Index is an exact-term BM25 ranking index. Not safe for concurrent
// use; the owning Index serializes access.
type bm25Index struct {
	docs        []bm25Doc
	df          map[string]int
	totalLength int
}

func newBM25Index() *bm25Index {
	return &bm25Index{
		df: make(map[string]int),
	}
}

// add indexes one document.
func (idx *bm25Index) add(id, text string) {
	tokens := tokenize(text)
	freq := make(map[string]int, len(tokens))
	for _, tok := range tokens {
		freq[tok]++
	}
	for tok := range freq {
		idx.df[tok]++
	}
	idx.docs = append(idx.docs, bm25Doc{id: id, freq: freq, length: len(tokens)})
	idx.totalLength += len(tokens)
}

func (idx *bm25Index) size() int {
	return len(idx.docs)
}

// search returns the IDs of the top-k documents ranked by BM25 score,
// best first. Documents with zero score are omitted.
func (idx *bm25Index) search(query string, k int) []string {
	if len(idx.docs) == 0 || k <= 0 {
		return nil
	}

	queryTokens := filterStopwords(tokenize(query))
	if len(queryTokens) == 0 {
		return nil
	}

	n := float64(len(idx.docs))
	avgLen := float64(idx.totalLength) / n

	type scored struct {
		id    string
		score float64
		order int
	}
	var results []scored

	for i, doc := range idx.docs {
		var score float64
		for _, tok := range queryTokens {
			tf := float64(doc.freq[tok])
			if tf == 0 {
				continue
			}
			df := float64(idx.df[tok])
			idf := math.Log(1 + (n-df+0.5)/(df+0.5))
			norm := bm25K1 * (1 - bm25B + bm25B*float64(doc.length)/avgLen)
			score += idf * tf * (bm25K1 + 1) / (tf + norm)
		}
		if score > 0 {
			results = append(results, scored{id: doc.id, score: score, order: i})
		}
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].score != results[j].score {
			return results[i].score > results[j].score
		}
		return results[i].order < results[j].order
	})

	if len(results) > k {
		results = results[:k]
	}
	ids := make([]string, len(results))
	for i, r := range results {
		ids[i] = r.id
	}
	return ids
}

func tokenize(text string) []string {
	if text == "" {
		return nil
	}

	var builder strings.Builder
	builder.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '.' {
			builder.WriteRune(r)
		} else {
			builder.WriteRune(' ')
		}
	}
	tokens := strings.Fields(builder.String())
	for i, tok := range tokens {
		// Keep interior dots so section numbers like "5.2.3" stay one token.
		tokens[i] = strings.Trim(tok, ".")
	}
	out := tokens[:0]
	for _, tok := range tokens {
		if tok != "" {
			out = append(out, tok)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func filterStopwords(tokens []string) []string {
	if len(tokens) == 0 {
		return nil
	}
	result := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if _, isStop := sparseStopwords[token]; isStop {
			continue
		}
		result = append(result, token)
	}
	if len(result) == 0 {
		return nil
	}
	return result
}
