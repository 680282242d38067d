package index

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/caselode/caselode/core"
)

// Params are the BM25 ranking parameters.
type Params struct {
	// K1 controls term frequency saturation.
	K1 float64

	// B controls document length normalization.
	B float64
}

// DefaultParams returns the standard BM25 parameters used for legal text.
func DefaultParams() Params {
	return Params{K1: 1.5, B: 0.75}
}

// Document is a single entry to index.
type Document struct {
	Id   core.ID
	Text string
}

// Match is a ranked document with its BM25 score.
type Match struct {
	Id    core.ID
	Score float64
}

// Lexical is an in-memory BM25 index over chunk text. It is immutable once
// built, so a pointer to it can be shared across goroutines and swapped
// wholesale when the corpus changes.
type Lexical struct {
	params    Params
	ids       []core.ID
	docLens   []int
	avgDocLen float64
	// postings maps a term to per-document occurrence counts,
	// keyed by position in ids.
	postings map[string]map[int]int
}

// Build constructs a BM25 index from the given documents.
// Document text is lowercased and split on whitespace.
func Build(docs []Document, params Params) *Lexical {
	idx := &Lexical{
		params:   params,
		ids:      make([]core.ID, len(docs)),
		docLens:  make([]int, len(docs)),
		postings: make(map[string]map[int]int),
	}

	totalLen := 0
	for i, doc := range docs {
		idx.ids[i] = doc.Id
		terms := tokenize(doc.Text)
		idx.docLens[i] = len(terms)
		totalLen += len(terms)

		for _, term := range terms {
			counts, ok := idx.postings[term]
			if !ok {
				counts = make(map[int]int)
				idx.postings[term] = counts
			}
			counts[i]++
		}
	}

	if len(docs) > 0 {
		idx.avgDocLen = float64(totalLen) / float64(len(docs))
	}
	return idx
}

// Len returns the number of indexed documents.
func (idx *Lexical) Len() int {
	return len(idx.ids)
}

// Rank scores every document against query and returns the topK matches
// with positive scores, best first. Ties are broken by ascending document
// ID so results are deterministic. A topK of zero or less returns all
// positive matches. An empty query returns no matches.
func (idx *Lexical) Rank(query string, topK int) []Match {
	terms := tokenize(query)
	if len(terms) == 0 || len(idx.ids) == 0 {
		return nil
	}

	scores := make(map[int]float64)
	n := float64(len(idx.ids))

	for _, term := range terms {
		counts, ok := idx.postings[term]
		if !ok {
			continue
		}

		df := float64(len(counts))
		idf := math.Log(1 + (n-df+0.5)/(df+0.5))

		for docPos, tf := range counts {
			norm := 1 - idx.params.B + idx.params.B*float64(idx.docLens[docPos])/idx.avgDocLen
			freq := float64(tf)
			scores[docPos] += idf * (freq * (idx.params.K1 + 1)) / (freq + idx.params.K1*norm)
		}
	}

	matches := make([]Match, 0, len(scores))
	for docPos, score := range scores {
		if score > 0 {
			matches = append(matches, Match{Id: idx.ids[docPos], Score: score})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Id < matches[j].Id
	})

	if topK > 0 && len(matches) > topK {
		matches = matches[:topK]
	}
	return matches
}

// tokenize lower-cases the text and splits on any run of characters
// that is neither a letter nor a digit, so "Section 302, IPC" and
// "section 302 ipc" index to the same terms.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}
