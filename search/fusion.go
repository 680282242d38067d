package search

import (
	"sort"

	"github.com/caselode/caselode/core"
	"github.com/caselode/caselode/index"
)

// DefaultRRFConstant is the canonical reciprocal rank fusion smoothing
// constant.
const DefaultRRFConstant = 60

// Fuse merges a lexical and a semantic ranking into a single ordered list
// using reciprocal rank fusion. Each chunk's fused score is the sum of
// 1/(rank+k) over the rankings it appears in, where ranks are 1-indexed.
// A chunk absent from one ranking simply contributes nothing from that side,
// so a single empty input reduces fusion to a reciprocal-rank transform of
// the other list.
//
// Fusing ranks instead of raw scores avoids normalizing term-frequency
// scores against cosine similarities, which have incomparable distributions.
// One outlier lexical score cannot dominate the merged order.
//
// The result is sorted by descending fused score with ties broken by
// ascending chunk ID, contains each chunk at most once, and is capped at
// topK entries when topK is positive. Fuse is pure.
func Fuse(lexical []index.Match, semantic []core.SimilarityMatch, k int, topK int) []core.RankedResult {
	fused := make(map[core.ID]*core.RankedResult, len(lexical)+len(semantic))

	for i, m := range lexical {
		rank := i + 1
		fused[m.Id] = &core.RankedResult{
			ChunkId:     m.Id,
			LexicalRank: rank,
			Score:       1.0 / float64(rank+k),
		}
	}

	for i, m := range semantic {
		rank := i + 1
		r, ok := fused[m.ChunkId]
		if !ok {
			r = &core.RankedResult{ChunkId: m.ChunkId}
			fused[m.ChunkId] = r
		}
		r.SemanticRank = rank
		r.Score += 1.0 / float64(rank+k)
	}

	results := make([]core.RankedResult, 0, len(fused))
	for _, r := range fused {
		results = append(results, *r)
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].ChunkId < results[j].ChunkId
	})

	if topK > 0 && len(results) > topK {
		results = results[:topK]
	}
	return results
}
