package ingestion

import (
	"strings"
	"testing"

	"github.com/caselode/caselode/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sentenceBlock builds n copies of a ten-word sentence, avoiding any words
// that double as section headings.
func sentenceBlock(n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteString("The appellant relied upon several grounds during the hearing today. ")
	}
	return b.String()
}

func TestChunkShortTextSinglePiece(t *testing.T) {
	c := NewChunker(DefaultChunkerConfig())

	pieces := c.Chunk("The appeal was allowed. The sentence was set aside.")

	require.Len(t, pieces, 1)
	assert.Equal(t, core.SectionUnknown, pieces[0].Section)
	assert.Contains(t, pieces[0].Text, "The appeal was allowed.")
	assert.Greater(t, pieces[0].TokenCount, 0)
}

func TestChunkEmptyText(t *testing.T) {
	c := NewChunker(DefaultChunkerConfig())

	assert.Empty(t, c.Chunk(""))
	assert.Empty(t, c.Chunk("   \n  "))
}

func TestChunkSplitsAtTargetSize(t *testing.T) {
	c := NewChunker(ChunkerConfig{ChunkSize: 30, ChunkOverlap: 13, MinChunkSize: 5})

	pieces := c.Chunk(sentenceBlock(6))

	require.Greater(t, len(pieces), 1)
	for _, piece := range pieces {
		assert.LessOrEqual(t, piece.TokenCount, 45, "piece exceeds size plus one sentence")
		assert.NotEmpty(t, piece.Text)
	}
}

func TestChunkOverlapCarriesTrailingSentence(t *testing.T) {
	c := NewChunker(ChunkerConfig{ChunkSize: 30, ChunkOverlap: 13, MinChunkSize: 5})

	pieces := c.Chunk(sentenceBlock(6))

	require.Greater(t, len(pieces), 1)
	firstSentences := strings.Split(pieces[0].Text, ". ")
	lastOfFirst := firstSentences[len(firstSentences)-1]
	assert.True(t, strings.HasPrefix(pieces[1].Text, strings.TrimSuffix(lastOfFirst, ".")),
		"second piece does not start with the overlap sentence")
}

func TestChunkDropsUndersizedTrailingFragment(t *testing.T) {
	c := NewChunker(ChunkerConfig{ChunkSize: 30, ChunkOverlap: 1, MinChunkSize: 20})

	// Five sentences fill chunks; without overlap the last flush holds a
	// lone sentence below the minimum.
	pieces := c.Chunk(sentenceBlock(5))

	for _, piece := range pieces {
		assert.GreaterOrEqual(t, piece.TokenCount, 20)
	}
}

func TestChunkTokenCountMatchesText(t *testing.T) {
	c := NewChunker(ChunkerConfig{ChunkSize: 30, ChunkOverlap: 13, MinChunkSize: 5})

	pieces := c.Chunk(sentenceBlock(6))

	// A piece is fully described by its text; the token count must be
	// derived from the text it actually carries.
	require.NotEmpty(t, pieces)
	for _, piece := range pieces {
		assert.Equal(t, approxTokens(piece.Text), piece.TokenCount)
	}
}

func TestChunkDetectsSections(t *testing.T) {
	c := NewChunker(ChunkerConfig{ChunkSize: 200, ChunkOverlap: 10, MinChunkSize: 5})

	text := "FACTS\n" + sentenceBlock(10) + "\nANALYSIS\n" + sentenceBlock(10) + "\nCONCLUSION\n" + sentenceBlock(10)

	pieces := c.Chunk(text)

	seen := make(map[core.SectionType]bool)
	for _, piece := range pieces {
		seen[piece.Section] = true
	}
	assert.True(t, seen[core.SectionFacts])
	assert.True(t, seen[core.SectionAnalysis])
	assert.True(t, seen[core.SectionConclusion])
}

func TestChunkPreambleBeforeFirstSectionIsUntagged(t *testing.T) {
	c := NewChunker(ChunkerConfig{ChunkSize: 200, ChunkOverlap: 10, MinChunkSize: 5})

	text := sentenceBlock(8) + "\nFACTS\n" + sentenceBlock(10)

	pieces := c.Chunk(text)

	require.NotEmpty(t, pieces)
	assert.Equal(t, core.SectionUnknown, pieces[0].Section)
}

func TestChunkIgnoresCloselySpacedMarkers(t *testing.T) {
	// A heading repeated within the marker gap is treated as noise.
	text := "FACTS\nANALYSIS\n" + sentenceBlock(10)

	spans := detectSections(text)

	require.Len(t, spans, 1)
	assert.Equal(t, core.SectionFacts, spans[0].section)
}

func TestChunkNoSectionMarkers(t *testing.T) {
	c := NewChunker(ChunkerConfig{ChunkSize: 200, ChunkOverlap: 10, MinChunkSize: 5})

	pieces := c.Chunk(sentenceBlock(5))

	require.NotEmpty(t, pieces)
	for _, piece := range pieces {
		assert.Equal(t, core.SectionUnknown, piece.Section)
	}
}
