package search

import (
	"strings"
	"testing"
	"time"

	"github.com/caselode/caselode/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testChunk(id core.ID, contents string) *core.Chunk {
	return &core.Chunk{Id: id, Contents: contents}
}

func testZone(act, number string, resolved bool) core.DarkZone {
	return core.DarkZone{
		Citation: core.Entity{
			Type:   core.EntityStatuteSection,
			Text:   act + " Section " + number,
			Act:    act,
			Number: number,
		},
		Resolved: resolved,
	}
}

func TestAssembleBlockOrder(t *testing.T) {
	a := NewAssembler(0)

	bundle := a.Assemble(
		[]core.RankedResult{{ChunkId: 1, Score: 0.5}},
		[]*core.Chunk{testChunk(1, "The accused was convicted of murder.")},
		[]*core.StatuteSection{{Act: "IPC", Number: "302", Title: "Punishment for murder", Contents: "Whoever commits murder shall be punished."}},
		[]core.DarkZone{testZone("CrPC", "439", false)},
	)

	require.Len(t, bundle.Blocks, 3)
	assert.Equal(t, BlockChunk, bundle.Blocks[0].Kind)
	assert.Equal(t, BlockStatute, bundle.Blocks[1].Kind)
	assert.Equal(t, BlockDarkZone, bundle.Blocks[2].Kind)
	assert.Contains(t, bundle.Blocks[1].Text, "IPC Section 302 - Punishment for murder")
	assert.Contains(t, bundle.Blocks[2].Text, "CrPC Section 439")
	assert.False(t, bundle.Truncated)
}

func TestAssembleResolvedZonesProduceNoNotes(t *testing.T) {
	a := NewAssembler(0)

	bundle := a.Assemble(nil, nil, nil, []core.DarkZone{testZone("IPC", "302", true)})

	assert.Empty(t, bundle.Blocks)
}

func TestAssembleMetadataBlock(t *testing.T) {
	a := NewAssembler(0)

	decided := time.Date(2019, time.March, 15, 0, 0, 0, 0, time.UTC)
	chunks := []*core.Chunk{
		{Id: 1, Contents: "passage one", CaseNumber: "Crl.A.No. 99/2015", Court: "Supreme Court of India", Decided: decided},
		{Id: 2, Contents: "passage two", CaseNumber: "Crl.A.No. 99/2015", Court: "Supreme Court of India", Decided: decided},
	}

	bundle := a.Assemble(nil, chunks, nil, nil)

	last := bundle.Blocks[len(bundle.Blocks)-1]
	require.Equal(t, BlockMetadata, last.Kind)
	assert.Equal(t, "Case: Crl.A.No. 99/2015\nCourt: Supreme Court of India\nDecided: 15 March 2019", last.Text)
}

func TestAssembleTruncatesDarkZoneNotesFirst(t *testing.T) {
	chunkText := strings.Repeat("judgment passage. ", 20)
	a := NewAssembler(len(chunkText) + 30)

	bundle := a.Assemble(
		[]core.RankedResult{{ChunkId: 1}},
		[]*core.Chunk{testChunk(1, chunkText)},
		nil,
		[]core.DarkZone{testZone("IPC", "302", false), testZone("IPC", "34", false)},
	)

	assert.True(t, bundle.Truncated)
	for _, block := range bundle.Blocks {
		assert.NotEqual(t, BlockDarkZone, block.Kind)
	}
	// The chunk survives intact.
	require.Equal(t, BlockChunk, bundle.Blocks[0].Kind)
	assert.Equal(t, chunkText, bundle.Blocks[0].Text)
}

func TestAssembleTruncatesLowestRankedChunksAfterNotes(t *testing.T) {
	top := strings.Repeat("top ranked passage. ", 10)
	low := strings.Repeat("low ranked passage. ", 10)
	a := NewAssembler(len(top) + 30)

	bundle := a.Assemble(
		[]core.RankedResult{{ChunkId: 1}, {ChunkId: 2}},
		[]*core.Chunk{testChunk(1, top), testChunk(2, low)},
		nil,
		[]core.DarkZone{testZone("IPC", "302", false)},
	)

	assert.True(t, bundle.Truncated)
	require.Len(t, bundle.Blocks, 1)
	// Only the top ranked chunk survives, whole.
	assert.Equal(t, top, bundle.Blocks[0].Text)
}

func TestAssembleNeverCutsBlocksMidText(t *testing.T) {
	texts := []string{
		strings.Repeat("first passage. ", 8),
		strings.Repeat("second passage. ", 8),
		strings.Repeat("third passage. ", 8),
	}
	chunks := make([]*core.Chunk, len(texts))
	results := make([]core.RankedResult, len(texts))
	for i, text := range texts {
		chunks[i] = testChunk(core.ID(i+1), text)
		results[i] = core.RankedResult{ChunkId: core.ID(i + 1)}
	}
	a := NewAssembler(len(texts[0]) + len(texts[1]) + 40)

	bundle := a.Assemble(results, chunks, nil, nil)

	// Every surviving block is one of the original texts, unmodified.
	for _, block := range bundle.Blocks {
		assert.Contains(t, texts, block.Text)
	}
	assert.True(t, bundle.Truncated)
	assert.Less(t, len(bundle.Blocks), len(texts))
}

func TestAssembleEmptyInputs(t *testing.T) {
	a := NewAssembler(0)

	bundle := a.Assemble(nil, nil, nil, nil)

	assert.Empty(t, bundle.Blocks)
	assert.Equal(t, "", bundle.Text())
}
