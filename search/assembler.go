package search

import (
	"fmt"
	"strings"

	"github.com/caselode/caselode/core"
)

// DefaultMaxContextLength bounds the assembled bundle size in characters.
// Sized for a summarizer context of roughly 4k tokens.
const DefaultMaxContextLength = 12000

// blockSeparator joins blocks in the rendered bundle text.
const blockSeparator = "\n\n"

// BlockKind identifies what a bundle block contains.
type BlockKind int

const (
	// BlockChunk is a retrieved judgment passage.
	BlockChunk BlockKind = iota + 1
	// BlockStatute is the resolved text of a cited statute section.
	BlockStatute
	// BlockDarkZone is a note about a citation that could not be resolved.
	BlockDarkZone
	// BlockMetadata carries case identifiers, courts, and dates.
	BlockMetadata
)

// Block is one ordered unit of assembled context. Blocks are dropped whole
// during truncation, never cut mid-text.
type Block struct {
	Kind BlockKind
	Text string
}

// Bundle is the assembled retrieval context handed to a summarizer.
type Bundle struct {
	// Blocks in priority order: chunks, statutes, dark zone notes, metadata.
	Blocks []Block

	// Results is the fused ranking the chunk blocks were drawn from.
	Results []core.RankedResult

	// DarkZones are the detected zones, with Resolved set for those whose
	// statute text made it into the bundle.
	DarkZones []core.DarkZone

	// Truncated reports whether any block was dropped to fit the length
	// budget.
	Truncated bool
}

// Text renders the bundle blocks as a single string.
func (b *Bundle) Text() string {
	parts := make([]string, len(b.Blocks))
	for i, block := range b.Blocks {
		parts[i] = block.Text
	}
	return strings.Join(parts, blockSeparator)
}

// Assembler packages ranked chunks, resolved statute sections, and dark
// zone notes into a bounded context bundle.
type Assembler struct {
	maxLength int
}

// NewAssembler creates an assembler with the given maximum bundle length in
// characters. Zero or negative means DefaultMaxContextLength.
func NewAssembler(maxLength int) *Assembler {
	if maxLength <= 0 {
		maxLength = DefaultMaxContextLength
	}
	return &Assembler{maxLength: maxLength}
}

// Assemble builds the context bundle. Chunks must be ordered by descending
// fused score, matching results. When the bundle exceeds the length budget,
// dark zone notes are dropped first, then the lowest ranked chunks, so that
// whatever remains is never cut mid-sentence.
func (a *Assembler) Assemble(
	results []core.RankedResult,
	chunks []*core.Chunk,
	statutes []*core.StatuteSection,
	zones []core.DarkZone,
) *Bundle {
	chunkBlocks := make([]Block, 0, len(chunks))
	for _, chunk := range chunks {
		chunkBlocks = append(chunkBlocks, Block{Kind: BlockChunk, Text: chunk.Contents})
	}

	statuteBlocks := make([]Block, 0, len(statutes))
	for _, section := range statutes {
		statuteBlocks = append(statuteBlocks, Block{
			Kind: BlockStatute,
			Text: formatStatute(section),
		})
	}

	zoneBlocks := make([]Block, 0, len(zones))
	for _, zone := range zones {
		if zone.Resolved {
			continue
		}
		zoneBlocks = append(zoneBlocks, Block{
			Kind: BlockDarkZone,
			Text: fmt.Sprintf("Note: %s is cited but its text was not available for this context.", zone.Citation.Text),
		})
	}

	var metaBlocks []Block
	if meta := formatMetadata(chunks); meta != "" {
		metaBlocks = append(metaBlocks, Block{Kind: BlockMetadata, Text: meta})
	}

	bundle := &Bundle{
		Results:   results,
		DarkZones: zones,
	}

	fixedLen := blocksLen(statuteBlocks) + blocksLen(metaBlocks)

	// Drop dark zone notes from the end until the bundle fits.
	for len(zoneBlocks) > 0 && fixedLen+blocksLen(chunkBlocks)+blocksLen(zoneBlocks) > a.maxLength {
		zoneBlocks = zoneBlocks[:len(zoneBlocks)-1]
		bundle.Truncated = true
	}

	// Then drop the lowest ranked chunks.
	for len(chunkBlocks) > 0 && fixedLen+blocksLen(chunkBlocks)+blocksLen(zoneBlocks) > a.maxLength {
		chunkBlocks = chunkBlocks[:len(chunkBlocks)-1]
		bundle.Truncated = true
	}

	bundle.Blocks = make([]Block, 0, len(chunkBlocks)+len(statuteBlocks)+len(zoneBlocks)+len(metaBlocks))
	bundle.Blocks = append(bundle.Blocks, chunkBlocks...)
	bundle.Blocks = append(bundle.Blocks, statuteBlocks...)
	bundle.Blocks = append(bundle.Blocks, zoneBlocks...)
	bundle.Blocks = append(bundle.Blocks, metaBlocks...)

	return bundle
}

func blocksLen(blocks []Block) int {
	total := 0
	for _, b := range blocks {
		total += len(b.Text) + len(blockSeparator)
	}
	return total
}

func formatStatute(section *core.StatuteSection) string {
	header := fmt.Sprintf("%s Section %s", section.Act, section.Number)
	if section.Title != "" {
		header += " - " + section.Title
	}
	return header + "\n" + section.Contents
}

// formatMetadata collects distinct case numbers, courts, and decision dates
// from the retrieved chunks.
func formatMetadata(chunks []*core.Chunk) string {
	seen := make(map[string]bool)
	var lines []string

	add := func(label, value string) {
		if value == "" {
			return
		}
		line := label + ": " + value
		if !seen[line] {
			seen[line] = true
			lines = append(lines, line)
		}
	}

	for _, chunk := range chunks {
		add("Case", chunk.CaseNumber)
		add("Court", chunk.Court)
		if !chunk.Decided.IsZero() {
			add("Decided", chunk.Decided.Format("02 January 2006"))
		}
	}

	return strings.Join(lines, "\n")
}
