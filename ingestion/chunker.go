package ingestion

import (
	"regexp"
	"sort"
	"strings"

	"github.com/caselode/caselode/core"
)

const (
	// DefaultChunkSize is the target chunk size in approximate tokens.
	DefaultChunkSize = 512

	// DefaultChunkOverlap is how many trailing tokens of one chunk reappear
	// at the start of the next, so sentences near a boundary are retrievable
	// from either side.
	DefaultChunkOverlap = 50

	// DefaultMinChunkSize discards trailing fragments too small to be a
	// useful retrieval unit.
	DefaultMinChunkSize = 100

	// sectionMarkerGap is the minimum distance between two accepted section
	// markers; closer markers are treated as noise from headings repeated in
	// running text.
	sectionMarkerGap = 500
)

// sectionMarkers map heading patterns to the section they introduce.
var sectionMarkers = []struct {
	re      *regexp.Regexp
	section core.SectionType
}{
	{regexp.MustCompile(`(?i)(?:HEADNOTE|SYNOPSIS|SUMMARY)`), core.SectionHeadnote},
	{regexp.MustCompile(`(?i)(?:FACTS|FACTUAL\s+BACKGROUND|BACKGROUND|CASE\s+FACTS)`), core.SectionFacts},
	{regexp.MustCompile(`(?i)(?:ISSUE|ISSUES|QUESTION)`), core.SectionIssue},
	{regexp.MustCompile(`(?i)(?:ANALYSIS|DISCUSSION|REASONING|HELD|OBSERVATION)`), core.SectionAnalysis},
	{regexp.MustCompile(`(?i)(?:CONCLUSION|DECISION|ORDER|JUDGMENT)`), core.SectionConclusion},
}

var chunkSentenceBoundary = regexp.MustCompile(`(?:[.!?])\s+`)

// Piece is one chunk of judgment text produced by the chunker, before it is
// turned into a stored core.Chunk. Text is the space-rejoined form of the
// trimmed sentences, not a verbatim slice of the source.
type Piece struct {
	Text       string
	Section    core.SectionType
	TokenCount int
}

// ChunkerConfig controls chunk sizing. Sizes are in approximate tokens.
type ChunkerConfig struct {
	ChunkSize    int
	ChunkOverlap int
	MinChunkSize int
}

// DefaultChunkerConfig returns the standard chunker settings.
func DefaultChunkerConfig() ChunkerConfig {
	return ChunkerConfig{
		ChunkSize:    DefaultChunkSize,
		ChunkOverlap: DefaultChunkOverlap,
		MinChunkSize: DefaultMinChunkSize,
	}
}

// Chunker splits judgment text into overlapping, sentence-aligned pieces,
// tagging each with the judgment section it came from when a section heading
// was detected.
type Chunker struct {
	config ChunkerConfig
}

// NewChunker creates a chunker. Zero or negative config fields fall back to
// the defaults.
func NewChunker(config ChunkerConfig) *Chunker {
	defaults := DefaultChunkerConfig()
	if config.ChunkSize <= 0 {
		config.ChunkSize = defaults.ChunkSize
	}
	if config.ChunkOverlap <= 0 {
		config.ChunkOverlap = defaults.ChunkOverlap
	}
	if config.MinChunkSize <= 0 {
		config.MinChunkSize = defaults.MinChunkSize
	}
	return &Chunker{config: config}
}

type sectionSpan struct {
	section core.SectionType
	start   int // offset of the marker
	body    int // offset where the section body begins
}

// Chunk splits text into pieces. When section headings are detected, each
// section is chunked separately so no piece straddles a section boundary;
// otherwise the whole text is chunked as a single unknown section.
func (c *Chunker) Chunk(text string) []Piece {
	spans := detectSections(text)

	if len(spans) == 0 {
		return c.chunkSegment(text, core.SectionUnknown)
	}

	var pieces []Piece

	// Text before the first marker is kept as an untagged preamble.
	if spans[0].start > 0 {
		pieces = append(pieces, c.chunkSegment(text[:spans[0].start], core.SectionUnknown)...)
	}

	for i, span := range spans {
		end := len(text)
		if i+1 < len(spans) {
			end = spans[i+1].start
		}
		pieces = append(pieces, c.chunkSegment(text[span.body:end], span.section)...)
	}

	return pieces
}

// detectSections finds section headings, ordered by position, dropping
// markers that follow another within sectionMarkerGap characters.
func detectSections(text string) []sectionSpan {
	var spans []sectionSpan
	for _, marker := range sectionMarkers {
		for _, m := range marker.re.FindAllStringIndex(text, -1) {
			spans = append(spans, sectionSpan{section: marker.section, start: m[0], body: m[1]})
		}
	}

	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })

	var cleaned []sectionSpan
	for _, span := range spans {
		if len(cleaned) == 0 || span.start > cleaned[len(cleaned)-1].start+sectionMarkerGap {
			cleaned = append(cleaned, span)
		}
	}
	return cleaned
}

// chunkSegment splits one section's text into overlapping pieces at sentence
// boundaries.
func (c *Chunker) chunkSegment(text string, section core.SectionType) []Piece {
	sentences := splitIntoSentences(text)
	if len(sentences) == 0 {
		return nil
	}

	var pieces []Piece
	var current []string
	currentTokens := 0

	flush := func(final bool) {
		if len(current) == 0 {
			return
		}
		joined := strings.Join(current, " ")
		tokens := approxTokens(joined)
		if final && tokens < c.config.MinChunkSize && len(pieces) > 0 {
			return
		}
		pieces = append(pieces, Piece{
			Text:       joined,
			Section:    section,
			TokenCount: tokens,
		})
	}

	for _, sentence := range sentences {
		tokens := approxTokens(sentence)

		if currentTokens+tokens > c.config.ChunkSize && len(current) > 0 {
			flush(false)

			overlap := c.overlapSentences(current)
			current = overlap
			currentTokens = approxTokens(strings.Join(overlap, " "))
		}

		current = append(current, sentence)
		currentTokens += tokens
	}

	flush(true)
	return pieces
}

// overlapSentences returns the trailing sentences of a chunk that fit in
// the overlap budget. Single-sentence chunks get no overlap.
func (c *Chunker) overlapSentences(sentences []string) []string {
	if len(sentences) < 2 {
		return nil
	}

	var overlap []string
	tokens := 0
	for i := len(sentences) - 1; i >= 0; i-- {
		t := approxTokens(sentences[i])
		if tokens+t > c.config.ChunkOverlap {
			break
		}
		overlap = append([]string{sentences[i]}, overlap...)
		tokens += t
	}
	return overlap
}

func splitIntoSentences(text string) []string {
	var sentences []string
	last := 0
	for _, loc := range chunkSentenceBoundary.FindAllStringIndex(text, -1) {
		s := strings.TrimSpace(text[last : loc[0]+1])
		if s != "" {
			sentences = append(sentences, s)
		}
		last = loc[1]
	}
	if s := strings.TrimSpace(text[last:]); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

// approxTokens estimates token count as words times 1.3, close enough for
// sizing chunks without a tokenizer dependency.
func approxTokens(text string) int {
	return int(float64(len(strings.Fields(text))) * 1.3)
}
