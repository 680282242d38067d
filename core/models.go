package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// Chunk IDs come from database sequences; statute section and judgment IDs
// are generated using content-based hashing.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// SectionType tags a chunk with the judgment section it was carved from.
type SectionType int

const (
	// SectionUnknown means no section marker was detected.
	SectionUnknown SectionType = iota
	// SectionHeadnote covers headnote, synopsis and summary blocks.
	SectionHeadnote
	// SectionFacts covers the factual background.
	SectionFacts
	// SectionIssue covers the questions before the court.
	SectionIssue
	// SectionAnalysis covers reasoning, discussion and observations.
	SectionAnalysis
	// SectionConclusion covers the decision and final order.
	SectionConclusion
)

// String returns the lower-case section tag used in bundle headers and logs.
func (s SectionType) String() string {
	switch s {
	case SectionHeadnote:
		return "headnote"
	case SectionFacts:
		return "facts"
	case SectionIssue:
		return "issue"
	case SectionAnalysis:
		return "analysis"
	case SectionConclusion:
		return "conclusion"
	default:
		return "unknown"
	}
}

// Chunk is a retrievable span of judgment text.
// Chunks are append-only: created during ingestion, enriched once with an
// embedding, and removed only when their parent judgment is deleted.
type Chunk struct {
	Id         ID
	JudgmentId ID
	Index      int // position of the chunk within its judgment
	Contents   string
	Section    SectionType
	TokenCount int
	CaseNumber string
	Court      string
	Decided    time.Time // date of the judgment
	Vector     []float32 // embedding for semantic search (populated by processors)
	InsertedAt time.Time // when the chunk was inserted into the database
	UpdatedAt  time.Time // when the chunk was last updated
}

// StatuteSection is a reference entry from the statute knowledge base,
// keyed by (act name, section number). Immutable after load.
type StatuteSection struct {
	Id         ID // content ID of StatuteTuple(Act, Number)
	Act        string
	Number     string
	Title      string
	Contents   string
	Vector     []float32
	InsertedAt time.Time
	UpdatedAt  time.Time
}

// StatuteTuple returns a string representation of a citation as "(act,number)".
// This is used for generating deterministic IDs.
func StatuteTuple(act, number string) string {
	return "(" + act + "," + number + ")"
}

// Tuple returns the canonical "(act,number)" key for this section.
func (s *StatuteSection) Tuple() string {
	return StatuteTuple(s.Act, s.Number)
}

// EmbeddingText returns the text a section's embedding is computed from.
// The title is prepended so its terms carry weight in similarity search.
// Embedding and reembedding must both use this form.
func (s *StatuteSection) EmbeddingText() string {
	if s.Title == "" {
		return s.Contents
	}
	return s.Title + ". " + s.Contents
}

// SimilarityMatch represents a chunk match from vector similarity search.
type SimilarityMatch struct {
	ChunkId ID
	Score   float32
}

// RankedResult is a fused retrieval hit for a single chunk.
// LexicalRank and SemanticRank are 1-indexed; 0 means the chunk was absent
// from that ranker's list. Results are never mutated after creation and are
// ordered by descending Score with ties broken by ascending ChunkId.
type RankedResult struct {
	ChunkId      ID
	LexicalRank  int
	SemanticRank int
	Score        float64
}
