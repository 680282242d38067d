package storage

import (
	"context"

	"github.com/caselode/caselode/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	// The context passed to fn may contain transaction state.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// ChunkRepository provides operations for managing judgment chunks.
// Chunks are append-only: they are created during ingestion, updated only to
// attach an embedding, and deleted only by cascading judgment deletion.
type ChunkRepository interface {
	Repository

	// AddChunks adds one or more chunks to storage.
	// Generates new IDs from the chunk sequence and sets InsertedAt.
	// Returns the chunks with generated IDs and timestamps populated.
	AddChunks(ctx context.Context, chunks ...*core.Chunk) ([]*core.Chunk, error)

	// UpdateChunks updates existing chunks (used to attach embeddings).
	// Updates the UpdatedAt timestamp automatically.
	// Returns ErrNotFound if any chunk doesn't exist.
	UpdateChunks(ctx context.Context, chunks ...*core.Chunk) ([]*core.Chunk, error)

	// DeleteJudgment removes all chunks belonging to a judgment.
	// Deleting a judgment with no chunks is not an error.
	DeleteJudgment(ctx context.Context, judgmentID core.ID) error

	// GetChunk retrieves a single chunk by ID.
	// Returns ErrNotFound if the chunk doesn't exist.
	GetChunk(ctx context.Context, id core.ID) (*core.Chunk, error)

	// GetChunks retrieves multiple chunks by their IDs.
	// Returns only the chunks that exist (no error for missing chunks).
	GetChunks(ctx context.Context, ids ...core.ID) ([]*core.Chunk, error)

	// GetChunksByJudgment retrieves all chunks of a judgment, ordered by Index.
	GetChunksByJudgment(ctx context.Context, judgmentID core.ID) ([]*core.Chunk, error)

	// ForEachChunk iterates over every chunk in storage.
	// Iteration order is unspecified; it stops on the first error from fn.
	// Used for index builds and embedding backfills, not per-query work.
	ForEachChunk(ctx context.Context, fn func(*core.Chunk) error) error

	// FindSimilar finds chunks similar to the given vector.
	// Returns matches with similarity >= minSimilarity, up to limit results,
	// ordered by similarity score (highest first) with ties broken by
	// ascending chunk ID. Chunks without an embedding are skipped.
	FindSimilar(ctx context.Context, vector []float32, minSimilarity float32, limit int) ([]core.SimilarityMatch, error)
}

// StatuteRepository provides operations for the statute knowledge base.
// Sections are immutable after load apart from embedding backfills.
type StatuteRepository interface {
	Repository

	// AddSections adds one or more statute sections to storage.
	// Uses content-based IDs (IDFromContent of the section tuple).
	// Returns the sections with IDs and timestamps populated.
	AddSections(ctx context.Context, sections ...*core.StatuteSection) ([]*core.StatuteSection, error)

	// UpdateSections updates existing sections (used to attach embeddings).
	// Updates the UpdatedAt timestamp automatically.
	// Returns ErrNotFound if any section doesn't exist.
	UpdateSections(ctx context.Context, sections ...*core.StatuteSection) ([]*core.StatuteSection, error)

	// GetSection finds a section by its (act, number) tuple.
	// Returns ErrNotFound if no matching section exists.
	GetSection(ctx context.Context, act, number string) (*core.StatuteSection, error)

	// GetSections retrieves multiple sections by their IDs.
	// Returns only the sections that exist (no error for missing sections).
	GetSections(ctx context.Context, ids ...core.ID) ([]*core.StatuteSection, error)

	// ForEachSection iterates over every statute section in storage.
	// Iteration stops on the first error from fn.
	ForEachSection(ctx context.Context, fn func(*core.StatuteSection) error) error
}
