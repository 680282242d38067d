package ingestion

import "errors"

var (
	// ErrChunkRepositoryRequired is returned when a chunk repository is not provided.
	ErrChunkRepositoryRequired = errors.New("chunk repository required")

	// ErrStatuteRepositoryRequired is returned when a statute repository is not provided.
	ErrStatuteRepositoryRequired = errors.New("statute repository required")

	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrEmptyJudgment is returned when a judgment has no text to ingest.
	ErrEmptyJudgment = errors.New("judgment text is empty")
)
