package reembed

import (
	"context"
	"fmt"
	"time"

	"github.com/caselode/caselode/ai"
	"github.com/caselode/caselode/core"
	"github.com/caselode/caselode/storage"
)

// ChunkBatchProcessor handles embedding generation for batches of chunks.
type ChunkBatchProcessor struct {
	repo           storage.ChunkRepository
	embedder       ai.Embedder
	maxRetries     int
	retryBaseDelay time.Duration
}

// NewChunkBatchProcessor creates a new batch processor for chunks.
// maxRetries: maximum number of retry attempts for embedding API calls
// retryBaseDelay: base delay for exponential backoff
func NewChunkBatchProcessor(repo storage.ChunkRepository, embedder ai.Embedder, maxRetries int, retryBaseDelay time.Duration) *ChunkBatchProcessor {
	return &ChunkBatchProcessor{
		repo:           repo,
		embedder:       embedder,
		maxRetries:     maxRetries,
		retryBaseDelay: retryBaseDelay,
	}
}

// Process generates embeddings for a batch of chunks and updates them in the
// database. Vectors are normalized after embedding because similarity search
// computes plain dot products.
func (bp *ChunkBatchProcessor) Process(ctx context.Context, chunks []*core.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Contents
	}

	var embeddings [][]float32
	err := RetryWithBackoff(ctx, func() error {
		var err error
		embeddings, err = bp.embedder.EmbedTexts(ctx, texts)
		return err
	}, bp.maxRetries, bp.retryBaseDelay)

	if err != nil {
		return fmt.Errorf("failed to generate embeddings after %d attempts: %w", bp.maxRetries, err)
	}

	if len(embeddings) != len(chunks) {
		return fmt.Errorf("embedding count mismatch: expected %d, got %d", len(chunks), len(embeddings))
	}

	for i := range chunks {
		chunks[i].Vector = core.NormalizeVector(embeddings[i])
	}

	_, err = bp.repo.UpdateChunks(ctx, chunks...)
	if err != nil {
		return fmt.Errorf("failed to update chunks: %w", err)
	}

	return nil
}

// SectionBatchProcessor handles embedding generation for batches of statute
// sections. Sections are embedded from StatuteSection.EmbeddingText so the
// reembedded vectors stay comparable to freshly ingested ones.
type SectionBatchProcessor struct {
	repo           storage.StatuteRepository
	embedder       ai.Embedder
	maxRetries     int
	retryBaseDelay time.Duration
}

// NewSectionBatchProcessor creates a new batch processor for statute sections.
func NewSectionBatchProcessor(repo storage.StatuteRepository, embedder ai.Embedder, maxRetries int, retryBaseDelay time.Duration) *SectionBatchProcessor {
	return &SectionBatchProcessor{
		repo:           repo,
		embedder:       embedder,
		maxRetries:     maxRetries,
		retryBaseDelay: retryBaseDelay,
	}
}

// Process generates embeddings for a batch of sections and updates them in
// the database.
func (bp *SectionBatchProcessor) Process(ctx context.Context, sections []*core.StatuteSection) error {
	if len(sections) == 0 {
		return nil
	}

	texts := make([]string, len(sections))
	for i, section := range sections {
		texts[i] = section.EmbeddingText()
	}

	var embeddings [][]float32
	err := RetryWithBackoff(ctx, func() error {
		var err error
		embeddings, err = bp.embedder.EmbedTexts(ctx, texts)
		return err
	}, bp.maxRetries, bp.retryBaseDelay)

	if err != nil {
		return fmt.Errorf("failed to generate embeddings after %d attempts: %w", bp.maxRetries, err)
	}

	if len(embeddings) != len(sections) {
		return fmt.Errorf("embedding count mismatch: expected %d, got %d", len(sections), len(embeddings))
	}

	for i := range sections {
		sections[i].Vector = core.NormalizeVector(embeddings[i])
	}

	_, err = bp.repo.UpdateSections(ctx, sections...)
	if err != nil {
		return fmt.Errorf("failed to update sections: %w", err)
	}

	return nil
}
