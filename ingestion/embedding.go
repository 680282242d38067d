package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/caselode/caselode/ai"
	"github.com/caselode/caselode/core"
	"github.com/caselode/caselode/storage"
)

// chunkEmbeddingProcessor generates embeddings for judgment chunks.
type chunkEmbeddingProcessor struct {
	chunkRepository storage.ChunkRepository
	embedder        ai.Embedder
	logger          *slog.Logger
}

var _ processor = (*chunkEmbeddingProcessor)(nil)

func newChunkEmbeddingProcessor(chunkRepository storage.ChunkRepository, embedder ai.Embedder, logger *slog.Logger) (processor, error) {
	if chunkRepository == nil {
		return nil, ErrChunkRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &chunkEmbeddingProcessor{
		chunkRepository: chunkRepository,
		embedder:        embedder,
		logger:          logger.With("processor", "chunk-embeddings"),
	}, nil
}

// process generates and stores embeddings for the specified chunks.
// Vectors are normalized to unit length before storage, since similarity
// search computes plain dot products.
func (cp *chunkEmbeddingProcessor) process(ctx context.Context, ids ...core.ID) error {
	cp.logger.Info("processing chunks for embeddings", "chunks", len(ids))

	slices.Sort(ids)

	chunks, err := cp.chunkRepository.GetChunks(ctx, ids...)
	if err != nil {
		cp.logger.Error("error retrieving chunks", "err", err)
		return err
	}
	if len(chunks) == 0 {
		return nil
	}

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Contents
	}

	cp.logger.Debug("generating embeddings for chunks", "chunks", len(texts))
	embeddings, err := cp.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		cp.logger.Error("error generating embeddings", "err", err)
		return err
	}

	if len(embeddings) != len(chunks) {
		return fmt.Errorf("embedding result mismatch. expected %d, received %d", len(chunks), len(embeddings))
	}

	for i := range embeddings {
		chunks[i].Vector = core.NormalizeVector(embeddings[i])
	}

	_, err = cp.chunkRepository.UpdateChunks(ctx, chunks...)
	return err
}

// statuteEmbeddingProcessor generates embeddings for statute sections.
type statuteEmbeddingProcessor struct {
	statuteRepository storage.StatuteRepository
	embedder          ai.Embedder
	logger            *slog.Logger
}

var _ processor = (*statuteEmbeddingProcessor)(nil)

func newStatuteEmbeddingProcessor(statuteRepository storage.StatuteRepository, embedder ai.Embedder, logger *slog.Logger) (processor, error) {
	if statuteRepository == nil {
		return nil, ErrStatuteRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &statuteEmbeddingProcessor{
		statuteRepository: statuteRepository,
		embedder:          embedder,
		logger:            logger.With("processor", "statute-embeddings"),
	}, nil
}

// process generates and stores embeddings for the specified sections.
// Sections are embedded as "title. body" so the title's terms carry weight.
func (sp *statuteEmbeddingProcessor) process(ctx context.Context, ids ...core.ID) error {
	sp.logger.Info("processing statute sections for embeddings", "sections", len(ids))

	slices.Sort(ids)

	sections, err := sp.statuteRepository.GetSections(ctx, ids...)
	if err != nil {
		sp.logger.Error("error retrieving statute sections", "err", err)
		return err
	}
	if len(sections) == 0 {
		return nil
	}

	texts := make([]string, len(sections))
	for i, section := range sections {
		texts[i] = section.EmbeddingText()
	}

	embeddings, err := sp.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		sp.logger.Error("error generating embeddings", "err", err)
		return err
	}

	if len(embeddings) != len(sections) {
		return fmt.Errorf("embedding result mismatch. expected %d, received %d", len(sections), len(embeddings))
	}

	for i := range embeddings {
		sections[i].Vector = core.NormalizeVector(embeddings[i])
	}

	_, err = sp.statuteRepository.UpdateSections(ctx, sections...)
	return err
}
