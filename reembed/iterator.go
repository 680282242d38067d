package reembed

import (
	"context"

	"github.com/caselode/caselode/core"
	"github.com/caselode/caselode/storage"
)

const (
	// DefaultBatchSize is the default number of records to process in each batch
	DefaultBatchSize = 100
)

// ChunkIterator walks every stored chunk in batches.
type ChunkIterator struct {
	repo      storage.ChunkRepository
	batchSize int
}

// NewChunkIterator creates a new chunk iterator.
// batchSize: number of chunks to hand to fn at a time (must be > 0)
func NewChunkIterator(repo storage.ChunkRepository, batchSize int) *ChunkIterator {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	return &ChunkIterator{
		repo:      repo,
		batchSize: batchSize,
	}
}

// Count returns the number of chunks currently in storage.
func (it *ChunkIterator) Count(ctx context.Context) (int, error) {
	count := 0
	err := it.repo.ForEachChunk(ctx, func(*core.Chunk) error {
		count++
		return nil
	})
	return count, err
}

// ForEach iterates over all chunks, calling fn for each batch.
// Iteration stops on the first error from fn. Context cancellation is
// checked between batches.
//
// Batches are assembled outside the storage iteration so fn can write
// back to the repository without racing the read snapshot.
func (it *ChunkIterator) ForEach(ctx context.Context, fn func([]*core.Chunk) error) error {
	var chunks []*core.Chunk
	err := it.repo.ForEachChunk(ctx, func(chunk *core.Chunk) error {
		chunks = append(chunks, chunk)
		return nil
	})
	if err != nil {
		return err
	}

	for i := 0; i < len(chunks); i += it.batchSize {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		end := min(i+it.batchSize, len(chunks))
		if err := fn(chunks[i:end]); err != nil {
			return err
		}
	}

	return nil
}

// SectionIterator walks every statute section in batches.
// Same contract as ChunkIterator.
type SectionIterator struct {
	repo      storage.StatuteRepository
	batchSize int
}

// NewSectionIterator creates a new statute section iterator.
func NewSectionIterator(repo storage.StatuteRepository, batchSize int) *SectionIterator {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	return &SectionIterator{
		repo:      repo,
		batchSize: batchSize,
	}
}

// Count returns the number of sections currently in storage.
func (it *SectionIterator) Count(ctx context.Context) (int, error) {
	count := 0
	err := it.repo.ForEachSection(ctx, func(*core.StatuteSection) error {
		count++
		return nil
	})
	return count, err
}

// ForEach iterates over all sections, calling fn for each batch.
func (it *SectionIterator) ForEach(ctx context.Context, fn func([]*core.StatuteSection) error) error {
	var sections []*core.StatuteSection
	err := it.repo.ForEachSection(ctx, func(section *core.StatuteSection) error {
		sections = append(sections, section)
		return nil
	})
	if err != nil {
		return err
	}

	for i := 0; i < len(sections); i += it.batchSize {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		end := min(i+it.batchSize, len(sections))
		if err := fn(sections[i:end]); err != nil {
			return err
		}
	}

	return nil
}
