// Copyright 2026 Caselode Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package reembed

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/caselode/caselode/ai"
	"github.com/caselode/caselode/core"
	"github.com/caselode/caselode/storage"
)

// Config holds configuration for a reembedding operation.
type Config struct {
	// BatchSize is the number of records to process in each batch
	BatchSize int

	// ReportInterval is how often to report progress (number of records)
	ReportInterval int

	// MaxRetries is the maximum number of retry attempts for failed operations
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff
	RetryDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:      100,
		ReportInterval: 100,
		MaxRetries:     3,
		RetryDelay:     1 * time.Second,
	}
}

// ChunkReembedder regenerates the embedding of every chunk in a database.
// Run after switching embedding models, since vectors from different models
// are not comparable.
type ChunkReembedder struct {
	config    *Config
	progress  io.Writer
	processor *ChunkBatchProcessor
	iterator  *ChunkIterator
}

// NewChunkReembedder creates a new chunk reembedder.
// progress: where to write progress output (typically os.Stderr)
func NewChunkReembedder(repo storage.ChunkRepository, embedder ai.Embedder, config *Config, progress io.Writer) *ChunkReembedder {
	if config == nil {
		config = DefaultConfig()
	}

	return &ChunkReembedder{
		config:    config,
		progress:  progress,
		processor: NewChunkBatchProcessor(repo, embedder, config.MaxRetries, config.RetryDelay),
		iterator:  NewChunkIterator(repo, config.BatchSize),
	}
}

// Run executes the reembedding operation over every stored chunk.
// Progress is reported to the configured writer.
func (r *ChunkReembedder) Run(ctx context.Context) error {
	total, err := r.iterator.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count chunks: %w", err)
	}

	if total == 0 {
		fmt.Fprintf(r.progress, "No chunks found in database (0 chunks)\n")
		return nil
	}

	fmt.Fprintf(r.progress, "Starting reembedding of %d chunks (batch size: %d)\n",
		total, r.config.BatchSize)

	tracker := NewProgressTracker(r.progress, total, r.config.ReportInterval)
	tracker.Start()

	err = r.iterator.ForEach(ctx, func(chunks []*core.Chunk) error {
		if err := r.processor.Process(ctx, chunks); err != nil {
			return fmt.Errorf("failed to process batch: %w", err)
		}

		tracker.Increment(len(chunks))
		return nil
	})

	if err != nil {
		return err
	}

	tracker.Finish()

	elapsed := tracker.Elapsed()
	fmt.Fprintf(r.progress, "Reembedding complete. Processed %d chunks in %v (%.1f chunks/sec)\n",
		total, elapsed.Round(time.Second), float64(total)/elapsed.Seconds())

	return nil
}

// SectionReembedder regenerates the embedding of every statute section.
// Must run alongside ChunkReembedder on a model switch so both sides of
// similarity search live in the same vector space.
type SectionReembedder struct {
	config    *Config
	progress  io.Writer
	processor *SectionBatchProcessor
	iterator  *SectionIterator
}

// NewSectionReembedder creates a new statute section reembedder.
func NewSectionReembedder(repo storage.StatuteRepository, embedder ai.Embedder, config *Config, progress io.Writer) *SectionReembedder {
	if config == nil {
		config = DefaultConfig()
	}

	return &SectionReembedder{
		config:    config,
		progress:  progress,
		processor: NewSectionBatchProcessor(repo, embedder, config.MaxRetries, config.RetryDelay),
		iterator:  NewSectionIterator(repo, config.BatchSize),
	}
}

// Run executes the reembedding operation over every statute section.
func (r *SectionReembedder) Run(ctx context.Context) error {
	total, err := r.iterator.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count sections: %w", err)
	}

	if total == 0 {
		fmt.Fprintf(r.progress, "No statute sections found in database (0 sections)\n")
		return nil
	}

	fmt.Fprintf(r.progress, "Starting reembedding of %d sections (batch size: %d)\n",
		total, r.config.BatchSize)

	tracker := NewProgressTracker(r.progress, total, r.config.ReportInterval)
	tracker.Start()

	err = r.iterator.ForEach(ctx, func(sections []*core.StatuteSection) error {
		if err := r.processor.Process(ctx, sections); err != nil {
			return fmt.Errorf("failed to process batch: %w", err)
		}

		tracker.Increment(len(sections))
		return nil
	})

	if err != nil {
		return err
	}

	tracker.Finish()

	elapsed := tracker.Elapsed()
	fmt.Fprintf(r.progress, "Reembedding complete. Processed %d sections in %v (%.1f sections/sec)\n",
		total, elapsed.Round(time.Second), float64(total)/elapsed.Seconds())

	return nil
}
