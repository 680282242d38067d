package ingestion

import (
	"context"
	"log/slog"
	"runtime"
	"strings"
	"time"

	"github.com/caselode/caselode/ai"
	"github.com/caselode/caselode/core"
	"github.com/caselode/caselode/ner"
	"github.com/caselode/caselode/storage"
	"github.com/panjf2000/ants/v2"
)

// Judgment is one court judgment handed to the pipeline for ingestion.
// CaseNumber, Court, and Decided may be left zero; the pipeline fills them
// from the judgment text where it can.
type Judgment struct {
	CaseNumber string
	Court      string
	Decided    time.Time
	Text       string
}

// Pipeline orchestrates ingestion of judgments and statute sections.
// Chunking and metadata extraction happen synchronously; embedding
// generation runs on a worker pool and catches up in the background.
type Pipeline struct {
	chunkRepository   storage.ChunkRepository
	statuteRepository storage.StatuteRepository
	embeddingPool     *ants.Pool
	chunkProc         processor
	statuteProc       processor
	chunker           *Chunker
	recognizer        *ner.Recognizer
	logger            *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for embedding processing.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.embeddingPool != nil {
			p.embeddingPool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.embeddingPool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// WithChunkerConfig overrides the chunk sizing configuration.
func WithChunkerConfig(config ChunkerConfig) Option {
	return func(p *Pipeline) error {
		p.chunker = NewChunker(config)
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(
	chunkRepository storage.ChunkRepository,
	statuteRepository storage.StatuteRepository,
	embedder ai.Embedder,
	opts ...Option,
) (*Pipeline, error) {
	if chunkRepository == nil {
		return nil, ErrChunkRepositoryRequired
	}
	if statuteRepository == nil {
		return nil, ErrStatuteRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		chunkRepository:   chunkRepository,
		statuteRepository: statuteRepository,
		embeddingPool:     pool,
		chunker:           NewChunker(DefaultChunkerConfig()),
		recognizer:        ner.NewRecognizer(),
		logger:            slog.Default(),
	}

	// Apply options (may override defaults)
	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	chunkProc, err := newChunkEmbeddingProcessor(chunkRepository, embedder, p.logger)
	if err != nil {
		p.Release()
		return nil, err
	}
	statuteProc, err := newStatuteEmbeddingProcessor(statuteRepository, embedder, p.logger)
	if err != nil {
		p.Release()
		return nil, err
	}
	p.chunkProc = chunkProc
	p.statuteProc = statuteProc

	return p, nil
}

// IngestJudgment chunks a judgment, stores the chunks, and schedules
// embedding generation. Re-ingesting the same judgment text replaces its
// previous chunks. Returns the judgment ID and the number of chunks stored.
// Errors during async embedding are logged but do not fail the ingestion.
func (p *Pipeline) IngestJudgment(ctx context.Context, judgment *Judgment) (core.ID, int, error) {
	text := strings.TrimSpace(judgment.Text)
	if text == "" {
		return 0, 0, ErrEmptyJudgment
	}

	judgmentID := core.IDFromContent(text)

	p.fillMetadata(judgment, text)

	// Replace any previous ingestion of this judgment.
	if err := p.chunkRepository.DeleteJudgment(ctx, judgmentID); err != nil {
		return 0, 0, err
	}

	pieces := p.chunker.Chunk(text)
	chunks := make([]*core.Chunk, len(pieces))
	for i, piece := range pieces {
		chunks[i] = &core.Chunk{
			JudgmentId: judgmentID,
			Index:      i,
			Contents:   piece.Text,
			Section:    piece.Section,
			TokenCount: piece.TokenCount,
			CaseNumber: judgment.CaseNumber,
			Court:      judgment.Court,
			Decided:    judgment.Decided,
		}
		if err := core.ValidateChunk(chunks[i]); err != nil {
			return 0, 0, err
		}
	}

	added, err := p.chunkRepository.AddChunks(ctx, chunks...)
	if err != nil {
		return 0, 0, err
	}

	ids := make([]core.ID, len(added))
	for i, chunk := range added {
		ids[i] = chunk.Id
	}

	p.embeddingPool.Submit(func() {
		if err := p.chunkProc.process(context.Background(), ids...); err != nil {
			p.logger.Error("error processing chunk embeddings", "judgmentId", judgmentID, "err", err)
		}
	})

	p.logger.Info("judgment ingested", "judgmentId", judgmentID, "chunks", len(added))
	return judgmentID, len(added), nil
}

// LoadStatutes stores statute sections and schedules embedding generation.
// Reloading an existing section overwrites it.
func (p *Pipeline) LoadStatutes(ctx context.Context, sections ...*core.StatuteSection) (int, error) {
	for _, section := range sections {
		if err := core.ValidateStatuteSection(section); err != nil {
			return 0, err
		}
	}

	added, err := p.statuteRepository.AddSections(ctx, sections...)
	if err != nil {
		return 0, err
	}

	ids := make([]core.ID, len(added))
	for i, section := range added {
		ids[i] = section.Id
	}

	p.embeddingPool.Submit(func() {
		if err := p.statuteProc.process(context.Background(), ids...); err != nil {
			p.logger.Error("error processing statute embeddings", "err", err)
		}
	})

	p.logger.Info("statute sections loaded", "sections", len(added))
	return len(added), nil
}

// Release releases the embedding worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.embeddingPool != nil {
		p.embeddingPool.Release()
	}
}

// fillMetadata populates missing judgment metadata from the text itself.
// The first recognized case number, court, and parseable date win.
func (p *Pipeline) fillMetadata(judgment *Judgment, text string) {
	if judgment.CaseNumber != "" && judgment.Court != "" && !judgment.Decided.IsZero() {
		return
	}

	// Metadata almost always sits in the cause title; cap the scan.
	head := text
	if len(head) > 2000 {
		head = head[:2000]
	}

	for _, entity := range p.recognizer.Extract(head) {
		switch entity.Type {
		case core.EntityCaseNumber:
			if judgment.CaseNumber == "" {
				judgment.CaseNumber = entity.Text
			}
		case core.EntityCourt:
			if judgment.Court == "" {
				judgment.Court = entity.Text
			}
		case core.EntityDate:
			if judgment.Decided.IsZero() {
				if ts, ok := parseJudgmentDate(entity.Text); ok {
					judgment.Decided = ts
				}
			}
		}
	}
}

var judgmentDateLayouts = []string{
	"02-01-2006",
	"02/01/2006",
	"02.01.2006",
	"2 January 2006",
}

func parseJudgmentDate(text string) (time.Time, bool) {
	for _, layout := range judgmentDateLayouts {
		if ts, err := time.Parse(layout, text); err == nil && core.IsValidDate(ts) {
			return ts.UTC(), true
		}
	}
	return time.Time{}, false
}
