package search

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/caselode/caselode/ai"
	"github.com/caselode/caselode/core"
	"github.com/caselode/caselode/darkzone"
	"github.com/caselode/caselode/index"
	"github.com/caselode/caselode/ner"
	"github.com/caselode/caselode/storage"
)

const (
	// DefaultTopK is the number of fused results returned per query.
	DefaultTopK = 20

	// DefaultSimilarityFloor is the minimum cosine similarity for semantic
	// admission. Deliberately permissive; fusion demotes weak matches.
	DefaultSimilarityFloor = 0.5

	// DefaultCandidateMultiplier widens each ranker's candidate pool beyond
	// topK so fusion has enough overlap to differentiate.
	DefaultCandidateMultiplier = 5

	// DefaultEmbedTimeout bounds a single query embedding call.
	DefaultEmbedTimeout = 10 * time.Second
)

// LexicalProvider supplies the current lexical index snapshot. The returned
// index must be immutable; providers swap in a fresh snapshot on rebuild.
type LexicalProvider interface {
	LexicalIndex() *index.Lexical
}

// Retriever runs hybrid retrieval over the judgment corpus: entity
// extraction, dark zone detection, query enhancement, parallel lexical and
// semantic ranking, rank fusion, statute resolution, and context assembly.
type Retriever struct {
	chunks   storage.ChunkRepository
	statutes storage.StatuteRepository
	embedder ai.Embedder
	lexical  LexicalProvider

	recognizer *ner.Recognizer
	detector   *darkzone.Detector
	enhancer   *Enhancer
	assembler  *Assembler

	topK                int
	similarityFloor     float32
	rrfConstant         int
	candidateMultiplier int
	embedTimeout        time.Duration

	logger *slog.Logger
}

// Option configures a Retriever.
type Option func(*Retriever) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Retriever) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// WithTopK sets how many fused results a query returns.
func WithTopK(topK int) Option {
	return func(r *Retriever) error {
		if topK > 0 {
			r.topK = topK
		}
		return nil
	}
}

// WithSimilarityFloor sets the semantic admission threshold.
func WithSimilarityFloor(floor float32) Option {
	return func(r *Retriever) error {
		r.similarityFloor = floor
		return nil
	}
}

// WithRRFConstant sets the rank fusion smoothing constant.
func WithRRFConstant(k int) Option {
	return func(r *Retriever) error {
		if k > 0 {
			r.rrfConstant = k
		}
		return nil
	}
}

// WithCandidateMultiplier sets how many extra candidates each ranker
// supplies before fusion.
func WithCandidateMultiplier(m int) Option {
	return func(r *Retriever) error {
		if m > 0 {
			r.candidateMultiplier = m
		}
		return nil
	}
}

// WithEmbedTimeout bounds each query embedding attempt.
func WithEmbedTimeout(timeout time.Duration) Option {
	return func(r *Retriever) error {
		if timeout > 0 {
			r.embedTimeout = timeout
		}
		return nil
	}
}

// WithMaxContextLength bounds the assembled bundle size in characters.
func WithMaxContextLength(maxLength int) Option {
	return func(r *Retriever) error {
		r.assembler = NewAssembler(maxLength)
		return nil
	}
}

// WithDarkZoneConfig overrides the dark zone detector configuration.
func WithDarkZoneConfig(config darkzone.Config) Option {
	return func(r *Retriever) error {
		r.detector = darkzone.NewDetector(config)
		return nil
	}
}

// NewRetriever creates a retriever over the given repositories, embedder,
// and lexical index provider.
func NewRetriever(
	chunks storage.ChunkRepository,
	statutes storage.StatuteRepository,
	embedder ai.Embedder,
	lexical LexicalProvider,
	opts ...Option,
) (*Retriever, error) {
	if chunks == nil {
		return nil, ErrChunkRepositoryRequired
	}
	if statutes == nil {
		return nil, ErrStatuteRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if lexical == nil {
		return nil, ErrLexicalProviderRequired
	}

	recognizer := ner.NewRecognizer()
	r := &Retriever{
		chunks:              chunks,
		statutes:            statutes,
		embedder:            embedder,
		lexical:             lexical,
		recognizer:          recognizer,
		detector:            darkzone.NewDetector(darkzone.DefaultConfig()),
		enhancer:            NewEnhancer(recognizer),
		assembler:           NewAssembler(DefaultMaxContextLength),
		topK:                DefaultTopK,
		similarityFloor:     DefaultSimilarityFloor,
		rrfConstant:         DefaultRRFConstant,
		candidateMultiplier: DefaultCandidateMultiplier,
		embedTimeout:        DefaultEmbedTimeout,
		logger:              slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Retrieve runs a full hybrid query and returns the assembled context
// bundle. A query never hard-fails on data sparsity: an empty query, a
// missing embedding service, or an unindexed corpus all produce a smaller
// (possibly empty) bundle rather than an error.
func (r *Retriever) Retrieve(ctx context.Context, query string) (*Bundle, error) {
	return r.RetrieveWithMonitor(ctx, query, nil)
}

// RetrieveWithMonitor runs a full hybrid query with monitoring.
// The monitor receives callbacks at each stage of the retrieval process.
func (r *Retriever) RetrieveWithMonitor(ctx context.Context, query string, monitor RetrievalMonitor) (*Bundle, error) {
	// Use noop monitor if none provided
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	monitor.Start(query)

	// 1. Extract entities and detect dark zones in the query text
	entities := r.recognizer.Extract(query)
	monitor.AfterEntityExtraction(entities)

	zones := r.detector.Detect(query, entities)
	monitor.AfterDarkZoneDetection(zones)

	// 2. Enhance the query
	enhanced := r.enhancer.Enhance(query, entities, zones)
	monitor.AfterQueryEnhancement(enhanced)

	// 3. Rank on both sides in parallel. The rankers are independent reads
	// over immutable state, so no coordination beyond the join is needed.
	// Monitor callbacks are deferred until after the join so implementations
	// never see concurrent calls.
	var (
		lexicalMatches  []index.Match
		semanticMatches []core.SimilarityMatch
	)

	// A query that is empty after enhancement ranks nothing on either side:
	// no embedding call, no vector search, no lexical scan.
	if strings.TrimSpace(enhanced) != "" {
		candidates := r.topK * r.candidateMultiplier

		var (
			wg       sync.WaitGroup
			degraded error
		)
		wg.Add(2)
		go func() {
			defer wg.Done()
			lexicalMatches = r.rankLexical(enhanced, candidates)
		}()
		go func() {
			defer wg.Done()
			semanticMatches, degraded = r.rankSemantic(ctx, enhanced, candidates)
		}()
		wg.Wait()

		if degraded != nil {
			// Semantic side degrades to empty; fusion falls back to
			// lexical-only ordering.
			r.logger.Warn("semantic ranking degraded to lexical-only", "err", degraded)
			monitor.SemanticDegraded(degraded)
		}
	}
	monitor.AfterLexicalRank(lexicalMatches)
	monitor.AfterSemanticRank(semanticMatches)

	// 4. Fuse
	results := Fuse(lexicalMatches, semanticMatches, r.rrfConstant, r.topK)
	monitor.AfterFusion(results)

	// 5. Hydrate chunk texts in fused order
	chunks, err := r.hydrateChunks(ctx, results)
	if err != nil {
		r.logger.Error("error retrieving chunks", "resultCount", len(results), "err", err)
		return nil, err
	}
	monitor.AfterChunkRetrieval(chunks)

	// 6. Resolve statute citations raised by dark zones
	sections := r.resolveStatutes(ctx, zones, monitor)

	// 7. Assemble
	bundle := r.assembler.Assemble(results, chunks, sections, zones)
	monitor.Finish(bundle)

	return bundle, nil
}

func (r *Retriever) rankLexical(query string, candidates int) []index.Match {
	idx := r.lexical.LexicalIndex()
	if idx == nil {
		r.logger.Warn("lexical index not built, skipping lexical ranking")
		return nil
	}
	return idx.Rank(query, candidates)
}

// rankSemantic embeds the query and runs vector search. Any failure is
// returned as a degradation cause with an empty match list, never as a
// query-fatal error.
func (r *Retriever) rankSemantic(ctx context.Context, query string, candidates int) ([]core.SimilarityMatch, error) {
	vector, err := r.embedQuery(ctx, query)
	if err != nil {
		return nil, err
	}

	matches, err := r.chunks.FindSimilar(ctx, vector, r.similarityFloor, candidates)
	if err != nil {
		return nil, err
	}
	return matches, nil
}

// embedQuery calls the embedding provider with a bounded timeout and a
// single retry. Retries stop early when the parent context is done.
func (r *Retriever) embedQuery(ctx context.Context, query string) ([]float32, error) {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		attemptCtx, cancel := context.WithTimeout(ctx, r.embedTimeout)
		vector, err := r.embedder.EmbedText(attemptCtx, query)
		cancel()

		if err == nil {
			return vector, nil
		}
		lastErr = err
		r.logger.Debug("query embedding attempt failed", "attempt", attempt+1, "err", err)
	}
	return nil, lastErr
}

// hydrateChunks loads chunk records in fused result order. A chunk the
// index knows but the store has lost is skipped with a warning; the rest of
// the query proceeds.
func (r *Retriever) hydrateChunks(ctx context.Context, results []core.RankedResult) ([]*core.Chunk, error) {
	if len(results) == 0 {
		return nil, nil
	}

	ids := make([]core.ID, len(results))
	for i, res := range results {
		ids[i] = res.ChunkId
	}

	found, err := r.chunks.GetChunks(ctx, ids...)
	if err != nil {
		return nil, err
	}

	byId := make(map[core.ID]*core.Chunk, len(found))
	for _, chunk := range found {
		byId[chunk.Id] = chunk
	}

	chunks := make([]*core.Chunk, 0, len(results))
	for _, res := range results {
		chunk, ok := byId[res.ChunkId]
		if !ok {
			r.logger.Warn("ranked chunk missing from store, skipping", "chunkId", res.ChunkId)
			continue
		}
		chunks = append(chunks, chunk)
	}
	return chunks, nil
}

// resolveStatutes looks up every distinct statute citation raised by the
// dark zones, marking zones resolved when their section text was found.
// Related citations in a zone's window are resolved in the same pass.
func (r *Retriever) resolveStatutes(ctx context.Context, zones []core.DarkZone, monitor RetrievalMonitor) []*core.StatuteSection {
	type citation struct{ act, number string }

	seen := make(map[citation]bool)
	var ordered []citation

	collect := func(e core.Entity) {
		if e.Type != core.EntityStatuteSection || e.Act == "" || e.Number == "" {
			return
		}
		c := citation{act: e.Act, number: e.Number}
		if !seen[c] {
			seen[c] = true
			ordered = append(ordered, c)
		}
	}

	for _, zone := range zones {
		collect(zone.Citation)
		for _, related := range zone.Related {
			collect(related)
		}
	}

	resolved := make(map[citation]bool)
	var sections []*core.StatuteSection

	for _, c := range ordered {
		section, err := r.statutes.GetSection(ctx, c.act, c.number)
		if err != nil {
			if !errors.Is(err, storage.ErrNotFound) {
				r.logger.Warn("statute lookup failed", "act", c.act, "number", c.number, "err", err)
			}
			monitor.StatuteMissing(c.act, c.number)
			continue
		}
		resolved[c] = true
		sections = append(sections, section)
		monitor.StatuteResolved(section)
	}

	for i := range zones {
		c := citation{act: zones[i].Citation.Act, number: zones[i].Citation.Number}
		if resolved[c] {
			zones[i].Resolved = true
		}
	}

	return sections
}
