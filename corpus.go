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

package caselode

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/caselode/caselode/ai"
	"github.com/caselode/caselode/ai/openai"
	"github.com/caselode/caselode/core"
	"github.com/caselode/caselode/index"
	"github.com/caselode/caselode/ingestion"
	"github.com/caselode/caselode/search"
	"github.com/caselode/caselode/storage"
	"github.com/caselode/caselode/storage/badger"
)

// Corpus is the top-level handle to a judgment database. It owns the
// storage backend, the embedder, and the in-memory lexical index
// snapshot used by hybrid retrieval.
type Corpus struct {
	backend     *badger.Backend
	chunkRepo   storage.ChunkRepository
	statuteRepo storage.StatuteRepository
	embedder    ai.Embedder
	lexical     atomic.Pointer[index.Lexical]
	indexParams index.Params
	logger      *slog.Logger
}

var _ search.LexicalProvider = (*Corpus)(nil)

// CorpusOption configures a Corpus.
type CorpusOption func(*corpusOptions)

type corpusOptions struct {
	aiConfig    *ai.Config
	embedder    ai.Embedder
	indexParams index.Params
}

// WithAIConfig sets the embedding service configuration.
func WithAIConfig(config *ai.Config) CorpusOption {
	return func(o *corpusOptions) {
		o.aiConfig = config
	}
}

// WithEmbedder supplies an embedder directly, bypassing the embedding
// service client. Mainly useful for tests.
func WithEmbedder(embedder ai.Embedder) CorpusOption {
	return func(o *corpusOptions) {
		o.embedder = embedder
	}
}

// WithIndexParams sets the BM25 parameters used when building the
// lexical index.
func WithIndexParams(params index.Params) CorpusOption {
	return func(o *corpusOptions) {
		o.indexParams = params
	}
}

// OpenCorpus opens (creating if necessary) a judgment database at filePath.
// The lexical index starts empty; call RebuildIndex before querying, or
// after ingesting new judgments.
func OpenCorpus(filePath string, opts ...CorpusOption) (*Corpus, error) {
	options := &corpusOptions{
		aiConfig:    ai.DefaultConfig(),
		indexParams: index.DefaultParams(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, false)
	if err != nil {
		return nil, err
	}

	chunkRepo, err := badger.NewChunkRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	statuteRepo := badger.NewStatuteRepository(backend)

	embedder := options.embedder
	if embedder == nil {
		embedder, err = openai.NewEmbedder(options.aiConfig)
		if err != nil {
			statuteRepo.Close()
			chunkRepo.Close()
			backend.Close()
			return nil, err
		}
	}

	return &Corpus{
		backend:     backend,
		chunkRepo:   chunkRepo,
		statuteRepo: statuteRepo,
		embedder:    embedder,
		indexParams: options.indexParams,
		logger:      slog.Default(),
	}, nil
}

func (c *Corpus) Close() error {
	if err := c.statuteRepo.Close(); err != nil {
		c.logger.Error("error closing statute repository", "err", err)
		return err
	}
	if err := c.chunkRepo.Close(); err != nil {
		c.logger.Error("error closing chunk repository", "err", err)
		return err
	}
	if err := c.backend.Close(); err != nil {
		c.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (c *Corpus) ChunkRepository() storage.ChunkRepository {
	return c.chunkRepo
}

func (c *Corpus) StatuteRepository() storage.StatuteRepository {
	return c.statuteRepo
}

func (c *Corpus) Embedder() ai.Embedder {
	return c.embedder
}

// LexicalIndex returns the current lexical index snapshot, or nil if the
// index has not been built yet. The snapshot is immutable and safe for
// concurrent readers.
func (c *Corpus) LexicalIndex() *index.Lexical {
	return c.lexical.Load()
}

// RebuildIndex builds a fresh lexical index from every stored chunk and
// atomically swaps it in. Queries running against the previous snapshot
// are unaffected.
func (c *Corpus) RebuildIndex(ctx context.Context) error {
	var docs []index.Document
	err := c.chunkRepo.ForEachChunk(ctx, func(chunk *core.Chunk) error {
		docs = append(docs, index.Document{Id: chunk.Id, Text: chunk.Contents})
		return nil
	})
	if err != nil {
		return err
	}

	idx := index.Build(docs, c.indexParams)
	c.lexical.Store(idx)

	c.logger.Info("lexical index rebuilt", "chunks", idx.Len())
	return nil
}

func (c *Corpus) NewIngestionPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	return ingestion.NewPipeline(c.chunkRepo, c.statuteRepo, c.embedder, opts...)
}

func (c *Corpus) NewRetriever(opts ...search.Option) (*search.Retriever, error) {
	return search.NewRetriever(c.chunkRepo, c.statuteRepo, c.embedder, c, opts...)
}
