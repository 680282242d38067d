package caselode

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/caselode/caselode/ai/mock"
	"github.com/caselode/caselode/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestCorpus(t *testing.T) *Corpus {
	t.Helper()

	corpus, err := OpenCorpus(filepath.Join(t.TempDir(), "corpus_db"), WithEmbedder(mock.NewMockEmbedder()))
	require.NoError(t, err)
	t.Cleanup(func() { corpus.Close() })
	return corpus
}

func TestOpenCorpus(t *testing.T) {
	t.Run("create new corpus", func(t *testing.T) {
		corpus := openTestCorpus(t)

		assert.NotNil(t, corpus.ChunkRepository())
		assert.NotNil(t, corpus.StatuteRepository())
		assert.NotNil(t, corpus.Embedder())
		assert.NotNil(t, corpus.backend)
		assert.Nil(t, corpus.LexicalIndex(), "index should start unbuilt")
	})

	t.Run("error with invalid path", func(t *testing.T) {
		tmpFile := filepath.Join(t.TempDir(), "not_a_dir")
		err := os.WriteFile(tmpFile, []byte("test"), 0644)
		require.NoError(t, err)

		corpus, err := OpenCorpus(tmpFile, WithEmbedder(mock.NewMockEmbedder()))
		assert.Error(t, err)
		assert.Nil(t, corpus)
	})
}

func TestCorpus_Close(t *testing.T) {
	corpus, err := OpenCorpus(t.TempDir(), WithEmbedder(mock.NewMockEmbedder()))
	require.NoError(t, err)
	require.NotNil(t, corpus)

	err = corpus.Close()
	assert.NoError(t, err)
}

func TestCorpus_FactoryMethods(t *testing.T) {
	corpus := openTestCorpus(t)

	t.Run("can create ingestion pipeline", func(t *testing.T) {
		pipeline, err := corpus.NewIngestionPipeline()
		require.NoError(t, err)
		require.NotNil(t, pipeline)
		pipeline.Release()
	})

	t.Run("can create retriever", func(t *testing.T) {
		retriever, err := corpus.NewRetriever()
		require.NoError(t, err)
		require.NotNil(t, retriever)
	})
}

func TestCorpus_RebuildIndex(t *testing.T) {
	corpus := openTestCorpus(t)
	ctx := context.Background()

	_, err := corpus.ChunkRepository().AddChunks(ctx,
		&core.Chunk{JudgmentId: 1, Index: 0, Contents: "murder conviction under Section 302 IPC"},
		&core.Chunk{JudgmentId: 1, Index: 1, Contents: "bail granted pending appeal"},
	)
	require.NoError(t, err)

	require.NoError(t, corpus.RebuildIndex(ctx))

	idx := corpus.LexicalIndex()
	require.NotNil(t, idx)
	assert.Equal(t, 2, idx.Len())

	matches := idx.Rank("murder conviction", 10)
	require.NotEmpty(t, matches)
}

func TestCorpus_RebuildIndexSwapsSnapshot(t *testing.T) {
	corpus := openTestCorpus(t)
	ctx := context.Background()

	require.NoError(t, corpus.RebuildIndex(ctx))
	first := corpus.LexicalIndex()
	require.NotNil(t, first)
	assert.Zero(t, first.Len())

	_, err := corpus.ChunkRepository().AddChunks(ctx,
		&core.Chunk{JudgmentId: 2, Index: 0, Contents: "the sentence was reduced on appeal"},
	)
	require.NoError(t, err)

	require.NoError(t, corpus.RebuildIndex(ctx))
	second := corpus.LexicalIndex()
	require.NotNil(t, second)
	assert.Equal(t, 1, second.Len())
	assert.NotSame(t, first, second, "rebuild should install a new snapshot")

	// The old snapshot remains usable for in-flight queries.
	assert.Empty(t, first.Rank("appeal", 10))
}
