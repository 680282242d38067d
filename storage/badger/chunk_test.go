package badger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/caselode/caselode/core"
	"github.com/caselode/caselode/storage"
)

func TestChunkBasics(t *testing.T) {
	chunkRepo, statuteRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() {
		statuteRepo.Close()
		chunkRepo.Close()
		backend.Close()
	}()

	ctx := context.Background()

	chunk := &core.Chunk{
		JudgmentId: core.IDFromContent("Crl.A.No. 417/2018"),
		Index:      0,
		Contents:   "The appellant was convicted under Section 302 IPC.",
		Section:    core.SectionFacts,
		Court:      "Supreme Court of India",
	}

	added, err := chunkRepo.AddChunks(ctx, chunk)
	if err != nil {
		t.Fatalf("Failed to add chunk: %v", err)
	}

	if len(added) != 1 {
		t.Fatalf("Expected 1 chunk, got %d", len(added))
	}
	if added[0].Id == 0 {
		t.Fatal("Expected non-zero ID")
	}
	if added[0].InsertedAt.IsZero() {
		t.Fatal("Expected InsertedAt to be set")
	}

	retrieved, err := chunkRepo.GetChunk(ctx, added[0].Id)
	if err != nil {
		t.Fatalf("Failed to get chunk: %v", err)
	}
	if retrieved.Contents != chunk.Contents {
		t.Fatalf("Expected %q, got %q", chunk.Contents, retrieved.Contents)
	}
	if retrieved.Court != "Supreme Court of India" {
		t.Fatalf("Expected court to round-trip, got %q", retrieved.Court)
	}
}

func TestGetChunk_NotFound(t *testing.T) {
	chunkRepo, statuteRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { statuteRepo.Close(); chunkRepo.Close(); backend.Close() }()

	_, err = chunkRepo.GetChunk(context.Background(), 99999)
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestGetChunks_SkipsMissing(t *testing.T) {
	chunkRepo, statuteRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { statuteRepo.Close(); chunkRepo.Close(); backend.Close() }()

	ctx := context.Background()

	added, err := chunkRepo.AddChunks(ctx, &core.Chunk{Contents: "only chunk"})
	if err != nil {
		t.Fatalf("Failed to add chunk: %v", err)
	}

	chunks, err := chunkRepo.GetChunks(ctx, added[0].Id, 99999)
	if err != nil {
		t.Fatalf("Failed to get chunks: %v", err)
	}
	if len(chunks) != 1 {
		t.Fatalf("Expected 1 chunk, got %d", len(chunks))
	}
}

func TestUpdateChunks(t *testing.T) {
	chunkRepo, statuteRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { statuteRepo.Close(); chunkRepo.Close(); backend.Close() }()

	ctx := context.Background()

	added, err := chunkRepo.AddChunks(ctx, &core.Chunk{Contents: "awaiting embedding"})
	if err != nil {
		t.Fatalf("Failed to add chunk: %v", err)
	}

	added[0].Vector = core.NormalizeVector([]float32{3, 4})
	if _, err := chunkRepo.UpdateChunks(ctx, added[0]); err != nil {
		t.Fatalf("Failed to update chunk: %v", err)
	}

	retrieved, err := chunkRepo.GetChunk(ctx, added[0].Id)
	if err != nil {
		t.Fatalf("Failed to get chunk: %v", err)
	}
	if len(retrieved.Vector) != 2 {
		t.Fatalf("Expected updated vector, got %v", retrieved.Vector)
	}
	if retrieved.UpdatedAt.Before(retrieved.InsertedAt) {
		t.Fatal("Expected UpdatedAt >= InsertedAt")
	}
}

func TestUpdateChunks_NotFound(t *testing.T) {
	chunkRepo, statuteRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { statuteRepo.Close(); chunkRepo.Close(); backend.Close() }()

	_, err = chunkRepo.UpdateChunks(context.Background(), &core.Chunk{Id: 99999, Contents: "ghost"})
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestGetChunksByJudgment(t *testing.T) {
	chunkRepo, statuteRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { statuteRepo.Close(); chunkRepo.Close(); backend.Close() }()

	ctx := context.Background()
	judgmentID := core.IDFromContent("Crl.A.No. 417/2018")
	otherID := core.IDFromContent("W.P.(C) No. 2301/2022")

	// Insert out of order to exercise the Index sort.
	_, err = chunkRepo.AddChunks(ctx,
		&core.Chunk{JudgmentId: judgmentID, Index: 2, Contents: "conclusion"},
		&core.Chunk{JudgmentId: judgmentID, Index: 0, Contents: "facts"},
		&core.Chunk{JudgmentId: otherID, Index: 0, Contents: "other judgment"},
		&core.Chunk{JudgmentId: judgmentID, Index: 1, Contents: "analysis"},
	)
	if err != nil {
		t.Fatalf("Failed to add chunks: %v", err)
	}

	chunks, err := chunkRepo.GetChunksByJudgment(ctx, judgmentID)
	if err != nil {
		t.Fatalf("Failed to get chunks by judgment: %v", err)
	}
	if len(chunks) != 3 {
		t.Fatalf("Expected 3 chunks, got %d", len(chunks))
	}
	for i, chunk := range chunks {
		if chunk.Index != i {
			t.Fatalf("Expected chunk at position %d to have Index %d, got %d", i, i, chunk.Index)
		}
	}
}

func TestDeleteJudgment_Cascades(t *testing.T) {
	chunkRepo, statuteRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { statuteRepo.Close(); chunkRepo.Close(); backend.Close() }()

	ctx := context.Background()
	judgmentID := core.IDFromContent("Crl.A.No. 417/2018")
	otherID := core.IDFromContent("W.P.(C) No. 2301/2022")

	added, err := chunkRepo.AddChunks(ctx,
		&core.Chunk{JudgmentId: judgmentID, Index: 0, Contents: "facts"},
		&core.Chunk{JudgmentId: judgmentID, Index: 1, Contents: "analysis"},
		&core.Chunk{JudgmentId: otherID, Index: 0, Contents: "unrelated"},
	)
	if err != nil {
		t.Fatalf("Failed to add chunks: %v", err)
	}

	if err := chunkRepo.DeleteJudgment(ctx, judgmentID); err != nil {
		t.Fatalf("Failed to delete judgment: %v", err)
	}

	remaining, err := chunkRepo.GetChunksByJudgment(ctx, judgmentID)
	if err != nil {
		t.Fatalf("Failed to get chunks by judgment: %v", err)
	}
	if len(remaining) != 0 {
		t.Fatalf("Expected 0 chunks after cascade delete, got %d", len(remaining))
	}

	// The other judgment is untouched.
	if _, err := chunkRepo.GetChunk(ctx, added[2].Id); err != nil {
		t.Fatalf("Expected other judgment's chunk to survive: %v", err)
	}
}

func TestForEachChunk(t *testing.T) {
	chunkRepo, statuteRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { statuteRepo.Close(); chunkRepo.Close(); backend.Close() }()

	ctx := context.Background()

	_, err = chunkRepo.AddChunks(ctx,
		&core.Chunk{Contents: "first"},
		&core.Chunk{Contents: "second"},
		&core.Chunk{Contents: "third"},
	)
	if err != nil {
		t.Fatalf("Failed to add chunks: %v", err)
	}

	count := 0
	err = chunkRepo.ForEachChunk(ctx, func(chunk *core.Chunk) error {
		count++
		return nil
	})
	if err != nil {
		t.Fatalf("ForEachChunk failed: %v", err)
	}
	if count != 3 {
		t.Fatalf("Expected 3 chunks visited, got %d", count)
	}
}

func TestForEachChunk_CancelledContext(t *testing.T) {
	chunkRepo, statuteRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { statuteRepo.Close(); chunkRepo.Close(); backend.Close() }()

	_, err = chunkRepo.AddChunks(context.Background(), &core.Chunk{Contents: "only"})
	if err != nil {
		t.Fatalf("Failed to add chunk: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = chunkRepo.ForEachChunk(ctx, func(chunk *core.Chunk) error {
		t.Fatal("callback should not run after cancellation")
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}
}

func TestAddChunks_PreservesDecidedDate(t *testing.T) {
	chunkRepo, statuteRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { statuteRepo.Close(); chunkRepo.Close(); backend.Close() }()

	ctx := context.Background()
	decided := time.Date(2019, 3, 15, 0, 0, 0, 0, time.UTC)

	added, err := chunkRepo.AddChunks(ctx, &core.Chunk{Contents: "decided judgment", Decided: decided})
	if err != nil {
		t.Fatalf("Failed to add chunk: %v", err)
	}

	retrieved, err := chunkRepo.GetChunk(ctx, added[0].Id)
	if err != nil {
		t.Fatalf("Failed to get chunk: %v", err)
	}
	if !retrieved.Decided.Equal(decided) {
		t.Fatalf("Expected Decided %v, got %v", decided, retrieved.Decided)
	}
}
