package memoryIndex

import (
	"context"
	"errors"
	"testing"

	"github.com/akolanti/DietRAG/internal/domain/commonModels"
	"github.com/akolanti/DietRAG/internal/rag/vectorDB"
)

func chunk(id string, docId string) commonModels.DocChunk {
	return commonModels.DocChunk{
		Doc:     commonModels.Document{Id: docId, Name: docId},
		ChunkId: id,
		Text:    "text for " + id,
	}
}

func TestAddThenSearch_ReadAfterWrite(t *testing.T) {
	ix := New()
	ctx := context.Background()

	if err := ix.EnsurePartition(ctx, "p1"); err != nil {
		t.Fatalf("EnsurePartition failed: %v", err)
	}

	err := ix.Add(ctx, "p1",
		[]commonModels.DocChunk{chunk("c1", "d1"), chunk("c2", "d2")},
		[][]float32{{1, 0, 0}, {0, 1, 0}})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	hits, err := ix.Search(ctx, "p1", []float32{1, 0, 0}, 2)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(hits) != 2 {
		t.Fatalf("expected 2 hits, got %d", len(hits))
	}
	if hits[0].Chunk.ChunkId != "c1" {
		t.Errorf("best hit got %s, want c1", hits[0].Chunk.ChunkId)
	}
	if hits[0].Score <= hits[1].Score {
		t.Error("hits are not sorted by descending score")
	}
}

func TestAdd_DuplicateId(t *testing.T) {
	ix := New()
	ctx := context.Background()

	if err := ix.Add(ctx, "p1", []commonModels.DocChunk{chunk("c1", "d1")}, [][]float32{{1, 0}}); err != nil {
		t.Fatalf("first Add failed: %v", err)
	}

	err := ix.Add(ctx, "p1", []commonModels.DocChunk{chunk("c1", "d1")}, [][]float32{{0, 1}})
	if !errors.Is(err, vectorDB.ErrDuplicateID) {
		t.Errorf("expected ErrDuplicateID, got %v", err)
	}

	// Same id in a different partition is fine.
	if err := ix.Add(ctx, "p2", []commonModels.DocChunk{chunk("c1", "d1")}, [][]float32{{0, 1}}); err != nil {
		t.Errorf("same id in another partition should not conflict: %v", err)
	}
}

func TestSearch_StableTies(t *testing.T) {
	ix := New()
	ctx := context.Background()

	// Identical vectors score identically; insertion order must hold.
	err := ix.Add(ctx, "p1",
		[]commonModels.DocChunk{chunk("first", "d1"), chunk("second", "d2"), chunk("third", "d3")},
		[][]float32{{1, 1}, {1, 1}, {1, 1}})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	hits, err := ix.Search(ctx, "p1", []float32{1, 1}, 3)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	want := []string{"first", "second", "third"}
	for i, w := range want {
		if hits[i].Chunk.ChunkId != w {
			t.Errorf("position %d got %s, want %s", i, hits[i].Chunk.ChunkId, w)
		}
	}
}

func TestSearch_MissingPartition(t *testing.T) {
	ix := New()
	hits, err := ix.Search(context.Background(), "nope", []float32{1}, 3)
	if err != nil {
		t.Fatalf("missing partition must not error: %v", err)
	}
	if len(hits) != 0 {
		t.Errorf("expected empty result, got %d hits", len(hits))
	}
}

func TestRemovePartition_Idempotent(t *testing.T) {
	ix := New()
	ctx := context.Background()

	if err := ix.Add(ctx, "p1", []commonModels.DocChunk{chunk("c1", "d1")}, [][]float32{{1}}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if err := ix.RemovePartition(ctx, "p1"); err != nil {
		t.Fatalf("RemovePartition failed: %v", err)
	}
	if ix.HasPartition(ctx, "p1") {
		t.Error("partition still present after removal")
	}
	if err := ix.RemovePartition(ctx, "p1"); err != nil {
		t.Errorf("second removal must be a no-op, got %v", err)
	}
}

func TestPartitionIsolation(t *testing.T) {
	ix := New()
	ctx := context.Background()

	if err := ix.Add(ctx, "session-a", []commonModels.DocChunk{chunk("a1", "da")}, [][]float32{{1, 0}}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := ix.Add(ctx, "session-b", []commonModels.DocChunk{chunk("b1", "db")}, [][]float32{{1, 0}}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	hits, err := ix.Search(ctx, "session-a", []float32{1, 0}, 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	for _, h := range hits {
		if h.Chunk.ChunkId == "b1" {
			t.Fatal("search leaked a chunk from another partition")
		}
	}
}
