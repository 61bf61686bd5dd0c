package ingest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/akolanti/DietRAG/internal/config"
	"github.com/akolanti/DietRAG/internal/domain/commonModels"
	"github.com/akolanti/DietRAG/internal/rag/vectorDB"
	"github.com/akolanti/DietRAG/internal/rag/vectorDB/memoryIndex"
)

// --- Mocks for BatchIngest ---

type mockEmbedder struct {
	batchFunc func(ctx context.Context, chunks []string, isHuge bool) ([][]float32, error)
}

func (m *mockEmbedder) GetEmbedding(ctx context.Context, query string) ([]float32, error) {
	return nil, nil
}
func (m *mockEmbedder) BatchEmbedding(ctx context.Context, chunks []string, isHuge bool) ([][]float32, error) {
	return m.batchFunc(ctx, chunks, isHuge)
}

// indexRecorder records the size of each Add batch.
type indexRecorder struct {
	sizes  []int
	addErr error
}

func (m *indexRecorder) EnsurePartition(ctx context.Context, name string) error { return nil }
func (m *indexRecorder) HasPartition(ctx context.Context, name string) bool     { return true }
func (m *indexRecorder) Add(ctx context.Context, partition string, chunks []commonModels.DocChunk, vectors [][]float32) error {
	if m.addErr != nil {
		return m.addErr
	}
	m.sizes = append(m.sizes, len(chunks))
	return nil
}
func (m *indexRecorder) Search(ctx context.Context, name string, v []float32, k int) ([]vectorDB.ScoredChunk, error) {
	return nil, nil
}
func (m *indexRecorder) RemovePartition(ctx context.Context, name string) error { return nil }

// --- Unit Tests ---

func TestGetDocType(t *testing.T) {
	tests := []struct {
		path     string
		expected commonModels.DocType
	}{
		{"test.pdf", commonModels.PDF},
		{"DOC.DOCX", commonModels.DOCX},
		{"notes.txt", commonModels.DOCX},
		{"report.rtf", commonModels.DOCX},
		{"archive.zip", commonModels.ERR},
		{"noextension", commonModels.ERR},
	}

	for _, tt := range tests {
		if got := getDocType(tt.path); got != tt.expected {
			t.Errorf("getDocType(%q) = %v, want %v", tt.path, got, tt.expected)
		}
	}
}

func TestSplitTextIntoChunks_ShortText(t *testing.T) {
	spans := splitTextIntoChunks("short text", 1000, 150)
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Text != "short text" {
		t.Errorf("span text got %q", spans[0].Text)
	}
	if spans[0].Start != 0 || spans[0].End != len([]rune("short text")) {
		t.Errorf("span offsets got [%d,%d)", spans[0].Start, spans[0].End)
	}
}

func TestSplitTextIntoChunks_Deterministic(t *testing.T) {
	text := strings.Repeat("diabetes management requires consistent carbohydrate counting. ", 50)

	first := splitTextIntoChunks(text, 200, 50)
	second := splitTextIntoChunks(text, 200, 50)

	if len(first) != len(second) {
		t.Fatalf("chunk counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("chunk %d differs between runs", i)
		}
	}
}

func TestSplitTextIntoChunks_Overlap(t *testing.T) {
	text := strings.Repeat("a", 500)
	limit, overlap := 200, 50

	spans := splitTextIntoChunks(text, limit, overlap)
	if len(spans) < 2 {
		t.Fatalf("expected multiple spans, got %d", len(spans))
	}

	for i := 1; i < len(spans); i++ {
		wantStart := spans[i-1].Start + limit - overlap
		if spans[i].Start != wantStart && spans[i].End != len([]rune(text)) {
			t.Errorf("span %d starts at %d, want %d", i, spans[i].Start, wantStart)
		}
		if spans[i].Start >= spans[i-1].End {
			t.Errorf("span %d does not overlap its predecessor", i)
		}
	}

	last := spans[len(spans)-1]
	if last.End != len([]rune(text)) {
		t.Errorf("last span ends at %d, want %d", last.End, len([]rune(text)))
	}
}

func TestDocumentId_Deterministic(t *testing.T) {
	a := DocumentId(commonModels.OriginGlobal, "dash_diet.pdf")
	b := DocumentId(commonModels.OriginGlobal, "dash_diet.pdf")
	if a != b {
		t.Errorf("same origin+name produced different ids: %s vs %s", a, b)
	}

	other := DocumentId(commonModels.SessionOrigin("s1"), "dash_diet.pdf")
	if a == other {
		t.Error("different origins produced the same document id")
	}
}

func TestPrepareChunks_SkipsWhitespaceOnly(t *testing.T) {
	doc := commonModels.Document{
		Id:     "doc-1",
		Name:   "blank",
		Origin: commonModels.OriginGlobal,
	}
	chunks := PrepareChunks("   \n\n\t   ", doc, 100, 10)
	if len(chunks) != 0 {
		t.Errorf("expected no chunks for whitespace text, got %d", len(chunks))
	}
}

func TestPrepareChunks_OrderAndIds(t *testing.T) {
	doc := commonModels.Document{
		Id:     DocumentId(commonModels.OriginGlobal, "guide.txt"),
		Name:   "guide",
		Origin: commonModels.OriginGlobal,
	}
	text := strings.Repeat("sodium restriction lowers blood pressure. ", 30)

	chunks := PrepareChunks(text, doc, 200, 50)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	seen := make(map[string]bool)
	for i, c := range chunks {
		if c.Order != i {
			t.Errorf("chunk %d has order %d", i, c.Order)
		}
		if seen[c.ChunkId] {
			t.Errorf("duplicate chunk id %s", c.ChunkId)
		}
		seen[c.ChunkId] = true
	}

	again := PrepareChunks(text, doc, 200, 50)
	if again[0].ChunkId != chunks[0].ChunkId {
		t.Error("chunk ids not deterministic across runs")
	}
}

func TestBatchIngest_SplitsIntoBatches(t *testing.T) {
	doc := commonModels.Document{Id: "doc-batch", Name: "batch", Origin: commonModels.OriginGlobal}
	chunks := make([]commonModels.DocChunk, 150)
	for i := range chunks {
		chunks[i] = commonModels.DocChunk{Doc: doc, ChunkId: string(rune('a' + i%26)), Text: "x", Order: i}
	}

	var batchSizes []int
	e := &mockEmbedder{batchFunc: func(ctx context.Context, texts []string, isHuge bool) ([][]float32, error) {
		return make([][]float32, len(texts)), nil
	}}
	ix := &indexRecorder{}

	if err := BatchIngest(context.Background(), "knowledge-base", chunks, ix, e); err != nil {
		t.Fatalf("BatchIngest failed: %v", err)
	}

	batchSizes = ix.sizes
	if len(batchSizes) != 2 {
		t.Fatalf("expected 2 batches for 150 chunks, got %d", len(batchSizes))
	}
	if batchSizes[0] != 100 || batchSizes[1] != 50 {
		t.Errorf("batch sizes got %v, want [100 50]", batchSizes)
	}
}

func TestBatchIngest_EmbeddingFailure(t *testing.T) {
	doc := commonModels.Document{Id: "doc-fail", Name: "fail", Origin: commonModels.OriginGlobal}
	chunks := []commonModels.DocChunk{{Doc: doc, ChunkId: "c1", Text: "x", Order: 0}}

	e := &mockEmbedder{batchFunc: func(ctx context.Context, texts []string, isHuge bool) ([][]float32, error) {
		return nil, errors.New("api limit")
	}}
	ix := &indexRecorder{}

	if err := BatchIngest(context.Background(), "knowledge-base", chunks, ix, e); err == nil {
		t.Fatal("expected error from failed embedding")
	}
	if len(ix.sizes) != 0 {
		t.Error("index received a batch despite embedding failure")
	}
}

func TestBuildKnowledgeBase_RebuildIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	docs := map[string]string{
		"sodium.txt":  "Limit sodium intake to reduce blood pressure. Prefer fresh produce over processed food.",
		"glucose.txt": "Blood glucose responds to carbohydrate portions. Pair carbs with protein and fiber.",
	}
	for name, body := range docs {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600); err != nil {
			t.Fatalf("writing fixture %s: %v", name, err)
		}
	}

	e := &mockEmbedder{batchFunc: func(ctx context.Context, texts []string, isHuge bool) ([][]float32, error) {
		vectors := make([][]float32, len(texts))
		for i, text := range texts {
			vectors[i] = []float32{float32(len(text)), 1}
		}
		return vectors, nil
	}}

	ix := memoryIndex.New()
	ctx := context.Background()

	query := func() []vectorDB.ScoredChunk {
		hits, err := ix.Search(ctx, config.GlobalPartition, []float32{1, 1}, 10)
		if err != nil {
			t.Fatalf("Search failed: %v", err)
		}
		return hits
	}

	failed, err := BuildKnowledgeBase(ctx, dir, ix, e)
	if err != nil {
		t.Fatalf("first build failed: %v", err)
	}
	if len(failed) != 0 {
		t.Fatalf("unexpected skipped files: %v", failed)
	}
	first := query()
	if len(first) != len(docs) {
		t.Fatalf("first build indexed %d chunks, want %d", len(first), len(docs))
	}

	// A rebuild over the same inputs must not collide on chunk ids or leave
	// leftovers from the previous build.
	if _, err := BuildKnowledgeBase(ctx, dir, ix, e); err != nil {
		t.Fatalf("rebuild failed: %v", err)
	}
	second := query()

	if len(second) != len(first) {
		t.Fatalf("rebuild changed result count: %d vs %d", len(second), len(first))
	}
	for i := range first {
		if first[i].Chunk.ChunkId != second[i].Chunk.ChunkId || first[i].Score != second[i].Score {
			t.Errorf("result %d differs across rebuilds: %+v vs %+v", i, first[i], second[i])
		}
	}
}
