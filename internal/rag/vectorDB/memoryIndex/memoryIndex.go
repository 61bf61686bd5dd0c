package memoryIndex

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/akolanti/DietRAG/internal/domain/commonModels"
	"github.com/akolanti/DietRAG/internal/rag/vectorDB"
	"github.com/akolanti/DietRAG/pkg/logger_i"
)

// In-process brute-force cosine index. Vectors are L2-normalized on insert so
// search is a plain dot product. Good enough for a single-node corpus; no
// durability beyond the process by design.

type entry struct {
	chunk  commonModels.DocChunk
	vector []float32
}

type partition struct {
	entries []entry
	ids     map[string]struct{}
}

type Index struct {
	mu         sync.RWMutex
	partitions map[string]*partition
	logger     *logger_i.Logger
}

func New() *Index {
	return &Index{
		partitions: make(map[string]*partition),
		logger:     logger_i.NewLogger("MemoryIndex"),
	}
}

func (ix *Index) EnsurePartition(ctx context.Context, name string) error {
	if name == "" {
		return fmt.Errorf("empty partition name")
	}
	ix.mu.Lock()
	defer ix.mu.Unlock()
	if _, ok := ix.partitions[name]; !ok {
		ix.partitions[name] = &partition{ids: make(map[string]struct{})}
	}
	return nil
}

func (ix *Index) HasPartition(ctx context.Context, name string) bool {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	_, ok := ix.partitions[name]
	return ok
}

func (ix *Index) Add(ctx context.Context, name string, chunks []commonModels.DocChunk, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return fmt.Errorf("mismatch: got %d chunks but %d vectors", len(chunks), len(vectors))
	}

	ix.mu.Lock()
	defer ix.mu.Unlock()

	p, ok := ix.partitions[name]
	if !ok {
		p = &partition{ids: make(map[string]struct{})}
		ix.partitions[name] = p
	}

	for _, c := range chunks {
		if _, dup := p.ids[c.ChunkId]; dup {
			return fmt.Errorf("partition %s chunk %s: %w", name, c.ChunkId, vectorDB.ErrDuplicateID)
		}
	}

	for i, c := range chunks {
		p.ids[c.ChunkId] = struct{}{}
		p.entries = append(p.entries, entry{chunk: c, vector: normalize(vectors[i])})
	}
	return nil
}

func (ix *Index) Search(ctx context.Context, name string, vector []float32, k int) ([]vectorDB.ScoredChunk, error) {
	if k <= 0 {
		return nil, nil
	}

	ix.mu.RLock()
	defer ix.mu.RUnlock()

	p, ok := ix.partitions[name]
	if !ok {
		return nil, nil
	}

	query := normalize(vector)
	hits := make([]vectorDB.ScoredChunk, 0, len(p.entries))
	for _, e := range p.entries {
		hits = append(hits, vectorDB.ScoredChunk{Chunk: e.chunk, Score: dot(e.vector, query)})
	}

	// Stable keeps insertion order on equal scores.
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })

	if k > len(hits) {
		k = len(hits)
	}
	return hits[:k], nil
}

func (ix *Index) RemovePartition(ctx context.Context, name string) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	delete(ix.partitions, name)
	return nil
}

func dot(a, b []float32) float32 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float32
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}

func normalize(v []float32) []float32 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	norm := math.Sqrt(sum)
	if norm == 0 {
		return v
	}
	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = float32(float64(x) / norm)
	}
	return out
}
