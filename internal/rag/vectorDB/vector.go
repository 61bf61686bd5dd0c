package vectorDB

import (
	"context"
	"errors"

	"github.com/akolanti/DietRAG/internal/domain/commonModels"
)

// ErrDuplicateID means a chunk id was added twice to the same partition. This
// is an invariant violation, never expected in normal operation.
var ErrDuplicateID = errors.New("duplicate chunk id in partition")

// ScoredChunk is one nearest-neighbor hit.
type ScoredChunk struct {
	Chunk commonModels.DocChunk
	Score float32
}

// Index stores chunk vectors in named partitions: one global knowledge-base
// partition plus one private partition per session. A partition must be
// queryable immediately after Add returns (read-after-write within the
// process), and a session's search must never touch another session's
// partition.
type Index interface {
	EnsurePartition(ctx context.Context, partition string) error
	HasPartition(ctx context.Context, partition string) bool

	// Add inserts chunks with their vectors. The in-memory backend fails
	// with ErrDuplicateID when a chunk id is already present; the Qdrant
	// backend upserts by point id, so re-adding a deterministic id
	// overwrites the identical point instead of erroring.
	Add(ctx context.Context, partition string, chunks []commonModels.DocChunk, vectors [][]float32) error

	// Search returns up to k hits sorted by descending cosine similarity,
	// ties broken by insertion order.
	Search(ctx context.Context, partition string, vector []float32, k int) ([]ScoredChunk, error)

	// RemovePartition drops a partition and everything in it. Idempotent -
	// removing a missing partition is not an error.
	RemovePartition(ctx context.Context, partition string) error
}
