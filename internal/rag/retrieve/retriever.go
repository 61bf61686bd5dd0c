package retrieve

import (
	"context"
	"sort"

	"github.com/akolanti/DietRAG/internal/config"
	"github.com/akolanti/DietRAG/internal/domain/commonModels"
	"github.com/akolanti/DietRAG/internal/rag/embedding"
	"github.com/akolanti/DietRAG/internal/rag/vectorDB"
	"github.com/akolanti/DietRAG/pkg/logger_i"
)

// Retriever answers a query against the union of the global knowledge base
// and the caller's private session partition. It can never be handed another
// session's partition: the partition name is derived from the session id
// here, not passed in by the caller.
type Retriever struct {
	index    vectorDB.Index
	embedder embedding.Embedder
	floor    float32
	logger   *logger_i.Logger
}

func New(index vectorDB.Index, embedder embedding.Embedder) *Retriever {
	return &Retriever{
		index:    index,
		embedder: embedder,
		floor:    config.RelevanceFloor,
		logger:   logger_i.NewLogger("Retriever"),
	}
}

// Retrieve embeds the query, searches the session and global partitions for k
// candidates each, merges, re-sorts by score, dedupes by source document and
// truncates to k. No partitions or nothing above the relevance floor yields
// an empty result, not an error.
func (r *Retriever) Retrieve(ctx context.Context, sessionId string, query string, k int) ([]commonModels.RetrievedPassage, error) {
	log := r.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "sessionId", sessionId)

	if k <= 0 {
		k = config.RetrievalTopK
	}

	vector, err := r.embedder.GetEmbedding(ctx, query)
	if err != nil {
		return nil, err
	}

	var candidates []vectorDB.ScoredChunk

	sessionPartition := config.SessionPartitionPref + sessionId
	if sessionId != "" && r.index.HasPartition(ctx, sessionPartition) {
		hits, err := r.index.Search(ctx, sessionPartition, vector, k)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, hits...)
	}

	if r.index.HasPartition(ctx, config.GlobalPartition) {
		hits, err := r.index.Search(ctx, config.GlobalPartition, vector, k)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, hits...)
	}

	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].Score > candidates[j].Score })

	// One chunk per source document, best first, so a single document can't
	// flood the result with near-duplicate passages.
	seen := make(map[string]struct{}, len(candidates))
	passages := make([]commonModels.RetrievedPassage, 0, k)
	for _, hit := range candidates {
		if hit.Score < r.floor {
			continue
		}
		if _, dup := seen[hit.Chunk.Doc.Id]; dup {
			continue
		}
		seen[hit.Chunk.Doc.Id] = struct{}{}
		passages = append(passages, commonModels.RetrievedPassage{
			Chunk:  hit.Chunk,
			Score:  hit.Score,
			Source: hit.Chunk.Doc.Name,
		})
		if len(passages) == k {
			break
		}
	}

	log.Debug("Retrieval done", "candidates", len(candidates), "returned", len(passages))
	return passages, nil
}
