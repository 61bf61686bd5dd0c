package qdrantDB

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/akolanti/DietRAG/internal/config"
	"github.com/akolanti/DietRAG/internal/domain/commonModels"
	"github.com/akolanti/DietRAG/internal/rag/vectorDB"
	"github.com/akolanti/DietRAG/pkg/logger_i"
	"github.com/qdrant/go-client/qdrant"
)

var logger *logger_i.Logger
var quadrantInstance *qdrant.Client
var once sync.Once
var dimension = uint64(config.EmbeddingOutputDimensionality)

// ClientHolder adapts the Qdrant client to the partitioned Index contract.
// Each partition maps to its own collection so that dropping a session is a
// single DeleteCollection call and cross-partition reads are impossible.
type ClientHolder struct {
	QObj *qdrant.Client
}

func GetQuadrantClient(ctx context.Context) *ClientHolder {

	once.Do(func() {
		logger = logger_i.NewLogger("Qdrant")
		res := newClient(ctx)
		if res != nil {
			quadrantInstance = res
			go closeQdrant(ctx, quadrantInstance)
		}
	})

	if quadrantInstance == nil {
		return nil
	}
	return &ClientHolder{
		QObj: quadrantInstance,
	}
}

func newClient(ctx context.Context) *qdrant.Client {

	host := os.Getenv("QDRANT_HOST")
	port, er := strconv.Atoi(os.Getenv("QDRANT_PORT"))

	if host == "" || er != nil {
		host = config.QdrantHost
		port = config.QdrantGrpcPort
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:     host,
		Port:     port,
		UseTLS:   config.QdrantUseTLS,
		PoolSize: uint(config.QdrantPoolSize),
	})
	if err != nil {
		logger.Error("could not instantiate: ", "error:", err)
		return nil
	}

	err = createCollection(ctx, client, config.GlobalPartition)
	if err != nil {
		logger.Error("could not create collection: ", "collectionName", config.GlobalPartition, "error:", err)
		return nil
	}

	return client
}

func closeQdrant(ctx context.Context, qi *qdrant.Client) {
	<-ctx.Done()
	logger.Info("Shutting down Qdrant")
	err := qi.Close()
	if err != nil {
		logger.Error("could not close Qdrant: ", "error:", err)
	}
	logger.Info("Closed Qdrant")
}

func (db *ClientHolder) EnsurePartition(ctx context.Context, partition string) error {
	return createCollection(ctx, db.QObj, partition)
}

func (db *ClientHolder) HasPartition(ctx context.Context, partition string) bool {
	exists, err := db.QObj.CollectionExists(ctx, partition)
	if err != nil {
		logger.Error("CollectionExists failed", "partition", partition, "error", err)
		return false
	}
	return exists
}

func (db *ClientHolder) Add(ctx context.Context, partition string, chunks []commonModels.DocChunk, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return fmt.Errorf("mismatch: got %d chunks but %d vectors", len(chunks), len(vectors))
	}

	qdrantPoints := make([]*qdrant.PointStruct, len(chunks))

	for i, chunk := range chunks {
		qdrantPoints[i] = &qdrant.PointStruct{
			Id:      qdrant.NewID(chunk.ChunkId),
			Vectors: qdrant.NewVectors(vectors[i]...),

			Payload: qdrant.NewValueMap(map[string]any{
				"content":       chunk.Text,
				"source_doc_id": chunk.Doc.Id,
				"doc_name":      chunk.Doc.Name,
				"origin":        string(chunk.Doc.Origin),
				"chunk_order":   chunk.Order,
				"chunk_id":      chunk.ChunkId,
				"start_offset":  chunk.StartOffset,
				"end_offset":    chunk.EndOffset,
				"ingested_at":   chunk.Doc.IngestedAt.Unix(),
			}),
		}
	}

	// Chunk ids are deterministic, so upserting the same content twice
	// overwrites the identical point instead of duplicating it.
	_, err := db.QObj.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: partition,
		Points:         qdrantPoints,
		Wait:           qdrant.PtrOf(true),
	})

	if err != nil {
		return fmt.Errorf("qdrant upsert failed: %w", err)
	}

	return nil
}

func (db *ClientHolder) Search(ctx context.Context, partition string, vector []float32, k int) ([]vectorDB.ScoredChunk, error) {
	loggr := logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	if !db.HasPartition(ctx, partition) {
		return nil, nil
	}

	result, err := db.QObj.Query(ctx, &qdrant.QueryPoints{
		CollectionName: partition,
		Query:          qdrant.NewQuery(vector...),
		Limit:          qdrant.PtrOf(uint64(k)),
		WithPayload:    qdrant.NewWithPayload(true),
	})

	if err != nil {
		loggr.Error("Error querying Qdrant: ", "error:", err)
		return nil, err
	}

	hits := make([]vectorDB.ScoredChunk, 0, len(result))
	for _, hit := range result {
		hits = append(hits, vectorDB.ScoredChunk{
			Score: hit.Score,
			Chunk: commonModels.DocChunk{
				ChunkId:     hit.Payload["chunk_id"].GetStringValue(),
				Text:        hit.Payload["content"].GetStringValue(),
				Order:       int(hit.Payload["chunk_order"].GetIntegerValue()),
				StartOffset: int(hit.Payload["start_offset"].GetIntegerValue()),
				EndOffset:   int(hit.Payload["end_offset"].GetIntegerValue()),
				Doc: commonModels.Document{
					Id:     hit.Payload["source_doc_id"].GetStringValue(),
					Name:   hit.Payload["doc_name"].GetStringValue(),
					Origin: commonModels.DocOrigin(hit.Payload["origin"].GetStringValue()),
				},
			},
		})
	}

	loggr.Debug("Qdrant search", "partition", partition, "hits", len(hits))
	return hits, nil
}

func (db *ClientHolder) RemovePartition(ctx context.Context, partition string) error {
	exists, err := db.QObj.CollectionExists(ctx, partition)
	if err != nil {
		return err
	}
	if !exists {
		return nil //idempotent
	}
	return db.QObj.DeleteCollection(ctx, partition)
}

func createCollection(ctx context.Context, client *qdrant.Client, collectionName string) error {
	if collectionName == "" {
		return errors.New("empty collection name")
	}

	exists, err := client.CollectionExists(ctx, collectionName)
	if err != nil {
		return err
	}
	if exists {

		return nil
	}

	err = client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     dimension,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	return err
}
