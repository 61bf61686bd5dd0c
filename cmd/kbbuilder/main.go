package main

import (
	"context"
	"flag"
	"os"

	"github.com/akolanti/DietRAG/internal/config"
	"github.com/akolanti/DietRAG/internal/rag/embedding/googleEmbedding"
	"github.com/akolanti/DietRAG/internal/rag/ingest"
	"github.com/akolanti/DietRAG/internal/rag/vectorDB/qdrantDB"
	"github.com/akolanti/DietRAG/pkg/logger_i"
)

// Offline builder for the global knowledge base. Clears and rebuilds the
// partition from a directory of reference documents, meant to run as a batch
// step whenever the reference set changes.
func main() {

	logger_i.Init()
	var logger = logger_i.NewLogger("kbbuilder")

	var dir string
	flag.StringVar(&dir, "dir", config.KnowledgeBaseDir, "directory of reference documents")
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	index := qdrantDB.GetQuadrantClient(ctx)
	embedder := googleEmbedding.GetGoogleEmbeddingClient(ctx, config.GoogleEmbeddingModel, config.GoogleAPIKey)

	if index == nil || embedder == nil {
		logger.Error("External services failed to initialize.")
		logger.Debug("Available services : ", "VectorDB", index != nil, "EmbeddingService", embedder != nil)
		os.Exit(1)
	}

	failed, err := ingest.BuildKnowledgeBase(ctx, dir, index, embedder)
	if err != nil {
		logger.Error("Knowledge base build failed", "error", err)
		os.Exit(1)
	}
	if len(failed) > 0 {
		logger.Error("Some reference documents were skipped", "files", failed)
	}
	logger.Info("Knowledge base build complete", "dir", dir)
}
