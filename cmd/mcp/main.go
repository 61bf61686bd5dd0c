package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/akolanti/DietRAG/internal/config"
	"github.com/akolanti/DietRAG/internal/mcpserver"
	"github.com/akolanti/DietRAG/internal/rag/embedding/googleEmbedding"
	"github.com/akolanti/DietRAG/internal/rag/ingest"
	"github.com/akolanti/DietRAG/internal/rag/vectorDB"
	"github.com/akolanti/DietRAG/internal/rag/vectorDB/memoryIndex"
	"github.com/akolanti/DietRAG/internal/rag/vectorDB/qdrantDB"
	"github.com/akolanti/DietRAG/pkg/logger_i"
)

func main() {

	logger_i.Init()
	var logger = logger_i.NewLogger("mcp-main")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
		<-stop
		cancel()
	}()

	embedder := googleEmbedding.GetGoogleEmbeddingClient(ctx, config.GoogleEmbeddingModel, config.GoogleAPIKey)
	if embedder == nil {
		logger.Error("Embedding service failed to initialize. Shutting down.")
		return
	}

	var index vectorDB.Index
	if qdrantClient := qdrantDB.GetQuadrantClient(ctx); qdrantClient != nil {
		index = qdrantClient
	} else {
		logger.Error("Qdrant is offline, building in-memory knowledge base")
		memIndex := memoryIndex.New()
		if _, err := ingest.BuildKnowledgeBase(ctx, config.KnowledgeBaseDir, memIndex, embedder); err != nil {
			logger.Error("Could not build in-memory knowledge base", "error", err)
			return
		}
		index = memIndex
	}

	server := mcpserver.NewServer(index, embedder)
	if err := server.Run(ctx); err != nil {
		logger.Error("MCP server stopped", "error", err)
	}
}
