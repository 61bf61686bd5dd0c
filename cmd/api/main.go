// @title           DietRAG API
// @version         1.0
// @description     Session-scoped RAG chat for diabetes and hypertension dietary guidance
// @termsOfService  http://swagger.io/terms/

// @contact.name    me lol
// @contact.url
// @contact.email

// @license.name    Apache 2.0
// @license.url     http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:3000
// @BasePath  /
// @schemes   http https
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/akolanti/DietRAG/internal/config"
	"github.com/akolanti/DietRAG/internal/data/store"
	jobmodel "github.com/akolanti/DietRAG/internal/domain/jobModel"
	"github.com/akolanti/DietRAG/internal/domain/sessionModel"
	"github.com/akolanti/DietRAG/internal/handlers"
	"github.com/akolanti/DietRAG/internal/job"
	"github.com/akolanti/DietRAG/internal/rag"
	"github.com/akolanti/DietRAG/internal/rag/embedding"
	"github.com/akolanti/DietRAG/internal/rag/embedding/googleEmbedding"
	"github.com/akolanti/DietRAG/internal/rag/embedding/openaiEmbedding"
	"github.com/akolanti/DietRAG/internal/rag/ingest"
	"github.com/akolanti/DietRAG/internal/rag/llm/gemini"
	"github.com/akolanti/DietRAG/internal/rag/vectorDB"
	"github.com/akolanti/DietRAG/internal/rag/vectorDB/memoryIndex"
	"github.com/akolanti/DietRAG/internal/rag/vectorDB/qdrantDB"
	"github.com/akolanti/DietRAG/internal/server"
	"github.com/akolanti/DietRAG/internal/session"
	"github.com/akolanti/DietRAG/internal/worker"
	"github.com/akolanti/DietRAG/pkg/logger_i"
)

var (
	listenAddr        string
	requestCount      int64
	stopWorkerChannel chan bool
	workerWaitGroup   sync.WaitGroup
)

func main() {

	logger_i.Init()
	var logger = logger_i.NewLogger("main")

	//config
	flag.StringVar(&listenAddr, "listen-addr", config.ServerListenAddr, "server listen address")
	flag.Parse()

	//init buffered ingest job channel
	jobChannel := make(chan jobmodel.Job, config.BufferLimit)
	dispatcherChannel := make(chan bool, 1)
	stopWorkerChannel = make(chan bool, 1)

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	//conversation history store with in-memory fallback
	var conversations sessionModel.ConversationStore = store.GetRedisConversationStore(serviceContext)
	if conversations == nil {
		logger.Error("Redis is offline, using in-memory conversation store")
		conversations = store.InitConversationStore()
	}

	embeddingService := selectEmbedder(serviceContext, logger)
	llmProvider := gemini.GetGeminiClient(serviceContext, config.GeminiModelName, config.GoogleAPIKey)

	if embeddingService == nil || llmProvider == nil {
		logger.Error("One or more external services failed to initialize. Shutting down.")
		logger.Debug("Available services : ", "EmbeddingService", embeddingService != nil, "LLMProvider", llmProvider != nil)
		return
	}

	index := selectIndex(serviceContext, logger, embeddingService)
	if index == nil {
		return
	}

	sessions := session.NewStore(index, conversations)

	ragService := rag.NewService(index, llmProvider, embeddingService)

	serviceConfig := job.ServiceConfig{
		JobChannel:        jobChannel,
		RequestCount:      requestCount,
		DispatcherChannel: dispatcherChannel,
		Sessions:          sessions,
	}
	logger.Info("Starting ingest job service")
	service := job.InitJobService(serviceConfig)

	handlers.InitSessionHandler(service, ragService, conversations)

	//init worker pool
	worker.InitServices(service, ragService)
	worker.InitWorkerPool(stopWorkerChannel, &workerWaitGroup)

	//server handling
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	shutdownParams := server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		WorkerStop:       stopWorkerChannel,
		Group:            &workerWaitGroup,
		CloseServices:    closeExternalServices,
	}
	go server.ShutDownHandler(shutdownParams)
	go server.CreateServer(listenAddr)

	<-stopExecution
	logger.Info("Server stopped")
}

func selectEmbedder(ctx context.Context, logger *logger_i.Logger) embedding.Embedder {
	if config.EmbeddingBackend == "openai" {
		logger.Info("Using OpenAI embedding backend")
		return openaiEmbedding.GetOpenAIEmbeddingClient(ctx, config.OpenAIEmbeddingModel, config.OpenAIAPIKey)
	}
	return googleEmbedding.GetGoogleEmbeddingClient(ctx, config.GoogleEmbeddingModel, config.GoogleAPIKey)
}

// selectIndex prefers Qdrant; with Qdrant offline it falls back to the
// in-memory index and rebuilds the global partition from the reference
// documents on disk so retrieval still has a knowledge base.
func selectIndex(ctx context.Context, logger *logger_i.Logger, embedder embedding.Embedder) vectorDB.Index {
	if qdrantClient := qdrantDB.GetQuadrantClient(ctx); qdrantClient != nil {
		return qdrantClient
	}

	logger.Error("Qdrant is offline, using in-memory index")
	memIndex := memoryIndex.New()
	failed, err := ingest.BuildKnowledgeBase(ctx, config.KnowledgeBaseDir, memIndex, embedder)
	if err != nil {
		logger.Error("Could not build in-memory knowledge base", "error", err)
		return nil
	}
	if len(failed) > 0 {
		logger.Error("Some reference documents were skipped", "files", failed)
	}
	return memIndex
}
