package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/akolanti/DietRAG/internal/rag/embedding"
	"github.com/akolanti/DietRAG/internal/rag/retrieve"
	"github.com/akolanti/DietRAG/internal/rag/vectorDB"
	"github.com/akolanti/DietRAG/pkg/logger_i"
)

// Version is the MCP server version.
const Version = "0.1.0"

// Server exposes read-only knowledge-base search as an MCP tool. It only
// ever touches the global partition, session partitions stay private to the
// HTTP surface.
type Server struct {
	retriever *retrieve.Retriever
	server    *mcp.Server
	logger    *logger_i.Logger
}

func NewServer(index vectorDB.Index, embedder embedding.Embedder) *Server {
	impl := &mcp.Implementation{
		Name:    "dietrag",
		Version: Version,
	}

	s := &Server{
		retriever: retrieve.New(index, embedder),
		server:    mcp.NewServer(impl, nil),
		logger:    logger_i.NewLogger("MCP Server"),
	}

	s.registerTools()
	return s
}

// Run starts the MCP server over stdio.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("MCP server listening on stdio")
	return s.server.Run(ctx, &mcp.StdioTransport{})
}
