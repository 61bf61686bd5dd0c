package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/akolanti/DietRAG/internal/config"
)

// SearchInput is the input schema for the knowledge-base search tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"the question to search the dietary knowledge base for"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of passages to return (default 3)"`
}

// SearchOutput is the output schema for the knowledge-base search tool.
type SearchOutput struct {
	Passages []PassageOutput `json:"passages"`
	Count    int             `json:"count"`
}

// PassageOutput represents a single retrieved passage.
type PassageOutput struct {
	Source  string  `json:"source"`
	Score   float32 `json:"score"`
	Content string  `json:"content"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_knowledge_base",
		Description: "Search the diabetes and hypertension dietary knowledge base",
	}, s.handleSearch)
}

// handleSearch handles the search tool invocation. The empty session id pins
// retrieval to the global partition.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = config.RetrievalTopK
	}

	passages, err := s.retriever.Retrieve(ctx, "", input.Query, limit)
	if err != nil {
		s.logger.Error("Knowledge base search failed", "error", err)
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Passages: make([]PassageOutput, len(passages)),
		Count:    len(passages),
	}
	for i := range passages {
		output.Passages[i] = PassageOutput{
			Source:  passages[i].Source,
			Score:   passages[i].Score,
			Content: passages[i].Chunk.Text,
		}
	}

	return nil, output, nil
}
