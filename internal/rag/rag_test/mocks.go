package rag_test

import (
	"context"

	"github.com/akolanti/DietRAG/internal/domain/commonModels"
	"github.com/akolanti/DietRAG/internal/rag/vectorDB"
)

// MockIndex implements vectorDB.Index
type MockIndex struct {
	// Control fields to simulate different behaviors
	OnEnsurePartition func(ctx context.Context, partition string) error
	OnHasPartition    func(ctx context.Context, partition string) bool
	OnAdd             func(ctx context.Context, partition string, chunks []commonModels.DocChunk, vectors [][]float32) error
	OnSearch          func(ctx context.Context, partition string, vector []float32, k int) ([]vectorDB.ScoredChunk, error)
	OnRemovePartition func(ctx context.Context, partition string) error
}

func (m *MockIndex) EnsurePartition(ctx context.Context, partition string) error {
	if m.OnEnsurePartition != nil {
		return m.OnEnsurePartition(ctx, partition)
	}
	return nil
}

func (m *MockIndex) HasPartition(ctx context.Context, partition string) bool {
	if m.OnHasPartition != nil {
		return m.OnHasPartition(ctx, partition)
	}
	return true
}

func (m *MockIndex) Add(ctx context.Context, partition string, chunks []commonModels.DocChunk, vectors [][]float32) error {
	if m.OnAdd != nil {
		return m.OnAdd(ctx, partition, chunks, vectors)
	}
	return nil
}

func (m *MockIndex) Search(ctx context.Context, partition string, vector []float32, k int) ([]vectorDB.ScoredChunk, error) {
	if m.OnSearch != nil {
		return m.OnSearch(ctx, partition, vector, k)
	}
	return []vectorDB.ScoredChunk{
		{
			Chunk: commonModels.DocChunk{
				Doc:     commonModels.Document{Id: "doc-default", Name: "default source"},
				ChunkId: "chunk-default",
				Text:    "default context",
			},
			Score: 0.9,
		},
	}, nil
}

func (m *MockIndex) RemovePartition(ctx context.Context, partition string) error {
	if m.OnRemovePartition != nil {
		return m.OnRemovePartition(ctx, partition)
	}
	return nil
}

type MockEmbedder struct {
	OnGetEmbedding   func(ctx context.Context, text string) ([]float32, error)
	OnBatchEmbedding func(ctx context.Context, chunks []string, isHuge bool) ([][]float32, error)
}

func (m *MockEmbedder) BatchEmbedding(ctx context.Context, chunks []string, isHuge bool) ([][]float32, error) {
	if m.OnBatchEmbedding != nil {
		return m.OnBatchEmbedding(ctx, chunks, isHuge)
	}
	// Return dummy vectors matching chunk size
	return make([][]float32, len(chunks)), nil
}

func (m *MockEmbedder) GetEmbedding(ctx context.Context, query string) ([]float32, error) {
	if m.OnGetEmbedding != nil {
		return m.OnGetEmbedding(ctx, query)
	}
	return []float32{0.1}, nil
}

// MockLLM implements llm.Provider
type MockLLM struct {
	OnGenerate func(ctx context.Context, prompt string) (string, error)
	// LastPrompt captures the final assembled prompt for inspection.
	LastPrompt string
}

func (m *MockLLM) Generate(ctx context.Context, prompt string) (string, error) {
	m.LastPrompt = prompt
	if m.OnGenerate != nil {
		return m.OnGenerate(ctx, prompt)
	}
	return "mocked llm response", nil
}
