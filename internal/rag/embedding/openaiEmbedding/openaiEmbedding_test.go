package openaiEmbedding

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/akolanti/DietRAG/pkg/logger_i"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

func newLocalClient(t *testing.T, body string) *client {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	logger = logger_i.NewLogger("openai_embedding")
	return &client{
		api:   openai.NewClient(option.WithAPIKey("test"), option.WithBaseURL(srv.URL)),
		model: openai.EmbeddingModel("text-embedding-3-small"),
	}
}

func TestGetEmbedding_EmptyResponseIsError(t *testing.T) {
	c := newLocalClient(t, `{"object":"list","data":[],"model":"text-embedding-3-small","usage":{"prompt_tokens":0,"total_tokens":0}}`)

	if _, err := c.GetEmbedding(context.Background(), "sodium intake"); err == nil {
		t.Fatal("expected error for an empty embedding response")
	}
}

func TestBatchEmbedding_CountMismatchIsError(t *testing.T) {
	c := newLocalClient(t, `{"object":"list","data":[{"object":"embedding","index":0,"embedding":[0.1,0.2]}],"model":"text-embedding-3-small","usage":{"prompt_tokens":1,"total_tokens":1}}`)

	if _, err := c.BatchEmbedding(context.Background(), []string{"a", "b"}, false); err == nil {
		t.Fatal("expected error when embeddings come back for only part of the batch")
	}
}

func TestGetEmbedding_Roundtrip(t *testing.T) {
	c := newLocalClient(t, `{"object":"list","data":[{"object":"embedding","index":0,"embedding":[0.25,0.5]}],"model":"text-embedding-3-small","usage":{"prompt_tokens":1,"total_tokens":1}}`)

	vector, err := c.GetEmbedding(context.Background(), "sodium intake")
	if err != nil {
		t.Fatalf("GetEmbedding failed: %v", err)
	}
	if len(vector) != 2 || vector[0] != 0.25 || vector[1] != 0.5 {
		t.Errorf("vector got %v, want [0.25 0.5]", vector)
	}
}
