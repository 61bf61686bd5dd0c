package rag_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/akolanti/DietRAG/internal/config"
	"github.com/akolanti/DietRAG/internal/rag"
	"github.com/akolanti/DietRAG/internal/rag/prompt"
)

func newTestService(mIx *MockIndex, mLLM *MockLLM, mEmbed *MockEmbedder) rag.Service {
	return rag.NewService(mIx, mLLM, mEmbed)
}

func testCtx() context.Context {
	return context.WithValue(context.Background(), config.TRACE_ID_KEY, "test-trace")
}

func TestChat_Scenarios(t *testing.T) {
	tests := []struct {
		name           string
		message        string
		setupMocks     func(e *MockEmbedder, ix *MockIndex, l *MockLLM)
		expectErr      bool
		expectAnswer   string
		expectContains string
		expectLLMHit   bool
	}{
		{
			name:         "Inappropriate_Refused_Without_LLM",
			message:      "I want to starve myself to lose weight",
			setupMocks:   func(e *MockEmbedder, ix *MockIndex, l *MockLLM) {},
			expectAnswer: prompt.RefusalResponse,
		},
		{
			name:         "OffTopic_General_Guidance",
			message:      "how do I fix my car engine",
			setupMocks:   func(e *MockEmbedder, ix *MockIndex, l *MockLLM) {},
			expectAnswer: prompt.GeneralGuidanceResponse,
		},
		{
			name:           "Emergency_Canned_Guidance",
			message:        "I have a high fever, what should I eat",
			setupMocks:     func(e *MockEmbedder, ix *MockIndex, l *MockLLM) {},
			expectContains: "HIGH FEVER",
		},
		{
			name:           "Emergency_Outranks_Day_Count",
			message:        "I have a fever, give me a 7 day diet plan",
			setupMocks:     func(e *MockEmbedder, ix *MockIndex, l *MockLLM) {},
			expectContains: "HIGH FEVER",
		},
		{
			name:           "OutOfRange_Days_Guidance",
			message:        "give me a 45 day diet plan",
			setupMocks:     func(e *MockEmbedder, ix *MockIndex, l *MockLLM) {},
			expectContains: "between 1 and 30 days",
		},
		{
			name:           "Zero_Days_Guidance",
			message:        "diet plan for 0 days",
			setupMocks:     func(e *MockEmbedder, ix *MockIndex, l *MockLLM) {},
			expectContains: "between 1 and 30 days",
		},
		{
			name:    "InRange_Days_Generates_Plan",
			message: "give me a 7 day diet plan",
			setupMocks: func(e *MockEmbedder, ix *MockIndex, l *MockLLM) {
				l.OnGenerate = func(ctx context.Context, p string) (string, error) {
					return "Day 1: ...", nil
				}
			},
			expectAnswer: "Day 1: ...",
			expectLLMHit: true,
		},
		{
			name:    "Question_Full_Flow",
			message: "what snacks are good for blood sugar",
			setupMocks: func(e *MockEmbedder, ix *MockIndex, l *MockLLM) {
				l.OnGenerate = func(ctx context.Context, p string) (string, error) {
					return "final answer", nil
				}
			},
			expectAnswer: "final answer",
			expectLLMHit: true,
		},
		{
			name:    "Failure_Embedding",
			message: "what snacks are good for blood sugar",
			setupMocks: func(e *MockEmbedder, ix *MockIndex, l *MockLLM) {
				e.OnGetEmbedding = func(ctx context.Context, text string) ([]float32, error) {
					return nil, errors.New("api limit")
				}
			},
			expectErr: true,
		},
		{
			name:    "Failure_LLM_Generation",
			message: "what snacks are good for blood sugar",
			setupMocks: func(e *MockEmbedder, ix *MockIndex, l *MockLLM) {
				l.OnGenerate = func(ctx context.Context, p string) (string, error) {
					return "", errors.New("provider down")
				}
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mEmbed := &MockEmbedder{}
			mIx := &MockIndex{}
			mLLM := &MockLLM{}
			tt.setupMocks(mEmbed, mIx, mLLM)

			s := newTestService(mIx, mLLM, mEmbed)

			out, err := s.Chat(testCtx(), rag.ChatInput{
				SessionId: "s1",
				Message:   tt.message,
			})

			if tt.expectErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Chat failed: %v", err)
			}

			if tt.expectAnswer != "" && out.Answer != tt.expectAnswer {
				t.Errorf("answer got %q, want %q", out.Answer, tt.expectAnswer)
			}
			if tt.expectContains != "" && !strings.Contains(out.Answer, tt.expectContains) {
				t.Errorf("answer %q does not contain %q", out.Answer, tt.expectContains)
			}
			if tt.expectLLMHit && mLLM.LastPrompt == "" {
				t.Error("expected the LLM to be invoked")
			}
			if !tt.expectLLMHit && mLLM.LastPrompt != "" {
				t.Error("LLM was invoked on a canned-response rung")
			}
		})
	}
}

func TestChat_SourcesCarryCitations(t *testing.T) {
	mLLM := &MockLLM{}
	s := newTestService(&MockIndex{}, mLLM, &MockEmbedder{})

	out, err := s.Chat(testCtx(), rag.ChatInput{SessionId: "s1", Message: "what snacks are good for blood sugar"})
	if err != nil {
		t.Fatalf("Chat failed: %v", err)
	}
	if len(out.Sources) == 0 {
		t.Fatal("expected source citations")
	}
	src := out.Sources[0]
	if src.Name != "default source" {
		t.Errorf("source name got %q", src.Name)
	}
	if src.Excerpt == "" || src.Score == 0 {
		t.Errorf("citation incomplete: %+v", src)
	}
	if !strings.Contains(mLLM.LastPrompt, "default context") {
		t.Error("retrieved passage missing from the assembled prompt")
	}
}

func TestGenerateDietPlan_RangeRule(t *testing.T) {
	mLLM := &MockLLM{OnGenerate: func(ctx context.Context, p string) (string, error) {
		return "Day 1: breakfast", nil
	}}
	s := newTestService(&MockIndex{}, mLLM, &MockEmbedder{})

	out, err := s.GenerateDietPlan(testCtx(), rag.ChatInput{SessionId: "s1", Message: "plan"}, 31)
	if err != nil {
		t.Fatalf("out-of-range days must not be an error: %v", err)
	}
	if !strings.Contains(out.Answer, "between 1 and 30 days") {
		t.Errorf("expected guidance, got %q", out.Answer)
	}
	if mLLM.LastPrompt != "" {
		t.Error("LLM invoked for an out-of-range plan")
	}

	out, err = s.GenerateDietPlan(testCtx(), rag.ChatInput{SessionId: "s1", Message: "plan"}, 5)
	if err != nil {
		t.Fatalf("GenerateDietPlan failed: %v", err)
	}
	if out.Answer != "Day 1: breakfast" {
		t.Errorf("answer got %q", out.Answer)
	}
	if !strings.Contains(mLLM.LastPrompt, "EXACTLY 5 days") {
		t.Error("plan prompt missing the requested duration")
	}
}
