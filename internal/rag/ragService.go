package rag

import (
	"context"
	"errors"
	"time"

	"github.com/akolanti/DietRAG/internal/config"
	"github.com/akolanti/DietRAG/internal/domain/jobModel"
	"github.com/akolanti/DietRAG/internal/domain/sessionModel"
	"github.com/akolanti/DietRAG/internal/metrics"
	"github.com/akolanti/DietRAG/internal/rag/embedding"
	"github.com/akolanti/DietRAG/internal/rag/ingest"
	"github.com/akolanti/DietRAG/internal/rag/llm"
	"github.com/akolanti/DietRAG/internal/rag/medical"
	"github.com/akolanti/DietRAG/internal/rag/prompt"
	"github.com/akolanti/DietRAG/internal/rag/retrieve"
	"github.com/akolanti/DietRAG/internal/rag/vectorDB"
	"github.com/akolanti/DietRAG/pkg/logger_i"
)

/*
ARCHITECTURE NOTE: OPAQUE INTERFACE PATTERN
---------------------------------------------------------

1. Service (Interface):
  - Real work happens down low bruh
  - This is the PUBLIC contract.
  - It defines the "behavior" (what handlers and workers can do).
  - We expose this to keep callers decoupled from our specific logic.

2. service (Private Struct):
  - down low stuff
  - This is the PRIVATE implementation.
  - It holds the "state" (index, embedder and LLM clients).
  - It is lowercase to prevent external packages from accessing our
    internal dependencies directly.

3. Pointer Receiver (*service):
  - By defining methods on (*service), the struct IMPLICITLY satisfies
    the Service interface.
  - if it quacks like a duck, -it's a duck (Duck Typing)

4. Dependency Injection (NewService):
  - This constructor links the private struct to the public interface.
  - It allows us to swap real backends for mocks during testing without
    changing the callers' code.
*/

// ChatInput is one user turn with everything the session layer knows about
// the caller. History arrives oldest first, already windowed.
type ChatInput struct {
	SessionId string
	Message   string
	Profile   sessionModel.MedicalProfile
	Record    medical.Record
	History   []string
}

// SourceRef is one citation attached to an answer.
type SourceRef struct {
	Name    string  `json:"name"`
	Excerpt string  `json:"excerpt"`
	Score   float32 `json:"score"`
}

type ChatOutput struct {
	Answer  string      `json:"answer"`
	Sources []SourceRef `json:"sources,omitempty"`
}

// Service - handlers and the worker only call this, they don't need to know
// the llm, the index or the embedder.
type Service interface {
	Chat(ctx context.Context, input ChatInput) (ChatOutput, error)
	GenerateDietPlan(ctx context.Context, input ChatInput, days int) (ChatOutput, error)
	IngestSessionFiles(ctx context.Context, job jobModel.Job) (jobModel.Job, medical.Record)
}

type service struct {
	index       vectorDB.Index
	llmProvider llm.Provider
	embedder    embedding.Embedder
	retriever   *retrieve.Retriever
	logger      *logger_i.Logger
}

// NewService constructor
func NewService(index vectorDB.Index, llm llm.Provider, em embedding.Embedder) Service {
	return &service{
		index:       index,
		llmProvider: llm,
		embedder:    em,
		retriever:   retrieve.New(index, em),
		logger:      logger_i.NewLogger("RAG Service :"),
	}
}

// Chat runs the message through the triage ladder and, when it survives, the
// retrieval + generation path. Canned rungs never touch the index or the LLM.
func (s *service) Chat(ctx context.Context, input ChatInput) (ChatOutput, error) {
	inMethodLogger := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "sessionId", input.SessionId)

	if prompt.ContainsInappropriate(input.Message) {
		inMethodLogger.Info("Refused inappropriate message")
		return ChatOutput{Answer: prompt.RefusalResponse}, nil
	}

	// Emergency messages are in scope even when no diet keyword appears.
	emergency := prompt.IsEmergency(input.Message)
	if !prompt.IsDietRelated(input.Message) && !emergency {
		inMethodLogger.Info("Off-topic message, returning general guidance")
		return ChatOutput{Answer: prompt.GeneralGuidanceResponse}, nil
	}

	// An acute symptom outranks an explicit day count in the same message.
	if emergency {
		inMethodLogger.Info("Emergency keywords detected, returning canned guidance")
		return ChatOutput{Answer: prompt.EmergencyAdvice(input.Message)}, nil
	}

	if days, requested := prompt.ParseRequestedDays(input.Message); requested {
		if !prompt.DaysInRange(days) {
			inMethodLogger.Info("Requested plan duration out of range", "days", days)
			return ChatOutput{Answer: prompt.UnsupportedDurationResponse()}, nil
		}
		return s.GenerateDietPlan(ctx, input, days)
	}

	return s.answer(ctx, inMethodLogger, input, func(pc prompt.Context) string {
		return prompt.BuildQuestionPrompt(input.Message, pc)
	})
}

// GenerateDietPlan is the dedicated plan operation. It applies the same
// range rule as the chat ladder so both entry points agree.
func (s *service) GenerateDietPlan(ctx context.Context, input ChatInput, days int) (ChatOutput, error) {
	inMethodLogger := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "sessionId", input.SessionId, "days", days)

	if !prompt.DaysInRange(days) {
		inMethodLogger.Info("Plan duration out of range")
		return ChatOutput{Answer: prompt.UnsupportedDurationResponse()}, nil
	}

	return s.answer(ctx, inMethodLogger, input, func(pc prompt.Context) string {
		return prompt.BuildDietPlanPrompt(days, pc)
	})
}

func (s *service) IngestSessionFiles(ctx context.Context, job jobModel.Job) (jobModel.Job, medical.Record) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("Session_ingestion", time.Since(start)) }()
	j, record := ingest.ProcessSessionIngestion(ctx, job, s.embedder, s.index)
	if j.Status == jobModel.JobStatusError {
		return s.jobError(j, errors.New("session ingestion failed"), "INGESTION_FAILURE", true), record
	}
	return j, record
}
