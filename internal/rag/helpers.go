package rag

import (
	"context"
	"net/http"
	"time"

	"github.com/akolanti/DietRAG/internal/config"
	"github.com/akolanti/DietRAG/internal/domain/commonModels"
	"github.com/akolanti/DietRAG/internal/domain/jobModel"
	"github.com/akolanti/DietRAG/internal/metrics"
	"github.com/akolanti/DietRAG/internal/rag/prompt"
	"github.com/akolanti/DietRAG/pkg/logger_i"
)

// answer is the shared retrieval + generation path behind every ladder rung
// that reaches the LLM. build turns the assembled context into the final
// prompt text.
func (s *service) answer(ctx context.Context, log *logger_i.Logger, input ChatInput, build func(prompt.Context) string) (ChatOutput, error) {
	processContext, cancel := context.WithTimeout(ctx, config.LLMTimeout)
	defer cancel()

	passages, err := s.executeRetrievalStep(processContext, log, input)
	if err != nil {
		log.Error("RETRIEVAL_FAILURE", "error", err)
		return ChatOutput{}, err
	}

	fullPrompt := build(prompt.Context{
		Passages: passages,
		Profile:  input.Profile,
		Record:   input.Record,
		History:  input.History,
	})

	completion, err := s.executeLLMStep(processContext, log, fullPrompt)
	if err != nil {
		log.Error("LLM_GENERATION_FAILURE", "error", err)
		return ChatOutput{}, err
	}

	return ChatOutput{Answer: completion, Sources: citations(passages)}, nil
}

func (s *service) executeRetrievalStep(ctx context.Context, log *logger_i.Logger, input ChatInput) ([]commonModels.RetrievedPassage, error) {
	log.Debug("Chat", "Current Step", "retrieval")

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("retrieval", time.Since(start)) }()

	return s.retriever.Retrieve(ctx, input.SessionId, input.Message, config.RetrievalTopK)
}

func (s *service) executeLLMStep(ctx context.Context, log *logger_i.Logger, fullPrompt string) (string, error) {
	log.Debug("Chat", "Current Step", "llm_generation")

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("llm_generation", time.Since(start)) }()

	return s.llmProvider.Generate(ctx, fullPrompt)
}

func citations(passages []commonModels.RetrievedPassage) []SourceRef {
	if len(passages) == 0 {
		return nil
	}
	refs := make([]SourceRef, 0, len(passages))
	for _, p := range passages {
		refs = append(refs, SourceRef{
			Name:    p.Source,
			Excerpt: excerpt(p.Chunk.Text, config.SourceExcerptLen),
			Score:   p.Score,
		})
	}
	return refs
}

func excerpt(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}

func (s *service) jobError(job jobModel.Job, err error, message string, canRetry bool) jobModel.Job {
	s.logger.Error(message, "error", err)

	job.Error = jobModel.JobError{
		Code:    http.StatusInternalServerError,
		Message: "Internal Server Error",
		Retry:   canRetry,
	}
	job.Status = jobModel.JobStatusError
	return job
}
