package handlers

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/akolanti/DietRAG/internal/adapter/utils"
	"github.com/akolanti/DietRAG/internal/domain/jobModel"
	"github.com/akolanti/DietRAG/internal/domain/sessionModel"
	"github.com/akolanti/DietRAG/internal/job"
	"github.com/akolanti/DietRAG/internal/metrics"
	"github.com/akolanti/DietRAG/internal/rag"
	"github.com/akolanti/DietRAG/pkg/logger_i"
)

var (
	handlerInstance *SessionHandler //private singleton
	once            sync.Once
	logSH           *logger_i.Logger
)

type SessionHandler struct {
	service       *job.Service
	ragService    rag.Service
	conversations sessionModel.ConversationStore
}

func InitSessionHandler(jobService *job.Service, ragService rag.Service, conversations sessionModel.ConversationStore) {
	once.Do(func() {
		handlerInstance = &SessionHandler{
			service:       jobService,
			ragService:    ragService,
			conversations: conversations,
		}

		logSH = logger_i.NewLogger("SessionHandler")
		logRH = logger_i.NewLogger("RequestHandler")
		logSH.Info("Starting session handler")
	})
}

// EnqueueIngestJob pushes the session's staged uploads onto the worker
// queue. The send blocks when the buffer is full to keep intake from
// outrunning the pool.
func EnqueueIngestJob(sessionId string, traceId string, files []jobModel.FileRef) {
	log := logSH.With("traceId", traceId, "sessionId", sessionId)
	log.Info("Queueing ingest job", "files", len(files))
	handlerInstance.pushToJobChannel(sessionId, traceId, files)
}

func GetSession(id string) (sessionModel.Session, bool) {
	if handlerInstance == nil {
		return sessionModel.Session{}, false
	}
	session, err := handlerInstance.service.Sessions.Get(id)
	return session, err == nil
}

// private methods
func (h *SessionHandler) pushToJobChannel(sessionId string, traceId string, files []jobModel.FileRef) {

	_job := jobModel.Job{
		Id:          utils.GetNewUUID(),
		SessionId:   sessionId,
		TraceId:     traceId,
		Files:       files,
		CreatedTime: time.Now(),
		Status:      jobModel.JobStatusQueued,
		CurrentStep: jobModel.IngestInit,
	}

	//metrics
	metrics.IncrementJobsInQueue()

	h.service.JobChannel <- _job //this is a blocking send to prevent the system from being overwhelmed
	logSH.Info("Created new ingest job", "job Id", _job.Id)

	//ingestion involves batch processing which might take time - external system call
	//so every ingest job signals the dispatcher for a fresh worker, idle ones retire on their own
	atomic.AddInt64(&h.service.RequestCount, 1)
	metrics.StartDispatcherSignalCount() //metrics
	h.service.DispatcherChannel <- true
}

func (h *SessionHandler) recentHistory(ctx context.Context, sessionId string) []string {
	history, err := h.conversations.RecentHistory(ctx, sessionId)
	if err != nil {
		logSH.Error("Failed to get conversation history", "err", err)
		return nil
	}
	return history
}

func (h *SessionHandler) saveExchange(ctx context.Context, sessionId string, messageId string, userMessage string, output rag.ChatOutput) {
	sources := make([]string, 0, len(output.Sources))
	for _, ref := range output.Sources {
		sources = append(sources, ref.Name)
	}
	entry := sessionModel.ConversationEntry{
		MessageId:         messageId,
		UserMessage:       userMessage,
		AssistantResponse: output.Answer,
		Sources:           sources,
		Timestamp:         time.Now(),
	}
	if err := h.conversations.AppendExchange(ctx, sessionId, entry); err != nil {
		logSH.Error("Failed to save exchange", "sessionId", sessionId, "err", err)
	}
}

func chatConfigForSession(session sessionModel.Session, message string, history []string) rag.ChatInput {
	return rag.ChatInput{
		SessionId: session.Id,
		Message:   message,
		Profile:   session.Profile,
		Record:    session.Record,
		History:   history,
	}
}
