package worker

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/akolanti/DietRAG/internal/config"
	"github.com/akolanti/DietRAG/internal/data/store"
	"github.com/akolanti/DietRAG/internal/domain/jobModel"
	"github.com/akolanti/DietRAG/internal/domain/sessionModel"
	"github.com/akolanti/DietRAG/internal/job"
	"github.com/akolanti/DietRAG/internal/rag"
	"github.com/akolanti/DietRAG/internal/rag/medical"
	"github.com/akolanti/DietRAG/internal/rag/vectorDB/memoryIndex"
	"github.com/akolanti/DietRAG/internal/session"
	"github.com/akolanti/DietRAG/pkg/logger_i"
)

// MockRagService to track if jobs are executed
type MockRagService struct {
	IngestedCount int32
	FailIngest    bool
}

func (m *MockRagService) Chat(ctx context.Context, input rag.ChatInput) (rag.ChatOutput, error) {
	return rag.ChatOutput{}, nil
}

func (m *MockRagService) GenerateDietPlan(ctx context.Context, input rag.ChatInput, days int) (rag.ChatOutput, error) {
	return rag.ChatOutput{}, nil
}

func (m *MockRagService) IngestSessionFiles(ctx context.Context, j jobModel.Job) (jobModel.Job, medical.Record) {
	atomic.AddInt32(&m.IngestedCount, 1)
	if m.FailIngest {
		j.Status = jobModel.JobStatusError
		j.Error = jobModel.JobError{Message: "extraction failed"}
		return j, medical.Record{}
	}
	j.Status = jobModel.JobStatusComplete
	return j, medical.Record{HasLabData: true}
}

func newSessionStore() *session.Store {
	return session.NewStore(memoryIndex.New(), store.InitConversationStore())
}

func TestWorkerPool_Flow(t *testing.T) {
	// 1. Setup
	sessions := newSessionStore()
	jobSvc := &job.Service{
		JobChannel:        make(chan jobModel.Job, 10),
		DispatcherChannel: make(chan bool, 10),
		Sessions:          sessions,
	}
	mockRag := &MockRagService{}
	stopChan := make(chan bool)
	wg := &sync.WaitGroup{}

	InitServices(jobSvc, mockRag)
	InitWorkerPool(stopChan, wg)

	// Reset global state for test
	atomic.StoreInt64(&currentWorkerCount, 0)

	t.Run("Dispatcher creates worker on signal", func(t *testing.T) {
		// Signal dispatcher to create a worker
		jobSvc.DispatcherChannel <- true

		// Give it a millisecond to spawn
		time.Sleep(50 * time.Millisecond)

		count := atomic.LoadInt64(&currentWorkerCount)
		if count < 1 {
			t.Errorf("Expected at least 1 worker, got %d", count)
		}
	})

	t.Run("Worker ingests and completes the session", func(t *testing.T) {
		created, err := sessions.Create(context.Background(), sessionModel.MedicalProfile{}, true)
		if err != nil {
			t.Fatalf("session create failed: %v", err)
		}

		jobSvc.JobChannel <- jobModel.Job{
			Id:        "ingest-1",
			SessionId: created.Id,
			Status:    jobModel.JobStatusQueued,
		}

		// Wait for worker to pick up and process
		time.Sleep(50 * time.Millisecond)

		processed := atomic.LoadInt32(&mockRag.IngestedCount)
		if processed != 1 {
			t.Errorf("Expected 1 job processed, got %d", processed)
		}

		got, err := sessions.Get(created.Id)
		if err != nil {
			t.Fatalf("session lookup failed: %v", err)
		}
		if got.IngestStatus != sessionModel.IngestCompleted {
			t.Errorf("session status got %s, want %s", got.IngestStatus, sessionModel.IngestCompleted)
		}
		if !got.Record.HasLabData {
			t.Error("extracted record not attached to the session")
		}
	})

	t.Run("Stop signal retires workers", func(t *testing.T) {
		// Send stop signal
		close(stopChan)

		// Wait for workers to exit
		done := make(chan struct{})
		go func() {
			wg.Wait()
			close(done)
		}()

		select {
		case <-done:
			// Success
		case <-time.After(2 * time.Second):
			t.Error("Workers did not stop within timeout")
		}
	})
}

func TestExecuteJob_FailureMarksSessionFailed(t *testing.T) {
	sessions := newSessionStore()
	jobSvc := &job.Service{
		JobChannel: make(chan jobModel.Job),
		Sessions:   sessions,
	}
	logger = logger_i.NewLogger("TestWorkerPool")
	InitServices(jobSvc, &MockRagService{FailIngest: true})

	created, err := sessions.Create(context.Background(), sessionModel.MedicalProfile{}, true)
	if err != nil {
		t.Fatalf("session create failed: %v", err)
	}

	executeJob(jobModel.Job{Id: "ingest-fail", SessionId: created.Id})

	got, err := sessions.Get(created.Id)
	if err != nil {
		t.Fatalf("session lookup failed: %v", err)
	}
	if got.IngestStatus != sessionModel.IngestFailed {
		t.Errorf("session status got %s, want %s", got.IngestStatus, sessionModel.IngestFailed)
	}
	if got.FailureReason != "extraction failed" {
		t.Errorf("failure reason got %q", got.FailureReason)
	}
}

func TestWorker_IdleTimeout(t *testing.T) {
	// Temporarily override config/globals for test
	atomic.StoreInt64(&currentWorkerCount, 0)
	atomic.StoreInt64(&minWorkerCount, 2) // Must be > 1 based on your logic
	logger = logger_i.NewLogger("TestWorkerPool")
	jobSvc := &job.Service{
		JobChannel: make(chan jobModel.Job),
		Sessions:   newSessionStore(),
	}
	InitServices(jobSvc, &MockRagService{})

	wg := &sync.WaitGroup{}
	stopChan := make(chan bool)
	workerWaitGroup = wg
	stopWorkerChannel = stopChan

	// Spawn 1 worker manually
	createWorker()
	time.Sleep(config.IdleWorkerTimeout)

	time.Sleep(100 * time.Millisecond)
	count := atomic.LoadInt64(&currentWorkerCount)
	if count != 0 {
		t.Errorf("Assertion Failed: Worker should have timed out and retired, but count is %d", count)
	}
}
