package worker

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/akolanti/DietRAG/internal/config"
	jobmodel "github.com/akolanti/DietRAG/internal/domain/jobModel"
	"github.com/akolanti/DietRAG/internal/metrics"
)

func executeJob(job jobmodel.Job) {
	start := time.Now()
	defer func() {
		// Record total time at the end
		metrics.CaptureJobMetrics(string(job.Status), time.Since(start))
	}()
	ctxTrace := context.WithValue(context.Background(), config.TRACE_ID_KEY, job.TraceId)
	ctx, cancel := context.WithTimeout(ctxTrace, config.IngestTimeout)
	defer cancel()
	log := logger.With("trace Id ", job.TraceId)
	log.Debug("Processing ingest job:", "job Id:", job.Id, "sessionId:", job.SessionId)

	job.Status = jobmodel.JobStatusRunning

	job, record := _ragService.IngestSessionFiles(ctx, job)
	job.EndTime = time.Now()

	// The session map is the source of truth the status endpoint reads, so
	// the terminal transition happens here, not in the handler.
	if job.Status == jobmodel.JobStatusError {
		if err := _jobService.Sessions.FailIngest(job.SessionId, job.Error.Message, job.FailedFiles); err != nil {
			log.Error("Failed to mark session ingest failed", "sessionId", job.SessionId, "err", err)
		}
		return
	}
	if err := _jobService.Sessions.CompleteIngest(job.SessionId, record, job.FailedFiles); err != nil {
		log.Error("Failed to mark session ingest complete", "sessionId", job.SessionId, "err", err)
	}
}

func removeWorker(reason string) {

	workerWaitGroup.Done()
	atomic.AddInt64(&currentWorkerCount, -1)
	logger.Info("Removed worker ", "reason", reason, "workerCount", currentWorkerCount)
	metrics.DecrementActiveWorkerCount()

}
