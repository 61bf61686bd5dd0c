package job

import (
	"github.com/akolanti/DietRAG/internal/domain/jobModel"
	"github.com/akolanti/DietRAG/internal/session"
)

// Service carries the ingestion queue plumbing: the buffered job channel the
// workers drain, the dispatcher signal, and the session store the workers
// report terminal status to.
type Service struct {
	JobChannel        chan jobModel.Job
	RequestCount      int64
	DispatcherChannel chan bool
	Sessions          *session.Store
}

type ServiceConfig struct {
	JobChannel        chan jobModel.Job
	RequestCount      int64
	DispatcherChannel chan bool
	Sessions          *session.Store
}

func InitJobService(cfg ServiceConfig) *Service {
	return &Service{
		JobChannel:        cfg.JobChannel,
		RequestCount:      cfg.RequestCount,
		DispatcherChannel: cfg.DispatcherChannel,
		Sessions:          cfg.Sessions,
	}
}
