package jobModel

import (
	"time"
)

type JobStatus string
type InternalStatus string

const (
	JobStatusQueued   JobStatus = "QUEUED"
	JobStatusRunning  JobStatus = "RUNNING"
	JobStatusComplete JobStatus = "COMPLETE"
	JobStatusError    JobStatus = "Error"

	IngestInit       InternalStatus = "IngestInit"
	IngestExtracting InternalStatus = "IngestExtracting"
	IngestChunking   InternalStatus = "IngestChunking"
	IngestEmbedding  InternalStatus = "IngestEmbedding"
	IngestIndexing   InternalStatus = "IngestIndexing"
	MedicalParsing   InternalStatus = "MedicalParsing"
	Error            InternalStatus = "Error"
	Complete         InternalStatus = "Complete"
)

// FileRef points at one staged upload awaiting ingestion.
type FileRef struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// Job is one background ingestion unit: all files uploaded at session
// creation, destined for that session's private partition. Chat is handled
// synchronously and never becomes a Job.
type Job struct {
	Id          string         `json:"id"`
	SessionId   string         `json:"session_id"`
	TraceId     string         `json:"trace_id"`
	Files       []FileRef      `json:"files"`
	FailedFiles []string       `json:"failed_files,omitempty"`
	Error       JobError       `json:"error,omitempty"`
	CreatedTime time.Time      `json:"created_time"`
	EndTime     time.Time      `json:"end_time,omitempty"`
	Status      JobStatus      `json:"status"`
	CurrentStep InternalStatus `json:"current_step"`
}

type JobError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Retry   bool   `json:"retry"`
}
