package api

import (
	"time"

	"github.com/akolanti/DietRAG/internal/rag/medical"
)

type CreateSessionResponse struct {
	SessionId    string `json:"session_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	IngestStatus string `json:"ingest_status" example:"pending"`
	StatusURL    string `json:"status_url"`
}

type StatusResponse struct {
	SessionId     string    `json:"session_id"`
	IngestStatus  string    `json:"ingest_status" example:"completed"`
	FailureReason string    `json:"failure_reason,omitempty"`
	FailedFiles   []string  `json:"failed_files,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type MedicalRecordResponse struct {
	SessionId string         `json:"session_id"`
	Record    medical.Record `json:"record"`
}

type SourceCitation struct {
	Name    string  `json:"name"`
	Excerpt string  `json:"excerpt"`
	Score   float32 `json:"score"`
}

type ChatResponse struct {
	SessionId string           `json:"session_id"`
	MessageId string           `json:"message_id"`
	Answer    string           `json:"answer"`
	Sources   []SourceCitation `json:"sources,omitempty"`
}

type ErrorResponse struct {
	Code    int    `json:"code" example:"400"`
	Message string `json:"message" example:"session not found"`
	Id      string `json:"id,omitempty"`
}

// requests---------------------

type ChatRequest struct {
	Message string `json:"message" validate:"required"`
}

type DietPlanRequest struct {
	Days int `json:"days" validate:"required"`
}
