package sessionModel

import (
	"context"
	"time"

	"github.com/akolanti/DietRAG/internal/rag/medical"
)

// IngestStatus is the session-level ingestion state machine:
// pending -> completed (normal) or pending -> failed (terminal, with reason).
// A session created without files starts directly at completed.
type IngestStatus string

const (
	IngestPending   IngestStatus = "pending"
	IngestCompleted IngestStatus = "completed"
	IngestFailed    IngestStatus = "failed"
)

// MedicalProfile is the health data the user states on session creation.
type MedicalProfile struct {
	HasDiabetes     bool    `json:"has_diabetes"`
	DiabetesType    string  `json:"diabetes_type,omitempty"`  //"type1" | "type2"
	DiabetesLevel   string  `json:"diabetes_level,omitempty"` //"controlled" | "uncontrolled"
	HasHypertension bool    `json:"has_hypertension"`
	Systolic        int     `json:"systolic,omitempty"`
	Diastolic       int     `json:"diastolic,omitempty"`
	HeightCm        float64 `json:"height_cm,omitempty"`
	WeightKg        float64 `json:"weight_kg,omitempty"`
}

type Session struct {
	Id            string         `json:"id"`
	Profile       MedicalProfile `json:"profile"`
	Partition     string         `json:"partition"` //private index partition name
	IngestStatus  IngestStatus   `json:"ingest_status"`
	FailureReason string         `json:"failure_reason,omitempty"`
	FailedFiles   []string       `json:"failed_files,omitempty"` //skipped, not fatal
	Record        medical.Record `json:"record"`
	CreatedAt     time.Time      `json:"created_at"`
}

// ConversationEntry is one message exchange kept in the session history.
type ConversationEntry struct {
	MessageId         string    `json:"message_id"`
	UserMessage       string    `json:"user_message"`
	AssistantResponse string    `json:"assistant_response"`
	Sources           []string  `json:"sources,omitempty"`
	Timestamp         time.Time `json:"timestamp"`
}

/// ConversationStore keeps the ordered history per session. Implementations:
// Redis-backed with TTL, or the in-memory fallback.
type ConversationStore interface {
	InitConversation(ctx context.Context, sessionId string) error
	HasConversation(ctx context.Context, sessionId string) bool
	AppendExchange(ctx context.Context, sessionId string, entry ConversationEntry) error
	// RecentHistory returns the last few exchanges, oldest first, as
	// marshalled entries ready for prompt assembly.
	RecentHistory(ctx context.Context, sessionId string) ([]string, error)
	DeleteConversation(ctx context.Context, sessionId string) error
}
