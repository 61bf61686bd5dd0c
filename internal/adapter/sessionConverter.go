package adapter

import (
	"fmt"

	"github.com/akolanti/DietRAG/internal/api"
	"github.com/akolanti/DietRAG/internal/domain/sessionModel"
	"github.com/akolanti/DietRAG/internal/rag"
)

func ToCreateSessionResponse(session sessionModel.Session) api.CreateSessionResponse {
	return api.CreateSessionResponse{
		SessionId:    session.Id,
		IngestStatus: string(session.IngestStatus),
		StatusURL:    fmt.Sprintf("session/%s/status", session.Id),
	}
}

func ToStatusResponse(session sessionModel.Session) api.StatusResponse {
	return api.StatusResponse{
		SessionId:     session.Id,
		IngestStatus:  string(session.IngestStatus),
		FailureReason: session.FailureReason,
		FailedFiles:   session.FailedFiles,
		CreatedAt:     session.CreatedAt,
	}
}

func ToMedicalRecordResponse(session sessionModel.Session) api.MedicalRecordResponse {
	return api.MedicalRecordResponse{
		SessionId: session.Id,
		Record:    session.Record,
	}
}

func ToChatResponse(sessionId string, messageId string, output rag.ChatOutput) api.ChatResponse {
	var sources []api.SourceCitation
	for _, ref := range output.Sources {
		sources = append(sources, api.SourceCitation{
			Name:    ref.Name,
			Excerpt: ref.Excerpt,
			Score:   ref.Score,
		})
	}
	return api.ChatResponse{
		SessionId: sessionId,
		MessageId: messageId,
		Answer:    output.Answer,
		Sources:   sources,
	}
}

func BadRequest(id string, message string, code int) api.ErrorResponse {
	return api.ErrorResponse{
		Code:    code,
		Message: message,
		Id:      id,
	}
}
