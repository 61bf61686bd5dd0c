package handlers

import (
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/akolanti/DietRAG/internal/adapter"
	"github.com/akolanti/DietRAG/internal/adapter/utils"
	"github.com/akolanti/DietRAG/internal/config"
	"github.com/akolanti/DietRAG/internal/domain/sessionModel"
)

type multipartFile struct {
	header *multipart.FileHeader
}

func writeJsonResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but can't send a clean status code now
		logRH.Error("Error encoding response: %v", err)
	}
}

func validateContext(ctx context.Context) bool {
	log := logRH.With("traceId:", ctx.Value(config.TRACE_ID_KEY))
	if ctx.Err() != nil {
		log.Warn("context error", ctx.Err())
		return false
	}

	select {
	case <-ctx.Done():
		log.Warn("context cancelled")
		return false
	default:
		return true

	}
}

func WriteErrorResponse(w http.ResponseWriter, httpCode int, id string, error string) {
	writeJsonResponse(w, httpCode, adapter.BadRequest(id, error, httpCode))
}

func sessionFromRequest(w http.ResponseWriter, r *http.Request) (sessionModel.Session, bool) {
	id := utils.GetChiURLParam(r, "id")
	if id == "" {
		logRH.Warn("Empty session ID")
		WriteErrorResponse(w, http.StatusNotFound, id, "session not found")
		return sessionModel.Session{}, false
	}

	session, found := GetSession(id)
	if !found {
		WriteErrorResponse(w, http.StatusNotFound, id, "session not found")
		return sessionModel.Session{}, false
	}
	return session, true
}

func traceIdFrom(r *http.Request) string {
	if traceId, ok := r.Context().Value(config.TRACE_ID_KEY).(string); ok {
		return traceId
	}
	return ""
}

func supportedUpload(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf", ".docx", ".txt", ".rtf":
		return true
	}
	return false
}

func getTargetDirectory() (string, string) {
	root, err := os.Getwd()
	if err != nil {
		return "", "Storage Error"
	}

	targetDir := filepath.Join(root, "temporary_data")
	if err := os.MkdirAll(targetDir, 0750); err != nil {
		return "", "Storage Error"
	}
	return targetDir, ""
}
