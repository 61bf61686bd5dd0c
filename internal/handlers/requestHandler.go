package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/akolanti/DietRAG/internal/adapter"
	"github.com/akolanti/DietRAG/internal/adapter/utils"
	"github.com/akolanti/DietRAG/internal/api"
	"github.com/akolanti/DietRAG/internal/config"
	"github.com/akolanti/DietRAG/internal/domain/jobModel"
	"github.com/akolanti/DietRAG/internal/domain/sessionModel"
	"github.com/akolanti/DietRAG/pkg/logger_i"
)

var logRH *logger_i.Logger

func GetHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	return
}

// CreateSessionHandler godoc
// @Summary      Create a session
// @Description  Accepts a medical profile plus optional document uploads, stages the files and queues background ingestion into the session's private partition.
// @Tags         Session
// @Accept       multipart/form-data
// @Produce      json
// @Param        profile    formData  string  true   "Medical profile JSON"
// @Param        documents  formData  file    false  "Medical documents (pdf, docx, txt, rtf)"
// @Success      202  {object}  api.CreateSessionResponse  "Session created"
// @Failure      400  {object}  api.ErrorResponse          "Invalid profile or oversized upload"
// @Failure      500  {object}  api.ErrorResponse          "Storage error"
// @Router       /session [post]
func CreateSessionHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid Context by request ", r.RemoteAddr)
		return
	}

	if err := r.ParseMultipartForm(config.MaxUploadSize); err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "", "File too large or bad request")
		return
	}

	var profile sessionModel.MedicalProfile
	profileField := r.FormValue("profile")
	if profileField == "" {
		WriteErrorResponse(w, http.StatusBadRequest, "", "profile is required")
		return
	}
	if err := json.Unmarshal([]byte(profileField), &profile); err != nil {
		logRH.Warn("Bad profile payload", "error:", err)
		WriteErrorResponse(w, http.StatusBadRequest, "", "invalid profile JSON")
		return
	}

	var uploads []*multipartFile
	if r.MultipartForm != nil {
		for _, header := range r.MultipartForm.File["documents"] {
			uploads = append(uploads, &multipartFile{header: header})
		}
	}

	files, errMessage := stageUploads(uploads)
	if errMessage != "" {
		WriteErrorResponse(w, http.StatusInternalServerError, "", errMessage)
		return
	}

	session, err := handlerInstance.service.Sessions.Create(r.Context(), profile, len(files) > 0)
	if err != nil {
		logRH.Error("Failed to create session", "err", err)
		WriteErrorResponse(w, http.StatusInternalServerError, "", "could not create session")
		return
	}

	if len(files) > 0 {
		EnqueueIngestJob(session.Id, traceIdFrom(r), files)
	}

	writeJsonResponse(w, http.StatusAccepted, adapter.ToCreateSessionResponse(session))
}

// GetStatusHandler godoc
// @Summary      Get session ingestion status
// @Description  Retrieves the session's ingestion state, including failure reason and skipped files when applicable.
// @Tags         Session
// @Produce      json
// @Param        id   path      string  true  "Session ID"
// @Success      200  {object}  api.StatusResponse  "Current ingestion status"
// @Failure      404  {object}  api.ErrorResponse   "Session not found"
// @Router       /session/{id}/status [get]
func GetStatusHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}
	session, found := sessionFromRequest(w, r)
	if !found {
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToStatusResponse(session))
}

// GetMedicalRecordHandler godoc
// @Summary      Get extracted medical record
// @Description  Returns the structured facts extracted from the session's uploaded documents.
// @Tags         Session
// @Produce      json
// @Param        id   path      string  true  "Session ID"
// @Success      200  {object}  api.MedicalRecordResponse "Extracted medical record"
// @Failure      404  {object}  api.ErrorResponse         "Session not found"
// @Router       /session/{id}/medical-record [get]
func GetMedicalRecordHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}
	session, found := sessionFromRequest(w, r)
	if !found {
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToMedicalRecordResponse(session))
}

// PostMessageHandler godoc
// @Summary      Send a chat message
// @Description  Runs the message through triage, retrieval and generation synchronously and returns the answer with source citations.
// @Tags         Messaging
// @Accept       json
// @Produce      json
// @Param        id       path      string           true  "Session ID"
// @Param        request  body      api.ChatRequest  true  "User message"
// @Success      200  {object}  api.ChatResponse   "Assistant response"
// @Failure      400  {object}  api.ErrorResponse  "Empty message"
// @Failure      404  {object}  api.ErrorResponse  "Session not found"
// @Failure      500  {object}  api.ErrorResponse  "Generation failure (retryable)"
// @Router       /session/{id}/message [post]
func PostMessageHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid Context by request ", r.RemoteAddr)
		return
	}

	session, found := sessionFromRequest(w, r)
	if !found {
		return
	}

	var requestData api.ChatRequest
	defer func(Body io.ReadCloser) {
		err := Body.Close()
		if err != nil {
			logRH.Error("Couldn't close the message handler reader :", err)
		}
	}(r.Body)
	if err := json.NewDecoder(r.Body).Decode(&requestData); err != nil || requestData.Message == "" {
		logRH.Warn("Bad Chat Request: ", "error:", err)
		WriteErrorResponse(w, http.StatusBadRequest, session.Id, "Bad Request")
		return
	}

	history := handlerInstance.recentHistory(r.Context(), session.Id)
	input := chatConfigForSession(session, requestData.Message, history)

	output, err := handlerInstance.ragService.Chat(r.Context(), input)
	if err != nil {
		logRH.Error("Chat failed", "sessionId", session.Id, "err", err)
		WriteErrorResponse(w, http.StatusInternalServerError, session.Id, "generation failed, please retry")
		return
	}

	messageId := utils.GetNewUUID()
	handlerInstance.saveExchange(r.Context(), session.Id, messageId, requestData.Message, output)

	writeJsonResponse(w, http.StatusOK, adapter.ToChatResponse(session.Id, messageId, output))
}

// PostDietPlanHandler godoc
// @Summary      Generate a diet plan
// @Description  Generates a day-wise diet plan for the requested duration. Out-of-range durations return fixed guidance, not an error.
// @Tags         Messaging
// @Accept       json
// @Produce      json
// @Param        id       path      string               true  "Session ID"
// @Param        request  body      api.DietPlanRequest  true  "Plan duration in days"
// @Success      200  {object}  api.ChatResponse   "Generated plan or guidance"
// @Failure      404  {object}  api.ErrorResponse  "Session not found"
// @Failure      500  {object}  api.ErrorResponse  "Generation failure (retryable)"
// @Router       /session/{id}/diet-plan [post]
func PostDietPlanHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}

	session, found := sessionFromRequest(w, r)
	if !found {
		return
	}

	var requestData api.DietPlanRequest
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(&requestData); err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, session.Id, "Bad Request")
		return
	}

	history := handlerInstance.recentHistory(r.Context(), session.Id)
	input := chatConfigForSession(session, fmt.Sprintf("diet plan for %d days", requestData.Days), history)

	output, err := handlerInstance.ragService.GenerateDietPlan(r.Context(), input, requestData.Days)
	if err != nil {
		logRH.Error("Diet plan generation failed", "sessionId", session.Id, "err", err)
		WriteErrorResponse(w, http.StatusInternalServerError, session.Id, "generation failed, please retry")
		return
	}

	messageId := utils.GetNewUUID()
	handlerInstance.saveExchange(r.Context(), session.Id, messageId, input.Message, output)

	writeJsonResponse(w, http.StatusOK, adapter.ToChatResponse(session.Id, messageId, output))
}

// PostLogoutHandler godoc
// @Summary      End a session
// @Description  Removes the session's index partition, conversation history and state. Idempotent.
// @Tags         Session
// @Produce      json
// @Param        id   path      string  true  "Session ID"
// @Success      200  {object}  map[string]string  "Session removed"
// @Failure      500  {object}  api.ErrorResponse  "Teardown error"
// @Router       /session/{id}/logout [post]
func PostLogoutHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}

	id := utils.GetChiURLParam(r, "id")
	if err := handlerInstance.service.Sessions.Logout(r.Context(), id); err != nil {
		WriteErrorResponse(w, http.StatusInternalServerError, id, "could not tear down session")
		return
	}
	writeJsonResponse(w, http.StatusOK, map[string]string{"session_id": id, "status": "logged_out"})
}

// stageUploads copies each accepted multipart file into the temp intake
// directory; unsupported extensions are rejected here, before a job exists.
func stageUploads(uploads []*multipartFile) ([]jobModel.FileRef, string) {
	if len(uploads) == 0 {
		return nil, ""
	}

	targetDir, errString := getTargetDirectory()
	if errString != "" {
		logRH.Error("Couldn't get target directory :", "err", errString)
		return nil, errString
	}

	var files []jobModel.FileRef
	for _, upload := range uploads {
		if !supportedUpload(upload.header.Filename) {
			logRH.Warn("Rejected unsupported upload", "file", upload.header.Filename)
			continue
		}

		fileReader, err := upload.header.Open()
		if err != nil {
			return nil, "Could not retrieve file"
		}

		filename := fmt.Sprintf("%d-%s", time.Now().UnixNano(), upload.header.Filename)
		tempFilePath := filepath.Join(targetDir, filename)
		destinationFileWriter, err := os.Create(tempFilePath)
		if err != nil {
			fileReader.Close()
			return nil, "Storage error"
		}

		if _, err := io.Copy(destinationFileWriter, fileReader); err != nil {
			fileReader.Close()
			destinationFileWriter.Close()
			return nil, "Write error"
		}
		fileReader.Close()
		destinationFileWriter.Close()

		files = append(files, jobModel.FileRef{Name: upload.header.Filename, Path: tempFilePath})
	}
	return files, ""
}
