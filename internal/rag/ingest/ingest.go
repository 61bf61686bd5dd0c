package ingest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/akolanti/DietRAG/internal/config"
	"github.com/akolanti/DietRAG/internal/domain/commonModels"
	"github.com/akolanti/DietRAG/internal/domain/jobModel"
	"github.com/akolanti/DietRAG/internal/rag/embedding"
	"github.com/akolanti/DietRAG/internal/rag/medical"
	"github.com/akolanti/DietRAG/internal/rag/vectorDB"
	"github.com/akolanti/DietRAG/pkg/logger_i"
)

type rawSection struct {
	Number  int    `json:"number"`
	Content string `json:"content"`
}

var logger *logger_i.Logger

func init() {
	logger = logger_i.NewLogger("Document Ingestion")
}

// ProcessSessionIngestion drains one ingest job into the session's private
// partition and runs the medical extractor over the same text. Per-file
// extraction failures are skipped and reported on the job; an embedding or
// index failure fails the job.
func ProcessSessionIngestion(ctx context.Context, job jobModel.Job, e embedding.Embedder, index vectorDB.Index) (jobModel.Job, medical.Record) {
	log := logger.With("traceId", job.TraceId, "sessionId", job.SessionId)

	partition := config.SessionPartitionPref + job.SessionId
	origin := commonModels.SessionOrigin(job.SessionId)

	if err := index.EnsurePartition(ctx, partition); err != nil {
		log.Error("Error creating session partition", "error", err)
		return failJob(job, "could not create session partition"), medical.Record{}
	}

	var texts []string

	for _, file := range job.Files {
		job.CurrentStep = jobModel.IngestExtracting

		docType := getDocType(file.Path)
		if docType == commonModels.ERR {
			log.Error("Unsupported document type", "file", file.Name)
			job.FailedFiles = append(job.FailedFiles, file.Name)
			continue
		}

		sections, err := extractText(file.Path, docType)
		if err != nil {
			// Unreadable document: skip it, keep the rest of the batch.
			log.Error("Error extracting document", "file", file.Name, "error", err)
			job.FailedFiles = append(job.FailedFiles, file.Name)
			continue
		}

		text := joinSections(sections)
		texts = append(texts, text)

		doc := commonModels.Document{
			Id:          DocumentId(origin, file.Name),
			Name:        file.Name,
			Origin:      origin,
			ContentType: docType,
			IngestedAt:  time.Now(),
		}

		job.CurrentStep = jobModel.IngestChunking
		chunks := PrepareChunks(text, doc, config.ChunkSize, config.ChunkOverlap)
		log.Debug("Prepared document", "file", file.Name, "chunks", len(chunks))

		job.CurrentStep = jobModel.IngestEmbedding
		if err := BatchIngest(ctx, partition, chunks, index, e); err != nil {
			log.Error("Error ingesting document", "file", file.Name, "error", err)
			return failJob(job, "embedding or indexing failed: "+err.Error()), medical.Record{}
		}

		removeStagedFile(file.Path, log)
	}

	job.CurrentStep = jobModel.MedicalParsing
	record := medical.ParseDocuments(texts)

	job.CurrentStep = jobModel.Complete
	job.Status = jobModel.JobStatusComplete
	return job, record
}

// BuildKnowledgeBase rebuilds the global partition from a directory of
// reference documents. It clears the partition first so reruns on the same
// inputs give identical query results - no partial overlap across builds.
// Returns the files that could not be extracted; those are skipped.
func BuildKnowledgeBase(ctx context.Context, dir string, index vectorDB.Index, e embedding.Embedder) ([]string, error) {
	log := logger_i.NewLogger("KB Build")

	if err := index.RemovePartition(ctx, config.GlobalPartition); err != nil {
		return nil, err
	}
	if err := index.EnsurePartition(ctx, config.GlobalPartition); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var failed []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		docType := getDocType(path)
		if docType == commonModels.ERR {
			continue
		}

		sections, err := extractText(path, docType)
		if err != nil {
			if errors.Is(err, ErrExtraction) {
				log.Error("Skipping unreadable document", "file", entry.Name(), "error", err)
				failed = append(failed, entry.Name())
				continue
			}
			return failed, err
		}

		doc := commonModels.Document{
			Id:          DocumentId(commonModels.OriginGlobal, entry.Name()),
			Name:        strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name())),
			Origin:      commonModels.OriginGlobal,
			ContentType: docType,
			IngestedAt:  time.Now(),
		}

		chunks := PrepareChunks(joinSections(sections), doc, config.ChunkSize, config.ChunkOverlap)
		log.Info("Ingesting reference document", "file", entry.Name(), "chunks", len(chunks))

		if err := BatchIngest(ctx, config.GlobalPartition, chunks, index, e); err != nil {
			return failed, err
		}
	}

	return failed, nil
}

func failJob(job jobModel.Job, reason string) jobModel.Job {
	job.Status = jobModel.JobStatusError
	job.CurrentStep = jobModel.Error
	job.Error.Message = reason
	return job
}

func removeStagedFile(path string, log *logger_i.Logger) {
	if err := os.Remove(path); err != nil {
		log.Error("Error removing staged file", "path", path, "error", err)
	}
}
