package ingest

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/akolanti/DietRAG/internal/domain/commonModels"
	"github.com/akolanti/DietRAG/internal/rag/embedding"
	"github.com/akolanti/DietRAG/internal/rag/vectorDB"
	"github.com/akolanti/DietRAG/pkg/logger_i"
	"github.com/google/uuid"
)

//splitter

type chunkSpan struct {
	Text  string
	Start int
	End   int
}

// splitTextIntoChunks walks a fixed rune window over the text, stepping by
// limit-overlap so consecutive chunks share the configured overlap. Purely
// positional, so the same input and config always yield the same boundaries -
// chunk ids depend on that.
func splitTextIntoChunks(text string, limit int, overlap int) []chunkSpan {
	runes := []rune(text)

	if len(runes) <= limit {
		return []chunkSpan{{Text: text, Start: 0, End: len(runes)}}
	}

	step := limit - overlap
	if step <= 0 {
		step = limit
	}

	var spans []chunkSpan
	for start := 0; start < len(runes); start += step {
		end := start + limit
		if end >= len(runes) {
			spans = append(spans, chunkSpan{Text: string(runes[start:]), Start: start, End: len(runes)})
			break
		}
		spans = append(spans, chunkSpan{Text: string(runes[start:end]), Start: start, End: end})
	}

	return spans
}

func getDocType(docPath string) commonModels.DocType {
	ext := strings.ToLower(filepath.Ext(docPath))
	switch ext {
	case ".pdf":
		return commonModels.PDF
	case ".docx", ".txt", ".rtf", ".odt":
		return commonModels.DOCX
	default:
		return commonModels.ERR
	}
}

func extractText(path string, contentType commonModels.DocType) ([]rawSection, error) {
	switch contentType {
	case commonModels.PDF:
		return extractPDF(path)
	case commonModels.DOCX:
		return extractDocxTxtRtf(path)

	default:
		return nil, fmt.Errorf("%w: unsupported content type %s", ErrExtraction, contentType)
	}
}

func joinSections(sections []rawSection) string {
	parts := make([]string, 0, len(sections))
	for _, s := range sections {
		if s.Content != "" {
			parts = append(parts, s.Content)
		}
	}
	return strings.Join(parts, "\n")
}

// DocumentId derives a stable id from origin + name so re-ingesting the same
// source supersedes rather than duplicates it.
func DocumentId(origin commonModels.DocOrigin, name string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(string(origin)+"/"+name)).String()
}

func chunkId(docId string, order int) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("%s#%d", docId, order))).String()
}

// PrepareChunks splits a document's text and maps the spans onto DocChunks
// with deterministic ids.
func PrepareChunks(text string, doc commonModels.Document, limit, overlap int) []commonModels.DocChunk {
	spans := splitTextIntoChunks(text, limit, overlap)

	chunks := make([]commonModels.DocChunk, 0, len(spans))
	for i, span := range spans {
		if strings.TrimSpace(span.Text) == "" {
			continue
		}
		chunks = append(chunks, commonModels.DocChunk{
			Doc:         doc,
			ChunkId:     chunkId(doc.Id, i),
			Text:        span.Text,
			StartOffset: span.Start,
			EndOffset:   span.End,
			Order:       i,
		})
	}
	return chunks
}

const batchSize = 100
const hugeDataSetThreshold = 1000000

// BatchIngest embeds chunks batch-wise and writes them into the partition.
// An embedding or index failure fails the whole ingestion unit - partial
// writes are acceptable because the partition is rebuilt or torn down, never
// read in a half-ingested state by the same caller.
func BatchIngest(ctx context.Context, partition string, chunks []commonModels.DocChunk, index vectorDB.Index, embedder embedding.Embedder) error {
	log := logger_i.NewLogger("Batch Ingestion")

	isHugeDataSet := len(chunks) > hugeDataSetThreshold
	if isHugeDataSet {
		log.Debug("Is a huge dataset")
	}

	for i := 0; i < len(chunks); i += batchSize {
		end := i + batchSize
		if end > len(chunks) {
			end = len(chunks)
		}

		currentBatch := chunks[i:end]

		texts := make([]string, 0, len(currentBatch))
		for _, c := range currentBatch {
			texts = append(texts, c.Text)
		}

		log.Debug("Starting embedding call", "partition", partition, "batch length", len(currentBatch))
		vectors, err := embedder.BatchEmbedding(ctx, texts, isHugeDataSet)
		if err != nil {
			return fmt.Errorf("embedding batch failed: %w", err)
		}

		err = index.Add(ctx, partition, currentBatch, vectors)
		if err != nil {
			return fmt.Errorf("indexing batch failed: %w", err)
		}
	}

	return nil
}
