package commonModels

import "time"

// DocOrigin tells which partition a document belongs to: the shared knowledge
// base or one session's private uploads.
type DocOrigin string

const (
	OriginGlobal DocOrigin = "global"

	sessionOriginPrefix = "session:"
)

func SessionOrigin(sessionId string) DocOrigin {
	return DocOrigin(sessionOriginPrefix + sessionId)
}

type Document struct {
	Id          string    `json:"source_doc_id"`
	Name        string    `json:"doc_name"`
	Origin      DocOrigin `json:"origin"`
	ContentType DocType   `json:"contentType"`
	IngestedAt  time.Time `json:"ingested_at"`
}

// DocChunk is one contiguous span of a document prepared for embedding.
// Immutable once created. Chunk ids are deterministic per document id + order
// so re-ingesting identical content yields identical ids.
type DocChunk struct {
	Doc         Document
	ChunkId     string `json:"chunk_id"`
	Text        string `json:"content"`
	StartOffset int    `json:"start_offset"`
	EndOffset   int    `json:"end_offset"`
	Order       int    `json:"chunk_order"`
}

type DocType string

var PDF DocType = "PDF"
var DOCX DocType = "DOCX"
var ERR DocType = "ERROR"

// RetrievedPassage is one ranked retrieval hit. Transient, never persisted.
type RetrievedPassage struct {
	Chunk  DocChunk
	Score  float32
	Source string //doc name the chunk came from
}
