package models

import (
	"time"
)

// RetrievalRequest is the input shape shared by the HTTP body, the stream
// payload and batch records.
type RetrievalRequest struct {
	Documents string   `json:"documents" jsonschema:"required,description=URL of the document to answer questions about"`
	Questions []string `json:"questions" jsonschema:"required,description=Ordered list of natural-language questions"`
}

// Document is the extracted text of one remote document. It is immutable
// once extracted and lives for exactly one request.
type Document struct {
	Source string `json:"source"`
	Title  string `json:"title"`
	Text   string `json:"-"`
	Length int    `json:"length"`
	Units  int    `json:"units"`
}

// Chunk is one ordered member of a document's segmentation. Offsets point
// into the document's raw text, EndOffset = StartOffset + len(Text).
type Chunk struct {
	Index       int               `json:"index"`
	Text        string            `json:"text"`
	StartOffset int               `json:"start_offset"`
	EndOffset   int               `json:"end_offset"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// ScoredChunk is a chunk scored against one question. Lexical scores are
// unbounded above, cosine scores stay within [-1, 1].
type ScoredChunk struct {
	Chunk
	Score float64 `json:"relevance_score"`
}

// Answer is the outcome for a single question. Immutable after creation.
type Answer struct {
	Question   string        `json:"question"`
	Text       string        `json:"answer"`
	Confidence float64       `json:"confidence"`
	Evidence   []ScoredChunk `json:"evidence"`
	Duration   time.Duration `json:"duration_ns"`
}

// DocumentMetadata is the document-level summary attached to a result.
type DocumentMetadata struct {
	Source string `json:"source"`
	Title  string `json:"title"`
	Length int    `json:"length"`
	Units  int    `json:"units"`
	Chunks int    `json:"chunks"`
}

// RetrievalResult aggregates all answers of one request. Answer order
// always matches the input question order.
type RetrievalResult struct {
	RequestID string           `json:"request_id"`
	Answers   []Answer         `json:"answers"`
	Document  DocumentMetadata `json:"document"`
	Duration  time.Duration    `json:"duration_ns"`
}
