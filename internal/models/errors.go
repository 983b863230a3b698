package models

import "errors"

// Error taxonomy of the retrieval pipeline. Document-level errors abort
// the whole request; generation errors degrade a single answer.
var (
	ErrDocumentFetch = errors.New("document fetch failed")
	ErrDocumentParse = errors.New("document parse failed")
	ErrEmptyDocument = errors.New("no text found in document")
	ErrIndexEmpty    = errors.New("embedding index requires at least one chunk")
	ErrGeneration    = errors.New("generation failed")
)
