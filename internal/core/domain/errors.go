package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown provider or backend type.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrDirectoryNotFound indicates the document directory does not exist.
	// The index is left untouched.
	ErrDirectoryNotFound = errors.New("directory not found")

	// ErrStoreUnavailable indicates the vector store could not be reached
	// or initialised. Fatal for the current operation.
	ErrStoreUnavailable = errors.New("vector store unavailable")

	// ErrGenerationFailed indicates the language model call failed.
	// Fatal for the current operation; never retried.
	ErrGenerationFailed = errors.New("generation failed")

	// ErrEmbeddingMismatch indicates a collection was created with a
	// different embedding model than the one in use.
	ErrEmbeddingMismatch = errors.New("embedding model mismatch")

	// ErrIngestInProgress indicates an ingest run is already active.
	ErrIngestInProgress = errors.New("ingest in progress")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrEmbeddingUnavailable indicates the embedding service is not configured.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrRateLimited indicates a provider rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")
)

// ExtractionWarning records a page that could not be extracted.
// It is non-fatal: the page is skipped and ingestion continues.
type ExtractionWarning struct {
	// File is the document's base name.
	File string

	// Page is the zero-based page index, or -1 when the whole file failed.
	Page int

	// Err is the underlying extraction failure.
	Err error
}

// Error implements error.
func (w *ExtractionWarning) Error() string {
	if w.Page < 0 {
		return fmt.Sprintf("extraction warning: %s: %v", w.File, w.Err)
	}
	return fmt.Sprintf("extraction warning: %s page %d: %v", w.File, w.Page, w.Err)
}

// Unwrap returns the underlying error.
func (w *ExtractionWarning) Unwrap() error {
	return w.Err
}
