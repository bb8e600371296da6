package driven

import (
	"context"

	"github.com/zainraz03/agentic-assistant/internal/core/domain"
)

// VectorIndex is a named collection of chunk entries searchable by text.
//
// Upsert semantics are overwrite-by-ID: writing an entry whose ID already
// exists replaces its text, metadata and embedding. Re-ingesting the same
// document therefore never duplicates entries.
type VectorIndex interface {
	// Upsert stores or overwrites entries by ID.
	// Returns an error wrapping domain.ErrStoreUnavailable when the
	// underlying persistence cannot be reached.
	Upsert(ctx context.Context, entries []domain.IndexEntry) error

	// Query returns up to topK entries ranked by similarity to text.
	// An empty index yields an empty slice, never an error.
	Query(ctx context.Context, text string, topK int) ([]domain.Match, error)

	// Count returns the number of stored entries.
	Count(ctx context.Context) (int, error)

	// Name returns the collection name.
	Name() string

	// Close releases resources.
	Close() error
}
