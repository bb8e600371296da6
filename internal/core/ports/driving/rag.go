package driving

import (
	"context"

	"github.com/zainraz03/agentic-assistant/internal/core/domain"
)

// Ingestor loads a directory of documents into the vector index.
type Ingestor interface {
	// Ingest extracts, chunks and upserts every supported file in dir.
	// Returns domain.ErrDirectoryNotFound without touching the index when
	// dir does not exist. Per-page failures are reported as warnings.
	Ingest(ctx context.Context, dir string) (*domain.IngestReport, error)
}

// Retriever runs similarity queries against the vector index.
type Retriever interface {
	// Retrieve returns up to topK ranked matches. Nothing found is an
	// empty slice, not an error.
	Retrieve(ctx context.Context, query string, topK int) ([]domain.Match, error)
}

// Summarizer turns retrieved chunks into an answer for a query.
type Summarizer interface {
	// Summarize returns the model's answer, or a fixed no-results message
	// without calling the model when chunks is empty.
	Summarize(ctx context.Context, chunks []string, query string) (string, error)
}
