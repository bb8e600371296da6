package driven

import (
	"context"

	"github.com/zainraz03/agentic-assistant/internal/core/domain"
)

// PageExtractor pulls plain text out of a document file one page at a time.
type PageExtractor interface {
	// Extensions returns the lower-case file extensions handled, e.g. ".pdf".
	Extensions() []string

	// Extract returns the pages that could be read, in order, along with a
	// warning for each page that could not. A non-nil error means the file
	// could not be opened at all.
	Extract(ctx context.Context, path string) ([]domain.Page, []*domain.ExtractionWarning, error)
}
