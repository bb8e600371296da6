package driven

import "github.com/zainraz03/agentic-assistant/internal/core/domain"

// Chunker splits an extracted document into index-ready chunks.
type Chunker interface {
	// Name identifies the chunking strategy.
	Name() string

	// Process cuts every page of doc into chunks. Chunk sequence numbers
	// run across the whole document, starting at 0.
	Process(doc *domain.Document) []domain.Chunk
}
