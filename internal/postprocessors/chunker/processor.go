// Package chunker provides a fixed-size, overlap-free text chunker.
package chunker

import (
	"github.com/zainraz03/agentic-assistant/internal/core/domain"
	"github.com/zainraz03/agentic-assistant/internal/core/ports/driven"
)

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = domain.DefaultChunkSize

// Verify interface compliance.
var _ driven.Chunker = (*Processor)(nil)

// Processor splits page text into consecutive windows of chunkSize
// characters. Windows never overlap and ignore word boundaries.
type Processor struct {
	chunkSize int
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithChunkSize sets the chunk size in characters.
// Non-positive sizes are ignored.
func WithChunkSize(size int) Option {
	return func(p *Processor) {
		if size > 0 {
			p.chunkSize = size
		}
	}
}

// New creates a new chunker processor with the given options.
func New(opts ...Option) *Processor {
	p := &Processor{chunkSize: DefaultChunkSize}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "fixed-window"
}

// ChunkSize returns the configured window length.
func (p *Processor) ChunkSize() int {
	return p.chunkSize
}

// Split cuts text into windows of the configured size.
func (p *Processor) Split(text string) []string {
	return Chunk(text, p.chunkSize)
}

// Process chunks every page of doc in page order. IDs take the form
// {filename}_{sequence} with the sequence counted across pages.
func (p *Processor) Process(doc *domain.Document) []domain.Chunk {
	if doc == nil {
		return nil
	}

	var chunks []domain.Chunk
	seq := 0
	for _, page := range doc.Pages {
		for _, text := range p.Split(page.Text) {
			chunks = append(chunks, domain.Chunk{
				ID:       domain.ChunkID(doc.Name, seq),
				Text:     text,
				Filename: doc.Name,
				Page:     page.Index,
				Sequence: seq,
			})
			seq++
		}
	}
	return chunks
}

// Chunk splits text into consecutive substrings of maxLen characters; the
// last may be shorter. Length is counted in runes so multi-byte text is
// never cut inside a character. Empty text yields no chunks and a
// non-positive maxLen falls back to DefaultChunkSize.
func Chunk(text string, maxLen int) []string {
	if text == "" {
		return []string{}
	}
	if maxLen <= 0 {
		maxLen = DefaultChunkSize
	}

	runes := []rune(text)
	chunks := make([]string, 0, len(runes)/maxLen+1)
	for start := 0; start < len(runes); start += maxLen {
		end := start + maxLen
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
	}
	return chunks
}
