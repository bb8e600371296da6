package domain

import "fmt"

// Document is a source file identified by its base name.
type Document struct {
	// Name is the file's base name, used in chunk identifiers.
	Name string

	// Path is the location on disk.
	Path string

	// Pages holds the extracted pages in order.
	Pages []Page
}

// Page is one page of extracted plain text.
type Page struct {
	// Index is the zero-based page number.
	Index int

	// Text is the extracted plain text.
	Text string
}

// Chunk is a contiguous window of a page's text.
type Chunk struct {
	// ID is {filename}_{sequence}.
	ID string

	// Text is the chunk content.
	Text string

	// Filename is the owning document's base name.
	Filename string

	// Page is the zero-based page the chunk was cut from.
	Page int

	// Sequence is the position within the document, starting at 0 and
	// running across page boundaries.
	Sequence int
}

// ChunkID builds the identifier for the n-th chunk of a document.
func ChunkID(filename string, sequence int) string {
	return fmt.Sprintf("%s_%d", filename, sequence)
}

// Entry converts the chunk into an index entry.
func (c Chunk) Entry() IndexEntry {
	return IndexEntry{
		ID:   c.ID,
		Text: c.Text,
		Metadata: EntryMetadata{
			Filename: c.Filename,
			Page:     c.Page,
		},
	}
}

// EntryMetadata is the provenance stored alongside every index entry.
type EntryMetadata struct {
	Filename string `json:"filename"`
	Page     int    `json:"page"`
}

// IndexEntry is a persisted chunk. Entries are overwritten by ID on
// re-ingestion and never mutated in place.
type IndexEntry struct {
	ID       string
	Text     string
	Metadata EntryMetadata
}

// Match is one ranked hit of a similarity query.
type Match struct {
	// ID is the index entry identifier.
	ID string `json:"id"`

	// Text is the chunk content.
	Text string `json:"text"`

	// Metadata is the entry provenance.
	Metadata EntryMetadata `json:"metadata"`

	// Score is the cosine similarity to the query; higher is better.
	Score float64 `json:"score"`
}
