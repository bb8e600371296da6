package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChunkID(t *testing.T) {
	assert.Equal(t, "a.pdf_0", ChunkID("a.pdf", 0))
	assert.Equal(t, "resume final.pdf_12", ChunkID("resume final.pdf", 12))
}

func TestChunk_Entry(t *testing.T) {
	c := Chunk{ID: "a.pdf_3", Text: "hello", Filename: "a.pdf", Page: 1, Sequence: 3}

	entry := c.Entry()

	assert.Equal(t, "a.pdf_3", entry.ID)
	assert.Equal(t, "hello", entry.Text)
	assert.Equal(t, EntryMetadata{Filename: "a.pdf", Page: 1}, entry.Metadata)
}

func TestResult_WithMeta(t *testing.T) {
	r := NewResult(ModeGeneral, "hi")
	assert.Nil(t, r.Metadata)

	r = r.WithMeta("top_k", 3).WithMeta("matches", 1)
	assert.Equal(t, ModeGeneral, r.Mode)
	assert.Equal(t, "hi", r.Text)
	assert.Equal(t, map[string]any{"top_k": 3, "matches": 1}, r.Metadata)
}

func TestIngestReport(t *testing.T) {
	var r IngestReport
	assert.Zero(t, r.Duration())

	r.AddWarning(&ExtractionWarning{File: "a.pdf", Page: 0})
	assert.Len(t, r.Warnings, 1)
}
