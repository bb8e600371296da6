package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zainraz03/agentic-assistant/internal/adapters/driven/embedding/lexical"
	"github.com/zainraz03/agentic-assistant/internal/adapters/driven/storage/memory"
	"github.com/zainraz03/agentic-assistant/internal/core/domain"
	"github.com/zainraz03/agentic-assistant/internal/postprocessors/chunker"
)

// touch creates empty files in dir. The fake extractor supplies content.
func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, n := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), nil, 0644))
	}
}

func TestIngestService_Ingest_ChunksPagesWithDocumentWideSequence(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.pdf")

	index := &recordingIndex{}
	extractor := &fakeExtractor{pages: map[string][]domain.Page{
		"a.pdf": {
			{Index: 0, Text: strings.Repeat("x", 2500)},
			{Index: 1, Text: strings.Repeat("y", 500)},
		},
	}}
	svc := NewIngestService(index, chunker.New(), extractor)

	report, err := svc.Ingest(context.Background(), dir)
	require.NoError(t, err)

	require.Len(t, index.upserts, 1)
	entries := index.upserts[0]
	require.Len(t, entries, 4)

	wantIDs := []string{"a.pdf_0", "a.pdf_1", "a.pdf_2", "a.pdf_3"}
	wantLens := []int{1000, 1000, 500, 500}
	wantPages := []int{0, 0, 0, 1}
	for i, e := range entries {
		assert.Equal(t, wantIDs[i], e.ID)
		assert.Len(t, e.Text, wantLens[i])
		assert.Equal(t, "a.pdf", e.Metadata.Filename)
		assert.Equal(t, wantPages[i], e.Metadata.Page)
	}

	assert.NotEmpty(t, report.ID)
	assert.Equal(t, dir, report.Directory)
	assert.Equal(t, 1, report.Files)
	assert.Equal(t, 2, report.Pages)
	assert.Equal(t, 4, report.Chunks)
	assert.Empty(t, report.Warnings)
}

func TestIngestService_Ingest_MissingDirectory(t *testing.T) {
	index := &recordingIndex{}
	svc := NewIngestService(index, chunker.New(), &fakeExtractor{})

	report, err := svc.Ingest(context.Background(), filepath.Join(t.TempDir(), "nope"))

	require.ErrorIs(t, err, domain.ErrDirectoryNotFound)
	assert.Nil(t, report)
	assert.Zero(t, index.calls())
}

func TestIngestService_Ingest_FileIsNotADirectory(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.pdf")
	index := &recordingIndex{}
	svc := NewIngestService(index, chunker.New(), &fakeExtractor{})

	_, err := svc.Ingest(context.Background(), filepath.Join(dir, "a.pdf"))

	require.ErrorIs(t, err, domain.ErrDirectoryNotFound)
	assert.Zero(t, index.calls())
}

func TestIngestService_Ingest_PageWarningsAreNonFatal(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "b.pdf")

	index := &recordingIndex{}
	warn := &domain.ExtractionWarning{File: "b.pdf", Page: 1, Err: errors.New("bad glyphs")}
	extractor := &fakeExtractor{
		pages: map[string][]domain.Page{
			"b.pdf": {{Index: 0, Text: "first"}, {Index: 2, Text: "third"}},
		},
		warnings: map[string][]*domain.ExtractionWarning{"b.pdf": {warn}},
	}
	svc := NewIngestService(index, chunker.New(), extractor)

	report, err := svc.Ingest(context.Background(), dir)
	require.NoError(t, err)

	require.Len(t, report.Warnings, 1)
	assert.Equal(t, 1, report.Warnings[0].Page)
	require.Len(t, index.upserts, 1)
	entries := index.upserts[0]
	require.Len(t, entries, 2)
	assert.Equal(t, "b.pdf_0", entries[0].ID)
	assert.Equal(t, "b.pdf_1", entries[1].ID)
	assert.Equal(t, 2, entries[1].Metadata.Page)
}

func TestIngestService_Ingest_UnreadableFileBecomesWarning(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "bad.pdf", "good.pdf")

	index := &recordingIndex{}
	extractor := &fakeExtractor{
		pages: map[string][]domain.Page{"good.pdf": {{Index: 0, Text: "fine"}}},
		fail:  map[string]error{"bad.pdf": errors.New("encrypted")},
	}
	svc := NewIngestService(index, chunker.New(), extractor)

	report, err := svc.Ingest(context.Background(), dir)
	require.NoError(t, err)

	require.Len(t, report.Warnings, 1)
	assert.Equal(t, "bad.pdf", report.Warnings[0].File)
	assert.Equal(t, -1, report.Warnings[0].Page)
	assert.Equal(t, 1, report.Files)
	require.Len(t, index.upserts, 1)
	assert.Equal(t, "good.pdf_0", index.upserts[0][0].ID)
}

func TestIngestService_Ingest_SelectsFilesByExtension(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "notes.txt", "SCAN.PDF", "c.pdf")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.pdf"), 0755))

	index := &recordingIndex{}
	extractor := &fakeExtractor{pages: map[string][]domain.Page{
		"SCAN.PDF": {{Index: 0, Text: "upper"}},
		"c.pdf":    {{Index: 0, Text: "lower"}},
	}}
	svc := NewIngestService(index, chunker.New(), extractor)

	report, err := svc.Ingest(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Files)
	require.Len(t, index.upserts, 2)
	// Sorted by path: upper case sorts first.
	assert.Equal(t, "SCAN.PDF_0", index.upserts[0][0].ID)
	assert.Equal(t, "c.pdf_0", index.upserts[1][0].ID)
}

func TestIngestService_Ingest_EmptyPagesUpsertNothing(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "blank.pdf")

	index := &recordingIndex{}
	extractor := &fakeExtractor{pages: map[string][]domain.Page{"blank.pdf": {{Index: 0, Text: ""}}}}
	svc := NewIngestService(index, chunker.New(), extractor)

	report, err := svc.Ingest(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Files)
	assert.Zero(t, report.Chunks)
	assert.Empty(t, index.upserts)
}

func TestIngestService_Ingest_UpsertFailureAborts(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.pdf", "b.pdf")

	index := &recordingIndex{upsertErr: errors.New("disk full")}
	extractor := &fakeExtractor{pages: map[string][]domain.Page{
		"a.pdf": {{Index: 0, Text: "one"}},
		"b.pdf": {{Index: 0, Text: "two"}},
	}}
	svc := NewIngestService(index, chunker.New(), extractor)

	report, err := svc.Ingest(context.Background(), dir)

	require.ErrorIs(t, err, domain.ErrStoreUnavailable)
	assert.Contains(t, err.Error(), "disk full")
	require.NotNil(t, report)
	assert.Len(t, index.upserts, 1)
}

func TestIngestService_Ingest_RefusesConcurrentRun(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.pdf")

	extractor := &fakeExtractor{
		pages:   map[string][]domain.Page{"a.pdf": {{Index: 0, Text: "text"}}},
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	svc := NewIngestService(&recordingIndex{}, chunker.New(), extractor)

	done := make(chan error, 1)
	go func() {
		_, err := svc.Ingest(context.Background(), dir)
		done <- err
	}()

	select {
	case <-extractor.started:
	case <-time.After(2 * time.Second):
		t.Fatal("first ingest never started")
	}

	_, err := svc.Ingest(context.Background(), dir)
	assert.ErrorIs(t, err, domain.ErrIngestInProgress)

	close(extractor.release)
	require.NoError(t, <-done)
}

func TestIngestService_Ingest_ReingestOverwrites(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.pdf")

	index := memory.NewVectorIndex("pdf_chunks", lexical.NewEmbeddingService(domain.DefaultLexicalDimensions))
	extractor := &fakeExtractor{pages: map[string][]domain.Page{
		"a.pdf": {{Index: 0, Text: strings.Repeat("resume ", 300)}},
	}}
	svc := NewIngestService(index, chunker.New(), extractor)
	ctx := context.Background()

	_, err := svc.Ingest(ctx, dir)
	require.NoError(t, err)
	first, err := index.Count(ctx)
	require.NoError(t, err)

	_, err = svc.Ingest(ctx, dir)
	require.NoError(t, err)
	second, err := index.Count(ctx)
	require.NoError(t, err)

	assert.Equal(t, 3, first)
	assert.Equal(t, first, second)
}

func TestIngestService_Ingest_CancelledContext(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.pdf")

	index := &recordingIndex{}
	svc := NewIngestService(index, chunker.New(), &fakeExtractor{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Ingest(ctx, dir)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, index.upserts)
}
