package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/zainraz03/agentic-assistant/internal/core/domain"
	"github.com/zainraz03/agentic-assistant/internal/core/ports/driven"
	"github.com/zainraz03/agentic-assistant/internal/core/ports/driving"
	"github.com/zainraz03/agentic-assistant/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.Ingestor = (*IngestService)(nil)

// IngestService loads a directory of documents into a vector index. Only
// one ingest runs at a time per service.
type IngestService struct {
	index      driven.VectorIndex
	chunker    driven.Chunker
	extractors map[string]driven.PageExtractor

	running sync.Mutex
	now     func() time.Time
	log     logger.Logger
}

// NewIngestService creates an ingest service. Each extractor claims the
// file extensions it reports.
func NewIngestService(
	index driven.VectorIndex,
	chunker driven.Chunker,
	extractors ...driven.PageExtractor,
) *IngestService {
	byExt := make(map[string]driven.PageExtractor)
	for _, e := range extractors {
		for _, ext := range e.Extensions() {
			byExt[strings.ToLower(ext)] = e
		}
	}
	return &IngestService{
		index:      index,
		chunker:    chunker,
		extractors: byExt,
		now:        time.Now,
		log:        logger.With("ingest"),
	}
}

// Ingest extracts, chunks and upserts every supported file directly inside
// dir, in name order. A missing directory fails before the index is touched.
// Files that cannot be read at all are reported as warnings, like failed
// pages, and the run continues. An index failure aborts the run.
func (s *IngestService) Ingest(ctx context.Context, dir string) (*domain.IngestReport, error) {
	if !s.running.TryLock() {
		return nil, domain.ErrIngestInProgress
	}
	defer s.running.Unlock()

	logger.Section("Ingest")

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", domain.ErrDirectoryNotFound, dir)
	}

	files, err := s.listFiles(dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}

	report := &domain.IngestReport{
		ID:        uuid.NewString(),
		Directory: dir,
		StartedAt: s.now(),
	}
	s.log.Info("run %s: %d file(s) in %s", report.ID, len(files), dir)

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if err := s.ingestFile(ctx, path, report); err != nil {
			return report, err
		}
	}

	report.CompletedAt = s.now()
	s.log.Info("run %s: %d file(s), %d page(s), %d chunk(s), %d warning(s) in %s",
		report.ID, report.Files, report.Pages, report.Chunks, len(report.Warnings), report.Duration())
	return report, nil
}

func (s *IngestService) ingestFile(ctx context.Context, path string, report *domain.IngestReport) error {
	name := filepath.Base(path)
	extractor := s.extractors[strings.ToLower(filepath.Ext(name))]

	pages, warnings, err := extractor.Extract(ctx, path)
	for _, w := range warnings {
		s.log.Warn("%v", w)
		report.AddWarning(w)
	}
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		w := &domain.ExtractionWarning{File: name, Page: -1, Err: err}
		s.log.Warn("%v", w)
		report.AddWarning(w)
		return nil
	}

	report.Files++
	report.Pages += len(pages)

	chunks := s.chunker.Process(&domain.Document{Name: name, Path: path, Pages: pages})
	if len(chunks) == 0 {
		s.log.Debug("%s: no text", name)
		return nil
	}

	entries := make([]domain.IndexEntry, len(chunks))
	for i, c := range chunks {
		entries[i] = c.Entry()
	}
	if err := s.index.Upsert(ctx, entries); err != nil {
		if !errors.Is(err, domain.ErrStoreUnavailable) {
			err = fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
		}
		return fmt.Errorf("upsert %s: %w", name, err)
	}
	report.Chunks += len(entries)
	s.log.Debug("%s: %d page(s), %d chunk(s)", name, len(pages), len(entries))
	return nil
}

// listFiles returns supported regular files in dir, sorted by name.
// Extensions match case-insensitively.
func (s *IngestService) listFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if _, ok := s.extractors[strings.ToLower(filepath.Ext(e.Name()))]; !ok {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}
