package services

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/zainraz03/agentic-assistant/internal/core/domain"
	"github.com/zainraz03/agentic-assistant/internal/core/ports/driven"
	"github.com/zainraz03/agentic-assistant/internal/core/ports/driving"
	"github.com/zainraz03/agentic-assistant/internal/logger"
)

// DefaultDebounce is how long the watcher waits for changes to settle.
const DefaultDebounce = 2 * time.Second

// IngestWatcher re-ingests a directory when its documents change.
type IngestWatcher struct {
	ingestor   driving.Ingestor
	watcher    driven.DirectoryWatcher
	debounce   time.Duration
	extensions map[string]bool
	onIngest   func(*domain.IngestReport, error)
	log        logger.Logger
}

// NewIngestWatcher creates a watcher that reacts to files with the given
// extensions (".pdf" when none are given).
func NewIngestWatcher(
	ingestor driving.Ingestor,
	watcher driven.DirectoryWatcher,
	debounce time.Duration,
	extensions ...string,
) *IngestWatcher {
	if len(extensions) == 0 {
		extensions = []string{".pdf"}
	}
	exts := make(map[string]bool, len(extensions))
	for _, e := range extensions {
		exts[strings.ToLower(e)] = true
	}
	return &IngestWatcher{
		ingestor:   ingestor,
		watcher:    watcher,
		debounce:   orDefault(debounce, DefaultDebounce),
		extensions: exts,
		log:        logger.With("watch"),
	}
}

// OnIngest registers a callback run after every triggered ingest.
func (w *IngestWatcher) OnIngest(fn func(*domain.IngestReport, error)) {
	w.onIngest = fn
}

// Run blocks until ctx ends, re-ingesting dir once changes have been quiet
// for the debounce period.
func (w *IngestWatcher) Run(ctx context.Context, dir string) error {
	events, err := w.watcher.Watch(ctx, dir)
	if err != nil {
		return err
	}
	w.log.Info("watching %s", dir)

	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case path, ok := <-events:
			if !ok {
				return nil
			}
			if !w.extensions[strings.ToLower(filepath.Ext(path))] {
				continue
			}
			w.log.Debug("change: %s", path)
			fire = time.After(w.debounce)

		case <-fire:
			fire = nil
			report, err := w.ingestor.Ingest(ctx, dir)
			if errors.Is(err, domain.ErrIngestInProgress) {
				w.log.Debug("ingest already running, retrying after %s", w.debounce)
				fire = time.After(w.debounce)
				continue
			}
			if err != nil {
				w.log.Error("re-ingest %s: %v", dir, err)
			}
			if w.onIngest != nil {
				w.onIngest(report, err)
			}
		}
	}
}
