package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/zainraz03/agentic-assistant/internal/core/domain"
	"github.com/zainraz03/agentic-assistant/internal/core/ports/driven"
)

// Ensure Watcher implements the interface.
var _ driven.DirectoryWatcher = (*Watcher)(nil)

// Watcher reports file changes in a single directory using fsnotify.
// Subdirectories are not watched.
type Watcher struct {
	buffer int
}

// NewWatcher creates a watcher.
func NewWatcher() *Watcher {
	return &Watcher{buffer: 16}
}

// Watch starts watching dir. The returned channel carries the path of each
// relevant change and is closed when ctx ends.
func (w *Watcher) Watch(ctx context.Context, dir string) (<-chan string, error) {
	dir = ResolvePath(dir)
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", domain.ErrDirectoryNotFound, dir)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	out := make(chan string, w.buffer)
	go func() {
		defer close(out)
		defer fw.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-fw.Events:
				if !ok {
					return
				}
				path, relevant := relevantEvent(ev)
				if !relevant {
					continue
				}
				select {
				case out <- path:
				case <-ctx.Done():
					return
				}
			case err, ok := <-fw.Errors:
				if !ok {
					return
				}
				log.Warn("watch %s: %v", dir, err)
			}
		}
	}()
	return out, nil
}

// relevantEvent filters out chmod-only events, directories and hidden files.
func relevantEvent(ev fsnotify.Event) (string, bool) {
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) &&
		!ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return "", false
	}
	if strings.HasPrefix(filepath.Base(ev.Name), ".") {
		return "", false
	}
	if ev.Has(fsnotify.Create) || ev.Has(fsnotify.Write) {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			return "", false
		}
	}
	return ev.Name, true
}
