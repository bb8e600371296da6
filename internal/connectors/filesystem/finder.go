// Package filesystem provides local filesystem adapters: a file finder for
// exact-name lookups and an fsnotify-backed directory watcher.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/zainraz03/agentic-assistant/internal/core/domain"
	"github.com/zainraz03/agentic-assistant/internal/core/ports/driven"
	"github.com/zainraz03/agentic-assistant/internal/logger"
)

// Ensure Finder implements the interface.
var _ driven.FileFinder = (*Finder)(nil)

var log = logger.With("filesystem")

// errLimitReached stops the walk once enough matches are found.
var errLimitReached = errors.New("limit reached")

// Finder walks a directory tree looking for files by base name.
type Finder struct{}

// NewFinder creates a finder.
func NewFinder() *Finder {
	return &Finder{}
}

// Find returns up to limit paths under root whose base name equals name.
// Unreadable directories are skipped. A cancelled context returns the
// matches found so far along with ctx.Err().
func (f *Finder) Find(ctx context.Context, root, name string, limit int) ([]string, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.ContainsAny(name, `/\`) {
		return nil, fmt.Errorf("%w: file name %q", domain.ErrInvalidInput, name)
	}
	root = ResolvePath(root)
	if _, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrDirectoryNotFound, root)
	}

	matches := []string{}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			log.Debug("skipping %s: %v", path, err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || d.Name() != name {
			return nil
		}
		matches = append(matches, path)
		if limit > 0 && len(matches) >= limit {
			return errLimitReached
		}
		return nil
	})
	if err != nil && !errors.Is(err, errLimitReached) {
		return matches, err
	}
	return matches, nil
}
