package driven

import "context"

// FileFinder locates files by exact base name beneath a root directory.
type FileFinder interface {
	// Find returns matching paths, at most limit of them.
	// An empty result is not an error.
	Find(ctx context.Context, root, name string, limit int) ([]string, error)
}

// DirectoryWatcher reports changes to files inside a directory.
type DirectoryWatcher interface {
	// Watch streams the paths of created, written, renamed or removed files
	// until ctx is cancelled. The channel is closed when watching stops.
	Watch(ctx context.Context, dir string) (<-chan string, error)
}
