package filesystem

import (
	"os"
	"path/filepath"
	"strings"
)

// ResolvePath turns user input into a local path. It strips a file://
// prefix and expands a leading "~/" to the home directory. Other input
// passes through unchanged.
func ResolvePath(uri string) string {
	p := strings.TrimPrefix(uri, "file://")
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}
