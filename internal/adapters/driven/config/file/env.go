package file

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
)

// LoadEnv reads KEY=VALUE files into the process environment. Variables
// already set win, and missing files are skipped. With no arguments it
// reads ./.env.
func LoadEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}
