package driven

import "time"

// ConfigStore provides access to application configuration.
// Keys are dot-separated paths such as "llm.provider".
type ConfigStore interface {
	// Get retrieves a raw configuration value by key.
	Get(key string) (any, bool)

	// GetString returns the value as a string, or "" if absent.
	GetString(key string) string

	// GetInt returns the value as an int, or 0 if absent or not numeric.
	GetInt(key string) int

	// GetFloat returns the value as a float64, or 0 if absent or not numeric.
	GetFloat(key string) float64

	// GetBool returns the value as a bool, or false if absent.
	GetBool(key string) bool

	// GetDuration parses a value such as "30s", or returns 0.
	GetDuration(key string) time.Duration

	// Keys returns every stored key in sorted order.
	Keys() []string

	// Set stores a configuration value and persists it.
	Set(key string, value any) error

	// Save persists the current configuration to storage.
	Save() error

	// Load reads configuration from storage.
	Load() error

	// Path returns the configuration file path.
	Path() string
}
