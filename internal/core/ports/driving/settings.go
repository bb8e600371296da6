package driving

import "github.com/zainraz03/agentic-assistant/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get returns the effective settings: defaults, then the config file,
	// then environment overrides.
	Get() (*domain.AppSettings, error)

	// Set validates and persists a single dotted key.
	Set(key, value string) error

	// Value returns the effective value of a dotted key.
	Value(key string) (string, error)

	// Keys lists the keys Set accepts.
	Keys() []string

	// Validate checks the current settings for consistency.
	Validate() error

	// ValidateLLMConfig pings the configured LLM provider.
	ValidateLLMConfig() error

	// ValidateEmbeddingConfig pings the configured embedding provider.
	ValidateEmbeddingConfig() error
}
