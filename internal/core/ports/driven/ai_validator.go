package driven

import "github.com/zainraz03/agentic-assistant/internal/core/domain"

// AIConfigValidator checks that configured AI providers can be reached.
type AIConfigValidator interface {
	// ValidateEmbedding pings the embedding provider.
	// Returns nil when the provider needs no server.
	ValidateEmbedding(config *domain.EmbeddingSettings) error

	// ValidateLLM pings the LLM provider.
	// Returns nil when no LLM is configured.
	ValidateLLM(config *domain.LLMSettings) error
}
