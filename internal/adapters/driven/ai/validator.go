package ai

import (
	"context"
	"fmt"
	"time"

	"github.com/zainraz03/agentic-assistant/internal/core/domain"
	"github.com/zainraz03/agentic-assistant/internal/core/ports/driven"
)

// Ensure ConfigValidator implements the interface.
var _ driven.AIConfigValidator = (*ConfigValidator)(nil)

// ConfigValidator checks that the configured providers answer before the
// assistant relies on them. Failures name the provider, model and endpoint
// so `config check` output points at the setting to fix.
type ConfigValidator struct {
	timeout time.Duration
}

// NewConfigValidator creates a validator that waits pingTimeout per provider.
func NewConfigValidator() *ConfigValidator {
	return &ConfigValidator{timeout: pingTimeout}
}

// ValidateEmbedding pings the embedding provider. An unset provider or the
// offline lexical embedder has nothing to reach and always passes.
func (v *ConfigValidator) ValidateEmbedding(config *domain.EmbeddingSettings) error {
	if config == nil || config.Provider == "" || config.Provider == domain.AIProviderLexical {
		return nil
	}
	svc, err := CreateEmbeddingService(config)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrEmbeddingUnavailable, err)
	}
	if svc == nil {
		return nil
	}
	defer svc.Close()

	if err := v.ping(svc.Ping); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrEmbeddingUnavailable, describe(config.Provider, config.Model, config.BaseURL, err))
	}
	return nil
}

// ValidateLLM pings the LLM provider. No provider means generation is
// switched off, which is valid.
func (v *ConfigValidator) ValidateLLM(config *domain.LLMSettings) error {
	if config == nil || !config.IsConfigured() {
		return nil
	}
	svc, err := CreateLLMService(config)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrLLMUnavailable, config.Provider, err)
	}
	if svc == nil {
		return nil
	}
	defer svc.Close()

	if err := v.ping(svc.Ping); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrLLMUnavailable, describe(config.Provider, config.Model, config.BaseURL, err))
	}
	return nil
}

func (v *ConfigValidator) ping(fn func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), v.timeout)
	defer cancel()
	return fn(ctx)
}

// describe formats a ping failure as "ollama model nomic at http://...: err".
func describe(provider domain.AIProvider, model, baseURL string, err error) string {
	msg := string(provider)
	if model != "" {
		msg += " model " + model
	}
	if baseURL != "" {
		msg += " at " + baseURL
	}
	return fmt.Sprintf("%s did not answer: %v", msg, err)
}
