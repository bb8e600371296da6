// Package ai provides factory functions for creating AI service adapters.
package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	lexicalembed "github.com/zainraz03/agentic-assistant/internal/adapters/driven/embedding/lexical"
	ollamaembed "github.com/zainraz03/agentic-assistant/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/zainraz03/agentic-assistant/internal/adapters/driven/embedding/openai"
	anthropicllm "github.com/zainraz03/agentic-assistant/internal/adapters/driven/llm/anthropic"
	ollamallm "github.com/zainraz03/agentic-assistant/internal/adapters/driven/llm/ollama"
	openaillm "github.com/zainraz03/agentic-assistant/internal/adapters/driven/llm/openai"
	"github.com/zainraz03/agentic-assistant/internal/adapters/driven/llm/ratelimit"
	"github.com/zainraz03/agentic-assistant/internal/core/domain"
	"github.com/zainraz03/agentic-assistant/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

const lexicalModelPrefix = "lexical-hash-"

// CreateAndValidateEmbeddingService creates an embedding service and pings it.
func CreateAndValidateEmbeddingService(ctx context.Context, settings *domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	svc, err := CreateEmbeddingService(settings)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrEmbeddingUnavailable, err)
	}
	if svc == nil {
		return nil, nil
	}

	if err := ping(ctx, svc.Ping); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: service unreachable (%w). Run 'assistant config set embedding.provider lexical' to work offline",
			domain.ErrEmbeddingUnavailable, err)
	}
	return svc, nil
}

// CreateAndValidateLLMService creates an LLM service and pings it.
// An unconfigured provider yields (nil, nil).
func CreateAndValidateLLMService(ctx context.Context, settings *domain.LLMSettings) (driven.LLMService, error) {
	svc, err := CreateLLMService(settings)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrLLMUnavailable, err)
	}
	if svc == nil {
		return nil, nil
	}

	if err := ping(ctx, svc.Ping); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: service unreachable (%w)", domain.ErrLLMUnavailable, err)
	}
	return svc, nil
}

func ping(ctx context.Context, fn func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return fn(ctx)
}

// CreateEmbeddingService creates the embedding service named by settings.
// Returns nil if the provider is not configured.
func CreateEmbeddingService(settings *domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	if settings == nil {
		return nil, nil
	}

	switch settings.Provider {
	case domain.AIProviderLexical:
		return lexicalembed.NewEmbeddingService(lexicalDimensions(settings.Model)), nil

	case domain.AIProviderOllama:
		return ollamaembed.NewEmbeddingService(ollamaembed.Config{
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		}), nil

	case domain.AIProviderOpenAI:
		if settings.APIKey == "" {
			return nil, fmt.Errorf("openai embeddings need an API key (set OPENAI_API_KEY)")
		}
		return openaiembed.NewEmbeddingService(openaiembed.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})

	case domain.AIProviderAnthropic:
		return nil, fmt.Errorf("anthropic does not support embeddings, use lexical, ollama or openai")

	case "":
		return nil, nil

	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", settings.Provider)
	}
}

// CreateLLMService creates the LLM service named by settings, throttled to
// settings.RequestsPerMinute. Returns nil if the provider is not configured.
func CreateLLMService(settings *domain.LLMSettings) (driven.LLMService, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	var (
		svc driven.LLMService
		err error
	)
	switch settings.Provider {
	case domain.AIProviderOllama:
		svc = ollamallm.NewLLMService(ollamallm.LLMConfig{
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})

	case domain.AIProviderOpenAI:
		svc, err = openaillm.NewLLMService(openaillm.LLMConfig{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})

	case domain.AIProviderAnthropic:
		svc, err = anthropicllm.NewLLMService(anthropicllm.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", settings.Provider)
	}
	if err != nil {
		return nil, err
	}
	return ratelimit.Wrap(svc, settings.RequestsPerMinute), nil
}

// lexicalDimensions reads N from a "lexical-hash-N" model name.
func lexicalDimensions(model string) int {
	if !strings.HasPrefix(model, lexicalModelPrefix) {
		return domain.DefaultLexicalDimensions
	}
	var dims int
	if _, err := fmt.Sscanf(strings.TrimPrefix(model, lexicalModelPrefix), "%d", &dims); err != nil || dims <= 0 {
		return domain.DefaultLexicalDimensions
	}
	return dims
}
