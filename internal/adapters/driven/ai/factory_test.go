package ai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zainraz03/agentic-assistant/internal/adapters/driven/llm/ratelimit"
	"github.com/zainraz03/agentic-assistant/internal/core/domain"
)

func TestCreateEmbeddingService(t *testing.T) {
	tests := []struct {
		name        string
		settings    *domain.EmbeddingSettings
		wantNil     bool
		wantErr     bool
		errContains string
		wantModel   string
		wantDims    int
	}{
		{
			name:     "nil settings returns nil",
			settings: nil,
			wantNil:  true,
		},
		{
			name:     "empty provider returns nil",
			settings: &domain.EmbeddingSettings{},
			wantNil:  true,
		},
		{
			name:      "lexical default",
			settings:  &domain.EmbeddingSettings{Provider: domain.AIProviderLexical},
			wantModel: "lexical-hash-512",
			wantDims:  512,
		},
		{
			name:      "lexical with size in model name",
			settings:  &domain.EmbeddingSettings{Provider: domain.AIProviderLexical, Model: "lexical-hash-128"},
			wantModel: "lexical-hash-128",
			wantDims:  128,
		},
		{
			name: "ollama provider creates service",
			settings: &domain.EmbeddingSettings{
				Provider: domain.AIProviderOllama,
				Model:    "nomic-embed-text",
			},
			wantModel: "nomic-embed-text",
			wantDims:  768,
		},
		{
			name: "openai provider creates service",
			settings: &domain.EmbeddingSettings{
				Provider: domain.AIProviderOpenAI,
				APIKey:   "test-key",
				Model:    "text-embedding-3-small",
			},
			wantModel: "text-embedding-3-small",
			wantDims:  1536,
		},
		{
			name:        "openai without key",
			settings:    &domain.EmbeddingSettings{Provider: domain.AIProviderOpenAI},
			wantErr:     true,
			errContains: "OPENAI_API_KEY",
		},
		{
			name:        "anthropic provider returns error",
			settings:    &domain.EmbeddingSettings{Provider: domain.AIProviderAnthropic, APIKey: "k"},
			wantErr:     true,
			errContains: "does not support embeddings",
		},
		{
			name:        "unknown provider",
			settings:    &domain.EmbeddingSettings{Provider: "cohere"},
			wantErr:     true,
			errContains: "unsupported embedding provider",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := CreateEmbeddingService(tt.settings)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
			if tt.wantNil {
				assert.Nil(t, svc)
				return
			}
			require.NotNil(t, svc)
			assert.Equal(t, tt.wantModel, svc.ModelName())
			assert.Equal(t, tt.wantDims, svc.Dimensions())
		})
	}
}

func TestCreateLLMService(t *testing.T) {
	tests := []struct {
		name      string
		settings  *domain.LLMSettings
		wantNil   bool
		wantModel string
	}{
		{name: "nil settings", settings: nil, wantNil: true},
		{name: "empty provider", settings: &domain.LLMSettings{}, wantNil: true},
		{name: "openai without key", settings: &domain.LLMSettings{Provider: domain.AIProviderOpenAI}, wantNil: true},
		{name: "lexical is not an llm", settings: &domain.LLMSettings{Provider: domain.AIProviderLexical}, wantNil: true},
		{
			name:      "ollama",
			settings:  &domain.LLMSettings{Provider: domain.AIProviderOllama, Model: "llama3.2"},
			wantModel: "llama3.2",
		},
		{
			name:      "openai",
			settings:  &domain.LLMSettings{Provider: domain.AIProviderOpenAI, APIKey: "k"},
			wantModel: "gpt-4o-mini",
		},
		{
			name:      "anthropic",
			settings:  &domain.LLMSettings{Provider: domain.AIProviderAnthropic, APIKey: "k"},
			wantModel: "claude-3-5-sonnet-latest",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := CreateLLMService(tt.settings)
			require.NoError(t, err)
			if tt.wantNil {
				assert.Nil(t, svc)
				return
			}
			require.NotNil(t, svc)
			assert.Equal(t, tt.wantModel, svc.ModelName())
		})
	}
}

func TestCreateLLMService_RateLimited(t *testing.T) {
	svc, err := CreateLLMService(&domain.LLMSettings{
		Provider:          domain.AIProviderOllama,
		RequestsPerMinute: 30,
	})
	require.NoError(t, err)
	assert.IsType(t, &ratelimit.LLMService{}, svc)
}

func TestCreateAndValidateLLMService(t *testing.T) {
	t.Run("reachable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"models":[]}`))
		}))
		defer server.Close()

		svc, err := CreateAndValidateLLMService(context.Background(), &domain.LLMSettings{
			Provider: domain.AIProviderOllama,
			BaseURL:  server.URL,
		})
		require.NoError(t, err)
		assert.NotNil(t, svc)
	})

	t.Run("unreachable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		svc, err := CreateAndValidateLLMService(context.Background(), &domain.LLMSettings{
			Provider: domain.AIProviderOllama,
			BaseURL:  server.URL,
		})
		assert.ErrorIs(t, err, domain.ErrLLMUnavailable)
		assert.Nil(t, svc)
	})

	t.Run("unconfigured", func(t *testing.T) {
		svc, err := CreateAndValidateLLMService(context.Background(), &domain.LLMSettings{})
		assert.NoError(t, err)
		assert.Nil(t, svc)
	})
}

func TestCreateAndValidateEmbeddingService(t *testing.T) {
	svc, err := CreateAndValidateEmbeddingService(context.Background(), &domain.EmbeddingSettings{
		Provider: domain.AIProviderLexical,
	})
	require.NoError(t, err)
	assert.Equal(t, "lexical-hash-512", svc.ModelName())

	_, err = CreateAndValidateEmbeddingService(context.Background(), &domain.EmbeddingSettings{
		Provider: domain.AIProviderAnthropic,
	})
	assert.ErrorIs(t, err, domain.ErrEmbeddingUnavailable)
}

func TestLexicalDimensions(t *testing.T) {
	assert.Equal(t, 512, lexicalDimensions(""))
	assert.Equal(t, 64, lexicalDimensions("lexical-hash-64"))
	assert.Equal(t, 512, lexicalDimensions("lexical-hash-abc"))
	assert.Equal(t, 512, lexicalDimensions("lexical-hash--3"))
}
