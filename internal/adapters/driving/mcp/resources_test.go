package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zainraz03/agentic-assistant/internal/core/domain"
)

func TestExtractMode(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
	}{
		{
			name:     "valid mode URI",
			uri:      "assistant://modes/document_qa",
			expected: "document_qa",
		},
		{
			name:     "invalid prefix",
			uri:      "file://modes/document_qa",
			expected: "",
		},
		{
			name:     "empty URI",
			uri:      "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractMode(tt.uri))
		})
	}
}

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestServer_handleModesResource(t *testing.T) {
	ctx := context.Background()

	t.Run("lists registered modes", func(t *testing.T) {
		router := &mockRouter{modes: []domain.Mode{domain.ModeDocumentQA, domain.ModeGeneral}}
		server, err := NewServer(&Ports{Router: router})
		require.NoError(t, err)

		result, err := server.handleModesResource(ctx, makeReadResourceRequest("assistant://modes"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)

		var infos []modeInfo
		require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &infos))
		require.Len(t, infos, 2)
		assert.Equal(t, "document_qa", infos[0].Mode)
		assert.Equal(t, domain.ModeDocumentQA.Label(), infos[0].Label)
		assert.Equal(t, "general", infos[1].Mode)
	})

	t.Run("no modes is an empty list", func(t *testing.T) {
		server, err := NewServer(&Ports{Router: &mockRouter{}})
		require.NoError(t, err)

		result, err := server.handleModesResource(ctx, makeReadResourceRequest("assistant://modes"))

		require.NoError(t, err)
		assert.Equal(t, "[]", result.Contents[0].Text)
	})
}

func TestServer_handleModeResource(t *testing.T) {
	ctx := context.Background()
	server, err := NewServer(&Ports{Router: &mockRouter{}})
	require.NoError(t, err)

	t.Run("known mode", func(t *testing.T) {
		result, err := server.handleModeResource(ctx, makeReadResourceRequest("assistant://modes/news_search"))

		require.NoError(t, err)
		assert.Contains(t, result.Contents[0].Text, domain.ModeNewsSearch.Description())
	})

	t.Run("unknown mode", func(t *testing.T) {
		_, err := server.handleModeResource(ctx, makeReadResourceRequest("assistant://modes/weather"))

		assert.Error(t, err)
	})
}
