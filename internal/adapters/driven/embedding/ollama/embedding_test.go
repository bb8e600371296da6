package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmbeddingService_Defaults(t *testing.T) {
	s := NewEmbeddingService(Config{})
	assert.Equal(t, DefaultBaseURL, s.baseURL)
	assert.Equal(t, DefaultModel, s.ModelName())
	assert.Equal(t, 768, s.Dimensions())
	assert.Equal(t, DefaultBatchSize, s.batchSize)
}

func TestEmbedBatch(t *testing.T) {
	var calls [][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/embed", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var req embedRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "all-minilm", req.Model)
		calls = append(calls, req.Input)

		resp := embedResponse{}
		for i := range req.Input {
			resp.Embeddings = append(resp.Embeddings, []float64{float64(len(req.Input[i])), 0.5})
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	s := NewEmbeddingService(Config{BaseURL: server.URL, Model: "all-minilm", BatchSize: 2})
	assert.Equal(t, 384, s.Dimensions())

	vecs, err := s.EmbedBatch(context.Background(), []string{"a", "bb", "ccc"})
	require.NoError(t, err)
	require.Len(t, vecs, 3)
	assert.Equal(t, []float32{3, 0.5}, vecs[2])
	assert.Len(t, calls, 2, "three texts at batch size two need two requests")

	v, err := s.Embed(context.Background(), "dddd")
	require.NoError(t, err)
	assert.Equal(t, []float32{4, 0.5}, v)
}

func TestEmbed_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer server.Close()

	s := NewEmbeddingService(Config{BaseURL: server.URL})
	_, err := s.Embed(context.Background(), "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
	assert.Contains(t, err.Error(), "model not found")
}

func TestEmbed_CountMismatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"embeddings":[]}`))
	}))
	defer server.Close()

	_, err := NewEmbeddingService(Config{BaseURL: server.URL}).Embed(context.Background(), "x")
	assert.ErrorContains(t, err, "0 embeddings for 1 inputs")
}

func TestPing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/tags" {
			_, _ = w.Write([]byte(`{"models":[]}`))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	assert.NoError(t, NewEmbeddingService(Config{BaseURL: server.URL}).Ping(context.Background()))

	server.Close()
	assert.Error(t, NewEmbeddingService(Config{BaseURL: server.URL}).Ping(context.Background()))
}
