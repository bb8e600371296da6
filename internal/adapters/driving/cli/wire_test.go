package cli

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zainraz03/agentic-assistant/internal/core/domain"
)

func TestWire_Ephemeral(t *testing.T) {
	s, err := Wire(context.Background(), Options{Ephemeral: true})
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, domain.AllModes(), s.Router.Modes())
	assert.Nil(t, s.Collections)
	assert.NotNil(t, s.Watcher)
	assert.Equal(t, ":memory:", s.ConfigPath)
	assert.Equal(t, domain.DefaultLLMTimeout, s.LLMTimeout)

	_, err = s.Ingestor.Ingest(context.Background(), filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, domain.ErrDirectoryNotFound)

	matches, err := s.Retriever.Retrieve(context.Background(), "anything", 3)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestWire_SqliteBackend(t *testing.T) {
	dir := t.TempDir()

	s, err := Wire(context.Background(), Options{ConfigDir: dir})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "config.toml"), s.ConfigPath)
	require.NotNil(t, s.Collections)

	infos, err := s.Collections.Collections(context.Background())
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, domain.DefaultCollection, infos[0].Name)
	assert.Equal(t, "lexical-hash-512", infos[0].EmbeddingModel)

	require.NoError(t, s.Close())
}

func TestWire_MemoryBackendFromConfig(t *testing.T) {
	dir := t.TempDir()
	s, err := Wire(context.Background(), Options{ConfigDir: dir})
	require.NoError(t, err)
	require.NoError(t, s.Settings.Set("store.backend", "memory"))
	require.NoError(t, s.Close())

	s, err = Wire(context.Background(), Options{ConfigDir: dir})
	require.NoError(t, err)
	assert.Nil(t, s.Collections, "memory backend has no collection admin")
	require.NoError(t, s.Close())
}
