package mcp

import (
	"context"

	"github.com/zainraz03/agentic-assistant/internal/core/domain"
)

// mockRouter is a mock implementation of driving.Router.
type mockRouter struct {
	result domain.Result
	err    error
	modes  []domain.Mode

	gotQuery string
	gotMode  domain.Mode
}

func (m *mockRouter) Route(_ context.Context, query string, mode domain.Mode) (domain.Result, error) {
	m.gotQuery, m.gotMode = query, mode
	return m.result, m.err
}

func (m *mockRouter) Modes() []domain.Mode {
	return m.modes
}

// mockRetriever is a mock implementation of driving.Retriever.
type mockRetriever struct {
	matches []domain.Match
	err     error
	gotTopK int
}

func (m *mockRetriever) Retrieve(_ context.Context, _ string, topK int) ([]domain.Match, error) {
	m.gotTopK = topK
	return m.matches, m.err
}

// mockIngestor is a mock implementation of driving.Ingestor.
type mockIngestor struct {
	report *domain.IngestReport
	err    error
	gotDir string
}

func (m *mockIngestor) Ingest(_ context.Context, dir string) (*domain.IngestReport, error) {
	m.gotDir = dir
	return m.report, m.err
}
