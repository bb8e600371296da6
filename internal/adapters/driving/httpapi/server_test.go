package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zainraz03/agentic-assistant/internal/core/domain"
)

type mockRouter struct {
	result   domain.Result
	err      error
	gotQuery string
	gotMode  domain.Mode
}

func (m *mockRouter) Route(_ context.Context, query string, mode domain.Mode) (domain.Result, error) {
	m.gotQuery, m.gotMode = query, mode
	if m.err != nil {
		return domain.Result{}, m.err
	}
	res := m.result
	if res.Mode == "" {
		res.Mode = mode
	}
	return res, nil
}

func (m *mockRouter) Modes() []domain.Mode {
	return []domain.Mode{domain.ModeDocumentQA, domain.ModeGeneral}
}

type mockRetriever struct {
	matches []domain.Match
	err     error
	gotTopK int
}

func (m *mockRetriever) Retrieve(_ context.Context, _ string, topK int) ([]domain.Match, error) {
	m.gotTopK = topK
	return m.matches, m.err
}

type mockIngestor struct {
	err    error
	gotDir string
}

func (m *mockIngestor) Ingest(_ context.Context, dir string) (*domain.IngestReport, error) {
	m.gotDir = dir
	if m.err != nil {
		return nil, m.err
	}
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return &domain.IngestReport{
		ID: "run-1", Directory: dir, Files: 1, Pages: 2, Chunks: 4,
		Warnings:    []*domain.ExtractionWarning{{File: "a.pdf", Page: 1, Err: errors.New("garbled")}},
		StartedAt:   start,
		CompletedAt: start.Add(1500 * time.Millisecond),
	}, nil
}

func newTestServer(t *testing.T, ports Ports) *httptest.Server {
	t.Helper()
	s, err := NewServer(ports)
	require.NoError(t, err)
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, url string, body any) (*http.Response, APIResponse) {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	defer resp.Body.Close()

	var out APIResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp, out
}

func TestNewServer_RequiresRouter(t *testing.T) {
	_, err := NewServer(Ports{})
	assert.Error(t, err)
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, Ports{Router: &mockRouter{}})

	resp, err := http.Get(srv.URL + "/api/v1/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	var out APIResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.True(t, out.Success)
	assert.Equal(t, "healthy", out.Data.(map[string]any)["status"])
}

func TestModes(t *testing.T) {
	srv := newTestServer(t, Ports{Router: &mockRouter{}})

	resp, err := http.Get(srv.URL + "/api/v1/modes")
	require.NoError(t, err)
	defer resp.Body.Close()

	var out struct {
		Data []map[string]string `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out.Data, 2)
	assert.Equal(t, "document_qa", out.Data[0]["mode"])
	assert.Equal(t, domain.ModeDocumentQA.Label(), out.Data[0]["label"])
}

func TestRoute(t *testing.T) {
	router := &mockRouter{result: domain.Result{Text: "3.93"}}
	srv := newTestServer(t, Ports{Router: router})

	resp, out := post(t, srv.URL+"/api/v1/route", RouteRequest{Query: "cgpa?", Mode: "document_qa"})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, out.Success)
	data := out.Data.(map[string]any)
	assert.Equal(t, "3.93", data["text"])
	assert.Equal(t, "document_qa", data["mode"])
	assert.Equal(t, "cgpa?", router.gotQuery)
}

func TestRoute_DefaultsToGeneral(t *testing.T) {
	router := &mockRouter{}
	srv := newTestServer(t, Ports{Router: router})

	post(t, srv.URL+"/api/v1/route", RouteRequest{Query: "hi"})

	assert.Equal(t, domain.ModeGeneral, router.gotMode)
}

func TestRoute_InvalidJSON(t *testing.T) {
	srv := newTestServer(t, Ports{Router: &mockRouter{}})

	resp, err := http.Post(srv.URL+"/api/v1/route", "application/json", bytes.NewBufferString("{"))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRoute_WrongMethod(t *testing.T) {
	srv := newTestServer(t, Ports{Router: &mockRouter{}})

	resp, err := http.Get(srv.URL + "/api/v1/route")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	var out APIResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.False(t, out.Success)
	assert.Contains(t, out.Error, "GET")
}

func TestWrongMethod_AllEndpoints(t *testing.T) {
	srv := newTestServer(t, Ports{Router: &mockRouter{}, Retriever: &mockRetriever{}, Ingestor: &mockIngestor{}})

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/v1/health"},
		{http.MethodDelete, "/api/v1/modes"},
		{http.MethodGet, "/api/v1/retrieve"},
		{http.MethodPut, "/api/v1/ingest"},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req, err := http.NewRequest(tt.method, srv.URL+tt.path, nil)
			require.NoError(t, err)
			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
		})
	}
}

func TestUnknownPath(t *testing.T) {
	srv := newTestServer(t, Ports{Router: &mockRouter{}})

	resp, err := http.Get(srv.URL + "/api/v1/nope")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	var out APIResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.False(t, out.Success)
	assert.Contains(t, out.Error, "/api/v1/nope")
}

func TestRoute_ErrorStatus(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{fmt.Errorf("%w: empty query", domain.ErrInvalidInput), http.StatusBadRequest},
		{fmt.Errorf("document_qa: %w", domain.ErrStoreUnavailable), http.StatusServiceUnavailable},
		{fmt.Errorf("%w: boom", domain.ErrGenerationFailed), http.StatusBadGateway},
		{fmt.Errorf("%w: %w", domain.ErrGenerationFailed, context.DeadlineExceeded), http.StatusGatewayTimeout},
		{domain.ErrNotFound, http.StatusNotFound},
		{errors.New("unexpected"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			srv := newTestServer(t, Ports{Router: &mockRouter{err: tt.err}})

			resp, out := post(t, srv.URL+"/api/v1/route", RouteRequest{Query: "q"})

			assert.Equal(t, tt.status, resp.StatusCode)
			assert.False(t, out.Success)
			assert.Equal(t, tt.err.Error(), out.Error)
		})
	}
}

func TestRetrieve(t *testing.T) {
	retriever := &mockRetriever{matches: []domain.Match{{ID: "a.pdf_0", Text: "alpha"}}}
	srv := newTestServer(t, Ports{Router: &mockRouter{}, Retriever: retriever})

	resp, out := post(t, srv.URL+"/api/v1/retrieve", RetrieveRequest{Query: "alpha", TopK: 2})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	matches := out.Data.([]any)
	require.Len(t, matches, 1)
	assert.Equal(t, "a.pdf_0", matches[0].(map[string]any)["id"])
	assert.Equal(t, 2, retriever.gotTopK)
}

func TestRetrieve_EmptyIsSuccess(t *testing.T) {
	srv := newTestServer(t, Ports{Router: &mockRouter{}, Retriever: &mockRetriever{matches: []domain.Match{}}})

	resp, out := post(t, srv.URL+"/api/v1/retrieve", RetrieveRequest{Query: "nothing"})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, out.Success)
}

func TestRetrieve_NotConfigured(t *testing.T) {
	srv := newTestServer(t, Ports{Router: &mockRouter{}})

	resp, _ := post(t, srv.URL+"/api/v1/retrieve", RetrieveRequest{Query: "x"})

	assert.Equal(t, http.StatusNotImplemented, resp.StatusCode)
}

func TestIngest(t *testing.T) {
	ingestor := &mockIngestor{}
	srv := newTestServer(t, Ports{Router: &mockRouter{}, Ingestor: ingestor, DocumentDir: "pdf_files"})

	resp, out := post(t, srv.URL+"/api/v1/ingest", IngestRequest{})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "pdf_files", ingestor.gotDir)
	data := out.Data.(map[string]any)
	assert.Equal(t, "run-1", data["id"])
	assert.EqualValues(t, 4, data["chunks"])
	assert.EqualValues(t, 1500, data["duration_ms"])
	assert.Len(t, data["warnings"], 1)
}

func TestIngest_EmptyBody(t *testing.T) {
	ingestor := &mockIngestor{}
	srv := newTestServer(t, Ports{Router: &mockRouter{}, Ingestor: ingestor, DocumentDir: "docs"})

	resp, err := http.Post(srv.URL+"/api/v1/ingest", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "docs", ingestor.gotDir)
}

func TestIngest_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"missing directory", fmt.Errorf("%w: nope", domain.ErrDirectoryNotFound), http.StatusNotFound},
		{"already running", domain.ErrIngestInProgress, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, Ports{Router: &mockRouter{}, Ingestor: &mockIngestor{err: tt.err}})

			resp, _ := post(t, srv.URL+"/api/v1/ingest", IngestRequest{Directory: "nope"})

			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestIngest_NoDirectory(t *testing.T) {
	srv := newTestServer(t, Ports{Router: &mockRouter{}, Ingestor: &mockIngestor{}})

	resp, _ := post(t, srv.URL+"/api/v1/ingest", IngestRequest{})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
