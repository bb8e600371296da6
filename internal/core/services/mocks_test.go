package services

import (
	"context"
	"errors"
	"sync"

	"github.com/zainraz03/agentic-assistant/internal/core/domain"
	"github.com/zainraz03/agentic-assistant/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockLLM implements driven.LLMService and records what it was asked.
type mockLLM struct {
	mu       sync.Mutex
	response string
	err      error
	prompts  []string
	chats    [][]driven.ChatMessage
	block    bool
}

func (m *mockLLM) Generate(ctx context.Context, prompt string, _ driven.GenerateOptions) (string, error) {
	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	m.mu.Unlock()
	if m.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return m.response, m.err
}

func (m *mockLLM) Chat(_ context.Context, messages []driven.ChatMessage, _ driven.ChatOptions) (string, error) {
	m.mu.Lock()
	m.chats = append(m.chats, messages)
	m.mu.Unlock()
	return m.response, m.err
}

func (m *mockLLM) ModelName() string          { return "mock-llm" }
func (m *mockLLM) Ping(context.Context) error { return nil }
func (m *mockLLM) Close() error               { return nil }

func (m *mockLLM) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prompts) + len(m.chats)
}

// recordingIndex implements driven.VectorIndex and records calls.
type recordingIndex struct {
	mu        sync.Mutex
	upserts   [][]domain.IndexEntry
	queries   []string
	matches   []domain.Match
	upsertErr error
	queryErr  error
}

func (r *recordingIndex) Upsert(_ context.Context, entries []domain.IndexEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.upserts = append(r.upserts, entries)
	return r.upsertErr
}

func (r *recordingIndex) Query(_ context.Context, text string, _ int) ([]domain.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queries = append(r.queries, text)
	return r.matches, r.queryErr
}

func (r *recordingIndex) Count(context.Context) (int, error) { return 0, nil }
func (r *recordingIndex) Name() string                       { return "recording" }
func (r *recordingIndex) Close() error                       { return nil }

func (r *recordingIndex) calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.upserts) + len(r.queries)
}

// fakeExtractor implements driven.PageExtractor from canned page texts,
// keyed by file base name.
type fakeExtractor struct {
	pages    map[string][]domain.Page
	warnings map[string][]*domain.ExtractionWarning
	fail     map[string]error
	started  chan struct{}
	release  chan struct{}
}

func (f *fakeExtractor) Extensions() []string { return []string{".pdf"} }

func (f *fakeExtractor) Extract(ctx context.Context, path string) ([]domain.Page, []*domain.ExtractionWarning, error) {
	if f.started != nil {
		f.started <- struct{}{}
		select {
		case <-f.release:
		case <-ctx.Done():
			return nil, nil, ctx.Err()
		}
	}
	name := baseName(path)
	if err := f.fail[name]; err != nil {
		return nil, nil, err
	}
	return f.pages[name], f.warnings[name], nil
}

func baseName(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' || path[i] == '\\' {
			return path[i+1:]
		}
	}
	return path
}

// mockPromptStore implements driven.PromptStore.
type mockPromptStore struct {
	prompts map[string]string
}

func (m *mockPromptStore) Load(name string) (string, error) {
	if p, ok := m.prompts[name]; ok {
		return p, nil
	}
	return "", errors.New("not found")
}

func (m *mockPromptStore) Reload() {}

// fakeFinder implements driven.FileFinder.
type fakeFinder struct {
	paths []string
	err   error
	root  string
	name  string
	limit int
}

func (f *fakeFinder) Find(_ context.Context, root, name string, limit int) ([]string, error) {
	f.root, f.name, f.limit = root, name, limit
	return f.paths, f.err
}

// fakeKB implements driven.KnowledgeBase.
type fakeKB struct {
	subject    string
	subjectErr error
	facts      string
	err        error
}

func (f *fakeKB) Subject() (string, error) { return f.subject, f.subjectErr }
func (f *fakeKB) Facts() (string, error)   { return f.facts, f.err }

// stubHandler implements driving.Handler.
type stubHandler struct {
	mode    domain.Mode
	text    string
	err     error
	queries []string
}

func (s *stubHandler) Mode() domain.Mode { return s.mode }

func (s *stubHandler) Handle(_ context.Context, query string) (domain.Result, error) {
	s.queries = append(s.queries, query)
	if s.err != nil {
		return domain.Result{}, s.err
	}
	return domain.Result{Text: s.text}, nil
}
