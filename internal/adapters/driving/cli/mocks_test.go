package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/cobra"

	"github.com/zainraz03/agentic-assistant/internal/core/domain"
)

type mockRouter struct {
	result domain.Result
	err    error

	gotQuery string
	gotMode  domain.Mode
}

func (m *mockRouter) Route(_ context.Context, query string, mode domain.Mode) (domain.Result, error) {
	m.gotQuery, m.gotMode = query, mode
	return m.result, m.err
}

func (m *mockRouter) Modes() []domain.Mode {
	return domain.AllModes()
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
	report *domain.IngestReport
	err    error
	dirs   []string
}

func (m *mockIngestor) Ingest(_ context.Context, dir string) (*domain.IngestReport, error) {
	m.dirs = append(m.dirs, dir)
	return m.report, m.err
}

type mockSettings struct {
	values map[string]string
	setErr error
	valid  error
	llmErr error
}

func (m *mockSettings) Get() (*domain.AppSettings, error) {
	s := domain.DefaultAppSettings()
	return &s, nil
}

func (m *mockSettings) Set(key, value string) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.values[key] = value
	return nil
}

func (m *mockSettings) Value(key string) (string, error) {
	v, ok := m.values[key]
	if !ok {
		return "", domain.ErrInvalidInput
	}
	return v, nil
}

func (m *mockSettings) Keys() []string {
	return []string{"llm.api_key", "retrieval.top_k"}
}

func (m *mockSettings) Validate() error                { return m.valid }
func (m *mockSettings) ValidateLLMConfig() error       { return m.llmErr }
func (m *mockSettings) ValidateEmbeddingConfig() error { return nil }

type mockCollections struct {
	infos   []CollectionInfo
	dropped []string
	dropErr error
}

func (m *mockCollections) Collections(context.Context) ([]CollectionInfo, error) {
	return m.infos, nil
}

func (m *mockCollections) DropCollection(_ context.Context, name string) error {
	if m.dropErr != nil {
		return m.dropErr
	}
	m.dropped = append(m.dropped, name)
	return nil
}

// mockWatcher reports fire once from Run, then returns.
type mockWatcher struct {
	fire     *domain.IngestReport
	onIngest func(*domain.IngestReport, error)
	dir      string
}

func (m *mockWatcher) OnIngest(fn func(*domain.IngestReport, error)) {
	m.onIngest = fn
}

func (m *mockWatcher) Run(_ context.Context, dir string) error {
	m.dir = dir
	if m.fire != nil && m.onIngest != nil {
		m.onIngest(m.fire, nil)
	}
	return nil
}

// fixture is a fake service graph plus a counter of factory calls.
type fixture struct {
	router      *mockRouter
	retriever   *mockRetriever
	ingestor    *mockIngestor
	settings    *mockSettings
	collections *mockCollections
	watcher     *mockWatcher

	calls   int
	gotOpts Options
	err     error
}

func newFixture() *fixture {
	return &fixture{
		router:      &mockRouter{result: domain.NewResult(domain.ModeGeneral, "hello")},
		retriever:   &mockRetriever{},
		ingestor:    &mockIngestor{report: &domain.IngestReport{Files: 1, Pages: 2, Chunks: 4}},
		settings:    &mockSettings{values: map[string]string{"retrieval.top_k": "3", "llm.api_key": "sk-abcdef1234"}},
		collections: &mockCollections{},
		watcher:     &mockWatcher{},
	}
}

func (f *fixture) factory(_ context.Context, opts Options) (*Services, error) {
	f.calls++
	f.gotOpts = opts
	if f.err != nil {
		return nil, f.err
	}
	return &Services{
		Settings:    f.settings,
		Ingestor:    f.ingestor,
		Retriever:   f.retriever,
		Router:      f.router,
		Watcher:     f.watcher,
		Collections: f.collections,
		DocumentDir: "pdf_files",
		ConfigPath:  "/home/u/.assistant/config.toml",
	}, nil
}

// run executes args against a fresh command tree and returns stdout.
func (f *fixture) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	a := newApp(f.factory, "1.2.3")
	a.isTerminal = func() bool { return false }
	return execute(a.rootCmd(), args...)
}

func execute(root *cobra.Command, args ...string) (string, error) {
	out := new(bytes.Buffer)
	root.SetOut(out)
	root.SetErr(new(bytes.Buffer))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}
