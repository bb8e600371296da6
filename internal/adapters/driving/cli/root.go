// Package cli provides the cobra command tree for the assistant binary.
package cli

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/zainraz03/agentic-assistant/internal/core/domain"
	"github.com/zainraz03/agentic-assistant/internal/core/ports/driving"
	"github.com/zainraz03/agentic-assistant/internal/logger"
)

// Options are the global flags every command shares.
type Options struct {
	// ConfigDir overrides ~/.assistant.
	ConfigDir string

	// Ephemeral keeps config and index in memory.
	Ephemeral bool

	// Verbose enables debug logging.
	Verbose bool
}

// CollectionInfo describes one stored collection.
type CollectionInfo struct {
	Name           string
	EmbeddingModel string
	Dimensions     int
	Entries        int
}

// CollectionAdmin lists and drops stored collections.
type CollectionAdmin interface {
	Collections(ctx context.Context) ([]CollectionInfo, error)
	DropCollection(ctx context.Context, name string) error
}

// Watcher re-ingests a directory when its files change.
type Watcher interface {
	OnIngest(fn func(*domain.IngestReport, error))
	Run(ctx context.Context, dir string) error
}

// Services is the wired service graph the commands run against.
type Services struct {
	Settings  driving.SettingsService
	Ingestor  driving.Ingestor
	Retriever driving.Retriever
	Router    driving.Router

	// Watcher is nil when directory watching is unavailable.
	Watcher Watcher

	// Collections is nil for the in-memory backend.
	Collections CollectionAdmin

	// DocumentDir is the configured PDF directory.
	DocumentDir string

	// ConfigPath is where settings are persisted.
	ConfigPath string

	// LLMTimeout bounds model calls. The HTTP write timeout is derived from it.
	LLMTimeout time.Duration

	closers []func() error
}

// AddCloser registers fn to run when the services are released.
func (s *Services) AddCloser(fn func() error) {
	s.closers = append(s.closers, fn)
}

// Close releases resources in reverse registration order.
func (s *Services) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	return errors.Join(errs...)
}

// Factory builds Services for the given options.
type Factory func(ctx context.Context, opts Options) (*Services, error)

// app holds the state shared by one command tree.
type app struct {
	factory  Factory
	opts     Options
	version  string
	services *Services

	// isTerminal reports whether stdin is interactive.
	isTerminal func() bool
}

func newApp(factory Factory, version string) *app {
	return &app{
		factory: factory,
		version: version,
		isTerminal: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd())) //nolint:gosec // fd fits in int
		},
	}
}

// svc builds the service graph on first use.
func (a *app) svc(cmd *cobra.Command) (*Services, error) {
	if a.services != nil {
		return a.services, nil
	}
	s, err := a.factory(cmd.Context(), a.opts)
	if err != nil {
		return nil, err
	}
	a.services = s
	return s, nil
}

func (a *app) close() error {
	if a.services == nil {
		return nil
	}
	err := a.services.Close()
	a.services = nil
	return err
}

// NewRootCmd builds the command tree. Services are created lazily by
// factory, so commands such as version never touch config or storage.
func NewRootCmd(factory Factory, version string) *cobra.Command {
	return newApp(factory, version).rootCmd()
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "assistant",
		Short: "Route questions to document, knowledge, file and code assistants",
		Long: `assistant answers questions in one of several modes.

Document QA searches PDFs ingested from a local directory and summarises the
best matching chunks. The other modes look up a static knowledge base, find
files by name, generate code, search news or answer general questions.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			logger.SetOutput(cmd.ErrOrStderr())
			logger.SetVerbose(a.opts.Verbose)
		},
	}

	flags := root.PersistentFlags()
	flags.BoolVarP(&a.opts.Verbose, "verbose", "v", false, "enable debug logging")
	flags.StringVar(&a.opts.ConfigDir, "config", "", "config directory (default ~/.assistant)")
	flags.BoolVar(&a.opts.Ephemeral, "ephemeral", false, "keep config and index in memory")

	root.AddCommand(
		a.ingestCmd(),
		a.askCmd(),
		a.retrieveCmd(),
		a.modesCmd(),
		a.configCmd(),
		a.indexCmd(),
		a.serveCmd(),
		a.mcpCmd(),
		a.chatCmd(),
		a.versionCmd(),
	)
	return root
}

// Execute runs the command tree against the real service graph.
func Execute(ctx context.Context, version string) error {
	a := newApp(Wire, version)
	root := a.rootCmd()
	err := root.ExecuteContext(ctx)
	if cerr := a.close(); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		logger.Error("%v", err)
	}
	return err
}
