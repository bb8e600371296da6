package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/zainraz03/agentic-assistant/internal/adapters/driven/ai"
	"github.com/zainraz03/agentic-assistant/internal/adapters/driven/config/file"
	"github.com/zainraz03/agentic-assistant/internal/adapters/driven/storage/memory"
	"github.com/zainraz03/agentic-assistant/internal/adapters/driven/storage/sqlite"
	"github.com/zainraz03/agentic-assistant/internal/connectors/filesystem"
	"github.com/zainraz03/agentic-assistant/internal/core/domain"
	"github.com/zainraz03/agentic-assistant/internal/core/ports/driven"
	"github.com/zainraz03/agentic-assistant/internal/core/services"
	"github.com/zainraz03/agentic-assistant/internal/logger"
	"github.com/zainraz03/agentic-assistant/internal/normalisers/pdf"
	"github.com/zainraz03/agentic-assistant/internal/postprocessors/chunker"
)

var log = logger.With("wire")

// Wire builds the production service graph. Every resource it opens is
// released by Services.Close.
func Wire(ctx context.Context, opts Options) (*Services, error) {
	if err := file.LoadEnv(); err != nil {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	configDir := opts.ConfigDir
	if configDir == "" && !opts.Ephemeral {
		dir, err := file.DefaultDir()
		if err != nil {
			return nil, err
		}
		configDir = dir
	}

	var configStore driven.ConfigStore
	if opts.Ephemeral {
		configStore = memory.NewConfigStore()
	} else {
		store, err := file.NewConfigStore(configDir)
		if err != nil {
			return nil, fmt.Errorf("opening config: %w", err)
		}
		configStore = store
	}

	settingsSvc := services.NewSettingsService(configStore, ai.NewConfigValidator())
	settings, err := settingsSvc.Get()
	if err != nil {
		return nil, err
	}
	if err := settingsSvc.Validate(); err != nil {
		return nil, err
	}

	s := &Services{
		Settings:    settingsSvc,
		DocumentDir: filesystem.ResolvePath(settings.Documents.Directory),
		ConfigPath:  configStore.Path(),
		LLMTimeout:  settings.Timeouts.LLM,
	}

	if err := wireServices(ctx, s, settings, opts, configDir); err != nil {
		if cerr := s.Close(); cerr != nil {
			log.Warn("cleanup after failed wiring: %v", cerr)
		}
		return nil, err
	}
	return s, nil
}

func wireServices(ctx context.Context, s *Services, settings *domain.AppSettings, opts Options, configDir string) error {
	embedder, err := ai.CreateAndValidateEmbeddingService(ctx, &settings.Embedding)
	if err != nil {
		return err
	}
	if embedder == nil {
		return fmt.Errorf("%w: embedding provider %q is not configured", domain.ErrEmbeddingUnavailable, settings.Embedding.Provider)
	}
	s.AddCloser(embedder.Close)

	index, err := openIndex(ctx, s, settings, opts, configDir, embedder)
	if err != nil {
		return err
	}
	s.AddCloser(index.Close)
	log.Debug("index %s ready (%s)", index.Name(), embedder.ModelName())

	// An unconfigured LLM is nil; handlers then report ErrLLMUnavailable.
	llm, err := ai.CreateLLMService(&settings.LLM)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrLLMUnavailable, err)
	}
	if llm != nil {
		s.AddCloser(llm.Close)
	} else {
		log.Warn("no LLM configured; only retrieval works until llm.provider is set")
	}

	timeout := settings.Timeouts.LLM
	ingestor := services.NewIngestService(index,
		chunker.New(chunker.WithChunkSize(settings.Documents.ChunkSize)),
		pdf.New(),
	)
	retriever := services.NewRetrieveService(index, settings.Retrieval.TopK)
	summarizer := services.NewSummarizeService(llm, timeout)

	router := services.NewRouterService(
		services.NewDocumentQAHandler(retriever, summarizer, settings.Retrieval.TopK),
		services.NewKnowledgeHandler(file.NewKnowledgeBase(settings.Knowledge.Path), llm, timeout),
		services.NewFileSearchHandler(filesystem.NewFinder(), llm, services.FileSearchConfig{
			Root:          filesystem.ResolvePath(settings.Files.Root),
			MaxResults:    settings.Files.MaxResults,
			SearchTimeout: settings.Timeouts.FileSearch,
			LLMTimeout:    timeout,
		}),
		services.NewCodeGenHandler(llm, settings.CodeGen.OutputDir, timeout),
		services.NewNewsHandler(llm, timeout),
		services.NewGeneralHandler(llm, timeout),
	)

	if !opts.Ephemeral {
		prompts, err := file.NewPromptStore(filepath.Join(configDir, "prompts"))
		if err != nil {
			return err
		}
		router.SetPromptStore(prompts)
		summarizer.SetPromptStore(prompts)
	}

	s.Ingestor = ingestor
	s.Retriever = retriever
	s.Router = router
	s.Watcher = services.NewIngestWatcher(ingestor, filesystem.NewWatcher(), services.DefaultDebounce)
	return nil
}

// openIndex opens the configured collection. The sqlite store is shared by
// the collection and the index admin commands.
func openIndex(
	ctx context.Context,
	s *Services,
	settings *domain.AppSettings,
	opts Options,
	configDir string,
	embedder driven.EmbeddingService,
) (driven.VectorIndex, error) {
	if opts.Ephemeral || settings.Store.Backend == "memory" {
		idx := memory.NewVectorIndex(settings.Store.Collection, embedder)
		idx.SetMinScore(settings.Retrieval.MinScore)
		return idx, nil
	}

	dataDir := settings.Store.Directory
	if dataDir == "" {
		dataDir = filepath.Join(configDir, "index")
	}
	store, err := sqlite.NewStore(filesystem.ResolvePath(dataDir), sqlite.WithTimeout(settings.Timeouts.Store))
	if err != nil {
		return nil, err
	}
	s.AddCloser(store.Close)
	s.Collections = sqliteCollections{store: store}

	return store.Collection(ctx, settings.Store.Collection, embedder,
		sqlite.WithMinScore(settings.Retrieval.MinScore))
}

// sqliteCollections adapts the sqlite store to CollectionAdmin.
type sqliteCollections struct {
	store *sqlite.Store
}

func (c sqliteCollections) Collections(ctx context.Context) ([]CollectionInfo, error) {
	infos, err := c.store.Collections(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]CollectionInfo, len(infos))
	for i, info := range infos {
		out[i] = CollectionInfo{
			Name:           info.Name,
			EmbeddingModel: info.EmbeddingModel,
			Dimensions:     info.Dimensions,
			Entries:        info.Entries,
		}
	}
	return out, nil
}

func (c sqliteCollections) DropCollection(ctx context.Context, name string) error {
	return c.store.DropCollection(ctx, name)
}
