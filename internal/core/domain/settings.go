package domain

import "time"

// AIProvider identifies an AI service provider for embeddings or LLM.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is a local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is the OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderAnthropic is the Anthropic cloud API.
	AIProviderAnthropic AIProvider = "anthropic"

	// AIProviderLexical is the offline hashed term-frequency embedder.
	// Embeddings only.
	AIProviderLexical AIProvider = "lexical"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI, AIProviderAnthropic, AIProviderLexical:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI || p == AIProviderAnthropic
}

// IsLocal returns true if this provider runs locally.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderOllama || p == AIProviderLexical
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	case AIProviderAnthropic:
		return "Anthropic (cloud)"
	case AIProviderLexical:
		return "Lexical (offline, no model)"
	default:
		return unknownDescription
	}
}

// EmbeddingSettings holds embedding provider configuration.
type EmbeddingSettings struct {
	// Provider is the embedding service provider.
	Provider AIProvider `validate:"required,oneof=ollama openai lexical"`

	// Model is the embedding model name.
	Model string

	// BaseURL is the API endpoint (for Ollama or OpenAI-compatible servers).
	BaseURL string `validate:"omitempty,url"`

	// APIKey is the API key (for OpenAI).
	APIKey string
}

// IsConfigured returns true if the embedding provider is set up.
func (e EmbeddingSettings) IsConfigured() bool {
	if !e.Provider.IsValid() || e.Provider == AIProviderAnthropic {
		return false
	}
	if e.Provider.RequiresAPIKey() && e.APIKey == "" {
		return false
	}
	return true
}

// LLMSettings holds LLM provider configuration.
type LLMSettings struct {
	// Provider is the LLM service provider.
	Provider AIProvider `validate:"omitempty,oneof=ollama openai anthropic"`

	// Model is the LLM model name.
	Model string

	// BaseURL is the API endpoint (for Ollama).
	BaseURL string `validate:"omitempty,url"`

	// APIKey is the API key (for OpenAI/Anthropic).
	APIKey string

	// RequestsPerMinute caps outgoing calls. Zero disables limiting.
	RequestsPerMinute int `validate:"min=0"`
}

// IsConfigured returns true if the LLM provider is set up.
func (l LLMSettings) IsConfigured() bool {
	if !l.Provider.IsValid() || l.Provider == AIProviderLexical {
		return false
	}
	if l.Provider.RequiresAPIKey() && l.APIKey == "" {
		return false
	}
	return true
}

// DocumentSettings configures ingestion.
type DocumentSettings struct {
	// Directory holds the PDF files to ingest.
	Directory string `validate:"required"`

	// ChunkSize is the maximum chunk length in characters.
	ChunkSize int `validate:"min=1,max=100000"`
}

// RetrievalSettings configures similarity queries.
type RetrievalSettings struct {
	// TopK is the default number of chunks retrieved per query.
	TopK int `validate:"min=1,max=100"`

	// MinScore drops matches below this cosine similarity.
	MinScore float64 `validate:"min=0,max=1"`
}

// StoreSettings configures the vector store.
type StoreSettings struct {
	// Backend selects the store implementation.
	Backend string `validate:"oneof=sqlite memory"`

	// Collection is the named collection chunks are written to.
	Collection string `validate:"required"`

	// Directory is where the durable store lives. Empty uses the data dir.
	Directory string
}

// TimeoutSettings bounds blocking calls.
type TimeoutSettings struct {
	LLM        time.Duration `validate:"gt=0"`
	Store      time.Duration `validate:"gt=0"`
	FileSearch time.Duration `validate:"gt=0"`
}

// FileSearchSettings configures the file finder.
type FileSearchSettings struct {
	// Root is where the walk starts.
	Root string `validate:"required"`

	// MaxResults caps how many paths are returned.
	MaxResults int `validate:"min=1"`
}

// CodeGenSettings configures the code generator.
type CodeGenSettings struct {
	// OutputDir receives generated source files.
	OutputDir string `validate:"required"`
}

// KnowledgeSettings configures the static knowledge base.
type KnowledgeSettings struct {
	// Path is the YAML knowledge base file.
	Path string
}

// AppSettings holds all application settings.
type AppSettings struct {
	Documents DocumentSettings
	Retrieval RetrievalSettings
	Store     StoreSettings
	Embedding EmbeddingSettings
	LLM       LLMSettings
	Timeouts  TimeoutSettings
	Files     FileSearchSettings
	CodeGen   CodeGenSettings
	Knowledge KnowledgeSettings
}

// Defaults used when nothing is configured.
const (
	DefaultDocumentDir       = "pdf_files"
	DefaultChunkSize         = 1000
	DefaultTopK              = 3
	DefaultCollection        = "pdf_chunks"
	DefaultStoreBackend      = "sqlite"
	DefaultLLMTimeout        = 120 * time.Second
	DefaultStoreTimeout      = 10 * time.Second
	DefaultFileTimeout       = 30 * time.Second
	DefaultFileSearchRoot    = "."
	DefaultFileMaxResults    = 20
	DefaultCodeGenDir        = "generated"
	DefaultKnowledgeFile     = "knowledge.yaml"
	DefaultLexicalDimensions = 512
)

// DefaultAppSettings returns settings with sensible defaults.
// The LLM is left unconfigured; embeddings default to the offline
// lexical provider so ingestion works without any model server.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Documents: DocumentSettings{
			Directory: DefaultDocumentDir,
			ChunkSize: DefaultChunkSize,
		},
		Retrieval: RetrievalSettings{
			TopK: DefaultTopK,
		},
		Store: StoreSettings{
			Backend:    DefaultStoreBackend,
			Collection: DefaultCollection,
		},
		Embedding: EmbeddingSettings{
			Provider: AIProviderLexical,
		},
		LLM: LLMSettings{},
		Timeouts: TimeoutSettings{
			LLM:        DefaultLLMTimeout,
			Store:      DefaultStoreTimeout,
			FileSearch: DefaultFileTimeout,
		},
		Files: FileSearchSettings{
			Root:       DefaultFileSearchRoot,
			MaxResults: DefaultFileMaxResults,
		},
		CodeGen: CodeGenSettings{
			OutputDir: DefaultCodeGenDir,
		},
		Knowledge: KnowledgeSettings{
			Path: DefaultKnowledgeFile,
		},
	}
}

// AllEmbeddingProviders returns providers that support embeddings.
func AllEmbeddingProviders() []AIProvider {
	return []AIProvider{
		AIProviderLexical,
		AIProviderOllama,
		AIProviderOpenAI,
	}
}

// AllLLMProviders returns providers that support LLM operations.
func AllLLMProviders() []AIProvider {
	return []AIProvider{
		AIProviderOllama,
		AIProviderOpenAI,
		AIProviderAnthropic,
	}
}

// DefaultEmbeddingModels returns default models for each embedding provider.
func DefaultEmbeddingModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama:  "nomic-embed-text",
		AIProviderOpenAI:  "text-embedding-3-small",
		AIProviderLexical: "lexical-hash-512",
	}
}

// DefaultLLMModels returns default models for each LLM provider.
func DefaultLLMModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama:    "llama3.2",
		AIProviderOpenAI:    "gpt-4o-mini",
		AIProviderAnthropic: "claude-3-5-sonnet-latest",
	}
}

// EmbeddingDimensions returns the vector dimensions for known models.
func EmbeddingDimensions() map[string]int {
	return map[string]int{
		// Ollama models
		"nomic-embed-text":  768,
		"mxbai-embed-large": 1024,
		"all-minilm":        384,
		// OpenAI models
		"text-embedding-3-small": 1536,
		"text-embedding-3-large": 3072,
		"text-embedding-ada-002": 1536,
		// Offline
		"lexical-hash-512": DefaultLexicalDimensions,
	}
}
