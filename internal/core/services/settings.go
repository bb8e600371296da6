package services

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/zainraz03/agentic-assistant/internal/core/domain"
	"github.com/zainraz03/agentic-assistant/internal/core/ports/driven"
	"github.com/zainraz03/agentic-assistant/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// EnvPrefix prefixes environment overrides: llm.model is ASSISTANT_LLM_MODEL.
const EnvPrefix = "ASSISTANT_"

// settingFields maps each config key to the field it fills.
//
//nolint:gosec // G101: these are config key names, not credentials.
var settingFields = map[string]func(*domain.AppSettings) any{
	"documents.directory":     func(s *domain.AppSettings) any { return &s.Documents.Directory },
	"documents.chunk_size":    func(s *domain.AppSettings) any { return &s.Documents.ChunkSize },
	"retrieval.top_k":         func(s *domain.AppSettings) any { return &s.Retrieval.TopK },
	"retrieval.min_score":     func(s *domain.AppSettings) any { return &s.Retrieval.MinScore },
	"store.backend":           func(s *domain.AppSettings) any { return &s.Store.Backend },
	"store.collection":        func(s *domain.AppSettings) any { return &s.Store.Collection },
	"store.directory":         func(s *domain.AppSettings) any { return &s.Store.Directory },
	"embedding.provider":      func(s *domain.AppSettings) any { return &s.Embedding.Provider },
	"embedding.model":         func(s *domain.AppSettings) any { return &s.Embedding.Model },
	"embedding.base_url":      func(s *domain.AppSettings) any { return &s.Embedding.BaseURL },
	"embedding.api_key":       func(s *domain.AppSettings) any { return &s.Embedding.APIKey },
	"llm.provider":            func(s *domain.AppSettings) any { return &s.LLM.Provider },
	"llm.model":               func(s *domain.AppSettings) any { return &s.LLM.Model },
	"llm.base_url":            func(s *domain.AppSettings) any { return &s.LLM.BaseURL },
	"llm.api_key":             func(s *domain.AppSettings) any { return &s.LLM.APIKey },
	"llm.requests_per_minute": func(s *domain.AppSettings) any { return &s.LLM.RequestsPerMinute },
	"timeouts.llm":            func(s *domain.AppSettings) any { return &s.Timeouts.LLM },
	"timeouts.store":          func(s *domain.AppSettings) any { return &s.Timeouts.Store },
	"timeouts.file_search":    func(s *domain.AppSettings) any { return &s.Timeouts.FileSearch },
	"files.root":              func(s *domain.AppSettings) any { return &s.Files.Root },
	"files.max_results":       func(s *domain.AppSettings) any { return &s.Files.MaxResults },
	"codegen.output_dir":      func(s *domain.AppSettings) any { return &s.CodeGen.OutputDir },
	"knowledge.path":          func(s *domain.AppSettings) any { return &s.Knowledge.Path },
}

// providerKeyEnv names the conventional API key variable per provider.
var providerKeyEnv = map[domain.AIProvider]string{
	domain.AIProviderOpenAI:    "OPENAI_API_KEY",
	domain.AIProviderAnthropic: "ANTHROPIC_API_KEY",
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	aiValidator driven.AIConfigValidator
	validate    *validator.Validate
	lookupEnv   func(string) (string, bool)
}

// NewSettingsService creates a new settings service. aiValidator may be nil
// when provider pings are not needed.
func NewSettingsService(configStore driven.ConfigStore, aiValidator driven.AIConfigValidator) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		aiValidator: aiValidator,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
		lookupEnv:   os.LookupEnv,
	}
}

// Get returns defaults overlaid with the config file, then the environment.
// Unparseable values are errors that name the key.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	settings := domain.DefaultAppSettings()

	for _, key := range s.Keys() {
		if _, ok := s.configStore.Get(key); !ok {
			continue
		}
		if err := assign(settingFields[key](&settings), s.configStore.GetString(key)); err != nil {
			return nil, fmt.Errorf("config %s: %w", key, err)
		}
	}

	for _, key := range s.Keys() {
		name := EnvPrefix + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		v, ok := s.lookupEnv(name)
		if !ok {
			continue
		}
		if err := assign(settingFields[key](&settings), v); err != nil {
			return nil, fmt.Errorf("env %s: %w", name, err)
		}
	}

	if settings.LLM.APIKey == "" {
		settings.LLM.APIKey = s.providerKey(settings.LLM.Provider)
	}
	if settings.Embedding.APIKey == "" {
		settings.Embedding.APIKey = s.providerKey(settings.Embedding.Provider)
	}
	if settings.Embedding.Model == "" {
		settings.Embedding.Model = domain.DefaultEmbeddingModels()[settings.Embedding.Provider]
	}
	if settings.LLM.Model == "" {
		settings.LLM.Model = domain.DefaultLLMModels()[settings.LLM.Provider]
	}

	return &settings, nil
}

func (s *SettingsService) providerKey(p domain.AIProvider) string {
	name, ok := providerKeyEnv[p]
	if !ok {
		return ""
	}
	v, _ := s.lookupEnv(name)
	return v
}

// Set parses value for key, checks the result is valid and persists it.
func (s *SettingsService) Set(key, value string) error {
	field, ok := settingFields[key]
	if !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	ptr := field(settings)
	if err := assign(ptr, value); err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrInvalidInput, key, err)
	}
	if err := s.check(settings); err != nil {
		return err
	}

	// Durations are stored in their readable form.
	var stored any = value
	switch v := ptr.(type) {
	case *int:
		stored = *v
	case *float64:
		stored = *v
	case *time.Duration:
		stored = v.String()
	}
	if err := s.configStore.Set(key, stored); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Value returns the effective value of key, formatted the way Set accepts it.
func (s *SettingsService) Value(key string) (string, error) {
	field, ok := settingFields[key]
	if !ok {
		return "", fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
	settings, err := s.Get()
	if err != nil {
		return "", err
	}
	switch v := field(settings).(type) {
	case *string:
		return *v, nil
	case *domain.AIProvider:
		return string(*v), nil
	case *int:
		return strconv.Itoa(*v), nil
	case *float64:
		return strconv.FormatFloat(*v, 'g', -1, 64), nil
	case *time.Duration:
		return v.String(), nil
	default:
		return fmt.Sprint(v), nil
	}
}

// Keys lists the settable keys, sorted.
func (s *SettingsService) Keys() []string {
	keys := make([]string, 0, len(settingFields))
	for k := range settingFields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Validate checks the effective settings.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.check(settings)
}

func (s *SettingsService) check(settings *domain.AppSettings) error {
	if err := s.validate.Struct(settings); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, len(verrs))
			for i, fe := range verrs {
				msgs[i] = fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag())
			}
			return fmt.Errorf("%w: %s", domain.ErrInvalidInput, strings.Join(msgs, "; "))
		}
		return err
	}
	if p := settings.LLM.Provider; p != "" && p.RequiresAPIKey() && settings.LLM.APIKey == "" {
		return fmt.Errorf("%w: llm provider %s needs an API key (set %s)", domain.ErrInvalidInput, p, providerKeyEnv[p])
	}
	if p := settings.Embedding.Provider; p.RequiresAPIKey() && settings.Embedding.APIKey == "" {
		return fmt.Errorf("%w: embedding provider %s needs an API key (set %s)", domain.ErrInvalidInput, p, providerKeyEnv[p])
	}
	return nil
}

// ValidateLLMConfig pings the configured LLM provider.
func (s *SettingsService) ValidateLLMConfig() error {
	if s.aiValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.aiValidator.ValidateLLM(&settings.LLM)
}

// ValidateEmbeddingConfig pings the configured embedding provider.
func (s *SettingsService) ValidateEmbeddingConfig() error {
	if s.aiValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.aiValidator.ValidateEmbedding(&settings.Embedding)
}

// assign parses raw into the field ptr points at.
func assign(ptr any, raw string) error {
	raw = strings.TrimSpace(raw)
	switch p := ptr.(type) {
	case *string:
		*p = raw
	case *domain.AIProvider:
		*p = domain.AIProvider(strings.ToLower(raw))
	case *int:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("%q is not an integer", raw)
		}
		*p = n
	case *float64:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("%q is not a number", raw)
		}
		*p = f
	case *time.Duration:
		d, err := time.ParseDuration(raw)
		if err != nil {
			secs, convErr := strconv.Atoi(raw)
			if convErr != nil {
				return fmt.Errorf("%q is not a duration", raw)
			}
			d = time.Duration(secs) * time.Second
		}
		*p = d
	default:
		return fmt.Errorf("unsupported setting type %T", ptr)
	}
	return nil
}
