package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/zainraz03/agentic-assistant/internal/core/domain"
	"github.com/zainraz03/agentic-assistant/internal/core/ports/driven"
	"github.com/zainraz03/agentic-assistant/internal/core/ports/driving"
	"github.com/zainraz03/agentic-assistant/internal/logger"
)

// Ensure SummarizeService implements the interfaces.
var (
	_ driving.Summarizer      = (*SummarizeService)(nil)
	_ driven.PromptStoreAware = (*SummarizeService)(nil)
)

// NoResultsMessage is returned instead of calling the model when nothing
// was retrieved.
const NoResultsMessage = "No results found for the query."

// SummarizeService asks the LLM to answer a query from retrieved chunks.
type SummarizeService struct {
	promptSource
	llm     driven.LLMService
	timeout time.Duration
}

// NewSummarizeService creates a summarizer. llm may be nil, in which case
// every non-empty call fails with domain.ErrGenerationFailed. A
// non-positive timeout uses domain.DefaultLLMTimeout.
func NewSummarizeService(llm driven.LLMService, timeout time.Duration) *SummarizeService {
	if timeout <= 0 {
		timeout = domain.DefaultLLMTimeout
	}
	return &SummarizeService{llm: llm, timeout: timeout}
}

// Summarize returns the model's answer to query grounded in chunks.
func (s *SummarizeService) Summarize(ctx context.Context, chunks []string, query string) (string, error) {
	if len(chunks) == 0 {
		return NoResultsMessage, nil
	}
	prompt := s.BuildPrompt(chunks, query)
	return generate(ctx, s.llm, s.timeout, prompt)
}

// BuildPrompt renders the summary prompt: the header naming the query, a
// blank line, then one "- chunk" line per chunk.
func (s *SummarizeService) BuildPrompt(chunks []string, query string) string {
	var b strings.Builder
	b.WriteString(s.render(driven.PromptSummarise, query))
	b.WriteString("\n\n")
	for i, c := range chunks {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("- ")
		b.WriteString(c)
	}
	return b.String()
}

// generate calls llm.Generate under timeout and wraps every failure in
// domain.ErrGenerationFailed.
func generate(ctx context.Context, llm driven.LLMService, timeout time.Duration, prompt string) (string, error) {
	if llm == nil {
		return "", fmt.Errorf("%w: %w", domain.ErrGenerationFailed, domain.ErrLLMUnavailable)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	logger.Debug("generate with %s: %d byte prompt", llm.ModelName(), len(prompt))
	out, err := llm.Generate(ctx, prompt, driven.GenerateOptions{})
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrGenerationFailed, err)
	}
	return out, nil
}

// chat is generate for multi-turn requests.
func chat(ctx context.Context, llm driven.LLMService, timeout time.Duration, messages []driven.ChatMessage) (string, error) {
	if llm == nil {
		return "", fmt.Errorf("%w: %w", domain.ErrGenerationFailed, domain.ErrLLMUnavailable)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	out, err := llm.Chat(ctx, messages, driven.ChatOptions{})
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrGenerationFailed, err)
	}
	return out, nil
}
