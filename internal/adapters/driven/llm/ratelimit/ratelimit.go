// Package ratelimit throttles calls to an LLM service.
package ratelimit

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/zainraz03/agentic-assistant/internal/core/domain"
	"github.com/zainraz03/agentic-assistant/internal/core/ports/driven"
)

// Ensure LLMService implements the interface.
var _ driven.LLMService = (*LLMService)(nil)

// DefaultBackoff is how long calls are held after the provider reports 429.
const DefaultBackoff = 30 * time.Second

// LLMService wraps another LLMService with a token bucket. A rate-limit
// error from the provider pauses further calls for the backoff period; the
// failing call itself is not retried.
type LLMService struct {
	next    driven.LLMService
	limiter *rate.Limiter
	backoff time.Duration

	mu      sync.Mutex
	retryAt time.Time
	now     func() time.Time
}

// Wrap limits next to requestsPerMinute calls. A non-positive rate returns
// next unchanged.
func Wrap(next driven.LLMService, requestsPerMinute int) driven.LLMService {
	if requestsPerMinute <= 0 {
		return next
	}
	return New(next, requestsPerMinute, DefaultBackoff)
}

// New creates a limiter with burst equal to one call.
func New(next driven.LLMService, requestsPerMinute int, backoff time.Duration) *LLMService {
	return &LLMService{
		next:    next,
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(requestsPerMinute)), 1),
		backoff: backoff,
		now:     time.Now,
	}
}

func (s *LLMService) wait(ctx context.Context) error {
	s.mu.Lock()
	retryAt := s.retryAt
	s.mu.Unlock()

	if d := retryAt.Sub(s.now()); d > 0 {
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
	return s.limiter.Wait(ctx)
}

func (s *LLMService) record(err error) {
	if !errors.Is(err, domain.ErrRateLimited) {
		return
	}
	s.mu.Lock()
	s.retryAt = s.now().Add(s.backoff)
	s.mu.Unlock()
}

// Generate waits for a token then delegates.
func (s *LLMService) Generate(ctx context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	if err := s.wait(ctx); err != nil {
		return "", err
	}
	out, err := s.next.Generate(ctx, prompt, opts)
	s.record(err)
	return out, err
}

// Chat waits for a token then delegates.
func (s *LLMService) Chat(ctx context.Context, messages []driven.ChatMessage, opts driven.ChatOptions) (string, error) {
	if err := s.wait(ctx); err != nil {
		return "", err
	}
	out, err := s.next.Chat(ctx, messages, opts)
	s.record(err)
	return out, err
}

// ModelName returns the wrapped model name.
func (s *LLMService) ModelName() string { return s.next.ModelName() }

// Ping is not throttled.
func (s *LLMService) Ping(ctx context.Context) error { return s.next.Ping(ctx) }

// Close closes the wrapped service.
func (s *LLMService) Close() error { return s.next.Close() }
