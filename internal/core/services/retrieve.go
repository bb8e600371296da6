package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/zainraz03/agentic-assistant/internal/core/domain"
	"github.com/zainraz03/agentic-assistant/internal/core/ports/driven"
	"github.com/zainraz03/agentic-assistant/internal/core/ports/driving"
	"github.com/zainraz03/agentic-assistant/internal/logger"
)

// Ensure RetrieveService implements the interface.
var _ driving.Retriever = (*RetrieveService)(nil)

// RetrieveService runs similarity queries against a vector index.
type RetrieveService struct {
	index       driven.VectorIndex
	defaultTopK int
}

// NewRetrieveService creates a retriever. A non-positive defaultTopK uses
// domain.DefaultTopK.
func NewRetrieveService(index driven.VectorIndex, defaultTopK int) *RetrieveService {
	if defaultTopK <= 0 {
		defaultTopK = domain.DefaultTopK
	}
	return &RetrieveService{index: index, defaultTopK: defaultTopK}
}

// Retrieve returns up to topK matches for query, best first. A blank query
// or an empty index yields an empty slice. Only store failures are errors.
func (s *RetrieveService) Retrieve(ctx context.Context, query string, topK int) ([]domain.Match, error) {
	if topK <= 0 {
		topK = s.defaultTopK
	}
	if strings.TrimSpace(query) == "" {
		logger.Debug("retrieve: empty query")
		return []domain.Match{}, nil
	}

	matches, err := s.index.Query(ctx, query, topK)
	if err != nil {
		if errors.Is(err, domain.ErrStoreUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	if matches == nil {
		matches = []domain.Match{}
	}
	logger.Debug("retrieve %q: %d match(es)", query, len(matches))
	return matches, nil
}

// Texts strips matches down to their chunk text, keeping order.
func Texts(matches []domain.Match) []string {
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.Text
	}
	return out
}
