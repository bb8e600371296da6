package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/zainraz03/agentic-assistant/internal/adapters/driven/storage/similarity"
	"github.com/zainraz03/agentic-assistant/internal/core/domain"
	"github.com/zainraz03/agentic-assistant/internal/core/ports/driven"
)

// Ensure VectorIndex implements the interface.
var _ driven.VectorIndex = (*VectorIndex)(nil)

type storedEntry struct {
	entry  domain.IndexEntry
	vector []float32
}

// VectorIndex is an in-memory driven.VectorIndex using brute-force cosine
// similarity. Contents are lost when the process exits.
type VectorIndex struct {
	mu       sync.RWMutex
	name     string
	embedder driven.EmbeddingService
	minScore float64
	entries  map[string]storedEntry
}

// NewVectorIndex creates an empty named index.
func NewVectorIndex(name string, embedder driven.EmbeddingService) *VectorIndex {
	return &VectorIndex{
		name:     name,
		embedder: embedder,
		entries:  make(map[string]storedEntry),
	}
}

// SetMinScore drops query matches scoring at or below score.
func (v *VectorIndex) SetMinScore(score float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.minScore = score
}

// Name returns the collection name.
func (v *VectorIndex) Name() string {
	return v.name
}

// Upsert embeds entries and stores them, overwriting by ID.
func (v *VectorIndex) Upsert(ctx context.Context, entries []domain.IndexEntry) error {
	if len(entries) == 0 {
		return nil
	}
	if v.embedder == nil {
		return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, domain.ErrEmbeddingUnavailable)
	}

	texts := make([]string, len(entries))
	for i, e := range entries {
		texts[i] = e.Text
	}
	vectors, err := v.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return fmt.Errorf("embedding entries: %w", err)
	}
	if len(vectors) != len(entries) {
		return fmt.Errorf("embedding entries: got %d vectors for %d texts", len(vectors), len(entries))
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	for i, e := range entries {
		v.entries[e.ID] = storedEntry{entry: e, vector: vectors[i]}
	}
	return nil
}

// Query returns up to topK entries ranked by cosine similarity.
func (v *VectorIndex) Query(ctx context.Context, text string, topK int) ([]domain.Match, error) {
	if strings.TrimSpace(text) == "" {
		return []domain.Match{}, nil
	}

	v.mu.RLock()
	empty := len(v.entries) == 0
	v.mu.RUnlock()
	if empty {
		return []domain.Match{}, nil
	}

	query, err := v.embedder.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	v.mu.RLock()
	defer v.mu.RUnlock()

	matches := make([]domain.Match, 0, len(v.entries))
	for _, s := range v.entries {
		matches = append(matches, domain.Match{
			ID:       s.entry.ID,
			Text:     s.entry.Text,
			Metadata: s.entry.Metadata,
			Score:    similarity.Cosine(query, s.vector),
		})
	}
	return similarity.Rank(matches, topK, v.minScore), nil
}

// Count returns the number of stored entries.
func (v *VectorIndex) Count(_ context.Context) (int, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.entries), nil
}

// Close releases the entries.
func (v *VectorIndex) Close() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.entries = make(map[string]storedEntry)
	return nil
}
