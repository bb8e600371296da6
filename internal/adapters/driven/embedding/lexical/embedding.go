// Package lexical provides an offline embedding service that hashes word
// frequencies into a fixed-size vector. It needs no model server, so the
// index works out of the box; semantic quality is that of keyword overlap.
package lexical

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"regexp"
	"strings"

	"github.com/zainraz03/agentic-assistant/internal/core/domain"
	"github.com/zainraz03/agentic-assistant/internal/core/ports/driven"
)

// Ensure EmbeddingService implements the interface.
var _ driven.EmbeddingService = (*EmbeddingService)(nil)

// DefaultDimensions is the default vector size.
const DefaultDimensions = domain.DefaultLexicalDimensions

var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}]+(?:['’.][\p{L}\p{N}]+)*`)

var stopwords = func() map[string]struct{} {
	words := []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "else", "for", "to", "of",
		"in", "on", "at", "by", "with", "as", "is", "are", "was", "were", "be", "been",
		"being", "it", "this", "that", "these", "those", "from", "up", "down", "over",
		"under", "so", "such", "into", "about", "than", "too", "very", "can", "will",
		"just", "should", "now", "what", "which", "who", "whom", "how", "my", "your",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}()

// EmbeddingService hashes tokens into buckets and L2-normalises the result.
type EmbeddingService struct {
	dimensions int
}

// NewEmbeddingService creates a lexical embedder. Non-positive dimensions
// use DefaultDimensions.
func NewEmbeddingService(dimensions int) *EmbeddingService {
	if dimensions <= 0 {
		dimensions = DefaultDimensions
	}
	return &EmbeddingService{dimensions: dimensions}
}

// Embed returns the normalised hashed term-frequency vector for text.
func (s *EmbeddingService) Embed(_ context.Context, text string) ([]float32, error) {
	vec := make([]float64, s.dimensions)
	for _, tok := range Tokenize(text) {
		vec[s.bucket(tok)]++
	}

	var norm float64
	for _, v := range vec {
		norm += v * v
	}
	norm = math.Sqrt(norm)

	out := make([]float32, s.dimensions)
	if norm == 0 {
		return out, nil
	}
	for i, v := range vec {
		out[i] = float32(v / norm)
	}
	return out, nil
}

// EmbedBatch embeds each text in order.
func (s *EmbeddingService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		v, _ := s.Embed(ctx, t)
		out[i] = v
	}
	return out, nil
}

func (s *EmbeddingService) bucket(token string) int {
	h := fnv.New32a()
	h.Write([]byte(token)) //nolint:errcheck
	return int(h.Sum32() % uint32(s.dimensions))
}

// Dimensions returns the embedding vector size.
func (s *EmbeddingService) Dimensions() int {
	return s.dimensions
}

// ModelName encodes the dimension so collections built at one size are
// never queried at another.
func (s *EmbeddingService) ModelName() string {
	return fmt.Sprintf("lexical-hash-%d", s.dimensions)
}

// Ping always succeeds.
func (s *EmbeddingService) Ping(_ context.Context) error {
	return nil
}

// Close releases resources.
func (s *EmbeddingService) Close() error {
	return nil
}

// Tokenize lower-cases text and returns its words without stopwords.
func Tokenize(text string) []string {
	raw := tokenPattern.FindAllString(strings.ToLower(text), -1)
	out := raw[:0]
	for _, t := range raw {
		if _, stop := stopwords[t]; stop {
			continue
		}
		out = append(out, t)
	}
	return out
}
