// Package similarity ranks stored vectors against a query vector.
package similarity

import (
	"math"
	"sort"

	"github.com/zainraz03/agentic-assistant/internal/core/domain"
)

// Cosine returns the cosine similarity of a and b. Vectors of different
// length or zero magnitude score 0.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Rank orders matches by descending score, drops those scoring at or
// below minScore, and keeps at most topK. Ties are broken by ID so the
// order is stable across runs.
func Rank(matches []domain.Match, topK int, minScore float64) []domain.Match {
	kept := make([]domain.Match, 0, len(matches))
	for _, m := range matches {
		if m.Score > minScore {
			kept = append(kept, m)
		}
	}

	sort.Slice(kept, func(i, j int) bool {
		if kept[i].Score != kept[j].Score {
			return kept[i].Score > kept[j].Score
		}
		return kept[i].ID < kept[j].ID
	})

	if topK > 0 && len(kept) > topK {
		kept = kept[:topK]
	}
	return kept
}
