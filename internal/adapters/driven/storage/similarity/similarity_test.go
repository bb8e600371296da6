package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zainraz03/agentic-assistant/internal/core/domain"
)

func TestCosine(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1},
		{"scaled", []float32{1, 1}, []float32{3, 3}, 1},
		{"length mismatch", []float32{1}, []float32{1, 2}, 0},
		{"empty", nil, nil, 0},
		{"zero vector", []float32{0, 0}, []float32{1, 1}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Cosine(tt.a, tt.b), 1e-9)
		})
	}
}

func TestRank(t *testing.T) {
	matches := []domain.Match{
		{ID: "c", Score: 0.2},
		{ID: "a", Score: 0.9},
		{ID: "z", Score: 0},
		{ID: "b", Score: 0.9},
		{ID: "d", Score: 0.5},
	}

	t.Run("orders and truncates", func(t *testing.T) {
		got := Rank(matches, 3, 0)
		assert.Equal(t, []string{"a", "b", "d"}, ids(got))
	})

	t.Run("drops zero scores", func(t *testing.T) {
		got := Rank(matches, 10, 0)
		assert.Equal(t, []string{"a", "b", "d", "c"}, ids(got))
	})

	t.Run("min score", func(t *testing.T) {
		got := Rank(matches, 10, 0.5)
		assert.Equal(t, []string{"a", "b"}, ids(got))
	})

	t.Run("empty", func(t *testing.T) {
		got := Rank(nil, 3, 0)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func ids(ms []domain.Match) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.ID
	}
	return out
}
