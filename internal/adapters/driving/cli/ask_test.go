package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zainraz03/agentic-assistant/internal/core/domain"
)

func TestAskCmd(t *testing.T) {
	t.Run("routes with the given mode", func(t *testing.T) {
		f := newFixture()
		f.router.result = domain.Result{
			Mode: domain.ModeDocumentQA,
			Text: "Zain's CGPA is 3.93.",
			Sources: []domain.Match{{
				ID:       "resume.pdf_0",
				Text:     "CGPA: 3.93\nDean's list",
				Metadata: domain.EntryMetadata{Filename: "resume.pdf", Page: 0},
				Score:    0.91,
			}},
		}

		out, err := f.run(t, "ask", "--mode", "document_qa", "What", "is", "Zain's", "CGPA?")

		require.NoError(t, err)
		assert.Equal(t, "What is Zain's CGPA?", f.router.gotQuery)
		assert.Equal(t, domain.ModeDocumentQA, f.router.gotMode)
		assert.Contains(t, out, "Zain's CGPA is 3.93.")
		assert.Contains(t, out, "resume.pdf page 0 (0.91)")
		assert.Contains(t, out, "CGPA: 3.93 Dean's list")
	})

	t.Run("defaults to general", func(t *testing.T) {
		f := newFixture()

		_, err := f.run(t, "ask", "hello")

		require.NoError(t, err)
		assert.Equal(t, domain.ModeGeneral, f.router.gotMode)
	})

	t.Run("unknown mode falls back to general", func(t *testing.T) {
		f := newFixture()

		_, err := f.run(t, "ask", "-m", "weather", "hello")

		require.NoError(t, err)
		assert.Equal(t, domain.ModeGeneral, f.router.gotMode)
	})

	t.Run("accepts labels", func(t *testing.T) {
		f := newFixture()

		_, err := f.run(t, "ask", "-m", "file finder", "report.txt")

		require.NoError(t, err)
		assert.Equal(t, domain.ModeFileSearch, f.router.gotMode)
	})

	t.Run("prints saved code path", func(t *testing.T) {
		f := newFixture()
		f.router.result = domain.NewResult(domain.ModeCodeGeneration, "print(1)").
			WithMeta("saved", true).WithMeta("path", "generated/generated_1.py")

		out, err := f.run(t, "ask", "-m", "code_generation", "print one")

		require.NoError(t, err)
		assert.Contains(t, out, "generated/generated_1.py")
	})

	t.Run("json output", func(t *testing.T) {
		f := newFixture()

		out, err := f.run(t, "ask", "--json", "hello")

		require.NoError(t, err)
		var res domain.Result
		require.NoError(t, json.Unmarshal([]byte(out), &res))
		assert.Equal(t, "hello", res.Text)
	})

	t.Run("wraps errors", func(t *testing.T) {
		f := newFixture()
		f.router.err = domain.ErrGenerationFailed

		_, err := f.run(t, "ask", "hello")

		assert.ErrorIs(t, err, domain.ErrGenerationFailed)
		assert.Contains(t, err.Error(), "query failed")
	})

	t.Run("requires a query", func(t *testing.T) {
		_, err := newFixture().run(t, "ask")
		assert.Error(t, err)
	})
}

func TestRetrieveCmd(t *testing.T) {
	t.Run("lists matches", func(t *testing.T) {
		f := newFixture()
		f.retriever.matches = []domain.Match{
			{ID: "a.pdf_0", Text: "alpha", Metadata: domain.EntryMetadata{Filename: "a.pdf", Page: 0}, Score: 0.5},
			{ID: "a.pdf_3", Text: "beta", Metadata: domain.EntryMetadata{Filename: "a.pdf", Page: 1}, Score: 0.4},
		}

		out, err := f.run(t, "retrieve", "-k", "2", "alpha")

		require.NoError(t, err)
		assert.Equal(t, 2, f.retriever.gotTopK)
		assert.Contains(t, out, "[1] a.pdf page 0 (0.50)")
		assert.Contains(t, out, "[2] a.pdf page 1 (0.40)")
	})

	t.Run("empty result is not an error", func(t *testing.T) {
		f := newFixture()

		out, err := f.run(t, "retrieve", "nothing")

		require.NoError(t, err)
		assert.Equal(t, domain.DefaultTopK, f.retriever.gotTopK)
		assert.Contains(t, out, "No results found.")
	})

	t.Run("empty json is an array", func(t *testing.T) {
		out, err := newFixture().run(t, "retrieve", "--json", "nothing")

		require.NoError(t, err)
		assert.JSONEq(t, "[]", out)
	})

	t.Run("store failure", func(t *testing.T) {
		f := newFixture()
		f.retriever.err = domain.ErrStoreUnavailable

		_, err := f.run(t, "retrieve", "x")

		assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	})
}

func TestModesCmd(t *testing.T) {
	out, err := newFixture().run(t, "modes")

	require.NoError(t, err)
	for _, m := range domain.AllModes() {
		assert.Contains(t, out, string(m))
		assert.Contains(t, out, m.Label())
	}
}

func TestSnippet(t *testing.T) {
	assert.Equal(t, "a b", snippet("a\nb", 10))
	assert.Equal(t, "abc...", snippet("abcdef", 3))
	assert.Equal(t, "żółw", snippet("żółw", 4))
}
