package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/zainraz03/agentic-assistant/internal/core/domain"
)

var (
	heading = color.New(color.FgGreen, color.Bold).SprintFunc()
	faint   = color.New(color.Faint).SprintFunc()
	warning = color.New(color.FgYellow).SprintFunc()
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	return nil
}

func printMatches(w io.Writer, matches []domain.Match) {
	for i, m := range matches {
		fmt.Fprintf(w, "  [%d] %s page %d (%.2f)\n", i+1, m.Metadata.Filename, m.Metadata.Page, m.Score)
		fmt.Fprintf(w, "      %s\n", faint(snippet(m.Text, 160)))
	}
}

func printReport(w io.Writer, r *domain.IngestReport) {
	fmt.Fprintf(w, "%s %d files, %d pages, %d chunks in %s\n",
		heading("Ingested"), r.Files, r.Pages, r.Chunks, r.Duration().Round(1e6))
	for _, warn := range r.Warnings {
		fmt.Fprintf(w, "  %s %s\n", warning("warning:"), warn.Error())
	}
}

// snippet shortens s to at most n runes on one line.
func snippet(s string, n int) string {
	r := []rune(s)
	for i, c := range r {
		if c == '\n' || c == '\r' || c == '\t' {
			r[i] = ' '
		}
	}
	if len(r) <= n {
		return string(r)
	}
	return string(r[:n]) + "..."
}
