// Package messages defines Bubbletea message types for the TUI.
package messages

import (
	"github.com/zainraz03/agentic-assistant/internal/core/domain"
)

// QueryAnswered carries a routed result back to the model.
type QueryAnswered struct {
	Query  string
	Mode   domain.Mode
	Result domain.Result
	Err    error
}

// IngestCompleted carries the outcome of an ingest run.
type IngestCompleted struct {
	Report *domain.IngestReport
	Err    error
}

// ModeChanged is sent when the selected mode changes.
type ModeChanged struct {
	Mode domain.Mode
}
