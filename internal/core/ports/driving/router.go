package driving

import (
	"context"

	"github.com/zainraz03/agentic-assistant/internal/core/domain"
)

// Handler serves queries for exactly one mode.
type Handler interface {
	// Mode returns the mode this handler serves.
	Mode() domain.Mode

	// Handle answers the query.
	Handle(ctx context.Context, query string) (domain.Result, error)
}

// Router dispatches queries to handlers by mode.
type Router interface {
	// Route answers query with the handler for mode. Modes without a
	// handler fall back to domain.ModeGeneral.
	Route(ctx context.Context, query string, mode domain.Mode) (domain.Result, error)

	// Modes lists the modes that have a registered handler.
	Modes() []domain.Mode
}
