package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/zainraz03/agentic-assistant/internal/core/domain"
	"github.com/zainraz03/agentic-assistant/internal/core/ports/driven"
	"github.com/zainraz03/agentic-assistant/internal/core/ports/driving"
	"github.com/zainraz03/agentic-assistant/internal/logger"
)

// Ensure RouterService implements the interface.
var _ driving.Router = (*RouterService)(nil)

// RouterService dispatches queries to one handler per mode.
type RouterService struct {
	handlers map[domain.Mode]driving.Handler
	log      logger.Logger
}

// NewRouterService creates a router over handlers. A later handler for
// the same mode replaces an earlier one.
func NewRouterService(handlers ...driving.Handler) *RouterService {
	r := &RouterService{
		handlers: make(map[domain.Mode]driving.Handler),
		log:      logger.With("router"),
	}
	for _, h := range handlers {
		r.Register(h)
	}
	return r
}

// Register adds or replaces the handler for h.Mode().
func (r *RouterService) Register(h driving.Handler) {
	r.handlers[h.Mode()] = h
}

// SetPromptStore passes the store to every handler that takes one.
func (r *RouterService) SetPromptStore(store driven.PromptStore) {
	for _, h := range r.handlers {
		if aware, ok := h.(driven.PromptStoreAware); ok {
			aware.SetPromptStore(store)
		}
	}
}

// Route answers query with the handler for mode, falling back to
// domain.ModeGeneral when mode has none. Handler errors are returned
// unchanged apart from a mode prefix; there is no fallback on error.
func (r *RouterService) Route(ctx context.Context, query string, mode domain.Mode) (domain.Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return domain.Result{}, fmt.Errorf("%w: empty query", domain.ErrInvalidInput)
	}

	h, ok := r.handlers[mode]
	if !ok {
		r.log.Debug("no handler for mode %q, using %s", mode, domain.ModeGeneral)
		h, ok = r.handlers[domain.ModeGeneral]
		if !ok {
			return domain.Result{}, fmt.Errorf("%w: no handler for mode %q", domain.ErrNotFound, mode)
		}
	}

	start := time.Now()
	res, err := h.Handle(ctx, query)
	if err != nil {
		r.log.Error("%s: %v", h.Mode(), err)
		return domain.Result{Mode: h.Mode()}, fmt.Errorf("%s: %w", h.Mode(), err)
	}
	if res.Mode == "" {
		res.Mode = h.Mode()
	}
	r.log.Debug("%s answered in %s", h.Mode(), time.Since(start).Round(time.Millisecond))
	return res, nil
}

// Modes lists the registered modes in display order.
func (r *RouterService) Modes() []domain.Mode {
	var modes []domain.Mode
	for _, m := range domain.AllModes() {
		if _, ok := r.handlers[m]; ok {
			modes = append(modes, m)
		}
	}
	return modes
}
