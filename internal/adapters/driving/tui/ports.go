package tui

import (
	"github.com/zainraz03/agentic-assistant/internal/core/ports/driving"
)

// Ports aggregates the driving ports the TUI talks to.
type Ports struct {
	// Router answers queries. Required.
	Router driving.Router

	// Ingestor re-ingests DocumentDir on request. Optional.
	Ingestor driving.Ingestor

	// DocumentDir is the directory the ingest key loads.
	DocumentDir string
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Router == nil {
		return ErrMissingRouter
	}
	return nil
}
