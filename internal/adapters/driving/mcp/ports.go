package mcp

import (
	"github.com/zainraz03/agentic-assistant/internal/core/ports/driving"
)

// Ports aggregates the driving ports the MCP server exposes.
type Ports struct {
	// Router answers queries by mode.
	Router driving.Router

	// Retriever returns raw document chunks. Optional.
	Retriever driving.Retriever

	// Ingestor loads documents into the index. Optional.
	Ingestor driving.Ingestor

	// DocumentDir is ingested when the ingest tool is called without a
	// directory.
	DocumentDir string
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Router == nil {
		return ErrMissingRouter
	}
	return nil
}
