// Package mcp provides an MCP (Model Context Protocol) server adapter for
// the assistant. It lets AI clients route queries, retrieve document chunks
// and trigger ingestion.
package mcp

import "errors"

// ErrMissingRouter is returned when the router is not provided.
var ErrMissingRouter = errors.New("mcp: router is required")
