// Package driving defines the interfaces that external actors (CLI, HTTP,
// MCP, TUI) use to drive the core. These are the "driving" ports in
// hexagonal architecture terminology.
//
// Implementations of these interfaces live in internal/core/services.
package driving
