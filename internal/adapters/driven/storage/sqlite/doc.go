// Package sqlite provides a durable vector collection store on SQLite.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO. A single database file holds any number of named
// collections; each collection records the embedding model it was created
// with and refuses vectors from any other model.
//
// # Schema
//
// The schema is managed through versioned migrations embedded from the
// migrations/ directory ("NNN_name.up.sql").
//
// # Data Location
//
// By default, the database is stored at ~/.assistant/index/index.db
//
// # Thread Safety
//
// All operations are safe for concurrent use. SQLite runs in WAL mode with
// a busy timeout, and every operation is bounded by the store timeout.
package sqlite
