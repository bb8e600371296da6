// Package domain defines the core business entities for the assistant.
//
// This package is the innermost layer of the hexagon. It has NO external
// dependencies and defines the fundamental types:
//
//   - Document, Page: a source file and its extracted pages
//   - Chunk, IndexEntry: fixed-size units written to the vector index
//   - Match: a ranked hit returned by a similarity query
//   - Mode, Result: routing modes and the normalized handler result
//   - IngestReport, ExtractionWarning: the outcome of an ingest run
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
