// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - VectorIndex: Named, persistent collection of chunk embeddings
//   - EmbeddingService: Turns text into vectors for the VectorIndex
//   - PageExtractor: Extracts per-page plain text from a document file
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the affected handlers report the capability as unavailable:
//
//   - LLMService: Text completion. Without it, every generating handler fails
//     with ErrGenerationFailed.
//   - PromptStore: Custom prompt templates. Without it, built-in defaults apply.
//   - KnowledgeBase: Static facts for knowledge lookups.
//   - FileFinder: Filesystem lookup by exact name.
//   - DirectoryWatcher: Change notifications for re-ingestion.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
