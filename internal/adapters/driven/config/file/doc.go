// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data to the local filesystem.
//
// Adapters:
//   - ConfigStore: TOML-based configuration storage
//   - PromptStore: user-editable prompt templates
//   - KnowledgeBase: YAML facts for knowledge lookups
//   - LoadEnv: .env files layered under the process environment
package file
