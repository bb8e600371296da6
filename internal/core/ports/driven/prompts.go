package driven

// PromptStore provides access to LLM prompt templates.
// Implementations may load prompts from files or embed them in the binary.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	Reload()
}

// Well-known prompt names.
const (
	// PromptSummarise frames retrieved chunks for a summary.
	// One %s placeholder: the query. Chunk lines are appended after it.
	PromptSummarise = "summarise"

	// PromptKnowledge answers from the knowledge base.
	// Placeholders: %[1]s subject, %[2]s query, %[3]s facts.
	PromptKnowledge = "knowledge"

	// PromptGeneral handles anything not served by another mode.
	// One %s placeholder: the query.
	PromptGeneral = "general"

	// PromptFileSearch explains found file paths.
	// One %s placeholder: the comma-separated paths.
	PromptFileSearch = "file_search"

	// PromptCodeGen asks for a source file.
	// One %s placeholder: the request.
	PromptCodeGen = "codegen"

	// PromptNewsSystem is the system prompt for news search.
	// No placeholders.
	PromptNewsSystem = "news_system"
)

// PromptStoreAware is implemented by services that accept custom prompts
// after construction.
type PromptStoreAware interface {
	SetPromptStore(store PromptStore)
}
