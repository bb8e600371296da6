package driven

// KnowledgeBase exposes static facts about a single subject.
type KnowledgeBase interface {
	// Subject names who or what the facts describe.
	Subject() (string, error)

	// Facts returns the knowledge base rendered as plain text.
	Facts() (string, error)
}
