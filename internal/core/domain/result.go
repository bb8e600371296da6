package domain

// Result is the single response type returned by every handler.
type Result struct {
	// Mode is the mode that actually served the query.
	Mode Mode `json:"mode"`

	// Text is the user-facing answer.
	Text string `json:"text"`

	// Sources lists retrieved chunks backing the answer, if any.
	Sources []Match `json:"sources,omitempty"`

	// Metadata carries handler-specific structured detail.
	Metadata map[string]any `json:"metadata,omitempty"`
}

// NewResult creates a text-only result.
func NewResult(mode Mode, text string) Result {
	return Result{Mode: mode, Text: text}
}

// WithMeta sets a metadata key and returns the result.
func (r Result) WithMeta(key string, value any) Result {
	if r.Metadata == nil {
		r.Metadata = make(map[string]any)
	}
	r.Metadata[key] = value
	return r
}
