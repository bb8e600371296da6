package services

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/zainraz03/agentic-assistant/internal/core/ports/driven"
)

// Built-in templates, used when no PromptStore is set or it cannot supply
// a prompt. They match the defaults the file store writes out.
var builtinPrompts = map[string]string{
	driven.PromptSummarise:  "Based on the following relevant text chunks, provide a coherent summary responding to the query '%s':",
	driven.PromptKnowledge:  "Query about %[1]s: '%[2]s'\n\nInformation about %[1]s:\n%[3]s\nPlease provide a detailed and relevant answer based on the knowledge base.",
	driven.PromptGeneral:    "Handling general query about: %s",
	driven.PromptFileSearch: "Just explain the following path in words for the File found at: %s",
	driven.PromptCodeGen:    "%s\n\nReply with the complete program in a single fenced code block tagged with its language. After the block, give the file name it should be saved as.",
	driven.PromptNewsSystem: "You are a news agent that helps users find the latest news.\nGiven a topic by the user, respond with 4 latest news items about that topic.\nSearch for 10 news items and select the top 4 unique items and also give the website links.\nSearch in English.",
}

// promptSource resolves templates from an optional store.
type promptSource struct {
	store driven.PromptStore
}

// SetPromptStore sets the store for user-editable prompts.
func (p *promptSource) SetPromptStore(store driven.PromptStore) {
	p.store = store
}

func (p *promptSource) template(name string) string {
	if p.store != nil {
		if t, err := p.store.Load(name); err == nil && strings.TrimSpace(t) != "" {
			return t
		}
	}
	return builtinPrompts[name]
}

// formatVerb matches a fmt verb such as %s, %d, %.2f or %[2]s. "%%" is
// matched too so an escaped percent is never mistaken for a verb.
var formatVerb = regexp.MustCompile(`%%|%(\[\d+\])?[-+#0]*\d*(\.\d+)?(\[\d+\])?[vTtbcdoOqxXUeEfFgGsp]`)

// hasVerb reports whether t contains at least one fmt verb.
func hasVerb(t string) bool {
	for _, m := range formatVerb.FindAllString(t, -1) {
		if m != "%%" {
			return true
		}
	}
	return false
}

// render fills the named template. A user template without placeholders is
// used verbatim, literal percent signs included, with the arguments
// appended after it.
func (p *promptSource) render(name string, args ...any) string {
	t := p.template(name)
	if hasVerb(t) {
		return fmt.Sprintf(t, args...)
	}
	if len(args) == 0 {
		return t
	}
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, t)
	for _, a := range args {
		parts = append(parts, fmt.Sprint(a))
	}
	return strings.Join(parts, "\n\n")
}
