package domain

import "strings"

const unknownDescription = "Unknown"

// Mode selects which handler serves a query.
type Mode string

// Available routing modes.
const (
	// ModeKnowledgeLookup answers from the static knowledge base.
	ModeKnowledgeLookup Mode = "knowledge"

	// ModeDocumentQA retrieves indexed PDF chunks and summarises them.
	ModeDocumentQA Mode = "document_qa"

	// ModeFileSearch looks up files by exact name.
	ModeFileSearch Mode = "file_search"

	// ModeCodeGeneration generates and saves code.
	ModeCodeGeneration Mode = "code_generation"

	// ModeNewsSearch reports recent news.
	ModeNewsSearch Mode = "news_search"

	// ModeGeneral is the fallback for everything else.
	ModeGeneral Mode = "general"
)

// AllModes returns every routing mode in display order.
func AllModes() []Mode {
	return []Mode{
		ModeFileSearch,
		ModeDocumentQA,
		ModeKnowledgeLookup,
		ModeGeneral,
		ModeCodeGeneration,
		ModeNewsSearch,
	}
}

// IsValid returns true if the mode is recognised.
func (m Mode) IsValid() bool {
	switch m {
	case ModeKnowledgeLookup, ModeDocumentQA, ModeFileSearch,
		ModeCodeGeneration, ModeNewsSearch, ModeGeneral:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (m Mode) String() string {
	return string(m)
}

// Label returns the name shown in interactive surfaces.
func (m Mode) Label() string {
	switch m {
	case ModeFileSearch:
		return "File Finder"
	case ModeDocumentQA:
		return "Resume Information"
	case ModeKnowledgeLookup:
		return "Zain Info"
	case ModeGeneral:
		return "General Query"
	case ModeCodeGeneration:
		return "Python Code Generator"
	case ModeNewsSearch:
		return "Job/News Search"
	default:
		return unknownDescription
	}
}

// Description returns a human-readable description of the mode.
func (m Mode) Description() string {
	switch m {
	case ModeFileSearch:
		return "Find a file by exact name and describe where it lives"
	case ModeDocumentQA:
		return "Answer from indexed PDF documents"
	case ModeKnowledgeLookup:
		return "Answer from the static knowledge base"
	case ModeGeneral:
		return "General questions"
	case ModeCodeGeneration:
		return "Generate code and save it locally"
	case ModeNewsSearch:
		return "Latest news and job listings"
	default:
		return unknownDescription
	}
}

// ParseMode resolves a mode value or display label, ignoring case.
// Anything unrecognised resolves to ModeGeneral.
func ParseMode(s string) Mode {
	s = strings.TrimSpace(s)
	for _, m := range AllModes() {
		if strings.EqualFold(s, string(m)) || strings.EqualFold(s, m.Label()) {
			return m
		}
	}
	return ModeGeneral
}
