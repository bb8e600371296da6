package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMode_IsValid(t *testing.T) {
	for _, m := range AllModes() {
		assert.True(t, m.IsValid(), m.String())
		assert.NotEqual(t, unknownDescription, m.Label())
		assert.NotEqual(t, unknownDescription, m.Description())
	}
	assert.False(t, Mode("").IsValid())
	assert.False(t, Mode("weather").IsValid())
	assert.Equal(t, unknownDescription, Mode("weather").Label())
}

func TestAllModes_Unique(t *testing.T) {
	seen := make(map[Mode]bool)
	for _, m := range AllModes() {
		assert.False(t, seen[m], "duplicate mode %s", m)
		seen[m] = true
	}
	assert.Len(t, seen, 6)
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		input    string
		expected Mode
	}{
		{"document_qa", ModeDocumentQA},
		{"DOCUMENT_QA", ModeDocumentQA},
		{"  knowledge ", ModeKnowledgeLookup},
		{"Resume Information", ModeDocumentQA},
		{"file finder", ModeFileSearch},
		{"Python Code Generator", ModeCodeGeneration},
		{"Job/News Search", ModeNewsSearch},
		{"news_search", ModeNewsSearch},
		{"general", ModeGeneral},
		{"", ModeGeneral},
		{"something else", ModeGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseMode(tt.input))
		})
	}
}
