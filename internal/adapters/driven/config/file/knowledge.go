package file

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/zainraz03/agentic-assistant/internal/core/domain"
	"github.com/zainraz03/agentic-assistant/internal/core/ports/driven"
)

// Ensure KnowledgeBase implements the interface.
var _ driven.KnowledgeBase = (*KnowledgeBase)(nil)

// KnowledgeSection groups related facts under a heading.
type KnowledgeSection struct {
	Title string   `yaml:"title"`
	Facts []string `yaml:"facts"`
}

// knowledgeFile is the on-disk layout:
//
//	subject: Zain Raza
//	facts:
//	  - "Location: Lahore, Pakistan"
//	sections:
//	  - title: Current Education
//	    facts:
//	      - "CGPA: 3.93"
type knowledgeFile struct {
	Subject  string             `yaml:"subject"`
	Facts    []string           `yaml:"facts"`
	Sections []KnowledgeSection `yaml:"sections"`
}

// KnowledgeBase reads facts about one subject from a YAML file. The file is
// parsed on first use and re-read after Reload.
type KnowledgeBase struct {
	path string

	mu     sync.Mutex
	loaded *knowledgeFile
}

// NewKnowledgeBase creates a knowledge base backed by path.
func NewKnowledgeBase(path string) *KnowledgeBase {
	return &KnowledgeBase{path: path}
}

// Path returns the YAML file path.
func (k *KnowledgeBase) Path() string {
	return k.path
}

func (k *KnowledgeBase) load() (*knowledgeFile, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.loaded != nil {
		return k.loaded, nil
	}

	data, err := os.ReadFile(k.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: knowledge base %s", domain.ErrNotFound, k.path)
		}
		return nil, fmt.Errorf("read knowledge base: %w", err)
	}

	var kf knowledgeFile
	if err := yaml.Unmarshal(data, &kf); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %w", domain.ErrInvalidInput, k.path, err)
	}
	if strings.TrimSpace(kf.Subject) == "" {
		return nil, fmt.Errorf("%w: %s has no subject", domain.ErrInvalidInput, k.path)
	}
	k.loaded = &kf
	return k.loaded, nil
}

// Subject names who the facts describe.
func (k *KnowledgeBase) Subject() (string, error) {
	kf, err := k.load()
	if err != nil {
		return "", err
	}
	return kf.Subject, nil
}

// Facts renders the file as plain text, one "- fact" line per entry with
// sections introduced by "Title:".
func (k *KnowledgeBase) Facts() (string, error) {
	kf, err := k.load()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	writeFacts := func(facts []string) {
		for _, f := range facts {
			b.WriteString("- ")
			b.WriteString(strings.TrimSpace(f))
			b.WriteByte('\n')
		}
	}

	writeFacts(kf.Facts)
	for _, sec := range kf.Sections {
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(sec.Title)
		b.WriteString(":\n")
		writeFacts(sec.Facts)
	}
	return b.String(), nil
}

// Reload drops the parsed file so the next call reads it again.
func (k *KnowledgeBase) Reload() {
	k.mu.Lock()
	k.loaded = nil
	k.mu.Unlock()
}
