package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zainraz03/agentic-assistant/internal/core/domain"
	"github.com/zainraz03/agentic-assistant/internal/core/ports/driven"
	"github.com/zainraz03/agentic-assistant/internal/core/ports/driving"
	"github.com/zainraz03/agentic-assistant/internal/logger"
)

// Ensure the handlers implement the interface.
var (
	_ driving.Handler = (*DocumentQAHandler)(nil)
	_ driving.Handler = (*KnowledgeHandler)(nil)
	_ driving.Handler = (*FileSearchHandler)(nil)
	_ driving.Handler = (*CodeGenHandler)(nil)
	_ driving.Handler = (*NewsHandler)(nil)
	_ driving.Handler = (*GeneralHandler)(nil)
)

// FileNotFoundMessage is the file search answer when nothing matches.
const FileNotFoundMessage = "File not found."

// DocumentQAHandler answers from the ingested documents: retrieve, then
// summarize. It never ingests.
type DocumentQAHandler struct {
	retriever  driving.Retriever
	summarizer driving.Summarizer
	topK       int
}

// NewDocumentQAHandler creates the document QA handler.
func NewDocumentQAHandler(retriever driving.Retriever, summarizer driving.Summarizer, topK int) *DocumentQAHandler {
	if topK <= 0 {
		topK = domain.DefaultTopK
	}
	return &DocumentQAHandler{retriever: retriever, summarizer: summarizer, topK: topK}
}

// Mode returns domain.ModeDocumentQA.
func (h *DocumentQAHandler) Mode() domain.Mode { return domain.ModeDocumentQA }

// Handle retrieves the top chunks and summarizes them. The matches are
// returned as sources.
func (h *DocumentQAHandler) Handle(ctx context.Context, query string) (domain.Result, error) {
	matches, err := h.retriever.Retrieve(ctx, query, h.topK)
	if err != nil {
		return domain.Result{}, err
	}

	text, err := h.summarizer.Summarize(ctx, Texts(matches), query)
	if err != nil {
		return domain.Result{}, err
	}

	res := domain.NewResult(domain.ModeDocumentQA, text)
	res.Sources = matches
	return res.WithMeta("top_k", h.topK).WithMeta("matches", len(matches)), nil
}

// KnowledgeHandler answers questions about the knowledge base subject.
type KnowledgeHandler struct {
	promptSource
	kb      driven.KnowledgeBase
	llm     driven.LLMService
	timeout time.Duration
}

// NewKnowledgeHandler creates the knowledge lookup handler.
func NewKnowledgeHandler(kb driven.KnowledgeBase, llm driven.LLMService, timeout time.Duration) *KnowledgeHandler {
	return &KnowledgeHandler{kb: kb, llm: llm, timeout: orDefault(timeout, domain.DefaultLLMTimeout)}
}

// Mode returns domain.ModeKnowledgeLookup.
func (h *KnowledgeHandler) Mode() domain.Mode { return domain.ModeKnowledgeLookup }

// Handle puts the query and every fact in one prompt.
func (h *KnowledgeHandler) Handle(ctx context.Context, query string) (domain.Result, error) {
	subject, err := h.kb.Subject()
	if err != nil {
		return domain.Result{}, fmt.Errorf("knowledge base: %w", err)
	}
	facts, err := h.kb.Facts()
	if err != nil {
		return domain.Result{}, fmt.Errorf("knowledge base: %w", err)
	}

	text, err := generate(ctx, h.llm, h.timeout, h.render(driven.PromptKnowledge, subject, query, facts))
	if err != nil {
		return domain.Result{}, err
	}
	return domain.NewResult(domain.ModeKnowledgeLookup, text).WithMeta("subject", subject), nil
}

// FileSearchHandler finds files by exact name and has the LLM describe
// where they are.
type FileSearchHandler struct {
	promptSource
	finder        driven.FileFinder
	llm           driven.LLMService
	root          string
	limit         int
	searchTimeout time.Duration
	llmTimeout    time.Duration
}

// FileSearchConfig configures a FileSearchHandler.
type FileSearchConfig struct {
	Root          string
	MaxResults    int
	SearchTimeout time.Duration
	LLMTimeout    time.Duration
}

// NewFileSearchHandler creates the file search handler.
func NewFileSearchHandler(finder driven.FileFinder, llm driven.LLMService, cfg FileSearchConfig) *FileSearchHandler {
	if cfg.Root == "" {
		cfg.Root = domain.DefaultFileSearchRoot
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = domain.DefaultFileMaxResults
	}
	return &FileSearchHandler{
		finder:        finder,
		llm:           llm,
		root:          cfg.Root,
		limit:         cfg.MaxResults,
		searchTimeout: orDefault(cfg.SearchTimeout, domain.DefaultFileTimeout),
		llmTimeout:    orDefault(cfg.LLMTimeout, domain.DefaultLLMTimeout),
	}
}

// Mode returns domain.ModeFileSearch.
func (h *FileSearchHandler) Mode() domain.Mode { return domain.ModeFileSearch }

// Handle treats the query as a file name. A walk cut short by the search
// timeout still reports what it found.
func (h *FileSearchHandler) Handle(ctx context.Context, query string) (domain.Result, error) {
	searchCtx, cancel := context.WithTimeout(ctx, h.searchTimeout)
	paths, err := h.finder.Find(searchCtx, h.root, query, h.limit)
	cancel()

	truncated := false
	if err != nil {
		if !errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
			return domain.Result{}, err
		}
		truncated = true
		logger.Warn("file search in %s timed out after %s", h.root, h.searchTimeout)
	}

	if len(paths) == 0 {
		return domain.NewResult(domain.ModeFileSearch, FileNotFoundMessage).
			WithMeta("paths", []string{}).
			WithMeta("truncated", truncated), nil
	}

	text, err := generate(ctx, h.llm, h.llmTimeout, h.render(driven.PromptFileSearch, strings.Join(paths, ", ")))
	if err != nil {
		return domain.Result{}, err
	}
	return domain.NewResult(domain.ModeFileSearch, text).
		WithMeta("paths", paths).
		WithMeta("truncated", truncated), nil
}

// fencePattern matches the first fenced code block and its language tag.
var fencePattern = regexp.MustCompile("(?s)```([A-Za-z0-9_+#.-]*)[ \t]*\r?\n(.*?)```")

var fenceExtensions = map[string]string{
	"":           ".py",
	"python":     ".py",
	"py":         ".py",
	"python3":    ".py",
	"go":         ".go",
	"golang":     ".go",
	"javascript": ".js",
	"js":         ".js",
	"typescript": ".ts",
	"ts":         ".ts",
	"bash":       ".sh",
	"sh":         ".sh",
	"shell":      ".sh",
	"java":       ".java",
	"c":          ".c",
	"cpp":        ".cpp",
	"c++":        ".cpp",
	"csharp":     ".cs",
	"c#":         ".cs",
	"rust":       ".rs",
	"ruby":       ".rb",
	"sql":        ".sql",
	"html":       ".html",
}

var simpleExt = regexp.MustCompile(`^[a-z0-9]+$`)

// extractCode returns the first fenced block and the extension for its
// language tag. Unknown simple tags become their own extension.
func extractCode(text string) (code, ext string, ok bool) {
	m := fencePattern.FindStringSubmatch(text)
	if m == nil {
		return "", "", false
	}
	lang := strings.ToLower(m[1])
	ext, known := fenceExtensions[lang]
	if !known {
		ext = ".py"
		if simpleExt.MatchString(lang) {
			ext = "." + lang
		}
	}
	return m[2], ext, true
}

// CodeGenHandler asks the LLM for a program and saves the code it returns.
type CodeGenHandler struct {
	promptSource
	llm       driven.LLMService
	outputDir string
	timeout   time.Duration
	newID     func() string
}

// NewCodeGenHandler creates the code generation handler.
func NewCodeGenHandler(llm driven.LLMService, outputDir string, timeout time.Duration) *CodeGenHandler {
	if outputDir == "" {
		outputDir = domain.DefaultCodeGenDir
	}
	return &CodeGenHandler{
		llm:       llm,
		outputDir: outputDir,
		timeout:   orDefault(timeout, domain.DefaultLLMTimeout),
		newID:     uuid.NewString,
	}
}

// Mode returns domain.ModeCodeGeneration.
func (h *CodeGenHandler) Mode() domain.Mode { return domain.ModeCodeGeneration }

// Handle generates code and writes the first fenced block to
// generated_<id>.<ext>. A reply without a code block is returned as is.
func (h *CodeGenHandler) Handle(ctx context.Context, query string) (domain.Result, error) {
	text, err := generate(ctx, h.llm, h.timeout, h.render(driven.PromptCodeGen, query))
	if err != nil {
		return domain.Result{}, err
	}

	res := domain.NewResult(domain.ModeCodeGeneration, text)
	code, ext, ok := extractCode(text)
	if !ok {
		return res.WithMeta("saved", false), nil
	}

	id := strings.ReplaceAll(h.newID(), "-", "")
	if len(id) > 8 {
		id = id[:8]
	}
	path := filepath.Join(h.outputDir, "generated_"+id+ext)
	if err := os.MkdirAll(h.outputDir, 0755); err != nil {
		return domain.Result{}, fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(code), 0644); err != nil {
		return domain.Result{}, fmt.Errorf("save generated code: %w", err)
	}
	logger.Info("saved generated code to %s", path)

	return res.WithMeta("saved", true).WithMeta("path", path), nil
}

// NewsHandler asks the LLM for recent news on a topic.
type NewsHandler struct {
	promptSource
	llm     driven.LLMService
	timeout time.Duration
}

// NewNewsHandler creates the news search handler.
func NewNewsHandler(llm driven.LLMService, timeout time.Duration) *NewsHandler {
	return &NewsHandler{llm: llm, timeout: orDefault(timeout, domain.DefaultLLMTimeout)}
}

// Mode returns domain.ModeNewsSearch.
func (h *NewsHandler) Mode() domain.Mode { return domain.ModeNewsSearch }

// Handle sends the news system prompt and the query as a chat.
func (h *NewsHandler) Handle(ctx context.Context, query string) (domain.Result, error) {
	text, err := chat(ctx, h.llm, h.timeout, []driven.ChatMessage{
		{Role: driven.RoleSystem, Content: h.template(driven.PromptNewsSystem)},
		{Role: driven.RoleUser, Content: query},
	})
	if err != nil {
		return domain.Result{}, err
	}
	return domain.NewResult(domain.ModeNewsSearch, text), nil
}

// GeneralHandler passes the query straight to the LLM.
type GeneralHandler struct {
	promptSource
	llm     driven.LLMService
	timeout time.Duration
}

// NewGeneralHandler creates the fallback handler.
func NewGeneralHandler(llm driven.LLMService, timeout time.Duration) *GeneralHandler {
	return &GeneralHandler{llm: llm, timeout: orDefault(timeout, domain.DefaultLLMTimeout)}
}

// Mode returns domain.ModeGeneral.
func (h *GeneralHandler) Mode() domain.Mode { return domain.ModeGeneral }

// Handle renders the general template around the query.
func (h *GeneralHandler) Handle(ctx context.Context, query string) (domain.Result, error) {
	text, err := generate(ctx, h.llm, h.timeout, h.render(driven.PromptGeneral, query))
	if err != nil {
		return domain.Result{}, err
	}
	return domain.NewResult(domain.ModeGeneral, text), nil
}

func orDefault(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return d
}
