// Package pdf extracts per-page plain text from PDF files using the
// poppler command-line tools (pdfinfo and pdftotext).
package pdf

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/zainraz03/agentic-assistant/internal/core/domain"
	"github.com/zainraz03/agentic-assistant/internal/core/ports/driven"
	"github.com/zainraz03/agentic-assistant/internal/logger"
)

// Verify interface compliance.
var _ driven.PageExtractor = (*Extractor)(nil)

// ErrPDFToolNotFound is returned when pdftotext is not on PATH.
var ErrPDFToolNotFound = errors.New("pdftotext not found: install poppler-utils")

const (
	pdftotext = "pdftotext"
	pdfinfo   = "pdfinfo"

	// pageBreak separates pages in pdftotext output.
	pageBreak = "\f"
)

var log = logger.With("pdf")

// CommandRunner executes an external command and returns its stdout.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%w: %s", err, msg)
		}
		return nil, err
	}
	return out, nil
}

// Extractor reads PDF files page by page.
type Extractor struct {
	runner CommandRunner
}

// New creates an extractor that shells out to poppler.
func New() *Extractor {
	return &Extractor{runner: execRunner{}}
}

// NewWithRunner creates an extractor with a custom command runner.
func NewWithRunner(runner CommandRunner) *Extractor {
	return &Extractor{runner: runner}
}

// Extensions returns the file extensions handled.
func (e *Extractor) Extensions() []string {
	return []string{".pdf"}
}

// Extract returns the text of every page that could be read. Each page is
// extracted separately so one corrupt page only costs that page. When the
// page count cannot be determined the whole file is extracted in one pass
// and split on form feeds.
func (e *Extractor) Extract(
	ctx context.Context,
	path string,
) ([]domain.Page, []*domain.ExtractionWarning, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening pdf: %w", err)
	}
	if info.IsDir() {
		return nil, nil, fmt.Errorf("opening pdf: %s is a directory", path)
	}

	count, err := e.pageCount(ctx, path)
	if err != nil {
		log.Debug("page count unavailable for %s: %v", path, err)
		return e.extractAll(ctx, path)
	}

	pages := make([]domain.Page, 0, count)
	var warnings []*domain.ExtractionWarning
	name := filepath.Base(path)

	for i := 0; i < count; i++ {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		n := strconv.Itoa(i + 1)
		out, err := e.runner.Run(ctx, pdftotext, "-enc", "UTF-8", "-f", n, "-l", n, path, "-")
		if err != nil {
			warnings = append(warnings, &domain.ExtractionWarning{
				File: name,
				Page: i,
				Err:  fmt.Errorf("pdftotext failed: %w", err),
			})
			continue
		}
		pages = append(pages, domain.Page{
			Index: i,
			Text:  strings.TrimSuffix(string(out), pageBreak),
		})
	}

	return pages, warnings, nil
}

func (e *Extractor) extractAll(
	ctx context.Context,
	path string,
) ([]domain.Page, []*domain.ExtractionWarning, error) {
	out, err := e.runner.Run(ctx, pdftotext, "-enc", "UTF-8", path, "-")
	if err != nil {
		return nil, nil, fmt.Errorf("pdftotext failed: %w", err)
	}

	parts := strings.Split(strings.TrimSuffix(string(out), pageBreak), pageBreak)
	pages := make([]domain.Page, 0, len(parts))
	for i, text := range parts {
		pages = append(pages, domain.Page{Index: i, Text: text})
	}
	return pages, nil, nil
}

// pageCount reads the "Pages:" line reported by pdfinfo.
func (e *Extractor) pageCount(ctx context.Context, path string) (int, error) {
	out, err := e.runner.Run(ctx, pdfinfo, path)
	if err != nil {
		return 0, fmt.Errorf("pdfinfo failed: %w", err)
	}
	return parsePageCount(out)
}

func parsePageCount(out []byte) (int, error) {
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		key, value, ok := strings.Cut(scanner.Text(), ":")
		if !ok || strings.TrimSpace(key) != "Pages" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return 0, fmt.Errorf("parsing page count: %w", err)
		}
		return n, nil
	}
	return 0, errors.New("page count not reported")
}

// CheckAvailable reports whether pdftotext can be found on PATH.
func CheckAvailable() error {
	if _, err := exec.LookPath(pdftotext); err != nil {
		return ErrPDFToolNotFound
	}
	return nil
}

// InstallInstructions returns platform-specific instructions for poppler.
func InstallInstructions() string {
	return `PDF extraction requires pdftotext and pdfinfo (poppler).

Install with:
  macOS:         brew install poppler
  Ubuntu/Debian: sudo apt install poppler-utils
  Fedora:        sudo dnf install poppler-utils
  Windows:       choco install poppler`
}
