package mcp

import (
	"context"
	"errors"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/zainraz03/agentic-assistant/internal/core/domain"
)

// RouteInput is the input schema for the route tool.
type RouteInput struct {
	Query string `json:"query" jsonschema:"the question or request to answer"`
	Mode  string `json:"mode,omitempty" jsonschema:"handler to use: knowledge, document_qa, file_search, code_generation, news_search or general (default general)"`
}

// RouteOutput is the output schema for the route tool.
type RouteOutput struct {
	Mode     string         `json:"mode"`
	Text     string         `json:"text"`
	Sources  []MatchOutput  `json:"sources,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// RetrieveInput is the input schema for the retrieve tool.
type RetrieveInput struct {
	Query string `json:"query" jsonschema:"text to find similar document chunks for"`
	TopK  int    `json:"top_k,omitempty" jsonschema:"maximum number of chunks to return (default 3)"`
}

// RetrieveOutput is the output schema for the retrieve tool.
type RetrieveOutput struct {
	Matches []MatchOutput `json:"matches"`
	Count   int           `json:"count"`
}

// MatchOutput is one retrieved chunk.
type MatchOutput struct {
	ID       string  `json:"id"`
	Text     string  `json:"text"`
	Filename string  `json:"filename"`
	Page     int     `json:"page"`
	Score    float64 `json:"score"`
}

// IngestInput is the input schema for the ingest tool.
type IngestInput struct {
	Directory string `json:"directory,omitempty" jsonschema:"directory of PDF files (default: the configured document directory)"`
}

// IngestOutput is the output schema for the ingest tool.
type IngestOutput struct {
	ID       string   `json:"id"`
	Files    int      `json:"files"`
	Pages    int      `json:"pages"`
	Chunks   int      `json:"chunks"`
	Warnings []string `json:"warnings,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "route",
		Description: "Answer a query with the handler for the given mode",
	}, s.handleRoute)

	if s.ports.Retriever != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "retrieve",
			Description: "Find indexed PDF chunks similar to a query",
		}, s.handleRetrieve)
	}

	if s.ports.Ingestor != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "ingest",
			Description: "Load a directory of PDF files into the document index",
		}, s.handleIngest)
	}
}

func (s *Server) handleRoute(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RouteInput,
) (*mcp.CallToolResult, RouteOutput, error) {
	mode := domain.ModeGeneral
	if strings.TrimSpace(input.Mode) != "" {
		mode = domain.ParseMode(input.Mode)
	}

	res, err := s.ports.Router.Route(ctx, input.Query, mode)
	if err != nil {
		return nil, RouteOutput{}, err
	}

	return nil, RouteOutput{
		Mode:     res.Mode.String(),
		Text:     res.Text,
		Sources:  toMatchOutputs(res.Sources),
		Metadata: res.Metadata,
	}, nil
}

func (s *Server) handleRetrieve(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RetrieveInput,
) (*mcp.CallToolResult, RetrieveOutput, error) {
	topK := input.TopK
	if topK <= 0 {
		topK = domain.DefaultTopK
	}

	matches, err := s.ports.Retriever.Retrieve(ctx, input.Query, topK)
	if err != nil {
		return nil, RetrieveOutput{}, err
	}

	return nil, RetrieveOutput{
		Matches: toMatchOutputs(matches),
		Count:   len(matches),
	}, nil
}

func (s *Server) handleIngest(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IngestInput,
) (*mcp.CallToolResult, IngestOutput, error) {
	dir := strings.TrimSpace(input.Directory)
	if dir == "" {
		dir = s.ports.DocumentDir
	}
	if dir == "" {
		return nil, IngestOutput{}, errors.New("no directory given and none configured")
	}

	report, err := s.ports.Ingestor.Ingest(ctx, dir)
	if err != nil {
		return nil, IngestOutput{}, err
	}

	out := IngestOutput{
		ID:     report.ID,
		Files:  report.Files,
		Pages:  report.Pages,
		Chunks: report.Chunks,
	}
	for _, w := range report.Warnings {
		out.Warnings = append(out.Warnings, w.Error())
	}
	return nil, out, nil
}

func toMatchOutputs(matches []domain.Match) []MatchOutput {
	if len(matches) == 0 {
		return []MatchOutput{}
	}
	out := make([]MatchOutput, len(matches))
	for i, m := range matches {
		out[i] = MatchOutput{
			ID:       m.ID,
			Text:     m.Text,
			Filename: m.Metadata.Filename,
			Page:     m.Metadata.Page,
			Score:    m.Score,
		}
	}
	return out
}
