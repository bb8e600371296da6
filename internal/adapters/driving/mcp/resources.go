package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/zainraz03/agentic-assistant/internal/core/domain"
)

// uriScheme is the custom URI scheme for assistant resources.
const uriScheme = "assistant://"

// modeInfo describes one routing mode.
type modeInfo struct {
	Mode        string `json:"mode"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "modes",
		Name:        "modes",
		Description: "Routing modes with a registered handler",
		MIMEType:    "application/json",
	}, s.handleModesResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "modes/{mode}",
		Name:        "mode",
		Description: "Description of a single routing mode",
		MIMEType:    "application/json",
	}, s.handleModeResource)
}

func (s *Server) handleModesResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	modes := s.ports.Router.Modes()
	infos := make([]modeInfo, len(modes))
	for i, m := range modes {
		infos[i] = describeMode(m)
	}
	return jsonResource(req.Params.URI, infos)
}

func (s *Server) handleModeResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	name := extractMode(req.Params.URI)
	mode := domain.Mode(name)
	if !mode.IsValid() {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	return jsonResource(req.Params.URI, describeMode(mode))
}

func describeMode(m domain.Mode) modeInfo {
	return modeInfo{Mode: m.String(), Label: m.Label(), Description: m.Description()}
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractMode extracts the mode from a URI like assistant://modes/{mode}.
func extractMode(uri string) string {
	const prefix = uriScheme + "modes/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}
	return strings.TrimPrefix(uri, prefix)
}
