package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zainraz03/agentic-assistant/internal/adapters/driving/mcp"
)

func (a *app) mcpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
	}

	var port int
	serve := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server",
		Long: `Start the Model Context Protocol server. It exposes the tools route,
retrieve and ingest, and the resource assistant://modes.

By default, the server communicates over stdio using JSON-RPC. Use --port to
start an HTTP server instead.

Examples:
  # Stdio mode (default)
  assistant mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  assistant mcp serve --port 8080`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.svc(cmd)
			if err != nil {
				return err
			}

			server, err := mcp.NewServer(&mcp.Ports{
				Router:      s.Router,
				Retriever:   s.Retriever,
				Ingestor:    s.Ingestor,
				DocumentDir: s.DocumentDir,
			})
			if err != nil {
				return err
			}

			if port > 0 {
				addr := fmt.Sprintf(":%d", port)
				fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
				return server.RunHTTP(cmd.Context(), addr)
			}
			return server.Run(cmd.Context())
		},
	}
	serve.Flags().IntVarP(&port, "port", "p", 0, "HTTP port (0 = use stdio)")

	cmd.AddCommand(serve)
	return cmd
}
