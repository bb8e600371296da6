package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/zainraz03/agentic-assistant/internal/adapters/driving/httpapi"
	"github.com/zainraz03/agentic-assistant/internal/logger"
)

// writeSlack is added to the LLM timeout so a slow answer still fits in
// the HTTP write deadline.
const writeSlack = 10 * time.Second

func (a *app) serveCmd() *cobra.Command {
	var (
		addr   string
		ingest bool
		watch  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long: `Serves a JSON API under /api/v1:

  GET  /api/v1/health
  GET  /api/v1/modes
  POST /api/v1/route     {"query": "...", "mode": "document_qa"}
  POST /api/v1/retrieve  {"query": "...", "top_k": 3}
  POST /api/v1/ingest    {"directory": "pdf_files"}

Examples:
  assistant serve --addr :8080
  assistant serve --watch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.svc(cmd)
			if err != nil {
				return err
			}
			if ingest {
				a.startupIngest(cmd, s)
			}

			server, err := httpapi.NewServer(httpapi.Ports{
				Router:      s.Router,
				Retriever:   s.Retriever,
				Ingestor:    s.Ingestor,
				DocumentDir: s.DocumentDir,
			})
			if err != nil {
				return err
			}

			if watch {
				go func() {
					if err := a.watch(cmd, s, s.DocumentDir); err != nil {
						logger.Error("watcher stopped: %v", err)
					}
				}()
			}

			fmt.Fprintf(cmd.OutOrStdout(), "HTTP API listening on %s\n", addr)
			return server.ListenAndServe(cmd.Context(), addr, s.LLMTimeout+writeSlack)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", ":8080", "listen address")
	cmd.Flags().BoolVar(&ingest, "ingest", true, "ingest the document directory before serving")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "re-ingest when files change")
	return cmd
}

// startupIngest loads the document directory, reporting failures without
// stopping the caller.
func (a *app) startupIngest(cmd *cobra.Command, s *Services) {
	report, err := s.Ingestor.Ingest(cmd.Context(), s.DocumentDir)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s %v\n", warning("ingest skipped:"), err)
		return
	}
	printReport(cmd.ErrOrStderr(), report)
}
