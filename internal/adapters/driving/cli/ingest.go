package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zainraz03/agentic-assistant/internal/core/domain"
)

func (a *app) ingestCmd() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "ingest [directory]",
		Short: "Ingest PDF files into the vector index",
		Long: `Extracts text from every PDF directly inside the directory, page by
page, splits it into 1000-character chunks and upserts them into the index.

Chunk IDs are <filename>_<n>, so re-ingesting a file overwrites its
previous chunks. Pages that fail to extract are reported as warnings.

With --watch the command keeps running and re-ingests whenever a PDF in the
directory changes.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.svc(cmd)
			if err != nil {
				return err
			}
			dir := s.DocumentDir
			if len(args) == 1 {
				dir = args[0]
			}

			report, err := s.Ingestor.Ingest(cmd.Context(), dir)
			if err != nil {
				return fmt.Errorf("ingest failed: %w", err)
			}
			printReport(cmd.OutOrStdout(), report)

			if !watch {
				return nil
			}
			return a.watch(cmd, s, dir)
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "re-ingest when files change")
	return cmd
}

// watch blocks until the command context ends, printing every triggered
// ingest.
func (a *app) watch(cmd *cobra.Command, s *Services, dir string) error {
	if s.Watcher == nil {
		return errors.New("directory watching is not available")
	}
	out := cmd.OutOrStdout()
	s.Watcher.OnIngest(func(r *domain.IngestReport, err error) {
		if err != nil {
			fmt.Fprintf(out, "%s %v\n", warning("re-ingest failed:"), err)
			return
		}
		printReport(out, r)
	})
	fmt.Fprintf(out, "Watching %s for changes (ctrl+c to stop)\n", dir)
	return s.Watcher.Run(cmd.Context(), dir)
}
