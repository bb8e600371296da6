package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zainraz03/agentic-assistant/internal/core/domain"
)

func (a *app) askCmd() *cobra.Command {
	var (
		mode   string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "ask [query]",
		Short: "Answer a query in the selected mode",
		Long: `Routes the query to the handler for --mode and prints the answer.

Modes (value or label, case-insensitive):
  document_qa      Resume Information: summarise matching PDF chunks
  knowledge        Zain Info: answer from the knowledge base
  file_search      File Finder: locate a file by exact name
  code_generation  Python Code Generator: generate and save code
  news_search      Job/News Search: latest news on a topic
  general          General Query (default)

Unknown modes fall back to general.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.svc(cmd)
			if err != nil {
				return err
			}
			query := strings.Join(args, " ")
			res, err := s.Router.Route(cmd.Context(), query, domain.ParseMode(mode))
			if err != nil {
				return fmt.Errorf("query failed: %w", err)
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), res)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\n%s\n", heading(res.Mode.Label()+":"), res.Text)
			if len(res.Sources) > 0 {
				fmt.Fprintln(out)
				fmt.Fprintln(out, faint("Sources:"))
				printMatches(out, res.Sources)
			}
			if path, ok := res.Metadata["path"].(string); ok && path != "" {
				fmt.Fprintf(out, "\n%s %s\n", faint("Saved to"), path)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&mode, "mode", "m", string(domain.ModeGeneral), "query mode")
	cmd.Flags().BoolVar(&asJSON, "json", false, "output the result as JSON")
	return cmd
}

func (a *app) retrieveCmd() *cobra.Command {
	var (
		topK   int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "retrieve [query]",
		Short: "Show the indexed chunks most similar to a query",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.svc(cmd)
			if err != nil {
				return err
			}
			matches, err := s.Retriever.Retrieve(cmd.Context(), strings.Join(args, " "), topK)
			if err != nil {
				return fmt.Errorf("retrieve failed: %w", err)
			}
			if asJSON {
				if matches == nil {
					matches = []domain.Match{}
				}
				return writeJSON(cmd.OutOrStdout(), matches)
			}
			if len(matches) == 0 {
				cmd.Println("No results found.")
				return nil
			}
			cmd.Println("Results:")
			printMatches(cmd.OutOrStdout(), matches)
			return nil
		},
	}

	cmd.Flags().IntVarP(&topK, "top-k", "k", domain.DefaultTopK, "number of chunks to return")
	cmd.Flags().BoolVar(&asJSON, "json", false, "output matches as JSON")
	return cmd
}

func (a *app) modesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "modes",
		Short: "List the query modes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.svc(cmd)
			if err != nil {
				return err
			}
			for _, m := range s.Router.Modes() {
				cmd.Printf("  %-16s %-22s %s\n", m, m.Label(), m.Description())
			}
			return nil
		},
	}
}
