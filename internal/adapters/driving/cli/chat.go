package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zainraz03/agentic-assistant/internal/adapters/driving/tui"
)

var errNotTerminal = errors.New("chat needs an interactive terminal; use 'assistant ask' instead")

func (a *app) chatCmd() *cobra.Command {
	var ingest bool

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Launch the interactive terminal UI",
		Long: `Launch an interactive chat. Pick a mode with tab and shift+tab, type a
question and press enter.

Controls:
  enter       Ask
  tab         Next mode
  shift+tab   Previous mode
  pgup/pgdn   Scroll answers
  ctrl+r      Re-ingest the document directory
  ctrl+l      Clear
  esc         Quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !a.isTerminal() {
				return errNotTerminal
			}
			s, err := a.svc(cmd)
			if err != nil {
				return err
			}
			if ingest {
				a.startupIngest(cmd, s)
			}

			app, err := tui.NewApp(&tui.Ports{
				Router:      s.Router,
				Ingestor:    s.Ingestor,
				DocumentDir: s.DocumentDir,
			})
			if err != nil {
				return fmt.Errorf("failed to create TUI: %w", err)
			}
			if err := app.WithContext(cmd.Context()).Run(); err != nil {
				return fmt.Errorf("TUI error: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&ingest, "ingest", true, "ingest the document directory first")
	return cmd
}
