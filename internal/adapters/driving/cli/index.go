package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var errNoCollections = errors.New("collections are only stored by the sqlite backend")

func (a *app) indexCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index",
		Short: "Inspect stored collections",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List collections and their sizes",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				s, err := a.svc(cmd)
				if err != nil {
					return err
				}
				if s.Collections == nil {
					return errNoCollections
				}
				infos, err := s.Collections.Collections(cmd.Context())
				if err != nil {
					return err
				}
				if len(infos) == 0 {
					cmd.Println("No collections.")
					return nil
				}
				for _, c := range infos {
					cmd.Printf("  %-20s %6d entries  %s (%d dims)\n", c.Name, c.Entries, c.EmbeddingModel, c.Dimensions)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "drop [collection]",
			Short: "Delete a collection and its entries",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				s, err := a.svc(cmd)
				if err != nil {
					return err
				}
				if s.Collections == nil {
					return errNoCollections
				}
				if err := s.Collections.DropCollection(cmd.Context(), args[0]); err != nil {
					return err
				}
				cmd.Printf("Dropped %s\n", args[0])
				return nil
			},
		},
	)
	return cmd
}
