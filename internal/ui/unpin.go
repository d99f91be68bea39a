package ui

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) unpinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unpin [id]",
		Short: "Remove a pinned item",
		Long: `Remove an item from the grid. Use "homegrid list --ids" to see item ids.

Example:
  homegrid unpin 1b4e28ba-2fa1-5d2c-8e3f-7a6b5c4d3e2f`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			ctx := cmd.Context()

			board, err := a.repo.Board(ctx)
			if err != nil {
				return fmt.Errorf("loading board: %w", err)
			}
			item, ok := board.Find(args[0])
			if !ok {
				fmt.Fprintf(cmd.OutOrStdout(), "No pinned item with id %s\n", args[0])
				return nil
			}

			if err := a.repo.RemovePinnedItem(ctx, item.ID()); err != nil {
				return fmt.Errorf("unpinning %s: %w", item.Title(), err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Unpinned %s from %s\n", item.Title(), item.Position())
			return nil
		},
	}
}
