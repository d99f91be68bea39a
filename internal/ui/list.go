package ui

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) listCmd() *cobra.Command {
	var opts PrintOpts

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List pinned items",
		Long: `List every pinned item grouped by row, in the order the grid shows them.

Items that share a cell after a manual database edit are flagged; opening the
database again moves them to free cells.`,
		Example: `  homegrid list
  homegrid list --ids`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			board, err := a.repo.Board(cmd.Context())
			if err != nil {
				return fmt.Errorf("listing items: %w", err)
			}

			out := cmd.OutOrStdout()
			if board.Len() == 0 {
				fmt.Fprintln(out, "No pinned items.")
				return nil
			}

			PrintBoard(out, board, opts)
			fmt.Fprintln(out)
			fmt.Fprintln(out, formatMuted(fmt.Sprintf("%d pinned, %d columns", board.Len(), a.config.Grid.Columns)))
			if collisions := board.Collisions(); len(collisions) > 0 {
				fmt.Fprintln(out, formatWarning(fmt.Sprintf("%d items share a cell", len(collisions))))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.ShowIDs, "ids", false, "Show item ids")
	cmd.Flags().IntVar(&opts.MaxTitleWidth, "width", 0, "Maximum title width (0 = fit terminal)")

	return cmd
}
