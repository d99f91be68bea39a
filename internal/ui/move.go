package ui

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/homegrid/internal/grid"
)

func (a *App) moveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move [id] [row] [col]",
		Short: "Move a pinned item to another cell",
		Long: `Move an item to another cell. If the cell is taken the two items swap.

Example:
  homegrid move 1b4e28ba-2fa1-5d2c-8e3f-7a6b5c4d3e2f 2 1`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			row, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid row %q: %w", args[1], err)
			}
			col, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("invalid column %q: %w", args[2], err)
			}

			if err := a.ensureRepo(); err != nil {
				return err
			}

			mv, err := a.repo.UpdateItemPosition(cmd.Context(), args[0], grid.At(row, col))
			if err != nil {
				return fmt.Errorf("moving item: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Moved %s to %s\n", mv.Item.Title(), mv.Item.Position())
			if mv.Swapped() {
				fmt.Fprintf(out, "Swapped %s to %s\n", mv.Displaced.Title(), mv.Displaced.Position())
			}
			return nil
		},
	}
}
