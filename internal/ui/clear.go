package ui

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) clearCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every pinned item",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes && !promptYesNo(cmd.InOrStdin(), cmd.OutOrStdout(), "Remove every pinned item?") {
				return nil
			}
			if err := a.ensureRepo(); err != nil {
				return err
			}
			if err := a.repo.ClearAll(cmd.Context()); err != nil {
				return fmt.Errorf("clearing items: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Cleared the grid.")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")

	return cmd
}
