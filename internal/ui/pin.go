package ui

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/homegrid/internal/grid"
	"github.com/javiermolinar/homegrid/internal/pin"
)

// placement holds the --row/--col flags shared by the pin subcommands.
type placement struct {
	row int
	col int
}

func (p *placement) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&p.row, "row", -1, "Row to pin at (default: first free cell)")
	cmd.Flags().IntVar(&p.col, "col", -1, "Column to pin at (default: first free cell)")
}

// position resolves the flags. Without both flags the first free cell in
// row-major order is used.
func (p placement) position(ctx context.Context, repo pin.Repository, columns, maxRows int) (grid.Position, error) {
	switch {
	case p.row < 0 && p.col < 0:
		pos, err := repo.FindAvailablePosition(ctx, columns, maxRows)
		if err != nil {
			return grid.Position{}, fmt.Errorf("finding a free cell: %w", err)
		}
		return pos, nil
	case p.row < 0 || p.col < 0:
		return grid.Position{}, errors.New("--row and --col must be given together")
	}
	pos := grid.At(p.row, p.col)
	if !pos.Within(columns, maxRows) {
		return grid.Position{}, fmt.Errorf("%w: %s in a %dx%d grid", pin.ErrOutOfBounds, pos, columns, maxRows)
	}
	return pos, nil
}

func (a *App) pinCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pin",
		Short: "Pin an app, file or shortcut to the grid",
		Long: `Pin an item to the home grid.

Without --row and --col the item goes to the first free cell. Pinning an
item that is already on the grid leaves it where it is.`,
	}

	cmd.AddCommand(a.pinAppCmd())
	cmd.AddCommand(a.pinFileCmd())
	cmd.AddCommand(a.pinShortcutCmd())

	return cmd
}

func (a *App) pinAppCmd() *cobra.Command {
	var (
		name  string
		place placement
	)

	cmd := &cobra.Command{
		Use:   "app [package] [activity]",
		Short: "Pin an application",
		Example: `  homegrid pin app org.example.mail --name Mail
  homegrid pin app org.example.mail Compose --name "New mail" --row 0 --col 2`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := pin.App{Package: args[0], Name: name}
			if len(args) > 1 {
				app.Activity = args[1]
			}
			return a.pinItem(cmd, app, place)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name")
	place.register(cmd)

	return cmd
}

func (a *App) pinFileCmd() *cobra.Command {
	var (
		name     string
		mimeType string
		place    placement
	)

	cmd := &cobra.Command{
		Use:     "file [uri]",
		Short:   "Pin a file",
		Example: `  homegrid pin file file:///home/me/notes.md --mime text/markdown`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.pinItem(cmd, pin.File{URI: args[0], Name: name, MimeType: mimeType}, place)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name (default: file name)")
	cmd.Flags().StringVar(&mimeType, "mime", "", "MIME type")
	place.register(cmd)

	return cmd
}

func (a *App) pinShortcutCmd() *cobra.Command {
	var (
		name  string
		place placement
	)

	cmd := &cobra.Command{
		Use:     "shortcut [package] [shortcut-id]",
		Short:   "Pin an app shortcut",
		Example: `  homegrid pin shortcut org.example.mail compose --name "Write mail"`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.pinItem(cmd, pin.Shortcut{Package: args[0], ShortcutID: args[1], Name: name}, place)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name")
	place.register(cmd)

	return cmd
}

func (a *App) pinItem(cmd *cobra.Command, item pin.Item, place placement) error {
	if err := pin.Validate(item); err != nil {
		return err
	}
	if err := a.ensureRepo(); err != nil {
		return err
	}
	ctx := cmd.Context()

	board, err := a.repo.Board(ctx)
	if err != nil {
		return fmt.Errorf("loading board: %w", err)
	}
	if existing, ok := board.Find(item.ID()); ok {
		fmt.Fprintf(cmd.OutOrStdout(), "Already pinned: %s at %s\n", existing.Title(), existing.Position())
		return nil
	}

	pos, err := place.position(ctx, a.repo, a.config.Grid.Columns, a.config.Grid.MaxRows)
	if err != nil {
		return err
	}

	stored, err := a.repo.AddPinnedItem(ctx, item.WithPosition(pos))
	if err != nil {
		return fmt.Errorf("pinning %s: %w", item.Title(), err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Pinned %s %s at %s\n", stored.Kind(), stored.Title(), stored.Position())
	if stored.Position() != pos {
		fmt.Fprintln(cmd.OutOrStdout(), formatWarning(fmt.Sprintf("%s was taken, placed at %s instead", pos, stored.Position())))
	}
	return nil
}
