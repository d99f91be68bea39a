package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/homegrid/internal/config"
	"github.com/javiermolinar/homegrid/internal/db"
	"github.com/javiermolinar/homegrid/internal/launcher"
	"github.com/javiermolinar/homegrid/internal/logging"
	"github.com/javiermolinar/homegrid/internal/pin"
	"github.com/javiermolinar/homegrid/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	repo       pin.Repository
	config     *config.Config
	configPath string
	root       *cobra.Command
	debug      bool // Enable debug logging
	noColor    bool
	closeLog   func() error
}

// NewApp creates a new CLI application. A nil repo is opened lazily from
// the configured database path.
func NewApp(repo pin.Repository, cfg *config.Config) *App {
	a := &App{repo: repo, config: cfg, configPath: config.DefaultConfigPath()}

	a.root = &cobra.Command{
		Use:   "homegrid",
		Short: "A launcher home screen with a grid of pinned items",
		Long: `Homegrid keeps apps, files and shortcuts pinned to a grid.

Run without arguments to open the home screen. Click an item to open it,
hold it to open its menu, or hold and drag it to another cell.`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if a.noColor {
				DisableColor()
			}
			closeLog, err := logging.Configure(a.config.Log, a.debug)
			if err != nil {
				return err
			}
			a.closeLog = closeLog
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return tui.Run(cmd.Context(), a.config, tui.RunOptions{
				Repo:       a.repo,
				ConfigPath: a.configPath,
				Launcher:   logLauncher(),
				Searcher:   logSearcher(),
				Watch:      true,
			})
		},
	}

	// Add global flags
	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging (writes homegrid-debug.log)")
	a.root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "Disable colored output")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.pinCmd())
	a.root.AddCommand(a.unpinCmd())
	a.root.AddCommand(a.moveCmd())
	a.root.AddCommand(a.listCmd())
	a.root.AddCommand(a.clearCmd())
	a.root.AddCommand(a.exportCmd())
	a.root.AddCommand(a.importCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "homegrid %s (commit: %s)\n", Version, Commit)
		},
	}
}

// ensureRepo opens the configured database on first use.
func (a *App) ensureRepo() error {
	if a.repo != nil {
		return nil
	}
	repo, err := db.New(a.config.Storage.DBPath,
		db.WithBounds(a.config.Grid.Columns, a.config.Grid.MaxRows),
		db.WithLogger(logging.NewLogger("db")),
	)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	a.repo = repo
	return nil
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.ExecuteContext(context.Background())
}

// ExecuteContext runs the CLI application with ctx.
func (a *App) ExecuteContext(ctx context.Context) error {
	return a.root.ExecuteContext(ctx)
}

// Close releases the database and the log sink.
func (a *App) Close() error {
	var err error
	if a.repo != nil {
		err = a.repo.Close()
		a.repo = nil
	}
	if a.closeLog != nil {
		if cerr := a.closeLog(); err == nil {
			err = cerr
		}
		a.closeLog = nil
	}
	return err
}

// logLauncher records open requests. Resolving an item to a running
// program is left to the host platform.
func logLauncher() launcher.Launcher {
	log := logging.NewLogger("launch")
	return launcher.LauncherFunc(func(_ context.Context, item pin.Item) error {
		log.WithField("id", item.ID()).WithField("kind", item.Kind()).Info("open item")
		return nil
	})
}

func logSearcher() launcher.Searcher {
	log := logging.NewLogger("search")
	return launcher.SearcherFunc(func(_ context.Context, query string) error {
		log.WithField("query", query).Info("search")
		return nil
	})
}
