package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/homegrid/internal/config"
	"github.com/javiermolinar/homegrid/internal/launcher"
	"github.com/javiermolinar/homegrid/internal/logging"
	"github.com/javiermolinar/homegrid/internal/pin"
	"github.com/javiermolinar/homegrid/internal/tui/commands"
	"github.com/javiermolinar/homegrid/internal/tui/theme"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeHome   Mode = iota // Canvas receives pointer input
	ModeMenu               // Item menu is open
	ModeSearch             // Search prompt has focus
)

// Model is the main TUI model.
type Model struct {
	// Dependencies
	ctx      context.Context
	home     *launcher.Home
	repo     pin.Repository
	config   *config.Config
	searcher launcher.Searcher

	// Theme and styles
	theme      *theme.Theme
	styles     *Styles
	styleCache StyleCache

	// State
	mode Mode
	menu menuModel
	held bool // left button down

	// Components
	prompt textinput.Model

	// Streams
	boards   <-chan pin.Board
	unsub    func()
	configs  <-chan commands.ConfigReloadedMsg
	pending  int        // queued store writes not yet confirmed
	deferred *pin.Board // snapshot held back while writes are pending

	// Terminal dimensions
	width  int
	height int

	// Messages
	statusMsg   string    // Temporary status/error message
	statusError bool      // statusMsg reports a failure
	statusTime  time.Time // When to clear message
}

// ModelOption configures optional model behavior.
type ModelOption func(*Model)

// WithSearcher sets the collaborator that receives search queries.
func WithSearcher(s launcher.Searcher) ModelOption {
	return func(m *Model) {
		m.searcher = s
	}
}

// WithConfigUpdates delivers config reloads to the model.
func WithConfigUpdates(ch <-chan commands.ConfigReloadedMsg) ModelOption {
	return func(m *Model) {
		m.configs = ch
	}
}

// New creates a new TUI model over a home session.
func New(ctx context.Context, home *launcher.Home, repo pin.Repository, cfg *config.Config, opts ...ModelOption) Model {
	t, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		t, _ = theme.Load("mocha")
	}
	styles := NewStyles(t)

	ti := textinput.New()
	ti.Placeholder = "Search apps, files and the web"
	ti.CharLimit = 256
	ti.Width = 40
	m := Model{
		ctx:        ctx,
		home:       home,
		repo:       repo,
		config:     cfg,
		theme:      t,
		styles:     styles,
		styleCache: NewStyleCache(styles, cfg.Grid.CellWidth, cfg.Grid.CellHeight),
		mode:       ModeHome,
		prompt:     ti,
	}
	m.applyPromptStyles()
	if repo != nil {
		m.boards, m.unsub = repo.Subscribe()
	}

	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		commands.WaitForBoard(m.boards),
		commands.WaitForConfig(m.configs),
	)
}

// RunOptions configures Run.
type RunOptions struct {
	// Repo is opened from the config when nil.
	Repo       pin.Repository
	ConfigPath string
	Launcher   launcher.Launcher
	Searcher   launcher.Searcher
	// Watch reloads the config file while the TUI runs.
	Watch bool
}

// Run starts the TUI and blocks until the user quits.
func Run(ctx context.Context, cfg *config.Config, opts RunOptions) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	repo := opts.Repo
	if repo == nil {
		if err := ensureConfig(opts.ConfigPath, cfg); err != nil {
			return err
		}
		r, err := openRepo(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = r.Close() }()
		repo = r
	}

	home, err := launcher.NewHome(ctx, repo, homeOptions(cfg, opts.Launcher))
	if err != nil {
		return err
	}
	defer home.Close()

	modelOpts := []ModelOption{WithSearcher(opts.Searcher)}
	if opts.Watch && opts.ConfigPath != "" {
		ch, err := commands.WatchConfig(ctx, opts.ConfigPath)
		if err != nil {
			logging.NewLogger("tui").WithError(err).Warn("config watch disabled")
		} else {
			modelOpts = append(modelOpts, WithConfigUpdates(ch))
		}
	}

	model := New(ctx, home, repo, cfg, modelOpts...)
	defer model.unsubscribe()

	traceStart(cfg)
	defer traceEnd()

	p := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithReportFocus(),
	)
	_, err = p.Run()
	return err
}

// homeOptions builds the session options for cfg.
func homeOptions(cfg *config.Config, l launcher.Launcher) launcher.Options {
	w, h := cellPixels(cfg.Grid.CellWidth, cfg.Grid.CellHeight)
	return launcher.Options{
		Grid:       cfg.Grid.Layout(),
		CellWidth:  w,
		CellHeight: h,
		Launcher:   l,
		Logger:     logging.NewLogger("home"),
	}
}

func (m Model) unsubscribe() {
	if m.unsub != nil {
		m.unsub()
	}
}
