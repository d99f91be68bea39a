package launcher

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/javiermolinar/homegrid/internal/drag"
	"github.com/javiermolinar/homegrid/internal/gesture"
	"github.com/javiermolinar/homegrid/internal/grid"
	"github.com/javiermolinar/homegrid/internal/pin"
)

// Launcher opens a pinned item. Resolving intents is up to the host.
type Launcher interface {
	Launch(ctx context.Context, item pin.Item) error
}

// Searcher receives queries typed into the search prompt.
type Searcher interface {
	Search(ctx context.Context, query string) error
}

// LauncherFunc adapts a function to Launcher.
type LauncherFunc func(ctx context.Context, item pin.Item) error

// Launch calls f.
func (f LauncherFunc) Launch(ctx context.Context, item pin.Item) error {
	return f(ctx, item)
}

// SearcherFunc adapts a function to Searcher.
type SearcherFunc func(ctx context.Context, query string) error

// Search calls f.
func (f SearcherFunc) Search(ctx context.Context, query string) error {
	return f(ctx, query)
}

// Action is what the home screen should do in response to a gesture. The
// set is closed.
type Action interface {
	isAction()
}

// OpenItem means an item was tapped.
type OpenItem struct {
	Item pin.Item
	Err  error
}

// OpenSearch means the empty canvas was tapped.
type OpenSearch struct {
	At grid.Point
}

// PressItem means an item is being held; the view may highlight it.
type PressItem struct {
	Item pin.Item
}

// ShowMenu means an item was long-pressed and released without dragging.
type ShowMenu struct {
	Item pin.Item
	At   grid.Point
}

// Dropped reports the end of a drag. Write delivers the outcome of the
// queued store update and is nil when nothing was written.
type Dropped struct {
	Item   pin.Item
	Result drag.Result
	Write  <-chan error
}

func (OpenItem) isAction()   {}
func (OpenSearch) isAction() {}
func (PressItem) isAction()  {}
func (ShowMenu) isAction()   {}
func (Dropped) isAction()    {}

// Options configures a Home.
type Options struct {
	Grid       grid.Config
	CellWidth  float64
	CellHeight float64
	Launcher   Launcher
	Logger     *logrus.Entry
	// WriteBuffer preallocates the store write queue. The queue grows past
	// it rather than blocking gesture handling.
	WriteBuffer int
}

// Home is one home-screen session. Gesture handling is single threaded:
// HandleEvent and Tick must be called from the same goroutine.
type Home struct {
	cfg        grid.Config
	cellWidth  float64
	cellHeight float64
	launcher   Launcher
	log        *logrus.Entry

	repo     pin.Repository
	writer   *Writer
	target   *GridTarget
	ctrl     *drag.Controller
	detector *gesture.Detector

	pressed pin.Item
}

// NewHome builds a session over repo and loads the current snapshot.
func NewHome(ctx context.Context, repo pin.Repository, opts Options) (*Home, error) {
	if opts.Logger == nil {
		opts.Logger = logrus.NewEntry(logrus.StandardLogger())
	}
	if opts.WriteBuffer == 0 {
		opts.WriteBuffer = 64
	}

	h := &Home{
		cfg:        opts.Grid,
		cellWidth:  opts.CellWidth,
		cellHeight: opts.CellHeight,
		launcher:   opts.Launcher,
		log:        opts.Logger,
		repo:       repo,
		writer:     NewWriter(opts.Logger.WithField("component", "writer"), opts.WriteBuffer),
		detector:   gesture.NewDetector(gesture.ThresholdsFrom(opts.Grid)),
	}
	h.target = NewGridTarget(repo, h.writer, opts.Grid.Columns, opts.Grid.MaxRows, opts.Logger)
	h.ctrl = drag.NewController(h.calculator(0), opts.Grid.DragThreshold,
		drag.WithTarget(h.target),
		drag.WithLogger(opts.Logger.WithField("component", "drag")),
	)

	board, err := repo.Board(ctx)
	if err != nil {
		h.writer.Close()
		return nil, err
	}
	h.SetBoard(board)
	return h, nil
}

func (h *Home) calculator(maxRow int) grid.Calculator {
	return grid.NewCalculator(h.cellWidth, h.cellHeight, h.cfg.Columns, h.cfg.RenderedRows(maxRow))
}

// SetBoard installs a snapshot published by the store.
func (h *Home) SetBoard(b pin.Board) {
	h.target.SetBoard(b)
	h.refresh()
}

// refresh resizes the geometry to the rows the board needs.
func (h *Home) refresh() {
	h.ctrl.SetCalculator(h.calculator(h.target.Board().MaxRow()))
}

// Reconfigure applies a new grid config and cell size. A live drag keeps
// going with the new geometry.
func (h *Home) Reconfigure(cfg grid.Config, cellWidth, cellHeight float64) {
	h.cfg = cfg
	h.cellWidth = cellWidth
	h.cellHeight = cellHeight
	h.detector.SetThresholds(gesture.ThresholdsFrom(cfg))
	h.ctrl.SetThreshold(cfg.DragThreshold)
	h.refresh()
}

// Board returns the snapshot the session works on.
func (h *Home) Board() pin.Board {
	return h.target.Board()
}

// Calculator returns the current geometry.
func (h *Home) Calculator() grid.Calculator {
	return h.ctrl.Calculator()
}

// Config returns the grid config.
func (h *Home) Config() grid.Config {
	return h.cfg
}

// DragState returns the drag state.
func (h *Home) DragState() drag.State {
	return h.ctrl.State()
}

// Hover returns the previewed drop cell during a drag.
func (h *Home) Hover() (grid.Position, bool) {
	if !h.ctrl.IsDragging() {
		return grid.Position{}, false
	}
	return h.target.Hover()
}

// Pressed returns the item currently held, if any.
func (h *Home) Pressed() pin.Item {
	return h.pressed
}

// Phase returns the gesture detector phase.
func (h *Home) Phase() gesture.Phase {
	return h.detector.Phase()
}

// HandleEvent feeds a pointer event through gesture detection.
func (h *Home) HandleEvent(ctx context.Context, ev gesture.Event) []Action {
	return h.dispatch(ctx, h.detector.Feed(ev))
}

// Tick advances long-press detection.
func (h *Home) Tick(ctx context.Context, now time.Time) []Action {
	return h.dispatch(ctx, h.detector.Tick(now))
}

// Cancel aborts any gesture in progress, e.g. when the view loses focus.
func (h *Home) Cancel(ctx context.Context) []Action {
	return h.dispatch(ctx, h.detector.Reset())
}

func (h *Home) dispatch(ctx context.Context, gestures []gesture.Gesture) []Action {
	var actions []Action
	for _, g := range gestures {
		h.log.WithField("gesture", gesture.Name(g)).Trace("gesture")
		if a := h.handle(ctx, g); a != nil {
			actions = append(actions, a)
		}
	}
	// An item is only held while the detector is past the long press.
	// Second pointers, cancels and resets return it to Idle or Ignoring
	// without a gesture of their own.
	switch h.detector.Phase() {
	case gesture.PhaseLongPressed, gesture.PhaseDragging:
	default:
		h.pressed = nil
	}
	return actions
}

func (h *Home) handle(ctx context.Context, g gesture.Gesture) Action {
	switch g := g.(type) {
	case gesture.Tap:
		item, ok := h.ItemAt(g.Pos)
		if !ok {
			return OpenSearch{At: g.Pos}
		}
		var err error
		if h.launcher != nil {
			err = h.launcher.Launch(ctx, item)
			if err != nil {
				h.log.WithError(err).WithField("id", item.ID()).Warn("launch failed")
			}
		}
		return OpenItem{Item: item, Err: err}

	case gesture.LongPress:
		h.pressed = nil
		item, ok := h.ItemAt(g.Pos)
		if !ok {
			return nil
		}
		h.pressed = item
		return PressItem{Item: item}

	case gesture.Menu:
		item := h.pressed
		h.pressed = nil
		if item == nil {
			return nil
		}
		return ShowMenu{Item: item, At: g.Pos}

	case gesture.DragStart:
		item := h.pressed
		if item == nil {
			return nil
		}
		if err := h.ctrl.StartDrag(item, item.Position()); err != nil {
			h.log.WithError(err).Warn("cannot start drag")
			return nil
		}
		h.ctrl.SetDragOffset(g.Offset)
		return nil

	case gesture.DragMove:
		h.ctrl.UpdateDrag(g.Delta)
		return nil

	case gesture.DragEnd:
		item := h.pressed
		h.pressed = nil
		if item == nil {
			return nil
		}
		res := h.ctrl.EndDrag()
		write := h.target.TakeWrite()
		h.refresh()
		return Dropped{Item: item, Result: res, Write: write}

	case gesture.DragCancel:
		item := h.pressed
		h.pressed = nil
		if item == nil {
			return nil
		}
		h.ctrl.CancelDrag()
		return Dropped{Item: item, Result: drag.Cancelled{}}
	}
	return nil
}

// ItemAt returns the item under pt. Points outside the rendered grid hit
// nothing.
func (h *Home) ItemAt(pt grid.Point) (pin.Item, bool) {
	calc := h.ctrl.Calculator()
	width := float64(calc.Columns()) * calc.CellWidth()
	height := float64(calc.Rows()) * calc.CellHeight()
	if pt.X < 0 || pt.Y < 0 || pt.X >= width || pt.Y >= height {
		return nil, false
	}
	return h.target.Board().At(calc.PixelToCell(pt))
}

// Unpin removes an item, e.g. from the item menu.
func (h *Home) Unpin(id string) <-chan error {
	errc := h.target.Remove(id)
	h.refresh()
	return errc
}

// Search forwards a query to s. A nil searcher ignores the query.
func Search(ctx context.Context, s Searcher, query string) error {
	if s == nil || query == "" {
		return nil
	}
	return s.Search(ctx, query)
}

// Close waits for queued writes to finish.
func (h *Home) Close() {
	h.writer.Close()
}
