package drag

import (
	"errors"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/javiermolinar/homegrid/internal/grid"
	"github.com/javiermolinar/homegrid/internal/pin"
)

// Controller errors.
var (
	ErrAlreadyDragging = errors.New("a drag is already in progress")
	ErrNotDragging     = errors.New("not dragging")
	ErrNoItem          = errors.New("drag needs an item")
)

// Controller owns the drag State and drives it through the grid geometry
// and a drop Target. It is not safe for concurrent use: gesture handling
// runs on a single goroutine and calls the controller synchronously.
//
// Every StartDrag is matched by exactly one return to Idle, whether the
// drag ends in a drop, a rejection or a cancellation.
type Controller struct {
	calc      grid.Calculator
	threshold float64
	target    Target
	state     State
	observers []func(State)
	log       *logrus.Entry
}

// Option configures a Controller.
type Option func(*Controller)

// WithTarget attaches a drop target. Without one every drop is accepted.
func WithTarget(t Target) Option {
	return func(c *Controller) {
		c.target = t
	}
}

// WithObserver registers fn to be called after every state transition.
func WithObserver(fn func(State)) Option {
	return func(c *Controller) {
		c.observers = append(c.observers, fn)
	}
}

// WithLogger sets the logger used for transition tracing.
func WithLogger(l *logrus.Entry) Option {
	return func(c *Controller) {
		c.log = l
	}
}

// NewController creates an idle controller. threshold is the offset in
// pixels a drag must travel before it counts as a movement.
func NewController(calc grid.Calculator, threshold float64, opts ...Option) *Controller {
	c := &Controller{
		calc:      calc,
		threshold: threshold,
		state:     Idle{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		c.log = logrus.NewEntry(l)
	}
	return c
}

// State returns the current drag state.
func (c *Controller) State() State {
	return c.state
}

// IsDragging returns true while a drag is live.
func (c *Controller) IsDragging() bool {
	_, ok := c.state.(Dragging)
	return ok
}

// Calculator returns the geometry in use.
func (c *Controller) Calculator() grid.Calculator {
	return c.calc
}

// SetCalculator replaces the geometry, e.g. after a resize.
func (c *Controller) SetCalculator(calc grid.Calculator) {
	c.calc = calc
}

// SetThreshold replaces the drag threshold.
func (c *Controller) SetThreshold(px float64) {
	c.threshold = px
}

// SetTarget attaches or replaces the drop target. nil detaches it.
func (c *Controller) SetTarget(t Target) {
	c.target = t
}

// StartDrag begins dragging item from start. The caller has already decided
// that the gesture is a drag rather than a tap or a menu press.
func (c *Controller) StartDrag(item pin.Item, start grid.Position) error {
	if item == nil {
		return ErrNoItem
	}
	if _, idle := c.state.(Idle); !idle {
		return ErrAlreadyDragging
	}

	start = c.calc.Clamp(start)
	c.log.WithFields(logrus.Fields{
		"item":  item.ID(),
		"start": start.String(),
	}).Debug("drag started")

	c.setState(Dragging{Item: item, Start: start})
	return nil
}

// UpdateDrag adds delta to the drag offset and previews the new target
// cell. It does nothing unless a drag is live.
func (c *Controller) UpdateDrag(delta grid.Point) {
	d, ok := c.state.(Dragging)
	if !ok {
		return
	}
	c.moveTo(d, d.Offset.Add(delta))
}

// SetDragOffset sets the absolute drag offset, for programmatic positioning.
func (c *Controller) SetDragOffset(offset grid.Point) {
	d, ok := c.state.(Dragging)
	if !ok {
		return
	}
	c.moveTo(d, offset)
}

// TargetPosition returns the cell the live drag would drop into.
func (c *Controller) TargetPosition() (grid.Position, bool) {
	switch st := c.state.(type) {
	case Dragging:
		if !st.ExceededThreshold {
			return st.Start, true
		}
		return c.calc.TargetPosition(st.Start, st.Offset), true
	case PendingDrop:
		return st.Target, true
	default:
		return grid.Position{}, false
	}
}

func (c *Controller) moveTo(d Dragging, offset grid.Point) {
	d.Offset = offset
	if !d.ExceededThreshold && d.Distance() >= c.threshold {
		d.ExceededThreshold = true
	}
	c.setState(d)

	if !d.ExceededThreshold {
		return
	}
	if p, ok := c.target.(Previewer); ok {
		p.PreviewDrop(d.Item, c.calc.TargetPosition(d.Start, d.Offset))
	}
}

// EndDrag releases the drag and resolves it against the drop target.
//
// A drag that never exceeded the threshold is cancelled. If the target
// rejects the cell the drag is cancelled and Rejected is returned; the item
// is not moved. Otherwise the target's OnDrop result is returned, or
// Success at the target cell when OnDrop returns nil or no target is
// attached. The controller is Idle again on every return path.
func (c *Controller) EndDrag() (result Result) {
	d, ok := c.state.(Dragging)
	if !ok {
		return Cancelled{}
	}
	if !d.ExceededThreshold {
		c.CancelDrag()
		return Cancelled{}
	}

	to := c.calc.TargetPosition(d.Start, d.Offset)
	c.setState(PendingDrop{Item: d.Item, Start: d.Start, Target: to})

	defer func() {
		if r := recover(); r != nil {
			c.setState(Idle{})
			panic(r)
		}
		c.setState(Idle{})
		c.log.WithFields(logrus.Fields{
			"item":   d.Item.ID(),
			"result": result.String(),
		}).Debug("drag ended")
	}()

	if c.target == nil {
		return Success{Final: to}
	}
	if err := c.target.CanDrop(d.Item, to); err != nil {
		c.abort()
		return Rejected{Reason: err.Error()}
	}
	if res := c.target.OnDrop(d.Item, to); res != nil {
		return res
	}
	return Success{Final: to}
}

// CancelDrag aborts a live drag without committing it and notifies the
// target. It does nothing when no drag is live.
func (c *Controller) CancelDrag() {
	if _, ok := c.state.(Dragging); !ok {
		return
	}
	c.log.WithField("item", ItemOf(c.state).ID()).Debug("drag cancelled")
	c.abort()
}

func (c *Controller) abort() {
	if l, ok := c.target.(CancelListener); ok {
		l.OnDragCancelled()
	}
	c.setState(Idle{})
}

func (c *Controller) setState(s State) {
	if _, wasIdle := c.state.(Idle); wasIdle {
		if _, isIdle := s.(Idle); isIdle {
			return
		}
	}
	c.state = s
	for _, fn := range c.observers {
		fn(s)
	}
}
