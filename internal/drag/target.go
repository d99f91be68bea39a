package drag

import (
	"github.com/javiermolinar/homegrid/internal/grid"
	"github.com/javiermolinar/homegrid/internal/pin"
)

// Target is implemented by whatever owns the grid's data. It decides
// whether an item may land on a cell and commits the drop.
type Target interface {
	// CanDrop returns nil if item may be dropped at to. A non-nil error is
	// a rejection; its message is reported as the rejection reason.
	CanDrop(item pin.Item, to grid.Position) error

	// OnDrop commits the drop. A nil result is treated as Success{to}.
	OnDrop(item pin.Item, to grid.Position) Result
}

// Previewer is an optional Target extension that receives hover feedback
// while the drag moves.
type Previewer interface {
	PreviewDrop(item pin.Item, to grid.Position)
}

// CancelListener is an optional Target extension notified when a drag ends
// without a drop.
type CancelListener interface {
	OnDragCancelled()
}

// TargetFuncs adapts plain functions to Target. Nil funcs accept the drop.
type TargetFuncs struct {
	CanDropFunc   func(item pin.Item, to grid.Position) error
	OnDropFunc    func(item pin.Item, to grid.Position) Result
	PreviewFunc   func(item pin.Item, to grid.Position)
	CancelledFunc func()
}

// CanDrop calls CanDropFunc.
func (f TargetFuncs) CanDrop(item pin.Item, to grid.Position) error {
	if f.CanDropFunc == nil {
		return nil
	}
	return f.CanDropFunc(item, to)
}

// OnDrop calls OnDropFunc.
func (f TargetFuncs) OnDrop(item pin.Item, to grid.Position) Result {
	if f.OnDropFunc == nil {
		return nil
	}
	return f.OnDropFunc(item, to)
}

// PreviewDrop calls PreviewFunc.
func (f TargetFuncs) PreviewDrop(item pin.Item, to grid.Position) {
	if f.PreviewFunc != nil {
		f.PreviewFunc(item, to)
	}
}

// OnDragCancelled calls CancelledFunc.
func (f TargetFuncs) OnDragCancelled() {
	if f.CancelledFunc != nil {
		f.CancelledFunc()
	}
}
