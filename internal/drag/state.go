// Package drag implements the drag-and-drop state machine of the pinned
// grid: the drag state, the drop-target protocol and the controller that
// ties them to the grid geometry.
package drag

import (
	"math"

	"github.com/javiermolinar/homegrid/internal/grid"
	"github.com/javiermolinar/homegrid/internal/pin"
)

// State is the drag state. The set of implementations is closed: Idle,
// Dragging and PendingDrop. Lifecycle:
//
//	Idle -> Dragging -> PendingDrop -> Idle
//	Idle -> Dragging -> Idle (cancelled)
type State interface {
	isState()
}

// Idle means no drag is in progress.
type Idle struct{}

// Dragging is a live drag. Offset accumulates the pixel delta from the
// start cell's pixel origin.
type Dragging struct {
	Item              pin.Item
	Start             grid.Position
	Offset            grid.Point
	ExceededThreshold bool
}

// PendingDrop is the window between release and drop-target resolution.
type PendingDrop struct {
	Item   pin.Item
	Start  grid.Position
	Target grid.Position
}

func (Idle) isState()        {}
func (Dragging) isState()    {}
func (PendingDrop) isState() {}

// Distance returns the length of the accumulated offset.
func (d Dragging) Distance() float64 {
	return math.Hypot(d.Offset.X, d.Offset.Y)
}

// ItemOf returns the item carried by s, or nil when idle.
func ItemOf(s State) pin.Item {
	switch st := s.(type) {
	case Dragging:
		return st.Item
	case PendingDrop:
		return st.Item
	default:
		return nil
	}
}

// StateName returns a short label for logs.
func StateName(s State) string {
	switch s.(type) {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case PendingDrop:
		return "pending_drop"
	default:
		return "unknown"
	}
}
