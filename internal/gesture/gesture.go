// Package gesture turns raw pointer events into home-screen gestures: tap,
// long-press menu, drag and cancellation.
package gesture

import (
	"time"

	"github.com/javiermolinar/homegrid/internal/grid"
)

// EventKind is the type of a pointer event.
type EventKind int

const (
	EventDown EventKind = iota
	EventMove
	EventUp
	EventCancel
)

func (k EventKind) String() string {
	switch k {
	case EventDown:
		return "down"
	case EventMove:
		return "move"
	case EventUp:
		return "up"
	case EventCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// Event is a single pointer event in canvas pixels.
type Event struct {
	Kind    EventKind
	Pointer int
	Pos     grid.Point
	At      time.Time
}

// Down returns a pointer-down event.
func Down(pointer int, x, y float64, at time.Time) Event {
	return Event{Kind: EventDown, Pointer: pointer, Pos: grid.Point{X: x, Y: y}, At: at}
}

// Move returns a pointer-move event.
func Move(pointer int, x, y float64, at time.Time) Event {
	return Event{Kind: EventMove, Pointer: pointer, Pos: grid.Point{X: x, Y: y}, At: at}
}

// Up returns a pointer-up event.
func Up(pointer int, x, y float64, at time.Time) Event {
	return Event{Kind: EventUp, Pointer: pointer, Pos: grid.Point{X: x, Y: y}, At: at}
}

// Cancel returns a pointer-cancel event.
func Cancel(pointer int, at time.Time) Event {
	return Event{Kind: EventCancel, Pointer: pointer, At: at}
}

// Gesture is a recognised gesture. The set is closed.
type Gesture interface {
	isGesture()
}

// Tap is a short press and release within the touch slop.
type Tap struct {
	Pos grid.Point
}

// LongPress fires once the press has been held for the long-press duration
// without leaving the touch slop. It is followed by either Menu or
// DragStart.
type LongPress struct {
	Pos grid.Point
}

// Menu is a long press released without dragging.
type Menu struct {
	Pos grid.Point
}

// DragStart is emitted when a long press moves past the drag threshold.
// Offset is the displacement from the press point at that moment.
type DragStart struct {
	Origin grid.Point
	Offset grid.Point
}

// DragMove carries the displacement since the previous drag event.
type DragMove struct {
	Delta grid.Point
}

// DragEnd is a release while dragging.
type DragEnd struct{}

// DragCancel aborts a drag: the pointer was cancelled or a second pointer
// went down.
type DragCancel struct{}

func (Tap) isGesture()        {}
func (LongPress) isGesture()  {}
func (Menu) isGesture()       {}
func (DragStart) isGesture()  {}
func (DragMove) isGesture()   {}
func (DragEnd) isGesture()    {}
func (DragCancel) isGesture() {}

// Name returns a short label for g, used in logs.
func Name(g Gesture) string {
	switch g.(type) {
	case Tap:
		return "tap"
	case LongPress:
		return "long_press"
	case Menu:
		return "menu"
	case DragStart:
		return "drag_start"
	case DragMove:
		return "drag_move"
	case DragEnd:
		return "drag_end"
	case DragCancel:
		return "drag_cancel"
	default:
		return "unknown"
	}
}
