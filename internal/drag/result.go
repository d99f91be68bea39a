package drag

import (
	"fmt"

	"github.com/javiermolinar/homegrid/internal/grid"
	"github.com/javiermolinar/homegrid/internal/pin"
)

// Result is the outcome of a drag. The set of implementations is closed:
// Success, Swap, Rejected and Cancelled.
type Result interface {
	isResult()
	fmt.Stringer
}

// Success means the item landed in a previously empty cell.
type Success struct {
	Final grid.Position
}

// Swap means the item was dropped onto an occupied cell and the two items
// exchanged positions. Both halves are reported so the view can animate the
// displaced item at the same time as the dragged one.
type Swap struct {
	Moved       pin.Item
	MovedTo     grid.Position
	Displaced   pin.Item
	DisplacedTo grid.Position
}

// Rejected means the drop target refused the drop. The item must return to
// where it started.
type Rejected struct {
	Reason string
}

// Cancelled means the gesture was aborted before a drop decision was made.
type Cancelled struct{}

func (Success) isResult()   {}
func (Swap) isResult()      {}
func (Rejected) isResult()  {}
func (Cancelled) isResult() {}

func (r Success) String() string {
	return "success " + r.Final.String()
}

func (r Swap) String() string {
	return fmt.Sprintf("swap %s->%v %s->%v",
		r.Moved.ID(), r.MovedTo, r.Displaced.ID(), r.DisplacedTo)
}

func (r Rejected) String() string {
	return "rejected: " + r.Reason
}

func (Cancelled) String() string {
	return "cancelled"
}

// Committed reports whether r moved anything.
func Committed(r Result) bool {
	switch r.(type) {
	case Success, Swap:
		return true
	default:
		return false
	}
}
