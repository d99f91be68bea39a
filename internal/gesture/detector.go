package gesture

import (
	"math"
	"time"

	"github.com/javiermolinar/homegrid/internal/grid"
)

// Phase is the detector state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhasePressed
	PhaseLongPressed
	PhaseDragging
	PhasePanning
	PhaseIgnoring
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePressed:
		return "pressed"
	case PhaseLongPressed:
		return "long_pressed"
	case PhaseDragging:
		return "dragging"
	case PhasePanning:
		return "panning"
	case PhaseIgnoring:
		return "ignoring"
	default:
		return "unknown"
	}
}

// Thresholds configure the detector.
type Thresholds struct {
	LongPress     time.Duration
	TouchSlop     float64
	DragThreshold float64
}

// ThresholdsFrom extracts the gesture thresholds from a grid config.
func ThresholdsFrom(cfg grid.Config) Thresholds {
	return Thresholds{
		LongPress:     cfg.LongPress,
		TouchSlop:     cfg.TouchSlop,
		DragThreshold: cfg.DragThreshold,
	}
}

// Detector is a single-pointer gesture state machine. It has no clock of
// its own: the caller feeds events and periodic ticks with timestamps.
// It is not safe for concurrent use.
type Detector struct {
	th      Thresholds
	phase   Phase
	pointer int
	origin  grid.Point
	last    grid.Point
	downAt  time.Time
	active  map[int]struct{}
}

// NewDetector creates an idle detector.
func NewDetector(th Thresholds) *Detector {
	if th.LongPress <= 0 {
		th.LongPress = grid.DefaultLongPress
	}
	if th.TouchSlop < 0 {
		th.TouchSlop = 0
	}
	return &Detector{
		th:     th,
		active: make(map[int]struct{}),
	}
}

// Phase returns the current phase.
func (d *Detector) Phase() Phase {
	return d.phase
}

// Origin returns the press point of the current gesture.
func (d *Detector) Origin() grid.Point {
	return d.origin
}

// SetThresholds replaces the thresholds. A gesture in progress keeps going
// with the new values.
func (d *Detector) SetThresholds(th Thresholds) {
	if th.LongPress <= 0 {
		th.LongPress = grid.DefaultLongPress
	}
	d.th = th
}

// Reset drops all tracking. It emits DragCancel if a drag was live.
func (d *Detector) Reset() []Gesture {
	var out []Gesture
	if d.phase == PhaseDragging {
		out = append(out, DragCancel{})
	}
	d.phase = PhaseIdle
	d.active = make(map[int]struct{})
	return out
}

// Feed processes ev and returns the gestures it completes, in order.
func (d *Detector) Feed(ev Event) []Gesture {
	switch ev.Kind {
	case EventDown:
		return d.down(ev)
	case EventMove:
		return d.move(ev)
	case EventUp:
		return d.up(ev)
	case EventCancel:
		return d.cancel(ev)
	default:
		return nil
	}
}

// Tick promotes a held press to a long press once the duration has passed.
func (d *Detector) Tick(now time.Time) []Gesture {
	if d.phase != PhasePressed || now.Sub(d.downAt) < d.th.LongPress {
		return nil
	}
	d.phase = PhaseLongPressed
	return []Gesture{LongPress{Pos: d.origin}}
}

func (d *Detector) down(ev Event) []Gesture {
	d.active[ev.Pointer] = struct{}{}

	if d.phase == PhaseIdle && len(d.active) == 1 {
		d.phase = PhasePressed
		d.pointer = ev.Pointer
		d.origin = ev.Pos
		d.last = ev.Pos
		d.downAt = ev.At
		return nil
	}

	// A second pointer aborts whatever the first one was doing.
	var out []Gesture
	if d.phase == PhaseDragging {
		out = append(out, DragCancel{})
	}
	d.phase = PhaseIgnoring
	return out
}

func (d *Detector) move(ev Event) []Gesture {
	if ev.Pointer != d.pointer {
		return nil
	}

	var out []Gesture
	if d.phase == PhasePressed {
		out = append(out, d.Tick(ev.At)...)
	}

	switch d.phase {
	case PhasePressed:
		if distance(d.origin, ev.Pos) > d.th.TouchSlop {
			d.phase = PhasePanning
		}
	case PhaseLongPressed:
		if distance(d.origin, ev.Pos) >= d.th.DragThreshold {
			d.phase = PhaseDragging
			out = append(out, DragStart{Origin: d.origin, Offset: ev.Pos.Sub(d.origin)})
		}
	case PhaseDragging:
		if delta := ev.Pos.Sub(d.last); delta != (grid.Point{}) {
			out = append(out, DragMove{Delta: delta})
		}
	}
	d.last = ev.Pos
	return out
}

func (d *Detector) up(ev Event) []Gesture {
	delete(d.active, ev.Pointer)

	if ev.Pointer != d.pointer || d.phase == PhaseIgnoring || d.phase == PhaseIdle {
		d.settle()
		return nil
	}

	var out []Gesture
	if d.phase == PhasePressed {
		out = append(out, d.Tick(ev.At)...)
	}

	switch d.phase {
	case PhasePressed:
		if distance(d.origin, ev.Pos) <= d.th.TouchSlop {
			out = append(out, Tap{Pos: d.origin})
		}
	case PhaseLongPressed:
		out = append(out, Menu{Pos: d.origin})
	case PhaseDragging:
		if delta := ev.Pos.Sub(d.last); delta != (grid.Point{}) {
			out = append(out, DragMove{Delta: delta})
		}
		out = append(out, DragEnd{})
	}

	d.phase = PhaseIdle
	d.settle()
	return out
}

func (d *Detector) cancel(ev Event) []Gesture {
	delete(d.active, ev.Pointer)

	var out []Gesture
	if d.phase == PhaseDragging {
		out = append(out, DragCancel{})
	}
	if d.phase != PhaseIdle {
		d.phase = PhaseIgnoring
	}
	d.settle()
	return out
}

// settle returns to idle once every pointer is up, or ignores the rest of
// the sequence while some remain.
func (d *Detector) settle() {
	if len(d.active) == 0 {
		d.phase = PhaseIdle
		return
	}
	if d.phase == PhaseIdle {
		d.phase = PhaseIgnoring
	}
}

func distance(a, b grid.Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}
