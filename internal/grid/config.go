package grid

import "time"

const (
	// DefaultColumns is the number of columns of a fresh grid.
	DefaultColumns = 4
	// DefaultExtraRows is the breathing room rendered below the last occupied row.
	DefaultExtraRows = 2
	// DefaultMaxRows bounds the addressable rows.
	DefaultMaxRows = 100
	// DefaultDragThreshold is the displacement in pixels a long-press must
	// travel before it becomes a drag.
	DefaultDragThreshold = 20.0
	// DefaultTouchSlop is the displacement that turns a press into a pan
	// before the long-press fires.
	DefaultTouchSlop = 8.0
	// DefaultLongPress is the hold duration that arms a long-press.
	DefaultLongPress = 500 * time.Millisecond
)

// Config holds the grid configuration. Columns x MaxRows bounds the
// addressable space.
type Config struct {
	Columns       int
	ExtraRows     int
	MaxRows       int
	DragThreshold float64       // pixels
	TouchSlop     float64       // pixels
	LongPress     time.Duration // hold before the long-press fires

	// Visual knobs, not used by the placement logic.
	DragScale float64
	DragAlpha float64
}

// DefaultConfig returns the stock grid configuration.
func DefaultConfig() Config {
	return Config{
		Columns:       DefaultColumns,
		ExtraRows:     DefaultExtraRows,
		MaxRows:       DefaultMaxRows,
		DragThreshold: DefaultDragThreshold,
		TouchSlop:     DefaultTouchSlop,
		LongPress:     DefaultLongPress,
		DragScale:     1.1,
		DragAlpha:     0.8,
	}
}

// RenderedRows returns how many rows the view draws for a grid whose lowest
// occupied row is maxRow: the content plus ExtraRows, never fewer rows than
// the content needs and never more than MaxRows.
func (c Config) RenderedRows(maxRow int) int {
	if maxRow < 0 {
		maxRow = 0
	}
	rows := maxRow + c.ExtraRows
	if rows < maxRow+1 {
		rows = maxRow + 1
	}
	if c.MaxRows > 0 && rows > c.MaxRows {
		rows = c.MaxRows
	}
	return rows
}

// Contains reports whether p is addressable under this configuration.
func (c Config) Contains(p Position) bool {
	return p.Within(c.Columns, c.MaxRows)
}
