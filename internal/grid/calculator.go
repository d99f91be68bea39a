package grid

import "math"

// Calculator converts between pixels and cells. It is a value type with no
// error conditions: every output is clamped into the grid, never rejected.
type Calculator struct {
	cellWidth  float64
	cellHeight float64
	columns    int
	rows       int
}

// NewCalculator creates a calculator. Degenerate sizes are raised to the
// smallest usable value so that every method stays total.
func NewCalculator(cellWidth, cellHeight float64, columns, rows int) Calculator {
	if !(cellWidth > 0) || math.IsInf(cellWidth, 0) {
		cellWidth = 1
	}
	if !(cellHeight > 0) || math.IsInf(cellHeight, 0) {
		cellHeight = 1
	}
	if columns < 1 {
		columns = 1
	}
	if rows < 1 {
		rows = 1
	}
	return Calculator{
		cellWidth:  cellWidth,
		cellHeight: cellHeight,
		columns:    columns,
		rows:       rows,
	}
}

// CellWidth returns the cell width in pixels.
func (c Calculator) CellWidth() float64 { return c.cellWidth }

// CellHeight returns the cell height in pixels.
func (c Calculator) CellHeight() float64 { return c.cellHeight }

// Columns returns the column count.
func (c Calculator) Columns() int { return c.columns }

// Rows returns the row count.
func (c Calculator) Rows() int { return c.rows }

// Clamp pulls p into [0, rows-1] x [0, columns-1].
func (c Calculator) Clamp(p Position) Position {
	return Position{
		Row:    clampInt(p.Row, 0, c.rows-1),
		Column: clampInt(p.Column, 0, c.columns-1),
	}
}

// PixelToCell returns the cell containing pt, clamped into the grid.
func (c Calculator) PixelToCell(pt Point) Position {
	return Position{
		Row:    clampInt(floorDiv(pt.Y, c.cellHeight), 0, c.rows-1),
		Column: clampInt(floorDiv(pt.X, c.cellWidth), 0, c.columns-1),
	}
}

// CellToPixel returns the top-left pixel of p.
func (c Calculator) CellToPixel(p Position) Point {
	return Point{
		X: float64(p.Column) * c.cellWidth,
		Y: float64(p.Row) * c.cellHeight,
	}
}

// CellCenter returns the center pixel of p.
func (c Calculator) CellCenter(p Position) Point {
	tl := c.CellToPixel(p)
	return Point{X: tl.X + c.cellWidth/2, Y: tl.Y + c.cellHeight/2}
}

// CellBounds returns the pixel rectangle covered by p.
func (c Calculator) CellBounds(p Position) Rect {
	tl := c.CellToPixel(p)
	return Rect{X: tl.X, Y: tl.Y, Width: c.cellWidth, Height: c.cellHeight}
}

// TargetPosition returns the cell a drag that started at start lands in
// after moving by offset pixels. Offsets are rounded to whole cells, so the
// target follows the nearest cell center rather than the top-left corner.
func (c Calculator) TargetPosition(start Position, offset Point) Position {
	return c.Clamp(Position{
		Row:    start.Row + roundToInt(offset.Y/c.cellHeight),
		Column: start.Column + roundToInt(offset.X/c.cellWidth),
	})
}

// OffsetBetween returns the pixel offset that moves a cell from a to b. It
// inverts TargetPosition for positions inside the grid.
func (c Calculator) OffsetBetween(a, b Position) Point {
	return c.CellToPixel(b).Sub(c.CellToPixel(a))
}

func floorDiv(v, size float64) int {
	q := math.Floor(v / size)
	switch {
	case math.IsNaN(q):
		return 0
	case q > math.MaxInt32:
		return math.MaxInt32
	case q < math.MinInt32:
		return math.MinInt32
	}
	return int(q)
}

func roundToInt(v float64) int {
	r := math.Round(v)
	switch {
	case math.IsNaN(r):
		return 0
	case r > math.MaxInt32:
		return math.MaxInt32
	case r < math.MinInt32:
		return math.MinInt32
	}
	return int(r)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
