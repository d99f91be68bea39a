// Package grid provides the coordinate model of the pinned-items grid.
package grid

import "fmt"

// Position addresses one cell of the grid. Equality is structural, so
// positions can be compared with == and used as map keys.
//
// A position only has meaning relative to a fixed column count; the type
// itself carries no bound.
type Position struct {
	Row    int `json:"row" yaml:"row"`
	Column int `json:"column" yaml:"column"`
}

// Default is the top-left cell. New items and records without a stored
// position land here.
var Default = Position{}

// At is shorthand for Position{Row: row, Column: column}.
func At(row, column int) Position {
	return Position{Row: row, Column: column}
}

// String returns "(row,column)".
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Column)
}

// Within reports whether p addresses a cell of a columns x maxRows grid.
func (p Position) Within(columns, maxRows int) bool {
	return p.Row >= 0 && p.Column >= 0 && p.Column < columns && p.Row < maxRows
}

// Before reports whether p comes before o in row-major order.
func (p Position) Before(o Position) bool {
	if p.Row != o.Row {
		return p.Row < o.Row
	}
	return p.Column < o.Column
}

// Point is a pixel coordinate or a pixel offset.
type Point struct {
	X float64
	Y float64
}

// Add returns p + o.
func (p Point) Add(o Point) Point {
	return Point{X: p.X + o.X, Y: p.Y + o.Y}
}

// Sub returns p - o.
func (p Point) Sub(o Point) Point {
	return Point{X: p.X - o.X, Y: p.Y - o.Y}
}

// Rect is an axis-aligned pixel rectangle.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Contains reports whether pt lies inside r (left/top inclusive).
func (r Rect) Contains(pt Point) bool {
	return pt.X >= r.X && pt.X < r.X+r.Width && pt.Y >= r.Y && pt.Y < r.Y+r.Height
}
