package tui

import (
	"math"

	"github.com/javiermolinar/homegrid/internal/grid"
)

// The gesture and drag logic works in pixels. A terminal cell is treated
// as a pxPerCol x pxPerRow block so that thresholds keep their meaning.
const (
	pxPerCol = 8.0
	pxPerRow = 16.0

	// Canvas origin in terminal cells: a header line and a blank line
	// above, a two-cell margin to the left.
	canvasLeft = 2
	canvasTop  = 2
)

// cellPixels returns the pixel size of a grid cell that is width x height
// terminal cells.
func cellPixels(width, height int) (float64, float64) {
	return float64(width) * pxPerCol, float64(height) * pxPerRow
}

// toCanvas maps a terminal cell to the pixel at its center, relative to
// the canvas origin.
func toCanvas(x, y int) grid.Point {
	return grid.Point{
		X: float64(x-canvasLeft)*pxPerCol + pxPerCol/2,
		Y: float64(y-canvasTop)*pxPerRow + pxPerRow/2,
	}
}

// toTerminal maps a canvas pixel to the terminal cell containing it.
func toTerminal(pt grid.Point) (int, int) {
	x := int(math.Floor(pt.X/pxPerCol)) + canvasLeft
	y := int(math.Floor(pt.Y/pxPerRow)) + canvasTop
	return x, y
}
