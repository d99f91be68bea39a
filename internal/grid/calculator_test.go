package grid

import (
	"math"
	"math/rand"
	"reflect"
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCalculator() Calculator {
	return NewCalculator(80, 100, 4, 6)
}

// cellGen produces positions inside testCalculator's grid.
type cellGen Position

func (cellGen) Generate(r *rand.Rand, _ int) reflect.Value {
	return reflect.ValueOf(cellGen{Row: r.Intn(6), Column: r.Intn(4)})
}

func TestCalculator_RoundTrip(t *testing.T) {
	calc := testCalculator()
	prop := func(g cellGen) bool {
		p := Position(g)
		return calc.PixelToCell(calc.CellToPixel(p)) == p &&
			calc.PixelToCell(calc.CellCenter(p)) == p
	}
	require.NoError(t, quick.Check(prop, nil))
}

func TestCalculator_PixelToCellAlwaysClamped(t *testing.T) {
	calc := testCalculator()
	prop := func(x, y float64) bool {
		p := calc.PixelToCell(Point{X: x, Y: y})
		return p.Column >= 0 && p.Column < calc.Columns() && p.Row >= 0 && p.Row < calc.Rows()
	}
	require.NoError(t, quick.Check(prop, nil))

	extremes := []Point{
		{X: -1, Y: -1},
		{X: math.Inf(1), Y: math.Inf(-1)},
		{X: math.NaN(), Y: math.NaN()},
		{X: 1e300, Y: -1e300},
	}
	for _, pt := range extremes {
		p := calc.PixelToCell(pt)
		assert.True(t, p.Within(calc.Columns(), calc.Rows()), "point %+v mapped to %v", pt, p)
	}
}

func TestCalculator_TargetPositionAlwaysClamped(t *testing.T) {
	calc := testCalculator()
	prop := func(g cellGen, dx, dy float64) bool {
		p := calc.TargetPosition(Position(g), Point{X: dx, Y: dy})
		return p.Within(calc.Columns(), calc.Rows())
	}
	require.NoError(t, quick.Check(prop, nil))
}

func TestCalculator_OffsetBetweenInvertsTarget(t *testing.T) {
	calc := testCalculator()
	prop := func(a, b cellGen) bool {
		off := calc.OffsetBetween(Position(a), Position(b))
		return calc.TargetPosition(Position(a), off) == Position(b)
	}
	require.NoError(t, quick.Check(prop, nil))
}

func TestCalculator_PixelToCell(t *testing.T) {
	calc := testCalculator()
	tests := []struct {
		name string
		pt   Point
		want Position
	}{
		{"origin", Point{0, 0}, At(0, 0)},
		{"inside first cell", Point{79.9, 99.9}, At(0, 0)},
		{"second column", Point{80, 0}, At(0, 1)},
		{"second row", Point{0, 100}, At(1, 0)},
		{"negative clamps to zero", Point{-500, -1}, At(0, 0)},
		{"past the right edge", Point{10_000, 250}, At(2, 3)},
		{"past the bottom edge", Point{90, 10_000}, At(5, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, calc.PixelToCell(tt.pt))
		})
	}
}

func TestCalculator_TargetPositionRounds(t *testing.T) {
	calc := testCalculator()
	start := At(1, 1)
	tests := []struct {
		name   string
		offset Point
		want   Position
	}{
		{"no movement", Point{0, 0}, At(1, 1)},
		{"just under half a cell stays", Point{39, 49}, At(1, 1)},
		{"past half a cell snaps forward", Point{41, 51}, At(2, 2)},
		{"past half a cell snaps backward", Point{-41, -51}, At(0, 0)},
		{"large offsets clamp", Point{-10_000, 10_000}, At(5, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, calc.TargetPosition(start, tt.offset))
		})
	}
}

func TestCalculator_Geometry(t *testing.T) {
	calc := testCalculator()
	p := At(2, 3)
	assert.Equal(t, Point{X: 240, Y: 200}, calc.CellToPixel(p))
	assert.Equal(t, Point{X: 280, Y: 250}, calc.CellCenter(p))

	bounds := calc.CellBounds(p)
	assert.Equal(t, Rect{X: 240, Y: 200, Width: 80, Height: 100}, bounds)
	assert.True(t, bounds.Contains(calc.CellCenter(p)))
	assert.False(t, bounds.Contains(calc.CellToPixel(At(2, 2))))
}

func TestNewCalculator_NormalizesDegenerateInput(t *testing.T) {
	calc := NewCalculator(0, -3, 0, -1)
	assert.Equal(t, 1.0, calc.CellWidth())
	assert.Equal(t, 1.0, calc.CellHeight())
	assert.Equal(t, 1, calc.Columns())
	assert.Equal(t, 1, calc.Rows())
	assert.Equal(t, At(0, 0), calc.PixelToCell(Point{X: 50, Y: 50}))
}

func TestConfig_RenderedRows(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ExtraRows = 2
	cfg.MaxRows = 10

	assert.Equal(t, 2, cfg.RenderedRows(0))
	assert.Equal(t, 5, cfg.RenderedRows(3))
	assert.Equal(t, 10, cfg.RenderedRows(9))

	cfg.ExtraRows = 0
	assert.Equal(t, 4, cfg.RenderedRows(3), "never fewer rows than the content")
}

func TestPosition(t *testing.T) {
	assert.Equal(t, "(2,3)", At(2, 3).String())
	assert.True(t, At(0, 3).Before(At(1, 0)))
	assert.True(t, At(1, 0).Before(At(1, 1)))
	assert.False(t, At(1, 1).Before(At(1, 1)))
	assert.True(t, At(3, 3).Within(4, 4))
	assert.False(t, At(0, 4).Within(4, 4))
	assert.False(t, At(-1, 0).Within(4, 4))
	assert.Equal(t, Default, At(0, 0))
}
