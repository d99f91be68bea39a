package drag

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javiermolinar/homegrid/internal/grid"
	"github.com/javiermolinar/homegrid/internal/pin"
)

// 4 columns x 6 rows of 80x100 cells.
func testCalc() grid.Calculator {
	return grid.NewCalculator(80, 100, 4, 6)
}

func testItem(name string, p grid.Position) pin.Item {
	return pin.App{Package: "com.example." + name, Activity: ".Main", Name: name, Pos: p}
}

// boardTarget is a minimal in-memory drop target backed by a pin.Board.
type boardTarget struct {
	board     pin.Board
	reject    error
	previews  []grid.Position
	cancelled int
}

func (b *boardTarget) CanDrop(pin.Item, grid.Position) error { return b.reject }

func (b *boardTarget) OnDrop(item pin.Item, to grid.Position) Result {
	next, mv, err := b.board.Move(item.ID(), to, 4, 6)
	if err != nil {
		return Rejected{Reason: err.Error()}
	}
	b.board = next
	if mv.Swapped() {
		return Swap{Moved: mv.Item, MovedTo: mv.To, Displaced: mv.Displaced, DisplacedTo: mv.From}
	}
	return Success{Final: mv.To}
}

func (b *boardTarget) PreviewDrop(_ pin.Item, to grid.Position) {
	b.previews = append(b.previews, to)
}

func (b *boardTarget) OnDragCancelled() { b.cancelled++ }

func TestController_StartDrag(t *testing.T) {
	c := NewController(testCalc(), 20)
	item := testItem("a", grid.At(1, 1))

	require.NoError(t, c.StartDrag(item, grid.At(1, 1)))
	st, ok := c.State().(Dragging)
	require.True(t, ok)
	assert.Equal(t, grid.At(1, 1), st.Start)
	assert.Equal(t, grid.Point{}, st.Offset)
	assert.False(t, st.ExceededThreshold)

	assert.ErrorIs(t, c.StartDrag(item, grid.At(0, 0)), ErrAlreadyDragging)
	assert.ErrorIs(t, NewController(testCalc(), 20).StartDrag(nil, grid.Default), ErrNoItem)
}

func TestController_BelowThresholdIsNotAMove(t *testing.T) {
	target := &boardTarget{}
	c := NewController(testCalc(), 20, WithTarget(target))
	require.NoError(t, c.StartDrag(testItem("a", grid.Default), grid.Default))

	c.UpdateDrag(grid.Point{X: 10, Y: 5})
	st := c.State().(Dragging)
	assert.False(t, st.ExceededThreshold)
	assert.Empty(t, target.previews)

	assert.Equal(t, Cancelled{}, c.EndDrag())
	assert.IsType(t, Idle{}, c.State())
	assert.Equal(t, 1, target.cancelled)
}

func TestController_ThresholdIsSticky(t *testing.T) {
	c := NewController(testCalc(), 20)
	require.NoError(t, c.StartDrag(testItem("a", grid.Default), grid.Default))

	c.UpdateDrag(grid.Point{X: 30})
	c.UpdateDrag(grid.Point{X: -30})
	st := c.State().(Dragging)
	assert.Equal(t, grid.Point{}, st.Offset)
	assert.True(t, st.ExceededThreshold)
}

func TestController_DropIntoEmptyCell(t *testing.T) {
	item := testItem("a", grid.Default)
	target := &boardTarget{board: pin.NewBoard([]pin.Item{item})}
	var seen []string
	c := NewController(testCalc(), 20, WithTarget(target), WithObserver(func(s State) {
		seen = append(seen, StateName(s))
	}))

	require.NoError(t, c.StartDrag(item, grid.Default))
	c.UpdateDrag(grid.Point{X: 160, Y: 100})

	pos, ok := c.TargetPosition()
	require.True(t, ok)
	assert.Equal(t, grid.At(1, 2), pos)

	res := c.EndDrag()
	assert.Equal(t, Success{Final: grid.At(1, 2)}, res)
	assert.IsType(t, Idle{}, c.State())
	assert.Equal(t, []grid.Position{grid.At(1, 2)}, target.previews)
	assert.Equal(t, []string{"dragging", "dragging", "pending_drop", "idle"}, seen)

	moved, _ := target.board.Find(item.ID())
	assert.Equal(t, grid.At(1, 2), moved.Position())
}

func TestController_DropOntoOccupiedCellSwaps(t *testing.T) {
	a := testItem("a", grid.At(0, 0))
	b := testItem("b", grid.At(0, 1))
	target := &boardTarget{board: pin.NewBoard([]pin.Item{a, b})}
	c := NewController(testCalc(), 20, WithTarget(target))

	require.NoError(t, c.StartDrag(a, a.Position()))
	c.SetDragOffset(testCalc().OffsetBetween(a.Position(), b.Position()))
	res := c.EndDrag()

	swap, ok := res.(Swap)
	require.True(t, ok, "got %v", res)
	assert.Equal(t, grid.At(0, 1), swap.MovedTo)
	assert.Equal(t, b.ID(), swap.Displaced.ID())
	assert.Equal(t, grid.At(0, 0), swap.DisplacedTo)
	assert.False(t, target.board.HasOverlap())
}

func TestController_RejectedDropLeavesItemInPlace(t *testing.T) {
	item := testItem("a", grid.Default)
	target := &boardTarget{
		board:  pin.NewBoard([]pin.Item{item}),
		reject: errors.New("cell reserved"),
	}
	c := NewController(testCalc(), 20, WithTarget(target))

	require.NoError(t, c.StartDrag(item, grid.Default))
	c.UpdateDrag(grid.Point{X: 80})
	res := c.EndDrag()

	assert.Equal(t, Rejected{Reason: "cell reserved"}, res)
	assert.False(t, Committed(res))
	assert.IsType(t, Idle{}, c.State())
	assert.Equal(t, 1, target.cancelled)

	got, _ := target.board.Find(item.ID())
	assert.Equal(t, grid.Default, got.Position())
}

func TestController_TargetIsClampedToGrid(t *testing.T) {
	c := NewController(testCalc(), 20)
	require.NoError(t, c.StartDrag(testItem("a", grid.At(5, 3)), grid.At(5, 3)))
	c.UpdateDrag(grid.Point{X: 10_000, Y: 10_000})
	assert.Equal(t, Success{Final: grid.At(5, 3)}, c.EndDrag())
}

func TestController_CancelDrag(t *testing.T) {
	target := &boardTarget{}
	c := NewController(testCalc(), 20, WithTarget(target))

	c.CancelDrag()
	assert.Equal(t, 0, target.cancelled, "cancel while idle is a no-op")

	require.NoError(t, c.StartDrag(testItem("a", grid.Default), grid.Default))
	c.UpdateDrag(grid.Point{X: 200})
	c.CancelDrag()
	assert.IsType(t, Idle{}, c.State())
	assert.Equal(t, 1, target.cancelled)

	// A fresh drag may start after a cancellation.
	require.NoError(t, c.StartDrag(testItem("a", grid.Default), grid.Default))
}

func TestController_EndDragWhileIdle(t *testing.T) {
	c := NewController(testCalc(), 20)
	assert.Equal(t, Cancelled{}, c.EndDrag())
	c.UpdateDrag(grid.Point{X: 100})
	assert.IsType(t, Idle{}, c.State())
}

func TestController_NilOnDropResultIsSuccess(t *testing.T) {
	c := NewController(testCalc(), 20, WithTarget(TargetFuncs{}))
	require.NoError(t, c.StartDrag(testItem("a", grid.Default), grid.Default))
	c.UpdateDrag(grid.Point{Y: 200})
	assert.Equal(t, Success{Final: grid.At(2, 0)}, c.EndDrag())
}

func TestController_PanicInTargetStillResets(t *testing.T) {
	c := NewController(testCalc(), 20, WithTarget(TargetFuncs{
		OnDropFunc: func(pin.Item, grid.Position) Result { panic("boom") },
	}))
	require.NoError(t, c.StartDrag(testItem("a", grid.Default), grid.Default))
	c.UpdateDrag(grid.Point{X: 80})

	assert.Panics(t, func() { c.EndDrag() })
	assert.IsType(t, Idle{}, c.State())
}
