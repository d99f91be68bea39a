// Package launcher wires the home screen together: pointer gestures drive
// the drag controller, drops are resolved against an in-memory snapshot of
// the pinned items and persisted through a single writer.
package launcher

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/javiermolinar/homegrid/internal/drag"
	"github.com/javiermolinar/homegrid/internal/grid"
	"github.com/javiermolinar/homegrid/internal/pin"
)

// GridTarget is the drop target of the pinned grid. It decides drops
// synchronously against its board snapshot and queues the store update on
// the writer, so a drop never waits on disk.
type GridTarget struct {
	repo    pin.Repository
	writer  *Writer
	columns int
	maxRows int
	log     *logrus.Entry

	mu        sync.Mutex
	board     pin.Board
	hover     *grid.Position
	lastWrite <-chan error
}

var (
	_ drag.Target         = (*GridTarget)(nil)
	_ drag.Previewer      = (*GridTarget)(nil)
	_ drag.CancelListener = (*GridTarget)(nil)
)

// NewGridTarget creates a target over repo. The board starts empty until
// SetBoard is called with a snapshot.
func NewGridTarget(repo pin.Repository, writer *Writer, columns, maxRows int, log *logrus.Entry) *GridTarget {
	return &GridTarget{
		repo:    repo,
		writer:  writer,
		columns: columns,
		maxRows: maxRows,
		log:     log,
		board:   pin.NewBoard(nil),
	}
}

// SetBoard replaces the snapshot, typically with one published by the store.
func (t *GridTarget) SetBoard(b pin.Board) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.board = b
}

// Board returns the snapshot the target decides against.
func (t *GridTarget) Board() pin.Board {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.board
}

// CanDrop rejects cells outside the grid and items that are no longer pinned.
func (t *GridTarget) CanDrop(item pin.Item, to grid.Position) error {
	if !to.Within(t.columns, t.maxRows) {
		return fmt.Errorf("%w: %v", pin.ErrOutOfBounds, to)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.board.Find(item.ID()); !ok {
		return fmt.Errorf("%w: %s", pin.ErrNotFound, item.ID())
	}
	return nil
}

// OnDrop applies the move to the snapshot and queues it for the store.
// Dropping onto an occupied cell swaps the two items.
func (t *GridTarget) OnDrop(item pin.Item, to grid.Position) drag.Result {
	t.mu.Lock()
	t.hover = nil
	next, mv, err := t.board.Move(item.ID(), to, t.columns, t.maxRows)
	if err == nil && mv.From != mv.To {
		t.board = next
	}
	t.mu.Unlock()

	if err != nil {
		return drag.Rejected{Reason: err.Error()}
	}
	if mv.From == mv.To {
		return drag.Success{Final: to}
	}

	id := item.ID()
	write := t.writer.Submit("move "+id, func(ctx context.Context) error {
		if _, err := t.repo.UpdateItemPosition(ctx, id, to); err != nil {
			t.resync(ctx)
			return err
		}
		return nil
	})
	t.mu.Lock()
	t.lastWrite = write
	t.mu.Unlock()

	if mv.Swapped() {
		return drag.Swap{
			Moved:       mv.Item,
			MovedTo:     mv.To,
			Displaced:   mv.Displaced,
			DisplacedTo: mv.Displaced.Position(),
		}
	}
	return drag.Success{Final: mv.To}
}

// PreviewDrop records the hovered cell for rendering.
func (t *GridTarget) PreviewDrop(_ pin.Item, to grid.Position) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.hover = &to
}

// OnDragCancelled clears the hover feedback.
func (t *GridTarget) OnDragCancelled() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.hover = nil
}

// Hover returns the cell currently previewed, if any.
func (t *GridTarget) Hover() (grid.Position, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.hover == nil {
		return grid.Position{}, false
	}
	return *t.hover, true
}

// TakeWrite returns the pending result of the last queued write and forgets
// it. It returns nil when nothing was queued.
func (t *GridTarget) TakeWrite() <-chan error {
	t.mu.Lock()
	defer t.mu.Unlock()
	w := t.lastWrite
	t.lastWrite = nil
	return w
}

// Remove drops id from the snapshot and queues the unpin.
func (t *GridTarget) Remove(id string) <-chan error {
	t.mu.Lock()
	if next, ok := t.board.Remove(id); ok {
		t.board = next
	}
	t.mu.Unlock()

	return t.writer.Submit("unpin "+id, func(ctx context.Context) error {
		if err := t.repo.RemovePinnedItem(ctx, id); err != nil {
			t.resync(ctx)
			return err
		}
		return nil
	})
}

// resync reloads the snapshot from the store after a failed write so the
// optimistic state does not drift.
func (t *GridTarget) resync(ctx context.Context) {
	b, err := t.repo.Board(ctx)
	if err != nil {
		t.log.WithError(err).Warn("cannot reload board after failed write")
		return
	}
	t.SetBoard(b)
}
