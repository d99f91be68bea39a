package pin

import (
	"context"

	"github.com/javiermolinar/homegrid/internal/grid"
)

// Repository owns the durable item-id to position mapping. Every successful
// mutation leaves no two items sharing a cell and republishes the full
// snapshot to subscribers.
type Repository interface {
	// Items returns all pinned items in insertion order.
	Items(ctx context.Context) ([]Item, error)

	// Board returns the current snapshot.
	Board(ctx context.Context) (Board, error)

	// AddPinnedItem pins item. Pinning an id that is already present is a
	// no-op. The returned item carries the position it was stored at.
	AddPinnedItem(ctx context.Context, item Item) (Item, error)

	// RemovePinnedItem unpins the item with the given id. Absent ids are a no-op.
	RemovePinnedItem(ctx context.Context, id string) error

	// UpdateItemPosition moves an item. If the target cell is occupied the
	// mover and the occupant swap cells atomically.
	// Returns ErrNotFound for unknown ids and ErrOutOfBounds for positions
	// outside the configured grid.
	UpdateItemPosition(ctx context.Context, id string, to grid.Position) (Move, error)

	// FindAvailablePosition returns the first free cell in row-major order.
	// Returns ErrGridFull when every cell is taken.
	FindAvailablePosition(ctx context.Context, columns, maxRows int) (grid.Position, error)

	// ClearAll removes every pinned item.
	ClearAll(ctx context.Context) error

	// Subscribe delivers the current snapshot immediately and again after
	// every successful mutation. The returned func cancels the subscription
	// and closes the channel.
	Subscribe() (<-chan Board, func())

	// Close releases any resources held by the repository.
	Close() error
}
