package pin

import (
	"fmt"

	"github.com/javiermolinar/homegrid/internal/grid"
)

// Board is an immutable snapshot of pinned items and the cells they occupy.
// Every mutating method returns a new Board and leaves the receiver intact,
// so a Board can be shared freely between the store, the drop target and
// subscribers.
//
// Items keep their insertion order; position is a separate display concern.
type Board struct {
	items []Item
	index map[string]int
	cells map[grid.Position]string
}

// Move describes the outcome of relocating an item.
type Move struct {
	Item      Item          // the moved item at its new position
	From      grid.Position // where it was
	To        grid.Position
	Displaced Item // the previous occupant of To, now at From; nil if To was free
}

// Swapped reports whether the move displaced another item.
func (m Move) Swapped() bool {
	return m.Displaced != nil
}

// NewBoard builds a board from items in insertion order. Later duplicates of
// an id are dropped. Items that collide with an earlier item keep their
// stored position but do not own the cell; see Collisions and Repair.
func NewBoard(items []Item) Board {
	b := Board{
		items: make([]Item, 0, len(items)),
		index: make(map[string]int, len(items)),
		cells: make(map[grid.Position]string, len(items)),
	}
	for _, it := range items {
		if it == nil {
			continue
		}
		if _, dup := b.index[it.ID()]; dup {
			continue
		}
		b.index[it.ID()] = len(b.items)
		b.items = append(b.items, it)
		if _, taken := b.cells[it.Position()]; !taken {
			b.cells[it.Position()] = it.ID()
		}
	}
	return b
}

// Len returns the number of items.
func (b Board) Len() int {
	return len(b.items)
}

// Items returns the items in insertion order.
func (b Board) Items() []Item {
	out := make([]Item, len(b.items))
	copy(out, b.items)
	return out
}

// Find returns the item with the given id.
func (b Board) Find(id string) (Item, bool) {
	i, ok := b.index[id]
	if !ok {
		return nil, false
	}
	return b.items[i], true
}

// At returns the item occupying p.
func (b Board) At(p grid.Position) (Item, bool) {
	id, ok := b.cells[p]
	if !ok {
		return nil, false
	}
	return b.Find(id)
}

// IsFree reports whether no item occupies p.
func (b Board) IsFree(p grid.Position) bool {
	_, taken := b.cells[p]
	return !taken
}

// MaxRow returns the lowest occupied row, or 0 for an empty board.
func (b Board) MaxRow() int {
	maxRow := 0
	for _, it := range b.items {
		if r := it.Position().Row; r > maxRow {
			maxRow = r
		}
	}
	return maxRow
}

// FirstFree scans row-major from (0,0) and returns the first cell not
// occupied by any item.
func (b Board) FirstFree(columns, maxRows int) (grid.Position, bool) {
	for r := 0; r < maxRows; r++ {
		for c := 0; c < columns; c++ {
			p := grid.At(r, c)
			if b.IsFree(p) {
				return p, true
			}
		}
	}
	return grid.Position{}, false
}

// Collisions returns the items whose stored position is owned by an
// earlier item.
func (b Board) Collisions() []Item {
	var out []Item
	for _, it := range b.items {
		if b.cells[it.Position()] != it.ID() {
			out = append(out, it)
		}
	}
	return out
}

// Add appends item. It returns false when an item with the same id is
// already pinned; the board is then returned unchanged. If the requested
// cell is taken the item is placed in the first free cell instead.
func (b Board) Add(item Item, columns, maxRows int) (Board, Item, bool, error) {
	if item == nil {
		return b, nil, false, errNilItem
	}
	if existing, ok := b.Find(item.ID()); ok {
		return b, existing, false, nil
	}
	if !item.Position().Within(columns, maxRows) {
		return b, nil, false, fmt.Errorf("%w: %v", ErrOutOfBounds, item.Position())
	}
	if !b.IsFree(item.Position()) {
		free, ok := b.FirstFree(columns, maxRows)
		if !ok {
			return b, nil, false, ErrGridFull
		}
		item = item.WithPosition(free)
	}

	next := b.clone()
	next.index[item.ID()] = len(next.items)
	next.items = append(next.items, item)
	next.cells[item.Position()] = item.ID()
	return next, item, true, nil
}

// Remove drops the item with the given id. It returns false if absent.
func (b Board) Remove(id string) (Board, bool) {
	i, ok := b.index[id]
	if !ok {
		return b, false
	}

	items := make([]Item, 0, len(b.items)-1)
	items = append(items, b.items[:i]...)
	items = append(items, b.items[i+1:]...)
	return NewBoard(items), true
}

// Move relocates the item with the given id to to. If to is occupied the
// two items swap cells. Moving an item onto its own cell is a no-op move.
func (b Board) Move(id string, to grid.Position, columns, maxRows int) (Board, Move, error) {
	item, ok := b.Find(id)
	if !ok {
		return b, Move{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if !to.Within(columns, maxRows) {
		return b, Move{}, fmt.Errorf("%w: %v", ErrOutOfBounds, to)
	}

	from := item.Position()
	mv := Move{Item: item, From: from, To: to}
	if from == to {
		return b, mv, nil
	}

	next := b.clone()
	moved := item.WithPosition(to)
	next.items[next.index[id]] = moved
	mv.Item = moved

	if occupant, taken := b.At(to); taken {
		displaced := occupant.WithPosition(from)
		next.items[next.index[occupant.ID()]] = displaced
		next.cells[from] = displaced.ID()
		mv.Displaced = displaced
	} else if next.cells[from] == id {
		delete(next.cells, from)
	}
	next.cells[to] = id
	return next, mv, nil
}

// Repair relocates colliding and out-of-bounds items to free cells in
// row-major order. The first item in insertion order keeps a contested
// cell. It returns the repaired board and the items whose position changed.
func (b Board) Repair(columns, maxRows int) (Board, []Item, error) {
	var changed []Item
	next := NewBoard(nil)
	var pending []Item

	for _, it := range b.items {
		p := it.Position()
		if p.Within(columns, maxRows) && next.IsFree(p) {
			next.index[it.ID()] = len(next.items)
			next.items = append(next.items, it)
			next.cells[p] = it.ID()
			continue
		}
		next.index[it.ID()] = len(next.items)
		next.items = append(next.items, it)
		pending = append(pending, it)
	}

	for _, it := range pending {
		free, ok := next.FirstFree(columns, maxRows)
		if !ok {
			return b, nil, ErrGridFull
		}
		placed := it.WithPosition(free)
		next.items[next.index[it.ID()]] = placed
		next.cells[free] = it.ID()
		changed = append(changed, placed)
	}
	return next, changed, nil
}

// HasOverlap reports whether two items claim the same cell.
func (b Board) HasOverlap() bool {
	seen := make(map[grid.Position]bool, len(b.items))
	for _, it := range b.items {
		if seen[it.Position()] {
			return true
		}
		seen[it.Position()] = true
	}
	return false
}

// clone returns a deep copy of the board's bookkeeping.
func (b Board) clone() Board {
	next := Board{
		items: make([]Item, len(b.items), len(b.items)+1),
		index: make(map[string]int, len(b.index)+1),
		cells: make(map[grid.Position]string, len(b.cells)+1),
	}
	copy(next.items, b.items)
	for k, v := range b.index {
		next.index[k] = v
	}
	for k, v := range b.cells {
		next.cells[k] = v
	}
	return next
}
