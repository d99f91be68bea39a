// Package db provides the SQLite item position store.
package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/javiermolinar/homegrid/internal/grid"
	"github.com/javiermolinar/homegrid/internal/pin"
)

// ErrClosed is returned by mutations on a closed store.
var ErrClosed = errors.New("store is closed")

// SQLite implements pin.Repository using SQLite.
//
// Writes are serialized by a mutex and each runs in its own transaction.
// The current pin.Board is cached in memory and served to readers and
// subscribers without touching the database.
type SQLite struct {
	db      *sql.DB
	columns int
	maxRows int
	log     *logrus.Entry

	mu     sync.Mutex
	board  pin.Board
	subs   map[chan pin.Board]struct{}
	closed bool
}

var _ pin.Repository = (*SQLite)(nil)

// Option configures the store.
type Option func(*SQLite)

// WithBounds sets the grid bounds used to validate positions.
func WithBounds(columns, maxRows int) Option {
	return func(s *SQLite) {
		if columns > 0 {
			s.columns = columns
		}
		if maxRows > 0 {
			s.maxRows = maxRows
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *logrus.Entry) Option {
	return func(s *SQLite) {
		s.log = l
	}
}

// New opens the database at path, runs migrations and loads the pinned
// items. Items that share a cell or lie outside the grid are moved to free
// cells and the repaired positions are written back.
func New(path string, opts ...Option) (*SQLite, error) {
	ctx := context.Background()

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{
		db:      db,
		columns: grid.DefaultColumns,
		maxRows: grid.DefaultMaxRows,
		board:   pin.NewBoard(nil),
		subs:    make(map[chan pin.Board]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		s.log = logrus.NewEntry(l)
	}

	if err := ApplyMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	if err := s.load(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("loading pinned items: %w", err)
	}

	return s, nil
}

// Bounds returns the grid bounds the store validates against.
func (s *SQLite) Bounds() (columns, maxRows int) {
	return s.columns, s.maxRows
}

// load reads every record, decodes positions tolerantly and repairs
// collisions.
func (s *SQLite) load(ctx context.Context) error {
	items, err := s.readItems(ctx)
	if err != nil {
		return err
	}

	board := pin.NewBoard(items)
	repaired, changed, err := board.Repair(s.columns, s.maxRows)
	if err != nil {
		// Keep the colliding layout rather than refuse to start.
		s.log.WithError(err).Error("cannot repair pinned item layout")
		s.board = board
		return nil
	}

	if len(changed) > 0 {
		if err := s.writePositions(ctx, changed); err != nil {
			return fmt.Errorf("persisting repaired positions: %w", err)
		}
		s.log.WithField("count", len(changed)).Info("repaired colliding item positions")
	}
	s.board = repaired
	return nil
}

func (s *SQLite) readItems(ctx context.Context) ([]pin.Item, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, kind, payload, grid_row, grid_col
		FROM pinned_items
		ORDER BY seq
	`)
	if err != nil {
		return nil, fmt.Errorf("querying pinned items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var items []pin.Item
	for rows.Next() {
		var (
			id, kind, payload string
			row, col          any
		)
		if err := rows.Scan(&id, &kind, &payload, &row, &col); err != nil {
			return nil, fmt.Errorf("scanning pinned item: %w", err)
		}

		item, err := decodeRecord(pin.Kind(kind), payload, row, col)
		if err != nil {
			s.log.WithError(err).WithField("id", id).Warn("skipping unreadable pinned item")
			continue
		}
		if row != nil || col != nil {
			if _, ok := pin.ParsePosition(row, col); !ok {
				s.log.WithFields(logrus.Fields{
					"id":  id,
					"row": row,
					"col": col,
				}).Warn("malformed item position, using default")
			}
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating pinned items: %w", err)
	}
	return items, nil
}

// decodeRecord builds an item from its stored columns. The position comes
// from the grid columns; missing or malformed values give grid.Default.
func decodeRecord(kind pin.Kind, payload string, row, col any) (pin.Item, error) {
	var fields map[string]any
	if err := json.Unmarshal([]byte(payload), &fields); err != nil {
		return nil, fmt.Errorf("decoding payload: %w", err)
	}
	if fields == nil {
		fields = map[string]any{}
	}

	item, _, err := pin.DecodeMap(kind, fields)
	if err != nil {
		return nil, err
	}
	pos, _ := pin.ParsePosition(row, col)
	return item.WithPosition(pos), nil
}

func encodePayload(item pin.Item) (string, error) {
	b, err := json.Marshal(pin.Fields(item))
	if err != nil {
		return "", fmt.Errorf("encoding payload: %w", err)
	}
	return string(b), nil
}

// Items returns all pinned items in insertion order.
func (s *SQLite) Items(_ context.Context) ([]pin.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board.Items(), nil
}

// Board returns the current snapshot.
func (s *SQLite) Board(_ context.Context) (pin.Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board, nil
}

// AddPinnedItem pins item. If its cell is taken it goes to the first free
// cell. Pinning an already pinned id returns the stored item unchanged.
func (s *SQLite) AddPinnedItem(ctx context.Context, item pin.Item) (pin.Item, error) {
	if err := pin.Validate(item); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}

	next, stored, added, err := s.board.Add(item, s.columns, s.maxRows)
	if err != nil {
		return nil, err
	}
	if !added {
		return stored, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := insertItem(ctx, tx, stored); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}

	s.board = next
	s.publish()
	s.log.WithFields(logrus.Fields{
		"id":       stored.ID(),
		"position": stored.Position().String(),
	}).Debug("item pinned")
	return stored, nil
}

// AddPinnedItems pins items in one transaction, placing each like
// AddPinnedItem. It returns the items that were newly pinned.
func (s *SQLite) AddPinnedItems(ctx context.Context, items []pin.Item) ([]pin.Item, error) {
	for _, item := range items {
		if err := pin.Validate(item); err != nil {
			return nil, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}

	next := s.board
	var added []pin.Item
	for _, item := range items {
		b, stored, ok, err := next.Add(item, s.columns, s.maxRows)
		if err != nil {
			return nil, fmt.Errorf("placing %s: %w", item.ID(), err)
		}
		if ok {
			added = append(added, stored)
		}
		next = b
	}
	if len(added) == 0 {
		return nil, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, item := range added {
		if err := insertItem(ctx, tx, item); err != nil {
			return nil, err
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}

	s.board = next
	s.publish()
	return added, nil
}

// insertItem writes item. A row already holding the id can only be one
// that failed to decode on load, so it is overwritten.
func insertItem(ctx context.Context, tx *sql.Tx, item pin.Item) error {
	payload, err := encodePayload(item)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO pinned_items (id, kind, payload, grid_row, grid_col, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			kind = excluded.kind,
			payload = excluded.payload,
			grid_row = excluded.grid_row,
			grid_col = excluded.grid_col
	`,
		item.ID(),
		string(item.Kind()),
		payload,
		item.Position().Row,
		item.Position().Column,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting pinned item: %w", err)
	}
	return nil
}

// RemovePinnedItem unpins the item with the given id. Absent ids are a
// no-op. The row is deleted even when the id is not on the board, which
// clears records that could not be decoded.
func (s *SQLite) RemovePinnedItem(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM pinned_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting pinned item: %w", err)
	}
	next, ok := s.board.Remove(id)
	if !ok {
		if n, _ := res.RowsAffected(); n > 0 {
			s.log.WithField("id", id).Info("deleted unreadable pinned item")
		}
		return nil
	}

	s.board = next
	s.publish()
	s.log.WithField("id", id).Debug("item unpinned")
	return nil
}

// UpdateItemPosition moves the item with the given id to to. If to is
// occupied both rows are rewritten in one transaction so the swap is
// atomic.
func (s *SQLite) UpdateItemPosition(ctx context.Context, id string, to grid.Position) (pin.Move, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return pin.Move{}, ErrClosed
	}

	next, mv, err := s.board.Move(id, to, s.columns, s.maxRows)
	if err != nil {
		return pin.Move{}, err
	}
	if mv.From == mv.To {
		return mv, nil
	}

	changed := []pin.Item{mv.Item}
	if mv.Swapped() {
		changed = append(changed, mv.Displaced)
	}
	if err := s.writePositions(ctx, changed); err != nil {
		return pin.Move{}, err
	}

	s.board = next
	s.publish()
	s.log.WithFields(logrus.Fields{
		"id":      id,
		"from":    mv.From.String(),
		"to":      mv.To.String(),
		"swapped": mv.Swapped(),
	}).Debug("item moved")
	return mv, nil
}

// writePositions rewrites the position columns of items in one transaction.
func (s *SQLite) writePositions(ctx context.Context, items []pin.Item) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `UPDATE pinned_items SET grid_row = ?, grid_col = ? WHERE id = ?`)
	if err != nil {
		return fmt.Errorf("preparing position update: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, item := range items {
		p := item.Position()
		if _, err := stmt.ExecContext(ctx, p.Row, p.Column, item.ID()); err != nil {
			return fmt.Errorf("updating position of %s: %w", item.ID(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// FindAvailablePosition returns the first free cell in row-major order
// within columns x maxRows.
func (s *SQLite) FindAvailablePosition(_ context.Context, columns, maxRows int) (grid.Position, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.board.FirstFree(columns, maxRows)
	if !ok {
		return grid.Position{}, pin.ErrGridFull
	}
	return p, nil
}

// ClearAll removes every pinned item.
func (s *SQLite) ClearAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM pinned_items`); err != nil {
		return fmt.Errorf("clearing pinned items: %w", err)
	}

	s.board = pin.NewBoard(nil)
	s.publish()
	s.log.Debug("all items unpinned")
	return nil
}

// Subscribe returns a channel that receives the current board at once and
// again after every mutation. A slow reader only misses intermediate
// snapshots; the latest one is always delivered. The returned func stops
// the subscription and closes the channel.
func (s *SQLite) Subscribe() (<-chan pin.Board, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan pin.Board, 1)
	if s.closed {
		close(ch)
		return ch, func() {}
	}

	ch <- s.board
	s.subs[ch] = struct{}{}

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if _, ok := s.subs[ch]; ok {
				delete(s.subs, ch)
				close(ch)
			}
		})
	}
}

// publish sends the current board to every subscriber, replacing any
// snapshot still waiting in the buffer. Callers hold s.mu.
func (s *SQLite) publish() {
	for ch := range s.subs {
		select {
		case <-ch:
		default:
		}
		ch <- s.board
	}
}

// Close closes every subscription and the database connection.
func (s *SQLite) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true

	for ch := range s.subs {
		delete(s.subs, ch)
		close(ch)
	}
	return s.db.Close()
}
