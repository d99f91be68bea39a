package integration

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/javiermolinar/homegrid/internal/db"
	"github.com/javiermolinar/homegrid/internal/drag"
	"github.com/javiermolinar/homegrid/internal/gesture"
	"github.com/javiermolinar/homegrid/internal/grid"
	"github.com/javiermolinar/homegrid/internal/launcher"
	"github.com/javiermolinar/homegrid/internal/pin"
)

const cellPx = 100.0

var (
	mail  = pin.App{Package: "org.example.mail", Name: "Mail"}
	maps  = pin.App{Package: "org.example.maps", Name: "Maps"}
	notes = pin.File{URI: "file:///home/me/notes.md"}
)

// openRepo opens the database at path with automatic cleanup.
func openRepo(t *testing.T, path string) *db.SQLite {
	t.Helper()
	repo, err := db.New(path)
	if err != nil {
		t.Fatalf("failed to open repo: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

// pinItems pins items in order or fails the test.
func pinItems(t *testing.T, repo pin.Repository, items ...pin.Item) {
	t.Helper()
	for _, it := range items {
		if _, err := repo.AddPinnedItem(context.Background(), it); err != nil {
			t.Fatalf("failed to pin %s: %v", it.Title(), err)
		}
	}
}

// session is a home screen driven by synthetic pointer events.
type session struct {
	t      *testing.T
	home   *launcher.Home
	now    time.Time
	opened []string
}

func newSession(t *testing.T, repo pin.Repository) *session {
	t.Helper()
	s := &session{t: t, now: time.Date(2025, 1, 20, 9, 0, 0, 0, time.UTC)}
	home, err := launcher.NewHome(context.Background(), repo, launcher.Options{
		Grid:       grid.DefaultConfig(),
		CellWidth:  cellPx,
		CellHeight: cellPx,
		Launcher: launcher.LauncherFunc(func(_ context.Context, item pin.Item) error {
			s.opened = append(s.opened, item.ID())
			return nil
		}),
	})
	if err != nil {
		t.Fatalf("failed to start session: %v", err)
	}
	t.Cleanup(home.Close)
	s.home = home
	return s
}

func center(p grid.Position) (float64, float64) {
	return float64(p.Column)*cellPx + cellPx/2, float64(p.Row)*cellPx + cellPx/2
}

func (s *session) feed(ev gesture.Event) []launcher.Action {
	return s.home.HandleEvent(context.Background(), ev)
}

func (s *session) advance(d time.Duration) []launcher.Action {
	s.now = s.now.Add(d)
	return s.home.Tick(context.Background(), s.now)
}

// drag long-presses from, moves in steps to to and releases.
func (s *session) drag(from, to grid.Position) launcher.Dropped {
	s.t.Helper()
	fx, fy := center(from)
	tx, ty := center(to)

	s.feed(gesture.Down(0, fx, fy, s.now))
	s.advance(grid.DefaultLongPress)
	for i := 1; i <= 4; i++ {
		k := float64(i) / 4
		s.now = s.now.Add(16 * time.Millisecond)
		s.feed(gesture.Move(0, fx+(tx-fx)*k, fy+(ty-fy)*k, s.now))
	}
	actions := s.feed(gesture.Up(0, tx, ty, s.now))
	for _, a := range actions {
		if d, ok := a.(launcher.Dropped); ok {
			return d
		}
	}
	s.t.Fatalf("drag from %s to %s produced no drop: %v", from, to, actions)
	return launcher.Dropped{}
}

func waitWrite(t *testing.T, errc <-chan error) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := launcher.Wait(ctx, errc); err != nil {
		t.Fatalf("write failed: %v", err)
	}
}

func positions(t *testing.T, repo pin.Repository) map[string]grid.Position {
	t.Helper()
	items, err := repo.Items(context.Background())
	if err != nil {
		t.Fatalf("failed to list items: %v", err)
	}
	out := make(map[string]grid.Position, len(items))
	for _, it := range items {
		out[it.ID()] = it.Position()
	}
	return out
}

func TestDragRelocatePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "home.db")
	repo := openRepo(t, path)
	pinItems(t, repo, mail, maps)

	s := newSession(t, repo)
	drop := s.drag(grid.At(0, 0), grid.At(1, 3))
	if _, ok := drop.Result.(drag.Success); !ok {
		t.Fatalf("expected Success, got %v", drop.Result)
	}
	waitWrite(t, drop.Write)

	if err := repo.Close(); err != nil {
		t.Fatalf("failed to close repo: %v", err)
	}
	reopened := openRepo(t, path)
	got := positions(t, reopened)
	if got[mail.ID()] != grid.At(1, 3) {
		t.Errorf("mail: got %s, want (1,3)", got[mail.ID()])
	}
	if got[maps.ID()] != grid.At(0, 1) {
		t.Errorf("maps: got %s, want (0,1)", got[maps.ID()])
	}
}

func TestDragSwapPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "home.db")
	repo := openRepo(t, path)
	pinItems(t, repo, mail, maps, notes)

	s := newSession(t, repo)
	drop := s.drag(grid.At(0, 2), grid.At(0, 0))
	swap, ok := drop.Result.(drag.Swap)
	if !ok {
		t.Fatalf("expected Swap, got %v", drop.Result)
	}
	if swap.Displaced.ID() != mail.ID() {
		t.Errorf("displaced: got %s, want mail", swap.Displaced.ID())
	}

	// The session shows the swap before the write lands.
	if item, ok := s.home.Board().At(grid.At(0, 0)); !ok || item.ID() != notes.ID() {
		t.Error("expected notes at (0,0) in the session board")
	}
	waitWrite(t, drop.Write)

	got := positions(t, repo)
	want := map[string]grid.Position{
		notes.ID(): grid.At(0, 0),
		maps.ID():  grid.At(0, 1),
		mail.ID():  grid.At(0, 2),
	}
	for id, pos := range want {
		if got[id] != pos {
			t.Errorf("%s: got %s, want %s", id, got[id], pos)
		}
	}
}

func TestTapOpensAndEmptyTapSearches(t *testing.T) {
	repo := openRepo(t, filepath.Join(t.TempDir(), "home.db"))
	pinItems(t, repo, mail)

	s := newSession(t, repo)
	x, y := center(grid.At(0, 0))
	s.feed(gesture.Down(0, x, y, s.now))
	actions := s.feed(gesture.Up(0, x, y, s.now.Add(50*time.Millisecond)))
	if len(actions) != 1 {
		t.Fatalf("expected 1 action, got %v", actions)
	}
	if _, ok := actions[0].(launcher.OpenItem); !ok {
		t.Fatalf("expected OpenItem, got %T", actions[0])
	}
	if len(s.opened) != 1 || s.opened[0] != mail.ID() {
		t.Errorf("opened: got %v", s.opened)
	}

	x, y = center(grid.At(1, 2))
	s.feed(gesture.Down(0, x, y, s.now))
	actions = s.feed(gesture.Up(0, x, y, s.now.Add(50*time.Millisecond)))
	if len(actions) != 1 {
		t.Fatalf("expected 1 action, got %v", actions)
	}
	if _, ok := actions[0].(launcher.OpenSearch); !ok {
		t.Fatalf("expected OpenSearch, got %T", actions[0])
	}
}

func TestMenuUnpinPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "home.db")
	repo := openRepo(t, path)
	pinItems(t, repo, mail, maps)

	s := newSession(t, repo)
	x, y := center(grid.At(0, 1))
	s.feed(gesture.Down(0, x, y, s.now))
	s.advance(grid.DefaultLongPress)
	actions := s.feed(gesture.Up(0, x, y, s.now))
	if len(actions) != 1 {
		t.Fatalf("expected 1 action, got %v", actions)
	}
	menu, ok := actions[0].(launcher.ShowMenu)
	if !ok {
		t.Fatalf("expected ShowMenu, got %T", actions[0])
	}
	if menu.Item.ID() != maps.ID() {
		t.Fatalf("menu item: got %s, want maps", menu.Item.ID())
	}

	waitWrite(t, s.home.Unpin(menu.Item.ID()))

	got := positions(t, repo)
	if _, ok := got[maps.ID()]; ok {
		t.Error("maps still pinned")
	}
	if len(got) != 1 {
		t.Errorf("expected 1 item left, got %d", len(got))
	}
}

func TestSecondPointerCancelsDrag(t *testing.T) {
	repo := openRepo(t, filepath.Join(t.TempDir(), "home.db"))
	pinItems(t, repo, mail)

	s := newSession(t, repo)
	x, y := center(grid.At(0, 0))
	s.feed(gesture.Down(0, x, y, s.now))
	s.advance(grid.DefaultLongPress)
	s.feed(gesture.Move(0, x+150, y+150, s.now))
	if !s.home.DragState().(drag.Dragging).ExceededThreshold {
		t.Fatal("expected a drag past the threshold")
	}

	actions := s.feed(gesture.Down(1, 10, 10, s.now))
	if len(actions) != 1 {
		t.Fatalf("expected 1 action, got %v", actions)
	}
	drop, ok := actions[0].(launcher.Dropped)
	if !ok {
		t.Fatalf("expected Dropped, got %T", actions[0])
	}
	if _, ok := drop.Result.(drag.Cancelled); !ok {
		t.Fatalf("expected Cancelled, got %v", drop.Result)
	}

	// Releasing both pointers starts nothing new.
	s.feed(gesture.Up(0, x+150, y+150, s.now))
	s.feed(gesture.Up(1, 10, 10, s.now))
	if _, ok := s.home.DragState().(drag.Idle); !ok {
		t.Errorf("expected Idle, got %s", drag.StateName(s.home.DragState()))
	}
	if got := positions(t, repo); got[mail.ID()] != grid.Default {
		t.Errorf("mail moved to %s", got[mail.ID()])
	}
}

func TestStoreSnapshotsReachSession(t *testing.T) {
	repo := openRepo(t, filepath.Join(t.TempDir(), "home.db"))
	s := newSession(t, repo)

	ch, cancel := repo.Subscribe()
	defer cancel()
	<-ch

	pinItems(t, repo, mail)
	select {
	case b := <-ch:
		s.home.SetBoard(b)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for snapshot")
	}

	if item, ok := s.home.Board().At(grid.Default); !ok || item.ID() != mail.ID() {
		t.Fatal("expected mail on the session board")
	}
	if rows := s.home.Calculator().Rows(); rows != grid.DefaultExtraRows {
		t.Errorf("rendered rows: got %d, want %d", rows, grid.DefaultExtraRows)
	}
}
