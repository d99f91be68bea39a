package ui

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/javiermolinar/homegrid/internal/db"
	"github.com/javiermolinar/homegrid/internal/grid"
	"github.com/javiermolinar/homegrid/internal/pin"
)

func TestExportImportLayout(t *testing.T) {
	ctx := context.Background()
	source, cfg := newTestRepo(t)

	items := []pin.Item{
		pin.App{Package: "org.example.mail", Activity: "Inbox", Name: "Mail"},
		pin.File{URI: "file:///tmp/notes.md", MimeType: "text/markdown"}.WithPosition(grid.At(2, 3)),
		pin.Shortcut{Package: "org.example.mail", ShortcutID: "compose", Name: "Write"}.WithPosition(grid.At(0, 1)),
	}
	if _, err := source.AddPinnedItems(ctx, items); err != nil {
		t.Fatalf("AddPinnedItems failed: %v", err)
	}

	layoutPath := filepath.Join(t.TempDir(), "layout.yaml")
	out, err := run(t, source, cfg, "", "export", layoutPath)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if !strings.Contains(out, "Exported 3 items") {
		t.Errorf("unexpected output: %q", out)
	}

	dest, err := db.New(filepath.Join(t.TempDir(), "dest.db"))
	if err != nil {
		t.Fatalf("creating destination repo: %v", err)
	}
	defer func() { _ = dest.Close() }()

	out, err = run(t, dest, cfg, "", "import", layoutPath)
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if !strings.Contains(out, "Imported 3 of 3 items") {
		t.Errorf("unexpected output: %q", out)
	}

	imported, err := dest.Items(ctx)
	if err != nil {
		t.Fatalf("Items failed: %v", err)
	}
	if len(imported) != len(items) {
		t.Fatalf("expected %d items, got %d", len(items), len(imported))
	}
	for i, want := range items {
		got := imported[i]
		if got.ID() != want.ID() {
			t.Errorf("item %d: id %s, want %s", i, got.ID(), want.ID())
		}
		if got.Position() != want.Position() {
			t.Errorf("item %d: position %s, want %s", i, got.Position(), want.Position())
		}
		if got != want {
			t.Errorf("item %d: got %+v, want %+v", i, got, want)
		}
	}

	// Importing again is a no-op.
	out, err = run(t, dest, cfg, "", "import", layoutPath)
	if err != nil {
		t.Fatalf("second import failed: %v", err)
	}
	if !strings.Contains(out, "Imported 0 of 3 items") {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestParseLayoutLegacyEntries(t *testing.T) {
	data := []byte(`version: 1
items:
  - kind: app
    package: org.example.mail
    name: Mail
  - kind: app
    package: org.example.maps
    name: Maps
  - kind: file
    uri: file:///tmp/a.txt
    row: "1"
    column: 2
  - kind: shortcut
    id: not-the-real-id
    package: org.example.mail
    shortcut_id: compose
    row: 3
`)

	items, warnings, err := parseLayout(data)
	if err != nil {
		t.Fatalf("parseLayout failed: %v", err)
	}
	if len(items) != 4 {
		t.Fatalf("expected 4 items, got %d", len(items))
	}

	wantPositions := []grid.Position{grid.Default, grid.Default, grid.At(1, 2), grid.Default}
	for i, want := range wantPositions {
		if got := items[i].Position(); got != want {
			t.Errorf("item %d: position %s, want %s", i, got, want)
		}
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], "not-the-real-id") {
		t.Errorf("unexpected warnings: %v", warnings)
	}

	repo, _ := newTestRepo(t)
	res, err := importLayout(context.Background(), repo, data, false)
	if err != nil {
		t.Fatalf("importLayout failed: %v", err)
	}
	if res.added != 4 {
		t.Fatalf("expected 4 added, got %d", res.added)
	}
	board, _ := repo.Board(context.Background())
	if board.HasOverlap() {
		t.Fatal("imported items overlap")
	}
	if item, ok := board.At(grid.At(0, 0)); !ok || item.Title() != "Mail" {
		t.Errorf("expected Mail to keep (0,0)")
	}
	if item, ok := board.At(grid.At(0, 1)); !ok || item.Title() != "Maps" {
		t.Errorf("expected Maps auto-placed at (0,1)")
	}
}

func TestParseLayoutErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"not yaml", "items: [", "decoding layout"},
		{"newer version", "version: 9\nitems: []\n", "newer than supported"},
		{"unknown kind", "version: 1\nitems:\n  - kind: widget\n", "item 1"},
		{"missing source", "version: 1\nitems:\n  - kind: app\n    name: Mail\n", "item 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := parseLayout([]byte(tt.data))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not contain %q", err, tt.want)
			}
		})
	}
}

func TestImportReplace(t *testing.T) {
	ctx := context.Background()
	repo, cfg := newTestRepo(t)

	old := pin.App{Package: "org.example.old"}
	if _, err := repo.AddPinnedItem(ctx, old); err != nil {
		t.Fatalf("AddPinnedItem failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "layout.yaml")
	layout := "version: 1\nitems:\n  - kind: app\n    package: org.example.new\n    row: 1\n    column: 1\n"
	if err := os.WriteFile(path, []byte(layout), 0o644); err != nil {
		t.Fatalf("writing layout: %v", err)
	}

	if _, err := run(t, repo, cfg, "", "import", path, "--replace"); err != nil {
		t.Fatalf("import failed: %v", err)
	}

	items, _ := repo.Items(ctx)
	if len(items) != 1 || items[0].Title() != "org.example.new" {
		t.Fatalf("expected only the imported item, got %v", items)
	}
	if items[0].Position() != grid.At(1, 1) {
		t.Errorf("position %s, want (1,1)", items[0].Position())
	}
}

func TestImportFromStdin(t *testing.T) {
	repo, cfg := newTestRepo(t)

	layout := "version: 1\nitems:\n  - kind: file\n    uri: file:///tmp/a.txt\n"
	out, err := run(t, repo, cfg, layout, "import", "-")
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if !strings.Contains(out, "from stdin") {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestImportMissingFile(t *testing.T) {
	repo, cfg := newTestRepo(t)
	_, err := run(t, repo, cfg, "", "import", filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil || !strings.Contains(err.Error(), "does not exist") {
		t.Fatalf("expected missing file error, got %v", err)
	}
}

func TestResolvePath(t *testing.T) {
	if _, err := resolvePath("  "); err == nil {
		t.Error("expected error for empty path")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	got, err := resolvePath("~/layout.yaml")
	if err != nil {
		t.Fatalf("resolvePath failed: %v", err)
	}
	if got != filepath.Join(home, "layout.yaml") {
		t.Errorf("got %s", got)
	}
}
