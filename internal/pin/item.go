// Package pin defines pinned grid items and the occupancy rules that keep
// two items from sharing a cell.
package pin

import (
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/javiermolinar/homegrid/internal/grid"
)

// Domain errors.
var (
	ErrNotFound    = errors.New("pinned item not found")
	ErrOutOfBounds = errors.New("position outside the grid")
	ErrGridFull    = errors.New("no free cell left in the grid")
	ErrUnknownKind = errors.New("unknown pinned item kind")
	ErrInvalidItem = errors.New("invalid pinned item")
	ErrEmptySource = errors.New("pinned item source cannot be empty")
	errNilItem     = errors.New("pinned item is nil")
)

// Kind tags the variant of a pinned item.
type Kind string

const (
	KindApp      Kind = "app"
	KindFile     Kind = "file"
	KindShortcut Kind = "shortcut"
)

// Valid returns true if k is a known kind.
func (k Kind) Valid() bool {
	switch k {
	case KindApp, KindFile, KindShortcut:
		return true
	default:
		return false
	}
}

// Item is a pinned grid entry. The set of implementations is closed: App,
// File and Shortcut.
//
// ID is unique across all pinned items and derived from the source entity,
// so pinning the same source twice yields the same ID.
type Item interface {
	ID() string
	Kind() Kind
	Title() string
	Position() grid.Position
	WithPosition(p grid.Position) Item

	isItem()
}

// App is a pinned application activity.
type App struct {
	Package  string        `mapstructure:"package"`
	Activity string        `mapstructure:"activity"`
	Name     string        `mapstructure:"name"`
	Pos      grid.Position `mapstructure:"-"`
}

// File is a pinned document.
type File struct {
	URI      string        `mapstructure:"uri"`
	Name     string        `mapstructure:"name"`
	MimeType string        `mapstructure:"mime_type"`
	Pos      grid.Position `mapstructure:"-"`
}

// Shortcut is a pinned app shortcut published by another package.
type Shortcut struct {
	Package    string        `mapstructure:"package"`
	ShortcutID string        `mapstructure:"shortcut_id"`
	Name       string        `mapstructure:"name"`
	Pos        grid.Position `mapstructure:"-"`
}

func (App) isItem()      {}
func (File) isItem()     {}
func (Shortcut) isItem() {}

// ID returns the id derived from package and activity.
func (a App) ID() string { return AppID(a.Package, a.Activity) }

// Kind returns KindApp.
func (App) Kind() Kind { return KindApp }

// Title returns the display name, falling back to the package.
func (a App) Title() string { return coalesce(a.Name, a.Package) }

// Position returns the grid cell.
func (a App) Position() grid.Position { return a.Pos }

// WithPosition returns a copy placed at p.
func (a App) WithPosition(p grid.Position) Item {
	a.Pos = p
	return a
}

// ID returns the id derived from the file URI.
func (f File) ID() string { return FileID(f.URI) }

// Kind returns KindFile.
func (File) Kind() Kind { return KindFile }

// Title returns the display name, falling back to the last URI segment.
func (f File) Title() string {
	if f.Name != "" {
		return f.Name
	}
	uri := strings.TrimRight(f.URI, "/")
	if i := strings.LastIndex(uri, "/"); i >= 0 {
		return uri[i+1:]
	}
	return uri
}

// Position returns the grid cell.
func (f File) Position() grid.Position { return f.Pos }

// WithPosition returns a copy placed at p.
func (f File) WithPosition(p grid.Position) Item {
	f.Pos = p
	return f
}

// ID returns the id derived from package and shortcut id.
func (s Shortcut) ID() string { return ShortcutID(s.Package, s.ShortcutID) }

// Kind returns KindShortcut.
func (Shortcut) Kind() Kind { return KindShortcut }

// Title returns the display name, falling back to the shortcut id.
func (s Shortcut) Title() string { return coalesce(s.Name, s.ShortcutID) }

// Position returns the grid cell.
func (s Shortcut) Position() grid.Position { return s.Pos }

// WithPosition returns a copy placed at p.
func (s Shortcut) WithPosition(p grid.Position) Item {
	s.Pos = p
	return s
}

// idNamespace scopes the name-based UUIDs used as item ids.
var idNamespace = uuid.MustParse("5b0d6a2e-8f1c-4c3e-9a57-2d1f0c6e7b41")

// AppID derives the id of a pinned app.
func AppID(pkg, activity string) string {
	return deriveID(KindApp, pkg, activity)
}

// FileID derives the id of a pinned file.
func FileID(uri string) string {
	return deriveID(KindFile, uri)
}

// ShortcutID derives the id of a pinned shortcut.
func ShortcutID(pkg, shortcutID string) string {
	return deriveID(KindShortcut, pkg, shortcutID)
}

func deriveID(kind Kind, parts ...string) string {
	name := string(kind) + "\x00" + strings.Join(parts, "\x00")
	return string(kind) + "-" + uuid.NewSHA1(idNamespace, []byte(name)).String()
}

// Validate checks that an item names its source entity.
func Validate(item Item) error {
	switch it := item.(type) {
	case nil:
		return errNilItem
	case App:
		if strings.TrimSpace(it.Package) == "" {
			return ErrEmptySource
		}
	case File:
		if strings.TrimSpace(it.URI) == "" {
			return ErrEmptySource
		}
	case Shortcut:
		if strings.TrimSpace(it.Package) == "" || strings.TrimSpace(it.ShortcutID) == "" {
			return ErrEmptySource
		}
	default:
		return ErrUnknownKind
	}
	return nil
}

func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
