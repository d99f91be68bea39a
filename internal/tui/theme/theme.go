// Package theme provides color themes for the TUI.
package theme

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// DefaultName is the theme used when none is configured or the configured
// one does not exist.
const DefaultName = "mocha"

//go:embed embedded/*.toml
var embeddedThemes embed.FS

// Theme holds all colors for a TUI theme.
type Theme struct {
	Name        string `toml:"name"`
	Bg          string `toml:"bg"`           // Canvas background
	BgHighlight string `toml:"bg_highlight"` // Empty cell outline, footer
	BgSelection string `toml:"bg_selection"` // Pressed item
	Fg          string `toml:"fg"`
	FgMuted     string `toml:"fg_muted"` // Hints, empty cells
	Accent      string `toml:"accent"`
	App         string `toml:"app"`
	File        string `toml:"file"`
	Shortcut    string `toml:"shortcut"`
	Drop        string `toml:"drop"`    // Drop target highlight
	Warning     string `toml:"warning"` // Errors, rejected drops

	// Optional menu overrides
	MenuBg     string `toml:"menu_bg"`
	MenuBorder string `toml:"menu_border"`
	Highlight  string `toml:"highlight"`
}

// Load reads the named embedded theme. Unknown names load DefaultName.
func Load(name string) (*Theme, error) {
	name = strings.ToLower(name)
	if !IsAvailable(name) {
		name = DefaultName
	}

	data, err := embeddedThemes.ReadFile(path.Join("embedded", name+".toml"))
	if err != nil {
		return nil, fmt.Errorf("reading theme %q: %w", name, err)
	}
	var t Theme
	if err := toml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing theme %q: %w", name, err)
	}
	t.applyDefaults()
	return &t, nil
}

// applyDefaults fills optional colors from the base palette.
func (t *Theme) applyDefaults() {
	t.MenuBg = coalesce(t.MenuBg, t.BgHighlight, t.Bg)
	t.MenuBorder = coalesce(t.MenuBorder, t.Accent)
	t.Highlight = coalesce(t.Highlight, t.BgSelection, t.Accent)
	t.Drop = coalesce(t.Drop, t.Accent)
	t.File = coalesce(t.File, t.App)
	t.Shortcut = coalesce(t.Shortcut, t.App)
}

func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// Available returns the names of the embedded themes in sorted order.
func Available() []string {
	entries, err := fs.ReadDir(embeddedThemes, "embedded")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if name, ok := strings.CutSuffix(e.Name(), ".toml"); ok {
			names = append(names, name)
		}
	}
	return names
}

// IsAvailable reports whether name is an embedded theme. Matching ignores
// case.
func IsAvailable(name string) bool {
	return slices.Contains(Available(), strings.ToLower(name))
}
