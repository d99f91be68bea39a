package tui

import "github.com/charmbracelet/lipgloss"

// StyleCache stores size-specific tile styles to avoid per-cell mutations.
type StyleCache struct {
	TileWidth  int
	TileHeight int

	Empty    lipgloss.Style
	App      lipgloss.Style
	File     lipgloss.Style
	Shortcut lipgloss.Style
	Pressed  lipgloss.Style
	Origin   lipgloss.Style
	Drop     lipgloss.Style
}

// NewStyleCache precomputes the tile styles for a cell of width x height
// terminal cells. Tiles leave a one-cell margin to the right and below.
func NewStyleCache(styles *Styles, width, height int) StyleCache {
	tileW := max(1, width-1)
	tileH := max(1, height-1)
	sized := func(st lipgloss.Style) lipgloss.Style {
		return st.Width(tileW).Height(tileH).
			MarginRight(1).
			MarginBottom(1).
			MarginBackground(styles.Palette().Bg)
	}
	return StyleCache{
		TileWidth:  tileW,
		TileHeight: tileH,
		Empty:      sized(styles.EmptyCellStyle),
		App:        sized(styles.TileAppStyle),
		File:       sized(styles.TileFileStyle),
		Shortcut:   sized(styles.TileShortcutStyle),
		Pressed:    sized(styles.TilePressedStyle),
		Origin:     sized(styles.TileOriginStyle),
		Drop:       sized(styles.TileDropStyle),
	}
}
