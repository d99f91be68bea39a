// Package tui provides the terminal home screen for homegrid.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/homegrid/internal/pin"
	"github.com/javiermolinar/homegrid/internal/tui/theme"
)

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	palette *theme.Palette

	// Title style
	TitleStyle lipgloss.Style
	CountStyle lipgloss.Style

	// Tile styles
	TileStyle         lipgloss.Style
	TileAppStyle      lipgloss.Style
	TileFileStyle     lipgloss.Style
	TileShortcutStyle lipgloss.Style
	TilePressedStyle  lipgloss.Style // Held item before it starts moving
	TileOriginStyle   lipgloss.Style // Cell the dragged item left
	TileDropStyle     lipgloss.Style // Previewed drop cell
	TileKindStyle     lipgloss.Style

	// Empty cell
	EmptyCellStyle lipgloss.Style

	// Search prompt
	PromptStyle        lipgloss.Style
	PromptFocusedStyle lipgloss.Style

	// Status message
	StatusStyle lipgloss.Style
	ErrorStyle  lipgloss.Style

	// Help text
	HelpStyle lipgloss.Style

	// Item menu
	MenuBgColor      lipgloss.Color
	MenuStyle        lipgloss.Style
	MenuTitleStyle   lipgloss.Style
	MenuItemStyle    lipgloss.Style
	MenuActiveStyle  lipgloss.Style
	MenuHintStyle    lipgloss.Style
	MenuDangerStyle  lipgloss.Style
	PromptTextStyle  lipgloss.Style
	PromptCursorStyle lipgloss.Style

	// Viewport background
	ViewportStyle lipgloss.Style
}

// NewStyles creates a new Styles instance from a theme.
func NewStyles(t *theme.Theme) *Styles {
	s := &Styles{}
	palette := theme.NewPalette(t)
	s.palette = palette

	s.TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(palette.Accent).
		Background(palette.Bg)

	s.CountStyle = lipgloss.NewStyle().
		Foreground(palette.FgMuted).
		Background(palette.Bg)

	s.TileStyle = lipgloss.NewStyle().
		Align(lipgloss.Center, lipgloss.Center).
		Bold(true)

	s.TileAppStyle = s.TileStyle.
		Background(palette.AppBg).
		Foreground(palette.TextOnApp)

	s.TileFileStyle = s.TileStyle.
		Background(palette.FileBg).
		Foreground(palette.TextOnFile)

	s.TileShortcutStyle = s.TileStyle.
		Background(palette.ShortcutBg).
		Foreground(palette.TextOnShortcut)

	s.TilePressedStyle = s.TileStyle.
		Background(palette.BgSelection).
		Foreground(palette.Accent)

	s.TileOriginStyle = s.TileStyle.
		Background(palette.BgHighlight).
		Foreground(palette.FgMuted).
		Bold(false).
		Italic(true)

	s.TileDropStyle = s.TileStyle.
		Background(palette.Drop).
		Foreground(palette.TextOnDrop)

	s.TileKindStyle = lipgloss.NewStyle().
		Bold(false).
		Italic(true)

	s.EmptyCellStyle = lipgloss.NewStyle().
		Background(palette.Bg).
		Foreground(palette.BgHighlight).
		Align(lipgloss.Center, lipgloss.Center)

	s.PromptStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(palette.FgMuted).
		BorderBackground(palette.Bg).
		Background(palette.BgHighlight).
		Foreground(palette.Fg).
		Padding(0, 1)

	s.PromptFocusedStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(palette.Accent).
		BorderBackground(palette.Bg).
		Background(palette.BgSelection).
		Foreground(palette.Fg).
		Bold(true).
		Padding(0, 1)

	s.PromptTextStyle = lipgloss.NewStyle().
		Foreground(palette.Fg).
		Background(palette.BgSelection)

	s.PromptCursorStyle = lipgloss.NewStyle().
		Foreground(palette.TextOnAccent).
		Background(palette.Accent)

	s.StatusStyle = lipgloss.NewStyle().
		Foreground(palette.Accent).
		Background(palette.Bg).
		Bold(true)

	s.ErrorStyle = lipgloss.NewStyle().
		Foreground(palette.Warning).
		Background(palette.Bg).
		Bold(true)

	s.HelpStyle = lipgloss.NewStyle().
		Foreground(palette.FgMuted).
		Background(palette.Bg)

	menu := palette.Menu
	s.MenuBgColor = menu.Bg

	s.MenuStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(menu.Border).
		BorderBackground(menu.Bg).
		Background(menu.Bg).
		Foreground(menu.Text).
		Padding(0, 1)

	s.MenuTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(menu.Text).
		Background(menu.Bg)

	s.MenuItemStyle = lipgloss.NewStyle().
		Foreground(menu.Text).
		Background(menu.Bg).
		Padding(0, 1)

	s.MenuActiveStyle = lipgloss.NewStyle().
		Foreground(menu.ReverseText).
		Background(menu.Highlight).
		Bold(true).
		Padding(0, 1)

	s.MenuDangerStyle = s.MenuItemStyle.
		Foreground(palette.Warning)

	s.MenuHintStyle = lipgloss.NewStyle().
		Foreground(menu.Muted).
		Background(menu.Bg)

	// Viewport background - fill entire terminal with base background.
	s.ViewportStyle = lipgloss.NewStyle().
		Background(palette.Bg)

	return s
}

// Palette returns the colors the styles were built from.
func (s *Styles) Palette() *theme.Palette {
	return s.palette
}

// TileStyleFor returns the tile style for an item kind.
func (s *Styles) TileStyleFor(kind pin.Kind) lipgloss.Style {
	switch kind {
	case pin.KindFile:
		return s.TileFileStyle
	case pin.KindShortcut:
		return s.TileShortcutStyle
	default:
		return s.TileAppStyle
	}
}

// GhostStyle returns the style of a dragged tile drawn with the given
// opacity.
func (s *Styles) GhostStyle(kind pin.Kind, alpha float64) lipgloss.Style {
	return s.TileStyleFor(kind).Background(s.palette.Ghost(string(kind), alpha))
}
