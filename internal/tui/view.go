package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/homegrid/internal/drag"
	"github.com/javiermolinar/homegrid/internal/grid"
	"github.com/javiermolinar/homegrid/internal/pin"
	"github.com/javiermolinar/homegrid/internal/tui/input"
	"github.com/javiermolinar/homegrid/internal/tui/view"
)

const (
	helpHome   = "click: open  hold: menu  hold+drag: move  click empty: search  q: quit"
	helpMenu   = "↑/↓: choose  enter: select  esc: close"
	helpSearch = "enter: search  esc: cancel"
)

// View renders the home screen.
func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 || m.home == nil {
		return "Loading..."
	}
	bg := m.styles.Palette().Bg

	footer := m.footerModel()
	bodyH := m.height - footer.Height()

	body := strings.Join([]string{
		m.renderHeader(),
		"",
		view.Indent(m.renderCanvas(), canvasLeft, bg),
	}, "\n")
	body = view.PadLinesWithBackground(body, m.width, max(bodyH, 0), bg)

	frame := body + "\n" + view.RenderFooter(footer)
	if bodyH <= 0 {
		frame = view.RenderFooter(footer)
	}

	overlay := NewOverlayModel()
	if box, left, top, ok := m.ghostBox(); ok {
		frame = overlay.Place(frame, m.width, m.height, box, left, top)
	}
	if m.mode == ModeMenu {
		overlay.SetBackground(m.styles.MenuBgColor)
		box, left, top := m.menuBox()
		frame = overlay.Place(frame, m.width, m.height, box, left, top)
	}
	return frame
}

func (m Model) renderHeader() string {
	n := m.home.Board().Len()
	title := m.styles.TitleStyle.Render("homegrid")
	count := m.styles.CountStyle.Render(fmt.Sprintf("  %d pinned", n))
	return view.Indent(title+count, canvasLeft, m.styles.Palette().Bg)
}

// renderCanvas draws every rendered cell of the grid.
func (m Model) renderCanvas() string {
	board := m.home.Board()
	calc := m.home.Calculator()
	hover, hovering := m.home.Hover()

	var draggedID string
	if item := drag.ItemOf(m.home.DragState()); item != nil {
		draggedID = item.ID()
	}
	var pressedID string
	if item := m.home.Pressed(); item != nil && draggedID == "" {
		pressedID = item.ID()
	}

	rows := make([]string, 0, calc.Rows())
	for r := 0; r < calc.Rows(); r++ {
		cells := make([]string, 0, calc.Columns())
		for c := 0; c < calc.Columns(); c++ {
			pos := grid.At(r, c)
			item, occupied := board.At(pos)
			cells = append(cells, m.renderCell(item, occupied, hovering && pos == hover, draggedID, pressedID))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) renderCell(item pin.Item, occupied, hovered bool, draggedID, pressedID string) string {
	sc := m.styleCache
	switch {
	case hovered && occupied && item.ID() != draggedID:
		return sc.Drop.Render(m.tileLabel(item))
	case hovered:
		return sc.Drop.Render("")
	case !occupied:
		return sc.Empty.Render("·")
	case item.ID() == draggedID:
		return sc.Origin.Render("")
	case item.ID() == pressedID:
		return sc.Pressed.Render(m.tileLabel(item))
	}

	switch item.Kind() {
	case pin.KindFile:
		return sc.File.Render(m.tileLabel(item))
	case pin.KindShortcut:
		return sc.Shortcut.Render(m.tileLabel(item))
	default:
		return sc.App.Render(m.tileLabel(item))
	}
}

func (m Model) tileLabel(item pin.Item) string {
	return view.TileLabel(item.Title(), string(item.Kind()), m.styleCache.TileWidth, m.styleCache.TileHeight)
}

// ghostBox returns the dragged tile and where to draw it: the tile follows
// the pointer, scaled and faded by the drag settings.
func (m Model) ghostBox() (string, int, int, bool) {
	d, ok := m.home.DragState().(drag.Dragging)
	if !ok || !d.ExceededThreshold {
		return "", 0, 0, false
	}
	cfg := m.home.Config()
	scale := cfg.DragScale
	if scale <= 0 {
		scale = 1
	}
	alpha := cfg.DragAlpha
	if alpha <= 0 || alpha > 1 {
		alpha = 1
	}

	tileW, tileH := m.styleCache.TileWidth, m.styleCache.TileHeight
	ghostW := max(1, int(math.Round(float64(tileW)*scale)))

	origin := m.home.Calculator().CellToPixel(d.Start).Add(d.Offset)
	left, top := toTerminal(origin)
	left -= (ghostW - tileW) / 2

	label := view.TileLabel(d.Item.Title(), string(d.Item.Kind()), ghostW, tileH)
	box := m.styles.GhostStyle(d.Item.Kind(), alpha).
		Width(ghostW).
		Height(tileH).
		Render(label)
	return box, left, top, true
}

// menuBox returns the rendered item menu and its clamped position.
func (m Model) menuBox() (string, int, int) {
	box := m.menu.render(m.styles)
	x, y := toTerminal(m.menu.at)
	w, h := lipgloss.Size(box)
	left, top := clampBox(w, h, x+1, y, m.width, m.height)
	return box, left, top
}

func (m Model) footerModel() view.FooterModel {
	fm := view.FooterModel{
		Width:       m.width,
		StatusText:  m.statusMsg,
		HelpText:    helpHome,
		StatusStyle: m.styles.StatusStyle,
		HelpStyle:   m.styles.HelpStyle,
		PromptStyle: m.styles.PromptFocusedStyle,
		Bg:          m.styles.Palette().Bg,
	}
	if m.statusError {
		fm.StatusStyle = m.styles.ErrorStyle
	}
	switch m.mode {
	case ModeMenu:
		fm.HelpText = helpMenu
	case ModeSearch:
		fm.HelpText = helpSearch
		if matches := input.Matching(m.prompt.Value(), m.suggestions()); len(matches) > 0 {
			fm.HelpText = "tab: " + matches[0].Title + "  " + helpSearch
		}
		fm.ShowPrompt = true
		fm.PromptText = m.prompt.View()
	}
	return fm
}
