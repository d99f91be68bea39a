package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/homegrid/internal/grid"
	"github.com/javiermolinar/homegrid/internal/pin"
)

// menuAction identifies an item menu entry.
type menuAction int

const (
	menuUnpin menuAction = iota
	menuCopyID
	menuCancel
)

type menuEntry struct {
	label  string
	key    string
	action menuAction
}

var menuEntries = []menuEntry{
	{label: "Unpin", key: "u", action: menuUnpin},
	{label: "Copy id", key: "c", action: menuCopyID},
	{label: "Cancel", key: "esc", action: menuCancel},
}

// menuModel is the long-press menu of one item.
type menuModel struct {
	item   pin.Item
	at     grid.Point // canvas pixel the menu is anchored to
	cursor int
}

func newMenu(item pin.Item, at grid.Point) menuModel {
	return menuModel{item: item, at: at}
}

func (m *menuModel) move(delta int) {
	n := len(menuEntries)
	m.cursor = ((m.cursor+delta)%n + n) % n
}

func (m menuModel) selected() menuAction {
	return menuEntries[m.cursor].action
}

// actionForKey returns the entry bound to a shortcut key.
func actionForKey(key string) (menuAction, bool) {
	for _, e := range menuEntries {
		if e.key == key {
			return e.action, true
		}
	}
	return 0, false
}

// render draws the menu box.
func (m menuModel) render(s *Styles) string {
	if m.item == nil {
		return ""
	}
	title := s.MenuTitleStyle.Render(truncateStr(m.item.Title(), 24))
	kind := s.MenuHintStyle.Render(string(m.item.Kind()))

	width := max(lipgloss.Width(title), lipgloss.Width(kind))
	rows := make([]string, 0, len(menuEntries))
	for i, e := range menuEntries {
		style := s.MenuItemStyle
		if e.action == menuUnpin {
			style = s.MenuDangerStyle
		}
		if i == m.cursor {
			style = s.MenuActiveStyle
		}
		row := style.Render(e.label + strings.Repeat(" ", max(0, 10-len(e.label))) + e.key)
		width = max(width, lipgloss.Width(row))
		rows = append(rows, row)
	}

	bg := lipgloss.NewStyle().Background(s.MenuBgColor).Width(width)
	lines := []string{bg.Render(title), bg.Render(kind)}
	for _, row := range rows {
		lines = append(lines, bg.Render(row))
	}
	return s.MenuStyle.Render(strings.Join(lines, "\n"))
}

// entryAt returns the entry drawn on the given line of the rendered box.
// Line 0 is the top border, then title and kind.
func (m menuModel) entryAt(line int) (int, bool) {
	idx := line - 3
	if idx < 0 || idx >= len(menuEntries) {
		return 0, false
	}
	return idx, true
}
