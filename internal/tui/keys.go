package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/homegrid/internal/tui/commands"
	"github.com/javiermolinar/homegrid/internal/tui/input"
)

// handleKeyMsg routes key presses to the active mode.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	LogKeyPress(msg)

	switch m.mode {
	case ModeMenu:
		return m.handleMenuKeys(msg)
	case ModeSearch:
		return m.handleSearchKeys(msg)
	default:
		return m.handleHomeKeys(msg)
	}
}

func (m Model) handleHomeKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "esc":
		return m.applyActions(m.home.Cancel(m.ctx))
	case "/":
		return m.openSearch()
	}
	return m, nil
}

func (m Model) handleMenuKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "up", "k", "shift+tab":
		m.menu.move(-1)
		return m, nil
	case "down", "j", "tab":
		m.menu.move(1)
		return m, nil
	case "enter", " ":
		return m.runMenuAction(m.menu.selected())
	case "q":
		return m.runMenuAction(menuCancel)
	}
	if action, ok := actionForKey(msg.String()); ok {
		return m.runMenuAction(action)
	}
	return m, nil
}

// runMenuAction performs a menu entry and closes the menu.
func (m Model) runMenuAction(action menuAction) (Model, tea.Cmd) {
	item := m.menu.item
	m.menu = menuModel{}
	m.setMode(ModeHome, "menu closed")
	if item == nil {
		return m, nil
	}

	switch action {
	case menuUnpin:
		errc := m.home.Unpin(item.ID())
		m.pending++
		updated, cmd := m.setStatus("Unpinned "+item.Title(), false)
		return updated, tea.Batch(cmd, commands.AwaitWrite(item.ID(), errc))
	case menuCopyID:
		return m, commands.CopyID(item)
	}
	return m, nil
}

func (m Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.setMode(ModeHome, "search cancelled")
		return m, nil
	case "enter":
		query := strings.TrimSpace(m.prompt.Value())
		m.setMode(ModeHome, "search submitted")
		if query == "" {
			return m, nil
		}
		return m, commands.Search(m.ctx, m.searcher, query)
	case "tab":
		if title, ok := input.Autocomplete(m.prompt.Value(), m.suggestions()); ok {
			m.prompt.SetValue(title)
			m.prompt.CursorEnd()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

// suggestions offers the pinned items while typing a query.
func (m Model) suggestions() []input.Suggestion {
	return input.Suggestions(m.home.Board().Items())
}
