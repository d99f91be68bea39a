package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/homegrid/internal/config"
	"github.com/javiermolinar/homegrid/internal/drag"
	"github.com/javiermolinar/homegrid/internal/launcher"
	"github.com/javiermolinar/homegrid/internal/tui/commands"
	"github.com/javiermolinar/homegrid/internal/tui/theme"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.prompt.Width = max(10, m.width-8)
		return m, nil

	case tea.BlurMsg:
		// Focus loss drops any gesture in progress.
		return m.applyActions(m.home.Cancel(m.ctx))

	case commands.LongPressTickMsg:
		return m.applyActions(m.home.Tick(m.ctx, msg.At))

	case commands.BoardMsg:
		if m.pending > 0 {
			board := msg.Board
			m.deferred = &board
		} else {
			m.home.SetBoard(msg.Board)
		}
		return m, commands.WaitForBoard(m.boards)

	case commands.BoardClosedMsg:
		m.boards = nil
		return m, nil

	case commands.WriteDoneMsg:
		if m.pending > 0 {
			m.pending--
		}
		if msg.Err != nil {
			// The drop target has already reloaded from the store.
			m.deferred = nil
			m.home.SetBoard(m.home.Board())
			LogError("write "+msg.ItemID, msg.Err)
			return m.setStatus(fmt.Sprintf("Save failed: %v", msg.Err), true)
		}
		if m.pending == 0 && m.deferred != nil {
			m.home.SetBoard(*m.deferred)
			m.deferred = nil
		}
		return m, nil

	case commands.ConfigReloadedMsg:
		next := commands.WaitForConfig(m.configs)
		if msg.Err != nil {
			updated, cmd := m.setStatus(fmt.Sprintf("Config not reloaded: %v", msg.Err), true)
			return updated, tea.Batch(cmd, next)
		}
		updated, cmd := m.applyConfig(msg.Config)
		return updated, tea.Batch(cmd, next)

	case commands.ErrMsg:
		LogError("command", msg.Err)
		return m.setStatus(fmt.Sprintf("Error: %v", msg.Err), true)

	case commands.StatusMsgCmd:
		return m.setStatus(msg.Msg, false)

	case commands.ClearStatusMsg:
		if time.Now().After(m.statusTime) {
			m.statusMsg = ""
			m.statusError = false
		}
		return m, nil
	}

	// Cursor blink and other prompt messages.
	if m.mode == ModeSearch {
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		return m, cmd
	}
	return m, nil
}

// applyActions turns home-session actions into model changes and commands.
func (m Model) applyActions(actions []launcher.Action) (Model, tea.Cmd) {
	var cmds []tea.Cmd
	for _, a := range actions {
		LogAction(a)
		var cmd tea.Cmd
		switch a := a.(type) {
		case launcher.OpenItem:
			if a.Err != nil {
				m, cmd = m.setStatus(fmt.Sprintf("Cannot open %s: %v", a.Item.Title(), a.Err), true)
			} else {
				m, cmd = m.setStatus("Opened "+a.Item.Title(), false)
			}

		case launcher.OpenSearch:
			m, cmd = m.openSearch()

		case launcher.PressItem:
			// Highlighted by the view while held.

		case launcher.ShowMenu:
			m.menu = newMenu(a.Item, a.At)
			m.setMode(ModeMenu, "long press")

		case launcher.Dropped:
			switch r := a.Result.(type) {
			case drag.Rejected:
				m, cmd = m.setStatus("Cannot move: "+r.Reason, true)
			case drag.Swap:
				m, cmd = m.setStatus(fmt.Sprintf("Swapped %s and %s", r.Moved.Title(), r.Displaced.Title()), false)
			}
			if a.Write != nil {
				m.pending++
				cmd = tea.Batch(cmd, commands.AwaitWrite(a.Item.ID(), a.Write))
			}
		}
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, tea.Batch(cmds...)
}

func (m Model) openSearch() (Model, tea.Cmd) {
	m.prompt.Reset()
	cmd := m.prompt.Focus()
	m.setMode(ModeSearch, "tap on empty canvas")
	return m, tea.Batch(cmd, textinput.Blink)
}

func (m *Model) setMode(mode Mode, reason string) {
	LogModeChange(m.mode, mode, reason)
	if mode != ModeSearch {
		m.prompt.Blur()
	}
	m.mode = mode
}

// setStatus shows a temporary status message.
func (m Model) setStatus(text string, isErr bool) (Model, tea.Cmd) {
	wait := 3 * time.Second
	if isErr {
		wait = 5 * time.Second
	}
	m.statusMsg = text
	m.statusError = isErr
	m.statusTime = time.Now().Add(wait)
	return m, tea.Tick(wait, func(time.Time) tea.Msg {
		return commands.ClearStatusMsg{}
	})
}

// applyConfig installs a reloaded config. Grid bounds are fixed for the
// lifetime of the store, so columns and max_rows changes wait for a restart.
func (m Model) applyConfig(cfg *config.Config) (Model, tea.Cmd) {
	current := m.home.Config()
	layout := cfg.Grid.Layout()
	restart := layout.Columns != current.Columns || layout.MaxRows != current.MaxRows
	layout.Columns = current.Columns
	layout.MaxRows = current.MaxRows

	w, h := cellPixels(cfg.Grid.CellWidth, cfg.Grid.CellHeight)
	m.home.Reconfigure(layout, w, h)

	if cfg.UI.Theme != m.config.UI.Theme {
		if t, err := theme.Load(cfg.UI.Theme); err == nil {
			m.theme = t
			m.styles = NewStyles(t)
			m.applyPromptStyles()
		}
	}
	m.config = cfg
	m.styleCache = NewStyleCache(m.styles, cfg.Grid.CellWidth, cfg.Grid.CellHeight)

	if restart {
		return m.setStatus("Config reloaded; grid size applies after restart", false)
	}
	return m.setStatus("Config reloaded", false)
}

func (m *Model) applyPromptStyles() {
	m.prompt.TextStyle = m.styles.PromptTextStyle
	m.prompt.PromptStyle = m.styles.PromptTextStyle
	m.prompt.Cursor.Style = m.styles.PromptCursorStyle
	m.prompt.Cursor.TextStyle = m.styles.PromptTextStyle
}
