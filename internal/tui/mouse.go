package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/homegrid/internal/gesture"
	"github.com/javiermolinar/homegrid/internal/tui/commands"
)

// Pointer ids. The right button stands in for a second finger, so pressing
// it during a gesture aborts that gesture.
const (
	primaryPointer   = 0
	secondaryPointer = 1
)

// tickSlack keeps the long-press tick from landing a hair early.
const tickSlack = 10 * time.Millisecond

func (m Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case ModeMenu:
		return m.handleMenuMouse(msg)
	case ModeSearch:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			m.setMode(ModeHome, "clicked away from search")
		}
		return m, nil
	}

	now := time.Now()
	ev, ok := m.pointerEvent(msg, now)
	if !ok {
		return m, nil
	}
	m.trackButtons(ev)

	actions := m.home.HandleEvent(m.ctx, ev)
	LogPointer(ev, m.home.Phase())

	updated, cmd := m.applyActions(actions)
	if ev.Kind == gesture.EventDown && ev.Pointer == primaryPointer {
		cmd = tea.Batch(cmd, commands.LongPressTick(updated.home.Config().LongPress+tickSlack))
	}
	return updated, cmd
}

// pointerEvent translates a terminal mouse event into a pointer event in
// canvas pixels.
func (m Model) pointerEvent(msg tea.MouseMsg, at time.Time) (gesture.Event, bool) {
	pt := toCanvas(msg.X, msg.Y)
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			return gesture.Down(primaryPointer, pt.X, pt.Y, at), true
		case tea.MouseButtonRight:
			return gesture.Down(secondaryPointer, pt.X, pt.Y, at), true
		}
	case tea.MouseActionRelease:
		if msg.Button == tea.MouseButtonRight {
			return gesture.Up(secondaryPointer, pt.X, pt.Y, at), true
		}
		if m.held {
			return gesture.Up(primaryPointer, pt.X, pt.Y, at), true
		}
	case tea.MouseActionMotion:
		if m.held {
			return gesture.Move(primaryPointer, pt.X, pt.Y, at), true
		}
	}
	return gesture.Event{}, false
}

func (m *Model) trackButtons(ev gesture.Event) {
	if ev.Pointer != primaryPointer {
		return
	}
	switch ev.Kind {
	case gesture.EventDown:
		m.held = true
	case gesture.EventUp, gesture.EventCancel:
		m.held = false
	}
}

// handleMenuMouse lets the pointer pick a menu entry. Clicking outside the
// menu closes it.
func (m Model) handleMenuMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	box, left, top := m.menuBox()
	w, h := lipgloss.Size(box)
	inside := msg.X >= left && msg.X < left+w && msg.Y >= top && msg.Y < top+h
	idx, onEntry := m.menu.entryAt(msg.Y - top)

	switch msg.Action {
	case tea.MouseActionMotion:
		if inside && onEntry {
			m.menu.cursor = idx
		}
		return m, nil
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if inside && onEntry {
			return m.runMenuAction(menuEntries[idx].action)
		}
		if !inside {
			return m.runMenuAction(menuCancel)
		}
	}
	return m, nil
}
