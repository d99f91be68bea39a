package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/javiermolinar/homegrid/internal/config"
	"github.com/javiermolinar/homegrid/internal/drag"
	"github.com/javiermolinar/homegrid/internal/gesture"
	"github.com/javiermolinar/homegrid/internal/launcher"
	"github.com/javiermolinar/homegrid/internal/logging"
)

// trace logs TUI input and state changes at Debug. Entries carry an event
// name so a --debug log reads as a timeline.
func trace(event string, fields logrus.Fields) {
	log := logging.NewLogger("tui")
	if !log.Logger.IsLevelEnabled(logrus.DebugLevel) {
		return
	}
	log.WithFields(fields).WithField("event", event).Debug(event)
}

func traceStart(cfg *config.Config) {
	trace("DEBUG_START", logrus.Fields{
		"time":    time.Now().Format(time.RFC3339),
		"columns": cfg.Grid.Columns,
		"theme":   cfg.UI.Theme,
	})
}

func traceEnd() {
	trace("DEBUG_END", logrus.Fields{
		"time": time.Now().Format(time.RFC3339),
	})
}

// LogKeyPress logs a key press event.
func LogKeyPress(msg tea.KeyMsg) {
	trace("KEY_PRESS", logrus.Fields{
		"key":  msg.String(),
		"type": fmt.Sprintf("%T", msg.Type),
	})
}

// LogPointer logs a pointer event fed to the gesture detector.
func LogPointer(ev gesture.Event, phase gesture.Phase) {
	trace("POINTER", logrus.Fields{
		"kind":    ev.Kind.String(),
		"pointer": ev.Pointer,
		"x":       ev.Pos.X,
		"y":       ev.Pos.Y,
		"phase":   phase.String(),
	})
}

// LogModeChange logs a mode change.
func LogModeChange(from, to Mode, reason string) {
	if from == to {
		return
	}
	trace("MODE_CHANGE", logrus.Fields{
		"from":   modeString(from),
		"to":     modeString(to),
		"reason": reason,
	})
}

// LogAction logs an action produced by the home session.
func LogAction(a launcher.Action) {
	fields := logrus.Fields{"action": fmt.Sprintf("%T", a)}
	switch a := a.(type) {
	case launcher.OpenItem:
		fields["id"] = a.Item.ID()
	case launcher.PressItem:
		fields["id"] = a.Item.ID()
	case launcher.ShowMenu:
		fields["id"] = a.Item.ID()
	case launcher.Dropped:
		fields["id"] = a.Item.ID()
		fields["result"] = a.Result.String()
		fields["committed"] = drag.Committed(a.Result)
	}
	trace("ACTION", fields)
}

// LogError logs an error.
func LogError(context string, err error) {
	logging.NewLogger("tui").WithError(err).WithField("context", context).Error("tui error")
}

// modeString returns a string representation of a Mode.
func modeString(m Mode) string {
	switch m {
	case ModeHome:
		return "Home"
	case ModeMenu:
		return "Menu"
	case ModeSearch:
		return "Search"
	default:
		return fmt.Sprintf("Unknown(%d)", m)
	}
}

// truncateStr truncates a string to max runes, marking the cut with an
// ellipsis.
func truncateStr(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 1 {
		return string(r[:max])
	}
	return string(r[:max-1]) + "…"
}
