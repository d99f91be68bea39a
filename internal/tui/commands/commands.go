// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/homegrid/internal/config"
	"github.com/javiermolinar/homegrid/internal/launcher"
	"github.com/javiermolinar/homegrid/internal/pin"
)

// BoardMsg is sent when the store publishes a new snapshot.
type BoardMsg struct {
	Board pin.Board
}

// BoardClosedMsg is sent when the snapshot stream ends.
type BoardClosedMsg struct{}

// WriteDoneMsg reports the outcome of a queued store write.
type WriteDoneMsg struct {
	ItemID string
	Err    error
}

// LongPressTickMsg asks the gesture detector to check for a long press.
type LongPressTickMsg struct {
	At time.Time
}

// ConfigReloadedMsg carries a config reloaded from disk.
type ConfigReloadedMsg struct {
	Config *config.Config
	Err    error
}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// WaitForBoard blocks until the next snapshot arrives on ch.
func WaitForBoard(ch <-chan pin.Board) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		board, ok := <-ch
		if !ok {
			return BoardClosedMsg{}
		}
		return BoardMsg{Board: board}
	}
}

// AwaitWrite waits for a queued store write to finish.
func AwaitWrite(itemID string, errc <-chan error) tea.Cmd {
	if errc == nil {
		return nil
	}
	return func() tea.Msg {
		return WriteDoneMsg{ItemID: itemID, Err: <-errc}
	}
}

// LongPressTick fires once after d.
func LongPressTick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return LongPressTickMsg{At: t}
	})
}

// WatchConfig starts watching the config file at path. Reloads are
// delivered on the returned channel; use WaitForConfig to receive them.
func WatchConfig(ctx context.Context, path string) (<-chan ConfigReloadedMsg, error) {
	ch := make(chan ConfigReloadedMsg, 1)
	err := config.Watch(ctx, path, func(cfg *config.Config, err error) {
		msg := ConfigReloadedMsg{Config: cfg, Err: err}
		select {
		case ch <- msg:
		default:
			// Keep only the newest reload.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- msg:
			default:
			}
		}
	})
	if err != nil {
		return nil, err
	}
	return ch, nil
}

// WaitForConfig blocks until the next config reload.
func WaitForConfig(ch <-chan ConfigReloadedMsg) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}

// CopyID copies an item id to the system clipboard.
func CopyID(item pin.Item) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(item.ID()); err != nil {
			return ErrMsg{Err: fmt.Errorf("copying id: %w", err)}
		}
		return StatusMsgCmd{Msg: fmt.Sprintf("Copied id of %s", item.Title())}
	}
}

// Search hands a query to the searcher.
func Search(ctx context.Context, s launcher.Searcher, query string) tea.Cmd {
	return func() tea.Msg {
		if err := launcher.Search(ctx, s, query); err != nil {
			return ErrMsg{Err: fmt.Errorf("searching: %w", err)}
		}
		return StatusMsgCmd{Msg: fmt.Sprintf("Searching %q", query)}
	}
}
