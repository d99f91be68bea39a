package ui

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/javiermolinar/homegrid/internal/grid"
	"github.com/javiermolinar/homegrid/internal/pin"
)

// PrintOpts configures item printing behavior.
type PrintOpts struct {
	ShowIDs       bool // Show item ids
	MaxTitleWidth int  // Maximum title width (0 = auto)
}

// rowOverhead is the width of "  (rr,cc)  [A]  " ahead of the title.
const rowOverhead = 18

// CalcMaxTitleWidth calculates the maximum title width for a terminal of
// the given width.
func (o PrintOpts) CalcMaxTitleWidth(width int) int {
	if o.MaxTitleWidth > 0 {
		return o.MaxTitleWidth
	}
	available := width - rowOverhead
	if o.ShowIDs {
		available -= 2 + 36
	}
	if available < 12 {
		return 12
	}
	return available
}

// formatPosition renders a cell as "(row,col)" padded for alignment.
func formatPosition(p grid.Position) string {
	return fmt.Sprintf("%-7s", p.String())
}

// PrintItemRow prints a single item row with consistent formatting.
func PrintItemRow(w io.Writer, item pin.Item, opts PrintOpts, maxTitleWidth int) {
	title := truncate(item.Title(), maxTitleWidth)
	line := fmt.Sprintf("  %s  %s  %s", formatPosition(item.Position()), formatKind(item.Kind()), title)
	if opts.ShowIDs {
		pad := maxTitleWidth - runewidth.StringWidth(title)
		if pad < 0 {
			pad = 0
		}
		line += strings.Repeat(" ", pad) + "  " + formatMuted(item.ID())
	}
	fmt.Fprintln(w, line)
}

// PrintBoard prints every item of b row by row.
func PrintBoard(w io.Writer, b pin.Board, opts PrintOpts) {
	maxTitleWidth := opts.CalcMaxTitleWidth(termWidth(w))
	items := sortedByPosition(b.Items())

	currentRow := -1
	for _, item := range items {
		if row := item.Position().Row; row != currentRow {
			if currentRow >= 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintln(w, formatHeader(fmt.Sprintf("Row %d", row)))
			currentRow = row
		}
		PrintItemRow(w, item, opts, maxTitleWidth)
	}
}

// sortedByPosition returns a copy of items in row-major order.
func sortedByPosition(items []pin.Item) []pin.Item {
	out := make([]pin.Item, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Position().Before(out[j].Position())
	})
	return out
}

// truncate shortens s to width display cells, ending in "…" when cut.
func truncate(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return runewidth.Truncate(s, width-1, "") + "…"
}
