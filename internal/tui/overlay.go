package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// ansiBgReset is SGR 49, which resets only the background color.
const ansiBgReset = "\x1b[49m"

// OverlayModel draws opaque boxes on top of an already rendered frame.
type OverlayModel struct {
	bg lipgloss.Color
}

// NewOverlayModel returns an overlay that pads ragged boxes with the
// terminal default background.
func NewOverlayModel() OverlayModel {
	return OverlayModel{}
}

// SetBackground sets the color used to pad ragged box lines.
func (o *OverlayModel) SetBackground(color lipgloss.Color) {
	o.bg = color
}

// Place draws box over base with its top-left corner at (left, top). The
// box is shifted to stay inside width x height.
func (o OverlayModel) Place(base string, width, height int, box string, left, top int) string {
	if width <= 0 || height <= 0 {
		return base
	}
	rows := strings.Split(strings.TrimRight(box, "\n"), "\n")
	boxW := 0
	for _, r := range rows {
		boxW = max(boxW, lipgloss.Width(r))
	}
	if box == "" || boxW == 0 {
		return base
	}
	left, top = clampBox(boxW, len(rows), left, top, width, height)
	boxW = min(boxW, width)

	frame := fitFrame(base, width, height)
	fill := o.fillSeq()
	for i, r := range rows {
		y := top + i
		if y >= height {
			break
		}
		frame[y] = ansi.Cut(frame[y], 0, left) +
			ansi.ResetStyle + o.fitRow(r, boxW, fill) + ansi.ResetStyle +
			ansi.Cut(frame[y], left+boxW, width)
	}
	return strings.Join(frame, "\n")
}

// fitRow cuts or pads a box row to exactly w cells. Padding and any
// background resets inside the row are painted with fill.
func (o OverlayModel) fitRow(row string, w int, fill string) string {
	rw := lipgloss.Width(row)
	if rw >= w {
		return ansi.Cut(row, 0, w)
	}
	if fill != "" {
		row = strings.ReplaceAll(row, ansi.ResetStyle, ansi.ResetStyle+fill)
		row = strings.ReplaceAll(row, ansiBgReset, ansiBgReset+fill)
	}
	return row + fill + strings.Repeat(" ", w-rw)
}

func (o OverlayModel) fillSeq() string {
	if o.bg == "" {
		return ""
	}
	return ansi.Style{}.BackgroundColor(ansi.HexColor(string(o.bg))).String()
}

// clampBox moves a boxW x boxH box anchored at (left, top) so it fits a
// width x height area where possible.
func clampBox(boxW, boxH, left, top, width, height int) (int, int) {
	left = max(0, min(left, width-boxW))
	top = max(0, min(top, height-boxH))
	return left, top
}

// fitFrame splits base into exactly height lines of width cells.
func fitFrame(base string, width, height int) []string {
	src := strings.Split(base, "\n")
	out := make([]string, height)
	for i := range out {
		if i < len(src) {
			out[i] = src[i]
		}
		if w := lipgloss.Width(out[i]); w > width {
			out[i] = ansi.Cut(out[i], 0, width)
		} else {
			out[i] += strings.Repeat(" ", width-w)
		}
	}
	return out
}
