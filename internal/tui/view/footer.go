package view

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Footer heights in lines.
const (
	FooterHeight       = 2 // status + help
	FooterPromptHeight = 4 // bordered prompt + help
)

// FooterModel is everything RenderFooter needs to draw the bottom of the
// screen.
type FooterModel struct {
	Width       int
	StatusText  string
	HelpText    string
	PromptText  string
	ShowPrompt  bool
	StatusStyle lipgloss.Style
	HelpStyle   lipgloss.Style
	PromptStyle lipgloss.Style
	Bg          lipgloss.Color
}

// Height returns the number of lines RenderFooter produces.
func (m FooterModel) Height() int {
	if m.ShowPrompt {
		return FooterPromptHeight
	}
	return FooterHeight
}

// RenderFooter draws the search prompt or the status line, then the help
// line.
func RenderFooter(m FooterModel) string {
	top := fitStyled(m.Width, m.StatusStyle, m.StatusText)
	if m.ShowPrompt {
		top = fitStyled(m.Width, m.PromptStyle, m.PromptText)
	}
	help := fitStyled(m.Width, m.HelpStyle, m.HelpText)
	return PadLinesWithBackground(top+"\n"+help, m.Width, m.Height(), m.Bg)
}

// fitStyled renders text with style so that the frame and content together
// span exactly width cells.
func fitStyled(width int, style lipgloss.Style, text string) string {
	inner := max(0, width-style.GetHorizontalFrameSize())
	if inner > 0 {
		text = ansi.Truncate(text, inner, "")
	}
	return style.Width(inner).Render(text)
}
