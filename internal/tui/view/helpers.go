// Package view holds stateless rendering helpers for the home screen.
package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// PadLinesWithBackground fits content into a width x height block filled
// with bg. Extra lines are dropped and long lines are cut.
func PadLinesWithBackground(content string, width, height int, bg lipgloss.Color) string {
	if width <= 0 || height <= 0 {
		return content
	}
	fill := lipgloss.NewStyle().Background(bg)
	src := strings.Split(content, "\n")
	out := make([]string, height)
	for i := range out {
		var line string
		if i < len(src) {
			line = src[i]
		}
		switch w := lipgloss.Width(line); {
		case w > width:
			out[i] = ansi.Truncate(line, width, "")
		case w < width:
			out[i] = line + fill.Render(strings.Repeat(" ", width-w))
		default:
			out[i] = line
		}
	}
	return strings.Join(out, "\n")
}

// Indent shifts every line of content right by n cells of bg.
func Indent(content string, n int, bg lipgloss.Color) string {
	if n <= 0 || content == "" {
		return content
	}
	pad := lipgloss.NewStyle().Background(bg).Render(strings.Repeat(" ", n))
	return pad + strings.ReplaceAll(content, "\n", "\n"+pad)
}
