package ui

import (
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/javiermolinar/homegrid/internal/pin"
)

const defaultTermWidth = 80

// kindTags maps each item kind to its colored list tag.
var kindTags = map[pin.Kind]struct {
	tag string
	c   *color.Color
}{
	pin.KindApp:      {"[A]", color.New(color.FgCyan, color.Bold)},
	pin.KindFile:     {"[F]", color.New(color.FgGreen)},
	pin.KindShortcut: {"[S]", color.New(color.FgMagenta)},
}

var (
	colorWarning = color.New(color.FgYellow)
	colorHeader  = color.New(color.Bold)
	colorMuted   = color.New(color.FgWhite, color.Faint)
)

// termWidth reports the width of w when it is a terminal and
// defaultTermWidth otherwise.
func termWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return defaultTermWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return defaultTermWidth
	}
	return width
}

// DisableColor turns off colored output for every printer in this package.
func DisableColor() { color.NoColor = true }

// EnableColor turns colored output back on.
func EnableColor() { color.NoColor = false }

func formatKind(k pin.Kind) string {
	t, ok := kindTags[k]
	if !ok {
		t = kindTags[pin.KindApp]
	}
	return t.c.Sprint(t.tag)
}

func formatWarning(s string) string { return colorWarning.Sprint(s) }

func formatHeader(s string) string { return colorHeader.Sprint(s) }

func formatMuted(s string) string { return colorMuted.Sprint(s) }
