package theme

import (
	"fmt"
	"math"
	"strconv"

	"github.com/charmbracelet/lipgloss"
)

// Palette holds precomputed colors derived from a Theme.
type Palette struct {
	Bg          lipgloss.Color
	BgHighlight lipgloss.Color
	BgSelection lipgloss.Color
	Fg          lipgloss.Color
	FgMuted     lipgloss.Color
	Accent      lipgloss.Color
	Drop        lipgloss.Color
	Warning     lipgloss.Color

	AppBg      lipgloss.Color
	FileBg     lipgloss.Color
	ShortcutBg lipgloss.Color

	TextOnAccent   lipgloss.Color
	TextOnDrop     lipgloss.Color
	TextOnApp      lipgloss.Color
	TextOnFile     lipgloss.Color
	TextOnShortcut lipgloss.Color

	Menu MenuColors

	tileHex map[string]string
	bgHex   string
}

// MenuColors holds item-menu colors derived from a Theme.
type MenuColors struct {
	Bg          lipgloss.Color
	Border      lipgloss.AdaptiveColor
	Text        lipgloss.AdaptiveColor
	Muted       lipgloss.AdaptiveColor
	Highlight   lipgloss.AdaptiveColor
	ReverseText lipgloss.AdaptiveColor
}

// NewPalette derives a Palette from the provided Theme. A nil theme
// means mocha.
func NewPalette(t *Theme) *Palette {
	if t == nil {
		t, _ = Load("mocha")
	}

	light := isLightTheme(t.Bg)
	tiles := map[string]string{
		"app":      tileBg(t.App, t.Bg, light),
		"file":     tileBg(coalesce(t.File, t.App), t.Bg, light),
		"shortcut": tileBg(coalesce(t.Shortcut, t.App), t.Bg, light),
	}
	drop := coalesce(t.Drop, t.Accent)
	menuBg := coalesce(t.MenuBg, t.BgHighlight, t.Bg)
	textOn := func(bg string) lipgloss.Color {
		return lipgloss.Color(chooseTextColor(bg, t.Bg, t.Fg))
	}

	return &Palette{
		Bg:          lipgloss.Color(t.Bg),
		BgHighlight: lipgloss.Color(t.BgHighlight),
		BgSelection: lipgloss.Color(t.BgSelection),
		Fg:          lipgloss.Color(t.Fg),
		FgMuted:     lipgloss.Color(t.FgMuted),
		Accent:      lipgloss.Color(t.Accent),
		Drop:        lipgloss.Color(drop),
		Warning:     lipgloss.Color(t.Warning),

		AppBg:      lipgloss.Color(tiles["app"]),
		FileBg:     lipgloss.Color(tiles["file"]),
		ShortcutBg: lipgloss.Color(tiles["shortcut"]),

		TextOnAccent:   textOn(t.Accent),
		TextOnDrop:     textOn(drop),
		TextOnApp:      textOn(tiles["app"]),
		TextOnFile:     textOn(tiles["file"]),
		TextOnShortcut: textOn(tiles["shortcut"]),

		Menu: MenuColors{
			Bg:        lipgloss.Color(menuBg),
			Border:    same(coalesce(t.MenuBorder, t.Accent)),
			Text:      same(t.Fg),
			Muted:     same(t.FgMuted),
			Highlight: same(coalesce(t.Highlight, t.BgSelection, t.Accent)),
			// Dark terminals draw menu text in the menu background on a
			// highlighted row.
			ReverseText: lipgloss.AdaptiveColor{Dark: menuBg, Light: t.Fg},
		},

		tileHex: tiles,
		bgHex:   t.Bg,
	}
}

// Ghost returns the background of a dragged tile of the given kind drawn
// with the given opacity over the canvas.
func (p *Palette) Ghost(kind string, alpha float64) lipgloss.Color {
	hex, ok := p.tileHex[kind]
	if !ok {
		hex = p.tileHex["app"]
	}
	return lipgloss.Color(blendColors(hex, p.bgHex, 1-alpha))
}

func same(hex string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Dark: hex, Light: hex}
}

func isLightTheme(bg string) bool {
	return relativeLuminance(bg) > 0.55
}

// tileBg softens a kind color into a tile background: towards the canvas on
// light themes, towards black on dark ones.
func tileBg(kindHex, bg string, light bool) string {
	if light {
		return blendColors(kindHex, bg, 0.75)
	}
	return darkenColor(kindHex)
}

// rgb is an 8-bit per channel color.
type rgb struct{ r, g, b float64 }

func parseRGB(hex string) (rgb, bool) {
	if len(hex) != 7 || hex[0] != '#' {
		return rgb{}, false
	}
	v, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return rgb{}, false
	}
	return rgb{float64(v >> 16 & 0xff), float64(v >> 8 & 0xff), float64(v & 0xff)}, true
}

func (c rgb) hex() string {
	ch := func(v float64) int { return int(math.Max(0, math.Min(255, v))) }
	return fmt.Sprintf("#%02x%02x%02x", ch(c.r), ch(c.g), ch(c.b))
}

// mix moves c towards o by ratio in [0,1].
func (c rgb) mix(o rgb, ratio float64) rgb {
	ratio = math.Max(0, math.Min(1, ratio))
	lerp := func(a, b float64) float64 { return a*(1-ratio) + b*ratio }
	return rgb{lerp(c.r, o.r), lerp(c.g, o.g), lerp(c.b, o.b)}
}

// luminance is the WCAG relative luminance.
func (c rgb) luminance() float64 {
	lin := func(v float64) float64 {
		v /= 255
		if v <= 0.04045 {
			return v / 12.92
		}
		return math.Pow((v+0.055)/1.055, 2.4)
	}
	return 0.2126*lin(c.r) + 0.7152*lin(c.g) + 0.0722*lin(c.b)
}

// darkenColor halves each channel with a floor of 40 so dark tiles never
// vanish into a dark canvas.
func darkenColor(hex string) string {
	c, ok := parseRGB(hex)
	if !ok {
		return hex
	}
	half := func(v float64) float64 { return math.Max(40, math.Floor(v*0.5)) }
	return rgb{half(c.r), half(c.g), half(c.b)}.hex()
}

func blendColors(a, b string, ratio float64) string {
	ca, okA := parseRGB(a)
	cb, okB := parseRGB(b)
	if !okA || !okB {
		return a
	}
	return ca.mix(cb, ratio).hex()
}

func relativeLuminance(hex string) float64 {
	c, ok := parseRGB(hex)
	if !ok {
		return 0
	}
	return c.luminance()
}

// chooseTextColor picks whichever candidate contrasts more with bg.
func chooseTextColor(bg, first, second string) string {
	if contrastRatio(bg, first) >= contrastRatio(bg, second) {
		return first
	}
	return second
}

func contrastRatio(a, b string) float64 {
	hi, lo := relativeLuminance(a), relativeLuminance(b)
	if hi < lo {
		hi, lo = lo, hi
	}
	return (hi + 0.05) / (lo + 0.05)
}
