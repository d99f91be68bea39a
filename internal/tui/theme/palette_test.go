package theme

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestNewPalette_TileShades(t *testing.T) {
	base := &Theme{
		Bg:          "#101010",
		BgHighlight: "#202020",
		BgSelection: "#303030",
		Fg:          "#ffffff",
		FgMuted:     "#aaaaaa",
		Accent:      "#ff0000",
		App:         "#112233",
		File:        "#445566",
		Shortcut:    "#778899",
		Warning:     "#888888",
	}

	palette := NewPalette(base)

	if palette.AppBg != lipgloss.Color(darkenColor(base.App)) {
		t.Fatalf("AppBg = %q, want %q", palette.AppBg, darkenColor(base.App))
	}
	if palette.FileBg != lipgloss.Color(darkenColor(base.File)) {
		t.Fatalf("FileBg = %q, want %q", palette.FileBg, darkenColor(base.File))
	}
	if palette.ShortcutBg != lipgloss.Color(darkenColor(base.Shortcut)) {
		t.Fatalf("ShortcutBg = %q, want %q", palette.ShortcutBg, darkenColor(base.Shortcut))
	}
}

func TestNewPalette_MenuFallbacks(t *testing.T) {
	base := &Theme{
		Bg:          "#101010",
		BgHighlight: "#202020",
		BgSelection: "#303030",
		Fg:          "#ffffff",
		FgMuted:     "#aaaaaa",
		Accent:      "#ff0000",
		App:         "#00ff00",
		Warning:     "#ff00ff",
	}

	palette := NewPalette(base)
	if palette.Menu.Bg != lipgloss.Color(base.BgHighlight) {
		t.Fatalf("Menu.Bg = %q, want %q", palette.Menu.Bg, base.BgHighlight)
	}
	if palette.Menu.Border.Dark != base.Accent {
		t.Fatalf("Menu.Border.Dark = %q, want %q", palette.Menu.Border.Dark, base.Accent)
	}
	if palette.Drop != lipgloss.Color(base.Accent) {
		t.Fatalf("Drop = %q, want accent %q", palette.Drop, base.Accent)
	}
	if palette.FileBg != palette.AppBg {
		t.Fatalf("FileBg = %q, want AppBg %q when file color is unset", palette.FileBg, palette.AppBg)
	}
}

func TestNewPalette_LightThemeLightensTiles(t *testing.T) {
	base := &Theme{
		Bg:          "#f5f5f5",
		BgHighlight: "#eeeeee",
		BgSelection: "#e0e0e0",
		Fg:          "#222222",
		FgMuted:     "#555555",
		Accent:      "#2f6feb",
		App:         "#1d8a8a",
		File:        "#2f8f2f",
		Shortcut:    "#c97b00",
		Warning:     "#c2410c",
	}

	palette := NewPalette(base)
	if relativeLuminance(string(palette.AppBg)) <= relativeLuminance(base.App) {
		t.Fatalf("AppBg luminance = %f, want greater than App", relativeLuminance(string(palette.AppBg)))
	}
	if relativeLuminance(string(palette.FileBg)) <= relativeLuminance(base.File) {
		t.Fatalf("FileBg luminance = %f, want greater than File", relativeLuminance(string(palette.FileBg)))
	}
}

func TestPaletteGhost(t *testing.T) {
	base := &Theme{
		Bg:       "#000000",
		Fg:       "#ffffff",
		Accent:   "#ff0000",
		App:      "#ffffff",
		Shortcut: "#ffffff",
	}
	palette := NewPalette(base)

	if got := palette.Ghost("app", 1); got != palette.AppBg {
		t.Fatalf("Ghost(app, 1) = %q, want %q", got, palette.AppBg)
	}
	if got := palette.Ghost("app", 0); got != lipgloss.Color(base.Bg) {
		t.Fatalf("Ghost(app, 0) = %q, want canvas %q", got, base.Bg)
	}
	if got := palette.Ghost("unknown", 1); got != palette.AppBg {
		t.Fatalf("Ghost(unknown, 1) = %q, want app fallback %q", got, palette.AppBg)
	}
}

func TestChooseTextColorPrefersContrast(t *testing.T) {
	bg := "#f0f0f0"
	lightText := "#ffffff"
	darkText := "#111111"

	if got := chooseTextColor(bg, lightText, darkText); got != darkText {
		t.Fatalf("chooseTextColor(%q, %q, %q) = %q, want %q", bg, lightText, darkText, got, darkText)
	}
}

func TestDarkenColor(t *testing.T) {
	tests := map[string]string{
		"#ff8040": "#7f4028", // halves, blue floored at 40
		"#000000": "#282828",
		"#FFFFFF": "#7f7f7f",
		"nothex":  "nothex",
		"#12345":  "#12345",
	}
	for in, want := range tests {
		if got := darkenColor(in); got != want {
			t.Errorf("darkenColor(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestBlendColors(t *testing.T) {
	if got := blendColors("#000000", "#ffffff", 0.5); got != "#7f7f7f" {
		t.Errorf("midpoint = %q", got)
	}
	if got := blendColors("#102030", "#ffffff", -1); got != "#102030" {
		t.Errorf("ratio below 0 = %q, want first color", got)
	}
	if got := blendColors("#102030", "#ffffff", 3); got != "#ffffff" {
		t.Errorf("ratio above 1 = %q, want second color", got)
	}
	if got := blendColors("#102030", "zzz", 0.5); got != "#102030" {
		t.Errorf("invalid second color = %q, want first unchanged", got)
	}
}
