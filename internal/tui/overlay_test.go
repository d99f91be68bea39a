package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func TestOverlayPlaceAtAnchor(t *testing.T) {
	overlay := NewOverlayModel()

	width := 20
	height := 6
	row := strings.Repeat(".", width)
	base := strings.Repeat(row+"\n", height-1) + row
	got := overlay.Place(base, width, height, "AB\nCD", 3, 2)

	lines := strings.Split(ansi.Strip(got), "\n")
	if len(lines) != height {
		t.Fatalf("expected %d lines, got %d", height, len(lines))
	}
	if lines[2] != "...AB"+strings.Repeat(".", 15) {
		t.Fatalf("line 2 = %q", lines[2])
	}
	if lines[3] != "...CD"+strings.Repeat(".", 15) {
		t.Fatalf("line 3 = %q", lines[3])
	}
	if lines[1] != row {
		t.Fatalf("line 1 = %q, want untouched base", lines[1])
	}
	for i, line := range strings.Split(got, "\n") {
		if w := lipgloss.Width(line); w != width {
			t.Fatalf("line %d width = %d, want %d", i, w, width)
		}
	}
}

func TestOverlayPlaceClampsToArea(t *testing.T) {
	overlay := NewOverlayModel()

	width := 10
	height := 4
	base := strings.Repeat(strings.Repeat(" ", width)+"\n", height-1)
	got := overlay.Place(base, width, height, "XYZ\nXYZ", 9, 3)

	lines := strings.Split(ansi.Strip(got), "\n")
	if lines[2] != "       XYZ" || lines[3] != "       XYZ" {
		t.Fatalf("box not clamped into the bottom-right corner: %q", lines)
	}
}

func TestOverlayPlacePadsRaggedLines(t *testing.T) {
	overlay := NewOverlayModel()
	overlay.SetBackground(lipgloss.Color("#123456"))

	width := 12
	height := 3
	row := strings.Repeat(".", width)
	base := strings.Repeat(row+"\n", height-1) + row
	got := overlay.Place(base, width, height, "long\nx", 0, 0)

	bgSeq := ansi.Style{}.BackgroundColor(ansi.HexColor("#123456")).String()
	lines := strings.Split(got, "\n")
	if !strings.Contains(lines[1], bgSeq) {
		t.Fatalf("expected padded line to use overlay background")
	}
	if strings.Contains(lines[2], bgSeq) {
		t.Fatalf("expected no overlay background outside the box")
	}
}

func TestClampBox(t *testing.T) {
	tests := []struct {
		name              string
		left, top         int
		wantLeft, wantTop int
	}{
		{name: "fits", left: 2, top: 1, wantLeft: 2, wantTop: 1},
		{name: "overflows right", left: 18, top: 1, wantLeft: 15, wantTop: 1},
		{name: "overflows bottom", left: 0, top: 9, wantLeft: 0, wantTop: 7},
		{name: "negative", left: -4, top: -1, wantLeft: 0, wantTop: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			left, top := clampBox(5, 3, tt.left, tt.top, 20, 10)
			if left != tt.wantLeft || top != tt.wantTop {
				t.Fatalf("clampBox() = (%d,%d), want (%d,%d)", left, top, tt.wantLeft, tt.wantTop)
			}
		})
	}
}
