package view

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// TileLabel lays out an item title and a subtitle inside a width x height
// tile. The title wraps on spaces; the subtitle takes the last line when
// there is room for both.
func TileLabel(title, subtitle string, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	withSub := subtitle != "" && height > 1
	titleRows := height
	if withSub {
		titleRows--
	}
	lines := ClampLines(wrapWords(title, width), titleRows, width)
	if withSub {
		lines = append(lines, runewidth.Truncate(subtitle, width, "…"))
	}
	return strings.Join(lines, "\n")
}

// ClampLines keeps at most maxLines lines, marking the last kept line with
// an ellipsis when something was dropped.
func ClampLines(lines []string, maxLines, width int) []string {
	if maxLines <= 0 {
		return nil
	}
	if len(lines) <= maxLines {
		return lines
	}
	out := make([]string, maxLines)
	copy(out, lines)
	out[maxLines-1] = withEllipsis(out[maxLines-1], width)
	return out
}

// wrapWords greedily fills lines of at most width cells. A word wider than
// a whole line is split across lines.
func wrapWords(s string, width int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return []string{""}
	}
	var (
		lines []string
		cur   strings.Builder
		used  int
	)
	flush := func() {
		lines = append(lines, cur.String())
		cur.Reset()
		used = 0
	}
	for _, w := range words {
		ww := runewidth.StringWidth(w)
		if used > 0 && used+1+ww <= width {
			cur.WriteByte(' ')
			cur.WriteString(w)
			used += 1 + ww
			continue
		}
		if used > 0 {
			flush()
		}
		for ww > width {
			head := runewidth.Truncate(w, width, "")
			if head == "" {
				// A single rune wider than the tile.
				head = string([]rune(w)[:1])
			}
			lines = append(lines, head)
			w = w[len(head):]
			ww = runewidth.StringWidth(w)
		}
		cur.WriteString(w)
		used = ww
	}
	if used > 0 {
		flush()
	}
	return lines
}

func withEllipsis(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) < width {
		return s + "…"
	}
	return runewidth.Truncate(s, width-1, "") + "…"
}
