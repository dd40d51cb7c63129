package render

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// wrapText 按显示宽度硬换行。回复里的缩进有意义，所以不做按词换行，也不折叠空白。
func wrapText(text string, width int) []string {
	if width <= 0 {
		return strings.Split(text, "\n")
	}
	lines := []string{}
	for _, raw := range strings.Split(text, "\n") {
		lines = append(lines, wrapLine(raw, width)...)
	}
	return lines
}

func wrapLine(line string, width int) []string {
	if width <= 0 || runewidth.StringWidth(line) <= width {
		return []string{line}
	}
	out := []string{}
	var current strings.Builder
	cells := 0
	for _, r := range line {
		w := runewidth.RuneWidth(r)
		if cells+w > width && cells > 0 {
			out = append(out, current.String())
			current.Reset()
			cells = 0
		}
		current.WriteRune(r)
		cells += w
	}
	if current.Len() > 0 {
		out = append(out, current.String())
	}
	return out
}
