package widgets

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// ButtonPadding is the horizontal padding inside a button border.
const ButtonPadding = 2

// Button is a bordered, one-line label. Focus changes its border color.
type Button struct {
	Label   string
	Focused bool
}

func (b Button) Render() string {
	if b.Focused {
		return focusedButtonStyle.Render(b.Label)
	}
	return buttonStyle.Render(b.Label)
}

// ButtonAt finds which label's button box covers cell (x, y) of rendered
// output. Boxes are located by searching the ANSI-stripped text for each
// label; the box spans the border and padding around it. It returns the
// label's index or -1.
func ButtonAt(rendered string, labels []string, x, y int) int {
	if x < 0 || y < 0 || rendered == "" {
		return -1
	}
	lines := strings.Split(ansi.Strip(rendered), "\n")
	for row := y - 1; row <= y+1; row++ {
		if row < 0 || row >= len(lines) {
			continue
		}
		line := lines[row]
		for i, label := range labels {
			idx := strings.Index(line, label)
			if idx < 0 {
				continue
			}
			col := ansi.StringWidth(line[:idx])
			left := col - ButtonPadding - 1
			right := col + ansi.StringWidth(label) + ButtonPadding
			if x >= left && x <= right {
				return i
			}
		}
	}
	return -1
}
