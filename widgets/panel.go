package widgets

import "github.com/charmbracelet/lipgloss"

// Panel is the bordered, centered container the toggler renders into.
type Panel struct {
	Lines []string
}

func (p Panel) Render() string {
	if len(p.Lines) == 0 {
		return ""
	}
	return panelStyle.Render(lipgloss.JoinVertical(lipgloss.Center, p.Lines...))
}

// Place centers content in a width x height area. A zero size returns
// content unchanged.
func Place(width, height int, content string) string {
	if width <= 0 || height <= 0 {
		return content
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

// Bar renders a full-width single-line bar for the status or footer row.
func Bar(text string, width int, isError, isFooter bool) string {
	style := statusStyle
	switch {
	case isFooter:
		style = footerStyle
	case isError:
		style = errorStyle
	}
	if width > 0 {
		style = style.Width(width)
	}
	return style.Render(text)
}
