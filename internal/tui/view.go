package tui

import (
	"fmt"

	"github.com/jask/toggler/internal/machine"
	"github.com/jask/toggler/widgets"
)

const (
	activeText   = "State is ACTIVE!"
	inactiveText = "State is INACTIVE!"
)

func (m *Model) View() string {
	widget := renderWidget(m.machine.State(), m.focus)
	if widget == "" {
		return ""
	}
	return m.placeBody(widget) + "\n" + m.renderStatus() + "\n" + m.renderFooter()
}

// renderWidget draws the panel for state, or nothing for a state the table
// does not know.
func renderWidget(state machine.State, focus int) string {
	var text string
	switch state {
	case machine.StateActive:
		text = widgets.StateText(activeText, true)
	case machine.StateInactive:
		text = widgets.StateText(inactiveText, false)
	default:
		return ""
	}
	lines := []string{text, ""}
	for i, b := range buttons {
		lines = append(lines, widgets.Button{Label: b.label, Focused: i == focus}.Render())
	}
	return widgets.Panel{Lines: lines}.Render()
}

func (m *Model) body() string {
	return m.placeBody(renderWidget(m.machine.State(), m.focus))
}

func (m *Model) placeBody(widget string) string {
	if m.width == 0 || m.height == 0 {
		return widget
	}
	return widgets.Place(m.width, max(1, m.height-2), widget)
}

func (m *Model) renderStatus() string {
	if m.prompting {
		return widgets.Bar(m.prompt.View(), m.width, false, false)
	}
	text := m.status
	if text == "" {
		text = "Ready."
	}
	if m.hint != "" {
		text += "  " + widgets.Hint(m.hint)
	}
	if m.transitions > 0 {
		text += fmt.Sprintf("  (%d transitions)", m.transitions)
	}
	return widgets.Bar(text, m.width, m.statusErr, false)
}

func (m *Model) renderFooter() string {
	scope := scopeButtons
	if m.prompting {
		scope = scopePrompt
	}
	return widgets.Bar(m.help.ShortHelpView(m.keys.HelpBindings(scope)), m.width, false, true)
}
