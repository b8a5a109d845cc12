package widgets

import "github.com/charmbracelet/lipgloss"

// ---------------------------------------------------------------------------
// Catppuccin Mocha palette, true-color hex values
// https://catppuccin.com/palette
// ---------------------------------------------------------------------------

const (
	colorPink     lipgloss.Color = "#f5c2e7"
	colorRed      lipgloss.Color = "#f38ba8"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorTeal     lipgloss.Color = "#94e2d5"
	colorLavender lipgloss.Color = "#b4befe"

	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay1 lipgloss.Color = "#7f849c"
	colorSurface2 lipgloss.Color = "#585b70"
	colorSurface0 lipgloss.Color = "#313244"
	colorMantle   lipgloss.Color = "#181825"
)

// ---------------------------------------------------------------------------
// Semantic color aliases
// ---------------------------------------------------------------------------

const (
	colorAccent  = colorPink
	colorFocus   = colorLavender
	colorSuccess = colorGreen
	colorError   = colorRed
	colorWarning = colorYellow
	colorInfo    = colorTeal
)

// AllPaletteColors returns every palette color in use, for testing purposes.
func AllPaletteColors() []lipgloss.Color {
	return []lipgloss.Color{
		colorPink, colorRed, colorYellow, colorGreen, colorTeal, colorLavender,
		colorText, colorSubtext0, colorOverlay1, colorSurface2, colorSurface0, colorMantle,
	}
}

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSurface2).
			Padding(1, 4).
			Align(lipgloss.Center)
	buttonStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSurface2).
			Foreground(colorText).
			Padding(0, ButtonPadding)
	focusedButtonStyle = buttonStyle.
				BorderForeground(colorFocus).
				Foreground(colorFocus).
				Bold(true)
)

var (
	activeTextStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorSuccess)
	inactiveTextStyle = lipgloss.NewStyle().Bold(true).Foreground(colorOverlay1)
	statusStyle       = lipgloss.NewStyle().Foreground(colorSubtext0).Background(colorSurface0).Padding(0, 2)
	errorStyle        = lipgloss.NewStyle().Foreground(colorError).Background(colorSurface0).Padding(0, 2)
	footerStyle       = lipgloss.NewStyle().Foreground(colorText).Background(colorMantle).Padding(0, 2)
	promptStyle       = lipgloss.NewStyle().Foreground(colorAccent)
	keyStyle          = lipgloss.NewStyle().Foreground(colorInfo).Bold(true)
	descStyle         = lipgloss.NewStyle().Foreground(colorSubtext0)
	hintStyle         = lipgloss.NewStyle().Foreground(colorWarning)
)

// StateText styles the state line; active and inactive get distinct colors.
func StateText(text string, active bool) string {
	if active {
		return activeTextStyle.Render(text)
	}
	return inactiveTextStyle.Render(text)
}

// Prompt styles the command prompt prefix.
func Prompt(text string) string { return promptStyle.Render(text) }

// Hint styles a suggestion inside a status line.
func Hint(text string) string { return hintStyle.Render(text) }

// HelpStyles returns the key and description styles used by the footer.
func HelpStyles() (key, desc lipgloss.Style) { return keyStyle, descStyle }
