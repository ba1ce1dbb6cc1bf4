package tui

import "github.com/charmbracelet/lipgloss"

// Palette mirrors the web page: pink/amber/blue on neutral surfaces, with
// adaptive colors so both light and dark terminals stay readable.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

var (
	colorPink   = ac("#c2185b", "#ff6b9a")
	colorAmber  = ac("#b26a00", "#ffbd59")
	colorBlue   = ac("#0b4a7d", "#3ec5ff")
	colorMuted  = ac("240", "243")
	colorError  = ac("#8a1c1c", "#ff8a80")
	colorBorder = ac("250", "238")
)

var (
	styleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorPink)
	styleSub   = lipgloss.NewStyle().Foreground(colorMuted)
	styleName  = lipgloss.NewStyle().Bold(true).Foreground(colorBlue)
	styleLabel = lipgloss.NewStyle().Foreground(colorMuted)
	styleError = lipgloss.NewStyle().Foreground(colorError)
	styleInfo  = lipgloss.NewStyle().Foreground(colorBlue)
	styleParty = lipgloss.NewStyle().Bold(true).Foreground(colorAmber)
	styleHelp  = lipgloss.NewStyle().Foreground(colorMuted)
	stylePane  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)
)
