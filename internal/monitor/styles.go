package monitor

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary   = lipgloss.Color("62")  // purple
	colorSecondary = lipgloss.Color("241") // gray
	colorHighlight = lipgloss.Color("212") // pink
	colorGood      = lipgloss.Color("42")  // green
	colorBad       = lipgloss.Color("196") // red
)

var headerStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255")).
	Background(colorPrimary).
	Padding(0, 1)

var labelStyle = lipgloss.NewStyle().
	Foreground(colorSecondary)

var valueStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Bold(true)

var goodStyle = lipgloss.NewStyle().Foreground(colorGood)

var badStyle = lipgloss.NewStyle().Foreground(colorBad)

var eventRowStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("252")).
	Padding(0, 1)

var panelStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorPrimary).
	Padding(1, 2)

var helpStyle = lipgloss.NewStyle().
	Foreground(colorHighlight).
	Padding(1, 2)
