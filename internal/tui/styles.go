package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorTitle   = lipgloss.Color("#7aa2f7")
	colorUser    = lipgloss.Color("#9ece6a")
	colorBuilder = lipgloss.Color("#bb9af7")
	colorRunning = lipgloss.Color("#e0af68")
	colorDone    = lipgloss.Color("#9ece6a")
	colorError   = lipgloss.Color("#f7768e")
	colorDim     = lipgloss.Color("#565f89")
	colorBorder  = lipgloss.Color("#3b4261")
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorTitle)
	userStyle     = lipgloss.NewStyle().Bold(true).Foreground(colorUser)
	builderStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorBuilder)
	runningStyle  = lipgloss.NewStyle().Foreground(colorRunning)
	doneStyle     = lipgloss.NewStyle().Foreground(colorDone)
	errorStyle    = lipgloss.NewStyle().Foreground(colorError)
	dimStyle      = lipgloss.NewStyle().Faint(true).Foreground(colorDim)
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorTitle)
	paneStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorBorder).Padding(0, 1)
)
