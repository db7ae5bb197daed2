package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("220"))

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	labelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("220"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 1)

	// Phase badges
	statusRunning  = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	statusWaiting  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	statusApproved = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	statusRejected = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	statusIdle     = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))

	// Log feed colors by agent type
	logThought    = lipgloss.NewStyle().Foreground(lipgloss.Color("246"))
	logTool       = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	logToolResult = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	logSystem     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220"))
	logTimestamp  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))

	badgeCheapest = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	badgeFastest  = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))

	sentimentPositive = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("46"))
	sentimentNegative = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	sentimentNeutral  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("245"))
)

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
