package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	headingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99"))

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	selectedCardStyle = cardStyle.
				BorderForeground(lipgloss.Color("205"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	badgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 1)

	navActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	navStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("238"))

	statusPendenteStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	statusAndamentoStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	statusConcluidaStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))

	calendarDayStyle      = lipgloss.NewStyle().Width(4).Align(lipgloss.Center)
	calendarMarkedStyle   = calendarDayStyle.Foreground(lipgloss.Color("205")).Bold(true)
	calendarCursorStyle   = calendarDayStyle.Reverse(true)
	calendarSelectedStyle = calendarDayStyle.Background(lipgloss.Color("57")).Foreground(lipgloss.Color("229"))
)
