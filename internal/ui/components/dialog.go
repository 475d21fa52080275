package components

import (
	"github.com/charmbracelet/lipgloss"
)

var dialogStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("#2c333a")).
	Padding(1, 2).
	Width(44)

// ConfirmDialog renders a yes/no confirmation.
func ConfirmDialog(title, message string) string {
	header := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#4f9cc8")).
		Bold(true).
		Render(title)

	body := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#969bab")).
		Render(message)

	hint := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#969bab")).
		Render("\ny: confirm | n: cancel")

	return dialogStyle.Render(header + "\n\n" + body + hint)
}

// DangerConfirmDialog is ConfirmDialog with a red header, for destructive
// actions like deletes.
func DangerConfirmDialog(title, message string) string {
	header := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#dd7070")).
		Bold(true).
		Render(title)

	body := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#969bab")).
		Render(message)

	hint := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#969bab")).
		Render("\ny: confirm | n: cancel")

	return dialogStyle.BorderForeground(lipgloss.Color("#7a3030")).
		Render(header + "\n\n" + body + hint)
}
