package ui

import (
	"github.com/charmbracelet/lipgloss"
)

func renderHelpModal(width, height int, version, license string) string {
	green := lipgloss.NewStyle().
		Bold(true).
		Foreground(successColor)

	title := green.Render("EduMind - Keyboard Shortcuts")

	blue := lipgloss.NewStyle().Foreground(accentColor)

	globalActions := lipgloss.JoinVertical(
		lipgloss.Left,
		blue.Render("## Global Actions"),
		"• Alt+N         New chat",
		"• Alt+S         Session Manager",
		"• Alt+F         Search session",
		"• Alt+Shift+F   Search all sessions",
		"• Alt+D         Study dashboard",
		"• Alt+T         Quiz generator",
		"• Alt+H         Toggle this help",
		"• Alt+Q         Quit",
	)

	chatNavigation := lipgloss.JoinVertical(
		lipgloss.Left,
		blue.Render("## Chat Navigation"),
		"• Alt+J/K       Half page down/up",
		"• PgDn/PgUp     Full page down/up",
		"• Alt+G         Jump to top",
		"• Alt+Shift+G   Jump to bottom",
	)

	chatActions := lipgloss.JoinVertical(
		lipgloss.Left,
		blue.Render("## Chat Actions"),
		"• Enter         Send message",
		"• Alt+Enter     New line",
		"• Alt+Y         Copy last answer",
		"• Alt+C         Copy conversation",
	)

	tips := lipgloss.JoinVertical(
		lipgloss.Left,
		blue.Render("## Tips"),
		"• Text selection works! (Mouse)",
		"• Answers save automatically",
	)

	column1 := lipgloss.JoinVertical(
		lipgloss.Left,
		globalActions,
		"",
		tips,
	)

	column2 := lipgloss.JoinVertical(
		lipgloss.Left,
		chatNavigation,
		"",
		chatActions,
	)

	columnStyle := lipgloss.NewStyle().Width(38).PaddingLeft(4)

	twoColumns := lipgloss.JoinHorizontal(
		lipgloss.Top,
		columnStyle.Render(column1),
		"    ",
		columnStyle.Render(column2),
	)

	dim := lipgloss.NewStyle().Foreground(dimColor)
	footer := dim.Render("      Press Alt+H or Esc to close this help")
	about := dim.Render("EduMind " + version + " · " + license)

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		title,
		"",
		twoColumns,
		"",
		footer,
		about,
	)

	helpBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Padding(1, 2).
		Width(90)

	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		helpBox.Render(content),
	)
}
