package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"edumind/backend"
)

func renderDashboard(stats *backend.DashboardStats, err error, loading bool, spinnerView string, width, height int) string {
	modalStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(dimColor).
		Padding(1, 2).
		Width(60)

	title := TitleStyle.Render("📊 Study Dashboard")

	var body string
	switch {
	case loading:
		body = fmt.Sprintf("%s Loading statistics...", spinnerView)

	case err != nil:
		body = DangerStyle.Render("Could not load statistics.") + "\n\n" +
			DimStyle.Render(err.Error()) + "\n\n" +
			DimStyle.Render("Is the backend running?")

	case stats == nil:
		body = DimStyle.Render("No statistics available yet.")

	default:
		rows := []string{
			statRow("Study sessions", fmt.Sprintf("%d", stats.TotalStudySessions), trend(stats.Trends.Sessions, "%+.0f this week")),
			statRow("Quizzes completed", fmt.Sprintf("%d", stats.QuizzesCompleted), trend(stats.Trends.Quizzes, "%+.0f this week")),
			statRow("Average score", fmt.Sprintf("%.1f%%", stats.AverageScore), trend(stats.Trends.Score, "%+.1f%%")),
			statRow("Study streak", fmt.Sprintf("%d days", stats.StudyStreak), ""),
		}
		body = lipgloss.JoinVertical(lipgloss.Left, rows...)
	}

	footer := FormatFooter("r", "Refresh", "Esc", "Close")

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		"",
		body,
		"",
		footer,
	)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		modalStyle.Render(content))
}

func statRow(label, value, trendText string) string {
	line := fmt.Sprintf("%-20s %s", label, UserStyle.Render(value))
	if trendText != "" {
		line += "  " + DimStyle.Render(trendText)
	}
	return line
}

func trend(delta float64, format string) string {
	if delta == 0 {
		return ""
	}
	return fmt.Sprintf(format, delta)
}
