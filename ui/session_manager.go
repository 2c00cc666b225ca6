package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"edumind/storage"
)

func renderSessionManager(sessions []storage.SessionMetadata, selectedIdx int, currentSessionID string, renameMode bool, renameInput textinput.Model, filterMode bool, filterInput textinput.Model, confirmDelete *storage.SessionMetadata, width, height int) string {
	modalWidth := width - 10
	if modalWidth > 110 {
		modalWidth = 110
	}
	modalHeight := height - 6

	// Show delete confirmation if set
	if confirmDelete != nil {
		warningText := lipgloss.NewStyle().Foreground(dangerColor).Render("This action cannot be undone.")
		message := fmt.Sprintf("Are you sure you want to delete:\n\n\"%s\"\n\n%s\n\n%s",
			confirmDelete.Name,
			warningText,
			FormatFooter("y", "Delete", "n/Esc", "Cancel"))

		box := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(dangerColor).
			Padding(1, 2).
			Render(TitleStyle.Render("⚠ Delete Session") + "\n\n" + message)

		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
	}

	// Title section (no borders)
	titleSection := lipgloss.NewStyle().
		Bold(true).
		Align(lipgloss.Center).
		Width(modalWidth).
		Render("Session Manager")

	// Header: show filter input or count
	var header string
	if filterMode {
		header = filterInput.View()
	} else {
		header = fmt.Sprintf("%d sessions", len(sessions))
	}

	headerSection := lipgloss.NewStyle().
		Foreground(dimColor).
		Align(lipgloss.Center).
		Width(modalWidth).
		BorderTop(true).
		BorderBottom(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(dimColor).
		Render(header)

	var sessionLines []string
	maxLines := modalHeight - 8

	if len(sessions) == 0 {
		emptyMsg := "No sessions yet. Start chatting to create one!"
		if filterMode {
			emptyMsg = "No matches found"
		}
		sessionLines = append(sessionLines, lipgloss.NewStyle().
			Foreground(dimColor).
			Italic(true).
			Align(lipgloss.Center).
			Width(modalWidth).
			Render(emptyMsg))
	} else {
		startIdx := 0
		endIdx := len(sessions)

		// Scroll window centered on the selection
		if len(sessions) > maxLines {
			if selectedIdx < maxLines/2 {
				endIdx = maxLines
			} else if selectedIdx >= len(sessions)-maxLines/2 {
				startIdx = len(sessions) - maxLines
			} else {
				startIdx = selectedIdx - maxLines/2
				endIdx = startIdx + maxLines
			}
		}

		for i := startIdx; i < endIdx && i < len(sessions); i++ {
			session := sessions[i]

			indicator := "  "
			if i == selectedIdx {
				indicator = "▶ "
			}

			maxNameWidth := modalWidth - 36

			var nameDisplay string
			if renameMode && i == selectedIdx {
				nameDisplay = lipgloss.NewStyle().
					Foreground(accentColor).
					Bold(true).
					Render(renameInput.View())
			} else {
				nameDisplay = runewidth.Truncate(session.Name, maxNameWidth, "...")
			}

			currentMarker := ""
			if session.ID == currentSessionID && !renameMode {
				currentMarker = UserStyle.Render(" ●")
			}

			msgCount := fmt.Sprintf("%d msgs", session.MessageCount)
			if session.MessageCount == 1 {
				msgCount = "1 msg"
			}

			meta := DimStyle.Render(fmt.Sprintf("%-8s %s", msgCount, session.UpdatedAt.Format("Jan 2 15:04")))

			line := fmt.Sprintf("%s%s%s  %s", indicator, nameDisplay, currentMarker, meta)
			if i == selectedIdx && !renameMode {
				line = SelectedStyle.Render(line)
			}
			sessionLines = append(sessionLines, line)
		}
	}

	listSection := lipgloss.JoinVertical(lipgloss.Left, sessionLines...)

	footer := FormatFooter("j/k", "Navigate", "Enter", "Open", "r", "Rename", "d", "Delete", "/", "Filter", "Esc", "Close")
	footerSection := lipgloss.NewStyle().
		Align(lipgloss.Center).
		Width(modalWidth).
		Render(footer)

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		titleSection,
		headerSection,
		"",
		listSection,
		"",
		footerSection,
	)

	modalStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(dimColor).
		Padding(1, 2)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		modalStyle.Width(modalWidth).Render(content))
}
