package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"edumind/storage"
)

func (a AppView) handleSessionManagerUpdate(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Delete confirmation takes precedence
	if a.confirmDeleteSession != nil {
		switch msg.String() {
		case "y":
			id := a.confirmDeleteSession.ID
			a.confirmDeleteSession = nil
			return a, a.dataModel.DeleteSessionCmd(id)
		case "n", "esc":
			a.confirmDeleteSession = nil
			return a, nil
		}
		return a, nil
	}

	// Rename mode captures all typing
	if a.sessionRenameMode {
		switch msg.String() {
		case "enter":
			list := a.getSessionList()
			name := strings.TrimSpace(a.sessionRenameInput.Value())
			a.sessionRenameMode = false
			a.sessionRenameInput.Blur()
			if name != "" && a.selectedSessionIdx < len(list) {
				return a, a.dataModel.RenameSessionCmd(list[a.selectedSessionIdx].ID, name)
			}
			return a, nil
		case "esc":
			a.sessionRenameMode = false
			a.sessionRenameInput.Blur()
			return a, nil
		}

		var cmd tea.Cmd
		a.sessionRenameInput, cmd = a.sessionRenameInput.Update(msg)
		return a, cmd
	}

	// Filter mode captures typing but leaves navigation keys alone
	if a.sessionFilterMode {
		switch msg.String() {
		case "enter", "esc":
			if msg.String() == "esc" {
				a.sessionFilterMode = false
				a.sessionFilterInput.SetValue("")
				a.filteredSessionList = a.sessionList
			}
			a.sessionFilterInput.Blur()
			if msg.String() == "esc" {
				return a, nil
			}
			// Enter leaves filter applied and moves focus to the list
			a.sessionFilterMode = false
			return a, nil
		}

		var cmd tea.Cmd
		a.sessionFilterInput, cmd = a.sessionFilterInput.Update(msg)

		filterValue := a.sessionFilterInput.Value()
		if filterValue == "" {
			a.filteredSessionList = a.sessionList
		} else {
			targets := make([]string, len(a.sessionList))
			for i, s := range a.sessionList {
				targets[i] = s.Name
			}

			matches := fuzzy.Find(filterValue, targets)
			a.filteredSessionList = make([]storage.SessionMetadata, len(matches))
			for i, match := range matches {
				a.filteredSessionList[i] = a.sessionList[match.Index]
			}
		}

		list := a.getSessionList()
		if a.selectedSessionIdx >= len(list) && len(list) > 0 {
			a.selectedSessionIdx = len(list) - 1
		}

		return a, cmd
	}

	list := a.getSessionList()

	switch msg.String() {
	case "esc":
		a.showSessionManager = false
		a.sessionFilterInput.SetValue("")
		a.filteredSessionList = nil
		return a, nil

	case "j", "down":
		if a.selectedSessionIdx < len(list)-1 {
			a.selectedSessionIdx++
		}
		return a, nil

	case "k", "up":
		if a.selectedSessionIdx > 0 {
			a.selectedSessionIdx--
		}
		return a, nil

	case "/":
		a.sessionFilterMode = true
		a.sessionFilterInput.Focus()
		return a, nil

	case "r":
		if a.selectedSessionIdx < len(list) {
			a.sessionRenameMode = true
			a.sessionRenameInput.SetValue(list[a.selectedSessionIdx].Name)
			a.sessionRenameInput.Focus()
		}
		return a, nil

	case "d":
		if a.selectedSessionIdx < len(list) {
			selected := list[a.selectedSessionIdx]
			a.confirmDeleteSession = &selected
		}
		return a, nil

	case "enter":
		if a.selectedSessionIdx < len(list) {
			return a, a.dataModel.LoadSessionCmd(list[a.selectedSessionIdx].ID)
		}
		return a, nil
	}

	return a, nil
}

func (a AppView) handleMessageSearchUpdate(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.showMessageSearch = false
		a.messageSearchInput.Blur()
		return a, nil

	case "alt+j", "down":
		if a.selectedSearchIdx < len(a.messageSearchResults)-1 {
			a.selectedSearchIdx++
			if a.selectedSearchIdx >= a.messageSearchScrollIdx+5 {
				a.messageSearchScrollIdx++
			}
		}
		return a, nil

	case "alt+k", "up":
		if a.selectedSearchIdx > 0 {
			a.selectedSearchIdx--
			if a.selectedSearchIdx < a.messageSearchScrollIdx {
				a.messageSearchScrollIdx--
			}
		}
		return a, nil

	case "enter":
		a.showMessageSearch = false
		a.messageSearchInput.Blur()
		return a, nil
	}

	var cmd tea.Cmd
	a.messageSearchInput, cmd = a.messageSearchInput.Update(msg)

	// Search the live transcript directly; no round trip needed
	transcript := a.dataModel.Store.Snapshot()
	messages := make([]storage.Message, len(transcript))
	for i, m := range transcript {
		messages[i] = storage.Message{
			ID:        m.ID,
			Role:      string(m.Role),
			Content:   m.Content,
			Timestamp: m.CreatedAt,
		}
	}
	a.messageSearchResults = storage.SearchMessages(messages, a.messageSearchInput.Value())
	a.selectedSearchIdx = 0
	a.messageSearchScrollIdx = 0

	return a, cmd
}

func (a AppView) handleGlobalSearchUpdate(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.showGlobalSearch = false
		a.globalSearchInput.Blur()
		return a, nil

	case "alt+j", "down":
		if a.selectedGlobalIdx < len(a.globalSearchResults)-1 {
			a.selectedGlobalIdx++
			if a.selectedGlobalIdx >= a.globalSearchScrollIdx+5 {
				a.globalSearchScrollIdx++
			}
		}
		return a, nil

	case "alt+k", "up":
		if a.selectedGlobalIdx > 0 {
			a.selectedGlobalIdx--
			if a.selectedGlobalIdx < a.globalSearchScrollIdx {
				a.globalSearchScrollIdx--
			}
		}
		return a, nil

	case "enter":
		if a.selectedGlobalIdx < len(a.globalSearchResults) {
			match := a.globalSearchResults[a.selectedGlobalIdx]
			return a, a.dataModel.LoadSessionCmd(match.SessionID)
		}
		return a, nil
	}

	var cmd tea.Cmd
	a.globalSearchInput, cmd = a.globalSearchInput.Update(msg)

	query := a.globalSearchInput.Value()
	if query == "" {
		a.globalSearchResults = nil
		a.selectedGlobalIdx = 0
		a.globalSearchScrollIdx = 0
		return a, cmd
	}

	return a, tea.Batch(cmd, a.dataModel.SearchSessionsCmd(query))
}

func (a AppView) handleDashboardUpdate(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		a.showDashboard = false
		return a, nil

	case "r":
		a.dashboardLoading = true
		a.dashboardErr = nil
		return a, tea.Batch(a.loadingSpinner.Tick, a.dataModel.LoadStatsCmd())
	}
	return a, nil
}
