package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"edumind/config"
	"edumind/conversation"
	appmodel "edumind/model"
)

func (a AppView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	// Update spinner FIRST so TickMsg keeps the animation running while
	// anything is in flight. The viewport refresh here is also what makes
	// the user message appear as soon as the controller appends it.
	if a.dataModel.Controller.Pending() || a.quizState.Generating || a.dashboardLoading {
		a.loadingSpinner, cmd = a.loadingSpinner.Update(msg)
		cmds = append(cmds, cmd)
		if a.dataModel.Controller.Pending() {
			a.updateViewportContent(true)
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

		// Reserve space for title (1), separator (1), textarea (3), and status bar (1)
		viewportHeight := a.height - 6
		a.viewport.Width = a.width
		a.viewport.Height = viewportHeight
		a.textarea.SetWidth(a.width)

		a.ready = true
		a.updateViewportContent(true)

		// Render markdown for restored messages once we know the width
		var renderCmds []tea.Cmd
		for _, m := range a.dataModel.Store.Snapshot() {
			if m.Role == conversation.RoleAssistant && m.FullyVisible() {
				if _, ok := a.rendered[m.ID]; !ok {
					renderCmds = append(renderCmds, a.renderMarkdownAsync(m.ID, m.Content))
				}
			}
		}
		if len(renderCmds) > 0 {
			return a, tea.Batch(renderCmds...)
		}
		return a, nil

	case tea.KeyMsg:
		// PRIORITY 0: Always-global shortcuts (quit, help toggle)
		if msg.String() == "alt+q" || msg.String() == "ctrl+c" {
			if a.dataModel.SessionDirty() {
				return a, tea.Sequence(a.dataModel.AutoSaveSession(), tea.Quit)
			}
			return a, tea.Quit
		}

		// PRIORITY 1: Modal toggle shortcuts (close current modal, open new one)
		switch msg.String() {
		case "alt+h":
			a.showHelp = !a.showHelp
			return a, nil

		case "alt+n":
			a.closeAllModals()
			a.notice = ""
			a.rendered = make(map[string]string)
			a.revealTarget = ""
			// Save synchronously before the store is replaced
			if a.dataModel.SessionDirty() {
				_ = a.dataModel.AutoSaveSession()()
			}
			a.dataModel.NewSession()
			a.textarea.Reset()
			a.updateViewportContent(true)
			return a, nil

		case "alt+s":
			wasOpen := a.showSessionManager
			a.closeAllModals()
			a.showSessionManager = !wasOpen
			if a.showSessionManager {
				return a, a.dataModel.ListSessionsCmd()
			}
			return a, nil

		case "alt+f":
			wasOpen := a.showMessageSearch
			a.closeAllModals()
			a.showMessageSearch = !wasOpen
			if a.showMessageSearch {
				a.messageSearchInput.Focus()
				a.messageSearchInput.SetValue("")
				a.messageSearchResults = nil
				a.selectedSearchIdx = 0
				a.messageSearchScrollIdx = 0
			}
			return a, nil

		case "alt+F":
			wasOpen := a.showGlobalSearch
			a.closeAllModals()
			a.showGlobalSearch = !wasOpen
			if a.showGlobalSearch {
				a.globalSearchInput.Focus()
				a.globalSearchInput.SetValue("")
				a.globalSearchResults = nil
				a.selectedGlobalIdx = 0
				a.globalSearchScrollIdx = 0
				return a, nil
			}
			return a, nil

		case "alt+d":
			wasOpen := a.showDashboard
			a.closeAllModals()
			a.showDashboard = !wasOpen
			if a.showDashboard {
				a.dashboardLoading = true
				a.dashboardErr = nil
				return a, tea.Batch(a.loadingSpinner.Tick, a.dataModel.LoadStatsCmd())
			}
			return a, nil

		case "alt+t":
			wasOpen := a.showQuizModal
			a.closeAllModals()
			a.showQuizModal = !wasOpen
			if a.showQuizModal {
				a.quizState.Reset()
				a.quizState.Focus()
			}
			return a, nil
		}

		// PRIORITY 2: Modal-specific key handling (order matches View rendering)
		if a.showHelp {
			if msg.String() == "esc" {
				a.showHelp = false
			}
			return a, nil
		}

		if a.showSessionManager {
			return a.handleSessionManagerUpdate(msg)
		}

		if a.showGlobalSearch {
			return a.handleGlobalSearchUpdate(msg)
		}

		if a.showMessageSearch {
			return a.handleMessageSearchUpdate(msg)
		}

		if a.showDashboard {
			return a.handleDashboardUpdate(msg)
		}

		if a.showQuizModal {
			return a.handleQuizModalUpdate(msg)
		}

		// PRIORITY 3: Tab inserts spaces in chat input
		if msg.String() == "tab" {
			a.textarea.InsertString("   ")
			return a, nil
		}

		// Handle Enter for sending - DON'T let textarea process it.
		// Alt+Enter passes through for newlines.
		if msg.Type == tea.KeyEnter && !msg.Alt {
			if a.dataModel.Controller.Pending() {
				// A question is already in flight; the controller would
				// ignore a second submit anyway.
				return a, nil
			}

			question := a.textarea.Value()
			a.textarea.Reset()
			a.notice = ""

			if config.DebugLog != nil {
				config.DebugLog.Printf("[UI] Enter pressed - submitting question (%d chars)", len(question))
			}

			return a, tea.Batch(
				a.dataModel.SubmitCmd(question),
				a.loadingSpinner.Tick,
			)
		}

		switch msg.String() {
		case "alt+y":
			// Copy last assistant reply
			messages := a.dataModel.Store.Snapshot()
			for i := len(messages) - 1; i >= 0; i-- {
				if messages[i].Role == conversation.RoleAssistant {
					clipboard.WriteAll(messages[i].Content)
					a.notice = "Copied last answer."
					return a, nil
				}
			}
			return a, nil

		case "alt+c":
			// Copy whole conversation
			var allText strings.Builder
			for _, m := range a.dataModel.Store.Snapshot() {
				role := "System"
				switch m.Role {
				case conversation.RoleUser:
					role = "You"
				case conversation.RoleAssistant:
					role = "Assistant"
				}
				allText.WriteString(fmt.Sprintf("[%s] %s:\n%s\n\n",
					m.CreatedAt.Format("15:04"),
					role,
					m.Content))
			}
			clipboard.WriteAll(allText.String())
			a.notice = "Copied conversation."
			return a, nil

		case "alt+j", "alt+down":
			a.viewport.HalfViewDown()
			return a, nil

		case "alt+k", "alt+up":
			a.viewport.HalfViewUp()
			return a, nil

		case "alt+J", "pgdown":
			a.viewport.ViewDown()
			return a, nil

		case "alt+K", "pgup":
			a.viewport.ViewUp()
			return a, nil

		case "alt+g":
			a.viewport.GotoTop()
			return a, nil

		case "alt+G":
			a.viewport.GotoBottom()
			return a, nil
		}

	case appmodel.SubmitDoneMsg:
		if msg.Err != nil {
			if errors.Is(msg.Err, conversation.ErrEmptyInput) {
				a.notice = "Type a question first."
			}
			return a, nil
		}

		a.updateViewportContent(true)

		// Start the typewriter reveal for the reply that just arrived.
		// The generation ties the tick chain to this job; a newer reply
		// bumps it and leftover ticks become no-ops.
		generation, active := a.dataModel.Scheduler.Job()
		if !active {
			return a, a.finalizeLastReply()
		}

		a.revealGen = generation
		a.revealTarget = a.dataModel.Scheduler.TargetID()

		interval := a.dataModel.Scheduler.Interval()
		return a, tea.Tick(interval, func(time.Time) tea.Msg {
			return revealTickMsg{generation: generation}
		})

	case revealTickMsg:
		if msg.generation != a.revealGen {
			return a, nil
		}

		more := a.dataModel.Scheduler.Tick(msg.generation)
		a.updateViewportContent(true)

		if more {
			interval := a.dataModel.Scheduler.Interval()
			generation := msg.generation
			return a, tea.Tick(interval, func(time.Time) tea.Msg {
				return revealTickMsg{generation: generation}
			})
		}

		// Reveal finished - render markdown and autosave
		targetID := a.revealTarget
		a.revealTarget = ""
		if m, ok := a.dataModel.Store.Get(targetID); ok && m.FullyVisible() {
			return a, tea.Batch(
				a.renderMarkdownAsync(m.ID, m.Content),
				a.dataModel.AutoSaveSession(),
			)
		}
		return a, nil

	case markdownRenderedMsg:
		a.rendered[msg.MessageID] = msg.Rendered
		a.updateViewportContent(true)
		return a, nil

	case appmodel.HealthMsg:
		a.healthChecked = true
		a.healthErr = msg.Err
		return a, nil

	case appmodel.SessionsListMsg:
		if msg.Err != nil {
			if config.DebugLog != nil {
				config.DebugLog.Printf("[UI] error fetching sessions: %v", msg.Err)
			}
			return a, nil
		}
		a.sessionList = msg.Sessions
		a.selectedSessionIdx = 0
		if a.showSessionManager && a.dataModel.CurrentSession != nil {
			for i, session := range msg.Sessions {
				if session.ID == a.dataModel.CurrentSession.ID {
					a.selectedSessionIdx = i
					break
				}
			}
		}
		return a, nil

	case appmodel.SessionLoadedMsg:
		if msg.Err != nil {
			if config.DebugLog != nil {
				config.DebugLog.Printf("[UI] error loading session: %v", msg.Err)
			}
			return a, nil
		}
		// Save the outgoing transcript before the store is replaced
		if a.dataModel.SessionDirty() {
			_ = a.dataModel.AutoSaveSession()()
		}
		a.dataModel.SwitchSession(msg.Session)
		a.rendered = make(map[string]string)
		a.revealTarget = ""
		a.showSessionManager = false
		a.showGlobalSearch = false
		a.updateViewportContent(true)

		var renderCmds []tea.Cmd
		for _, m := range a.dataModel.Store.Snapshot() {
			if m.Role == conversation.RoleAssistant {
				renderCmds = append(renderCmds, a.renderMarkdownAsync(m.ID, m.Content))
			}
		}
		return a, tea.Batch(renderCmds...)

	case appmodel.SessionSavedMsg:
		if msg.Err != nil && config.DebugLog != nil {
			config.DebugLog.Printf("[UI] session save failed: %v", msg.Err)
		}
		return a, nil

	case appmodel.SessionRenamedMsg:
		if msg.Err == nil && a.showSessionManager {
			return a, a.dataModel.ListSessionsCmd()
		}
		return a, nil

	case appmodel.SessionDeletedMsg:
		if msg.Err == nil {
			a.updateViewportContent(true)
			if a.showSessionManager {
				return a, a.dataModel.ListSessionsCmd()
			}
		}
		return a, nil

	case appmodel.SearchResultsMsg:
		if msg.Err != nil {
			if config.DebugLog != nil {
				config.DebugLog.Printf("[UI] search failed: %v", msg.Err)
			}
			return a, nil
		}
		// Only apply results for the query still in the input
		if a.showGlobalSearch && msg.Query == a.globalSearchInput.Value() {
			a.globalSearchResults = msg.Matches
			a.selectedGlobalIdx = 0
			a.globalSearchScrollIdx = 0
		}
		return a, nil

	case appmodel.StatsLoadedMsg:
		a.dashboardLoading = false
		a.dashboardStats = msg.Stats
		a.dashboardErr = msg.Err
		return a, nil

	case appmodel.QuizGeneratedMsg:
		a.quizState.Generating = false
		if msg.Err != nil {
			a.quizState.Err = msg.Err
			return a, nil
		}
		a.quizState.Quiz = msg.Quiz
		a.quizState.SavedID = msg.SavedID
		a.quizState.SelectedQuestion = 0
		return a, nil
	}

	// Forward remaining messages to the focused components
	if !a.anyModalOpen() {
		a.textarea, cmd = a.textarea.Update(msg)
		cmds = append(cmds, cmd)

		a.viewport, cmd = a.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	return a, tea.Batch(cmds...)
}

func (a AppView) anyModalOpen() bool {
	return a.showHelp || a.showSessionManager || a.showMessageSearch || a.showGlobalSearch || a.showDashboard || a.showQuizModal
}

// finalizeLastReply renders markdown for the newest assistant message and
// autosaves. Used when a reply needs no reveal (already fully visible).
func (a AppView) finalizeLastReply() tea.Cmd {
	messages := a.dataModel.Store.Snapshot()
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == conversation.RoleAssistant {
			return tea.Batch(
				a.renderMarkdownAsync(messages[i].ID, messages[i].Content),
				a.dataModel.AutoSaveSession(),
			)
		}
	}
	return a.dataModel.AutoSaveSession()
}
