package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"edumind/backend"
	appmodel "edumind/model"
	"edumind/storage"
)

type AppView struct {
	// Reference to core data model
	dataModel *appmodel.Model

	// UI Components
	viewport viewport.Model
	textarea textarea.Model

	// Window state
	width  int
	height int
	ready  bool

	// Loading spinner (bubbles/spinner)
	loadingSpinner spinner.Model

	// Typewriter reveal state. revealGen mirrors the scheduler's active
	// job generation; revealTarget is the message being revealed.
	revealGen    uint64
	revealTarget string

	// Rendered markdown cache, keyed by message id
	rendered map[string]string

	// Transient notice shown above the input (validation, clipboard, saves)
	notice string

	// Backend health indicator
	healthErr     error
	healthChecked bool

	showHelp bool

	// Session management UI
	showSessionManager   bool
	sessionList          []storage.SessionMetadata
	selectedSessionIdx   int
	sessionRenameMode    bool
	sessionRenameInput   textinput.Model
	sessionFilterMode    bool
	sessionFilterInput   textinput.Model
	filteredSessionList  []storage.SessionMetadata
	confirmDeleteSession *storage.SessionMetadata

	// Current-session search
	showMessageSearch      bool
	messageSearchInput     textinput.Model
	messageSearchResults   []storage.MessageMatch
	selectedSearchIdx      int
	messageSearchScrollIdx int

	// Cross-session search
	showGlobalSearch      bool
	globalSearchInput     textinput.Model
	globalSearchResults   []storage.SessionMessageMatch
	selectedGlobalIdx     int
	globalSearchScrollIdx int

	// Dashboard modal
	showDashboard    bool
	dashboardStats   *backend.DashboardStats
	dashboardErr     error
	dashboardLoading bool

	// Quiz modal
	showQuizModal bool
	quizState     QuizModalState
}

func NewAppView(dataModel *appmodel.Model) AppView {
	ta := textarea.New()
	ta.Placeholder = "Ask me anything about your studies..."
	ta.Focus()
	ta.CharLimit = 0
	ta.ShowLineNumbers = false
	ta.SetHeight(3)
	ta.SetWidth(80)

	// Custom KeyMap: Alt+Enter for newline, Enter alone sends (handled separately)
	ta.KeyMap.InsertNewline = key.NewBinding(key.WithKeys("alt+enter"))

	ta.SetPromptFunc(2, func(lineIdx int) string {
		if lineIdx == 0 {
			return "> "
		}
		return "| "
	})

	vp := viewport.New(0, 0)

	sessionRenameInput := textinput.New()
	sessionRenameInput.Prompt = "Rename: "
	sessionRenameInput.CharLimit = 100

	sessionFilterInput := textinput.New()
	sessionFilterInput.Prompt = "Filter: "
	sessionFilterInput.CharLimit = 64

	messageSearchInput := textinput.New()
	messageSearchInput.Prompt = "Search: "
	messageSearchInput.CharLimit = 100

	globalSearchInput := textinput.New()
	globalSearchInput.Prompt = "Search all: "
	globalSearchInput.CharLimit = 100

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return AppView{
		dataModel:           dataModel,
		textarea:            ta,
		viewport:            vp,
		loadingSpinner:      sp,
		rendered:            make(map[string]string),
		ready:               false,
		sessionRenameInput:  sessionRenameInput,
		sessionFilterInput:  sessionFilterInput,
		filteredSessionList: []storage.SessionMetadata{},
		messageSearchInput:  messageSearchInput,
		globalSearchInput:   globalSearchInput,
		quizState:           NewQuizModalState(),
	}
}

func (a AppView) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		a.dataModel.HealthCheckCmd(),
	)
}

func (a AppView) View() string {
	if !a.ready {
		return "Loading EduMind..."
	}

	// Modal rendering order (top to bottom layers):
	// 1. Help (always on top - can peek while in other modals)
	// 2. Session manager
	// 3. Global search
	// 4. Dashboard
	// 5. Quiz

	if a.showHelp {
		return renderHelpModal(a.width, a.height, a.dataModel.Version, a.dataModel.License)
	}

	if a.showSessionManager {
		currentSessionID := ""
		if a.dataModel.CurrentSession != nil {
			currentSessionID = a.dataModel.CurrentSession.ID
		}
		return renderSessionManager(a.getSessionList(), a.selectedSessionIdx, currentSessionID,
			a.sessionRenameMode, a.sessionRenameInput, a.sessionFilterMode, a.sessionFilterInput,
			a.confirmDeleteSession, a.width, a.height)
	}

	if a.showGlobalSearch {
		return renderGlobalSearch(a.globalSearchInput, a.globalSearchResults, a.selectedGlobalIdx, a.globalSearchScrollIdx, a.width, a.height)
	}

	if a.showMessageSearch {
		return renderMessageSearch(a.messageSearchInput, a.messageSearchResults, a.selectedSearchIdx, a.messageSearchScrollIdx, a.width, a.height)
	}

	if a.showDashboard {
		return renderDashboard(a.dashboardStats, a.dashboardErr, a.dashboardLoading, a.loadingSpinner.View(), a.width, a.height)
	}

	if a.showQuizModal {
		return renderQuizModal(a.quizState, a.loadingSpinner.View(), a.width, a.height)
	}

	// Title bar - "EduMind - Session Name | health"
	appText := AssistantStyle.Render("EduMind")
	sessionName := "New Session"
	if a.dataModel.CurrentSession != nil && a.dataModel.CurrentSession.Name != "" {
		sessionName = a.dataModel.CurrentSession.Name
	}
	sessionText := UserStyle.Render(fmt.Sprintf(" - %s", sessionName))

	healthText := ""
	if a.healthChecked {
		if a.healthErr != nil {
			healthText = DimStyle.Render(" | ") + DangerStyle.Render("● offline")
		} else {
			healthText = DimStyle.Render(" | ") + UserStyle.Render("● online")
		}
	}

	title := appText + sessionText + healthText

	separator := ""

	viewportView := a.viewport.View()

	noticeView := ""
	if a.notice != "" {
		noticeView = SelectedStyle.Render(a.notice)
	}

	inputView := a.textarea.View()

	// Status bar with bold user green descriptions
	descStyle := lipgloss.NewStyle().Foreground(successColor).Bold(true)
	statusBar := fmt.Sprintf("Alt+Q %s  Alt+N %s  Alt+S %s  Alt+F %s  Alt+D %s  Alt+T %s  Enter %s  Alt+Y %s",
		descStyle.Render("Quit"),
		descStyle.Render("New"),
		descStyle.Render("Sessions"),
		descStyle.Render("Search"),
		descStyle.Render("Dashboard"),
		descStyle.Render("Quiz"),
		descStyle.Render("Send"),
		descStyle.Render("Copy"),
	)
	statusBar = StatusStyle.Render(statusBar)

	parts := []string{title, separator, viewportView}
	if noticeView != "" {
		parts = append(parts, noticeView)
	}
	parts = append(parts, inputView, statusBar)

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (a AppView) getSessionList() []storage.SessionMetadata {
	if a.sessionFilterMode && len(a.filteredSessionList) > 0 {
		return a.filteredSessionList
	}
	return a.sessionList
}

func (a *AppView) closeAllModals() {
	a.showHelp = false
	a.showSessionManager = false
	a.showMessageSearch = false
	a.showGlobalSearch = false
	a.showDashboard = false
	a.showQuizModal = false

	a.sessionRenameMode = false
	a.sessionFilterMode = false
	a.confirmDeleteSession = nil

	if a.sessionRenameInput.Focused() {
		a.sessionRenameInput.Blur()
	}
	if a.sessionFilterInput.Focused() {
		a.sessionFilterInput.Blur()
	}
	if a.messageSearchInput.Focused() {
		a.messageSearchInput.Blur()
	}
	if a.globalSearchInput.Focused() {
		a.globalSearchInput.Blur()
	}
	a.quizState.Blur()
}
