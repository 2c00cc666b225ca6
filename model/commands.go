package model

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"edumind/backend"
	"edumind/config"
	"edumind/conversation"
	"edumind/storage"
)

// SubmitCmd sends the typed question through the conversation controller.
// The controller owns validation and single-flight: an in-flight submission
// makes this a silent no-op.
func (m *Model) SubmitCmd(input string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), m.Config.RequestTimeout())
		defer cancel()

		err := m.Controller.Submit(ctx, input)
		return SubmitDoneMsg{Err: err}
	}
}

// GenerateQuizCmd asks the backend for a quiz over the given material and
// archives the result locally.
func (m *Model) GenerateQuizCmd(material, questionType string, numQuestions int, difficulty string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), m.Config.RequestTimeout())
		defer cancel()

		retrier := backend.NewQuizRetrier(m.Backend)
		quiz, err := retrier.Generate(ctx, backend.QuizRequest{
			Material:     material,
			Type:         questionType,
			NumQuestions: numQuestions,
			Difficulty:   difficulty,
		})
		if err != nil {
			if config.DebugLog != nil {
				config.DebugLog.Printf("[quiz] generation failed: %v", err)
			}
			return QuizGeneratedMsg{Err: err}
		}

		var savedID string
		if m.QuizStorage != nil {
			savedID, err = m.QuizStorage.Save(&storage.SavedQuiz{
				BackendID:  quiz.ID,
				Material:   material,
				Type:       questionType,
				Difficulty: difficulty,
				Questions:  quiz.Questions,
			})
			if err != nil && config.DebugLog != nil {
				config.DebugLog.Printf("[quiz] archive failed: %v", err)
			}
		}

		return QuizGeneratedMsg{Quiz: quiz, SavedID: savedID}
	}
}

// LoadStatsCmd fetches dashboard statistics from the backend.
func (m *Model) LoadStatsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), m.Config.RequestTimeout())
		defer cancel()

		stats, err := m.Backend.DashboardStats(ctx)
		return StatsLoadedMsg{Stats: stats, Err: err}
	}
}

// HealthCheckCmd calls the backend health endpoint.
func (m *Model) HealthCheckCmd() tea.Cmd {
	return func() tea.Msg {
		return HealthMsg{Err: m.Backend.Health(context.Background())}
	}
}

// AutoSaveSession persists the current transcript. When no session exists
// yet, one is created and named after the first user message.
func (m *Model) AutoSaveSession() tea.Cmd {
	return func() tea.Msg {
		if m.SessionStorage == nil {
			return nil
		}

		messages := m.Store.Snapshot()
		if len(messages) == 0 {
			return nil
		}

		if m.CurrentSession == nil {
			m.CurrentSession = &storage.Session{
				Name: generateSessionName(messageContent(messages, conversation.RoleUser)),
			}
		}

		m.CurrentSession.Messages = make([]storage.Message, 0, len(messages))
		for _, msg := range messages {
			m.CurrentSession.Messages = append(m.CurrentSession.Messages, storage.Message{
				ID:        msg.ID,
				Role:      string(msg.Role),
				Content:   msg.Content,
				Timestamp: msg.CreatedAt,
			})
		}

		if err := m.SessionStorage.Save(m.CurrentSession); err != nil {
			if config.DebugLog != nil {
				config.DebugLog.Printf("[session] autosave failed: %v", err)
			}
			return SessionSavedMsg{Err: err}
		}
		m.markSaved()

		if err := m.SessionStorage.SaveCurrentSessionID(m.CurrentSession.ID); err != nil && config.DebugLog != nil {
			config.DebugLog.Printf("[session] failed to record current session: %v", err)
		}

		return SessionSavedMsg{SessionID: m.CurrentSession.ID}
	}
}

// ListSessionsCmd loads the saved session listing, newest first.
func (m *Model) ListSessionsCmd() tea.Cmd {
	return func() tea.Msg {
		sessions, err := m.SessionStorage.List()
		return SessionsListMsg{Sessions: sessions, Err: err}
	}
}

// LoadSessionCmd loads a saved session by id.
func (m *Model) LoadSessionCmd(id string) tea.Cmd {
	return func() tea.Msg {
		session, err := m.SessionStorage.Load(id)
		return SessionLoadedMsg{Session: session, Err: err}
	}
}

// RenameSessionCmd renames a saved session.
func (m *Model) RenameSessionCmd(id, name string) tea.Cmd {
	return func() tea.Msg {
		err := m.SessionStorage.Rename(id, name)
		if err == nil && m.CurrentSession != nil && m.CurrentSession.ID == id {
			m.CurrentSession.Name = name
		}
		return SessionRenamedMsg{SessionID: id, Err: err}
	}
}

// DeleteSessionCmd deletes a saved session.
func (m *Model) DeleteSessionCmd(id string) tea.Cmd {
	return func() tea.Msg {
		err := m.SessionStorage.Delete(id)
		if err == nil && m.CurrentSession != nil && m.CurrentSession.ID == id {
			m.NewSession()
		}
		return SessionDeletedMsg{SessionID: id, Err: err}
	}
}

// SearchSessionsCmd runs a cross-session transcript search.
func (m *Model) SearchSessionsCmd(query string) tea.Cmd {
	return func() tea.Msg {
		matches, err := m.SearchIndex.SearchAllSessions(query)
		return SearchResultsMsg{Query: query, Matches: matches, Err: err}
	}
}

// messageContent returns the content of the first message with the given
// role, or an empty string.
func messageContent(messages []conversation.Message, role conversation.Role) string {
	for _, msg := range messages {
		if msg.Role == role {
			return msg.Content
		}
	}
	return ""
}

// generateSessionName derives a short session name from the first question.
func generateSessionName(firstMessage string) string {
	name := strings.TrimSpace(firstMessage)
	if name == "" {
		return "New Session"
	}
	name = strings.ReplaceAll(name, "\n", " ")
	if len(name) > 40 {
		name = name[:40] + "..."
	}
	return name
}
