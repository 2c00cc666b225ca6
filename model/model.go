package model

import (
	"sync/atomic"

	"edumind/backend"
	"edumind/config"
	"edumind/conversation"
	"edumind/storage"
)

// Model holds the core application data and business logic state. The UI
// layer renders from it and never mutates conversation state directly:
// everything goes through the conversation controller and scheduler.
type Model struct {
	// Core dependencies
	Config         *config.Config
	Backend        *backend.Client
	SessionStorage *storage.SessionStorage
	QuizStorage    *storage.QuizStorage
	SearchIndex    *storage.SearchIndex

	// Conversation core (one set per active session)
	Store      *conversation.Store
	Scheduler  *conversation.Scheduler
	Controller *conversation.Controller

	// Application data
	CurrentSession *storage.Session

	// Runtime state (not UI)
	sessionDirty atomic.Bool

	// Application metadata
	Version string
	License string
}

// NewModel creates a new Model with the given configuration.
func NewModel(cfg *config.Config, sessionStorage *storage.SessionStorage, quizStorage *storage.QuizStorage, lastSession *storage.Session, version, license string) *Model {
	m := &Model{
		Config:         cfg,
		Backend:        backend.NewClient(cfg.BackendHost, cfg.RequestTimeout()),
		SessionStorage: sessionStorage,
		QuizStorage:    quizStorage,
		SearchIndex:    storage.NewSearchIndex(sessionStorage),
		CurrentSession: lastSession,
		Version:        version,
		License:        license,
	}
	m.resetConversation(lastSession)
	return m
}

// resetConversation builds a fresh store/scheduler/controller trio, seeded
// with the transcript of session when one is given. Restored messages are
// fully visible: the reveal animation only applies to replies arriving live.
func (m *Model) resetConversation(session *storage.Session) {
	store := conversation.NewStore()
	store.Subscribe(func(conversation.Message) {
		m.sessionDirty.Store(true)
	})

	if session != nil {
		for _, sMsg := range session.Messages {
			msg := conversation.Message{
				ID:            sMsg.ID,
				Role:          conversation.Role(sMsg.Role),
				Content:       sMsg.Content,
				VisiblePrefix: sMsg.Content,
				CreatedAt:     sMsg.Timestamp,
			}
			_ = store.Append(msg)
		}
	}

	m.Store = store
	m.Scheduler = conversation.NewScheduler(store, m.Config.TypingInterval())
	m.Controller = conversation.NewController(store, m.Scheduler, m.Backend)
	m.sessionDirty.Store(false)
}

// SwitchSession replaces the active conversation with a saved one.
func (m *Model) SwitchSession(session *storage.Session) {
	m.CurrentSession = session
	m.resetConversation(session)
	if session != nil && m.SessionStorage != nil {
		_ = m.SessionStorage.SaveCurrentSessionID(session.ID)
	}
}

// NewSession starts an empty conversation.
func (m *Model) NewSession() {
	m.CurrentSession = nil
	m.resetConversation(nil)
}

// SessionDirty reports whether the transcript changed since the last save.
func (m *Model) SessionDirty() bool {
	return m.sessionDirty.Load()
}

func (m *Model) markSaved() {
	m.sessionDirty.Store(false)
}
