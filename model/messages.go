package model

import (
	"edumind/backend"
	"edumind/storage"
)

// Messages emitted by the command layer back into the UI update loop.

// SubmitDoneMsg reports that a submitted question finished its round trip.
// Err is only ever ErrEmptyInput; backend failures degrade to a fallback
// reply rather than an error.
type SubmitDoneMsg struct {
	Err error
}

// QuizGeneratedMsg carries a freshly generated quiz, already archived.
type QuizGeneratedMsg struct {
	Quiz    *backend.Quiz
	SavedID string
	Err     error
}

// StatsLoadedMsg carries dashboard statistics from the backend.
type StatsLoadedMsg struct {
	Stats *backend.DashboardStats
	Err   error
}

// HealthMsg reports the outcome of a backend health check.
type HealthMsg struct {
	Err error
}

// SessionsListMsg carries the saved session listing.
type SessionsListMsg struct {
	Sessions []storage.SessionMetadata
	Err      error
}

// SessionLoadedMsg carries a fully loaded session ready to switch to.
type SessionLoadedMsg struct {
	Session *storage.Session
	Err     error
}

// SessionSavedMsg reports an autosave or explicit save.
type SessionSavedMsg struct {
	SessionID string
	Err       error
}

// SessionRenamedMsg reports a completed rename.
type SessionRenamedMsg struct {
	SessionID string
	Err       error
}

// SessionDeletedMsg reports a completed delete.
type SessionDeletedMsg struct {
	SessionID string
	Err       error
}

// SearchResultsMsg carries cross-session search hits.
type SearchResultsMsg struct {
	Query   string
	Matches []storage.SessionMessageMatch
	Err     error
}
