package model

import (
	"testing"
	"time"

	"edumind/config"
	"edumind/conversation"
	"edumind/storage"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		DataDirectory:    t.TempDir(),
		BackendHost:      "http://localhost:5000",
		TimeoutSeconds:   60,
		TypingIntervalMs: 20,
	}
}

func newTestModel(t *testing.T, lastSession *storage.Session) *Model {
	t.Helper()
	cfg := testConfig(t)
	sessions, err := storage.NewSessionStorage(cfg.DataDir())
	if err != nil {
		t.Fatalf("session storage: %v", err)
	}
	return NewModel(cfg, sessions, nil, lastSession, "test", "test")
}

func TestNewModelRestoresSessionFullyVisible(t *testing.T) {
	session := &storage.Session{
		ID:   "s1",
		Name: "restored",
		Messages: []storage.Message{
			{ID: "m1", Role: "user", Content: "Explain osmosis", Timestamp: time.Now()},
			{ID: "m2", Role: "assistant", Content: "Osmosis is diffusion of water.", Timestamp: time.Now()},
		},
	}

	m := newTestModel(t, session)

	messages := m.Store.Snapshot()
	if len(messages) != 2 {
		t.Fatalf("got %d messages, want 2", len(messages))
	}
	for _, msg := range messages {
		if !msg.FullyVisible() {
			t.Errorf("restored message %s must be fully visible", msg.ID)
		}
	}
	if m.Scheduler.State() != conversation.StateIdle {
		t.Errorf("scheduler state = %v, want idle after restore", m.Scheduler.State())
	}
}

func TestAutoSaveCreatesAndNamesSession(t *testing.T) {
	m := newTestModel(t, nil)

	if err := m.Store.Append(conversation.NewUserMessage("What is mitosis? It splits one cell into two daughters.")); err != nil {
		t.Fatal(err)
	}

	msg := m.AutoSaveSession()()
	saved, ok := msg.(SessionSavedMsg)
	if !ok {
		t.Fatalf("got %T, want SessionSavedMsg", msg)
	}
	if saved.Err != nil {
		t.Fatalf("autosave: %v", saved.Err)
	}
	if m.CurrentSession == nil || m.CurrentSession.ID == "" {
		t.Fatal("autosave must create a session with an id")
	}
	if m.CurrentSession.Name == "" || m.CurrentSession.Name == "New Session" {
		t.Errorf("session name = %q, want derived from first question", m.CurrentSession.Name)
	}
	if len(m.CurrentSession.Name) > 43 {
		t.Errorf("session name too long: %q", m.CurrentSession.Name)
	}
	if m.SessionDirty() {
		t.Error("session must be clean after autosave")
	}
}

func TestAutoSaveEmptyTranscriptIsNoOp(t *testing.T) {
	m := newTestModel(t, nil)

	if msg := m.AutoSaveSession()(); msg != nil {
		t.Errorf("got %T, want nil for empty transcript", msg)
	}
	if m.CurrentSession != nil {
		t.Error("no session should be created for an empty transcript")
	}
}

func TestStoreMutationMarksSessionDirty(t *testing.T) {
	m := newTestModel(t, nil)

	if m.SessionDirty() {
		t.Fatal("fresh model must start clean")
	}
	if err := m.Store.Append(conversation.NewUserMessage("hi")); err != nil {
		t.Fatal(err)
	}
	if !m.SessionDirty() {
		t.Error("append must mark the session dirty")
	}
}

func TestSwitchSessionReplacesConversation(t *testing.T) {
	m := newTestModel(t, nil)
	if err := m.Store.Append(conversation.NewUserMessage("old transcript")); err != nil {
		t.Fatal(err)
	}

	next := &storage.Session{
		ID:   "s2",
		Name: "chemistry",
		Messages: []storage.Message{
			{ID: "m1", Role: "user", Content: "Define a mole", Timestamp: time.Now()},
		},
	}
	m.SwitchSession(next)

	messages := m.Store.Snapshot()
	if len(messages) != 1 || messages[0].Content != "Define a mole" {
		t.Fatalf("unexpected transcript after switch: %+v", messages)
	}
	if m.CurrentSession != next {
		t.Error("current session not updated")
	}

	id, err := m.SessionStorage.LoadCurrentSessionID()
	if err != nil {
		t.Fatalf("load current id: %v", err)
	}
	if id != "s2" {
		t.Errorf("current id = %q, want s2", id)
	}
}

func TestNewSessionStartsEmpty(t *testing.T) {
	m := newTestModel(t, nil)
	if err := m.Store.Append(conversation.NewUserMessage("something")); err != nil {
		t.Fatal(err)
	}

	m.NewSession()

	if m.CurrentSession != nil {
		t.Error("current session must be nil")
	}
	if m.Store.Len() != 0 {
		t.Errorf("store has %d messages, want 0", m.Store.Len())
	}
}

func TestGenerateSessionName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "short question kept", input: "What is DNA?", want: "What is DNA?"},
		{name: "whitespace trimmed", input: "  spaced  ", want: "spaced"},
		{name: "empty falls back", input: "", want: "New Session"},
		{name: "newlines flattened", input: "line one\nline two", want: "line one line two"},
		{
			name:  "long question truncated",
			input: "Explain the complete light-dependent reactions of photosynthesis",
			want:  "Explain the complete light-dependent rea...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := generateSessionName(tt.input); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
