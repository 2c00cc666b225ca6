package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Message is a persisted conversation entry.
type Message struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Session is one saved conversation with the study assistant.
type Session struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Messages  []Message `json:"messages"`
}

// SessionMetadata is a lightweight version of Session for listing.
type SessionMetadata struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	MessageCount int       `json:"message_count"`
}

// SessionStorage handles session persistence as JSON files under the
// data directory.
type SessionStorage struct {
	sessionsDir string
}

func NewSessionStorage(dataDir string) (*SessionStorage, error) {
	sessionsDir := filepath.Join(dataDir, "sessions")

	// 0700 - transcripts are private to the user
	if err := os.MkdirAll(sessionsDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create sessions directory: %w", err)
	}

	return &SessionStorage{sessionsDir: sessionsDir}, nil
}

// Save writes a session to disk, assigning an ID on first save.
func (s *SessionStorage) Save(session *Session) error {
	if session.ID == "" {
		session.ID = uuid.New().String()
	}

	session.UpdatedAt = time.Now()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = session.UpdatedAt
	}

	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	path := filepath.Join(s.sessionsDir, session.ID+".json")
	// 0600 - session files contain conversation history
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}

	return nil
}

// Load reads a session from disk.
func (s *SessionStorage) Load(id string) (*Session, error) {
	path := filepath.Join(s.sessionsDir, id+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &session, nil
}

// List returns metadata for all sessions, sorted by update time (newest first).
func (s *SessionStorage) List() ([]SessionMetadata, error) {
	entries, err := os.ReadDir(s.sessionsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read sessions directory: %w", err)
	}

	var sessions []SessionMetadata
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.sessionsDir, entry.Name()))
		if err != nil {
			continue // skip corrupted files
		}

		var session Session
		if err := json.Unmarshal(data, &session); err != nil {
			continue // skip corrupted files
		}

		sessions = append(sessions, SessionMetadata{
			ID:           session.ID,
			Name:         session.Name,
			CreatedAt:    session.CreatedAt,
			UpdatedAt:    session.UpdatedAt,
			MessageCount: len(session.Messages),
		})
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].UpdatedAt.After(sessions[j].UpdatedAt)
	})

	return sessions, nil
}

// Delete removes a session from disk.
func (s *SessionStorage) Delete(id string) error {
	path := filepath.Join(s.sessionsDir, id+".json")
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to delete session file: %w", err)
	}
	return nil
}

// Rename updates the name of a saved session.
func (s *SessionStorage) Rename(id, newName string) error {
	session, err := s.Load(id)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}

	session.Name = newName
	if err := s.Save(session); err != nil {
		return fmt.Errorf("failed to save renamed session: %w", err)
	}
	return nil
}

// SaveCurrentSessionID remembers which session was last active.
func (s *SessionStorage) SaveCurrentSessionID(id string) error {
	path := filepath.Join(filepath.Dir(s.sessionsDir), "current_session.id")
	return os.WriteFile(path, []byte(id), 0600)
}

// LoadCurrentSessionID returns the ID of the last active session.
func (s *SessionStorage) LoadCurrentSessionID() (string, error) {
	path := filepath.Join(filepath.Dir(s.sessionsDir), "current_session.id")
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// MessageMatch is a search hit within a single session.
type MessageMatch struct {
	MessageIndex int
	Role         string
	Preview      string
	Timestamp    time.Time
}

// SearchMessages finds messages in the given transcript containing the
// query, case-insensitively.
func SearchMessages(messages []Message, query string) []MessageMatch {
	if query == "" {
		return []MessageMatch{}
	}

	queryLower := strings.ToLower(query)
	var matches []MessageMatch

	for i, msg := range messages {
		if !strings.Contains(strings.ToLower(msg.Content), queryLower) {
			continue
		}

		preview := msg.Content
		if len(preview) > 100 {
			preview = preview[:100] + "..."
		}

		matches = append(matches, MessageMatch{
			MessageIndex: i,
			Role:         msg.Role,
			Preview:      preview,
			Timestamp:    msg.Timestamp,
		})
	}

	return matches
}
