package storage

import (
	"strings"
	"time"
)

// SessionMessageMatch is a search hit across all saved sessions.
type SessionMessageMatch struct {
	SessionID    string
	SessionName  string
	MessageIndex int
	Role         string
	Preview      string
	Timestamp    time.Time
}

// SearchIndex searches the full transcript archive. It scans session files
// on demand; the archive is small enough that no persistent index is kept.
type SearchIndex struct {
	storage *SessionStorage
}

func NewSearchIndex(storage *SessionStorage) *SearchIndex {
	return &SearchIndex{storage: storage}
}

func (si *SearchIndex) SearchAllSessions(query string) ([]SessionMessageMatch, error) {
	if query == "" {
		return []SessionMessageMatch{}, nil
	}

	sessionList, err := si.storage.List()
	if err != nil {
		return nil, err
	}

	queryLower := strings.ToLower(query)
	var matches []SessionMessageMatch

	for _, meta := range sessionList {
		session, err := si.storage.Load(meta.ID)
		if err != nil {
			continue
		}

		for i, msg := range session.Messages {
			if !strings.Contains(strings.ToLower(msg.Content), queryLower) {
				continue
			}

			preview := msg.Content
			if len(preview) > 100 {
				preview = preview[:100] + "..."
			}

			matches = append(matches, SessionMessageMatch{
				SessionID:    session.ID,
				SessionName:  session.Name,
				MessageIndex: i,
				Role:         msg.Role,
				Preview:      preview,
				Timestamp:    msg.Timestamp,
			})
		}
	}

	return matches, nil
}
